package natives

import (
	"sort"
	"testing"

	"github.com/jxnnyo/blackout/host"
	"github.com/jxnnyo/blackout/lights"
)

// fakeResolver maps guids to identities directly, standing in for the host's
// guid registry.
type fakeResolver struct {
	byGuid map[int]lights.Identity
}

func (f *fakeResolver) BaseFromGuid(guid int) lights.Identity {
	return f.byGuid[guid]
}

func (f *fakeResolver) GuidFromBase(id lights.Identity) int {
	for guid, got := range f.byGuid {
		if got == id {
			return guid
		}
	}
	return 0
}

func newFixture(guids ...int) (*Controller, *lights.AllowList, *fakeResolver) {
	res := &fakeResolver{byGuid: make(map[int]lights.Identity)}
	for i, guid := range guids {
		res.byGuid[guid] = lights.Identity(0x1000 + uintptr(i)*0x10)
	}
	allowed := lights.NewAllowList()
	return NewController(allowed, res), allowed, res
}

func TestControllerSetAndGet(t *testing.T) {
	ctrl, allowed, _ := newFixture(42, 43)

	ctrl.SetIgnoreState(42, true)
	if !ctrl.GetIgnoreState(42) {
		t.Fatalf("GetIgnoreState(42) = false after set")
	}
	if ctrl.GetIgnoreState(43) {
		t.Fatalf("GetIgnoreState(43) = true, never set")
	}

	ctrl.SetIgnoreState(42, false)
	if ctrl.GetIgnoreState(42) {
		t.Fatalf("GetIgnoreState(42) = true after unset")
	}
	if allowed.Len() != 0 {
		t.Fatalf("allow-list size = %d, want 0", allowed.Len())
	}
}

func TestControllerInvalidGuid(t *testing.T) {
	ctrl, allowed, _ := newFixture(42)

	ctrl.SetIgnoreState(999, true)
	if allowed.Len() != 0 {
		t.Fatalf("invalid guid changed allow-list size to %d", allowed.Len())
	}
	if ctrl.GetIgnoreState(999) {
		t.Fatalf("GetIgnoreState(invalid) = true, want false")
	}
}

func TestControllerGetAllFiltersStale(t *testing.T) {
	ctrl, allowed, res := newFixture(42, 43)

	ctrl.SetIgnoreState(42, true)
	ctrl.SetIgnoreState(43, true)

	// Destroy 43: its identity lingers in the allow-list but no longer
	// resolves to a guid.
	delete(res.byGuid, 43)

	got := ctrl.GetAll()
	if len(got) != 1 || got[0] != 42 {
		t.Fatalf("GetAll() = %v, want [42]", got)
	}
	if allowed.Len() != 2 {
		t.Fatalf("stale entry was evicted; allow-list size = %d, want 2", allowed.Len())
	}
}

func TestControllerTeardownClears(t *testing.T) {
	ctrl, allowed, _ := newFixture(42, 43)
	ctrl.SetIgnoreState(42, true)
	ctrl.SetIgnoreState(43, true)

	var session host.SessionSignal
	session.Connect(ctrl.ClearAll)
	session.Fire()

	if allowed.Len() != 0 {
		t.Fatalf("allow-list size = %d after session end, want 0", allowed.Len())
	}
	if got := ctrl.GetAll(); len(got) != 0 {
		t.Fatalf("GetAll() = %v after session end, want empty", got)
	}

	// Firing again must stay harmless.
	session.Fire()
}

func TestRegistryDispatch(t *testing.T) {
	ctrl, _, _ := newFixture(42, 43)
	reg := NewRegistry()
	ctrl.Register(reg)

	if _, ok := reg.Call("NOT_A_NATIVE"); ok {
		t.Fatalf("unknown native reported as handled")
	}

	reg.Call(NativeSetIgnoreState, 42, true)
	res, ok := reg.Call(NativeGetIgnoreState, 42)
	if !ok || res != true {
		t.Fatalf("Call(get, 42) = %v, %v; want true", res, ok)
	}

	reg.Call(NativeSetIgnoreState, 43, true)
	res, _ = reg.Call(NativeGetAll)
	guids, _ := res.([]int)
	sort.Ints(guids)
	if len(guids) != 2 || guids[0] != 42 || guids[1] != 43 {
		t.Fatalf("Call(get_all) = %v, want [42 43]", guids)
	}

	reg.Call(NativeClearAll)
	res, _ = reg.Call(NativeGetAll)
	if guids, _ := res.([]int); len(guids) != 0 {
		t.Fatalf("Call(get_all) after clear = %v, want empty", guids)
	}
}

func TestEndToEndScenario(t *testing.T) {
	ctrl, _, _ := newFixture(42)
	reg := NewRegistry()
	ctrl.Register(reg)

	reg.Call(NativeSetIgnoreState, 42, true)
	if res, _ := reg.Call(NativeGetIgnoreState, 42); res != true {
		t.Fatalf("step 2: get = %v, want true", res)
	}
	if res, _ := reg.Call(NativeGetAll); len(res.([]int)) != 1 || res.([]int)[0] != 42 {
		t.Fatalf("step 3: get_all = %v, want [42]", res)
	}
	reg.Call(NativeSetIgnoreState, 42, false)
	if res, _ := reg.Call(NativeGetAll); len(res.([]int)) != 0 {
		t.Fatalf("step 5: get_all = %v, want []", res)
	}
}
