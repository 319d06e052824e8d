package bootstrap

import (
	"testing"

	"go.uber.org/zap"

	"github.com/jxnnyo/blackout/host"
	"github.com/jxnnyo/blackout/natives"
)

// partialResolver simulates pattern-scan failures.
type partialResolver struct {
	renderer  *host.Renderer
	failHook  bool
	failCells bool
}

func (p partialResolver) HookTarget() (*host.Renderer, error) {
	if p.failHook {
		return nil, host.ErrNotResolved
	}
	return p.renderer, nil
}

func (p partialResolver) BlackoutCells() (*bool, *bool, error) {
	if p.failCells {
		return nil, nil, host.ErrNotResolved
	}
	return &p.renderer.DisableArtificialLights, &p.renderer.DisableArtificialVehLights, nil
}

type fixture struct {
	renderer *host.Renderer
	registry *host.GuidRegistry
	session  *host.SessionSignal
	core     *Core

	car      *host.Entity
	carGuid  int
	carLight *host.LightEntity

	lamp      *host.Entity
	lampGuid  int
	lampLight *host.LightEntity
}

func newFixture(t *testing.T, res host.Resolver, renderer *host.Renderer) *fixture {
	t.Helper()

	registry := host.NewGuidRegistry()
	session := &host.SessionSignal{}
	core := Install(res, GuidResolver{Registry: registry}, session, host.ParentEntityOffset, zap.NewNop().Sugar())

	f := &fixture{
		renderer: renderer,
		registry: registry,
		session:  session,
		core:     core,
	}
	f.car = &host.Entity{Name: "car", Vehicle: true}
	f.carGuid = registry.Register(f.car)
	f.carLight = host.NewLightEntity(f.car, 20, 1)

	f.lamp = &host.Entity{Name: "lamp"}
	f.lampGuid = registry.Register(f.lamp)
	f.lampLight = host.NewLightEntity(f.lamp, 20, 1)
	return f
}

func (f *fixture) addLight(le *host.LightEntity) bool {
	return f.renderer.AddSceneLight(&host.SceneLight{Radius: 20}, le, false)
}

func TestInstallHappyPath(t *testing.T) {
	renderer := host.NewRenderer()
	renderer.DisableArtificialLights = true
	renderer.DisableArtificialVehLights = true

	f := newFixture(t, host.DirectResolver{Renderer: renderer}, renderer)
	if f.core.Shim == nil {
		t.Fatalf("shim not installed")
	}

	renderer.BeginFrame()
	if f.addLight(f.carLight) {
		t.Fatalf("unmarked car light accepted under blackout")
	}

	f.core.Registry.Call(natives.NativeSetIgnoreState, f.carGuid, true)

	if !f.addLight(f.carLight) {
		t.Fatalf("marked car light rejected under blackout")
	}
	if f.addLight(f.lampLight) {
		t.Fatalf("override leaked to an unmarked entity")
	}
	if !renderer.DisableArtificialLights || !renderer.DisableArtificialVehLights {
		t.Fatalf("flag cells not restored after overridden call")
	}

	f.core.Registry.Call(natives.NativeSetIgnoreState, f.carGuid, false)
	if f.addLight(f.carLight) {
		t.Fatalf("unmarked car light accepted after unset")
	}
}

func TestInstallSessionTeardown(t *testing.T) {
	renderer := host.NewRenderer()
	renderer.DisableArtificialLights = true
	renderer.DisableArtificialVehLights = true

	f := newFixture(t, host.DirectResolver{Renderer: renderer}, renderer)
	f.core.Registry.Call(natives.NativeSetIgnoreState, f.carGuid, true)
	f.core.Registry.Call(natives.NativeSetIgnoreState, f.lampGuid, true)

	f.session.Fire()

	if got := f.core.Allowed.Len(); got != 0 {
		t.Fatalf("allow-list size = %d after session end, want 0", got)
	}
	renderer.BeginFrame()
	if f.addLight(f.carLight) {
		t.Fatalf("car light accepted after session teardown cleared the list")
	}
}

func TestInstallHookResolutionFailure(t *testing.T) {
	renderer := host.NewRenderer()
	renderer.DisableArtificialLights = true
	renderer.DisableArtificialVehLights = true

	f := newFixture(t, partialResolver{renderer: renderer, failHook: true}, renderer)
	if f.core.Shim != nil {
		t.Fatalf("shim installed despite hook resolution failure")
	}

	// Natives still maintain the allow-list; the override just never fires.
	f.core.Registry.Call(natives.NativeSetIgnoreState, f.carGuid, true)
	if res, _ := f.core.Registry.Call(natives.NativeGetIgnoreState, f.carGuid); res != true {
		t.Fatalf("natives stopped working without the hook")
	}

	renderer.BeginFrame()
	if f.addLight(f.carLight) {
		t.Fatalf("marked car light accepted with no hook installed")
	}
}

func TestInstallCellResolutionFailsOpen(t *testing.T) {
	renderer := host.NewRenderer()
	renderer.DisableArtificialLights = true
	renderer.DisableArtificialVehLights = true

	f := newFixture(t, partialResolver{renderer: renderer, failCells: true}, renderer)
	if f.core.Shim == nil {
		t.Fatalf("shim should still install as a pass-through")
	}

	f.core.Registry.Call(natives.NativeSetIgnoreState, f.carGuid, true)

	renderer.BeginFrame()
	if f.addLight(f.carLight) {
		t.Fatalf("override applied with unresolved flag cells")
	}
}
