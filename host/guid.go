package host

import (
	"sync"
	"unsafe"
)

// GuidRegistry issues the opaque integer handles scripts hold and resolves
// them back to live entity addresses. Guids are never reused within a run;
// releasing one makes every later lookup return zero, which callers treat as
// "no matching live entity". Note that the address itself may later be
// reused by the allocator for an unrelated object; the registry is the only
// liveness oracle this process has.
type GuidRegistry struct {
	mu     sync.Mutex
	next   int
	byGuid map[int]*Entity
	byAddr map[uintptr]int
}

// NewGuidRegistry creates an empty registry.
func NewGuidRegistry() *GuidRegistry {
	return &GuidRegistry{
		next:   1,
		byGuid: make(map[int]*Entity),
		byAddr: make(map[uintptr]int),
	}
}

// Register issues a guid for an entity. Registering the same entity twice
// returns the existing guid.
func (r *GuidRegistry) Register(e *Entity) int {
	if e == nil {
		return 0
	}
	addr := uintptr(unsafe.Pointer(e))
	r.mu.Lock()
	defer r.mu.Unlock()
	if guid, ok := r.byAddr[addr]; ok {
		return guid
	}
	guid := r.next
	r.next++
	r.byGuid[guid] = e
	r.byAddr[addr] = guid
	return guid
}

// Release invalidates a guid when its entity is destroyed.
func (r *GuidRegistry) Release(guid int) {
	r.mu.Lock()
	defer r.mu.Unlock()
	e, ok := r.byGuid[guid]
	if !ok {
		return
	}
	delete(r.byGuid, guid)
	delete(r.byAddr, uintptr(unsafe.Pointer(e)))
}

// BaseFromGuid resolves a guid to the entity's address, or 0 for a stale or
// unknown guid.
func (r *GuidRegistry) BaseFromGuid(guid int) uintptr {
	r.mu.Lock()
	defer r.mu.Unlock()
	e, ok := r.byGuid[guid]
	if !ok {
		return 0
	}
	return uintptr(unsafe.Pointer(e))
}

// GuidFromBase resolves an entity address back to its guid, or 0 when the
// address does not belong to a registered entity.
func (r *GuidRegistry) GuidFromBase(addr uintptr) int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.byAddr[addr]
}

// EntityFromGuid returns the live entity for a guid, or nil.
func (r *GuidRegistry) EntityFromGuid(guid int) *Entity {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.byGuid[guid]
}

// Guids returns every live guid in unspecified order.
func (r *GuidRegistry) Guids() []int {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]int, 0, len(r.byGuid))
	for guid := range r.byGuid {
		out = append(out, guid)
	}
	return out
}
