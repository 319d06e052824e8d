package lights

import "unsafe"

// SceneLightFunc matches the host renderer's per-scene-light entry point.
// Both pointers are host-owned structures; addToPrevious is passed through
// untouched.
type SceneLightFunc func(sceneLight, lightEntity unsafe.Pointer, addToPrevious bool) bool

// FlagCells is the pair of renderer booleans that suppress ordinary and
// vehicle artificial lights while blackout is active. The cells belong to
// the host; the shim borrows write access for the span of a single call and
// always restores the prior values before returning. Either pointer being
// nil means startup discovery failed and no override is ever applied.
type FlagCells struct {
	Artificial *bool
	Vehicle    *bool
}

// Resolved reports whether both cells were located at startup.
func (c FlagCells) Resolved() bool {
	return c.Artificial != nil && c.Vehicle != nil
}

// Shim brackets the renderer's AddSceneLight with a temporary override of
// the blackout flag cells for allow-listed entities. One shim is installed
// per process; AddSceneLight is only ever invoked from the host's light
// processing call site, so the cells need no locking of their own.
type Shim struct {
	allowed      *AllowList
	orig         SceneLightFunc
	parentOffset uintptr
	cells        FlagCells
}

// NewShim builds a shim over the given allow-list. parentOffset is the byte
// offset of the owning-entity pointer inside the light entity structure.
// The original function is back-filled with SetOriginal once the hook is
// installed, mirroring how a detour library hands out the trampoline.
func NewShim(allowed *AllowList, parentOffset uintptr, cells FlagCells) *Shim {
	return &Shim{
		allowed:      allowed,
		parentOffset: parentOffset,
		cells:        cells,
	}
}

// SetOriginal stores the pass-through target. Must be called before the
// first AddSceneLight invocation.
func (s *Shim) SetOriginal(orig SceneLightFunc) {
	s.orig = orig
}

// AddSceneLight is the hook body. It derives the owning entity from the
// light entity and, when that entity is allow-listed, clears both flag cells
// around the call to the original so this one light is processed as if no
// blackout were active. The cells are global and read by unrelated host code
// within the same frame, so the override must not outlive the call.
func (s *Shim) AddSceneLight(sceneLight, lightEntity unsafe.Pointer, addToPrevious bool) bool {
	owner := s.ownerIdentity(lightEntity)

	override := false
	if owner != NullIdentity {
		override = s.allowed.Contains(owner) && s.cells.Resolved()
	}

	var prevArtificial, prevVehicle bool
	if override {
		prevArtificial = *s.cells.Artificial
		prevVehicle = *s.cells.Vehicle
		*s.cells.Artificial = false
		*s.cells.Vehicle = false
	}

	result := s.orig(sceneLight, lightEntity, addToPrevious)

	if override {
		*s.cells.Artificial = prevArtificial
		*s.cells.Vehicle = prevVehicle
	}

	return result
}

// ownerIdentity reads the owning-entity pointer at the configured offset
// inside the light entity. The layout belongs to the host; nothing past this
// single read dereferences the result.
func (s *Shim) ownerIdentity(lightEntity unsafe.Pointer) Identity {
	if lightEntity == nil {
		return NullIdentity
	}
	return Identity(*(*uintptr)(unsafe.Add(lightEntity, s.parentOffset)))
}
