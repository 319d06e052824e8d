package host

import "unsafe"

// LightEntity mirrors the renderer's per-light record. The owning-entity
// reference sits at a fixed byte offset inside the structure; the padding
// stands in for renderer fields this module never touches. Hook code derives
// the owner by reading that offset raw rather than through the accessor,
// because in the real host the layout is all it has.
type LightEntity struct {
	_      [0xD0]byte
	parent *Entity

	Radius    float64
	Intensity float64
}

// ParentEntityOffset is where the owning-entity pointer lives inside a
// LightEntity.
const ParentEntityOffset = unsafe.Offsetof(LightEntity{}.parent)

// NewLightEntity creates a light record owned by parent.
func NewLightEntity(parent *Entity, radius, intensity float64) *LightEntity {
	return &LightEntity{parent: parent, Radius: radius, Intensity: intensity}
}

// Parent returns the owning entity, or nil for an orphaned light.
func (le *LightEntity) Parent() *Entity {
	if le == nil {
		return nil
	}
	return le.parent
}
