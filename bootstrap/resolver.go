package bootstrap

import (
	"github.com/jxnnyo/blackout/host"
	"github.com/jxnnyo/blackout/lights"
)

// GuidResolver adapts a host guid registry to the natives' resolver
// interface.
type GuidResolver struct {
	Registry *host.GuidRegistry
}

func (g GuidResolver) BaseFromGuid(guid int) lights.Identity {
	if g.Registry == nil {
		return lights.NullIdentity
	}
	return lights.Identity(g.Registry.BaseFromGuid(guid))
}

func (g GuidResolver) GuidFromBase(id lights.Identity) int {
	if g.Registry == nil {
		return 0
	}
	return g.Registry.GuidFromBase(uintptr(id))
}
