package natives

import "github.com/jxnnyo/blackout/lights"

// Native names exposed to scripts.
const (
	NativeSetIgnoreState = "SET_ENTITY_LIGHTS_IGNORE_ARTIFICIAL_STATE"
	NativeGetIgnoreState = "DOES_ENTITY_LIGHTS_IGNORE_ARTIFICIAL_STATE"
	NativeClearAll       = "CLEAR_ALL_ENTITY_LIGHTS_IGNORE_ARTIFICIAL_STATE"
	NativeGetAll         = "GET_ALL_ENTITIES_IGNORING_ARTIFICIAL_LIGHTS_STATE"
)

// EntityResolver translates script guids to entity identities and back. A
// zero return in either direction means stale or unknown; the controller
// treats that as "no matching live entity", never as an error.
type EntityResolver interface {
	BaseFromGuid(guid int) lights.Identity
	GuidFromBase(id lights.Identity) int
}

// Controller implements the per-entity lights-ignore natives over an
// allow-list and the host's guid resolver. Every operation is total: stale
// or invalid guids degrade to a safe default.
type Controller struct {
	allowed  *lights.AllowList
	resolver EntityResolver
}

// NewController wires a controller to its allow-list and resolver.
func NewController(allowed *lights.AllowList, resolver EntityResolver) *Controller {
	return &Controller{allowed: allowed, resolver: resolver}
}

// SetIgnoreState marks or unmarks the entity behind guid. Unresolvable
// guids are a no-op.
func (c *Controller) SetIgnoreState(guid int, ignore bool) {
	id := c.resolver.BaseFromGuid(guid)
	if id == lights.NullIdentity {
		return
	}
	if ignore {
		c.allowed.Add(id)
	} else {
		c.allowed.Remove(id)
	}
}

// GetIgnoreState reports whether the entity behind guid is marked.
// Unresolvable guids report false.
func (c *Controller) GetIgnoreState(guid int) bool {
	id := c.resolver.BaseFromGuid(guid)
	if id == lights.NullIdentity {
		return false
	}
	return c.allowed.Contains(id)
}

// ClearAll empties the allow-list. Also serves as the session-teardown
// handler; firing it repeatedly is harmless.
func (c *Controller) ClearAll() {
	c.allowed.Clear()
}

// GetAll returns the guids of every marked entity that still resolves.
// Identities whose object is gone have no guid anymore and are silently
// dropped.
func (c *Controller) GetAll() []int {
	ids := c.allowed.Snapshot()
	out := make([]int, 0, len(ids))
	for _, id := range ids {
		if guid := c.resolver.GuidFromBase(id); guid != 0 {
			out = append(out, guid)
		}
	}
	return out
}

// Register binds the four natives into a dispatch table.
func (c *Controller) Register(reg *Registry) {
	reg.RegisterHandler(NativeSetIgnoreState, func(ctx *Context) {
		c.SetIgnoreState(ctx.IntArgument(0), ctx.BoolArgument(1))
	})
	reg.RegisterHandler(NativeGetIgnoreState, func(ctx *Context) {
		ctx.SetResult(c.GetIgnoreState(ctx.IntArgument(0)))
	})
	reg.RegisterHandler(NativeClearAll, func(ctx *Context) {
		c.ClearAll()
	})
	reg.RegisterHandler(NativeGetAll, func(ctx *Context) {
		ctx.SetResult(c.GetAll())
	})
}
