package host

import "errors"

// Resolver stands in for the byte-pattern scan that locates renderer
// internals inside a shipped host binary. Each method either yields an
// address that stays stable for the process lifetime or fails; callers are
// expected to degrade rather than crash on failure.
type Resolver interface {
	// HookTarget locates the renderer owning the AddSceneLight entry point.
	HookTarget() (*Renderer, error)
	// BlackoutCells locates the two artificial-light kill-switch cells.
	BlackoutCells() (artificial, vehicle *bool, err error)
}

// ErrNotResolved is returned when a resolver cannot locate its target.
var ErrNotResolved = errors.New("host: address not resolved")

// DirectResolver resolves against an in-process renderer, for builds where
// the "host" lives in the same binary.
type DirectResolver struct {
	Renderer *Renderer
}

func (d DirectResolver) HookTarget() (*Renderer, error) {
	if d.Renderer == nil {
		return nil, ErrNotResolved
	}
	return d.Renderer, nil
}

func (d DirectResolver) BlackoutCells() (*bool, *bool, error) {
	if d.Renderer == nil {
		return nil, nil, ErrNotResolved
	}
	return &d.Renderer.DisableArtificialLights, &d.Renderer.DisableArtificialVehLights, nil
}
