package host

import "github.com/jakecoffman/cp"

// Entity is a host-managed game object that may own light sources. Scripts
// never see an *Entity directly; they hold guids issued by a GuidRegistry.
type Entity struct {
	Name    string
	Vehicle bool
	Body    *cp.Body
}

// Position returns the entity's world position, or the origin when it has no
// physics body.
func (e *Entity) Position() (x, y float64) {
	if e == nil || e.Body == nil {
		return 0, 0
	}
	p := e.Body.Position()
	return p.X, p.Y
}
