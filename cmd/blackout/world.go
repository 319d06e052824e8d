package main

import (
	"image/color"

	"github.com/jakecoffman/cp"

	"github.com/jxnnyo/blackout/host"
)

// worldEntity ties a host entity to its guid and light records for the demo.
type worldEntity struct {
	entity *host.Entity
	guid   int
	lights []*host.LightEntity
	tint   color.NRGBA
}

// demoWorld is the simulated host world: a handful of light-owning entities
// drifting around a walled Chipmunk space.
type demoWorld struct {
	space    *cp.Space
	registry *host.GuidRegistry
	entities []*worldEntity
}

func newDemoWorld(width, height float64) *demoWorld {
	space := cp.NewSpace()
	space.Iterations = 10

	walls := [][2]cp.Vector{
		{{X: 0, Y: 0}, {X: width, Y: 0}},
		{{X: width, Y: 0}, {X: width, Y: height}},
		{{X: width, Y: height}, {X: 0, Y: height}},
		{{X: 0, Y: height}, {X: 0, Y: 0}},
	}
	for _, w := range walls {
		seg := space.AddShape(cp.NewSegment(space.StaticBody, w[0], w[1], 4))
		seg.SetElasticity(1)
		seg.SetFriction(0)
	}

	dw := &demoWorld{
		space:    space,
		registry: host.NewGuidRegistry(),
	}

	dw.spawn("patrol_car", true, width*0.25, height*0.4, 90, 40, color.NRGBA{R: 0x4a, G: 0x7a, B: 0xd0, A: 0xff})
	dw.spawn("taxi", true, width*0.7, height*0.6, -70, 55, color.NRGBA{R: 0xd0, G: 0xb0, B: 0x2a, A: 0xff})
	dw.spawn("streetlamp", false, width*0.5, height*0.25, 30, -45, color.NRGBA{R: 0x9a, G: 0x9a, B: 0x9a, A: 0xff})
	dw.spawn("neon_sign", false, width*0.35, height*0.75, -50, -30, color.NRGBA{R: 0xc0, G: 0x3a, B: 0x8a, A: 0xff})
	dw.spawn("helicopter", true, width*0.8, height*0.2, -85, 60, color.NRGBA{R: 0x3a, G: 0xc0, B: 0x7a, A: 0xff})

	return dw
}

func (dw *demoWorld) spawn(name string, vehicle bool, x, y, vx, vy float64, tint color.NRGBA) *worldEntity {
	const (
		mass   = 1.0
		radius = 14.0
	)

	body := dw.space.AddBody(cp.NewBody(mass, cp.MomentForCircle(mass, 0, radius, cp.Vector{})))
	body.SetPosition(cp.Vector{X: x, Y: y})
	body.SetVelocity(vx, vy)

	shape := dw.space.AddShape(cp.NewCircle(body, radius, cp.Vector{}))
	shape.SetElasticity(1)
	shape.SetFriction(0)

	e := &host.Entity{Name: name, Vehicle: vehicle, Body: body}
	we := &worldEntity{
		entity: e,
		guid:   dw.registry.Register(e),
		tint:   tint,
	}
	we.lights = append(we.lights, host.NewLightEntity(e, 60, 1))
	if vehicle {
		// Headlight pair collapses to a second, tighter light in 2D.
		we.lights = append(we.lights, host.NewLightEntity(e, 30, 1.5))
	}
	dw.entities = append(dw.entities, we)
	return we
}

func (dw *demoWorld) step(dt float64) {
	dw.space.Step(dt)
}

// EntityGuids implements script.World.
func (dw *demoWorld) EntityGuids() []int {
	out := make([]int, 0, len(dw.entities))
	for _, we := range dw.entities {
		out = append(out, we.guid)
	}
	return out
}

// EntityName implements script.World.
func (dw *demoWorld) EntityName(guid int) string {
	e := dw.registry.EntityFromGuid(guid)
	if e == nil {
		return ""
	}
	return e.Name
}
