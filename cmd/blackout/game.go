package main

import (
	"fmt"
	"image/color"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	ebtext "github.com/hajimehoshi/ebiten/v2/text/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"
	"go.uber.org/zap"
	"golang.org/x/image/font/basicfont"

	"github.com/jxnnyo/blackout/bootstrap"
	"github.com/jxnnyo/blackout/config"
	"github.com/jxnnyo/blackout/host"
	"github.com/jxnnyo/blackout/natives"
)

const stepDT = 1.0 / 60.0

// Game drives the simulated host: physics step, per-light AddSceneLight
// calls through the installed hook, and a HUD showing the override state.
type Game struct {
	cfg config.Config
	log *zap.SugaredLogger

	world    *demoWorld
	renderer *host.Renderer
	session  *host.SessionSignal
	core     *bootstrap.Core

	blackout bool
	frames   int
	face     ebtext.Face
}

func NewGame(cfg config.Config, world *demoWorld, renderer *host.Renderer, session *host.SessionSignal, core *bootstrap.Core, log *zap.SugaredLogger) *Game {
	return &Game{
		cfg:      cfg,
		log:      log,
		world:    world,
		renderer: renderer,
		session:  session,
		core:     core,
		blackout: cfg.BlackoutAtStart,
		face:     ebtext.NewGoXFace(basicfont.Face7x13),
	}
}

func (g *Game) Update() error {
	g.frames++
	g.handleInput()

	g.world.step(stepDT)

	// The host's light pass: one AddSceneLight per light entity, routed
	// through whatever entry point is installed.
	g.renderer.BeginFrame()
	for _, we := range g.world.entities {
		x, y := we.entity.Position()
		for _, le := range we.lights {
			src := &host.SceneLight{X: x, Y: y, Radius: le.Radius, Intensity: le.Intensity}
			g.renderer.AddSceneLight(src, le, false)
		}
	}

	return nil
}

func (g *Game) handleInput() {
	if inpututil.IsKeyJustPressed(ebiten.KeyB) {
		g.blackout = !g.blackout
		g.renderer.DisableArtificialLights = g.blackout
		g.renderer.DisableArtificialVehLights = g.blackout
		g.log.Infow("blackout toggled", "enabled", g.blackout)
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyC) {
		g.core.Registry.Call(natives.NativeClearAll)
		g.log.Infow("cleared all lights-ignore entries")
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyK) {
		g.session.Fire()
		g.log.Infow("session end signaled")
	}

	digits := []ebiten.Key{ebiten.Key1, ebiten.Key2, ebiten.Key3, ebiten.Key4, ebiten.Key5, ebiten.Key6, ebiten.Key7, ebiten.Key8, ebiten.Key9}
	for i, key := range digits {
		if i >= len(g.world.entities) {
			break
		}
		if !inpututil.IsKeyJustPressed(key) {
			continue
		}
		guid := g.world.entities[i].guid
		res, _ := g.core.Registry.Call(natives.NativeGetIgnoreState, guid)
		current, _ := res.(bool)
		g.core.Registry.Call(natives.NativeSetIgnoreState, guid, !current)
		g.log.Infow("toggled lights-ignore", "entity", g.world.EntityName(guid), "guid", guid, "ignore", !current)
	}
}

func (g *Game) Draw(screen *ebiten.Image) {
	screen.Fill(color.NRGBA{R: 0x0a, G: 0x0d, B: 0x16, A: 0xff})

	// Accepted scene lights first, so entities draw on top of their glow.
	for _, src := range g.renderer.Lit() {
		glow := color.NRGBA{R: 0xff, G: 0xe9, B: 0xa0, A: 0x30}
		vector.FillCircle(screen, float32(src.X), float32(src.Y), float32(src.Radius), glow, true)
	}

	for _, we := range g.world.entities {
		x, y := we.entity.Position()
		vector.FillCircle(screen, float32(x), float32(y), 14, we.tint, true)
		ebtext.Draw(screen, we.entity.Name, g.face, g.labelOpts(x-28, y+20))
	}

	g.drawHUD(screen)
}

func (g *Game) drawHUD(screen *ebiten.Image) {
	res, _ := g.core.Registry.Call(natives.NativeGetAll)
	exempt, _ := res.([]int)

	state := "off"
	if g.blackout {
		state = "ON"
	}
	hud := fmt.Sprintf(
		"blackout: %s   exempt: %d/%d   fps: %.0f\n[B] blackout  [1-%d] toggle entity  [C] clear  [K] end session",
		state, len(exempt), len(g.world.entities), ebiten.ActualFPS(), len(g.world.entities),
	)
	opts := g.labelOpts(8, 8)
	opts.LineSpacing = 16
	ebtext.Draw(screen, hud, g.face, opts)
}

func (g *Game) labelOpts(x, y float64) *ebtext.DrawOptions {
	opts := &ebtext.DrawOptions{}
	opts.GeoM.Translate(x, y)
	opts.ColorScale.ScaleWithColor(color.NRGBA{R: 0xd8, G: 0xd8, B: 0xd8, A: 0xff})
	return opts
}

func (g *Game) Layout(outsideWidth, outsideHeight int) (int, int) {
	return g.cfg.Window.Width, g.cfg.Window.Height
}
