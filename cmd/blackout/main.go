package main

import (
	"flag"
	"log"

	"github.com/hajimehoshi/ebiten/v2"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/jxnnyo/blackout/bootstrap"
	"github.com/jxnnyo/blackout/config"
	"github.com/jxnnyo/blackout/host"
	"github.com/jxnnyo/blackout/script"
)

func main() {
	configPath := flag.String("config", "blackout.yaml", "path to config file")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Fatal(err)
	}

	logger, err := newLogger(cfg.LogLevel)
	if err != nil {
		log.Fatal(err)
	}
	defer func() { _ = logger.Sync() }()
	sugar := logger.Sugar()

	world := newDemoWorld(float64(cfg.Window.Width), float64(cfg.Window.Height))

	renderer := host.NewRenderer()
	renderer.DisableArtificialLights = cfg.BlackoutAtStart
	renderer.DisableArtificialVehLights = cfg.BlackoutAtStart

	session := &host.SessionSignal{}

	offset := host.ParentEntityOffset
	if cfg.LightParentOffset != 0 {
		offset = uintptr(cfg.LightParentOffset)
	}

	core := bootstrap.Install(
		host.DirectResolver{Renderer: renderer},
		bootstrap.GuidResolver{Registry: world.registry},
		session,
		offset,
		sugar,
	)

	scripts := script.NewRuntime(cfg.ScriptDir, core.Registry, world, sugar)
	if err := scripts.RunAll(); err != nil {
		sugar.Warnw("script startup", "error", err)
	}
	if err := scripts.Watch(); err != nil {
		sugar.Warnw("script watch unavailable", "error", err)
	}
	defer func() { _ = scripts.Close() }()

	ebiten.SetWindowSize(cfg.Window.Width, cfg.Window.Height)
	ebiten.SetWindowTitle("blackout")

	game := NewGame(cfg, world, renderer, session, core, sugar)
	if err := ebiten.RunGame(game); err != nil {
		sugar.Fatalw("game exited", "error", err)
	}
}

func newLogger(level string) (*zap.Logger, error) {
	cfg := zap.NewDevelopmentConfig()
	if lvl, err := zapcore.ParseLevel(level); err == nil {
		cfg.Level = zap.NewAtomicLevelAt(lvl)
	}
	return cfg.Build()
}
