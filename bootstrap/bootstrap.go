// Package bootstrap wires the per-entity lights override into a host at
// startup: it resolves the renderer internals, installs the AddSceneLight
// shim, and registers the script natives. Resolution failures degrade the
// feature instead of failing startup.
package bootstrap

import (
	"go.uber.org/zap"

	"github.com/jxnnyo/blackout/host"
	"github.com/jxnnyo/blackout/lights"
	"github.com/jxnnyo/blackout/natives"
)

// Core is the installed override feature. Shim is nil when the hook target
// could not be resolved, in which case no override ever applies but the
// natives keep servicing the allow-list.
type Core struct {
	Allowed    *lights.AllowList
	Shim       *lights.Shim
	Controller *natives.Controller
	Registry   *natives.Registry
}

// Install resolves the renderer through res, installs the shim, and
// registers the natives against resolver. parentOffset is the byte offset of
// the owning-entity pointer inside the host's light entity record. session
// may be nil when the host has no session lifecycle.
func Install(res host.Resolver, resolver natives.EntityResolver, session *host.SessionSignal, parentOffset uintptr, log *zap.SugaredLogger) *Core {
	allowed := lights.NewAllowList()

	cells := lights.FlagCells{}
	artificial, vehicle, err := res.BlackoutCells()
	if err != nil {
		// Fail open: the shim becomes a pure pass-through.
		log.Warnw("blackout cells not resolved, override disabled", "error", err)
	} else {
		cells.Artificial = artificial
		cells.Vehicle = vehicle
	}

	var shim *lights.Shim
	renderer, err := res.HookTarget()
	if err != nil {
		log.Warnw("AddSceneLight not resolved, hook not installed", "error", err)
	} else {
		shim = lights.NewShim(allowed, parentOffset, cells)
		orig := renderer.InstallAddSceneLightHook(shim.AddSceneLight)
		shim.SetOriginal(lights.SceneLightFunc(orig))
		log.Infow("AddSceneLight hook installed", "parent_offset", parentOffset, "cells_resolved", cells.Resolved())
	}

	controller := natives.NewController(allowed, resolver)
	registry := natives.NewRegistry()
	controller.Register(registry)

	if session != nil {
		session.Connect(controller.ClearAll)
	}

	return &Core{
		Allowed:    allowed,
		Shim:       shim,
		Controller: controller,
		Registry:   registry,
	}
}
