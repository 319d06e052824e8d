// Package script runs user tengo scripts against the lights-ignore natives.
// Scripts are the demo's stand-in for the host's scripting engine: every
// native call goes through the same dispatch table the host would use.
package script

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"

	"github.com/d5/tengo/v2"
	"github.com/d5/tengo/v2/stdlib"
	"go.uber.org/zap"

	"github.com/jxnnyo/blackout/natives"
)

// World is what scripts can see of the demo world.
type World interface {
	// EntityGuids returns the guids of every live entity.
	EntityGuids() []int
	// EntityName returns a display name for a guid, or "" when stale.
	EntityName(guid int) string
}

// Runtime loads every .tengo file in a directory, runs each once, and reruns
// a script whenever its file changes. Scripts run on the runtime's own
// goroutine, never on the render path.
type Runtime struct {
	log   *zap.SugaredLogger
	reg   *natives.Registry
	world World
	dir   string

	mu      sync.Mutex
	watcher *Watcher
	done    chan struct{}
}

// NewRuntime creates a runtime over the given script directory.
func NewRuntime(dir string, reg *natives.Registry, world World, log *zap.SugaredLogger) *Runtime {
	return &Runtime{
		log:   log,
		reg:   reg,
		world: world,
		dir:   dir,
	}
}

// RunAll compiles and runs every script in the directory, in name order. A
// script that fails to compile or run is logged and skipped; one bad script
// never blocks the rest.
func (r *Runtime) RunAll() error {
	paths, err := filepath.Glob(filepath.Join(r.dir, "*.tengo"))
	if err != nil {
		return fmt.Errorf("script: glob %s: %w", r.dir, err)
	}
	sort.Strings(paths)
	for _, path := range paths {
		if err := r.runFile(path); err != nil {
			r.log.Warnw("script failed", "path", path, "error", err)
		}
	}
	return nil
}

// Watch starts rerunning scripts on file changes. Close stops it.
func (r *Runtime) Watch() error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.watcher != nil {
		return nil
	}
	w, err := NewWatcher(r.dir)
	if err != nil {
		return fmt.Errorf("script: watch %s: %w", r.dir, err)
	}
	r.watcher = w
	r.done = make(chan struct{})
	go r.watchLoop(w, r.done)
	return nil
}

// Close stops the watcher, if running.
func (r *Runtime) Close() error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.watcher == nil {
		return nil
	}
	err := r.watcher.Close()
	<-r.done
	r.watcher = nil
	return err
}

func (r *Runtime) watchLoop(w *Watcher, done chan struct{}) {
	defer close(done)
	for {
		select {
		case path, ok := <-w.Events:
			if !ok {
				return
			}
			if _, err := os.Stat(path); err != nil {
				continue // removed
			}
			r.log.Infow("script changed, rerunning", "path", path)
			if err := r.runFile(path); err != nil {
				r.log.Warnw("script failed", "path", path, "error", err)
			}
		case err, ok := <-w.Errors:
			if !ok {
				return
			}
			r.log.Warnw("script watcher error", "error", err)
		}
	}
}

func (r *Runtime) runFile(path string) error {
	src, err := os.ReadFile(path)
	if err != nil {
		return err
	}
	return r.Run(filepath.Base(path), string(src))
}

// Run compiles and executes one script body. Exported for tests and for
// console-style one-offs.
func (r *Runtime) Run(name, src string) error {
	s := tengo.NewScript([]byte(src))
	s.SetImports(stdlib.GetModuleMap(stdlib.AllModuleNames()...))
	if err := s.Add("natives", r.nativesMap()); err != nil {
		return err
	}
	if err := s.Add("world", r.worldMap()); err != nil {
		return err
	}
	if _, err := s.Run(); err != nil {
		return fmt.Errorf("run %s: %w", name, err)
	}
	return nil
}

// nativesMap exposes the four lights-ignore natives under snake_case names.
// Every call routes through the dispatch table so scripts and Go callers
// share one code path.
func (r *Runtime) nativesMap() *tengo.ImmutableMap {
	values := map[string]tengo.Object{}

	values["set_entity_lights_ignore_artificial_state"] = &tengo.UserFunction{
		Name: "set_entity_lights_ignore_artificial_state",
		Value: func(args ...tengo.Object) (tengo.Object, error) {
			if len(args) < 2 {
				return tengo.UndefinedValue, nil
			}
			r.reg.Call(natives.NativeSetIgnoreState, objectAsInt(args[0]), objectAsBool(args[1]))
			return tengo.UndefinedValue, nil
		},
	}

	values["does_entity_lights_ignore_artificial_state"] = &tengo.UserFunction{
		Name: "does_entity_lights_ignore_artificial_state",
		Value: func(args ...tengo.Object) (tengo.Object, error) {
			if len(args) < 1 {
				return tengo.FalseValue, nil
			}
			res, _ := r.reg.Call(natives.NativeGetIgnoreState, objectAsInt(args[0]))
			if b, ok := res.(bool); ok && b {
				return tengo.TrueValue, nil
			}
			return tengo.FalseValue, nil
		},
	}

	values["clear_all_entity_lights_ignore_artificial_state"] = &tengo.UserFunction{
		Name: "clear_all_entity_lights_ignore_artificial_state",
		Value: func(args ...tengo.Object) (tengo.Object, error) {
			r.reg.Call(natives.NativeClearAll)
			return tengo.UndefinedValue, nil
		},
	}

	values["get_all_entities_ignoring_artificial_lights_state"] = &tengo.UserFunction{
		Name: "get_all_entities_ignoring_artificial_lights_state",
		Value: func(args ...tengo.Object) (tengo.Object, error) {
			res, _ := r.reg.Call(natives.NativeGetAll)
			guids, _ := res.([]int)
			out := make([]tengo.Object, 0, len(guids))
			for _, guid := range guids {
				out = append(out, &tengo.Int{Value: int64(guid)})
			}
			return &tengo.Array{Value: out}, nil
		},
	}

	return &tengo.ImmutableMap{Value: values}
}

func (r *Runtime) worldMap() *tengo.ImmutableMap {
	values := map[string]tengo.Object{}

	values["entity_guids"] = &tengo.UserFunction{
		Name: "entity_guids",
		Value: func(args ...tengo.Object) (tengo.Object, error) {
			if r.world == nil {
				return &tengo.Array{}, nil
			}
			guids := r.world.EntityGuids()
			out := make([]tengo.Object, 0, len(guids))
			for _, guid := range guids {
				out = append(out, &tengo.Int{Value: int64(guid)})
			}
			return &tengo.Array{Value: out}, nil
		},
	}

	values["entity_name"] = &tengo.UserFunction{
		Name: "entity_name",
		Value: func(args ...tengo.Object) (tengo.Object, error) {
			if r.world == nil || len(args) < 1 {
				return &tengo.String{Value: ""}, nil
			}
			return &tengo.String{Value: r.world.EntityName(objectAsInt(args[0]))}, nil
		},
	}

	return &tengo.ImmutableMap{Value: values}
}

func objectAsInt(obj tengo.Object) int {
	switch v := obj.(type) {
	case *tengo.Int:
		return int(v.Value)
	case *tengo.Float:
		return int(v.Value)
	default:
		return 0
	}
}

func objectAsBool(obj tengo.Object) bool {
	if obj == nil {
		return false
	}
	if _, ok := obj.(*tengo.Bool); ok {
		return !obj.IsFalsy()
	}
	if s, ok := obj.(*tengo.String); ok {
		return strings.EqualFold(s.Value, "true")
	}
	return !obj.IsFalsy()
}
