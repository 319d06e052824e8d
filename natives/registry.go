package natives

import "sync"

// Context carries one native invocation's arguments and result slot, the
// shape script frontends marshal through.
type Context struct {
	args   []any
	result any
}

// NewContext builds an invocation context over the given arguments.
func NewContext(args ...any) *Context {
	return &Context{args: args}
}

// IntArgument returns argument i as an int, or 0 when absent or of another
// type. Native handlers never reject malformed arguments; they fall back to
// the zero value.
func (c *Context) IntArgument(i int) int {
	if c == nil || i < 0 || i >= len(c.args) {
		return 0
	}
	switch v := c.args[i].(type) {
	case int:
		return v
	case int64:
		return int(v)
	case float64:
		return int(v)
	}
	return 0
}

// BoolArgument returns argument i as a bool, defaulting to false.
func (c *Context) BoolArgument(i int) bool {
	if c == nil || i < 0 || i >= len(c.args) {
		return false
	}
	v, _ := c.args[i].(bool)
	return v
}

// SetResult stores the handler's result.
func (c *Context) SetResult(v any) {
	if c == nil {
		return
	}
	c.result = v
}

// Result returns the stored result, or nil.
func (c *Context) Result() any {
	if c == nil {
		return nil
	}
	return c.result
}

// Handler services one named native call.
type Handler func(ctx *Context)

// Registry is the dispatch table script frontends route native calls
// through. Handlers are registered at startup and looked up on every call.
type Registry struct {
	mu       sync.RWMutex
	handlers map[string]Handler
}

// NewRegistry creates an empty dispatch table.
func NewRegistry() *Registry {
	return &Registry{handlers: make(map[string]Handler)}
}

// RegisterHandler binds a handler to a native name, replacing any previous
// binding.
func (r *Registry) RegisterHandler(name string, h Handler) {
	if name == "" || h == nil {
		return
	}
	r.mu.Lock()
	r.handlers[name] = h
	r.mu.Unlock()
}

// Call dispatches a native by name. The second return is false when no
// handler is bound; an unknown native is not an error, it just does nothing.
func (r *Registry) Call(name string, args ...any) (any, bool) {
	r.mu.RLock()
	h, ok := r.handlers[name]
	r.mu.RUnlock()
	if !ok {
		return nil, false
	}
	ctx := NewContext(args...)
	h(ctx)
	return ctx.Result(), true
}
