package object

import "log/slog"

// Environment is one lexical scope: a name→value frame plus a link to the
// enclosing frame. A frame stays alive as long as anything points at it,
// either the interpreter's current-environment pointer or a closure that
// captured it, which is what keeps a closure's defining scope usable
// after the defining call returns. Parent links only ever point outward
// to pre-existing frames, so the chain cannot form a cycle.
type Environment struct {
	store map[string]Object
	outer *Environment
}

func NewEnvironment() *Environment {
	return &Environment{store: make(map[string]Object)}
}

// NewEnclosedEnvironment creates a frame whose parent is outer.
func NewEnclosedEnvironment(outer *Environment) *Environment {
	env := NewEnvironment()
	env.outer = outer
	return env
}

// Define inserts or overwrites name in this frame only.
func (e *Environment) Define(name string, val Object) {
	slog.Debug("binding value", slog.String("name", name), slog.String("type", string(val.Type())))
	e.store[name] = val
}

// Get walks from this frame outward and returns the first binding.
func (e *Environment) Get(name string) (Object, bool) {
	if val, ok := e.store[name]; ok {
		return val, true
	}
	if e.outer != nil {
		return e.outer.Get(name)
	}
	return nil, false
}

// Assign walks from this frame outward and mutates the first frame that
// holds name. It reports whether the name was found anywhere; the caller
// turns false into an undefined-variable error.
func (e *Environment) Assign(name string, val Object) bool {
	if _, ok := e.store[name]; ok {
		e.store[name] = val
		return true
	}
	if e.outer != nil {
		return e.outer.Assign(name, val)
	}
	return false
}

// GetAt reads name from the frame exactly depth parent links away. The
// resolver guarantees the frame exists and holds the name.
func (e *Environment) GetAt(name string, depth int) (Object, bool) {
	env := e.ancestor(depth)
	if env == nil {
		return nil, false
	}
	val, ok := env.store[name]
	return val, ok
}

// AssignAt mutates name in the frame exactly depth parent links away.
func (e *Environment) AssignAt(name string, val Object, depth int) bool {
	env := e.ancestor(depth)
	if env == nil {
		return false
	}
	if _, ok := env.store[name]; !ok {
		return false
	}
	env.store[name] = val
	return true
}

func (e *Environment) ancestor(depth int) *Environment {
	env := e
	for i := 0; i < depth; i++ {
		if env.outer == nil {
			return nil
		}
		env = env.outer
	}
	return env
}
