package evaluator

import (
	"sort"
	"sync"
)

func NewEnvironment() *Environment {
	return &Environment{store: make(map[string]Object)}
}

func NewEnclosedEnvironment(outer *Environment) *Environment {
	env := NewEnvironment()
	env.outer = outer
	return env
}

// newFunctionEnvironment makes the scope of one call. Names in locals never
// resolve to the outer scope.
func newFunctionEnvironment(outer *Environment, locals map[string]bool) *Environment {
	env := NewEnclosedEnvironment(outer)
	env.locals = locals
	return env
}

type Environment struct {
	mu     sync.RWMutex
	store  map[string]Object
	outer  *Environment
	locals map[string]bool
}

// Get resolves name innermost first. A local that has not been assigned yet
// is reported missing even when an outer scope has the name.
func (e *Environment) Get(name string) (Object, bool) {
	e.mu.RLock()
	obj, ok := e.store[name]
	local := e.locals[name]
	e.mu.RUnlock()
	if !ok && !local && e.outer != nil {
		obj, ok = e.outer.Get(name)
	}
	return obj, ok
}

func (e *Environment) Set(name string, val Object) Object {
	e.mu.Lock()
	e.store[name] = val
	e.mu.Unlock()
	return val
}

// Contains reports whether name is bound in this scope or any outer one.
func (e *Environment) Contains(name string) bool {
	_, ok := e.Get(name)
	return ok
}

// Keys lists every name visible from this scope, sorted.
func (e *Environment) Keys() []string {
	seen := make(map[string]bool)
	for env := e; env != nil; env = env.outer {
		env.mu.RLock()
		for k := range env.store {
			seen[k] = true
		}
		env.mu.RUnlock()
	}
	keys := make([]string, 0, len(seen))
	for k := range seen {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// GetStore returns a copy of this scope's own bindings.
func (e *Environment) GetStore() map[string]Object {
	e.mu.RLock()
	defer e.mu.RUnlock()
	copy := make(map[string]Object, len(e.store))
	for k, v := range e.store {
		copy[k] = v
	}
	return copy
}

// Snapshot flattens every visible binding into a plain map, inner scopes winning.
func (e *Environment) Snapshot() map[string]interface{} {
	out := make(map[string]interface{})
	var chain []*Environment
	for env := e; env != nil; env = env.outer {
		chain = append(chain, env)
	}
	for i := len(chain) - 1; i >= 0; i-- {
		for k, v := range chain[i].GetStore() {
			out[k] = v
		}
	}
	return out
}
