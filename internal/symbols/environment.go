package symbols

import (
	"sort"
)

// Environment is the read-only view of names that are meaningful outside the
// tree being rewritten. The SSA pass only asks membership questions and lists
// keys for collision avoidance.
type Environment interface {
	Contains(name string) bool
	Keys() []string
}

// SymbolTable is an immutable Environment made of a locals layer over a
// globals layer. Locals shadow globals on lookup.
type SymbolTable struct {
	locals  map[string]interface{}
	globals map[string]interface{}
	keys    []string
}

// NewSymbolTable copies both maps, so later changes by the caller are not seen.
func NewSymbolTable(locals, globals map[string]interface{}) *SymbolTable {
	st := &SymbolTable{
		locals:  copyMap(locals),
		globals: copyMap(globals),
	}
	seen := make(map[string]bool, len(st.locals)+len(st.globals))
	for k := range st.locals {
		seen[k] = true
	}
	for k := range st.globals {
		seen[k] = true
	}
	st.keys = make([]string, 0, len(seen))
	for k := range seen {
		st.keys = append(st.keys, k)
	}
	sort.Strings(st.keys)
	return st
}

// FromNames builds a table whose globals are the given names with nil values.
func FromNames(names ...string) *SymbolTable {
	globals := make(map[string]interface{}, len(names))
	for _, n := range names {
		globals[n] = nil
	}
	return NewSymbolTable(nil, globals)
}

// Empty is an environment with no names.
var Empty Environment = NewSymbolTable(nil, nil)

func (st *SymbolTable) Contains(name string) bool {
	if _, ok := st.locals[name]; ok {
		return true
	}
	_, ok := st.globals[name]
	return ok
}

func (st *SymbolTable) Lookup(name string) (interface{}, bool) {
	if v, ok := st.locals[name]; ok {
		return v, true
	}
	v, ok := st.globals[name]
	return v, ok
}

// Keys returns every visible name, sorted, so callers iterate deterministically.
func (st *SymbolTable) Keys() []string {
	out := make([]string, len(st.keys))
	copy(out, st.keys)
	return out
}

func (st *SymbolTable) Len() int { return len(st.keys) }

func copyMap(m map[string]interface{}) map[string]interface{} {
	out := make(map[string]interface{}, len(m))
	for k, v := range m {
		out[k] = v
	}
	return out
}
