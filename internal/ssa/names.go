package ssa

import (
	"strconv"
	"strings"

	"github.com/funvibe/funssa/internal/ast"
	"github.com/funvibe/funssa/internal/symbols"
)

const (
	autoNameHint   = "__auto_name_"
	autoPrefixHint = "__auto_prefix_"
)

func usedNames(tree ast.Node, env symbols.Environment) map[string]bool {
	names := ast.UsedNames(tree)
	if env != nil {
		for _, k := range env.Keys() {
			names[k] = true
		}
	}
	return names
}

// IsFreeName reports whether name appears neither in tree nor in env.
func IsFreeName(tree ast.Node, env symbols.Environment, name string) bool {
	return !usedNames(tree, env)[name]
}

// IsFreePrefix reports whether no name in tree or env starts with prefix.
func IsFreePrefix(tree ast.Node, env symbols.Environment, prefix string) bool {
	return checkPrefix(prefix, usedNames(tree, env))
}

func checkPrefix(prefix string, names map[string]bool) bool {
	for name := range names {
		if strings.HasPrefix(name, prefix) {
			return false
		}
	}
	return true
}

// FreeName returns hint when it is free in tree and env, otherwise the first
// free name among hint0, hint1, ... An empty hint means "__auto_name_".
func FreeName(tree ast.Node, env symbols.Environment, hint string) string {
	names := usedNames(tree, env)
	if hint != "" && !names[hint] {
		return hint
	}
	if hint == "" {
		hint = autoNameHint
	}
	for c := 0; ; c++ {
		name := hint + strconv.Itoa(c)
		if !names[name] {
			return name
		}
	}
}

// FreePrefix is FreeName for prefixes: the result is a string no name in
// tree or env starts with, so every name derived from it is free too.
func FreePrefix(tree ast.Node, env symbols.Environment, hint string) string {
	names := usedNames(tree, env)
	if hint != "" && checkPrefix(hint, names) {
		return hint
	}
	if hint == "" {
		hint = autoPrefixHint
	}
	for c := 0; ; c++ {
		prefix := hint + strconv.Itoa(c)
		if checkPrefix(prefix, names) {
			return prefix
		}
	}
}

// allocator hands out base0, base1, ... per base name for one invocation.
// A candidate is skipped when the tree or environment uses it or when it
// was already issued under another base (a+"10" and a1+"0" are both "a10").
type allocator struct {
	taken    map[string]bool
	counters map[string]int
}

func newAllocator(tree ast.Node, env symbols.Environment) *allocator {
	return &allocator{
		taken:    usedNames(tree, env),
		counters: make(map[string]int),
	}
}

func (a *allocator) fresh(base string) string {
	for {
		name := base + strconv.Itoa(a.counters[base])
		a.counters[base]++
		if !a.taken[name] {
			a.taken[name] = true
			return name
		}
	}
}
