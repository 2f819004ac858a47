package ssa

import (
	"fmt"
	"testing"

	"gotest.tools/v3/assert"

	"github.com/funvibe/funssa/internal/diagnostics"
)

var templateOptions = []string{"r =", "return"}

const basicTemplate = `
def basic(x):
    if x:
        %s 0
    else:
        %s 2
    %s
`

func TestBasicIf(t *testing.T) {
	for _, a := range templateOptions {
		for _, b := range templateOptions {
			final := "return r"
			if a == "return" && b == "return" {
				final = "pass"
			}
			src := fmt.Sprintf(basicTemplate, a, b, final)
			t.Run(a+"/"+b, func(t *testing.T) {
				p := load(t, src)
				out, err := Convert(p.fn, p.env)
				assert.NilError(t, err)
				checkShape(t, out)
				assertEquivalent(t, p, out, boolArgs(1))
			})
		}
	}
}

const nestedTemplate = `
def nested(x, y):
    if x:
        if y:
            %s 0
        else:
            %s 1
    else:
        if y:
            %s 2
        else:
            %s 3
    %s
`

func TestNested(t *testing.T) {
	for _, a := range templateOptions {
		for _, b := range templateOptions {
			for _, c := range templateOptions {
				for _, d := range templateOptions {
					final := "return r"
					if a == "return" && b == "return" && c == "return" && d == "return" {
						final = "pass"
					}
					src := fmt.Sprintf(nestedTemplate, a, b, c, d, final)
					t.Run(fmt.Sprintf("%s/%s/%s/%s", a, b, c, d), func(t *testing.T) {
						p := load(t, src)
						out, err := Convert(p.fn, p.env)
						assert.NilError(t, err)
						checkShape(t, out)
						assertEquivalent(t, p, out, boolArgs(2))
					})
				}
			}
		}
	}
}

const imbalancedTemplate = `
def imbalanced(x, y):
    %s -1
    if x:
        %s -2
        if y:
            %s 0
    else:
        %s 1
    return r
`

// TestImbalanced checks the prover against execution: conversion must fail
// with an unprovable name exactly when some run of the function reads r
// before it is assigned.
func TestImbalanced(t *testing.T) {
	initOptions := []string{"r =", "0"}
	for _, a := range initOptions {
		for _, b := range initOptions {
			for _, c := range templateOptions {
				for _, d := range templateOptions {
					src := fmt.Sprintf(imbalancedTemplate, a, b, c, d)
					t.Run(fmt.Sprintf("%s/%s/%s/%s", a, b, c, d), func(t *testing.T) {
						p := load(t, src)

						canNameError := false
						for _, args := range boolArgs(2) {
							_, err := p.call(p.fn, args...)
							if err != nil {
								assert.Assert(t, diagnostics.HasCode(err, diagnostics.ErrR002), "unexpected failure: %v", err)
								canNameError = true
							}
						}

						out, err := Convert(p.fn, p.env)
						if canNameError {
							assert.Assert(t, diagnostics.HasCode(err, diagnostics.ErrS003), "expected an unprovable name, got %v", err)
							return
						}
						assert.NilError(t, err)
						checkShape(t, out)
						assertEquivalent(t, p, out, boolArgs(2))
					})
				}
			}
		}
	}
}

func TestNestedDefinitionsCaptureCurrentNames(t *testing.T) {
	src := `
def f(a, b):
    if b:
        a = a + 10
    def add(x):
        return x + a
    class Marker:
        pass
    c = a
    if a > 5:
        c = add(c)
    return add(1), c, Marker() == Marker()
`
	p := load(t, src)
	out, err := Convert(p.fn, p.env)
	assert.NilError(t, err)
	checkShape(t, out)
	args := [][]interface{}{{0, false}, {0, true}, {7, false}, {7, true}, {-3, true}}
	assertEquivalent(t, p, out, args)
}

func TestShortCircuitAndTernaryValues(t *testing.T) {
	src := `
def f(x, y):
    z = x and y
    if x or y:
        z = z if y else x
    elif not x:
        return min(x, y, 3)
    return z, max(abs(x - y), 1)
`
	p := load(t, src)
	out, err := Convert(p.fn, p.env)
	assert.NilError(t, err)
	checkShape(t, out)
	var args [][]interface{}
	for _, x := range []int{-2, 0, 1, 4} {
		for _, y := range []int{-1, 0, 3} {
			args = append(args, []interface{}{x, y})
		}
	}
	assertEquivalent(t, p, out, args)
}
