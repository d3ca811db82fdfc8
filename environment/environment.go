// Package environment stores variable bindings for the evaluator.
package environment

import "github.com/pontaoski/monkey/object"

// Environment is one scope. Lookups that miss fall through to the outer
// scope, if there is one.
type Environment struct {
	store map[string]object.Object
	outer *Environment
}

func New() *Environment {
	return &Environment{store: make(map[string]object.Object)}
}

// NewEnclosed returns an empty scope nested inside outer.
func NewEnclosed(outer *Environment) *Environment {
	env := New()
	env.outer = outer
	return env
}

func (e *Environment) Get(name string) (object.Object, bool) {
	for scope := e; scope != nil; scope = scope.outer {
		if v, ok := scope.store[name]; ok {
			return v, true
		}
	}
	return nil, false
}

// Set binds name in this scope, replacing any binding it already has here.
// Outer scopes are never written.
func (e *Environment) Set(name string, val object.Object) object.Object {
	e.store[name] = val
	return val
}

// Names lists the bindings visible from this scope, innermost first, without
// duplicates.
func (e *Environment) Names() []string {
	seen := map[string]bool{}
	var names []string
	for scope := e; scope != nil; scope = scope.outer {
		for name := range scope.store {
			if !seen[name] {
				seen[name] = true
				names = append(names, name)
			}
		}
	}
	return names
}
