// Package argbind derives a command-line flag surface from attributes
// declared on a Go struct type, parses process input against it, and
// materializes either a freshly constructed instance or a set of assignments
// onto one.
package argbind

import (
	"os"
	"reflect"
)

// Parse parses the process's command-line input into a freshly constructed
// instance of T.
//
//goland:noinspection GoUnusedExportedFunction
func Parse[T any]() (*T, error) {
	return ParseArgs[T](os.Args[1:])
}

// ParseArgs derives T's flag surface, parses the given arguments against it
// (silently discarding unrecognized flags), constructs an instance from the
// initializer-bound values and assigns the remaining values through the
// attributes' write accessors.
//
// Declaration defects surface as ErrConfiguration before any input is
// consumed; bad input surfaces as ErrParse and constructs nothing.
func ParseArgs[T any](arguments []string) (*T, error) {
	s, err := schemaOf(reflect.TypeOf((*T)(nil)).Elem())
	if err != nil {
		return nil, err
	}

	values, err := s.parse(arguments)
	if err != nil {
		return nil, err
	}

	instance := new(T)

	// Construct from the initializer-bound values, if the type has an
	// initializer surface
	if init, ok := any(instance).(Initializer); ok {
		args := Args{}
		for _, a := range s.attrs {
			if !a.hasInit || !(a.writable || a.required) {
				continue
			}
			if v, ok := values[a.name]; ok {
				args[a.name] = v
			}
		}
		if err := init.Init(args); err != nil {
			return nil, err
		}
	}

	// Assign every writable attribute in discovery order. This runs after
	// (and wins over) initializer binding for attributes bound both ways.
	for _, a := range s.attrs {
		if !a.writable {
			continue
		}
		v, ok := values[a.name]
		if !ok {
			continue
		}
		if err := a.Write(instance, v); err != nil {
			return nil, err
		}
	}

	return instance, nil
}

// Help derives T's flag surface and renders its usage/help text. It consumes
// no input and touches no descriptor state.
//
//goland:noinspection GoUnusedExportedFunction
func Help[T any]() (string, error) {
	s, err := schemaOf(reflect.TypeOf((*T)(nil)).Elem())
	if err != nil {
		return "", err
	}
	return renderHelp(s, getTerminalWidth())
}

// parse translates every attribute into its flag registration, drives the
// parser adapter, and returns the per-invocation binding of attribute name to
// parsed value.
func (s *schema) parse(arguments []string) (map[string]any, error) {
	regs := make([]flagRegistration, len(s.attrs))
	for i, a := range s.attrs {
		regs[i] = a.registration()
	}
	return newFlagParser(s.name, regs).parse(arguments)
}
