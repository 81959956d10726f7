package dispatch

import (
	"reflect"
	"unicode"

	"github.com/bterlson/cadl-emitter-framework/internal/emiterr"
	"github.com/bterlson/cadl-emitter-framework/internal/typegraph"
)

// exportedName turns an operation key such as "modelDeclaration" into the Go
// exported method name "ModelDeclaration" the user emitter must implement.
// Name-mangling by string concatenation is part of the external contract
// (spec §9) — this is the one place it happens, and it is never replaced by
// a static virtual-dispatch table.
func exportedName(opKey string) string {
	if opKey == "" {
		return opKey
	}
	r := []rune(opKey)
	r[0] = unicode.ToUpper(r[0])
	return string(r)
}

// methodByName looks up an exported method on the concrete user emitter by
// name via reflection, returning (value, true) if present.
func methodByName(userEmitter any, name string) (reflect.Value, bool) {
	v := reflect.ValueOf(userEmitter)
	m := v.MethodByName(name)
	if !m.IsValid() {
		return reflect.Value{}, false
	}
	return m, true
}

// callOperation invokes userEmitter.<OpKey>(node) and returns its raw
// result as (any, error), unpacked from the reflected call, per spec §4.6
// step 4.
func callOperation(userEmitter any, opKey string, node typegraph.Node) (any, error) {
	name := exportedName(opKey)
	m, ok := methodByName(userEmitter, name)
	if !ok {
		return nil, &emiterr.MissingOperationError{OpKey: opKey}
	}
	out := m.Call([]reflect.Value{reflect.ValueOf(node)})
	return unpackResult(out)
}

// callContext invokes userEmitter.<OpKey>Context(node) or, when reference is
// true, userEmitter.<OpKey>ReferenceContext(node), per spec §4.5. The
// lexical method is required; a missing reference method contributes nothing.
func callContext(userEmitter any, opKey string, node typegraph.Node, reference bool) (map[string]any, error) {
	suffix := "Context"
	if reference {
		suffix = "ReferenceContext"
	}
	name := exportedName(opKey) + suffix
	m, ok := methodByName(userEmitter, name)
	if !ok {
		if reference {
			return nil, nil
		}
		return nil, &emiterr.MissingContextMethodError{Method: name}
	}
	out := m.Call([]reflect.Value{reflect.ValueOf(node)})
	v, err := unpackResult(out)
	if err != nil {
		return nil, err
	}
	if v == nil {
		return nil, nil
	}
	m2, ok := v.(map[string]any)
	if !ok {
		return nil, nil
	}
	return m2, nil
}

// unpackResult normalizes a reflected (value, error) or (value) call result.
func unpackResult(out []reflect.Value) (any, error) {
	switch len(out) {
	case 0:
		return nil, nil
	case 1:
		return out[0].Interface(), nil
	default:
		var v any
		if out[0].IsValid() {
			v = out[0].Interface()
		}
		var err error
		if len(out) > 1 && out[len(out)-1].IsValid() {
			if e, ok := out[len(out)-1].Interface().(error); ok {
				err = e
			}
		}
		return v, err
	}
}
