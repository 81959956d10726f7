package dispatch

import (
	"github.com/bterlson/cadl-emitter-framework/internal/typegraph"
)

// CallLexicalContext invokes userEmitter.<OpKey>Context(node), the lexical
// half of spec §4.5's context contract.
func (d *Dispatcher) CallLexicalContext(opKey string, node typegraph.Node) (map[string]any, error) {
	return callContext(d.userEmitter, opKey, node, false)
}

// CallReferenceContext invokes userEmitter.<OpKey>ReferenceContext(node),
// the reference half of spec §4.5's context contract.
func (d *Dispatcher) CallReferenceContext(opKey string, node typegraph.Node) (map[string]any, error) {
	return callContext(d.userEmitter, opKey, node, true)
}

// CallProgramContext invokes the optional userEmitter.ProgramContext()
// method to seed the starting {lexical, reference} state. A user emitter
// that does not implement it starts from the canonical empty state.
func (d *Dispatcher) CallProgramContext() (map[string]any, map[string]any, error) {
	m, ok := methodByName(d.userEmitter, "ProgramContext")
	if !ok {
		return nil, nil, nil
	}
	out := m.Call(nil)
	v, err := unpackResult(out)
	if err != nil {
		return nil, nil, err
	}
	switch t := v.(type) {
	case nil:
		return nil, nil, nil
	case map[string]any:
		return t, nil, nil
	case [2]map[string]any:
		return t[0], t[1], nil
	default:
		return nil, nil, nil
	}
}
