// Package emitcontext implements the context engine of spec §4.5: the
// lexical enclosure stack for the currently dispatched type, the fold that
// derives a ContextState by walking that stack from the program context,
// and the incoming-reference-context threading that lets context flow
// across references while ordinary traversal stays purely lexical.
//
// Grounded on the teacher's analyzer.walker / InferenceContext: a small
// bundle of mutable traversal state (current scope, current inference
// context) threaded through a recursive walk and occasionally shared
// between parent and imported modules — here the "module" is a single
// declaration's enclosure stack instead of a Cadl import graph.
package emitcontext

import (
	"github.com/bterlson/cadl-emitter-framework/internal/interner"
	"github.com/bterlson/cadl-emitter-framework/internal/typegraph"
)

// State is the interned {lexical, reference} pair threaded through
// traversal and exposed to user operations via AssetEmitter.GetContext; its
// Scope method gives the current scope.
type State struct {
	Lexical   map[string]any
	Reference map[string]any
}

// Scope returns context.reference.scope ?? context.lexical.scope ?? nil,
// exactly the rule of spec §4.5. The framework never synthesizes a scope:
// user code sets it via returned context maps.
func (s *State) Scope() any {
	if s == nil {
		return nil
	}
	if v, ok := s.Reference["scope"]; ok && v != nil {
		return v
	}
	if v, ok := s.Lexical["scope"]; ok && v != nil {
		return v
	}
	return nil
}

// ContextFn resolves the "<opKey>Context" (or "<opKey>ReferenceContext")
// lexical-context method for a node during the fold. The dispatcher wires
// this to a reflection-based lookup on the concrete user emitter so that
// package emitcontext stays decoupled from the user emitter's type.
type ContextFn func(opKey string, node typegraph.Node) (map[string]any, error)

// ProgramContextFn produces the starting {lexical, reference} state.
type ProgramContextFn func() (map[string]any, map[string]any, error)

type foldKey struct {
	node        typegraph.Node
	input       *State
	incomingRef uintptr
}

type stateKey struct {
	lexical, reference uintptr
}

// Engine owns the fold memo (knownContexts in spec §3) and the lazily
// computed program context.
type Engine struct {
	lexical   ContextFn
	reference ContextFn
	program   ProgramContextFn

	interner *interner.Interner
	states   map[stateKey]*State
	known    map[foldKey]*State

	programCtx  *State
	haveProgram bool
}

// NewEngine builds a context engine. lexical and reference are required;
// program may be nil, in which case the program context is the canonical
// empty state.
func NewEngine(lexical, reference ContextFn, program ProgramContextFn) *Engine {
	return &Engine{
		lexical:   lexical,
		reference: reference,
		program:   program,
		interner:  interner.New(),
		states:    map[stateKey]*State{},
		known:     map[foldKey]*State{},
	}
}

func (e *Engine) internState(lexical, reference map[string]any) *State {
	lexical = e.interner.InternMap(lexical)
	reference = e.interner.InternMap(reference)
	k := stateKey{interner.Identity(lexical), interner.Identity(reference)}
	if s, ok := e.states[k]; ok {
		return s
	}
	s := &State{Lexical: lexical, Reference: reference}
	e.states[k] = s
	return s
}

// ProgramContext lazily computes and caches the program-level starting
// state by calling ProgramContextFn exactly once.
func (e *Engine) ProgramContext() (*State, error) {
	if e.haveProgram {
		return e.programCtx, nil
	}
	var lex, ref map[string]any
	var err error
	if e.program != nil {
		lex, ref, err = e.program()
		if err != nil {
			return nil, err
		}
	}
	e.programCtx = e.internState(lex, ref)
	e.haveProgram = true
	return e.programCtx, nil
}

func mergeRightBiased(base, overlay map[string]any) map[string]any {
	out := make(map[string]any, len(base)+len(overlay))
	for k, v := range base {
		out[k] = v
	}
	for k, v := range overlay {
		out[k] = v
	}
	return out
}

// foldEntry applies one enclosure-stack entry's contribution to an
// accumulated state, memoized by (entry, input, incomingRef) per spec's
// knownContexts. incomingRef is non-nil only at the enclosure entry equal
// to a reference's target (spec §4.5 "incoming reference context"); folding
// it in here, as part of the memoized unit rather than as a later overlay,
// means a distinct incoming reference context is a distinct fold — the
// reference-context method fires once per distinct context a type is
// reached under, not once per (entry, input) regardless of caller.
func (e *Engine) foldEntry(entry typegraph.Node, in *State, incomingRef map[string]any) (*State, error) {
	incomingRef = e.interner.InternMap(incomingRef)
	k := foldKey{entry, in, interner.Identity(incomingRef)}
	if out, ok := e.known[k]; ok {
		return out, nil
	}
	opKey, err := typegraph.OperationKey(entry)
	if err != nil {
		return nil, err
	}
	newLex, err := e.lexical(opKey, entry)
	if err != nil {
		return nil, err
	}
	var newRef map[string]any
	if !typegraph.ExemptFromReferenceContext(opKey) {
		newRef, err = e.reference(opKey, entry)
		if err != nil {
			return nil, err
		}
	}
	newRef = mergeRightBiased(newRef, incomingRef)
	out := e.internState(mergeRightBiased(in.Lexical, newLex), mergeRightBiased(in.Reference, newRef))
	e.known[k] = out
	return out, nil
}

// NextStack computes the enclosure stack for node given the previous one,
// per spec §4.5: declarations reset the stack to their enclosing namespace
// chain plus themselves; anything else appends to the previous stack.
func NextStack(prevStack []typegraph.Node, node typegraph.Node) []typegraph.Node {
	if typegraph.IsDeclaration(node) {
		namespaces := typegraph.EnclosingNamespaces(node)
		stack := make([]typegraph.Node, 0, len(namespaces)+1)
		for _, ns := range namespaces {
			stack = append(stack, ns)
		}
		return append(stack, node)
	}
	stack := make([]typegraph.Node, len(prevStack)+1)
	copy(stack, prevStack)
	stack[len(prevStack)] = node
	return stack
}

// Fold walks stack from the program context, folding each entry's
// contribution in order. If incomingRefTarget is non-nil, the incoming
// reference context is folded into the enclosure entry equal to
// incomingRefTarget, then cleared for the remainder of the walk — the
// mechanism by which context flows across references (spec §4.5).
func (e *Engine) Fold(stack []typegraph.Node, incomingRefTarget typegraph.Node, incomingRef map[string]any) (*State, error) {
	state, err := e.ProgramContext()
	if err != nil {
		return nil, err
	}
	pendingTarget := incomingRefTarget
	for _, entry := range stack {
		var entryIncoming map[string]any
		if pendingTarget != nil && entry == pendingTarget {
			entryIncoming = incomingRef
			pendingTarget = nil
		}
		state, err = e.foldEntry(entry, state, entryIncoming)
		if err != nil {
			return nil, err
		}
	}
	return state, nil
}
