// Package dispatch implements the traversal/dispatcher core of spec §4.6
// ("invokeTypeEmitter") and reference resolution of §4.7
// ("emitTypeReference"): it walks the type graph, resolves the operation
// key per node kind, enters the right context frame, memoizes results keyed
// by (opKey, node, context), and breaks reference cycles with a
// CircularEmit marker plus a waiter list drained when the real entity is
// ready.
//
// Grounded on the teacher's ast.Visitor/Accept dispatch (one method per
// node kind) composed with modules.Loader's Processing map[string]bool
// cycle guard, generalized here from "detect a cycle and error" to "detect
// a cycle and defer via placeholder".
package dispatch

import (
	"github.com/google/uuid"

	"github.com/bterlson/cadl-emitter-framework/internal/emitcontext"
	"github.com/bterlson/cadl-emitter-framework/internal/entity"
	"github.com/bterlson/cadl-emitter-framework/internal/keyedmap"
	"github.com/bterlson/cadl-emitter-framework/internal/placeholder"
	"github.com/bterlson/cadl-emitter-framework/internal/scopegraph"
	"github.com/bterlson/cadl-emitter-framework/internal/typegraph"
)

type frame struct {
	stack []typegraph.Node
	state *emitcontext.State
}

type waiter struct {
	frame   frame
	resolve func(entity.Entity)
}

// Dispatcher owns the memo tables, the waiting-circular-refs table and the
// current traversal frame (stack + context). It is single-threaded and
// cooperative per spec §5: no operation performs concurrent mutation of
// this state.
type Dispatcher struct {
	engine      *emitcontext.Engine
	memo        *keyedmap.KeyedMap[entity.Entity]
	waiting     *keyedmap.KeyedMap[[]waiter]
	current     frame
	userEmitter any
}

// New builds a Dispatcher around a context engine. SetUserEmitter must be
// called once construction of the concrete user emitter completes.
func New(engine *emitcontext.Engine) *Dispatcher {
	return &Dispatcher{
		engine:  engine,
		memo:    keyedmap.New[entity.Entity](nil),
		waiting: keyedmap.New[[]waiter](nil),
	}
}

// SetUserEmitter installs the concrete user emitter object that operation
// and context methods are resolved against by name (spec §9: dynamic
// dispatch by kind, not virtual methods).
func (d *Dispatcher) SetUserEmitter(userEmitter any) {
	d.userEmitter = userEmitter
}

// CurrentScope returns context.reference.scope ?? context.lexical.scope ??
// nil for the frame currently in scope (spec §4.5).
func (d *Dispatcher) CurrentScope() scopegraph.Scope {
	if d.current.state == nil {
		return nil
	}
	s, _ := d.current.state.Scope().(scopegraph.Scope)
	return s
}

// CurrentContext exposes the active {lexical, reference} state to the
// asset-emitter layer (AssetEmitter.GetContext).
func (d *Dispatcher) CurrentContext() *emitcontext.State {
	return d.current.state
}

// EmitType dispatches node through invokeTypeEmitter with its table-derived
// operation key (spec §4.6).
func (d *Dispatcher) EmitType(node typegraph.Node) (entity.Entity, error) {
	opKey, err := typegraph.OperationKey(node)
	if err != nil {
		return nil, err
	}
	return d.invoke(opKey, node, nil, nil)
}

// invoke is invokeTypeEmitter, parameterized over an explicit operation key
// so that emitTypeReference can dispatch ModelProperty to
// "modelPropertyReference" instead of "modelPropertyLiteral" (spec §4.7
// step 1) while reusing the same memo/cycle machinery.
func (d *Dispatcher) invoke(opKey string, node typegraph.Node, incomingRefTarget typegraph.Node, incomingRef map[string]any) (entity.Entity, error) {
	saved := d.current

	newStack := emitcontext.NextStack(saved.stack, node)
	state, err := d.engine.Fold(newStack, incomingRefTarget, incomingRef)
	if err != nil {
		d.current = saved
		return nil, err
	}
	d.current = frame{stack: newStack, state: state}

	key := d.memo.Key(opKey, node, state)
	if cached, ok := d.memo.GetByKey(key); ok {
		d.current = saved
		return cached, nil
	}

	d.memo.SetByKey(key, &entity.CircularEmit{Key: key, ID: uuid.NewString()})

	raw, err := callOperation(d.userEmitter, opKey, node)
	if err != nil {
		d.current = saved
		return nil, err
	}
	result := entity.Lift(raw)

	if ph, deferred := deferredPlaceholder(result); deferred {
		captured := d.current
		ph.OnResolve(func(v any) {
			prev := d.current
			d.current = captured
			d.complete(key, entity.Lift(v))
			d.current = prev
		})
		d.current = saved
		return result, nil
	}

	final := d.complete(key, result)
	d.current = saved
	return final, nil
}

// deferredPlaceholder reports whether a bare RawCode result is itself an
// unresolved placeholder (spec §4.6 step 5): Declarations always resolve
// their identity synchronously even if their rendered Value is still
// pending, so only RawCode is checked here.
func deferredPlaceholder(e entity.Entity) (*placeholder.Placeholder, bool) {
	rc, ok := e.(*entity.RawCode)
	if !ok {
		return nil, false
	}
	ph, ok := rc.Value.(*placeholder.Placeholder)
	if !ok || ph.Resolved() {
		return nil, false
	}
	return ph, true
}

// complete overwrites the memo entry with the real entity, appends it to
// its scope if it is a Declaration, and drains any waiters registered while
// it was circular (spec §4.6 step 6).
func (d *Dispatcher) complete(key string, final entity.Entity) entity.Entity {
	d.memo.SetByKey(key, final)
	if decl, ok := final.(*entity.Declaration); ok && decl.Scope != nil {
		if sc, ok := decl.Scope.(scopegraph.Scope); ok {
			sc.AppendDeclaration(decl)
		}
	}
	waiters, _ := d.waiting.GetByKey(key)
	d.waiting.DeleteByKey(key)
	for _, w := range waiters {
		prev := d.current
		d.current = w.frame
		w.resolve(final)
		d.current = prev
	}
	return final
}

// registerWaiter records a callback to run, in the captured frame, once the
// entity stored under key stops being circular.
func (d *Dispatcher) registerWaiter(key string, capturedFrame frame, resolve func(entity.Entity)) {
	existing, _ := d.waiting.GetByKey(key)
	existing = append(existing, waiter{frame: capturedFrame, resolve: resolve})
	d.waiting.SetByKey(key, existing)
}
