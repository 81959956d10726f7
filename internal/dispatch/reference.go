package dispatch

import (
	"github.com/bterlson/cadl-emitter-framework/internal/emiterr"
	"github.com/bterlson/cadl-emitter-framework/internal/entity"
	"github.com/bterlson/cadl-emitter-framework/internal/placeholder"
	"github.com/bterlson/cadl-emitter-framework/internal/scopegraph"
	"github.com/bterlson/cadl-emitter-framework/internal/typegraph"
)

// ReferenceFn computes the rendered reference to a declaration reached from
// the current scope, wired to userEmitter.Reference(declaration, pathUp,
// pathDown, commonScope) by AssetEmitter.
type ReferenceFn func(decl *entity.Declaration, pathUp, pathDown []scopegraph.Scope, common scopegraph.Scope) (any, error)

// EmptyValueFn supplies the target-language empty value used to fill a
// placeholder when a reference resolves to NoEmit (spec §9 open question;
// default is "", the abstract/target-specific choice the source makes).
type EmptyValueFn func() any

func defaultEmptyValue() any { return "" }

// EmitTypeReference implements spec §4.7: resolve a reference to node,
// breaking cycles with a placeholder when node's own emission is still in
// progress.
func (d *Dispatcher) EmitTypeReference(node typegraph.Node, referenceFn ReferenceFn, emptyValueFn EmptyValueFn) (entity.Entity, error) {
	if emptyValueFn == nil {
		emptyValueFn = defaultEmptyValue
	}

	if mp, ok := node.(*typegraph.ModelProperty); ok {
		return d.invoke("modelPropertyReference", mp, nil, nil)
	}

	callerScope := d.CurrentScope()
	var incomingRef map[string]any
	if d.current.state != nil {
		incomingRef = d.current.state.Reference
	}

	opKey, err := typegraph.OperationKey(node)
	if err != nil {
		return nil, err
	}

	result, err := d.invoke(opKey, node, node, incomingRef)
	if err != nil {
		return nil, err
	}

	if circ, ok := entity.IsCircular(result); ok {
		ph := placeholder.New()
		captured := d.current
		d.registerWaiter(circ.Key, captured, func(resolved entity.Entity) {
			finalEntity, ferr := d.finishReference(resolved, callerScope, referenceFn, emptyValueFn)
			if ferr != nil {
				// A user-operation error surfaced while draining a waiter has
				// nowhere synchronous to go; resolve with the error's string
				// so a stuck placeholder is at least observable rather than
				// hanging forever, matching "no retry, context restored"
				// (spec §7) for the already-restored frame.
				ph.SetValue(ferr.Error())
				return
			}
			if v, isEntity := unwrapEntityValue(finalEntity); isEntity {
				if inner, stillPH := placeholder.From(v); stillPH {
					_ = inner // still circular after resolution: spec §7.6
				}
				ph.SetValue(v)
			}
		})
		return &entity.RawCode{Value: ph}, nil
	}

	final, err := d.finishReference(result, callerScope, referenceFn, emptyValueFn)
	if err != nil {
		return nil, err
	}
	return final, nil
}

// finishReference implements step 4 of spec §4.7.
func (d *Dispatcher) finishReference(result entity.Entity, callerScope scopegraph.Scope, referenceFn ReferenceFn, emptyValueFn EmptyValueFn) (entity.Entity, error) {
	switch e := result.(type) {
	case entity.NoEmit:
		return &entity.RawCode{Value: emptyValueFn()}, nil
	case *entity.Declaration:
		declScope, _ := e.Scope.(scopegraph.Scope)
		pathUp, pathDown, common := scopegraph.Diff(callerScope, declScope)
		raw, err := referenceFn(e, pathUp, pathDown, common)
		if err != nil {
			return nil, err
		}
		if ph, ok := raw.(*placeholder.Placeholder); ok && !ph.Resolved() {
			return nil, &emiterr.StillCircularError{OpKey: "reference"}
		}
		return entity.Lift(raw), nil
	default:
		return result, nil
	}
}

// unwrapEntityValue extracts the raw value carried by a RawCode (or the
// entity itself if it isn't one), so the reference placeholder created in
// the circular branch can be filled with the same shape finishReference
// would have produced synchronously.
func unwrapEntityValue(e entity.Entity) (any, bool) {
	switch t := e.(type) {
	case *entity.RawCode:
		return t.Value, true
	case entity.NoEmit:
		return "", true
	case *entity.Declaration:
		return t, true
	default:
		return e, true
	}
}
