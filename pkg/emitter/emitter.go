// Package emitter is the external surface of spec §6: CreateEmitterContext,
// AssetEmitter and the UserEmitter contract a client implements to drive the
// traversal/context/memoization/cycle-resolution engine in internal/.
package emitter

import (
	"reflect"

	"github.com/bterlson/cadl-emitter-framework/internal/dispatch"
	"github.com/bterlson/cadl-emitter-framework/internal/emitcontext"
	"github.com/bterlson/cadl-emitter-framework/internal/emiterr"
	"github.com/bterlson/cadl-emitter-framework/internal/entity"
	"github.com/bterlson/cadl-emitter-framework/internal/scopegraph"
	"github.com/bterlson/cadl-emitter-framework/internal/typegraph"
)

// Program is the input type graph: the global namespace a run starts from.
// Producing it is the job of the sibling compiler front end, out of scope
// for this module (spec §1) — tests and cmd/cadlemit build one by hand,
// using the graph builders in internal/typegraph/fixture.go.
type Program struct {
	GlobalNamespace *typegraph.Namespace
}

// Host is the filesystem interface the output writer calls into; the
// framework calls only WriteFile, with opaque paths passed through from
// CreateSourceFile (spec §6).
type Host interface {
	WriteFile(path string, contents string) error
}

// EmitterContext bundles the program and host a run is scoped to.
type EmitterContext struct {
	Program *Program
	Host    Host
	Tags    []string
}

// CreateEmitterContext builds the context CreateAssetEmitter is called
// against.
func CreateEmitterContext(program *Program, host Host, tags ...string) *EmitterContext {
	return &EmitterContext{Program: program, Host: host, Tags: tags}
}

// ResultAPI is the result.{declaration, rawCode, none} surface of spec §6.
type ResultAPI struct{ ae *AssetEmitter }

// Declaration places a named artifact in the current scope. Value may be a
// concrete target value or a *placeholder.Placeholder to be filled later.
func (r *ResultAPI) Declaration(name string, value any) (*entity.Declaration, error) {
	scope := r.ae.dispatcher.CurrentScope()
	if scope == nil {
		return nil, &emiterr.ScopeAbsentError{Name: name}
	}
	return &entity.Declaration{Name: name, Scope: scope, Value: value}, nil
}

// RawCode wraps an unnamed emitted fragment.
func (r *ResultAPI) RawCode(value any) *entity.RawCode { return &entity.RawCode{Value: value} }

// None reports that an operation produced nothing observable.
func (r *ResultAPI) None() entity.Entity { return entity.None }

// AssetEmitter is the per-run handle a UserEmitter is constructed with and
// drives the framework through.
type AssetEmitter struct {
	ctx         *EmitterContext
	dispatcher  *dispatch.Dispatcher
	userEmitter any
	sourceFiles []*scopegraph.SourceFile

	Result *ResultAPI
}

// CreateAssetEmitter wires a concrete UserEmitter (constructed by newFn,
// which receives the partially-built *AssetEmitter so it can recurse into
// it immediately) to a fresh dispatcher and context engine.
func CreateAssetEmitter[T any](ctx *EmitterContext, newFn func(*AssetEmitter) T) *AssetEmitter {
	ae := &AssetEmitter{ctx: ctx}
	ae.Result = &ResultAPI{ae: ae}

	var d *dispatch.Dispatcher
	lexicalFn := func(opKey string, node typegraph.Node) (map[string]any, error) {
		return d.CallLexicalContext(opKey, node)
	}
	referenceFn := func(opKey string, node typegraph.Node) (map[string]any, error) {
		return d.CallReferenceContext(opKey, node)
	}
	programFn := func() (map[string]any, map[string]any, error) {
		return d.CallProgramContext()
	}
	engine := emitcontext.NewEngine(lexicalFn, referenceFn, programFn)
	d = dispatch.New(engine)
	ae.dispatcher = d

	concrete := newFn(ae)
	ae.userEmitter = concrete
	d.SetUserEmitter(concrete)
	return ae
}

// GetProgram returns the program this run is emitting.
func (ae *AssetEmitter) GetProgram() *Program { return ae.ctx.Program }

// GetContext returns the {lexical, reference} state active right now.
func (ae *AssetEmitter) GetContext() *emitcontext.State { return ae.dispatcher.CurrentContext() }

// CreateSourceFile allocates a SourceFile with a root source-file scope,
// recording it in creation order for WriteOutput.
func (ae *AssetEmitter) CreateSourceFile(path string) *scopegraph.SourceFile {
	sf := scopegraph.CreateSourceFile(path)
	ae.sourceFiles = append(ae.sourceFiles, sf)
	return sf
}

// CreateScope creates a NamespaceScope when block is anything other than a
// *scopegraph.SourceFile, a SourceFileScope otherwise (spec §4.4).
func (ae *AssetEmitter) CreateScope(block any, name string, parent scopegraph.Scope) (scopegraph.Scope, error) {
	return scopegraph.CreateScope(block, name, parent)
}

// EmitType dispatches node through the traversal core with its table-derived
// operation key (spec §4.6).
func (ae *AssetEmitter) EmitType(node typegraph.Node) (entity.Entity, error) {
	return ae.dispatcher.EmitType(node)
}

// EmitTypeReference resolves a reference to node, breaking cycles with a
// placeholder (spec §4.7).
func (ae *AssetEmitter) EmitTypeReference(node typegraph.Node) (entity.Entity, error) {
	return ae.dispatcher.EmitTypeReference(node, ae.callReference, ae.callEmptyValue)
}

// EmitModelProperties dispatches each of model's properties in insertion
// order.
func (ae *AssetEmitter) EmitModelProperties(model *typegraph.Model) ([]entity.Entity, error) {
	out := make([]entity.Entity, 0, len(model.Properties))
	for _, p := range model.Properties {
		e, err := ae.EmitModelProperty(p)
		if err != nil {
			return nil, err
		}
		out = append(out, e)
	}
	return out, nil
}

// EmitModelProperty dispatches a single ModelProperty node.
func (ae *AssetEmitter) EmitModelProperty(p *typegraph.ModelProperty) (entity.Entity, error) {
	return ae.EmitType(p)
}

// EmitOperationParameters dispatches each of op's parameters in order.
func (ae *AssetEmitter) EmitOperationParameters(op *typegraph.Operation) ([]entity.Entity, error) {
	out := make([]entity.Entity, 0, len(op.Parameters))
	for _, p := range op.Parameters {
		e, err := ae.EmitModelProperty(p)
		if err != nil {
			return nil, err
		}
		out = append(out, e)
	}
	return out, nil
}

// EmitOperationReturnType resolves a reference to op's return type.
func (ae *AssetEmitter) EmitOperationReturnType(op *typegraph.Operation) (entity.Entity, error) {
	if op.ReturnType == nil {
		return entity.None, nil
	}
	return ae.EmitTypeReference(op.ReturnType)
}

// EmitInterfaceOperations dispatches each of iface's operations in order.
func (ae *AssetEmitter) EmitInterfaceOperations(iface *typegraph.Interface) ([]entity.Entity, error) {
	out := make([]entity.Entity, 0, len(iface.Operations))
	for _, op := range iface.Operations {
		e, err := ae.EmitInterfaceOperation(op)
		if err != nil {
			return nil, err
		}
		out = append(out, e)
	}
	return out, nil
}

// EmitInterfaceOperation dispatches a single nested Operation node.
func (ae *AssetEmitter) EmitInterfaceOperation(op *typegraph.Operation) (entity.Entity, error) {
	return ae.EmitType(op)
}

// EmitEnumMembers dispatches each of e's members in order.
func (ae *AssetEmitter) EmitEnumMembers(e *typegraph.Enum) ([]entity.Entity, error) {
	out := make([]entity.Entity, 0, len(e.Members))
	for _, m := range e.Members {
		ent, err := ae.EmitType(m)
		if err != nil {
			return nil, err
		}
		out = append(out, ent)
	}
	return out, nil
}

// EmitUnionVariants dispatches each of u's variants in order.
func (ae *AssetEmitter) EmitUnionVariants(u *typegraph.Union) ([]entity.Entity, error) {
	out := make([]entity.Entity, 0, len(u.Variants))
	for _, v := range u.Variants {
		ent, err := ae.EmitType(v)
		if err != nil {
			return nil, err
		}
		out = append(out, ent)
	}
	return out, nil
}

// EmitTupleLiteralValues resolves a reference to each of t's element types.
func (ae *AssetEmitter) EmitTupleLiteralValues(t *typegraph.Tuple) ([]entity.Entity, error) {
	out := make([]entity.Entity, 0, len(t.Values))
	for _, v := range t.Values {
		ent, err := ae.EmitTypeReference(v)
		if err != nil {
			return nil, err
		}
		out = append(out, ent)
	}
	return out, nil
}

// callReference invokes userEmitter.Reference(declaration, pathUp, pathDown,
// commonScope) via reflection.
func (ae *AssetEmitter) callReference(decl *entity.Declaration, pathUp, pathDown []scopegraph.Scope, common scopegraph.Scope) (any, error) {
	v := reflect.ValueOf(ae.userEmitter)
	m := v.MethodByName("Reference")
	if !m.IsValid() {
		return nil, &emiterr.MissingOperationError{OpKey: "reference"}
	}
	out := m.Call([]reflect.Value{
		reflect.ValueOf(decl), reflect.ValueOf(pathUp), reflect.ValueOf(pathDown), reflect.ValueOf(common),
	})
	var result any
	if len(out) > 0 && out[0].IsValid() {
		result = out[0].Interface()
	}
	if len(out) > 1 && out[1].IsValid() {
		if err, ok := out[1].Interface().(error); ok && err != nil {
			return nil, err
		}
	}
	return result, nil
}

// callEmptyValue invokes userEmitter.EmptyValue(), falling back to "" when
// the user emitter does not implement it (spec §9 open question).
func (ae *AssetEmitter) callEmptyValue() any {
	v := reflect.ValueOf(ae.userEmitter)
	m := v.MethodByName("EmptyValue")
	if !m.IsValid() {
		return ""
	}
	out := m.Call(nil)
	if len(out) > 0 && out[0].IsValid() {
		return out[0].Interface()
	}
	return ""
}

// EmitDeclarationName computes the default declared name for node per spec
// §6: the user emitter's DeclarationName override is tried first, falling
// back to the intrinsic/template-instantiation defaulting rules.
func (ae *AssetEmitter) EmitDeclarationName(node typegraph.Node) (string, error) {
	if v := reflect.ValueOf(ae.userEmitter); v.MethodByName("DeclarationName").IsValid() {
		out := v.MethodByName("DeclarationName").Call([]reflect.Value{reflect.ValueOf(node)})
		if len(out) > 0 && out[0].IsValid() {
			if s, ok := out[0].Interface().(string); ok && s != "" {
				return s, nil
			}
		}
	}
	return defaultDeclarationName(node)
}

func defaultDeclarationName(node typegraph.Node) (string, error) {
	m, ok := node.(*typegraph.Model)
	if !ok {
		return typegraph.Name(node), nil
	}
	if m.Intrinsic {
		return m.Name, nil
	}
	if len(m.TemplateArguments) == 0 {
		return m.Name, nil
	}
	name := m.Name
	for _, arg := range m.TemplateArguments {
		argModel, ok := arg.(*typegraph.Model)
		if !ok {
			return "", &emiterr.InvalidTemplateArgumentError{ArgKind: arg.Kind().String()}
		}
		argName, err := defaultDeclarationName(argModel)
		if err != nil {
			return "", err
		}
		name += argName
	}
	return name, nil
}
