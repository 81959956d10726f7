// Package fixture is a reference/test emitter: a client of
// pkg/emitter (never imported back by it) that renders the synthetic type
// graphs built by internal/typegraph/fixture.go into real, go/format'd Go
// source. It plays the role spec §1 assigns the TypeScript interface
// emitter in the original framework: "useful only as a reference fixture",
// explicitly out of the framework core's scope.
//
// Grounded on the teacher's internal/ext/inspector.go, which uses
// golang.org/x/tools/go/packages for Go package introspection; here the
// same x/tools family (go/ast, go/format, go/ast/astutil) is repurposed for
// Go source generation instead.
package fixture

import (
	"bytes"
	"fmt"
	"go/ast"
	"go/format"
	"go/token"
	"strconv"
	"unicode"

	"golang.org/x/tools/go/ast/astutil"

	"github.com/bterlson/cadl-emitter-framework/internal/emiterr"
	"github.com/bterlson/cadl-emitter-framework/internal/entity"
	"github.com/bterlson/cadl-emitter-framework/internal/placeholder"
	"github.com/bterlson/cadl-emitter-framework/internal/scopegraph"
	"github.com/bterlson/cadl-emitter-framework/internal/typegraph"
	"github.com/bterlson/cadl-emitter-framework/pkg/emitter"
)

// GoEmitter renders the input type graph as a single Go struct/interface
// per declaration, one source file per declaration (spec §8 scenario 3).
type GoEmitter struct {
	*emitter.BaseEmitter
}

// NewGoEmitter constructs a GoEmitter wired to a fresh AssetEmitter.
func NewGoEmitter(ctx *emitter.EmitterContext) *emitter.AssetEmitter {
	return emitter.CreateAssetEmitter(ctx, func(ae *emitter.AssetEmitter) *GoEmitter {
		return &GoEmitter{BaseEmitter: emitter.NewBaseEmitter(ae)}
	})
}

var intrinsicGoType = map[string]string{
	"string":  "string",
	"boolean": "bool",
	"int32":   "int32",
	"int64":   "int64",
	"float32": "float32",
	"float64": "float64",
}

// ModelScalar maps an intrinsic scalar name to its Go representation,
// raising UnknownIntrinsicError for anything this target doesn't know
// (spec §7.3: target emitters, not the core, raise this).
func (g *GoEmitter) ModelScalar(m *typegraph.Model) (entity.Entity, error) {
	goName, ok := intrinsicGoType[m.Name]
	if !ok {
		return nil, &emiterr.UnknownIntrinsicError{Name: m.Name}
	}
	return g.AE.Result.RawCode(goName), nil
}

// EmptyValue overrides the framework default ("") with Go's nil literal,
// resolving spec §9's open question for this target language.
func (g *GoEmitter) EmptyValue() any { return "nil" }

func (g *GoEmitter) BooleanLiteral(*typegraph.BooleanLiteral) (entity.Entity, error) {
	return g.AE.Result.RawCode("bool"), nil
}
func (g *GoEmitter) StringLiteral(*typegraph.StringLiteral) (entity.Entity, error) {
	return g.AE.Result.RawCode("string"), nil
}
func (g *GoEmitter) NumericLiteral(*typegraph.NumericLiteral) (entity.Entity, error) {
	return g.AE.Result.RawCode("float64"), nil
}

// ModelDeclarationContext routes each model declaration to its own source
// file, named after the declared name (spec §8 scenario 3).
func (g *GoEmitter) ModelDeclarationContext(m *typegraph.Model) (map[string]any, error) {
	return g.fileScopeContext(m)
}
func (g *GoEmitter) EnumDeclarationContext(e *typegraph.Enum) (map[string]any, error) {
	return g.fileScopeContext(e)
}
func (g *GoEmitter) UnionDeclarationContext(u *typegraph.Union) (map[string]any, error) {
	return g.fileScopeContext(u)
}
func (g *GoEmitter) InterfaceDeclarationContext(i *typegraph.Interface) (map[string]any, error) {
	return g.fileScopeContext(i)
}
func (g *GoEmitter) OperationDeclarationContext(op *typegraph.Operation) (map[string]any, error) {
	return g.fileScopeContext(op)
}

func (g *GoEmitter) fileScopeContext(node typegraph.Node) (map[string]any, error) {
	name, err := g.AE.EmitDeclarationName(node)
	if err != nil {
		return nil, err
	}
	sf := g.AE.CreateSourceFile(name + ".go")
	return map[string]any{"scope": sf.Global}, nil
}

// ModelDeclaration renders m as a Go struct type.
func (g *GoEmitter) ModelDeclaration(m *typegraph.Model) (entity.Entity, error) {
	name, err := g.AE.EmitDeclarationName(m)
	if err != nil {
		return nil, err
	}
	fields := &ast.FieldList{}
	for _, p := range m.Properties {
		ent, err := g.AE.EmitModelProperty(p)
		if err != nil {
			return nil, err
		}
		fields.List = append(fields.List, &ast.Field{
			Names: []*ast.Ident{ast.NewIdent(exportedFieldName(p.Name))},
			Type:  fieldIdent(ent),
		})
	}
	if m.Indexer != nil {
		ent, err := g.AE.EmitTypeReference(m.Indexer.Value)
		if err != nil {
			return nil, err
		}
		keyEnt, err := g.AE.EmitTypeReference(m.Indexer.Key)
		if err != nil {
			return nil, err
		}
		fields.List = append(fields.List, &ast.Field{
			Type: &ast.MapType{Key: toIdent(keyEnt), Value: toIdent(ent)},
		})
	}
	decl := &ast.GenDecl{
		Tok:   token.TYPE,
		Specs: []ast.Spec{&ast.TypeSpec{Name: ast.NewIdent(name), Type: &ast.StructType{Fields: fields}}},
	}
	return g.AE.Result.Declaration(name, decl)
}

func (g *GoEmitter) ModelLiteral(m *typegraph.Model) (entity.Entity, error) {
	_, err := g.AE.EmitModelProperties(m)
	return g.AE.Result.None(), err
}

// ModelPropertyLiteral resolves p's type to a Go type identifier, deferring
// to the eventual resolved name when the reference is still circular.
func (g *GoEmitter) ModelPropertyLiteral(p *typegraph.ModelProperty) (entity.Entity, error) {
	ent, err := g.AE.EmitTypeReference(p.Type)
	if err != nil {
		return nil, err
	}
	return g.AE.Result.RawCode(toIdent(ent)), nil
}

// EnumDeclaration renders e as a defined string type plus one typed
// constant per member, using fmt.Sprintf in the conventional default branch
// of a generated String() method — the reason internal/fixture imports
// go-format's sibling astutil to manage the resulting "fmt" import.
func (g *GoEmitter) EnumDeclaration(e *typegraph.Enum) (entity.Entity, error) {
	name, err := g.AE.EmitDeclarationName(e)
	if err != nil {
		return nil, err
	}
	if sf := g.currentSourceFile(); sf != nil {
		sf.AddImport("fmt", "")
	}
	typeDecl := &ast.GenDecl{Tok: token.TYPE, Specs: []ast.Spec{
		&ast.TypeSpec{Name: ast.NewIdent(name), Type: ast.NewIdent("string")},
	}}
	var specs []ast.Spec
	for _, m := range e.Members {
		if _, err := g.AE.EmitType(m); err != nil {
			return nil, err
		}
		specs = append(specs, &ast.ValueSpec{
			Names:  []*ast.Ident{ast.NewIdent(name + exportedFieldName(m.Name))},
			Type:   ast.NewIdent(name),
			Values: []ast.Expr{&ast.BasicLit{Kind: token.STRING, Value: strconv.Quote(m.Name)}},
		})
	}
	constDecl := &ast.GenDecl{Tok: token.CONST, Specs: specs}
	stringer := &ast.FuncDecl{
		Recv: &ast.FieldList{List: []*ast.Field{{Names: []*ast.Ident{ast.NewIdent("v")}, Type: ast.NewIdent(name)}}},
		Name: ast.NewIdent("String"),
		Type: &ast.FuncType{
			Params:  &ast.FieldList{},
			Results: &ast.FieldList{List: []*ast.Field{{Type: ast.NewIdent("string")}}},
		},
		Body: &ast.BlockStmt{List: []ast.Stmt{
			&ast.ReturnStmt{Results: []ast.Expr{&ast.CallExpr{
				Fun:  &ast.SelectorExpr{X: ast.NewIdent("fmt"), Sel: ast.NewIdent("Sprintf")},
				Args: []ast.Expr{&ast.BasicLit{Kind: token.STRING, Value: strconv.Quote("%s")}, ast.NewIdent("string(v)")},
			}}},
		}},
	}
	return g.AE.Result.Declaration(name, []ast.Decl{typeDecl, constDecl, stringer})
}

func (g *GoEmitter) EnumMember(*typegraph.EnumMember) (entity.Entity, error) {
	return g.AE.Result.None(), nil
}

// UnionDeclaration renders u as a loose Go type alias; variants are still
// traversed so their operation keys fire per spec §8.
func (g *GoEmitter) UnionDeclaration(u *typegraph.Union) (entity.Entity, error) {
	name, err := g.AE.EmitDeclarationName(u)
	if err != nil {
		return nil, err
	}
	if _, err := g.AE.EmitUnionVariants(u); err != nil {
		return nil, err
	}
	decl := &ast.GenDecl{Tok: token.TYPE, Specs: []ast.Spec{
		&ast.TypeSpec{Name: ast.NewIdent(name), Assign: 1, Type: ast.NewIdent("any")},
	}}
	return g.AE.Result.Declaration(name, decl)
}

func (g *GoEmitter) UnionVariant(v *typegraph.UnionVariant) (entity.Entity, error) {
	_, err := g.AE.EmitTypeReference(v.Type)
	return g.AE.Result.None(), err
}

// TupleLiteral traverses each element for its side effects (declaration and
// file creation); this fixture has no positional-tuple Go rendering, so the
// resolved element types themselves are discarded.
func (g *GoEmitter) TupleLiteral(t *typegraph.Tuple) (entity.Entity, error) {
	if _, err := g.AE.EmitTupleLiteralValues(t); err != nil {
		return nil, err
	}
	return g.AE.Result.None(), nil
}

// InterfaceDeclaration renders i as a Go interface type, one method per
// operation.
func (g *GoEmitter) InterfaceDeclaration(i *typegraph.Interface) (entity.Entity, error) {
	name, err := g.AE.EmitDeclarationName(i)
	if err != nil {
		return nil, err
	}
	methods := &ast.FieldList{}
	for _, op := range i.Operations {
		ent, err := g.AE.EmitInterfaceOperation(op)
		if err != nil {
			return nil, err
		}
		ft := funcTypeOf(ent)
		methods.List = append(methods.List, &ast.Field{Names: []*ast.Ident{ast.NewIdent(exportedFieldName(op.Name))}, Type: ft})
	}
	decl := &ast.GenDecl{Tok: token.TYPE, Specs: []ast.Spec{
		&ast.TypeSpec{Name: ast.NewIdent(name), Type: &ast.InterfaceType{Methods: methods}},
	}}
	return g.AE.Result.Declaration(name, decl)
}

func (g *GoEmitter) InterfaceOperationDeclaration(op *typegraph.Operation) (entity.Entity, error) {
	ft, err := g.buildFuncType(op)
	if err != nil {
		return nil, err
	}
	return g.AE.Result.RawCode(ft), nil
}

// OperationDeclaration renders a free-standing operation as a named Go func
// type.
func (g *GoEmitter) OperationDeclaration(op *typegraph.Operation) (entity.Entity, error) {
	name, err := g.AE.EmitDeclarationName(op)
	if err != nil {
		return nil, err
	}
	ft, err := g.buildFuncType(op)
	if err != nil {
		return nil, err
	}
	decl := &ast.GenDecl{Tok: token.TYPE, Specs: []ast.Spec{&ast.TypeSpec{Name: ast.NewIdent(name), Type: ft}}}
	return g.AE.Result.Declaration(name, decl)
}

func (g *GoEmitter) buildFuncType(op *typegraph.Operation) (*ast.FuncType, error) {
	params := &ast.FieldList{}
	for _, p := range op.Parameters {
		ent, err := g.AE.EmitModelProperty(p)
		if err != nil {
			return nil, err
		}
		params.List = append(params.List, &ast.Field{
			Names: []*ast.Ident{ast.NewIdent(exportedFieldName(p.Name))},
			Type:  fieldIdent(ent),
		})
	}
	var results *ast.FieldList
	if op.ReturnType != nil {
		ent, err := g.AE.EmitOperationReturnType(op)
		if err != nil {
			return nil, err
		}
		results = &ast.FieldList{List: []*ast.Field{{Type: toIdent(ent)}}}
	}
	return &ast.FuncType{Params: params, Results: results}, nil
}

// SourceFile renders sf's accumulated declarations, in insertion order,
// into formatted Go source (spec §4.8).
func (g *GoEmitter) SourceFile(sf *scopegraph.SourceFile) (emitter.SourceFileResult, error) {
	fset := token.NewFileSet()
	file := &ast.File{Name: ast.NewIdent("generated")}
	for path := range sf.Imports {
		astutil.AddImport(fset, file, path)
	}
	for _, decl := range sf.Global.Declarations() {
		switch v := decl.Value.(type) {
		case ast.Decl:
			file.Decls = append(file.Decls, v)
		case []ast.Decl:
			file.Decls = append(file.Decls, v...)
		}
	}
	var buf bytes.Buffer
	if err := format.Node(&buf, fset, file); err != nil {
		return emitter.SourceFileResult{}, fmt.Errorf("fixture: formatting %s: %w", sf.Path, err)
	}
	return emitter.SourceFileResult{Path: sf.Path, Contents: buf.String()}, nil
}

func (g *GoEmitter) currentSourceFile() *scopegraph.SourceFile {
	scope := g.AE.GetContext().Scope()
	sfs, ok := scope.(*scopegraph.SourceFileScope)
	if !ok {
		return nil
	}
	return sfs.File
}

// toIdent converts a resolved or still-circular reference entity into a Go
// type identifier, subscribing to the placeholder if the reference hasn't
// resolved yet: the identifier is returned immediately (by pointer) and its
// Name is filled in when the cycle breaks, which always happens before
// WriteOutput renders it (spec §5: the writer is the only async boundary).
func toIdent(ent entity.Entity) *ast.Ident {
	ident := ast.NewIdent("any")
	assign := func(v any) {
		switch val := v.(type) {
		case string:
			ident.Name = val
		case *ast.Ident:
			ident.Name = val.Name
		case fmt.Stringer:
			ident.Name = val.String()
		}
	}
	switch t := ent.(type) {
	case *entity.RawCode:
		if ph, ok := t.Value.(*placeholder.Placeholder); ok {
			ph.OnResolve(assign)
			return ident
		}
		assign(t.Value)
	case *entity.Declaration:
		ident.Name = t.Name
	}
	return ident
}

// fieldIdent extracts the *ast.Ident a ModelPropertyLiteral/EmitModelProperty
// call already produced, without re-wrapping it (re-wrapping would lose the
// live placeholder subscription toIdent set up).
func fieldIdent(ent entity.Entity) *ast.Ident {
	if rc, ok := ent.(*entity.RawCode); ok {
		if ident, ok := rc.Value.(*ast.Ident); ok {
			return ident
		}
	}
	return ast.NewIdent("any")
}

func funcTypeOf(ent entity.Entity) *ast.FuncType {
	if rc, ok := ent.(*entity.RawCode); ok {
		if ft, ok := rc.Value.(*ast.FuncType); ok {
			return ft
		}
	}
	return &ast.FuncType{Params: &ast.FieldList{}}
}

func exportedFieldName(name string) string {
	if name == "" {
		return name
	}
	r := []rune(name)
	r[0] = unicode.ToUpper(r[0])
	return string(r)
}
