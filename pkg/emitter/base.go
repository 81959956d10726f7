package emitter

import (
	"fmt"
	"strings"

	"github.com/bterlson/cadl-emitter-framework/internal/entity"
	"github.com/bterlson/cadl-emitter-framework/internal/scopegraph"
	"github.com/bterlson/cadl-emitter-framework/internal/typegraph"
)

// BaseEmitter supplies the trivial default implementation of every
// operation and context method spec §6 requires a UserEmitter to expose:
// traverse children, return NoEmit. A concrete emitter embeds *BaseEmitter
// and overrides the handful of operations it cares about; Go's method
// shadowing plus the dispatcher's reflection-based lookup on the concrete
// type (not on *BaseEmitter) means an override is always picked up, exactly
// as spec §9 requires ("must not be replaced by virtual dispatch").
type BaseEmitter struct {
	AE *AssetEmitter
}

// NewBaseEmitter is the constructor a UserEmitter's own constructor embeds,
// receiving the *AssetEmitter CreateAssetEmitter is already threading
// through.
func NewBaseEmitter(ae *AssetEmitter) *BaseEmitter { return &BaseEmitter{AE: ae} }

func (b *BaseEmitter) Namespace(n *typegraph.Namespace) (entity.Entity, error) {
	for _, ns := range n.Namespaces {
		if _, err := b.AE.EmitType(ns); err != nil {
			return nil, err
		}
	}
	for _, m := range n.Models {
		if _, err := b.AE.EmitType(m); err != nil {
			return nil, err
		}
	}
	for _, op := range n.Operations {
		if _, err := b.AE.EmitType(op); err != nil {
			return nil, err
		}
	}
	for _, e := range n.Enums {
		if _, err := b.AE.EmitType(e); err != nil {
			return nil, err
		}
	}
	for _, u := range n.Unions {
		if _, err := b.AE.EmitType(u); err != nil {
			return nil, err
		}
	}
	for _, i := range n.Interfaces {
		if _, err := b.AE.EmitType(i); err != nil {
			return nil, err
		}
	}
	return b.AE.Result.None(), nil
}

func (b *BaseEmitter) NamespaceContext(*typegraph.Namespace) (map[string]any, error) {
	return nil, nil
}
func (b *BaseEmitter) NamespaceReferenceContext(*typegraph.Namespace) (map[string]any, error) {
	return nil, nil
}

func (b *BaseEmitter) ModelScalar(m *typegraph.Model) (entity.Entity, error) {
	return b.AE.Result.None(), nil
}
func (b *BaseEmitter) ModelScalarContext(*typegraph.Model) (map[string]any, error) {
	return nil, nil
}
func (b *BaseEmitter) ModelScalarReferenceContext(*typegraph.Model) (map[string]any, error) {
	return nil, nil
}

func (b *BaseEmitter) ModelDeclaration(m *typegraph.Model) (entity.Entity, error) {
	if _, err := b.AE.EmitModelProperties(m); err != nil {
		return nil, err
	}
	if m.Indexer != nil {
		if _, err := b.AE.EmitTypeReference(m.Indexer.Value); err != nil {
			return nil, err
		}
	}
	return b.AE.Result.None(), nil
}
func (b *BaseEmitter) ModelDeclarationContext(*typegraph.Model) (map[string]any, error) {
	return nil, nil
}
func (b *BaseEmitter) ModelDeclarationReferenceContext(*typegraph.Model) (map[string]any, error) {
	return nil, nil
}

func (b *BaseEmitter) ModelLiteral(m *typegraph.Model) (entity.Entity, error) {
	if _, err := b.AE.EmitModelProperties(m); err != nil {
		return nil, err
	}
	if m.Indexer != nil {
		if _, err := b.AE.EmitTypeReference(m.Indexer.Value); err != nil {
			return nil, err
		}
	}
	return b.AE.Result.None(), nil
}
func (b *BaseEmitter) ModelLiteralContext(*typegraph.Model) (map[string]any, error) {
	return nil, nil
}
func (b *BaseEmitter) ModelLiteralReferenceContext(*typegraph.Model) (map[string]any, error) {
	return nil, nil
}

func (b *BaseEmitter) ModelInstantiation(m *typegraph.Model) (entity.Entity, error) {
	return b.ModelDeclaration(m)
}
func (b *BaseEmitter) ModelInstantiationContext(m *typegraph.Model) (map[string]any, error) {
	return nil, nil
}
func (b *BaseEmitter) ModelInstantiationReferenceContext(m *typegraph.Model) (map[string]any, error) {
	return nil, nil
}

func (b *BaseEmitter) ModelPropertyLiteral(p *typegraph.ModelProperty) (entity.Entity, error) {
	if _, err := b.AE.EmitTypeReference(p.Type); err != nil {
		return nil, err
	}
	return b.AE.Result.None(), nil
}
func (b *BaseEmitter) ModelPropertyLiteralContext(*typegraph.ModelProperty) (map[string]any, error) {
	return nil, nil
}
func (b *BaseEmitter) ModelPropertyLiteralReferenceContext(*typegraph.ModelProperty) (map[string]any, error) {
	return nil, nil
}

func (b *BaseEmitter) ModelPropertyReference(p *typegraph.ModelProperty) (entity.Entity, error) {
	return b.AE.EmitTypeReference(p.Type)
}

func (b *BaseEmitter) OperationDeclaration(op *typegraph.Operation) (entity.Entity, error) {
	if _, err := b.AE.EmitOperationParameters(op); err != nil {
		return nil, err
	}
	if _, err := b.AE.EmitOperationReturnType(op); err != nil {
		return nil, err
	}
	return b.AE.Result.None(), nil
}
func (b *BaseEmitter) OperationDeclarationContext(*typegraph.Operation) (map[string]any, error) {
	return nil, nil
}
func (b *BaseEmitter) OperationDeclarationReferenceContext(*typegraph.Operation) (map[string]any, error) {
	return nil, nil
}

func (b *BaseEmitter) InterfaceDeclaration(i *typegraph.Interface) (entity.Entity, error) {
	if _, err := b.AE.EmitInterfaceOperations(i); err != nil {
		return nil, err
	}
	return b.AE.Result.None(), nil
}
func (b *BaseEmitter) InterfaceDeclarationContext(*typegraph.Interface) (map[string]any, error) {
	return nil, nil
}
func (b *BaseEmitter) InterfaceDeclarationReferenceContext(*typegraph.Interface) (map[string]any, error) {
	return nil, nil
}

func (b *BaseEmitter) InterfaceOperationDeclaration(op *typegraph.Operation) (entity.Entity, error) {
	return b.OperationDeclaration(op)
}
func (b *BaseEmitter) InterfaceOperationDeclarationContext(*typegraph.Operation) (map[string]any, error) {
	return nil, nil
}
func (b *BaseEmitter) InterfaceOperationDeclarationReferenceContext(*typegraph.Operation) (map[string]any, error) {
	return nil, nil
}

func (b *BaseEmitter) EnumDeclaration(e *typegraph.Enum) (entity.Entity, error) {
	if _, err := b.AE.EmitEnumMembers(e); err != nil {
		return nil, err
	}
	return b.AE.Result.None(), nil
}
func (b *BaseEmitter) EnumDeclarationContext(*typegraph.Enum) (map[string]any, error) {
	return nil, nil
}
func (b *BaseEmitter) EnumDeclarationReferenceContext(*typegraph.Enum) (map[string]any, error) {
	return nil, nil
}

func (b *BaseEmitter) EnumMember(*typegraph.EnumMember) (entity.Entity, error) {
	return b.AE.Result.None(), nil
}
func (b *BaseEmitter) EnumMemberContext(*typegraph.EnumMember) (map[string]any, error) {
	return nil, nil
}

func (b *BaseEmitter) UnionDeclaration(u *typegraph.Union) (entity.Entity, error) {
	if _, err := b.AE.EmitUnionVariants(u); err != nil {
		return nil, err
	}
	return b.AE.Result.None(), nil
}
func (b *BaseEmitter) UnionDeclarationContext(*typegraph.Union) (map[string]any, error) {
	return nil, nil
}
func (b *BaseEmitter) UnionDeclarationReferenceContext(*typegraph.Union) (map[string]any, error) {
	return nil, nil
}

func (b *BaseEmitter) UnionLiteral(u *typegraph.Union) (entity.Entity, error) {
	return b.UnionDeclaration(u)
}
func (b *BaseEmitter) UnionLiteralContext(*typegraph.Union) (map[string]any, error) {
	return nil, nil
}
func (b *BaseEmitter) UnionLiteralReferenceContext(*typegraph.Union) (map[string]any, error) {
	return nil, nil
}

func (b *BaseEmitter) UnionInstantiation(u *typegraph.Union) (entity.Entity, error) {
	return b.UnionDeclaration(u)
}
func (b *BaseEmitter) UnionInstantiationContext(*typegraph.Union) (map[string]any, error) {
	return nil, nil
}
func (b *BaseEmitter) UnionInstantiationReferenceContext(*typegraph.Union) (map[string]any, error) {
	return nil, nil
}

func (b *BaseEmitter) UnionVariant(v *typegraph.UnionVariant) (entity.Entity, error) {
	if _, err := b.AE.EmitTypeReference(v.Type); err != nil {
		return nil, err
	}
	return b.AE.Result.None(), nil
}
func (b *BaseEmitter) UnionVariantContext(*typegraph.UnionVariant) (map[string]any, error) {
	return nil, nil
}
func (b *BaseEmitter) UnionVariantReferenceContext(*typegraph.UnionVariant) (map[string]any, error) {
	return nil, nil
}

func (b *BaseEmitter) TupleLiteral(t *typegraph.Tuple) (entity.Entity, error) {
	if _, err := b.AE.EmitTupleLiteralValues(t); err != nil {
		return nil, err
	}
	return b.AE.Result.None(), nil
}
func (b *BaseEmitter) TupleLiteralContext(*typegraph.Tuple) (map[string]any, error) {
	return nil, nil
}
func (b *BaseEmitter) TupleLiteralReferenceContext(*typegraph.Tuple) (map[string]any, error) {
	return nil, nil
}

func (b *BaseEmitter) BooleanLiteral(*typegraph.BooleanLiteral) (entity.Entity, error) {
	return b.AE.Result.None(), nil
}
func (b *BaseEmitter) BooleanLiteralContext(*typegraph.BooleanLiteral) (map[string]any, error) {
	return nil, nil
}
func (b *BaseEmitter) StringLiteral(*typegraph.StringLiteral) (entity.Entity, error) {
	return b.AE.Result.None(), nil
}
func (b *BaseEmitter) StringLiteralContext(*typegraph.StringLiteral) (map[string]any, error) {
	return nil, nil
}
func (b *BaseEmitter) NumericLiteral(*typegraph.NumericLiteral) (entity.Entity, error) {
	return b.AE.Result.None(), nil
}
func (b *BaseEmitter) NumericLiteralContext(*typegraph.NumericLiteral) (map[string]any, error) {
	return nil, nil
}

// Reference is the default, target-language-agnostic reference renderer: it
// returns the declaration's bare name with no import wiring. Target
// emitters override this to produce qualified names/imports from
// pathUp/pathDown (spec §4.7/§6).
func (b *BaseEmitter) Reference(decl *entity.Declaration, pathUp, pathDown []scopegraph.Scope, common scopegraph.Scope) (any, error) {
	return decl.Name, nil
}

// EmptyValue is the default fill for a NoEmit reference (spec §9 open
// question); target emitters override it for their language's nil/unit
// value.
func (b *BaseEmitter) EmptyValue() any { return "" }

// SourceFile is the default source-file renderer: it keeps sf's path and
// writes the value of each global-scope declaration, one per line, in
// insertion order. Declarations with a nil Value are skipped.
func (b *BaseEmitter) SourceFile(sf *scopegraph.SourceFile) (SourceFileResult, error) {
	var sb strings.Builder
	for _, decl := range sf.Global.Declarations() {
		if decl.Value != nil {
			fmt.Fprintf(&sb, "%v\n", decl.Value)
		}
	}
	return SourceFileResult{Path: sf.Path, Contents: sb.String()}, nil
}
