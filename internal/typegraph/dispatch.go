package typegraph

import "github.com/bterlson/cadl-emitter-framework/internal/emiterr"

// OperationKey derives the canonical operation key naming which user-emitter
// method handles a given node, per the dispatch table of spec §3. The
// mapping is a static, total function of the node's kind (and, for models
// and unions, a couple of attributes) — name-mangling by string
// concatenation is part of the external contract (spec §9) and is not
// replaced by virtual dispatch anywhere in this package.
func OperationKey(n Node) (string, error) {
	switch t := n.(type) {
	case *Model:
		switch {
		case t.Intrinsic:
			return "modelScalar", nil
		case t.Name == "" || t.Name == "Array":
			return "modelLiteral", nil
		case len(t.TemplateArguments) == 0:
			return "modelDeclaration", nil
		default:
			return "modelInstantiation", nil
		}
	case *Union:
		switch {
		case t.Name == "":
			return "unionLiteral", nil
		case len(t.TemplateArguments) == 0:
			return "unionDeclaration", nil
		default:
			return "unionInstantiation", nil
		}
	case *Operation:
		if t.Interface != nil {
			return "interfaceOperationDeclaration", nil
		}
		return "operationDeclaration", nil
	case *Interface:
		return "interfaceDeclaration", nil
	case *Enum:
		return "enumDeclaration", nil
	case *EnumMember:
		return "enumMember", nil
	case *UnionVariant:
		return "unionVariant", nil
	case *Tuple:
		return "tupleLiteral", nil
	case *Namespace:
		return "namespace", nil
	case *ModelProperty:
		return "modelPropertyLiteral", nil
	case *BooleanLiteral:
		return "booleanLiteral", nil
	case *StringLiteral:
		return "stringLiteral", nil
	case *NumericLiteral:
		return "numericLiteral", nil
	default:
		return "", &emiterr.UnsupportedKindError{Kind: "unknown"}
	}
}

// ExemptFromReferenceContext reports whether an operation key is exempt from
// the "<opKey>ReferenceContext" fold step of §4.5: literals, the intrinsic
// scalar operation, and enum declarations/members never contribute to the
// reference half of the context.
func ExemptFromReferenceContext(opKey string) bool {
	switch opKey {
	case "modelScalar",
		"modelLiteral",
		"unionLiteral",
		"tupleLiteral",
		"booleanLiteral",
		"stringLiteral",
		"numericLiteral",
		"modelPropertyLiteral",
		"enumDeclaration",
		"enumMember":
		return true
	default:
		return false
	}
}
