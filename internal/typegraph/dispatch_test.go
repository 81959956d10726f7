package typegraph_test

import (
	"testing"

	"github.com/bterlson/cadl-emitter-framework/internal/emiterr"
	"github.com/bterlson/cadl-emitter-framework/internal/typegraph"
)

func TestOperationKey(t *testing.T) {
	testCases := []struct {
		name string
		node typegraph.Node
		want string
	}{
		{"intrinsic scalar", &typegraph.Model{Name: "string", Intrinsic: true}, "modelScalar"},
		{"anonymous model literal", &typegraph.Model{}, "modelLiteral"},
		{"array literal", &typegraph.Model{Name: "Array"}, "modelLiteral"},
		{"named model declaration", &typegraph.Model{Name: "Foo"}, "modelDeclaration"},
		{
			"model template instantiation",
			&typegraph.Model{Name: "Page", TemplateArguments: []typegraph.Node{&typegraph.StringLiteral{}}},
			"modelInstantiation",
		},
		{"anonymous union literal", &typegraph.Union{}, "unionLiteral"},
		{"named union declaration", &typegraph.Union{Name: "U"}, "unionDeclaration"},
		{
			"union template instantiation",
			&typegraph.Union{Name: "Box", TemplateArguments: []typegraph.Node{&typegraph.StringLiteral{}}},
			"unionInstantiation",
		},
		{"free operation", &typegraph.Operation{Name: "op"}, "operationDeclaration"},
		{
			"interface operation",
			&typegraph.Operation{Name: "op", Interface: &typegraph.Interface{Name: "I"}},
			"interfaceOperationDeclaration",
		},
		{"interface", &typegraph.Interface{Name: "I"}, "interfaceDeclaration"},
		{"enum", &typegraph.Enum{Name: "E"}, "enumDeclaration"},
		{"enum member", &typegraph.EnumMember{Name: "A"}, "enumMember"},
		{"union variant", &typegraph.UnionVariant{Name: "a"}, "unionVariant"},
		{"tuple", &typegraph.Tuple{}, "tupleLiteral"},
		{"namespace", &typegraph.Namespace{Name: "A"}, "namespace"},
		{"model property", &typegraph.ModelProperty{Name: "p"}, "modelPropertyLiteral"},
		{"boolean literal", &typegraph.BooleanLiteral{}, "booleanLiteral"},
		{"string literal", &typegraph.StringLiteral{}, "stringLiteral"},
		{"numeric literal", &typegraph.NumericLiteral{}, "numericLiteral"},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			got, err := typegraph.OperationKey(tc.node)
			if err != nil {
				t.Fatalf("OperationKey() error = %v", err)
			}
			if got != tc.want {
				t.Errorf("OperationKey() = %q, want %q", got, tc.want)
			}
		})
	}
}

func TestOperationKeyUnsupportedKind(t *testing.T) {
	_, err := typegraph.OperationKey(nil)
	var unsupported *emiterr.UnsupportedKindError
	if err == nil {
		t.Fatal("expected an error for an unrecognized node kind")
	}
	if _, ok := err.(*emiterr.UnsupportedKindError); !ok {
		t.Fatalf("error = %T, want %T", err, unsupported)
	}
}

func TestExemptFromReferenceContext(t *testing.T) {
	testCases := []struct {
		opKey string
		want  bool
	}{
		{"modelScalar", true},
		{"modelLiteral", true},
		{"unionLiteral", true},
		{"tupleLiteral", true},
		{"booleanLiteral", true},
		{"stringLiteral", true},
		{"numericLiteral", true},
		{"modelPropertyLiteral", true},
		{"enumDeclaration", true},
		{"enumMember", true},
		{"modelDeclaration", false},
		{"modelInstantiation", false},
		{"namespace", false},
		{"operationDeclaration", false},
		{"interfaceDeclaration", false},
		{"unionDeclaration", false},
		{"unionVariant", false},
	}
	for _, tc := range testCases {
		t.Run(tc.opKey, func(t *testing.T) {
			if got := typegraph.ExemptFromReferenceContext(tc.opKey); got != tc.want {
				t.Errorf("ExemptFromReferenceContext(%q) = %v, want %v", tc.opKey, got, tc.want)
			}
		})
	}
}
