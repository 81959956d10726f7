package typegraph_test

import (
	"testing"

	"github.com/bterlson/cadl-emitter-framework/internal/typegraph"
)

func TestModelIsTemplateDeclaration(t *testing.T) {
	testCases := []struct {
		name  string
		model *typegraph.Model
		want  bool
	}{
		{"plain model", &typegraph.Model{Name: "Foo"}, false},
		{
			"declared, uninstantiated",
			&typegraph.Model{Name: "Page", TemplateParameters: []string{"T"}},
			true,
		},
		{
			"instantiated",
			&typegraph.Model{
				Name:               "Page",
				TemplateParameters: []string{"T"},
				TemplateArguments:  []typegraph.Node{&typegraph.StringLiteral{}},
			},
			false,
		},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			if got := tc.model.IsTemplateDeclaration(); got != tc.want {
				t.Errorf("IsTemplateDeclaration() = %v, want %v", got, tc.want)
			}
		})
	}
}

func TestUnionIsTemplateDeclaration(t *testing.T) {
	decl := &typegraph.Union{Name: "Box", TemplateParameters: []string{"T"}}
	if !decl.IsTemplateDeclaration() {
		t.Error("expected declared, uninstantiated union to report true")
	}
	inst := &typegraph.Union{
		Name:               "Box",
		TemplateParameters: []string{"T"},
		TemplateArguments:  []typegraph.Node{&typegraph.StringLiteral{}},
	}
	if inst.IsTemplateDeclaration() {
		t.Error("expected instantiated union to report false")
	}
}

func TestModelPropertyByName(t *testing.T) {
	foo := &typegraph.Model{Name: "Foo"}
	foo.Properties = []*typegraph.ModelProperty{
		{Name: "a", Model: foo, Type: &typegraph.StringLiteral{}},
		{Name: "b", Model: foo, Type: &typegraph.NumericLiteral{}},
	}
	if p, ok := foo.PropertyByName("b"); !ok || p.Name != "b" {
		t.Fatalf("PropertyByName(b) = %v, %v", p, ok)
	}
	if _, ok := foo.PropertyByName("missing"); ok {
		t.Fatal("expected missing property to report false")
	}
}

func TestEnclosingNamespaces(t *testing.T) {
	global := &typegraph.Namespace{Name: ""}
	a := &typegraph.Namespace{Name: "A", Parent: global}
	b := &typegraph.Namespace{Name: "B", Parent: a}
	foo := &typegraph.Model{Name: "Foo", Namespace: b}

	chain := typegraph.EnclosingNamespaces(foo)
	if len(chain) != 2 {
		t.Fatalf("expected 2 enclosing namespaces, got %d", len(chain))
	}
	if chain[0].Name != "A" || chain[1].Name != "B" {
		t.Fatalf("expected [A B] outermost-to-innermost, got [%s %s]", chain[0].Name, chain[1].Name)
	}
}

func TestEnclosingNamespacesGlobalOnly(t *testing.T) {
	global := &typegraph.Namespace{Name: ""}
	foo := &typegraph.Model{Name: "Foo", Namespace: global}
	if chain := typegraph.EnclosingNamespaces(foo); len(chain) != 0 {
		t.Fatalf("expected no enclosing namespaces for a global member, got %v", chain)
	}
}

func TestIsDeclaration(t *testing.T) {
	testCases := []struct {
		name string
		node typegraph.Node
		want bool
	}{
		{"namespace", &typegraph.Namespace{Name: "A"}, true},
		{"named model", &typegraph.Model{Name: "Foo"}, true},
		{"anonymous model", &typegraph.Model{}, false},
		{"named union", &typegraph.Union{Name: "U"}, true},
		{"anonymous union", &typegraph.Union{}, false},
		{"interface", &typegraph.Interface{Name: "I"}, true},
		{"enum", &typegraph.Enum{Name: "E"}, true},
		{"operation", &typegraph.Operation{Name: "op"}, true},
		{"tuple", &typegraph.Tuple{}, false},
		{"string literal", &typegraph.StringLiteral{Value: "x"}, false},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			if got := typegraph.IsDeclaration(tc.node); got != tc.want {
				t.Errorf("IsDeclaration(%T) = %v, want %v", tc.node, got, tc.want)
			}
		})
	}
}

func TestName(t *testing.T) {
	testCases := []struct {
		name string
		node typegraph.Node
		want string
	}{
		{"namespace", &typegraph.Namespace{Name: "A"}, "A"},
		{"model", &typegraph.Model{Name: "Foo"}, "Foo"},
		{"model property", &typegraph.ModelProperty{Name: "p"}, "p"},
		{"enum member", &typegraph.EnumMember{Name: "Red"}, "Red"},
		{"union variant", &typegraph.UnionVariant{Name: "a"}, "a"},
		{"tuple has no name", &typegraph.Tuple{}, ""},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			if got := typegraph.Name(tc.node); got != tc.want {
				t.Errorf("Name(%T) = %q, want %q", tc.node, got, tc.want)
			}
		})
	}
}

func TestKinds(t *testing.T) {
	testCases := []struct {
		name string
		node typegraph.Node
		want typegraph.Kind
	}{
		{"namespace", &typegraph.Namespace{}, typegraph.KindNamespace},
		{"model", &typegraph.Model{}, typegraph.KindModel},
		{"model property", &typegraph.ModelProperty{}, typegraph.KindModelProperty},
		{"operation", &typegraph.Operation{}, typegraph.KindOperation},
		{"interface", &typegraph.Interface{}, typegraph.KindInterface},
		{"union", &typegraph.Union{}, typegraph.KindUnion},
		{"union variant", &typegraph.UnionVariant{}, typegraph.KindUnionVariant},
		{"enum", &typegraph.Enum{}, typegraph.KindEnum},
		{"enum member", &typegraph.EnumMember{}, typegraph.KindEnumMember},
		{"tuple", &typegraph.Tuple{}, typegraph.KindTuple},
		{"boolean literal", &typegraph.BooleanLiteral{}, typegraph.KindBooleanLiteral},
		{"string literal", &typegraph.StringLiteral{}, typegraph.KindStringLiteral},
		{"numeric literal", &typegraph.NumericLiteral{}, typegraph.KindNumericLiteral},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			if got := tc.node.Kind(); got != tc.want {
				t.Errorf("Kind() = %v, want %v", got, tc.want)
			}
		})
	}
}
