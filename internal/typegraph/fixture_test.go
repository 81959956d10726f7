package typegraph_test

import (
	"testing"

	"github.com/bterlson/cadl-emitter-framework/internal/typegraph"
)

func TestTwoTypeCycle(t *testing.T) {
	foo, bar := typegraph.TwoTypeCycle()
	if foo.Properties[0].Type != bar {
		t.Error("Foo.p must reference Bar")
	}
	if bar.Properties[0].Type != foo {
		t.Error("Bar.p must reference Foo")
	}
}

func TestThreeTypeCycle(t *testing.T) {
	foo, bar, baz := typegraph.ThreeTypeCycle()
	if foo.Properties[0].Type != bar || foo.Properties[1].Type != bar {
		t.Error("Foo.p and Foo.p2 must both reference Bar")
	}
	if bar.Properties[0].Type != foo || bar.Properties[1].Type != baz {
		t.Error("Bar.p must reference Foo and Bar.p2 must reference Baz")
	}
	if baz.Properties[0].Type != foo || baz.Properties[1].Type != bar {
		t.Error("Baz.p must reference Foo and Baz.p2 must reference Bar")
	}
}

func TestNamespacePropagation(t *testing.T) {
	global, bar, fooInA := typegraph.NamespacePropagation()
	if len(global.Namespaces) != 1 || global.Namespaces[0].Name != "A" {
		t.Fatalf("expected global to contain namespace A, got %+v", global.Namespaces)
	}
	if fooInA.Namespace != global.Namespaces[0] {
		t.Error("Foo must be namespaced under A")
	}
	if bar.Namespace != global {
		t.Error("Bar must be namespaced under the global namespace")
	}
	if bar.Properties[0].Type != fooInA {
		t.Error("Bar.p must reference A.Foo")
	}
	chain := typegraph.EnclosingNamespaces(fooInA)
	if len(chain) != 1 || chain[0].Name != "A" {
		t.Fatalf("expected Foo's enclosing chain to be [A], got %v", chain)
	}
}

func TestReferenceContextFixture(t *testing.T) {
	foo, bar, qux := typegraph.ReferenceContextFixture()
	if foo.Properties[0].Type != qux || bar.Properties[0].Type != qux {
		t.Error("both Foo.p and Bar.p must reference the same Qux instance")
	}
}
