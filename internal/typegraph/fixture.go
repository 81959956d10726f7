package typegraph

// This file builds the small, literal type graphs named in spec §8's
// scenario list. No Cadl/TypeSpec compiler exists in this module (it is an
// out-of-scope external collaborator per spec §1), so tests and
// cmd/cadlemit's demo mode construct the graph directly instead of parsing
// source text, mirroring the teacher's *_test.go pattern of building ASTs
// by hand where a parser fixture would otherwise be needed.

// TwoTypeCycle builds scenario 1 of spec §8: model Foo {p: Bar}; model Bar
// {p: Foo}, each property referencing the other model directly.
func TwoTypeCycle() (foo, bar *Model) {
	foo = &Model{Name: "Foo"}
	bar = &Model{Name: "Bar"}
	foo.Properties = []*ModelProperty{{Name: "p", Model: foo, Type: bar}}
	bar.Properties = []*ModelProperty{{Name: "p", Model: bar, Type: foo}}
	return foo, bar
}

// ThreeTypeCycle builds scenario 2 of spec §8: model Foo {p:Bar,p2:Bar};
// model Bar {p:Foo,p2:Baz}; model Baz {p:Foo,p2:Bar}.
func ThreeTypeCycle() (foo, bar, baz *Model) {
	foo = &Model{Name: "Foo"}
	bar = &Model{Name: "Bar"}
	baz = &Model{Name: "Baz"}
	foo.Properties = []*ModelProperty{
		{Name: "p", Model: foo, Type: bar},
		{Name: "p2", Model: foo, Type: bar},
	}
	bar.Properties = []*ModelProperty{
		{Name: "p", Model: bar, Type: foo},
		{Name: "p2", Model: bar, Type: baz},
	}
	baz.Properties = []*ModelProperty{
		{Name: "p", Model: baz, Type: foo},
		{Name: "p2", Model: baz, Type: bar},
	}
	return foo, bar, baz
}

// NamespacePropagation builds scenario 4 of spec §8: model Bar {p: A.Foo};
// namespace A { model Foo {p:string} }, returning the global namespace the
// walk starts from plus the two models for test assertions.
func NamespacePropagation() (global *Namespace, bar, fooInA *Model) {
	global = &Namespace{Name: ""}
	nsA := &Namespace{Name: "A", Parent: global}
	fooInA = &Model{Name: "Foo", Namespace: nsA}
	fooInA.Properties = []*ModelProperty{{Name: "p", Model: fooInA, Type: &StringLiteral{}}}
	nsA.Models = append(nsA.Models, fooInA)

	bar = &Model{Name: "Bar", Namespace: global}
	bar.Properties = []*ModelProperty{{Name: "p", Model: bar, Type: fooInA}}

	global.Namespaces = append(global.Namespaces, nsA)
	global.Models = append(global.Models, bar)
	return global, bar, fooInA
}

// ReferenceContextFixture builds scenario 5 of spec §8: a type Qux
// referenced from both Foo and Bar.
func ReferenceContextFixture() (foo, bar, qux *Model) {
	qux = &Model{Name: "Qux"}
	foo = &Model{Name: "Foo"}
	bar = &Model{Name: "Bar"}
	foo.Properties = []*ModelProperty{{Name: "p", Model: foo, Type: qux}}
	bar.Properties = []*ModelProperty{{Name: "p", Model: bar, Type: qux}}
	return foo, bar, qux
}
