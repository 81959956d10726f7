package typegraph

// Namespace recursively contains child namespaces, models, operations,
// enums, unions and interfaces. The global namespace has an empty Name and
// a nil Parent; it is never among the enclosing namespaces of an enclosure
// stack (§4.5), though emitting it directly puts it on its own stack.
type Namespace struct {
	Name            string
	Parent          *Namespace
	Namespaces      []*Namespace
	Models          []*Model
	Operations      []*Operation
	Enums           []*Enum
	Unions          []*Union
	Interfaces      []*Interface
	CompilerBuiltin bool // e.g. the "Cadl" namespace itself; skipped by emitProgram unless emitCadlNamespace
}

func (*Namespace) Kind() Kind { return KindNamespace }

// Indexer describes a model's index signature, e.g. Record<string, T>.
type Indexer struct {
	Key   Node
	Value Node
}

// Model carries a name (empty for anonymous literals, "Array" for array
// instantiations), an insertion-ordered property list, an optional base
// model, an optional indexer and possibly template arguments.
type Model struct {
	Name               string
	Namespace          *Namespace
	Properties         []*ModelProperty
	BaseModel          *Model
	Indexer            *Indexer
	TemplateArguments  []Node
	TemplateParameters []string // declared but uninstantiated template parameters
	Intrinsic          bool
}

// IsTemplateDeclaration reports whether m has declared template parameters
// that have not been instantiated (spec §4.9: skipped by the program walk;
// reachable normally via references once instantiated).
func (m *Model) IsTemplateDeclaration() bool {
	return len(m.TemplateParameters) > 0 && len(m.TemplateArguments) == 0
}

func (*Model) Kind() Kind { return KindModel }

// PropertyByName looks a property up by name, preserving insertion order for
// iteration via Properties directly.
func (m *Model) PropertyByName(name string) (*ModelProperty, bool) {
	for _, p := range m.Properties {
		if p.Name == name {
			return p, true
		}
	}
	return nil, false
}

// ModelProperty is a single named slot of a Model.
type ModelProperty struct {
	Name     string
	Model    *Model
	Type     Node
	Optional bool
}

func (*ModelProperty) Kind() Kind { return KindModelProperty }

// Operation references its parent Interface when nested; otherwise it is a
// free-standing namespace member.
type Operation struct {
	Name       string
	Namespace  *Namespace
	Interface  *Interface
	Parameters []*ModelProperty
	ReturnType Node
}

func (*Operation) Kind() Kind { return KindOperation }

// Interface groups a set of operations.
type Interface struct {
	Name       string
	Namespace  *Namespace
	Operations []*Operation
}

func (*Interface) Kind() Kind { return KindInterface }

// Union is named when Name is non-empty.
type Union struct {
	Name               string
	Namespace          *Namespace
	Variants           []*UnionVariant
	TemplateArguments  []Node
	TemplateParameters []string
}

func (*Union) Kind() Kind { return KindUnion }

// IsTemplateDeclaration mirrors Model.IsTemplateDeclaration for unions.
func (u *Union) IsTemplateDeclaration() bool {
	return len(u.TemplateParameters) > 0 && len(u.TemplateArguments) == 0
}

// UnionVariant is a single arm of a Union. Name is empty for positional
// variants.
type UnionVariant struct {
	Name  string
	Union *Union
	Type  Node
}

func (*UnionVariant) Kind() Kind { return KindUnionVariant }

// Enum is always a named declaration.
type Enum struct {
	Name      string
	Namespace *Namespace
	Members   []*EnumMember
}

func (*Enum) Kind() Kind { return KindEnum }

// EnumMember is a single member of an Enum, with an optional literal value.
type EnumMember struct {
	Name  string
	Enum  *Enum
	Value any
}

func (*EnumMember) Kind() Kind { return KindEnumMember }

// Tuple is a fixed-length, heterogeneous structural literal.
type Tuple struct {
	Values []Node
}

func (*Tuple) Kind() Kind { return KindTuple }

// BooleanLiteral, StringLiteral and NumericLiteral are structural literal
// types carrying a concrete value.
type BooleanLiteral struct{ Value bool }

func (*BooleanLiteral) Kind() Kind { return KindBooleanLiteral }

type StringLiteral struct{ Value string }

func (*StringLiteral) Kind() Kind { return KindStringLiteral }

type NumericLiteral struct{ Value float64 }

func (*NumericLiteral) Kind() Kind { return KindNumericLiteral }

// enclosingNamespace returns the namespace a declaration node is lexically
// nested in, or nil for the global namespace / non-declaration nodes.
func enclosingNamespace(n Node) *Namespace {
	switch t := n.(type) {
	case *Namespace:
		return t.Parent
	case *Model:
		return t.Namespace
	case *Interface:
		return t.Namespace
	case *Enum:
		return t.Namespace
	case *Operation:
		return t.Namespace
	case *Union:
		return t.Namespace
	default:
		return nil
	}
}

// EnclosingNamespaces returns the chain of non-empty enclosing namespaces
// from outermost to innermost, per §4.5.
func EnclosingNamespaces(n Node) []*Namespace {
	var chain []*Namespace
	for cur := enclosingNamespace(n); cur != nil && cur.Name != ""; cur = cur.Parent {
		chain = append([]*Namespace{cur}, chain...)
	}
	return chain
}

// IsDeclaration reports whether n is one of the declaration kinds that reset
// the lexical enclosure stack (§4.5): Namespace, a named Model, Interface,
// Enum, Operation, or a named Union.
func IsDeclaration(n Node) bool {
	switch t := n.(type) {
	case *Namespace, *Interface, *Enum, *Operation:
		return true
	case *Model:
		return t.Name != ""
	case *Union:
		return t.Name != ""
	default:
		return false
	}
}

// Name returns the declared name of a node, or "" for anonymous/structural
// nodes and literals.
func Name(n Node) string {
	switch t := n.(type) {
	case *Namespace:
		return t.Name
	case *Model:
		return t.Name
	case *Interface:
		return t.Name
	case *Enum:
		return t.Name
	case *Operation:
		return t.Name
	case *Union:
		return t.Name
	case *ModelProperty:
		return t.Name
	case *UnionVariant:
		return t.Name
	case *EnumMember:
		return t.Name
	default:
		return ""
	}
}
