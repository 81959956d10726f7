// Package scopegraph implements the scope hierarchy of spec §4.4: a forest
// of source-file and namespace scopes owning the declarations emitted into
// them, plus the scope-chain/common-ancestor computation reference
// resolution needs to compute relative imports.
package scopegraph

import (
	"fmt"

	"github.com/bterlson/cadl-emitter-framework/internal/entity"
)

// Kind distinguishes a source-file scope from a namespace scope.
type Kind int

const (
	KindSourceFile Kind = iota
	KindNamespace
)

// Scope is a node in the output-side hierarchy. Declarations is append-only
// during traversal; each declaration references exactly one owning scope.
type Scope interface {
	ScopeID() string
	ScopeKind() Kind
	Parent() Scope
	Children() []Scope
	Declarations() []*entity.Declaration
	AppendDeclaration(*entity.Declaration)
}

type baseScope struct {
	id           string
	parent       Scope
	children     []Scope
	declarations []*entity.Declaration
}

func (b *baseScope) ScopeID() string                         { return b.id }
func (b *baseScope) Parent() Scope                           { return b.parent }
func (b *baseScope) Children() []Scope                       { return b.children }
func (b *baseScope) Declarations() []*entity.Declaration     { return b.declarations }
func (b *baseScope) AppendDeclaration(d *entity.Declaration) { b.declarations = append(b.declarations, d) }

// SourceFile is the asset-emitter-owned file a SourceFileScope roots.
// Imports maps an import path to the ordered, deduplicated set of names
// imported from it.
type SourceFile struct {
	Path       string
	Global     *SourceFileScope
	Imports    map[string][]string
	importSeen map[string]map[string]bool
}

// AddImport records that name is imported from importPath, preserving
// first-seen order and de-duplicating repeats.
func (sf *SourceFile) AddImport(importPath, name string) {
	if sf.importSeen == nil {
		sf.importSeen = map[string]map[string]bool{}
	}
	if sf.importSeen[importPath] == nil {
		sf.importSeen[importPath] = map[string]bool{}
		sf.Imports[importPath] = nil
	}
	if sf.importSeen[importPath][name] {
		return
	}
	sf.importSeen[importPath][name] = true
	sf.Imports[importPath] = append(sf.Imports[importPath], name)
}

// SourceFileScope is the root scope of a SourceFile.
type SourceFileScope struct {
	baseScope
	File *SourceFile
}

func (s *SourceFileScope) ScopeKind() Kind { return KindSourceFile }

// NamespaceScope is a nested scope created dynamically by the user emitter
// during traversal, e.g. one source-language namespace per target-language
// namespace block.
type NamespaceScope struct {
	baseScope
	Block any // the namespace "block" object the user emitter passed in
	Name  string
}

func (s *NamespaceScope) ScopeKind() Kind { return KindNamespace }

// CreateSourceFile allocates a SourceFile with a root source-file scope.
func CreateSourceFile(path string) *SourceFile {
	sf := &SourceFile{Path: path, Imports: map[string][]string{}}
	root := &SourceFileScope{File: sf}
	root.id = fmt.Sprintf("sourcefile:%s", path)
	sf.Global = root
	return sf
}

// CreateScope creates a NamespaceScope when block is anything other than a
// *SourceFile, a SourceFileScope otherwise (spec §4.4); in both cases the
// parent's children list is appended.
func CreateScope(block any, name string, parent Scope) (Scope, error) {
	if parent == nil {
		return nil, fmt.Errorf("scopegraph: createScope requires a non-nil parent")
	}
	var s Scope
	if sf, ok := block.(*SourceFile); ok {
		sfs := &SourceFileScope{File: sf}
		sfs.id = fmt.Sprintf("sourcefile:%s", sf.Path)
		s = sfs
	} else {
		ns := &NamespaceScope{Block: block, Name: name}
		ns.id = fmt.Sprintf("namespace:%s:%p", name, block)
		s = ns
	}
	switch t := s.(type) {
	case *SourceFileScope:
		t.parent = parent
	case *NamespaceScope:
		t.parent = parent
	}
	appendChild(parent, s)
	return s, nil
}

func appendChild(parent Scope, child Scope) {
	switch t := parent.(type) {
	case *SourceFileScope:
		t.children = append(t.children, child)
	case *NamespaceScope:
		t.children = append(t.children, child)
	}
}

// Chain returns the path from the forest root to s, root first.
func Chain(s Scope) []Scope {
	var chain []Scope
	for cur := s; cur != nil; cur = cur.Parent() {
		chain = append([]Scope{cur}, chain...)
	}
	return chain
}

// Diff splits the chains of from and to at their first divergence into
// pathUp (from's leaf up to, but not including, the common ancestor) and
// pathDown (the common ancestor's child down to to's leaf), returning the
// common ancestor scope. If from and to share no ancestor, common is nil.
func Diff(from, to Scope) (pathUp, pathDown []Scope, common Scope) {
	fc := Chain(from)
	tc := Chain(to)
	i := 0
	for i < len(fc) && i < len(tc) && fc[i] == tc[i] {
		i++
	}
	if i > 0 {
		common = fc[i-1]
	}
	for j := len(fc) - 1; j >= i; j-- {
		pathUp = append(pathUp, fc[j])
	}
	pathDown = append(pathDown, tc[i:]...)
	return pathUp, pathDown, common
}
