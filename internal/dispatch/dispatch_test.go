package dispatch

import (
	"testing"

	"github.com/bterlson/cadl-emitter-framework/internal/emitcontext"
	"github.com/bterlson/cadl-emitter-framework/internal/entity"
	"github.com/bterlson/cadl-emitter-framework/internal/typegraph"
)

type stubEmitter struct {
	declCalls int
}

func (s *stubEmitter) ModelDeclarationContext(m *typegraph.Model) (map[string]any, error) {
	return map[string]any{"scope": "root"}, nil
}

func (s *stubEmitter) ModelDeclaration(m *typegraph.Model) (entity.Entity, error) {
	s.declCalls++
	return &entity.Declaration{Name: m.Name}, nil
}

func newTestDispatcher(userEmitter any) *Dispatcher {
	lex := func(opKey string, node typegraph.Node) (map[string]any, error) {
		return callContext(userEmitter, opKey, node, false)
	}
	ref := func(opKey string, node typegraph.Node) (map[string]any, error) {
		return callContext(userEmitter, opKey, node, true)
	}
	program := func() (map[string]any, map[string]any, error) {
		return map[string]any{"scope": "program"}, nil, nil
	}
	d := New(emitcontext.NewEngine(lex, ref, program))
	d.SetUserEmitter(userEmitter)
	return d
}

func TestInvokeMemoizesSameNodeAndContext(t *testing.T) {
	se := &stubEmitter{}
	d := newTestDispatcher(se)
	foo := &typegraph.Model{Name: "Foo"}

	if _, err := d.EmitType(foo); err != nil {
		t.Fatalf("EmitType() error = %v", err)
	}
	if _, err := d.EmitType(foo); err != nil {
		t.Fatalf("EmitType() error = %v", err)
	}
	if se.declCalls != 1 {
		t.Errorf("ModelDeclaration called %d times, want 1 (memoized)", se.declCalls)
	}
}

func TestInvokeMissingOperationReturnsError(t *testing.T) {
	se := &stubEmitter{}
	d := newTestDispatcher(se)
	u := &typegraph.Union{Name: "U"}

	if _, err := d.EmitType(u); err == nil {
		t.Fatal("expected an error for a node kind the stub emitter has no method for")
	}
}

func TestCurrentScopeNilBeforeAnyInvoke(t *testing.T) {
	d := newTestDispatcher(&stubEmitter{})
	if got := d.CurrentScope(); got != nil {
		t.Errorf("CurrentScope() = %v, want nil", got)
	}
}

func TestExportedName(t *testing.T) {
	testCases := []struct {
		opKey string
		want  string
	}{
		{"modelDeclaration", "ModelDeclaration"},
		{"", ""},
		{"enumMember", "EnumMember"},
	}
	for _, tc := range testCases {
		if got := exportedName(tc.opKey); got != tc.want {
			t.Errorf("exportedName(%q) = %q, want %q", tc.opKey, got, tc.want)
		}
	}
}
