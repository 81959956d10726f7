package keyedmap_test

import (
	"testing"

	"github.com/bterlson/cadl-emitter-framework/internal/keyedmap"
)

func TestKeyedMapGetSetDefaultKeyer(t *testing.T) {
	m := keyedmap.New[string](nil)
	node := struct{ tag string }{"node"}
	ctx := struct{ tag string }{"ctx"}

	if _, ok := m.Get("modelDeclaration", &node, &ctx); ok {
		t.Fatal("expected a miss before Set")
	}
	m.Set("modelDeclaration", &node, &ctx, "Foo")
	got, ok := m.Get("modelDeclaration", &node, &ctx)
	if !ok || got != "Foo" {
		t.Fatalf("Get() = %v, %v, want %q, true", got, ok, "Foo")
	}
}

func TestKeyedMapDistinguishesTriples(t *testing.T) {
	m := keyedmap.New[string](nil)
	// Non-zero-size values: Go may give distinct zero-size allocations the
	// same address, which would make n1 and n2 the same pointer key.
	n1, n2 := &struct{ tag string }{"n1"}, &struct{ tag string }{"n2"}
	ctx := &struct{}{}
	m.Set("modelDeclaration", n1, ctx, "Foo")
	m.Set("modelDeclaration", n2, ctx, "Bar")
	if v, _ := m.Get("modelDeclaration", n1, ctx); v != "Foo" {
		t.Errorf("Get(n1) = %q, want %q", v, "Foo")
	}
	if v, _ := m.Get("modelDeclaration", n2, ctx); v != "Bar" {
		t.Errorf("Get(n2) = %q, want %q", v, "Bar")
	}
	if v, _ := m.Get("modelReferenceContext", n1, ctx); v != "" {
		t.Errorf("expected a different opKey to miss, got %q", v)
	}
}

func TestKeyedMapByKey(t *testing.T) {
	m := keyedmap.New[int](nil)
	key := m.Key("enumDeclaration", &struct{}{}, &struct{}{})
	m.SetByKey(key, 7)
	if got, ok := m.GetByKey(key); !ok || got != 7 {
		t.Fatalf("GetByKey() = %v, %v, want 7, true", got, ok)
	}
}

func TestKeyedMapDelete(t *testing.T) {
	m := keyedmap.New[string](nil)
	n, ctx := &struct{}{}, &struct{}{}
	m.Set("namespace", n, ctx, "A")
	m.Delete("namespace", n, ctx)
	if _, ok := m.Get("namespace", n, ctx); ok {
		t.Error("expected a miss after Delete")
	}
}

func TestKeyedMapCustomKeyer(t *testing.T) {
	calls := 0
	keyer := func(opKey string, node, context any) string {
		calls++
		return opKey
	}
	m := keyedmap.New[int](keyer)
	m.Set("modelScalar", nil, nil, 1)
	m.Set("modelScalar", "anything else", "ignored", 2)
	got, ok := m.Get("modelScalar", nil, nil)
	if !ok || got != 2 {
		t.Fatalf("custom keyer collapsing on opKey alone: Get() = %v, %v, want 2, true", got, ok)
	}
	if calls == 0 {
		t.Error("expected the custom keyer to be invoked")
	}
}
