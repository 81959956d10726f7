package entity_test

import (
	"testing"

	"github.com/bterlson/cadl-emitter-framework/internal/entity"
)

func TestLiftPassesThroughEntities(t *testing.T) {
	decl := &entity.Declaration{Name: "Foo"}
	if got := entity.Lift(decl); got != entity.Entity(decl) {
		t.Errorf("Lift(Declaration) = %v, want the same instance", got)
	}
	if got := entity.Lift(entity.None); got != entity.Entity(entity.None) {
		t.Errorf("Lift(None) = %v, want None", got)
	}
}

func TestLiftWrapsBareValues(t *testing.T) {
	got := entity.Lift("hello")
	raw, ok := got.(*entity.RawCode)
	if !ok {
		t.Fatalf("Lift(string) = %T, want *RawCode", got)
	}
	if raw.Value != "hello" {
		t.Errorf("RawCode.Value = %v, want %q", raw.Value, "hello")
	}
}

func TestLiftNilIsNoEmit(t *testing.T) {
	if got := entity.Lift(nil); got != entity.Entity(entity.None) {
		t.Errorf("Lift(nil) = %v, want None", got)
	}
}

func TestIsCircular(t *testing.T) {
	marker := &entity.CircularEmit{Key: "modelDeclaration|0x1|0x2"}
	if c, ok := entity.IsCircular(marker); !ok || c.Key != marker.Key {
		t.Errorf("IsCircular(marker) = %v, %v", c, ok)
	}
	if _, ok := entity.IsCircular(entity.None); ok {
		t.Error("IsCircular(None) should report false")
	}
}

func TestStringers(t *testing.T) {
	testCases := []struct {
		name string
		ent  entity.Entity
		want string
	}{
		{"declaration", &entity.Declaration{Name: "Foo"}, "Declaration(Foo)"},
		{"raw code", &entity.RawCode{Value: "x"}, "RawCode(x)"},
		{"no emit", entity.None, "NoEmit"},
		{"circular emit", &entity.CircularEmit{Key: "k"}, "CircularEmit(k)"},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			if got := tc.ent.String(); got != tc.want {
				t.Errorf("String() = %q, want %q", got, tc.want)
			}
		})
	}
}
