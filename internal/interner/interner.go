// Package interner implements the canonicalization required by spec §4.3:
// two context-state maps with equal keys and values must compare equal by
// identity, so that the dispatcher's memo tables can use pointer-keyed
// lookups instead of deep comparisons on every visit.
//
// Grounded on the teacher's symbols table, which canonicalizes structurally
// equal records (e.g. recordsEqual-style comparison of TRecord types) so
// that repeated lookups of the same shape share one instance.
package interner

import (
	"fmt"
	"reflect"
	"sort"
	"strings"
)

// Interner canonicalizes small records (string-keyed maps of arbitrary
// values) so identity equals deep equality.
type Interner struct {
	empty   map[string]any
	byPrint map[string]map[string]any
}

// New creates an Interner. The zero value is usable for InternMap but New
// pre-populates the shared empty-record sentinel for clarity.
func New() *Interner {
	return &Interner{
		empty:   map[string]any{},
		byPrint: map[string]map[string]any{},
	}
}

// InternMap returns the canonical instance of m: empty maps all collapse to
// a single shared sentinel, and maps with equal keys/values (by fmt
// formatting, which is stable for the pointer- and scalar-valued payloads
// context states carry) return the same backing map on every call.
func (in *Interner) InternMap(m map[string]any) map[string]any {
	if len(m) == 0 {
		return in.empty
	}
	if in.byPrint == nil {
		in.byPrint = map[string]map[string]any{}
	}
	key := fingerprint(m)
	if existing, ok := in.byPrint[key]; ok {
		return existing
	}
	canon := make(map[string]any, len(m))
	for k, v := range m {
		canon[k] = v
	}
	in.byPrint[key] = canon
	return canon
}

func fingerprint(m map[string]any) string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	var sb strings.Builder
	for _, k := range keys {
		fmt.Fprintf(&sb, "%s=%v;", k, m[k])
	}
	return sb.String()
}

// Identity returns a stable identity for an already-canonical map, usable as
// a comparable map key elsewhere (e.g. the context-state cache). Two maps
// returned from the same InternMap call for equal content share this value.
func Identity(m map[string]any) uintptr {
	if len(m) == 0 {
		return 0
	}
	return reflect.ValueOf(m).Pointer()
}
