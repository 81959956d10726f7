// Package keyedmap implements the multi-key associative container of spec
// §2: a user-supplied keyer maps (string, object, object) tuples to a
// stable string, which backs both the result memo and the pending-circular
// waiter table.
//
// Grounded on the teacher's symbol table lookups, which compose a name with
// a scope chain into a single lookup key.
package keyedmap

import "fmt"

// Keyer maps an (opKey, node, context) triple to a stable string key.
type Keyer func(opKey string, node, context any) string

// DefaultKeyer composes the opKey with the pointer identity of node and
// context, matching the memo key (opKey, type, context) of spec §3 —
// context states are interned (package interner) so pointer identity is
// exactly the comparison the spec requires.
func DefaultKeyer(opKey string, node, context any) string {
	return fmt.Sprintf("%s|%p|%p", opKey, node, context)
}

// KeyedMap is a generic multi-key map over values of type V.
type KeyedMap[V any] struct {
	keyer Keyer
	store map[string]V
}

// New creates a KeyedMap using the given keyer, or DefaultKeyer if nil.
func New[V any](keyer Keyer) *KeyedMap[V] {
	if keyer == nil {
		keyer = DefaultKeyer
	}
	return &KeyedMap[V]{keyer: keyer, store: map[string]V{}}
}

// Key computes the stable string key for a triple, exposed so callers can
// reuse one computed key across a Get/Set pair without re-hashing.
func (m *KeyedMap[V]) Key(opKey string, node, context any) string {
	return m.keyer(opKey, node, context)
}

// Get looks up the value for a triple.
func (m *KeyedMap[V]) Get(opKey string, node, context any) (V, bool) {
	v, ok := m.store[m.keyer(opKey, node, context)]
	return v, ok
}

// GetByKey looks up the value for an already-computed key (see Key).
func (m *KeyedMap[V]) GetByKey(key string) (V, bool) {
	v, ok := m.store[key]
	return v, ok
}

// Set stores a value for a triple.
func (m *KeyedMap[V]) Set(opKey string, node, context any, value V) {
	m.store[m.keyer(opKey, node, context)] = value
}

// SetByKey stores a value for an already-computed key.
func (m *KeyedMap[V]) SetByKey(key string, value V) {
	m.store[key] = value
}

// Delete removes the value for a triple, if present.
func (m *KeyedMap[V]) Delete(opKey string, node, context any) {
	delete(m.store, m.keyer(opKey, node, context))
}

// DeleteByKey removes the value for an already-computed key.
func (m *KeyedMap[V]) DeleteByKey(key string) {
	delete(m.store, key)
}
