// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package namespace

// Map stores entries under every spelling of a namespaced key so that
// lookups by either wire string succeed. The zero value is not usable;
// call [NewMap].
type Map[V any] struct {
	entries map[string]V
}

// NewMap returns an empty map.
func NewMap[V any]() *Map[V] {
	return &Map[V]{entries: make(map[string]V)}
}

// Set stores value under both spellings of key.
func (m *Map[V]) Set(key Value, value V) {
	for _, name := range key.Names() {
		m.entries[name] = value
	}
}

// Get returns the entry for key, checking the preferred spelling first.
func (m *Map[V]) Get(key Value) (V, bool) {
	for _, name := range key.Names() {
		if value, ok := m.entries[name]; ok {
			return value, true
		}
	}
	var zero V
	return zero, false
}

// Has reports whether key is present under either spelling.
func (m *Map[V]) Has(key Value) bool {
	_, ok := m.Get(key)
	return ok
}

// Delete removes both spellings of key.
func (m *Map[V]) Delete(key Value) {
	for _, name := range key.Names() {
		delete(m.entries, name)
	}
}

// GetNamespaced looks up a raw wire string.
func (m *Map[V]) GetNamespaced(name string) (V, bool) {
	value, ok := m.entries[name]
	return value, ok
}

// HasNamespaced reports whether a raw wire string is present.
func (m *Map[V]) HasNamespaced(name string) bool {
	_, ok := m.entries[name]
	return ok
}

// Keys returns every stored wire string in unspecified order.
func (m *Map[V]) Keys() []string {
	keys := make([]string, 0, len(m.entries))
	for key := range m.entries {
		keys = append(keys, key)
	}
	return keys
}

// Clone returns an independent copy. Values are copied shallowly.
func (m *Map[V]) Clone() *Map[V] {
	clone := NewMap[V]()
	for key, value := range m.entries {
		clone.entries[key] = value
	}
	return clone
}
