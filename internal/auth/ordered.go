// Package auth extracts authentication material from accepted exchanges,
// classifies the auth scheme in use, and assembles the portable auth
// descriptor.
package auth

// OrderedMap is a string map that preserves insertion order. Several
// classification decisions are "first match over the accumulated names";
// iteration must follow insertion order so results are reproducible.
type OrderedMap struct {
	keys []string
	vals map[string]string
}

// NewOrderedMap creates an empty ordered map.
func NewOrderedMap() *OrderedMap {
	return &OrderedMap{vals: make(map[string]string)}
}

// Set inserts or updates a key. New keys append to the iteration order;
// updates keep the original position.
func (m *OrderedMap) Set(key, value string) {
	if _, ok := m.vals[key]; !ok {
		m.keys = append(m.keys, key)
	}
	m.vals[key] = value
}

// SetIfAbsent inserts a key only when it is not already present.
func (m *OrderedMap) SetIfAbsent(key, value string) {
	if _, ok := m.vals[key]; ok {
		return
	}
	m.keys = append(m.keys, key)
	m.vals[key] = value
}

// Get returns the value for a key.
func (m *OrderedMap) Get(key string) (string, bool) {
	v, ok := m.vals[key]
	return v, ok
}

// Has reports whether a key is present.
func (m *OrderedMap) Has(key string) bool {
	_, ok := m.vals[key]
	return ok
}

// Keys returns the keys in insertion order.
func (m *OrderedMap) Keys() []string {
	out := make([]string, len(m.keys))
	copy(out, m.keys)
	return out
}

// Len returns the number of entries.
func (m *OrderedMap) Len() int {
	return len(m.keys)
}

// Map returns a plain map copy of the entries.
func (m *OrderedMap) Map() map[string]string {
	out := make(map[string]string, len(m.vals))
	for k, v := range m.vals {
		out[k] = v
	}
	return out
}
