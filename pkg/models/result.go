package models

import (
	"bytes"
	"encoding/json"
	"fmt"

	"github.com/vmihailenco/msgpack/v5"
)

// Metadata is a string-keyed map that preserves insertion order. Overwriting
// an existing key keeps its original position. It serializes (JSON and
// MessagePack) in insertion order so downstream formatters render fields
// deterministically.
//
// Metadata is not safe for concurrent mutation; results are assembled by a
// single goroutine and read-only afterwards.
type Metadata struct {
	keys   []string
	values map[string]string
}

// NewMetadata creates an empty metadata map.
func NewMetadata() *Metadata {
	return &Metadata{values: make(map[string]string)}
}

// Set stores a key/value pair, appending the key on first insertion.
func (m *Metadata) Set(key, value string) {
	if m.values == nil {
		m.values = make(map[string]string)
	}
	if _, exists := m.values[key]; !exists {
		m.keys = append(m.keys, key)
	}
	m.values[key] = value
}

// Get retrieves a value by key.
func (m *Metadata) Get(key string) (string, bool) {
	if m == nil || m.values == nil {
		return "", false
	}
	v, ok := m.values[key]
	return v, ok
}

// Keys returns the keys in insertion order. The returned slice is a copy.
func (m *Metadata) Keys() []string {
	if m == nil {
		return nil
	}
	out := make([]string, len(m.keys))
	copy(out, m.keys)
	return out
}

// Len returns the number of entries.
func (m *Metadata) Len() int {
	if m == nil {
		return 0
	}
	return len(m.keys)
}

// Clone returns an independent copy with the same ordering.
func (m *Metadata) Clone() *Metadata {
	if m == nil {
		return NewMetadata()
	}
	out := &Metadata{
		keys:   make([]string, len(m.keys)),
		values: make(map[string]string, len(m.values)),
	}
	copy(out.keys, m.keys)
	for k, v := range m.values {
		out.values[k] = v
	}
	return out
}

// MarshalJSON emits a JSON object with fields in insertion order.
func (m *Metadata) MarshalJSON() ([]byte, error) {
	buf := []byte{'{'}
	for i, k := range m.keys {
		if i > 0 {
			buf = append(buf, ',')
		}
		kb, err := json.Marshal(k)
		if err != nil {
			return nil, err
		}
		vb, err := json.Marshal(m.values[k])
		if err != nil {
			return nil, err
		}
		buf = append(buf, kb...)
		buf = append(buf, ':')
		buf = append(buf, vb...)
	}
	return append(buf, '}'), nil
}

// UnmarshalJSON reads a JSON object, preserving the document's field order.
func (m *Metadata) UnmarshalJSON(data []byte) error {
	dec := json.NewDecoder(bytes.NewReader(data))
	tok, err := dec.Token()
	if err != nil {
		return err
	}
	if d, ok := tok.(json.Delim); !ok || d != '{' {
		return fmt.Errorf("metadata: expected JSON object, got %v", tok)
	}

	m.keys = nil
	m.values = make(map[string]string)

	for dec.More() {
		keyTok, err := dec.Token()
		if err != nil {
			return err
		}
		key, ok := keyTok.(string)
		if !ok {
			return fmt.Errorf("metadata: non-string key %v", keyTok)
		}
		var value string
		if err := dec.Decode(&value); err != nil {
			return fmt.Errorf("metadata: value for %q: %w", key, err)
		}
		m.Set(key, value)
	}

	// Consume closing brace.
	if _, err := dec.Token(); err != nil {
		return err
	}
	return nil
}

// EncodeMsgpack emits a fixed map with fields in insertion order.
func (m *Metadata) EncodeMsgpack(enc *msgpack.Encoder) error {
	if err := enc.EncodeMapLen(len(m.keys)); err != nil {
		return err
	}
	for _, k := range m.keys {
		if err := enc.EncodeString(k); err != nil {
			return err
		}
		if err := enc.EncodeString(m.values[k]); err != nil {
			return err
		}
	}
	return nil
}

// DecodeMsgpack reads a map, preserving the encoded field order.
func (m *Metadata) DecodeMsgpack(dec *msgpack.Decoder) error {
	n, err := dec.DecodeMapLen()
	if err != nil {
		return err
	}
	m.keys = nil
	m.values = make(map[string]string, n)
	for i := 0; i < n; i++ {
		k, err := dec.DecodeString()
		if err != nil {
			return err
		}
		v, err := dec.DecodeString()
		if err != nil {
			return err
		}
		m.Set(k, v)
	}
	return nil
}

// PaginatedResult bundles one page of items with its position metadata and
// the navigation window computed for it.
type PaginatedResult[T any] struct {
	Items    []T              `json:"items"`
	PageInfo PageInfo         `json:"page_info"`
	Window   NavigationWindow `json:"window"`
	Metadata *Metadata        `json:"metadata,omitempty"`
}

// NewPaginatedResult assembles a result value. The items slice is stored
// as-is; callers hand over ownership.
func NewPaginatedResult[T any](items []T, info PageInfo, window NavigationWindow, meta *Metadata) *PaginatedResult[T] {
	if meta == nil {
		meta = NewMetadata()
	}
	return &PaginatedResult[T]{
		Items:    items,
		PageInfo: info,
		Window:   window,
		Metadata: meta,
	}
}

