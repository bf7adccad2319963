package analysis

import (
	"bytes"
	"encoding/json"
)

// ColumnMap is a column-name keyed map that remembers insertion order, so
// JSON output follows table column order.
type ColumnMap[V any] struct {
	keys []string
	vals map[string]V
}

// Set stores v under key, appending the key on first use.
func (m *ColumnMap[V]) Set(key string, v V) {
	if m.vals == nil {
		m.vals = make(map[string]V)
	}
	if _, ok := m.vals[key]; !ok {
		m.keys = append(m.keys, key)
	}
	m.vals[key] = v
}

func (m ColumnMap[V]) Get(key string) (V, bool) {
	v, ok := m.vals[key]
	return v, ok
}

// Keys returns the keys in insertion order.
func (m ColumnMap[V]) Keys() []string { return append([]string(nil), m.keys...) }

func (m ColumnMap[V]) Len() int { return len(m.keys) }

// MarshalJSON writes an object whose members follow insertion order.
func (m ColumnMap[V]) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, k := range m.keys {
		if i > 0 {
			buf.WriteByte(',')
		}
		if err := writeMember(&buf, k, m.vals[k]); err != nil {
			return nil, err
		}
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

func writeMember(buf *bytes.Buffer, key string, v any) error {
	kb, err := marshalNoEscape(key)
	if err != nil {
		return err
	}
	vb, err := marshalNoEscape(v)
	if err != nil {
		return err
	}
	buf.Write(kb)
	buf.WriteByte(':')
	buf.Write(vb)
	return nil
}

func marshalNoEscape(v any) ([]byte, error) {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	if err := enc.Encode(v); err != nil {
		return nil, err
	}
	return bytes.TrimRight(buf.Bytes(), "\n"), nil
}
