package filter

import (
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
)

// Recognized filter keys, in canonical order. The order doubles as the
// insertion order for models decoded from a remote reply so that built URLs
// stay stable for identical inputs.
const (
	KeyLocation       = "location"
	KeyTargetLevel    = "target_level"
	KeyDegree         = "degree"
	KeyHasRemote      = "has_remote"
	KeyEmploymentType = "employment_type"
	KeyQuery          = "q"
)

// Keys lists the recognized filter keys in canonical order.
func Keys() []string {
	return []string{KeyLocation, KeyTargetLevel, KeyDegree, KeyHasRemote, KeyEmploymentType, KeyQuery}
}

// Recognized reports whether key is part of the filter vocabulary.
func Recognized(key string) bool {
	switch key {
	case KeyLocation, KeyTargetLevel, KeyDegree, KeyHasRemote, KeyEmploymentType, KeyQuery:
		return true
	}
	return false
}

// Pair is a single filter name/value entry.
type Pair struct {
	Key   string
	Value string
}

// Model is an insertion-ordered set of filter name/value pairs. The zero
// value is an empty, usable model. Empty values are never stored, so every
// present key carries a meaningful value.
type Model struct {
	keys   []string
	values map[string]string
}

// Set records value under key, preserving the position of an existing key.
// Empty values are ignored.
func (m *Model) Set(key, value string) {
	if value == "" {
		return
	}
	if m.values == nil {
		m.values = make(map[string]string)
	}
	if _, ok := m.values[key]; !ok {
		m.keys = append(m.keys, key)
	}
	m.values[key] = value
}

// Get returns the value for key, or the empty string when absent.
func (m Model) Get(key string) string {
	return m.values[key]
}

// Len returns the number of stored filters.
func (m Model) Len() int {
	return len(m.keys)
}

// Pairs returns the filters in insertion order.
func (m Model) Pairs() []Pair {
	out := make([]Pair, 0, len(m.keys))
	for _, k := range m.keys {
		out = append(out, Pair{Key: k, Value: m.values[k]})
	}
	return out
}

// MarshalJSON encodes the model as a JSON object with keys in insertion
// order.
func (m Model) MarshalJSON() ([]byte, error) {
	var b strings.Builder
	b.WriteByte('{')
	for i, k := range m.keys {
		if i > 0 {
			b.WriteByte(',')
		}
		kb, err := json.Marshal(k)
		if err != nil {
			return nil, err
		}
		vb, err := json.Marshal(m.values[k])
		if err != nil {
			return nil, err
		}
		b.Write(kb)
		b.WriteByte(':')
		b.Write(vb)
	}
	b.WriteByte('}')
	return []byte(b.String()), nil
}

// DecodeJSON builds a model from a JSON object, tolerating string, boolean
// and numeric values. Recognized keys are stored in canonical order;
// unrecognized keys are discarded and returned so the caller can report
// them.
func DecodeJSON(data []byte) (Model, []string, error) {
	dec := json.NewDecoder(strings.NewReader(string(data)))
	dec.UseNumber()
	var raw map[string]any
	if err := dec.Decode(&raw); err != nil {
		return Model{}, nil, fmt.Errorf("decode filter object: %w", err)
	}
	var m Model
	for _, k := range Keys() {
		v, ok := raw[k]
		if !ok {
			continue
		}
		m.Set(k, stringify(v))
	}
	var dropped []string
	for k := range raw {
		if !Recognized(k) {
			dropped = append(dropped, k)
		}
	}
	return m, dropped, nil
}

func stringify(v any) string {
	switch t := v.(type) {
	case string:
		return strings.TrimSpace(t)
	case bool:
		return strconv.FormatBool(t)
	case json.Number:
		return t.String()
	case nil:
		return ""
	default:
		return strings.TrimSpace(fmt.Sprint(t))
	}
}
