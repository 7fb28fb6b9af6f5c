package models

import (
	"bytes"
	"fmt"
	"maps"
	"slices"

	"github.com/goccy/go-json"
)

// AllVersions is the reserved key under which a uniform value is stored when
// a map also carries per-version overrides.
const AllVersions = "*"

// VersionValue constrains the element types a VersionMap can hold.
type VersionValue interface {
	~string | ~int
}

// VersionMap maps version group keys to values. Any key is accepted; keys
// without a value are absent.
//
// Source data sometimes gives a single value that applies to every version
// group. That value is kept as a uniform fallback returned for any key and is
// encoded back as the bare scalar, so files round-trip unchanged.
type VersionMap[T VersionValue] struct {
	values  map[string]T
	uniform *T
}

// NewVersionMap builds a map from per-version values.
func NewVersionMap[T VersionValue](values map[string]T) VersionMap[T] {
	return VersionMap[T]{values: maps.Clone(values)}
}

// UniformVersionMap builds a map that returns v for every version group.
func UniformVersionMap[T VersionValue](v T) VersionMap[T] {
	return VersionMap[T]{uniform: &v}
}

// Get returns the value for key, falling back to the uniform value.
func (m VersionMap[T]) Get(key string) (T, bool) {
	if v, ok := m.values[key]; ok {
		return v, true
	}
	if m.uniform != nil {
		return *m.uniform, true
	}
	var zero T
	return zero, false
}

// Set stores v for key.
func (m *VersionMap[T]) Set(key string, v T) {
	if m.values == nil {
		m.values = make(map[string]T)
	}
	m.values[key] = v
}

// Delete removes the per-version value for key.
func (m *VersionMap[T]) Delete(key string) {
	delete(m.values, key)
}

// Keys returns the explicit version keys in sorted order.
func (m VersionMap[T]) Keys() []string {
	return slices.Sorted(maps.Keys(m.values))
}

// Uniform returns the value that applies to every version group, if any.
func (m VersionMap[T]) Uniform() (T, bool) {
	if m.uniform == nil {
		var zero T
		return zero, false
	}
	return *m.uniform, true
}

// IsEmpty reports whether the map holds no values at all.
func (m VersionMap[T]) IsEmpty() bool {
	return len(m.values) == 0 && m.uniform == nil
}

// Equal reports whether both maps resolve every key identically.
func (m VersionMap[T]) Equal(o VersionMap[T]) bool {
	if (m.uniform == nil) != (o.uniform == nil) {
		return false
	}
	if m.uniform != nil && *m.uniform != *o.uniform {
		return false
	}
	return maps.Equal(m.values, o.values)
}

// MarshalJSON implements json.Marshaler.
func (m VersionMap[T]) MarshalJSON() ([]byte, error) {
	if m.uniform != nil && len(m.values) == 0 {
		return json.Marshal(*m.uniform)
	}
	out := make(map[string]T, len(m.values)+1)
	for k, v := range m.values {
		out[k] = v
	}
	if m.uniform != nil {
		out[AllVersions] = *m.uniform
	}
	return json.Marshal(out)
}

// UnmarshalJSON accepts an object, null, or a bare scalar.
func (m *VersionMap[T]) UnmarshalJSON(data []byte) error {
	*m = VersionMap[T]{}

	data = bytes.TrimSpace(data)
	switch {
	case len(data) == 0 || bytes.Equal(data, []byte("null")):
		return nil
	case data[0] == '{':
		var raw map[string]*T
		if err := json.Unmarshal(data, &raw); err != nil {
			return fmt.Errorf("version map: %w", err)
		}
		for k, v := range raw {
			if v == nil {
				continue
			}
			if k == AllVersions {
				u := *v
				m.uniform = &u
				continue
			}
			m.Set(k, *v)
		}
		return nil
	default:
		var v T
		if err := json.Unmarshal(data, &v); err != nil {
			return fmt.Errorf("version map: %w", err)
		}
		m.uniform = &v
		return nil
	}
}
