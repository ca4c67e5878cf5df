package value

import (
	"fmt"

	"gopkg.in/yaml.v2"
)

// ParseYAML decodes a YAML document into a Value.
//
// A top-level sequence of mappings keeps every mapping's key order. Other
// documents (including sequences mixing mappings and scalars) are decoded
// generically, with mapping keys sorted.
func ParseYAML(data []byte) (Value, error) {
	var rows []yaml.MapSlice
	if err := yaml.Unmarshal(data, &rows); err == nil && rows != nil {
		out := make(List, len(rows))
		for i, r := range rows {
			out[i] = From(r)
		}
		return out, nil
	}

	var generic any
	if err := yaml.Unmarshal(data, &generic); err != nil {
		return nil, fmt.Errorf("decode YAML: %w", err)
	}
	return From(generic), nil
}

// MarshalYAML encodes the record as a mapping with keys in insertion order.
func (r *Record) MarshalYAML() (any, error) {
	if r == nil {
		return nil, nil
	}
	out := make(yaml.MapSlice, 0, r.Len())
	r.Range(func(key string, v Value) bool {
		out = append(out, yaml.MapItem{Key: key, Value: v})
		return true
	})
	return out, nil
}

// MarshalYAML encodes Null as a YAML null.
func (Null) MarshalYAML() (any, error) {
	return nil, nil
}
