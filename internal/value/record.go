package value

import "strings"

// Record is an insertion-ordered, string-keyed mapping representing one row.
//
// Setting a key that already exists replaces its value but keeps the key at
// the position where it was first inserted.
type Record struct {
	keys   []string
	values map[string]Value
}

// NewRecord returns an empty record with room for n keys.
func NewRecord(n int) *Record {
	return &Record{
		keys:   make([]string, 0, n),
		values: make(map[string]Value, n),
	}
}

// RecordOf builds a record from alternating key/value pairs. It panics on an
// odd argument count or a non-string key and is meant for literals in tests
// and examples.
func RecordOf(kv ...any) *Record {
	if len(kv)%2 != 0 {
		panic("value.RecordOf: odd number of arguments")
	}
	r := NewRecord(len(kv) / 2)
	for i := 0; i < len(kv); i += 2 {
		k, ok := kv[i].(string)
		if !ok {
			panic("value.RecordOf: key must be a string")
		}
		r.Set(k, From(kv[i+1]))
	}
	return r
}

// Set stores v under key.
func (r *Record) Set(key string, v Value) {
	if v == nil {
		v = Null{}
	}
	if _, exists := r.values[key]; !exists {
		r.keys = append(r.keys, key)
	}
	r.values[key] = v
}

// Get returns the value stored under key.
func (r *Record) Get(key string) (Value, bool) {
	if r == nil {
		return nil, false
	}
	v, ok := r.values[key]
	return v, ok
}

// Has reports whether key is present.
func (r *Record) Has(key string) bool {
	_, ok := r.Get(key)
	return ok
}

// Keys returns a copy of the keys in insertion order.
func (r *Record) Keys() []string {
	if r == nil {
		return nil
	}
	out := make([]string, len(r.keys))
	copy(out, r.keys)
	return out
}

// Len returns the number of keys.
func (r *Record) Len() int {
	if r == nil {
		return 0
	}
	return len(r.keys)
}

// Range calls fn for every entry in insertion order until fn returns false.
func (r *Record) Range(fn func(key string, v Value) bool) {
	if r == nil {
		return
	}
	for _, k := range r.keys {
		if !fn(k, r.values[k]) {
			return
		}
	}
}

// String renders the record as {a: 1, b: "x"}.
func (r *Record) String() string {
	if r == nil {
		return "null"
	}
	var b strings.Builder
	b.WriteByte('{')
	for i, k := range r.keys {
		if i > 0 {
			b.WriteString(", ")
		}
		b.WriteString(k)
		b.WriteString(": ")
		writeNested(&b, r.values[k])
	}
	b.WriteByte('}')
	return b.String()
}

// TableFromRecords wraps records in a List.
func TableFromRecords(records []*Record) List {
	out := make(List, len(records))
	for i, r := range records {
		out[i] = r
	}
	return out
}
