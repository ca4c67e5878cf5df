// Package value is the host value model the converters operate on.
//
// A Value is a closed sum type: only the variants declared in this package
// implement it. Consumers switch over the concrete types and can rely on the
// set being exhaustive:
//
//	switch v := v.(type) {
//	case value.Null, value.Bool, value.Int, value.Float, value.Text:
//	    // scalars
//	case value.List, *value.Record:
//	    // containers
//	}
package value

import (
	"strconv"
	"strings"
)

// Value is implemented by Null, Bool, Int, Float, Text, List and *Record.
type Value interface {
	// Kind reports the variant name used in error messages ("text", "record", ...).
	Kind() string
	String() string

	isValue()
}

// Null is the absent value.
type Null struct{}

// Bool is a boolean scalar.
type Bool bool

// Int is a signed 64-bit integer scalar.
type Int int64

// Float is a 64-bit floating point scalar.
type Float float64

// Text is a string scalar.
type Text string

// List is an ordered sequence of values. A table is a List of *Record.
type List []Value

func (Null) isValue()    {}
func (Bool) isValue()    {}
func (Int) isValue()     {}
func (Float) isValue()   {}
func (Text) isValue()    {}
func (List) isValue()    {}
func (*Record) isValue() {}

func (Null) Kind() string    { return "null" }
func (Bool) Kind() string    { return "bool" }
func (Int) Kind() string     { return "int" }
func (Float) Kind() string   { return "float" }
func (Text) Kind() string    { return "text" }
func (List) Kind() string    { return "list" }
func (*Record) Kind() string { return "record" }

func (Null) String() string { return "null" }

func (b Bool) String() string { return strconv.FormatBool(bool(b)) }

func (i Int) String() string { return strconv.FormatInt(int64(i), 10) }

func (f Float) String() string { return strconv.FormatFloat(float64(f), 'g', -1, 64) }

func (t Text) String() string { return string(t) }

// String renders the list as [a, b, c] with nested text quoted.
func (l List) String() string {
	var b strings.Builder
	b.WriteByte('[')
	for i, v := range l {
		if i > 0 {
			b.WriteString(", ")
		}
		writeNested(&b, v)
	}
	b.WriteByte(']')
	return b.String()
}

// writeNested writes v as an element of a container. Text is quoted so that
// ["a, b"] and ["a", "b"] stay distinguishable.
func writeNested(b *strings.Builder, v Value) {
	if t, ok := v.(Text); ok {
		b.WriteString(strconv.Quote(string(t)))
		return
	}
	if v == nil {
		b.WriteString("null")
		return
	}
	b.WriteString(v.String())
}

// KindOf returns v.Kind(), or "nil" for a nil interface.
func KindOf(v Value) string {
	if v == nil {
		return "nil"
	}
	return v.Kind()
}

// IsNull reports whether v is Null or a nil interface.
func IsNull(v Value) bool {
	if v == nil {
		return true
	}
	_, ok := v.(Null)
	return ok
}
