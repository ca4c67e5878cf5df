package tabular

import (
	"bytes"
	"encoding/csv"
	"strconv"
	"unicode/utf8"

	"github.com/JonMunkholm/tabconv/internal/value"
)

// Encode renders rows as tabular text.
//
// The header is the first element's keys in insertion order and governs the
// column order of every row. The first element must be a record; later
// non-record elements are skipped unless strict mode is on.
func Encode(rows value.List, opts ...Option) (string, error) {
	o, err := buildOptions(opts)
	if err != nil {
		return "", err
	}

	if len(rows) == 0 {
		return "", nil
	}

	first, ok := asRecord(rows[0])
	if !ok {
		return "", shapeError("expected a Record as first element, got %s", value.KindOf(rows[0]))
	}
	header := first.Keys()

	var buf bytes.Buffer
	w := &rowWriter{buf: &buf, csv: csv.NewWriter(&buf)}
	w.csv.Comma = o.comma

	if err := w.write(header); err != nil {
		return "", err
	}

	fields := make([]string, len(header))
	for i, item := range rows {
		rec, ok := asRecord(item)
		if !ok {
			if o.strict {
				return "", shapeError("element %d: expected a Record, got %s", i, value.KindOf(item))
			}
			continue
		}

		for j, name := range header {
			v, present := rec.Get(name)
			if !present {
				fields[j] = ""
				continue
			}
			fields[j] = Render(v)
		}

		if err := w.write(fields); err != nil {
			return "", err
		}
	}

	if err := w.flush(); err != nil {
		return "", err
	}

	if !utf8.Valid(buf.Bytes()) {
		return "", &Error{Kind: KindEncoding, Msg: "encoded output is not valid UTF-8"}
	}
	return buf.String(), nil
}

// EncodeValue is Encode for a host value; v must be a List.
func EncodeValue(v value.Value, opts ...Option) (value.Text, error) {
	rows, ok := v.(value.List)
	if !ok {
		return "", arityError("encode expects a list of records, got %s", value.KindOf(v))
	}

	text, err := Encode(rows, opts...)
	if err != nil {
		return "", err
	}
	return value.Text(text), nil
}

// Render converts a value to the text of one field.
//
// Text is itself, Int is decimal digits, Float is the shortest form that
// parses back to the same float64, Bool is true/false and Null is empty.
// Lists and records get their generic bracketed representation.
func Render(v value.Value) string {
	if value.IsNull(v) {
		return ""
	}
	switch v := v.(type) {
	case value.Text:
		return string(v)
	case value.Int:
		return strconv.FormatInt(int64(v), 10)
	case value.Float:
		return strconv.FormatFloat(float64(v), 'g', -1, 64)
	case value.Bool:
		return strconv.FormatBool(bool(v))
	case value.List:
		return v.String()
	case *value.Record:
		return v.String()
	}
	return v.String()
}

func asRecord(v value.Value) (*value.Record, bool) {
	rec, ok := v.(*value.Record)
	return rec, ok && rec != nil
}

// rowWriter wraps csv.Writer. A row made of a single empty field is written
// as "" because csv.Writer would emit a blank line, which csv.Reader skips.
type rowWriter struct {
	buf *bytes.Buffer
	csv *csv.Writer
}

func (w *rowWriter) write(fields []string) error {
	if len(fields) == 1 && fields[0] == "" {
		if err := w.flush(); err != nil {
			return err
		}
		w.buf.WriteString("\"\"\n")
		return nil
	}

	if err := w.csv.Write(fields); err != nil {
		return codecError(err)
	}
	return nil
}

func (w *rowWriter) flush() error {
	w.csv.Flush()
	if err := w.csv.Error(); err != nil {
		return codecError(err)
	}
	return nil
}
