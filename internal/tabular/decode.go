package tabular

import (
	"encoding/csv"
	"errors"
	"io"
	"strings"

	"github.com/JonMunkholm/tabconv/internal/textio"
	"github.com/JonMunkholm/tabconv/internal/value"
)

// Decode parses text into a table of records keyed by the header row.
//
// Input with no header line yields an empty table. Malformed quoting aborts
// the whole call with a codec error; no partial table is returned.
func Decode(text string, opts ...Option) ([]*value.Record, error) {
	o, err := buildOptions(opts)
	if err != nil {
		return nil, err
	}

	text, cr := protectQuotedCR(text, o.comma)

	r := csv.NewReader(textio.NewBOMSkippingReader(strings.NewReader(text)))
	r.Comma = o.comma
	r.FieldsPerRecord = -1

	header, err := r.Read()
	if errors.Is(err, io.EOF) {
		return []*value.Record{}, nil
	}
	if err != nil {
		return nil, codecError(err)
	}
	restoreCR(header, cr)

	records := []*value.Record{}
	for {
		row, err := r.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, codecError(err)
		}

		if o.strict && len(row) != len(header) {
			line, _ := r.FieldPos(0)
			return nil, shapeError("record on line %d: %d fields, header has %d", line, len(row), len(header))
		}

		restoreCR(row, cr)
		records = append(records, buildRecord(header, row))
	}

	return records, nil
}

// DecodeValue is Decode for a host value; v must be Text.
func DecodeValue(v value.Value, opts ...Option) (value.List, error) {
	text, ok := v.(value.Text)
	if !ok {
		return nil, arityError("decode expects text, got %s", value.KindOf(v))
	}

	records, err := Decode(string(text), opts...)
	if err != nil {
		return nil, err
	}
	return value.TableFromRecords(records), nil
}

// buildRecord pairs row fields with header names by position, bounded by the
// shorter of the two. Later duplicate names overwrite earlier ones.
func buildRecord(header, row []string) *value.Record {
	n := min(len(row), len(header))
	rec := value.NewRecord(n)
	for i := 0; i < n; i++ {
		rec.Set(header[i], value.Text(row[i]))
	}
	return rec
}

// protectQuotedCR replaces every CR inside a quoted field with a rune that
// does not occur in text, since csv.Reader folds a quoted CRLF into LF. It
// returns the rewritten text and the replacement, or zero when text has no
// quoted CR.
//
// Quote state flips on every '"': an escaped "" flips twice, and a bare quote
// in an unquoted field is a codec error either way.
func protectQuotedCR(text string, comma rune) (string, rune) {
	if !strings.Contains(text, "\r") || !strings.Contains(text, `"`) {
		return text, 0
	}

	sentinel := rune(0xE000)
	for strings.ContainsRune(text, sentinel) || sentinel == comma {
		sentinel++
	}
	enc := string(sentinel)

	var b strings.Builder
	b.Grow(len(text))
	quoted, replaced := false, false
	for i := 0; i < len(text); i++ {
		c := text[i]
		switch {
		case c == '"':
			quoted = !quoted
		case c == '\r' && quoted:
			b.WriteString(enc)
			replaced = true
			continue
		}
		b.WriteByte(c)
	}

	if !replaced {
		return text, 0
	}
	return b.String(), sentinel
}

// restoreCR undoes protectQuotedCR on fields in place.
func restoreCR(fields []string, sentinel rune) {
	if sentinel == 0 {
		return
	}
	enc := string(sentinel)
	for i, f := range fields {
		fields[i] = strings.ReplaceAll(f, enc, "\r")
	}
}
