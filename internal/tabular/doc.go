// Package tabular converts between delimited tabular text and tables of
// records.
//
// # Decoding
//
// [Decode] reads the first line as the header and pairs every following row
// with it by position:
//
//	a,b,c        ->  header [a b c]
//	1,2,3        ->  {a: "1", b: "2", c: "3"}
//	1,2          ->  {a: "1", b: "2"}          (c absent, not empty)
//	1,2,3,4      ->  {a: "1", b: "2", c: "3"}  (surplus dropped)
//
// Values are always text. Duplicate header names resolve last-write-wins.
//
// # Encoding
//
// [Encode] takes its header from the first element's keys, in insertion
// order, and emits one row per record. Missing keys render empty; elements
// that are not records are skipped. An empty table encodes to "".
//
// # Errors
//
// Failures are *[Error] values whose Kind is one of arity/type, codec,
// shape or encoding. Use errors.Is with [ErrArityOrType], [ErrCodec],
// [ErrShape] or [ErrEncoding].
//
// The low-level codec is encoding/csv; quoting, escaping and line endings
// follow its rules (RFC 4180, rows terminated with "\n").
package tabular
