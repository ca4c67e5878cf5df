// Package textio provides the readers that sit between raw input (request
// bodies, files, stdin) and the tabular codec.
//
//   - BOMSkippingReader: removes a leading UTF-8 BOM (0xEF 0xBB 0xBF)
//   - TrimBOM: the same for input already in memory
//   - CountingReader: tracks bytes read for history and logging
//   - ReadLimited: loads a whole input, failing once it exceeds a size cap
//
// None of these alter field content: invalid UTF-8 is passed through so the
// converters, not the transport, decide how to report it.
package textio

import (
	"bytes"
	"errors"
	"fmt"
	"io"
)

// ErrInputTooLarge is returned by ReadLimited when the input exceeds the cap.
var ErrInputTooLarge = errors.New("input too large")

var bom = [3]byte{0xEF, 0xBB, 0xBF}

// BOMSkippingReader wraps an io.Reader and skips the UTF-8 BOM if present.
// Spreadsheet exports on Windows commonly start with one, and without this the
// first header name would carry an invisible prefix.
type BOMSkippingReader struct {
	reader     io.Reader
	bomChecked bool
	buf        [3]byte
	pending    []byte
}

// NewBOMSkippingReader creates a new BOM-skipping reader.
func NewBOMSkippingReader(r io.Reader) *BOMSkippingReader {
	return &BOMSkippingReader{reader: r}
}

// Read implements io.Reader. The first call peeks at up to three bytes.
func (r *BOMSkippingReader) Read(p []byte) (int, error) {
	if len(p) == 0 {
		return 0, nil
	}

	if !r.bomChecked {
		r.bomChecked = true

		n, err := io.ReadFull(r.reader, r.buf[:])
		if err == io.ErrUnexpectedEOF {
			err = io.EOF
		}
		if err != nil && err != io.EOF {
			return 0, err
		}

		if n == 3 && r.buf == bom {
			r.pending = nil
		} else {
			r.pending = r.buf[:n]
		}

		if err == io.EOF && len(r.pending) == 0 {
			return 0, io.EOF
		}
	}

	// Drain bytes held back by the BOM check before touching the reader again
	if len(r.pending) > 0 {
		copied := copy(p, r.pending)
		r.pending = r.pending[copied:]
		return copied, nil
	}

	return r.reader.Read(p)
}

// TrimBOM returns data without one leading UTF-8 BOM.
func TrimBOM(data []byte) []byte {
	return bytes.TrimPrefix(data, bom[:])
}

// CountingReader wraps an io.Reader to track bytes read.
type CountingReader struct {
	reader    io.Reader
	BytesRead int64
}

// NewCountingReader creates a counting reader.
func NewCountingReader(r io.Reader) *CountingReader {
	return &CountingReader{reader: r}
}

// Read implements io.Reader.
func (r *CountingReader) Read(p []byte) (int, error) {
	n, err := r.reader.Read(p)
	r.BytesRead += int64(n)
	return n, err
}

// ReadLimited reads r to EOF. If more than max bytes are available it returns
// an error wrapping ErrInputTooLarge. A max of zero or less disables the cap.
func ReadLimited(r io.Reader, max int64) ([]byte, error) {
	if max <= 0 {
		return io.ReadAll(r)
	}

	// Read one byte past the cap so "exactly max" and "more than max" differ
	data, err := io.ReadAll(io.LimitReader(r, max+1))
	if err != nil {
		return nil, err
	}
	if int64(len(data)) > max {
		return nil, fmt.Errorf("%w: exceeds %d bytes", ErrInputTooLarge, max)
	}
	return data, nil
}
