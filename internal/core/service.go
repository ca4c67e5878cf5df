package core

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/JonMunkholm/tabconv/internal/history"
	"github.com/JonMunkholm/tabconv/internal/host"
	"github.com/JonMunkholm/tabconv/internal/logging"
	"github.com/JonMunkholm/tabconv/internal/tabular"
	"github.com/JonMunkholm/tabconv/internal/textio"
	"github.com/JonMunkholm/tabconv/internal/value"
)

var (
	// ErrEmptyInput is returned by transports when a request carries no data.
	ErrEmptyInput = errors.New("empty request body")

	// ErrInvalidInput is wrapped by transports when a structured body (JSON or
	// YAML rows, call arguments) cannot be parsed.
	ErrInvalidInput = errors.New("invalid request body")
)

// DefaultMaxInputSize caps the text a single conversion accepts.
const DefaultMaxInputSize int64 = 10 << 20

// Options configures a Service.
type Options struct {
	Comma         rune
	Strict        bool
	MaxInputSize  int64
	MaxConcurrent int
	MaxWaitTime   time.Duration
}

// Source describes where a conversion came from and any per-request
// overrides of the service defaults.
type Source struct {
	Name   string // file name, "stdin" or "body"
	Comma  rune   // zero keeps the service default
	Strict *bool  // nil keeps the service default
}

// DecodeResult is the outcome of Service.Decode.
type DecodeResult struct {
	ID       uuid.UUID
	Records  []*value.Record
	Columns  []string
	Duration time.Duration
}

// EncodeResult is the outcome of Service.Encode.
type EncodeResult struct {
	ID       uuid.UUID
	Text     string
	Rows     int
	Columns  int
	Duration time.Duration
}

// Service runs conversions under a concurrency limit and records each one
// in the history store.
type Service struct {
	opts    Options
	limiter *ConversionLimiter
	store   history.Store
}

// NewService creates a Service. A nil store keeps history in memory.
func NewService(store history.Store, opts Options) *Service {
	if store == nil {
		store = history.NewMemoryStore(history.DefaultCapacity)
	}
	if opts.Comma == 0 {
		opts.Comma = tabular.DefaultComma
	}
	if opts.MaxInputSize <= 0 {
		opts.MaxInputSize = DefaultMaxInputSize
	}

	return &Service{
		opts:    opts,
		limiter: NewConversionLimiter(opts.MaxConcurrent, opts.MaxWaitTime),
		store:   store,
	}
}

// MaxInputSize returns the byte limit applied to conversion input.
func (s *Service) MaxInputSize() int64 {
	return s.opts.MaxInputSize
}

// Decode parses input into records.
func (s *Service) Decode(ctx context.Context, input string, src Source) (*DecodeResult, error) {
	entry := &history.Entry{
		ID:        uuid.New(),
		Operation: history.OpDecode,
		BytesIn:   int64(len(input)),
	}
	result := &DecodeResult{ID: entry.ID}

	err := s.run(ctx, entry, src, func() error {
		if int64(len(input)) > s.opts.MaxInputSize {
			return fmt.Errorf("%w: %d bytes exceeds limit of %d", textio.ErrInputTooLarge, len(input), s.opts.MaxInputSize)
		}

		records, err := tabular.Decode(input, s.tabularOptions(src)...)
		if err != nil {
			return err
		}

		result.Records = records
		result.Columns = columnsOf(records)
		entry.Rows = len(records)
		entry.Columns = len(result.Columns)
		return nil
	})
	if err != nil {
		return nil, err
	}

	result.Duration = entry.Duration
	return result, nil
}

// Encode renders rows as delimited text.
func (s *Service) Encode(ctx context.Context, rows value.List, src Source) (*EncodeResult, error) {
	entry := &history.Entry{
		ID:        uuid.New(),
		Operation: history.OpEncode,
	}
	result := &EncodeResult{ID: entry.ID}

	err := s.run(ctx, entry, src, func() error {
		text, err := tabular.Encode(rows, s.tabularOptions(src)...)
		if err != nil {
			return err
		}

		result.Text = text
		result.Rows = countRecords(rows)
		entry.Rows = result.Rows
		if len(rows) > 0 {
			if rec, ok := rows[0].(*value.Record); ok {
				result.Columns = rec.Len()
			}
		}
		entry.Columns = result.Columns
		entry.BytesOut = int64(len(text))
		return nil
	})
	if err != nil {
		return nil, err
	}

	result.Duration = entry.Duration
	return result, nil
}

// Call invokes a registered host function by name.
func (s *Service) Call(ctx context.Context, name string, args []value.Value) (value.Value, error) {
	entry := &history.Entry{
		ID:        uuid.New(),
		Operation: history.OpCall,
		Function:  name,
	}
	for _, a := range args {
		if t, ok := a.(value.Text); ok {
			entry.BytesIn += int64(len(t))
		}
	}

	var out value.Value
	err := s.run(ctx, entry, Source{Name: name}, func() error {
		if entry.BytesIn > s.opts.MaxInputSize {
			return fmt.Errorf("%w: %d bytes exceeds limit of %d", textio.ErrInputTooLarge, entry.BytesIn, s.opts.MaxInputSize)
		}

		v, err := host.Call(name, args)
		if err != nil {
			return err
		}

		out = v
		switch v := v.(type) {
		case value.List:
			entry.Rows = len(v)
		case value.Text:
			entry.BytesOut = int64(len(v))
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

// History returns up to limit recent conversions, newest first.
func (s *Service) History(ctx context.Context, limit int) ([]history.Entry, error) {
	return s.store.List(ctx, limit)
}

// HistoryEntry returns one conversion by id.
func (s *Service) HistoryEntry(ctx context.Context, id uuid.UUID) (history.Entry, error) {
	return s.store.Get(ctx, id)
}

// LimiterStatus reports conversion slot usage.
func (s *Service) LimiterStatus() LimiterStatus {
	return s.limiter.Status()
}

// WaitForConversions blocks until in-flight conversions finish or ctx is done.
func (s *Service) WaitForConversions(ctx context.Context) error {
	return s.limiter.WaitForDrain(ctx)
}

// run executes fn inside a limiter slot, then records and logs the outcome.
func (s *Service) run(ctx context.Context, entry *history.Entry, src Source, fn func() error) error {
	entry.ClientIP = GetIPAddressFromContext(ctx)
	entry.UserAgent = GetUserAgentFromContext(ctx)

	logger := logging.WithFields(ctx,
		"conversion_id", entry.ID.String(),
		"op", string(entry.Operation),
		"source", src.Name,
	)

	if err := s.limiter.Acquire(ctx); err != nil {
		s.finish(ctx, logger, entry, err)
		return err
	}
	defer s.limiter.Release()

	start := time.Now()
	err := fn()
	entry.Duration = time.Since(start)

	s.finish(ctx, logger, entry, err)
	return err
}

func (s *Service) finish(ctx context.Context, logger *slog.Logger, entry *history.Entry, err error) {
	if err != nil {
		entry.ErrorCode = ErrorCode(err)
		entry.ErrorMessage = err.Error()
		logger.Warn("conversion failed",
			"code", entry.ErrorCode,
			"error", err,
			"duration_ms", entry.Duration.Milliseconds(),
		)
	} else {
		logger.Info("conversion completed",
			"rows", entry.Rows,
			"columns", entry.Columns,
			"bytes_in", entry.BytesIn,
			"bytes_out", entry.BytesOut,
			"duration_ms", entry.Duration.Milliseconds(),
		)
	}

	// Recorded even when the request context is already cancelled.
	if rerr := s.store.Record(context.WithoutCancel(ctx), entry); rerr != nil {
		logger.Error("record history failed", "error", rerr)
	}
}

func (s *Service) tabularOptions(src Source) []tabular.Option {
	comma := s.opts.Comma
	if src.Comma != 0 {
		comma = src.Comma
	}
	strict := s.opts.Strict
	if src.Strict != nil {
		strict = *src.Strict
	}
	return []tabular.Option{tabular.WithComma(comma), tabular.WithStrict(strict)}
}

// countRecords returns how many elements of rows Encode writes as data rows.
func countRecords(rows value.List) int {
	n := 0
	for _, v := range rows {
		if rec, ok := v.(*value.Record); ok && rec != nil {
			n++
		}
	}
	return n
}

// columnsOf returns the distinct keys across records in first-seen order.
func columnsOf(records []*value.Record) []string {
	seen := make(map[string]bool)
	var cols []string
	for _, r := range records {
		for _, k := range r.Keys() {
			if !seen[k] {
				seen[k] = true
				cols = append(cols, k)
			}
		}
	}
	return cols
}
