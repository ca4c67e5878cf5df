// Package history records conversions for the dashboard and the history API.
package history

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
)

// ErrNotFound is returned by Get for unknown ids.
var ErrNotFound = errors.New("history entry not found")

// DefaultListLimit is used when List is called with a non-positive limit.
const DefaultListLimit = 50

// Operation identifies what a conversion did.
type Operation string

const (
	OpDecode Operation = "decode"
	OpEncode Operation = "encode"
	OpCall   Operation = "call"
)

// Entry is one recorded conversion.
type Entry struct {
	ID           uuid.UUID     `json:"id"`
	Operation    Operation     `json:"operation"`
	Function     string        `json:"function,omitempty"`
	Rows         int           `json:"rows"`
	Columns      int           `json:"columns"`
	BytesIn      int64         `json:"bytesIn"`
	BytesOut     int64         `json:"bytesOut"`
	Duration     time.Duration `json:"durationNs"`
	ErrorCode    string        `json:"errorCode,omitempty"`
	ErrorMessage string        `json:"errorMessage,omitempty"`
	ClientIP     string        `json:"clientIp,omitempty"`
	UserAgent    string        `json:"userAgent,omitempty"`
	CreatedAt    time.Time     `json:"createdAt"`
}

// Succeeded reports whether the conversion finished without error.
func (e Entry) Succeeded() bool {
	return e.ErrorCode == ""
}

// Store persists history entries.
type Store interface {
	// Record saves e. A zero ID or CreatedAt is filled in.
	Record(ctx context.Context, e *Entry) error
	// List returns up to limit entries, newest first.
	List(ctx context.Context, limit int) ([]Entry, error)
	// Get returns the entry with id or ErrNotFound.
	Get(ctx context.Context, id uuid.UUID) (Entry, error)
	// Prune removes entries created before the cutoff and returns how many.
	Prune(ctx context.Context, before time.Time) (int, error)
}

func prepare(e *Entry) {
	if e.ID == uuid.Nil {
		e.ID = uuid.New()
	}
	if e.CreatedAt.IsZero() {
		e.CreatedAt = time.Now().UTC()
	}
}

func normalizeLimit(limit int) int {
	if limit <= 0 {
		return DefaultListLimit
	}
	return limit
}
