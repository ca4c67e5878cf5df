package history

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgtype"
)

// DBTX is satisfied by *pgxpool.Pool, *pgx.Conn and pgx.Tx.
type DBTX interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

const schema = `
CREATE TABLE IF NOT EXISTS conversion_history (
    id            UUID PRIMARY KEY,
    operation     TEXT NOT NULL,
    function_name TEXT,
    row_count     INTEGER NOT NULL DEFAULT 0,
    column_count  INTEGER NOT NULL DEFAULT 0,
    bytes_in      BIGINT NOT NULL DEFAULT 0,
    bytes_out     BIGINT NOT NULL DEFAULT 0,
    duration_ms   BIGINT NOT NULL DEFAULT 0,
    error_code    TEXT,
    error_message TEXT,
    client_ip     TEXT,
    user_agent    TEXT,
    created_at    TIMESTAMPTZ NOT NULL DEFAULT now()
);
CREATE INDEX IF NOT EXISTS conversion_history_created_at_idx
    ON conversion_history (created_at DESC);
`

const selectColumns = `id, operation, function_name, row_count, column_count,
    bytes_in, bytes_out, duration_ms, error_code, error_message,
    client_ip, user_agent, created_at`

// PostgresStore keeps history in the conversion_history table.
type PostgresStore struct {
	db DBTX
}

// NewPostgresStore creates a store on db. Call Migrate before first use.
func NewPostgresStore(db DBTX) *PostgresStore {
	return &PostgresStore{db: db}
}

// Migrate creates the history table and index if they do not exist.
func (p *PostgresStore) Migrate(ctx context.Context) error {
	if _, err := p.db.Exec(ctx, schema); err != nil {
		return fmt.Errorf("migrate conversion_history: %w", err)
	}
	return nil
}

func (p *PostgresStore) Record(ctx context.Context, e *Entry) error {
	prepare(e)

	_, err := p.db.Exec(ctx, `
		INSERT INTO conversion_history (
			id, operation, function_name, row_count, column_count,
			bytes_in, bytes_out, duration_ms, error_code, error_message,
			client_ip, user_agent, created_at
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13)`,
		pgtype.UUID{Bytes: e.ID, Valid: true},
		string(e.Operation),
		toPgText(e.Function),
		e.Rows,
		e.Columns,
		e.BytesIn,
		e.BytesOut,
		e.Duration.Milliseconds(),
		toPgText(e.ErrorCode),
		toPgText(e.ErrorMessage),
		toPgText(e.ClientIP),
		toPgText(e.UserAgent),
		pgtype.Timestamptz{Time: e.CreatedAt, Valid: true},
	)
	if err != nil {
		return fmt.Errorf("record history entry: %w", err)
	}
	return nil
}

func (p *PostgresStore) List(ctx context.Context, limit int) ([]Entry, error) {
	rows, err := p.db.Query(ctx,
		"SELECT "+selectColumns+" FROM conversion_history ORDER BY created_at DESC LIMIT $1",
		normalizeLimit(limit))
	if err != nil {
		return nil, fmt.Errorf("list history: %w", err)
	}

	records, err := pgx.CollectRows(rows, pgx.RowToStructByName[entryRow])
	if err != nil {
		return nil, fmt.Errorf("list history: %w", err)
	}

	entries := make([]Entry, 0, len(records))
	for _, r := range records {
		entries = append(entries, r.toEntry())
	}
	return entries, nil
}

func (p *PostgresStore) Get(ctx context.Context, id uuid.UUID) (Entry, error) {
	rows, err := p.db.Query(ctx,
		"SELECT "+selectColumns+" FROM conversion_history WHERE id = $1",
		pgtype.UUID{Bytes: id, Valid: true})
	if err != nil {
		return Entry{}, fmt.Errorf("get history entry: %w", err)
	}

	r, err := pgx.CollectExactlyOneRow(rows, pgx.RowToStructByName[entryRow])
	if errors.Is(err, pgx.ErrNoRows) {
		return Entry{}, ErrNotFound
	}
	if err != nil {
		return Entry{}, fmt.Errorf("get history entry: %w", err)
	}
	return r.toEntry(), nil
}

func (p *PostgresStore) Prune(ctx context.Context, before time.Time) (int, error) {
	tag, err := p.db.Exec(ctx,
		"DELETE FROM conversion_history WHERE created_at < $1",
		pgtype.Timestamptz{Time: before, Valid: true})
	if err != nil {
		return 0, fmt.Errorf("prune history: %w", err)
	}
	return int(tag.RowsAffected()), nil
}

// entryRow mirrors a conversion_history row.
type entryRow struct {
	ID           pgtype.UUID        `db:"id"`
	Operation    string             `db:"operation"`
	FunctionName pgtype.Text        `db:"function_name"`
	RowCount     int32              `db:"row_count"`
	ColumnCount  int32              `db:"column_count"`
	BytesIn      int64              `db:"bytes_in"`
	BytesOut     int64              `db:"bytes_out"`
	DurationMs   int64              `db:"duration_ms"`
	ErrorCode    pgtype.Text        `db:"error_code"`
	ErrorMessage pgtype.Text        `db:"error_message"`
	ClientIP     pgtype.Text        `db:"client_ip"`
	UserAgent    pgtype.Text        `db:"user_agent"`
	CreatedAt    pgtype.Timestamptz `db:"created_at"`
}

func (r entryRow) toEntry() Entry {
	return Entry{
		ID:           uuid.UUID(r.ID.Bytes),
		Operation:    Operation(r.Operation),
		Function:     r.FunctionName.String,
		Rows:         int(r.RowCount),
		Columns:      int(r.ColumnCount),
		BytesIn:      r.BytesIn,
		BytesOut:     r.BytesOut,
		Duration:     time.Duration(r.DurationMs) * time.Millisecond,
		ErrorCode:    r.ErrorCode.String,
		ErrorMessage: r.ErrorMessage.String,
		ClientIP:     r.ClientIP.String,
		UserAgent:    r.UserAgent.String,
		CreatedAt:    r.CreatedAt.Time,
	}
}

func toPgText(s string) pgtype.Text {
	if s == "" {
		return pgtype.Text{Valid: false}
	}
	return pgtype.Text{String: s, Valid: true}
}
