package store

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/finchql/finch/internal/qlang"
)

// Execute runs a compiled SQL-dialect query and returns the fetched
// identifiers in order. Each execution is recorded in the runs table
// under a time-ordered id.
func (s *Store) Execute(ctx context.Context, q *qlang.CompiledQuery) ([]string, error) {
	if q.Dialect != qlang.DialectSQL {
		return nil, fmt.Errorf("dialect %q queries cannot be executed against the settings store", q.Dialect)
	}
	if q.ValidateOnly {
		return nil, fmt.Errorf("query was compiled for validation only")
	}

	native, params := withPaging(q)
	started := time.Now().UTC()

	s.log.Debugw("executing query", "sql", native, "params", params)
	rows, err := s.db.QueryContext(ctx, native, params...)
	if err != nil {
		return nil, fmt.Errorf("query failed: %w", err)
	}
	defer rows.Close()

	var ids []string
	for rows.Next() {
		var v any
		if err := rows.Scan(&v); err != nil {
			return nil, fmt.Errorf("scan failed: %w", err)
		}
		ids = append(ids, identifier(v))
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("row iteration failed: %w", err)
	}

	runID := uuid.Must(uuid.NewV7()).String()
	if _, err := s.db.ExecContext(ctx,
		"INSERT INTO runs (id, query, object_type, row_count, started_at) VALUES (?, ?, ?, ?, ?)",
		runID, native, string(q.Type), len(ids), started.Format(time.RFC3339Nano)); err != nil {
		return nil, fmt.Errorf("failed to record run: %w", err)
	}
	return ids, nil
}

// withPaging appends LIMIT/OFFSET to the compiled statement. SQLite needs
// an explicit LIMIT before OFFSET; -1 means unbounded.
func withPaging(q *qlang.CompiledQuery) (string, []any) {
	native := q.Native
	params := append([]any(nil), q.Params...)
	if q.Limit == qlang.LimitUnbounded && q.StartIndex == 0 {
		return native, params
	}
	native += " LIMIT ?"
	params = append(params, q.Limit)
	if q.StartIndex > 0 {
		native += " OFFSET ?"
		params = append(params, q.StartIndex)
	}
	return native, params
}

func identifier(v any) string {
	switch id := v.(type) {
	case string:
		return id
	case []byte:
		return string(id)
	case int64:
		return fmt.Sprintf("%d", id)
	default:
		return fmt.Sprint(id)
	}
}
