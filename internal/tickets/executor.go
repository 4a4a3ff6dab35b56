package tickets

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"time"
)

// Result is the outcome of one read-only query against the ticket table.
type Result struct {
	Columns  []string
	Rows     [][]any
	Duration time.Duration
}

// Executor runs generated statements against the live database.
type Executor interface {
	Execute(ctx context.Context, sqlText string) (Result, error)
}

// DBExecutor executes statements on a database/sql handle. The statement has
// already been through safety validation upstream; the prefix check here is
// defense in depth, not the primary gate.
type DBExecutor struct {
	db           *sql.DB
	queryTimeout time.Duration
}

func NewDBExecutor(db *sql.DB, queryTimeout time.Duration) *DBExecutor {
	if queryTimeout <= 0 {
		queryTimeout = 30 * time.Second
	}
	return &DBExecutor{db: db, queryTimeout: queryTimeout}
}

func (e *DBExecutor) HealthCheck(ctx context.Context) error {
	if err := e.db.PingContext(ctx); err != nil {
		return fmt.Errorf("ping ticket db: %w", err)
	}
	return nil
}

func (e *DBExecutor) Execute(ctx context.Context, sqlText string) (Result, error) {
	if !isReadOnly(sqlText) {
		return Result{}, fmt.Errorf("refusing to execute non-SELECT statement")
	}

	queryCtx, cancel := context.WithTimeout(ctx, e.queryTimeout)
	defer cancel()

	start := time.Now()
	rows, err := e.db.QueryContext(queryCtx, sqlText)
	if err != nil {
		return Result{}, fmt.Errorf("execute query: %w", err)
	}
	defer func() { _ = rows.Close() }()

	columns, err := rows.Columns()
	if err != nil {
		return Result{}, fmt.Errorf("read columns: %w", err)
	}

	out := make([][]any, 0)
	for rows.Next() {
		values := make([]any, len(columns))
		pointers := make([]any, len(columns))
		for i := range values {
			pointers[i] = &values[i]
		}
		if err := rows.Scan(pointers...); err != nil {
			return Result{}, fmt.Errorf("scan row: %w", err)
		}
		for i, value := range values {
			if b, ok := value.([]byte); ok {
				values[i] = string(b)
			}
		}
		out = append(out, values)
	}
	if err := rows.Err(); err != nil {
		return Result{}, fmt.Errorf("iterate rows: %w", err)
	}

	return Result{
		Columns:  columns,
		Rows:     out,
		Duration: time.Since(start),
	}, nil
}

func isReadOnly(sqlText string) bool {
	return strings.HasPrefix(strings.ToUpper(strings.TrimSpace(sqlText)), "SELECT")
}
