package store

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	_ "github.com/lib/pq"

	"github.com/remind101/encbench/retry"
	"github.com/remind101/encbench/strategy"
)

// Postgres persists rows in one bytea-payload table per scope, so each
// strategy gets its own table like the reference run's table-per-strategy
// schema. Inserts are buffered into multi-row statements of chunkSize
// rows; the orchestrator flushes before closing the write timing window.
type Postgres struct {
	db    *sql.DB
	table string
	buf   [][]byte
}

// OpenPostgres connects, verifies the connection under a bounded retry,
// and ensures the scope's table exists. Scope must be one of the strategy
// names.
func OpenPostgres(url, scope string) (*Postgres, error) {
	db, err := sql.Open("postgres", url)
	if err != nil {
		return nil, unavailable("postgres", err)
	}

	r := retry.NewRetrier("pg-dial", retry.DefaultBackOffOpts, retry.RetryOnAnyError)
	if _, err := r.Retry(func() (interface{}, error) { return nil, db.Ping() }); err != nil {
		db.Close()
		return nil, unavailable("postgres", err)
	}

	p := &Postgres{db: db, table: "bench_rows_" + scope}
	stmt := fmt.Sprintf(
		"CREATE TABLE IF NOT EXISTS %s (id BIGSERIAL PRIMARY KEY, payload BYTEA NOT NULL)",
		p.table)
	if _, err := db.Exec(stmt); err != nil {
		db.Close()
		return nil, unavailable("postgres", err)
	}
	return p, nil
}

func (p *Postgres) Reset(ctx context.Context) error {
	p.buf = p.buf[:0]
	if _, err := p.db.ExecContext(ctx, "TRUNCATE "+p.table); err != nil {
		return unavailable("postgres", err)
	}
	return nil
}

func (p *Postgres) Insert(ctx context.Context, row *strategy.StoredRow) error {
	p.buf = append(p.buf, row.EncodeBinary())
	if len(p.buf) >= chunkSize {
		return p.Flush(ctx)
	}
	return nil
}

// Flush writes any buffered rows as one multi-row INSERT.
func (p *Postgres) Flush(ctx context.Context) error {
	if len(p.buf) == 0 {
		return nil
	}

	placeholders := make([]string, len(p.buf))
	args := make([]interface{}, len(p.buf))
	for i, b := range p.buf {
		placeholders[i] = fmt.Sprintf("($%d)", i+1)
		args[i] = b
	}

	stmt := fmt.Sprintf("INSERT INTO %s (payload) VALUES %s",
		p.table, strings.Join(placeholders, ", "))
	if _, err := p.db.ExecContext(ctx, stmt, args...); err != nil {
		return unavailable("postgres", err)
	}
	p.buf = p.buf[:0]
	return nil
}

func (p *Postgres) FetchAll(ctx context.Context) ([]*strategy.StoredRow, error) {
	if err := p.Flush(ctx); err != nil {
		return nil, err
	}

	rows, err := p.db.QueryContext(ctx, "SELECT payload FROM "+p.table+" ORDER BY id")
	if err != nil {
		return nil, unavailable("postgres", err)
	}
	defer rows.Close()

	var out []*strategy.StoredRow
	for rows.Next() {
		var b []byte
		if err := rows.Scan(&b); err != nil {
			return nil, unavailable("postgres", err)
		}
		row, err := strategy.DecodeBinary(b)
		if err != nil {
			return nil, err
		}
		out = append(out, row)
	}
	if err := rows.Err(); err != nil {
		return nil, unavailable("postgres", err)
	}
	return out, nil
}

func (p *Postgres) Close() error {
	return p.db.Close()
}
