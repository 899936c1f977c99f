package sink

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/wegman-software/osmclean/internal/reshape"
)

// PostgresConfig describes the target table
type PostgresConfig struct {
	ConnString string
	Schema     string
	Table      string
	BatchSize  int
	// Drop recreates the table before loading
	Drop bool
}

// pgConn is the subset of *pgxpool.Pool used by the sink
type pgConn interface {
	Exec(ctx context.Context, sql string, args ...interface{}) (pgconn.CommandTag, error)
	CopyFrom(ctx context.Context, tableName pgx.Identifier, columnNames []string, rowSrc pgx.CopyFromSource) (int64, error)
}

var copyColumns = []string{"id", "element_type", "doc"}

// Postgres loads documents into a JSONB table with COPY
type Postgres struct {
	pool      *pgxpool.Pool
	conn      pgConn
	table     pgx.Identifier
	batchSize int
	rows      [][]interface{}
	copied    int64
}

// OpenPostgres connects and creates the target table if needed
func OpenPostgres(ctx context.Context, cfg PostgresConfig) (*Postgres, error) {
	poolConfig, err := pgxpool.ParseConfig(cfg.ConnString)
	if err != nil {
		return nil, fmt.Errorf("failed to parse connection string: %w", err)
	}

	pool, err := pgxpool.NewWithConfig(ctx, poolConfig)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to PostgreSQL: %w", err)
	}

	s := newPostgres(pool, cfg)
	s.pool = pool
	if err := s.prepare(ctx, cfg.Drop); err != nil {
		pool.Close()
		return nil, err
	}
	return s, nil
}

func newPostgres(conn pgConn, cfg PostgresConfig) *Postgres {
	batchSize := cfg.BatchSize
	if batchSize < 1 {
		batchSize = DefaultBatchSize
	}
	schema := cfg.Schema
	if schema == "" {
		schema = "public"
	}
	return &Postgres{
		conn:      conn,
		table:     pgx.Identifier{schema, cfg.Table},
		batchSize: batchSize,
	}
}

func (p *Postgres) prepare(ctx context.Context, drop bool) error {
	fullName := p.table.Sanitize()

	if p.table[0] != "public" {
		schema := pgx.Identifier{p.table[0]}.Sanitize()
		if _, err := p.conn.Exec(ctx, fmt.Sprintf("CREATE SCHEMA IF NOT EXISTS %s", schema)); err != nil {
			return fmt.Errorf("failed to create schema: %w", err)
		}
	}
	if drop {
		if _, err := p.conn.Exec(ctx, fmt.Sprintf("DROP TABLE IF EXISTS %s", fullName)); err != nil {
			return fmt.Errorf("failed to drop %s: %w", fullName, err)
		}
	}

	sql := fmt.Sprintf("CREATE TABLE IF NOT EXISTS %s (id text, element_type text, doc jsonb)", fullName)
	if _, err := p.conn.Exec(ctx, sql); err != nil {
		return fmt.Errorf("failed to create %s: %w", fullName, err)
	}
	return nil
}

// Copied returns the number of rows copied so far
func (p *Postgres) Copied() int64 {
	return p.copied
}

func (p *Postgres) Write(ctx context.Context, doc *reshape.Document) error {
	b, err := marshal(doc)
	if err != nil {
		return err
	}
	elemType, id := elementKey(doc)
	p.rows = append(p.rows, []interface{}{id, elemType, json.RawMessage(b)})
	if len(p.rows) >= p.batchSize {
		return p.Flush(ctx)
	}
	return nil
}

func (p *Postgres) Flush(ctx context.Context) error {
	if len(p.rows) == 0 {
		return nil
	}
	count, err := p.conn.CopyFrom(ctx, p.table, copyColumns, pgx.CopyFromRows(p.rows))
	p.copied += count
	p.rows = p.rows[:0]
	if err != nil {
		return fmt.Errorf("failed to copy into %s: %w", p.table.Sanitize(), err)
	}
	return nil
}

func (p *Postgres) Close() error {
	if p.pool != nil {
		p.pool.Close()
	}
	return nil
}
