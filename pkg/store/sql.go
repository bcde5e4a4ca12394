package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	_ "github.com/jackc/pgx/v5/stdlib"
	_ "modernc.org/sqlite"
)

// Dialect describes the SQL flavor of a database.
type Dialect string

const (
	DialectSQLite   Dialect = "sqlite"
	DialectPostgres Dialect = "postgres"
)

// SQLStore keeps artifacts in a component_artifacts table, one row per
// (namespace, path). The table is created on first use; a failed attempt
// is retried by the next call.
type SQLStore struct {
	db      *sql.DB
	dialect Dialect

	schemaMu sync.Mutex
	ready    bool
}

// NewSQLStore wraps an open database.
func NewSQLStore(db *sql.DB, dialect Dialect) *SQLStore {
	return &SQLStore{db: db, dialect: dialect}
}

// OpenSQLite opens (or creates) a sqlite database file.
func OpenSQLite(ctx context.Context, path string) (*SQLStore, error) {
	path = strings.TrimSpace(path)
	if path == "" {
		return nil, errors.New("sqlite database path is required")
	}
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}
	// sqlite allows a single writer.
	db.SetMaxOpenConns(1)

	if err := db.PingContext(ctx); err != nil {
		db.Close()
		return nil, fmt.Errorf("database ping failed: %w", err)
	}
	return NewSQLStore(db, DialectSQLite), nil
}

// OpenPostgres connects to postgres through the pgx driver.
func OpenPostgres(ctx context.Context, dsn string) (*SQLStore, error) {
	dsn = strings.TrimSpace(dsn)
	if dsn == "" {
		return nil, errors.New("postgres dsn is required")
	}
	db, err := sql.Open("pgx", dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}
	if err := db.PingContext(ctx); err != nil {
		db.Close()
		return nil, fmt.Errorf("database ping failed: %w", err)
	}
	return NewSQLStore(db, DialectPostgres), nil
}

// Close closes the underlying database.
func (s *SQLStore) Close() error {
	return s.db.Close()
}

func (s *SQLStore) schema() []string {
	blob, ts := "BLOB", "TIMESTAMP"
	if s.dialect == DialectPostgres {
		blob, ts = "BYTEA", "TIMESTAMP WITH TIME ZONE"
	}
	return []string{
		`CREATE TABLE IF NOT EXISTS component_artifacts (
    namespace TEXT NOT NULL,
    path TEXT NOT NULL,
    content ` + blob + ` NOT NULL,
    size BIGINT NOT NULL,
    updated_at ` + ts + ` NOT NULL,
    PRIMARY KEY (namespace, path)
)`,
		`CREATE INDEX IF NOT EXISTS idx_component_artifacts_namespace ON component_artifacts(namespace)`,
	}
}

func (s *SQLStore) ensureSchema(ctx context.Context) error {
	s.schemaMu.Lock()
	defer s.schemaMu.Unlock()
	if s.ready {
		return nil
	}

	for _, stmt := range s.schema() {
		if _, err := s.db.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("create schema: %w", err)
		}
	}
	s.ready = true
	return nil
}

// rebind rewrites ? placeholders to $n for postgres.
func (s *SQLStore) rebind(query string) string {
	if s.dialect != DialectPostgres {
		return query
	}
	var (
		b strings.Builder
		n int
	)
	for _, r := range query {
		if r == '?' {
			n++
			fmt.Fprintf(&b, "$%d", n)
			continue
		}
		b.WriteRune(r)
	}
	return b.String()
}

func (s *SQLStore) Put(ctx context.Context, namespace, path string, content []byte) error {
	ns, p, err := cleanAddress(namespace, path)
	if err != nil {
		return err
	}
	if err := s.ensureSchema(ctx); err != nil {
		return err
	}
	if content == nil {
		content = []byte{}
	}

	_, err = s.db.ExecContext(ctx, s.rebind(`
INSERT INTO component_artifacts (namespace, path, content, size, updated_at)
VALUES (?, ?, ?, ?, ?)
ON CONFLICT (namespace, path)
DO UPDATE SET content=excluded.content, size=excluded.size, updated_at=excluded.updated_at
`), ns, p, content, int64(len(content)), time.Now().UTC())
	return err
}

func (s *SQLStore) Get(ctx context.Context, namespace, path string) ([]byte, error) {
	ns, p, err := cleanAddress(namespace, path)
	if err != nil {
		return nil, err
	}
	if err := s.ensureSchema(ctx); err != nil {
		return nil, err
	}

	var content []byte
	err = s.db.QueryRowContext(ctx,
		s.rebind(`SELECT content FROM component_artifacts WHERE namespace=? AND path=?`), ns, p).Scan(&content)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	return content, err
}

func (s *SQLStore) List(ctx context.Context, namespace string) ([]string, error) {
	ns, err := cleanNamespace(namespace)
	if err != nil {
		return nil, err
	}
	if err := s.ensureSchema(ctx); err != nil {
		return nil, err
	}

	rows, err := s.db.QueryContext(ctx,
		s.rebind(`SELECT path FROM component_artifacts WHERE namespace=? ORDER BY path`), ns)
	if err != nil {
		return nil, fmt.Errorf("query failed: %w", err)
	}
	defer rows.Close()

	var paths []string
	for rows.Next() {
		var p string
		if err := rows.Scan(&p); err != nil {
			return nil, fmt.Errorf("scan failed: %w", err)
		}
		paths = append(paths, p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("rows iteration error: %w", err)
	}
	return paths, nil
}
