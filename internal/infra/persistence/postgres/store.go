// Package postgres persists store state into PostgreSQL using the pgx stdlib
// driver. Layout mirrors the sqlite backend: one JSONB payload per collection,
// rewritten after each successful transaction.
package postgres

import (
	"context"
	"database/sql"
	"fmt"
	"sync"

	"cellarcore/internal/infra/persistence/memory"
	"cellarcore/internal/infra/persistence/snapshot"
	"cellarcore/pkg/domain"

	_ "github.com/jackc/pgx/v5/stdlib"
)

// sqlOpen is indirected so tests can substitute a stub driver without a
// running server.
var sqlOpen = sql.Open

// OverrideSQLOpen swaps the database opener and returns a restore function.
// Intended for tests.
func OverrideSQLOpen(fn func(driverName, dsn string) (*sql.DB, error)) func() {
	prev := sqlOpen
	sqlOpen = fn
	return func() { sqlOpen = prev }
}

// Store layers PostgreSQL durability over the in-memory store.
type Store struct {
	*memory.Store
	db *sql.DB
	mu sync.Mutex
}

var _ domain.PersistentStore = (*Store)(nil)

// NewStore connects using dsn, ensures the schema, and loads any previously
// persisted collections.
func NewStore(dsn string, engine *domain.RulesEngine) (*Store, error) {
	if dsn == "" {
		return nil, fmt.Errorf("postgres dsn required")
	}
	db, err := sqlOpen("pgx", dsn)
	if err != nil {
		return nil, fmt.Errorf("open postgres: %w", err)
	}
	if _, err := db.Exec(`CREATE TABLE IF NOT EXISTS state (collection TEXT PRIMARY KEY, payload JSONB NOT NULL)`); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("create schema: %w", err)
	}
	store := &Store{Store: memory.New(engine), db: db}
	if err := store.load(); err != nil {
		_ = db.Close()
		return nil, err
	}
	return store, nil
}

func (s *Store) load() error {
	rows, err := s.db.Query(`SELECT collection, payload FROM state`)
	if err != nil {
		return fmt.Errorf("load state: %w", err)
	}
	defer func() { _ = rows.Close() }()
	payloads := map[string][]byte{}
	for rows.Next() {
		var collection string
		var payload []byte
		if err := rows.Scan(&collection, &payload); err != nil {
			return fmt.Errorf("scan state row: %w", err)
		}
		payloads[collection] = payload
	}
	if err := rows.Err(); err != nil {
		return fmt.Errorf("iterate state rows: %w", err)
	}
	if len(payloads) == 0 {
		return nil
	}
	snap, err := snapshot.Decode(payloads)
	if err != nil {
		return err
	}
	return s.Store.ImportState(snap)
}

// RunInTransaction commits in memory first and then persists the resulting
// snapshot.
func (s *Store) RunInTransaction(ctx context.Context, fn func(domain.Transaction) error) (domain.Result, error) {
	result, err := s.Store.RunInTransaction(ctx, fn)
	if err != nil {
		return result, err
	}
	if err := s.persist(ctx); err != nil {
		return result, fmt.Errorf("persist state: %w", err)
	}
	return result, nil
}

// ImportState replaces in-memory contents and persists them immediately.
func (s *Store) ImportState(snap domain.Snapshot) error {
	if err := s.Store.ImportState(snap); err != nil {
		return err
	}
	return s.persist(context.Background())
}

func (s *Store) persist(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	payloads, err := snapshot.Encode(s.ExportState())
	if err != nil {
		return err
	}
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	for _, collection := range snapshot.Collections {
		if _, err := tx.ExecContext(ctx,
			`INSERT INTO state (collection, payload) VALUES ($1, $2)
			 ON CONFLICT (collection) DO UPDATE SET payload = excluded.payload`,
			collection, payloads[collection]); err != nil {
			_ = tx.Rollback()
			return err
		}
	}
	return tx.Commit()
}

// Close releases the underlying database handle.
func (s *Store) Close() error { return s.db.Close() }

// DB exposes the underlying handle for diagnostics.
func (s *Store) DB() *sql.DB { return s.db }
