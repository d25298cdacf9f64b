// Package sqlite persists store state into a SQLite database file. It embeds
// the in-memory store for transactional semantics and writes one JSON payload
// per collection after every successful commit.
package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"sync"

	"cellarcore/internal/infra/persistence/memory"
	"cellarcore/internal/infra/persistence/snapshot"
	"cellarcore/pkg/domain"

	_ "modernc.org/sqlite"
)

// Store layers SQLite durability over the in-memory store.
type Store struct {
	*memory.Store
	db   *sql.DB
	mu   sync.Mutex
	path string
}

var _ domain.PersistentStore = (*Store)(nil)

// NewStore opens (creating if necessary) the database at path and loads any
// previously persisted collections.
func NewStore(path string, engine *domain.RulesEngine) (*Store, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open sqlite: %w", err)
	}
	if _, err := db.Exec(`CREATE TABLE IF NOT EXISTS state (collection TEXT PRIMARY KEY, payload BLOB NOT NULL)`); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("create schema: %w", err)
	}
	store := &Store{Store: memory.New(engine), db: db, path: path}
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
// snapshot. A persistence failure is returned to the caller; the in-memory
// state keeps the committed transaction.
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
			`INSERT INTO state (collection, payload) VALUES (?, ?)
			 ON CONFLICT(collection) DO UPDATE SET payload = excluded.payload`,
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

// Path returns the database file path.
func (s *Store) Path() string { return s.path }
