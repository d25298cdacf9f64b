// Package kv persists store state through the blob storage adapter: one JSON
// array object per collection under a common key prefix. Any blob backend
// (fs, s3, memory) can hold the data.
package kv

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"sync"

	"cellarcore/internal/blob"
	"cellarcore/internal/infra/persistence/memory"
	"cellarcore/internal/infra/persistence/snapshot"
	"cellarcore/pkg/domain"

	"go.uber.org/zap"
)

// DefaultPrefix is the key prefix collections are stored under.
const DefaultPrefix = "collections/"

// Store layers blob-object durability over the in-memory store.
type Store struct {
	*memory.Store
	blobs  blob.Store
	prefix string
	log    *zap.Logger
	mu     sync.Mutex
}

var _ domain.PersistentStore = (*Store)(nil)

// NewStore loads existing collections from the blob backend. Unreadable or
// corrupt collection objects are logged and treated as empty rather than
// failing the open; writes will repair them on the next commit.
func NewStore(ctx context.Context, blobs blob.Store, engine *domain.RulesEngine, logger *zap.Logger) (*Store, error) {
	if logger == nil {
		logger = zap.NewNop()
	}
	store := &Store{Store: memory.New(engine), blobs: blobs, prefix: DefaultPrefix, log: logger}
	if err := store.load(ctx); err != nil {
		return nil, err
	}
	return store, nil
}

func (s *Store) keyFor(collection string) string {
	return s.prefix + collection + ".json"
}

func (s *Store) load(ctx context.Context) error {
	var snap domain.Snapshot
	loaded := false
	for _, collection := range snapshot.Collections {
		key := s.keyFor(collection)
		_, rc, err := s.blobs.Get(ctx, key)
		if err != nil {
			// Absent collections are expected on first run.
			s.log.Debug("collection object not readable", zap.String("key", key), zap.Error(err))
			continue
		}
		payload, err := io.ReadAll(rc)
		_ = rc.Close()
		if err != nil {
			s.log.Warn("collection object read failed, starting empty", zap.String("key", key), zap.Error(err))
			continue
		}
		// Corruption is tolerated per collection: only the bad object loads
		// empty, every other collection keeps its persisted records.
		if err := snapshot.DecodeCollection(&snap, collection, payload); err != nil {
			s.log.Warn("collection object is corrupt, starting empty", zap.String("key", key), zap.Error(err))
			continue
		}
		loaded = true
	}
	if !loaded {
		return nil
	}
	return s.Store.ImportState(snap)
}

// RunInTransaction commits in memory first and then rewrites every
// collection object.
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
	for _, collection := range snapshot.Collections {
		key := s.keyFor(collection)
		opts := blob.PutOptions{ContentType: "application/json"}
		if _, err := s.blobs.Put(ctx, key, bytes.NewReader(payloads[collection]), opts); err != nil {
			s.log.Error("collection write failed", zap.String("key", key), zap.Error(err))
			return fmt.Errorf("write %s: %w", key, err)
		}
	}
	return nil
}

// Blobs exposes the backing blob store.
func (s *Store) Blobs() blob.Store { return s.blobs }
