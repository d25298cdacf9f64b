package core

import (
	"context"
	"fmt"
	"os"

	"go.uber.org/zap"

	"cellarcore/internal/blob"
	"cellarcore/internal/infra/persistence/kv"
	"cellarcore/internal/infra/persistence/memory"
	"cellarcore/internal/infra/persistence/postgres"
	"cellarcore/internal/infra/persistence/sqlite"
	"cellarcore/pkg/domain"
)

// Storage driver selection environment variables.
const (
	EnvStorageDriver = "CELLARCORE_STORAGE_DRIVER"
	EnvSQLitePath    = "CELLARCORE_SQLITE_PATH"
	EnvPostgresDSN   = "CELLARCORE_POSTGRES_DSN"

	defaultSQLitePath = "cellarcore.db"
)

// OpenPersistentStore builds the persistent store selected by
// CELLARCORE_STORAGE_DRIVER: memory, kv, sqlite (default), or postgres. The
// kv driver persists snapshots through the blob store configured by the
// CELLARCORE_BLOB_* variables.
func OpenPersistentStore(ctx context.Context, engine *domain.RulesEngine, logger *zap.Logger) (domain.PersistentStore, error) {
	driver := os.Getenv(EnvStorageDriver)
	if driver == "" {
		driver = "sqlite"
	}
	switch driver {
	case "memory":
		return memory.New(engine), nil
	case "sqlite":
		path := os.Getenv(EnvSQLitePath)
		if path == "" {
			path = defaultSQLitePath
		}
		return sqlite.NewStore(path, engine)
	case "postgres":
		dsn := os.Getenv(EnvPostgresDSN)
		if dsn == "" {
			return nil, fmt.Errorf("postgres driver requires %s", EnvPostgresDSN)
		}
		return postgres.NewStore(dsn, engine)
	case "kv":
		blobs, err := blob.Open(ctx)
		if err != nil {
			return nil, fmt.Errorf("open blob store for kv driver: %w", err)
		}
		return kv.NewStore(ctx, blobs, engine, logger)
	default:
		return nil, fmt.Errorf("unsupported storage driver %q", driver)
	}
}
