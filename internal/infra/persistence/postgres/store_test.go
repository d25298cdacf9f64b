package postgres

import (
	"context"
	"database/sql"
	"path/filepath"
	"testing"

	"cellarcore/pkg/domain"

	_ "modernc.org/sqlite"
)

// The tests stub the database opener with a SQLite handle: the store only
// uses portable SQL ($N placeholders, ON CONFLICT upsert), so the snapshot
// logic is exercised without a running server.
func stubOpener(t *testing.T) func() {
	t.Helper()
	path := filepath.Join(t.TempDir(), "pg-stub.db")
	return OverrideSQLOpen(func(_, _ string) (*sql.DB, error) {
		return sql.Open("sqlite", path)
	})
}

func TestRequiresDSN(t *testing.T) {
	if _, err := NewStore("", nil); err == nil {
		t.Fatalf("empty dsn must be rejected")
	}
}

func TestSnapshotPersistenceWithStubbedDriver(t *testing.T) {
	restore := stubOpener(t)
	defer restore()
	ctx := context.Background()

	store, err := NewStore("postgres://stub", nil)
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	if _, err := store.RunInTransaction(ctx, func(tx domain.Transaction) error {
		if _, err := tx.CreateProduct(domain.Product{Name: "Barolo Riserva 2017", Price: 42000, Stock: 8}); err != nil {
			return err
		}
		_, err := tx.CreateCellarStock(domain.CellarStock{DeliveryLocationID: "D002", ProductID: "P001", CurrentStock: 5, SafetyStock: 3})
		return err
	}); err != nil {
		t.Fatalf("seed: %v", err)
	}
	if err := store.Close(); err != nil {
		t.Fatalf("close: %v", err)
	}

	reopened, err := NewStore("postgres://stub", nil)
	if err != nil {
		t.Fatalf("reopen: %v", err)
	}
	defer func() { _ = reopened.Close() }()
	_ = reopened.View(ctx, func(view domain.TransactionView) error {
		if len(view.ListProducts()) != 1 {
			t.Fatalf("product not restored")
		}
		stock := view.ListCellarStock()
		if len(stock) != 1 || stock[0].CurrentStock != 5 {
			t.Fatalf("cellar stock not restored: %+v", stock)
		}
		return nil
	})
}
