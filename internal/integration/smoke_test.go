package integration

import (
	"context"
	"path/filepath"
	"testing"

	"cellarcore/internal/blob"
	"cellarcore/internal/core"
	"cellarcore/internal/infra/persistence/kv"
	"cellarcore/internal/infra/persistence/memory"
	"cellarcore/internal/infra/persistence/sqlite"
	"cellarcore/pkg/domain"
)

// The smoke test runs the same workflow against every store backend: seed,
// order lifecycle, cellar usage, history aggregation, CSV export.
func TestWorkflowAcrossBackends(t *testing.T) {
	backends := []struct {
		name string
		open func(t *testing.T) domain.PersistentStore
	}{
		{"memory", func(t *testing.T) domain.PersistentStore {
			return memory.New(core.NewDefaultRulesEngine())
		}},
		{"sqlite", func(t *testing.T) domain.PersistentStore {
			store, err := sqlite.NewStore(filepath.Join(t.TempDir(), "smoke.db"), core.NewDefaultRulesEngine())
			if err != nil {
				t.Fatalf("open sqlite store: %v", err)
			}
			return store
		}},
		{"kv", func(t *testing.T) domain.PersistentStore {
			blobs, err := blob.NewFilesystem(t.TempDir())
			if err != nil {
				t.Fatalf("open blob store: %v", err)
			}
			store, err := kv.NewStore(context.Background(), blobs, core.NewDefaultRulesEngine(), nil)
			if err != nil {
				t.Fatalf("open kv store: %v", err)
			}
			return store
		}},
	}

	for _, backend := range backends {
		t.Run(backend.name, func(t *testing.T) {
			ctx := context.Background()
			svc := core.NewService(backend.open(t))
			defer svc.Close()

			if err := core.Seed(ctx, svc.Store()); err != nil {
				t.Fatalf("seed: %v", err)
			}

			// Order lifecycle against seeded fixtures.
			order, _, err := svc.CreateOrder(ctx, core.Order{
				CustomerID:         "C001",
				DeliveryLocationID: "D001",
				OrderDate:          "2024-04-22",
				Items: []domain.OrderItem{
					{ProductID: "P004", Quantity: 2, Price: 36000},
					{ProductID: "P005", Quantity: 1, Price: 15000},
				},
			})
			if err != nil {
				t.Fatalf("create order: %v", err)
			}
			if order.TotalAmount != 87000 {
				t.Fatalf("order total = %d, want 87000", order.TotalAmount)
			}
			if _, _, err := svc.ConfirmOrder(ctx, order.ID); err != nil {
				t.Fatalf("confirm order: %v", err)
			}
			removed, _, err := svc.DeleteOrder(ctx, order.ID)
			if err != nil {
				t.Fatalf("delete order: %v", err)
			}
			if removed {
				t.Fatal("confirmed order should soft-cancel")
			}

			// Cellar usage decrements on-site stock.
			before, err := svc.LocationCellarStock(ctx, "D002")
			if err != nil {
				t.Fatalf("location stock: %v", err)
			}
			if _, _, err := svc.CreateUsageRecord(ctx, core.UsageRecord{
				DeliveryLocationID: "D002",
				ProductID:          "P001",
				Quantity:           2,
				UsageDate:          "2024-04-23",
				RegisteredBy:       "Mori",
			}); err != nil {
				t.Fatalf("create usage: %v", err)
			}
			after, err := svc.LocationCellarStock(ctx, "D002")
			if err != nil {
				t.Fatalf("location stock: %v", err)
			}
			if after[0].CurrentStock != before[0].CurrentStock-2 {
				t.Fatalf("stock %d -> %d, want decrement by 2", before[0].CurrentStock, after[0].CurrentStock)
			}

			history, err := svc.CustomerTransactionHistory(ctx, "C001")
			if err != nil {
				t.Fatalf("history: %v", err)
			}
			if len(history.Orders) == 0 || len(history.Invoices) != 2 {
				t.Fatalf("history sizes orders=%d invoices=%d", len(history.Orders), len(history.Invoices))
			}

			exporter := core.NewExporter(svc, blob.NewMemory())
			info, err := exporter.ExportOrders(ctx)
			if err != nil {
				t.Fatalf("export: %v", err)
			}
			if info.Size == 0 {
				t.Fatal("export produced no bytes")
			}
		})
	}
}
