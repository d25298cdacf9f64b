package core

import (
	"context"
	"testing"

	"cellarcore/pkg/domain"
)

func TestSeedLoadsDemoDataset(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()

	if err := Seed(ctx, svc.Store()); err != nil {
		t.Fatalf("seed: %v", err)
	}

	counts := []struct {
		name string
		got  func() (int, error)
		want int
	}{
		{"customers", func() (int, error) { c, err := svc.ListCustomers(ctx); return len(c), err }, 3},
		{"locations", func() (int, error) { l, err := svc.ListDeliveryLocations(ctx); return len(l), err }, 4},
		{"products", func() (int, error) { p, err := svc.ListProducts(ctx); return len(p), err }, 5},
		{"orders", func() (int, error) { o, err := svc.ListOrders(ctx); return len(o), err }, 3},
		{"deliveries", func() (int, error) { d, err := svc.ListDeliveries(ctx); return len(d), err }, 2},
		{"cellar stock", func() (int, error) { c, err := svc.ListCellarStock(ctx); return len(c), err }, 4},
		{"usage records", func() (int, error) { u, err := svc.ListUsageRecords(ctx); return len(u), err }, 3},
		{"activities", func() (int, error) { a, err := svc.ListActivities(ctx); return len(a), err }, 4},
		{"discount rules", func() (int, error) { r, err := svc.ListDiscountRules(ctx); return len(r), err }, 3},
		{"invoices", func() (int, error) { i, err := svc.ListInvoices(ctx); return len(i), err }, 2},
		{"notices", func() (int, error) { n, err := svc.ListNotices(ctx); return len(n), err }, 3},
	}
	for _, c := range counts {
		got, err := c.got()
		if err != nil {
			t.Fatalf("list %s: %v", c.name, err)
		}
		if got != c.want {
			t.Fatalf("%s count = %d, want %d", c.name, got, c.want)
		}
	}

	order, err := svc.GetOrder(ctx, "O-2024001")
	if err != nil {
		t.Fatalf("get seeded order: %v", err)
	}
	if order.TotalAmount != 254000 {
		t.Fatalf("seeded order total = %d, want 254000", order.TotalAmount)
	}
}

func TestSeedSkipsNonEmptyStore(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()

	if _, _, err := svc.CreateCustomer(ctx, Customer{Name: "Existing"}); err != nil {
		t.Fatalf("create: %v", err)
	}
	if err := Seed(ctx, svc.Store()); err != nil {
		t.Fatalf("seed: %v", err)
	}
	customers, err := svc.ListCustomers(ctx)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(customers) != 1 {
		t.Fatalf("seed ran on non-empty store, %d customers", len(customers))
	}
}

func TestSeedAdvancesIDSequences(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()

	if err := Seed(ctx, svc.Store()); err != nil {
		t.Fatalf("seed: %v", err)
	}
	created, _, err := svc.CreateCustomer(ctx, domain.Customer{Name: "New Account"})
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if created.ID != "C004" {
		t.Fatalf("next customer ID = %q, want C004", created.ID)
	}
}
