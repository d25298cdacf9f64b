package core

import (
	"context"
	"testing"

	"cellarcore/internal/infra/persistence/memory"
	"cellarcore/pkg/domain"
)

func newTestService(t *testing.T, opts ...ServiceOption) *Service {
	t.Helper()
	svc := NewService(memory.New(NewDefaultRulesEngine()), opts...)
	t.Cleanup(func() { _ = svc.Close() })
	return svc
}

func TestCustomerLifecycle(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()

	first, _, err := svc.CreateCustomer(ctx, Customer{Name: "Marunouchi Wine & Spirits", Email: "info@marunouchi.example"})
	if err != nil {
		t.Fatalf("create customer: %v", err)
	}
	if first.ID != "C001" {
		t.Fatalf("first customer ID = %q, want C001", first.ID)
	}
	second, _, err := svc.CreateCustomer(ctx, Customer{Name: "Osaka Liquor Wholesale"})
	if err != nil {
		t.Fatalf("create second customer: %v", err)
	}
	if second.ID != "C002" {
		t.Fatalf("second customer ID = %q, want C002", second.ID)
	}

	name := "Marunouchi Wine & Spirits K.K."
	updated, _, err := svc.UpdateCustomer(ctx, first.ID, domain.CustomerPatch{Name: &name})
	if err != nil {
		t.Fatalf("update customer: %v", err)
	}
	if updated.Name != name {
		t.Fatalf("updated name = %q, want %q", updated.Name, name)
	}

	got, err := svc.GetCustomer(ctx, first.ID)
	if err != nil {
		t.Fatalf("get customer: %v", err)
	}
	if got.Name != name {
		t.Fatalf("get returned stale name %q", got.Name)
	}
	if _, err := svc.GetCustomer(ctx, "C999"); !domain.IsNotFound(err) {
		t.Fatalf("get missing customer error = %v, want not-found", err)
	}

	if _, err := svc.DeleteCustomer(ctx, second.ID); err != nil {
		t.Fatalf("delete customer: %v", err)
	}
	remaining, err := svc.ListCustomers(ctx)
	if err != nil {
		t.Fatalf("list customers: %v", err)
	}
	if len(remaining) != 1 || remaining[0].ID != "C001" {
		t.Fatalf("remaining customers = %+v", remaining)
	}
}

func TestSearchCustomersMatchesAllSetFields(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()

	if _, _, err := svc.CreateCustomer(ctx, Customer{Name: "Marunouchi Wine & Spirits", Address: "Tokyo"}); err != nil {
		t.Fatalf("create: %v", err)
	}
	if _, _, err := svc.CreateCustomer(ctx, Customer{Name: "Osaka Liquor Wholesale", Address: "Osaka"}); err != nil {
		t.Fatalf("create: %v", err)
	}

	found, err := svc.SearchCustomers(ctx, domain.CustomerFilter{Name: "wine"})
	if err != nil {
		t.Fatalf("search: %v", err)
	}
	if len(found) != 1 || found[0].ID != "C001" {
		t.Fatalf("search by name = %+v", found)
	}

	found, err = svc.SearchCustomers(ctx, domain.CustomerFilter{Name: "wine", Address: "Osaka"})
	if err != nil {
		t.Fatalf("search: %v", err)
	}
	if len(found) != 0 {
		t.Fatalf("conjunctive search matched %+v", found)
	}
}

func TestDeleteCustomerGuardedByReferences(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()

	customer, _, err := svc.CreateCustomer(ctx, Customer{Name: "Yokohama Grand Hotel Group"})
	if err != nil {
		t.Fatalf("create customer: %v", err)
	}
	location, _, err := svc.CreateDeliveryLocation(ctx, DeliveryLocation{CustomerID: customer.ID, Name: "Banquet Hall"})
	if err != nil {
		t.Fatalf("create location: %v", err)
	}

	if _, err := svc.DeleteCustomer(ctx, customer.ID); !domain.IsReferenced(err) {
		t.Fatalf("delete referenced customer error = %v, want referenced", err)
	}
	if _, err := svc.DeleteDeliveryLocation(ctx, location.ID); err != nil {
		t.Fatalf("delete location: %v", err)
	}
	if _, err := svc.DeleteCustomer(ctx, customer.ID); err != nil {
		t.Fatalf("delete after unreferencing: %v", err)
	}
}

func TestCheckStock(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()

	product, _, err := svc.CreateProduct(ctx, Product{Name: "Barolo Riserva 2017", Price: 28000, Stock: 5})
	if err != nil {
		t.Fatalf("create product: %v", err)
	}

	cases := []struct {
		name     string
		id       string
		quantity int
		want     bool
	}{
		{"sufficient", product.ID, 5, true},
		{"insufficient", product.ID, 6, false},
		{"missing product", "P999", 1, false},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			ok, err := svc.CheckStock(ctx, tc.id, tc.quantity)
			if err != nil {
				t.Fatalf("check stock: %v", err)
			}
			if ok != tc.want {
				t.Fatalf("CheckStock(%s, %d) = %v, want %v", tc.id, tc.quantity, ok, tc.want)
			}
		})
	}
}

func TestCustomerDeliveryLocations(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()

	a, _, err := svc.CreateCustomer(ctx, Customer{Name: "A"})
	if err != nil {
		t.Fatalf("create customer: %v", err)
	}
	b, _, err := svc.CreateCustomer(ctx, Customer{Name: "B"})
	if err != nil {
		t.Fatalf("create customer: %v", err)
	}
	for _, owner := range []string{a.ID, a.ID, b.ID} {
		if _, _, err := svc.CreateDeliveryLocation(ctx, DeliveryLocation{CustomerID: owner, Name: "loc"}); err != nil {
			t.Fatalf("create location: %v", err)
		}
	}

	locations, err := svc.CustomerDeliveryLocations(ctx, a.ID)
	if err != nil {
		t.Fatalf("list locations: %v", err)
	}
	if len(locations) != 2 {
		t.Fatalf("customer A has %d locations, want 2", len(locations))
	}
}
