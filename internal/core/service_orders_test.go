package core

import (
	"context"
	"testing"

	"cellarcore/pkg/domain"
)

func seedOrderFixtures(t *testing.T, svc *Service) (Customer, DeliveryLocation, Product) {
	t.Helper()
	ctx := context.Background()
	customer, _, err := svc.CreateCustomer(ctx, Customer{Name: "Marunouchi Wine & Spirits"})
	if err != nil {
		t.Fatalf("create customer: %v", err)
	}
	location, _, err := svc.CreateDeliveryLocation(ctx, DeliveryLocation{CustomerID: customer.ID, Name: "Main Store"})
	if err != nil {
		t.Fatalf("create location: %v", err)
	}
	product, _, err := svc.CreateProduct(ctx, Product{Name: "Château Margaux 2015", Price: 85000, Stock: 15})
	if err != nil {
		t.Fatalf("create product: %v", err)
	}
	return customer, location, product
}

func TestCreateOrderDerivesTotal(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()
	customer, location, product := seedOrderFixtures(t, svc)

	order, _, err := svc.CreateOrder(ctx, Order{
		CustomerID:         customer.ID,
		DeliveryLocationID: location.ID,
		OrderDate:          "2024-04-10",
		Items: []domain.OrderItem{
			{ProductID: product.ID, Quantity: 2, Price: 85000},
			{ProductID: product.ID, Quantity: 2, Price: 42000},
		},
	})
	if err != nil {
		t.Fatalf("create order: %v", err)
	}
	if order.TotalAmount != 254000 {
		t.Fatalf("total = %d, want 254000", order.TotalAmount)
	}
	if order.Status != domain.OrderStatusPending {
		t.Fatalf("default status = %q, want pending", order.Status)
	}
	if order.SalesType != domain.SalesTypeStandard {
		t.Fatalf("default sales type = %q, want Standard", order.SalesType)
	}

	items := []domain.OrderItem{{ProductID: product.ID, Quantity: 1, Price: 85000}}
	updated, _, err := svc.UpdateOrder(ctx, order.ID, domain.OrderPatch{Items: &items})
	if err != nil {
		t.Fatalf("update order: %v", err)
	}
	if updated.TotalAmount != 85000 {
		t.Fatalf("total after item change = %d, want 85000", updated.TotalAmount)
	}
}

func TestDeleteOrderBranches(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()
	customer, location, product := seedOrderFixtures(t, svc)

	newOrder := func() Order {
		order, _, err := svc.CreateOrder(ctx, Order{
			CustomerID:         customer.ID,
			DeliveryLocationID: location.ID,
			Items:              []domain.OrderItem{{ProductID: product.ID, Quantity: 1, Price: 85000}},
		})
		if err != nil {
			t.Fatalf("create order: %v", err)
		}
		return order
	}

	t.Run("pending order is removed", func(t *testing.T) {
		order := newOrder()
		removed, _, err := svc.DeleteOrder(ctx, order.ID)
		if err != nil {
			t.Fatalf("delete: %v", err)
		}
		if !removed {
			t.Fatal("pending order should be hard-deleted")
		}
		if _, err := svc.GetOrder(ctx, order.ID); !domain.IsNotFound(err) {
			t.Fatalf("get deleted order error = %v, want not-found", err)
		}
	})

	t.Run("confirmed order is soft-cancelled", func(t *testing.T) {
		order := newOrder()
		if _, _, err := svc.ConfirmOrder(ctx, order.ID); err != nil {
			t.Fatalf("confirm: %v", err)
		}
		removed, _, err := svc.DeleteOrder(ctx, order.ID)
		if err != nil {
			t.Fatalf("delete: %v", err)
		}
		if removed {
			t.Fatal("confirmed order should be retained")
		}
		got, err := svc.GetOrder(ctx, order.ID)
		if err != nil {
			t.Fatalf("get: %v", err)
		}
		if got.Status != domain.OrderStatusCancelled {
			t.Fatalf("status = %q, want cancelled", got.Status)
		}
	})

	t.Run("missing order", func(t *testing.T) {
		if _, _, err := svc.DeleteOrder(ctx, "O-1999001"); !domain.IsNotFound(err) {
			t.Fatalf("error = %v, want not-found", err)
		}
	})
}

func TestConfirmOrderOnlyFromPending(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()
	customer, location, product := seedOrderFixtures(t, svc)

	order, _, err := svc.CreateOrder(ctx, Order{
		CustomerID:         customer.ID,
		DeliveryLocationID: location.ID,
		Items:              []domain.OrderItem{{ProductID: product.ID, Quantity: 1, Price: 85000}},
	})
	if err != nil {
		t.Fatalf("create order: %v", err)
	}
	confirmed, _, err := svc.ConfirmOrder(ctx, order.ID)
	if err != nil {
		t.Fatalf("confirm: %v", err)
	}
	if confirmed.Status != domain.OrderStatusConfirmed {
		t.Fatalf("status = %q, want confirmed", confirmed.Status)
	}
	if _, _, err := svc.ConfirmOrder(ctx, order.ID); !domain.IsConflict(err) {
		t.Fatalf("second confirm error = %v, want conflict", err)
	}
}

func TestSearchOrdersDateRange(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()
	customer, location, product := seedOrderFixtures(t, svc)

	for _, date := range []string{"2024-04-10", "2024-04-15", "2024-04-20"} {
		if _, _, err := svc.CreateOrder(ctx, Order{
			CustomerID:         customer.ID,
			DeliveryLocationID: location.ID,
			OrderDate:          date,
			Items:              []domain.OrderItem{{ProductID: product.ID, Quantity: 1, Price: 85000}},
		}); err != nil {
			t.Fatalf("create order: %v", err)
		}
	}

	found, err := svc.SearchOrders(ctx, domain.OrderFilter{StartDate: "2024-04-10", EndDate: "2024-04-15"})
	if err != nil {
		t.Fatalf("search: %v", err)
	}
	if len(found) != 2 {
		t.Fatalf("inclusive range matched %d orders, want 2", len(found))
	}

	found, err = svc.SearchOrders(ctx, domain.OrderFilter{StartDate: "2024-04-16"})
	if err != nil {
		t.Fatalf("search: %v", err)
	}
	if len(found) != 1 || found[0].OrderDate != "2024-04-20" {
		t.Fatalf("open-ended range = %+v", found)
	}
}

func TestConfirmDeliveryMarksOrderDelivered(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()
	customer, location, product := seedOrderFixtures(t, svc)

	order, _, err := svc.CreateOrder(ctx, Order{
		CustomerID:         customer.ID,
		DeliveryLocationID: location.ID,
		Items:              []domain.OrderItem{{ProductID: product.ID, Quantity: 1, Price: 85000}},
	})
	if err != nil {
		t.Fatalf("create order: %v", err)
	}
	delivery, _, err := svc.CreateDelivery(ctx, Delivery{OrderID: order.ID, DeliveryDate: "2024-04-12"})
	if err != nil {
		t.Fatalf("create delivery: %v", err)
	}
	if delivery.Status != domain.DeliveryStatusPendingConfirmation {
		t.Fatalf("default delivery status = %q", delivery.Status)
	}

	confirmed, _, err := svc.ConfirmDelivery(ctx, delivery.ID, "2024-04-13")
	if err != nil {
		t.Fatalf("confirm delivery: %v", err)
	}
	if confirmed.Status != domain.DeliveryStatusConfirmed {
		t.Fatalf("delivery status = %q, want confirmed", confirmed.Status)
	}
	if confirmed.ConfirmedDate == nil || *confirmed.ConfirmedDate != "2024-04-13" {
		t.Fatalf("confirmed date = %v", confirmed.ConfirmedDate)
	}
	got, err := svc.GetOrder(ctx, order.ID)
	if err != nil {
		t.Fatalf("get order: %v", err)
	}
	if got.Status != domain.OrderStatusDelivered {
		t.Fatalf("order status = %q, want delivered", got.Status)
	}
}
