package core

import (
	"bytes"
	"context"
	"encoding/csv"
	"io"
	"strings"
	"testing"

	"cellarcore/internal/blob"
	"cellarcore/pkg/domain"
)

func TestWriteOrdersCSVQuotesSpecialCharacters(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()

	customer, _, err := svc.CreateCustomer(ctx, Customer{Name: `Vineyard "Le Clos", Ltd.`})
	if err != nil {
		t.Fatalf("create customer: %v", err)
	}
	location, _, err := svc.CreateDeliveryLocation(ctx, DeliveryLocation{
		CustomerID: customer.ID,
		Name:       "Cellar\nBasement Entrance",
	})
	if err != nil {
		t.Fatalf("create location: %v", err)
	}
	if _, _, err := svc.CreateOrder(ctx, Order{
		CustomerID:         customer.ID,
		DeliveryLocationID: location.ID,
		OrderDate:          "2024-04-10",
		AssignedTo:         "Sato",
		Items:              []domain.OrderItem{{ProductID: "P001", Quantity: 2, Price: 85000}},
	}); err != nil {
		t.Fatalf("create order: %v", err)
	}

	var buf bytes.Buffer
	if err := svc.WriteOrdersCSV(ctx, &buf); err != nil {
		t.Fatalf("write csv: %v", err)
	}

	records, err := csv.NewReader(&buf).ReadAll()
	if err != nil {
		t.Fatalf("parse csv back: %v", err)
	}
	if len(records) != 2 {
		t.Fatalf("got %d records, want header and one row", len(records))
	}
	row := records[1]
	if row[2] != `Vineyard "Le Clos", Ltd.` {
		t.Fatalf("customer name round-trip = %q", row[2])
	}
	if row[4] != "Cellar\nBasement Entrance" {
		t.Fatalf("location name round-trip = %q", row[4])
	}
	if row[8] != "170000" {
		t.Fatalf("total column = %q, want 170000", row[8])
	}
}

func TestExporterStoresCSVInBlobStore(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()
	customer, location, product := seedOrderFixtures(t, svc)
	if _, _, err := svc.CreateOrder(ctx, Order{
		CustomerID:         customer.ID,
		DeliveryLocationID: location.ID,
		OrderDate:          "2024-04-10",
		Items:              []domain.OrderItem{{ProductID: product.ID, Quantity: 1, Price: 85000}},
	}); err != nil {
		t.Fatalf("create order: %v", err)
	}

	blobs := blob.NewMemory()
	exporter := NewExporter(svc, blobs)

	info, err := exporter.ExportOrders(ctx)
	if err != nil {
		t.Fatalf("export: %v", err)
	}
	if !strings.HasPrefix(info.Key, "exports/orders-") || !strings.HasSuffix(info.Key, ".csv") {
		t.Fatalf("export key = %q", info.Key)
	}
	if info.ContentType != "text/csv" {
		t.Fatalf("content type = %q", info.ContentType)
	}

	_, rc, err := blobs.Get(ctx, info.Key)
	if err != nil {
		t.Fatalf("get export: %v", err)
	}
	defer rc.Close()
	data, err := io.ReadAll(rc)
	if err != nil {
		t.Fatalf("read export: %v", err)
	}
	if !strings.Contains(string(data), "O-") {
		t.Fatalf("export missing order rows: %q", data)
	}

	again, err := exporter.ExportOrders(ctx)
	if err != nil {
		t.Fatalf("second export: %v", err)
	}
	if again.Key == info.Key {
		t.Fatalf("export keys collided: %q", again.Key)
	}
}
