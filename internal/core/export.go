package core

import (
	"bytes"
	"context"
	"encoding/csv"
	"fmt"
	"io"
	"strconv"

	"github.com/google/uuid"

	blobcore "cellarcore/internal/blob/core"
	"cellarcore/pkg/domain"
)

var orderCSVHeader = []string{
	"orderId", "customerId", "customerName", "deliveryLocationId",
	"deliveryLocationName", "orderDate", "status", "salesType",
	"totalAmount", "assignedTo", "itemCount",
}

// WriteOrdersCSV renders the current orders as CSV, joining in customer and
// delivery location names. Fields with commas, quotes, or newlines are quoted
// per RFC 4180 by the encoder.
func (s *Service) WriteOrdersCSV(ctx context.Context, w io.Writer) error {
	return s.view(ctx, "write_orders_csv", func(view domain.TransactionView) error {
		writer := csv.NewWriter(w)
		if err := writer.Write(orderCSVHeader); err != nil {
			return fmt.Errorf("write csv header: %w", err)
		}
		for _, o := range view.ListOrders() {
			var customerName, locationName string
			if c, ok := view.FindCustomer(o.CustomerID); ok {
				customerName = c.Name
			}
			if l, ok := view.FindDeliveryLocation(o.DeliveryLocationID); ok {
				locationName = l.Name
			}
			record := []string{
				o.ID, o.CustomerID, customerName, o.DeliveryLocationID,
				locationName, o.OrderDate, string(o.Status), string(o.SalesType),
				strconv.FormatInt(o.TotalAmount, 10), o.AssignedTo,
				strconv.Itoa(len(o.Items)),
			}
			if err := writer.Write(record); err != nil {
				return fmt.Errorf("write csv record %s: %w", o.ID, err)
			}
		}
		writer.Flush()
		return writer.Error()
	})
}

// Exporter publishes CSV exports to a blob store.
type Exporter struct {
	service *Service
	blobs   blobcore.Store
}

// NewExporter wires a service to a blob destination.
func NewExporter(service *Service, blobs blobcore.Store) *Exporter {
	return &Exporter{service: service, blobs: blobs}
}

// ExportOrders writes the order CSV to the blob store under a fresh
// exports/ key and returns the stored object info.
func (e *Exporter) ExportOrders(ctx context.Context) (blobcore.Info, error) {
	var buf bytes.Buffer
	if err := e.service.WriteOrdersCSV(ctx, &buf); err != nil {
		return blobcore.Info{}, err
	}
	key := fmt.Sprintf("exports/orders-%s.csv", uuid.NewString())
	info, err := e.blobs.Put(ctx, key, &buf, blobcore.PutOptions{ContentType: "text/csv"})
	if err != nil {
		return blobcore.Info{}, fmt.Errorf("store export %s: %w", key, err)
	}
	return info, nil
}
