package core

import (
	"context"

	"cellarcore/pkg/domain"
)

// ListOrders returns all orders in insertion order.
func (s *Service) ListOrders(ctx context.Context) ([]Order, error) {
	var out []Order
	err := s.view(ctx, "list_orders", func(view domain.TransactionView) error {
		out = view.ListOrders()
		return nil
	})
	return out, err
}

// GetOrder returns one order or a NotFoundError.
func (s *Service) GetOrder(ctx context.Context, id string) (Order, error) {
	var out Order
	err := s.view(ctx, "get_order", func(view domain.TransactionView) error {
		found, ok := view.FindOrder(id)
		if !ok {
			return domain.NotFoundError{Entity: domain.EntityOrder, ID: id}
		}
		out = found
		return nil
	})
	return out, err
}

// SearchOrders returns orders matching every set filter field, including the
// inclusive order-date range.
func (s *Service) SearchOrders(ctx context.Context, filter domain.OrderFilter) ([]Order, error) {
	var out []Order
	err := s.view(ctx, "search_orders", func(view domain.TransactionView) error {
		for _, o := range view.ListOrders() {
			if filter.Matches(o) {
				out = append(out, o)
			}
		}
		return nil
	})
	return out, err
}

// CreateOrder persists a new order. Missing order date, status, and sales
// type get their defaults; the total amount is computed from the items.
func (s *Service) CreateOrder(ctx context.Context, order Order) (Order, Result, error) {
	var created Order
	result, err := s.run(ctx, "create_order", func(tx domain.Transaction) error {
		var err error
		created, err = tx.CreateOrder(order)
		return err
	})
	return created, result, err
}

// UpdateOrder applies a partial update. When the patch carries items the
// total amount is recomputed; it can never be set directly.
func (s *Service) UpdateOrder(ctx context.Context, id string, patch domain.OrderPatch) (Order, Result, error) {
	var updated Order
	result, err := s.run(ctx, "update_order", func(tx domain.Transaction) error {
		var err error
		updated, err = tx.UpdateOrder(id, func(o *Order) error {
			patch.Apply(o)
			return nil
		})
		return err
	})
	return updated, result, err
}

// DeleteOrder hard-deletes pending orders and soft-cancels everything else.
// The removed flag reports which branch was taken.
func (s *Service) DeleteOrder(ctx context.Context, id string) (bool, Result, error) {
	var removed bool
	result, err := s.run(ctx, "delete_order", func(tx domain.Transaction) error {
		var err error
		removed, err = tx.DeleteOrder(id)
		return err
	})
	return removed, result, err
}

// ConfirmOrder transitions a pending order to confirmed. Confirming an order
// in any other state returns a ConflictError.
func (s *Service) ConfirmOrder(ctx context.Context, id string) (Order, Result, error) {
	var confirmed Order
	result, err := s.run(ctx, "confirm_order", func(tx domain.Transaction) error {
		var err error
		confirmed, err = tx.ConfirmOrder(id)
		return err
	})
	return confirmed, result, err
}

// ListDeliveries returns all deliveries in insertion order.
func (s *Service) ListDeliveries(ctx context.Context) ([]Delivery, error) {
	var out []Delivery
	err := s.view(ctx, "list_deliveries", func(view domain.TransactionView) error {
		out = view.ListDeliveries()
		return nil
	})
	return out, err
}

// OrderDeliveries returns the deliveries recorded for an order.
func (s *Service) OrderDeliveries(ctx context.Context, orderID string) ([]Delivery, error) {
	var out []Delivery
	err := s.view(ctx, "order_deliveries", func(view domain.TransactionView) error {
		for _, d := range view.ListDeliveries() {
			if d.OrderID == orderID {
				out = append(out, d)
			}
		}
		return nil
	})
	return out, err
}

// CreateDelivery persists a new delivery for an order.
func (s *Service) CreateDelivery(ctx context.Context, delivery Delivery) (Delivery, Result, error) {
	var created Delivery
	result, err := s.run(ctx, "create_delivery", func(tx domain.Transaction) error {
		var err error
		created, err = tx.CreateDelivery(delivery)
		return err
	})
	return created, result, err
}

// UpdateDelivery applies a partial update to a delivery.
func (s *Service) UpdateDelivery(ctx context.Context, id string, patch domain.DeliveryPatch) (Delivery, Result, error) {
	var updated Delivery
	result, err := s.run(ctx, "update_delivery", func(tx domain.Transaction) error {
		var err error
		updated, err = tx.UpdateDelivery(id, func(d *Delivery) error {
			patch.Apply(d)
			return nil
		})
		return err
	})
	return updated, result, err
}

// ConfirmDelivery marks a delivery confirmed on the given date and moves the
// owning order to delivered.
func (s *Service) ConfirmDelivery(ctx context.Context, id, confirmedDate string) (Delivery, Result, error) {
	var confirmed Delivery
	result, err := s.run(ctx, "confirm_delivery", func(tx domain.Transaction) error {
		var err error
		confirmed, err = tx.UpdateDelivery(id, func(d *Delivery) error {
			d.Status = domain.DeliveryStatusConfirmed
			date := confirmedDate
			d.ConfirmedDate = &date
			return nil
		})
		if err != nil {
			return err
		}
		if _, ok := tx.FindOrder(confirmed.OrderID); ok {
			status := domain.OrderStatusDelivered
			if _, err := tx.UpdateOrder(confirmed.OrderID, func(o *Order) error {
				o.Status = status
				return nil
			}); err != nil {
				return err
			}
		}
		return nil
	})
	return confirmed, result, err
}

// DeleteDelivery removes a delivery record.
func (s *Service) DeleteDelivery(ctx context.Context, id string) (Result, error) {
	return s.run(ctx, "delete_delivery", func(tx domain.Transaction) error {
		return tx.DeleteDelivery(id)
	})
}
