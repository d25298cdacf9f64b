package core

import (
	"context"

	"cellarcore/pkg/domain"
)

// ListCustomers returns all customers in insertion order.
func (s *Service) ListCustomers(ctx context.Context) ([]Customer, error) {
	var out []Customer
	err := s.view(ctx, "list_customers", func(view domain.TransactionView) error {
		out = view.ListCustomers()
		return nil
	})
	return out, err
}

// GetCustomer returns one customer or a NotFoundError.
func (s *Service) GetCustomer(ctx context.Context, id string) (Customer, error) {
	var out Customer
	err := s.view(ctx, "get_customer", func(view domain.TransactionView) error {
		found, ok := view.FindCustomer(id)
		if !ok {
			return domain.NotFoundError{Entity: domain.EntityCustomer, ID: id}
		}
		out = found
		return nil
	})
	return out, err
}

// SearchCustomers returns customers matching every set filter field.
func (s *Service) SearchCustomers(ctx context.Context, filter domain.CustomerFilter) ([]Customer, error) {
	var out []Customer
	err := s.view(ctx, "search_customers", func(view domain.TransactionView) error {
		for _, c := range view.ListCustomers() {
			if filter.Matches(c) {
				out = append(out, c)
			}
		}
		return nil
	})
	return out, err
}

// CreateCustomer persists a new customer, allocating its ID when absent.
func (s *Service) CreateCustomer(ctx context.Context, customer Customer) (Customer, Result, error) {
	var created Customer
	result, err := s.run(ctx, "create_customer", func(tx domain.Transaction) error {
		var err error
		created, err = tx.CreateCustomer(customer)
		return err
	})
	return created, result, err
}

// UpdateCustomer applies a partial update to an existing customer.
func (s *Service) UpdateCustomer(ctx context.Context, id string, patch domain.CustomerPatch) (Customer, Result, error) {
	var updated Customer
	result, err := s.run(ctx, "update_customer", func(tx domain.Transaction) error {
		var err error
		updated, err = tx.UpdateCustomer(id, func(c *Customer) error {
			patch.Apply(c)
			return nil
		})
		return err
	})
	return updated, result, err
}

// DeleteCustomer removes a customer. Deletion is refused with a
// ReferencedError while delivery locations, orders, or invoices still point
// at the customer.
func (s *Service) DeleteCustomer(ctx context.Context, id string) (Result, error) {
	return s.run(ctx, "delete_customer", func(tx domain.Transaction) error {
		return tx.DeleteCustomer(id)
	})
}

// CustomerDeliveryLocations returns the delivery locations owned by a customer.
func (s *Service) CustomerDeliveryLocations(ctx context.Context, customerID string) ([]DeliveryLocation, error) {
	var out []DeliveryLocation
	err := s.view(ctx, "customer_delivery_locations", func(view domain.TransactionView) error {
		for _, l := range view.ListDeliveryLocations() {
			if l.CustomerID == customerID {
				out = append(out, l)
			}
		}
		return nil
	})
	return out, err
}
