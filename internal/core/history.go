package core

import (
	"context"
	"sort"

	"cellarcore/pkg/domain"
)

// CustomerHistory aggregates a customer's transactional records. Orders and
// activities are sorted by their business date, newest first; ties keep
// insertion order.
type CustomerHistory struct {
	Orders     []Order    `json:"orders"`
	Invoices   []Invoice  `json:"invoices"`
	Activities []Activity `json:"activities"`
}

// LocationHistory aggregates the transactional records of a single delivery
// location.
type LocationHistory struct {
	Orders       []Order       `json:"orders"`
	UsageRecords []UsageRecord `json:"usageRecords"`
	Activities   []Activity    `json:"activities"`
}

// CustomerTransactionHistory collects a customer's orders, invoices, and
// activities in one consistent read. A missing customer yields a
// NotFoundError.
func (s *Service) CustomerTransactionHistory(ctx context.Context, customerID string) (CustomerHistory, error) {
	var history CustomerHistory
	err := s.view(ctx, "customer_transaction_history", func(view domain.TransactionView) error {
		if _, ok := view.FindCustomer(customerID); !ok {
			return domain.NotFoundError{Entity: domain.EntityCustomer, ID: customerID}
		}
		for _, o := range view.ListOrders() {
			if o.CustomerID == customerID {
				history.Orders = append(history.Orders, o)
			}
		}
		for _, inv := range view.ListInvoices() {
			if inv.CustomerID == customerID {
				history.Invoices = append(history.Invoices, inv)
			}
		}
		for _, a := range view.ListActivities() {
			if a.CustomerID == customerID {
				history.Activities = append(history.Activities, a)
			}
		}
		sortOrdersByDateDesc(history.Orders)
		sortActivitiesByDateDesc(history.Activities)
		return nil
	})
	return history, err
}

// LocationTransactionHistory collects a delivery location's orders, usage
// records, and activities in one consistent read. A missing location yields a
// NotFoundError.
func (s *Service) LocationTransactionHistory(ctx context.Context, locationID string) (LocationHistory, error) {
	var history LocationHistory
	err := s.view(ctx, "location_transaction_history", func(view domain.TransactionView) error {
		if _, ok := view.FindDeliveryLocation(locationID); !ok {
			return domain.NotFoundError{Entity: domain.EntityDeliveryLocation, ID: locationID}
		}
		for _, o := range view.ListOrders() {
			if o.DeliveryLocationID == locationID {
				history.Orders = append(history.Orders, o)
			}
		}
		for _, u := range view.ListUsageRecords() {
			if u.DeliveryLocationID == locationID {
				history.UsageRecords = append(history.UsageRecords, u)
			}
		}
		for _, a := range view.ListActivities() {
			if a.DeliveryLocationID != nil && *a.DeliveryLocationID == locationID {
				history.Activities = append(history.Activities, a)
			}
		}
		sortOrdersByDateDesc(history.Orders)
		sortActivitiesByDateDesc(history.Activities)
		return nil
	})
	return history, err
}

// CustomerOrderHistory returns a customer's orders, newest first.
func (s *Service) CustomerOrderHistory(ctx context.Context, customerID string) ([]Order, error) {
	var out []Order
	err := s.view(ctx, "customer_order_history", func(view domain.TransactionView) error {
		if _, ok := view.FindCustomer(customerID); !ok {
			return domain.NotFoundError{Entity: domain.EntityCustomer, ID: customerID}
		}
		for _, o := range view.ListOrders() {
			if o.CustomerID == customerID {
				out = append(out, o)
			}
		}
		sortOrdersByDateDesc(out)
		return nil
	})
	return out, err
}

// LocationOrderHistory returns the orders shipped to a delivery location,
// newest first.
func (s *Service) LocationOrderHistory(ctx context.Context, locationID string) ([]Order, error) {
	var out []Order
	err := s.view(ctx, "location_order_history", func(view domain.TransactionView) error {
		if _, ok := view.FindDeliveryLocation(locationID); !ok {
			return domain.NotFoundError{Entity: domain.EntityDeliveryLocation, ID: locationID}
		}
		for _, o := range view.ListOrders() {
			if o.DeliveryLocationID == locationID {
				out = append(out, o)
			}
		}
		sortOrdersByDateDesc(out)
		return nil
	})
	return out, err
}

// Dates use DateLayout, so plain string comparison orders chronologically.
func sortOrdersByDateDesc(orders []Order) {
	sort.SliceStable(orders, func(i, j int) bool {
		return orders[i].OrderDate > orders[j].OrderDate
	})
}

func sortActivitiesByDateDesc(activities []Activity) {
	sort.SliceStable(activities, func(i, j int) bool {
		return activities[i].Date > activities[j].Date
	})
}
