package domain

import "strings"

// Search filters combine their set fields with AND semantics. String name
// and address style fields match case-insensitively on substrings; ID and
// enum fields match exactly; date bounds are inclusive and may be left open
// on either end. An empty filter matches every record.

// CustomerFilter selects customers.
type CustomerFilter struct {
	Name          string
	ContactPerson string
	Address       string
}

// Matches reports whether c satisfies every set predicate.
func (f CustomerFilter) Matches(c Customer) bool {
	return containsFold(c.Name, f.Name) &&
		containsFold(c.ContactPerson, f.ContactPerson) &&
		containsFold(c.Address, f.Address)
}

// DeliveryLocationFilter selects delivery locations.
type DeliveryLocationFilter struct {
	CustomerID       string
	Name             string
	Address          string
	DefaultSalesType SalesType
}

// Matches reports whether l satisfies every set predicate.
func (f DeliveryLocationFilter) Matches(l DeliveryLocation) bool {
	return equalsIfSet(l.CustomerID, f.CustomerID) &&
		containsFold(l.Name, f.Name) &&
		containsFold(l.Address, f.Address) &&
		equalsIfSet(l.DefaultSalesType, f.DefaultSalesType)
}

// ProductFilter selects catalog products.
type ProductFilter struct {
	Name     string
	Category string
	Region   string
}

// Matches reports whether p satisfies every set predicate.
func (f ProductFilter) Matches(p Product) bool {
	return containsFold(p.Name, f.Name) &&
		containsFold(p.Category, f.Category) &&
		containsFold(p.Region, f.Region)
}

// OrderFilter selects orders. StartDate and EndDate bound the order date
// inclusively; either may be empty for an open-ended range.
type OrderFilter struct {
	CustomerID         string
	DeliveryLocationID string
	Status             OrderStatus
	SalesType          SalesType
	AssignedTo         string
	StartDate          string
	EndDate            string
}

// Matches reports whether o satisfies every set predicate.
func (f OrderFilter) Matches(o Order) bool {
	return equalsIfSet(o.CustomerID, f.CustomerID) &&
		equalsIfSet(o.DeliveryLocationID, f.DeliveryLocationID) &&
		equalsIfSet(o.Status, f.Status) &&
		equalsIfSet(o.SalesType, f.SalesType) &&
		equalsIfSet(o.AssignedTo, f.AssignedTo) &&
		dateInRange(o.OrderDate, f.StartDate, f.EndDate)
}

// ActivityFilter selects activities.
type ActivityFilter struct {
	CustomerID         string
	DeliveryLocationID string
	Type               string
	Status             string
}

// Matches reports whether a satisfies every set predicate.
func (f ActivityFilter) Matches(a Activity) bool {
	if f.DeliveryLocationID != "" {
		if a.DeliveryLocationID == nil || *a.DeliveryLocationID != f.DeliveryLocationID {
			return false
		}
	}
	return equalsIfSet(a.CustomerID, f.CustomerID) &&
		equalsIfSet(a.Type, f.Type) &&
		equalsIfSet(a.Status, f.Status)
}

// containsFold matches value against a case-insensitive substring query.
// An empty query matches everything.
func containsFold(value, query string) bool {
	if query == "" {
		return true
	}
	return strings.Contains(strings.ToLower(value), strings.ToLower(query))
}

func equalsIfSet[T comparable](value, query T) bool {
	var zero T
	return query == zero || value == query
}

// dateInRange checks an ISO date against inclusive bounds; empty bounds are
// open. ISO dates compare correctly as strings.
func dateInRange(date, start, end string) bool {
	if start != "" && date < start {
		return false
	}
	if end != "" && date > end {
		return false
	}
	return true
}
