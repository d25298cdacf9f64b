package domain

import "testing"

func TestCustomerFilterMatches(t *testing.T) {
	c := Customer{Base: Base{ID: "C001"}, Name: "Harbor Wine Merchants", ContactPerson: "Dana Cole", Address: "12 Quay Street"}
	cases := []struct {
		name   string
		filter CustomerFilter
		want   bool
	}{
		{name: "empty filter matches", filter: CustomerFilter{}, want: true},
		{name: "substring case-insensitive", filter: CustomerFilter{Name: "harbor"}, want: true},
		{name: "all predicates AND", filter: CustomerFilter{Name: "Harbor", ContactPerson: "cole", Address: "quay"}, want: true},
		{name: "one failing predicate rejects", filter: CustomerFilter{Name: "Harbor", ContactPerson: "smith"}, want: false},
		{name: "no match", filter: CustomerFilter{Address: "warehouse"}, want: false},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := tc.filter.Matches(c); got != tc.want {
				t.Fatalf("Matches=%v want %v", got, tc.want)
			}
		})
	}
}

func TestDeliveryLocationFilterMatches(t *testing.T) {
	l := DeliveryLocation{Base: Base{ID: "D002"}, CustomerID: "C001", Name: "Bayside Branch", Address: "4 Pier Road", DefaultSalesType: SalesTypeCellar}
	if !(DeliveryLocationFilter{CustomerID: "C001", DefaultSalesType: SalesTypeCellar}).Matches(l) {
		t.Fatalf("exact predicates should match")
	}
	if (DeliveryLocationFilter{CustomerID: "C002"}).Matches(l) {
		t.Fatalf("customer id must match exactly")
	}
	if (DeliveryLocationFilter{Name: "bayside", DefaultSalesType: SalesTypeStandard}).Matches(l) {
		t.Fatalf("sales type mismatch must reject")
	}
}

func TestOrderFilterDateRange(t *testing.T) {
	o := Order{Base: Base{ID: "O-2024002"}, CustomerID: "C002", OrderDate: "2024-04-15", Status: OrderStatusShipped}
	cases := []struct {
		name   string
		filter OrderFilter
		want   bool
	}{
		{name: "inside range", filter: OrderFilter{StartDate: "2024-04-01", EndDate: "2024-04-30"}, want: true},
		{name: "start bound inclusive", filter: OrderFilter{StartDate: "2024-04-15"}, want: true},
		{name: "end bound inclusive", filter: OrderFilter{EndDate: "2024-04-15"}, want: true},
		{name: "before open-start range end", filter: OrderFilter{EndDate: "2024-04-14"}, want: false},
		{name: "after start", filter: OrderFilter{StartDate: "2024-04-16"}, want: false},
		{name: "range plus exact field", filter: OrderFilter{CustomerID: "C002", StartDate: "2024-01-01", EndDate: "2024-12-31"}, want: true},
		{name: "range ok but status wrong", filter: OrderFilter{Status: OrderStatusPending, StartDate: "2024-01-01"}, want: false},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := tc.filter.Matches(o); got != tc.want {
				t.Fatalf("Matches=%v want %v", got, tc.want)
			}
		})
	}
}

func TestActivityFilterLocation(t *testing.T) {
	loc := "D002"
	withLoc := Activity{Base: Base{ID: "A-2024001"}, CustomerID: "C001", DeliveryLocationID: &loc, Type: "visit"}
	noLoc := Activity{Base: Base{ID: "A-2024002"}, CustomerID: "C001", Type: "call"}
	if !(ActivityFilter{DeliveryLocationID: "D002"}).Matches(withLoc) {
		t.Fatalf("location predicate should match pointer value")
	}
	if (ActivityFilter{DeliveryLocationID: "D002"}).Matches(noLoc) {
		t.Fatalf("nil location must not match a location predicate")
	}
	if !(ActivityFilter{CustomerID: "C001", Type: "call"}).Matches(noLoc) {
		t.Fatalf("exact predicates should match")
	}
}
