package memory

import "cellarcore/pkg/domain"

// Clone helpers keep committed state isolated from caller-held references.
// Value copies suffice for flat records; slices and pointer fields are
// duplicated explicitly.

func cloneCustomer(c domain.Customer) domain.Customer { return c }

func cloneDeliveryLocation(l domain.DeliveryLocation) domain.DeliveryLocation { return l }

func cloneProduct(p domain.Product) domain.Product { return p }

func cloneOrder(o domain.Order) domain.Order {
	o.Items = append([]domain.OrderItem(nil), o.Items...)
	return o
}

func cloneDelivery(d domain.Delivery) domain.Delivery {
	d.ConfirmedDate = clonePtr(d.ConfirmedDate)
	return d
}

func cloneCellarStock(c domain.CellarStock) domain.CellarStock { return c }

func cloneUsageRecord(u domain.UsageRecord) domain.UsageRecord { return u }

func cloneActivity(a domain.Activity) domain.Activity {
	a.DeliveryLocationID = clonePtr(a.DeliveryLocationID)
	return a
}

func cloneDiscountRule(r domain.DiscountRule) domain.DiscountRule {
	r.DiscountRate = clonePtr(r.DiscountRate)
	r.DiscountAmount = clonePtr(r.DiscountAmount)
	return r
}

func cloneInvoice(inv domain.Invoice) domain.Invoice {
	inv.Items = append([]domain.InvoiceItem(nil), inv.Items...)
	return inv
}

func cloneNotice(n domain.Notice) domain.Notice { return n }

func clonePtr[T any](p *T) *T {
	if p == nil {
		return nil
	}
	v := *p
	return &v
}

func cloneState(s state) state {
	return state{
		customers:         cloneMap(s.customers, cloneCustomer),
		deliveryLocations: cloneMap(s.deliveryLocations, cloneDeliveryLocation),
		products:          cloneMap(s.products, cloneProduct),
		orders:            cloneMap(s.orders, cloneOrder),
		deliveries:        cloneMap(s.deliveries, cloneDelivery),
		cellarStock:       cloneMap(s.cellarStock, cloneCellarStock),
		usageRecords:      cloneMap(s.usageRecords, cloneUsageRecord),
		activities:        cloneMap(s.activities, cloneActivity),
		discountRules:     cloneMap(s.discountRules, cloneDiscountRule),
		invoices:          cloneMap(s.invoices, cloneInvoice),
		notices:           cloneMap(s.notices, cloneNotice),
		sequences:         cloneMap(s.sequences, func(n int) int { return n }),
	}
}

func cloneMap[T any](in map[string]T, clone func(T) T) map[string]T {
	out := make(map[string]T, len(in))
	for k, v := range in {
		out[k] = clone(v)
	}
	return out
}
