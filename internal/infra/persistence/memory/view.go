package memory

import "cellarcore/pkg/domain"

// stateView adapts a state to domain.TransactionView. All returned records
// are defensive copies; lists come back in ID order.
type stateView struct {
	state *state
}

var _ domain.TransactionView = stateView{}

func (v stateView) ListCustomers() []domain.Customer {
	return listSorted(v.state.customers, cloneCustomer)
}

func (v stateView) ListDeliveryLocations() []domain.DeliveryLocation {
	return listSorted(v.state.deliveryLocations, cloneDeliveryLocation)
}

func (v stateView) ListProducts() []domain.Product {
	return listSorted(v.state.products, cloneProduct)
}

func (v stateView) ListOrders() []domain.Order {
	return listSorted(v.state.orders, cloneOrder)
}

func (v stateView) ListDeliveries() []domain.Delivery {
	return listSorted(v.state.deliveries, cloneDelivery)
}

func (v stateView) ListCellarStock() []domain.CellarStock {
	return listSorted(v.state.cellarStock, cloneCellarStock)
}

func (v stateView) ListUsageRecords() []domain.UsageRecord {
	return listSorted(v.state.usageRecords, cloneUsageRecord)
}

func (v stateView) ListActivities() []domain.Activity {
	return listSorted(v.state.activities, cloneActivity)
}

func (v stateView) ListDiscountRules() []domain.DiscountRule {
	return listSorted(v.state.discountRules, cloneDiscountRule)
}

func (v stateView) ListInvoices() []domain.Invoice {
	return listSorted(v.state.invoices, cloneInvoice)
}

func (v stateView) ListNotices() []domain.Notice {
	return listSorted(v.state.notices, cloneNotice)
}

func (v stateView) FindCustomer(id string) (domain.Customer, bool) {
	c, ok := v.state.customers[id]
	return cloneCustomer(c), ok
}

func (v stateView) FindDeliveryLocation(id string) (domain.DeliveryLocation, bool) {
	l, ok := v.state.deliveryLocations[id]
	return cloneDeliveryLocation(l), ok
}

func (v stateView) FindProduct(id string) (domain.Product, bool) {
	p, ok := v.state.products[id]
	return cloneProduct(p), ok
}

func (v stateView) FindOrder(id string) (domain.Order, bool) {
	o, ok := v.state.orders[id]
	return cloneOrder(o), ok
}

func (v stateView) FindDelivery(id string) (domain.Delivery, bool) {
	d, ok := v.state.deliveries[id]
	return cloneDelivery(d), ok
}

func (v stateView) FindCellarStock(id string) (domain.CellarStock, bool) {
	c, ok := v.state.cellarStock[id]
	return cloneCellarStock(c), ok
}

func (v stateView) FindUsageRecord(id string) (domain.UsageRecord, bool) {
	u, ok := v.state.usageRecords[id]
	return cloneUsageRecord(u), ok
}

func (v stateView) FindActivity(id string) (domain.Activity, bool) {
	a, ok := v.state.activities[id]
	return cloneActivity(a), ok
}

func (v stateView) FindDiscountRule(id string) (domain.DiscountRule, bool) {
	r, ok := v.state.discountRules[id]
	return cloneDiscountRule(r), ok
}

func (v stateView) FindInvoice(id string) (domain.Invoice, bool) {
	inv, ok := v.state.invoices[id]
	return cloneInvoice(inv), ok
}

func (v stateView) FindNotice(id string) (domain.Notice, bool) {
	n, ok := v.state.notices[id]
	return cloneNotice(n), ok
}

func listSorted[T any](m map[string]T, clone func(T) T) []T {
	out := make([]T, 0, len(m))
	for _, id := range sortedKeys(m) {
		out = append(out, clone(m[id]))
	}
	return out
}

func (s *state) snapshot() domain.Snapshot {
	view := stateView{state: s}
	return domain.Snapshot{
		Customers:         view.ListCustomers(),
		DeliveryLocations: view.ListDeliveryLocations(),
		Products:          view.ListProducts(),
		Orders:            view.ListOrders(),
		Deliveries:        view.ListDeliveries(),
		CellarStock:       view.ListCellarStock(),
		UsageRecords:      view.ListUsageRecords(),
		Activities:        view.ListActivities(),
		DiscountRules:     view.ListDiscountRules(),
		Invoices:          view.ListInvoices(),
		Notices:           view.ListNotices(),
	}
}
