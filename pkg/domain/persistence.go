package domain

import "context"

// Transaction exposes the domain operations that a persistence implementation
// must support within an atomic scope. Update operations take a mutator so
// patch application and derived-field maintenance happen inside the boundary;
// stores recompute Order.TotalAmount after every order mutation.
type Transaction interface {
	Snapshot() TransactionView

	CreateCustomer(Customer) (Customer, error)
	UpdateCustomer(id string, mutator func(*Customer) error) (Customer, error)
	DeleteCustomer(id string) error

	CreateDeliveryLocation(DeliveryLocation) (DeliveryLocation, error)
	UpdateDeliveryLocation(id string, mutator func(*DeliveryLocation) error) (DeliveryLocation, error)
	DeleteDeliveryLocation(id string) error

	CreateProduct(Product) (Product, error)
	UpdateProduct(id string, mutator func(*Product) error) (Product, error)
	DeleteProduct(id string) error

	CreateOrder(Order) (Order, error)
	UpdateOrder(id string, mutator func(*Order) error) (Order, error)
	// DeleteOrder removes a pending order outright. Orders in any other
	// status are retained with their status set to cancelled. The returned
	// flag reports whether the record was removed.
	DeleteOrder(id string) (bool, error)
	// ConfirmOrder transitions a pending order to confirmed. Any other
	// current status yields a ConflictError and leaves the order untouched.
	ConfirmOrder(id string) (Order, error)

	CreateDelivery(Delivery) (Delivery, error)
	UpdateDelivery(id string, mutator func(*Delivery) error) (Delivery, error)
	DeleteDelivery(id string) error

	CreateCellarStock(CellarStock) (CellarStock, error)
	UpdateCellarStock(id string, mutator func(*CellarStock) error) (CellarStock, error)
	DeleteCellarStock(id string) error

	CreateUsageRecord(UsageRecord) (UsageRecord, error)
	UpdateUsageRecord(id string, mutator func(*UsageRecord) error) (UsageRecord, error)
	DeleteUsageRecord(id string) error

	CreateActivity(Activity) (Activity, error)
	UpdateActivity(id string, mutator func(*Activity) error) (Activity, error)
	DeleteActivity(id string) error

	CreateDiscountRule(DiscountRule) (DiscountRule, error)
	UpdateDiscountRule(id string, mutator func(*DiscountRule) error) (DiscountRule, error)
	DeleteDiscountRule(id string) error

	CreateInvoice(Invoice) (Invoice, error)
	UpdateInvoice(id string, mutator func(*Invoice) error) (Invoice, error)
	DeleteInvoice(id string) error

	CreateNotice(Notice) (Notice, error)
	UpdateNotice(id string, mutator func(*Notice) error) (Notice, error)
	DeleteNotice(id string) error

	FindCustomer(id string) (Customer, bool)
	FindDeliveryLocation(id string) (DeliveryLocation, bool)
	FindProduct(id string) (Product, bool)
	FindOrder(id string) (Order, bool)
}

// TransactionView provides read-only access to snapshot data. List results
// are defensive copies ordered by ID; IDs allocate monotonically, so ID order
// equals insertion order.
type TransactionView interface {
	ListCustomers() []Customer
	ListDeliveryLocations() []DeliveryLocation
	ListProducts() []Product
	ListOrders() []Order
	ListDeliveries() []Delivery
	ListCellarStock() []CellarStock
	ListUsageRecords() []UsageRecord
	ListActivities() []Activity
	ListDiscountRules() []DiscountRule
	ListInvoices() []Invoice
	ListNotices() []Notice

	FindCustomer(id string) (Customer, bool)
	FindDeliveryLocation(id string) (DeliveryLocation, bool)
	FindProduct(id string) (Product, bool)
	FindOrder(id string) (Order, bool)
	FindDelivery(id string) (Delivery, bool)
	FindCellarStock(id string) (CellarStock, bool)
	FindUsageRecord(id string) (UsageRecord, bool)
	FindActivity(id string) (Activity, bool)
	FindDiscountRule(id string) (DiscountRule, bool)
	FindInvoice(id string) (Invoice, bool)
	FindNotice(id string) (Notice, bool)
}

// PersistentStore is a minimal abstraction over durable backends. It mirrors
// the subset of store capabilities used directly by higher layers.
type PersistentStore interface {
	RunInTransaction(ctx context.Context, fn func(Transaction) error) (Result, error)
	View(ctx context.Context, fn func(TransactionView) error) error
	ExportState() Snapshot
	ImportState(Snapshot) error
	Close() error
}

// Snapshot is the full serializable state of a store: one record slice per
// collection, each sorted by ID. This is the external persistence schema
// shared by the snapshot-writing backends.
type Snapshot struct {
	Customers         []Customer         `json:"customers"`
	DeliveryLocations []DeliveryLocation `json:"deliveryLocations"`
	Products          []Product          `json:"products"`
	Orders            []Order            `json:"orders"`
	Deliveries        []Delivery         `json:"deliveries"`
	CellarStock       []CellarStock      `json:"cellarStock"`
	UsageRecords      []UsageRecord      `json:"usageRecords"`
	Activities        []Activity         `json:"activities"`
	DiscountRules     []DiscountRule     `json:"discountRules"`
	Invoices          []Invoice          `json:"invoices"`
	Notices           []Notice           `json:"notices"`
}
