// Package domain defines the core persistent entities, value types, and
// rule evaluation primitives used by cellarcore.
package domain

import "time"

// EntityType identifies the type of record stored in the core domain.
type EntityType string

// Supported entity type identifiers used in Change records and persistence collections.
const (
	// EntityCustomer identifies a customer account record.
	EntityCustomer EntityType = "customer"
	// EntityDeliveryLocation identifies a customer delivery location record.
	EntityDeliveryLocation EntityType = "deliveryLocation"
	// EntityProduct identifies a catalog product record.
	EntityProduct EntityType = "product"
	// EntityOrder identifies a sales order record.
	EntityOrder EntityType = "order"
	// EntityDelivery identifies a delivery record tied to an order.
	EntityDelivery EntityType = "delivery"
	// EntityCellarStock identifies an on-site cellar stock record.
	EntityCellarStock EntityType = "cellarStock"
	// EntityUsageRecord identifies a cellar usage record.
	EntityUsageRecord EntityType = "usageRecord"
	// EntityActivity identifies a sales activity record.
	EntityActivity EntityType = "activity"
	// EntityDiscountRule identifies a discount rule record.
	EntityDiscountRule EntityType = "discountRule"
	// EntityInvoice identifies a billing invoice record.
	EntityInvoice EntityType = "invoice"
	// EntityNotice identifies a customer-facing notice record.
	EntityNotice EntityType = "notice"
)

// OrderStatus enumerates the order workflow states.
type OrderStatus string

// Canonical order statuses. Pending orders may be confirmed or hard-deleted;
// orders in any later state are only ever soft-cancelled.
const (
	OrderStatusPending         OrderStatus = "pending"
	OrderStatusConfirmed       OrderStatus = "confirmed"
	OrderStatusPreparing       OrderStatus = "preparing"
	OrderStatusShipped         OrderStatus = "shipped"
	OrderStatusDeliveryPending OrderStatus = "delivery_pending"
	OrderStatusDelivered       OrderStatus = "delivered"
	OrderStatusDiscrepancy     OrderStatus = "discrepancy"
	OrderStatusCancelled       OrderStatus = "cancelled"
)

// SalesType distinguishes standard shipments from cellar replenishments.
type SalesType string

// Canonical sales types.
const (
	SalesTypeStandard SalesType = "Standard"
	SalesTypeCellar   SalesType = "Cellar"
)

// InvoiceStatus enumerates invoice payment states.
type InvoiceStatus string

// Canonical invoice statuses.
const (
	InvoiceStatusUnpaid  InvoiceStatus = "unpaid"
	InvoiceStatusPaid    InvoiceStatus = "paid"
	InvoiceStatusOverdue InvoiceStatus = "overdue"
)

// UsageStatus enumerates billing states of cellar usage records.
type UsageStatus string

// Canonical usage statuses.
const (
	UsageStatusUnbilled UsageStatus = "unbilled"
	UsageStatusBilled   UsageStatus = "billed"
)

// DeliveryStatus enumerates delivery confirmation states.
type DeliveryStatus string

// Canonical delivery statuses.
const (
	DeliveryStatusPendingConfirmation DeliveryStatus = "pending_confirmation"
	DeliveryStatusConfirmed           DeliveryStatus = "confirmed"
)

// DateLayout is the canonical storage format for business dates. Values in
// this format compare correctly as plain strings, which the inclusive range
// filters rely on.
const DateLayout = "2006-01-02"

// Base contains common fields for all domain records. Timestamps are omitted
// from serialized records while zero so externally seeded data round-trips
// unchanged.
type Base struct {
	ID        string    `json:"id"`
	CreatedAt time.Time `json:"createdAt,omitzero"`
	UpdatedAt time.Time `json:"updatedAt,omitzero"`
}

// Customer represents a wholesale customer account.
type Customer struct {
	Base
	Name          string `json:"name"`
	ContactPerson string `json:"contactPerson"`
	Email         string `json:"email"`
	Phone         string `json:"phone"`
	Address       string `json:"address"`
}

// DeliveryLocation is a shipping destination owned by a customer. A location
// cannot be deleted while any order references it.
type DeliveryLocation struct {
	Base
	CustomerID       string    `json:"customerId"`
	Name             string    `json:"name"`
	Address          string    `json:"address"`
	ContactPerson    string    `json:"contactPerson"`
	Phone            string    `json:"phone"`
	DefaultSalesType SalesType `json:"defaultSalesType"`
}

// Product is a catalog wine with warehouse stock.
type Product struct {
	Base
	Name        string `json:"name"`
	Category    string `json:"category"`
	Price       int64  `json:"price"`
	Stock       int    `json:"stock"`
	Region      string `json:"region"`
	Description string `json:"description"`
}

// OrderItem is a single line of an order.
type OrderItem struct {
	ProductID      string `json:"productId"`
	Quantity       int    `json:"quantity"`
	Price          int64  `json:"price"`
	NormalSaleFlag bool   `json:"normalSaleFlag"`
}

// Order is a sales order. TotalAmount is always derived from Items and is
// never writable independently.
type Order struct {
	Base
	CustomerID         string      `json:"customerId"`
	DeliveryLocationID string      `json:"deliveryLocationId"`
	OrderDate          string      `json:"orderDate"`
	Status             OrderStatus `json:"status"`
	SalesType          SalesType   `json:"salesType"`
	TotalAmount        int64       `json:"totalAmount"`
	AssignedTo         string      `json:"assignedTo"`
	Items              []OrderItem `json:"items"`
}

// Delivery tracks the physical delivery of a shipped order.
type Delivery struct {
	Base
	OrderID       string         `json:"orderId"`
	DeliveryDate  string         `json:"deliveryDate"`
	Status        DeliveryStatus `json:"status"`
	ConfirmedDate *string        `json:"confirmedDate"`
}

// CellarStock tracks product stock held on-site at a customer delivery
// location under the cellar sales model.
type CellarStock struct {
	Base
	DeliveryLocationID    string `json:"deliveryLocationId"`
	ProductID             string `json:"productId"`
	CurrentStock          int    `json:"currentStock"`
	SafetyStock           int    `json:"safetyStock"`
	LastReplenishmentDate string `json:"lastReplenishmentDate"`
}

// NeedsReplenishment reports whether current stock has fallen below the
// configured safety stock.
func (c CellarStock) NeedsReplenishment() bool {
	return c.CurrentStock < c.SafetyStock
}

// UsageRecord captures consumption of cellar stock at a delivery location.
type UsageRecord struct {
	Base
	DeliveryLocationID string      `json:"deliveryLocationId"`
	ProductID          string      `json:"productId"`
	Quantity           int         `json:"quantity"`
	UsageDate          string      `json:"usageDate"`
	RegisteredBy       string      `json:"registeredBy"`
	Status             UsageStatus `json:"status"`
}

// Activity records a sales touchpoint (visit, call, mail) against a customer
// and optionally one of its delivery locations.
type Activity struct {
	Base
	Type               string  `json:"type"`
	CustomerID         string  `json:"customerId"`
	DeliveryLocationID *string `json:"deliveryLocationId"`
	Date               string  `json:"date"`
	Status             string  `json:"status"`
	Subject            string  `json:"subject"`
	Description        string  `json:"description"`
	AssignedTo         string  `json:"assignedTo"`
}

// DiscountRule describes a pricing rule. Exactly one of DiscountRate or
// DiscountAmount is set.
type DiscountRule struct {
	Base
	Name           string   `json:"name"`
	Type           string   `json:"type"`
	Condition      string   `json:"condition"`
	DiscountRate   *float64 `json:"discountRate"`
	DiscountAmount *int64   `json:"discountAmount"`
	ApplyTo        string   `json:"applyTo"`
	StartDate      string   `json:"startDate"`
	EndDate        string   `json:"endDate"`
}

// InvoiceItem is a billed line referencing either an order or a cellar usage
// record depending on Type.
type InvoiceItem struct {
	Type    string `json:"type"`
	OrderID string `json:"orderId,omitempty"`
	UsageID string `json:"usageId,omitempty"`
	Amount  int64  `json:"amount"`
}

// Invoice is a billing document issued to a customer.
type Invoice struct {
	Base
	CustomerID  string        `json:"customerId"`
	BillingDate string        `json:"billingDate"`
	DueDate     string        `json:"dueDate"`
	Amount      int64         `json:"amount"`
	Status      InvoiceStatus `json:"status"`
	Items       []InvoiceItem `json:"items"`
}

// Notice is an announcement shown to customers.
type Notice struct {
	Base
	Title   string `json:"title"`
	Content string `json:"content"`
	Date    string `json:"date"`
	Target  string `json:"target"`
}

// OrderTotal computes the total amount of an order from its items. An empty
// item list totals zero.
func OrderTotal(items []OrderItem) int64 {
	var total int64
	for _, item := range items {
		total += item.Price * int64(item.Quantity)
	}
	return total
}

// InvoiceTotal computes the invoice amount from its billed items.
func InvoiceTotal(items []InvoiceItem) int64 {
	var total int64
	for _, item := range items {
		total += item.Amount
	}
	return total
}

// Change captures a single entity mutation inside a transaction for rule
// evaluation and audit.
type Change struct {
	Entity   EntityType `json:"entity"`
	EntityID string     `json:"entity_id"`
	Action   Action     `json:"action"`
	Before   any        `json:"before,omitempty"`
	After    any        `json:"after,omitempty"`
}

// Action identifies the kind of mutation captured in a Change.
type Action string

// Change actions enumerate supported CRUD operations captured in the audit trail.
const (
	// ActionCreate indicates an entity was created.
	ActionCreate Action = "create"
	// ActionUpdate indicates an entity was updated.
	ActionUpdate Action = "update"
	ActionDelete Action = "delete"
)

// Severity captures rule outcomes.
type Severity string

// Rule evaluation severities determine commit behavior and logging.
const (
	// SeverityBlock blocks transaction commit.
	SeverityBlock Severity = "block"
	// SeverityWarn surfaces a warning but allows commit.
	SeverityWarn Severity = "warn"
	SeverityLog  Severity = "log"
)

// Violation reports a failed rule evaluation.
type Violation struct {
	Rule     string
	Severity Severity
	Message  string
	Entity   EntityType
	EntityID string
}

// Result aggregates violations from the rules engine.
type Result struct {
	Violations []Violation
}

// Merge appends violations from another result.
func (r *Result) Merge(other Result) {
	if len(other.Violations) == 0 {
		return
	}
	r.Violations = append(r.Violations, other.Violations...)
}

// HasBlocking returns true if the result contains blocking violations.
func (r Result) HasBlocking() bool {
	for _, v := range r.Violations {
		if v.Severity == SeverityBlock {
			return true
		}
	}
	return false
}

// RuleViolationError is returned when blocking violations are present.
type RuleViolationError struct {
	Result Result
}

func (e RuleViolationError) Error() string {
	return "transaction blocked by rules"
}
