package core

import "cellarcore/pkg/domain"

// Aliases re-export the domain types callers interact with so most call
// sites only import this package.
type (
	// Customer aliases the domain customer record.
	Customer = domain.Customer
	// DeliveryLocation aliases the domain delivery location record.
	DeliveryLocation = domain.DeliveryLocation
	// Product aliases the domain product record.
	Product = domain.Product
	// Order aliases the domain order record.
	Order = domain.Order
	// OrderItem aliases an order line.
	OrderItem = domain.OrderItem
	// Delivery aliases the domain delivery record.
	Delivery = domain.Delivery
	// CellarStock aliases the domain cellar stock record.
	CellarStock = domain.CellarStock
	// UsageRecord aliases the domain usage record.
	UsageRecord = domain.UsageRecord
	// Activity aliases the domain activity record.
	Activity = domain.Activity
	// DiscountRule aliases the domain discount rule record.
	DiscountRule = domain.DiscountRule
	// Invoice aliases the domain invoice record.
	Invoice = domain.Invoice
	// InvoiceItem aliases an invoice line.
	InvoiceItem = domain.InvoiceItem
	// Notice aliases the domain notice record.
	Notice = domain.Notice
	// Result aliases the rule evaluation result.
	Result = domain.Result
)
