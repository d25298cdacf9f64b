package core

import (
	"context"
	"fmt"

	"cellarcore/pkg/domain"
)

// StockSufficiencyRule warns when a created or updated order asks for more of
// a product than the warehouse holds.
type StockSufficiencyRule struct{}

// Name implements domain.Rule.
func (StockSufficiencyRule) Name() string { return "order_stock_sufficiency" }

// Evaluate implements domain.Rule.
func (StockSufficiencyRule) Evaluate(_ context.Context, view domain.RuleView, changes []domain.Change) (domain.Result, error) {
	var result domain.Result
	for _, change := range changes {
		if change.Entity != domain.EntityOrder || change.Action == domain.ActionDelete {
			continue
		}
		order, ok := change.After.(domain.Order)
		if !ok {
			continue
		}
		for _, item := range order.Items {
			product, found := view.FindProduct(item.ProductID)
			if !found || item.Quantity <= product.Stock {
				continue
			}
			result.Violations = append(result.Violations, domain.Violation{
				Rule:     "order_stock_sufficiency",
				Severity: domain.SeverityWarn,
				Message:  fmt.Sprintf("order %s requests %d of %s but only %d in stock", order.ID, item.Quantity, item.ProductID, product.Stock),
				Entity:   domain.EntityOrder,
				EntityID: order.ID,
			})
		}
	}
	return result, nil
}
