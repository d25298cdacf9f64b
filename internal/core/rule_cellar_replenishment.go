package core

import (
	"context"
	"fmt"

	"cellarcore/pkg/domain"
)

// CellarReplenishmentRule warns when a mutation leaves a cellar stock record
// below its safety stock.
type CellarReplenishmentRule struct{}

// Name implements domain.Rule.
func (CellarReplenishmentRule) Name() string { return "cellar_replenishment" }

// Evaluate implements domain.Rule.
func (CellarReplenishmentRule) Evaluate(_ context.Context, _ domain.RuleView, changes []domain.Change) (domain.Result, error) {
	var result domain.Result
	for _, change := range changes {
		if change.Entity != domain.EntityCellarStock || change.Action == domain.ActionDelete {
			continue
		}
		stock, ok := change.After.(domain.CellarStock)
		if !ok || !stock.NeedsReplenishment() {
			continue
		}
		result.Violations = append(result.Violations, domain.Violation{
			Rule:     "cellar_replenishment",
			Severity: domain.SeverityWarn,
			Message:  fmt.Sprintf("cellar stock %s at %d, below safety stock %d", stock.ID, stock.CurrentStock, stock.SafetyStock),
			Entity:   domain.EntityCellarStock,
			EntityID: stock.ID,
		})
	}
	return result, nil
}
