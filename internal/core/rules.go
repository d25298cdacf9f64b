package core

import "cellarcore/pkg/domain"

// NewDefaultRulesEngine builds the engine with the standard advisory rules.
// Both default rules warn rather than block, so commits proceed with the
// violations surfaced in the transaction result.
func NewDefaultRulesEngine() *domain.RulesEngine {
	engine := domain.NewRulesEngine()
	engine.Register(StockSufficiencyRule{})
	engine.Register(CellarReplenishmentRule{})
	return engine
}
