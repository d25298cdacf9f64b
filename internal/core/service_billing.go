package core

import (
	"context"

	"cellarcore/pkg/domain"
)

// ListInvoices returns all invoices in insertion order.
func (s *Service) ListInvoices(ctx context.Context) ([]Invoice, error) {
	var out []Invoice
	err := s.view(ctx, "list_invoices", func(view domain.TransactionView) error {
		out = view.ListInvoices()
		return nil
	})
	return out, err
}

// GetInvoice returns one invoice or a NotFoundError.
func (s *Service) GetInvoice(ctx context.Context, id string) (Invoice, error) {
	var out Invoice
	err := s.view(ctx, "get_invoice", func(view domain.TransactionView) error {
		found, ok := view.FindInvoice(id)
		if !ok {
			return domain.NotFoundError{Entity: domain.EntityInvoice, ID: id}
		}
		out = found
		return nil
	})
	return out, err
}

// CustomerInvoices returns the invoices issued to a customer.
func (s *Service) CustomerInvoices(ctx context.Context, customerID string) ([]Invoice, error) {
	var out []Invoice
	err := s.view(ctx, "customer_invoices", func(view domain.TransactionView) error {
		for _, inv := range view.ListInvoices() {
			if inv.CustomerID == customerID {
				out = append(out, inv)
			}
		}
		return nil
	})
	return out, err
}

// CreateInvoice persists a new invoice. The amount is computed from the billed
// items and the default status is unpaid.
func (s *Service) CreateInvoice(ctx context.Context, invoice Invoice) (Invoice, Result, error) {
	var created Invoice
	result, err := s.run(ctx, "create_invoice", func(tx domain.Transaction) error {
		var err error
		created, err = tx.CreateInvoice(invoice)
		return err
	})
	return created, result, err
}

// UpdateInvoice applies a partial update. When the patch carries items the
// amount is recomputed from them.
func (s *Service) UpdateInvoice(ctx context.Context, id string, patch domain.InvoicePatch) (Invoice, Result, error) {
	var updated Invoice
	result, err := s.run(ctx, "update_invoice", func(tx domain.Transaction) error {
		var err error
		updated, err = tx.UpdateInvoice(id, func(inv *Invoice) error {
			patch.Apply(inv)
			return nil
		})
		return err
	})
	return updated, result, err
}

// MarkInvoicePaid flips an invoice to paid.
func (s *Service) MarkInvoicePaid(ctx context.Context, id string) (Invoice, Result, error) {
	var updated Invoice
	result, err := s.run(ctx, "mark_invoice_paid", func(tx domain.Transaction) error {
		var err error
		updated, err = tx.UpdateInvoice(id, func(inv *Invoice) error {
			inv.Status = domain.InvoiceStatusPaid
			return nil
		})
		return err
	})
	return updated, result, err
}

// DeleteInvoice removes an invoice.
func (s *Service) DeleteInvoice(ctx context.Context, id string) (Result, error) {
	return s.run(ctx, "delete_invoice", func(tx domain.Transaction) error {
		return tx.DeleteInvoice(id)
	})
}

// ListActivities returns all sales activities in insertion order.
func (s *Service) ListActivities(ctx context.Context) ([]Activity, error) {
	var out []Activity
	err := s.view(ctx, "list_activities", func(view domain.TransactionView) error {
		out = view.ListActivities()
		return nil
	})
	return out, err
}

// SearchActivities returns activities matching every set filter field.
func (s *Service) SearchActivities(ctx context.Context, filter domain.ActivityFilter) ([]Activity, error) {
	var out []Activity
	err := s.view(ctx, "search_activities", func(view domain.TransactionView) error {
		for _, a := range view.ListActivities() {
			if filter.Matches(a) {
				out = append(out, a)
			}
		}
		return nil
	})
	return out, err
}

// CreateActivity persists a new sales activity. Its date defaults to today
// when unset.
func (s *Service) CreateActivity(ctx context.Context, activity Activity) (Activity, Result, error) {
	var created Activity
	result, err := s.run(ctx, "create_activity", func(tx domain.Transaction) error {
		var err error
		created, err = tx.CreateActivity(activity)
		return err
	})
	return created, result, err
}

// UpdateActivity applies a partial update to an activity.
func (s *Service) UpdateActivity(ctx context.Context, id string, patch domain.ActivityPatch) (Activity, Result, error) {
	var updated Activity
	result, err := s.run(ctx, "update_activity", func(tx domain.Transaction) error {
		var err error
		updated, err = tx.UpdateActivity(id, func(a *Activity) error {
			patch.Apply(a)
			return nil
		})
		return err
	})
	return updated, result, err
}

// DeleteActivity removes an activity record.
func (s *Service) DeleteActivity(ctx context.Context, id string) (Result, error) {
	return s.run(ctx, "delete_activity", func(tx domain.Transaction) error {
		return tx.DeleteActivity(id)
	})
}

// ListDiscountRules returns all discount rules in insertion order.
func (s *Service) ListDiscountRules(ctx context.Context) ([]DiscountRule, error) {
	var out []DiscountRule
	err := s.view(ctx, "list_discount_rules", func(view domain.TransactionView) error {
		out = view.ListDiscountRules()
		return nil
	})
	return out, err
}

// GetDiscountRule returns one discount rule or a NotFoundError.
func (s *Service) GetDiscountRule(ctx context.Context, id string) (DiscountRule, error) {
	var out DiscountRule
	err := s.view(ctx, "get_discount_rule", func(view domain.TransactionView) error {
		found, ok := view.FindDiscountRule(id)
		if !ok {
			return domain.NotFoundError{Entity: domain.EntityDiscountRule, ID: id}
		}
		out = found
		return nil
	})
	return out, err
}

// CreateDiscountRule persists a new discount rule.
func (s *Service) CreateDiscountRule(ctx context.Context, rule DiscountRule) (DiscountRule, Result, error) {
	var created DiscountRule
	result, err := s.run(ctx, "create_discount_rule", func(tx domain.Transaction) error {
		var err error
		created, err = tx.CreateDiscountRule(rule)
		return err
	})
	return created, result, err
}

// UpdateDiscountRule applies a partial update to a discount rule.
func (s *Service) UpdateDiscountRule(ctx context.Context, id string, patch domain.DiscountRulePatch) (DiscountRule, Result, error) {
	var updated DiscountRule
	result, err := s.run(ctx, "update_discount_rule", func(tx domain.Transaction) error {
		var err error
		updated, err = tx.UpdateDiscountRule(id, func(r *DiscountRule) error {
			patch.Apply(r)
			return nil
		})
		return err
	})
	return updated, result, err
}

// DeleteDiscountRule removes a discount rule.
func (s *Service) DeleteDiscountRule(ctx context.Context, id string) (Result, error) {
	return s.run(ctx, "delete_discount_rule", func(tx domain.Transaction) error {
		return tx.DeleteDiscountRule(id)
	})
}

// ListNotices returns all notices in insertion order.
func (s *Service) ListNotices(ctx context.Context) ([]Notice, error) {
	var out []Notice
	err := s.view(ctx, "list_notices", func(view domain.TransactionView) error {
		out = view.ListNotices()
		return nil
	})
	return out, err
}

// GetNotice returns one notice or a NotFoundError.
func (s *Service) GetNotice(ctx context.Context, id string) (Notice, error) {
	var out Notice
	err := s.view(ctx, "get_notice", func(view domain.TransactionView) error {
		found, ok := view.FindNotice(id)
		if !ok {
			return domain.NotFoundError{Entity: domain.EntityNotice, ID: id}
		}
		out = found
		return nil
	})
	return out, err
}

// CreateNotice persists a new notice. Its date defaults to today when unset.
func (s *Service) CreateNotice(ctx context.Context, notice Notice) (Notice, Result, error) {
	var created Notice
	result, err := s.run(ctx, "create_notice", func(tx domain.Transaction) error {
		var err error
		created, err = tx.CreateNotice(notice)
		return err
	})
	return created, result, err
}

// UpdateNotice applies a partial update to a notice.
func (s *Service) UpdateNotice(ctx context.Context, id string, patch domain.NoticePatch) (Notice, Result, error) {
	var updated Notice
	result, err := s.run(ctx, "update_notice", func(tx domain.Transaction) error {
		var err error
		updated, err = tx.UpdateNotice(id, func(n *Notice) error {
			patch.Apply(n)
			return nil
		})
		return err
	})
	return updated, result, err
}

// DeleteNotice removes a notice.
func (s *Service) DeleteNotice(ctx context.Context, id string) (Result, error) {
	return s.run(ctx, "delete_notice", func(tx domain.Transaction) error {
		return tx.DeleteNotice(id)
	})
}
