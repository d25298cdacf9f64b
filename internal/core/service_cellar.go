package core

import (
	"context"

	"cellarcore/pkg/domain"
)

// ListCellarStock returns all cellar stock records in insertion order.
func (s *Service) ListCellarStock(ctx context.Context) ([]CellarStock, error) {
	var out []CellarStock
	err := s.view(ctx, "list_cellar_stock", func(view domain.TransactionView) error {
		out = view.ListCellarStock()
		return nil
	})
	return out, err
}

// CreateCellarStock registers product stock held at a delivery location.
func (s *Service) CreateCellarStock(ctx context.Context, stock CellarStock) (CellarStock, Result, error) {
	var created CellarStock
	result, err := s.run(ctx, "create_cellar_stock", func(tx domain.Transaction) error {
		var err error
		created, err = tx.CreateCellarStock(stock)
		return err
	})
	return created, result, err
}

// UpdateCellarStock applies a partial update to a cellar stock record.
func (s *Service) UpdateCellarStock(ctx context.Context, id string, patch domain.CellarStockPatch) (CellarStock, Result, error) {
	var updated CellarStock
	result, err := s.run(ctx, "update_cellar_stock", func(tx domain.Transaction) error {
		var err error
		updated, err = tx.UpdateCellarStock(id, func(c *CellarStock) error {
			patch.Apply(c)
			return nil
		})
		return err
	})
	return updated, result, err
}

// ReplenishCellarStock adds quantity to a record and stamps the
// replenishment date.
func (s *Service) ReplenishCellarStock(ctx context.Context, id string, quantity int, date string) (CellarStock, Result, error) {
	var updated CellarStock
	result, err := s.run(ctx, "replenish_cellar_stock", func(tx domain.Transaction) error {
		var err error
		updated, err = tx.UpdateCellarStock(id, func(c *CellarStock) error {
			c.CurrentStock += quantity
			c.LastReplenishmentDate = date
			return nil
		})
		return err
	})
	return updated, result, err
}

// DeleteCellarStock removes a cellar stock record.
func (s *Service) DeleteCellarStock(ctx context.Context, id string) (Result, error) {
	return s.run(ctx, "delete_cellar_stock", func(tx domain.Transaction) error {
		return tx.DeleteCellarStock(id)
	})
}

// ReplenishmentNeeded returns the cellar stock records sitting below their
// safety stock.
func (s *Service) ReplenishmentNeeded(ctx context.Context) ([]CellarStock, error) {
	var out []CellarStock
	err := s.view(ctx, "replenishment_needed", func(view domain.TransactionView) error {
		for _, c := range view.ListCellarStock() {
			if c.NeedsReplenishment() {
				out = append(out, c)
			}
		}
		return nil
	})
	return out, err
}

// ListUsageRecords returns all usage records in insertion order.
func (s *Service) ListUsageRecords(ctx context.Context) ([]UsageRecord, error) {
	var out []UsageRecord
	err := s.view(ctx, "list_usage_records", func(view domain.TransactionView) error {
		out = view.ListUsageRecords()
		return nil
	})
	return out, err
}

// LocationUsageRecords returns the usage recorded at a delivery location.
func (s *Service) LocationUsageRecords(ctx context.Context, locationID string) ([]UsageRecord, error) {
	var out []UsageRecord
	err := s.view(ctx, "location_usage_records", func(view domain.TransactionView) error {
		for _, u := range view.ListUsageRecords() {
			if u.DeliveryLocationID == locationID {
				out = append(out, u)
			}
		}
		return nil
	})
	return out, err
}

// CreateUsageRecord registers cellar consumption and decrements the matching
// cellar stock record when one exists.
func (s *Service) CreateUsageRecord(ctx context.Context, usage UsageRecord) (UsageRecord, Result, error) {
	var created UsageRecord
	result, err := s.run(ctx, "create_usage_record", func(tx domain.Transaction) error {
		var err error
		created, err = tx.CreateUsageRecord(usage)
		if err != nil {
			return err
		}
		for _, stock := range tx.Snapshot().ListCellarStock() {
			if stock.DeliveryLocationID == created.DeliveryLocationID && stock.ProductID == created.ProductID {
				if _, err := tx.UpdateCellarStock(stock.ID, func(c *CellarStock) error {
					c.CurrentStock -= created.Quantity
					return nil
				}); err != nil {
					return err
				}
				break
			}
		}
		return nil
	})
	return created, result, err
}

// UpdateUsageRecord applies a partial update to a usage record.
func (s *Service) UpdateUsageRecord(ctx context.Context, id string, patch domain.UsageRecordPatch) (UsageRecord, Result, error) {
	var updated UsageRecord
	result, err := s.run(ctx, "update_usage_record", func(tx domain.Transaction) error {
		var err error
		updated, err = tx.UpdateUsageRecord(id, func(u *UsageRecord) error {
			patch.Apply(u)
			return nil
		})
		return err
	})
	return updated, result, err
}

// MarkUsageBilled flips a usage record to billed.
func (s *Service) MarkUsageBilled(ctx context.Context, id string) (UsageRecord, Result, error) {
	var updated UsageRecord
	result, err := s.run(ctx, "mark_usage_billed", func(tx domain.Transaction) error {
		var err error
		updated, err = tx.UpdateUsageRecord(id, func(u *UsageRecord) error {
			u.Status = domain.UsageStatusBilled
			return nil
		})
		return err
	})
	return updated, result, err
}

// DeleteUsageRecord removes a usage record.
func (s *Service) DeleteUsageRecord(ctx context.Context, id string) (Result, error) {
	return s.run(ctx, "delete_usage_record", func(tx domain.Transaction) error {
		return tx.DeleteUsageRecord(id)
	})
}
