package core

import (
	"context"

	"cellarcore/pkg/domain"
)

// ListDeliveryLocations returns all delivery locations in insertion order.
func (s *Service) ListDeliveryLocations(ctx context.Context) ([]DeliveryLocation, error) {
	var out []DeliveryLocation
	err := s.view(ctx, "list_delivery_locations", func(view domain.TransactionView) error {
		out = view.ListDeliveryLocations()
		return nil
	})
	return out, err
}

// GetDeliveryLocation returns one delivery location or a NotFoundError.
func (s *Service) GetDeliveryLocation(ctx context.Context, id string) (DeliveryLocation, error) {
	var out DeliveryLocation
	err := s.view(ctx, "get_delivery_location", func(view domain.TransactionView) error {
		found, ok := view.FindDeliveryLocation(id)
		if !ok {
			return domain.NotFoundError{Entity: domain.EntityDeliveryLocation, ID: id}
		}
		out = found
		return nil
	})
	return out, err
}

// SearchDeliveryLocations returns locations matching every set filter field.
func (s *Service) SearchDeliveryLocations(ctx context.Context, filter domain.DeliveryLocationFilter) ([]DeliveryLocation, error) {
	var out []DeliveryLocation
	err := s.view(ctx, "search_delivery_locations", func(view domain.TransactionView) error {
		for _, l := range view.ListDeliveryLocations() {
			if filter.Matches(l) {
				out = append(out, l)
			}
		}
		return nil
	})
	return out, err
}

// CreateDeliveryLocation persists a new location. The default sales type is
// Standard when unset.
func (s *Service) CreateDeliveryLocation(ctx context.Context, location DeliveryLocation) (DeliveryLocation, Result, error) {
	var created DeliveryLocation
	result, err := s.run(ctx, "create_delivery_location", func(tx domain.Transaction) error {
		var err error
		created, err = tx.CreateDeliveryLocation(location)
		return err
	})
	return created, result, err
}

// UpdateDeliveryLocation applies a partial update to an existing location.
func (s *Service) UpdateDeliveryLocation(ctx context.Context, id string, patch domain.DeliveryLocationPatch) (DeliveryLocation, Result, error) {
	var updated DeliveryLocation
	result, err := s.run(ctx, "update_delivery_location", func(tx domain.Transaction) error {
		var err error
		updated, err = tx.UpdateDeliveryLocation(id, func(l *DeliveryLocation) error {
			patch.Apply(l)
			return nil
		})
		return err
	})
	return updated, result, err
}

// DeleteDeliveryLocation removes a location unless an order still references
// it, in which case a ReferencedError is returned and the record kept.
func (s *Service) DeleteDeliveryLocation(ctx context.Context, id string) (Result, error) {
	return s.run(ctx, "delete_delivery_location", func(tx domain.Transaction) error {
		return tx.DeleteDeliveryLocation(id)
	})
}

// LocationCellarStock returns the cellar stock records held at a location.
func (s *Service) LocationCellarStock(ctx context.Context, locationID string) ([]CellarStock, error) {
	var out []CellarStock
	err := s.view(ctx, "location_cellar_stock", func(view domain.TransactionView) error {
		for _, c := range view.ListCellarStock() {
			if c.DeliveryLocationID == locationID {
				out = append(out, c)
			}
		}
		return nil
	})
	return out, err
}
