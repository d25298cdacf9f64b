package core

import (
	"context"

	"cellarcore/pkg/domain"
)

// ListProducts returns the product catalog in insertion order.
func (s *Service) ListProducts(ctx context.Context) ([]Product, error) {
	var out []Product
	err := s.view(ctx, "list_products", func(view domain.TransactionView) error {
		out = view.ListProducts()
		return nil
	})
	return out, err
}

// GetProduct returns one product or a NotFoundError.
func (s *Service) GetProduct(ctx context.Context, id string) (Product, error) {
	var out Product
	err := s.view(ctx, "get_product", func(view domain.TransactionView) error {
		found, ok := view.FindProduct(id)
		if !ok {
			return domain.NotFoundError{Entity: domain.EntityProduct, ID: id}
		}
		out = found
		return nil
	})
	return out, err
}

// SearchProducts returns products matching every set filter field.
func (s *Service) SearchProducts(ctx context.Context, filter domain.ProductFilter) ([]Product, error) {
	var out []Product
	err := s.view(ctx, "search_products", func(view domain.TransactionView) error {
		for _, p := range view.ListProducts() {
			if filter.Matches(p) {
				out = append(out, p)
			}
		}
		return nil
	})
	return out, err
}

// CreateProduct persists a new catalog product.
func (s *Service) CreateProduct(ctx context.Context, product Product) (Product, Result, error) {
	var created Product
	result, err := s.run(ctx, "create_product", func(tx domain.Transaction) error {
		var err error
		created, err = tx.CreateProduct(product)
		return err
	})
	return created, result, err
}

// UpdateProduct applies a partial update to a product.
func (s *Service) UpdateProduct(ctx context.Context, id string, patch domain.ProductPatch) (Product, Result, error) {
	var updated Product
	result, err := s.run(ctx, "update_product", func(tx domain.Transaction) error {
		var err error
		updated, err = tx.UpdateProduct(id, func(p *Product) error {
			patch.Apply(p)
			return nil
		})
		return err
	})
	return updated, result, err
}

// DeleteProduct removes a product unless order items or cellar stock still
// reference it.
func (s *Service) DeleteProduct(ctx context.Context, id string) (Result, error) {
	return s.run(ctx, "delete_product", func(tx domain.Transaction) error {
		return tx.DeleteProduct(id)
	})
}

// CheckStock reports whether the product exists and has at least the
// requested quantity in warehouse stock.
func (s *Service) CheckStock(ctx context.Context, productID string, quantity int) (bool, error) {
	var ok bool
	err := s.view(ctx, "check_stock", func(view domain.TransactionView) error {
		product, found := view.FindProduct(productID)
		ok = found && product.Stock >= quantity
		return nil
	})
	return ok, err
}
