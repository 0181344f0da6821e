package shop

import (
	"context"
	"fmt"

	"github.com/glowify/storefront/internal/domain"
)

// Products lists the catalog. Products are immutable from the client's
// perspective and are not cached in the session store.
func (s *Shop) Products(ctx context.Context) ([]domain.Product, error) {
	products, err := s.api.Products(ctx)
	if err != nil {
		return nil, fmt.Errorf("list products: %w", err)
	}
	return products, nil
}
