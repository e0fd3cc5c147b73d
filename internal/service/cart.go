package service

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"

	"github.com/mcastellanos/tienda/internal/models"
	"github.com/mcastellanos/tienda/internal/repo"
)

type CartService struct {
	Repo *repo.GormRepo
}

func (s *CartService) GetCart(ctx context.Context, userID uint) ([]models.CartItem, error) {
	return s.Repo.GetCart(ctx, userID)
}

// AddToCart adds one unit of the product to the user's cart. Repeated calls
// accumulate on the same row.
func (s *CartService) AddToCart(ctx context.Context, userID, productID uint) (*models.CartItem, error) {
	if productID == 0 {
		return nil, fmt.Errorf("product id required: %w", ErrValidation)
	}

	item, err := s.Repo.AddOneToCart(ctx, userID, productID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("product %d: %w", productID, ErrNotFound)
		}
		return nil, err
	}
	return item, nil
}

// ClearCart is idempotent: clearing an empty cart succeeds.
func (s *CartService) ClearCart(ctx context.Context, userID uint) error {
	return s.Repo.ClearCart(ctx, userID)
}
