package service

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"

	"github.com/mcastellanos/tienda/internal/models"
	"github.com/mcastellanos/tienda/internal/repo"
)

type OrderItemInput struct {
	ProductID uint    `json:"product_id"`
	Quantity  uint    `json:"quantity"`
	Price     float64 `json:"price"`
}

type OrderService struct {
	Repo *repo.GormRepo
}

func (s *OrderService) CreateOrder(ctx context.Context, userID uint, inputs []OrderItemInput) (*models.Order, error) {
	if len(inputs) == 0 {
		return nil, fmt.Errorf("items required: %w", ErrValidation)
	}

	var total float64
	items := make([]models.OrderItem, 0, len(inputs))
	for _, in := range inputs {
		if in.ProductID == 0 {
			return nil, fmt.Errorf("product_id required: %w", ErrValidation)
		}
		if in.Quantity == 0 {
			return nil, fmt.Errorf("quantity must be > 0: %w", ErrValidation)
		}
		if in.Price < 0 {
			return nil, fmt.Errorf("price must be >= 0: %w", ErrValidation)
		}

		total += float64(in.Quantity) * in.Price
		items = append(items, models.OrderItem{
			ProductID: in.ProductID,
			Quantity:  in.Quantity,
			Price:     in.Price,
		})
	}

	order := &models.Order{
		UserID:      userID,
		TotalAmount: total,
		Items:       items,
	}
	if err := s.Repo.CreateOrder(ctx, order); err != nil {
		return nil, err
	}
	return order, nil
}

func (s *OrderService) ListOrders(ctx context.Context, userID uint) ([]models.Order, error) {
	return s.Repo.ListOrders(ctx, userID)
}

func (s *OrderService) GetOrder(ctx context.Context, userID, id uint) (*models.Order, error) {
	order, err := s.Repo.GetOrder(ctx, userID, id)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, fmt.Errorf("order %d: %w", id, ErrNotFound)
	}
	return order, err
}
