package repo

import (
	"context"

	"github.com/mcastellanos/tienda/internal/models"
)

func (r *GormRepo) CreateOrder(ctx context.Context, order *models.Order) error {
	return r.DB.WithContext(ctx).Create(order).Error
}

func (r *GormRepo) ListOrders(ctx context.Context, userID uint) ([]models.Order, error) {
	var orders []models.Order
	if err := r.DB.WithContext(ctx).
		Where("user_id = ?", userID).
		Preload("Items").
		Order("id ASC").
		Find(&orders).Error; err != nil {
		return nil, err
	}
	return orders, nil
}

func (r *GormRepo) GetOrder(ctx context.Context, userID, id uint) (*models.Order, error) {
	var order models.Order
	if err := r.DB.WithContext(ctx).
		Where("id = ? AND user_id = ?", id, userID).
		Preload("Items").
		First(&order).Error; err != nil {
		return nil, err
	}
	return &order, nil
}
