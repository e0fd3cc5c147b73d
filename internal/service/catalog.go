package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"gorm.io/gorm"

	"github.com/mcastellanos/tienda/internal/models"
	"github.com/mcastellanos/tienda/internal/repo"
)

type CatalogService struct {
	Repo *repo.GormRepo
}

func (s *CatalogService) CreateCategory(ctx context.Context, name string) (*models.Category, error) {
	if strings.TrimSpace(name) == "" {
		return nil, fmt.Errorf("name required: %w", ErrValidation)
	}

	category := models.Category{Name: name}
	if err := s.Repo.CreateCategory(ctx, &category); err != nil {
		return nil, err
	}
	return &category, nil
}

func (s *CatalogService) GetCategories(ctx context.Context) ([]models.Category, error) {
	return s.Repo.GetCategories(ctx)
}

func (s *CatalogService) GetCategory(ctx context.Context, id uint) (*models.Category, error) {
	category, err := s.Repo.GetCategory(ctx, id)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, fmt.Errorf("category %d: %w", id, ErrNotFound)
	}
	return category, err
}

func (s *CatalogService) DeleteCategory(ctx context.Context, id uint) error {
	err := s.Repo.DeleteCategory(ctx, id)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return fmt.Errorf("category %d: %w", id, ErrNotFound)
	}
	return err
}

func (s *CatalogService) CreateProduct(ctx context.Context, product *models.Product) error {
	if strings.TrimSpace(product.Name) == "" {
		return fmt.Errorf("name required: %w", ErrValidation)
	}
	if product.Price <= 0 {
		return fmt.Errorf("price must be > 0: %w", ErrValidation)
	}

	return s.Repo.CreateProduct(ctx, product)
}

func (s *CatalogService) GetProducts(ctx context.Context, categoryID *uint) ([]models.Product, error) {
	return s.Repo.GetProducts(ctx, categoryID)
}

func (s *CatalogService) GetProduct(ctx context.Context, id uint) (*models.Product, error) {
	product, err := s.Repo.GetProduct(ctx, id)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, fmt.Errorf("product %d: %w", id, ErrNotFound)
	}
	return product, err
}

func (s *CatalogService) UpdateProduct(ctx context.Context, id uint, update *models.Product) (*models.Product, error) {
	product, err := s.GetProduct(ctx, id)
	if err != nil {
		return nil, err
	}

	product.Name = update.Name
	product.Description = update.Description
	product.Price = update.Price
	product.IVA = update.IVA
	product.ImageURL = update.ImageURL
	product.CategoryID = update.CategoryID

	if err := s.Repo.UpdateProduct(ctx, product); err != nil {
		return nil, err
	}
	return product, nil
}

func (s *CatalogService) DeleteProduct(ctx context.Context, id uint) error {
	err := s.Repo.DeleteProduct(ctx, id)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return fmt.Errorf("product %d: %w", id, ErrNotFound)
	}
	return err
}
