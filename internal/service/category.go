package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/shopnet/marketplace/internal/models"
	"github.com/shopnet/marketplace/internal/repo"
	"github.com/shopnet/marketplace/internal/transport"
)

type CategoryService struct {
	Repo *repo.GormRepo
}

func (s *CategoryService) CreateCategory(ctx context.Context, req transport.CategoryRequest) (*models.Category, error) {
	if req.Title == "" {
		return nil, fmt.Errorf("%w: title required", ErrValidation)
	}
	cat := &models.Category{Title: req.Title}
	if err := s.Repo.CreateCategory(ctx, cat); err != nil {
		return nil, err
	}
	return cat, nil
}

func (s *CategoryService) ListCategories(ctx context.Context) ([]models.Category, error) {
	return s.Repo.Categories(ctx)
}

func (s *CategoryService) GetCategory(ctx context.Context, uid uuid.UUID) (*models.Category, error) {
	cat, err := s.Repo.CategoryByUID(ctx, uid)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return cat, nil
}

func (s *CategoryService) UpdateCategory(ctx context.Context, uid uuid.UUID, req transport.CategoryRequest) (*models.Category, error) {
	if req.Title == "" {
		return nil, fmt.Errorf("%w: title required", ErrValidation)
	}
	cat, err := s.GetCategory(ctx, uid)
	if err != nil {
		return nil, err
	}
	cat.Title = req.Title
	if err := s.Repo.SaveCategory(ctx, cat); err != nil {
		return nil, err
	}
	return cat, nil
}

// DeleteCategory removes the category only. Shops keep their stale
// category reference, matching the non-cascading delete rule.
func (s *CategoryService) DeleteCategory(ctx context.Context, uid uuid.UUID) error {
	cat, err := s.GetCategory(ctx, uid)
	if err != nil {
		return err
	}
	return s.Repo.DeleteCategory(ctx, cat)
}
