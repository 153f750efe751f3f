package repo

import (
	"context"

	"github.com/google/uuid"

	"github.com/shopnet/marketplace/internal/models"
)

func (r *GormRepo) CreateCategory(ctx context.Context, cat *models.Category) error {
	return r.DB.WithContext(ctx).Create(cat).Error
}

func (r *GormRepo) Categories(ctx context.Context) ([]models.Category, error) {
	var cats []models.Category
	if err := r.DB.WithContext(ctx).Order("id ASC").Find(&cats).Error; err != nil {
		return nil, err
	}
	return cats, nil
}

func (r *GormRepo) CategoryByUID(ctx context.Context, uid uuid.UUID) (*models.Category, error) {
	var cat models.Category
	if err := r.DB.WithContext(ctx).Where("uid = ?", uid).First(&cat).Error; err != nil {
		return nil, err
	}
	return &cat, nil
}

func (r *GormRepo) SaveCategory(ctx context.Context, cat *models.Category) error {
	return r.DB.WithContext(ctx).Save(cat).Error
}

// DeleteCategory does not touch shops referencing the category, the
// reference is non-cascading and simply goes stale.
func (r *GormRepo) DeleteCategory(ctx context.Context, cat *models.Category) error {
	return r.DB.WithContext(ctx).Delete(cat).Error
}
