package repo

import (
	"context"

	"github.com/google/uuid"

	"github.com/shopnet/marketplace/internal/models"
)

func (r *GormRepo) CreateProduct(ctx context.Context, product *models.Product) error {
	return r.DB.WithContext(ctx).Create(product).Error
}

func (r *GormRepo) ProductsByShop(ctx context.Context, shopID uint) ([]models.Product, error) {
	var products []models.Product
	if err := r.DB.WithContext(ctx).
		Preload("Shop").
		Where("shop_id = ?", shopID).
		Order("id ASC").
		Find(&products).Error; err != nil {
		return nil, err
	}
	return products, nil
}

// ProductsByShops returns products belonging to any of the given
// shops, the friend-visibility query.
func (r *GormRepo) ProductsByShops(ctx context.Context, shopIDs []uint) ([]models.Product, error) {
	if len(shopIDs) == 0 {
		return []models.Product{}, nil
	}
	var products []models.Product
	if err := r.DB.WithContext(ctx).
		Preload("Shop").
		Where("shop_id IN ?", shopIDs).
		Order("id ASC").
		Find(&products).Error; err != nil {
		return nil, err
	}
	return products, nil
}

func (r *GormRepo) ProductByUID(ctx context.Context, uid uuid.UUID) (*models.Product, error) {
	var product models.Product
	if err := r.DB.WithContext(ctx).Where("uid = ?", uid).First(&product).Error; err != nil {
		return nil, err
	}
	return &product, nil
}

func (r *GormRepo) ProductBySlug(ctx context.Context, slug string) (*models.Product, error) {
	var product models.Product
	if err := r.DB.WithContext(ctx).
		Preload("Shop").
		Where("slug = ?", slug).
		First(&product).Error; err != nil {
		return nil, err
	}
	return &product, nil
}

// SlugTaken reports whether another product already uses the slug.
// excludeID skips the product being renamed so a title that
// normalizes back to its own slug is not treated as a collision.
func (r *GormRepo) SlugTaken(ctx context.Context, slug string, excludeID uint) (bool, error) {
	q := r.DB.WithContext(ctx).
		Model(&models.Product{}).
		Where("slug = ?", slug)
	if excludeID != 0 {
		q = q.Where("id <> ?", excludeID)
	}
	var count int64
	if err := q.Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

func (r *GormRepo) SaveProduct(ctx context.Context, product *models.Product) error {
	return r.DB.WithContext(ctx).Save(product).Error
}

func (r *GormRepo) DeleteProduct(ctx context.Context, product *models.Product) error {
	return r.DB.WithContext(ctx).Delete(product).Error
}
