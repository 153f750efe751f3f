package repo

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/shopnet/marketplace/internal/models"
)

// CreateShopAsDefault inserts the shop and promotes it to the owner's
// active shop. Clearing old defaults and setting the new one run in a
// single transaction so the one-default-per-user invariant holds even
// if the insert fails.
func (r *GormRepo) CreateShopAsDefault(ctx context.Context, shop *models.Shop) error {
	return r.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Model(&models.Shop{}).
			Where("user_id = ? AND \"default\" = ?", shop.UserID, true).
			Update("default", false).Error; err != nil {
			return err
		}
		shop.Default = true
		return tx.Create(shop).Error
	})
}

// SwitchDefault makes the given shop the owner's active shop,
// atomically with clearing every other default.
func (r *GormRepo) SwitchDefault(ctx context.Context, userID, shopID uint) error {
	return r.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Model(&models.Shop{}).
			Where("user_id = ?", userID).
			Update("default", false).Error; err != nil {
			return err
		}
		return tx.Model(&models.Shop{}).
			Where("id = ? AND user_id = ?", shopID, userID).
			Update("default", true).Error
	})
}

func (r *GormRepo) ShopsByUser(ctx context.Context, userID uint) ([]models.Shop, error) {
	var shops []models.Shop
	if err := r.DB.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("id ASC").
		Find(&shops).Error; err != nil {
		return nil, err
	}
	return shops, nil
}

func (r *GormRepo) ShopByUID(ctx context.Context, uid uuid.UUID) (*models.Shop, error) {
	var shop models.Shop
	if err := r.DB.WithContext(ctx).
		Preload("User").
		Where("uid = ?", uid).
		First(&shop).Error; err != nil {
		return nil, err
	}
	return &shop, nil
}

// DefaultShop returns the caller's active shop.
func (r *GormRepo) DefaultShop(ctx context.Context, userID uint) (*models.Shop, error) {
	var shop models.Shop
	if err := r.DB.WithContext(ctx).
		Where("user_id = ? AND \"default\" = ?", userID, true).
		First(&shop).Error; err != nil {
		return nil, err
	}
	return &shop, nil
}

func (r *GormRepo) ShopsByCategory(ctx context.Context, categoryUID uuid.UUID) ([]models.Shop, error) {
	var shops []models.Shop
	if err := r.DB.WithContext(ctx).
		Where("category_uid = ?", categoryUID).
		Order("id ASC").
		Find(&shops).Error; err != nil {
		return nil, err
	}
	return shops, nil
}

func (r *GormRepo) SaveShop(ctx context.Context, shop *models.Shop) error {
	return r.DB.WithContext(ctx).Save(shop).Error
}

// DeleteShop removes the shop; products, grouping edges, order items
// and orders follow via ON DELETE CASCADE.
func (r *GormRepo) DeleteShop(ctx context.Context, shop *models.Shop) error {
	return r.DB.WithContext(ctx).Delete(shop).Error
}
