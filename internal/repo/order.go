package repo

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/shopnet/marketplace/internal/models"
)

func (r *GormRepo) CreateOrderItem(ctx context.Context, item *models.OrderItem) error {
	return r.DB.WithContext(ctx).Create(item).Error
}

func (r *GormRepo) OrderItemsByShop(ctx context.Context, shopID uint) ([]models.OrderItem, error) {
	var items []models.OrderItem
	if err := r.DB.WithContext(ctx).
		Preload("Product").
		Preload("Product.Shop").
		Where("shop_id = ?", shopID).
		Order("id ASC").
		Find(&items).Error; err != nil {
		return nil, err
	}
	return items, nil
}

func (r *GormRepo) OrderItemsByUIDs(ctx context.Context, uids []uuid.UUID) ([]models.OrderItem, error) {
	var items []models.OrderItem
	if err := r.DB.WithContext(ctx).
		Preload("Product").
		Where("uid IN ?", uids).
		Find(&items).Error; err != nil {
		return nil, err
	}
	return items, nil
}

// PlaceOrder creates the order and binds the items to it in one
// transaction. The sequential order id comes from the counters row: a
// single UPDATE takes the row lock, so two concurrent placements are
// serialised and can never read the same value.
func (r *GormRepo) PlaceOrder(ctx context.Context, order *models.Order, itemIDs []uint) error {
	return r.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		res := tx.Model(&models.Counter{}).
			Where("name = ?", models.OrderCounterName).
			Update("value", gorm.Expr("value + 1"))
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return fmt.Errorf("order counter row missing")
		}

		var counter models.Counter
		if err := tx.Where("name = ?", models.OrderCounterName).
			First(&counter).Error; err != nil {
			return err
		}
		order.OrderID = counter.Value

		if err := tx.Create(order).Error; err != nil {
			return err
		}

		return tx.Model(&models.OrderItem{}).
			Where("id IN ?", itemIDs).
			Update("order_id", order.ID).Error
	})
}

func (r *GormRepo) OrdersByShop(ctx context.Context, shopID uint) ([]models.Order, error) {
	var orders []models.Order
	if err := r.DB.WithContext(ctx).
		Preload("Items").
		Preload("Items.Product").
		Where("shop_id = ?", shopID).
		Order("order_id ASC").
		Find(&orders).Error; err != nil {
		return nil, err
	}
	return orders, nil
}
