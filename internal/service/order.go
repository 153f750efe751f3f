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

type OrderService struct {
	Repo *repo.GormRepo
}

// AddItem puts a product into the active shop's cart.
func (s *OrderService) AddItem(ctx context.Context, userUID uuid.UUID, req transport.CreateOrderItemRequest) (*models.OrderItem, error) {
	user, shop, err := activeShop(ctx, s.Repo, userUID)
	if err != nil {
		return nil, err
	}

	product, err := s.Repo.ProductByUID(ctx, req.Product)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("%w: unknown product", ErrValidation)
		}
		return nil, err
	}

	quantity := req.Quantity
	if quantity < 1 {
		quantity = 1
	}

	item := &models.OrderItem{
		ShopID:    shop.ID,
		UserID:    user.ID,
		ProductID: product.ID,
		Quantity:  quantity,
	}
	if err := s.Repo.CreateOrderItem(ctx, item); err != nil {
		return nil, err
	}
	item.Product = *product
	return item, nil
}

// ListItems returns the active shop's cart. Items already bound to an
// order stay listed, binding does not consume them.
func (s *OrderService) ListItems(ctx context.Context, userUID uuid.UUID) ([]models.OrderItem, error) {
	_, shop, err := activeShop(ctx, s.Repo, userUID)
	if err != nil {
		return nil, err
	}
	return s.Repo.OrderItemsByShop(ctx, shop.ID)
}

// PlaceOrder binds existing cart items into a new order for the active
// shop. Every referenced item must exist and belong to that shop.
func (s *OrderService) PlaceOrder(ctx context.Context, userUID uuid.UUID, req transport.CreateOrderRequest) (*models.Order, error) {
	if len(req.OrderItems) == 0 {
		return nil, fmt.Errorf("%w: orderitem required", ErrValidation)
	}

	user, shop, err := activeShop(ctx, s.Repo, userUID)
	if err != nil {
		return nil, err
	}

	items, err := s.Repo.OrderItemsByUIDs(ctx, req.OrderItems)
	if err != nil {
		return nil, err
	}
	if len(items) != len(req.OrderItems) {
		return nil, fmt.Errorf("%w: unknown order item", ErrValidation)
	}
	itemIDs := make([]uint, len(items))
	for i, item := range items {
		if item.ShopID != shop.ID {
			return nil, fmt.Errorf("%w: order item does not belong to your shop", ErrValidation)
		}
		itemIDs[i] = item.ID
	}

	order := &models.Order{
		UserID: user.ID,
		ShopID: shop.ID,
	}
	if err := s.Repo.PlaceOrder(ctx, order, itemIDs); err != nil {
		return nil, err
	}
	order.Items = items
	return order, nil
}

// ListOrders returns the active shop's orders, totals computed from
// the bound items.
func (s *OrderService) ListOrders(ctx context.Context, userUID uuid.UUID) ([]models.Order, error) {
	_, shop, err := activeShop(ctx, s.Repo, userUID)
	if err != nil {
		return nil, err
	}
	return s.Repo.OrdersByShop(ctx, shop.ID)
}
