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

type ShopService struct {
	Repo *repo.GormRepo
}

// CreateShop registers a new shop for the caller. New shops are always
// promoted to the active shop, the previous default is cleared in the
// same transaction.
func (s *ShopService) CreateShop(ctx context.Context, userUID uuid.UUID, req transport.CreateShopRequest) (*models.Shop, error) {
	if req.Name == "" {
		return nil, fmt.Errorf("%w: name required", ErrValidation)
	}
	if _, err := s.Repo.CategoryByUID(ctx, req.Category); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("%w: unknown category", ErrValidation)
		}
		return nil, err
	}

	user, err := s.Repo.UserByUID(ctx, userUID)
	if err != nil {
		return nil, err
	}

	shop := &models.Shop{
		Name:        req.Name,
		UserID:      user.ID,
		CategoryUID: req.Category,
	}
	if err := s.Repo.CreateShopAsDefault(ctx, shop); err != nil {
		return nil, err
	}
	shop.User = *user
	return shop, nil
}

func (s *ShopService) ListShops(ctx context.Context, userUID uuid.UUID) ([]models.Shop, error) {
	user, err := s.Repo.UserByUID(ctx, userUID)
	if err != nil {
		return nil, err
	}
	return s.Repo.ShopsByUser(ctx, user.ID)
}

func (s *ShopService) GetShop(ctx context.Context, uid uuid.UUID) (*models.Shop, error) {
	shop, err := s.Repo.ShopByUID(ctx, uid)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return shop, nil
}

// ownedShop fetches a shop and verifies the caller owns it.
func (s *ShopService) ownedShop(ctx context.Context, userUID, shopUID uuid.UUID) (*models.Shop, error) {
	shop, err := s.GetShop(ctx, shopUID)
	if err != nil {
		return nil, err
	}
	if shop.User.UID != userUID {
		return nil, fmt.Errorf("%w: not your shop", ErrForbidden)
	}
	return shop, nil
}

func (s *ShopService) UpdateShop(ctx context.Context, userUID, shopUID uuid.UUID, req transport.PatchShopRequest) (*models.Shop, error) {
	shop, err := s.ownedShop(ctx, userUID, shopUID)
	if err != nil {
		return nil, err
	}

	if req.Name != nil {
		if *req.Name == "" {
			return nil, fmt.Errorf("%w: name required", ErrValidation)
		}
		shop.Name = *req.Name
	}
	if req.Category != nil {
		if _, err := s.Repo.CategoryByUID(ctx, *req.Category); err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil, fmt.Errorf("%w: unknown category", ErrValidation)
			}
			return nil, err
		}
		shop.CategoryUID = *req.Category
	}

	if err := s.Repo.SaveShop(ctx, shop); err != nil {
		return nil, err
	}
	return shop, nil
}

func (s *ShopService) DeleteShop(ctx context.Context, userUID, shopUID uuid.UUID) error {
	shop, err := s.ownedShop(ctx, userUID, shopUID)
	if err != nil {
		return err
	}
	return s.Repo.DeleteShop(ctx, shop)
}

// LoginShop switches the caller's active shop.
func (s *ShopService) LoginShop(ctx context.Context, userUID, shopUID uuid.UUID) (*models.Shop, error) {
	shop, err := s.ownedShop(ctx, userUID, shopUID)
	if err != nil {
		return nil, err
	}
	if err := s.Repo.SwitchDefault(ctx, shop.UserID, shop.ID); err != nil {
		return nil, err
	}
	shop.Default = true
	return shop, nil
}

// FindShops lists shops sharing the active shop's category.
func (s *ShopService) FindShops(ctx context.Context, userUID uuid.UUID) ([]models.Shop, error) {
	_, shop, err := activeShop(ctx, s.Repo, userUID)
	if err != nil {
		return nil, err
	}
	return s.Repo.ShopsByCategory(ctx, shop.CategoryUID)
}
