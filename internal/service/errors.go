package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"github.com/shopnet/marketplace/internal/models"
	"github.com/shopnet/marketplace/internal/repo"
	"gorm.io/gorm"
)

var (
	ErrValidation   = errors.New("validation")   // 400
	ErrUnauthorized = errors.New("unauthorized") // 401
	ErrForbidden    = errors.New("forbidden")    // 403
	ErrNotFound     = errors.New("not found")    // 404
	ErrConflict     = errors.New("conflict")     // 409
)

// activeShop resolves the caller and their default shop. Operations
// that are implicitly scoped to "my shop" start here.
func activeShop(ctx context.Context, r *repo.GormRepo, userUID uuid.UUID) (*models.User, *models.Shop, error) {
	user, err := r.UserByUID(ctx, userUID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil, fmt.Errorf("%w: unknown user", ErrValidation)
		}
		return nil, nil, err
	}

	shop, err := r.DefaultShop(ctx, user.ID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil, fmt.Errorf("%w: no active shop", ErrValidation)
		}
		return nil, nil, err
	}

	return user, shop, nil
}
