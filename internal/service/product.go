package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/gosimple/slug"
	"gorm.io/gorm"

	"github.com/shopnet/marketplace/internal/models"
	"github.com/shopnet/marketplace/internal/repo"
	"github.com/shopnet/marketplace/internal/transport"
)

type ProductService struct {
	Repo *repo.GormRepo
}

// CreateProduct lists a product under the caller's active shop. The
// slug is derived from the title and deduplicated with a numeric
// suffix.
func (s *ProductService) CreateProduct(ctx context.Context, userUID uuid.UUID, req transport.CreateProductRequest) (*models.Product, error) {
	if req.Title == "" {
		return nil, fmt.Errorf("%w: title required", ErrValidation)
	}
	if req.Price.IsNegative() {
		return nil, fmt.Errorf("%w: price cannot be negative", ErrValidation)
	}
	if req.Quantity < 0 {
		return nil, fmt.Errorf("%w: quantity cannot be negative", ErrValidation)
	}

	_, shop, err := activeShop(ctx, s.Repo, userUID)
	if err != nil {
		return nil, err
	}

	productSlug, err := s.uniqueSlug(ctx, req.Title, 0)
	if err != nil {
		return nil, err
	}

	product := &models.Product{
		Title:    req.Title,
		Slug:     productSlug,
		ShopID:   shop.ID,
		Price:    req.Price,
		Quantity: req.Quantity,
		Image:    req.Image,
	}
	if err := s.Repo.CreateProduct(ctx, product); err != nil {
		return nil, err
	}
	product.Shop = *shop
	return product, nil
}

// ListProducts returns the active shop's own products.
func (s *ProductService) ListProducts(ctx context.Context, userUID uuid.UUID) ([]models.Product, error) {
	_, shop, err := activeShop(ctx, s.Repo, userUID)
	if err != nil {
		return nil, err
	}
	return s.Repo.ProductsByShop(ctx, shop.ID)
}

func (s *ProductService) GetProduct(ctx context.Context, productSlug string) (*models.Product, error) {
	product, err := s.Repo.ProductBySlug(ctx, productSlug)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return product, nil
}

func (s *ProductService) PatchProduct(ctx context.Context, userUID uuid.UUID, productSlug string, req transport.PatchProductRequest) (*models.Product, error) {
	product, err := s.ownedProduct(ctx, userUID, productSlug)
	if err != nil {
		return nil, err
	}

	if req.Title != nil && *req.Title != product.Title {
		if *req.Title == "" {
			return nil, fmt.Errorf("%w: title required", ErrValidation)
		}
		newSlug, err := s.uniqueSlug(ctx, *req.Title, product.ID)
		if err != nil {
			return nil, err
		}
		product.Title = *req.Title
		product.Slug = newSlug
	}
	if req.Price != nil {
		if req.Price.IsNegative() {
			return nil, fmt.Errorf("%w: price cannot be negative", ErrValidation)
		}
		product.Price = *req.Price
	}
	if req.Quantity != nil {
		if *req.Quantity < 0 {
			return nil, fmt.Errorf("%w: quantity cannot be negative", ErrValidation)
		}
		product.Quantity = *req.Quantity
	}
	if req.Image != nil {
		product.Image = *req.Image
	}

	if err := s.Repo.SaveProduct(ctx, product); err != nil {
		return nil, err
	}
	return product, nil
}

func (s *ProductService) DeleteProduct(ctx context.Context, userUID uuid.UUID, productSlug string) (*models.Product, error) {
	product, err := s.ownedProduct(ctx, userUID, productSlug)
	if err != nil {
		return nil, err
	}
	if err := s.Repo.DeleteProduct(ctx, product); err != nil {
		return nil, err
	}
	return product, nil
}

// FindProducts returns the products of every friend shop of the
// caller's active shop.
func (s *ProductService) FindProducts(ctx context.Context, userUID uuid.UUID) ([]models.Product, error) {
	_, shop, err := activeShop(ctx, s.Repo, userUID)
	if err != nil {
		return nil, err
	}

	edges, err := s.Repo.AcceptedEdges(ctx, shop.ID)
	if err != nil {
		return nil, err
	}

	friendIDs := make([]uint, 0, len(edges))
	for _, edge := range edges {
		if edge.SenderID == shop.ID {
			friendIDs = append(friendIDs, edge.ReceiverID)
		} else {
			friendIDs = append(friendIDs, edge.SenderID)
		}
	}
	return s.Repo.ProductsByShops(ctx, friendIDs)
}

func (s *ProductService) ownedProduct(ctx context.Context, userUID uuid.UUID, productSlug string) (*models.Product, error) {
	product, err := s.GetProduct(ctx, productSlug)
	if err != nil {
		return nil, err
	}
	caller, err := s.Repo.UserByUID(ctx, userUID)
	if err != nil {
		return nil, err
	}
	if product.Shop.UserID != caller.ID {
		return nil, fmt.Errorf("%w: not your product", ErrForbidden)
	}
	return product, nil
}

func (s *ProductService) uniqueSlug(ctx context.Context, title string, excludeID uint) (string, error) {
	base := slug.Make(title)
	candidate := base
	for i := 2; ; i++ {
		taken, err := s.Repo.SlugTaken(ctx, candidate, excludeID)
		if err != nil {
			return "", err
		}
		if !taken {
			return candidate, nil
		}
		candidate = fmt.Sprintf("%s-%d", base, i)
	}
}
