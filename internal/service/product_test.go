package service

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"

	"github.com/shopnet/marketplace/internal/transport"
)

func TestCreateProductValidation(t *testing.T) {
	e := newEnv(t)
	ctx := context.Background()
	userUID := e.user(t, "owner@example.com")

	// listing requires an active shop
	_, err := e.products.CreateProduct(ctx, userUID, transport.CreateProductRequest{
		Title: "Red Chair",
		Price: decimal.RequireFromString("50.50"),
	})
	require.ErrorIs(t, err, ErrValidation)

	cat := e.category(t, "furniture")
	e.shop(t, userUID, "chairs", cat)

	_, err = e.products.CreateProduct(ctx, userUID, transport.CreateProductRequest{
		Price: decimal.RequireFromString("50.50"),
	})
	require.ErrorIs(t, err, ErrValidation)

	_, err = e.products.CreateProduct(ctx, userUID, transport.CreateProductRequest{
		Title: "Red Chair",
		Price: decimal.RequireFromString("-1"),
	})
	require.ErrorIs(t, err, ErrValidation)

	product := e.product(t, userUID, "Red Chair", "50.50")
	require.Equal(t, "red-chair", product.Slug)
}

func TestSlugDeduplication(t *testing.T) {
	e := newEnv(t)
	userUID := e.user(t, "owner@example.com")
	cat := e.category(t, "furniture")
	e.shop(t, userUID, "chairs", cat)

	first := e.product(t, userUID, "Red Chair", "50.50")
	second := e.product(t, userUID, "Red Chair", "60.00")
	third := e.product(t, userUID, "Red Chair", "70.00")

	require.Equal(t, "red-chair", first.Slug)
	require.Equal(t, "red-chair-2", second.Slug)
	require.Equal(t, "red-chair-3", third.Slug)
}

func TestPatchTitleRegeneratesSlug(t *testing.T) {
	e := newEnv(t)
	ctx := context.Background()
	userUID := e.user(t, "owner@example.com")
	cat := e.category(t, "furniture")
	e.shop(t, userUID, "chairs", cat)
	product := e.product(t, userUID, "Red Chair", "50.50")

	title := "Blue Chair"
	patched, err := e.products.PatchProduct(ctx, userUID, product.Slug, transport.PatchProductRequest{Title: &title})
	require.NoError(t, err)
	require.Equal(t, "blue-chair", patched.Slug)

	// the old slug no longer resolves
	_, err = e.products.GetProduct(ctx, "red-chair")
	require.ErrorIs(t, err, ErrNotFound)
}

// A title change that normalizes back to the current slug must keep
// the slug instead of deduplicating against the product's own row.
func TestPatchTitleKeepsOwnSlug(t *testing.T) {
	e := newEnv(t)
	ctx := context.Background()
	userUID := e.user(t, "owner@example.com")
	cat := e.category(t, "furniture")
	e.shop(t, userUID, "chairs", cat)
	product := e.product(t, userUID, "Red Chair", "50.50")

	title := "Red  Chair"
	patched, err := e.products.PatchProduct(ctx, userUID, product.Slug, transport.PatchProductRequest{Title: &title})
	require.NoError(t, err)
	require.Equal(t, "Red  Chair", patched.Title)
	require.Equal(t, "red-chair", patched.Slug)
}

func TestProductOwnershipEnforced(t *testing.T) {
	e := newEnv(t)
	ctx := context.Background()
	ownerUID := e.user(t, "owner@example.com")
	cat := e.category(t, "furniture")
	e.shop(t, ownerUID, "chairs", cat)
	product := e.product(t, ownerUID, "Red Chair", "50.50")

	otherUID := e.user(t, "other@example.com")
	e.shop(t, otherUID, "tables", cat)

	title := "Stolen Chair"
	_, err := e.products.PatchProduct(ctx, otherUID, product.Slug, transport.PatchProductRequest{Title: &title})
	require.ErrorIs(t, err, ErrForbidden)

	_, err = e.products.DeleteProduct(ctx, otherUID, product.Slug)
	require.ErrorIs(t, err, ErrForbidden)
}

// Products of friend shops are visible through find, others are not.
func TestFriendProductVisibility(t *testing.T) {
	e := newEnv(t)
	ctx := context.Background()
	cat := e.category(t, "furniture")

	meUID := e.user(t, "me@example.com")
	e.shop(t, meUID, "mine", cat)

	friendUID := e.user(t, "friend@example.com")
	friendShop := e.shop(t, friendUID, "friendly", cat)
	friendProduct := e.product(t, friendUID, "Friend Lamp", "10.00")

	strangerUID := e.user(t, "stranger@example.com")
	e.shop(t, strangerUID, "strange", cat)
	e.product(t, strangerUID, "Stranger Lamp", "12.00")

	e.befriend(t, meUID, friendUID, friendShop.UID)

	products, err := e.products.FindProducts(ctx, meUID)
	require.NoError(t, err)
	require.Len(t, products, 1)
	require.Equal(t, friendProduct.UID, products[0].UID)

	uids := make([]uuid.UUID, len(products))
	for i, p := range products {
		uids[i] = p.Shop.UID
	}
	require.Contains(t, uids, friendShop.UID)
}

func TestListProductsScopedToActiveShop(t *testing.T) {
	e := newEnv(t)
	ctx := context.Background()
	userUID := e.user(t, "owner@example.com")
	cat := e.category(t, "furniture")

	e.shop(t, userUID, "first", cat)
	first := e.product(t, userUID, "Red Chair", "50.50")

	second := e.shop(t, userUID, "second", cat)
	e.product(t, userUID, "Blue Table", "80.00")

	// active shop is the second one, only its product is listed
	products, err := e.products.ListProducts(ctx, userUID)
	require.NoError(t, err)
	require.Len(t, products, 1)
	require.Equal(t, second.UID, products[0].Shop.UID)
	require.NotEqual(t, first.UID, products[0].UID)
}
