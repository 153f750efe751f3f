package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/shopnet/marketplace/internal/transport"
)

func TestCategoryCRUD(t *testing.T) {
	e := newEnv(t)
	ctx := context.Background()

	_, err := e.categories.CreateCategory(ctx, transport.CategoryRequest{})
	require.ErrorIs(t, err, ErrValidation)

	cat, err := e.categories.CreateCategory(ctx, transport.CategoryRequest{Title: "books"})
	require.NoError(t, err)

	cats, err := e.categories.ListCategories(ctx)
	require.NoError(t, err)
	require.Len(t, cats, 1)

	updated, err := e.categories.UpdateCategory(ctx, cat.UID, transport.CategoryRequest{Title: "used books"})
	require.NoError(t, err)
	require.Equal(t, "used books", updated.Title)

	require.NoError(t, e.categories.DeleteCategory(ctx, cat.UID))
	_, err = e.categories.GetCategory(ctx, cat.UID)
	require.ErrorIs(t, err, ErrNotFound)
}

// Deleting a category must not touch shops referencing it. The shop
// keeps its now dangling category uid.
func TestCategoryDeleteLeavesShopReference(t *testing.T) {
	e := newEnv(t)
	ctx := context.Background()

	userUID := e.user(t, "owner@example.com")
	cat := e.category(t, "books")
	shop := e.shop(t, userUID, "book corner", cat)

	require.NoError(t, e.categories.DeleteCategory(ctx, cat))

	got, err := e.shops.GetShop(ctx, shop.UID)
	require.NoError(t, err)
	require.Equal(t, cat, got.CategoryUID)
}
