package service

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"

	"github.com/shopnet/marketplace/internal/transport"
)

// requireSingleDefault asserts exactly one of the user's shops is the
// active one and returns it.
func requireSingleDefault(t *testing.T, e *env, userUID uuid.UUID) uuid.UUID {
	t.Helper()
	shops, err := e.shops.ListShops(context.Background(), userUID)
	require.NoError(t, err)

	var active []uuid.UUID
	for _, s := range shops {
		if s.Default {
			active = append(active, s.UID)
		}
	}
	require.Len(t, active, 1)
	return active[0]
}

func TestCreateShopPromotesDefault(t *testing.T) {
	e := newEnv(t)
	userUID := e.user(t, "owner@example.com")
	cat := e.category(t, "books")

	first := e.shop(t, userUID, "first", cat)
	require.True(t, first.Default)
	require.Equal(t, first.UID, requireSingleDefault(t, e, userUID))

	second := e.shop(t, userUID, "second", cat)
	require.Equal(t, second.UID, requireSingleDefault(t, e, userUID))

	third := e.shop(t, userUID, "third", cat)
	require.Equal(t, third.UID, requireSingleDefault(t, e, userUID))
}

func TestLoginShopSwitchesDefault(t *testing.T) {
	e := newEnv(t)
	ctx := context.Background()
	userUID := e.user(t, "owner@example.com")
	cat := e.category(t, "books")

	first := e.shop(t, userUID, "first", cat)
	e.shop(t, userUID, "second", cat)

	_, err := e.shops.LoginShop(ctx, userUID, first.UID)
	require.NoError(t, err)
	require.Equal(t, first.UID, requireSingleDefault(t, e, userUID))

	// someone else's shop cannot become my active shop
	otherUID := e.user(t, "other@example.com")
	_, err = e.shops.LoginShop(ctx, otherUID, first.UID)
	require.ErrorIs(t, err, ErrForbidden)
}

func TestShopOwnershipEnforced(t *testing.T) {
	e := newEnv(t)
	ctx := context.Background()
	ownerUID := e.user(t, "owner@example.com")
	otherUID := e.user(t, "other@example.com")
	cat := e.category(t, "books")
	shop := e.shop(t, ownerUID, "mine", cat)

	name := "stolen"
	_, err := e.shops.UpdateShop(ctx, otherUID, shop.UID, transport.PatchShopRequest{Name: &name})
	require.ErrorIs(t, err, ErrForbidden)

	err = e.shops.DeleteShop(ctx, otherUID, shop.UID)
	require.ErrorIs(t, err, ErrForbidden)
}

func TestFindShopsByCategory(t *testing.T) {
	e := newEnv(t)
	ctx := context.Background()
	cat := e.category(t, "books")
	otherCat := e.category(t, "garden")

	meUID := e.user(t, "me@example.com")
	e.shop(t, meUID, "mine", cat)

	peerUID := e.user(t, "peer@example.com")
	peer := e.shop(t, peerUID, "peer", cat)

	strangerUID := e.user(t, "stranger@example.com")
	e.shop(t, strangerUID, "stranger", otherCat)

	shops, err := e.shops.FindShops(ctx, meUID)
	require.NoError(t, err)

	uids := make([]uuid.UUID, len(shops))
	for i, s := range shops {
		uids[i] = s.UID
	}
	require.Contains(t, uids, peer.UID)
	for _, s := range shops {
		require.Equal(t, cat, s.CategoryUID)
	}
}

func TestDeleteShopCascadesProducts(t *testing.T) {
	e := newEnv(t)
	ctx := context.Background()
	userUID := e.user(t, "owner@example.com")
	cat := e.category(t, "books")
	shop := e.shop(t, userUID, "mine", cat)
	product := e.product(t, userUID, "Red Chair", "50.50")

	require.NoError(t, e.shops.DeleteShop(ctx, userUID, shop.UID))

	_, err := e.products.GetProduct(ctx, product.Slug)
	require.ErrorIs(t, err, ErrNotFound)
}
