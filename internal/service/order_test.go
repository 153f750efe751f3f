package service

import (
	"context"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"

	"github.com/shopnet/marketplace/internal/models"
	"github.com/shopnet/marketplace/internal/transport"
)

func orderFixture(t *testing.T) (*env, uuid.UUID, *models.Product) {
	t.Helper()
	e := newEnv(t)
	userUID := e.user(t, "owner@example.com")
	cat := e.category(t, "furniture")
	e.shop(t, userUID, "chairs", cat)
	product := e.product(t, userUID, "Red Chair", "50.50")
	return e, userUID, product
}

func TestAddItemDefaultsQuantity(t *testing.T) {
	e, userUID, product := orderFixture(t)
	ctx := context.Background()

	item, err := e.orders.AddItem(ctx, userUID, transport.CreateOrderItemRequest{Product: product.UID})
	require.NoError(t, err)
	require.Equal(t, 1, item.Quantity)

	_, err = e.orders.AddItem(ctx, userUID, transport.CreateOrderItemRequest{Product: uuid.New()})
	require.ErrorIs(t, err, ErrValidation)
}

func TestOrderTotal(t *testing.T) {
	e, userUID, product := orderFixture(t)
	ctx := context.Background()

	a, err := e.orders.AddItem(ctx, userUID, transport.CreateOrderItemRequest{Product: product.UID, Quantity: 1})
	require.NoError(t, err)
	b, err := e.orders.AddItem(ctx, userUID, transport.CreateOrderItemRequest{Product: product.UID, Quantity: 1})
	require.NoError(t, err)

	order, err := e.orders.PlaceOrder(ctx, userUID, transport.CreateOrderRequest{
		OrderItems: []uuid.UUID{a.UID, b.UID},
	})
	require.NoError(t, err)
	require.Equal(t, "101.00", order.Total().StringFixed(2))
}

func TestQuantityMultipliesTotal(t *testing.T) {
	e, userUID, product := orderFixture(t)
	ctx := context.Background()

	item, err := e.orders.AddItem(ctx, userUID, transport.CreateOrderItemRequest{Product: product.UID, Quantity: 3})
	require.NoError(t, err)

	order, err := e.orders.PlaceOrder(ctx, userUID, transport.CreateOrderRequest{
		OrderItems: []uuid.UUID{item.UID},
	})
	require.NoError(t, err)
	require.Equal(t, "151.50", order.Total().StringFixed(2))
}

func TestSequentialOrderIDs(t *testing.T) {
	e, userUID, product := orderFixture(t)
	ctx := context.Background()

	var ids []int64
	for i := 0; i < 3; i++ {
		item, err := e.orders.AddItem(ctx, userUID, transport.CreateOrderItemRequest{Product: product.UID})
		require.NoError(t, err)
		order, err := e.orders.PlaceOrder(ctx, userUID, transport.CreateOrderRequest{
			OrderItems: []uuid.UUID{item.UID},
		})
		require.NoError(t, err)
		ids = append(ids, order.OrderID)
	}
	require.Equal(t, []int64{1, 2, 3}, ids)
}

// Racing placements must never share an order id: the counter row is
// bumped with a single UPDATE inside each order transaction, so
// concurrent transactions serialise on its lock.
func TestConcurrentOrderIDsAreUnique(t *testing.T) {
	e, userUID, product := orderFixture(t)
	ctx := context.Background()

	const n = 5
	items := make([]uuid.UUID, n)
	for i := range items {
		item, err := e.orders.AddItem(ctx, userUID, transport.CreateOrderItemRequest{Product: product.UID})
		require.NoError(t, err)
		items[i] = item.UID
	}

	var (
		mu  sync.Mutex
		ids = make(map[int64]struct{}, n)
		wg  sync.WaitGroup
	)
	for i := 0; i < n; i++ {
		wg.Add(1)
		go func(itemUID uuid.UUID) {
			defer wg.Done()
			for {
				order, err := e.orders.PlaceOrder(ctx, userUID, transport.CreateOrderRequest{
					OrderItems: []uuid.UUID{itemUID},
				})
				if err != nil {
					// sqlite reports lock contention instead of
					// blocking, back off and retry
					if strings.Contains(err.Error(), "locked") || strings.Contains(err.Error(), "busy") {
						time.Sleep(time.Millisecond)
						continue
					}
					t.Errorf("place order: %v", err)
					return
				}
				mu.Lock()
				ids[order.OrderID] = struct{}{}
				mu.Unlock()
				return
			}
		}(items[i])
	}
	wg.Wait()

	require.Len(t, ids, n)
	for id := int64(1); id <= n; id++ {
		require.Contains(t, ids, id)
	}
}

func TestPlaceOrderValidation(t *testing.T) {
	e, userUID, product := orderFixture(t)
	ctx := context.Background()

	_, err := e.orders.PlaceOrder(ctx, userUID, transport.CreateOrderRequest{})
	require.ErrorIs(t, err, ErrValidation)

	_, err = e.orders.PlaceOrder(ctx, userUID, transport.CreateOrderRequest{
		OrderItems: []uuid.UUID{uuid.New()},
	})
	require.ErrorIs(t, err, ErrValidation)

	// another shop's cart item cannot be bound into my order
	item, err := e.orders.AddItem(ctx, userUID, transport.CreateOrderItemRequest{Product: product.UID})
	require.NoError(t, err)

	otherUID := e.user(t, "other@example.com")
	cat := e.category(t, "garden")
	e.shop(t, otherUID, "plants", cat)

	_, err = e.orders.PlaceOrder(ctx, otherUID, transport.CreateOrderRequest{
		OrderItems: []uuid.UUID{item.UID},
	})
	require.ErrorIs(t, err, ErrValidation)
}

func TestCartSurvivesBinding(t *testing.T) {
	e, userUID, product := orderFixture(t)
	ctx := context.Background()

	item, err := e.orders.AddItem(ctx, userUID, transport.CreateOrderItemRequest{Product: product.UID})
	require.NoError(t, err)

	_, err = e.orders.PlaceOrder(ctx, userUID, transport.CreateOrderRequest{
		OrderItems: []uuid.UUID{item.UID},
	})
	require.NoError(t, err)

	items, err := e.orders.ListItems(ctx, userUID)
	require.NoError(t, err)
	require.Len(t, items, 1)
	require.Equal(t, item.UID, items[0].UID)
}

func TestListOrders(t *testing.T) {
	e, userUID, product := orderFixture(t)
	ctx := context.Background()

	item, err := e.orders.AddItem(ctx, userUID, transport.CreateOrderItemRequest{Product: product.UID, Quantity: 2})
	require.NoError(t, err)
	placed, err := e.orders.PlaceOrder(ctx, userUID, transport.CreateOrderRequest{
		OrderItems: []uuid.UUID{item.UID},
	})
	require.NoError(t, err)

	orders, err := e.orders.ListOrders(ctx, userUID)
	require.NoError(t, err)
	require.Len(t, orders, 1)
	require.Equal(t, placed.UID, orders[0].UID)
	require.Len(t, orders[0].Items, 1)
	require.Equal(t, "101.00", orders[0].Total().StringFixed(2))
}
