package service

import (
	"context"
	"fmt"
	"testing"

	"github.com/glebarez/sqlite"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/shopnet/marketplace/internal/db"
	"github.com/shopnet/marketplace/internal/models"
	"github.com/shopnet/marketplace/internal/repo"
	"github.com/shopnet/marketplace/internal/transport"
)

// env wires every service against a private in-memory database.
type env struct {
	repo       *repo.GormRepo
	users      *UserService
	categories *CategoryService
	shops      *ShopService
	groups     *GroupingService
	products   *ProductService
	orders     *OrderService
}

func newEnv(t *testing.T) *env {
	t.Helper()

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared&_pragma=foreign_keys(1)", t.Name())
	gdb, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, db.Migrate(gdb))

	r := repo.New(gdb)
	return &env{
		repo: r,
		users: &UserService{
			Repo:          r,
			JWTSecret:     []byte("test-access-secret"),
			RefreshSecret: []byte("test-refresh-secret"),
		},
		categories: &CategoryService{Repo: r},
		shops:      &ShopService{Repo: r},
		groups:     &GroupingService{Repo: r},
		products:   &ProductService{Repo: r},
		orders:     &OrderService{Repo: r},
	}
}

func (e *env) user(t *testing.T, email string) uuid.UUID {
	t.Helper()
	user, err := e.users.Register(context.Background(), transport.RegisterRequest{
		Email:    email,
		Password: "secret123",
		Name:     "tester",
	})
	require.NoError(t, err)
	return user.UID
}

func (e *env) category(t *testing.T, title string) uuid.UUID {
	t.Helper()
	cat, err := e.categories.CreateCategory(context.Background(), transport.CategoryRequest{Title: title})
	require.NoError(t, err)
	return cat.UID
}

func (e *env) shop(t *testing.T, userUID uuid.UUID, name string, category uuid.UUID) *models.Shop {
	t.Helper()
	shop, err := e.shops.CreateShop(context.Background(), userUID, transport.CreateShopRequest{
		Name:     name,
		Category: category,
	})
	require.NoError(t, err)
	return shop
}

func (e *env) product(t *testing.T, userUID uuid.UUID, title, price string) *models.Product {
	t.Helper()
	product, err := e.products.CreateProduct(context.Background(), userUID, transport.CreateProductRequest{
		Title:    title,
		Price:    decimal.RequireFromString(price),
		Quantity: 10,
	})
	require.NoError(t, err)
	return product
}

// befriend sends a request from the sender's active shop and accepts it
// as the receiver.
func (e *env) befriend(t *testing.T, senderUser, receiverUser uuid.UUID, receiverShop uuid.UUID) *models.UserGroup {
	t.Helper()
	group, err := e.groups.SendRequest(context.Background(), senderUser, transport.CreateGroupingRequest{
		Receiver: receiverShop,
	})
	require.NoError(t, err)

	group, err = e.groups.UpdateStatus(context.Background(), receiverUser, group.UID, transport.PatchGroupingRequest{
		Status: models.StatusAccepted,
	})
	require.NoError(t, err)
	return group
}
