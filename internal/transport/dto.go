package transport

import (
	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/shopnet/marketplace/internal/models"
)

type RegisterRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
	Name     string `json:"name"`
}

type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type RefreshRequest struct {
	Refresh string `json:"refresh"`
}

type TokenResponse struct {
	Access  string `json:"access"`
	Refresh string `json:"refresh"`
}

type UpdateUserRequest struct {
	Name     *string    `json:"name"`
	Password *string    `json:"password"`
	Category *uuid.UUID `json:"category"`
}

type CategoryRequest struct {
	Title string `json:"title"`
}

type CreateShopRequest struct {
	Name     string    `json:"name"`
	Category uuid.UUID `json:"category"`
}

type PatchShopRequest struct {
	Name     *string    `json:"name"`
	Category *uuid.UUID `json:"category"`
}

type ShopResponse struct {
	UID      uuid.UUID `json:"uid"`
	Name     string    `json:"name"`
	Category uuid.UUID `json:"category"`
	User     string    `json:"user,omitempty"`
	Default  bool      `json:"default"`
}

func FromShop(shop *models.Shop) ShopResponse {
	resp := ShopResponse{
		UID:      shop.UID,
		Name:     shop.Name,
		Category: shop.CategoryUID,
		Default:  shop.Default,
	}
	if shop.User.ID != 0 {
		resp.User = shop.User.UID.String()
	}
	return resp
}

func FromShops(shops []models.Shop) []ShopResponse {
	out := make([]ShopResponse, len(shops))
	for i := range shops {
		out[i] = FromShop(&shops[i])
	}
	return out
}

type CreateGroupingRequest struct {
	Receiver uuid.UUID `json:"receiver"`
	// Status is accepted from clients for compatibility but always
	// overridden with pending on create.
	Status string `json:"status"`
}

type PatchGroupingRequest struct {
	Status string `json:"status"`
}

type GroupingResponse struct {
	UID      uuid.UUID `json:"uid"`
	Sender   uuid.UUID `json:"sender"`
	Receiver uuid.UUID `json:"receiver"`
	Status   string    `json:"status"`
}

func FromGroup(group *models.UserGroup) GroupingResponse {
	return GroupingResponse{
		UID:      group.UID,
		Sender:   group.Sender.UID,
		Receiver: group.Receiver.UID,
		Status:   group.Status,
	}
}

func FromGroups(groups []models.UserGroup) []GroupingResponse {
	out := make([]GroupingResponse, len(groups))
	for i := range groups {
		out[i] = FromGroup(&groups[i])
	}
	return out
}

type CreateProductRequest struct {
	Title    string          `json:"title"`
	Price    decimal.Decimal `json:"price"`
	Quantity int             `json:"quantity"`
	Image    string          `json:"image"`
}

type PatchProductRequest struct {
	Title    *string          `json:"title"`
	Price    *decimal.Decimal `json:"price"`
	Quantity *int             `json:"quantity"`
	Image    *string          `json:"image"`
}

type ProductResponse struct {
	UID      uuid.UUID       `json:"uid"`
	Title    string          `json:"title"`
	Slug     string          `json:"slug"`
	Shop     uuid.UUID       `json:"shop"`
	Price    decimal.Decimal `json:"price"`
	Quantity int             `json:"quantity"`
	Image    string          `json:"image,omitempty"`
}

func FromProduct(product *models.Product) ProductResponse {
	return ProductResponse{
		UID:      product.UID,
		Title:    product.Title,
		Slug:     product.Slug,
		Shop:     product.Shop.UID,
		Price:    product.Price,
		Quantity: product.Quantity,
		Image:    product.Image,
	}
}

func FromProducts(products []models.Product) []ProductResponse {
	out := make([]ProductResponse, len(products))
	for i := range products {
		out[i] = FromProduct(&products[i])
	}
	return out
}

type CreateOrderItemRequest struct {
	Product  uuid.UUID `json:"product"`
	Quantity int       `json:"quantity"`
}

type OrderItemResponse struct {
	UID      uuid.UUID `json:"uid"`
	Product  uuid.UUID `json:"product"`
	Quantity int       `json:"quantity"`
	Total    string    `json:"total"`
}

func FromOrderItem(item *models.OrderItem) OrderItemResponse {
	total := item.Product.Price.Mul(decimal.NewFromInt(int64(item.Quantity)))
	return OrderItemResponse{
		UID:      item.UID,
		Product:  item.Product.UID,
		Quantity: item.Quantity,
		Total:    total.StringFixed(2),
	}
}

func FromOrderItems(items []models.OrderItem) []OrderItemResponse {
	out := make([]OrderItemResponse, len(items))
	for i := range items {
		out[i] = FromOrderItem(&items[i])
	}
	return out
}

type CreateOrderRequest struct {
	OrderItems []uuid.UUID `json:"orderitem"`
}

type OrderResponse struct {
	UID     uuid.UUID           `json:"uid"`
	OrderID int64               `json:"order_id"`
	Items   []OrderItemResponse `json:"orderitem"`
	Total   string              `json:"total"`
}

func FromOrder(order *models.Order) OrderResponse {
	return OrderResponse{
		UID:     order.UID,
		OrderID: order.OrderID,
		Items:   FromOrderItems(order.Items),
		Total:   order.Total().StringFixed(2),
	}
}

func FromOrders(orders []models.Order) []OrderResponse {
	out := make([]OrderResponse, len(orders))
	for i := range orders {
		out[i] = FromOrder(&orders[i])
	}
	return out
}
