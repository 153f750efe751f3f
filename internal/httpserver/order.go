package httpserver

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/shopnet/marketplace/internal/events"
	"github.com/shopnet/marketplace/internal/logging"
	"github.com/shopnet/marketplace/internal/middleware/auth"
	"github.com/shopnet/marketplace/internal/service"
	"github.com/shopnet/marketplace/internal/transport"
)

type OrderHTTP struct {
	Svc      *service.OrderService
	Producer *events.Producer
}

// AddItem puts a product into the active shop's cart.
func (h *OrderHTTP) AddItem(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "order.add_item")

	userUID, err := auth.UserUID(c)
	if err != nil {
		return err
	}

	var req transport.CreateOrderItemRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid body")
	}

	item, err := h.Svc.AddItem(ctx, userUID, req)
	if err != nil {
		l.Warn("order_item_create_failed", "error", err)
		return httpError(err)
	}

	l.Info("order_item_created", "item", item.UID.String())
	return c.JSON(http.StatusCreated, transport.FromOrderItem(item))
}

// ListItems returns the active shop's cart.
func (h *OrderHTTP) ListItems(c echo.Context) error {
	userUID, err := auth.UserUID(c)
	if err != nil {
		return err
	}

	items, err := h.Svc.ListItems(c.Request().Context(), userUID)
	if err != nil {
		return httpError(err)
	}
	return c.JSON(http.StatusOK, transport.FromOrderItems(items))
}

// PlaceOrder binds cart items into a new order with the next sequential
// order id.
func (h *OrderHTTP) PlaceOrder(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "order.place")

	userUID, err := auth.UserUID(c)
	if err != nil {
		return err
	}

	var req transport.CreateOrderRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid body")
	}

	order, err := h.Svc.PlaceOrder(ctx, userUID, req)
	if err != nil {
		l.Warn("order_place_failed", "error", err)
		return httpError(err)
	}

	publish(c, h.Producer, events.TopicOrderEvents, order.UID.String(), map[string]any{
		"type":     "order_placed",
		"order":    order.UID.String(),
		"order_id": order.OrderID,
		"total":    order.Total().StringFixed(2),
	})

	l.Info("order_placed", "order", order.UID.String(), "order_id", order.OrderID)
	return c.JSON(http.StatusCreated, transport.FromOrder(order))
}

// ListOrders returns the active shop's orders.
func (h *OrderHTTP) ListOrders(c echo.Context) error {
	userUID, err := auth.UserUID(c)
	if err != nil {
		return err
	}

	orders, err := h.Svc.ListOrders(c.Request().Context(), userUID)
	if err != nil {
		return httpError(err)
	}
	return c.JSON(http.StatusOK, transport.FromOrders(orders))
}
