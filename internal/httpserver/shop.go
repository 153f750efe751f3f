package httpserver

import (
	"net/http"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"

	"github.com/shopnet/marketplace/internal/events"
	"github.com/shopnet/marketplace/internal/logging"
	"github.com/shopnet/marketplace/internal/middleware/auth"
	"github.com/shopnet/marketplace/internal/service"
	"github.com/shopnet/marketplace/internal/transport"
)

type ShopHTTP struct {
	Svc      *service.ShopService
	Producer *events.Producer
}

func (h *ShopHTTP) Create(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "shop.create")

	userUID, err := auth.UserUID(c)
	if err != nil {
		return err
	}

	var req transport.CreateShopRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid body")
	}

	shop, err := h.Svc.CreateShop(ctx, userUID, req)
	if err != nil {
		l.Warn("shop_create_failed", "error", err)
		return httpError(err)
	}

	publish(c, h.Producer, events.TopicShopEvents, shop.UID.String(), map[string]any{
		"type": "shop_created",
		"shop": shop.UID.String(),
		"user": userUID.String(),
	})

	l.Info("shop_created", "shop", shop.UID.String())
	return c.JSON(http.StatusCreated, transport.FromShop(shop))
}

// List returns the caller's own shops.
func (h *ShopHTTP) List(c echo.Context) error {
	userUID, err := auth.UserUID(c)
	if err != nil {
		return err
	}

	shops, err := h.Svc.ListShops(c.Request().Context(), userUID)
	if err != nil {
		return httpError(err)
	}
	return c.JSON(http.StatusOK, transport.FromShops(shops))
}

func (h *ShopHTTP) Get(c echo.Context) error {
	uid, err := uuid.Parse(c.Param("uid"))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid uid")
	}

	shop, err := h.Svc.GetShop(c.Request().Context(), uid)
	if err != nil {
		return httpError(err)
	}
	return c.JSON(http.StatusOK, transport.FromShop(shop))
}

func (h *ShopHTTP) Update(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "shop.update")

	userUID, err := auth.UserUID(c)
	if err != nil {
		return err
	}
	uid, err := uuid.Parse(c.Param("uid"))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid uid")
	}

	var req transport.PatchShopRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid body")
	}

	shop, err := h.Svc.UpdateShop(ctx, userUID, uid, req)
	if err != nil {
		l.Warn("shop_update_failed", "shop", uid.String(), "error", err)
		return httpError(err)
	}

	l.Info("shop_updated", "shop", shop.UID.String())
	return c.JSON(http.StatusOK, transport.FromShop(shop))
}

func (h *ShopHTTP) Delete(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "shop.delete")

	userUID, err := auth.UserUID(c)
	if err != nil {
		return err
	}
	uid, err := uuid.Parse(c.Param("uid"))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid uid")
	}

	if err := h.Svc.DeleteShop(ctx, userUID, uid); err != nil {
		l.Warn("shop_delete_failed", "shop", uid.String(), "error", err)
		return httpError(err)
	}

	publish(c, h.Producer, events.TopicShopEvents, uid.String(), map[string]any{
		"type": "shop_deleted",
		"shop": uid.String(),
	})

	l.Info("shop_deleted", "shop", uid.String())
	return c.NoContent(http.StatusNoContent)
}

// LoginShop switches the caller's active shop to the one named.
func (h *ShopHTTP) LoginShop(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "shop.login_shop")

	userUID, err := auth.UserUID(c)
	if err != nil {
		return err
	}
	uid, err := uuid.Parse(c.Param("uid"))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid uid")
	}

	shop, err := h.Svc.LoginShop(ctx, userUID, uid)
	if err != nil {
		l.Warn("login_shop_failed", "shop", uid.String(), "error", err)
		return httpError(err)
	}

	publish(c, h.Producer, events.TopicShopEvents, shop.UID.String(), map[string]any{
		"type": "shop_switched",
		"shop": shop.UID.String(),
		"user": userUID.String(),
	})

	l.Info("login_shop_success", "shop", shop.UID.String())
	return c.JSON(http.StatusOK, transport.FromShop(shop))
}

// Find lists shops sharing the active shop's category.
func (h *ShopHTTP) Find(c echo.Context) error {
	userUID, err := auth.UserUID(c)
	if err != nil {
		return err
	}

	shops, err := h.Svc.FindShops(c.Request().Context(), userUID)
	if err != nil {
		return httpError(err)
	}
	return c.JSON(http.StatusOK, transport.FromShops(shops))
}
