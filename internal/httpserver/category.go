package httpserver

import (
	"net/http"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"

	"github.com/shopnet/marketplace/internal/logging"
	"github.com/shopnet/marketplace/internal/service"
	"github.com/shopnet/marketplace/internal/transport"
)

// CategoryHTTP serves the admin-only category surface.
type CategoryHTTP struct {
	Svc *service.CategoryService
}

func (h *CategoryHTTP) Create(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "category.create")

	var req transport.CategoryRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid body")
	}

	cat, err := h.Svc.CreateCategory(ctx, req)
	if err != nil {
		l.Warn("category_create_failed", "error", err)
		return httpError(err)
	}

	l.Info("category_created", "category", cat.UID.String())
	return c.JSON(http.StatusCreated, cat)
}

func (h *CategoryHTTP) List(c echo.Context) error {
	cats, err := h.Svc.ListCategories(c.Request().Context())
	if err != nil {
		return httpError(err)
	}
	return c.JSON(http.StatusOK, cats)
}

func (h *CategoryHTTP) Get(c echo.Context) error {
	uid, err := uuid.Parse(c.Param("uid"))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid uid")
	}

	cat, err := h.Svc.GetCategory(c.Request().Context(), uid)
	if err != nil {
		return httpError(err)
	}
	return c.JSON(http.StatusOK, cat)
}

func (h *CategoryHTTP) Update(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "category.update")

	uid, err := uuid.Parse(c.Param("uid"))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid uid")
	}

	var req transport.CategoryRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid body")
	}

	cat, err := h.Svc.UpdateCategory(ctx, uid, req)
	if err != nil {
		l.Warn("category_update_failed", "category", uid.String(), "error", err)
		return httpError(err)
	}

	l.Info("category_updated", "category", cat.UID.String())
	return c.JSON(http.StatusOK, cat)
}

func (h *CategoryHTTP) Delete(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "category.delete")

	uid, err := uuid.Parse(c.Param("uid"))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid uid")
	}

	if err := h.Svc.DeleteCategory(ctx, uid); err != nil {
		l.Warn("category_delete_failed", "category", uid.String(), "error", err)
		return httpError(err)
	}

	l.Info("category_deleted", "category", uid.String())
	return c.NoContent(http.StatusNoContent)
}
