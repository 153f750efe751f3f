package httpserver

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/shopnet/marketplace/internal/events"
	"github.com/shopnet/marketplace/internal/logging"
	"github.com/shopnet/marketplace/internal/middleware/auth"
	"github.com/shopnet/marketplace/internal/search"
	"github.com/shopnet/marketplace/internal/service"
	"github.com/shopnet/marketplace/internal/transport"
)

type ProductHTTP struct {
	Svc      *service.ProductService
	Index    *search.ProductIndex
	Producer *events.Producer
}

func (h *ProductHTTP) Create(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "product.create")

	userUID, err := auth.UserUID(c)
	if err != nil {
		return err
	}

	var req transport.CreateProductRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid body")
	}

	product, err := h.Svc.CreateProduct(ctx, userUID, req)
	if err != nil {
		l.Warn("product_create_failed", "error", err)
		return httpError(err)
	}

	h.index(c, product.UID.String(), func() error { return h.Index.IndexProduct(ctx, product) })

	publish(c, h.Producer, events.TopicShopEvents, product.UID.String(), map[string]any{
		"type":    "product_created",
		"product": product.UID.String(),
		"shop":    product.Shop.UID.String(),
	})

	l.Info("product_created", "product", product.UID.String(), "slug", product.Slug)
	return c.JSON(http.StatusCreated, transport.FromProduct(product))
}

// List returns the active shop's own products.
func (h *ProductHTTP) List(c echo.Context) error {
	userUID, err := auth.UserUID(c)
	if err != nil {
		return err
	}

	products, err := h.Svc.ListProducts(c.Request().Context(), userUID)
	if err != nil {
		return httpError(err)
	}
	return c.JSON(http.StatusOK, transport.FromProducts(products))
}

func (h *ProductHTTP) Get(c echo.Context) error {
	product, err := h.Svc.GetProduct(c.Request().Context(), c.Param("slug"))
	if err != nil {
		return httpError(err)
	}
	return c.JSON(http.StatusOK, transport.FromProduct(product))
}

func (h *ProductHTTP) Update(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "product.update")

	userUID, err := auth.UserUID(c)
	if err != nil {
		return err
	}

	var req transport.PatchProductRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid body")
	}

	product, err := h.Svc.PatchProduct(ctx, userUID, c.Param("slug"), req)
	if err != nil {
		l.Warn("product_update_failed", "slug", c.Param("slug"), "error", err)
		return httpError(err)
	}

	h.index(c, product.UID.String(), func() error { return h.Index.IndexProduct(ctx, product) })

	l.Info("product_updated", "product", product.UID.String(), "slug", product.Slug)
	return c.JSON(http.StatusOK, transport.FromProduct(product))
}

func (h *ProductHTTP) Delete(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "product.delete")

	userUID, err := auth.UserUID(c)
	if err != nil {
		return err
	}

	product, err := h.Svc.DeleteProduct(ctx, userUID, c.Param("slug"))
	if err != nil {
		l.Warn("product_delete_failed", "slug", c.Param("slug"), "error", err)
		return httpError(err)
	}

	h.index(c, product.UID.String(), func() error { return h.Index.DeleteProduct(ctx, product.UID.String()) })

	l.Info("product_deleted", "product", product.UID.String())
	return c.NoContent(http.StatusNoContent)
}

// Find lists the products of every friend shop.
func (h *ProductHTTP) Find(c echo.Context) error {
	userUID, err := auth.UserUID(c)
	if err != nil {
		return err
	}

	products, err := h.Svc.FindProducts(c.Request().Context(), userUID)
	if err != nil {
		return httpError(err)
	}
	return c.JSON(http.StatusOK, transport.FromProducts(products))
}

// Search runs a full-text query against the product index. Returns 503
// when no search backend is configured.
func (h *ProductHTTP) Search(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "product.search")

	query := c.QueryParam("q")
	if query == "" {
		return echo.NewHTTPError(http.StatusBadRequest, "q is required")
	}
	from, _ := strconv.Atoi(c.QueryParam("from"))
	size, _ := strconv.Atoi(c.QueryParam("size"))
	if size <= 0 || size > 100 {
		size = 20
	}

	total, docs, err := h.Index.SearchProducts(ctx, query, from, size)
	if err != nil {
		if errors.Is(err, search.ErrDisabled) {
			return echo.NewHTTPError(http.StatusServiceUnavailable, "search is not available")
		}
		l.Error("product_search_failed", "query", query, "error", err)
		return httpError(err)
	}

	return c.JSON(http.StatusOK, map[string]any{
		"total":   total,
		"results": docs,
	})
}

// index mirrors a mutation into the search index without failing the
// request.
func (h *ProductHTTP) index(c echo.Context, uid string, fn func() error) {
	if err := fn(); err != nil && !errors.Is(err, search.ErrDisabled) {
		logging.FromContext(c.Request().Context()).Error("product_index_failed",
			"product", uid, "error", err)
	}
}
