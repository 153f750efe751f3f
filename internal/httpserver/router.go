package httpserver

import (
	"log/slog"
	"net/http"

	"github.com/labstack/echo/v4"
	echomw "github.com/labstack/echo/v4/middleware"

	"github.com/shopnet/marketplace/internal/events"
	"github.com/shopnet/marketplace/internal/logging"
	"github.com/shopnet/marketplace/internal/middleware/auth"
	"github.com/shopnet/marketplace/internal/search"
	"github.com/shopnet/marketplace/internal/service"
)

// Deps carries everything the HTTP layer needs.
type Deps struct {
	Logger    *slog.Logger
	JWTSecret []byte

	Users      *service.UserService
	Categories *service.CategoryService
	Shops      *service.ShopService
	Groupings  *service.GroupingService
	Products   *service.ProductService
	Orders     *service.OrderService

	Producer *events.Producer
	Index    *search.ProductIndex
}

// Register wires middleware and the full route surface onto e.
func Register(e *echo.Echo, deps Deps) {
	e.Use(echomw.Recover())
	e.Use(echomw.RequestID())
	e.Pre(echomw.RemoveTrailingSlash())
	e.Use(requestLogger(deps.Logger))

	e.GET("/healthz", func(c echo.Context) error {
		return c.JSON(http.StatusOK, map[string]string{"status": "ok"})
	})
	e.GET("/readyz", func(c echo.Context) error {
		return c.JSON(http.StatusOK, map[string]string{"status": "ready"})
	})

	guard := auth.New(deps.JWTSecret)

	userH := &UserHTTP{Svc: deps.Users, Producer: deps.Producer}
	catH := &CategoryHTTP{Svc: deps.Categories}
	shopH := &ShopHTTP{Svc: deps.Shops, Producer: deps.Producer}
	groupH := &GroupingHTTP{Svc: deps.Groupings, Producer: deps.Producer}
	prodH := &ProductHTTP{Svc: deps.Products, Index: deps.Index, Producer: deps.Producer}
	orderH := &OrderHTTP{Svc: deps.Orders, Producer: deps.Producer}

	user := e.Group("/user")
	user.POST("/register", userH.Register)
	user.POST("/login", userH.Login)
	user.POST("/token/refresh", userH.Refresh)
	user.GET("/me", userH.Me, guard.RequireAuth)
	user.PATCH("/me", userH.UpdateMe, guard.RequireAuth)

	store := e.Group("/store", guard.RequireAuth)

	store.GET("/category-list", catH.List, guard.RequireAdmin)
	store.POST("/category-list", catH.Create, guard.RequireAdmin)
	store.GET("/category-detail/:uid", catH.Get, guard.RequireAdmin)
	store.PUT("/category-detail/:uid", catH.Update, guard.RequireAdmin)
	store.DELETE("/category-detail/:uid", catH.Delete, guard.RequireAdmin)

	store.GET("/shop-list", shopH.List)
	store.POST("/shop-list", shopH.Create)
	store.GET("/shop-detail/:uid", shopH.Get)
	store.PUT("/shop-detail/:uid", shopH.Update)
	store.PATCH("/shop-detail/:uid", shopH.Update)
	store.DELETE("/shop-detail/:uid", shopH.Delete)
	store.PATCH("/login-shop/:uid", shopH.LoginShop)
	store.GET("/find-shop", shopH.Find)

	store.POST("/grouping-request", groupH.Create)
	store.GET("/grouping-request", groupH.Incoming)
	store.GET("/my-requests", groupH.Outgoing)
	store.GET("/friend-shop-list", groupH.Friends)
	store.GET("/grouping-request-detail/:uid", groupH.Get)
	store.PATCH("/grouping-request-detail/:uid", groupH.Update)
	store.DELETE("/grouping-request-detail/:uid", groupH.Delete)

	store.GET("/product-list", prodH.List)
	store.POST("/product-list", prodH.Create)
	store.GET("/product-detail/:slug", prodH.Get)
	store.PATCH("/product-detail/:slug", prodH.Update)
	store.DELETE("/product-detail/:slug", prodH.Delete)
	store.GET("/find-product", prodH.Find)
	store.GET("/search-product", prodH.Search)

	order := e.Group("/order", guard.RequireAuth)
	order.GET("/orderItem-list", orderH.ListItems)
	order.POST("/orderItem-list", orderH.AddItem)
	order.GET("/order", orderH.ListOrders)
	order.POST("/order", orderH.PlaceOrder)
}

// requestLogger threads a request-scoped logger through the context so
// handlers and services can pick it up with logging.FromContext.
func requestLogger(base *slog.Logger) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			if base == nil {
				return next(c)
			}
			reqID := c.Response().Header().Get(echo.HeaderXRequestID)
			l := base.With(
				"request_id", reqID,
				"method", c.Request().Method,
				"path", c.Request().URL.Path,
			)
			ctx := logging.IntoContext(c.Request().Context(), l)
			c.SetRequest(c.Request().WithContext(ctx))
			return next(c)
		}
	}
}
