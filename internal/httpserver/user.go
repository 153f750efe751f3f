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

type UserHTTP struct {
	Svc      *service.UserService
	Producer *events.Producer
}

func (h *UserHTTP) Register(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "user.register")

	var req transport.RegisterRequest
	if err := c.Bind(&req); err != nil {
		l.Warn("register_failed", "status", 400, "reason", "invalid body", "error", err)
		return echo.NewHTTPError(http.StatusBadRequest, "invalid body")
	}

	user, err := h.Svc.Register(ctx, req)
	if err != nil {
		l.Warn("register_failed", "error", err)
		return httpError(err)
	}

	publish(c, h.Producer, events.TopicUserEvents, user.UID.String(), map[string]any{
		"type":  "user_registered",
		"user":  user.UID.String(),
		"email": user.Email,
	})

	l.Info("register_success", "user", user.UID.String())
	return c.JSON(http.StatusCreated, user)
}

func (h *UserHTTP) Login(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "user.login")

	var req transport.LoginRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid body")
	}

	user, pair, err := h.Svc.Login(ctx, req)
	if err != nil {
		l.Warn("login_failed", "email", req.Email, "error", err)
		return httpError(err)
	}

	publish(c, h.Producer, events.TopicUserEvents, user.UID.String(), map[string]any{
		"type": "user_logged_in",
		"user": user.UID.String(),
	})

	l.Info("login_success", "user", user.UID.String())
	return c.JSON(http.StatusOK, pair)
}

func (h *UserHTTP) Refresh(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "user.refresh")

	var req transport.RefreshRequest
	if err := c.Bind(&req); err != nil || req.Refresh == "" {
		return echo.NewHTTPError(http.StatusBadRequest, "refresh token required")
	}

	pair, err := h.Svc.Refresh(ctx, req.Refresh)
	if err != nil {
		l.Warn("refresh_failed", "error", err)
		return httpError(err)
	}

	return c.JSON(http.StatusOK, pair)
}

func (h *UserHTTP) Me(c echo.Context) error {
	ctx := c.Request().Context()

	userUID, err := auth.UserUID(c)
	if err != nil {
		return err
	}

	user, err := h.Svc.Me(ctx, userUID)
	if err != nil {
		return httpError(err)
	}
	return c.JSON(http.StatusOK, user)
}

func (h *UserHTTP) UpdateMe(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "user.update_me")

	userUID, err := auth.UserUID(c)
	if err != nil {
		return err
	}

	var req transport.UpdateUserRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid body")
	}

	user, err := h.Svc.UpdateMe(ctx, userUID, req)
	if err != nil {
		l.Warn("update_me_failed", "error", err)
		return httpError(err)
	}

	l.Info("update_me_success", "user", user.UID.String())
	return c.JSON(http.StatusOK, user)
}
