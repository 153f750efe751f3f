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

type GroupingHTTP struct {
	Svc      *service.GroupingService
	Producer *events.Producer
}

func (h *GroupingHTTP) Create(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "grouping.create")

	userUID, err := auth.UserUID(c)
	if err != nil {
		return err
	}

	var req transport.CreateGroupingRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid body")
	}

	group, err := h.Svc.SendRequest(ctx, userUID, req)
	if err != nil {
		l.Warn("grouping_create_failed", "error", err)
		return httpError(err)
	}

	publish(c, h.Producer, events.TopicShopEvents, group.UID.String(), map[string]any{
		"type":     "grouping_requested",
		"request":  group.UID.String(),
		"sender":   group.Sender.UID.String(),
		"receiver": group.Receiver.UID.String(),
	})

	l.Info("grouping_created", "request", group.UID.String())
	return c.JSON(http.StatusCreated, transport.FromGroup(group))
}

// Incoming lists pending requests addressed to the active shop.
func (h *GroupingHTTP) Incoming(c echo.Context) error {
	userUID, err := auth.UserUID(c)
	if err != nil {
		return err
	}

	groups, err := h.Svc.IncomingRequests(c.Request().Context(), userUID)
	if err != nil {
		return httpError(err)
	}
	return c.JSON(http.StatusOK, transport.FromGroups(groups))
}

// Outgoing lists pending requests the active shop has sent.
func (h *GroupingHTTP) Outgoing(c echo.Context) error {
	userUID, err := auth.UserUID(c)
	if err != nil {
		return err
	}

	groups, err := h.Svc.OutgoingRequests(c.Request().Context(), userUID)
	if err != nil {
		return httpError(err)
	}
	return c.JSON(http.StatusOK, transport.FromGroups(groups))
}

// Friends lists the counterpart shop of every accepted edge.
func (h *GroupingHTTP) Friends(c echo.Context) error {
	userUID, err := auth.UserUID(c)
	if err != nil {
		return err
	}

	shops, err := h.Svc.Friends(c.Request().Context(), userUID)
	if err != nil {
		return httpError(err)
	}
	return c.JSON(http.StatusOK, transport.FromShops(shops))
}

func (h *GroupingHTTP) Get(c echo.Context) error {
	userUID, err := auth.UserUID(c)
	if err != nil {
		return err
	}
	uid, err := uuid.Parse(c.Param("uid"))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid uid")
	}

	group, err := h.Svc.GetRequest(c.Request().Context(), userUID, uid)
	if err != nil {
		return httpError(err)
	}
	return c.JSON(http.StatusOK, transport.FromGroup(group))
}

func (h *GroupingHTTP) Update(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "grouping.update")

	userUID, err := auth.UserUID(c)
	if err != nil {
		return err
	}
	uid, err := uuid.Parse(c.Param("uid"))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid uid")
	}

	var req transport.PatchGroupingRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid body")
	}

	group, err := h.Svc.UpdateStatus(ctx, userUID, uid, req)
	if err != nil {
		l.Warn("grouping_update_failed", "request", uid.String(), "error", err)
		return httpError(err)
	}

	publish(c, h.Producer, events.TopicShopEvents, group.UID.String(), map[string]any{
		"type":    "grouping_decided",
		"request": group.UID.String(),
		"status":  group.Status,
	})

	l.Info("grouping_updated", "request", group.UID.String(), "status", group.Status)
	return c.JSON(http.StatusOK, transport.FromGroup(group))
}

func (h *GroupingHTTP) Delete(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "grouping.delete")

	userUID, err := auth.UserUID(c)
	if err != nil {
		return err
	}
	uid, err := uuid.Parse(c.Param("uid"))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid uid")
	}

	if err := h.Svc.DeleteRequest(ctx, userUID, uid); err != nil {
		l.Warn("grouping_delete_failed", "request", uid.String(), "error", err)
		return httpError(err)
	}

	l.Info("grouping_deleted", "request", uid.String())
	return c.NoContent(http.StatusNoContent)
}
