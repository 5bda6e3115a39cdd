package notification

import (
	"context"
	"errors"
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"
)

// Handler exposes the notification directory over HTTP.
type Handler struct {
	service *Service
}

func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// Create handles POST /api/notifications. Any authenticated CRUD operation
// may also create notifications directly through the service; this endpoint
// exists for system-initiated and inter-service callers.
func (h *Handler) Create(c echo.Context) error {
	var in CreateInput
	if err := c.Bind(&in); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "Invalid request"})
	}

	// Writes run on a background context: a requester that disconnects
	// mid-flight must not abort the insert.
	_, err := h.service.Create(context.Background(), in, actorID(c))
	if errors.Is(err, ErrEmptyMessage) {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": err.Error()})
	}
	if err != nil {
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "Failed to create notification"})
	}
	return c.JSON(http.StatusCreated, map[string]interface{}{"success": true})
}

// List handles GET /api/notifications.
func (h *Handler) List(c echo.Context) error {
	limit := 0
	if raw := c.QueryParam("limit"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil {
			return c.JSON(http.StatusBadRequest, map[string]string{"error": "Invalid limit"})
		}
		limit = parsed
	}

	notifications, err := h.service.ListVisible(c.Request().Context(), actorID(c), limit)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "Failed to load notifications"})
	}
	if notifications == nil {
		notifications = []*Notification{}
	}
	return c.JSON(http.StatusOK, notifications)
}

// Dismiss handles POST /api/notifications/:id/dismiss.
func (h *Handler) Dismiss(c echo.Context) error {
	if err := h.service.Dismiss(context.Background(), c.Param("id"), actorID(c)); err != nil {
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "Failed to dismiss notification"})
	}
	return c.JSON(http.StatusOK, map[string]interface{}{"success": true})
}

// actorID resolves the acting user: JWT claims when the request came through
// the auth middleware, the userId query parameter otherwise, and the
// anonymous sentinel as the fallback.
func actorID(c echo.Context) string {
	if id, ok := c.Get("userID").(string); ok && id != "" {
		return id
	}
	if id := c.QueryParam("userId"); id != "" {
		return id
	}
	return AnonymousUserID
}
