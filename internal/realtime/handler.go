package realtime

import (
	"net/http"
	"strings"

	"github.com/gorilla/websocket"
	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"ProjectPortal/internal/auth"
	"ProjectPortal/internal/notification"
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	// The feed carries no sensitive payload beyond what GET /api/notifications
	// already returns, and the browser connects cross-origin in development.
	CheckOrigin: func(r *http.Request) bool { return true },
}

// Handler upgrades HTTP requests to WebSocket connections and hands them to
// the hub.
type Handler struct {
	hub    *Hub
	logger *zap.Logger
}

func NewHandler(hub *Hub, logger *zap.Logger) *Handler {
	return &Handler{hub: hub, logger: logger}
}

// Serve handles GET /ws. The connection is tagged with the user identity
// from the JWT when one is presented (query parameter or Authorization
// header); anonymous connections still receive global broadcasts.
func (h *Handler) Serve(c echo.Context) error {
	userID := resolveUserID(c)

	conn, err := upgrader.Upgrade(c.Response(), c.Request(), nil)
	if err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "WebSocket upgrade failed"})
	}

	client := NewClient(conn, userID)
	h.hub.Register(client)
	h.logger.Info("WebSocket connected", zap.String("user_id", userID))

	go client.writePump()
	client.readPump(h.hub)

	h.logger.Info("WebSocket disconnected", zap.String("user_id", userID))
	return nil
}

func resolveUserID(c echo.Context) string {
	token := c.QueryParam("token")
	if token == "" {
		authHeader := c.Request().Header.Get("Authorization")
		token = strings.TrimSpace(strings.TrimPrefix(authHeader, "Bearer "))
	}
	if token == "" {
		return notification.AnonymousUserID
	}

	claims, err := auth.ValidateJWT(token)
	if err != nil {
		return notification.AnonymousUserID
	}
	return claims.UserID
}
