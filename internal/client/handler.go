package client

import (
	"context"
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	"ProjectPortal/internal/auth"
)

// Handler exposes client CRUD over HTTP.
type Handler struct {
	service *Service
}

func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// Clients handles GET /api/clients.
func (h *Handler) Clients(c echo.Context) error {
	clients, err := h.service.GetClients(c.Request().Context())
	if err != nil {
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "Failed to load clients"})
	}
	if clients == nil {
		clients = []*Client{}
	}
	return c.JSON(http.StatusOK, clients)
}

// Get handles GET /api/clients/:id.
func (h *Handler) Get(c echo.Context) error {
	cl, err := h.service.GetClient(c.Request().Context(), c.Param("id"))
	if errors.Is(err, ErrClientNotFound) {
		return c.JSON(http.StatusNotFound, map[string]string{"error": err.Error()})
	}
	if err != nil {
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "Failed to load client"})
	}
	return c.JSON(http.StatusOK, cl)
}

// Add handles POST /api/clients.
func (h *Handler) Add(c echo.Context) error {
	var req AddClientRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "Invalid request"})
	}

	if err := h.service.CreateClient(context.Background(), req, actorID(c)); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": err.Error()})
	}
	return c.JSON(http.StatusCreated, map[string]interface{}{"success": true})
}

// Edit handles POST /api/clients/update.
func (h *Handler) Edit(c echo.Context) error {
	var req EditClientRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "Invalid request"})
	}

	err := h.service.UpdateClient(context.Background(), req)
	if errors.Is(err, ErrClientNotFound) {
		return c.JSON(http.StatusNotFound, map[string]string{"error": err.Error()})
	}
	if err != nil {
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "Failed to update client"})
	}
	return c.JSON(http.StatusOK, map[string]interface{}{"success": true})
}

// Delete handles DELETE /api/clients/:id.
func (h *Handler) Delete(c echo.Context) error {
	err := h.service.DeleteClient(context.Background(), c.Param("id"))
	if errors.Is(err, ErrClientNotFound) {
		return c.JSON(http.StatusNotFound, map[string]string{"error": err.Error()})
	}
	if err != nil {
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "Failed to delete client"})
	}
	return c.JSON(http.StatusOK, map[string]interface{}{"success": true})
}

func actorID(c echo.Context) string {
	if claims, ok := c.Get("user").(*auth.JWTClaims); ok && claims != nil {
		return claims.UserID
	}
	return ""
}
