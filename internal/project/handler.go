package project

import (
	"context"
	"errors"
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"ProjectPortal/internal/auth"
)

// Handler exposes project CRUD over HTTP.
type Handler struct {
	service *Service
}

func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// Projects handles GET /api/projects with an optional statusId filter.
func (h *Handler) Projects(c echo.Context) error {
	projects, err := h.service.GetProjects(c.Request().Context())
	if err != nil {
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "Failed to load projects"})
	}

	if raw := c.QueryParam("statusId"); raw != "" {
		statusID, err := strconv.Atoi(raw)
		if err != nil {
			return c.JSON(http.StatusBadRequest, map[string]string{"error": "Invalid status id"})
		}
		filtered := make([]*Project, 0, len(projects))
		for _, p := range projects {
			if p.StatusID == statusID {
				filtered = append(filtered, p)
			}
		}
		projects = filtered
	}

	if projects == nil {
		projects = []*Project{}
	}
	return c.JSON(http.StatusOK, projects)
}

// Get handles GET /api/projects/:id.
func (h *Handler) Get(c echo.Context) error {
	project, err := h.service.GetProject(c.Request().Context(), c.Param("id"))
	if errors.Is(err, ErrProjectNotFound) {
		return c.JSON(http.StatusNotFound, map[string]string{"error": err.Error()})
	}
	if err != nil {
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "Failed to load project"})
	}
	return c.JSON(http.StatusOK, project)
}

// Add handles POST /api/projects.
func (h *Handler) Add(c echo.Context) error {
	var req AddProjectRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "Invalid request"})
	}

	if err := h.service.CreateProject(context.Background(), req, actorID(c)); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": err.Error()})
	}
	return c.JSON(http.StatusCreated, map[string]interface{}{"success": true})
}

// Edit handles POST /api/projects/update.
func (h *Handler) Edit(c echo.Context) error {
	var req EditProjectRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "Invalid request"})
	}

	err := h.service.UpdateProject(context.Background(), req, actorID(c))
	if errors.Is(err, ErrProjectNotFound) {
		return c.JSON(http.StatusNotFound, map[string]string{"error": err.Error()})
	}
	if err != nil {
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "Failed to update project"})
	}
	return c.JSON(http.StatusOK, map[string]interface{}{"success": true})
}

// Delete handles DELETE /api/projects/:id.
func (h *Handler) Delete(c echo.Context) error {
	err := h.service.DeleteProject(context.Background(), c.Param("id"))
	if errors.Is(err, ErrProjectNotFound) {
		return c.JSON(http.StatusNotFound, map[string]string{"error": err.Error()})
	}
	if err != nil {
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "Failed to delete project"})
	}
	return c.JSON(http.StatusOK, map[string]interface{}{"success": true})
}

func actorID(c echo.Context) string {
	if claims, ok := c.Get("user").(*auth.JWTClaims); ok && claims != nil {
		return claims.UserID
	}
	return ""
}
