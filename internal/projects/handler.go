package projects

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"buildtrack-backend/internal/shared/server/respond"
)

// Handler wires HTTP handlers to the projects service.
type Handler struct {
	Svc *Service
}

// NewHandler constructs a Handler.
func NewHandler(svc *Service) *Handler {
	return &Handler{Svc: svc}
}

// RegisterRoutes attaches project routes to the router group.
func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.POST("/projects", h.createProject)
	rg.GET("/projects", h.listProjects)
	rg.GET("/projects/:id", h.getProject)
	rg.GET("/projects/:id/reports", h.listReports)
}

func (h *Handler) createProject(c *gin.Context) {
	var input CreateProjectInput
	if err := c.ShouldBindJSON(&input); err != nil {
		respond.Error(c, http.StatusBadRequest, "validation_error", "invalid project body", nil)
		return
	}

	project, err := h.Svc.Create(c.Request.Context(), input)
	if err != nil {
		switch {
		case errors.Is(err, ErrInvalidSchedule):
			respond.Error(c, http.StatusUnprocessableEntity, "invalid_schedule", "end date must be after start date", nil)
		default:
			respond.Error(c, http.StatusBadRequest, "validation_error", err.Error(), nil)
		}
		return
	}
	c.Set("projectId", project.ID)

	respond.JSON(c, http.StatusCreated, project)
}

func (h *Handler) getProject(c *gin.Context) {
	project, err := h.Svc.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		h.respondLoadError(c, err)
		return
	}
	respond.OK(c, project)
}

func (h *Handler) listProjects(c *gin.Context) {
	list, err := h.Svc.List(c.Request.Context())
	if err != nil {
		respond.Error(c, http.StatusInternalServerError, "internal_error", "failed to list projects", nil)
		return
	}
	respond.OK(c, gin.H{"projects": list})
}

func (h *Handler) listReports(c *gin.Context) {
	reports, err := h.Svc.Reports(c.Request.Context(), c.Param("id"))
	if err != nil {
		h.respondLoadError(c, err)
		return
	}
	respond.OK(c, gin.H{"reports": reports})
}

func (h *Handler) respondLoadError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, ErrNotFound):
		respond.Error(c, http.StatusNotFound, "not_found", "project not found", nil)
	default:
		respond.Error(c, http.StatusInternalServerError, "internal_error", "failed to load project", nil)
	}
}
