package analysis

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"buildtrack-backend/internal/projects"
	"buildtrack-backend/internal/shared/server/respond"
)

// Handler wires HTTP handlers to the analysis services.
type Handler struct {
	Svc *SubmitService
}

// NewHandler constructs a Handler.
func NewHandler(svc *SubmitService) *Handler {
	return &Handler{Svc: svc}
}

// RegisterRoutes attaches analysis routes to the router group.
func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.POST("/projects/:id/reports", h.submitReport)
	rg.GET("/projects/:id/risk-assessment", h.riskAssessment)
	rg.GET("/projects/:id/risk-overview", h.riskOverview)
	rg.GET("/projects/:id/trends", h.trends)
	rg.GET("/projects/:id/forecast", h.forecast)
}

func (h *Handler) submitReport(c *gin.Context) {
	projectID := c.Param("id")
	if projectID == "" {
		respond.Error(c, http.StatusBadRequest, "validation_error", "project id is required", nil)
		return
	}

	var input ReportInput
	if err := c.ShouldBindJSON(&input); err != nil {
		respond.Error(c, http.StatusBadRequest, "validation_error", "invalid report body", nil)
		return
	}
	c.Set("projectId", projectID)

	report, payload, err := h.Svc.SubmitReport(c.Request.Context(), projectID, input)
	if err != nil {
		switch {
		case errors.Is(err, projects.ErrNotFound):
			respond.Error(c, http.StatusNotFound, "not_found", "project not found", nil)
		case errors.Is(err, projects.ErrDuplicateReport):
			respond.Error(c, http.StatusConflict, "duplicate_report", "a report already exists for this date", nil)
		case errors.Is(err, ErrInvalidSchedule):
			respond.Error(c, http.StatusUnprocessableEntity, "invalid_schedule", "project schedule is malformed", nil)
		default:
			respond.Error(c, http.StatusInternalServerError, "internal_error", "failed to submit report", nil)
		}
		return
	}
	c.Set("reportId", report.ID)

	respond.JSON(c, http.StatusCreated, gin.H{
		"report":   report,
		"analysis": payload,
	})
}

func (h *Handler) riskAssessment(c *gin.Context) {
	snapshot, err := h.Svc.RiskSnapshot(c.Request.Context(), c.Param("id"))
	if err != nil {
		h.respondLoadError(c, err)
		return
	}
	respond.OK(c, snapshot)
}

func (h *Handler) riskOverview(c *gin.Context) {
	assessment, err := h.Svc.RiskOverview(c.Request.Context(), c.Param("id"))
	if err != nil {
		h.respondLoadError(c, err)
		return
	}
	respond.OK(c, assessment)
}

func (h *Handler) trends(c *gin.Context) {
	trends, err := h.Svc.ProjectTrends(c.Request.Context(), c.Param("id"))
	if err != nil {
		h.respondLoadError(c, err)
		return
	}
	respond.OK(c, trends)
}

func (h *Handler) forecast(c *gin.Context) {
	forecast, err := h.Svc.ProjectForecast(c.Request.Context(), c.Param("id"))
	if err != nil {
		h.respondLoadError(c, err)
		return
	}
	respond.OK(c, forecast)
}

func (h *Handler) respondLoadError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, projects.ErrNotFound):
		respond.Error(c, http.StatusNotFound, "not_found", "project not found", nil)
	case errors.Is(err, ErrInvalidSchedule):
		respond.Error(c, http.StatusUnprocessableEntity, "invalid_schedule", "project schedule is malformed", nil)
	default:
		respond.Error(c, http.StatusInternalServerError, "internal_error", "failed to compute analysis", nil)
	}
}
