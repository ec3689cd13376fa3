package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/nutrilens/nutrilens-backend/internal/service"
	"go.uber.org/zap"
)

// DashboardHandler serves the dashboard view payload
type DashboardHandler struct {
	dashboard *service.DashboardService
	sessions  *service.SessionService
	logger    *zap.Logger
}

// NewDashboardHandler creates a new DashboardHandler
func NewDashboardHandler(dashboard *service.DashboardService, sessions *service.SessionService, logger *zap.Logger) *DashboardHandler {
	return &DashboardHandler{
		dashboard: dashboard,
		sessions:  sessions,
		logger:    logger,
	}
}

// GetSummary returns today's record with every derived figure and the daily
// insight. The insight never fails; a store failure does.
func (h *DashboardHandler) GetSummary(c *gin.Context) {
	summary, err := h.dashboard.Summary(c.Request.Context(), h.sessions)
	if err != nil {
		h.logger.Error("failed to assemble dashboard summary", zap.Error(err))
		c.JSON(http.StatusInternalServerError, ErrorResponse{
			Code:    "INTERNAL_ERROR",
			Message: "Failed to load dashboard",
			Details: stringPtr(err.Error()),
		})
		return
	}

	c.JSON(http.StatusOK, summary)
}
