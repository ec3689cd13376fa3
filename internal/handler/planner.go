package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/nutrilens/nutrilens-backend/internal/service"
	"go.uber.org/zap"
)

// PlannerHandler serves generated meal plans. Plans are ephemeral: generated
// per request and never persisted, so both endpoints are plain GETs.
type PlannerHandler struct {
	planner *service.PlannerService
	logger  *zap.Logger
}

// NewPlannerHandler creates a new PlannerHandler
func NewPlannerHandler(planner *service.PlannerService, logger *zap.Logger) *PlannerHandler {
	return &PlannerHandler{
		planner: planner,
		logger:  logger,
	}
}

// GetDailyPlan generates a one-day plan for the user's goal. Generation
// failures surface; the user retries manually.
func (h *PlannerHandler) GetDailyPlan(c *gin.Context) {
	plan, err := h.planner.Daily(c.Request.Context())
	if err != nil {
		h.logger.Error("daily meal plan generation failed", zap.Error(err))
		c.JSON(http.StatusBadGateway, ErrorResponse{
			Code:    "PLAN_FAILED",
			Message: "Failed to generate a daily meal plan",
			Details: stringPtr(err.Error()),
		})
		return
	}

	c.JSON(http.StatusOK, plan)
}

// GetWeeklyPlan generates a seven-day plan
func (h *PlannerHandler) GetWeeklyPlan(c *gin.Context) {
	plan, err := h.planner.Weekly(c.Request.Context())
	if err != nil {
		h.logger.Error("weekly meal plan generation failed", zap.Error(err))
		c.JSON(http.StatusBadGateway, ErrorResponse{
			Code:    "PLAN_FAILED",
			Message: "Failed to generate a weekly meal plan",
			Details: stringPtr(err.Error()),
		})
		return
	}

	c.JSON(http.StatusOK, plan)
}
