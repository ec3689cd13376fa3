package handler

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/nutrilens/nutrilens-backend/internal/service"
	"github.com/nutrilens/nutrilens-backend/pkg/model"
	"go.uber.org/zap"
)

// StatsHandler exposes today's record: the hydration counter and the diary
type StatsHandler struct {
	stats    *service.DailyStatsService
	profiles *service.ProfileService
	logger   *zap.Logger
}

// NewStatsHandler creates a new StatsHandler
func NewStatsHandler(stats *service.DailyStatsService, profiles *service.ProfileService, logger *zap.Logger) *StatsHandler {
	return &StatsHandler{
		stats:    stats,
		profiles: profiles,
		logger:   logger,
	}
}

// AddWater increments the water counter by one glass, clamped at the cap.
// Tapping past the cap is not an error; the counter simply stays put.
func (h *StatsHandler) AddWater(c *gin.Context) {
	stats, err := h.stats.AddWater(c.Request.Context())
	if err != nil {
		h.logger.Error("failed to add water", zap.Error(err))
		c.JSON(http.StatusInternalServerError, ErrorResponse{
			Code:    "INTERNAL_ERROR",
			Message: "Failed to update water intake",
			Details: stringPtr(err.Error()),
		})
		return
	}

	h.respondWithSummary(c, stats)
}

// RemoveWater decrements the water counter by one glass, clamped at zero.
func (h *StatsHandler) RemoveWater(c *gin.Context) {
	stats, err := h.stats.RemoveWater(c.Request.Context())
	if err != nil {
		h.logger.Error("failed to remove water", zap.Error(err))
		c.JSON(http.StatusInternalServerError, ErrorResponse{
			Code:    "INTERNAL_ERROR",
			Message: "Failed to update water intake",
			Details: stringPtr(err.Error()),
		})
		return
	}

	h.respondWithSummary(c, stats)
}

// GetItems returns today's diary: every item logged today in chronological
// order, alongside the derived totals.
func (h *StatsHandler) GetItems(c *gin.Context) {
	stats, err := h.stats.LoadOrInitialize(c.Request.Context())
	if err != nil {
		h.logger.Error("failed to load daily stats", zap.Error(err))
		c.JSON(http.StatusInternalServerError, ErrorResponse{
			Code:    "INTERNAL_ERROR",
			Message: "Failed to load today's diary",
			Details: stringPtr(err.Error()),
		})
		return
	}

	h.respondWithSummary(c, stats)
}

// LogItem appends a manually entered food item to today's diary. Gaps are
// zero-filled the same way a confirmed scan is.
func (h *StatsHandler) LogItem(c *gin.Context) {
	var item model.FoodItem
	if err := c.ShouldBindJSON(&item); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{
			Code:    "INVALID_REQUEST",
			Message: "Invalid food item",
			Details: stringPtr(err.Error()),
		})
		return
	}

	now := time.Now()
	if item.ID == "" {
		item.ID = strconv.FormatInt(now.UnixMilli(), 10)
	}
	if item.Timestamp == 0 {
		item.Timestamp = now.UnixMilli()
	}
	if item.Name == "" {
		item.Name = "Unknown Food"
	}
	if item.Ingredients == nil {
		item.Ingredients = []string{}
	}

	stats, err := h.stats.LogItem(c.Request.Context(), item)
	if err != nil {
		h.logger.Error("failed to log food item", zap.Error(err))
		c.JSON(http.StatusInternalServerError, ErrorResponse{
			Code:    "INTERNAL_ERROR",
			Message: "Failed to log the food item",
			Details: stringPtr(err.Error()),
		})
		return
	}

	h.respondWithSummary(c, stats)
}

func (h *StatsHandler) respondWithSummary(c *gin.Context, stats model.DailyStats) {
	profile, err := h.profiles.LoadOrDefault(c.Request.Context())
	if err != nil {
		h.logger.Error("failed to load profile for summary", zap.Error(err))
		c.JSON(http.StatusInternalServerError, ErrorResponse{
			Code:    "INTERNAL_ERROR",
			Message: "Failed to load profile",
			Details: stringPtr(err.Error()),
		})
		return
	}

	c.JSON(http.StatusOK, service.Summarize(stats, profile))
}
