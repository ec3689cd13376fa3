package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/nutrilens/nutrilens-backend/internal/service"
	"github.com/nutrilens/nutrilens-backend/pkg/model"
	"go.uber.org/zap"
)

// NavigationHandler exposes the active view
type NavigationHandler struct {
	navigator *service.Navigator
	logger    *zap.Logger
}

// NewNavigationHandler creates a new NavigationHandler
func NewNavigationHandler(navigator *service.Navigator, logger *zap.Logger) *NavigationHandler {
	return &NavigationHandler{
		navigator: navigator,
		logger:    logger,
	}
}

// GetView returns the currently active view
func (h *NavigationHandler) GetView(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"view": h.navigator.Current()})
}

// SetViewRequest names the view to switch to
type SetViewRequest struct {
	View model.AppView `json:"view" binding:"required"`
}

// SetView switches the active view. Every view is reachable from every view;
// the only failure is a name that is not a view at all.
func (h *NavigationHandler) SetView(c *gin.Context) {
	var req SetViewRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{
			Code:    "INVALID_REQUEST",
			Message: "Invalid view request",
			Details: stringPtr(err.Error()),
		})
		return
	}

	if err := h.navigator.NavigateTo(req.View); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{
			Code:    "INVALID_VIEW",
			Message: "Unknown view",
			Details: stringPtr(err.Error()),
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{"view": h.navigator.Current()})
}
