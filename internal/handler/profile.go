package handler

import (
	"encoding/json"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/nutrilens/nutrilens-backend/internal/audit"
	"github.com/nutrilens/nutrilens-backend/internal/service"
	"github.com/nutrilens/nutrilens-backend/pkg/model"
	"go.uber.org/zap"
)

// ProfileHandler exposes the profile record and the full reset
type ProfileHandler struct {
	profiles  *service.ProfileService
	chat      *service.ChatService
	navigator *service.Navigator
	audit     *audit.Logger
	logger    *zap.Logger
}

// NewProfileHandler creates a new ProfileHandler
func NewProfileHandler(
	profiles *service.ProfileService,
	chat *service.ChatService,
	navigator *service.Navigator,
	auditLogger *audit.Logger,
	logger *zap.Logger,
) *ProfileHandler {
	return &ProfileHandler{
		profiles:  profiles,
		chat:      chat,
		navigator: navigator,
		audit:     auditLogger,
		logger:    logger,
	}
}

// GetProfile returns the stored profile, or the factory defaults when nothing
// has been saved yet.
func (h *ProfileHandler) GetProfile(c *gin.Context) {
	profile, err := h.profiles.LoadOrDefault(c.Request.Context())
	if err != nil {
		h.logger.Error("failed to load profile", zap.Error(err))
		c.JSON(http.StatusInternalServerError, ErrorResponse{
			Code:    "INTERNAL_ERROR",
			Message: "Failed to load profile",
			Details: stringPtr(err.Error()),
		})
		return
	}

	c.JSON(http.StatusOK, profile)
}

// UpdateFieldRequest is a single keyed profile update
type UpdateFieldRequest struct {
	Field string          `json:"field" binding:"required"`
	Value json.RawMessage `json:"value" binding:"required"`
}

// UpdateField applies one keyed update to the profile. The field set is
// closed: unknown names and malformed values are rejected with nothing
// written.
func (h *ProfileHandler) UpdateField(c *gin.Context) {
	var req UpdateFieldRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{
			Code:    "INVALID_REQUEST",
			Message: "Invalid profile update",
			Details: stringPtr(err.Error()),
		})
		return
	}

	profile, err := h.profiles.UpdateField(c.Request.Context(), req.Field, req.Value)
	if err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{
			Code:    "INVALID_FIELD",
			Message: "Profile update rejected",
			Details: stringPtr(err.Error()),
		})
		return
	}

	c.JSON(http.StatusOK, profile)
}

// ResetRequest guards the full reset behind an explicit confirmation
type ResetRequest struct {
	Confirm bool `json:"confirm"`
}

// Reset wipes every persisted document and the in-memory conversation, then
// lands the user back on the dashboard. Irreversible, so the request must
// carry confirm:true.
func (h *ProfileHandler) Reset(c *gin.Context) {
	var req ResetRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{
			Code:    "INVALID_REQUEST",
			Message: "Invalid reset request",
			Details: stringPtr(err.Error()),
		})
		return
	}

	if !req.Confirm {
		c.JSON(http.StatusBadRequest, ErrorResponse{
			Code:    "CONFIRMATION_REQUIRED",
			Message: "Reset requires explicit confirmation",
		})
		return
	}

	if err := h.profiles.ResetAll(c.Request.Context()); err != nil {
		h.logger.Error("full reset failed", zap.Error(err))
		c.JSON(http.StatusInternalServerError, ErrorResponse{
			Code:    "INTERNAL_ERROR",
			Message: "Failed to reset data",
			Details: stringPtr(err.Error()),
		})
		return
	}

	h.chat.Clear()
	if err := h.navigator.NavigateTo(model.ViewDashboard); err != nil {
		h.logger.Error("failed to reset view", zap.Error(err))
	}

	h.audit.LogReset(c.Request.Context(), c.ClientIP(), c.Request.UserAgent())

	c.JSON(http.StatusOK, gin.H{"status": "reset"})
}
