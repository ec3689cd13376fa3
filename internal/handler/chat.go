package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/nutrilens/nutrilens-backend/internal/service"
	"go.uber.org/zap"
)

// ChatHandler exposes the advice conversation
type ChatHandler struct {
	chat   *service.ChatService
	logger *zap.Logger
}

// NewChatHandler creates a new ChatHandler
func NewChatHandler(chat *service.ChatService, logger *zap.Logger) *ChatHandler {
	return &ChatHandler{
		chat:   chat,
		logger: logger,
	}
}

// GetMessages returns the transcript, greeting included
func (h *ChatHandler) GetMessages(c *gin.Context) {
	messages, err := h.chat.Messages(c.Request.Context())
	if err != nil {
		h.logger.Error("failed to load chat transcript", zap.Error(err))
		c.JSON(http.StatusInternalServerError, ErrorResponse{
			Code:    "INTERNAL_ERROR",
			Message: "Failed to load the conversation",
			Details: stringPtr(err.Error()),
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{"messages": messages})
}

// SendMessageRequest carries the user's chat turn
type SendMessageRequest struct {
	Text string `json:"text" binding:"required"`
}

// SendMessage appends the user's turn and returns the assistant's reply. The
// reply itself never fails; a failed model call comes back as the fallback
// apology. A send while a reply is still being generated is rejected.
func (h *ChatHandler) SendMessage(c *gin.Context) {
	var req SendMessageRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{
			Code:    "INVALID_REQUEST",
			Message: "Invalid chat message",
			Details: stringPtr(err.Error()),
		})
		return
	}

	reply, err := h.chat.Send(c.Request.Context(), req.Text)
	if err != nil {
		c.JSON(http.StatusConflict, ErrorResponse{
			Code:    "CHAT_UNAVAILABLE",
			Message: "Could not accept the message",
			Details: stringPtr(err.Error()),
		})
		return
	}

	c.JSON(http.StatusOK, reply)
}
