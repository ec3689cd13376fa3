package handler

import (
	"encoding/json"
	"io"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/nutrilens/nutrilens-backend/internal/ai"
	"github.com/nutrilens/nutrilens-backend/internal/service"
	"go.uber.org/zap"
)

// maxImageSize caps uploaded meal photos at 10 MB
const maxImageSize = 10 << 20

// ScannerHandler drives the scan flow over HTTP: analyze a photo, generate a
// recipe for the result, confirm-log the result into the diary.
type ScannerHandler struct {
	scanner *service.ScannerService
	logger  *zap.Logger
}

// NewScannerHandler creates a new ScannerHandler
func NewScannerHandler(scanner *service.ScannerService, logger *zap.Logger) *ScannerHandler {
	return &ScannerHandler{
		scanner: scanner,
		logger:  logger,
	}
}

// Recognize accepts a multipart meal photo under the "image" field and
// returns the nutritional estimate. Recognition failures surface as errors;
// nothing is logged until the user confirms.
func (h *ScannerHandler) Recognize(c *gin.Context) {
	imageBytes, mimeType, ok := h.readImage(c, true)
	if !ok {
		return
	}

	recognition, err := h.scanner.Recognize(c.Request.Context(), imageBytes, mimeType)
	if err != nil {
		h.logger.Error("food recognition failed", zap.Error(err))
		c.JSON(http.StatusBadGateway, ErrorResponse{
			Code:    "RECOGNITION_FAILED",
			Message: "Failed to analyze the meal photo",
			Details: stringPtr(err.Error()),
		})
		return
	}

	c.JSON(http.StatusOK, recognition)
}

// RecipeRequest names the recognized dish a recipe is wanted for
type RecipeRequest struct {
	Name        string   `json:"name" binding:"required"`
	Ingredients []string `json:"ingredients"`
}

// Recipe generates a healthy recipe for a recognized dish, adjusted to the
// user's health goal. Errors propagate.
func (h *ScannerHandler) Recipe(c *gin.Context) {
	var req RecipeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{
			Code:    "INVALID_REQUEST",
			Message: "Invalid recipe request",
			Details: stringPtr(err.Error()),
		})
		return
	}

	recipe, err := h.scanner.RecipeFor(c.Request.Context(), req.Name, req.Ingredients)
	if err != nil {
		h.logger.Error("recipe generation failed", zap.Error(err))
		c.JSON(http.StatusBadGateway, ErrorResponse{
			Code:    "RECIPE_FAILED",
			Message: "Failed to generate a recipe",
			Details: stringPtr(err.Error()),
		})
		return
	}

	c.JSON(http.StatusOK, recipe)
}

// Log confirms a recognition into the diary. Multipart form: an "item" field
// holding the recognition JSON, plus an optional "image" file to archive with
// the entry. Responds with the updated record and the stored item.
func (h *ScannerHandler) Log(c *gin.Context) {
	itemJSON := c.PostForm("item")
	if itemJSON == "" {
		c.JSON(http.StatusBadRequest, ErrorResponse{
			Code:    "INVALID_REQUEST",
			Message: "Missing item field",
		})
		return
	}

	var recognition ai.FoodRecognition
	if err := json.Unmarshal([]byte(itemJSON), &recognition); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{
			Code:    "INVALID_REQUEST",
			Message: "Invalid item payload",
			Details: stringPtr(err.Error()),
		})
		return
	}

	imageBytes, mimeType, ok := h.readImage(c, false)
	if !ok {
		return
	}

	stats, item, err := h.scanner.Log(c.Request.Context(), recognition, imageBytes, mimeType)
	if err != nil {
		h.logger.Error("failed to log food item", zap.Error(err))
		c.JSON(http.StatusInternalServerError, ErrorResponse{
			Code:    "INTERNAL_ERROR",
			Message: "Failed to log the food item",
			Details: stringPtr(err.Error()),
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"stats": stats,
		"item":  item,
	})
}

// readImage pulls the "image" multipart file. When required is false a
// missing file is fine and yields empty bytes.
func (h *ScannerHandler) readImage(c *gin.Context, required bool) ([]byte, string, bool) {
	fileHeader, err := c.FormFile("image")
	if err != nil {
		if !required {
			return nil, "", true
		}
		c.JSON(http.StatusBadRequest, ErrorResponse{
			Code:    "INVALID_REQUEST",
			Message: "Missing image file",
			Details: stringPtr(err.Error()),
		})
		return nil, "", false
	}

	if fileHeader.Size > maxImageSize {
		c.JSON(http.StatusBadRequest, ErrorResponse{
			Code:    "IMAGE_TOO_LARGE",
			Message: "Meal photo exceeds the 10 MB limit",
		})
		return nil, "", false
	}

	file, err := fileHeader.Open()
	if err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{
			Code:    "INVALID_REQUEST",
			Message: "Failed to open image file",
			Details: stringPtr(err.Error()),
		})
		return nil, "", false
	}
	defer file.Close()

	imageBytes, err := io.ReadAll(file)
	if err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{
			Code:    "INVALID_REQUEST",
			Message: "Failed to read image file",
			Details: stringPtr(err.Error()),
		})
		return nil, "", false
	}

	mimeType := fileHeader.Header.Get("Content-Type")
	if mimeType == "" {
		mimeType = "image/jpeg"
	}

	return imageBytes, mimeType, true
}
