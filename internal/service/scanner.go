package service

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"github.com/nutrilens/nutrilens-backend/internal/ai"
	"github.com/nutrilens/nutrilens-backend/internal/azure"
	"github.com/nutrilens/nutrilens-backend/pkg/model"
	"go.uber.org/zap"
)

// FoodRecognizer covers the hard-policy gateway operations the scanner uses.
// Both propagate errors: a failed recognition or recipe surfaces as a
// blocking alert and the user re-triggers manually.
type FoodRecognizer interface {
	RecognizeFood(ctx context.Context, imageBytes []byte, mimeType string) (*ai.FoodRecognition, error)
	Recipe(ctx context.Context, foodName string, ingredients []string, profile model.UserProfile) (*model.Recipe, error)
}

// ScannerService drives the scan flow: recognize a meal photo, optionally
// generate a recipe for it, then confirm-log the result into today's record.
type ScannerService struct {
	gateway   FoodRecognizer
	profiles  *ProfileService
	stats     *DailyStatsService
	blobs     azure.BlobStorage
	navigator *Navigator
	logger    *zap.Logger
}

// NewScannerService creates a new ScannerService
func NewScannerService(
	gateway FoodRecognizer,
	profiles *ProfileService,
	stats *DailyStatsService,
	blobs azure.BlobStorage,
	navigator *Navigator,
	logger *zap.Logger,
) *ScannerService {
	return &ScannerService{
		gateway:   gateway,
		profiles:  profiles,
		stats:     stats,
		blobs:     blobs,
		navigator: navigator,
		logger:    logger,
	}
}

// Recognize analyzes an uploaded meal photo. Errors propagate: the caller
// shows a retry prompt and nothing is logged.
func (s *ScannerService) Recognize(ctx context.Context, imageBytes []byte, mimeType string) (*ai.FoodRecognition, error) {
	if len(imageBytes) == 0 {
		return nil, fmt.Errorf("image is empty")
	}

	return s.gateway.RecognizeFood(ctx, imageBytes, mimeType)
}

// RecipeFor generates a healthy recipe for a recognized dish, adjusted to the
// user's goal. Errors propagate.
func (s *ScannerService) RecipeFor(ctx context.Context, foodName string, ingredients []string) (*model.Recipe, error) {
	if foodName == "" {
		return nil, fmt.Errorf("food name is required")
	}

	profile, err := s.profiles.LoadOrDefault(ctx)
	if err != nil {
		return nil, err
	}

	return s.gateway.Recipe(ctx, foodName, ingredients, profile)
}

// Log confirms a recognition into the diary. The FoodItem is built from the
// recognition with zero-filled gaps, the photo is archived in blob storage,
// and the active view jumps to the dashboard. A failed image upload does not
// block the log: the item simply has no image reference.
func (s *ScannerService) Log(ctx context.Context, recognition ai.FoodRecognition, imageBytes []byte, mimeType string) (model.DailyStats, model.FoodItem, error) {
	now := time.Now()

	item := model.FoodItem{
		ID:          strconv.FormatInt(now.UnixMilli(), 10),
		Name:        recognition.Name,
		Calories:    recognition.Calories,
		Protein:     recognition.Protein,
		Carbs:       recognition.Carbs,
		Fat:         recognition.Fat,
		Ingredients: recognition.Ingredients,
		Timestamp:   now.UnixMilli(),
	}
	if item.Name == "" {
		item.Name = "Unknown Food"
	}
	if item.Ingredients == nil {
		item.Ingredients = []string{}
	}

	if len(imageBytes) > 0 {
		filename := item.ID + extensionFor(mimeType)
		blobName, err := s.blobs.UploadImage(ctx, filename, imageBytes, mimeType)
		if err != nil {
			s.logger.Warn("meal image upload failed, logging item without image",
				zap.Error(err),
				zap.String("item_id", item.ID),
			)
		} else {
			item.ImageURL = blobName
		}
	}

	stats, err := s.stats.LogItem(ctx, item)
	if err != nil {
		return model.DailyStats{}, model.FoodItem{}, err
	}

	// Successful logging always lands the user back on the dashboard.
	if err := s.navigator.NavigateTo(model.ViewDashboard); err != nil {
		s.logger.Error("failed to navigate to dashboard after log", zap.Error(err))
	}

	return stats, item, nil
}

func extensionFor(mimeType string) string {
	switch mimeType {
	case "image/png":
		return ".png"
	case "image/webp":
		return ".webp"
	default:
		return ".jpg"
	}
}
