package service

import (
	"context"

	"github.com/nutrilens/nutrilens-backend/internal/ai"
	"github.com/nutrilens/nutrilens-backend/pkg/model"
	"github.com/stretchr/testify/mock"
)

// mockGateway mocks every AI-backed interface the services consume
type mockGateway struct {
	mock.Mock
}

var _ FoodRecognizer = (*mockGateway)(nil)
var _ ChatAdvisor = (*mockGateway)(nil)
var _ InsightGenerator = (*mockGateway)(nil)
var _ MealPlanGenerator = (*mockGateway)(nil)

func (m *mockGateway) RecognizeFood(ctx context.Context, imageBytes []byte, mimeType string) (*ai.FoodRecognition, error) {
	args := m.Called(ctx, imageBytes, mimeType)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*ai.FoodRecognition), args.Error(1)
}

func (m *mockGateway) Recipe(ctx context.Context, foodName string, ingredients []string, profile model.UserProfile) (*model.Recipe, error) {
	args := m.Called(ctx, foodName, ingredients, profile)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Recipe), args.Error(1)
}

func (m *mockGateway) Chat(ctx context.Context, message string, profile model.UserProfile, history []model.ChatMessage) ai.ChatReply {
	args := m.Called(ctx, message, profile, history)
	return args.Get(0).(ai.ChatReply)
}

func (m *mockGateway) Insight(ctx context.Context, stats model.DailyStats, profile model.UserProfile) string {
	args := m.Called(ctx, stats, profile)
	return args.String(0)
}

func (m *mockGateway) DailyMealPlan(ctx context.Context, profile model.UserProfile) (*model.DailyMealPlan, error) {
	args := m.Called(ctx, profile)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.DailyMealPlan), args.Error(1)
}

func (m *mockGateway) WeeklyMealPlan(ctx context.Context, profile model.UserProfile) (*model.WeeklyMealPlan, error) {
	args := m.Called(ctx, profile)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.WeeklyMealPlan), args.Error(1)
}
