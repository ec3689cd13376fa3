package service

import (
	"context"

	"github.com/nutrilens/nutrilens-backend/pkg/model"
	"go.uber.org/zap"
)

// MealPlanGenerator covers the hard-policy plan generation operations.
type MealPlanGenerator interface {
	DailyMealPlan(ctx context.Context, profile model.UserProfile) (*model.DailyMealPlan, error)
	WeeklyMealPlan(ctx context.Context, profile model.UserProfile) (*model.WeeklyMealPlan, error)
}

// PlannerService generates meal plans tailored to the stored profile. Plans
// are ephemeral: generated per request, never persisted.
type PlannerService struct {
	gateway  MealPlanGenerator
	profiles *ProfileService
	logger   *zap.Logger
}

// NewPlannerService creates a new PlannerService
func NewPlannerService(gateway MealPlanGenerator, profiles *ProfileService, logger *zap.Logger) *PlannerService {
	return &PlannerService{
		gateway:  gateway,
		profiles: profiles,
		logger:   logger,
	}
}

// Daily generates a one-day plan for the user's goal. Errors propagate.
func (s *PlannerService) Daily(ctx context.Context) (*model.DailyMealPlan, error) {
	profile, err := s.profiles.LoadOrDefault(ctx)
	if err != nil {
		return nil, err
	}

	plan, err := s.gateway.DailyMealPlan(ctx, profile)
	if err != nil {
		return nil, err
	}

	s.logger.Info("daily meal plan generated",
		zap.String("goal", string(profile.Goal)),
		zap.Int("meals", len(plan.Meals)),
	)

	return plan, nil
}

// Weekly generates a seven-day plan. Errors propagate.
func (s *PlannerService) Weekly(ctx context.Context) (*model.WeeklyMealPlan, error) {
	profile, err := s.profiles.LoadOrDefault(ctx)
	if err != nil {
		return nil, err
	}

	plan, err := s.gateway.WeeklyMealPlan(ctx, profile)
	if err != nil {
		return nil, err
	}

	s.logger.Info("weekly meal plan generated",
		zap.String("goal", string(profile.Goal)),
		zap.Int("days", len(plan.Days)),
	)

	return plan, nil
}
