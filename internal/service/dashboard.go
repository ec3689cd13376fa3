package service

import (
	"context"

	"github.com/nutrilens/nutrilens-backend/pkg/model"
	"go.uber.org/zap"
)

// InsightGenerator produces the one-line dashboard tip. It never fails: the
// gateway substitutes a static fallback internally.
type InsightGenerator interface {
	Insight(ctx context.Context, stats model.DailyStats, profile model.UserProfile) string
}

// DashboardService assembles everything the dashboard view renders: today's
// record, the derived figures and the AI insight.
type DashboardService struct {
	stats    *DailyStatsService
	profiles *ProfileService
	insights InsightGenerator
	logger   *zap.Logger
}

// NewDashboardService creates a new DashboardService
func NewDashboardService(stats *DailyStatsService, profiles *ProfileService, insights InsightGenerator, logger *zap.Logger) *DashboardService {
	return &DashboardService{
		stats:    stats,
		profiles: profiles,
		insights: insights,
		logger:   logger,
	}
}

// DashboardSummary is the dashboard view's full payload
type DashboardSummary struct {
	User    model.AuthUser    `json:"user"`
	Profile model.UserProfile `json:"profile"`
	StatsSummary
	Insight string `json:"insight"`
}

// Summary loads the current records and recomputes every derived value. The
// insight call follows the soft error policy, so this only fails when the
// store itself is unreachable.
func (s *DashboardService) Summary(ctx context.Context, sessions *SessionService) (*DashboardSummary, error) {
	profile, err := s.profiles.LoadOrDefault(ctx)
	if err != nil {
		return nil, err
	}

	stats, err := s.stats.LoadOrInitialize(ctx)
	if err != nil {
		return nil, err
	}

	user, err := sessions.LoadOrDefault(ctx)
	if err != nil {
		return nil, err
	}

	summary := &DashboardSummary{
		User:         user,
		Profile:      profile,
		StatsSummary: Summarize(stats, profile),
		Insight:      s.insights.Insight(ctx, stats, profile),
	}

	s.logger.Info("dashboard summary assembled",
		zap.Float64("calories", stats.Calories),
		zap.Int("water", stats.Water),
		zap.Int("items", len(stats.Items)),
		zap.Float64("calorie_percent", summary.CaloriePercent),
	)

	return summary, nil
}
