package service

import (
	"context"
	"encoding/json"
	"sync"
	"time"

	"github.com/nutrilens/nutrilens-backend/internal/store"
	"github.com/nutrilens/nutrilens-backend/pkg/model"
	"go.uber.org/zap"
)

// DocumentStore is the persistence contract the services depend on. Three
// string-keyed JSON documents, rewritten in full on every change.
type DocumentStore interface {
	Load(ctx context.Context, key string) ([]byte, error)
	Save(ctx context.Context, key string, doc []byte) error
	ClearAll(ctx context.Context) error
}

// DailyStatsService owns the single mutable record for "today". The record is
// keyed by its calendar-day string: loading a record whose stored date no
// longer matches today discards it and starts fresh. The comparison is a
// literal date-string equality, never elapsed time.
type DailyStatsService struct {
	store  DocumentStore
	logger *zap.Logger

	// All mutations go through this lock; the record has a single writer.
	mu sync.Mutex
}

// NewDailyStatsService creates a new DailyStatsService
func NewDailyStatsService(docs DocumentStore, logger *zap.Logger) *DailyStatsService {
	return &DailyStatsService{
		store:  docs,
		logger: logger,
	}
}

// LoadOrInitialize reads the stored record. If its date equals today it is
// returned verbatim; any other date, an absent document or one that fails to
// decode yields a fresh zeroed record for today.
func (s *DailyStatsService) LoadOrInitialize(ctx context.Context) (model.DailyStats, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.loadLocked(ctx)
}

// AddWater increments the hydration counter, clamped to MaxWaterGlasses.
func (s *DailyStatsService) AddWater(ctx context.Context) (model.DailyStats, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	stats, err := s.loadLocked(ctx)
	if err != nil {
		return model.DailyStats{}, err
	}

	if stats.Water < model.MaxWaterGlasses {
		stats.Water++
	}

	s.persistLocked(ctx, stats)

	return stats, nil
}

// RemoveWater decrements the hydration counter, clamped to zero.
func (s *DailyStatsService) RemoveWater(ctx context.Context) (model.DailyStats, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	stats, err := s.loadLocked(ctx)
	if err != nil {
		return model.DailyStats{}, err
	}

	if stats.Water > 0 {
		stats.Water--
	}

	s.persistLocked(ctx, stats)

	return stats, nil
}

// LogItem appends a food item to today's record and adds its calories to the
// running total. Insertion order is chronological order and is preserved. The
// item is trusted as-is: no dedup, no range checks.
func (s *DailyStatsService) LogItem(ctx context.Context, item model.FoodItem) (model.DailyStats, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	stats, err := s.loadLocked(ctx)
	if err != nil {
		return model.DailyStats{}, err
	}

	stats.Calories += item.Calories
	stats.Items = append(stats.Items, item)

	s.persistLocked(ctx, stats)

	s.logger.Info("food item logged",
		zap.String("item_id", item.ID),
		zap.String("name", item.Name),
		zap.Float64("calories", item.Calories),
		zap.Int("items_today", len(stats.Items)),
	)

	return stats, nil
}

// loadLocked reads and reconciles the stored record. Callers hold s.mu.
func (s *DailyStatsService) loadLocked(ctx context.Context) (model.DailyStats, error) {
	today := model.DayString(time.Now())

	doc, err := s.store.Load(ctx, store.KeyDailyStats)
	if err != nil {
		return model.DailyStats{}, err
	}
	if doc == nil {
		return model.EmptyStats(today), nil
	}

	var stats model.DailyStats
	if err := json.Unmarshal(doc, &stats); err != nil {
		s.logger.Warn("stored daily stats failed to decode, starting fresh",
			zap.Error(err),
		)
		return model.EmptyStats(today), nil
	}

	if stats.Date != today {
		s.logger.Info("stored stats are for another day, applying daily reset",
			zap.String("stored_date", stats.Date),
			zap.String("today", today),
		)
		return model.EmptyStats(today), nil
	}

	if stats.Items == nil {
		stats.Items = []model.FoodItem{}
	}

	return stats, nil
}

// persistLocked rewrites the stats document. Write failures are logged and
// swallowed: persistence is a side effect of every change, with no retry and
// no user-visible error. Callers hold s.mu.
func (s *DailyStatsService) persistLocked(ctx context.Context, stats model.DailyStats) {
	doc, err := json.Marshal(stats)
	if err != nil {
		s.logger.Error("failed to encode daily stats", zap.Error(err))
		return
	}

	if err := s.store.Save(ctx, store.KeyDailyStats, doc); err != nil {
		s.logger.Error("failed to persist daily stats", zap.Error(err))
	}
}

// StatsSummary carries the derived values computed from the current record.
// Derived values are recomputed on every read and never stored.
type StatsSummary struct {
	Stats             model.DailyStats `json:"stats"`
	CaloriePercent    float64          `json:"caloriePercent"`
	WaterPercent      float64          `json:"waterPercent"`
	RemainingCalories float64          `json:"remainingCalories"`
	MacroTotals       model.Macros     `json:"macroTotals"`
}

// Summarize derives the dashboard figures from a stats record and the
// profile goals. Pure function of its inputs.
func Summarize(stats model.DailyStats, profile model.UserProfile) StatsSummary {
	summary := StatsSummary{Stats: stats}

	if profile.DailyGoal > 0 {
		percent := stats.Calories / profile.DailyGoal * 100
		if percent > 100 {
			percent = 100
		}
		if percent < 0 {
			percent = 0
		}
		summary.CaloriePercent = percent

		remaining := profile.DailyGoal - stats.Calories
		if remaining < 0 {
			remaining = 0
		}
		summary.RemainingCalories = remaining
	}

	waterPercent := float64(stats.Water) / model.MaxWaterGlasses * 100
	if waterPercent > 100 {
		waterPercent = 100
	}
	summary.WaterPercent = waterPercent

	for _, item := range stats.Items {
		summary.MacroTotals.Protein += item.Protein
		summary.MacroTotals.Carbs += item.Carbs
		summary.MacroTotals.Fat += item.Fat
	}

	return summary
}
