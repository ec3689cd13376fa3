package service

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"

	"github.com/nutrilens/nutrilens-backend/internal/store"
	"github.com/nutrilens/nutrilens-backend/pkg/model"
	"go.uber.org/zap"
)

// ProfileService owns the UserProfile record. The profile is loaded once per
// read, mutated field-by-field through a closed set of keyed updates, and
// rewritten in full on every change.
type ProfileService struct {
	store  DocumentStore
	logger *zap.Logger

	mu sync.Mutex
}

// NewProfileService creates a new ProfileService
func NewProfileService(docs DocumentStore, logger *zap.Logger) *ProfileService {
	return &ProfileService{
		store:  docs,
		logger: logger,
	}
}

// LoadOrDefault returns the stored profile, or the factory defaults when the
// document is absent or cannot be decoded. Never fails on bad data.
func (s *ProfileService) LoadOrDefault(ctx context.Context) (model.UserProfile, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.loadLocked(ctx)
}

// UpdateField applies a single keyed update to the profile and persists the
// result. The field set is closed: an unknown field name or a value of the
// wrong shape is rejected before anything is written.
func (s *ProfileService) UpdateField(ctx context.Context, field string, value json.RawMessage) (model.UserProfile, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	profile, err := s.loadLocked(ctx)
	if err != nil {
		return model.UserProfile{}, err
	}

	if err := applyProfileField(&profile, field, value); err != nil {
		return model.UserProfile{}, err
	}

	s.persistLocked(ctx, profile)

	s.logger.Info("profile field updated", zap.String("field", field))

	return profile, nil
}

// ResetAll clears every persisted document. Irreversible; subsequent loads
// return factory defaults, a guest session and an empty today record.
func (s *ProfileService) ResetAll(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.store.ClearAll(ctx); err != nil {
		return fmt.Errorf("failed to reset all data: %w", err)
	}

	s.logger.Info("full reset performed, all documents cleared")

	return nil
}

func (s *ProfileService) loadLocked(ctx context.Context) (model.UserProfile, error) {
	doc, err := s.store.Load(ctx, store.KeyProfile)
	if err != nil {
		return model.UserProfile{}, err
	}
	if doc == nil {
		return model.DefaultProfile(), nil
	}

	var profile model.UserProfile
	if err := json.Unmarshal(doc, &profile); err != nil {
		s.logger.Warn("stored profile failed to decode, using defaults",
			zap.Error(err),
		)
		return model.DefaultProfile(), nil
	}

	if profile.Allergies == nil {
		profile.Allergies = []string{}
	}
	if profile.Preferences == nil {
		profile.Preferences = []string{}
	}

	return profile, nil
}

func (s *ProfileService) persistLocked(ctx context.Context, profile model.UserProfile) {
	doc, err := json.Marshal(profile)
	if err != nil {
		s.logger.Error("failed to encode profile", zap.Error(err))
		return
	}

	if err := s.store.Save(ctx, store.KeyProfile, doc); err != nil {
		s.logger.Error("failed to persist profile", zap.Error(err))
	}
}

// applyProfileField dispatches a keyed update over the fixed field set. Only
// the named field changes; everything else is left untouched.
func applyProfileField(profile *model.UserProfile, field string, value json.RawMessage) error {
	decode := func(v any) error {
		if err := json.Unmarshal(value, v); err != nil {
			return fmt.Errorf("invalid value for field %s: %w", field, err)
		}
		return nil
	}

	switch field {
	case "name":
		return decode(&profile.Name)
	case "gender":
		return decode(&profile.Gender)
	case "dailyGoal":
		return decode(&profile.DailyGoal)
	case "proteinGoal":
		return decode(&profile.ProteinGoal)
	case "carbsGoal":
		return decode(&profile.CarbsGoal)
	case "fatGoal":
		return decode(&profile.FatGoal)
	case "weight":
		return decode(&profile.Weight)
	case "height":
		return decode(&profile.Height)
	case "age":
		return decode(&profile.Age)
	case "activityLevel":
		var level model.ActivityLevel
		if err := decode(&level); err != nil {
			return err
		}
		switch level {
		case model.ActivitySedentary, model.ActivityLight, model.ActivityModerate, model.ActivityVeryActive:
			profile.ActivityLevel = level
			return nil
		}
		return fmt.Errorf("invalid activity level: %s", level)
	case "goal":
		var goal model.HealthGoal
		if err := decode(&goal); err != nil {
			return err
		}
		switch goal {
		case model.GoalLose, model.GoalMaintain, model.GoalGain:
			profile.Goal = goal
			return nil
		}
		return fmt.Errorf("invalid goal: %s", goal)
	case "allergies":
		if err := decode(&profile.Allergies); err != nil {
			return err
		}
		if profile.Allergies == nil {
			profile.Allergies = []string{}
		}
		return nil
	case "preferences":
		if err := decode(&profile.Preferences); err != nil {
			return err
		}
		if profile.Preferences == nil {
			profile.Preferences = []string{}
		}
		return nil
	case "waterReminderEnabled":
		return decode(&profile.WaterReminderEnabled)
	case "waterReminderInterval":
		return decode(&profile.WaterReminderInterval)
	case "theme":
		var theme model.Theme
		if err := decode(&theme); err != nil {
			return err
		}
		switch theme {
		case model.ThemeLight, model.ThemeDark:
			profile.Theme = theme
			return nil
		}
		return fmt.Errorf("invalid theme: %s", theme)
	}

	return fmt.Errorf("unknown profile field: %s", field)
}
