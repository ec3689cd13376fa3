package service

import (
	"context"
	"testing"

	"github.com/nutrilens/nutrilens-backend/internal/store"
	"github.com/nutrilens/nutrilens-backend/pkg/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestProfileLoadOrDefault(t *testing.T) {
	ctx := context.Background()

	t.Run("absent document yields factory defaults", func(t *testing.T) {
		svc := NewProfileService(newMemStore(), zap.NewNop())

		profile, err := svc.LoadOrDefault(ctx)
		require.NoError(t, err)
		assert.Equal(t, model.DefaultProfile(), profile)
	})

	t.Run("undecodable document yields factory defaults", func(t *testing.T) {
		docs := newMemStore()
		docs.documents[store.KeyProfile] = []byte("not even close")

		svc := NewProfileService(docs, zap.NewNop())

		profile, err := svc.LoadOrDefault(ctx)
		require.NoError(t, err)
		assert.Equal(t, model.DefaultProfile(), profile)
	})

	t.Run("stored nil slices are normalized", func(t *testing.T) {
		docs := newMemStore()
		docs.documents[store.KeyProfile] = []byte(`{"name":"Dana","allergies":null,"preferences":null}`)

		svc := NewProfileService(docs, zap.NewNop())

		profile, err := svc.LoadOrDefault(ctx)
		require.NoError(t, err)
		assert.NotNil(t, profile.Allergies)
		assert.NotNil(t, profile.Preferences)
	})
}

func TestProfileUpdateField(t *testing.T) {
	ctx := context.Background()

	t.Run("each known field is updatable", func(t *testing.T) {
		cases := []struct {
			field string
			value string
			check func(t *testing.T, p model.UserProfile)
		}{
			{"name", `"Dana"`, func(t *testing.T, p model.UserProfile) { assert.Equal(t, "Dana", p.Name) }},
			{"gender", `"Female"`, func(t *testing.T, p model.UserProfile) { assert.Equal(t, "Female", p.Gender) }},
			{"dailyGoal", `1800`, func(t *testing.T, p model.UserProfile) { assert.Equal(t, float64(1800), p.DailyGoal) }},
			{"proteinGoal", `160`, func(t *testing.T, p model.UserProfile) { assert.Equal(t, float64(160), p.ProteinGoal) }},
			{"carbsGoal", `180`, func(t *testing.T, p model.UserProfile) { assert.Equal(t, float64(180), p.CarbsGoal) }},
			{"fatGoal", `55`, func(t *testing.T, p model.UserProfile) { assert.Equal(t, float64(55), p.FatGoal) }},
			{"weight", `64.5`, func(t *testing.T, p model.UserProfile) { assert.Equal(t, 64.5, p.Weight) }},
			{"height", `168`, func(t *testing.T, p model.UserProfile) { assert.Equal(t, float64(168), p.Height) }},
			{"age", `31`, func(t *testing.T, p model.UserProfile) { assert.Equal(t, 31, p.Age) }},
			{"activityLevel", `"Very Active"`, func(t *testing.T, p model.UserProfile) { assert.Equal(t, model.ActivityVeryActive, p.ActivityLevel) }},
			{"goal", `"Lose"`, func(t *testing.T, p model.UserProfile) { assert.Equal(t, model.GoalLose, p.Goal) }},
			{"allergies", `["peanuts"]`, func(t *testing.T, p model.UserProfile) { assert.Equal(t, []string{"peanuts"}, p.Allergies) }},
			{"preferences", `["vegetarian"]`, func(t *testing.T, p model.UserProfile) { assert.Equal(t, []string{"vegetarian"}, p.Preferences) }},
			{"waterReminderEnabled", `true`, func(t *testing.T, p model.UserProfile) { assert.True(t, p.WaterReminderEnabled) }},
			{"waterReminderInterval", `90`, func(t *testing.T, p model.UserProfile) { assert.Equal(t, 90, p.WaterReminderInterval) }},
			{"theme", `"dark"`, func(t *testing.T, p model.UserProfile) { assert.Equal(t, model.ThemeDark, p.Theme) }},
		}

		svc := NewProfileService(newMemStore(), zap.NewNop())

		for _, tc := range cases {
			profile, err := svc.UpdateField(ctx, tc.field, []byte(tc.value))
			require.NoError(t, err, "field %s", tc.field)
			tc.check(t, profile)
		}
	})

	t.Run("unknown field is rejected", func(t *testing.T) {
		svc := NewProfileService(newMemStore(), zap.NewNop())

		_, err := svc.UpdateField(ctx, "favoriteColor", []byte(`"blue"`))
		assert.ErrorContains(t, err, "unknown profile field")
	})

	t.Run("out-of-enum values are rejected without a write", func(t *testing.T) {
		docs := newMemStore()
		svc := NewProfileService(docs, zap.NewNop())

		_, err := svc.UpdateField(ctx, "goal", []byte(`"Bulk"`))
		assert.ErrorContains(t, err, "invalid goal")

		_, err = svc.UpdateField(ctx, "theme", []byte(`"sepia"`))
		assert.ErrorContains(t, err, "invalid theme")

		_, err = svc.UpdateField(ctx, "activityLevel", []byte(`"Olympic"`))
		assert.ErrorContains(t, err, "invalid activity level")

		_, ok := docs.documents[store.KeyProfile]
		assert.False(t, ok, "rejected updates must not persist anything")
	})

	t.Run("wrong value shape is rejected", func(t *testing.T) {
		svc := NewProfileService(newMemStore(), zap.NewNop())

		_, err := svc.UpdateField(ctx, "dailyGoal", []byte(`"two thousand"`))
		assert.Error(t, err)
	})

	t.Run("updates survive a reload", func(t *testing.T) {
		docs := newMemStore()
		svc := NewProfileService(docs, zap.NewNop())

		_, err := svc.UpdateField(ctx, "name", []byte(`"Dana"`))
		require.NoError(t, err)

		reloaded := NewProfileService(docs, zap.NewNop())
		profile, err := reloaded.LoadOrDefault(ctx)
		require.NoError(t, err)
		assert.Equal(t, "Dana", profile.Name)
	})
}

func TestProfileResetAll(t *testing.T) {
	ctx := context.Background()

	docs := newMemStore()
	profiles := NewProfileService(docs, zap.NewNop())
	stats := NewDailyStatsService(docs, zap.NewNop())
	sessions := NewSessionService(docs, zap.NewNop())

	_, err := profiles.UpdateField(ctx, "name", []byte(`"Dana"`))
	require.NoError(t, err)
	_, err = stats.AddWater(ctx)
	require.NoError(t, err)
	require.NoError(t, sessions.Save(ctx, model.AuthUser{Email: "dana@example.com", Name: "Dana"}))

	require.NoError(t, profiles.ResetAll(ctx))

	profile, err := profiles.LoadOrDefault(ctx)
	require.NoError(t, err)
	assert.Equal(t, model.DefaultProfile(), profile)

	record, err := stats.LoadOrInitialize(ctx)
	require.NoError(t, err)
	assert.Zero(t, record.Water)
	assert.Empty(t, record.Items)

	user, err := sessions.LoadOrDefault(ctx)
	require.NoError(t, err)
	assert.Equal(t, model.GuestUser(), user)
}
