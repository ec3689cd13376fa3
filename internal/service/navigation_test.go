package service

import (
	"testing"

	"github.com/nutrilens/nutrilens-backend/pkg/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestNavigator(t *testing.T) {
	t.Run("starts on the dashboard", func(t *testing.T) {
		nav := NewNavigator(zap.NewNop())
		assert.Equal(t, model.ViewDashboard, nav.Current())
	})

	t.Run("every view is reachable from every view", func(t *testing.T) {
		nav := NewNavigator(zap.NewNop())

		for _, from := range model.Views() {
			require.NoError(t, nav.NavigateTo(from))
			for _, to := range model.Views() {
				require.NoError(t, nav.NavigateTo(to))
				assert.Equal(t, to, nav.Current())
				require.NoError(t, nav.NavigateTo(from))
			}
		}
	})

	t.Run("self transition is allowed", func(t *testing.T) {
		nav := NewNavigator(zap.NewNop())

		require.NoError(t, nav.NavigateTo(model.ViewChat))
		require.NoError(t, nav.NavigateTo(model.ViewChat))
		assert.Equal(t, model.ViewChat, nav.Current())
	})

	t.Run("unknown view is rejected without a state change", func(t *testing.T) {
		nav := NewNavigator(zap.NewNop())
		require.NoError(t, nav.NavigateTo(model.ViewDiary))

		err := nav.NavigateTo(model.AppView("settings"))
		assert.ErrorContains(t, err, "unknown view")
		assert.Equal(t, model.ViewDiary, nav.Current())
	})
}
