package integration_tests

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/nutrilens/nutrilens-backend/pkg/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestChatFlowIntegration exercises the advice conversation end to end,
// including the soft failure policy.
func TestChatFlowIntegration(t *testing.T) {
	backend := newTestBackend()

	t.Run("Transcript opens with a personalized greeting", func(t *testing.T) {
		w := httptest.NewRecorder()
		req := httptest.NewRequest("GET", "/api/v1/chat/messages", nil)
		backend.router.ServeHTTP(w, req)
		require.Equal(t, http.StatusOK, w.Code)

		var payload struct {
			Messages []model.ChatMessage `json:"messages"`
		}
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &payload))

		require.Len(t, payload.Messages, 1)
		assert.Equal(t, model.ChatRoleModel, payload.Messages[0].Role)
		assert.Contains(t, payload.Messages[0].Text, "Hi Friend!")
	})

	t.Run("A turn appends the question and a grounded reply", func(t *testing.T) {
		w := httptest.NewRecorder()
		req := httptest.NewRequest("POST", "/api/v1/chat/messages", strings.NewReader(`{"text":"How much protein do I need?"}`))
		req.Header.Set("Content-Type", "application/json")
		backend.router.ServeHTTP(w, req)
		require.Equal(t, http.StatusOK, w.Code)

		var reply model.ChatMessage
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &reply))
		assert.Equal(t, model.ChatRoleModel, reply.Role)
		assert.NotEmpty(t, reply.Sources, "grounded reply should carry citations")

		w = httptest.NewRecorder()
		req = httptest.NewRequest("GET", "/api/v1/chat/messages", nil)
		backend.router.ServeHTTP(w, req)
		require.Equal(t, http.StatusOK, w.Code)

		var payload struct {
			Messages []model.ChatMessage `json:"messages"`
		}
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &payload))

		// Greeting, user turn, model turn.
		require.Len(t, payload.Messages, 3)
		assert.Equal(t, model.ChatRoleUser, payload.Messages[1].Role)
		assert.Equal(t, "How much protein do I need?", payload.Messages[1].Text)
	})

	t.Run("A failed completion degrades to the fallback, not an error", func(t *testing.T) {
		backend.gateway.FailSoft = true
		defer func() { backend.gateway.FailSoft = false }()

		w := httptest.NewRecorder()
		req := httptest.NewRequest("POST", "/api/v1/chat/messages", strings.NewReader(`{"text":"Is creatine safe?"}`))
		req.Header.Set("Content-Type", "application/json")
		backend.router.ServeHTTP(w, req)

		require.Equal(t, http.StatusOK, w.Code)

		var reply model.ChatMessage
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &reply))
		assert.Equal(t, "I'm having trouble fetching the latest nutrition data. Try asking something else!", reply.Text)
	})

	t.Run("Empty messages are rejected", func(t *testing.T) {
		w := httptest.NewRecorder()
		req := httptest.NewRequest("POST", "/api/v1/chat/messages", strings.NewReader(`{"text":"   "}`))
		req.Header.Set("Content-Type", "application/json")
		backend.router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusConflict, w.Code)
	})
}

// TestPlannerFlowIntegration covers the hard-policy plan generation endpoints
func TestPlannerFlowIntegration(t *testing.T) {
	backend := newTestBackend()

	t.Run("Daily plan is generated per request", func(t *testing.T) {
		w := httptest.NewRecorder()
		req := httptest.NewRequest("GET", "/api/v1/planner/daily", nil)
		backend.router.ServeHTTP(w, req)
		require.Equal(t, http.StatusOK, w.Code)

		var plan model.DailyMealPlan
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &plan))
		assert.NotEmpty(t, plan.Meals)
	})

	t.Run("Weekly plan covers seven days", func(t *testing.T) {
		w := httptest.NewRecorder()
		req := httptest.NewRequest("GET", "/api/v1/planner/weekly", nil)
		backend.router.ServeHTTP(w, req)
		require.Equal(t, http.StatusOK, w.Code)

		var plan model.WeeklyMealPlan
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &plan))
		assert.Len(t, plan.Days, 7)
	})

	t.Run("Generation failure surfaces as an error", func(t *testing.T) {
		backend.gateway.FailHard = true
		defer func() { backend.gateway.FailHard = false }()

		w := httptest.NewRecorder()
		req := httptest.NewRequest("GET", "/api/v1/planner/daily", nil)
		backend.router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusBadGateway, w.Code)
		assert.Contains(t, w.Body.String(), "PLAN_FAILED")
	})
}

// TestProfileAndViewFlowIntegration covers keyed profile updates and view
// switching.
func TestProfileAndViewFlowIntegration(t *testing.T) {
	backend := newTestBackend()

	t.Run("Keyed update changes only the named field", func(t *testing.T) {
		w := httptest.NewRecorder()
		req := httptest.NewRequest("PATCH", "/api/v1/profile", strings.NewReader(`{"field":"dailyGoal","value":1800}`))
		req.Header.Set("Content-Type", "application/json")
		backend.router.ServeHTTP(w, req)
		require.Equal(t, http.StatusOK, w.Code)

		var profile model.UserProfile
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &profile))
		assert.Equal(t, float64(1800), profile.DailyGoal)
		assert.Equal(t, "Friend", profile.Name, "untouched fields keep their values")
		assert.Equal(t, model.GoalMaintain, profile.Goal)
	})

	t.Run("Unknown fields and bad enum values are rejected", func(t *testing.T) {
		w := httptest.NewRecorder()
		req := httptest.NewRequest("PATCH", "/api/v1/profile", strings.NewReader(`{"field":"favoriteColor","value":"\"blue\""}`))
		req.Header.Set("Content-Type", "application/json")
		backend.router.ServeHTTP(w, req)
		assert.Equal(t, http.StatusBadRequest, w.Code)

		w = httptest.NewRecorder()
		req = httptest.NewRequest("PATCH", "/api/v1/profile", strings.NewReader(`{"field":"goal","value":"\"Bulk\""}`))
		req.Header.Set("Content-Type", "application/json")
		backend.router.ServeHTTP(w, req)
		assert.Equal(t, http.StatusBadRequest, w.Code)

		// The failed updates left the profile untouched.
		w = httptest.NewRecorder()
		req = httptest.NewRequest("GET", "/api/v1/profile", nil)
		backend.router.ServeHTTP(w, req)
		require.Equal(t, http.StatusOK, w.Code)

		var profile model.UserProfile
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &profile))
		assert.Equal(t, model.GoalMaintain, profile.Goal)
	})

	t.Run("Any view is reachable from any view", func(t *testing.T) {
		for _, view := range model.Views() {
			body := `{"view":"` + string(view) + `"}`
			w := httptest.NewRecorder()
			req := httptest.NewRequest("PUT", "/api/v1/view", strings.NewReader(body))
			req.Header.Set("Content-Type", "application/json")
			backend.router.ServeHTTP(w, req)
			require.Equal(t, http.StatusOK, w.Code)
			assert.Equal(t, view, backend.navigator.Current())
		}
	})

	t.Run("Unknown views are rejected without a state change", func(t *testing.T) {
		before := backend.navigator.Current()

		w := httptest.NewRecorder()
		req := httptest.NewRequest("PUT", "/api/v1/view", strings.NewReader(`{"view":"settings"}`))
		req.Header.Set("Content-Type", "application/json")
		backend.router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusBadRequest, w.Code)
		assert.Equal(t, before, backend.navigator.Current())
	})
}
