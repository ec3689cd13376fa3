package service

import (
	"context"
	"testing"

	"github.com/nutrilens/nutrilens-backend/internal/ai"
	"github.com/nutrilens/nutrilens-backend/pkg/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func newChatFixture(t *testing.T) (*ChatService, *mockGateway) {
	t.Helper()

	gateway := &mockGateway{}
	profiles := NewProfileService(newMemStore(), zap.NewNop())

	return NewChatService(gateway, profiles, zap.NewNop()), gateway
}

func TestChatGreeting(t *testing.T) {
	ctx := context.Background()

	t.Run("transcript is seeded with a greeting naming the user", func(t *testing.T) {
		svc, _ := newChatFixture(t)

		messages, err := svc.Messages(ctx)
		require.NoError(t, err)

		require.Len(t, messages, 1)
		assert.Equal(t, model.ChatRoleModel, messages[0].Role)
		assert.Contains(t, messages[0].Text, "Hi Friend!")
	})

	t.Run("greeting is seeded once", func(t *testing.T) {
		svc, _ := newChatFixture(t)

		_, err := svc.Messages(ctx)
		require.NoError(t, err)
		messages, err := svc.Messages(ctx)
		require.NoError(t, err)

		assert.Len(t, messages, 1)
	})
}

func TestChatSend(t *testing.T) {
	ctx := context.Background()

	t.Run("a turn appends the question and the reply", func(t *testing.T) {
		svc, gateway := newChatFixture(t)

		gateway.On("Chat", mock.Anything, "How much water should I drink?", mock.Anything, mock.Anything).
			Return(ai.ChatReply{
				Text: "Around two liters for your weight.",
				Sources: []model.GroundingSource{
					{Title: "Hydration basics", URI: "https://example.com/hydration"},
				},
			})

		reply, err := svc.Send(ctx, "How much water should I drink?")
		require.NoError(t, err)

		assert.Equal(t, model.ChatRoleModel, reply.Role)
		assert.Equal(t, "Around two liters for your weight.", reply.Text)
		require.Len(t, reply.Sources, 1)

		messages, err := svc.Messages(ctx)
		require.NoError(t, err)
		require.Len(t, messages, 3)
		assert.Equal(t, model.ChatRoleUser, messages[1].Role)
		assert.Equal(t, "How much water should I drink?", messages[1].Text)

		gateway.AssertExpectations(t)
	})

	t.Run("the gateway sees the history up to the new turn", func(t *testing.T) {
		svc, gateway := newChatFixture(t)

		gateway.On("Chat", mock.Anything, mock.Anything, mock.Anything, mock.MatchedBy(func(history []model.ChatMessage) bool {
			// First send: greeting only.
			return len(history) == 1 && history[0].Role == model.ChatRoleModel
		})).Return(ai.ChatReply{Text: "ok"}).Once()

		_, err := svc.Send(ctx, "first question")
		require.NoError(t, err)

		gateway.On("Chat", mock.Anything, mock.Anything, mock.Anything, mock.MatchedBy(func(history []model.ChatMessage) bool {
			// Second send: greeting, question, reply.
			return len(history) == 3
		})).Return(ai.ChatReply{Text: "ok again"}).Once()

		_, err = svc.Send(ctx, "second question")
		require.NoError(t, err)

		gateway.AssertExpectations(t)
	})

	t.Run("empty and whitespace-only messages are rejected", func(t *testing.T) {
		svc, _ := newChatFixture(t)

		_, err := svc.Send(ctx, "")
		assert.Error(t, err)

		_, err = svc.Send(ctx, "   \n\t")
		assert.Error(t, err)
	})

	t.Run("clear restarts the conversation", func(t *testing.T) {
		svc, gateway := newChatFixture(t)

		gateway.On("Chat", mock.Anything, mock.Anything, mock.Anything, mock.Anything).
			Return(ai.ChatReply{Text: "hello"})

		_, err := svc.Send(ctx, "anything")
		require.NoError(t, err)

		svc.Clear()

		messages, err := svc.Messages(ctx)
		require.NoError(t, err)
		assert.Len(t, messages, 1, "only the fresh greeting remains")
	})
}
