package service

import (
	"context"
	"fmt"
	"strings"
	"sync"

	"github.com/nutrilens/nutrilens-backend/internal/ai"
	"github.com/nutrilens/nutrilens-backend/pkg/model"
	"go.uber.org/zap"
)

// ChatAdvisor is the soft-policy chat operation: it never returns an error,
// substituting a fallback apology internally when the call fails.
type ChatAdvisor interface {
	Chat(ctx context.Context, message string, profile model.UserProfile, history []model.ChatMessage) ai.ChatReply
}

// ChatService owns the advice transcript. The transcript is append-only,
// in-memory only, and seeded with a greeting naming the user. At most one
// request is in flight at a time; a send while busy is rejected rather than
// queued.
type ChatService struct {
	gateway  ChatAdvisor
	profiles *ProfileService
	logger   *zap.Logger

	mu       sync.Mutex
	messages []model.ChatMessage
	busy     bool
}

// NewChatService creates a new ChatService
func NewChatService(gateway ChatAdvisor, profiles *ProfileService, logger *zap.Logger) *ChatService {
	return &ChatService{
		gateway:  gateway,
		profiles: profiles,
		logger:   logger,
	}
}

// Messages returns a copy of the transcript, seeding the greeting first if
// the conversation has not started yet.
func (s *ChatService) Messages(ctx context.Context) ([]model.ChatMessage, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.ensureGreetingLocked(ctx); err != nil {
		return nil, err
	}

	transcript := make([]model.ChatMessage, len(s.messages))
	copy(transcript, s.messages)

	return transcript, nil
}

// Send appends the user's turn, asks the assistant for a grounded reply and
// appends that too. The gateway absorbs its own failures, so the only errors
// here are an empty message or a request already in flight.
func (s *ChatService) Send(ctx context.Context, text string) (model.ChatMessage, error) {
	text = strings.TrimSpace(text)
	if text == "" {
		return model.ChatMessage{}, fmt.Errorf("message is empty")
	}

	s.mu.Lock()
	if s.busy {
		s.mu.Unlock()
		return model.ChatMessage{}, fmt.Errorf("a reply is already being generated")
	}
	if err := s.ensureGreetingLocked(ctx); err != nil {
		s.mu.Unlock()
		return model.ChatMessage{}, err
	}
	s.busy = true

	history := make([]model.ChatMessage, len(s.messages))
	copy(history, s.messages)

	s.messages = append(s.messages, model.ChatMessage{
		Role: model.ChatRoleUser,
		Text: text,
	})
	s.mu.Unlock()

	profile, err := s.profiles.LoadOrDefault(ctx)
	if err != nil {
		// Fall back to defaults rather than losing the turn.
		s.logger.Warn("failed to load profile for chat context", zap.Error(err))
		profile = model.DefaultProfile()
	}

	reply := s.gateway.Chat(ctx, text, profile, history)

	message := model.ChatMessage{
		Role:    model.ChatRoleModel,
		Text:    reply.Text,
		Sources: reply.Sources,
	}

	s.mu.Lock()
	s.messages = append(s.messages, message)
	s.busy = false
	s.mu.Unlock()

	s.logger.Info("chat reply appended",
		zap.Int("source_count", len(message.Sources)),
	)

	return message, nil
}

// Clear drops the transcript, restarting the conversation. Used by the full
// reset; the transcript is never persisted anyway.
func (s *ChatService) Clear() {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.messages = nil
	s.busy = false
}

func (s *ChatService) ensureGreetingLocked(ctx context.Context) error {
	if len(s.messages) > 0 {
		return nil
	}

	profile, err := s.profiles.LoadOrDefault(ctx)
	if err != nil {
		return err
	}

	s.messages = append(s.messages, model.ChatMessage{
		Role: model.ChatRoleModel,
		Text: fmt.Sprintf("Hi %s! I'm NutriLens AI. I can search the web for the latest nutrition facts. What's on your mind?", profile.Name),
	})

	return nil
}
