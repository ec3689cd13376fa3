package service

import (
	"context"
	"encoding/json"
	"sync"

	"github.com/nutrilens/nutrilens-backend/internal/store"
	"github.com/nutrilens/nutrilens-backend/pkg/model"
	"go.uber.org/zap"
)

// SessionService owns the AuthUser session document. There is a single
// session per installation; it starts as a guest and is only replaced
// wholesale, either by an explicit save or by the full reset.
type SessionService struct {
	store  DocumentStore
	logger *zap.Logger

	mu sync.Mutex
}

// NewSessionService creates a new SessionService
func NewSessionService(docs DocumentStore, logger *zap.Logger) *SessionService {
	return &SessionService{
		store:  docs,
		logger: logger,
	}
}

// LoadOrDefault returns the stored session, or the guest identity when the
// document is absent or undecodable.
func (s *SessionService) LoadOrDefault(ctx context.Context) (model.AuthUser, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	doc, err := s.store.Load(ctx, store.KeySession)
	if err != nil {
		return model.AuthUser{}, err
	}
	if doc == nil {
		return model.GuestUser(), nil
	}

	var user model.AuthUser
	if err := json.Unmarshal(doc, &user); err != nil {
		s.logger.Warn("stored session failed to decode, using guest",
			zap.Error(err),
		)
		return model.GuestUser(), nil
	}

	return user, nil
}

// Save replaces the stored session wholesale.
func (s *SessionService) Save(ctx context.Context, user model.AuthUser) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	doc, err := json.Marshal(user)
	if err != nil {
		return err
	}

	return s.store.Save(ctx, store.KeySession, doc)
}
