package service

import (
	"fmt"
	"sync"

	"github.com/nutrilens/nutrilens-backend/pkg/model"
	"go.uber.org/zap"
)

// Navigator holds which of the mutually exclusive views is active. This is a
// flat enum, not a guarded state machine: every view is reachable from every
// view, nothing is terminal, and no transition is ever rejected. The only
// programmatic transition is the jump to the dashboard after a successful
// food log.
type Navigator struct {
	mu      sync.RWMutex
	current model.AppView
	logger  *zap.Logger
}

// NewNavigator creates a Navigator starting on the dashboard
func NewNavigator(logger *zap.Logger) *Navigator {
	return &Navigator{
		current: model.ViewDashboard,
		logger:  logger,
	}
}

// Current returns the active view
func (n *Navigator) Current() model.AppView {
	n.mu.RLock()
	defer n.mu.RUnlock()

	return n.current
}

// NavigateTo switches the active view. The only way to fail is naming a view
// that does not exist.
func (n *Navigator) NavigateTo(view model.AppView) error {
	if !model.ValidView(view) {
		return fmt.Errorf("unknown view: %s", view)
	}

	n.mu.Lock()
	previous := n.current
	n.current = view
	n.mu.Unlock()

	n.logger.Debug("view changed",
		zap.String("from", string(previous)),
		zap.String("to", string(view)),
	)

	return nil
}
