package component

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"
)

// RevertAction undoes one side effect of a release.
type RevertAction struct {
	Name string
	Undo func(ctx context.Context) error
}

// RevertStack collects undo actions while a release mutates the repository
// and the remote. Unwind runs them newest first.
type RevertStack struct {
	mu      sync.Mutex
	actions []RevertAction
	logger  *slog.Logger
}

func NewRevertStack(logger *slog.Logger) *RevertStack {
	if logger == nil {
		logger = slog.Default()
	}
	return &RevertStack{logger: logger}
}

func (s *RevertStack) Push(name string, undo func(ctx context.Context) error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.actions = append(s.actions, RevertAction{Name: name, Undo: undo})
}

func (s *RevertStack) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.actions)
}

// Unwind runs every action in reverse push order and empties the stack. A
// failing action does not stop the ones below it; all failures are joined.
func (s *RevertStack) Unwind(ctx context.Context) error {
	s.mu.Lock()
	actions := s.actions
	s.actions = nil
	s.mu.Unlock()

	var errs []error
	for i := len(actions) - 1; i >= 0; i-- {
		action := actions[i]
		s.logger.InfoContext(ctx, "reverting release step", slog.String("step", action.Name))
		if err := action.Undo(ctx); err != nil {
			s.logger.ErrorContext(ctx, "failed to revert release step", slog.String("step", action.Name), slog.Any("error", err))
			errs = append(errs, fmt.Errorf("revert %s: %w", action.Name, err))
		}
	}
	return errors.Join(errs...)
}
