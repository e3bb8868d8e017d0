// Package control implements the pause toggle and emergency exit signal
// that gate the scan loop.
package control

import (
	"log/slog"
	"sync"
)

// State is the slice of run state the surface mutates.
type State interface {
	SetPaused(bool)
	Paused() bool
	SetLastAction(string)
	Debug(string)
}

// Surface flips the paused flag and reports the emergency signal. Toggle
// is safe to call from the hotkey watcher and the status window at once.
type Surface struct {
	mu       sync.Mutex
	state    State
	logger   *slog.Logger
	failsafe func() bool
}

// NewSurface returns a Surface. failsafe reports whether the emergency key is
// currently held; nil means never.
func NewSurface(state State, logger *slog.Logger, failsafe func() bool) *Surface {
	if failsafe == nil {
		failsafe = func() bool { return false }
	}
	return &Surface{state: state, logger: logger, failsafe: failsafe}
}

// Toggle flips running and paused and returns the new paused value.
func (s *Surface) Toggle() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	paused := !s.state.Paused()
	s.state.SetPaused(paused)
	action := "Resumed"
	if paused {
		action = "Paused"
	}
	s.state.SetLastAction(action)
	s.state.Debug(action)
	if s.logger != nil {
		s.logger.Info("pause toggled", "paused", paused)
	}
	return paused
}

// Paused reports the current paused flag.
func (s *Surface) Paused() bool { return s.state.Paused() }

// Failsafe reports whether the emergency exit key is held.
func (s *Surface) Failsafe() bool { return s.failsafe() }
