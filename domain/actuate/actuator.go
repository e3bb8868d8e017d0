// Package actuate turns detected keys into timed press/hold/release tasks.
package actuate

import (
	"log/slog"
	"sync"
	"time"
)

// Keyboard emits key events.
type Keyboard interface {
	KeyDown(key string) error
	KeyUp(key string) error
}

// Recorder receives completed presses and operator messages.
type Recorder interface {
	RecordKeypress(key string)
	Debugf(format string, args ...any)
}

// Options configures an Actuator.
type Options struct {
	Hold          time.Duration // time between key down and key up
	PreDelay      time.Duration // sleep before key down
	OneHoldPerKey bool
}

// Actuator dispatches one goroutine per press. Tasks are never cancelled.
type Actuator struct {
	logger   *slog.Logger
	kb       Keyboard
	rec      Recorder
	opts     Options
	inflight sync.Map // key -> struct{}, only with OneHoldPerKey
	wg       sync.WaitGroup
	sleep    func(time.Duration)
}

// New returns an Actuator. rec may be nil.
func New(logger *slog.Logger, kb Keyboard, rec Recorder, opts Options) *Actuator {
	if opts.Hold < 0 {
		opts.Hold = 0
	}
	if opts.PreDelay < 0 {
		opts.PreDelay = 0
	}
	return &Actuator{logger: logger, kb: kb, rec: rec, opts: opts, sleep: time.Sleep}
}

// Dispatch starts a press of key and returns immediately. It reports false
// when the press was dropped because a hold for key is still in flight.
func (a *Actuator) Dispatch(key string) bool {
	if a.opts.OneHoldPerKey {
		if _, busy := a.inflight.LoadOrStore(key, struct{}{}); busy {
			if a.logger != nil {
				a.logger.Debug("press dropped, hold in flight", "key", key)
			}
			return false
		}
	}
	a.wg.Add(1)
	go func() {
		defer a.wg.Done()
		defer recoverLog(a.logger, "actuator goroutine panic")
		if a.opts.OneHoldPerKey {
			defer a.inflight.Delete(key)
		}
		a.press(key)
	}()
	return true
}

// Wait blocks until every dispatched task has finished.
func (a *Actuator) Wait() { a.wg.Wait() }

func (a *Actuator) press(key string) {
	if a.opts.PreDelay > 0 {
		a.sleep(a.opts.PreDelay)
	}
	a.debugf("Pressing %s", key)
	if err := a.kb.KeyDown(key); err != nil {
		if a.logger != nil {
			a.logger.Warn("key down failed", "key", key, "error", err)
		}
		a.debugf("Key down failed: %s", key)
		return
	}
	a.sleep(a.opts.Hold)
	if err := a.kb.KeyUp(key); err != nil {
		if a.logger != nil {
			a.logger.Warn("key up failed", "key", key, "error", err)
		}
		a.debugf("Key up failed: %s", key)
	} else {
		a.debugf("Released %s", key)
	}
	if a.rec != nil {
		a.rec.RecordKeypress(key)
	}
}

func (a *Actuator) debugf(format string, args ...any) {
	if a.rec != nil {
		a.rec.Debugf(format, args...)
	}
}

func recoverLog(logger *slog.Logger, msg string) {
	if r := recover(); r != nil {
		if logger != nil {
			logger.Error(msg, "error", r)
		}
	}
}
