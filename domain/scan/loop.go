// Package scan runs the capture, detect and dispatch loop.
package scan

import (
	"context"
	"image"
	"log/slog"
	"sync"
	"time"

	"github.com/soocke/note-bot-go/apperr"
	"github.com/soocke/note-bot-go/domain/capture"
	"github.com/soocke/note-bot-go/domain/detect"
	"github.com/soocke/note-bot-go/domain/marker"
)

// DefaultPausedIdle is the sleep between checks while paused.
const DefaultPausedIdle = 100 * time.Millisecond

// Deps are the collaborators of a Loop. Recorder and OnTerminate may be nil.
type Deps struct {
	Logger      *slog.Logger
	Grabber     capture.Grabber
	Registry    *marker.Registry
	Detector    detect.Detector
	Dispatcher  Dispatcher
	Control     Control
	Recorder    Recorder
	BaseDelay   time.Duration // pacing after each running iteration
	PausedIdle  time.Duration
	OnTerminate func() // invoked once on entering StateTerminated
}

// Loop is the scan state machine. Run it from a single goroutine.
type Loop struct {
	deps    Deps
	region  image.Rectangle
	markers []marker.Marker

	mu        sync.Mutex
	state     State
	listeners []StateListener

	previous detect.KeySet
	frames   int
	since    time.Time
	now      func() time.Time
	sleep    func(ctx context.Context, d time.Duration)
}

// NewLoop returns a loop in StateRunning.
func NewLoop(d Deps) *Loop {
	if d.PausedIdle <= 0 {
		d.PausedIdle = DefaultPausedIdle
	}
	if d.BaseDelay < 0 {
		d.BaseDelay = 0
	}
	l := &Loop{deps: d, state: StateRunning, previous: detect.NewKeySet(), now: time.Now, sleep: sleepCtx}
	if d.Registry != nil {
		l.region = d.Registry.Region()
		l.markers = d.Registry.Markers()
	}
	if d.Recorder != nil {
		d.Recorder.SetState(StateRunning.String())
	}
	return l
}

// AddListener registers l for future transitions.
func (l *Loop) AddListener(fn StateListener) {
	l.mu.Lock()
	l.listeners = append(l.listeners, fn)
	l.mu.Unlock()
}

// Current returns the current state.
func (l *Loop) Current() State {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.state
}

// Run iterates until the failsafe fires (returns nil), ctx is cancelled
// (returns ctx.Err()) or a capture or detect error occurs.
func (l *Loop) Run(ctx context.Context) error {
	l.since = l.now()
	l.frames = 0
	if l.deps.Logger != nil {
		l.deps.Logger.Info("scan loop started", "region", l.region.String(), "markers", len(l.markers))
	}
	for {
		if err := ctx.Err(); err != nil {
			return err
		}
		done, err := l.Step(ctx)
		if err != nil {
			if l.deps.Logger != nil {
				l.deps.Logger.Error("scan loop stopped", "error", err)
			}
			return err
		}
		if done {
			return nil
		}
	}
}

// Step runs one iteration and reports whether the loop has terminated.
func (l *Loop) Step(ctx context.Context) (bool, error) {
	if l.Current() == StateTerminated {
		return true, nil
	}
	if l.deps.Control != nil && l.deps.Control.Failsafe() {
		l.terminate()
		return true, nil
	}
	if l.deps.Control != nil && l.deps.Control.Paused() {
		l.transition(StatePaused)
		l.sleep(ctx, l.deps.PausedIdle)
		return false, nil
	}
	if l.transition(StateRunning) {
		// paused time does not count toward throughput
		l.since = l.now()
		l.frames = 0
	}

	frame, err := l.deps.Grabber.Grab(l.region)
	if err != nil {
		return false, apperr.Wrap(err, apperr.KindCapture, "scan.capture", "grab frame").
			WithMetadata("region", l.region.String())
	}
	if frame == nil {
		return false, apperr.New(apperr.KindDetect, "scan.detect", "nil frame")
	}
	current := l.deps.Detector.Detect(frame, l.markers)
	for _, key := range current.Minus(l.previous) {
		if l.deps.Logger != nil {
			l.deps.Logger.Debug("note detected", "key", key)
		}
		l.deps.Dispatcher.Dispatch(key)
	}
	l.previous = current
	l.countFrame()

	if l.deps.BaseDelay > 0 {
		l.sleep(ctx, l.deps.BaseDelay)
	}
	return false, nil
}

func (l *Loop) countFrame() {
	l.frames++
	now := l.now()
	elapsed := now.Sub(l.since)
	if elapsed < time.Second {
		return
	}
	fps := float64(l.frames) / elapsed.Seconds()
	if l.deps.Recorder != nil {
		l.deps.Recorder.SetThroughput(fps)
	}
	l.frames = 0
	l.since = now
}

func (l *Loop) terminate() {
	if l.deps.Logger != nil {
		l.deps.Logger.Warn("failsafe triggered, exiting")
	}
	if l.deps.Recorder != nil {
		l.deps.Recorder.Debug("Failsafe triggered, exiting")
	}
	l.transition(StateTerminated)
	if l.deps.OnTerminate != nil {
		l.deps.OnTerminate()
	}
}

// transition moves to next and notifies listeners. It reports whether the
// state changed.
func (l *Loop) transition(next State) bool {
	l.mu.Lock()
	prev := l.state
	if prev == next || prev == StateTerminated {
		l.mu.Unlock()
		return false
	}
	l.state = next
	listeners := append([]StateListener(nil), l.listeners...)
	l.mu.Unlock()

	if l.deps.Recorder != nil {
		l.deps.Recorder.SetState(next.String())
	}
	if l.deps.Logger != nil {
		l.deps.Logger.Debug("scan state transition", "from", prev.String(), "to", next.String())
	}
	for _, fn := range listeners {
		fn(prev, next)
	}
	return true
}

func sleepCtx(ctx context.Context, d time.Duration) {
	if d <= 0 {
		return
	}
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-t.C:
	case <-ctx.Done():
	}
}
