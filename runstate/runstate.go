// Package runstate holds process-wide run statistics and control flags shared
// by the scan loop, actuator tasks, the control surface and the status UI.
package runstate

import (
	"fmt"
	"math"
	"sync"
	"sync/atomic"
	"time"
)

// DebugLogSize bounds the rolling debug message log.
const DebugLogSize = 5

// Snapshot is a value copy of RunState for readers.
type Snapshot struct {
	Paused     bool
	State      string
	Keypresses uint64
	LastAction string
	Throughput float64
	Started    time.Time
	Elapsed    time.Duration
	Debug      []string
}

// RunState is safe for concurrent use. Create it with New.
type RunState struct {
	paused     atomic.Bool
	keypresses atomic.Uint64
	fpsBits    atomic.Uint64
	debug      bool
	started    time.Time
	now        func() time.Time

	mu         sync.Mutex
	lastAction string
	state      string
	messages   []string
}

// New returns a RunState started now. When debug is false Debug calls are
// dropped.
func New(debug bool) *RunState {
	return newWithClock(debug, time.Now)
}

func newWithClock(debug bool, now func() time.Time) *RunState {
	return &RunState{debug: debug, started: now(), now: now, messages: make([]string, 0, DebugLogSize)}
}

// SetPaused stores the paused flag.
func (s *RunState) SetPaused(p bool) { s.paused.Store(p) }

// Paused reports the paused flag.
func (s *RunState) Paused() bool { return s.paused.Load() }

// RecordKeypress counts one completed press and sets the last action.
func (s *RunState) RecordKeypress(key string) {
	s.keypresses.Add(1)
	s.SetLastAction("Pressed " + key)
}

// Keypresses returns the cumulative keypress count.
func (s *RunState) Keypresses() uint64 { return s.keypresses.Load() }

// SetLastAction overwrites the last action description.
func (s *RunState) SetLastAction(a string) {
	s.mu.Lock()
	s.lastAction = a
	s.mu.Unlock()
}

// SetState records the scan loop state name.
func (s *RunState) SetState(name string) {
	s.mu.Lock()
	s.state = name
	s.mu.Unlock()
}

// SetThroughput publishes frames per second.
func (s *RunState) SetThroughput(fps float64) { s.fpsBits.Store(math.Float64bits(fps)) }

// Throughput returns the last published frames per second.
func (s *RunState) Throughput() float64 { return math.Float64frombits(s.fpsBits.Load()) }

// Debug appends a timestamped message to the rolling log, keeping the last
// DebugLogSize entries, and mirrors it into the last action.
func (s *RunState) Debug(msg string) {
	if !s.debug {
		return
	}
	line := fmt.Sprintf("[%s] %s", s.now().Format("15:04:05"), msg)
	s.mu.Lock()
	defer s.mu.Unlock()
	if len(s.messages) == DebugLogSize {
		copy(s.messages, s.messages[1:])
		s.messages = s.messages[:DebugLogSize-1]
	}
	s.messages = append(s.messages, line)
	s.lastAction = msg
}

// Debugf formats and records a debug message.
func (s *RunState) Debugf(format string, args ...any) {
	if !s.debug {
		return
	}
	s.Debug(fmt.Sprintf(format, args...))
}

// Snapshot returns a consistent copy for display.
func (s *RunState) Snapshot() Snapshot {
	s.mu.Lock()
	msgs := make([]string, len(s.messages))
	copy(msgs, s.messages)
	last, state := s.lastAction, s.state
	s.mu.Unlock()
	return Snapshot{
		Paused:     s.Paused(),
		State:      state,
		Keypresses: s.Keypresses(),
		LastAction: last,
		Throughput: s.Throughput(),
		Started:    s.started,
		Elapsed:    s.now().Sub(s.started),
		Debug:      msgs,
	}
}
