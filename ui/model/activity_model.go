package model

import (
	"time"
)

// ActivityModel tracks how long the bot has been running versus paused.
// Presenters feed it the paused flag on every tick. The zero value is ready
// to use.
type ActivityModel struct {
	started    bool
	running    bool
	stretchAt  time.Time
	stretch    time.Duration
	active     time.Duration
	paused     time.Duration
	pauseCount int
	last       time.Time
}

// NewActivityModel returns a ready-to-use ActivityModel.
func NewActivityModel() *ActivityModel { return &ActivityModel{} }

// OnTick advances the model to now with the current running state.
func (m *ActivityModel) OnTick(running bool, now time.Time) {
	if m == nil {
		return
	}
	if !m.started {
		m.started = true
		m.running = running
		m.stretchAt = now
		m.last = now
		return
	}
	delta := now.Sub(m.last)
	if delta < 0 {
		delta = 0
	}
	if m.running {
		m.active += delta
	} else {
		m.paused += delta
	}
	m.last = now
	if running != m.running {
		if !running {
			m.pauseCount++
		}
		m.running = running
		m.stretchAt = now
	}
	m.stretch = now.Sub(m.stretchAt)
}

// Values returns the length of the current running or paused stretch and
// the accumulated running and paused time.
func (m *ActivityModel) Values() (stretch, active, paused time.Duration) {
	if m == nil {
		return 0, 0, 0
	}
	return m.stretch, m.active, m.paused
}

// Pauses returns how many times the bot was paused.
func (m *ActivityModel) Pauses() int {
	if m == nil {
		return 0
	}
	return m.pauseCount
}
