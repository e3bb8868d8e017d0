package model

import (
	"testing"
	"time"
)

func TestActivityModel_Lifecycle(t *testing.T) {
	m := NewActivityModel()
	base := time.Unix(0, 0)

	// Run for 5s.
	m.OnTick(true, base)
	m.OnTick(true, base.Add(5*time.Second))
	stretch, active, paused := m.Values()
	if stretch != 5*time.Second || active != 5*time.Second || paused != 0 {
		t.Fatalf("after 5s running: stretch=%v active=%v paused=%v", stretch, active, paused)
	}

	// Pause at 5s and stay paused 2s.
	m.OnTick(false, base.Add(5*time.Second))
	m.OnTick(false, base.Add(7*time.Second))
	stretch, active, paused = m.Values()
	if stretch != 2*time.Second || active != 5*time.Second || paused != 2*time.Second {
		t.Fatalf("after pause: stretch=%v active=%v paused=%v", stretch, active, paused)
	}
	if m.Pauses() != 1 {
		t.Fatalf("expected 1 pause, got %d", m.Pauses())
	}

	// Resume at 7s, run 3s.
	m.OnTick(true, base.Add(7*time.Second))
	m.OnTick(true, base.Add(10*time.Second))
	stretch, active, paused = m.Values()
	if stretch != 3*time.Second || active != 8*time.Second || paused != 2*time.Second {
		t.Fatalf("after resume: stretch=%v active=%v paused=%v", stretch, active, paused)
	}
}

func TestActivityModel_NilSafe(t *testing.T) {
	var m *ActivityModel
	m.OnTick(true, time.Now())
	if s, a, p := m.Values(); s != 0 || a != 0 || p != 0 || m.Pauses() != 0 {
		t.Fatalf("nil model should report zeros")
	}
}
