package control

import (
	"sync"
	"sync/atomic"
	"testing"
	"time"
)

type fakeState struct {
	mu     sync.Mutex
	paused bool
	last   string
	debug  []string
}

func (f *fakeState) SetPaused(p bool) { f.mu.Lock(); f.paused = p; f.mu.Unlock() }
func (f *fakeState) Paused() bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.paused
}
func (f *fakeState) SetLastAction(a string) { f.mu.Lock(); f.last = a; f.mu.Unlock() }
func (f *fakeState) Debug(m string)         { f.mu.Lock(); f.debug = append(f.debug, m); f.mu.Unlock() }

func TestSurface_ToggleFlipsAndRecords(t *testing.T) {
	st := &fakeState{}
	s := NewSurface(st, nil, nil)
	if !s.Toggle() || !s.Paused() || st.last != "Paused" {
		t.Fatalf("first toggle should pause: %+v", st)
	}
	if s.Toggle() || s.Paused() || st.last != "Resumed" {
		t.Fatalf("second toggle should resume: %+v", st)
	}
	if len(st.debug) != 2 {
		t.Fatalf("expected 2 debug entries, got %v", st.debug)
	}
}

func TestSurface_ConcurrentTogglesBalance(t *testing.T) {
	st := &fakeState{}
	s := NewSurface(st, nil, nil)
	var wg sync.WaitGroup
	for i := 0; i < 100; i++ {
		wg.Add(1)
		go func() { defer wg.Done(); s.Toggle() }()
	}
	wg.Wait()
	if s.Paused() {
		t.Fatalf("an even number of toggles must end unpaused")
	}
}

func TestSurface_Failsafe(t *testing.T) {
	if NewSurface(&fakeState{}, nil, nil).Failsafe() {
		t.Fatalf("nil failsafe must report false")
	}
	if !NewSurface(&fakeState{}, nil, func() bool { return true }).Failsafe() {
		t.Fatalf("failsafe should reflect the probe")
	}
}

// waitFor polls cond until it holds or timeout elapses.
func waitFor(t *testing.T, cond func() bool, timeout time.Duration) {
	t.Helper()
	deadline := time.Now().Add(timeout)
	for time.Now().Before(deadline) {
		if cond() {
			return
		}
		time.Sleep(2 * time.Millisecond)
	}
	t.Fatalf("condition not met within %v", timeout)
}

func TestHotkeyWatcher_FiresOncePerEdge(t *testing.T) {
	var down atomic.Bool
	var fired atomic.Int32
	w := NewHotkeyWatcher(down.Load, func() { fired.Add(1) }, nil, 2*time.Millisecond)
	w.Start()
	defer w.Stop()

	down.Store(true)
	waitFor(t, func() bool { return fired.Load() == 1 }, time.Second)
	time.Sleep(30 * time.Millisecond) // key held across many polls
	if fired.Load() != 1 {
		t.Fatalf("holding the key must not repeat, fired %d", fired.Load())
	}
	down.Store(false)
	time.Sleep(20 * time.Millisecond)
	down.Store(true)
	waitFor(t, func() bool { return fired.Load() == 2 }, time.Second)
}

func TestHotkeyWatcher_StopHaltsPolling(t *testing.T) {
	var polls atomic.Int32
	w := NewHotkeyWatcher(func() bool { polls.Add(1); return false }, nil, nil, 2*time.Millisecond)
	w.Start()
	waitFor(t, func() bool { return polls.Load() > 0 }, time.Second)
	w.Stop()
	if w.Running() {
		t.Fatalf("watcher should report stopped")
	}
	time.Sleep(10 * time.Millisecond)
	n := polls.Load()
	time.Sleep(20 * time.Millisecond)
	if polls.Load() != n {
		t.Fatalf("polling continued after stop")
	}
}

func TestHotkeyWatcher_StopWaitsForPollGoroutine(t *testing.T) {
	var polls atomic.Int32
	w := NewHotkeyWatcher(func() bool { polls.Add(1); return false }, nil, nil, time.Millisecond)
	w.Start()
	waitFor(t, func() bool { return polls.Load() > 0 }, time.Second)
	w.Stop()
	n := polls.Load()
	time.Sleep(10 * time.Millisecond)
	if polls.Load() != n {
		t.Fatalf("poll ran after Stop returned")
	}
}

func TestHotkeyWatcher_RestartWhileHeld(t *testing.T) {
	var presses atomic.Int32
	w := NewHotkeyWatcher(func() bool { return true }, func() { presses.Add(1) }, nil, time.Millisecond)

	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := 0; j < 20; j++ {
				w.Start()
				w.Stop()
			}
		}()
	}
	wg.Wait()
	if w.Running() {
		t.Fatalf("watcher should be stopped after balanced start/stop")
	}

	// Each run starts from a released baseline, so a held key fires once
	// per restart.
	before := presses.Load()
	w.Start()
	defer w.Stop()
	waitFor(t, func() bool { return presses.Load() == before+1 }, time.Second)
	time.Sleep(10 * time.Millisecond)
	if got := presses.Load(); got != before+1 {
		t.Fatalf("held key fired %d times after restart, want 1", got-before)
	}
}
