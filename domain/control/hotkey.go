package control

import (
	"log/slog"
	"sync"
	"time"
)

// DefaultHotkeyInterval is how often the pause key is polled.
const DefaultHotkeyInterval = 50 * time.Millisecond

// HotkeyWatcher polls a key and fires OnPress on each released to pressed
// edge, so holding the key fires once.
type HotkeyWatcher struct {
	Pressed  func() bool
	OnPress  func()
	Logger   *slog.Logger
	interval time.Duration

	mu      sync.Mutex
	running bool
	done    chan struct{}
	wg      sync.WaitGroup
}

// NewHotkeyWatcher constructs a watcher. interval <= 0 uses
// DefaultHotkeyInterval.
func NewHotkeyWatcher(pressed func() bool, onPress func(), logger *slog.Logger, interval time.Duration) *HotkeyWatcher {
	if interval <= 0 {
		interval = DefaultHotkeyInterval
	}
	return &HotkeyWatcher{Pressed: pressed, OnPress: onPress, Logger: logger, interval: interval}
}

// Start begins polling. Calling Start on a running watcher is a no-op.
func (w *HotkeyWatcher) Start() {
	if w == nil {
		return
	}
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.running {
		return
	}
	w.done = make(chan struct{})
	w.running = true
	w.wg.Add(1)
	go w.loop(w.done)
}

// Stop ends polling and waits for the poll goroutine to exit. It must not
// be called from OnPress.
func (w *HotkeyWatcher) Stop() {
	if w == nil {
		return
	}
	w.mu.Lock()
	defer w.mu.Unlock()
	if !w.running {
		return
	}
	close(w.done)
	w.running = false
	w.wg.Wait()
}

// Running reports whether the watcher is polling.
func (w *HotkeyWatcher) Running() bool {
	if w == nil {
		return false
	}
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.running
}

func (w *HotkeyWatcher) loop(done <-chan struct{}) {
	defer w.wg.Done()
	ticker := time.NewTicker(w.interval)
	defer ticker.Stop()
	wasDown := false
	for {
		select {
		case <-ticker.C:
			wasDown = w.poll(wasDown)
		case <-done:
			return
		}
	}
}

// poll fires OnPress when the key went down since the previous poll and
// returns the current key state.
func (w *HotkeyWatcher) poll(wasDown bool) bool {
	if w.Pressed == nil {
		return false
	}
	down := w.Pressed()
	if down && !wasDown {
		if w.Logger != nil {
			w.Logger.Debug("hotkey pressed")
		}
		if w.OnPress != nil {
			w.OnPress()
		}
	}
	return down
}
