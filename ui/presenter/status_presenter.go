package presenter

import (
	"fmt"
	"strings"
	"time"

	"github.com/soocke/note-bot-go/debug"
	"github.com/soocke/note-bot-go/runstate"
	"github.com/soocke/note-bot-go/ui/model"
)

// SnapshotSource provides read-only run state.
type SnapshotSource interface {
	Snapshot() runstate.Snapshot
}

// Toggler flips pause and returns the new paused value.
type Toggler interface {
	Toggle() bool
}

// StatusView displays run state. All methods are called on the Tk thread.
type StatusView interface {
	SetState(text string, paused bool)
	SetCounters(keypresses uint64, fps float64)
	SetLastAction(text string)
	SetActivity(stretch, active, paused time.Duration)
	SetProcess(text string)
	SetDebugLog(lines []string)
	SetPauseLabel(text string)
}

// StatusPresenter pushes run state snapshots to the status view.
type StatusPresenter struct {
	src      SnapshotSource
	toggle   Toggler
	view     StatusView
	activity *model.ActivityModel
	stats    func() debug.ProcessStats

	lastState  string
	lastPaused bool
	lastAction string
	lastDebug  string
}

// NewStatusPresenter returns a presenter. stats may be nil to hide process
// stats.
func NewStatusPresenter(src SnapshotSource, toggle Toggler, view StatusView, activity *model.ActivityModel, stats func() debug.ProcessStats) *StatusPresenter {
	return &StatusPresenter{src: src, toggle: toggle, view: view, activity: activity, stats: stats, lastState: "-"}
}

// Tick reads a snapshot and updates the view where values changed.
func (p *StatusPresenter) Tick(now time.Time) {
	if p == nil || p.src == nil || p.view == nil {
		return
	}
	snap := p.src.Snapshot()
	if snap.State != p.lastState || snap.Paused != p.lastPaused {
		p.lastState, p.lastPaused = snap.State, snap.Paused
		state := snap.State
		if snap.Paused {
			state = "paused"
		}
		p.view.SetState("State: "+state, snap.Paused)
		if snap.Paused {
			p.view.SetPauseLabel("Resume")
		} else {
			p.view.SetPauseLabel("Pause")
		}
	}
	p.view.SetCounters(snap.Keypresses, snap.Throughput)
	if snap.LastAction != p.lastAction {
		p.lastAction = snap.LastAction
		p.view.SetLastAction("Last: " + snap.LastAction)
	}
	if p.activity != nil {
		p.activity.OnTick(!snap.Paused, now)
		p.view.SetActivity(p.activity.Values())
	}
	if joined := strings.Join(snap.Debug, "\n"); joined != p.lastDebug {
		p.lastDebug = joined
		p.view.SetDebugLog(snap.Debug)
	}
	if p.stats != nil {
		st := p.stats()
		p.view.SetProcess(fmt.Sprintf("goroutines %d  heap %s  rss %s", st.Goroutines, formatBytes(st.HeapAlloc), formatBytes(st.RSS)))
	}
}

// TogglePause is the pause button handler.
func (p *StatusPresenter) TogglePause() {
	if p == nil || p.toggle == nil {
		return
	}
	p.toggle.Toggle()
	p.Tick(time.Now())
}

func formatBytes(n uint64) string {
	const mib = 1 << 20
	if n == 0 {
		return "-"
	}
	return fmt.Sprintf("%.1fMiB", float64(n)/mib)
}
