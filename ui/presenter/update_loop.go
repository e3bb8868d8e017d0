package presenter

import "time"

// Loop aggregates presenters and drives periodic updates.
//
// It calls Tick on the sub-presenters and invokes a scheduler callback. The
// zero value is usable (methods are nil-safe).
type Loop struct {
	Status   *StatusPresenter
	Preview  *PreviewPresenter
	Schedule func()
}

func NewLoop(status *StatusPresenter, preview *PreviewPresenter, schedule func()) *Loop {
	return &Loop{Status: status, Preview: preview, Schedule: schedule}
}

func (l *Loop) Tick() {
	if l == nil {
		return
	}
	now := time.Now()
	if l.Status != nil {
		l.Status.Tick(now)
	}
	if l.Preview != nil {
		l.Preview.Tick()
	}
	if l.Schedule != nil {
		l.Schedule()
	}
}
