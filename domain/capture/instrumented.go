package capture

import (
	"image"
	"log/slog"
	"sync/atomic"
	"time"
)

const captureStatsLogInterval = 5 * time.Second

// Instrumented wraps a Grabber and records capture counts and latency.
// Stats are logged at debug level every few seconds from the grabbing
// goroutine.
type Instrumented struct {
	next         Grabber
	logger       *slog.Logger
	captures     atomic.Uint64
	failed       atomic.Uint64
	captureNanos atomic.Uint64
	lastCapture  atomic.Int64
	lastLog      atomic.Int64
	now          func() time.Time
}

// NewInstrumented wraps next.
func NewInstrumented(logger *slog.Logger, next Grabber) *Instrumented {
	g := &Instrumented{next: next, logger: logger, now: time.Now}
	g.lastLog.Store(g.now().UnixNano())
	return g
}

func (g *Instrumented) Grab(rect image.Rectangle) (*image.RGBA, error) {
	start := g.now()
	img, err := g.next.Grab(rect)
	if err != nil {
		g.failed.Add(1)
		return nil, err
	}
	end := g.now()
	g.captureNanos.Add(uint64(end.Sub(start).Nanoseconds()))
	g.captures.Add(1)
	g.lastCapture.Store(end.UnixNano())
	if last := g.lastLog.Load(); end.UnixNano()-last >= int64(captureStatsLogInterval) {
		if g.lastLog.CompareAndSwap(last, end.UnixNano()) {
			g.logStats()
		}
	}
	return img, nil
}

// Stats returns a copy of the counters.
func (g *Instrumented) Stats() Stats {
	captures := g.captures.Load()
	total := g.captureNanos.Load()
	var avg time.Duration
	if captures > 0 && total > 0 {
		avg = time.Duration(total / captures)
	}
	var last time.Time
	if n := g.lastCapture.Load(); n != 0 {
		last = time.Unix(0, n)
	}
	return Stats{
		Captures:    captures,
		Failed:      g.failed.Load(),
		AvgCapture:  avg,
		LastCapture: last,
	}
}

func (g *Instrumented) logStats() {
	if g.logger == nil {
		return
	}
	stats := g.Stats()
	g.logger.Debug("capture.stats",
		"captures", stats.Captures,
		"failed", stats.Failed,
		"avg_capture", stats.AvgCapture,
	)
}
