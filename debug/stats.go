package debug

// Process metrics for the status window and the debug stats logger.

import (
	"context"
	"log/slog"
	"runtime"
	"runtime/metrics"
	"time"
)

// ProcessStats is a point-in-time sample of process resource usage.
type ProcessStats struct {
	Goroutines uint64
	HeapAlloc  uint64
	StackInuse uint64
	NumGC      uint32
	RSS        uint64 // 0 when the platform query is unavailable
}

// Sample reads the current process stats.
func Sample() ProcessStats {
	st, _ := sample()
	return st
}

func sample() (ProcessStats, error) {
	samples := []metrics.Sample{{Name: "/sched/goroutines:goroutines"}}
	metrics.Read(samples)
	var goroutines uint64
	if samples[0].Value.Kind() == metrics.KindUint64 {
		goroutines = samples[0].Value.Uint64()
	}
	var ms runtime.MemStats
	runtime.ReadMemStats(&ms)
	rss, err := residentSetSize()
	return ProcessStats{
		Goroutines: goroutines,
		HeapAlloc:  ms.HeapAlloc,
		StackInuse: ms.StackInuse,
		NumGC:      ms.NumGC,
		RSS:        rss,
	}, err
}

// StartStatsLogger logs a ProcessStats sample every interval until ctx is
// done. Started only in debug mode.
func StartStatsLogger(ctx context.Context, interval time.Duration, logger *slog.Logger) {
	if interval <= 0 {
		interval = 2 * time.Second
	}
	go func() {
		t := time.NewTicker(interval)
		defer t.Stop()
		var rssErrLogged bool
		for {
			select {
			case <-ctx.Done():
				return
			case <-t.C:
			}
			st, err := sample()
			if err != nil && !rssErrLogged {
				logger.Warn("process.stats: rss query failed", slog.String("err", err.Error()))
				rssErrLogged = true
			}
			logger.Info("process.stats",
				slog.Uint64("goroutines", st.Goroutines),
				slog.Uint64("heap_alloc", st.HeapAlloc),
				slog.Uint64("stack_inuse", st.StackInuse),
				slog.Uint64("num_gc", uint64(st.NumGC)),
				slog.Uint64("rss", st.RSS),
			)
		}
	}()
}
