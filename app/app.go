package app

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/soocke/note-bot-go/debug"
	"github.com/soocke/note-bot-go/domain/capture"
)

const statsLogInterval = 5 * time.Second

// App runs the scan loop with its pollers and, when enabled, the status
// window.
type App struct {
	c      *Container
	logger *slog.Logger
}

func NewApp(c *Container) *App { return &App{c: c, logger: c.Logger} }

// Run blocks until the loop ends. Without the status window the only exits
// are the failsafe, a fatal capture error or ctx cancellation. Closing the
// window stops the loop gracefully and returns nil.
func (a *App) Run(ctx context.Context) error {
	cfg := a.c.Config
	region := a.c.Registry.Region()
	a.logger.Info("bot started",
		"markers", a.c.Registry.Len(),
		"region", region.String(),
		"tolerance", cfg.ColorTolerance,
		"hold_ms", cfg.ReleaseDelayMS,
		"hit_delay_ms", cfg.HitDelayMS,
		"failsafe_key", cfg.FailsafeKey,
		"pause_key", cfg.PauseKey,
	)
	a.c.State.Debug(fmt.Sprintf("Bot started, %d markers, failsafe %s, pause %s", a.c.Registry.Len(), cfg.FailsafeKey, cfg.PauseKey))
	a.checkRegion()

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	a.c.Hotkeys.Start()
	defer a.c.Hotkeys.Stop()
	if cfg.Debug {
		debug.StartStatsLogger(ctx, statsLogInterval, a.logger)
	}

	if !cfg.DebugPanel.Enabled {
		return a.c.Loop.Run(ctx)
	}

	done := make(chan error, 1)
	go func() {
		defer func() {
			if r := recover(); r != nil {
				a.logger.Error("scan loop panic", "error", r)
				done <- fmt.Errorf("scan loop panic: %v", r)
			}
		}()
		done <- a.c.Loop.Run(ctx)
	}()

	loopErr := runWindow(a.c, cancel, done)
	cancel()
	if loopErr == nil {
		loopErr = <-done
	}
	if errors.Is(loopErr, context.Canceled) {
		return nil
	}
	return loopErr
}

// checkRegion warns when the capture region is not fully on the primary
// display.
func (a *App) checkRegion() {
	screen, err := capture.ScreenBounds()
	if err != nil {
		a.logger.Warn("screen bounds unavailable", "error", err)
		return
	}
	if region := a.c.Registry.Region(); !region.In(screen) {
		a.logger.Warn("capture region extends beyond the primary display", "region", region.String(), "screen", screen.String())
	}
}
