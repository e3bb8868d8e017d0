package app

import (
	"context"

	"github.com/soocke/note-bot-go/debug"
	"github.com/soocke/note-bot-go/ui/model"
	"github.com/soocke/note-bot-go/ui/presenter"
	"github.com/soocke/note-bot-go/ui/view"

	tk "modernc.org/tk9.0"
)

// previewEvery is the lane preview refresh period in UI ticks.
const previewEvery = 20

// runWindow shows the status window on the calling goroutine until it is
// closed or the loop ends. It returns the loop error when the loop ended
// first, nil otherwise.
func runWindow(c *Container, cancel context.CancelFunc, done <-chan error) error {
	cfg := c.Config
	win := view.NewStatusWindow()

	var stats func() debug.ProcessStats
	var preview *presenter.PreviewPresenter
	if cfg.Debug {
		stats = debug.Sample
		preview = presenter.NewPreviewPresenter(c.Probe, win, previewEvery)
	}
	status := presenter.NewStatusPresenter(c.State, c.Control, win, model.NewActivityModel(), stats)

	var afterID string
	var loopErr error
	exit := func() {
		if afterID != "" {
			tk.TclAfterCancel(afterID)
			afterID = ""
		}
		cancel()
		win.Close()
	}
	win.Build("Note Bot", cfg.Debug, status.TogglePause, exit)

	var loop *presenter.Loop
	loop = presenter.NewLoop(status, preview, func() {
		select {
		case err := <-done:
			loopErr = err
			if loopErr == nil {
				loopErr = context.Canceled
			}
			c.Logger.Info("scan loop ended, closing window")
			exit()
			return
		default:
		}
		// Schedule the next update using TclAfter to stay on Tk's event loop thread.
		afterID = tk.TclAfter(cfg.UpdateInterval(), func() { loop.Tick() })
	})
	loop.Tick()
	win.Run()
	return loopErr
}
