package app

import (
	"log/slog"
	"os"

	"github.com/soocke/note-bot-go/config"
	"github.com/soocke/note-bot-go/domain/action"
	"github.com/soocke/note-bot-go/domain/actuate"
	"github.com/soocke/note-bot-go/domain/capture"
	"github.com/soocke/note-bot-go/domain/control"
	"github.com/soocke/note-bot-go/domain/detect"
	"github.com/soocke/note-bot-go/domain/marker"
	"github.com/soocke/note-bot-go/domain/probe"
	"github.com/soocke/note-bot-go/domain/scan"
	"github.com/soocke/note-bot-go/runstate"
)

// KeyboardDevice emits key events and reports physical key state.
type KeyboardDevice interface {
	actuate.Keyboard
	Pressed(key string) bool
}

// Platform holds the OS-facing collaborators. Zero fields get production
// implementations.
type Platform struct {
	Grabber     capture.Grabber
	Keyboard    KeyboardDevice
	OnTerminate func()
}

// Container assembles the domain services for one run.
type Container struct {
	Config   *config.Config
	Logger   *slog.Logger
	State    *runstate.RunState
	Registry *marker.Registry
	Detector detect.Detector
	Screen   capture.Grabber
	Grabber  *capture.Instrumented
	Keyboard KeyboardDevice
	Actuator *actuate.Actuator
	Control  *control.Surface
	Hotkeys  *control.HotkeyWatcher
	Loop     *scan.Loop
}

// BuildContainer constructs all components for the production platform.
func BuildContainer(cfg *config.Config, logger *slog.Logger) (*Container, error) {
	return BuildContainerWith(cfg, logger, Platform{})
}

// BuildContainerWith constructs all components. Side effects are limited to
// logging config warnings.
func BuildContainerWith(cfg *config.Config, logger *slog.Logger, p Platform) (*Container, error) {
	reg, err := marker.NewRegistry(cfg.Tables(), cfg.Padding)
	if err != nil {
		return nil, err
	}
	for _, w := range cfg.Warnings() {
		logger.Warn("config warning", "detail", w)
	}
	if p.Grabber == nil {
		p.Grabber = capture.NewScreenGrabber()
	}
	if p.Keyboard == nil {
		p.Keyboard = action.NewKeyboard()
	}
	if p.OnTerminate == nil {
		p.OnTerminate = func() { os.Exit(0) }
	}

	c := &Container{Config: cfg, Logger: logger, Registry: reg, Screen: p.Grabber, Keyboard: p.Keyboard}
	c.State = runstate.New(cfg.Debug)
	c.Detector = detect.New(cfg.ColorTolerance)
	c.Grabber = capture.NewInstrumented(logger, p.Grabber)
	c.Actuator = actuate.New(logger, p.Keyboard, c.State, actuate.Options{
		Hold:          cfg.Hold(),
		PreDelay:      cfg.HitDelay(),
		OneHoldPerKey: cfg.OneHoldPerKey,
	})
	failsafeKey := cfg.FailsafeKey
	c.Control = control.NewSurface(c.State, logger, func() bool { return p.Keyboard.Pressed(failsafeKey) })
	pauseKey := cfg.PauseKey
	c.Hotkeys = control.NewHotkeyWatcher(func() bool { return p.Keyboard.Pressed(pauseKey) }, func() { c.Control.Toggle() }, logger, 0)
	c.Loop = scan.NewLoop(scan.Deps{
		Logger:      logger,
		Grabber:     c.Grabber,
		Registry:    reg,
		Detector:    c.Detector,
		Dispatcher:  c.Actuator,
		Control:     c.Control,
		Recorder:    c.State,
		BaseDelay:   cfg.BaseDelay(),
		OnTerminate: p.OnTerminate,
	})
	return c, nil
}

// Probe runs a one-shot probe against the configured region. It grabs
// through the raw screen so capture stats only count scan loop frames.
func (c *Container) Probe() (*probe.Report, error) {
	return probe.Run(c.Screen, c.Registry, c.Detector)
}
