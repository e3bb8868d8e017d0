package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"sort"
	"strings"
	"time"

	"github.com/spf13/viper"

	"github.com/soocke/note-bot-go/apperr"
	"github.com/soocke/note-bot-go/domain/action"
	"github.com/soocke/note-bot-go/domain/marker"
)

// DefaultPath is the config file used when no --config flag is given.
const DefaultPath = "config.json"

// DebugPanel controls the status window.
type DebugPanel struct {
	Enabled bool `mapstructure:"enabled"`
}

// Config holds runtime configuration for the bot. Keys are read
// case-insensitively, so upper-case JSON keys load as-is.
type Config struct {
	BaseDelayMS    int    `mapstructure:"base_delay_ms"`
	ReleaseDelayMS int    `mapstructure:"release_delay_ms"`
	HitDelayMS     int    `mapstructure:"hit_delay_ms"`
	ColorTolerance int    `mapstructure:"color_tolerance"`
	Padding        int    `mapstructure:"padding"`
	FailsafeKey    string `mapstructure:"failsafe_key"`
	PauseKey       string `mapstructure:"pause_key"`
	Debug          bool   `mapstructure:"debug"`
	OneHoldPerKey  bool   `mapstructure:"one_hold_per_key"`

	NoteCoords  map[string][]int  `mapstructure:"note_coords"`
	NoteColors  map[string][]int  `mapstructure:"note_colors"`
	KeyBindings map[string]string `mapstructure:"key_bindings"`

	DebugPanel      DebugPanel `mapstructure:"debug_panel"`
	DebugUpdateRate float64    `mapstructure:"debug_update_rate"` // seconds
}

// DefaultConfig returns a Config populated with standard defaults and empty
// marker tables.
func DefaultConfig() *Config {
	return &Config{
		BaseDelayMS:     0,
		ReleaseDelayMS:  20,
		HitDelayMS:      0,
		ColorTolerance:  40,
		Padding:         2,
		FailsafeKey:     "esc",
		PauseKey:        "p",
		Debug:           false,
		OneHoldPerKey:   false,
		NoteCoords:      map[string][]int{},
		NoteColors:      map[string][]int{},
		KeyBindings:     map[string]string{},
		DebugPanel:      DebugPanel{Enabled: true},
		DebugUpdateRate: 0.05,
	}
}

func setDefaults(v *viper.Viper) {
	d := DefaultConfig()
	v.SetDefault("base_delay_ms", d.BaseDelayMS)
	v.SetDefault("release_delay_ms", d.ReleaseDelayMS)
	v.SetDefault("hit_delay_ms", d.HitDelayMS)
	v.SetDefault("color_tolerance", d.ColorTolerance)
	v.SetDefault("padding", d.Padding)
	v.SetDefault("failsafe_key", d.FailsafeKey)
	v.SetDefault("pause_key", d.PauseKey)
	v.SetDefault("debug", d.Debug)
	v.SetDefault("one_hold_per_key", d.OneHoldPerKey)
	v.SetDefault("debug_panel.enabled", d.DebugPanel.Enabled)
	v.SetDefault("debug_update_rate", d.DebugUpdateRate)
}

// Validate clamps scalar values to safe ranges and rejects marker tables or
// key names that cannot be used.
func (c *Config) Validate() error {
	if c.BaseDelayMS < 0 {
		c.BaseDelayMS = 0
	}
	if c.ReleaseDelayMS < 0 {
		c.ReleaseDelayMS = 0
	}
	if c.HitDelayMS < 0 {
		c.HitDelayMS = 0
	}
	if c.ColorTolerance < 0 {
		c.ColorTolerance = 0
	}
	if c.Padding < 0 {
		c.Padding = 0
	}
	if c.DebugUpdateRate <= 0 {
		c.DebugUpdateRate = 0.05
	}
	c.FailsafeKey = strings.ToLower(strings.TrimSpace(c.FailsafeKey))
	if c.FailsafeKey == "" {
		c.FailsafeKey = "esc"
	}
	c.PauseKey = strings.ToLower(strings.TrimSpace(c.PauseKey))
	if c.PauseKey == "" {
		c.PauseKey = "p"
	}
	if _, ok := action.ParseVK(c.FailsafeKey); !ok {
		return apperr.Newf(apperr.KindConfig, "config.validate", "unknown failsafe key %q", c.FailsafeKey)
	}
	if _, ok := action.ParseVK(c.PauseKey); !ok {
		return apperr.Newf(apperr.KindConfig, "config.validate", "unknown pause key %q", c.PauseKey)
	}
	for _, name := range sortedKeys(c.KeyBindings) {
		key := strings.ToLower(strings.TrimSpace(c.KeyBindings[name]))
		c.KeyBindings[name] = key
		if _, ok := action.ParseVK(key); !ok {
			return apperr.Newf(apperr.KindConfig, "config.validate", "unknown key %q", key).
				WithMetadata("marker", name)
		}
	}
	if _, err := marker.NewRegistry(c.Tables(), c.Padding); err != nil {
		return err
	}
	return nil
}

// Tables returns the marker tables for marker.NewRegistry.
func (c *Config) Tables() marker.Tables {
	return marker.Tables{Coords: c.NoteCoords, Colors: c.NoteColors, Keys: c.KeyBindings}
}

// Warnings lists non-fatal configuration problems.
func (c *Config) Warnings() []string {
	var out []string
	seen := make(map[[2]int]string)
	for _, name := range sortedKeys(c.NoteCoords) {
		p := c.NoteCoords[name]
		if len(p) != 2 {
			continue
		}
		k := [2]int{p[0], p[1]}
		if other, ok := seen[k]; ok {
			out = append(out, fmt.Sprintf("markers %q and %q share position (%d,%d); %q wins", other, name, p[0], p[1], name))
		}
		seen[k] = name
	}
	return out
}

// BaseDelay is the pacing sleep after each loop iteration.
func (c *Config) BaseDelay() time.Duration { return ms(c.BaseDelayMS) }

// Hold is the time between key down and key up.
func (c *Config) Hold() time.Duration { return ms(c.ReleaseDelayMS) }

// HitDelay is the sleep before key down.
func (c *Config) HitDelay() time.Duration { return ms(c.HitDelayMS) }

// UpdateInterval is the status window refresh period.
func (c *Config) UpdateInterval() time.Duration {
	return time.Duration(c.DebugUpdateRate * float64(time.Second))
}

func ms(v int) time.Duration { return time.Duration(v) * time.Millisecond }

// Load reads configuration from the JSON file at path, applies defaults for
// missing scalars and validates the result.
func Load(path string) (*Config, error) {
	if path == "" {
		path = DefaultPath
	}
	if _, err := os.Stat(path); err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, apperr.Wrapf(err, apperr.KindConfig, "config.load", "%s not found, run `note-bot init` to create one", path)
		}
		return nil, apperr.Wrap(err, apperr.KindConfig, "config.load", "stat config")
	}
	v := viper.New()
	setDefaults(v)
	v.SetConfigFile(path)
	v.SetConfigType("json")
	if err := v.ReadInConfig(); err != nil {
		return nil, apperr.Wrap(err, apperr.KindConfig, "config.load", "reading config file").
			WithMetadata("path", path)
	}
	cfg := DefaultConfig()
	if err := v.Unmarshal(cfg); err != nil {
		return nil, apperr.Wrap(err, apperr.KindConfig, "config.load", "unmarshalling config").
			WithMetadata("path", path)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func sortedKeys[V any](m map[string]V) []string {
	out := make([]string, 0, len(m))
	for k := range m {
		out = append(out, k)
	}
	sort.Strings(out)
	return out
}
