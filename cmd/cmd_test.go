package cmd

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/soocke/note-bot-go/apperr"
	"github.com/soocke/note-bot-go/assets"
)

// execute runs rootCmd with args and resets flag state afterwards.
func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	var out bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetErr(&out)
	rootCmd.SetArgs(args)
	t.Cleanup(func() {
		cfgFile, forceDebug, initForce, probeOut = "config.json", false, false, ""
		rootCmd.SetArgs(nil)
	})
	err := rootCmd.Execute()
	return out.String(), err
}

func TestInit_WritesDefaultConfig(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.json")
	out, err := execute(t, "init", "--config", path)
	if err != nil {
		t.Fatalf("init: %v", err)
	}
	if !strings.Contains(out, "wrote") {
		t.Fatalf("unexpected output %q", out)
	}
	got, err := os.ReadFile(path)
	if err != nil || !bytes.Equal(got, assets.DefaultConfigJSON) {
		t.Fatalf("config not written: %v", err)
	}
}

func TestInit_RefusesOverwrite(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.json")
	if err := os.WriteFile(path, []byte("{}"), 0o644); err != nil {
		t.Fatal(err)
	}
	if _, err := execute(t, "init", "-c", path); !apperr.IsKind(err, apperr.KindConfig) {
		t.Fatalf("expected config error, got %v", err)
	}
	if _, err := execute(t, "init", "-c", path, "--force"); err != nil {
		t.Fatalf("force init: %v", err)
	}
}

func TestRun_MissingConfig(t *testing.T) {
	path := filepath.Join(t.TempDir(), "missing.json")
	_, err := execute(t, "run", "-c", path)
	if !apperr.IsKind(err, apperr.KindConfig) || !strings.Contains(err.Error(), "note-bot init") {
		t.Fatalf("expected config error suggesting init, got %v", err)
	}
}

func TestLoadConfig_DebugFlag(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.json")
	if err := os.WriteFile(path, assets.DefaultConfigJSON, 0o644); err != nil {
		t.Fatal(err)
	}
	cfgFile, forceDebug = path, true
	t.Cleanup(func() { cfgFile, forceDebug = "config.json", false })
	cfg, err := loadConfig()
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if !cfg.Debug {
		t.Fatalf("--debug should force debug mode")
	}
}
