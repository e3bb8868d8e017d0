package cmd

import (
	"context"
	"log/slog"
	"os"
	"os/signal"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"github.com/soocke/note-bot-go/config"
)

var (
	cfgFile    string
	forceDebug bool

	logger   *slog.Logger
	logLevel *slog.LevelVar
)

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "note-bot",
	Short: "Note Bot",
	Long: `Watches fixed screen positions for colored note markers and presses the
bound key when a note arrives. Hold the failsafe key (default esc) to exit
and tap the pause key (default p) to pause or resume.`,
	SilenceUsage: true,
	RunE:         runBot,
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute(l *slog.Logger, level *slog.LevelVar) {
	logLevel = level
	logger = l.With("session", uuid.NewString())
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	err := rootCmd.ExecuteContext(ctx)
	stop()
	if err != nil {
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&cfgFile, "config", "c", config.DefaultPath, "config file")
	rootCmd.PersistentFlags().BoolVarP(&forceDebug, "debug", "d", false, "enable debug mode and debug logging")
	rootCmd.AddCommand(runCmd, probeCmd, initCmd)
}

// loadConfig reads the config file and applies the debug flag.
func loadConfig() (*config.Config, error) {
	cfg, err := config.Load(cfgFile)
	if err != nil {
		return nil, err
	}
	if forceDebug {
		cfg.Debug = true
	}
	if cfg.Debug && logLevel != nil {
		logLevel.Set(slog.LevelDebug)
	}
	return cfg, nil
}

func currentLogger() *slog.Logger {
	if logger == nil {
		logger = slog.New(slog.NewJSONHandler(os.Stdout, nil))
	}
	return logger
}
