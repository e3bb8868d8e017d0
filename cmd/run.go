package cmd

import (
	"context"
	"errors"

	"github.com/spf13/cobra"

	"github.com/soocke/note-bot-go/app"
)

var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Run the bot (default command)",
	RunE:  runBot,
}

func runBot(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	l := currentLogger()
	c, err := app.BuildContainer(cfg, l)
	if err != nil {
		return err
	}
	err = app.NewApp(c).Run(cmd.Context())
	if errors.Is(err, context.Canceled) {
		l.Info("interrupted, exiting")
		return nil
	}
	return err
}
