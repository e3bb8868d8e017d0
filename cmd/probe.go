package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/soocke/note-bot-go/app"
)

var probeOut string

var probeCmd = &cobra.Command{
	Use:   "probe",
	Short: "Capture the note region once and report what each marker sees",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}
		c, err := app.BuildContainer(cfg, currentLogger())
		if err != nil {
			return err
		}
		rep, err := c.Probe()
		if err != nil {
			return err
		}
		if err := rep.WriteText(cmd.OutOrStdout()); err != nil {
			return err
		}
		if probeOut != "" {
			if err := rep.WriteSnapshot(probeOut); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "snapshot written to %s\n", probeOut)
		}
		return nil
	},
}

func init() {
	probeCmd.Flags().StringVarP(&probeOut, "out", "o", "", "write an annotated PNG of the region")
}
