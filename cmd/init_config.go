package cmd

import (
	"errors"
	"fmt"
	"io/fs"
	"os"

	"github.com/spf13/cobra"

	"github.com/soocke/note-bot-go/apperr"
	"github.com/soocke/note-bot-go/assets"
)

var initForce bool

var initCmd = &cobra.Command{
	Use:   "init",
	Short: "Write a starter config file",
	RunE: func(cmd *cobra.Command, args []string) error {
		if !initForce {
			if _, err := os.Stat(cfgFile); err == nil {
				return apperr.Newf(apperr.KindConfig, "init", "%s already exists, use --force to overwrite", cfgFile)
			} else if !errors.Is(err, fs.ErrNotExist) {
				return apperr.Wrap(err, apperr.KindConfig, "init", "stat config")
			}
		}
		if err := os.WriteFile(cfgFile, assets.DefaultConfigJSON, 0o644); err != nil {
			return apperr.Wrap(err, apperr.KindConfig, "init", "write config").WithMetadata("path", cfgFile)
		}
		fmt.Fprintf(cmd.OutOrStdout(), "wrote %s\n", cfgFile)
		return nil
	},
}

func init() {
	initCmd.Flags().BoolVarP(&initForce, "force", "f", false, "overwrite an existing file")
}
