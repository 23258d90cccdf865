package main

import (
	"errors"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/goliatone/go-websettings/internal/config"
	"github.com/goliatone/go-websettings/pkg/prompt"
	"github.com/goliatone/go-websettings/pkg/store"
)

func newEditCommand() *cobra.Command {
	var storePath string
	cmd := &cobra.Command{
		Use:   "edit",
		Short: "Edit the stored settings from the terminal",
		Long: `Edit the stored settings of the demo device without starting the server.

Pick a panel, answer the prompts, and choose Done to save. Ctrl+C discards
the changes.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load(configPath)
			if err != nil {
				return err
			}
			if cmd.Flags().Changed("store") {
				cfg.Store.Path = storePath
			}

			dev := newDevice(time.Now())
			file := store.NewFile(cfg.Store.Path)
			if _, err := file.LoadPanels(dev.panels); err != nil {
				return err
			}

			if err := prompt.NewEditor().EditAll(cmd.Context(), dev.panels); err != nil {
				if errors.Is(err, prompt.ErrAborted) {
					fmt.Fprintln(cmd.ErrOrStderr(), "Aborted; nothing saved.")
					return nil
				}
				return err
			}
			if err := file.SavePanels(dev.panels); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Settings saved to %s\n", cfg.Store.Path)
			return nil
		},
	}
	cmd.Flags().StringVar(&storePath, "store", "", "settings store file")
	return cmd
}
