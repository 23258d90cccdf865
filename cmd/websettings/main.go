package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

// version is set during build with -ldflags
var version = "dev"

var configPath string

func newRootCommand() *cobra.Command {
	root := &cobra.Command{
		Use:   "websettings",
		Short: "Serve and edit device settings",
		Long: `websettings serves a tabbed settings page for a device, streams it in
bounded chunks, and persists the values to a YAML file.

The demo device exposes network, device and sensor panels.`,
		SilenceUsage: true,
	}
	root.PersistentFlags().StringVarP(&configPath, "config", "c", "websettings.config.yaml", "configuration file")

	root.AddCommand(newServeCommand())
	root.AddCommand(newEditCommand())
	root.AddCommand(newDumpCommand())
	root.AddCommand(&cobra.Command{
		Use:   "version",
		Short: "Print the version number",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprintf(cmd.OutOrStdout(), "websettings version %s\n", version)
		},
	})
	return root
}

func main() {
	if err := newRootCommand().Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
