package main

import (
	"encoding/json"
	"fmt"
	"io"
	"time"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/goliatone/go-websettings/internal/config"
	"github.com/goliatone/go-websettings/pkg/assets"
	"github.com/goliatone/go-websettings/pkg/chunked"
	"github.com/goliatone/go-websettings/pkg/coordinator"
	"github.com/goliatone/go-websettings/pkg/panel"
	"github.com/goliatone/go-websettings/pkg/store"
)

func newDumpCommand() *cobra.Command {
	var (
		format    string
		chunkSize int
	)
	cmd := &cobra.Command{
		Use:   "dump",
		Short: "Print the settings document, values or API description",
		Long: `Print the stored settings of the demo device.

Formats:
  html     the settings document, generated in chunks of --chunk-size bytes
  json     the values the page requests per panel
  yaml     the persisted document
  openapi  the OpenAPI description of the HTTP routes`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load(configPath)
			if err != nil {
				return err
			}
			dev := newDevice(time.Now())
			if _, err := store.NewFile(cfg.Store.Path).LoadPanels(dev.panels); err != nil {
				return err
			}
			bundle, err := loadBundle(cfg.Theme)
			if err != nil {
				return err
			}
			return dump(cmd.OutOrStdout(), format, chunkSize, dev.panels, bundle)
		},
	}
	cmd.Flags().StringVarP(&format, "format", "f", "html", "html, json, yaml or openapi")
	cmd.Flags().IntVar(&chunkSize, "chunk-size", coordinator.DefaultChunkSize, "chunk size for html output")
	return cmd
}

func dump(w io.Writer, format string, chunkSize int, panels []*panel.Panel, bundle *assets.Bundle) error {
	switch format {
	case "html":
		page := chunked.NewPage(panels, bundle, chunked.Footer{})
		for chunk, err := range page.Chunks(max(chunkSize, page.MinBufferSize())) {
			if err != nil {
				return err
			}
			if _, err := w.Write(chunk); err != nil {
				return err
			}
		}
		return nil

	case "json":
		values := make(map[string][]panel.Entry, len(panels))
		for _, p := range panels {
			values[p.Identifier()] = p.Snapshot()
		}
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(values)

	case "yaml":
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(store.Capture(panels)); err != nil {
			return err
		}
		return enc.Close()

	case "openapi":
		c := coordinator.New(coordinator.WithAssets(bundle))
		if err := c.Register(panels...); err != nil {
			return err
		}
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(c.OpenAPI())

	default:
		return fmt.Errorf("unknown format %q", format)
	}
}
