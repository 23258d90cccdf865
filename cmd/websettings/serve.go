package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/goliatone/go-websettings/internal/config"
	"github.com/goliatone/go-websettings/pkg/assets"
	"github.com/goliatone/go-websettings/pkg/coordinator"
	"github.com/goliatone/go-websettings/pkg/metrics"
	"github.com/goliatone/go-websettings/pkg/store"
)

type serveFlags struct {
	host     string
	port     int
	user     string
	password string
	store    string
	upload   string
	metrics  bool
}

func newServeCommand() *cobra.Command {
	var flags serveFlags
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the settings page",
		Long: `Serve the settings page of the demo device.

Saved settings are written to the store file. Restart and factory reset stop
the server so a supervisor can start it again; factory reset also removes the
store file.

Examples:
  websettings serve --port 8080
  websettings serve --user admin --password secret --metrics`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load(configPath)
			if err != nil {
				return err
			}
			applyServeFlags(cmd, cfg, flags)
			if err := cfg.Validate(); err != nil {
				return err
			}
			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()
			return runServe(ctx, cfg)
		},
	}

	cmd.Flags().StringVar(&flags.host, "host", "", "listen host")
	cmd.Flags().IntVarP(&flags.port, "port", "p", 0, "listen port")
	cmd.Flags().StringVar(&flags.user, "user", "", "user guarding the mutating routes")
	cmd.Flags().StringVar(&flags.password, "password", "", "password for --user")
	cmd.Flags().StringVar(&flags.store, "store", "", "settings store file")
	cmd.Flags().StringVar(&flags.upload, "upload", "", "enable firmware upload into this file")
	cmd.Flags().BoolVar(&flags.metrics, "metrics", false, "expose Prometheus metrics")
	return cmd
}

func applyServeFlags(cmd *cobra.Command, cfg *config.Config, flags serveFlags) {
	changed := cmd.Flags().Changed
	if changed("host") {
		cfg.Server.Host = flags.host
	}
	if changed("port") {
		cfg.Server.Port = flags.port
	}
	if changed("user") {
		cfg.Auth.User = flags.user
	}
	if changed("password") {
		cfg.Auth.Password = flags.password
	}
	if changed("store") {
		cfg.Store.Path = flags.store
	}
	if changed("upload") {
		cfg.Upload.Path = flags.upload
	}
	if changed("metrics") {
		cfg.Server.Metrics = flags.metrics
	}
}

func runServe(parent context.Context, cfg *config.Config) error {
	logger, closer, err := cfg.Logging.Logger(os.Stderr)
	if err != nil {
		return err
	}
	defer closer.Close()

	ctx, cancel := context.WithCancel(parent)
	defer cancel()

	dev := newDevice(time.Now())
	file := store.NewFile(cfg.Store.Path)
	restored, err := file.LoadPanels(dev.panels)
	if err != nil {
		return err
	}
	logger.Info().Str("path", cfg.Store.Path).Int("settings", restored).Msg("Settings restored")

	bundle, err := loadBundle(cfg.Theme)
	if err != nil {
		return err
	}

	opts := []coordinator.Option{
		coordinator.WithLogger(logger.With().Str("component", "coordinator").Logger()),
		coordinator.WithTitle(cfg.Server.Title),
		coordinator.WithChunkSize(cfg.Server.ChunkSize),
		coordinator.WithRestartDelay(cfg.Server.RestartDelay),
		coordinator.WithAssets(bundle),
		coordinator.WithCredentials(cfg.Auth.User, cfg.Auth.Password),
		coordinator.WithOnSave(func(c *coordinator.Coordinator) {
			var err error
			c.Update(func() { err = file.SavePanels(c.Panels()) })
			if err != nil {
				logger.Error().Err(err).Msg("Persisting settings failed")
				return
			}
			logger.Info().Str("path", cfg.Store.Path).Msg("Settings persisted")
		}),
		coordinator.WithOnRestart(func(*coordinator.Coordinator) {
			logger.Warn().Msg("Restart requested")
			cancel()
		}),
		coordinator.WithOnFactoryReset(func(*coordinator.Coordinator) {
			logger.Warn().Msg("Factory reset requested")
			if err := os.Remove(cfg.Store.Path); err != nil && !errors.Is(err, os.ErrNotExist) {
				logger.Error().Err(err).Msg("Removing settings store failed")
			}
			cancel()
		}),
	}
	if cfg.Upload.Path != "" {
		opts = append(opts,
			coordinator.WithUpdater(&coordinator.FileUpdater{Path: cfg.Upload.Path}),
			coordinator.WithMaxUploadSize(cfg.Upload.MaxSize),
		)
	}
	if cfg.Server.Metrics {
		reg := prometheus.NewRegistry()
		reg.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
		opts = append(opts, coordinator.WithMetrics(metrics.New(reg)))
	}

	c := coordinator.New(opts...)
	if err := c.Register(dev.panels...); err != nil {
		return fmt.Errorf("register panels: %w", err)
	}

	logEnabled(logger, cfg)
	return c.ListenAndServe(ctx, cfg.Addr())
}

func loadBundle(cfg config.ThemeConfig) (*assets.Bundle, error) {
	if cfg.Manifest == "" {
		return assets.Default(), nil
	}
	manifest, err := assets.LoadManifest(cfg.Manifest)
	if err != nil {
		return nil, err
	}
	return assets.NewBundle(assets.WithTheme(manifest, cfg.Variant)), nil
}

func logEnabled(logger zerolog.Logger, cfg *config.Config) {
	logger.Info().
		Bool("auth", cfg.Auth.User != "").
		Bool("upload", cfg.Upload.Path != "").
		Bool("metrics", cfg.Server.Metrics).
		Str("theme", cfg.Theme.Manifest).
		Msg("Features configured")
}
