package config

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"github.com/rs/zerolog"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte(body), 0o600); err != nil {
		t.Fatalf("write config: %v", err)
	}
	return path
}

func TestLoadMissingFileUsesDefaults(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "absent.yaml"))
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if diff := cmp.Diff(Default(), cfg); diff != "" {
		t.Fatalf("defaults mismatch (-want +got):\n%s", diff)
	}
	if cfg.Addr() != "0.0.0.0:8080" {
		t.Fatalf("unexpected addr %q", cfg.Addr())
	}
}

func TestLoadOverridesDefaults(t *testing.T) {
	path := writeConfig(t, `
server:
  port: 9090
  chunk_size: 512
  restart_delay: 500ms
  metrics: true
auth:
  user: admin
  password: secret
store:
  path: /var/lib/websettings/settings.yaml
theme:
  manifest: theme.yaml
  variant: dark
logging:
  level: debug
  console: true
`)
	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("load: %v", err)
	}

	want := Default()
	want.Server.Port = 9090
	want.Server.ChunkSize = 512
	want.Server.RestartDelay = 500 * time.Millisecond
	want.Server.Metrics = true
	want.Auth = AuthConfig{User: "admin", Password: "secret"}
	want.Store.Path = "/var/lib/websettings/settings.yaml"
	want.Theme = ThemeConfig{Manifest: "theme.yaml", Variant: "dark"}
	want.Logging.Level = "debug"
	want.Logging.Console = true

	if diff := cmp.Diff(want, cfg); diff != "" {
		t.Fatalf("config mismatch (-want +got):\n%s", diff)
	}
}

func TestLoadRejectsInvalidValues(t *testing.T) {
	tests := []struct {
		name string
		body string
		want string
	}{
		{"port", "server:\n  port: 70000\n", "server.port"},
		{"chunk", "server:\n  chunk_size: 0\n", "server.chunk_size"},
		{"password without user", "auth:\n  password: x\n", "auth.password"},
		{"user with colon", "auth:\n  user: \"a:b\"\n", "auth.user"},
		{"yaml", "server: [", "config: parse"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Load(writeConfig(t, tt.body))
			if err == nil || !strings.Contains(err.Error(), tt.want) {
				t.Fatalf("expected error containing %q, got %v", tt.want, err)
			}
		})
	}
}

func TestLoggerLevelsAndFile(t *testing.T) {
	var buf bytes.Buffer
	file := filepath.Join(t.TempDir(), "logs", "websettings.log")

	logger, closer, err := LoggingConfig{Level: "WARN", File: file, MaxSizeMB: 1}.Logger(&buf)
	if err != nil {
		t.Fatalf("logger: %v", err)
	}
	defer closer.Close()

	if logger.GetLevel() != zerolog.WarnLevel {
		t.Fatalf("unexpected level %v", logger.GetLevel())
	}
	logger.Info().Msg("Hidden")
	logger.Warn().Str("component", "test").Msg("Visible")

	if strings.Contains(buf.String(), "Hidden") || !strings.Contains(buf.String(), `"message":"Visible"`) {
		t.Fatalf("unexpected stderr output %q", buf.String())
	}
	data, err := os.ReadFile(file)
	if err != nil {
		t.Fatalf("read log file: %v", err)
	}
	if !strings.Contains(string(data), "Visible") {
		t.Fatalf("expected log file to receive entries, got %q", data)
	}
}

func TestLoggerRejectsUnknownLevel(t *testing.T) {
	if _, _, err := (LoggingConfig{Level: "loud"}).Logger(nil); err == nil {
		t.Fatalf("expected error for unknown level")
	}
}
