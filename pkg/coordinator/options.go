package coordinator

import (
	"time"

	"github.com/rs/zerolog"

	"github.com/goliatone/go-websettings/pkg/assets"
	"github.com/goliatone/go-websettings/pkg/auth"
	"github.com/goliatone/go-websettings/pkg/metrics"
)

const (
	DefaultChunkSize     = 1024
	DefaultRestartDelay  = 2 * time.Second
	DefaultMaxUploadSize = 16 << 20
	DefaultFormMemory    = 1 << 20
)

// Callback is notified after a save, or asked to restart or reset the
// device. It runs outside the coordinator lock; use Coordinator.Update to
// touch settings from it.
type Callback func(*Coordinator)

// Option configures a Coordinator.
type Option func(*Coordinator)

// WithLogger sets the logger. The default discards everything.
func WithLogger(logger zerolog.Logger) Option {
	return func(c *Coordinator) {
		c.logger = logger
	}
}

// WithChunkSize sets the document buffer size. Values below the page's
// minimum are raised to it per request.
func WithChunkSize(size int) Option {
	return func(c *Coordinator) {
		if size > 0 {
			c.chunkSize = size
		}
	}
}

// WithOnSave registers the callback invoked after settings are posted.
func WithOnSave(fn Callback) Option {
	return func(c *Coordinator) {
		c.onSave = fn
	}
}

// WithOnRestart registers the restart callback. Without it the reboot and
// upload routes are not mounted.
func WithOnRestart(fn Callback) Option {
	return func(c *Coordinator) {
		c.onRestart = fn
	}
}

// WithOnFactoryReset registers the factory reset callback. Without it the
// factory reset route is not mounted.
func WithOnFactoryReset(fn Callback) Option {
	return func(c *Coordinator) {
		c.onFactoryReset = fn
	}
}

// WithUpdater sets the firmware sink used by the upload route.
func WithUpdater(u Updater) Option {
	return func(c *Coordinator) {
		c.updater = u
	}
}

// WithMaxUploadSize caps the accepted upload body.
func WithMaxUploadSize(n int64) Option {
	return func(c *Coordinator) {
		if n > 0 {
			c.maxUpload = n
		}
	}
}

// WithCredentials enables authentication on the mutating routes. Combined
// with WithRealm the credentials are configured on that realm.
func WithCredentials(user, password string) Option {
	return func(c *Coordinator) {
		c.credentials = &credentialPair{user: user, password: password}
	}
}

// WithRealm replaces the authentication realm. Use it to tune throttling or
// the digest implementation.
func WithRealm(realm *auth.Realm) Option {
	return func(c *Coordinator) {
		c.realm = realm
	}
}

// WithAssets replaces the stylesheet and script bundle.
func WithAssets(bundle *assets.Bundle) Option {
	return func(c *Coordinator) {
		if bundle != nil {
			c.bundle = bundle
		}
	}
}

// WithMetrics records coordinator activity and mounts /metrics.
func WithMetrics(m *metrics.Metrics) Option {
	return func(c *Coordinator) {
		c.metrics = m
	}
}

// WithRestartDelay sets how long restart and factory reset wait after the
// response has been sent.
func WithRestartDelay(d time.Duration) Option {
	return func(c *Coordinator) {
		if d >= 0 {
			c.restartDelay = d
		}
	}
}

// WithTitle sets the OpenAPI document title.
func WithTitle(title string) Option {
	return func(c *Coordinator) {
		if title != "" {
			c.title = title
		}
	}
}
