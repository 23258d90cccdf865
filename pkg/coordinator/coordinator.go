package coordinator

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"sync"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog"

	"github.com/goliatone/go-websettings/pkg/assets"
	"github.com/goliatone/go-websettings/pkg/auth"
	"github.com/goliatone/go-websettings/pkg/chunked"
	"github.com/goliatone/go-websettings/pkg/metrics"
	"github.com/goliatone/go-websettings/pkg/panel"
	"github.com/goliatone/go-websettings/pkg/setting"
)

// Coordinator serves the settings document and the settings API for a set of
// panels. Settings, snapshots and every generator step run under one lock,
// since the HTTP server calls handlers concurrently.
type Coordinator struct {
	mu sync.Mutex

	registry *panel.Registry
	bundle   *assets.Bundle
	realm    *auth.Realm
	logger   zerolog.Logger
	metrics  *metrics.Metrics
	pages    *pages
	title    string

	credentials  *credentialPair
	chunkSize    int
	restartDelay time.Duration
	maxUpload    int64

	onSave         Callback
	onRestart      Callback
	onFactoryReset Callback
	updater        Updater
	uploadMu       sync.Mutex

	router chi.Router
}

type credentialPair struct {
	user     string
	password string
}

// New builds a coordinator. Panels can be added before or after serving
// starts; callbacks and the updater are fixed here and decide which routes
// exist.
func New(opts ...Option) *Coordinator {
	c := &Coordinator{
		registry:     panel.NewRegistry(),
		bundle:       assets.Default(),
		logger:       zerolog.Nop(),
		pages:        newPages(),
		title:        "Device settings",
		chunkSize:    DefaultChunkSize,
		restartDelay: DefaultRestartDelay,
		maxUpload:    DefaultMaxUploadSize,
	}
	for _, opt := range opts {
		if opt != nil {
			opt(c)
		}
	}
	switch {
	case c.realm == nil && c.credentials != nil:
		c.realm = auth.NewRealm(auth.WithCredentials(c.credentials.user, c.credentials.password))
	case c.realm == nil:
		c.realm = auth.NewRealm()
	case c.credentials != nil:
		c.realm.Configure(c.credentials.user, c.credentials.password)
	}
	c.router = c.routes()
	return c
}

// Add creates a panel from settings and registers it.
func (c *Coordinator) Add(name, identifier string, settings ...setting.Setting) (*panel.Panel, error) {
	p, err := panel.New(name, identifier, settings...)
	if err != nil {
		return nil, err
	}
	if err := c.Register(p); err != nil {
		return nil, err
	}
	return p, nil
}

// Register appends panels in tab order. Identifiers must be unique.
func (c *Coordinator) Register(panels ...*panel.Panel) error {
	return c.registry.Register(panels...)
}

// Panels returns the registered panels in tab order.
func (c *Coordinator) Panels() []*panel.Panel {
	return c.registry.List()
}

// Configure sets the credentials guarding the mutating routes and rotates
// the realm. An empty user disables authentication.
func (c *Coordinator) Configure(user, password string) {
	c.realm.Configure(user, password)
}

// Update runs fn under the coordinator lock. Use it to read or change
// settings while the server is running.
func (c *Coordinator) Update(fn func()) {
	c.mu.Lock()
	defer c.mu.Unlock()
	fn()
}

// Apply posts fields to every panel, as the save route does.
func (c *Coordinator) Apply(fields map[string]string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	for _, p := range c.registry.List() {
		p.Apply(fields)
	}
}

// Snapshot returns the visible values of one panel keyed by its
// identifier, optionally restricted to names. An unknown panel yields an
// empty map.
func (c *Coordinator) Snapshot(identifier string, names ...string) map[string][]panel.Entry {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.snapshot(identifier, names)
}

func (c *Coordinator) snapshot(identifier string, names []string) map[string][]panel.Entry {
	out := make(map[string][]panel.Entry, 1)
	if p, ok := c.registry.Lookup(identifier); ok {
		out[p.Identifier()] = p.Snapshot(names...)
	}
	return out
}

// Page returns the current document description.
func (c *Coordinator) Page() *chunked.Page {
	return chunked.NewPage(c.registry.List(), c.bundle, chunked.Footer{
		Reboot:       c.onRestart != nil,
		FactoryReset: c.onFactoryReset != nil,
		Upload:       c.uploadEnabled(),
	})
}

// Handler returns the HTTP handler serving every route.
func (c *Coordinator) Handler() http.Handler {
	return c.router
}

// ListenAndServe serves on addr until ctx is cancelled, then shuts down
// gracefully.
func (c *Coordinator) ListenAndServe(ctx context.Context, addr string) error {
	ln, err := net.Listen("tcp", addr)
	if err != nil {
		return fmt.Errorf("coordinator: listen %s: %w", addr, err)
	}
	return c.Serve(ctx, ln)
}

// Serve accepts connections on ln until ctx is cancelled.
func (c *Coordinator) Serve(ctx context.Context, ln net.Listener) error {
	srv := &http.Server{
		Handler:           c.Handler(),
		ReadHeaderTimeout: 10 * time.Second,
		BaseContext:       func(net.Listener) context.Context { return ctx },
	}

	errCh := make(chan error, 1)
	go func() {
		c.logger.Info().Str("addr", ln.Addr().String()).Msg("Settings server listening")
		errCh <- srv.Serve(ln)
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("coordinator: shutdown: %w", err)
		}
		c.logger.Info().Msg("Settings server stopped")
		return nil
	}
}

func (c *Coordinator) uploadEnabled() bool {
	return c.onRestart != nil && c.updater != nil
}

func (c *Coordinator) schedule(name string, fn Callback) {
	if fn == nil {
		return
	}
	c.logger.Info().Str("action", name).Dur("delay", c.restartDelay).Msg("Action scheduled")
	time.AfterFunc(c.restartDelay, func() { fn(c) })
}
