package websettings

import (
	"context"

	theme "github.com/goliatone/go-theme"

	"github.com/goliatone/go-websettings/pkg/assets"
	"github.com/goliatone/go-websettings/pkg/coordinator"
	"github.com/goliatone/go-websettings/pkg/panel"
	"github.com/goliatone/go-websettings/pkg/setting"
)

// Setting is one typed, named value rendered as a form control.
type Setting = setting.Setting

// Info is a read-only setting computed when the page or a snapshot reads it.
type Info = setting.Info

// Panel groups settings under one tab and field namespace.
type Panel = panel.Panel

// Entry is one name/value pair of a panel snapshot.
type Entry = panel.Entry

// Coordinator serves the settings page and API.
type Coordinator = coordinator.Coordinator

// Option configures a Coordinator.
type Option = coordinator.Option

// Callback is invoked after a save and for restart or factory reset.
type Callback = coordinator.Callback

// Updater receives firmware uploads.
type Updater = coordinator.Updater

// FileUpdater installs uploads into a file.
type FileUpdater = coordinator.FileUpdater

var (
	NewText     = setting.NewText
	NewPassword = setting.NewPassword
	NewInt      = setting.NewInt
	NewUint     = setting.NewUint
	NewFloat    = setting.NewFloat
	NewOption   = setting.NewOption
	NewToggle   = setting.NewToggle
	NewNote     = setting.NewNote
	NewInfo     = setting.NewInfo
)

// NewPanel builds a panel; see panel.New for the identifier rules.
func NewPanel(name, identifier string, settings ...Setting) (*Panel, error) {
	return panel.New(name, identifier, settings...)
}

// New exposes the coordinator constructor from the top-level module.
func New(options ...Option) *Coordinator {
	return coordinator.New(options...)
}

// ListenAndServe registers panels on a new coordinator and serves it on addr
// until ctx is cancelled. It is the simplest entry point for a device that
// only needs the settings page.
func ListenAndServe(ctx context.Context, addr string, panels []*Panel, options ...Option) error {
	c := coordinator.New(options...)
	if err := c.Register(panels...); err != nil {
		return err
	}
	return c.ListenAndServe(ctx, addr)
}

// WithCredentials guards the mutating routes with digest authentication.
func WithCredentials(user, password string) Option {
	return coordinator.WithCredentials(user, password)
}

// WithOnSave registers the callback invoked after settings are posted.
func WithOnSave(fn Callback) Option {
	return coordinator.WithOnSave(fn)
}

// WithOnRestart enables the reboot route.
func WithOnRestart(fn Callback) Option {
	return coordinator.WithOnRestart(fn)
}

// WithOnFactoryReset enables the factory reset route.
func WithOnFactoryReset(fn Callback) Option {
	return coordinator.WithOnFactoryReset(fn)
}

// WithTheme derives the stylesheet's CSS custom properties from a go-theme
// manifest and variant.
func WithTheme(manifest *theme.Manifest, variant string) Option {
	return coordinator.WithAssets(assets.NewBundle(assets.WithTheme(manifest, variant)))
}
