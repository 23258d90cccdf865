package panel

import (
	"errors"
	"fmt"
	"net/url"
	"strings"

	"github.com/goliatone/go-websettings/pkg/setting"
)

var (
	// ErrInvalidIdentifier is returned for empty identifiers and identifiers
	// containing the field separator, quotes, markup characters or spaces.
	ErrInvalidIdentifier = errors.New("panel: invalid identifier")
	// ErrDuplicateSetting is returned when two settings share a name.
	ErrDuplicateSetting = errors.New("panel: duplicate setting name")
	// ErrUnnamedSetting is returned when an interactive setting has no name.
	ErrUnnamedSetting = errors.New("panel: interactive setting requires a name")
)

const invalidIdentifierChars = "$\"'<>& \t\r\n"

// Entry is one name/value pair in a snapshot.
type Entry struct {
	Name  string `json:"name"`
	Value string `json:"value"`
}

// Panel is a named group of settings sharing a namespace. It borrows its
// settings: they must outlive the panel and are never copied.
type Panel struct {
	name       string
	identifier string
	settings   []setting.Setting
}

// New constructs a panel. name is the human label; identifier namespaces the
// posted field names and element ids and must be unique per system.
func New(name, identifier string, settings ...setting.Setting) (*Panel, error) {
	identifier = strings.TrimSpace(identifier)
	if identifier == "" || strings.ContainsAny(identifier, invalidIdentifierChars) {
		return nil, fmt.Errorf("%w: %q", ErrInvalidIdentifier, identifier)
	}

	seen := make(map[string]struct{}, len(settings))
	for idx, s := range settings {
		if s == nil {
			return nil, fmt.Errorf("panel %s: setting %d is nil", identifier, idx)
		}
		if s.Kind() == setting.KindNote {
			continue
		}
		if s.Name() == "" {
			return nil, fmt.Errorf("%w (panel %s, setting %d)", ErrUnnamedSetting, identifier, idx)
		}
		if _, dup := seen[s.Name()]; dup {
			return nil, fmt.Errorf("%w: %q in panel %s", ErrDuplicateSetting, s.Name(), identifier)
		}
		seen[s.Name()] = struct{}{}
	}

	return &Panel{
		name:       name,
		identifier: identifier,
		settings:   settings,
	}, nil
}

// MustNew panics on construction failure. Useful for init-time wiring.
func MustNew(name, identifier string, settings ...setting.Setting) *Panel {
	p, err := New(name, identifier, settings...)
	if err != nil {
		panic(err)
	}
	return p
}

func (p *Panel) Name() string                { return p.name }
func (p *Panel) Identifier() string          { return p.identifier }
func (p *Panel) Settings() []setting.Setting { return p.settings }

// FieldName returns the posted field name for a setting of this panel.
func (p *Panel) FieldName(s setting.Setting) string {
	return setting.FieldID(p.identifier, s.Name())
}

// Apply updates settings from a posted field map. Present fields go through
// SetFromPost; absent visible settings reset to their default (an unchecked
// checkbox is simply missing from a post); absent invisible settings, such as
// an unchanged password whose input stayed disabled, are left untouched.
func (p *Panel) Apply(fields map[string]string) {
	for _, s := range p.settings {
		if value, ok := fields[p.FieldName(s)]; ok {
			s.SetFromPost(value)
			continue
		}
		if s.Visible() {
			s.SetDefault()
		}
	}
}

// ApplyValues adapts a parsed form to Apply. The first value of each field
// wins.
func (p *Panel) ApplyValues(values url.Values) {
	fields := make(map[string]string, len(values))
	for key, vals := range values {
		if len(vals) == 0 {
			continue
		}
		fields[key] = vals[0]
	}
	p.Apply(fields)
}

// Snapshot lists the current values of visible, named settings. When
// requested is non-empty only those names are included; unknown names are
// ignored. Invisible settings are never included, even when requested.
func (p *Panel) Snapshot(requested ...string) []Entry {
	var filter map[string]struct{}
	if len(requested) > 0 {
		filter = make(map[string]struct{}, len(requested))
		for _, name := range requested {
			filter[name] = struct{}{}
		}
	}

	entries := make([]Entry, 0, len(p.settings))
	for _, s := range p.settings {
		if s.Name() == "" || !s.Visible() {
			continue
		}
		if filter != nil {
			if _, ok := filter[s.Name()]; !ok {
				continue
			}
		}
		entries = append(entries, Entry{Name: s.Name(), Value: s.String()})
	}
	return entries
}

// Body renders every setting's markup in order.
func (p *Panel) Body() string {
	var builder strings.Builder
	for _, s := range p.settings {
		builder.WriteString(s.HTML(p.identifier))
	}
	return builder.String()
}

// HasInfo reports whether the panel shows computed values that the browser
// should refresh periodically.
func (p *Panel) HasInfo() bool {
	for _, s := range p.settings {
		if s.Kind() == setting.KindInfo {
			return true
		}
	}
	return false
}
