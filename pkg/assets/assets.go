package assets

import (
	"embed"
	"fmt"
	"io/fs"
	"regexp"
	"sort"
	"strings"

	theme "github.com/goliatone/go-theme"
)

//go:embed static/style.css
var defaultStylesheet string

//go:embed static/script.js
var defaultScript string

//go:embed static/*
var staticFiles embed.FS

// StaticFS exposes the default stylesheet and script as style.css and
// script.js, for callers serving them from their own file server.
func StaticFS() fs.FS {
	sub, err := fs.Sub(staticFiles, "static")
	if err != nil {
		return staticFiles
	}
	return sub
}

// Page fragments surrounding the inlined stylesheet and script. The document
// opens with PageBegin, then the stylesheet, StyleToScript, the script and
// finally ScriptToBody, which leaves the tab button bar open.
const (
	PageBegin = `<!DOCTYPE html>` +
		`<meta http-equiv="X-UA-Compatible" content="IE=edge,chrome=1">` +
		`<html><style>`
	StyleToScript = `</style><script language="javascript">`
	ScriptToBody  = `</script><body>` +
		`<div id="disable_overlay" class="disable_overlay"></div>` +
		`<div class="tab">`
)

// Bundle holds the static payloads served with every document.
type Bundle struct {
	stylesheet string
	script     string
}

// BundleOption customises a Bundle.
type BundleOption func(*bundleConfig)

type bundleConfig struct {
	stylesheet string
	script     string
	extraCSS   []string
	vars       map[string]string
}

// WithStylesheet replaces the default stylesheet.
func WithStylesheet(css string) BundleOption {
	return func(cfg *bundleConfig) {
		cfg.stylesheet = css
	}
}

// WithScript replaces the default client script.
func WithScript(js string) BundleOption {
	return func(cfg *bundleConfig) {
		cfg.script = js
	}
}

// WithExtraCSS appends rules after the stylesheet.
func WithExtraCSS(css string) BundleOption {
	return func(cfg *bundleConfig) {
		if strings.TrimSpace(css) != "" {
			cfg.extraCSS = append(cfg.extraCSS, css)
		}
	}
}

// WithTheme derives CSS custom properties from a go-theme manifest. Variant
// tokens override the manifest tokens; an unknown variant uses the base set.
// Each token becomes --ws-<token> on :root.
func WithTheme(manifest *theme.Manifest, variant string) BundleOption {
	return func(cfg *bundleConfig) {
		for key, value := range ThemeVars(manifest, variant) {
			cfg.vars[key] = value
		}
	}
}

// NewBundle builds a bundle from the default payloads and the options.
func NewBundle(opts ...BundleOption) *Bundle {
	cfg := bundleConfig{
		stylesheet: defaultStylesheet,
		script:     defaultScript,
		vars:       make(map[string]string),
	}
	for _, opt := range opts {
		if opt != nil {
			opt(&cfg)
		}
	}

	var css strings.Builder
	if root := rootRule(cfg.vars); root != "" {
		css.WriteString(root)
	}
	css.WriteString(cfg.stylesheet)
	for _, extra := range cfg.extraCSS {
		css.WriteString(extra)
	}

	return &Bundle{
		stylesheet: css.String(),
		script:     cfg.script,
	}
}

// Default returns a bundle with the built-in payloads.
func Default() *Bundle {
	return NewBundle()
}

// Stylesheet returns the complete stylesheet text.
func (b *Bundle) Stylesheet() string { return b.stylesheet }

// Script returns the client script text.
func (b *Bundle) Script() string { return b.script }

var tokenName = regexp.MustCompile(`[^a-zA-Z0-9-]+`)

// ThemeVars maps manifest tokens to CSS custom property names.
func ThemeVars(manifest *theme.Manifest, variant string) map[string]string {
	vars := make(map[string]string)
	if manifest == nil {
		return vars
	}

	tokens := make(map[string]string, len(manifest.Tokens))
	for key, value := range manifest.Tokens {
		tokens[key] = value
	}
	if variant != "" {
		if v, ok := manifest.Variants[variant]; ok {
			for key, value := range v.Tokens {
				tokens[key] = value
			}
		}
	}

	for key, value := range tokens {
		name := strings.Trim(tokenName.ReplaceAllString(strings.ToLower(key), "-"), "-")
		value = strings.TrimSpace(value)
		if name == "" || value == "" || strings.ContainsAny(value, ";{}<>") {
			continue
		}
		vars["--ws-"+name] = value
	}
	return vars
}

func rootRule(vars map[string]string) string {
	if len(vars) == 0 {
		return ""
	}
	keys := make([]string, 0, len(vars))
	for key := range vars {
		keys = append(keys, key)
	}
	sort.Strings(keys)

	var builder strings.Builder
	builder.WriteString(":root{")
	for _, key := range keys {
		fmt.Fprintf(&builder, "%s:%s;", key, vars[key])
	}
	builder.WriteString("}")
	return builder.String()
}
