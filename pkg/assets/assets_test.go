package assets

import (
	"strings"
	"testing"

	theme "github.com/goliatone/go-theme"
	"github.com/google/go-cmp/cmp"
)

func TestDefaultBundle(t *testing.T) {
	b := Default()
	if !strings.Contains(b.Stylesheet(), ".tabcontent.active") {
		t.Fatalf("expected default stylesheet rules")
	}
	if strings.HasPrefix(b.Stylesheet(), ":root") {
		t.Fatalf("expected no custom properties without a theme")
	}
	for _, fn := range []string{"function openTab(", "function reloadAllTabs(", "function sendData(", "function factoryReset("} {
		if !strings.Contains(b.Script(), fn) {
			t.Fatalf("expected %q in client script", fn)
		}
	}
}

func TestBundleOverrides(t *testing.T) {
	b := NewBundle(
		WithStylesheet("body{}"),
		WithScript("var x;"),
		WithExtraCSS(".extra{}"),
		WithExtraCSS("   "),
		nil,
	)
	if diff := cmp.Diff("body{}.extra{}", b.Stylesheet()); diff != "" {
		t.Fatalf("stylesheet mismatch (-want +got):\n%s", diff)
	}
	if b.Script() != "var x;" {
		t.Fatalf("unexpected script %q", b.Script())
	}
}

func TestThemeVars(t *testing.T) {
	manifest := &theme.Manifest{
		Name:    "acme",
		Version: "1.0.0",
		Tokens: map[string]string{
			"primary":     "#123456",
			"Danger":      "#aa0000",
			"bad value":   "red;}body{display:none",
			"empty":       " ",
			"font.family": "Roboto, sans-serif",
		},
		Variants: map[string]theme.Variant{
			"dark": {
				Tokens: map[string]string{
					"primary": "#654321",
				},
			},
		},
	}

	want := map[string]string{
		"--ws-primary":     "#654321",
		"--ws-danger":      "#aa0000",
		"--ws-font-family": "Roboto, sans-serif",
	}
	if diff := cmp.Diff(want, ThemeVars(manifest, "dark")); diff != "" {
		t.Fatalf("vars mismatch (-want +got):\n%s", diff)
	}

	if got := ThemeVars(manifest, "missing")["--ws-primary"]; got != "#123456" {
		t.Fatalf("expected base token for unknown variant, got %q", got)
	}
	if got := ThemeVars(nil, ""); len(got) != 0 {
		t.Fatalf("expected no vars for nil manifest, got %v", got)
	}
}

func TestWithThemePrependsRootRule(t *testing.T) {
	manifest := &theme.Manifest{
		Name:   "acme",
		Tokens: map[string]string{"primary": "#111", "danger": "#222"},
	}
	b := NewBundle(WithStylesheet("body{}"), WithTheme(manifest, ""))

	want := ":root{--ws-danger:#222;--ws-primary:#111;}body{}"
	if diff := cmp.Diff(want, b.Stylesheet()); diff != "" {
		t.Fatalf("stylesheet mismatch (-want +got):\n%s", diff)
	}
}

func TestFragmentsFrameThePage(t *testing.T) {
	if !strings.HasPrefix(PageBegin, "<!DOCTYPE html>") || !strings.HasSuffix(PageBegin, "<style>") {
		t.Fatalf("unexpected page prefix %q", PageBegin)
	}
	if !strings.HasSuffix(ScriptToBody, `<div class="tab">`) {
		t.Fatalf("expected body fragment to open the tab bar")
	}
}
