package websettings

import (
	"context"
	"io"
	"io/fs"
	"net"
	"net/http"
	"strings"
	"testing"
	"time"

	theme "github.com/goliatone/go-theme"
)

func TestStaticFSContainsPayloads(t *testing.T) {
	for _, name := range []string{"style.css", "script.js"} {
		if _, err := fs.ReadFile(StaticFS(), name); err != nil {
			t.Fatalf("expected %s to be readable: %v", name, err)
		}
	}
}

func TestPageTemplatesIncludeLayout(t *testing.T) {
	data, err := fs.ReadFile(PageTemplates(), "layout.tpl")
	if err != nil {
		t.Fatalf("expected layout template: %v", err)
	}
	if !strings.Contains(string(data), "{% block content %}") {
		t.Fatalf("expected content block in layout")
	}
}

func TestListenAndServe(t *testing.T) {
	ssid := NewText("SSID", "ssid")
	ssid.Set("home")
	p, err := NewPanel("Network", "net", ssid)
	if err != nil {
		t.Fatalf("panel: %v", err)
	}

	ln, err := net.Listen("tcp", "127.0.0.1:0")
	if err != nil {
		t.Fatalf("listen: %v", err)
	}
	addr := ln.Addr().String()
	ln.Close()

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	manifest := &theme.Manifest{Name: "acme", Tokens: map[string]string{"primary": "#123456"}}
	go func() { done <- ListenAndServe(ctx, addr, []*Panel{p}, WithTheme(manifest, "")) }()

	var resp *http.Response
	for i := 0; i < 50; i++ {
		resp, err = http.Get("http://" + addr + "/style.css")
		if err == nil {
			break
		}
		time.Sleep(20 * time.Millisecond)
	}
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	var body strings.Builder
	_, _ = io.Copy(&body, resp.Body)
	resp.Body.Close()
	if !strings.HasPrefix(body.String(), ":root{--ws-primary:#123456;}") {
		t.Fatalf("expected themed stylesheet, got %q", body.String()[:min(body.Len(), 60)])
	}

	cancel()
	select {
	case err := <-done:
		if err != nil {
			t.Fatalf("serve: %v", err)
		}
	case <-time.After(5 * time.Second):
		t.Fatalf("server did not stop")
	}
}

func TestListenAndServeRejectsDuplicatePanels(t *testing.T) {
	a, _ := NewPanel("A", "same")
	b, _ := NewPanel("B", "same")
	if err := ListenAndServe(context.Background(), "127.0.0.1:0", []*Panel{a, b}); err == nil {
		t.Fatalf("expected duplicate identifier error")
	}
}
