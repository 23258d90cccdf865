package coordinator

import (
	"bytes"
	"embed"
	"fmt"
	"io/fs"
	"net/http"
	"sync"

	"github.com/flosch/pongo2/v6"
)

//go:embed templates/*.tpl
var templateFS embed.FS

const (
	pageUpload = "upload.tpl"
	pageStatus = "status.tpl"
)

// statusPage is the view model of the simple informational pages.
type statusPage struct {
	Title    string
	Heading  string
	Strong   string
	Message  string
	Detail   string
	Link     string
	LinkText string
}

func (p statusPage) context() pongo2.Context {
	return pongo2.Context{
		"title":     p.Title,
		"heading":   p.Heading,
		"strong":    p.Strong,
		"message":   p.Message,
		"detail":    p.Detail,
		"link":      p.Link,
		"link_text": p.LinkText,
	}
}

var (
	pageRebooting = statusPage{
		Title:    "Rebooting",
		Message:  "Device is rebooting.",
		Link:     "/",
		LinkText: "Back to root (wait for reboot!)",
	}
	pageResetting = statusPage{
		Title:   "Factory reset",
		Message: "Device is resetting. You will need to reconnect to configure it afterwards.",
	}
	pageResetUnconfirmed = statusPage{
		Title:    "Factory reset",
		Message:  "Reset to factory defaults not confirmed.",
		Link:     "/",
		LinkText: "Back to root",
	}
	pageUploadDone = statusPage{
		Title:   "Upload completed",
		Heading: "Upload completed",
		Message: "Update completed; device is rebooting.",
	}
	pageNotFound = statusPage{
		Title:    "Not found",
		Heading:  "404 Page Not Found",
		Link:     "/",
		LinkText: "Return to root",
	}
)

func uploadFailedPage(err error) statusPage {
	page := statusPage{
		Title:   "Upload failed",
		Heading: "Upload Failed",
		Strong:  "Update Failed.",
		Message: "Rebooting may clear the issue.",
	}
	if err != nil {
		page.Detail = err.Error()
	}
	return page
}

// pages renders the embedded pongo2 templates. Templates are parsed once
// and cached.
type pages struct {
	mu        sync.RWMutex
	set       *pongo2.TemplateSet
	templates map[string]*pongo2.Template
}

// TemplatesFS exposes the embedded pongo2 page templates.
func TemplatesFS() fs.FS {
	sub, err := fs.Sub(templateFS, "templates")
	if err != nil {
		return templateFS
	}
	return sub
}

func newPages() *pages {
	files := TemplatesFS()
	return &pages{
		set:       pongo2.NewSet("websettings", pongo2.NewFSLoader(files)),
		templates: make(map[string]*pongo2.Template),
	}
}

func (p *pages) template(name string) (*pongo2.Template, error) {
	p.mu.RLock()
	tmpl, ok := p.templates[name]
	p.mu.RUnlock()
	if ok {
		return tmpl, nil
	}

	p.mu.Lock()
	defer p.mu.Unlock()

	if tmpl, ok := p.templates[name]; ok {
		return tmpl, nil
	}
	tmpl, err := p.set.FromFile(name)
	if err != nil {
		return nil, fmt.Errorf("coordinator: load template %q: %w", name, err)
	}
	p.templates[name] = tmpl
	return tmpl, nil
}

func (p *pages) render(name string, ctx pongo2.Context) ([]byte, error) {
	tmpl, err := p.template(name)
	if err != nil {
		return nil, err
	}
	var buf bytes.Buffer
	if err := tmpl.ExecuteWriter(ctx, &buf); err != nil {
		return nil, fmt.Errorf("coordinator: execute template %q: %w", name, err)
	}
	return buf.Bytes(), nil
}

// write renders a page and sends it with the given status. Rendering happens
// before the header is written so a template failure still yields a 500.
func (p *pages) write(w http.ResponseWriter, status int, name string, ctx pongo2.Context) error {
	body, err := p.render(name, ctx)
	if err != nil {
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return err
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	_, err = w.Write(body)
	return err
}

func (p *pages) status(w http.ResponseWriter, code int, page statusPage) error {
	return p.write(w, code, pageStatus, page.context())
}
