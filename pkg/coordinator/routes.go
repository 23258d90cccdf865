package coordinator

import (
	"fmt"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
)

// Mux is the minimal interface required to mount the coordinator.
// It is satisfied by *http.ServeMux and chi.Router.
type Mux interface {
	Handle(pattern string, handler http.Handler)
}

// RegisterRoutes mounts the coordinator at the root of mux. The document
// references its routes by absolute path, so it cannot live under a prefix.
func (c *Coordinator) RegisterRoutes(mux Mux) error {
	if mux == nil {
		return fmt.Errorf("coordinator: missing mux")
	}
	mux.Handle("/", c.Handler())
	return nil
}

func (c *Coordinator) routes() chi.Router {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.Recoverer)
	r.Use(requestLogger(c.logger))

	r.Get("/", c.handleDocument)
	r.Get("/style.css", c.handleStatic("/style.css", "text/css; charset=utf-8", c.bundle.Stylesheet))
	r.Get("/script.js", c.handleStatic("/script.js", "application/javascript; charset=utf-8", c.bundle.Script))
	r.Get("/settings/get", c.handleGet)
	r.Post("/settings/set", c.handleSet)
	r.Get("/openapi.json", c.handleOpenAPI)

	if c.onRestart != nil {
		r.Get("/reboot", c.handleReboot)
	}
	if c.onFactoryReset != nil {
		r.Get("/factoryreset", c.handleFactoryReset)
	}
	if c.uploadEnabled() {
		r.Get("/upload", c.handleUploadForm)
		r.Post("/upload", c.handleUpload)
	}
	if c.metrics != nil {
		r.Method(http.MethodGet, "/metrics", c.metrics.Handler())
	}

	r.NotFound(c.handleNotFound)
	return r
}
