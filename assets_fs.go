package websettings

import (
	"io/fs"

	"github.com/goliatone/go-websettings/pkg/assets"
	"github.com/goliatone/go-websettings/pkg/coordinator"
)

// StaticFS exposes the built-in style.css and script.js so applications can
// serve them from their own mux.
//
// Typical mount:
//
//	mux.Handle("/static/",
//	  http.StripPrefix("/static/",
//	    http.FileServerFS(websettings.StaticFS()),
//	  ),
//	)
func StaticFS() fs.FS {
	return assets.StaticFS()
}

// PageTemplates exposes the embedded pongo2 templates of the status and
// upload pages so callers can reuse or extend them.
func PageTemplates() fs.FS {
	return coordinator.TemplatesFS()
}
