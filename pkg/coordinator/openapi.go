package coordinator

import (
	"net/http"

	"github.com/getkin/kin-openapi/openapi3"
)

const openAPIVersion = "3.0.3"

// OpenAPI describes the routes mounted by this coordinator. Routes that
// depend on unregistered callbacks are omitted.
func (c *Coordinator) OpenAPI() *openapi3.T {
	paths := openapi3.NewPaths()

	paths.Set("/", &openapi3.PathItem{Get: htmlOperation("getDocument", "Settings document", "Chunked settings page.")})
	paths.Set("/style.css", &openapi3.PathItem{Get: textOperation("getStylesheet", "Stylesheet", "text/css")})
	paths.Set("/script.js", &openapi3.PathItem{Get: textOperation("getScript", "Client script", "application/javascript")})

	get := openapi3.NewOperation()
	get.OperationID = "getSettings"
	get.Summary = "Current values of one panel"
	get.AddParameter(openapi3.NewQueryParameter("tab").
		WithDescription("Panel identifier. Must appear exactly once.").
		WithRequired(true).
		WithSchema(openapi3.NewStringSchema()))
	get.AddParameter(openapi3.NewQueryParameter("setting").
		WithDescription("Restrict the answer to these setting names. May repeat.").
		WithSchema(openapi3.NewStringSchema()))
	get.AddResponse(http.StatusOK, openapi3.NewResponse().
		WithDescription("Map from panel identifier to name/value pairs; empty for an unknown panel.").
		WithJSONSchema(snapshotSchema()))
	get.AddResponse(http.StatusBadRequest, openapi3.NewResponse().WithDescription("Missing or repeated tab parameter."))
	paths.Set("/settings/get", &openapi3.PathItem{Get: get})

	set := openapi3.NewOperation()
	set.OperationID = "setSettings"
	set.Summary = "Apply posted settings to every panel"
	set.RequestBody = &openapi3.RequestBodyRef{Value: openapi3.NewRequestBody().
		WithDescription("Fields named panel$setting. Absent checkboxes reset to off.").
		WithRequired(true).
		WithContent(openapi3.NewContentWithSchema(
			openapi3.NewObjectSchema().WithAnyAdditionalProperties(),
			[]string{"multipart/form-data", "application/x-www-form-urlencoded"},
		))}
	set.AddResponse(http.StatusOK, openapi3.NewResponse().
		WithDescription("Settings saved.").
		WithJSONSchema(openapi3.NewObjectSchema().WithProperty("saved", openapi3.NewBoolSchema())))
	addAuthResponses(set)
	paths.Set("/settings/set", &openapi3.PathItem{Post: set})

	if c.onRestart != nil {
		reboot := htmlOperation("reboot", "Restart the device", "Restart scheduled.")
		addAuthResponses(reboot)
		paths.Set("/reboot", &openapi3.PathItem{Get: reboot})
	}

	if c.onFactoryReset != nil {
		reset := htmlOperation("factoryReset", "Reset to factory defaults", "Reset scheduled, or not confirmed.")
		reset.AddParameter(openapi3.NewQueryParameter("confirm").
			WithDescription("Must be true to reset.").
			WithSchema(openapi3.NewStringSchema().WithEnum("true")))
		addAuthResponses(reset)
		paths.Set("/factoryreset", &openapi3.PathItem{Get: reset})
	}

	if c.uploadEnabled() {
		form := htmlOperation("uploadForm", "Firmware upload form", "Upload form.")
		addAuthResponses(form)

		upload := htmlOperation("upload", "Upload a firmware image", "Image accepted; restart scheduled.")
		upload.RequestBody = &openapi3.RequestBodyRef{Value: openapi3.NewRequestBody().
			WithRequired(true).
			WithContent(openapi3.NewContentWithSchema(
				openapi3.NewObjectSchema().WithProperty("file", openapi3.NewStringSchema().WithFormat("binary")),
				[]string{"multipart/form-data"},
			))}
		upload.AddResponse(http.StatusInternalServerError, openapi3.NewResponse().WithDescription("Update failed."))
		addAuthResponses(upload)
		paths.Set("/upload", &openapi3.PathItem{Get: form, Post: upload})
	}

	if c.metrics != nil {
		paths.Set("/metrics", &openapi3.PathItem{Get: textOperation("getMetrics", "Prometheus metrics", "text/plain")})
	}

	return &openapi3.T{
		OpenAPI: openAPIVersion,
		Info: &openapi3.Info{
			Title:   c.title,
			Version: "1.0.0",
		},
		Paths: paths,
	}
}

func snapshotSchema() *openapi3.Schema {
	entry := openapi3.NewObjectSchema().
		WithProperty("name", openapi3.NewStringSchema()).
		WithProperty("value", openapi3.NewStringSchema())
	return openapi3.NewObjectSchema().
		WithAdditionalProperties(openapi3.NewArraySchema().WithItems(entry))
}

func htmlOperation(id, summary, description string) *openapi3.Operation {
	op := openapi3.NewOperation()
	op.OperationID = id
	op.Summary = summary
	op.AddResponse(http.StatusOK, openapi3.NewResponse().
		WithDescription(description).
		WithContent(openapi3.NewContentWithSchema(openapi3.NewStringSchema(), []string{"text/html"})))
	return op
}

func textOperation(id, summary, mime string) *openapi3.Operation {
	op := openapi3.NewOperation()
	op.OperationID = id
	op.Summary = summary
	op.AddResponse(http.StatusOK, openapi3.NewResponse().
		WithDescription(summary).
		WithContent(openapi3.NewContentWithSchema(openapi3.NewStringSchema(), []string{mime})))
	return op
}

func addAuthResponses(op *openapi3.Operation) {
	op.AddResponse(http.StatusUnauthorized, openapi3.NewResponse().WithDescription("Digest authentication required."))
	op.AddResponse(http.StatusTooManyRequests, openapi3.NewResponse().WithDescription("Too many failed attempts."))
}
