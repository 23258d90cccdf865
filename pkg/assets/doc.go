// Package assets provides the static payloads of the settings document: the
// stylesheet, the client script and the fragments that stitch them into the
// page. Stylesheet colours can be driven by go-theme manifest tokens.
package assets
