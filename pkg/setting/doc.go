// Package setting defines the typed value cells that back a settings form.
// Each kind (text, password, signed and unsigned integers, float, exclusive
// option, toggle, note, computed info) knows how to render itself as a form
// control, parse posted text, and describe whether it is persisted or sent to
// the browser. Parsing never fails: malformed numeric text becomes zero and an
// unknown option label selects the first option.
//
// Settings are created once at start-up and referenced, not owned, by panels.
package setting
