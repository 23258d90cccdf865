// Package coordinator serves a device settings UI over HTTP.
//
// It streams the settings document in bounded chunks, answers per-panel value
// queries for the client script, applies posted settings behind rotating
// digest authentication, and optionally exposes restart, factory reset and
// firmware upload routes when the corresponding callbacks are registered.
package coordinator
