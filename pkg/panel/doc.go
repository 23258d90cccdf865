// Package panel groups settings into named, namespaced panels. A panel turns
// posted form fields into setting updates and produces JSON-ready snapshots of
// the values the browser is allowed to see.
package panel
