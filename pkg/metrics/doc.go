// Package metrics exposes Prometheus counters for document generation,
// settings traffic, authentication and uploads.
package metrics
