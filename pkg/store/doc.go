// Package store saves and restores persistable settings as YAML.
//
// Notes and info values are never written. Passwords are, so files are
// created with owner-only permissions.
package store
