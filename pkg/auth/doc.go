// Package auth implements the rotating-realm digest authentication that
// guards the mutating settings routes.
//
// The realm token changes after every successful authentication, so each
// mutation needs fresh credentials. Rejected attempts are throttled with a
// token bucket.
package auth
