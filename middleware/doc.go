// Package middleware provides the net/http guard that validates bearer
// tokens through the engine and exposes the authenticated identity on the
// request context.
package middleware
