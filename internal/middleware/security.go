// internal/middleware/security.go
//
// Security-header middleware for the admin host.
//
// Injects on every response:
//
//   • Strict-Transport-Security  –  only when the admin session cookie is
//                                   marked Secure, i.e. the panel is
//                                   served over HTTPS
//   • Content-Security-Policy   –  self-only policy
//   • X-Frame-Options           –  click-jacking defence
//   • X-Content-Type-Options    –  MIME-sniffing defence
//   • Referrer-Policy           –  drops path/query from Referer
//   • Permissions-Policy        –  disables powerful features by default
//
// Notes
// -----
// • Headers are set *before* next.ServeHTTP; anything written after the
//   first byte of the body would be dropped.  Handlers may still override
//   any of them.

// Package middleware holds small, composable HTTP wrappers.
package middleware

import (
	"net/http"

	"github.com/AdeptTravel/adept-admin/internal/admin"
)

const (
	hsts = "max-age=63072000; includeSubDomains"
	csp  = "default-src 'self'; img-src 'self' data:; object-src 'none'; " +
		"base-uri 'self'; frame-ancestors 'none'"
	xfo   = "DENY"
	nosn  = "nosniff"
	refer = "strict-origin-when-cross-origin"
	perm  = "geolocation=(), microphone=(), camera=()"
)

// Security returns a wrapper that sets security headers.  HSTS follows
// cookie.Secure so a plain-HTTP development host is never pinned to TLS.
func Security(cookie admin.SessionCookie) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			h := w.Header()
			if cookie.Secure {
				h.Set("Strict-Transport-Security", hsts)
			}
			h.Set("Content-Security-Policy", csp)
			h.Set("X-Frame-Options", xfo)
			h.Set("X-Content-Type-Options", nosn)
			h.Set("Referrer-Policy", refer)
			h.Set("Permissions-Policy", perm)

			next.ServeHTTP(w, r)
		})
	}
}
