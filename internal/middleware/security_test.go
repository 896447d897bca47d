// internal/middleware/security_test.go
//
// Unit-tests for the Security header wrapper.

package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/AdeptTravel/adept-admin/internal/admin"
)

func serve(cookie admin.SessionCookie, next http.Handler) *httptest.ResponseRecorder {
	rr := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/healthz", nil)
	Security(cookie)(next).ServeHTTP(rr, req)
	return rr
}

func writeOK(w http.ResponseWriter, _ *http.Request) {
	_, _ = w.Write([]byte("ok"))
}

func TestSecurity_HeadersSurviveBodyWrite(t *testing.T) {
	rr := serve(admin.SessionCookie{}, http.HandlerFunc(writeOK))

	res := rr.Result()
	assert.Equal(t, http.StatusOK, res.StatusCode)
	assert.Equal(t, xfo, res.Header.Get("X-Frame-Options"))
	assert.Equal(t, nosn, res.Header.Get("X-Content-Type-Options"))
	assert.Equal(t, csp, res.Header.Get("Content-Security-Policy"))
	assert.Equal(t, refer, res.Header.Get("Referrer-Policy"))
	assert.Equal(t, perm, res.Header.Get("Permissions-Policy"))
}

func TestSecurity_HSTSFollowsSecureCookie(t *testing.T) {
	rr := serve(admin.SessionCookie{Secure: false}, http.HandlerFunc(writeOK))
	assert.Empty(t, rr.Result().Header.Get("Strict-Transport-Security"))

	rr = serve(admin.SessionCookie{Secure: true}, http.HandlerFunc(writeOK))
	assert.Equal(t, hsts, rr.Result().Header.Get("Strict-Transport-Security"))
}

func TestSecurity_HandlerMayOverride(t *testing.T) {
	rr := serve(admin.SessionCookie{}, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("X-Frame-Options", "SAMEORIGIN")
		writeOK(w, r)
	}))
	assert.Equal(t, "SAMEORIGIN", rr.Result().Header.Get("X-Frame-Options"))
}
