// internal/session/session.go
//
// Admin session cookie policy.
//
// Context
//   The admin settings carry a session block (rolling, renew, and the
//   cookie attributes).  This package turns that block into net/http
//   cookies so handlers never hand-copy HttpOnly, SameSite, or MaxAge.
//
//   The session cookie value is opaque here.  Storing session data and
//   signing the cookie belong to the session store, not to this package.
//
//   Alongside the session cookie we set `<name>.exp`, holding the expiry
//   as Unix milliseconds, so renew can tell how much lifetime is left.
//
// Workflow
//   •  Issue / Clear / Value   – handler-facing helpers.
//   •  Touch (via Middleware)  – rolling: re-issue on every response;
//                                renew:   re-issue once less than half
//                                         the lifetime remains.
//
//------------------------------------------------------------------------------

package session

import (
	"net/http"
	"strconv"
	"time"

	"github.com/AdeptTravel/adept-admin/internal/admin"
)

// CookieName is the admin session cookie.
const CookieName = "adept_admin_session"

const expirySuffix = ".exp"

// Policy issues and clears admin session cookies.
type Policy struct {
	name string
	s    admin.Session
	now  func() time.Time
}

// New returns a Policy for s.  An empty name selects CookieName.
func New(s admin.Session, name string) *Policy {
	if name == "" {
		name = CookieName
	}
	return &Policy{name: name, s: s, now: time.Now}
}

// Cookie builds the session cookie carrying value.
func (p *Policy) Cookie(value string) *http.Cookie {
	return p.cookie(p.name, value, p.now().Add(p.s.Cookie.Lifetime()))
}

func (p *Policy) cookie(name, value string, expires time.Time) *http.Cookie {
	return &http.Cookie{
		Name:     name,
		Value:    value,
		Path:     "/",
		HttpOnly: p.s.Cookie.HTTPOnly,
		Secure:   p.s.Cookie.Secure,
		SameSite: sameSite(p.s.Cookie.SameSite),
		MaxAge:   int(p.s.Cookie.Lifetime() / time.Second),
		Expires:  expires,
	}
}

// Issue sets the session cookie and its expiry companion.
func (p *Policy) Issue(w http.ResponseWriter, value string) {
	c := p.Cookie(value)
	http.SetCookie(w, c)
	http.SetCookie(w, p.cookie(p.name+expirySuffix, strconv.FormatInt(c.Expires.UnixMilli(), 10), c.Expires))
}

// Clear expires the session cookie and its companion.
func (p *Policy) Clear(w http.ResponseWriter) {
	for _, name := range []string{p.name, p.name + expirySuffix} {
		c := p.cookie(name, "", time.Unix(0, 0))
		c.MaxAge = -1
		http.SetCookie(w, c)
	}
}

// Value returns the session cookie value, if any.
//
// ok == false when the cookie is missing or empty.
func (p *Policy) Value(r *http.Request) (value string, ok bool) {
	c, err := r.Cookie(p.name)
	if err != nil || c.Value == "" {
		return "", false
	}
	return c.Value, true
}

// Touch re-issues the session cookie when the policy asks for it.  Rolling
// re-issues on every request.  Renew re-issues once less than half the
// lifetime remains, or when the expiry companion is missing or unreadable.
// It is a no-op when the request carries no session.
func (p *Policy) Touch(w http.ResponseWriter, r *http.Request) {
	if !p.s.Rolling && !p.s.Renew {
		return
	}
	v, ok := p.Value(r)
	if !ok {
		return
	}
	if p.s.Rolling || p.nearExpiry(r) {
		p.Issue(w, v)
	}
}

func (p *Policy) nearExpiry(r *http.Request) bool {
	c, err := r.Cookie(p.name + expirySuffix)
	if err != nil {
		return true
	}
	ms, err := strconv.ParseInt(c.Value, 10, 64)
	if err != nil {
		return true
	}
	left := time.UnixMilli(ms).Sub(p.now())
	return left < p.s.Cookie.Lifetime()/2
}

// Middleware calls Touch before handing off to next.
func (p *Policy) Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		p.Touch(w, r)
		next.ServeHTTP(w, r)
	})
}

func sameSite(s admin.SameSite) http.SameSite {
	switch s {
	case admin.SameSiteStrict:
		return http.SameSiteStrictMode
	case admin.SameSiteNone:
		return http.SameSiteNoneMode
	default:
		return http.SameSiteLaxMode
	}
}
