// internal/admin/record.go
//
// Typed model of the admin settings.
//
// Context
// -------
// Record is built once at boot by Assemble and handed around by value.
// JSON tags carry the dotted field names used in error reports, log lines,
// and the redacted dump, so `cookies.keys` in a log means the same thing
// as `cookies.keys` in a ConfigError.
//
// Notes
// -----
//   • Literal-only fields (expiresIn, the session block) still carry
//     validate tags, so the defaults are checked on every assembly.

package admin

import (
	"fmt"
	"strconv"
	"time"
)

// SameSite is the cookie SameSite policy.
type SameSite string

const (
	SameSiteStrict SameSite = "strict"
	SameSiteLax    SameSite = "lax"
	SameSiteNone   SameSite = "none"
)

// Record is the admin settings aggregate.
type Record struct {
	Auth     Auth     `json:"auth"`
	APIToken APIToken `json:"apiToken"`
	Transfer Transfer `json:"transfer"`
	Secrets  Secrets  `json:"secrets"`
	Flags    Flags    `json:"flags"`
	Cookies  Cookies  `json:"cookies"`
	Session  Session  `json:"session"`
}

// Auth holds the admin JWT secret and token options.
type Auth struct {
	Secret  string      `json:"secret"  validate:"required"`
	Options AuthOptions `json:"options"`
}

// AuthOptions mirrors the token options handed to the JWT collaborator.
type AuthOptions struct {
	ExpiresIn string `json:"expiresIn" validate:"required"`
}

// APIToken holds the salt for hashing API tokens.
type APIToken struct {
	Salt string `json:"salt" validate:"required"`
}

// Transfer holds transfer-token settings.
type Transfer struct {
	Token TransferToken `json:"token"`
}

type TransferToken struct {
	Salt string `json:"salt" validate:"required"`
}

// Secrets holds the key used to encrypt stored secrets.
type Secrets struct {
	EncryptionKey string `json:"encryptionKey" validate:"required"`
}

// Flags are admin-panel feature toggles.
type Flags struct {
	NPS       bool `json:"nps"`
	PromoteEE bool `json:"promoteEE"`
}

// Cookies holds the ordered signing keys for admin cookies.
type Cookies struct {
	Keys []string `json:"keys" validate:"required"`
}

// Session is the admin session policy.
type Session struct {
	Rolling bool          `json:"rolling"`
	Renew   bool          `json:"renew"`
	Cookie  SessionCookie `json:"cookie"`
}

// SessionCookie describes the admin session cookie.  MaxAge is in
// milliseconds.
type SessionCookie struct {
	HTTPOnly bool     `json:"httpOnly"`
	Secure   bool     `json:"secure"`
	SameSite SameSite `json:"sameSite" validate:"oneof=strict lax none"`
	MaxAge   int64    `json:"maxAge"   validate:"gt=0"`
}

const redactedValue = "[redacted]"

// Redacted returns a copy safe to log.  Secrets, salts, the encryption
// key, and each cookie key are masked; empty values stay empty so a
// missing secret is still visible.
func (r Record) Redacted() Record {
	mask := func(s string) string {
		if s == "" {
			return ""
		}
		return redactedValue
	}
	out := r
	out.Auth.Secret = mask(r.Auth.Secret)
	out.APIToken.Salt = mask(r.APIToken.Salt)
	out.Transfer.Token.Salt = mask(r.Transfer.Token.Salt)
	out.Secrets.EncryptionKey = mask(r.Secrets.EncryptionKey)
	if r.Cookies.Keys != nil {
		out.Cookies.Keys = make([]string, len(r.Cookies.Keys))
		for i, k := range r.Cookies.Keys {
			out.Cookies.Keys[i] = mask(k)
		}
	}
	return out
}

// Lifetime returns MaxAge as a duration.
func (c SessionCookie) Lifetime() time.Duration {
	return time.Duration(c.MaxAge) * time.Millisecond
}

// CookieMaxAge returns session.cookie.maxAge as a duration.
func (r Record) CookieMaxAge() time.Duration {
	return r.Session.Cookie.Lifetime()
}

// ExpiresIn interprets auth.options.expiresIn.  Accepted forms are a bare
// integer (milliseconds) or an integer followed by ms, s, m, h, d, w, or y.
func (r Record) ExpiresIn() (time.Duration, error) {
	return parseSpan(r.Auth.Options.ExpiresIn)
}

var spanUnits = map[string]time.Duration{
	"ms": time.Millisecond,
	"s":  time.Second,
	"m":  time.Minute,
	"h":  time.Hour,
	"d":  24 * time.Hour,
	"w":  7 * 24 * time.Hour,
	"y":  365 * 24 * time.Hour,
}

func parseSpan(s string) (time.Duration, error) {
	i := 0
	for i < len(s) && s[i] >= '0' && s[i] <= '9' {
		i++
	}
	if i == 0 {
		return 0, fmt.Errorf("span %q: no leading integer", s)
	}
	n, err := strconv.ParseInt(s[:i], 10, 64)
	if err != nil {
		return 0, fmt.Errorf("span %q: %w", s, err)
	}
	unit := s[i:]
	if unit == "" {
		unit = "ms"
	}
	mult, ok := spanUnits[unit]
	if !ok {
		return 0, fmt.Errorf("span %q: unknown unit %q", s, unit)
	}
	return time.Duration(n) * mult, nil
}
