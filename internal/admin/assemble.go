// internal/admin/assemble.go
//
// Configuration assembler for the admin panel.
//
/*
Context
--------
`Assemble()` builds one Record from an EnvironmentReader in a single pass:

  1. Resolve every environment-backed field (string, bool, list).
  2. Fill the literal defaults (token lifetime, session cookie policy).
  3. Validate the struct with go-playground/validator.

Every failure from steps 1 and 3 is collected and returned together, so
an operator sees all missing secrets at once.  No partially built Record
ever escapes: on error the zero Record is returned.

Whether a failure aborts startup is the caller's decision.  cmd/web treats
any error as fatal.

Environment variables
---------------------
  ADMIN_JWT_SECRET      auth.secret
  API_TOKEN_SALT        apiToken.salt
  TRANSFER_TOKEN_SALT   transfer.token.salt
  ENCRYPTION_KEY        secrets.encryptionKey
  FLAG_NPS              flags.nps           (bool, default true)
  FLAG_PROMOTE_EE       flags.promoteEE     (bool, default true)
  ADMIN_COOKIE_KEYS     cookies.keys        (list, falls back to APP_KEYS)
*/
package admin

import (
	"errors"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
)

const (
	EnvAdminJWTSecret    = "ADMIN_JWT_SECRET"
	EnvAPITokenSalt      = "API_TOKEN_SALT"
	EnvTransferTokenSalt = "TRANSFER_TOKEN_SALT"
	EnvEncryptionKey     = "ENCRYPTION_KEY"
	EnvFlagNPS           = "FLAG_NPS"
	EnvFlagPromoteEE     = "FLAG_PROMOTE_EE"
	EnvAdminCookieKeys   = "ADMIN_COOKIE_KEYS"
	EnvAppKeys           = "APP_KEYS"
)

// Literal defaults.
const (
	DefaultExpiresIn = "7d"
	DefaultMaxAge    = int64(1000 * 60 * 60 * 24 * 7) // 7 days in ms
)

// CookieKeySources is the cookies.keys fallback chain, first match wins.
var CookieKeySources = []string{EnvAdminCookieKeys, EnvAppKeys}

// fieldVars maps each environment-backed field to the variables it reads,
// so validation failures can name them.
var fieldVars = map[string][]string{
	"auth.secret":           {EnvAdminJWTSecret},
	"apiToken.salt":         {EnvAPITokenSalt},
	"transfer.token.salt":   {EnvTransferTokenSalt},
	"secrets.encryptionKey": {EnvEncryptionKey},
	"flags.nps":             {EnvFlagNPS},
	"flags.promoteEE":       {EnvFlagPromoteEE},
	"cookies.keys":          CookieKeySources,
}

//
// validator instance (package-level singleton)
//

var v = newValidator()

func newValidator() *validator.Validate {
	val := validator.New()
	val.RegisterTagNameFunc(func(f reflect.StructField) string {
		name, _, _ := strings.Cut(f.Tag.Get("json"), ",")
		if name == "-" {
			return ""
		}
		return name
	})
	return val
}

// Assemble resolves the admin settings from env.
func Assemble(env EnvironmentReader) (Record, error) {
	res := NewResolver(env)
	var errs []error

	str := func(name string) string {
		s, _ := res.String(name)
		return s
	}
	boolean := func(field, name string, def bool) bool {
		b, err := res.Bool(name, def)
		if err != nil {
			errs = append(errs, withField(err, field))
		}
		return b
	}

	keys, _, listErr := res.List(CookieKeySources...)
	if listErr != nil {
		errs = append(errs, withField(listErr, "cookies.keys"))
	}

	rec := Record{
		Auth: Auth{
			Secret:  str(EnvAdminJWTSecret),
			Options: AuthOptions{ExpiresIn: DefaultExpiresIn},
		},
		APIToken: APIToken{Salt: str(EnvAPITokenSalt)},
		Transfer: Transfer{Token: TransferToken{Salt: str(EnvTransferTokenSalt)}},
		Secrets:  Secrets{EncryptionKey: str(EnvEncryptionKey)},
		Flags: Flags{
			NPS:       boolean("flags.nps", EnvFlagNPS, true),
			PromoteEE: boolean("flags.promoteEE", EnvFlagPromoteEE, true),
		},
		Cookies: Cookies{Keys: keys},
		Session: Session{
			Rolling: false,
			Renew:   false,
			Cookie: SessionCookie{
				HTTPOnly: true,
				Secure:   false,
				SameSite: SameSiteLax,
				MaxAge:   DefaultMaxAge,
			},
		},
	}

	// A list that failed to parse is already reported; skip the required
	// check for it so the operator sees one error, not two.
	for _, ve := range validate(&rec) {
		if listErr != nil && ve.Field == "cookies.keys" {
			continue
		}
		errs = append(errs, ve)
	}

	if len(errs) > 0 {
		return Record{}, errors.Join(errs...)
	}
	return rec, nil
}

// validate maps validator failures onto ConfigErrors.
func validate(rec *Record) []*ConfigError {
	err := v.Struct(rec)
	if err == nil {
		return nil
	}
	var fes validator.ValidationErrors
	if !errors.As(err, &fes) {
		return []*ConfigError{{Kind: InvalidValue, Value: err.Error()}}
	}
	out := make([]*ConfigError, 0, len(fes))
	for _, fe := range fes {
		field := fe.Namespace()
		if _, rest, ok := strings.Cut(field, "."); ok {
			field = rest // drop the leading "Record."
		}
		kind := InvalidValue
		if fe.Tag() == "required" {
			kind = MissingRequiredValue
		}
		out = append(out, &ConfigError{Kind: kind, Field: field, Vars: fieldVars[field]})
	}
	return out
}

func withField(err error, field string) error {
	var ce *ConfigError
	if errors.As(err, &ce) {
		cp := *ce
		cp.Field = field
		return &cp
	}
	return err
}
