// internal/admin/env.go
//
// Environment sources for the admin settings assembler.
//
// Context
// -------
// The assembler never calls os.Getenv directly.  It reads through an
// EnvironmentReader so tests can hand it a fixed map and the host can hand
// it a snapshot that later environment writes cannot reach.
//
//   • MapEnv     – fixed mapping; tests and parsed .env files.
//   • Snapshot   – koanf copy of the environment taken once at boot.
//   • Layered    – first reader that has the variable wins.
//   • ReadDotenv – parses .env files into a MapEnv without touching os.Environ.

package admin

import (
	"fmt"

	"github.com/joho/godotenv"
	"github.com/knadh/koanf/providers/env"
	koanf "github.com/knadh/koanf/v2"
)

// EnvironmentReader looks up one variable.  ok is false when it is unset.
type EnvironmentReader interface {
	Lookup(name string) (value string, ok bool)
}

// MapEnv is a fixed mapping.  A nil MapEnv has every variable unset.
type MapEnv map[string]string

func (m MapEnv) Lookup(name string) (string, bool) {
	v, ok := m[name]
	return v, ok
}

// Layered consults each reader in order.  A variable set in an earlier
// layer hides the same variable in later ones, even when blank.
type Layered []EnvironmentReader

func (l Layered) Lookup(name string) (string, bool) {
	for _, r := range l {
		if r == nil {
			continue
		}
		if v, ok := r.Lookup(name); ok {
			return v, true
		}
	}
	return "", false
}

// Snapshot is a frozen copy of the process environment.
type Snapshot struct {
	k *koanf.Koanf
}

// NewSnapshot copies the current process environment.  Variable names are
// kept verbatim; the koanf delimiter is a byte that never appears in a
// POSIX variable name, so names are never split into nested keys.
func NewSnapshot() (*Snapshot, error) {
	k := koanf.New("\x00")
	if err := k.Load(env.Provider("", "\x00", func(s string) string { return s }), nil); err != nil {
		return nil, fmt.Errorf("environment snapshot: %w", err)
	}
	return &Snapshot{k: k}, nil
}

func (s *Snapshot) Lookup(name string) (string, bool) {
	if !s.k.Exists(name) {
		return "", false
	}
	return s.k.String(name), true
}

// ReadDotenv parses the given .env files.  Later files win on duplicate
// keys.  The process environment is left untouched.
func ReadDotenv(paths ...string) (MapEnv, error) {
	out := MapEnv{}
	for _, p := range paths {
		vals, err := godotenv.Read(p)
		if err != nil {
			return nil, fmt.Errorf("read dotenv %s: %w", p, err)
		}
		for k, v := range vals {
			out[k] = v
		}
	}
	return out, nil
}
