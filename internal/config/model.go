// internal/config/model.go
//
// Typed configuration model for the host process.
//
// Context
// -------
// These structs describe the host side only: where to listen, how long
// to wait on slow clients, and how loud to log.  The admin panel settings
// (secrets, cookie keys, session policy) live in internal/admin and are
// read straight from the environment.
//
// The tree is built by `internal/config/loader.go` from:
//
//   • optional `conf/.env`                    – dotenv values,
//   • `conf/global.yaml`                      – primary static file,
//   • `ADEPT_`-prefixed environment overrides – highest precedence.
//
// Notes
// -----
//   • Struct tags use `koanf:"…"`, not `yaml:"…"`.
//   • The `Paths` block is filled at runtime; YAML must not try to set it.

package config

import "time"

//
// HTTP section
//

// HTTP holds web-server tunables.
type HTTP struct {
	ListenAddr   string        `koanf:"listen_addr"   validate:"required,hostname_port"`
	ReadTimeout  time.Duration `koanf:"read_timeout"  validate:"gte=0"`
	WriteTimeout time.Duration `koanf:"write_timeout" validate:"gte=0"`
	IdleTimeout  time.Duration `koanf:"idle_timeout"  validate:"gte=0"`
}

//
// Log section
//

// Log controls the zap logger.  Tee mirrors the JSON file log to stdout in
// console format; cmd/web forces it on when attached to a TTY.
type Log struct {
	Level string `koanf:"level" validate:"omitempty,oneof=debug info warn error"`
	Tee   bool   `koanf:"tee"`
}

//
// Paths section (runtime only)
//

// Paths is resolved at runtime, never set in YAML or env.
type Paths struct {
	Root string // ADEPT_ROOT or discovered parent
}

//
// Root aggregate
//

// Config is the immutable aggregate returned by Load().
type Config struct {
	HTTP  HTTP  `koanf:"http"`
	Log   Log   `koanf:"log"`
	Paths Paths `koanf:"-"` // not loaded from config files
}

// defaults are applied before the YAML layer.
func defaults() map[string]any {
	return map[string]any{
		"http.listen_addr":   ":8080",
		"http.read_timeout":  "10s",
		"http.write_timeout": "15s",
		"http.idle_timeout":  "60s",
		"log.level":          "info",
	}
}
