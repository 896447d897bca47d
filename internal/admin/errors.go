// internal/admin/errors.go
//
// Resolution error taxonomy.  Every failure raised while assembling the
// admin settings is a *ConfigError; callers branch on Kind through
// errors.Is against the sentinels below.

package admin

import (
	"errors"
	"fmt"
	"strings"
)

// Kind classifies a resolution failure.
type Kind int

const (
	MissingRequiredValue Kind = iota + 1
	InvalidBoolean
	InvalidList
	InvalidValue
)

func (k Kind) String() string {
	switch k {
	case MissingRequiredValue:
		return "missing_required_value"
	case InvalidBoolean:
		return "invalid_boolean"
	case InvalidList:
		return "invalid_list"
	case InvalidValue:
		return "invalid_value"
	default:
		return "unknown"
	}
}

var (
	ErrMissingRequiredValue = &ConfigError{Kind: MissingRequiredValue}
	ErrInvalidBoolean       = &ConfigError{Kind: InvalidBoolean}
	ErrInvalidList          = &ConfigError{Kind: InvalidList}
	ErrInvalidValue         = &ConfigError{Kind: InvalidValue}
)

// ConfigError reports one field that could not be resolved.
//
// Field is the dotted record path (e.g. "cookies.keys").  Vars lists the
// environment variables consulted, in fallback order.  Value is only set
// for non-secret inputs such as booleans.
type ConfigError struct {
	Kind  Kind
	Field string
	Vars  []string
	Value string
}

func (e *ConfigError) Error() string {
	var b strings.Builder
	b.WriteString("admin config")
	if e.Field != "" {
		b.WriteString(": " + e.Field)
	}
	b.WriteString(": " + strings.ReplaceAll(e.Kind.String(), "_", " "))
	if e.Value != "" {
		fmt.Fprintf(&b, " %q", e.Value)
	}
	if len(e.Vars) > 0 {
		b.WriteString(" (" + strings.Join(e.Vars, ", ") + ")")
	}
	return b.String()
}

// Is matches any *ConfigError of the same Kind, so the sentinels work
// regardless of Field or Vars.
func (e *ConfigError) Is(target error) bool {
	var t *ConfigError
	if !errors.As(target, &t) {
		return false
	}
	return t.Kind == e.Kind
}

// Errors flattens err (possibly an errors.Join tree) into its
// *ConfigError leaves, in order.
func Errors(err error) []*ConfigError {
	if err == nil {
		return nil
	}
	var out []*ConfigError
	if multi, ok := err.(interface{ Unwrap() []error }); ok {
		for _, e := range multi.Unwrap() {
			out = append(out, Errors(e)...)
		}
		return out
	}
	var ce *ConfigError
	if errors.As(err, &ce) {
		out = append(out, ce)
	}
	return out
}
