// internal/admin/resolve.go
//
// Typed accessors over an EnvironmentReader.
//
// Context
// -------
// Three resolutions cover the whole admin surface:
//
//   • String – passthrough, absent stays absent.
//   • Bool   – default when unset, exactly "true"/"false" otherwise.
//   • List   – comma list, evaluated over an ordered fallback chain.
//
// Errors carry the variable name(s) but no Field; Assemble fills that in.

package admin

import "strings"

// Resolver turns variable names into typed values.
type Resolver struct {
	env EnvironmentReader
}

// NewResolver wraps env.  A nil env behaves as an empty environment.
func NewResolver(env EnvironmentReader) *Resolver {
	if env == nil {
		env = MapEnv(nil)
	}
	return &Resolver{env: env}
}

// String returns the raw value of name.
func (r *Resolver) String(name string) (string, bool) {
	return r.env.Lookup(name)
}

// Bool parses name as a boolean.  Only an unset variable yields def; a
// present value must be exactly "true" or "false".
func (r *Resolver) Bool(name string, def bool) (bool, error) {
	raw, ok := r.env.Lookup(name)
	if !ok {
		return def, nil
	}
	switch raw {
	case "true":
		return true, nil
	case "false":
		return false, nil
	}
	return def, &ConfigError{Kind: InvalidBoolean, Vars: []string{name}, Value: raw}
}

// List resolves the first set variable in names as a comma list and
// reports which one matched.  Only an unset variable passes to the next
// candidate; a blank one is an empty list and fails.  When none is set
// List returns (nil, "", nil).
func (r *Resolver) List(names ...string) ([]string, string, error) {
	for _, name := range names {
		raw, ok := r.env.Lookup(name)
		if !ok {
			continue
		}
		items, ok := splitList(raw)
		if !ok {
			return nil, name, &ConfigError{Kind: InvalidList, Vars: []string{name}}
		}
		return items, name, nil
	}
	return nil, "", nil
}

// splitList accepts `a,b`, `[a, b]`, and `["a","b"]`.  ok is false when
// any element is empty after trimming.
func splitList(raw string) ([]string, bool) {
	s := strings.TrimSpace(raw)
	if strings.HasPrefix(s, "[") && strings.HasSuffix(s, "]") {
		s = s[1 : len(s)-1]
	}
	parts := strings.Split(s, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		p = strings.Trim(strings.TrimSpace(p), `"`)
		if p == "" {
			return nil, false
		}
		out = append(out, p)
	}
	return out, true
}
