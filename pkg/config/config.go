// Package config resolves the declarative configuration that drives a form
// controller: a raw tree validated at construction, path-style lookups with
// caller defaults, and immutable per-context snapshots where context-level
// overrides win over base keys.
package config

import (
	"fmt"
	"sort"
	"strings"

	"github.com/goliatone/go-formctrl/internal/confpath"
)

// Keys every configuration tree must carry. Construction fails when either
// is missing.
const (
	KeyModelClass = "modelClass"
	KeyForm       = "form"
)

// Config wraps a validated configuration tree. The tree is treated as
// read-only after Load returns.
type Config struct {
	tree map[string]any
}

// Load validates the raw tree and wraps it. Required keys are modelClass and
// form; a missing key yields a *MissingKeyError.
func Load(tree map[string]any) (*Config, error) {
	if tree == nil {
		return nil, &MissingKeyError{Key: KeyModelClass}
	}
	for _, key := range []string{KeyModelClass, KeyForm} {
		if _, ok := tree[key]; !ok {
			return nil, &MissingKeyError{Key: key}
		}
	}
	return &Config{tree: tree}, nil
}

// Resolve returns the value at path, or def when the path is absent.
func (c *Config) Resolve(path string, def any) any {
	if c == nil {
		return def
	}
	if value, ok := confpath.Lookup(c.tree, path); ok {
		return value
	}
	return def
}

// String resolves path and coerces the result to a string. Non-string values
// fall back to def.
func (c *Config) String(path, def string) string {
	value := c.Resolve(path, nil)
	if value == nil {
		return def
	}
	if str, ok := value.(string); ok {
		return str
	}
	return fmt.Sprint(value)
}

// Keys returns the top-level keys of the configuration tree in sorted order.
func (c *Config) Keys() []string {
	if c == nil {
		return nil
	}
	keys := make([]string, 0, len(c.tree))
	for key := range c.tree {
		keys = append(keys, key)
	}
	sort.Strings(keys)
	return keys
}

// Has reports whether the path resolves to a value.
func (c *Config) Has(path string) bool {
	if c == nil {
		return false
	}
	_, ok := confpath.Lookup(c.tree, path)
	return ok
}

// ModelClass returns the configured record type name.
func (c *Config) ModelClass() string {
	return c.String(KeyModelClass, "")
}

// Name returns the display label used when interpolating messages.
func (c *Config) Name() string {
	return c.String("name", "")
}

// Permission returns the permission key configured for an action, if any.
func (c *Config) Permission(action string) (string, bool) {
	value := c.String("permissions."+action, "")
	if strings.TrimSpace(value) == "" {
		return "", false
	}
	return value, true
}

// ForContext derives an immutable snapshot for the active render context.
// Per-context keys (e.g. "update.form", "update.context") take precedence
// over the corresponding base keys.
func (c *Config) ForContext(context string) Snapshot {
	return Snapshot{base: c, context: strings.TrimSpace(context)}
}

// Snapshot is a per-action view of the configuration. It is a pure
// derivation of the underlying Config and carries no mutable state, so it is
// safe to hand to rendering collaborators for the remainder of a request.
type Snapshot struct {
	base    *Config
	context string
}

// Context returns the render context the snapshot was derived for.
func (s Snapshot) Context() string {
	return s.context
}

// Resolve looks up path under the active context first, then against the
// base tree, then falls back to def.
func (s Snapshot) Resolve(path string, def any) any {
	if s.base == nil {
		return def
	}
	if s.context != "" {
		if value, ok := confpath.Lookup(s.base.tree, s.context+"."+path); ok {
			return value
		}
	}
	return s.base.Resolve(path, def)
}

// String resolves path through the snapshot precedence and coerces to string.
func (s Snapshot) String(path, def string) string {
	value := s.Resolve(path, nil)
	if value == nil {
		return def
	}
	if str, ok := value.(string); ok {
		return str
	}
	return fmt.Sprint(value)
}

// Has reports whether path resolves under the context or the base tree.
func (s Snapshot) Has(path string) bool {
	return s.Resolve(path, nil) != nil
}

// ModelClass returns the record type name (never overridden per context).
func (s Snapshot) ModelClass() string {
	if s.base == nil {
		return ""
	}
	return s.base.ModelClass()
}

// Name returns the display label, honouring a per-context override.
func (s Snapshot) Name() string {
	return s.String("name", "")
}

// Form returns the form definition for the snapshot. A context-level "form"
// key overrides the base definition.
func (s Snapshot) Form() any {
	return s.Resolve(KeyForm, nil)
}

// Title returns the configured title for the context, or def when absent.
func (s Snapshot) Title(def string) string {
	return s.String("title", def)
}

// Permission delegates to the base config; permission keys are global.
func (s Snapshot) Permission(action string) (string, bool) {
	if s.base == nil {
		return "", false
	}
	return s.base.Permission(action)
}

// Base exposes the underlying config for collaborators that need raw,
// context-free lookups (e.g. redirect resolution strips close suffixes and
// performs its own context prefixing).
func (s Snapshot) Base() *Config {
	return s.base
}
