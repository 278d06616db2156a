// Package messages resolves user-facing strings through a layered fallback
// chain: context-scoped custom messages, deprecated context-local keys,
// global custom messages, a legacy flashSave alias, caller defaults, and a
// built-in default table. Resolution never fails; when nothing matches the
// message name itself is returned as a literal placeholder.
package messages

import (
	"strings"

	"github.com/goliatone/go-formctrl/pkg/config"
)

// Message names with built-in default templates.
const (
	NotFound    = "notFound"
	FlashCreate = "flashCreate"
	FlashUpdate = "flashUpdate"
	FlashDelete = "flashDelete"

	// FlashSave is the deprecated catch-all key consulted when neither
	// flashCreate nor flashUpdate resolve. Kept as a documented
	// backward-compatibility path.
	FlashSave = "flashSave"
)

var defaultTemplates = map[string]string{
	NotFound:    "{{ name }} with an ID of {{ id }} could not be found",
	FlashCreate: "{{ name }} created",
	FlashUpdate: "{{ name }} updated",
	FlashDelete: "{{ name }} deleted",
}

// Option customises the resolver.
type Option func(*Resolver)

// WithEngine injects a template engine; the default engine interpolates
// pongo2 templates and sanitises string variables.
func WithEngine(engine *Engine) Option {
	return func(r *Resolver) {
		if engine != nil {
			r.engine = engine
		}
	}
}

// WithDisplayName overrides the display label interpolated as {{ name }}.
func WithDisplayName(name string) Option {
	return func(r *Resolver) {
		if trimmed := strings.TrimSpace(name); trimmed != "" {
			r.displayName = trimmed
		}
	}
}

// Resolver resolves and interpolates message templates against a controller
// configuration.
type Resolver struct {
	cfg         *config.Config
	engine      *Engine
	displayName string
}

// New constructs a Resolver. The display label defaults to the configured
// name, then the model class, then "record".
func New(cfg *config.Config, options ...Option) *Resolver {
	r := &Resolver{cfg: cfg}
	for _, opt := range options {
		if opt == nil {
			continue
		}
		opt(r)
	}
	if r.engine == nil {
		r.engine = NewEngine()
	}
	if r.displayName == "" {
		r.displayName = displayNameFor(cfg)
	}
	return r
}

// Resolve finds the template for name under the active context and
// interpolates it with the display name plus vars. The def template is used
// when no configured message matches; pass "" to fall through to the
// built-in defaults.
func (r *Resolver) Resolve(context, name, def string, vars map[string]any) string {
	template, ok := r.lookup(context, name)
	if !ok && isSaveAlias(name) {
		template, ok = r.lookup(context, FlashSave)
	}
	if !ok && def != "" {
		template, ok = def, true
	}
	if !ok {
		template, ok = defaultTemplates[name]
	}
	if !ok {
		// Literal placeholder: resolution never fails.
		template = name
	}
	return r.engine.Interpolate(template, r.mergeVars(vars))
}

// lookup runs the configured precedence chain for a single message name.
func (r *Resolver) lookup(context, name string) (string, bool) {
	if r.cfg == nil || name == "" {
		return "", false
	}

	paths := make([]string, 0, 3)
	if context != "" {
		paths = append(paths,
			context+".customMessages."+name,
			// Deprecated context-local key, e.g. "update.flashUpdate".
			context+"."+name,
		)
	}
	paths = append(paths, "customMessages."+name)

	for _, path := range paths {
		if value := r.cfg.String(path, ""); strings.TrimSpace(value) != "" {
			return value, true
		}
	}
	return "", false
}

func (r *Resolver) mergeVars(vars map[string]any) map[string]any {
	merged := make(map[string]any, len(vars)+1)
	merged["name"] = r.displayName
	for key, value := range vars {
		merged[key] = value
	}
	return merged
}

func isSaveAlias(name string) bool {
	return name == FlashCreate || name == FlashUpdate
}

func displayNameFor(cfg *config.Config) string {
	if cfg != nil {
		if name := strings.TrimSpace(cfg.Name()); name != "" {
			return name
		}
		if class := strings.TrimSpace(cfg.ModelClass()); class != "" {
			return class
		}
	}
	return "record"
}
