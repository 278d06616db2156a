// Package redirect computes post-action navigation targets from the active
// context, request flags, and configured redirect templates. Resolution
// short-circuits at the first applicable rule; the host controller retains a
// final override hook that wins over every configured template.
package redirect

import (
	"fmt"
	"net/url"
	"regexp"
	"strings"

	"github.com/goliatone/go-formctrl/pkg/config"
)

// CloseSuffix marks the "save and exit" variant of a context. Detection is a
// plain string-suffix check; a custom context whose name legitimately ends
// in "-close" is indistinguishable from the variant. Known edge case.
const CloseSuffix = "-close"

// Kind classifies a resolved directive.
type Kind int

const (
	// KindNone means the caller performs no navigation.
	KindNone Kind = iota
	// KindRefresh reloads the current page in place.
	KindRefresh
	// KindInternal navigates to a relative admin path.
	KindInternal
	// KindExternal navigates to an absolute URL.
	KindExternal
)

func (k Kind) String() string {
	switch k {
	case KindRefresh:
		return "refresh"
	case KindInternal:
		return "internal"
	case KindExternal:
		return "external"
	default:
		return "none"
	}
}

// Directive is the resolved navigation outcome.
type Directive struct {
	Kind  Kind
	URL   string
	Query url.Values
}

// Target returns the URL with any extra query parameters appended. Empty for
// refresh and none directives.
func (d Directive) Target() string {
	if d.URL == "" || len(d.Query) == 0 {
		return d.URL
	}
	separator := "?"
	if strings.Contains(d.URL, "?") {
		separator = "&"
	}
	return d.URL + separator + d.Query.Encode()
}

// Flags carries the request-level switches that steer resolution.
type Flags struct {
	// Refresh forces an in-place refresh, skipping every other rule.
	Refresh bool
	// Disabled suppresses redirection entirely (redirect=false).
	Disabled bool
	// Close appends the close suffix to the context before template lookup.
	Close bool
}

// Record supplies attribute values for route parameter substitution.
type Record interface {
	Attribute(name string) (any, bool)
}

// Overrider is the host override hook. A non-empty return value wins over
// everything the resolver computed.
type Overrider func(context string, record Record) string

var paramPattern = regexp.MustCompile(`:([A-Za-z][A-Za-z0-9_]*)`)

// Resolver resolves directives against a controller configuration.
type Resolver struct {
	cfg *config.Config
}

// NewResolver constructs a Resolver.
func NewResolver(cfg *config.Config) *Resolver {
	return &Resolver{cfg: cfg}
}

// Resolve computes the directive for the action context. Rules apply in
// order and short-circuit: refresh flag, disabled flag, close-suffix
// context lookup, default template, record substitution, host override,
// absolute/internal split, extra query parameters.
func (r *Resolver) Resolve(context string, record Record, flags Flags, extra url.Values, override Overrider) Directive {
	if flags.Refresh {
		return Directive{Kind: KindRefresh}
	}
	if flags.Disabled {
		return Directive{Kind: KindNone}
	}

	ctx := strings.TrimSpace(context)
	if flags.Close && !strings.HasSuffix(ctx, CloseSuffix) {
		ctx += CloseSuffix
	}

	target := r.templateFor(ctx)
	if record != nil {
		target = ReplaceParameters(record, target)
	}

	if override != nil {
		if overridden := strings.TrimSpace(override(ctx, record)); overridden != "" {
			target = overridden
		}
	}

	if target == "" {
		return Directive{Kind: KindNone}
	}

	kind := KindInternal
	if isAbsolute(target) {
		kind = KindExternal
	}

	return Directive{Kind: kind, URL: target, Query: extra}
}

// templateFor looks up the configured URL template for the (possibly
// suffixed) context. A suffixed-context miss falls straight through to the
// global default, never to the base context's plain redirect.
func (r *Resolver) templateFor(ctx string) string {
	if r == nil || r.cfg == nil || ctx == "" {
		return ""
	}

	var template string
	if strings.HasSuffix(ctx, CloseSuffix) {
		base := strings.TrimSuffix(ctx, CloseSuffix)
		template = r.cfg.String(base+".redirectClose", "")
	} else {
		template = r.cfg.String(ctx+".redirect", "")
	}

	if strings.TrimSpace(template) == "" {
		template = r.cfg.String("defaultRedirect", "")
	}
	return strings.TrimSpace(template)
}

// ReplaceParameters substitutes :param tokens in template with the record's
// attribute values. Tokens without a matching attribute are left untouched.
func ReplaceParameters(record Record, template string) string {
	if record == nil || template == "" {
		return template
	}
	return paramPattern.ReplaceAllStringFunc(template, func(token string) string {
		name := token[1:]
		value, ok := record.Attribute(name)
		if !ok || value == nil {
			return token
		}
		return fmt.Sprint(value)
	})
}

var schemePattern = regexp.MustCompile(`^[A-Za-z][A-Za-z0-9+.-]*://`)

func isAbsolute(target string) bool {
	return strings.HasPrefix(target, "//") || schemePattern.MatchString(target)
}
