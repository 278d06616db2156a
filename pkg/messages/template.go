package messages

import (
	"strings"
	"sync"

	"github.com/flosch/pongo2/v6"
	"github.com/microcosm-cc/bluemonday"
)

// Engine interpolates message templates. Parsed templates are cached per
// template string; variables are sanitised before execution so values
// sourced from records cannot smuggle markup into flash messages.
type Engine struct {
	mu        sync.Mutex
	set       *pongo2.TemplateSet
	templates map[string]*pongo2.Template
	policy    *bluemonday.Policy
}

// NewEngine constructs an Engine with a strict sanitisation policy.
func NewEngine() *Engine {
	return &Engine{
		set:       pongo2.NewSet("formctrl-messages", pongo2.DefaultLoader),
		templates: make(map[string]*pongo2.Template),
		policy:    bluemonday.StrictPolicy(),
	}
}

// Interpolate renders template with vars. Parse and execution failures fall
// back to the raw template text; message resolution must never fail.
func (e *Engine) Interpolate(template string, vars map[string]any) string {
	if e == nil {
		return template
	}
	if !strings.Contains(template, "{{") && !strings.Contains(template, "{%") {
		return template
	}

	tmpl, err := e.template(template)
	if err != nil {
		return template
	}

	out, err := tmpl.Execute(e.sanitise(vars))
	if err != nil {
		return template
	}
	return out
}

func (e *Engine) template(content string) (*pongo2.Template, error) {
	e.mu.Lock()
	defer e.mu.Unlock()

	if tmpl, ok := e.templates[content]; ok {
		return tmpl, nil
	}
	tmpl, err := e.set.FromString(content)
	if err != nil {
		return nil, err
	}
	e.templates[content] = tmpl
	return tmpl, nil
}

func (e *Engine) sanitise(vars map[string]any) pongo2.Context {
	out := make(pongo2.Context, len(vars))
	for key, value := range vars {
		if str, ok := value.(string); ok {
			out[key] = strings.TrimSpace(e.policy.Sanitize(str))
			continue
		}
		out[key] = value
	}
	return out
}
