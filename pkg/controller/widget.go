package controller

import (
	"github.com/goliatone/go-formctrl/pkg/config"
	"github.com/goliatone/go-formctrl/pkg/hooks"
)

// RenderOptions carries per-render instructions for the widget.
type RenderOptions struct {
	// Fields restricts rendering to a subset of fields (partial refresh).
	Fields []string
	// Data supplies the payload a partial re-render should use instead of
	// the widget's current values.
	Data map[string]any
	// Preview renders the form read-only.
	Preview bool
	// Section restricts rendering to a single tab section.
	Section string
}

// Tab exposes what the controller needs to know about a form tab section.
type Tab interface {
	HasFields() bool
}

// Widget is the rendering collaborator contract. Field layout, validation UI
// and markup generation live behind it; the controller only initialises it,
// binds extension hooks to it, and collects its save payload.
type Widget interface {
	hooks.Binder

	// Fire dispatches an extension point to the bound callbacks, returning
	// the first non-nil result.
	Fire(event hooks.Event, payload any) any

	// Render produces markup for the form or a subset of it.
	Render(options RenderOptions) ([]byte, error)

	// SaveData returns the structured payload to persist.
	SaveData() map[string]any

	// SessionKey identifies deferred bindings collected during editing.
	SessionKey() string

	// Field returns the descriptor for a named field, if it exists.
	Field(name string) (any, bool)

	// Tab returns the named tab section, if it exists.
	Tab(section string) (Tab, bool)
}

// WidgetFactory constructs widgets from a configuration snapshot and the
// record under edit. A fresh widget is made on every form initialisation.
type WidgetFactory interface {
	Make(snapshot config.Snapshot, record Record) (Widget, error)
}

// WidgetFactoryFunc adapts a function to WidgetFactory.
type WidgetFactoryFunc func(snapshot config.Snapshot, record Record) (Widget, error)

// Make implements WidgetFactory.
func (f WidgetFactoryFunc) Make(snapshot config.Snapshot, record Record) (Widget, error) {
	return f(snapshot, record)
}
