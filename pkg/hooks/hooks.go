// Package hooks defines the named extension points a form controller binds
// around form initialisation and partial refresh, the pipeline that wires
// host callbacks to a widget's event surface, and a registry for callbacks
// keyed by controller identity.
//
// Bindings are rebuilt on every form initialisation and never reused across
// requests, so stale closures cannot leak between requests.
package hooks

import "sync"

// Event names a widget extension point.
type Event string

// The five extension points, listed in binding order.
const (
	// EventFieldsBefore fires before the field set is resolved. Pure
	// notification; hosts prepare state here.
	EventFieldsBefore Event = "form.extendFieldsBefore"

	// EventFields fires after the field set is resolved. Hosts may inspect
	// or alter the field set in place.
	EventFields Event = "form.extendFields"

	// EventBeforeRefresh fires before a partial re-render. A map result
	// replaces the built-in data payload.
	EventBeforeRefresh Event = "form.beforeRefresh"

	// EventRefreshFields fires to select the target field set for a partial
	// re-render. A string-slice result replaces the requested set.
	EventRefreshFields Event = "form.refreshFields"

	// EventRefresh fires after a partial re-render. A map result augments or
	// overrides the result parameters.
	EventRefresh Event = "form.refresh"
)

// Ordered returns the extension points in their binding order.
func Ordered() []Event {
	return []Event{
		EventFieldsBefore,
		EventFields,
		EventBeforeRefresh,
		EventRefreshFields,
		EventRefresh,
	}
}

// Callback handles an extension point. A non-nil structured result replaces
// the default the caller would otherwise use; the pipeline does not
// interpret results beyond that.
type Callback func(payload any) any

// Binding associates an extension point with a callback.
type Binding struct {
	Event    Event
	Callback Callback
}

// Binder is the event-subscription surface a rendering collaborator exposes.
type Binder interface {
	On(event Event, callback Callback)
}

// FieldHooks is the host-facing extension surface. Each method corresponds
// to one extension point; NoopFieldHooks provides default no-op behaviour
// for embedding.
type FieldHooks interface {
	// FormExtendFieldsBefore corresponds to EventFieldsBefore.
	FormExtendFieldsBefore()
	// FormExtendFields corresponds to EventFields. The field set is
	// widget-owned; hosts mutate it in place.
	FormExtendFields(fields any)
	// FormExtendRefreshData corresponds to EventBeforeRefresh. A non-nil
	// result replaces the refresh payload.
	FormExtendRefreshData(data map[string]any) map[string]any
	// FormExtendRefreshFields corresponds to EventRefreshFields. A non-nil
	// result replaces the refresh field set.
	FormExtendRefreshFields(fields []string) []string
	// FormExtendRefreshResults corresponds to EventRefresh. A non-nil
	// result overrides the refresh result parameters.
	FormExtendRefreshResults(result map[string]any) map[string]any
}

// NoopFieldHooks implements FieldHooks with no-op bodies. Hosts embed it and
// override only the seams they need.
type NoopFieldHooks struct{}

func (NoopFieldHooks) FormExtendFieldsBefore()     {}
func (NoopFieldHooks) FormExtendFields(fields any) {}
func (NoopFieldHooks) FormExtendRefreshData(data map[string]any) map[string]any {
	return nil
}
func (NoopFieldHooks) FormExtendRefreshFields(fields []string) []string {
	return nil
}
func (NoopFieldHooks) FormExtendRefreshResults(result map[string]any) map[string]any {
	return nil
}

// HostBindings adapts a FieldHooks implementation to the five ordered
// bindings. Results follow the "non-nil replaces the default" convention.
func HostBindings(host FieldHooks) []Binding {
	if host == nil {
		return nil
	}
	return []Binding{
		{Event: EventFieldsBefore, Callback: func(any) any {
			host.FormExtendFieldsBefore()
			return nil
		}},
		{Event: EventFields, Callback: func(payload any) any {
			host.FormExtendFields(payload)
			return nil
		}},
		{Event: EventBeforeRefresh, Callback: func(payload any) any {
			data, _ := payload.(map[string]any)
			if replaced := host.FormExtendRefreshData(data); replaced != nil {
				return replaced
			}
			return nil
		}},
		{Event: EventRefreshFields, Callback: func(payload any) any {
			fields, _ := payload.([]string)
			if replaced := host.FormExtendRefreshFields(fields); replaced != nil {
				return replaced
			}
			return nil
		}},
		{Event: EventRefresh, Callback: func(payload any) any {
			result, _ := payload.(map[string]any)
			if replaced := host.FormExtendRefreshResults(result); replaced != nil {
				return replaced
			}
			return nil
		}},
	}
}

// Bind registers the host bindings followed by any extra bindings on the
// binder, preserving order. Call it once per form initialisation.
func Bind(binder Binder, host FieldHooks, extras ...Binding) {
	if binder == nil {
		return
	}
	for _, binding := range HostBindings(host) {
		binder.On(binding.Event, binding.Callback)
	}
	for _, binding := range extras {
		if binding.Callback == nil {
			continue
		}
		binder.On(binding.Event, binding.Callback)
	}
}

// Emitter is a minimal event dispatcher rendering collaborators can embed to
// satisfy Binder and fire extension points during their lifecycle.
type Emitter struct {
	mu       sync.Mutex
	handlers map[Event][]Callback
}

// On implements Binder.
func (e *Emitter) On(event Event, callback Callback) {
	if e == nil || callback == nil {
		return
	}
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.handlers == nil {
		e.handlers = make(map[Event][]Callback)
	}
	e.handlers[event] = append(e.handlers[event], callback)
}

// Fire invokes the callbacks registered for event in order and returns the
// first non-nil result, or nil when every callback declines.
func (e *Emitter) Fire(event Event, payload any) any {
	if e == nil {
		return nil
	}
	e.mu.Lock()
	callbacks := append([]Callback(nil), e.handlers[event]...)
	e.mu.Unlock()

	for _, callback := range callbacks {
		if result := callback(payload); result != nil {
			return result
		}
	}
	return nil
}

// Reset drops all registered callbacks. Widgets reused across form
// initialisations call this before rebinding.
func (e *Emitter) Reset() {
	if e == nil {
		return
	}
	e.mu.Lock()
	defer e.mu.Unlock()
	e.handlers = nil
}
