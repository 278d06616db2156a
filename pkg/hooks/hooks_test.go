package hooks

import (
	"testing"

	"github.com/google/go-cmp/cmp"
)

type recordingHooks struct {
	NoopFieldHooks
	calls []string
}

func (h *recordingHooks) FormExtendFieldsBefore() {
	h.calls = append(h.calls, "before")
}

func (h *recordingHooks) FormExtendFields(fields any) {
	h.calls = append(h.calls, "fields")
	if set, ok := fields.(map[string]string); ok {
		set["slug"] = "text"
	}
}

func (h *recordingHooks) FormExtendRefreshData(data map[string]any) map[string]any {
	h.calls = append(h.calls, "refreshData")
	return map[string]any{"replaced": true}
}

func TestBind_OrderAndForwarding(t *testing.T) {
	emitter := &Emitter{}
	host := &recordingHooks{}

	Bind(emitter, host)

	emitter.Fire(EventFieldsBefore, nil)

	fields := map[string]string{"title": "text"}
	emitter.Fire(EventFields, fields)
	if fields["slug"] != "text" {
		t.Fatalf("host should alter the field set in place, got %v", fields)
	}

	result := emitter.Fire(EventBeforeRefresh, map[string]any{"original": true})
	replaced, ok := result.(map[string]any)
	if !ok || replaced["replaced"] != true {
		t.Fatalf("map result should replace the payload, got %v", result)
	}

	if diff := cmp.Diff([]string{"before", "fields", "refreshData"}, host.calls); diff != "" {
		t.Fatalf("call order mismatch (-want +got):\n%s", diff)
	}
}

func TestNoopHooks_DeclineOverrides(t *testing.T) {
	emitter := &Emitter{}
	Bind(emitter, NoopFieldHooks{})

	if result := emitter.Fire(EventRefreshFields, []string{"title"}); result != nil {
		t.Fatalf("no-op hooks must not override, got %v", result)
	}
	if result := emitter.Fire(EventRefresh, map[string]any{"a": 1}); result != nil {
		t.Fatalf("no-op hooks must not override, got %v", result)
	}
}

func TestEmitter_FirstNonNilResultWins(t *testing.T) {
	emitter := &Emitter{}
	emitter.On(EventRefresh, func(any) any { return nil })
	emitter.On(EventRefresh, func(any) any { return "second" })
	emitter.On(EventRefresh, func(any) any { return "third" })

	if got := emitter.Fire(EventRefresh, nil); got != "second" {
		t.Fatalf("first non-nil result should win, got %v", got)
	}
}

func TestEmitter_ResetDropsBindings(t *testing.T) {
	emitter := &Emitter{}
	fired := 0
	emitter.On(EventFields, func(any) any {
		fired++
		return nil
	})

	emitter.Fire(EventFields, nil)
	emitter.Reset()
	emitter.Fire(EventFields, nil)

	if fired != 1 {
		t.Fatalf("reset should drop callbacks, fired %d times", fired)
	}
}

func TestOrdered(t *testing.T) {
	want := []Event{
		EventFieldsBefore,
		EventFields,
		EventBeforeRefresh,
		EventRefreshFields,
		EventRefresh,
	}
	if diff := cmp.Diff(want, Ordered()); diff != "" {
		t.Fatalf("ordering mismatch (-want +got):\n%s", diff)
	}
}

func TestRegistry(t *testing.T) {
	registry := NewRegistry()
	registry.Register("articles", EventFields, func(any) any { return "a" })
	registry.Register("articles", EventRefresh, func(any) any { return "b" })
	registry.Register("  ", EventFields, func(any) any { return nil })
	registry.Register("articles", EventFields, nil)

	if !registry.Has("articles") {
		t.Fatalf("expected bindings for identity")
	}
	if registry.Has("posts") {
		t.Fatalf("unknown identity should have no bindings")
	}

	bindings := registry.BindingsFor("articles")
	if len(bindings) != 2 {
		t.Fatalf("expected 2 bindings, got %d", len(bindings))
	}
	if bindings[0].Event != EventFields || bindings[1].Event != EventRefresh {
		t.Fatalf("registration order lost: %v, %v", bindings[0].Event, bindings[1].Event)
	}

	// Registry callbacks replay after host bindings.
	emitter := &Emitter{}
	Bind(emitter, NoopFieldHooks{}, registry.BindingsFor("articles")...)
	if got := emitter.Fire(EventFields, nil); got != "a" {
		t.Fatalf("registry callback should fire, got %v", got)
	}
}
