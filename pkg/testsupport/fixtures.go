// Package testsupport provides in-memory collaborators for exercising the
// form controller in tests: a record store with call counters, a stub
// rendering widget, a scripted host, and config helpers.
package testsupport

import (
	"context"
	"fmt"
	"strconv"
	"sync"
	"testing"

	"github.com/goliatone/go-formctrl/pkg/access"
	"github.com/goliatone/go-formctrl/pkg/config"
	"github.com/goliatone/go-formctrl/pkg/controller"
	"github.com/goliatone/go-formctrl/pkg/hooks"
	"github.com/goliatone/go-formctrl/pkg/redirect"
)

// MustConfig loads a configuration tree, injecting the required keys when
// the caller omits them.
func MustConfig(t *testing.T, tree map[string]any) *config.Config {
	t.Helper()

	if tree == nil {
		tree = map[string]any{}
	}
	if _, ok := tree["modelClass"]; !ok {
		tree["modelClass"] = "Article"
	}
	if _, ok := tree["form"]; !ok {
		tree["form"] = "form.yaml"
	}
	cfg, err := config.Load(tree)
	if err != nil {
		t.Fatalf("load config: %v", err)
	}
	return cfg
}

// Record is a mutable in-memory record.
type Record struct {
	ID    string
	Attrs map[string]any
}

// NewRecord constructs a record with the given attributes.
func NewRecord(id string, attrs map[string]any) *Record {
	if attrs == nil {
		attrs = map[string]any{}
	}
	return &Record{ID: id, Attrs: attrs}
}

// Identifier implements controller.Record.
func (r *Record) Identifier() string {
	return r.ID
}

// Attribute implements controller.Record; "id" resolves to the identifier.
func (r *Record) Attribute(name string) (any, bool) {
	if name == "id" && r.ID != "" {
		return r.ID, true
	}
	value, ok := r.Attrs[name]
	return value, ok
}

// MemoryStore keeps records in a map and counts calls so tests can assert
// side-effect ordering (e.g. no lookup after an access denial).
type MemoryStore struct {
	mu      sync.Mutex
	seq     int
	records map[string]*Record

	FindCalls   int
	SaveCalls   int
	DeleteCalls int
}

// NewMemoryStore creates an empty store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{records: make(map[string]*Record)}
}

// Seed inserts a record directly, bypassing counters.
func (s *MemoryStore) Seed(record *Record) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.records[record.ID] = record
}

// Get returns a stored record without counting a lookup.
func (s *MemoryStore) Get(id string) (*Record, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	record, ok := s.records[id]
	return record, ok
}

// Find implements controller.Store.
func (s *MemoryStore) Find(_ context.Context, query controller.Query) (controller.Record, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.FindCalls++
	record, ok := s.records[query.Identifier]
	if !ok {
		return nil, controller.ErrNoRecord
	}
	for name, want := range query.Conditions {
		value, ok := record.Attrs[name]
		if !ok || value != want {
			return nil, controller.ErrNoRecord
		}
	}
	return record, nil
}

// Save implements controller.Store: payload attributes are copied onto the
// record and unpersisted records receive a sequential identifier.
func (s *MemoryStore) Save(_ context.Context, record controller.Record, payload map[string]any, _ string) error {
	target, ok := record.(*Record)
	if !ok {
		return fmt.Errorf("testsupport: unexpected record type %T", record)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	s.SaveCalls++
	if target.ID == "" {
		s.seq++
		target.ID = strconv.Itoa(s.seq)
	}
	for name, value := range payload {
		target.Attrs[name] = value
	}
	s.records[target.ID] = target
	return nil
}

// Delete implements controller.Store.
func (s *MemoryStore) Delete(_ context.Context, record controller.Record) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.DeleteCalls++
	delete(s.records, record.Identifier())
	return nil
}

// StubWidget is a scriptable rendering collaborator. The embedded emitter
// satisfies the hook binding surface.
type StubWidget struct {
	hooks.Emitter

	FieldSet map[string]any
	Data     map[string]any
	Session  string
	TabSet   map[string]bool
	RenderFn func(controller.RenderOptions) ([]byte, error)
}

// NewStubWidget constructs a widget with the given field descriptors.
func NewStubWidget(fields ...string) *StubWidget {
	set := make(map[string]any, len(fields))
	for _, name := range fields {
		set[name] = map[string]any{"name": name}
	}
	return &StubWidget{
		FieldSet: set,
		Data:     map[string]any{},
		Session:  "session-key",
		TabSet:   map[string]bool{},
	}
}

// Render implements controller.Widget.
func (w *StubWidget) Render(options controller.RenderOptions) ([]byte, error) {
	if w.RenderFn != nil {
		return w.RenderFn(options)
	}
	if len(options.Fields) > 0 {
		return []byte("field:" + options.Fields[0]), nil
	}
	return []byte("form"), nil
}

// SaveData implements controller.Widget.
func (w *StubWidget) SaveData() map[string]any {
	return w.Data
}

// SessionKey implements controller.Widget.
func (w *StubWidget) SessionKey() string {
	return w.Session
}

// Field implements controller.Widget.
func (w *StubWidget) Field(name string) (any, bool) {
	descriptor, ok := w.FieldSet[name]
	return descriptor, ok
}

// Tab implements controller.Widget.
func (w *StubWidget) Tab(section string) (controller.Tab, bool) {
	hasFields, ok := w.TabSet[section]
	if !ok {
		return nil, false
	}
	return stubTab(hasFields), true
}

type stubTab bool

func (t stubTab) HasFields() bool { return bool(t) }

// Factory tracks widget construction so tests can assert fresh bindings per
// form initialisation.
type Factory struct {
	Widget    *StubWidget
	MakeCalls int
	Snapshots []config.Snapshot
}

// NewFactory wraps a widget in a factory.
func NewFactory(widget *StubWidget) *Factory {
	return &Factory{Widget: widget}
}

// Make implements controller.WidgetFactory. The widget's bindings are reset
// so each initialisation starts clean.
func (f *Factory) Make(snapshot config.Snapshot, _ controller.Record) (controller.Widget, error) {
	f.MakeCalls++
	f.Snapshots = append(f.Snapshots, snapshot)
	f.Widget.Reset()
	return f.Widget, nil
}

// Host is a scripted controller.Host recording lifecycle hook invocations.
type Host struct {
	controller.BaseHost

	CreateFn    func(ctx context.Context) (controller.Record, error)
	ExtendFn    func(record controller.Record) controller.Record
	QueryFn     func(query *controller.Query)
	OverrideURL string
	Multisite   bool
	Pending     *redirect.Directive

	Calls     []string
	Unhandled []error
	FailOn    string
}

func (h *Host) hook(name string, record controller.Record) error {
	h.Calls = append(h.Calls, name)
	if h.FailOn == name {
		return fmt.Errorf("testsupport: hook %s failed", name)
	}
	return nil
}

// CreateRecord implements controller.Host.
func (h *Host) CreateRecord(ctx context.Context) (controller.Record, error) {
	if h.CreateFn != nil {
		return h.CreateFn(ctx)
	}
	return NewRecord("", nil), nil
}

// ExtendQuery implements controller.Host.
func (h *Host) ExtendQuery(query *controller.Query) {
	if h.QueryFn != nil {
		h.QueryFn(query)
	}
}

// ExtendRecord implements controller.Host.
func (h *Host) ExtendRecord(record controller.Record) controller.Record {
	if h.ExtendFn != nil {
		return h.ExtendFn(record)
	}
	return nil
}

func (h *Host) BeforeSave(record controller.Record) error   { return h.hook("beforeSave", record) }
func (h *Host) AfterSave(record controller.Record) error    { return h.hook("afterSave", record) }
func (h *Host) BeforeCreate(record controller.Record) error { return h.hook("beforeCreate", record) }
func (h *Host) AfterCreate(record controller.Record) error  { return h.hook("afterCreate", record) }
func (h *Host) BeforeUpdate(record controller.Record) error { return h.hook("beforeUpdate", record) }
func (h *Host) AfterUpdate(record controller.Record) error  { return h.hook("afterUpdate", record) }
func (h *Host) AfterDelete(record controller.Record) error  { return h.hook("afterDelete", record) }

// ResolveRedirectURL implements controller.Host.
func (h *Host) ResolveRedirectURL(string, controller.Record) string {
	return h.OverrideURL
}

// IsMultisiteAware implements controller.Host.
func (h *Host) IsMultisiteAware(controller.Record) bool {
	return h.Multisite
}

// PendingMultisiteRedirect implements controller.Host.
func (h *Host) PendingMultisiteRedirect(controller.Record) *redirect.Directive {
	return h.Pending
}

// ReportUnhandledFailure implements controller.Host.
func (h *Host) ReportUnhandledFailure(err error) {
	h.Unhandled = append(h.Unhandled, err)
}

// Allow builds an authorizer granting exactly the listed permission keys.
func Allow(keys ...string) access.AuthorizerFunc {
	granted := make(map[string]bool, len(keys))
	for _, key := range keys {
		granted[key] = true
	}
	return func(permission string) bool {
		return granted[permission]
	}
}
