// Package controller implements the form lifecycle behaviour a host admin
// controller attaches to manage a single record type: create, update,
// preview, save, and delete actions driven by declarative configuration,
// with extension hooks around form initialisation and persistence.
//
// Failure policy is asymmetric by design: display actions (Create, Update,
// Preview) intercept unexpected failures and delegate them to the host's
// error handler, surfacing them on Result.Failure; mutating actions
// (CreateSave, UpdateSave, UpdateDelete) propagate failures raw so
// transactional callers can react. Access denials and not-found lookups are
// caller-facing and always propagate.
package controller

import (
	"context"
	"errors"
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/goliatone/go-formctrl/pkg/access"
	"github.com/goliatone/go-formctrl/pkg/config"
	"github.com/goliatone/go-formctrl/pkg/hooks"
	"github.com/goliatone/go-formctrl/pkg/messages"
	"github.com/goliatone/go-formctrl/pkg/redirect"
)

// Render contexts shipped with the controller. Hosts may configure custom
// context names; a "-close" suffix marks the save-and-exit variant.
const (
	ContextCreate  = "create"
	ContextUpdate  = "update"
	ContextPreview = "preview"
	// ContextDelete scopes redirect resolution after a delete; it is not a
	// form render context.
	ContextDelete = "delete"
)

// Default title templates per action context.
var defaultTitles = map[string]string{
	ContextCreate:  "New {{ name }}",
	ContextUpdate:  "Edit {{ name }}",
	ContextPreview: "Preview {{ name }}",
}

// Option customises the controller configuration.
type Option func(*Controller)

// WithStore injects the record store collaborator.
func WithStore(store Store) Option {
	return func(c *Controller) {
		c.store = store
	}
}

// WithWidgetFactory injects the rendering collaborator factory.
func WithWidgetFactory(factory WidgetFactory) Option {
	return func(c *Controller) {
		c.factory = factory
	}
}

// WithAuthorizer injects the access-control collaborator consulted for
// configured permission keys.
func WithAuthorizer(authorizer access.Authorizer) Option {
	return func(c *Controller) {
		c.authorizer = authorizer
	}
}

// WithMessages overrides the message resolver.
func WithMessages(resolver *messages.Resolver) Option {
	return func(c *Controller) {
		c.messages = resolver
	}
}

// WithHookRegistry attaches a callback registry and the identity this
// controller replays bindings for.
func WithHookRegistry(registry *hooks.Registry, identity string) Option {
	return func(c *Controller) {
		c.registry = registry
		c.identity = strings.TrimSpace(identity)
	}
}

// WithLogger attaches an action trace logger.
func WithLogger(logger Logger) Option {
	return func(c *Controller) {
		if logger != nil {
			c.logger = logger
		}
	}
}

// Controller sequences the form lifecycle for one record type. Instances are
// request-scoped companions of the host controller: the initialised form is
// controller state and must not be shared across requests.
type Controller struct {
	cfg        *config.Config
	host       Host
	store      Store
	factory    WidgetFactory
	authorizer access.Authorizer
	gate       *access.Gate
	messages   *messages.Resolver
	redirects  *redirect.Resolver
	registry   *hooks.Registry
	identity   string
	logger     Logger

	form *Form
}

// New constructs a Controller for the validated configuration and host.
// A record store and widget factory are required.
func New(cfg *config.Config, host Host, options ...Option) (*Controller, error) {
	if cfg == nil {
		return nil, fmt.Errorf("controller: configuration is required")
	}
	if host == nil {
		return nil, fmt.Errorf("controller: host is required")
	}

	c := &Controller{cfg: cfg, host: host, logger: noopLogger{}}
	for _, opt := range options {
		if opt == nil {
			continue
		}
		opt(c)
	}

	if c.store == nil {
		return nil, fmt.Errorf("controller: record store is required")
	}
	if c.factory == nil {
		return nil, fmt.Errorf("controller: widget factory is required")
	}
	if c.messages == nil {
		c.messages = messages.New(cfg)
	}
	if c.redirects == nil {
		c.redirects = redirect.NewResolver(cfg)
	}
	c.gate = access.NewGate(cfg, c.authorizer)

	return c, nil
}

// Config exposes the controller configuration.
func (c *Controller) Config() *config.Config {
	return c.cfg
}

// Form returns the form initialised by the last action, or nil before any
// action ran.
func (c *Controller) Form() *Form {
	return c.form
}

// RenderForm renders the initialised form. Calling it before an action has
// initialised the form is a programmer error.
func (c *Controller) RenderForm(options RenderOptions) ([]byte, error) {
	if c.form == nil {
		return nil, ErrFormNotInitialized
	}
	return c.form.Render(options)
}

// RenderField renders a single field from the initialised form.
func (c *Controller) RenderField(name string) ([]byte, error) {
	if c.form == nil {
		return nil, ErrFormNotInitialized
	}
	return c.form.RenderField(name)
}

// Form is the request-scoped handle around an initialised widget.
type Form struct {
	widget   Widget
	snapshot config.Snapshot
	context  string
	record   Record
}

// Widget exposes the underlying rendering collaborator.
func (f *Form) Widget() Widget {
	return f.widget
}

// Context returns the render context the form was initialised for.
func (f *Form) Context() string {
	return f.context
}

// Record returns the record under edit.
func (f *Form) Record() Record {
	return f.record
}

// Snapshot returns the configuration snapshot handed to the widget.
func (f *Form) Snapshot() config.Snapshot {
	return f.snapshot
}

// Render delegates to the widget.
func (f *Form) Render(options RenderOptions) ([]byte, error) {
	return f.widget.Render(options)
}

// RenderField renders one named field, failing with *FieldNotFoundError when
// the field is not part of the current field set.
func (f *Form) RenderField(name string) ([]byte, error) {
	if _, ok := f.widget.Field(name); !ok {
		return nil, &FieldNotFoundError{Field: name}
	}
	return f.widget.Render(RenderOptions{Fields: []string{name}})
}

// Tab returns the named tab section from the widget.
func (f *Form) Tab(section string) (Tab, bool) {
	return f.widget.Tab(section)
}

// initForm builds the per-context configuration snapshot, constructs a fresh
// widget, and rebinds host and registry hooks. Bindings never survive into
// the next initialisation.
func (c *Controller) initForm(record Record, renderContext string) error {
	snapshot := c.cfg.ForContext(renderContext)
	widget, err := c.factory.Make(snapshot, record)
	if err != nil {
		return fmt.Errorf("controller: init form: %w", err)
	}

	var extras []hooks.Binding
	if c.registry != nil && c.identity != "" {
		extras = c.registry.BindingsFor(c.identity)
	}
	hooks.Bind(widget, c.host, extras...)

	c.form = &Form{
		widget:   widget,
		snapshot: snapshot,
		context:  renderContext,
		record:   record,
	}
	return nil
}

// resolveContext determines the render context once per request: explicit
// request value, then the postback field, then the configured
// "{action}.context" default, then the action name itself.
func (c *Controller) resolveContext(action string, req Request) string {
	if ctx := strings.TrimSpace(req.Context); ctx != "" {
		return ctx
	}
	if ctx := strings.TrimSpace(req.PostbackContext); ctx != "" {
		return ctx
	}
	if ctx := strings.TrimSpace(c.cfg.String(action+".context", "")); ctx != "" {
		return ctx
	}
	return action
}

// title resolves the page title for the context through the message chain,
// falling back to the per-action default template.
func (c *Controller) title(renderContext, action string) string {
	return c.messages.Resolve(renderContext, "title", defaultTitles[action], nil)
}

// locateRecord builds the lookup query, lets the host extend it, and
// executes it. A blank identifier or an unmatched query fails with a
// *NotFoundError carrying the resolved message.
func (c *Controller) locateRecord(ctx context.Context, renderContext, identifier string) (Record, error) {
	id := strings.TrimSpace(identifier)
	if id == "" {
		return nil, c.notFound(renderContext, id)
	}

	query := Query{Identifier: id}
	c.host.ExtendQuery(&query)

	record, err := c.store.Find(ctx, query)
	if errors.Is(err, ErrNoRecord) {
		return nil, c.notFound(renderContext, id)
	}
	if err != nil {
		return nil, fmt.Errorf("controller: locate record: %w", err)
	}
	return record, nil
}

func (c *Controller) notFound(renderContext, identifier string) *NotFoundError {
	return &NotFoundError{
		Identifier: identifier,
		Message: c.messages.Resolve(renderContext, messages.NotFound, "", map[string]any{
			"id": identifier,
		}),
	}
}

func (c *Controller) extendRecord(record Record) Record {
	if extended := c.host.ExtendRecord(record); extended != nil {
		return extended
	}
	return record
}

// resolveRedirect computes the post-action directive, routing the host
// override hook through the resolver.
func (c *Controller) resolveRedirect(renderContext string, record Record, req Request) redirect.Directive {
	flags := redirect.Flags{
		Refresh:  req.Refresh,
		Disabled: req.DisableRedirect,
		Close:    req.Close,
	}
	return c.redirects.Resolve(renderContext, asRedirectRecord(record), flags, req.Query, func(ctx string, r redirect.Record) string {
		rec, _ := r.(Record)
		return c.host.ResolveRedirectURL(ctx, rec)
	})
}

// asRedirectRecord avoids handing the resolver a non-nil interface wrapping
// a nil record.
func asRedirectRecord(record Record) redirect.Record {
	if record == nil {
		return nil
	}
	return record
}

func (c *Controller) trace(action, renderContext, recordID string, start time.Time, err error) {
	c.logger.LogAction(ActionEvent{
		Action:   action,
		Context:  renderContext,
		RecordID: recordID,
		Duration: time.Since(start),
		Err:      err,
	})
}

// Request carries the per-invocation inputs an action needs.
type Request struct {
	// Context explicitly selects the render context.
	Context string
	// PostbackContext is the context echoed back by a submitted form.
	PostbackContext string
	// RecordID identifies the record for update, preview, and delete paths.
	RecordID string
	// Fields names the target field set for a partial refresh.
	Fields []string
	// Close requests save-and-exit navigation.
	Close bool
	// Refresh forces an in-place refresh directive.
	Refresh bool
	// DisableRedirect suppresses post-action navigation.
	DisableRedirect bool
	// Query carries extra query parameters appended to the redirect target.
	Query url.Values
	// Vars supplies extra variables for message interpolation.
	Vars map[string]any
}

// Result is the outcome an action hands back to the host controller.
type Result struct {
	// Context is the render context the action resolved.
	Context string
	// Title is the resolved page title (display paths).
	Title string
	// Record is the record the action worked on.
	Record Record
	// Flash is the resolved success message (mutating paths).
	Flash string
	// Redirect is the resolved navigation directive.
	Redirect redirect.Directive
	// Params carries partial-refresh result parameters.
	Params map[string]any
	// Failure holds a display-path error that was delegated to the host
	// error handler instead of propagating.
	Failure error
}
