// Package formctrl is the top-level facade for the form lifecycle controller:
// create, update, preview, save, and delete actions for a single record type,
// driven by declarative configuration with host extension hooks, redirect
// resolution, and message fallback chains.
//
// Most callers only need this package: load a configuration, implement the
// Host and Store collaborators, and construct a Controller.
package formctrl

import (
	"github.com/goliatone/go-formctrl/pkg/access"
	"github.com/goliatone/go-formctrl/pkg/config"
	"github.com/goliatone/go-formctrl/pkg/controller"
	"github.com/goliatone/go-formctrl/pkg/hooks"
	"github.com/goliatone/go-formctrl/pkg/messages"
	"github.com/goliatone/go-formctrl/pkg/redirect"
)

// Controller sequences the form lifecycle for one record type.
type Controller = controller.Controller

// Option customises controller construction.
type Option = controller.Option

// Request carries the per-invocation inputs an action needs.
type Request = controller.Request

// Result is the outcome an action hands back to the host controller.
type Result = controller.Result

// Host is the capability surface the controller requires from its host.
type Host = controller.Host

// BaseHost implements Host with no-op behaviour for embedding.
type BaseHost = controller.BaseHost

// Record is the domain entity under edit.
type Record = controller.Record

// Store executes persistence for the controller.
type Store = controller.Store

// Query describes a record lookup.
type Query = controller.Query

// Widget is the rendering collaborator the controller drives.
type Widget = controller.Widget

// WidgetFactory constructs widgets from per-context configuration snapshots.
type WidgetFactory = controller.WidgetFactory

// RenderOptions describes per-call rendering inputs for a widget.
type RenderOptions = controller.RenderOptions

// Config is a validated declarative form configuration.
type Config = config.Config

// Snapshot is an immutable per-context view of a configuration.
type Snapshot = config.Snapshot

// Authorizer answers permission checks for gated actions.
type Authorizer = access.Authorizer

// AuthorizerFunc adapts a function to Authorizer.
type AuthorizerFunc = access.AuthorizerFunc

// HookRegistry stores callbacks registered against controller identities.
type HookRegistry = hooks.Registry

// Directive is a resolved post-action navigation outcome.
type Directive = redirect.Directive

// New constructs a Controller for a validated configuration and host. A
// record store and widget factory are required; see the controller options.
func New(cfg *Config, host Host, options ...Option) (*Controller, error) {
	return controller.New(cfg, host, options...)
}

// LoadConfig validates a declarative configuration tree.
func LoadConfig(tree map[string]any) (*Config, error) {
	return config.Load(tree)
}

// ParseConfig decodes and validates a JSON or YAML configuration document.
func ParseConfig(data []byte) (*Config, error) {
	return config.Parse(data)
}

// NewHookRegistry creates an empty callback registry. Register callbacks at
// startup against the identity passed to WithHookRegistry.
func NewHookRegistry() *HookRegistry {
	return hooks.NewRegistry()
}

// WithStore injects the record store collaborator.
func WithStore(store Store) Option {
	return controller.WithStore(store)
}

// WithWidgetFactory injects the rendering collaborator factory.
func WithWidgetFactory(factory WidgetFactory) Option {
	return controller.WithWidgetFactory(factory)
}

// WithAuthorizer injects the access-control collaborator consulted for
// configured permission keys.
func WithAuthorizer(authorizer Authorizer) Option {
	return controller.WithAuthorizer(authorizer)
}

// WithMessages overrides the message resolver.
func WithMessages(resolver *messages.Resolver) Option {
	return controller.WithMessages(resolver)
}

// WithHookRegistry attaches a callback registry and the identity this
// controller replays bindings for.
func WithHookRegistry(registry *HookRegistry, identity string) Option {
	return controller.WithHookRegistry(registry, identity)
}

// WithLogger attaches an action trace logger.
func WithLogger(logger controller.Logger) Option {
	return controller.WithLogger(logger)
}
