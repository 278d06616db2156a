package controller

import (
	"context"
	"errors"

	"github.com/goliatone/go-formctrl/pkg/hooks"
	"github.com/goliatone/go-formctrl/pkg/redirect"
)

// Host is the capability surface a form controller requires from its host
// admin controller. Every method has a default implementation on BaseHost;
// hosts embed BaseHost and override only the seams they need.
type Host interface {
	hooks.FieldHooks

	// CreateRecord constructs a fresh, unpersisted record for create paths.
	CreateRecord(ctx context.Context) (Record, error)

	// ExtendQuery may add filter conditions before a record lookup runs.
	ExtendQuery(query *Query)

	// ExtendRecord may substitute or augment a located record. A nil result
	// keeps the original.
	ExtendRecord(record Record) Record

	// Persistence lifecycle seams, invoked around Store.Save / Store.Delete.
	BeforeSave(record Record) error
	AfterSave(record Record) error
	BeforeCreate(record Record) error
	AfterCreate(record Record) error
	BeforeUpdate(record Record) error
	AfterUpdate(record Record) error
	AfterDelete(record Record) error

	// ResolveRedirectURL overrides the resolved redirect target. A non-empty
	// result wins over every configured template.
	ResolveRedirectURL(context string, record Record) string

	// IsMultisiteAware reports whether the record type propagates across
	// sites, enabling the multisite redirect check on update paths.
	IsMultisiteAware(record Record) bool

	// PendingMultisiteRedirect returns the site-specific directive to follow
	// instead of the normal update flow, or nil when none is pending.
	PendingMultisiteRedirect(record Record) *redirect.Directive

	// ReportUnhandledFailure receives failures raised during display-path
	// actions instead of a raw error return.
	ReportUnhandledFailure(err error)
}

// ErrNoRecordFactory is returned by BaseHost.CreateRecord; hosts serving
// create paths must override it.
var ErrNoRecordFactory = errors.New("controller: host does not create records")

// BaseHost implements Host with no-op behaviour.
type BaseHost struct {
	hooks.NoopFieldHooks
}

func (BaseHost) CreateRecord(context.Context) (Record, error) { return nil, ErrNoRecordFactory }
func (BaseHost) ExtendQuery(*Query)                           {}
func (BaseHost) ExtendRecord(Record) Record                   { return nil }
func (BaseHost) BeforeSave(Record) error                      { return nil }
func (BaseHost) AfterSave(Record) error                       { return nil }
func (BaseHost) BeforeCreate(Record) error                    { return nil }
func (BaseHost) AfterCreate(Record) error                     { return nil }
func (BaseHost) BeforeUpdate(Record) error                    { return nil }
func (BaseHost) AfterUpdate(Record) error                     { return nil }
func (BaseHost) AfterDelete(Record) error                     { return nil }
func (BaseHost) ResolveRedirectURL(string, Record) string     { return "" }
func (BaseHost) IsMultisiteAware(Record) bool                 { return false }
func (BaseHost) PendingMultisiteRedirect(Record) *redirect.Directive {
	return nil
}
func (BaseHost) ReportUnhandledFailure(error) {}
