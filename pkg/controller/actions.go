package controller

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/goliatone/go-formctrl/pkg/access"
	"github.com/goliatone/go-formctrl/pkg/hooks"
	"github.com/goliatone/go-formctrl/pkg/messages"
)

// Create handles the create display path: gate, fresh record, form init.
func (c *Controller) Create(ctx context.Context, req Request) (*Result, error) {
	start := time.Now()
	if err := c.gate.Allow(access.ActionCreate); err != nil {
		c.trace("create", "", "", start, err)
		return nil, err
	}

	renderContext := c.resolveContext(ContextCreate, req)
	res := &Result{Context: renderContext}

	err := func() error {
		res.Title = c.title(renderContext, ContextCreate)
		record, err := c.host.CreateRecord(ctx)
		if err != nil {
			return err
		}
		record = c.extendRecord(record)
		res.Record = record
		return c.initForm(record, renderContext)
	}()
	c.trace("create", renderContext, "", start, err)
	return c.finishDisplay(res, err)
}

// CreateSave handles the create mutating path: gate, fresh record, form
// init, before/after hooks around persistence, flash, redirect.
func (c *Controller) CreateSave(ctx context.Context, req Request) (*Result, error) {
	start := time.Now()
	if err := c.gate.Allow(access.ActionCreate); err != nil {
		c.trace("createSave", "", "", start, err)
		return nil, err
	}

	renderContext := c.resolveContext(ContextCreate, req)

	record, err := c.host.CreateRecord(ctx)
	if err != nil {
		c.trace("createSave", renderContext, "", start, err)
		return nil, err
	}
	record = c.extendRecord(record)

	if err := c.initForm(record, renderContext); err != nil {
		c.trace("createSave", renderContext, "", start, err)
		return nil, err
	}

	if err := c.persist(ctx, record, c.host.BeforeCreate, c.host.AfterCreate); err != nil {
		c.trace("createSave", renderContext, record.Identifier(), start, err)
		return nil, err
	}

	res := &Result{
		Context:  renderContext,
		Record:   record,
		Flash:    c.messages.Resolve(renderContext, messages.FlashCreate, "", req.Vars),
		Redirect: c.resolveRedirect(renderContext, record, req),
	}
	c.trace("createSave", renderContext, record.Identifier(), start, nil)
	return res, nil
}

// Update handles the update display path, including the multisite redirect
// special case.
func (c *Controller) Update(ctx context.Context, req Request) (*Result, error) {
	start := time.Now()
	if err := c.gate.Allow(access.ActionUpdate); err != nil {
		c.trace("update", "", req.RecordID, start, err)
		return nil, err
	}

	renderContext := c.resolveContext(ContextUpdate, req)
	res := &Result{Context: renderContext}

	err := func() error {
		res.Title = c.title(renderContext, ContextUpdate)
		record, err := c.locateRecord(ctx, renderContext, req.RecordID)
		if err != nil {
			return err
		}
		record = c.extendRecord(record)
		res.Record = record

		if done, err := c.applyMultisite(res, record, renderContext); done || err != nil {
			return err
		}
		return nil
	}()
	c.trace("update", renderContext, req.RecordID, start, err)
	return c.finishDisplay(res, err)
}

// UpdateSave handles the update mutating path.
func (c *Controller) UpdateSave(ctx context.Context, req Request) (*Result, error) {
	start := time.Now()
	if err := c.gate.Allow(access.ActionUpdate); err != nil {
		c.trace("updateSave", "", req.RecordID, start, err)
		return nil, err
	}

	renderContext := c.resolveContext(ContextUpdate, req)

	record, err := c.locateRecord(ctx, renderContext, req.RecordID)
	if err != nil {
		c.trace("updateSave", renderContext, req.RecordID, start, err)
		return nil, err
	}
	record = c.extendRecord(record)

	res := &Result{Context: renderContext, Record: record}
	if done, err := c.applyMultisite(res, record, renderContext); err != nil {
		c.trace("updateSave", renderContext, req.RecordID, start, err)
		return nil, err
	} else if done {
		c.trace("updateSave", renderContext, req.RecordID, start, nil)
		return res, nil
	}

	if err := c.persist(ctx, record, c.host.BeforeUpdate, c.host.AfterUpdate); err != nil {
		c.trace("updateSave", renderContext, req.RecordID, start, err)
		return nil, err
	}

	res.Flash = c.messages.Resolve(renderContext, messages.FlashUpdate, "", req.Vars)
	res.Redirect = c.resolveRedirect(renderContext, record, req)
	c.trace("updateSave", renderContext, req.RecordID, start, nil)
	return res, nil
}

// UpdateDelete removes a located record: gate, lookup, form init, delete,
// after-delete hook, flash, redirect. Redirect resolution runs under the
// delete context while messages stay scoped to the resolved update context.
func (c *Controller) UpdateDelete(ctx context.Context, req Request) (*Result, error) {
	start := time.Now()
	if err := c.gate.Allow(access.ActionDelete); err != nil {
		c.trace("updateDelete", "", req.RecordID, start, err)
		return nil, err
	}

	renderContext := c.resolveContext(ContextUpdate, req)

	record, err := c.locateRecord(ctx, renderContext, req.RecordID)
	if err != nil {
		c.trace("updateDelete", renderContext, req.RecordID, start, err)
		return nil, err
	}
	record = c.extendRecord(record)

	if err := c.initForm(record, renderContext); err != nil {
		c.trace("updateDelete", renderContext, req.RecordID, start, err)
		return nil, err
	}

	if err := c.store.Delete(ctx, record); err != nil {
		err = fmt.Errorf("controller: delete record: %w", err)
		c.trace("updateDelete", renderContext, req.RecordID, start, err)
		return nil, err
	}
	if err := c.host.AfterDelete(record); err != nil {
		c.trace("updateDelete", renderContext, req.RecordID, start, err)
		return nil, err
	}

	res := &Result{
		Context:  renderContext,
		Record:   record,
		Flash:    c.messages.Resolve(renderContext, messages.FlashDelete, "", req.Vars),
		Redirect: c.resolveRedirect(ContextDelete, record, req),
	}
	c.trace("updateDelete", renderContext, req.RecordID, start, nil)
	return res, nil
}

// Preview handles the read-only display path.
func (c *Controller) Preview(ctx context.Context, req Request) (*Result, error) {
	start := time.Now()
	if err := c.gate.Allow(access.ActionPreview); err != nil {
		c.trace("preview", "", req.RecordID, start, err)
		return nil, err
	}

	renderContext := c.resolveContext(ContextPreview, req)
	res := &Result{Context: renderContext}

	err := func() error {
		res.Title = c.title(renderContext, ContextPreview)
		record, err := c.locateRecord(ctx, renderContext, req.RecordID)
		if err != nil {
			return err
		}
		record = c.extendRecord(record)
		res.Record = record
		return c.initForm(record, renderContext)
	}()
	c.trace("preview", renderContext, req.RecordID, start, err)
	return c.finishDisplay(res, err)
}

// Refresh re-renders part of the initialised form, running the refresh
// extension points: the data payload, the target field set, and the result
// parameters can each be replaced by a hook.
func (c *Controller) Refresh(ctx context.Context, req Request) (*Result, error) {
	if c.form == nil {
		return nil, ErrFormNotInitialized
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	widget := c.form.widget

	data := widget.SaveData()
	if replaced, ok := widget.Fire(hooks.EventBeforeRefresh, data).(map[string]any); ok {
		data = replaced
	}

	fields := req.Fields
	if replaced, ok := widget.Fire(hooks.EventRefreshFields, fields).([]string); ok {
		fields = replaced
	}

	params := make(map[string]any, len(fields))
	if len(fields) == 0 {
		markup, err := widget.Render(RenderOptions{Data: data})
		if err != nil {
			return nil, fmt.Errorf("controller: refresh form: %w", err)
		}
		params["#form"] = string(markup)
	}
	for _, name := range fields {
		if _, ok := widget.Field(name); !ok {
			return nil, &FieldNotFoundError{Field: name}
		}
		markup, err := widget.Render(RenderOptions{Fields: []string{name}, Data: data})
		if err != nil {
			return nil, fmt.Errorf("controller: refresh field %q: %w", name, err)
		}
		params["#field-"+name] = string(markup)
	}

	if replaced, ok := widget.Fire(hooks.EventRefresh, params).(map[string]any); ok {
		params = replaced
	}

	return &Result{
		Context: c.form.context,
		Record:  c.form.record,
		Params:  params,
	}, nil
}

// persist runs the save hook sequence around Store.Save. Persistence
// failures surface as-is; nothing is swallowed or retried here.
func (c *Controller) persist(ctx context.Context, record Record, before, after func(Record) error) error {
	if err := c.host.BeforeSave(record); err != nil {
		return err
	}
	if err := before(record); err != nil {
		return err
	}

	payload := c.form.widget.SaveData()
	sessionKey := c.form.widget.SessionKey()
	if err := c.store.Save(ctx, record, payload, sessionKey); err != nil {
		return fmt.Errorf("controller: save record: %w", err)
	}

	if err := c.host.AfterSave(record); err != nil {
		return err
	}
	return after(record)
}

// applyMultisite runs the update-path multisite special case. When a
// site-specific redirect is pending the form is never initialised and the
// directive is returned immediately; otherwise the form is initialised with
// an extra hook so later site-switch refreshes re-enter the same check.
func (c *Controller) applyMultisite(res *Result, record Record, renderContext string) (bool, error) {
	if !c.host.IsMultisiteAware(record) {
		return false, c.initForm(record, renderContext)
	}

	if directive := c.host.PendingMultisiteRedirect(record); directive != nil {
		res.Redirect = *directive
		return true, nil
	}

	if err := c.initForm(record, renderContext); err != nil {
		return false, err
	}
	c.form.widget.On(hooks.EventRefresh, func(any) any {
		if directive := c.host.PendingMultisiteRedirect(record); directive != nil {
			return map[string]any{"redirect": *directive}
		}
		return nil
	})
	return false, nil
}

// finishDisplay applies the display-path failure policy: access denials and
// not-found lookups propagate to the caller; anything else is delegated to
// the host error handler and surfaced on Result.Failure.
func (c *Controller) finishDisplay(res *Result, err error) (*Result, error) {
	if err == nil {
		return res, nil
	}

	var denied *access.DeniedError
	var notFound *NotFoundError
	if errors.As(err, &denied) || errors.As(err, &notFound) {
		return nil, err
	}

	c.host.ReportUnhandledFailure(err)
	res.Failure = err
	return res, nil
}
