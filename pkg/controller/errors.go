package controller

import (
	"errors"
	"fmt"
)

// ErrFormNotInitialized is returned when rendering helpers run before the
// form has been initialised by an action. Programmer error.
var ErrFormNotInitialized = errors.New("controller: form not initialized")

// NotFoundError reports a record lookup that resolved no record. Message is
// the user-facing text produced by the message resolver.
type NotFoundError struct {
	Identifier string
	Message    string
}

func (e *NotFoundError) Error() string {
	if e.Message != "" {
		return e.Message
	}
	return fmt.Sprintf("controller: record %q not found", e.Identifier)
}

// FieldNotFoundError reports a partial-refresh request naming a field that
// does not exist in the current field set.
type FieldNotFoundError struct {
	Field string
}

func (e *FieldNotFoundError) Error() string {
	return fmt.Sprintf("controller: field %q not found in the form field set", e.Field)
}
