// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package events

import (
	"errors"

	"github.com/bureau-foundation/extevents/lib/block"
	"github.com/bureau-foundation/extevents/lib/validate"
)

// InvalidEventError reports an event whose wire form failed validation.
// The error string has the form "<event>: <message>".
type InvalidEventError struct {
	// Event is the name of the event type being constructed.
	Event string

	// Detail is an explicit failure message. When empty, the message is
	// rendered from Diagnostics.
	Detail string

	// Diagnostics are the schema failures, if validation produced any.
	Diagnostics []validate.Diagnostic
}

// NewInvalidEventError returns an error with an explicit message.
func NewInvalidEventError(event, message string) *InvalidEventError {
	return &InvalidEventError{Event: event, Detail: message}
}

// NewValidationError returns an error carrying schema diagnostics.
func NewValidationError(event string, diagnostics []validate.Diagnostic) *InvalidEventError {
	return &InvalidEventError{Event: event, Diagnostics: diagnostics}
}

// Message returns the failure description without the event name.
func (e *InvalidEventError) Message() string {
	if e.Detail != "" {
		return e.Detail
	}
	return validate.Describe(e.Diagnostics)
}

func (e *InvalidEventError) Error() string {
	return e.Event + ": " + e.Message()
}

// IsInvalidEvent reports whether err is or wraps an [*InvalidEventError].
func IsInvalidEvent(err error) bool {
	var eventError *InvalidEventError
	return errors.As(err, &eventError)
}

// IsInvalid reports whether err belongs to the validation failure
// family: an [*InvalidEventError] or a [*block.InvalidBlockError].
// Detectors that fail this way have rejected their hypothesis about the
// event; any other error is a genuine failure.
func IsInvalid(err error) bool {
	return IsInvalidEvent(err) || block.IsInvalidBlock(err)
}
