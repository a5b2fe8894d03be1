// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package block

import (
	"errors"

	"github.com/bureau-foundation/extevents/lib/validate"
)

// undefinedMessage is returned for nil raw values.
const undefinedMessage = "Block value must be defined. Use a null-capable parser instead of passing such a value."

// InvalidBlockError reports a block whose raw value failed validation.
// The error string has the form "<block>: <message>".
type InvalidBlockError struct {
	// Block is the wire name of the failing block.
	Block string

	// Detail is an explicit failure message. When empty, the message is
	// rendered from Diagnostics.
	Detail string

	// Diagnostics are the schema failures, if validation produced any.
	Diagnostics []validate.Diagnostic
}

// NewInvalidBlockError returns an error with an explicit message.
func NewInvalidBlockError(block, message string) *InvalidBlockError {
	return &InvalidBlockError{Block: block, Detail: message}
}

// NewValidationError returns an error carrying schema diagnostics.
func NewValidationError(block string, diagnostics []validate.Diagnostic) *InvalidBlockError {
	return &InvalidBlockError{Block: block, Diagnostics: diagnostics}
}

// Message returns the failure description without the block name.
func (e *InvalidBlockError) Message() string {
	if e.Detail != "" {
		return e.Detail
	}
	return validate.Describe(e.Diagnostics)
}

func (e *InvalidBlockError) Error() string {
	return e.Block + ": " + e.Message()
}

// IsInvalidBlock reports whether err is or wraps an [*InvalidBlockError].
func IsInvalidBlock(err error) bool {
	var blockError *InvalidBlockError
	return errors.As(err, &blockError)
}
