// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package block

import "github.com/bureau-foundation/extevents/lib/validate"

// Kind identifies the shape of a block's raw value.
type Kind int

const (
	KindString Kind = iota
	KindBoolean
	KindInteger
	KindObject
	KindArray

	// KindComposite blocks expose typed accessors over their raw form.
	KindComposite
)

func (k Kind) String() string {
	switch k {
	case KindString:
		return "string"
	case KindBoolean:
		return "boolean"
	case KindInteger:
		return "integer"
	case KindObject:
		return "object"
	case KindArray:
		return "array"
	case KindComposite:
		return "composite"
	default:
		return "unknown"
	}
}

// Block is the capability shared by every content block.
type Block interface {
	// Name is the wire name the block was constructed under.
	Name() string

	// Kind is the shape of the raw value.
	Kind() Kind

	// Value returns the raw value in generic JSON form.
	Value() any
}

// base stores a block's name and typed raw value.
type base[T any] struct {
	name string
	raw  T
}

// Name returns the block's wire name.
func (b *base[T]) Name() string { return b.name }

// Raw returns the typed raw value.
func (b *base[T]) Raw() T { return b.raw }

// Value returns the raw value as an any.
func (b *base[T]) Value() any { return b.raw }

// check applies the nil and schema checks shared by all constructors.
func check(name string, raw any, validator *validate.Validator) error {
	if raw == nil {
		return NewInvalidBlockError(name, undefinedMessage)
	}
	if diagnostics := validator.Validate(raw); len(diagnostics) > 0 {
		return NewValidationError(name, diagnostics)
	}
	return nil
}
