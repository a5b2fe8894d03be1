// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package block

import "github.com/bureau-foundation/extevents/lib/validate"

var (
	stringValidator  = validate.MustCompile(&validate.Schema{Type: validate.TypeString})
	booleanValidator = validate.MustCompile(&validate.Schema{Type: validate.TypeBoolean})
	integerValidator = validate.MustCompile(&validate.Schema{Type: validate.TypeInteger})
	objectValidator  = validate.MustCompile(&validate.Schema{Type: validate.TypeObject})
	arrayValidator   = validate.MustCompile(&validate.Schema{Type: validate.TypeArray})
)

// StringBlock holds a string value.
type StringBlock struct {
	base[string]
}

// NewStringBlock validates raw as a string.
func NewStringBlock(name string, raw any) (*StringBlock, error) {
	if err := check(name, raw, stringValidator); err != nil {
		return nil, err
	}
	value, ok := validate.AsString(raw)
	if !ok {
		return nil, NewInvalidBlockError(name, "value is not a string")
	}
	return &StringBlock{base[string]{name: name, raw: value}}, nil
}

func (*StringBlock) Kind() Kind { return KindString }

// BooleanBlock holds a boolean value.
type BooleanBlock struct {
	base[bool]
}

// NewBooleanBlock validates raw as a boolean.
func NewBooleanBlock(name string, raw any) (*BooleanBlock, error) {
	if err := check(name, raw, booleanValidator); err != nil {
		return nil, err
	}
	value, ok := raw.(bool)
	if !ok {
		return nil, NewInvalidBlockError(name, "value is not a boolean")
	}
	return &BooleanBlock{base[bool]{name: name, raw: value}}, nil
}

func (*BooleanBlock) Kind() Kind { return KindBoolean }

// IntegerBlock holds an integral number. Fractional and non-finite
// numbers are rejected.
type IntegerBlock struct {
	base[int64]
}

// NewIntegerBlock validates raw as an integer.
func NewIntegerBlock(name string, raw any) (*IntegerBlock, error) {
	if err := check(name, raw, integerValidator); err != nil {
		return nil, err
	}
	value, ok := validate.AsInteger(raw)
	if !ok {
		return nil, NewInvalidBlockError(name, "value is not an integer")
	}
	return &IntegerBlock{base[int64]{name: name, raw: value}}, nil
}

func (*IntegerBlock) Kind() Kind { return KindInteger }

// ObjectBlock holds a JSON object.
type ObjectBlock struct {
	base[map[string]any]
}

// NewObjectBlock validates raw as an object.
func NewObjectBlock(name string, raw any) (*ObjectBlock, error) {
	return newObjectBlock(name, raw, objectValidator)
}

func newObjectBlock(name string, raw any, validator *validate.Validator) (*ObjectBlock, error) {
	if err := check(name, raw, validator); err != nil {
		return nil, err
	}
	value, ok := validate.AsObject(raw)
	if !ok {
		return nil, NewInvalidBlockError(name, "value is not an object")
	}
	return &ObjectBlock{base[map[string]any]{name: name, raw: value}}, nil
}

func (*ObjectBlock) Kind() Kind { return KindObject }

// ArrayBlock holds a JSON array.
type ArrayBlock struct {
	base[[]any]
}

// NewArrayBlock validates raw as an array.
func NewArrayBlock(name string, raw any) (*ArrayBlock, error) {
	if err := check(name, raw, arrayValidator); err != nil {
		return nil, err
	}
	value, ok := validate.AsArray(raw)
	if !ok {
		return nil, NewInvalidBlockError(name, "value is not an array")
	}
	return &ArrayBlock{base[[]any]{name: name, raw: value}}, nil
}

func (*ArrayBlock) Kind() Kind { return KindArray }
