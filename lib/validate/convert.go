// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package validate

import (
	"encoding/json"
	"math"
)

// Generic converts v to the form encoding/json produces when decoding
// into an any: map[string]any, []any, string, float64, bool, or nil.
// Values already in generic form should be type-asserted directly; this
// is the fallback for typed Go values such as []map[string]any.
func Generic(v any) (any, error) {
	data, err := json.Marshal(v)
	if err != nil {
		return nil, err
	}
	var generic any
	if err := json.Unmarshal(data, &generic); err != nil {
		return nil, err
	}
	return generic, nil
}

// AsObject returns v as a JSON object.
func AsObject(v any) (map[string]any, bool) {
	if object, ok := v.(map[string]any); ok {
		return object, object != nil
	}
	if v == nil {
		return nil, false
	}
	generic, err := Generic(v)
	if err != nil {
		return nil, false
	}
	object, ok := generic.(map[string]any)
	return object, ok
}

// AsArray returns v as a JSON array.
func AsArray(v any) ([]any, bool) {
	if array, ok := v.([]any); ok {
		return array, array != nil
	}
	if v == nil {
		return nil, false
	}
	generic, err := Generic(v)
	if err != nil {
		return nil, false
	}
	array, ok := generic.([]any)
	return array, ok
}

// AsString returns v as a string.
func AsString(v any) (string, bool) {
	if s, ok := v.(string); ok {
		return s, true
	}
	if v == nil {
		return "", false
	}
	generic, err := Generic(v)
	if err != nil {
		return "", false
	}
	s, ok := generic.(string)
	return s, ok
}

// AsNumber returns v as a finite float64.
func AsNumber(v any) (float64, bool) {
	var number float64
	switch typed := v.(type) {
	case float64:
		number = typed
	case float32:
		number = float64(typed)
	case int:
		number = float64(typed)
	case int8:
		number = float64(typed)
	case int16:
		number = float64(typed)
	case int32:
		number = float64(typed)
	case int64:
		number = float64(typed)
	case uint:
		number = float64(typed)
	case uint8:
		number = float64(typed)
	case uint16:
		number = float64(typed)
	case uint32:
		number = float64(typed)
	case uint64:
		number = float64(typed)
	case json.Number:
		parsed, err := typed.Float64()
		if err != nil {
			return 0, false
		}
		number = parsed
	default:
		return 0, false
	}
	if math.IsNaN(number) || math.IsInf(number, 0) {
		return 0, false
	}
	return number, true
}

// AsInteger returns v as an int64 when it is an integral number.
// Integer Go types convert exactly; floating-point values must have no
// fractional part.
func AsInteger(v any) (int64, bool) {
	switch typed := v.(type) {
	case int:
		return int64(typed), true
	case int32:
		return int64(typed), true
	case int64:
		return typed, true
	case uint32:
		return int64(typed), true
	case json.Number:
		if parsed, err := typed.Int64(); err == nil {
			return parsed, true
		}
	}
	number, ok := AsNumber(v)
	if !ok || number != math.Trunc(number) {
		return 0, false
	}
	// float64(math.MaxInt64) rounds up to 2^63, which does not fit.
	if number >= math.MaxInt64 || number < math.MinInt64 {
		return 0, false
	}
	return int64(number), true
}
