// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

// Package lazy provides a compute-once cached value.
package lazy

// Value computes its result on the first call to Get and returns the
// cached result afterwards. The compute function is released once it
// has run so that anything it captured can be collected.
//
// Value is not safe for concurrent use; events that embed one are
// owned by a single goroutine. Use sync.OnceValue for shared values.
type Value[T any] struct {
	compute func() T
	value   T
	present bool
}

// New returns a Value that calls compute on first use.
func New[T any](compute func() T) *Value[T] {
	return &Value[T]{compute: compute}
}

// Get returns the cached value, computing it if necessary.
func (v *Value[T]) Get() T {
	if !v.present {
		v.value = v.compute()
		v.present = true
		v.compute = nil
	}
	return v.value
}

// Present reports whether the value has been computed.
func (v *Value[T]) Present() bool {
	return v.present
}
