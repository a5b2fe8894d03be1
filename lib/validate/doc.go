// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

// Package validate is the boundary between event and block types and the
// JSON Schema engine that checks their wire shape.
//
// A [Schema] is a small descriptor tree covering the subset of JSON
// Schema the event model needs: types, properties, required lists,
// string patterns, array items, and anyOf. Each node may carry a custom
// [Schema.Message] that replaces the engine's description for failures
// located at that node, and [Schema.RequiredMessages] for missing
// properties. [Compile] turns a descriptor into a reusable [Validator];
// compile once per type at package initialization and share it.
//
// [Validator.Validate] returns a list of [Diagnostic] values, empty when
// the value conforms. [Describe] renders a diagnostic list into the
// single message carried by block and event errors.
//
// [EitherAnd] builds the transition-period schema used everywhere a
// field may appear under its stable name, its unstable name, or both.
package validate
