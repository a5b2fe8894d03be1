// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

// Package namespace models identifiers that exist under two spellings
// during a Matrix spec transition: a stable name (such as "m.markup") and
// an unstable, MSC-prefixed name (such as "org.matrix.msc1767.markup").
//
// A [Value] knows both spellings and which one it prefers. [New] builds a
// stable-preferred value, used once a proposal has been merged into the
// spec. [NewUnstable] builds an unstable-preferred value, used while the
// stable name is reserved but not yet safe to emit. Lookups against wire
// objects ([Value.FindIn]) try the preferred spelling first.
//
// [Map] is a small map keyed by namespaced values, used by registries
// that must answer lookups for either spelling.
//
// This package has no internal dependencies.
package namespace
