// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

// Package cli is the small command framework behind the extevents
// binary: a tree of [Command] values dispatched by name, flags bound
// from tagged parameter structs with [FlagsFromParams], typo
// suggestions for commands and flags, and terminal-aware output
// helpers.
package cli
