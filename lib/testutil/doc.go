// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

// Package testutil provides shared test fixtures for extevents packages.
//
// [RoomEvent] builds a valid wire room event around a type and content
// so tests only spell out the part they are exercising. [Markup] builds
// a markup array from plain text and optional HTML. [DecodeJSON] turns
// a JSON literal into the generic form events arrive in. Room and event
// IDs are unique per call, so fixtures built in one test are
// distinguishable.
//
// Helpers call t.Fatalf on failure rather than returning errors, since
// fixture failures are not recoverable.
//
// This package has no extevents-internal dependencies.
package testutil
