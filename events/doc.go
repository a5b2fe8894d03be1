// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

// Package events interprets full Matrix room events as typed extensible
// events.
//
// [RoomEvent] validates the event envelope (room ID, event ID, type,
// sender, content, timestamp, optional state key and unsigned data).
// Concrete event types embed it and add their own content validation:
// [MessageEvent], [EmoteEvent], and [NoticeEvent] ship with the package.
//
// [EventParser] turns a wire object into an [Event]. Types with a
// registered factory are constructed directly. Everything else is run
// through an ordered list of [UnknownParser] detectors, each of which
// either claims the event, declines it, or fails. Detectors are ordered
// by [Priority] bucket so that richer interpretations (a notice, an
// emote) are tried before the plain text fallback.
//
// The built-in types register themselves into a process-wide registry
// from this package's init function. Extensions register from their own
// init functions with [AddInternalKnownEventParser] and
// [AddInternalUnknownEventParser]; the registry is read-only once main
// starts. Every [EventParser] copies the registry at construction and
// may then be customized independently.
//
// Validation failures are reported as [*InvalidEventError] or, for
// content blocks, [*block.InvalidBlockError]. [IsInvalid] recognizes
// both.
package events
