// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

// Package extensible interprets partial events (a type and a content
// object, without the room envelope) as typed extensible events, and
// serializes typed events back to wire content that older clients can
// still render.
//
// [Interpreters] maps event types to interpreter functions. An event
// whose type has an interpreter is handed to it; otherwise the
// interpreters named by the unknown-interpret order are tried in turn,
// so that an unfamiliar event type carrying m.message content still
// renders as a message. Events that fail validation parse to nil rather
// than an error: the caller cannot render them and moves on.
//
// The built-in event types are [MessageEvent] and its [NoticeEvent] and
// [EmoteEvent] variants, the poll events ([PollStartEvent],
// [PollResponseEvent], [PollEndEvent]), [TopicEvent], and
// [LocationEvent]. Legacy m.room.message and m.room.topic events are
// converted to the same types.
//
// Every type's Serialize method emits both the namespaced fields and
// the legacy fallback fields (body, msgtype, formatted_body, topic,
// geo_uri), so serialized events render in clients that predate
// extensible events.
package extensible
