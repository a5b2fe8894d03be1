// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

// Package block implements content blocks: the typed, validated values
// found under namespaced keys of an extensible event's content.
//
// Every block has a wire name and a raw value. Constructors validate the
// raw value against a schema compiled once per block type and return an
// [*InvalidBlockError] when it does not conform. A nil raw value is
// always rejected; callers with optional blocks check for presence
// before constructing.
//
// The primitive blocks ([StringBlock], [BooleanBlock], [IntegerBlock],
// [ObjectBlock], [ArrayBlock]) check only the JSON type. [MarkupBlock]
// holds text representations with MIME types and quarantines malformed
// entries instead of failing. [EmoteBlock] and [NoticeBlock] wrap a
// markup block to mark a message as an emote or a notice.
package block
