// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package testutil

import (
	"encoding/json"
	"strconv"
	"strings"
	"sync/atomic"
)

// Timestamp is the origin_server_ts used by [RoomEvent].
const Timestamp = 1671145380506

// RoomEvent returns a valid wire room event with the given type and
// content. The room and event IDs are unique per call. Numbers are
// float64, matching what encoding/json produces.
func RoomEvent(eventType string, content map[string]any) map[string]any {
	return map[string]any{
		"room_id":          "!" + nextID("room") + ":example.org",
		"event_id":         "$" + nextID("event"),
		"type":             eventType,
		"sender":           "@alice:example.org",
		"content":          content,
		"origin_server_ts": float64(Timestamp),
	}
}

var idCounter atomic.Uint64

// nextID returns prefix followed by a process-wide sequence number.
func nextID(prefix string) string {
	return prefix + strconv.FormatUint(idCounter.Add(1), 10)
}

// Markup returns a markup array with a plain-text representation and,
// when html is non-empty, an HTML representation.
func Markup(text, html string) []any {
	markup := []any{map[string]any{"body": text, "mimetype": "text/plain"}}
	if html != "" {
		markup = append(markup, map[string]any{"body": html, "mimetype": "text/html"})
	}
	return markup
}

// DecodeJSON decodes a JSON object literal into generic form.
func DecodeJSON(t interface {
	Helper()
	Fatalf(format string, args ...any)
}, literal string) map[string]any {
	t.Helper()
	decoder := json.NewDecoder(strings.NewReader(literal))
	var object map[string]any
	if err := decoder.Decode(&object); err != nil {
		t.Fatalf("decoding fixture: %v", err)
	}
	return object
}
