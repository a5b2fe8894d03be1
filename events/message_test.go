// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package events

import (
	"strings"
	"testing"

	"github.com/bureau-foundation/extevents/lib/testutil"
)

func TestNewMessageEvent(t *testing.T) {
	raw := testutil.DecodeJSON(t, `{
		"room_id": "!room:example.org",
		"event_id": "$event",
		"type": "m.message",
		"sender": "@alice:example.org",
		"origin_server_ts": 1671145380506,
		"content": {
			"m.markup": [
				{"body": "<i>Hello</i> world", "mimetype": "text/html"},
				{"body": "Hello world"}
			]
		}
	}`)

	event, err := NewMessageEvent(raw)
	if err != nil {
		t.Fatalf("NewMessageEvent: %v", err)
	}
	if event.Name() != MessageType.Stable() {
		t.Errorf("Name() = %q, want %q", event.Name(), MessageType.Stable())
	}
	if text, _ := event.Text(); text != "Hello world" {
		t.Errorf("Text() = %q", text)
	}
	if html, _ := event.HTML(); html != "<i>Hello</i> world" {
		t.Errorf("HTML() = %q", html)
	}
	if event.Markup() != event.Markup() {
		t.Error("Markup() is not cached")
	}
}

func TestMessageEventRequiresMarkup(t *testing.T) {
	raw := testutil.RoomEvent("m.message", map[string]any{"body": "legacy only"})
	_, err := NewMessageEvent(raw)
	if !IsInvalidEvent(err) {
		t.Fatalf("error = %v, want *InvalidEventError", err)
	}
	if !strings.HasPrefix(err.Error(), "m.message: ") {
		t.Errorf("Error() = %q, want m.message prefix", err.Error())
	}
	if !strings.Contains(err.Error(), "schema does not apply to m.markup or org.matrix.msc1767.markup") {
		t.Errorf("Error() = %q", err.Error())
	}
}

func TestMessageEventMarkupQuarantine(t *testing.T) {
	raw := testutil.RoomEvent("m.message", map[string]any{
		"org.matrix.msc1767.markup": []any{
			map[string]any{"body": 12},
			map[string]any{"body": "kept"},
		},
	})
	event, err := NewMessageEvent(raw)
	if err != nil {
		t.Fatalf("NewMessageEvent: %v", err)
	}
	if text, _ := event.Text(); text != "kept" {
		t.Errorf("Text() = %q, want kept", text)
	}
	if errors := event.Markup().RepresentationErrors(); len(errors) != 1 {
		t.Errorf("RepresentationErrors() = %v, want one entry", errors)
	}
}

func TestEmoteAndNoticeEvents(t *testing.T) {
	content := map[string]any{"m.markup": testutil.Markup("waves", "")}

	emote, err := NewEmoteEvent(testutil.RoomEvent("m.emote", content))
	if err != nil {
		t.Fatalf("NewEmoteEvent: %v", err)
	}
	if emote.Name() != EmoteType.Stable() {
		t.Errorf("emote Name() = %q", emote.Name())
	}
	if text, _ := emote.Text(); text != "waves" {
		t.Errorf("emote Text() = %q", text)
	}

	notice, err := NewNoticeEvent(testutil.RoomEvent("m.notice", content))
	if err != nil {
		t.Fatalf("NewNoticeEvent: %v", err)
	}
	if notice.Name() != NoticeType.Stable() {
		t.Errorf("notice Name() = %q", notice.Name())
	}

	if _, err := NewNoticeEvent(testutil.RoomEvent("m.notice", map[string]any{})); !IsInvalidEvent(err) {
		t.Errorf("empty notice error = %v, want *InvalidEventError", err)
	}
}
