// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package extensible

import (
	"reflect"
	"testing"

	"github.com/bureau-foundation/extevents/lib/testutil"
)

func TestTopicFrom(t *testing.T) {
	topic := TopicFrom("Welcome", "<b>Welcome</b>")
	if topic.Text != "Welcome" || topic.HTML != "<b>Welcome</b>" {
		t.Errorf("got (%q, %q)", topic.Text, topic.HTML)
	}
	want := PartialEvent{
		Type: "m.room.topic",
		Content: map[string]any{
			"topic":                    "Welcome",
			"org.matrix.msc3765.topic": testutil.Markup("Welcome", "<b>Welcome</b>"),
		},
	}
	if got := topic.Serialize(); !reflect.DeepEqual(got, want) {
		t.Errorf("Serialize() = %#v, want %#v", got, want)
	}
}

func TestTopicRoundTrip(t *testing.T) {
	original := TopicFrom("Welcome", "")
	parsed, err := NewInterpreters().Parse(original.Serialize())
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	topic, ok := parsed.(*TopicEvent)
	if !ok {
		t.Fatalf("Parse returned %T, want *TopicEvent", parsed)
	}
	if !reflect.DeepEqual(topic.Serialize(), original.Serialize()) {
		t.Errorf("round trip changed the topic:\n got %#v\nwant %#v", topic.Serialize(), original.Serialize())
	}
}

func TestLegacyTopic(t *testing.T) {
	event, err := NewInterpreters().Parse(PartialEvent{Type: "m.room.topic", Content: map[string]any{"topic": "Old style"}})
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	topic, ok := event.(*TopicEvent)
	if !ok {
		t.Fatalf("Parse returned %T, want *TopicEvent", event)
	}
	if topic.Text != "Old style" || topic.HTML != "" {
		t.Errorf("got (%q, %q)", topic.Text, topic.HTML)
	}
}

func TestTopicErrors(t *testing.T) {
	tests := []struct {
		name    string
		content map[string]any
		want    string
	}{
		{"missing", map[string]any{"topic": "legacy only"}, "Missing textual representation for event"},
		{"not an array", map[string]any{"m.topic": "Welcome"}, "m.topic contents must be an array"},
		{"no plain text", map[string]any{"m.topic": []any{map[string]any{"body": "<b>x</b>", "mimetype": "text/html"}}}, "m.topic is missing a plain text representation"},
	}
	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			_, err := NewTopicEvent(PartialEvent{Type: "m.topic", Content: test.content})
			if got := invalidMessage(t, err); got != test.want {
				t.Errorf("message = %q, want %q", got, test.want)
			}
		})
	}
}
