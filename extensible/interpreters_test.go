// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package extensible

import (
	"errors"
	"fmt"
	"slices"
	"testing"

	"github.com/bureau-foundation/extevents/lib/namespace"
	"github.com/bureau-foundation/extevents/lib/testutil"
)

func reference(eventID string) map[string]any {
	return map[string]any{"rel_type": "m.reference", "event_id": eventID}
}

func TestKnownEvents(t *testing.T) {
	pollStart := map[string]any{
		"m.poll.start": map[string]any{
			"question": map[string]any{"m.text": "Lunch?"},
			"answers":  []any{map[string]any{"id": "a", "m.text": "Soup"}},
		},
	}
	tests := []struct {
		name    string
		partial PartialEvent
		want    string
	}{
		{"legacy text", PartialEvent{"m.room.message", map[string]any{"body": "hi", "msgtype": "m.text"}}, "*extensible.MessageEvent"},
		{"legacy notice", PartialEvent{"m.room.message", map[string]any{"body": "hi", "msgtype": "m.notice"}}, "*extensible.NoticeEvent"},
		{"legacy emote", PartialEvent{"m.room.message", map[string]any{"body": "hi", "msgtype": "m.emote"}}, "*extensible.EmoteEvent"},
		{"legacy location", PartialEvent{"m.room.message", map[string]any{"body": "here", "msgtype": "m.location", "geo_uri": "geo:1,2"}}, "*extensible.LocationEvent"},
		{"legacy topic", PartialEvent{"m.room.topic", map[string]any{"topic": "Welcome"}}, "*extensible.TopicEvent"},
		{"message", PartialEvent{"m.message", map[string]any{"m.text": "hi"}}, "*extensible.MessageEvent"},
		{"unstable message", PartialEvent{"org.matrix.msc1767.message", map[string]any{"org.matrix.msc1767.text": "hi"}}, "*extensible.MessageEvent"},
		{"emote", PartialEvent{"m.emote", map[string]any{"m.text": "waves"}}, "*extensible.EmoteEvent"},
		{"notice", PartialEvent{"org.matrix.msc1767.notice", map[string]any{"m.text": "beep"}}, "*extensible.NoticeEvent"},
		{"poll start", PartialEvent{"m.poll.start", pollStart}, "*extensible.PollStartEvent"},
		{"poll response", PartialEvent{"org.matrix.msc3381.poll.response", map[string]any{"m.relates_to": reference("$poll")}}, "*extensible.PollResponseEvent"},
		{"poll end", PartialEvent{"m.poll.end", map[string]any{"m.relates_to": reference("$poll"), "m.text": "Done"}}, "*extensible.PollEndEvent"},
		{"topic", PartialEvent{"m.topic", map[string]any{"m.topic": testutil.Markup("Welcome", "")}}, "*extensible.TopicEvent"},
		{"location", PartialEvent{"m.location", map[string]any{"m.location": map[string]any{"uri": "geo:1,2"}}}, "*extensible.LocationEvent"},
	}
	interpreters := NewInterpreters()
	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			event, err := interpreters.Parse(test.partial)
			if err != nil {
				t.Fatalf("Parse: %v", err)
			}
			if got := fmt.Sprintf("%T", event); got != test.want {
				t.Errorf("Parse returned %s, want %s", got, test.want)
			}
		})
	}
}

func TestUnknownTypeFallsBackToMessage(t *testing.T) {
	event, err := NewInterpreters().Parse(PartialEvent{
		Type:    "org.example.custom",
		Content: map[string]any{"m.text": "hello", "org.example.custom": map[string]any{}},
	})
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	message, ok := event.(*MessageEvent)
	if !ok {
		t.Fatalf("Parse returned %T, want *MessageEvent", event)
	}
	if message.Text != "hello" {
		t.Errorf("Text = %q, want %q", message.Text, "hello")
	}
	if message.WireFormat().Type != "org.example.custom" {
		t.Errorf("WireFormat().Type = %q, want the original type", message.WireFormat().Type)
	}
}

func TestUnparsableEventsReturnNil(t *testing.T) {
	tests := []struct {
		name    string
		partial PartialEvent
	}{
		{"unknown without text", PartialEvent{"org.example.custom", map[string]any{"org.example.custom": true}}},
		{"invalid poll", PartialEvent{"m.poll.start", map[string]any{}}},
		{"invalid message", PartialEvent{"m.message", map[string]any{"m.message": "not an array"}}},
		{"unsupported msgtype", PartialEvent{"m.room.message", map[string]any{"body": "cat.png", "msgtype": "m.image"}}},
		{"legacy without content", PartialEvent{"m.room.message", nil}},
		{"location without uri", PartialEvent{"m.location", map[string]any{"m.text": "somewhere"}}},
		{"legacy topic without topic", PartialEvent{"m.room.topic", map[string]any{}}},
	}
	interpreters := NewInterpreters()
	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			event, err := interpreters.Parse(test.partial)
			if err != nil {
				t.Fatalf("Parse: %v", err)
			}
			if event != nil {
				t.Errorf("Parse returned %T, want nil", event)
			}
		})
	}
}

func TestInterpreterErrorsPropagate(t *testing.T) {
	boom := errors.New("boom")
	custom := namespace.MustNew("org.example.failing", "")
	interpreters := NewInterpreters()
	interpreters.Register(custom, func(PartialEvent) (Event, error) {
		return nil, boom
	})

	_, err := interpreters.Parse(PartialEvent{Type: "org.example.failing"})
	if !errors.Is(err, boom) {
		t.Errorf("Parse error = %v, want %v", err, boom)
	}

	interpreters.SetUnknownInterpretOrder([]namespace.Value{custom})
	_, err = interpreters.Parse(PartialEvent{Type: "org.example.other"})
	if !errors.Is(err, boom) {
		t.Errorf("fallback Parse error = %v, want %v", err, boom)
	}
}

func TestUnknownInterpretOrder(t *testing.T) {
	interpreters := NewInterpreters()
	order := interpreters.UnknownInterpretOrder()
	if len(order) != 1 || !order[0].Equal(MessageType) {
		t.Fatalf("default order = %v, want [%v]", order, MessageType)
	}
	order[0] = TopicType
	if !interpreters.UnknownInterpretOrder()[0].Equal(MessageType) {
		t.Error("UnknownInterpretOrder() shares storage with the interpreters")
	}

	partial := PartialEvent{
		Type: "org.example.custom",
		Content: map[string]any{
			"m.topic": testutil.Markup("Topic text", ""),
			"m.text":  "Message text",
		},
	}
	event, err := interpreters.Parse(partial)
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if _, ok := event.(*MessageEvent); !ok {
		t.Errorf("default order parsed %T, want *MessageEvent", event)
	}

	interpreters.SetUnknownInterpretOrder([]namespace.Value{TopicType, MessageType})
	event, err = interpreters.Parse(partial)
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if _, ok := event.(*TopicEvent); !ok {
		t.Errorf("topic-first order parsed %T, want *TopicEvent", event)
	}
}

func TestFallbackSkipsRejectedInterpretations(t *testing.T) {
	interpreters := NewInterpreters()
	interpreters.SetUnknownInterpretOrder([]namespace.Value{TopicType, MessageType})
	event, err := interpreters.Parse(PartialEvent{
		Type:    "org.example.custom",
		Content: map[string]any{"m.topic": "not an array", "m.text": "fallback"},
	})
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	message, ok := event.(*MessageEvent)
	if !ok {
		t.Fatalf("Parse returned %T, want *MessageEvent", event)
	}
	if message.Text != "fallback" {
		t.Errorf("Text = %q, want %q", message.Text, "fallback")
	}
}

func TestSetUnknownInterpretOrderByName(t *testing.T) {
	interpreters := NewInterpreters()
	if err := interpreters.SetUnknownInterpretOrderByName([]string{"org.matrix.msc3765.topic", "m.message"}); err != nil {
		t.Fatalf("SetUnknownInterpretOrderByName: %v", err)
	}
	order := interpreters.UnknownInterpretOrder()
	if len(order) != 2 || !order[0].Equal(TopicType) || !order[1].Equal(MessageType) {
		t.Errorf("order = %v, want [%v %v]", order, TopicType, MessageType)
	}

	if err := interpreters.SetUnknownInterpretOrderByName([]string{"org.example.none"}); err == nil {
		t.Error("SetUnknownInterpretOrderByName accepted an unregistered type")
	}
	if got := interpreters.UnknownInterpretOrder(); len(got) != 2 {
		t.Errorf("failed resolution changed the order to %v", got)
	}
}

func TestRegisteredTypes(t *testing.T) {
	var names []string
	for _, eventType := range NewInterpreters().RegisteredTypes() {
		names = append(names, eventType.Stable())
	}
	want := []string{
		"m.room.message", "m.room.topic",
		"m.message", "m.emote", "m.notice",
		"m.poll.start", "m.poll.response", "m.poll.end",
		"m.topic", "m.location",
	}
	if !slices.Equal(names, want) {
		t.Errorf("RegisteredTypes() = %v, want %v", names, want)
	}
}

func TestDefaultInterpreters(t *testing.T) {
	if Default() != Default() {
		t.Fatal("Default() returned different instances")
	}
	event, err := Parse(PartialEvent{Type: "m.notice", Content: map[string]any{"m.text": "beep"}})
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if _, ok := event.(*NoticeEvent); !ok {
		t.Errorf("Parse returned %T, want *NoticeEvent", event)
	}
}

func TestIsEventTypeSame(t *testing.T) {
	tests := []struct {
		given    namespace.Value
		expected namespace.Value
		want     bool
	}{
		{EventTypeOf("m.poll.start"), PollStartType, true},
		{EventTypeOf("org.matrix.msc3381.poll.start"), PollStartType, true},
		{PollStartType, EventTypeOf("m.poll.start"), true},
		{PollStartType, PollStartType, true},
		{EventTypeOf("m.poll.end"), PollStartType, false},
		{EventTypeOf(""), PollStartType, false},
		{EventTypeOf("m.room.message"), EventTypeOf("m.room.message"), true},
	}
	for _, test := range tests {
		if got := IsEventTypeSame(test.given, test.expected); got != test.want {
			t.Errorf("IsEventTypeSame(%v, %v) = %v, want %v", test.given, test.expected, got, test.want)
		}
	}
}

func TestIsEquivalentTo(t *testing.T) {
	poll, err := PollStartFrom("Lunch?", []string{"Soup"}, "", 1)
	if err != nil {
		t.Fatalf("PollStartFrom: %v", err)
	}
	tests := []struct {
		event     Event
		eventType namespace.Value
	}{
		{MessageFrom("hi", ""), MessageType},
		{NoticeFrom("hi", ""), NoticeType},
		{EmoteFrom("hi", ""), EmoteType},
		{poll, PollStartType},
		{TopicFrom("hi", ""), TopicType},
	}
	for _, test := range tests {
		if !test.event.IsEquivalentTo(test.eventType) {
			t.Errorf("%T.IsEquivalentTo(%v) = false", test.event, test.eventType)
		}
		if test.event.IsEquivalentTo(LegacyRoomTopic) {
			t.Errorf("%T.IsEquivalentTo(%v) = true", test.event, LegacyRoomTopic)
		}
		if !test.event.IsEquivalentTo(EventTypeOf(test.eventType.Stable())) {
			t.Errorf("%T is not equivalent to the bare string %q", test.event, test.eventType.Stable())
		}
	}
}
