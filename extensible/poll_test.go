// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package extensible

import (
	"fmt"
	"reflect"
	"slices"
	"testing"

	"github.com/google/uuid"
)

func pollContent(poll map[string]any) PartialEvent {
	return PartialEvent{Type: "m.poll.start", Content: map[string]any{"org.matrix.msc3381.poll.start": poll}}
}

func answers(n int) []any {
	list := make([]any, n)
	for i := range list {
		list[i] = map[string]any{"id": fmt.Sprintf("answer-%d", i), "m.text": fmt.Sprintf("Answer %d", i)}
	}
	return list
}

func TestPollStartDefaults(t *testing.T) {
	tests := []struct {
		name          string
		kind          any
		maxSelections any
		wantKind      string
		wantMax       int
	}{
		{"disclosed", "m.poll.disclosed", 2.0, PollKindDisclosed.Name(), 2},
		{"unstable disclosed", "org.matrix.msc3381.poll.disclosed", nil, PollKindDisclosed.Name(), 1},
		{"unknown kind", "org.example.kind", 0.0, PollKindUndisclosed.Name(), 1},
		{"missing kind", nil, -3.0, PollKindUndisclosed.Name(), 1},
		{"fractional selections", "m.poll.undisclosed", 2.7, PollKindUndisclosed.Name(), 2},
		{"string selections", nil, "3", PollKindUndisclosed.Name(), 1},
	}
	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			poll := map[string]any{
				"question": map[string]any{"m.text": "Lunch?"},
				"answers":  answers(2),
			}
			if test.kind != nil {
				poll["kind"] = test.kind
			}
			if test.maxSelections != nil {
				poll["max_selections"] = test.maxSelections
			}
			event, err := NewPollStartEvent(pollContent(poll))
			if err != nil {
				t.Fatalf("NewPollStartEvent: %v", err)
			}
			if event.Kind.Name() != test.wantKind {
				t.Errorf("Kind = %v, want %s", event.Kind, test.wantKind)
			}
			if kind, _ := test.kind.(string); event.RawKind != kind {
				t.Errorf("RawKind = %q, want %q", event.RawKind, kind)
			}
			if event.MaxSelections != test.wantMax {
				t.Errorf("MaxSelections = %d, want %d", event.MaxSelections, test.wantMax)
			}
			if event.Question.Text != "Lunch?" {
				t.Errorf("Question.Text = %q", event.Question.Text)
			}
		})
	}
}

func TestPollStartTruncatesAnswers(t *testing.T) {
	event, err := NewPollStartEvent(pollContent(map[string]any{
		"question": map[string]any{"m.text": "Pick one"},
		"answers":  answers(25),
	}))
	if err != nil {
		t.Fatalf("NewPollStartEvent: %v", err)
	}
	if len(event.Answers) != 20 {
		t.Fatalf("len(Answers) = %d, want 20", len(event.Answers))
	}
	if event.Answers[19].ID != "answer-19" {
		t.Errorf("last answer = %q, want answer-19", event.Answers[19].ID)
	}
}

func TestPollStartErrors(t *testing.T) {
	question := map[string]any{"m.text": "Lunch?"}
	tests := []struct {
		name string
		poll map[string]any
		want string
	}{
		{"no question", map[string]any{"answers": answers(1)}, "A question is required"},
		{"question without text", map[string]any{"question": map[string]any{}, "answers": answers(1)}, "Missing textual representation for event"},
		{"answers not an array", map[string]any{"question": question, "answers": "soup"}, "Poll answers must be an array"},
		{"no answers", map[string]any{"question": question, "answers": []any{}}, "No answers available"},
		{"answer without id", map[string]any{"question": question, "answers": []any{map[string]any{"m.text": "Soup"}}}, "Answer ID must be a non-empty string"},
		{"answer with empty id", map[string]any{"question": question, "answers": []any{map[string]any{"id": "", "m.text": "Soup"}}}, "Answer ID must be a non-empty string"},
		{"answer without text", map[string]any{"question": question, "answers": []any{map[string]any{"id": "a"}}}, "Missing textual representation for event"},
	}
	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			_, err := NewPollStartEvent(pollContent(test.poll))
			if got := invalidMessage(t, err); got != test.want {
				t.Errorf("message = %q, want %q", got, test.want)
			}
		})
	}
}

func TestPollStartFrom(t *testing.T) {
	event, err := PollStartFrom("Favourite colour?", []string{"Red", "Blue"}, PollKindDisclosed.Name(), 1)
	if err != nil {
		t.Fatalf("PollStartFrom: %v", err)
	}
	ids := event.AnswerIDs()
	if len(ids) != 2 || ids[0] == ids[1] {
		t.Fatalf("AnswerIDs() = %v, want two distinct IDs", ids)
	}
	for _, id := range ids {
		if _, err := uuid.Parse(id); err != nil {
			t.Errorf("answer ID %q is not a UUID: %v", id, err)
		}
	}

	serialized := event.Serialize()
	if serialized.Type != "org.matrix.msc3381.poll.start" {
		t.Errorf("Type = %q", serialized.Type)
	}
	wantFallback := "Favourite colour?\n1. Red\n2. Blue"
	if got := serialized.Content["org.matrix.msc1767.text"]; got != wantFallback {
		t.Errorf("fallback text = %q, want %q", got, wantFallback)
	}
	poll := serialized.Content["org.matrix.msc3381.poll.start"].(map[string]any)
	if poll["kind"] != "org.matrix.msc3381.poll.disclosed" {
		t.Errorf("kind = %v", poll["kind"])
	}

	if _, err := PollStartFrom("Empty?", nil, "", 1); err == nil {
		t.Error("PollStartFrom accepted a poll with no answers")
	}
}

func TestPollStartRoundTrip(t *testing.T) {
	original, err := PollStartFrom("Lunch?", []string{"Soup", "Salad", "Sandwich"}, PollKindUndisclosed.Name(), 2)
	if err != nil {
		t.Fatalf("PollStartFrom: %v", err)
	}
	parsed, err := NewInterpreters().Parse(original.Serialize())
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	poll, ok := parsed.(*PollStartEvent)
	if !ok {
		t.Fatalf("Parse returned %T, want *PollStartEvent", parsed)
	}
	if !slices.Equal(poll.AnswerIDs(), original.AnswerIDs()) {
		t.Errorf("AnswerIDs() = %v, want %v", poll.AnswerIDs(), original.AnswerIDs())
	}
	if poll.MaxSelections != 2 || !poll.Kind.Equal(PollKindUndisclosed) || poll.Question.Text != "Lunch?" {
		t.Errorf("round trip changed metadata: max %d, kind %v, question %q", poll.MaxSelections, poll.Kind, poll.Question.Text)
	}
	if !reflect.DeepEqual(poll.Serialize(), original.Serialize()) {
		t.Errorf("re-serialized poll differs:\n got %#v\nwant %#v", poll.Serialize(), original.Serialize())
	}
}

func TestPollAnswerSerialize(t *testing.T) {
	answer, err := PollAnswerFrom("a", "Soup")
	if err != nil {
		t.Fatalf("PollAnswerFrom: %v", err)
	}
	want := PartialEvent{
		Type:    "org.matrix.sdk.poll.answer",
		Content: map[string]any{"id": "a", "org.matrix.msc1767.text": "Soup"},
	}
	if got := answer.Serialize(); !reflect.DeepEqual(got, want) {
		t.Errorf("Serialize() = %#v, want %#v", got, want)
	}
}

func mustPoll(t *testing.T, maxSelections int) *PollStartEvent {
	t.Helper()
	poll, err := NewPollStartEvent(pollContent(map[string]any{
		"question":       map[string]any{"m.text": "Lunch?"},
		"answers":        answers(3),
		"max_selections": maxSelections,
	}))
	if err != nil {
		t.Fatalf("NewPollStartEvent: %v", err)
	}
	return poll
}

func TestPollResponseValidation(t *testing.T) {
	poll := mustPoll(t, 2)
	tests := []struct {
		name        string
		answers     any
		poll        *PollStartEvent
		wantSpoiled bool
		wantIDs     []string
	}{
		{"no poll", []any{"anything"}, nil, false, []string{"anything"}},
		{"valid", []any{"answer-0"}, poll, false, []string{"answer-0"}},
		{"truncated", []any{"answer-2", "answer-0", "answer-1"}, poll, false, []string{"answer-2", "answer-0"}},
		{"foreign answer", []any{"answer-0", "nope"}, poll, true, []string{}},
		{"empty", []any{}, poll, true, []string{}},
		{"not an array", "answer-0", poll, true, []string{}},
		{"missing", nil, nil, true, []string{}},
		{"non-string entry", []any{"answer-0", 1.0}, nil, true, []string{}},
	}
	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			response := map[string]any{}
			if test.answers != nil {
				response["answers"] = test.answers
			}
			event, err := NewPollResponseEvent(PartialEvent{
				Type: "m.poll.response",
				Content: map[string]any{
					"m.relates_to":    reference("$poll"),
					"m.poll.response": response,
				},
			})
			if err != nil {
				t.Fatalf("NewPollResponseEvent: %v", err)
			}
			event.ValidateAgainst(test.poll)
			if event.Spoiled() != test.wantSpoiled {
				t.Errorf("Spoiled() = %v, want %v", event.Spoiled(), test.wantSpoiled)
			}
			if got := event.AnswerIDs(); !slices.Equal(got, test.wantIDs) {
				t.Errorf("AnswerIDs() = %v, want %v", got, test.wantIDs)
			}
			if event.PollEventID != "$poll" {
				t.Errorf("PollEventID = %q", event.PollEventID)
			}
		})
	}
}

func TestPollResponseRequiresReference(t *testing.T) {
	tests := []struct {
		name     string
		relation any
	}{
		{"missing", nil},
		{"wrong rel_type", map[string]any{"rel_type": "m.annotation", "event_id": "$poll"}},
		{"non-string event_id", map[string]any{"rel_type": "m.reference", "event_id": 7.0}},
	}
	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			content := map[string]any{"m.poll.response": map[string]any{"answers": []any{"a"}}}
			if test.relation != nil {
				content["m.relates_to"] = test.relation
			}
			_, err := NewPollResponseEvent(PartialEvent{Type: "m.poll.response", Content: content})
			if got := invalidMessage(t, err); got != "Relationship must be a reference to an event" {
				t.Errorf("message = %q", got)
			}
		})
	}
}

func TestPollResponseSerialize(t *testing.T) {
	vote, err := PollResponseFrom([]string{"a", "b"}, "$poll")
	if err != nil {
		t.Fatalf("PollResponseFrom: %v", err)
	}
	want := PartialEvent{
		Type: "org.matrix.msc3381.poll.response",
		Content: map[string]any{
			"m.relates_to":                     map[string]any{"rel_type": "m.reference", "event_id": "$poll"},
			"org.matrix.msc3381.poll.response": map[string]any{"answers": []any{"a", "b"}},
		},
	}
	if got := vote.Serialize(); !reflect.DeepEqual(got, want) {
		t.Errorf("Serialize() = %#v, want %#v", got, want)
	}

	spoiled, err := PollResponseFrom(nil, "$poll")
	if err != nil {
		t.Fatalf("PollResponseFrom: %v", err)
	}
	if !spoiled.Spoiled() {
		t.Fatal("an empty vote is not spoiled")
	}
	response := spoiled.Serialize().Content["org.matrix.msc3381.poll.response"].(map[string]any)
	if _, ok := response["answers"]; ok {
		t.Errorf("spoiled vote serialized answers: %v", response)
	}
}

func TestPollEnd(t *testing.T) {
	end, err := PollEndFrom("$poll", "The winner is Soup")
	if err != nil {
		t.Fatalf("PollEndFrom: %v", err)
	}
	if end.PollEventID != "$poll" || end.ClosingMessage.Text != "The winner is Soup" {
		t.Errorf("got (%q, %q)", end.PollEventID, end.ClosingMessage.Text)
	}

	serialized := end.Serialize()
	if serialized.Type != "org.matrix.msc3381.poll.end" {
		t.Errorf("Type = %q", serialized.Type)
	}
	if serialized.Content["body"] != "The winner is Soup" {
		t.Errorf("body = %v", serialized.Content["body"])
	}
	if _, ok := serialized.Content["org.matrix.msc3381.poll.end"]; !ok {
		t.Error("serialized end has no poll end block")
	}

	parsed, err := NewInterpreters().Parse(serialized)
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	roundTripped, ok := parsed.(*PollEndEvent)
	if !ok {
		t.Fatalf("Parse returned %T, want *PollEndEvent", parsed)
	}
	if roundTripped.PollEventID != "$poll" {
		t.Errorf("PollEventID = %q", roundTripped.PollEventID)
	}

	_, err = NewPollEndEvent(PartialEvent{Type: "m.poll.end", Content: map[string]any{"m.text": "Closed"}})
	if got := invalidMessage(t, err); got != "Relationship must be a reference to an event" {
		t.Errorf("message = %q", got)
	}
}
