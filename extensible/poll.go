// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package extensible

import (
	"fmt"
	"math"
	"slices"
	"strings"

	"github.com/google/uuid"

	"github.com/bureau-foundation/extevents/lib/namespace"
	"github.com/bureau-foundation/extevents/lib/validate"
)

var (
	PollStartType    = namespace.MustNewUnstable("m.poll.start", "org.matrix.msc3381.poll.start")
	PollResponseType = namespace.MustNewUnstable("m.poll.response", "org.matrix.msc3381.poll.response")
	PollEndType      = namespace.MustNewUnstable("m.poll.end", "org.matrix.msc3381.poll.end")

	// PollKindDisclosed polls show results while voting is open.
	PollKindDisclosed = namespace.MustNewUnstable("m.poll.disclosed", "org.matrix.msc3381.poll.disclosed")

	// PollKindUndisclosed polls show results only once closed. Unknown
	// kinds are treated as undisclosed.
	PollKindUndisclosed = namespace.MustNewUnstable("m.poll.undisclosed", "org.matrix.msc3381.poll.undisclosed")
)

const (
	pollQuestionType = "org.matrix.sdk.poll.question"
	pollAnswerType   = "org.matrix.sdk.poll.answer"

	// maxPollAnswers caps the answers read from a poll start event.
	maxPollAnswers = 20
)

// relatesTo is the content key of an event relationship.
const relatesTo = "m.relates_to"

// PollAnswer is one answer of a poll. It is not an event type of its
// own and is only built while reading a [PollStartEvent].
type PollAnswer struct {
	*MessageEvent

	// ID identifies the answer within its poll.
	ID string
}

// NewPollAnswer reads an answer object.
func NewPollAnswer(content map[string]any) (*PollAnswer, error) {
	message, err := newMessageEvent(pollAnswerType, PartialEvent{Type: pollAnswerType, Content: content})
	if err != nil {
		return nil, err
	}
	id, _ := content["id"].(string)
	if id == "" {
		return nil, invalid(pollAnswerType, "Answer ID must be a non-empty string")
	}
	return &PollAnswer{MessageEvent: message, ID: id}, nil
}

func (a *PollAnswer) Serialize() PartialEvent {
	content := a.renderingContent()
	content["id"] = a.ID
	return PartialEvent{Type: pollAnswerType, Content: content}
}

// PollAnswerFrom builds an answer from an ID and plain text.
func PollAnswerFrom(id, text string) (*PollAnswer, error) {
	return NewPollAnswer(map[string]any{"id": id, TextType.Name(): text})
}

// PollStartEvent opens a poll.
type PollStartEvent struct {
	wired

	// Question is the question asked, read as a message.
	Question *MessageEvent

	// Kind is PollKindDisclosed or PollKindUndisclosed.
	Kind namespace.Value

	// RawKind is the kind as sent, which may be unknown or empty.
	RawKind string

	// MaxSelections is the number of answers a voter may pick, at
	// least 1.
	MaxSelections int

	// Answers holds at most 20 answers in wire order.
	Answers []*PollAnswer
}

// NewPollStartEvent interprets partial as a poll start.
func NewPollStartEvent(partial PartialEvent) (*PollStartEvent, error) {
	name := PollStartType.Stable()
	value, _ := PollStartType.FindIn(partial.Content)
	poll, _ := validate.AsObject(value)

	question, ok := validate.AsObject(poll["question"])
	if !ok {
		return nil, invalid(name, "A question is required")
	}
	message, err := NewMessageEvent(PartialEvent{Type: pollQuestionType, Content: question})
	if err != nil {
		return nil, err
	}

	event := &PollStartEvent{
		wired:         wired{wire: partial},
		Question:      message,
		Kind:          PollKindUndisclosed,
		MaxSelections: maxSelections(poll["max_selections"]),
	}
	event.RawKind, _ = poll["kind"].(string)
	if PollKindDisclosed.Matches(event.RawKind) {
		event.Kind = PollKindDisclosed
	}

	answers, ok := validate.AsArray(poll["answers"])
	if !ok {
		return nil, invalid(name, "Poll answers must be an array")
	}
	if len(answers) > maxPollAnswers {
		answers = answers[:maxPollAnswers]
	}
	for _, value := range answers {
		content, _ := validate.AsObject(value)
		answer, err := NewPollAnswer(content)
		if err != nil {
			return nil, err
		}
		event.Answers = append(event.Answers, answer)
	}
	if len(event.Answers) == 0 {
		return nil, invalid(name, "No answers available")
	}
	return event, nil
}

// maxSelections reads max_selections. Missing, non-finite, and values
// below 1 become 1; fractions are truncated.
func maxSelections(value any) int {
	number, ok := validate.AsNumber(value)
	if !ok || number < 1 {
		return 1
	}
	if number > math.MaxInt32 {
		return math.MaxInt32
	}
	return int(number)
}

// AnswerIDs returns the IDs of every answer in order.
func (e *PollStartEvent) AnswerIDs() []string {
	ids := make([]string, len(e.Answers))
	for i, answer := range e.Answers {
		ids[i] = answer.ID
	}
	return ids
}

func (e *PollStartEvent) IsEquivalentTo(eventType namespace.Value) bool {
	return IsEventTypeSame(eventType, PollStartType)
}

func (e *PollStartEvent) Serialize() PartialEvent {
	poll := map[string]any{
		"question":       e.Question.Serialize().Content,
		"max_selections": e.MaxSelections,
	}
	if e.RawKind != "" {
		poll["kind"] = e.RawKind
	}
	answers := make([]any, len(e.Answers))
	for i, answer := range e.Answers {
		answers[i] = answer.Serialize().Content
	}
	poll["answers"] = answers

	return PartialEvent{
		Type: PollStartType.Name(),
		Content: map[string]any{
			PollStartType.Name(): poll,
			TextType.Name():      e.fallbackText(),
		},
	}
}

// fallbackText renders the question followed by numbered answers.
func (e *PollStartEvent) fallbackText() string {
	var text strings.Builder
	text.WriteString(e.Question.Text)
	for i, answer := range e.Answers {
		fmt.Fprintf(&text, "\n%d. %s", i+1, answer.Text)
	}
	return text.String()
}

// PollStartFrom builds a poll. Each answer gets a random ID. kind is
// written as given; pass PollKindDisclosed.Name() or
// PollKindUndisclosed.Name() for a known kind.
func PollStartFrom(question string, answers []string, kind string, maxSelections int) (*PollStartEvent, error) {
	wireAnswers := make([]any, len(answers))
	for i, answer := range answers {
		wireAnswers[i] = map[string]any{"id": uuid.NewString(), TextType.Name(): answer}
	}
	poll := map[string]any{
		"question":       map[string]any{TextType.Name(): question},
		"max_selections": maxSelections,
		"answers":        wireAnswers,
	}
	if kind != "" {
		poll["kind"] = kind
	}
	return NewPollStartEvent(PartialEvent{
		Type: PollStartType.Name(),
		Content: map[string]any{
			TextType.Name():      question,
			PollStartType.Name(): poll,
		},
	})
}

// PollResponseEvent is a vote on a poll.
type PollResponseEvent struct {
	wired

	// PollEventID is the event ID of the poll start being answered.
	PollEventID string

	answerIDs []string
	spoiled   bool
}

// NewPollResponseEvent interprets partial as a poll response. The vote
// is checked for shape only; call [PollResponseEvent.ValidateAgainst]
// with the poll to check the answers themselves.
func NewPollResponseEvent(partial PartialEvent) (*PollResponseEvent, error) {
	pollEventID, err := referencedEvent(PollResponseType.Stable(), partial.Content)
	if err != nil {
		return nil, err
	}
	event := &PollResponseEvent{wired: wired{wire: partial}, PollEventID: pollEventID}
	event.ValidateAgainst(nil)
	return event, nil
}

// ValidateAgainst recomputes the vote using poll as the frame of
// reference. A vote is spoiled when its answers are missing, empty,
// not all strings, or (given a poll) not all answers of that poll. A
// valid vote is truncated to the poll's max selections.
func (e *PollResponseEvent) ValidateAgainst(poll *PollStartEvent) {
	e.spoiled = true
	e.answerIDs = []string{}

	value, _ := PollResponseType.FindIn(e.wire.Content)
	response, _ := validate.AsObject(value)
	answers, ok := validate.AsArray(response["answers"])
	if !ok || len(answers) == 0 {
		return
	}
	ids := make([]string, 0, len(answers))
	for _, answer := range answers {
		id, ok := answer.(string)
		if !ok {
			return
		}
		ids = append(ids, id)
	}

	if poll != nil {
		valid := poll.AnswerIDs()
		for _, id := range ids {
			if !slices.Contains(valid, id) {
				return
			}
		}
		if len(ids) > poll.MaxSelections {
			ids = ids[:poll.MaxSelections]
		}
	}
	e.answerIDs = ids
	e.spoiled = false
}

// AnswerIDs returns the chosen answers. It is empty when the vote is
// spoiled.
func (e *PollResponseEvent) AnswerIDs() []string {
	return slices.Clone(e.answerIDs)
}

// Spoiled reports whether the vote was rejected.
func (e *PollResponseEvent) Spoiled() bool {
	return e.spoiled
}

func (e *PollResponseEvent) IsEquivalentTo(eventType namespace.Value) bool {
	return IsEventTypeSame(eventType, PollResponseType)
}

func (e *PollResponseEvent) Serialize() PartialEvent {
	response := map[string]any{}
	if !e.spoiled {
		answers := make([]any, len(e.answerIDs))
		for i, id := range e.answerIDs {
			answers[i] = id
		}
		response["answers"] = answers
	}
	return PartialEvent{
		Type: PollResponseType.Name(),
		Content: map[string]any{
			relatesTo:               referenceWire(e.PollEventID),
			PollResponseType.Name(): response,
		},
	}
}

// PollResponseFrom builds a vote. An empty answers slice spoils it.
func PollResponseFrom(answers []string, pollEventID string) (*PollResponseEvent, error) {
	wireAnswers := make([]any, len(answers))
	for i, answer := range answers {
		wireAnswers[i] = answer
	}
	return NewPollResponseEvent(PartialEvent{
		Type: PollResponseType.Name(),
		Content: map[string]any{
			relatesTo:               referenceWire(pollEventID),
			PollResponseType.Name(): map[string]any{"answers": wireAnswers},
		},
	})
}

// PollEndEvent closes a poll.
type PollEndEvent struct {
	wired

	// PollEventID is the event ID of the poll start being closed.
	PollEventID string

	// ClosingMessage is read from the same content, typically naming
	// the winning answer.
	ClosingMessage *MessageEvent
}

// NewPollEndEvent interprets partial as a poll end.
func NewPollEndEvent(partial PartialEvent) (*PollEndEvent, error) {
	pollEventID, err := referencedEvent(PollEndType.Stable(), partial.Content)
	if err != nil {
		return nil, err
	}
	message, err := NewMessageEvent(partial)
	if err != nil {
		return nil, err
	}
	return &PollEndEvent{
		wired:          wired{wire: partial},
		PollEventID:    pollEventID,
		ClosingMessage: message,
	}, nil
}

func (e *PollEndEvent) IsEquivalentTo(eventType namespace.Value) bool {
	return IsEventTypeSame(eventType, PollEndType)
}

func (e *PollEndEvent) Serialize() PartialEvent {
	content := e.ClosingMessage.Serialize().Content
	content[relatesTo] = referenceWire(e.PollEventID)
	content[PollEndType.Name()] = map[string]any{}
	return PartialEvent{Type: PollEndType.Name(), Content: content}
}

// PollEndFrom builds a poll closure with a plain-text closing message.
func PollEndFrom(pollEventID, message string) (*PollEndEvent, error) {
	return NewPollEndEvent(PartialEvent{
		Type: PollEndType.Name(),
		Content: map[string]any{
			relatesTo:          referenceWire(pollEventID),
			PollEndType.Name(): map[string]any{},
			TextType.Name():    message,
		},
	})
}

// referencedEvent reads an m.reference relationship's event ID.
func referencedEvent(name string, content map[string]any) (string, error) {
	relation := contentObject(content, relatesTo)
	relType, _ := relation["rel_type"].(string)
	eventID, ok := relation["event_id"].(string)
	if !ReferenceRelation.Matches(relType) || !ok {
		return "", invalid(name, "Relationship must be a reference to an event")
	}
	return eventID, nil
}

func referenceWire(eventID string) map[string]any {
	return map[string]any{"rel_type": ReferenceRelation.Name(), "event_id": eventID}
}

// parsePoll dispatches poll types to their constructors. Other types
// are not polls and parse to nil.
func parsePoll(partial PartialEvent) (Event, error) {
	switch {
	case PollStartType.Matches(partial.Type):
		return nonNil(NewPollStartEvent(partial))
	case PollResponseType.Matches(partial.Type):
		return nonNil(NewPollResponseEvent(partial))
	case PollEndType.Matches(partial.Type):
		return nonNil(NewPollEndEvent(partial))
	}
	return nil, nil
}
