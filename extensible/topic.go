// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package extensible

import (
	"fmt"

	"github.com/bureau-foundation/extevents/lib/block"
	"github.com/bureau-foundation/extevents/lib/namespace"
)

// TopicType carries a room topic's renderings.
var TopicType = namespace.MustNewUnstable("m.topic", "org.matrix.msc3765.topic")

// TopicEvent is a room topic with optional alternate renderings.
type TopicEvent struct {
	wired

	// Text is the plain-text rendering.
	Text string

	// HTML is the HTML rendering, or "" when there is none.
	HTML string

	Renderings []Rendering
}

// NewTopicEvent interprets partial as a topic.
func NewTopicEvent(partial PartialEvent) (*TopicEvent, error) {
	name := TopicType.Stable()
	value, ok := TopicType.FindIn(partial.Content)
	if !ok {
		return nil, invalid(name, "Missing textual representation for event")
	}
	markup, err := block.NewMarkupBlock(value)
	if err != nil {
		return nil, invalid(name, "m.topic contents must be an array")
	}
	text, ok := markup.Text()
	if !ok {
		return nil, invalid(name, "m.topic is missing a plain text representation")
	}
	event := &TopicEvent{
		wired:      wired{wire: partial},
		Text:       text,
		Renderings: markup.Representations(),
	}
	event.HTML, _ = markup.HTML()
	return event, nil
}

func (e *TopicEvent) IsEquivalentTo(eventType namespace.Value) bool {
	return IsEventTypeSame(eventType, TopicType)
}

func (e *TopicEvent) Serialize() PartialEvent {
	return PartialEvent{
		Type: LegacyRoomTopic.Name(),
		Content: map[string]any{
			"topic":          e.Text,
			TopicType.Name(): block.MarkupWire(e.Renderings...),
		},
	}
}

// TopicFrom builds a topic from text and optional HTML.
func TopicFrom(text, html string) *TopicEvent {
	event, err := NewTopicEvent(PartialEvent{
		Type:    TopicType.Name(),
		Content: map[string]any{TopicType.Name(): topicWire(text, html)},
	})
	if err != nil {
		panic(fmt.Sprintf("extensible: building topic: %v", err))
	}
	return event
}

func topicWire(text, html string) []any {
	renderings := []Rendering{{Body: text, Mimetype: block.MimetypePlain}}
	if html != "" {
		renderings = append(renderings, Rendering{Body: html, Mimetype: block.MimetypeHTML})
	}
	return block.MarkupWire(renderings...)
}
