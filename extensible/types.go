// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package extensible

import (
	"github.com/bureau-foundation/extevents/events"
	"github.com/bureau-foundation/extevents/lib/block"
	"github.com/bureau-foundation/extevents/lib/namespace"
)

var (
	// TextType is the plain-text shorthand for a single rendering.
	TextType = namespace.MustNewUnstable("m.text", "org.matrix.msc1767.text")

	// HTMLType carries an HTML rendering alongside TextType.
	HTMLType = namespace.MustNewUnstable("m.html", "org.matrix.msc1767.html")

	// MessageType carries an array of renderings.
	MessageType = events.MessageType

	// EmoteType marks an emote, as an event type or a content marker.
	EmoteType = block.EmoteType

	// NoticeType marks a notice, as an event type or a content marker.
	NoticeType = block.NoticeType

	// ReferenceRelation is the rel_type of an m.reference relationship.
	ReferenceRelation = namespace.MustNew("m.reference", "")

	// LegacyRoomMessage is the pre-extensible message event type.
	LegacyRoomMessage = namespace.MustNew("m.room.message", "")

	// LegacyRoomTopic is the pre-extensible topic state event type.
	LegacyRoomTopic = namespace.MustNew("m.room.topic", "")
)

// HTMLFormat is the legacy format value for formatted_body.
const HTMLFormat = "org.matrix.custom.html"

// Rendering is one representation of a message body.
type Rendering = block.Representation

// PartialEvent is an event reduced to its type and content.
type PartialEvent struct {
	Type    string         `json:"type"`
	Content map[string]any `json:"content"`
}

// Event is implemented by every interpreted event.
type Event interface {
	// WireFormat returns the partial event the value was built from.
	WireFormat() PartialEvent

	// Serialize returns the event's preferred wire form, including
	// legacy fallback fields.
	Serialize() PartialEvent

	// IsEquivalentTo reports whether the event is of the given type.
	IsEquivalentTo(eventType namespace.Value) bool
}

// wired stores the partial event an interpreted value came from.
type wired struct {
	wire PartialEvent
}

func (w wired) WireFormat() PartialEvent { return w.wire }

// IsEventTypeSame reports whether given and expected share a spelling.
func IsEventTypeSame(given, expected namespace.Value) bool {
	return expected.Matches(given.Name()) || expected.Matches(given.AltName())
}

// EventTypeOf wraps a wire type string for comparison with
// [IsEventTypeSame]. The empty string yields a value that matches
// nothing.
func EventTypeOf(eventType string) namespace.Value {
	value, _ := namespace.New(eventType, "")
	return value
}

// invalid returns the validation error shared with the events package.
func invalid(event, message string) error {
	return events.NewInvalidEventError(event, message)
}
