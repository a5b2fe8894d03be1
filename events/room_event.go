// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package events

import (
	"maps"
	"math"

	"github.com/bureau-foundation/extevents/lib/validate"
)

const (
	undefinedMessage = "Event object must be defined. Use a null-capable parser instead of passing such a value."
	notStateMessage  = "This event is not allowed to be a state event and must be converted accordingly."
	onlyStateMessage = "This event is only allowed to be a state event and must be converted accordingly."
)

var roomEventValidator = validate.MustCompile(&validate.Schema{
	Type: validate.TypeObject,
	Properties: map[string]*validate.Schema{
		"room_id": {
			Type:    validate.TypeString,
			Pattern: `^!.+:.+$`,
			Message: "The room ID should be a string prefixed with `!` and contain a `:`, and is required",
		},
		"event_id": {
			Type:    validate.TypeString,
			Pattern: `^\$.+$`,
			Message: "The event ID should be a string prefixed with `$`, and is required",
		},
		"type": {
			Type:    validate.TypeString,
			Message: "The event type should be a string of zero or more characters, and is required",
		},
		"state_key": {
			Type:    validate.TypeString,
			Message: "The state key should be a string of zero or more characters",
		},
		"sender": {
			Type:    validate.TypeString,
			Pattern: `^@.+:.+$`,
			Message: "The sender should be a string prefixed with `@` and contain a `:`, and is required",
		},
		"content": {
			Type:    validate.TypeObject,
			Message: "The event content should at least be a defined object, and is required",
		},
		"origin_server_ts": {
			Type:    validate.TypeInteger,
			Message: "The event timestamp should be a number, and is required",
		},
		"unsigned": {
			Type:    validate.TypeObject,
			Message: "The event's unsigned content should be a defined object",
		},
	},
	Required: []string{"room_id", "event_id", "type", "sender", "content", "origin_server_ts"},
})

// Event is the interface satisfied by [*RoomEvent] and by every event
// type that embeds it.
type Event interface {
	// Name identifies the event type the wire object was parsed as.
	Name() string
	// Raw returns the wire object.
	Raw() map[string]any
	RoomID() string
	EventID() string
	// Type is the wire "type" field.
	Type() string
	Sender() string
	// StateKey returns the state key and whether one is present.
	StateKey() (string, bool)
	// Timestamp is origin_server_ts in milliseconds, clamped to [0, math.MaxInt64].
	Timestamp() int64
	Content() map[string]any
	// Unsigned returns the unsigned data, or nil when absent.
	Unsigned() map[string]any
}

// RoomEvent is a validated room event envelope.
type RoomEvent struct {
	name      string
	raw       map[string]any
	roomID    string
	eventID   string
	eventType string
	sender    string
	stateKey  string
	hasState  bool
	content   map[string]any
	timestamp int64
	unsigned  map[string]any
}

// NewRoomEvent validates raw as a room event. isState declares whether
// the event type is a state event; the presence of a state_key must
// agree with it.
func NewRoomEvent(name string, raw map[string]any, isState bool) (*RoomEvent, error) {
	if raw == nil {
		return nil, NewInvalidEventError(name, undefinedMessage)
	}
	if diagnostics := roomEventValidator.Validate(raw); len(diagnostics) > 0 {
		return nil, NewValidationError(name, diagnostics)
	}

	_, hasState := raw["state_key"]
	if hasState && !isState {
		return nil, NewInvalidEventError(name, notStateMessage)
	}
	if !hasState && isState {
		return nil, NewInvalidEventError(name, onlyStateMessage)
	}

	event := &RoomEvent{name: name, raw: raw, hasState: hasState}
	event.roomID, _ = validate.AsString(raw["room_id"])
	event.eventID, _ = validate.AsString(raw["event_id"])
	event.eventType, _ = validate.AsString(raw["type"])
	event.sender, _ = validate.AsString(raw["sender"])
	if hasState {
		event.stateKey, _ = validate.AsString(raw["state_key"])
	}
	event.content, _ = validate.AsObject(raw["content"])
	if timestamp, ok := validate.AsInteger(raw["origin_server_ts"]); ok {
		event.timestamp = max(timestamp, 0)
	} else if number, ok := validate.AsNumber(raw["origin_server_ts"]); ok && number > 0 {
		// Integral, but past the int64 range.
		event.timestamp = math.MaxInt64
	}
	if unsigned, present := raw["unsigned"]; present {
		event.unsigned, _ = validate.AsObject(unsigned)
	}
	return event, nil
}

func (e *RoomEvent) Name() string            { return e.name }
func (e *RoomEvent) Raw() map[string]any     { return e.raw }
func (e *RoomEvent) RoomID() string          { return e.roomID }
func (e *RoomEvent) EventID() string         { return e.eventID }
func (e *RoomEvent) Type() string            { return e.eventType }
func (e *RoomEvent) Sender() string          { return e.sender }
func (e *RoomEvent) Timestamp() int64        { return e.timestamp }
func (e *RoomEvent) Content() map[string]any { return e.content }
func (e *RoomEvent) Unsigned() map[string]any {
	return e.unsigned
}

func (e *RoomEvent) StateKey() (string, bool) {
	return e.stateKey, e.hasState
}

// retype returns a shallow copy of raw with its type and content
// replaced. Detectors use it to hand a reinterpreted event to a typed
// constructor without modifying the caller's object.
func retype(raw map[string]any, eventType string, content map[string]any) map[string]any {
	copied := maps.Clone(raw)
	if copied == nil {
		copied = make(map[string]any)
	}
	copied["type"] = eventType
	copied["content"] = content
	return copied
}
