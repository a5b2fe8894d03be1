// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package events

import (
	"github.com/bureau-foundation/extevents/lib/block"
	"github.com/bureau-foundation/extevents/lib/lazy"
	"github.com/bureau-foundation/extevents/lib/namespace"
	"github.com/bureau-foundation/extevents/lib/validate"
)

var (
	// MessageType is the type of a plain extensible message.
	MessageType = namespace.MustNewUnstable("m.message", "org.matrix.msc1767.message")

	// EmoteType is the type of an emote. It shares its spellings with
	// the emote content block.
	EmoteType = block.EmoteType

	// NoticeType is the type of a notice. It shares its spellings with
	// the notice content block.
	NoticeType = block.NoticeType
)

var markupContentValidator = validate.MustCompile(block.MarkupContainerSchema)

// markupEvent is a room event whose content carries a markup block.
type markupEvent struct {
	*RoomEvent
	markup *lazy.Value[*block.MarkupBlock]
}

func newMarkupEvent(name string, raw map[string]any) (*markupEvent, error) {
	roomEvent, err := NewRoomEvent(name, raw, false)
	if err != nil {
		return nil, err
	}
	if diagnostics := markupContentValidator.Validate(roomEvent.Content()); len(diagnostics) > 0 {
		return nil, NewValidationError(name, diagnostics)
	}
	event := &markupEvent{RoomEvent: roomEvent}
	event.markup = lazy.New(func() *block.MarkupBlock {
		value, _ := block.MarkupType.FindIn(event.Content())
		markup, err := block.NewMarkupBlock(value)
		if err != nil {
			// Unreachable once the content validator has passed.
			return &block.MarkupBlock{}
		}
		return markup
	})
	return event, nil
}

// Markup returns the content's markup block, computed on first use.
func (e *markupEvent) Markup() *block.MarkupBlock {
	return e.markup.Get()
}

// Text returns the plain-text representation, if any.
func (e *markupEvent) Text() (string, bool) {
	return e.Markup().Text()
}

// HTML returns the HTML representation, if any.
func (e *markupEvent) HTML() (string, bool) {
	return e.Markup().HTML()
}

// MessageEvent is an extensible text message.
type MessageEvent struct {
	*markupEvent
}

// NewMessageEvent validates raw as a message event.
func NewMessageEvent(raw map[string]any) (*MessageEvent, error) {
	event, err := newMarkupEvent(MessageType.Stable(), raw)
	if err != nil {
		return nil, err
	}
	return &MessageEvent{event}, nil
}

// EmoteEvent is a message describing an action ("/me waves").
type EmoteEvent struct {
	*markupEvent
}

// NewEmoteEvent validates raw as an emote event.
func NewEmoteEvent(raw map[string]any) (*EmoteEvent, error) {
	event, err := newMarkupEvent(EmoteType.Stable(), raw)
	if err != nil {
		return nil, err
	}
	return &EmoteEvent{event}, nil
}

// NoticeEvent is an automated message, typically from a bot.
type NoticeEvent struct {
	*markupEvent
}

// NewNoticeEvent validates raw as a notice event.
func NewNoticeEvent(raw map[string]any) (*NoticeEvent, error) {
	event, err := newMarkupEvent(NoticeType.Stable(), raw)
	if err != nil {
		return nil, err
	}
	return &NoticeEvent{event}, nil
}

// detectMessage claims any event whose content carries markup.
func detectMessage(raw map[string]any) (Event, error) {
	content, _ := validate.AsObject(raw["content"])
	if _, ok := block.MarkupType.FindIn(content); !ok {
		return nil, nil
	}
	event, err := NewMessageEvent(retype(raw, MessageType.Name(), content))
	if err != nil {
		return nil, err
	}
	return event, nil
}

// detectEmote claims events whose content carries an emote block,
// using the block's object as the emote's content.
func detectEmote(raw map[string]any) (Event, error) {
	content, _ := validate.AsObject(raw["content"])
	value, ok := EmoteType.FindIn(content)
	if !ok {
		return nil, nil
	}
	emote, err := block.NewEmoteBlock(value)
	if err != nil {
		return nil, err
	}
	event, err := NewEmoteEvent(retype(raw, EmoteType.Name(), emote.Raw()))
	if err != nil {
		return nil, err
	}
	return event, nil
}

// detectNotice claims events whose content carries a notice block.
func detectNotice(raw map[string]any) (Event, error) {
	content, _ := validate.AsObject(raw["content"])
	value, ok := NoticeType.FindIn(content)
	if !ok {
		return nil, nil
	}
	notice, err := block.NewNoticeBlock(value)
	if err != nil {
		return nil, err
	}
	event, err := NewNoticeEvent(retype(raw, NoticeType.Name(), notice.Raw()))
	if err != nil {
		return nil, err
	}
	return event, nil
}
