// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package extensible

import (
	"fmt"
	"maps"

	"github.com/bureau-foundation/extevents/lib/block"
	"github.com/bureau-foundation/extevents/lib/markdown"
	"github.com/bureau-foundation/extevents/lib/namespace"
	"github.com/bureau-foundation/extevents/lib/validate"
)

// MessageEvent is text with optional alternate renderings.
type MessageEvent struct {
	wired

	// Text is the plain-text rendering.
	Text string

	// HTML is the HTML rendering, or "" when there is none.
	HTML string

	// Renderings lists every rendering. It may hold representations
	// beyond Text and HTML when the event carried them.
	Renderings []Rendering
}

// NewMessageEvent interprets partial as a message. The renderings come
// from m.message when present, otherwise from the m.text and m.html
// shorthand.
func NewMessageEvent(partial PartialEvent) (*MessageEvent, error) {
	return newMessageEvent(MessageType.Stable(), partial)
}

func newMessageEvent(name string, partial PartialEvent) (*MessageEvent, error) {
	event := &MessageEvent{wired: wired{wire: partial}}
	content := partial.Content

	if value, ok := MessageType.FindIn(content); ok {
		markup, err := block.NewMarkupBlock(value)
		if err != nil {
			return nil, invalid(name, "m.message contents must be an array")
		}
		text, ok := markup.Text()
		if !ok {
			return nil, invalid(name, "m.message is missing a plain text representation")
		}
		event.Text = text
		event.HTML, _ = markup.HTML()
		event.Renderings = markup.Representations()
		return event, nil
	}

	value, _ := TextType.FindIn(content)
	text, ok := value.(string)
	if !ok {
		return nil, invalid(name, "Missing textual representation for event")
	}
	event.Text = text
	event.Renderings = []Rendering{{Body: text, Mimetype: block.MimetypePlain}}
	if value, ok := HTMLType.FindIn(content); ok {
		if html, ok := value.(string); ok && html != "" {
			event.HTML = html
			event.Renderings = append(event.Renderings, Rendering{Body: html, Mimetype: block.MimetypeHTML})
		}
	}
	return event, nil
}

// IsEmote reports whether the event's type or content marks it as an
// emote. A message can be marked both emote and notice; renderers pick
// one.
func (e *MessageEvent) IsEmote() bool {
	return isMarked(e.wire, EmoteType)
}

// IsNotice reports whether the event's type or content marks it as a
// notice.
func (e *MessageEvent) IsNotice() bool {
	return isMarked(e.wire, NoticeType)
}

func isMarked(partial PartialEvent, marker namespace.Value) bool {
	if marker.Matches(partial.Type) {
		return true
	}
	_, ok := marker.FindIn(partial.Content)
	return ok
}

func (e *MessageEvent) IsEquivalentTo(eventType namespace.Value) bool {
	return IsEventTypeSame(eventType, MessageType)
}

// renderingContent returns only the namespaced rendering fields, using
// the m.text shorthand when the sole rendering is plain text.
func (e *MessageEvent) renderingContent() map[string]any {
	if len(e.Renderings) == 1 {
		only := e.Renderings[0]
		if only.Mimetype == "" || only.Mimetype == block.MimetypePlain {
			return map[string]any{TextType.Name(): only.Body}
		}
	}
	return map[string]any{MessageType.Name(): block.MarkupWire(e.Renderings...)}
}

// legacyContent returns the rendering fields plus the m.room.message
// fallback fields for the given msgtype.
func (e *MessageEvent) legacyContent(msgtype string) map[string]any {
	content := e.renderingContent()
	content["body"] = e.Text
	content["msgtype"] = msgtype
	if e.HTML != "" {
		content["format"] = HTMLFormat
		content["formatted_body"] = e.HTML
	}
	return content
}

func (e *MessageEvent) Serialize() PartialEvent {
	return PartialEvent{
		Type:    LegacyRoomMessage.Name(),
		Content: e.legacyContent(string(MsgTypeText)),
	}
}

// MessageFrom builds a message from text and optional HTML.
func MessageFrom(text, html string) *MessageEvent {
	event, err := NewMessageEvent(PartialEvent{
		Type:    MessageType.Name(),
		Content: shorthandContent(text, html),
	})
	if err != nil {
		panic(fmt.Sprintf("extensible: building message: %v", err))
	}
	return event
}

// MessageFromMarkdown builds a message whose HTML rendering is source
// rendered as markdown. Sources with no markup yield a text-only
// message.
func MessageFromMarkdown(source string) (*MessageEvent, error) {
	html, err := markdown.Render(source)
	if err != nil {
		return nil, fmt.Errorf("rendering markdown: %w", err)
	}
	return MessageFrom(source, html), nil
}

func shorthandContent(text, html string) map[string]any {
	content := map[string]any{TextType.Name(): text}
	if html != "" {
		content[HTMLType.Name()] = html
	}
	return content
}

// NoticeEvent is a message sent by an automated participant.
type NoticeEvent struct {
	*MessageEvent
}

// NewNoticeEvent interprets partial as a notice.
func NewNoticeEvent(partial PartialEvent) (*NoticeEvent, error) {
	message, err := newMessageEvent(NoticeType.Stable(), partial)
	if err != nil {
		return nil, err
	}
	return &NoticeEvent{message}, nil
}

func (*NoticeEvent) IsNotice() bool { return true }

func (e *NoticeEvent) IsEquivalentTo(eventType namespace.Value) bool {
	return IsEventTypeSame(eventType, NoticeType)
}

func (e *NoticeEvent) Serialize() PartialEvent {
	return PartialEvent{
		Type:    LegacyRoomMessage.Name(),
		Content: e.legacyContent(string(MsgTypeNotice)),
	}
}

// NoticeFrom builds a notice from text and optional HTML.
func NoticeFrom(text, html string) *NoticeEvent {
	event, err := NewNoticeEvent(PartialEvent{
		Type:    NoticeType.Name(),
		Content: shorthandContent(text, html),
	})
	if err != nil {
		panic(fmt.Sprintf("extensible: building notice: %v", err))
	}
	return event
}

// EmoteEvent is a message describing an action ("/me waves").
type EmoteEvent struct {
	*MessageEvent
}

// NewEmoteEvent interprets partial as an emote.
func NewEmoteEvent(partial PartialEvent) (*EmoteEvent, error) {
	message, err := newMessageEvent(EmoteType.Stable(), partial)
	if err != nil {
		return nil, err
	}
	return &EmoteEvent{message}, nil
}

func (*EmoteEvent) IsEmote() bool { return true }

func (e *EmoteEvent) IsEquivalentTo(eventType namespace.Value) bool {
	return IsEventTypeSame(eventType, EmoteType)
}

func (e *EmoteEvent) Serialize() PartialEvent {
	return PartialEvent{
		Type:    LegacyRoomMessage.Name(),
		Content: e.legacyContent(string(MsgTypeEmote)),
	}
}

// EmoteFrom builds an emote from text and optional HTML.
func EmoteFrom(text, html string) *EmoteEvent {
	event, err := NewEmoteEvent(PartialEvent{
		Type:    EmoteType.Name(),
		Content: shorthandContent(text, html),
	})
	if err != nil {
		panic(fmt.Sprintf("extensible: building emote: %v", err))
	}
	return event
}

// parseMessage dispatches message-family types to their constructors.
// Any other type is read as a plain message, which is how the unknown
// fallback reuses it.
func parseMessage(partial PartialEvent) (Event, error) {
	switch {
	case EmoteType.Matches(partial.Type):
		return nonNil(NewEmoteEvent(partial))
	case NoticeType.Matches(partial.Type):
		return nonNil(NewNoticeEvent(partial))
	default:
		return nonNil(NewMessageEvent(partial))
	}
}

// nonNil converts a typed constructor result into an Event without
// wrapping a nil pointer in a non-nil interface.
func nonNil[E Event](event E, err error) (Event, error) {
	if err != nil {
		return nil, err
	}
	return event, nil
}

// withContent returns partial with content replaced by a shallow copy
// of content overlaid with extra.
func withContent(partial PartialEvent, extra map[string]any) PartialEvent {
	content := maps.Clone(partial.Content)
	if content == nil {
		content = make(map[string]any, len(extra))
	}
	maps.Copy(content, extra)
	return PartialEvent{Type: partial.Type, Content: content}
}

// contentObject reads an object-valued field, accepting any map shape.
func contentObject(content map[string]any, key string) map[string]any {
	object, _ := validate.AsObject(content[key])
	return object
}
