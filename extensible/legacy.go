// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package extensible

// LegacyMsgType is an m.room.message msgtype value.
type LegacyMsgType string

const (
	MsgTypeText     LegacyMsgType = "m.text"
	MsgTypeNotice   LegacyMsgType = "m.notice"
	MsgTypeEmote    LegacyMsgType = "m.emote"
	MsgTypeLocation LegacyMsgType = "m.location"
)

// IsEventLike reports whether partial is close enough to msgtype to be
// rendered as one: either its type is the extensible equivalent, or it
// is an m.room.message with that msgtype.
func IsEventLike(partial PartialEvent, msgtype LegacyMsgType) bool {
	legacy := LegacyRoomMessage.Matches(partial.Type)
	declared, _ := partial.Content["msgtype"].(string)
	switch msgtype {
	case MsgTypeText:
		return MessageType.Matches(partial.Type) || (legacy && declared == string(MsgTypeText))
	case MsgTypeNotice:
		return NoticeType.Matches(partial.Type) || (legacy && declared == string(MsgTypeNotice))
	case MsgTypeEmote:
		return EmoteType.Matches(partial.Type) || (legacy && declared == string(MsgTypeEmote))
	case MsgTypeLocation:
		return LocationType.Matches(partial.Type) || (legacy && LocationType.Matches(declared))
	}
	return false
}

// parseLegacyMessage converts an m.room.message event. Namespaced
// renderings in the content take precedence over the flat body fields.
// Msgtypes with no extensible equivalent parse to nil.
func parseLegacyMessage(partial PartialEvent) (Event, error) {
	content := partial.Content
	if content == nil {
		return nil, nil
	}
	msgtype, _ := content["msgtype"].(string)
	if LocationType.Matches(msgtype) {
		return nonNil(NewLocationEvent(partial))
	}

	_, hasMessage := MessageType.FindIn(content)
	_, hasText := TextType.FindIn(content)
	if !hasMessage && !hasText {
		shorthand := make(map[string]any, 2)
		if body, ok := content["body"].(string); ok {
			shorthand[TextType.Name()] = body
		}
		if format, _ := content["format"].(string); format == HTMLFormat {
			if html, ok := content["formatted_body"].(string); ok {
				shorthand[HTMLType.Name()] = html
			}
		}
		partial = withContent(partial, shorthand)
	}

	switch LegacyMsgType(msgtype) {
	case MsgTypeNotice:
		return nonNil(NewNoticeEvent(partial))
	case MsgTypeEmote:
		return nonNil(NewEmoteEvent(partial))
	case MsgTypeText:
		return nonNil(NewMessageEvent(partial))
	}
	if hasMessage || hasText {
		return nonNil(NewMessageEvent(partial))
	}
	return nil, nil
}

// parseLegacyTopic converts an m.room.topic state event. An m.topic
// block in the content wins over the legacy topic string.
func parseLegacyTopic(partial PartialEvent) (Event, error) {
	if _, ok := TopicType.FindIn(partial.Content); ok {
		return nonNil(NewTopicEvent(partial))
	}
	topic, ok := partial.Content["topic"].(string)
	if !ok {
		return nil, invalid(TopicType.Stable(), "Missing textual representation for event")
	}
	return nonNil(NewTopicEvent(withContent(partial, map[string]any{
		TopicType.Name(): topicWire(topic, ""),
	})))
}
