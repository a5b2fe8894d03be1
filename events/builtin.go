// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package events

func init() {
	AddInternalKnownEventParser(MessageType, factoryOf(NewMessageEvent))
	AddInternalKnownEventParser(EmoteType, factoryOf(NewEmoteEvent))
	AddInternalKnownEventParser(NoticeType, factoryOf(NewNoticeEvent))

	AddInternalUnknownEventParser(RichTextOrFile, "notice", detectNotice)
	AddInternalUnknownEventParser(RichTextOrFile, "emote", detectEmote)
	AddInternalUnknownEventParser(TextOnly, "message", detectMessage)
}
