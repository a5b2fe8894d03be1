// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package block

import (
	"github.com/bureau-foundation/extevents/lib/lazy"
	"github.com/bureau-foundation/extevents/lib/namespace"
	"github.com/bureau-foundation/extevents/lib/validate"
)

var (
	// EmoteType marks message content as an emote.
	EmoteType = namespace.MustNewUnstable("m.emote", "org.matrix.msc1767.emote")

	// NoticeType marks message content as a notice.
	NoticeType = namespace.MustNewUnstable("m.notice", "org.matrix.msc1767.notice")
)

// MarkupContainerSchema accepts an object carrying a markup array
// under either spelling of [MarkupType].
var MarkupContainerSchema = validate.MustEitherAnd(MarkupType, MarkupSchema)

var markupContainerValidator = validate.MustCompile(MarkupContainerSchema)

// markupContainer is an object block holding a markup array.
type markupContainer struct {
	ObjectBlock
	markup *lazy.Value[*MarkupBlock]
}

func newMarkupContainer(name string, raw any) (*markupContainer, error) {
	object, err := newObjectBlock(name, raw, markupContainerValidator)
	if err != nil {
		return nil, err
	}
	container := &markupContainer{ObjectBlock: *object}
	container.markup = lazy.New(func() *MarkupBlock {
		value, _ := MarkupType.FindIn(container.raw)
		items, _ := validate.AsArray(value)
		return newMarkupBlock(items)
	})
	return container, nil
}

func (*markupContainer) Kind() Kind { return KindComposite }

// Markup returns the contained markup block. It is computed on first
// use.
func (c *markupContainer) Markup() *MarkupBlock {
	return c.markup.Get()
}

// EmoteBlock wraps the markup of an emote.
type EmoteBlock struct {
	*markupContainer
}

// NewEmoteBlock validates raw as emote content.
func NewEmoteBlock(raw any) (*EmoteBlock, error) {
	container, err := newMarkupContainer(EmoteType.Stable(), raw)
	if err != nil {
		return nil, err
	}
	return &EmoteBlock{container}, nil
}

// NoticeBlock wraps the markup of a notice.
type NoticeBlock struct {
	*markupContainer
}

// NewNoticeBlock validates raw as notice content.
func NewNoticeBlock(raw any) (*NoticeBlock, error) {
	container, err := newMarkupContainer(NoticeType.Stable(), raw)
	if err != nil {
		return nil, err
	}
	return &NoticeBlock{container}, nil
}
