// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

// Package markdown renders message bodies written in markdown to the
// HTML carried in an event's text/html representation.
package markdown

import (
	"bytes"
	"fmt"
	"html"
	"strings"
	"sync"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"
	goldmarkhtml "github.com/yuin/goldmark/renderer/html"
)

// rendererInstance is built once and shared. goldmark converters hold
// no per-call state.
var (
	rendererInstance goldmark.Markdown
	rendererOnce     sync.Once
)

func renderer() goldmark.Markdown {
	rendererOnce.Do(func() {
		rendererInstance = goldmark.New(
			goldmark.WithExtensions(
				extension.Strikethrough,
				extension.Table,
				extension.Linkify,
			),
			goldmark.WithRendererOptions(
				goldmarkhtml.WithHardWraps(),
			),
		)
	})
	return rendererInstance
}

// ToHTML renders source to HTML. Raw HTML in source is escaped, not
// passed through. Trailing whitespace is trimmed.
func ToHTML(source string) (string, error) {
	var buffer bytes.Buffer
	if err := renderer().Convert([]byte(source), &buffer); err != nil {
		return "", fmt.Errorf("rendering markdown: %w", err)
	}
	return strings.TrimSpace(buffer.String()), nil
}

// Render returns the HTML for source, or "" when the markdown carries no
// formatting (a single paragraph whose HTML is just the escaped text).
// Messages without formatting are sent as plain text only.
func Render(source string) (string, error) {
	rendered, err := ToHTML(source)
	if err != nil {
		return "", err
	}
	if rendered == "" {
		return "", nil
	}
	inner, isParagraph := strings.CutPrefix(rendered, "<p>")
	inner, closed := strings.CutSuffix(inner, "</p>")
	if isParagraph && closed && html.UnescapeString(inner) == strings.TrimSpace(source) {
		return "", nil
	}
	return rendered, nil
}
