// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"reflect"

	"github.com/alecthomas/chroma/v2/quick"
	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"
)

// ColorMode controls terminal styling: "auto", "always" or "never".
type ColorMode string

const (
	ColorAuto   ColorMode = "auto"
	ColorAlways ColorMode = "always"
	ColorNever  ColorMode = "never"
)

// Enabled reports whether output written to w should be styled.
func (m ColorMode) Enabled(w io.Writer) bool {
	switch m {
	case ColorAlways:
		return true
	case ColorNever:
		return false
	default:
		return IsTerminal(w)
	}
}

// Renderer returns a lipgloss renderer for w whose color profile
// follows the mode.
func (m ColorMode) Renderer(w io.Writer) *lipgloss.Renderer {
	renderer := lipgloss.NewRenderer(w)
	switch {
	case !m.Enabled(w):
		renderer.SetColorProfile(termenv.Ascii)
	case m == ColorAlways:
		renderer.SetColorProfile(termenv.ANSI256)
	}
	return renderer
}

// WriteJSON writes value as indented JSON to w. When color is set the
// document is syntax highlighted for a 256-color terminal. Nil slices
// are written as [] rather than null.
func WriteJSON(w io.Writer, value any, color bool) error {
	data, err := json.MarshalIndent(normalizeNilSlice(value), "", "  ")
	if err != nil {
		return fmt.Errorf("encoding JSON output: %w", err)
	}
	data = append(data, '\n')
	if !color {
		_, err := w.Write(data)
		return err
	}
	if err := quick.Highlight(w, string(data), "json", "terminal256", "monokai"); err != nil {
		return fmt.Errorf("highlighting JSON output: %w", err)
	}
	return nil
}

func normalizeNilSlice(value any) any {
	v := reflect.ValueOf(value)
	if v.Kind() == reflect.Slice && v.IsNil() {
		return reflect.MakeSlice(v.Type(), 0, 0).Interface()
	}
	return value
}
