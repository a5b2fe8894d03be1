// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package commands

import "github.com/charmbracelet/lipgloss"

// ANSI palette entries for styled output.
var (
	colorSuccess = lipgloss.Color("2")
	colorFailure = lipgloss.Color("1")
	colorHeading = lipgloss.Color("12")
	colorAccent  = lipgloss.Color("3")
)
