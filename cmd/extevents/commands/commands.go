// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

// Package commands builds the extevents command tree.
package commands

import (
	"io"
	"os"

	"github.com/bureau-foundation/extevents/cmd/extevents/cli"
)

// Streams are the standard streams a command run reads and writes.
type Streams struct {
	In  io.Reader
	Out io.Writer
	Err io.Writer
}

// StandardStreams returns the process's standard streams.
func StandardStreams() Streams {
	return Streams{In: os.Stdin, Out: os.Stdout, Err: os.Stderr}
}

// Root builds the extevents command tree bound to streams.
func Root(streams Streams) *cli.Command {
	return &cli.Command{
		Name: "extevents",
		Description: `extevents: inspect and normalize Matrix extensible events.

Parse room events into typed events, interpret partial events and
legacy m.room.message content through the extensible event
interpreters, and compose new events in their canonical wire form.`,
		HelpOutput: streams.Err,
		Subcommands: []*cli.Command{
			parseCommand(streams),
			convertCommand(streams),
			composeCommand(streams),
			typesCommand(streams),
		},
	}
}
