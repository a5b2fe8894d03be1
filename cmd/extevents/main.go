// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

// extevents parses, normalizes and composes Matrix extensible events.
package main

import (
	"fmt"
	"os"

	"github.com/bureau-foundation/extevents/cmd/extevents/commands"
)

func main() {
	if err := run(); err != nil {
		// Commands that have already reported their failures return an
		// error carrying the exit code; don't add an "error:" line.
		if coder, ok := err.(interface{ ExitCode() int }); ok {
			os.Exit(coder.ExitCode())
		}
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	return commands.Root(commands.StandardStreams()).Execute(os.Args[1:])
}
