// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package commands

import (
	"fmt"
	"strings"

	"github.com/spf13/pflag"

	"github.com/bureau-foundation/extevents/cmd/extevents/cli"
	"github.com/bureau-foundation/extevents/lib/namespace"
)

type typesParams struct {
	commonParams
}

type detectorEntry struct {
	Name     string `json:"name"`
	Priority string `json:"priority"`
}

type typeEntry struct {
	Stable   string `json:"stable,omitempty"`
	Unstable string `json:"unstable,omitempty"`
}

type typesListing struct {
	RoomEventTypes     []string        `json:"room_event_types"`
	Detectors          []detectorEntry `json:"detectors"`
	ExtensibleTypes    []typeEntry     `json:"extensible_types"`
	ExtensibleFallback []typeEntry     `json:"extensible_fallback"`
}

func typesCommand(streams Streams) *cli.Command {
	var params typesParams

	return &cli.Command{
		Name:    "types",
		Summary: "List known event types and fallback orders",
		Description: `List the event types each pipeline knows, and the order in which
events of unknown type are tried. Orders reflect the configuration.`,
		Usage: "extevents types [flags]",
		Flags: func() *pflag.FlagSet {
			return cli.FlagsFromParams("types", &params)
		},
		Run: func(args []string) error {
			if len(args) > 0 {
				return fmt.Errorf("unexpected argument %q", args[0])
			}
			run, err := open(streams, params.commonParams, "types")
			if err != nil {
				return err
			}
			listing, err := buildListing(run)
			if err != nil {
				return err
			}
			if run.format() != "text" {
				return run.writeStructured(listing)
			}
			return writeListing(run, listing)
		},
	}
}

func buildListing(run *invocation) (*typesListing, error) {
	parser, err := run.eventParser()
	if err != nil {
		return nil, err
	}
	interpreters, err := run.interpreters()
	if err != nil {
		return nil, err
	}

	listing := &typesListing{RoomEventTypes: parser.KnownEventTypes()}
	for _, detector := range parser.UnknownEventParsers() {
		listing.Detectors = append(listing.Detectors, detectorEntry{
			Name:     detector.Name,
			Priority: detector.Priority.String(),
		})
	}
	for _, eventType := range interpreters.RegisteredTypes() {
		listing.ExtensibleTypes = append(listing.ExtensibleTypes, entryOf(eventType))
	}
	for _, eventType := range interpreters.UnknownInterpretOrder() {
		listing.ExtensibleFallback = append(listing.ExtensibleFallback, entryOf(eventType))
	}
	return listing, nil
}

func entryOf(value namespace.Value) typeEntry {
	return typeEntry{Stable: value.Stable(), Unstable: value.Unstable()}
}

func (e typeEntry) String() string {
	switch {
	case e.Stable == "":
		return e.Unstable
	case e.Unstable == "":
		return e.Stable
	}
	return e.Stable + " / " + e.Unstable
}

func writeListing(run *invocation, listing *typesListing) error {
	renderer := run.color().Renderer(run.streams.Out)
	heading := renderer.NewStyle().Foreground(colorHeading).Bold(true)
	accent := renderer.NewStyle().Foreground(colorAccent)
	dim := renderer.NewStyle().Faint(true)

	var out strings.Builder
	section := func(title string) {
		if out.Len() > 0 {
			out.WriteString("\n")
		}
		out.WriteString(heading.Render(title) + "\n")
	}

	section("Room event types")
	for _, name := range listing.RoomEventTypes {
		fmt.Fprintf(&out, "  %s\n", name)
	}

	section("Room event detectors")
	for i, detector := range listing.Detectors {
		fmt.Fprintf(&out, "  %d. %s %s\n", i+1, accent.Render(detector.Name), dim.Render("("+detector.Priority+")"))
	}

	section("Extensible event types")
	for _, entry := range listing.ExtensibleTypes {
		fmt.Fprintf(&out, "  %s\n", entry)
	}

	section("Extensible fallback order")
	if len(listing.ExtensibleFallback) == 0 {
		fmt.Fprintf(&out, "  %s\n", dim.Render("(none)"))
	}
	for i, entry := range listing.ExtensibleFallback {
		fmt.Fprintf(&out, "  %d. %s\n", i+1, accent.Render(entry.String()))
	}

	_, err := fmt.Fprint(run.streams.Out, out.String())
	return err
}
