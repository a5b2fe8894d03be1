// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package commands

import (
	"fmt"
	"strings"
	"text/tabwriter"

	"github.com/spf13/pflag"

	"github.com/bureau-foundation/extevents/cmd/extevents/cli"
	"github.com/bureau-foundation/extevents/events"
)

type parseParams struct {
	commonParams
	inputParams
}

// Parse outcomes.
const (
	statusParsed       = "parsed"
	statusUnrecognized = "unrecognized"
	statusInvalid      = "invalid"
	statusError        = "error"
)

type parseResult struct {
	Index   int    `json:"index"`
	Status  string `json:"status"`
	Type    string `json:"type,omitempty"`
	Name    string `json:"name,omitempty"`
	EventID string `json:"event_id,omitempty"`
	Sender  string `json:"sender,omitempty"`
	Text    string `json:"text,omitempty"`
	HTML    string `json:"html,omitempty"`
	Error   string `json:"error,omitempty"`
}

// textual is implemented by events carrying a markup block.
type textual interface {
	Text() (string, bool)
	HTML() (string, bool)
}

func parseCommand(streams Streams) *cli.Command {
	var params parseParams

	return &cli.Command{
		Name:    "parse",
		Summary: "Parse room events into typed events",
		Description: `Parse full room events (with room_id, event_id, sender and
origin_server_ts) and report what each one was parsed as.

Known event types are parsed by their registered factory. Events of
unknown type are offered to the content detectors in fallback order,
which parser.unknown_order in the configuration can override. The
command exits 1 if any event is invalid.`,
		Usage: "extevents parse [flags] [file]",
		Examples: []cli.Example{
			{Description: "Summarize a timeline dump", Command: "extevents parse timeline.json"},
			{Description: "Parse a compressed CBOR dump as JSON", Command: "extevents parse -o json timeline.cbor.zst"},
		},
		Flags: func() *pflag.FlagSet {
			return cli.FlagsFromParams("parse", &params)
		},
		Run: func(args []string) error {
			run, err := open(streams, params.commonParams, "parse")
			if err != nil {
				return err
			}
			parser, err := run.eventParser()
			if err != nil {
				return err
			}
			objects, err := run.readObjects(args, params.inputParams)
			if err != nil {
				return err
			}

			results := make([]parseResult, len(objects))
			failed := 0
			for i, raw := range objects {
				results[i] = parseOne(parser, i, raw)
				if status := results[i].Status; status == statusInvalid || status == statusError {
					failed++
					run.logger.Warn("event not parsed",
						"index", i,
						"type", results[i].Type,
						"error", results[i].Error,
					)
				}
			}

			if run.format() == "text" {
				if err := writeParseSummary(run, results); err != nil {
					return err
				}
			} else if err := run.writeStructured(results); err != nil {
				return err
			}

			if failed > 0 {
				return &cli.ExitError{Code: 1}
			}
			return nil
		},
	}
}

func parseOne(parser *events.EventParser, index int, raw map[string]any) parseResult {
	result := parseResult{Index: index}
	result.Type, _ = raw["type"].(string)

	event, err := parser.Parse(raw)
	switch {
	case err != nil && events.IsInvalid(err):
		result.Status = statusInvalid
		result.Error = err.Error()
	case err != nil:
		result.Status = statusError
		result.Error = err.Error()
	case event == nil:
		result.Status = statusUnrecognized
	default:
		result.Status = statusParsed
		result.Name = event.Name()
		result.EventID = event.EventID()
		result.Sender = event.Sender()
		if markup, ok := event.(textual); ok {
			result.Text, _ = markup.Text()
			result.HTML, _ = markup.HTML()
		}
	}
	return result
}

func writeParseSummary(run *invocation, results []parseResult) error {
	out := run.streams.Out
	writer := tabwriter.NewWriter(out, 2, 0, 2, ' ', 0)
	fmt.Fprintln(writer, "INDEX\tSTATUS\tNAME\tEVENT\tDETAIL")
	counts := make(map[string]int)
	for _, result := range results {
		counts[result.Status]++
		detail := result.Text
		if result.Error != "" {
			detail = result.Error
		}
		name := result.Name
		if name == "" {
			name = result.Type
		}
		fmt.Fprintf(writer, "%d\t%s\t%s\t%s\t%s\n",
			result.Index, result.Status, name, result.EventID, summarize(detail))
	}
	if err := writer.Flush(); err != nil {
		return err
	}

	renderer := run.color().Renderer(out)
	good := renderer.NewStyle().Foreground(colorSuccess).Bold(true)
	bad := renderer.NewStyle().Foreground(colorFailure).Bold(true)
	dim := renderer.NewStyle().Faint(true)

	failed := counts[statusInvalid] + counts[statusError]
	failedStyle := dim
	if failed > 0 {
		failedStyle = bad
	}
	_, err := fmt.Fprintf(out, "\n%s  %s  %s\n",
		good.Render(fmt.Sprintf("%d parsed", counts[statusParsed])),
		dim.Render(fmt.Sprintf("%d unrecognized", counts[statusUnrecognized])),
		failedStyle.Render(fmt.Sprintf("%d failed", failed)),
	)
	return err
}

// summarize reduces detail to its first line, at most 60 characters.
func summarize(detail string) string {
	line, _, truncated := strings.Cut(detail, "\n")
	if runes := []rune(line); len(runes) > 60 {
		line = string(runes[:59])
		truncated = true
	}
	if truncated {
		line += "…"
	}
	return line
}
