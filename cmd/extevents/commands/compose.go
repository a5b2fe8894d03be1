// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package commands

import (
	"fmt"
	"strings"

	"github.com/spf13/pflag"

	"github.com/bureau-foundation/extevents/cmd/extevents/cli"
	"github.com/bureau-foundation/extevents/extensible"
	"github.com/bureau-foundation/extevents/lib/markdown"
)

type composeParams struct {
	commonParams
	Kind          string   `flag:"kind,k" desc:"message, notice, emote, topic, poll, or location" default:"message"`
	HTML          string   `flag:"html" desc:"HTML rendering of the text"`
	Markdown      bool     `flag:"markdown,m" desc:"render the text as markdown to produce the HTML rendering"`
	Answers       []string `flag:"answer,a" desc:"poll answer (repeatable)"`
	MaxSelections int      `flag:"max-selections" desc:"answers a poll voter may choose" default:"1"`
	Undisclosed   bool     `flag:"undisclosed" desc:"hide poll results until the poll ends"`
	GeoURI        string   `flag:"geo-uri" desc:"geo: URI of a location"`
	Description   string   `flag:"description" desc:"location description"`
	Asset         string   `flag:"asset" desc:"location asset type: m.self, m.self.live, or m.location" default:"m.self"`
	Timestamp     int64    `flag:"ts" desc:"location timestamp in milliseconds since the epoch"`
}

// composeKinds lists the kinds compose can build, in help order.
var composeKinds = []string{"message", "notice", "emote", "topic", "poll", "location"}

func composeCommand(streams Streams) *cli.Command {
	var params composeParams

	return &cli.Command{
		Name:    "compose",
		Summary: "Build an event and print its wire form",
		Description: `Build a new event from the command line and print it serialized.
The positional arguments are joined with spaces to form the text: the
message body, the topic, the poll question, or the location
description shown to clients without location support.`,
		Usage: "extevents compose [flags] <text>...",
		Examples: []cli.Example{
			{Description: "A formatted message", Command: "extevents compose --markdown 'hello **world**'"},
			{Description: "A poll", Command: "extevents compose -k poll -a red -a green 'Favourite colour?'"},
			{Description: "A location pin", Command: "extevents compose -k location --geo-uri geo:51.5,-0.1 --asset m.location 'Meet here'"},
		},
		Flags: func() *pflag.FlagSet {
			return cli.FlagsFromParams("compose", &params)
		},
		Run: func(args []string) error {
			run, err := open(streams, params.commonParams, "compose")
			if err != nil {
				return err
			}
			text := strings.Join(args, " ")
			if text == "" {
				return fmt.Errorf("compose requires text")
			}
			event, err := compose(params, text)
			if err != nil {
				return err
			}
			run.logger.Debug("composed event", "kind", params.Kind)
			return run.writeStructured(event.Serialize())
		},
	}
}

func compose(params composeParams, text string) (extensible.Event, error) {
	html := params.HTML
	if params.Markdown {
		if html != "" {
			return nil, fmt.Errorf("--html and --markdown are mutually exclusive")
		}
		if params.Kind == "message" {
			return extensible.MessageFromMarkdown(text)
		}
		rendered, err := markdown.Render(text)
		if err != nil {
			return nil, err
		}
		html = rendered
	}

	switch params.Kind {
	case "message":
		return extensible.MessageFrom(text, html), nil
	case "notice":
		return extensible.NoticeFrom(text, html), nil
	case "emote":
		return extensible.EmoteFrom(text, html), nil
	case "topic":
		return extensible.TopicFrom(text, html), nil
	case "poll":
		kind := extensible.PollKindDisclosed.Name()
		if params.Undisclosed {
			kind = extensible.PollKindUndisclosed.Name()
		}
		return extensible.PollStartFrom(text, params.Answers, kind, params.MaxSelections)
	case "location":
		return extensible.LocationFrom(text, params.GeoURI, params.Timestamp, params.Description,
			extensible.LocationAssetType(params.Asset))
	}
	return nil, fmt.Errorf("unknown kind %q (want one of %s)", params.Kind, strings.Join(composeKinds, ", "))
}
