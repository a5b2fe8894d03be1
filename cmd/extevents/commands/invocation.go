// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package commands

import (
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/bureau-foundation/extevents/cmd/extevents/cli"
	"github.com/bureau-foundation/extevents/events"
	"github.com/bureau-foundation/extevents/extensible"
	"github.com/bureau-foundation/extevents/lib/codec"
	"github.com/bureau-foundation/extevents/lib/config"
)

// commonParams are the flags every command accepts. Empty values fall
// back to the configuration file.
type commonParams struct {
	ConfigPath string `flag:"config" desc:"path to extevents.yaml (default: $EXTEVENTS_CONFIG)"`
	LogLevel   string `flag:"log-level" desc:"debug, info, warn, or error"`
	Color      string `flag:"color" desc:"auto, always, or never"`
	Output     string `flag:"output,o" desc:"output format: text, json, or cbor"`
}

// inputParams select how event documents are read.
type inputParams struct {
	Format string `flag:"format" desc:"input format: auto, json, jsonc, or cbor" default:"auto"`
}

// invocation is the resolved state of one command run.
type invocation struct {
	streams Streams
	config  *config.Config
	logger  *slog.Logger
}

// open loads configuration, applies flag overrides and builds the
// logger.
func open(streams Streams, common commonParams, command string) (*invocation, error) {
	cfg, err := loadConfig(common.ConfigPath)
	if err != nil {
		return nil, err
	}
	if common.LogLevel != "" {
		cfg.LogLevel = common.LogLevel
	}
	if common.Color != "" {
		cfg.Output.Color = common.Color
	}
	if common.Output != "" {
		cfg.Output.Format = common.Output
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &invocation{
		streams: streams,
		config:  cfg,
		logger:  cli.NewCommandLogger(streams.Err, cfg.SlogLevel()).With("command", command),
	}, nil
}

func loadConfig(path string) (*config.Config, error) {
	switch {
	case path != "":
		return config.LoadFile(path)
	case os.Getenv(config.EnvironmentVariable) != "":
		return config.Load()
	default:
		return config.Default(), nil
	}
}

func (s *invocation) color() cli.ColorMode {
	return cli.ColorMode(s.config.Output.Color)
}

func (s *invocation) format() string {
	return s.config.Output.Format
}

// eventParser returns a room event parser with the configured detector
// order.
func (s *invocation) eventParser() (*events.EventParser, error) {
	parser := events.NewEventParser(events.WithLogger(s.logger))
	if order := s.config.Parser.UnknownOrder; len(order) > 0 {
		detectors, err := parser.UnknownParsersByName(order)
		if err != nil {
			return nil, fmt.Errorf("parser.unknown_order: %w", err)
		}
		parser.SetUnknownParsers(detectors)
	}
	return parser, nil
}

// interpreters returns a partial event interpreter set with the
// configured fallback order.
func (s *invocation) interpreters() (*extensible.Interpreters, error) {
	interpreters := extensible.NewInterpreters(extensible.WithLogger(s.logger))
	if order := s.config.Extensible.UnknownOrder; len(order) > 0 {
		if err := interpreters.SetUnknownInterpretOrderByName(order); err != nil {
			return nil, fmt.Errorf("extensible.unknown_order: %w", err)
		}
	}
	return interpreters, nil
}

// readObjects reads the event documents named by args: a single file,
// or standard input when args is empty or "-".
func (s *invocation) readObjects(args []string, input inputParams) ([]map[string]any, error) {
	if len(args) > 1 {
		return nil, fmt.Errorf("expected at most one input file, got %d", len(args))
	}
	path := "-"
	if len(args) == 1 {
		path = args[0]
	}

	format, err := codec.ParseFormat(input.Format)
	if err != nil {
		return nil, err
	}

	var data []byte
	if path == "-" {
		data, err = io.ReadAll(s.streams.In)
	} else {
		data, err = os.ReadFile(path)
		if format == codec.FormatAuto {
			format = codec.FormatForPath(path)
		}
	}
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", path, err)
	}

	objects, err := codec.DecodeObjects(data, format)
	if err != nil {
		return nil, fmt.Errorf("decoding %s: %w", path, err)
	}
	s.logger.Debug("read event documents", "input", path, "count", len(objects))
	return objects, nil
}

// writeStructured writes value as highlighted JSON or as CBOR,
// depending on the output format. Text output is written as JSON.
func (s *invocation) writeStructured(value any) error {
	if s.format() == "cbor" {
		data, err := codec.Marshal(value)
		if err != nil {
			return fmt.Errorf("encoding CBOR output: %w", err)
		}
		_, err = s.streams.Out.Write(data)
		return err
	}
	return cli.WriteJSON(s.streams.Out, value, s.color().Enabled(s.streams.Out))
}
