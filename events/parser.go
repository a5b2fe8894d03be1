// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package events

import (
	"fmt"
	"log/slog"
	"maps"
	"slices"

	"github.com/bureau-foundation/extevents/lib/namespace"
)

// EventParser interprets wire objects as typed events. Each parser
// starts from a copy of the process-wide registry; later changes to a
// parser affect only that parser.
//
// An EventParser is not safe for concurrent mutation. Parse may be
// called concurrently once configuration is complete.
type EventParser struct {
	known    map[string]Factory
	defaults []UnknownParser
	unknown  []UnknownParser
	logger   *slog.Logger
}

// Option configures an [EventParser].
type Option func(*EventParser)

// WithLogger sets the logger used to report rejected detector
// hypotheses at debug level. The default discards.
func WithLogger(logger *slog.Logger) Option {
	return func(parser *EventParser) {
		parser.logger = logger
	}
}

// NewEventParser returns a parser seeded from the process-wide
// registry.
func NewEventParser(options ...Option) *EventParser {
	defaults := internal.unknownOrder()
	parser := &EventParser{
		known:    maps.Clone(internal.known),
		defaults: defaults,
		unknown:  slices.Clone(defaults),
		logger:   slog.New(slog.DiscardHandler),
	}
	for _, option := range options {
		option(parser)
	}
	return parser
}

// KnownEventTypes returns every wire type string with a factory, sorted.
func (p *EventParser) KnownEventTypes() []string {
	return slices.Sorted(maps.Keys(p.known))
}

// DefaultUnknownEventParsers returns the detector order this parser was
// constructed with.
func (p *EventParser) DefaultUnknownEventParsers() []UnknownParser {
	return slices.Clone(p.defaults)
}

// UnknownEventParsers returns the current detector order.
func (p *EventParser) UnknownEventParsers() []UnknownParser {
	return slices.Clone(p.unknown)
}

// AddKnownType registers factory for both spellings of eventType on this
// parser only.
func (p *EventParser) AddKnownType(eventType namespace.Value, factory Factory) {
	for _, name := range eventType.Names() {
		p.known[name] = factory
	}
}

// SetUnknownParsers replaces the detector order. The list is copied.
func (p *EventParser) SetUnknownParsers(parsers []UnknownParser) {
	p.unknown = slices.Clone(parsers)
}

// UnknownParsersByName resolves detector names against the default
// order, preserving the order of names.
func (p *EventParser) UnknownParsersByName(names []string) ([]UnknownParser, error) {
	resolved := make([]UnknownParser, 0, len(names))
	for _, name := range names {
		index := slices.IndexFunc(p.defaults, func(parser UnknownParser) bool {
			return parser.Name == name
		})
		if index < 0 {
			return nil, fmt.Errorf("unknown event detector %q", name)
		}
		resolved = append(resolved, p.defaults[index])
	}
	return resolved, nil
}

// Parse interprets raw. The outcomes are:
//
//   - (event, nil): raw was parsed, either by the factory for its type or
//     by the first detector that claimed it.
//   - (nil, err): the factory for raw's type failed, or a detector failed
//     with an error outside the validation family. The error is returned
//     as produced and no further detector runs.
//   - (nil, nil): raw's type is unknown and no detector claimed it.
func (p *EventParser) Parse(raw map[string]any) (Event, error) {
	eventType, _ := raw["type"].(string)
	if factory, ok := p.known[eventType]; ok {
		return factory(raw)
	}

	for _, parser := range p.unknown {
		event, err := parser.Detect(raw)
		if err != nil {
			if IsInvalid(err) {
				p.logger.Debug("detector rejected event",
					"detector", parser.Name,
					"type", eventType,
					"error", err,
				)
				continue
			}
			return nil, err
		}
		if event != nil {
			return event, nil
		}
	}
	return nil, nil
}
