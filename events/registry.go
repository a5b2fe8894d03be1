// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package events

import (
	"cmp"
	"slices"

	"github.com/bureau-foundation/extevents/lib/namespace"
)

// Priority orders unknown-event detectors. Lower buckets are tried
// first, so the most specific interpretations run before the generic
// text fallback.
type Priority int

const (
	OtherMedia Priority = iota
	ImageMedia
	RichTextOrFile
	TextOnly
)

func (p Priority) String() string {
	switch p {
	case OtherMedia:
		return "other-media"
	case ImageMedia:
		return "image-media"
	case RichTextOrFile:
		return "rich-text-or-file"
	case TextOnly:
		return "text-only"
	default:
		return "unknown"
	}
}

// Factory constructs a typed event from a wire object whose type is
// known. Validation failures are returned as errors.
type Factory func(raw map[string]any) (Event, error)

// DetectFunc tests whether a wire object of unknown type can be
// interpreted as a particular event type. It has three outcomes:
//
//   - (event, nil): the object is claimed.
//   - (nil, nil): the object does not look like this type.
//   - (nil, err): the object looked like this type but failed to
//     construct. Errors for which [IsInvalid] holds are treated as a
//     rejected hypothesis; any other error aborts parsing.
type DetectFunc func(raw map[string]any) (Event, error)

// UnknownParser is a named detector.
type UnknownParser struct {
	// Name identifies the detector in configuration and logs.
	Name     string
	Priority Priority
	Detect   DetectFunc
}

// factoryOf adapts a typed constructor to a [Factory], taking care not
// to wrap a nil pointer in a non-nil interface.
func factoryOf[E Event](construct func(map[string]any) (E, error)) Factory {
	return func(raw map[string]any) (Event, error) {
		event, err := construct(raw)
		if err != nil {
			return nil, err
		}
		return event, nil
	}
}

type registeredParser struct {
	parser   UnknownParser
	sequence int
}

// registry holds the process-wide known types and detector order. It is
// written only from init functions and read by [NewEventParser].
type registry struct {
	known    map[string]Factory
	unknown  []registeredParser
	sequence int
}

var internal = &registry{known: make(map[string]Factory)}

func (r *registry) addKnown(eventType namespace.Value, factory Factory) {
	for _, name := range eventType.Names() {
		r.known[name] = factory
	}
}

// addUnknown inserts parser after every detector with a lower or equal
// priority, keeping the list sorted by (priority, registration order).
func (r *registry) addUnknown(parser UnknownParser) {
	entry := registeredParser{parser: parser, sequence: r.sequence}
	r.sequence++
	index, _ := slices.BinarySearchFunc(r.unknown, entry, func(a, b registeredParser) int {
		return cmp.Or(cmp.Compare(a.parser.Priority, b.parser.Priority), cmp.Compare(a.sequence, b.sequence))
	})
	r.unknown = slices.Insert(r.unknown, index, entry)
}

func (r *registry) unknownOrder() []UnknownParser {
	order := make([]UnknownParser, len(r.unknown))
	for i, entry := range r.unknown {
		order[i] = entry.parser
	}
	return order
}

// AddInternalKnownEventParser registers factory for both spellings of
// eventType in the process-wide registry. Call only from init
// functions.
func AddInternalKnownEventParser(eventType namespace.Value, factory Factory) {
	internal.addKnown(eventType, factory)
}

// AddInternalUnknownEventParser registers a detector in the process-wide
// registry. Detectors are tried in priority order, then in registration
// order within a priority. Call only from init functions.
func AddInternalUnknownEventParser(priority Priority, name string, detect DetectFunc) {
	internal.addUnknown(UnknownParser{Name: name, Priority: priority, Detect: detect})
}
