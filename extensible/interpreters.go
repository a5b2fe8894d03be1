// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package extensible

import (
	"fmt"
	"log/slog"
	"slices"
	"sync"

	"github.com/bureau-foundation/extevents/events"
	"github.com/bureau-foundation/extevents/lib/namespace"
)

// Interpreter reads a partial event as a typed event. It returns
// (nil, nil) when the event is not of a kind it handles, and an
// [*events.InvalidEventError] when it is but the content is malformed.
// Interpreters may be handed events of other types when they appear in
// the unknown-interpret order.
type Interpreter func(partial PartialEvent) (Event, error)

// Interpreters maps event types to interpreters. It is safe for
// concurrent use.
type Interpreters struct {
	mu           sync.RWMutex
	interpreters *namespace.Map[Interpreter]
	registered   []namespace.Value
	unknown      []namespace.Value
	logger       *slog.Logger
}

// Option configures an [Interpreters].
type Option func(*Interpreters)

// WithLogger sets the logger used to report rejected fallback
// interpretations at debug level. The default discards.
func WithLogger(logger *slog.Logger) Option {
	return func(interpreters *Interpreters) {
		interpreters.logger = logger
	}
}

// NewInterpreters returns a set with every built-in interpreter
// registered and an unknown-interpret order of [MessageType].
func NewInterpreters(options ...Option) *Interpreters {
	interpreters := &Interpreters{
		interpreters: namespace.NewMap[Interpreter](),
		unknown:      []namespace.Value{MessageType},
		logger:       slog.New(slog.DiscardHandler),
	}
	for _, option := range options {
		option(interpreters)
	}
	interpreters.Register(LegacyRoomMessage, parseLegacyMessage)
	interpreters.Register(LegacyRoomTopic, parseLegacyTopic)
	interpreters.Register(MessageType, parseMessage)
	interpreters.Register(EmoteType, parseMessage)
	interpreters.Register(NoticeType, parseMessage)
	interpreters.Register(PollStartType, parsePoll)
	interpreters.Register(PollResponseType, parsePoll)
	interpreters.Register(PollEndType, parsePoll)
	interpreters.Register(TopicType, interpretAs(NewTopicEvent))
	interpreters.Register(LocationType, interpretAs(NewLocationEvent))
	return interpreters
}

var defaultInterpreters = NewInterpreters()

// Default returns the process-wide interpreter set used by [Parse].
func Default() *Interpreters {
	return defaultInterpreters
}

// Parse interprets partial with the default interpreter set.
func Parse(partial PartialEvent) (Event, error) {
	return defaultInterpreters.Parse(partial)
}

// interpretAs adapts a typed constructor to an [Interpreter].
func interpretAs[E Event](construct func(PartialEvent) (E, error)) Interpreter {
	return func(partial PartialEvent) (Event, error) {
		return nonNil(construct(partial))
	}
}

// Register sets the interpreter for both spellings of eventType,
// replacing any earlier registration.
func (i *Interpreters) Register(eventType namespace.Value, interpreter Interpreter) {
	i.mu.Lock()
	defer i.mu.Unlock()
	i.interpreters.Set(eventType, interpreter)
	if !slices.ContainsFunc(i.registered, eventType.Equal) {
		i.registered = append(i.registered, eventType)
	}
}

// RegisteredTypes returns every registered event type in registration
// order.
func (i *Interpreters) RegisteredTypes() []namespace.Value {
	i.mu.RLock()
	defer i.mu.RUnlock()
	return slices.Clone(i.registered)
}

// Resolve returns the registered event type with name as either
// spelling.
func (i *Interpreters) Resolve(name string) (namespace.Value, bool) {
	i.mu.RLock()
	defer i.mu.RUnlock()
	index := slices.IndexFunc(i.registered, func(eventType namespace.Value) bool {
		return eventType.Matches(name)
	})
	if index < 0 {
		return namespace.Value{}, false
	}
	return i.registered[index], true
}

// UnknownInterpretOrder returns a copy of the fallback order.
func (i *Interpreters) UnknownInterpretOrder() []namespace.Value {
	i.mu.RLock()
	defer i.mu.RUnlock()
	return slices.Clone(i.unknown)
}

// SetUnknownInterpretOrder replaces the fallback order. Types without a
// registered interpreter are skipped during parsing.
func (i *Interpreters) SetUnknownInterpretOrder(order []namespace.Value) {
	i.mu.Lock()
	defer i.mu.Unlock()
	i.unknown = slices.Clone(order)
}

// SetUnknownInterpretOrderByName resolves names with [Interpreters.Resolve]
// and installs the result as the fallback order.
func (i *Interpreters) SetUnknownInterpretOrderByName(names []string) error {
	order := make([]namespace.Value, 0, len(names))
	for _, name := range names {
		eventType, ok := i.Resolve(name)
		if !ok {
			return fmt.Errorf("no interpreter registered for %q", name)
		}
		order = append(order, eventType)
	}
	i.SetUnknownInterpretOrder(order)
	return nil
}

// Parse interprets partial. An interpreter registered for its type is
// used when one exists; otherwise the fallback order is tried until an
// interpreter returns an event. Validation failures yield (nil, nil)
// rather than an error, as does an event nothing could interpret.
// Other interpreter errors are returned.
func (i *Interpreters) Parse(partial PartialEvent) (Event, error) {
	i.mu.RLock()
	interpreter, known := i.interpreters.GetNamespaced(partial.Type)
	fallbacks := make([]Interpreter, 0, len(i.unknown))
	names := make([]string, 0, len(i.unknown))
	if !known {
		for _, eventType := range i.unknown {
			if fallback, ok := i.interpreters.Get(eventType); ok {
				fallbacks = append(fallbacks, fallback)
				names = append(names, eventType.Name())
			}
		}
	}
	i.mu.RUnlock()

	if known {
		event, err := interpreter(partial)
		if err != nil {
			if events.IsInvalid(err) {
				i.logger.Debug("event rejected", "type", partial.Type, "error", err)
				return nil, nil
			}
			return nil, fmt.Errorf("interpreting %s: %w", partial.Type, err)
		}
		return event, nil
	}

	for index, fallback := range fallbacks {
		event, err := fallback(partial)
		if err != nil {
			if events.IsInvalid(err) {
				i.logger.Debug("fallback interpretation rejected",
					"type", partial.Type,
					"as", names[index],
					"error", err,
				)
				continue
			}
			return nil, fmt.Errorf("interpreting %s as %s: %w", partial.Type, names[index], err)
		}
		if event != nil {
			return event, nil
		}
	}
	return nil, nil
}
