// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package validate

import (
	"fmt"
	"maps"
	"slices"

	"github.com/bureau-foundation/extevents/lib/namespace"
)

// Type is a JSON Schema primitive type name.
type Type string

const (
	TypeString  Type = "string"
	TypeBoolean Type = "boolean"
	TypeInteger Type = "integer"
	TypeNumber  Type = "number"
	TypeObject  Type = "object"
	TypeArray   Type = "array"
)

// Schema describes the expected shape of a JSON value.
type Schema struct {
	// Type constrains the JSON type. Empty accepts any type.
	Type Type

	// Properties describes named members of an object value. Members
	// not listed are allowed and unchecked.
	Properties map[string]*Schema

	// Required lists members that must be present.
	Required []string

	// Items describes every element of an array value.
	Items *Schema

	// Pattern is a regular expression a string value must match.
	Pattern string

	// AnyOf requires the value to satisfy at least one branch. Branches
	// are validated at the same location as this node.
	AnyOf []*Schema

	// Message replaces the engine's description for any failure located
	// at this node, and for this node's absence when its parent lists it
	// as required (unless the parent has a RequiredMessages entry).
	Message string

	// RequiredMessages gives per-member messages for missing required
	// members.
	RequiredMessages map[string]string
}

// document renders the descriptor as a JSON Schema document.
func (s *Schema) document() map[string]any {
	document := make(map[string]any)
	if s.Type != "" {
		document["type"] = string(s.Type)
	}
	if len(s.Properties) > 0 {
		properties := make(map[string]any, len(s.Properties))
		for name, property := range s.Properties {
			properties[name] = property.document()
		}
		document["properties"] = properties
	}
	if len(s.Required) > 0 {
		document["required"] = slices.Clone(s.Required)
	}
	if s.Items != nil {
		document["items"] = s.Items.document()
	}
	if s.Pattern != "" {
		document["pattern"] = s.Pattern
	}
	if len(s.AnyOf) > 0 {
		branches := make([]any, len(s.AnyOf))
		for i, branch := range s.AnyOf {
			branches[i] = branch.document()
		}
		document["anyOf"] = branches
	}
	return document
}

// nodeMessages are the custom messages attached to one schema location.
type nodeMessages struct {
	message  string
	required map[string]string
}

// index walks the descriptor and records custom messages by location.
// Array items are recorded under the "*" segment. AnyOf branches share
// their parent's location; when branches disagree the first message
// wins.
func (s *Schema) index(path string, into map[string]*nodeMessages) {
	node := into[path]
	if node == nil {
		node = &nodeMessages{required: make(map[string]string)}
		into[path] = node
	}
	if node.message == "" {
		node.message = s.Message
	}
	for name, message := range s.RequiredMessages {
		if _, exists := node.required[name]; !exists {
			node.required[name] = message
		}
	}
	for name, property := range s.Properties {
		property.index(joinPath(path, name), into)
	}
	if s.Items != nil {
		s.Items.index(joinPath(path, "*"), into)
	}
	for _, branch := range s.AnyOf {
		branch.index(path, into)
	}
}

func joinPath(parent, child string) string {
	if parent == "" {
		return child
	}
	return parent + "." + child
}

// EitherAnd returns a schema accepting an object that carries sub under
// the stable name, the unstable name, or both. Each branch reports a
// missing member as "<name> is required"; a value matching no branch is
// reported as "schema does not apply to <stable> or <unstable>".
//
// Both spellings of key are required.
func EitherAnd(key namespace.Value, sub *Schema) (*Schema, error) {
	stable, unstable := key.Stable(), key.Unstable()
	if stable == "" || unstable == "" {
		return nil, fmt.Errorf("either/and schema for %q requires both a stable and an unstable name", key.Name())
	}

	branch := func(names ...string) *Schema {
		properties := make(map[string]*Schema, len(names))
		messages := make(map[string]string, len(names))
		for _, name := range names {
			properties[name] = sub
			messages[name] = name + " is required"
		}
		return &Schema{
			Type:             TypeObject,
			Properties:       properties,
			Required:         names,
			RequiredMessages: messages,
		}
	}

	return &Schema{
		AnyOf: []*Schema{
			branch(key.Name()),
			branch(key.AltName()),
			branch(key.Name(), key.AltName()),
		},
		Message: fmt.Sprintf("schema does not apply to %s or %s", stable, unstable),
	}, nil
}

// MustEitherAnd is like [EitherAnd] but panics on error.
func MustEitherAnd(key namespace.Value, sub *Schema) *Schema {
	schema, err := EitherAnd(key, sub)
	if err != nil {
		panic("validate: " + err.Error())
	}
	return schema
}

// Object is a convenience constructor for an object schema.
func Object(properties map[string]*Schema, required ...string) *Schema {
	return &Schema{
		Type:       TypeObject,
		Properties: maps.Clone(properties),
		Required:   required,
	}
}
