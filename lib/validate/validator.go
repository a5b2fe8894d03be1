// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package validate

import (
	"cmp"
	"encoding/json"
	"fmt"
	"slices"
	"strings"

	"github.com/xeipuuv/gojsonschema"
)

// rootField is the engine's name for the top-level location.
const rootField = "(root)"

// Diagnostic describes one validation failure.
type Diagnostic struct {
	// Field is the location of the failure: "(root)" for the value
	// itself, otherwise a dotted member path such as "content" or
	// "m.markup.0.body".
	Field string `json:"field"`

	// Type is the engine's failure kind, such as "required",
	// "invalid_type", or "pattern".
	Type string `json:"type"`

	// Message is the human-readable description: the custom message
	// configured for the location when there is one, else the engine's.
	Message string `json:"message,omitempty"`

	// Details carries the engine's structured failure parameters.
	Details map[string]any `json:"details,omitempty"`
}

// Validator checks values against a compiled schema. It holds no
// per-call state and is safe for concurrent use.
type Validator struct {
	schema   *gojsonschema.Schema
	messages map[string]*nodeMessages
}

// Compile prepares schema for repeated validation.
func Compile(schema *Schema) (*Validator, error) {
	compiled, err := gojsonschema.NewSchema(gojsonschema.NewGoLoader(schema.document()))
	if err != nil {
		return nil, fmt.Errorf("compiling schema: %w", err)
	}
	messages := make(map[string]*nodeMessages)
	schema.index("", messages)
	return &Validator{schema: compiled, messages: messages}, nil
}

// MustCompile is like [Compile] but panics on error. Intended for
// package-level validators.
func MustCompile(schema *Schema) *Validator {
	validator, err := Compile(schema)
	if err != nil {
		panic("validate: " + err.Error())
	}
	return validator
}

// Validate checks value and returns its diagnostics, sorted by field.
// An empty result means the value conforms. Values that have no JSON
// representation (NaN, infinities, channels, functions) yield a single
// "unrepresentable" diagnostic.
func (v *Validator) Validate(value any) []Diagnostic {
	data, err := json.Marshal(value)
	if err != nil {
		return []Diagnostic{{
			Field:   rootField,
			Type:    "unrepresentable",
			Message: "value has no JSON representation: " + err.Error(),
		}}
	}

	result, err := v.schema.Validate(gojsonschema.NewBytesLoader(data))
	if err != nil {
		return []Diagnostic{{
			Field:   rootField,
			Type:    "unreadable",
			Message: "value could not be read: " + err.Error(),
		}}
	}
	if result.Valid() {
		return nil
	}

	diagnostics := make([]Diagnostic, 0, len(result.Errors()))
	for _, resultError := range result.Errors() {
		diagnostics = append(diagnostics, v.diagnose(resultError))
	}
	slices.SortStableFunc(diagnostics, func(a, b Diagnostic) int {
		return cmp.Or(strings.Compare(a.Field, b.Field), strings.Compare(a.Message, b.Message))
	})
	return slices.CompactFunc(diagnostics, func(a, b Diagnostic) bool {
		return a.Field == b.Field && a.Type == b.Type && a.Message == b.Message
	})
}

// Valid reports whether value conforms.
func (v *Validator) Valid(value any) bool {
	return len(v.Validate(value)) == 0
}

func (v *Validator) diagnose(resultError gojsonschema.ResultError) Diagnostic {
	diagnostic := Diagnostic{
		Field:   resultError.Field(),
		Type:    resultError.Type(),
		Message: resultError.Description(),
		Details: publicDetails(resultError.Details()),
	}

	path := schemaPath(diagnostic.Field)
	if diagnostic.Type == "required" {
		property, _ := resultError.Details()["property"].(string)
		if message := v.requiredMessage(path, property); message != "" {
			diagnostic.Message = message
		}
		return diagnostic
	}
	if node := v.messages[path]; node != nil && node.message != "" {
		diagnostic.Message = node.message
	}
	return diagnostic
}

func (v *Validator) requiredMessage(parent, property string) string {
	if property == "" {
		return ""
	}
	if node := v.messages[parent]; node != nil {
		if message := node.required[property]; message != "" {
			return message
		}
	}
	if node := v.messages[joinPath(parent, property)]; node != nil {
		return node.message
	}
	return ""
}

// schemaPath converts an engine field into an index key: the root
// becomes "" and numeric array indices become "*".
func schemaPath(field string) string {
	if field == rootField || field == "" {
		return ""
	}
	field = strings.TrimPrefix(field, rootField+".")
	segments := strings.Split(field, ".")
	for i, segment := range segments {
		if isIndex(segment) {
			segments[i] = "*"
		}
	}
	return strings.Join(segments, ".")
}

func isIndex(segment string) bool {
	if segment == "" {
		return false
	}
	for _, r := range segment {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}

// publicDetails drops the engine's bookkeeping keys that duplicate
// Diagnostic fields.
func publicDetails(details gojsonschema.ErrorDetails) map[string]any {
	public := make(map[string]any, len(details))
	for key, value := range details {
		if key == "field" || key == "context" {
			continue
		}
		public[key] = value
	}
	if len(public) == 0 {
		return nil
	}
	return public
}

// Describe renders diagnostics as a single message: each diagnostic's
// Message (or its JSON form when Message is empty), joined with ", ".
// An empty list renders as "Validation failed".
func Describe(diagnostics []Diagnostic) string {
	if len(diagnostics) == 0 {
		return "Validation failed"
	}
	parts := make([]string, 0, len(diagnostics))
	for _, diagnostic := range diagnostics {
		if diagnostic.Message != "" {
			parts = append(parts, diagnostic.Message)
			continue
		}
		encoded, err := json.Marshal(diagnostic)
		if err != nil {
			parts = append(parts, diagnostic.Field+": "+diagnostic.Type)
			continue
		}
		parts = append(parts, string(encoded))
	}
	return strings.Join(parts, ", ")
}
