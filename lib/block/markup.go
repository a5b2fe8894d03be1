// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package block

import (
	"fmt"

	"github.com/bureau-foundation/extevents/lib/namespace"
	"github.com/bureau-foundation/extevents/lib/validate"
)

// MarkupType is the markup block's key. The unstable spelling is
// preferred until MSC1767 is merged.
var MarkupType = namespace.MustNewUnstable("m.markup", "org.matrix.msc1767.markup")

// MIME types recognized by [MarkupBlock.Text] and [MarkupBlock.HTML].
const (
	MimetypePlain = "text/plain"
	MimetypeHTML  = "text/html"
)

// representationSchema describes one markup entry.
var representationSchema = &validate.Schema{
	Type: validate.TypeObject,
	Properties: map[string]*validate.Schema{
		"body": {
			Type:    validate.TypeString,
			Message: "body should be a non-null string and is required",
		},
		"mimetype": {
			Type:    validate.TypeString,
			Message: "mimetype should be a non-null string, or undefined (field not required)",
		},
	},
	Required: []string{"body"},
}

var representationValidator = validate.MustCompile(representationSchema)

// MarkupSchema is the wire shape of a markup block value: an array of
// entries. Entries are checked individually by [NewMarkupBlock].
var MarkupSchema = &validate.Schema{Type: validate.TypeArray}

// Representation is one rendering of a message's text.
type Representation struct {
	Body string `json:"body"`
	// Mimetype is empty for plain text.
	Mimetype string `json:"mimetype,omitempty"`
}

// Wire returns the entry in generic JSON form.
func (r Representation) Wire() map[string]any {
	wire := map[string]any{"body": r.Body}
	if r.Mimetype != "" {
		wire["mimetype"] = r.Mimetype
	}
	return wire
}

// MarkupWire builds the wire array for a markup block.
func MarkupWire(representations ...Representation) []any {
	wire := make([]any, len(representations))
	for i, representation := range representations {
		wire[i] = representation.Wire()
	}
	return wire
}

// RepresentationError records a markup entry that failed validation.
type RepresentationError struct {
	// Index is the entry's position in the original array.
	Index int
	// Value is the entry as it appeared on the wire.
	Value any
	// Err describes the failure; its block name is "m.markup[<index>]".
	Err *InvalidBlockError
}

// MarkupBlock holds the valid representations of a markup array.
// Malformed entries do not fail construction; they are excluded from
// [MarkupBlock.Representations] and reported by
// [MarkupBlock.RepresentationErrors].
type MarkupBlock struct {
	base[[]any]
	representations []Representation
	errors          map[int]RepresentationError
}

// NewMarkupBlock validates raw as a markup array.
func NewMarkupBlock(raw any) (*MarkupBlock, error) {
	name := MarkupType.Stable()
	if err := check(name, raw, arrayValidator); err != nil {
		return nil, err
	}
	items, ok := validate.AsArray(raw)
	if !ok {
		return nil, NewInvalidBlockError(name, "value is not an array")
	}
	return newMarkupBlock(items), nil
}

// newMarkupBlock partitions already-validated array items.
func newMarkupBlock(items []any) *MarkupBlock {
	markup := &MarkupBlock{
		base:   base[[]any]{name: MarkupType.Stable(), raw: items},
		errors: make(map[int]RepresentationError),
	}
	for index, item := range items {
		entryName := fmt.Sprintf("%s[%d]", MarkupType.Stable(), index)
		if err := check(entryName, item, representationValidator); err != nil {
			markup.errors[index] = RepresentationError{Index: index, Value: item, Err: err.(*InvalidBlockError)}
			continue
		}
		object, _ := validate.AsObject(item)
		body, _ := object["body"].(string)
		mimetype, _ := object["mimetype"].(string)
		markup.representations = append(markup.representations, Representation{Body: body, Mimetype: mimetype})
	}
	return markup
}

func (*MarkupBlock) Kind() Kind { return KindComposite }

// Representations returns the valid entries in wire order.
func (m *MarkupBlock) Representations() []Representation {
	return append([]Representation(nil), m.representations...)
}

// RepresentationErrors returns the rejected entries keyed by index.
func (m *MarkupBlock) RepresentationErrors() map[int]RepresentationError {
	errors := make(map[int]RepresentationError, len(m.errors))
	for index, err := range m.errors {
		errors[index] = err
	}
	return errors
}

// Text returns the first plain-text body: an entry with no mimetype or
// "text/plain".
func (m *MarkupBlock) Text() (string, bool) {
	for _, representation := range m.representations {
		if representation.Mimetype == "" || representation.Mimetype == MimetypePlain {
			return representation.Body, true
		}
	}
	return "", false
}

// HTML returns the first "text/html" body.
func (m *MarkupBlock) HTML() (string, bool) {
	for _, representation := range m.representations {
		if representation.Mimetype == MimetypeHTML {
			return representation.Body, true
		}
	}
	return "", false
}
