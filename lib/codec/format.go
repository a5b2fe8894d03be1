// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package codec

import (
	"bytes"
	"encoding/json"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/tidwall/jsonc"

	"github.com/bureau-foundation/extevents/lib/validate"
)

// Format is a document encoding.
type Format int

const (
	// FormatAuto detects the encoding from the data itself.
	FormatAuto Format = iota
	FormatJSON
	FormatJSONC
	FormatCBOR
)

var formatNames = map[Format]string{
	FormatAuto:  "auto",
	FormatJSON:  "json",
	FormatJSONC: "jsonc",
	FormatCBOR:  "cbor",
}

func (f Format) String() string {
	if name, ok := formatNames[f]; ok {
		return name
	}
	return fmt.Sprintf("Format(%d)", int(f))
}

// ParseFormat returns the format named by s.
func ParseFormat(s string) (Format, error) {
	for format, name := range formatNames {
		if strings.EqualFold(s, name) {
			return format, nil
		}
	}
	return FormatAuto, fmt.Errorf("unknown format %q (want auto, json, jsonc, or cbor)", s)
}

// FormatForPath guesses a format from a file name, ignoring any
// compression suffix. Unrecognized names yield FormatAuto.
func FormatForPath(path string) Format {
	base := strings.ToLower(filepath.Base(path))
	for _, suffix := range []string{".zst", ".lz4"} {
		base = strings.TrimSuffix(base, suffix)
	}
	switch filepath.Ext(base) {
	case ".json":
		return FormatJSON
	case ".jsonc":
		return FormatJSONC
	case ".cbor":
		return FormatCBOR
	}
	return FormatAuto
}

// Detect guesses the encoding of data, which must already be
// decompressed. Text starting with '{', '[', or a comment is JSONC
// (a superset of JSON); anything else is taken to be CBOR.
func Detect(data []byte) Format {
	trimmed := bytes.TrimLeft(data, " \t\r\n")
	if len(trimmed) == 0 {
		return FormatJSON
	}
	switch trimmed[0] {
	case '{', '[', '/':
		return FormatJSONC
	}
	return FormatCBOR
}

// Decode decompresses data if needed and decodes it in the given
// format into generic JSON form.
func Decode(data []byte, format Format) (any, error) {
	data, err := Decompress(data)
	if err != nil {
		return nil, err
	}
	if format == FormatAuto {
		format = Detect(data)
	}

	switch format {
	case FormatJSON:
		return decodeJSON(data)
	case FormatJSONC:
		return decodeJSON(jsonc.ToJSON(data))
	case FormatCBOR:
		var value any
		if err := Unmarshal(data, &value); err != nil {
			return nil, fmt.Errorf("decoding CBOR: %w", err)
		}
		// CBOR integers decode as int64 and uint64. Normalize so CBOR
		// and JSON inputs are indistinguishable downstream.
		generic, err := validate.Generic(value)
		if err != nil {
			return nil, fmt.Errorf("normalizing CBOR: %w", err)
		}
		return generic, nil
	}
	return nil, fmt.Errorf("cannot decode format %v", format)
}

func decodeJSON(data []byte) (any, error) {
	var value any
	if err := json.Unmarshal(data, &value); err != nil {
		return nil, fmt.Errorf("decoding JSON: %w", err)
	}
	return value, nil
}

// DecodeObjects decodes data as either a single object or an array of
// objects.
func DecodeObjects(data []byte, format Format) ([]map[string]any, error) {
	value, err := Decode(data, format)
	if err != nil {
		return nil, err
	}
	if object, ok := value.(map[string]any); ok {
		return []map[string]any{object}, nil
	}
	array, ok := value.([]any)
	if !ok {
		return nil, fmt.Errorf("document is %T, want an object or an array of objects", value)
	}
	objects := make([]map[string]any, len(array))
	for i, element := range array {
		object, ok := element.(map[string]any)
		if !ok {
			return nil, fmt.Errorf("element %d is %T, want an object", i, element)
		}
		objects[i] = object
	}
	return objects, nil
}
