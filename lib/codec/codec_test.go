// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package codec

import (
	"bytes"
	"reflect"
	"strings"
	"testing"
)

var sampleEvent = map[string]any{
	"type":             "m.room.message",
	"origin_server_ts": float64(1671145380506),
	"content": map[string]any{
		"body":    "hello",
		"msgtype": "m.text",
		"m.markup": []any{
			map[string]any{"body": "hello", "mimetype": "text/plain"},
		},
	},
}

func TestMarshalDeterministic(t *testing.T) {
	first, err := Marshal(sampleEvent)
	if err != nil {
		t.Fatalf("first Marshal: %v", err)
	}
	second, err := Marshal(sampleEvent)
	if err != nil {
		t.Fatalf("second Marshal: %v", err)
	}
	if !bytes.Equal(first, second) {
		t.Errorf("deterministic encoding violated: %x != %x", first, second)
	}
}

func TestUnmarshalInvalidCBOR(t *testing.T) {
	var value any
	if err := Unmarshal([]byte{0xFF, 0xFE, 0xFD}, &value); err == nil {
		t.Error("Unmarshal should reject invalid CBOR")
	}
}

func TestDiagnose(t *testing.T) {
	data, err := Marshal(map[string]any{"msgtype": "m.text"})
	if err != nil {
		t.Fatalf("Marshal: %v", err)
	}
	notation, err := Diagnose(data)
	if err != nil {
		t.Fatalf("Diagnose: %v", err)
	}
	if !strings.Contains(notation, `"msgtype"`) || !strings.Contains(notation, `"m.text"`) {
		t.Errorf("notation %q is missing the map entry", notation)
	}
}

func TestDecodeFormats(t *testing.T) {
	cborData, err := Marshal(sampleEvent)
	if err != nil {
		t.Fatalf("Marshal: %v", err)
	}
	jsonData := []byte(`{"type":"m.room.message","origin_server_ts":1671145380506,
		"content":{"body":"hello","msgtype":"m.text","m.markup":[{"body":"hello","mimetype":"text/plain"}]}}`)
	jsoncData := []byte(`// a fixture
		{
			"type": "m.room.message",
			"origin_server_ts": 1671145380506,
			"content": {
				"body": "hello", /* legacy */
				"msgtype": "m.text",
				"m.markup": [{"body": "hello", "mimetype": "text/plain"},],
			},
		}`)

	tests := []struct {
		name   string
		data   []byte
		format Format
	}{
		{"json", jsonData, FormatJSON},
		{"json detected", jsonData, FormatAuto},
		{"jsonc", jsoncData, FormatJSONC},
		{"jsonc detected", jsoncData, FormatAuto},
		{"cbor", cborData, FormatCBOR},
		{"cbor detected", cborData, FormatAuto},
	}
	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			value, err := Decode(test.data, test.format)
			if err != nil {
				t.Fatalf("Decode: %v", err)
			}
			if !reflect.DeepEqual(value, sampleEvent) {
				t.Errorf("Decode = %#v, want %#v", value, sampleEvent)
			}
		})
	}
}

func TestDecodeRejectsStrictJSONComments(t *testing.T) {
	if _, err := Decode([]byte(`{"a": 1, // no
	}`), FormatJSON); err == nil {
		t.Error("FormatJSON accepted a comment")
	}
}

func TestDecodeCompressed(t *testing.T) {
	data, err := Marshal(sampleEvent)
	if err != nil {
		t.Fatalf("Marshal: %v", err)
	}
	for _, compression := range []Compression{CompressionZstd, CompressionLZ4} {
		t.Run(compression.String(), func(t *testing.T) {
			compressed, err := Compress(data, compression)
			if err != nil {
				t.Fatalf("Compress: %v", err)
			}
			if got := DetectCompression(compressed); got != compression {
				t.Fatalf("DetectCompression = %v, want %v", got, compression)
			}
			value, err := Decode(compressed, FormatAuto)
			if err != nil {
				t.Fatalf("Decode: %v", err)
			}
			if !reflect.DeepEqual(value, sampleEvent) {
				t.Errorf("Decode = %#v, want %#v", value, sampleEvent)
			}
		})
	}
}

func TestDecodeObjects(t *testing.T) {
	objects, err := DecodeObjects([]byte(`[{"type":"a"},{"type":"b"}]`), FormatJSON)
	if err != nil {
		t.Fatalf("DecodeObjects: %v", err)
	}
	if len(objects) != 2 || objects[1]["type"] != "b" {
		t.Errorf("DecodeObjects = %v", objects)
	}

	single, err := DecodeObjects([]byte(`{"type":"a"}`), FormatJSON)
	if err != nil || len(single) != 1 {
		t.Errorf("DecodeObjects(single) = %v, %v", single, err)
	}

	for _, bad := range []string{`"text"`, `[1, 2]`} {
		if _, err := DecodeObjects([]byte(bad), FormatJSON); err == nil {
			t.Errorf("DecodeObjects(%s) succeeded", bad)
		}
	}
}

func TestParseFormat(t *testing.T) {
	for _, format := range []Format{FormatAuto, FormatJSON, FormatJSONC, FormatCBOR} {
		parsed, err := ParseFormat(strings.ToUpper(format.String()))
		if err != nil || parsed != format {
			t.Errorf("ParseFormat(%q) = %v, %v", format.String(), parsed, err)
		}
	}
	if _, err := ParseFormat("yaml"); err == nil {
		t.Error("ParseFormat accepted yaml")
	}
}

func TestFormatForPath(t *testing.T) {
	tests := map[string]Format{
		"event.json":          FormatJSON,
		"fixtures/poll.jsonc": FormatJSONC,
		"archive.cbor.zst":    FormatCBOR,
		"EVENT.JSON.LZ4":      FormatJSON,
		"event":               FormatAuto,
	}
	for path, want := range tests {
		if got := FormatForPath(path); got != want {
			t.Errorf("FormatForPath(%q) = %v, want %v", path, got, want)
		}
	}
}

func TestDigest(t *testing.T) {
	fromJSON, err := Decode([]byte(`{"b": 1, "a": [true, null, "x"]}`), FormatJSON)
	if err != nil {
		t.Fatalf("Decode: %v", err)
	}
	cborData, err := Marshal(map[string]any{"a": []any{true, nil, "x"}, "b": uint64(1)})
	if err != nil {
		t.Fatalf("Marshal: %v", err)
	}
	fromCBOR, err := Decode(cborData, FormatCBOR)
	if err != nil {
		t.Fatalf("Decode: %v", err)
	}

	jsonDigest, err := Digest(fromJSON)
	if err != nil {
		t.Fatalf("Digest: %v", err)
	}
	cborDigest, err := Digest(fromCBOR)
	if err != nil {
		t.Fatalf("Digest: %v", err)
	}
	if jsonDigest != cborDigest {
		t.Errorf("digest depends on input encoding: %v != %v", jsonDigest, cborDigest)
	}

	other, err := Digest(map[string]any{"b": 2.0})
	if err != nil {
		t.Fatalf("Digest: %v", err)
	}
	if other == jsonDigest {
		t.Error("different documents share a digest")
	}
	if len(jsonDigest.String()) != 64 {
		t.Errorf("String() = %q, want 64 hex digits", jsonDigest.String())
	}
}

func TestDigestRejectsUnrepresentable(t *testing.T) {
	if _, err := Digest(map[string]any{"f": func() {}}); err == nil {
		t.Error("Digest accepted a function value")
	}
}
