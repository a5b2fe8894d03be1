// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package commands

import (
	"fmt"

	"github.com/spf13/pflag"

	"github.com/bureau-foundation/extevents/cmd/extevents/cli"
	"github.com/bureau-foundation/extevents/extensible"
	"github.com/bureau-foundation/extevents/lib/codec"
	"github.com/bureau-foundation/extevents/lib/validate"
)

type convertParams struct {
	commonParams
	inputParams
	Digest   bool   `flag:"digest" desc:"print the BLAKE3 digest of each normalized event instead of the event"`
	Compress string `flag:"compress" desc:"compress cbor output: none, zstd, or lz4" default:"none"`
}

type digestResult struct {
	Type   string `json:"type"`
	Digest string `json:"digest"`
}

func convertCommand(streams Streams) *cli.Command {
	var params convertParams

	return &cli.Command{
		Name:    "convert",
		Summary: "Normalize partial events to their canonical wire form",
		Description: `Interpret partial events ({"type", "content"} objects) and print
each one re-serialized in its canonical form. Legacy m.room.message
and m.room.topic content is upgraded to the extensible event blocks
alongside the legacy fields.

Events of a type with no interpreter are tried as each type of the
fallback order in turn (extensible.unknown_order in the
configuration). Events nothing can interpret are reported on standard
error and make the command exit 1.`,
		Usage: "extevents convert [flags] [file]",
		Examples: []cli.Example{
			{Description: "Upgrade a legacy message", Command: `echo '{"type":"m.room.message","content":{"msgtype":"m.text","body":"hi"}}' | extevents convert`},
			{Description: "Digest every event in a dump", Command: "extevents convert --digest events.jsonc"},
			{Description: "Write compressed CBOR", Command: "extevents convert -o cbor --compress zstd events.json > events.cbor.zst"},
		},
		Flags: func() *pflag.FlagSet {
			return cli.FlagsFromParams("convert", &params)
		},
		Run: func(args []string) error {
			run, err := open(streams, params.commonParams, "convert")
			if err != nil {
				return err
			}
			compression, err := parseCompression(params.Compress)
			if err != nil {
				return err
			}
			if compression != codec.CompressionNone && run.format() != "cbor" {
				return fmt.Errorf("--compress requires cbor output")
			}
			interpreters, err := run.interpreters()
			if err != nil {
				return err
			}
			objects, err := run.readObjects(args, params.inputParams)
			if err != nil {
				return err
			}

			var converted []extensible.PartialEvent
			failed := 0
			for i, object := range objects {
				partial := partialEvent(object)
				event, err := interpreters.Parse(partial)
				if err != nil {
					failed++
					run.logger.Error("interpreting event", "index", i, "type", partial.Type, "error", err)
					continue
				}
				if event == nil {
					failed++
					run.logger.Warn("event could not be interpreted", "index", i, "type", partial.Type)
					continue
				}
				converted = append(converted, event.Serialize())
			}

			if params.Digest {
				err = writeDigests(run, converted)
			} else {
				err = writeConverted(run, converted, len(objects) == 1, compression)
			}
			if err != nil {
				return err
			}
			if failed > 0 {
				return &cli.ExitError{Code: 1}
			}
			return nil
		},
	}
}

// partialEvent takes the type and content of a wire object. Anything
// else on the object is ignored.
func partialEvent(object map[string]any) extensible.PartialEvent {
	eventType, _ := object["type"].(string)
	content, _ := validate.AsObject(object["content"])
	return extensible.PartialEvent{Type: eventType, Content: content}
}

func writeConverted(run *invocation, converted []extensible.PartialEvent, single bool, compression codec.Compression) error {
	var value any = converted
	if single && len(converted) == 1 {
		value = converted[0]
	}
	if run.format() != "cbor" {
		return run.writeStructured(value)
	}

	data, err := codec.Marshal(value)
	if err != nil {
		return fmt.Errorf("encoding CBOR output: %w", err)
	}
	data, err = codec.Compress(data, compression)
	if err != nil {
		return err
	}
	_, err = run.streams.Out.Write(data)
	return err
}

func writeDigests(run *invocation, converted []extensible.PartialEvent) error {
	results := make([]digestResult, len(converted))
	for i, partial := range converted {
		hash, err := codec.Digest(partial)
		if err != nil {
			return fmt.Errorf("digesting %s event: %w", partial.Type, err)
		}
		results[i] = digestResult{Type: partial.Type, Digest: hash.String()}
	}

	if run.format() != "text" {
		return run.writeStructured(results)
	}
	for _, result := range results {
		if _, err := fmt.Fprintf(run.streams.Out, "%s  %s\n", result.Digest, result.Type); err != nil {
			return err
		}
	}
	return nil
}

func parseCompression(name string) (codec.Compression, error) {
	for _, compression := range []codec.Compression{codec.CompressionNone, codec.CompressionZstd, codec.CompressionLZ4} {
		if compression.String() == name {
			return compression, nil
		}
	}
	return codec.CompressionNone, fmt.Errorf("unknown compression %q (want none, zstd, or lz4)", name)
}
