// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package cli

import (
	"slices"
	"strings"
	"testing"

	"github.com/spf13/pflag"
)

func TestBindFlags_BasicTypes(t *testing.T) {
	type params struct {
		Format   string   `flag:"format,f" desc:"input format"`
		Digest   bool     `flag:"digest,d" desc:"print digests"`
		Max      int      `flag:"max" desc:"max selections"`
		Ts       int64    `flag:"ts" desc:"timestamp"`
		Answers  []string `flag:"answer" desc:"poll answer"`
		Untagged string
	}

	var p params
	flagSet := pflag.NewFlagSet("test", pflag.ContinueOnError)
	if err := BindFlags(&p, flagSet); err != nil {
		t.Fatalf("BindFlags: %v", err)
	}

	err := flagSet.Parse([]string{
		"-f", "cbor",
		"-d",
		"--max", "2",
		"--ts", "1699999999999",
		"--answer", "red",
		"--answer", "green,blue",
	})
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}

	if p.Format != "cbor" {
		t.Errorf("Format = %q, want cbor", p.Format)
	}
	if !p.Digest {
		t.Error("Digest = false, want true")
	}
	if p.Max != 2 {
		t.Errorf("Max = %d, want 2", p.Max)
	}
	if p.Ts != 1699999999999 {
		t.Errorf("Ts = %d, want 1699999999999", p.Ts)
	}
	if want := []string{"red", "green", "blue"}; !slices.Equal(p.Answers, want) {
		t.Errorf("Answers = %v, want %v", p.Answers, want)
	}
	if flagSet.Lookup("untagged") != nil {
		t.Error("untagged field should not be bound")
	}
}

func TestBindFlags_Defaults(t *testing.T) {
	type params struct {
		Format string   `flag:"format" default:"auto"`
		Max    int      `flag:"max" default:"1"`
		Ts     int64    `flag:"ts" default:"100"`
		Strict bool     `flag:"strict" default:"true"`
		Order  []string `flag:"order" default:"a,b"`
	}

	var p params
	flagSet := pflag.NewFlagSet("test", pflag.ContinueOnError)
	if err := BindFlags(&p, flagSet); err != nil {
		t.Fatalf("BindFlags: %v", err)
	}
	if err := flagSet.Parse(nil); err != nil {
		t.Fatalf("Parse: %v", err)
	}

	if p.Format != "auto" || p.Max != 1 || p.Ts != 100 || !p.Strict {
		t.Errorf("defaults not applied: %+v", p)
	}
	if !slices.Equal(p.Order, []string{"a", "b"}) {
		t.Errorf("Order = %v, want [a b]", p.Order)
	}
}

func TestBindFlags_EmbeddedStruct(t *testing.T) {
	type common struct {
		Config string `flag:"config" desc:"config file"`
	}
	type params struct {
		common
		Digest bool `flag:"digest"`
	}

	var p params
	flagSet := pflag.NewFlagSet("test", pflag.ContinueOnError)
	if err := BindFlags(&p, flagSet); err != nil {
		t.Fatalf("BindFlags: %v", err)
	}
	if err := flagSet.Parse([]string{"--config", "x.yaml", "--digest"}); err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if p.Config != "x.yaml" || !p.Digest {
		t.Errorf("embedded flags not bound: %+v", p)
	}
}

func TestBindFlags_Errors(t *testing.T) {
	tests := []struct {
		name   string
		params any
		want   string
	}{
		{"not a pointer", struct{}{}, "pointer to a struct"},
		{"pointer to non-struct", new(int), "pointer to a struct"},
		{"unsupported type", &struct {
			Rate float64 `flag:"rate"`
		}{}, "unsupported type"},
		{"bad default", &struct {
			Max int `flag:"max" default:"many"`
		}{}, "default for --max"},
		{"unexported field", &struct {
			hidden string `flag:"hidden"`
		}{}, "must be exported"},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			err := BindFlags(test.params, pflag.NewFlagSet("test", pflag.ContinueOnError))
			if err == nil {
				t.Fatal("BindFlags succeeded, want error")
			}
			if !strings.Contains(err.Error(), test.want) {
				t.Errorf("error = %q, want it to contain %q", err, test.want)
			}
		})
	}
}

func TestFlagsFromParams_PanicsOnInvalidParams(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Error("FlagsFromParams did not panic")
		}
	}()
	FlagsFromParams("bad", struct{}{})
}
