// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

// Package config provides YAML configuration loading for extevents.
//
// Configuration is loaded from a single file specified by either the
// EXTEVENTS_CONFIG environment variable (via [Load]) or a --config
// flag (via [LoadFile]). There is no file discovery. Fields missing
// from the file keep the values from [Default], and unknown fields are
// rejected so that typos surface instead of being ignored.
//
// Key exports:
//
//   - [Config] -- master struct with Parser, Extensible, Output, LogLevel
//   - [Default] -- returns a Config that matches the libraries' defaults
//   - [Load] and [LoadFile] -- the two entry points for loading
//
// This package depends on no other extevents packages.
package config
