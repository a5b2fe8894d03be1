// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

// Package codec reads and writes event documents.
//
// Events travel as JSON on the Matrix wire. Locally they may also be
// written as JSONC (JSON with comments and trailing commas, for
// hand-written fixtures), as CBOR (for compact archives), and
// compressed with zstd or lz4. [Decode] accepts all of these and
// produces the generic form encoding/json would: map[string]any,
// []any, string, float64, bool, and nil.
//
// CBOR output uses Core Deterministic Encoding (RFC 8949 §4.2), so the
// same logical document always produces identical bytes. [Digest]
// builds on that to give each document a stable BLAKE3 content hash
// that does not depend on which encoding it was read from.
package codec
