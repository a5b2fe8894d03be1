// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package codec

import (
	"encoding/hex"
	"fmt"

	"github.com/zeebo/blake3"

	"github.com/bureau-foundation/extevents/lib/validate"
)

// Hash is a 32-byte BLAKE3 digest.
type Hash [32]byte

// String returns the lowercase hex encoding.
func (h Hash) String() string {
	return hex.EncodeToString(h[:])
}

// digestKey separates document digests from any other BLAKE3 use of
// the same bytes. Changing it invalidates every stored digest.
var digestKey = [32]byte{
	'e', 'x', 't', 'e', 'v', 'e', 'n', 't', 's', '.', 'd', 'o', 'c', 'u', 'm', 'e',
	'n', 't', 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0,
}

// Digest returns the keyed BLAKE3 hash of v's deterministic CBOR
// encoding. v is first reduced to generic JSON form, so a document
// hashes the same whether it was decoded from JSON or CBOR.
func Digest(v any) (Hash, error) {
	generic, err := validate.Generic(v)
	if err != nil {
		return Hash{}, fmt.Errorf("digest: %w", err)
	}
	data, err := Marshal(generic)
	if err != nil {
		return Hash{}, fmt.Errorf("digest: %w", err)
	}
	hasher, err := blake3.NewKeyed(digestKey[:])
	if err != nil {
		panic("codec: BLAKE3 keyed hash initialization failed: " + err.Error())
	}
	hasher.Write(data)
	var hash Hash
	copy(hash[:], hasher.Sum(nil))
	return hash, nil
}
