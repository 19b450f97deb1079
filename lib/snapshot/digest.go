// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package snapshot

import (
	"encoding/hex"

	"github.com/zeebo/blake3"
)

// Digest is a 32-byte BLAKE3 keyed hash of a snapshot's uncompressed
// dataset encoding.
type Digest [32]byte

// digestKey is the ASCII domain name zero-padded to 32 bytes.
// Changing it invalidates every existing snapshot digest.
var digestKey = [32]byte{
	'h', 'o', 's', 't', 'e', 'l', '.', 's', 'n', 'a', 'p', 's', 'h', 'o', 't',
}

// computeDigest hashes data under the snapshot domain key.
func computeDigest(data []byte) Digest {
	hasher, err := blake3.NewKeyed(digestKey[:])
	if err != nil {
		panic("snapshot: BLAKE3 keyed hash initialization failed: " + err.Error())
	}
	hasher.Write(data)
	var digest Digest
	copy(digest[:], hasher.Sum(nil))
	return digest
}

// String returns the hex encoding of the digest.
func (d Digest) String() string {
	return hex.EncodeToString(d[:])
}
