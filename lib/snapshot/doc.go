// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

// Package snapshot encodes the full record store as a single backup
// file.
//
// A snapshot is a CBOR [Envelope] (see lib/codec) whose payload is the
// CBOR-encoded dataset, compressed with zstd or LZ4 and optionally
// sealed to age recipients (see lib/sealed). The envelope carries a
// BLAKE3 keyed digest of the uncompressed dataset bytes, so [Decode]
// detects corruption and truncation independently of the compression
// and encryption layers.
//
// Snapshots are independent of the fixed-width record files: they
// survive a change of capacity limits and can be inspected without
// the identity that sealed them.
package snapshot
