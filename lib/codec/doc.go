// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

// Package codec provides the standard CBOR encoding configuration.
//
// Two serialization formats are in use, with a clear boundary:
//
//   - JSON for external interfaces: CLI --json output and JSONC
//     import files.
//   - CBOR for on-disk backup snapshots: the envelope and the dataset
//     payload inside it.
//
// The encoder uses Core Deterministic Encoding (RFC 8949 §4.2): sorted
// map keys, smallest integer encoding, no indefinite-length items. The
// same dataset always produces identical bytes, so a snapshot digest
// depends only on the records.
//
//	data, err := codec.Marshal(value)
//	err = codec.Unmarshal(data, &value)
//
// # Struct Tag Rules
//
//   - `cbor` tag: the type is only ever serialized as CBOR (the
//     snapshot envelope).
//   - `json` tag: the type is serialized as both JSON and CBOR.
//     fxamacker/cbor v2 reads `json` tags when `cbor` tags are absent,
//     so schema.Student and schema.Ticket carry one set of tags.
//
// Never use both tags on the same field.
package codec
