// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package snapshot

import (
	"bytes"
	"errors"
	"fmt"
	"os"
	"time"

	"filippo.io/age"
	"github.com/google/uuid"
	"github.com/natefinch/atomic"

	"github.com/bureau-foundation/hostel/lib/clock"
	"github.com/bureau-foundation/hostel/lib/codec"
	"github.com/bureau-foundation/hostel/lib/schema"
	"github.com/bureau-foundation/hostel/lib/sealed"
)

// FormatVersion is the envelope version written by Encode.
const FormatVersion = 1

var (
	// ErrEncrypted is returned by Decode for a sealed snapshot when no
	// identity was supplied.
	ErrEncrypted = errors.New("snapshot is encrypted; an age identity is required")

	// ErrDigestMismatch is returned when the decoded payload does not
	// hash to the recorded digest.
	ErrDigestMismatch = errors.New("snapshot digest mismatch")

	// ErrUnsupportedVersion is returned for envelopes from a newer
	// format.
	ErrUnsupportedVersion = errors.New("unsupported snapshot version")
)

// Envelope is the on-disk snapshot container. Record counts are only
// written for unencrypted snapshots.
type Envelope struct {
	Version     int         `cbor:"version"`
	ID          string      `cbor:"id"`
	Producer    string      `cbor:"producer,omitempty"`
	CreatedAt   time.Time   `cbor:"created_at"`
	Compression Compression `cbor:"compression"`
	Encrypted   bool        `cbor:"encrypted"`
	Digest      []byte      `cbor:"digest"`
	Size        int         `cbor:"size"`
	Students    int         `cbor:"students,omitempty"`
	Tickets     int         `cbor:"tickets,omitempty"`
	Payload     []byte      `cbor:"payload"`
}

// Info describes a snapshot without its payload, for display.
type Info struct {
	ID          string    `json:"id"`
	Producer    string    `json:"producer,omitempty"`
	CreatedAt   time.Time `json:"created_at"`
	Compression string    `json:"compression"`
	Encrypted   bool      `json:"encrypted"`
	Digest      string    `json:"digest"`
	Size        int       `json:"size"`
	PayloadSize int       `json:"payload_size"`
	Students    int       `json:"students"`
	Tickets     int       `json:"tickets"`
}

// Options configures Encode.
type Options struct {
	// Compression is the requested algorithm. Encode falls back to
	// CompressionNone when it would not shrink the payload.
	Compression Compression

	// Recipients are age1... public keys. When non-empty the payload is
	// sealed to all of them.
	Recipients []string

	// Clock stamps CreatedAt. Nil means clock.Real().
	Clock clock.Clock

	// Producer names the tool and version that wrote the snapshot.
	Producer string
}

// Encode builds a snapshot of dataset.
func Encode(dataset schema.Dataset, options Options) ([]byte, Info, error) {
	plain, err := codec.Marshal(dataset)
	if err != nil {
		return nil, Info{}, fmt.Errorf("encoding dataset: %w", err)
	}

	payload, used, err := compress(plain, options.Compression)
	if err != nil {
		return nil, Info{}, err
	}
	if len(options.Recipients) > 0 {
		payload, err = sealed.Encrypt(payload, options.Recipients)
		if err != nil {
			return nil, Info{}, err
		}
	}

	now := options.Clock
	if now == nil {
		now = clock.Real()
	}
	digest := computeDigest(plain)
	envelope := Envelope{
		Version:     FormatVersion,
		ID:          uuid.NewString(),
		Producer:    options.Producer,
		CreatedAt:   now.Now().UTC(),
		Compression: used,
		Encrypted:   len(options.Recipients) > 0,
		Digest:      digest[:],
		Size:        len(plain),
		Payload:     payload,
	}
	if !envelope.Encrypted {
		envelope.Students = len(dataset.Students)
		envelope.Tickets = len(dataset.Tickets)
	}

	data, err := codec.Marshal(envelope)
	if err != nil {
		return nil, Info{}, fmt.Errorf("encoding envelope: %w", err)
	}
	info := envelope.info()
	info.Students = len(dataset.Students)
	info.Tickets = len(dataset.Tickets)
	return data, info, nil
}

// Inspect reads the envelope without decrypting or decompressing. For
// encrypted snapshots the record counts are zero.
func Inspect(data []byte) (Info, error) {
	envelope, err := parseEnvelope(data)
	if err != nil {
		return Info{}, err
	}
	return envelope.info(), nil
}

// Decode opens a snapshot and returns its dataset. identities may be
// nil for an unencrypted snapshot.
func Decode(data []byte, identities []age.Identity) (schema.Dataset, Info, error) {
	envelope, err := parseEnvelope(data)
	if err != nil {
		return schema.Dataset{}, Info{}, err
	}

	payload := envelope.Payload
	if envelope.Encrypted {
		if len(identities) == 0 {
			return schema.Dataset{}, Info{}, ErrEncrypted
		}
		payload, err = sealed.Decrypt(payload, identities)
		if err != nil {
			return schema.Dataset{}, Info{}, err
		}
	}

	plain, err := decompress(payload, envelope.Compression, envelope.Size)
	if err != nil {
		return schema.Dataset{}, Info{}, err
	}
	if digest := computeDigest(plain); !bytes.Equal(digest[:], envelope.Digest) {
		return schema.Dataset{}, Info{}, fmt.Errorf("%w: recorded %x, computed %s", ErrDigestMismatch, envelope.Digest, digest)
	}

	var dataset schema.Dataset
	if err := codec.Unmarshal(plain, &dataset); err != nil {
		return schema.Dataset{}, Info{}, fmt.Errorf("decoding dataset: %w", err)
	}
	info := envelope.info()
	info.Students = len(dataset.Students)
	info.Tickets = len(dataset.Tickets)
	return dataset, info, nil
}

// WriteFile writes snapshot bytes to path atomically.
func WriteFile(path string, data []byte) error {
	if err := atomic.WriteFile(path, bytes.NewReader(data)); err != nil {
		return fmt.Errorf("writing snapshot %s: %w", path, err)
	}
	return nil
}

// ReadFile reads snapshot bytes from path.
func ReadFile(path string) ([]byte, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading snapshot: %w", err)
	}
	return data, nil
}

func parseEnvelope(data []byte) (Envelope, error) {
	var envelope Envelope
	if err := codec.Unmarshal(data, &envelope); err != nil {
		return Envelope{}, fmt.Errorf("decoding snapshot envelope: %w", err)
	}
	if envelope.Version != FormatVersion {
		return Envelope{}, fmt.Errorf("%w: %d", ErrUnsupportedVersion, envelope.Version)
	}
	return envelope, nil
}

func (e *Envelope) info() Info {
	var digest Digest
	copy(digest[:], e.Digest)
	return Info{
		ID:          e.ID,
		Producer:    e.Producer,
		CreatedAt:   e.CreatedAt,
		Compression: e.Compression.String(),
		Encrypted:   e.Encrypted,
		Digest:      digest.String(),
		Size:        e.Size,
		PayloadSize: len(e.Payload),
		Students:    e.Students,
		Tickets:     e.Tickets,
	}
}
