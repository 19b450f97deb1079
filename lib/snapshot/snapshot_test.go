// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package snapshot

import (
	"bytes"
	"errors"
	"fmt"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/bureau-foundation/hostel/lib/clock"
	"github.com/bureau-foundation/hostel/lib/codec"
	"github.com/bureau-foundation/hostel/lib/schema"
	"github.com/bureau-foundation/hostel/lib/sealed"
)

var epoch = time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC)

func sampleDataset(students int) schema.Dataset {
	var dataset schema.Dataset
	for index := range students {
		id := int32(index + 1)
		dataset.Students = append(dataset.Students, schema.Student{
			ID: id, Name: fmt.Sprintf("STUDENT %d", id), Campus: "A", RoomNo: fmt.Sprintf("R%d", id),
			FeeStatus: "PAID", Active: index%3 != 0,
		})
		dataset.Tickets = append(dataset.Tickets, schema.Ticket{
			ID: id, StudentID: id, StudentName: fmt.Sprintf("STUDENT %d", id), Issue: "FAN BROKEN", Status: schema.StatusOpen,
		})
	}
	return dataset
}

func assertSameDataset(t *testing.T, got, want schema.Dataset) {
	t.Helper()
	if len(got.Students) != len(want.Students) || len(got.Tickets) != len(want.Tickets) {
		t.Fatalf("dataset sizes = %d/%d, want %d/%d",
			len(got.Students), len(got.Tickets), len(want.Students), len(want.Tickets))
	}
	for index := range want.Students {
		if got.Students[index] != want.Students[index] {
			t.Errorf("student %d = %+v, want %+v", index, got.Students[index], want.Students[index])
		}
	}
	for index := range want.Tickets {
		if got.Tickets[index] != want.Tickets[index] {
			t.Errorf("ticket %d = %+v, want %+v", index, got.Tickets[index], want.Tickets[index])
		}
	}
}

func TestEncodeDecodeEachCompression(t *testing.T) {
	dataset := sampleDataset(40)
	for _, compression := range []Compression{CompressionNone, CompressionLZ4, CompressionZstd} {
		t.Run(compression.String(), func(t *testing.T) {
			data, info, err := Encode(dataset, Options{Compression: compression, Clock: clock.Fake(epoch)})
			if err != nil {
				t.Fatalf("Encode: %v", err)
			}
			if info.Compression != compression.String() {
				t.Errorf("compression = %s, want %s", info.Compression, compression)
			}
			if !info.CreatedAt.Equal(epoch) {
				t.Errorf("created_at = %v, want %v", info.CreatedAt, epoch)
			}
			if info.Students != 40 || info.Tickets != 40 {
				t.Errorf("counts = %d/%d, want 40/40", info.Students, info.Tickets)
			}

			decoded, decodedInfo, err := Decode(data, nil)
			if err != nil {
				t.Fatalf("Decode: %v", err)
			}
			assertSameDataset(t, decoded, dataset)
			if decodedInfo.ID != info.ID || decodedInfo.Digest != info.Digest {
				t.Errorf("decoded info %+v does not match encoded %+v", decodedInfo, info)
			}
		})
	}
}

func TestCompressionShrinksPayload(t *testing.T) {
	dataset := sampleDataset(100)
	data, info, err := Encode(dataset, Options{Compression: CompressionZstd})
	if err != nil {
		t.Fatalf("Encode: %v", err)
	}
	if info.PayloadSize >= info.Size {
		t.Errorf("zstd payload %d bytes, uncompressed %d: want smaller", info.PayloadSize, info.Size)
	}
	if len(data) == 0 {
		t.Fatal("empty snapshot")
	}
}

func TestIncompressibleFallsBackToNone(t *testing.T) {
	// An empty dataset encodes to a few bytes that no algorithm shrinks.
	_, info, err := Encode(schema.Dataset{}, Options{Compression: CompressionLZ4})
	if err != nil {
		t.Fatalf("Encode: %v", err)
	}
	if info.Compression != "none" {
		t.Errorf("compression = %s, want none", info.Compression)
	}
}

func TestEncryptedSnapshot(t *testing.T) {
	keypair, err := sealed.GenerateKeypair()
	if err != nil {
		t.Fatal(err)
	}
	identities, err := sealed.ParseIdentities(strings.NewReader(keypair.IdentityFile("")))
	if err != nil {
		t.Fatal(err)
	}
	dataset := sampleDataset(5)

	data, _, err := Encode(dataset, Options{Compression: CompressionZstd, Recipients: []string{keypair.PublicKey}})
	if err != nil {
		t.Fatalf("Encode: %v", err)
	}
	if bytes.Contains(data, []byte("STUDENT 1")) {
		t.Error("encrypted snapshot contains a plaintext name")
	}

	info, err := Inspect(data)
	if err != nil {
		t.Fatalf("Inspect: %v", err)
	}
	if !info.Encrypted || info.Students != 0 {
		t.Errorf("Inspect = %+v, want encrypted with hidden counts", info)
	}

	if _, _, err := Decode(data, nil); !errors.Is(err, ErrEncrypted) {
		t.Errorf("Decode without identity: got %v, want ErrEncrypted", err)
	}
	decoded, _, err := Decode(data, identities)
	if err != nil {
		t.Fatalf("Decode with identity: %v", err)
	}
	assertSameDataset(t, decoded, dataset)
}

func TestDecodeDetectsTampering(t *testing.T) {
	data, _, err := Encode(sampleDataset(3), Options{Compression: CompressionNone})
	if err != nil {
		t.Fatal(err)
	}
	var envelope Envelope
	if err := codec.Unmarshal(data, &envelope); err != nil {
		t.Fatal(err)
	}
	index := bytes.Index(envelope.Payload, []byte("FAN BROKEN"))
	if index < 0 {
		t.Fatal("payload does not contain the issue text")
	}
	envelope.Payload[index] = 'P'
	tampered, err := codec.Marshal(envelope)
	if err != nil {
		t.Fatal(err)
	}
	if _, _, err := Decode(tampered, nil); !errors.Is(err, ErrDigestMismatch) {
		t.Errorf("Decode tampered: got %v, want ErrDigestMismatch", err)
	}
}

func TestDecodeRejectsDeclaredSizeOutOfRange(t *testing.T) {
	for _, compression := range []Compression{CompressionNone, CompressionLZ4, CompressionZstd} {
		for _, size := range []int{-1, MaxPayloadSize + 1} {
			t.Run(fmt.Sprintf("%s/%d", compression, size), func(t *testing.T) {
				data, _, err := Encode(sampleDataset(20), Options{Compression: compression})
				if err != nil {
					t.Fatal(err)
				}
				var envelope Envelope
				if err := codec.Unmarshal(data, &envelope); err != nil {
					t.Fatal(err)
				}
				envelope.Size = size
				damaged, err := codec.Marshal(envelope)
				if err != nil {
					t.Fatal(err)
				}
				if _, _, err := Decode(damaged, nil); !errors.Is(err, ErrPayloadSize) {
					t.Errorf("Decode with size %d: got %v, want ErrPayloadSize", size, err)
				}
			})
		}
	}
}

func TestDecodeRejectsNewerVersion(t *testing.T) {
	data, err := codec.Marshal(Envelope{Version: FormatVersion + 1})
	if err != nil {
		t.Fatal(err)
	}
	if _, err := Inspect(data); !errors.Is(err, ErrUnsupportedVersion) {
		t.Errorf("Inspect: got %v, want ErrUnsupportedVersion", err)
	}
}

func TestDecodeGarbage(t *testing.T) {
	if _, _, err := Decode([]byte("not cbor at all"), nil); err == nil {
		t.Error("Decode(garbage) succeeded")
	}
}

func TestDigestIsDeterministic(t *testing.T) {
	dataset := sampleDataset(4)
	_, first, err := Encode(dataset, Options{Clock: clock.Fake(epoch)})
	if err != nil {
		t.Fatal(err)
	}
	_, second, err := Encode(dataset, Options{Clock: clock.Fake(epoch.Add(time.Hour)), Compression: CompressionLZ4})
	if err != nil {
		t.Fatal(err)
	}
	if first.Digest != second.Digest {
		t.Errorf("digests differ for the same dataset: %s vs %s", first.Digest, second.Digest)
	}
	if first.ID == second.ID {
		t.Error("two snapshots share an ID")
	}
	if len(first.Digest) != 64 {
		t.Errorf("digest length = %d, want 64 hex chars", len(first.Digest))
	}
}

func TestParseCompression(t *testing.T) {
	for name, want := range map[string]Compression{"": CompressionZstd, "zstd": CompressionZstd, "lz4": CompressionLZ4, "none": CompressionNone} {
		got, err := ParseCompression(name)
		if err != nil || got != want {
			t.Errorf("ParseCompression(%q) = %v, %v; want %v", name, got, err, want)
		}
	}
	if _, err := ParseCompression("gzip"); err == nil {
		t.Error("ParseCompression(gzip) succeeded")
	}
}

func TestWriteReadFile(t *testing.T) {
	data, _, err := Encode(sampleDataset(2), Options{})
	if err != nil {
		t.Fatal(err)
	}
	path := filepath.Join(t.TempDir(), "hostel.snap")
	if err := WriteFile(path, data); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}
	read, err := ReadFile(path)
	if err != nil {
		t.Fatalf("ReadFile: %v", err)
	}
	if !bytes.Equal(read, data) {
		t.Error("ReadFile returned different bytes")
	}
}
