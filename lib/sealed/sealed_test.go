// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package sealed

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"filippo.io/age"
)

func mustKeypair(t *testing.T) *Keypair {
	t.Helper()
	keypair, err := GenerateKeypair()
	if err != nil {
		t.Fatalf("GenerateKeypair() error: %v", err)
	}
	return keypair
}

func mustIdentities(t *testing.T, keypairs ...*Keypair) []age.Identity {
	t.Helper()
	var text strings.Builder
	for _, keypair := range keypairs {
		text.WriteString(keypair.IdentityFile(""))
	}
	identities, err := ParseIdentities(strings.NewReader(text.String()))
	if err != nil {
		t.Fatalf("ParseIdentities: %v", err)
	}
	return identities
}

func TestGenerateKeypair(t *testing.T) {
	keypair := mustKeypair(t)

	if !strings.HasPrefix(keypair.PrivateKey, "AGE-SECRET-KEY-1") {
		t.Errorf("PrivateKey has wrong prefix")
	}
	if !strings.HasPrefix(keypair.PublicKey, "age1") {
		t.Errorf("PublicKey = %q, want prefix age1", keypair.PublicKey)
	}
	if err := ParsePublicKey(keypair.PublicKey); err != nil {
		t.Errorf("ParsePublicKey(generated): %v", err)
	}
}

func TestGenerateKeypair_Unique(t *testing.T) {
	first, second := mustKeypair(t), mustKeypair(t)
	if first.PrivateKey == second.PrivateKey {
		t.Error("two generated keypairs have identical private keys")
	}
	if first.PublicKey == second.PublicKey {
		t.Error("two generated keypairs have identical public keys")
	}
}

func TestEncryptDecrypt_SingleRecipient(t *testing.T) {
	keypair := mustKeypair(t)
	plaintext := []byte("roster snapshot payload")

	ciphertext, err := Encrypt(plaintext, []string{keypair.PublicKey})
	if err != nil {
		t.Fatalf("Encrypt() error: %v", err)
	}
	if bytes.Contains(ciphertext, plaintext) {
		t.Fatal("ciphertext contains the plaintext")
	}

	decrypted, err := Decrypt(ciphertext, mustIdentities(t, keypair))
	if err != nil {
		t.Fatalf("Decrypt() error: %v", err)
	}
	if !bytes.Equal(decrypted, plaintext) {
		t.Errorf("Decrypt() = %q, want %q", decrypted, plaintext)
	}
}

func TestEncryptDecrypt_MultipleRecipients(t *testing.T) {
	office, escrow := mustKeypair(t), mustKeypair(t)
	ciphertext, err := Encrypt([]byte("data"), []string{office.PublicKey, escrow.PublicKey})
	if err != nil {
		t.Fatalf("Encrypt() error: %v", err)
	}
	for name, keypair := range map[string]*Keypair{"office": office, "escrow": escrow} {
		if _, err := Decrypt(ciphertext, mustIdentities(t, keypair)); err != nil {
			t.Errorf("Decrypt with %s key: %v", name, err)
		}
	}
}

func TestDecrypt_WrongKey(t *testing.T) {
	owner, stranger := mustKeypair(t), mustKeypair(t)
	ciphertext, err := Encrypt([]byte("data"), []string{owner.PublicKey})
	if err != nil {
		t.Fatalf("Encrypt() error: %v", err)
	}
	if _, err := Decrypt(ciphertext, mustIdentities(t, stranger)); !errors.Is(err, ErrNoIdentity) {
		t.Errorf("Decrypt with wrong key: got %v, want ErrNoIdentity", err)
	}
	if _, err := Decrypt(ciphertext, nil); !errors.Is(err, ErrNoIdentity) {
		t.Errorf("Decrypt with no identities: got %v, want ErrNoIdentity", err)
	}
}

func TestEncrypt_Errors(t *testing.T) {
	if _, err := Encrypt([]byte("x"), nil); err == nil {
		t.Error("Encrypt with no recipients succeeded")
	}
	if _, err := Encrypt([]byte("x"), []string{"age1notakey"}); err == nil {
		t.Error("Encrypt with invalid recipient succeeded")
	}
}

func TestReadIdentityFile(t *testing.T) {
	keypair := mustKeypair(t)
	path := filepath.Join(t.TempDir(), "backup.key")
	if err := os.WriteFile(path, []byte(keypair.IdentityFile("2026-03-01T09:00:00Z")), 0o600); err != nil {
		t.Fatal(err)
	}
	identities, err := ReadIdentityFile(path)
	if err != nil {
		t.Fatalf("ReadIdentityFile: %v", err)
	}
	if len(identities) != 1 {
		t.Fatalf("identities = %d, want 1", len(identities))
	}

	ciphertext, err := Encrypt([]byte("data"), []string{keypair.PublicKey})
	if err != nil {
		t.Fatal(err)
	}
	if _, err := Decrypt(ciphertext, identities); err != nil {
		t.Errorf("Decrypt with file identity: %v", err)
	}
}

func TestParsePublicKey_Invalid(t *testing.T) {
	for _, key := range []string{"", "not-a-key", "AGE-SECRET-KEY-1ABC"} {
		if err := ParsePublicKey(key); err == nil {
			t.Errorf("ParsePublicKey(%q) succeeded", key)
		}
	}
}
