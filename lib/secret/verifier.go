// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package secret

import (
	"crypto/subtle"
	"errors"
	"fmt"

	"golang.org/x/crypto/bcrypt"
)

// DefaultCost is the bcrypt cost used by Hash.
const DefaultCost = 12

var (
	// ErrNoSecret is returned by NewVerifier when neither a password nor
	// a password hash is configured.
	ErrNoSecret = errors.New("no admin secret configured")

	// ErrAccessDenied is returned by Gate when every attempt failed.
	ErrAccessDenied = errors.New("access denied")
)

// Verifier checks candidate admin secrets.
type Verifier struct {
	hash  []byte
	plain []byte
}

// NewVerifier builds a verifier from configured values. A non-empty
// passwordHash takes precedence over password and must be a well-formed
// bcrypt hash.
func NewVerifier(password, passwordHash string) (*Verifier, error) {
	if passwordHash != "" {
		if _, err := bcrypt.Cost([]byte(passwordHash)); err != nil {
			return nil, fmt.Errorf("admin password hash: %w", err)
		}
		return &Verifier{hash: []byte(passwordHash)}, nil
	}
	if password == "" {
		return nil, ErrNoSecret
	}
	return &Verifier{plain: []byte(password)}, nil
}

// Hashed reports whether the verifier checks against a bcrypt hash.
func (v *Verifier) Hashed() bool { return v.hash != nil }

// Verify reports whether candidate matches the configured secret.
func (v *Verifier) Verify(candidate []byte) bool {
	if v.hash != nil {
		return bcrypt.CompareHashAndPassword(v.hash, candidate) == nil
	}
	return subtle.ConstantTimeCompare(v.plain, candidate) == 1
}

// Hash returns a bcrypt hash of password at DefaultCost.
func Hash(password []byte) (string, error) {
	return HashWithCost(password, DefaultCost)
}

// HashWithCost returns a bcrypt hash of password at the given cost.
func HashWithCost(password []byte, cost int) (string, error) {
	if len(password) == 0 {
		return "", fmt.Errorf("password is empty")
	}
	hash, err := bcrypt.GenerateFromPassword(password, cost)
	if err != nil {
		return "", fmt.Errorf("hashing password: %w", err)
	}
	return string(hash), nil
}

// Gate calls prompt up to attempts times, passing the 1-based attempt
// number, until a returned candidate verifies. Each candidate is zeroed
// after checking. A prompt error ends the gate immediately and is
// returned as is; running out of attempts returns ErrAccessDenied.
func (v *Verifier) Gate(attempts int, prompt func(attempt int) ([]byte, error)) error {
	for attempt := 1; attempt <= attempts; attempt++ {
		candidate, err := prompt(attempt)
		if err != nil {
			return err
		}
		ok := v.Verify(candidate)
		Zero(candidate)
		if ok {
			return nil
		}
	}
	return ErrAccessDenied
}

// Zero overwrites data with zeros.
func Zero(data []byte) {
	clear(data)
}
