// Package hasher derives and verifies password hashes.
//
// A password is first reduced to the hex-encoded SHA-256 digest of its raw bytes and
// the digest is then hashed with bcrypt. The digest keeps the bcrypt input at 64 bytes,
// below the 72-byte bcrypt input limit, so long passwords are never silently truncated.
package hasher

import (
	"crypto/sha256"
	"encoding/hex"
	"errors"

	"golang.org/x/crypto/bcrypt"
)

// ErrMismatch is returned when a password does not match a stored hash.
var ErrMismatch = errors.New("password does not match hash")

// Hasher hashes passwords with a fixed bcrypt cost.
type Hasher struct {
	cost int
}

// New creates a Hasher. A cost outside the bcrypt range falls back to bcrypt.DefaultCost.
func New(cost int) *Hasher {
	if cost < bcrypt.MinCost || cost > bcrypt.MaxCost {
		cost = bcrypt.DefaultCost
	}
	return &Hasher{cost: cost}
}

// Hash returns the bcrypt hash of the password digest.
func (h *Hasher) Hash(password string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword(digest(password), h.cost)
	if err != nil {
		return "", err
	}
	return string(hash), nil
}

// Compare checks a password against a hash produced by Hash.
// It returns ErrMismatch when the password is wrong.
func (h *Hasher) Compare(hash, password string) error {
	err := bcrypt.CompareHashAndPassword([]byte(hash), digest(password))
	if errors.Is(err, bcrypt.ErrMismatchedHashAndPassword) {
		return ErrMismatch
	}
	return err
}

func digest(password string) []byte {
	sum := sha256.Sum256([]byte(password))
	out := make([]byte, hex.EncodedLen(len(sum)))
	hex.Encode(out, sum[:])
	return out
}
