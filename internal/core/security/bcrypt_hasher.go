// Package security holds the password hashing used for stored credentials.
package security

import (
	"crypto/sha256"
	"encoding/base64"
	"fmt"
	"strings"

	"golang.org/x/crypto/bcrypt"

	"github.com/smartstore/store-system/internal/core/ports"
)

// bcryptMaxInput is the longest input bcrypt accepts.
const bcryptMaxInput = 72

// bcryptPrefixes are the algorithm tags bcrypt writes at the start of a hash.
var bcryptPrefixes = []string{"$2a$", "$2b$", "$2y$"}

// BcryptHasher implements ports.PasswordHasher with bcrypt.
type BcryptHasher struct {
	cost int
}

var _ ports.PasswordHasher = (*BcryptHasher)(nil)

// NewBcryptHasher returns a hasher using bcrypt.DefaultCost.
func NewBcryptHasher() *BcryptHasher {
	return &BcryptHasher{cost: bcrypt.DefaultCost}
}

// NewBcryptHasherWithCost returns a hasher with a custom work factor.
// Costs outside bcrypt's accepted range fall back to bcrypt.DefaultCost.
func NewBcryptHasherWithCost(cost int) *BcryptHasher {
	if cost < bcrypt.MinCost || cost > bcrypt.MaxCost {
		cost = bcrypt.DefaultCost
	}
	return &BcryptHasher{cost: cost}
}

// Hash generates a salted bcrypt hash. It accepts input of any length.
func (h *BcryptHasher) Hash(plaintext string) (string, error) {
	b, err := bcrypt.GenerateFromPassword(bcryptInput(plaintext), h.cost)
	if err != nil {
		return "", fmt.Errorf("hash password: %w", err)
	}
	return string(b), nil
}

// IsHashed reports whether stored looks like bcrypt output.
func (h *BcryptHasher) IsHashed(stored string) bool {
	tagged := false
	for _, p := range bcryptPrefixes {
		if strings.HasPrefix(stored, p) {
			tagged = true
			break
		}
	}
	if !tagged {
		return false
	}
	_, err := bcrypt.Cost([]byte(stored))
	return err == nil
}

// Verify compares plaintext against a bcrypt hash. bcrypt compares the
// derived keys with crypto/subtle.
func (h *BcryptHasher) Verify(plaintext, stored string) bool {
	return bcrypt.CompareHashAndPassword([]byte(stored), bcryptInput(plaintext)) == nil
}

// bcryptInput passes passwords up to 72 bytes through unchanged, so hashes
// written by other bcrypt implementations keep verifying. Longer passwords
// are reduced to the base64 SHA-256 digest, which fits.
func bcryptInput(plaintext string) []byte {
	if len(plaintext) <= bcryptMaxInput {
		return []byte(plaintext)
	}
	sum := sha256.Sum256([]byte(plaintext))
	return []byte(base64.StdEncoding.EncodeToString(sum[:]))
}
