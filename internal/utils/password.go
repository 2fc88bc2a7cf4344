package utils

import (
	"crypto/sha256"
	"crypto/subtle"
	"encoding/hex"
	"strings"

	"golang.org/x/crypto/bcrypt"
)

// Historical member rows store an unsalted single-round SHA-256 hex
// digest of the password. That format stays verifiable so existing
// credentials survive the rewrite; it is a known weakness and new
// credentials use bcrypt whenever a positive cost is configured.
// Existing digests are never rewritten behind the member's back.

// HashPassword digests a plaintext password. With cost > 0 it produces a
// bcrypt hash; with cost <= 0 it falls back to the legacy SHA-256 hex
// format for compatibility with pre-existing tooling.
func HashPassword(plain string, cost int) (string, error) {
	if cost <= 0 {
		return LegacyHash(plain), nil
	}
	b, err := bcrypt.GenerateFromPassword([]byte(plain), cost)
	if err != nil {
		return "", err
	}
	return string(b), nil
}

// LegacyHash returns the unsalted SHA-256 hex digest used by the
// original member records.
func LegacyHash(plain string) string {
	sum := sha256.Sum256([]byte(plain))
	return hex.EncodeToString(sum[:])
}

// VerifyPassword compares a stored digest against a plaintext password,
// accepting both bcrypt hashes and legacy SHA-256 hex digests.
func VerifyPassword(hash, plain string) bool {
	if strings.HasPrefix(hash, "$2") {
		return bcrypt.CompareHashAndPassword([]byte(hash), []byte(plain)) == nil
	}
	legacy := LegacyHash(plain)
	return subtle.ConstantTimeCompare([]byte(strings.ToLower(hash)), []byte(legacy)) == 1
}
