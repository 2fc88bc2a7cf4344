package utils_test

import (
	"strings"
	"testing"

	"github.com/kimLalilo/boxe-reventin-planning/internal/utils"
)

func TestVerifyPasswordLegacyDigest(t *testing.T) {
	// Digest as produced by the original member import (sha256 hex).
	stored := utils.LegacyHash("gants-rouges")

	if !utils.VerifyPassword(stored, "gants-rouges") {
		t.Error("legacy digest did not verify against correct password")
	}
	if utils.VerifyPassword(stored, "gants-bleus") {
		t.Error("legacy digest verified against wrong password")
	}
	// Digest comparison is case-insensitive on the stored hex.
	if !utils.VerifyPassword(strings.ToUpper(stored), "gants-rouges") {
		t.Error("uppercase legacy digest did not verify")
	}
}

func TestVerifyPasswordBcrypt(t *testing.T) {
	hash, err := utils.HashPassword("crochet-du-gauche", 4)
	if err != nil {
		t.Fatalf("HashPassword() error = %v", err)
	}
	if hash[:2] != "$2" {
		t.Fatalf("expected bcrypt hash, got %q", hash)
	}
	if !utils.VerifyPassword(hash, "crochet-du-gauche") {
		t.Error("bcrypt hash did not verify against correct password")
	}
	if utils.VerifyPassword(hash, "uppercut") {
		t.Error("bcrypt hash verified against wrong password")
	}
}

func TestHashPasswordZeroCostKeepsLegacyFormat(t *testing.T) {
	hash, err := utils.HashPassword("directs", 0)
	if err != nil {
		t.Fatalf("HashPassword() error = %v", err)
	}
	if len(hash) != 64 {
		t.Errorf("legacy digest length = %d, want 64 hex chars", len(hash))
	}
	if hash != utils.LegacyHash("directs") {
		t.Error("zero-cost hash does not match the legacy digest")
	}
}
