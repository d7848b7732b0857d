package security

import (
	"strings"
	"testing"
)

func TestGenerateKey(t *testing.T) {
	key, err := GenerateKey()
	if err != nil {
		t.Fatalf("GenerateKey failed: %v", err)
	}
	if !strings.HasPrefix(key, KeyPrefix) {
		t.Errorf("expected prefix %s, got %s", KeyPrefix, key)
	}
	if len(key) != len(KeyPrefix)+32 {
		t.Errorf("unexpected key length %d", len(key))
	}

	other, _ := GenerateKey()
	if key == other {
		t.Error("two generated keys should differ")
	}
}

func TestVerifyKey(t *testing.T) {
	key, _ := GenerateKey()
	hash := HashKey(key)

	if !VerifyKey(key, hash) {
		t.Error("expected key to verify against its own hash")
	}
	if VerifyKey("wrong-key", hash) {
		t.Error("wrong key must not verify")
	}
}
