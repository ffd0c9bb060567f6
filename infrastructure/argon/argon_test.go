package argon

import (
	"strings"
	"testing"
)

func TestHashAndVerifyAccessCode(t *testing.T) {
	hash, err := HashAccessCode("pick-run-2024")
	if err != nil {
		t.Fatalf("hash: %v", err)
	}
	if !strings.HasPrefix(hash, "$argon2id$") {
		t.Fatalf("unexpected hash format: %s", hash)
	}

	ok, err := VerifyAccessCode("pick-run-2024", hash)
	if err != nil {
		t.Fatalf("verify: %v", err)
	}
	if !ok {
		t.Fatalf("expected matching code to verify")
	}

	ok, err = VerifyAccessCode("wrong-code", hash)
	if err != nil {
		t.Fatalf("verify mismatch: %v", err)
	}
	if ok {
		t.Fatalf("expected mismatched code to fail")
	}
}

func TestHashAccessCode_EmptyRejected(t *testing.T) {
	if _, err := HashAccessCode("   "); err == nil {
		t.Fatalf("expected error for blank code")
	}
}

func TestVerifyAccessCode_MalformedHash(t *testing.T) {
	if _, err := VerifyAccessCode("code", "not-a-hash"); err == nil {
		t.Fatalf("expected error for malformed hash")
	}
}

func TestIsEncodedHash(t *testing.T) {
	if IsEncodedHash("plaincode") {
		t.Fatalf("plaintext misdetected as hash")
	}
	hash, err := HashAccessCode("abc")
	if err != nil {
		t.Fatalf("hash: %v", err)
	}
	if !IsEncodedHash(hash) {
		t.Fatalf("encoded hash not detected")
	}
}
