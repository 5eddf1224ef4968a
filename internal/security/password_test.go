package security

import (
	"bytes"
	"testing"
)

func TestHashPasswordNeverStoresPlaintext(t *testing.T) {
	hash, err := HashPassword("hunter2-hunter2")
	if err != nil {
		t.Fatalf("HashPassword failed: %v", err)
	}
	if bytes.Contains(hash, []byte("hunter2-hunter2")) {
		t.Error("hash contains the plaintext password")
	}

	ok, err := VerifyPassword("hunter2-hunter2", hash)
	if err != nil {
		t.Fatalf("VerifyPassword failed: %v", err)
	}
	if !ok {
		t.Error("correct password did not verify")
	}
}

func TestVerifyPasswordRejectsWrongPassword(t *testing.T) {
	hash, err := HashPassword("correct-password")
	if err != nil {
		t.Fatalf("HashPassword failed: %v", err)
	}

	ok, err := VerifyPassword("wrong-password", hash)
	if err != nil {
		t.Fatalf("VerifyPassword failed: %v", err)
	}
	if ok {
		t.Error("wrong password verified")
	}
}

func TestHashPasswordSaltsPerPassword(t *testing.T) {
	first, err := HashPassword("same-password")
	if err != nil {
		t.Fatalf("HashPassword failed: %v", err)
	}
	second, err := HashPassword("same-password")
	if err != nil {
		t.Fatalf("HashPassword failed: %v", err)
	}
	if bytes.Equal(first, second) {
		t.Error("two hashes of the same password are identical, salt is not random")
	}
}

// The salt and hash segments are base64 and sit between $ separators; the
// parser must split on $ rather than read greedily past them.
func TestVerifyPasswordParsesDollarSeparatedEncoding(t *testing.T) {
	hash, err := HashPasswordWithParams("separator-check", Argon2Params{
		Time: 3, Memory: 64 * 1024, Threads: 2, KeyLen: 32, SaltLen: 16,
	})
	if err != nil {
		t.Fatalf("HashPasswordWithParams failed: %v", err)
	}
	if got := bytes.Count(hash, []byte("$")); got != 5 {
		t.Fatalf("encoded hash has %d separators, want 5: %s", got, hash)
	}

	ok, err := VerifyPassword("separator-check", hash)
	if err != nil {
		t.Fatalf("VerifyPassword failed to parse its own encoding: %v", err)
	}
	if !ok {
		t.Error("correct password did not verify")
	}
}

func TestVerifyPasswordRejectsGarbageHash(t *testing.T) {
	if _, err := VerifyPassword("anything", []byte("not-an-encoded-hash")); err == nil {
		t.Error("expected error for malformed hash")
	}
}
