package auth

import (
	"strings"
	"testing"
)

// cheapParams keep tests fast; production uses DefaultParams.
var cheapParams = Params{Time: 1, Memory: 1024, Threads: 1, KeyLen: 32, SaltLen: 16}

func TestHasher_DefaultParamsFormat(t *testing.T) {
	t.Parallel()

	hash, err := NewHasher(DefaultParams).Hash("correct horse battery staple")
	if err != nil {
		t.Fatalf("Hash failed: %v", err)
	}

	parts := strings.Split(hash, "$")
	if len(parts) != 6 {
		t.Fatalf("Hash should have 6 parts, got: %d", len(parts))
	}
	if parts[1] != "argon2id" {
		t.Errorf("Expected argon2id algorithm, got: %s", parts[1])
	}
	if parts[2] != "v=19" {
		t.Errorf("Expected v=19, got: %s", parts[2])
	}
	if parts[3] != "m=65536,t=3,p=4" {
		t.Errorf("Expected m=65536,t=3,p=4, got: %s", parts[3])
	}
}

func TestHasher_HashIsSalted(t *testing.T) {
	t.Parallel()

	h := NewHasher(cheapParams)

	hash1, err := h.Hash("the same password")
	if err != nil {
		t.Fatalf("Hash failed: %v", err)
	}
	hash2, err := h.Hash("the same password")
	if err != nil {
		t.Fatalf("Hash failed: %v", err)
	}

	if hash1 == hash2 {
		t.Error("Same password should produce different hashes due to random salt")
	}
	if !strings.Contains(hash1, "m=1024,t=1,p=1") {
		t.Errorf("Hash should carry its own parameters, got: %s", hash1)
	}
}

func TestHasher_Check(t *testing.T) {
	t.Parallel()

	h := NewHasher(cheapParams)
	hash, err := h.Hash("hunter2hunter2")
	if err != nil {
		t.Fatalf("Hash failed: %v", err)
	}

	tests := []struct {
		name     string
		password string
		stored   string
		want     bool
	}{
		{"hashed match", "hunter2hunter2", hash, true},
		{"hashed mismatch", "hunter3hunter3", hash, false},
		{"legacy plaintext match", "oldpassword1", "oldpassword1", true},
		{"legacy plaintext mismatch", "oldpassword1", "oldpassword2", false},
		{"legacy plaintext prefix", "oldpass", "oldpassword1", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			got, err := h.Check(tt.password, tt.stored)
			if err != nil {
				t.Fatalf("Check failed: %v", err)
			}
			if got != tt.want {
				t.Errorf("Check(%q) = %v, want %v", tt.password, got, tt.want)
			}
		})
	}
}

func TestVerifyPassword_InvalidHashFormat(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		hash string
	}{
		{"empty", ""},
		{"wrong format", "not-a-hash"},
		{"wrong algorithm", "$bcrypt$v=19$m=65536,t=3,p=4$salt$hash"},
		{"missing parts", "$argon2id$v=19$m=65536"},
		{"bad salt", "$argon2id$v=19$m=1024,t=1,p=1$***$c29tZWhhc2g"},
		{"empty key", "$argon2id$v=19$m=1024,t=1,p=1$c29tZXNhbHQ$"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			if _, err := VerifyPassword("password", tt.hash); err != ErrInvalidHash {
				t.Errorf("VerifyPassword(%q) error = %v, want ErrInvalidHash", tt.hash, err)
			}
		})
	}
}

func TestVerifyPassword_WrongVersion(t *testing.T) {
	t.Parallel()

	hash := "$argon2id$v=18$m=65536,t=3,p=4$c29tZXNhbHRoZXJl$c29tZWhhc2hoZXJl"

	match, err := VerifyPassword("password", hash)
	if err != ErrIncompatibleVersion {
		t.Errorf("Expected ErrIncompatibleVersion, got: %v", err)
	}
	if match {
		t.Error("Should not match with incompatible version")
	}
}

func TestHasher_CheckMalformedPHC(t *testing.T) {
	t.Parallel()

	h := NewHasher(cheapParams)
	if _, err := h.Check("pw", "$argon2id$garbage"); err != ErrInvalidHash {
		t.Errorf("Check on malformed PHC error = %v, want ErrInvalidHash", err)
	}
}
