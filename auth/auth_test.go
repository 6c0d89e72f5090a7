// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package auth

import (
	"errors"
	"strings"
	"testing"
)

func TestGenerateID(t *testing.T) {
	tests := []struct {
		name    string
		byteLen int
		wantLen int // hex encoded length = byteLen * 2
	}{
		{"8 bytes", 8, 16},
		{"16 bytes", 16, 32},
		{"24 bytes", 24, 48},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			id, err := GenerateID(tt.byteLen)
			if err != nil {
				t.Fatalf("GenerateID() error = %v", err)
			}
			if len(id) != tt.wantLen {
				t.Errorf("GenerateID() length = %d, want %d", len(id), tt.wantLen)
			}
			// Verify it's valid hex
			for _, c := range id {
				if !((c >= '0' && c <= '9') || (c >= 'a' && c <= 'f')) {
					t.Errorf("GenerateID() contains invalid hex char: %c", c)
				}
			}
		})
	}

	// Test randomness - two IDs should be different
	id1, _ := GenerateID(16)
	id2, _ := GenerateID(16)
	if id1 == id2 {
		t.Error("GenerateID() produced duplicate IDs (extremely unlikely)")
	}
}

func TestSign(t *testing.T) {
	tests := []struct {
		name string
		id   string
		salt string
	}{
		{"standard", "session123", "secret-salt"},
		{"empty id", "", "salt"},
		{"empty salt", "session456", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			sig := Sign(tt.id, tt.salt)

			// Should not be empty
			if sig == "" {
				t.Error("Sign() returned empty string")
			}

			// Should be deterministic
			if sig != Sign(tt.id, tt.salt) {
				t.Error("Sign() is not deterministic")
			}

			// Should be URL-safe (no +, /, or =)
			if strings.ContainsAny(sig, "+/=") {
				t.Errorf("Sign() contains non-URL-safe chars: %s", sig)
			}

			// Different inputs should produce different signatures
			if tt.id != "" && tt.salt != "" && sig == Sign(tt.id+"x", tt.salt) {
				t.Error("Sign() produced same signature for different ids")
			}
		})
	}
}

func TestSessionTokenRoundTrip(t *testing.T) {
	token, id, err := GenerateSessionToken("salt")
	if err != nil {
		t.Fatalf("GenerateSessionToken() error = %v", err)
	}
	if !strings.HasPrefix(token, id+".") {
		t.Errorf("Expected token to start with the session id, got %s", token)
	}

	got, err := ValidateSessionToken(token, "salt")
	if err != nil {
		t.Fatalf("ValidateSessionToken() error = %v", err)
	}
	if got != id {
		t.Errorf("Expected session id %s, got %s", id, got)
	}

	other, _, _ := GenerateSessionToken("salt")
	if other == token {
		t.Error("GenerateSessionToken() produced duplicate tokens")
	}
}

func TestValidateSessionToken(t *testing.T) {
	token, id, _ := GenerateSessionToken("salt")

	tests := []struct {
		name    string
		token   string
		salt    string
		wantErr error
	}{
		{"valid", token, "salt", nil},
		{"wrong salt", token, "other", ErrInvalidSessionToken},
		{"tampered signature", token + "x", "salt", ErrInvalidSessionToken},
		{"signature of another id", strings.Repeat("a", 32) + "." + Sign(id, "salt"), "salt", ErrInvalidSessionToken},
		{"no separator", id, "salt", ErrInvalidToken},
		{"empty", "", "salt", ErrInvalidToken},
		{"short id", "abc." + Sign("abc", "salt"), "salt", ErrInvalidToken},
		{"non-hex id", strings.Repeat("z", 32) + "." + Sign(strings.Repeat("z", 32), "salt"), "salt", ErrInvalidToken},
		{"empty signature", id + ".", "salt", ErrInvalidToken},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ValidateSessionToken(tt.token, tt.salt)
			if tt.wantErr == nil {
				if err != nil {
					t.Errorf("ValidateSessionToken() error = %v", err)
				}
				return
			}
			if !errors.Is(err, tt.wantErr) {
				t.Errorf("ValidateSessionToken() error = %v, want %v", err, tt.wantErr)
			}
		})
	}
}

func TestHashIP(t *testing.T) {
	tests := []struct {
		name string
		ip   string
		salt string
	}{
		{"ipv4", "192.168.1.1", "salt"},
		{"ipv6", "2001:db8::1", "salt"},
		{"localhost", "127.0.0.1", "salt"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			hash := HashIP(tt.ip, tt.salt)

			// Should be 16 hex chars (8 bytes)
			if len(hash) != 16 {
				t.Errorf("HashIP() length = %d, want 16", len(hash))
			}

			// Should be deterministic
			if hash != HashIP(tt.ip, tt.salt) {
				t.Error("HashIP() is not deterministic")
			}

			// Different salt should produce different hash
			if hash == HashIP(tt.ip, tt.salt+"x") {
				t.Error("HashIP() produced same hash with different salt")
			}
		})
	}
}
