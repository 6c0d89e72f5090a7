// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package auth

import (
	"crypto/hmac"
	"crypto/rand"
	"crypto/sha256"
	"encoding/base64"
	"encoding/hex"
	"errors"
	"fmt"
	"strings"
)

var (
	ErrInvalidSessionToken = errors.New("invalid session token")
	ErrInvalidToken        = errors.New("invalid token format")
)

// sessionIDBytes is the entropy of a session id (32 hex chars).
const sessionIDBytes = 16

// GenerateID creates a random hex ID of the specified byte length
func GenerateID(byteLen int) (string, error) {
	b := make([]byte, byteLen)
	_, err := rand.Read(b)
	if err != nil {
		return "", fmt.Errorf("failed to generate random ID: %w", err)
	}
	return hex.EncodeToString(b), nil
}

// Sign creates an HMAC-based signature for an id.
// This is deterministic and verifiable
func Sign(id, salt string) string {
	h := hmac.New(sha256.New, []byte(salt))
	h.Write([]byte(id))
	sum := h.Sum(nil)
	// Use URL-safe base64 and trim padding for cleaner tokens
	return strings.TrimRight(base64.URLEncoding.EncodeToString(sum), "=")
}

// GenerateSessionToken creates a new session id and returns it together
// with its signed token "<id>.<signature>".
func GenerateSessionToken(salt string) (token, sessionID string, err error) {
	sessionID, err = GenerateID(sessionIDBytes)
	if err != nil {
		return "", "", err
	}
	return sessionID + "." + Sign(sessionID, salt), sessionID, nil
}

// ValidateSessionToken checks the token signature and returns the session
// id it carries.
func ValidateSessionToken(token, salt string) (string, error) {
	id, sig, ok := strings.Cut(token, ".")
	if !ok || len(id) != hex.EncodedLen(sessionIDBytes) || sig == "" {
		return "", ErrInvalidToken
	}
	if _, err := hex.DecodeString(id); err != nil {
		return "", ErrInvalidToken
	}

	expected := Sign(id, salt)
	if !hmac.Equal([]byte(sig), []byte(expected)) {
		return "", ErrInvalidSessionToken
	}
	return id, nil
}

// HashIP creates a one-way hash of an IP address for privacy
// Includes salt to prevent rainbow table attacks
func HashIP(ip, salt string) string {
	h := hmac.New(sha256.New, []byte(salt))
	h.Write([]byte(ip))
	sum := h.Sum(nil)
	// Return first 16 hex chars (64 bits) - enough for deduplication
	return hex.EncodeToString(sum[:8])
}
