// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package auth provides session tokens and hashing utilities.

# Session Tokens

A session token identifies one browsing session and with it one bingo
game. It is a random 16-byte hex id followed by its HMAC-SHA256
signature:

	token, sessionID, err := auth.GenerateSessionToken(salt)
	sessionID, err := auth.ValidateSessionToken(token, salt)

The signature is URL-safe base64 encoded without padding. Since it is
deterministic, tokens are validated without storing them; the session id
is the key of the stored game.

Validation errors:

  - ErrInvalidToken: malformed token
  - ErrInvalidSessionToken: signature does not match

# ID Generation

Random hex IDs:

	id, err := auth.GenerateID(16)  // 32 hex characters

# IP Hashing

Client IPs are only ever stored hashed:

	hash := auth.HashIP(ipAddress, salt)

Returns first 8 bytes (16 hex chars) of HMAC-SHA256.
*/
package auth
