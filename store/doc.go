// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

// Package store implements the bingo engine's ports and the read-side
// queries over the relational database. FieldStore is the field source,
// ScoreStore the result sink, SessionStore the session store and Catalog
// serves teams and games.
package store
