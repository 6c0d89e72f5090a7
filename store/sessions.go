// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/lukasmk87/Bball-Bingo-neo/db"
)

// SessionStore keeps serialized game sessions in the game_session table.
type SessionStore struct {
	db  *db.DB
	now func() time.Time
}

func NewSessionStore(d *db.DB) *SessionStore {
	return &SessionStore{db: d, now: time.Now}
}

func (s *SessionStore) Load(ctx context.Context, key string) ([]byte, bool, error) {
	if err := ctx.Err(); err != nil {
		return nil, false, err
	}
	if strings.TrimSpace(key) == "" {
		return nil, false, fmt.Errorf("session key is required")
	}

	var state string
	err := s.db.QueryRowContext(ctx, s.db.Rebind("SELECT state FROM game_session WHERE session_key = ?"), key).Scan(&state)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("load session: %w", err)
	}
	return []byte(state), true, nil
}

func (s *SessionStore) Save(ctx context.Context, key string, data []byte) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if strings.TrimSpace(key) == "" {
		return fmt.Errorf("session key is required")
	}

	_, err := s.db.ExecContext(ctx, s.db.Rebind(`
		INSERT INTO game_session (session_key, state, updated_at)
		VALUES (?, ?, ?)
		ON CONFLICT (session_key) DO UPDATE SET
			state = excluded.state,
			updated_at = excluded.updated_at
	`), key, string(data), toMillis(s.now()))
	if err != nil {
		return fmt.Errorf("save session: %w", err)
	}
	return nil
}

func (s *SessionStore) Clear(ctx context.Context, key string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	_, err := s.db.ExecContext(ctx, s.db.Rebind("DELETE FROM game_session WHERE session_key = ?"), key)
	if err != nil {
		return fmt.Errorf("clear session: %w", err)
	}
	return nil
}

// Purge deletes sessions not touched since cutoff and reports how many
// were removed.
func (s *SessionStore) Purge(ctx context.Context, cutoff time.Time) (int64, error) {
	if err := ctx.Err(); err != nil {
		return 0, err
	}
	res, err := s.db.ExecContext(ctx, s.db.Rebind("DELETE FROM game_session WHERE updated_at < ?"), toMillis(cutoff))
	if err != nil {
		return 0, fmt.Errorf("purge sessions: %w", err)
	}
	return res.RowsAffected()
}
