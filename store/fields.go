// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"math/rand/v2"
	"sync"

	"github.com/lukasmk87/Bball-Bingo-neo/bingo"
	"github.com/lukasmk87/Bball-Bingo-neo/db"
)

// MaxTeamFields caps the team-specific share of a board.
const MaxTeamFields = 15

// FieldStore draws board fields from the bingo_fields table.
type FieldStore struct {
	db *db.DB

	mu  sync.Mutex
	rng *rand.Rand
}

// NewFieldStore returns a FieldStore. A nil rng uses the global source.
func NewFieldStore(d *db.DB, rng *rand.Rand) *FieldStore {
	return &FieldStore{db: d, rng: rng}
}

// DrawFields picks up to 25 approved fields for gameID: at most
// MaxTeamFields of the game's team, the rest from the standard pool
// without duplicates, in shuffled order. A short pool yields a short list.
func (s *FieldStore) DrawFields(ctx context.Context, gameID string) ([]bingo.Field, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	teamID, err := s.teamForGame(ctx, gameID)
	if err != nil {
		return nil, err
	}

	fields := make([]bingo.Field, 0, bingo.BoardSize)
	if teamID != "" {
		team, err := s.query(ctx, `
			SELECT id, description, category FROM bingo_fields
			WHERE team_id = ? AND approved = 1
			ORDER BY id
		`, teamID)
		if err != nil {
			return nil, fmt.Errorf("load team fields: %w", err)
		}
		s.shuffle(team)
		if len(team) > MaxTeamFields {
			team = team[:MaxTeamFields]
		}
		fields = append(fields, team...)
	}

	if need := bingo.BoardSize - len(fields); need > 0 {
		standard, err := s.query(ctx, `
			SELECT id, description, category FROM bingo_fields
			WHERE is_standard = 1 AND approved = 1
			ORDER BY id
		`)
		if err != nil {
			return nil, fmt.Errorf("load standard fields: %w", err)
		}

		chosen := make(map[string]bool, len(fields))
		for _, f := range fields {
			chosen[f.ID] = true
		}
		pool := standard[:0]
		for _, f := range standard {
			if !chosen[f.ID] {
				pool = append(pool, f)
			}
		}

		s.shuffle(pool)
		if len(pool) > need {
			pool = pool[:need]
		}
		fields = append(fields, pool...)
	}

	s.shuffle(fields)
	return fields, nil
}

func (s *FieldStore) teamForGame(ctx context.Context, gameID string) (string, error) {
	if gameID == "" {
		return "", nil
	}
	var teamID string
	err := s.db.QueryRowContext(ctx, s.db.Rebind("SELECT team_id FROM games WHERE id = ?"), gameID).Scan(&teamID)
	if errors.Is(err, sql.ErrNoRows) {
		return "", nil
	}
	if err != nil {
		return "", fmt.Errorf("look up game team: %w", err)
	}
	return teamID, nil
}

func (s *FieldStore) query(ctx context.Context, query string, args ...any) ([]bingo.Field, error) {
	rows, err := s.db.QueryContext(ctx, s.db.Rebind(query), args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var fields []bingo.Field
	for rows.Next() {
		var f bingo.Field
		if err := rows.Scan(&f.ID, &f.Label, &f.Category); err != nil {
			return nil, err
		}
		fields = append(fields, f)
	}
	return fields, rows.Err()
}

func (s *FieldStore) shuffle(fields []bingo.Field) {
	swap := func(i, j int) { fields[i], fields[j] = fields[j], fields[i] }
	if s.rng == nil {
		rand.Shuffle(len(fields), swap)
		return
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.rng.Shuffle(len(fields), swap)
}
