// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/lukasmk87/Bball-Bingo-neo/db"
	"github.com/lukasmk87/Bball-Bingo-neo/models"
)

var ErrTeamNotFound = errors.New("team not found")

// Catalog serves the teams and games a player picks from.
type Catalog struct {
	db *db.DB
}

func NewCatalog(d *db.DB) *Catalog {
	return &Catalog{db: d}
}

// ListTeams returns all teams that are not blocked, ordered by name.
func (c *Catalog) ListTeams(ctx context.Context) ([]models.Team, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	rows, err := c.db.QueryContext(ctx, "SELECT id, name, club FROM teams WHERE blocked = 0 ORDER BY name, id")
	if err != nil {
		return nil, fmt.Errorf("query teams: %w", err)
	}
	defer rows.Close()

	teams := []models.Team{}
	for rows.Next() {
		var t models.Team
		if err := rows.Scan(&t.ID, &t.Name, &t.Club); err != nil {
			return nil, fmt.Errorf("scan team: %w", err)
		}
		teams = append(teams, t)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate teams: %w", err)
	}
	return teams, nil
}

// ListUpcomingGames returns the team's games starting at or after since,
// ordered by start time. It fails with ErrTeamNotFound for unknown or
// blocked teams.
func (c *Catalog) ListUpcomingGames(ctx context.Context, teamID string, since time.Time) ([]models.Game, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	var exists int
	err := c.db.QueryRowContext(ctx, c.db.Rebind("SELECT 1 FROM teams WHERE id = ? AND blocked = 0"), teamID).Scan(&exists)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrTeamNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("look up team: %w", err)
	}

	rows, err := c.db.QueryContext(ctx, c.db.Rebind(`
		SELECT id, team_id, opponent, location, status, starts_at
		FROM games
		WHERE team_id = ? AND starts_at >= ?
		ORDER BY starts_at, id
	`), teamID, toMillis(since))
	if err != nil {
		return nil, fmt.Errorf("query games: %w", err)
	}
	defer rows.Close()

	games := []models.Game{}
	for rows.Next() {
		var (
			g        models.Game
			startsAt int64
		)
		if err := rows.Scan(&g.ID, &g.TeamID, &g.Opponent, &g.Location, &g.Status, &startsAt); err != nil {
			return nil, fmt.Errorf("scan game: %w", err)
		}
		g.StartsAt = fromMillis(startsAt)
		games = append(games, g)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate games: %w", err)
	}
	return games, nil
}
