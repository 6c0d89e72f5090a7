// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/google/uuid"

	"github.com/lukasmk87/Bball-Bingo-neo/bingo"
	"github.com/lukasmk87/Bball-Bingo-neo/db"
	"github.com/lukasmk87/Bball-Bingo-neo/models"
)

// Scoreboard list bounds.
const (
	DefaultScoreLimit = 10
	MaxScoreLimit     = 100
)

var ErrInvalidSubmission = errors.New("invalid submission")

// ScoreStore records finished games and serves the scoreboard.
type ScoreStore struct {
	db     *db.DB
	ipHash string
	now    func() time.Time
}

func NewScoreStore(d *db.DB) *ScoreStore {
	return &ScoreStore{db: d, now: time.Now}
}

// ForClient returns a copy that stamps recorded rows with the client's
// hashed IP.
func (s *ScoreStore) ForClient(ipHash string) *ScoreStore {
	c := *s
	c.ipHash = ipHash
	return &c
}

// Record stores the submission, one bingo_log row per event and the
// global stats update in a single transaction. It returns the new
// scoreboard id.
func (s *ScoreStore) Record(ctx context.Context, sub bingo.Submission) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	if err := sub.Validate(); err != nil {
		return "", fmt.Errorf("%w: %v", ErrInvalidSubmission, err)
	}
	// rates always follow the counters
	res := bingo.ComputeResult(sub.ActivatedFields, sub.Bingos, sub.QuartersPlayed)
	sub.WinRate, sub.FieldRate = res.WinRate, res.FieldRate

	username := strings.TrimSpace(sub.Player)
	if username == "" {
		username = models.GuestName
	}
	eventLog, err := json.Marshal(sub.EventLog)
	if err != nil {
		return "", fmt.Errorf("encode event log: %w", err)
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return "", fmt.Errorf("begin transaction: %w", err)
	}
	defer tx.Rollback()

	var gameID, gameDetails sql.NullString
	if sub.GameID != "" {
		gameID = sql.NullString{String: sub.GameID, Valid: true}
		details, err := s.gameDetails(ctx, tx, sub.GameID)
		if err != nil {
			return "", err
		}
		if details != nil {
			data, err := json.Marshal(details)
			if err != nil {
				return "", fmt.Errorf("encode game details: %w", err)
			}
			gameDetails = sql.NullString{String: string(data), Valid: true}
		}
	}

	var ipHash sql.NullString
	if s.ipHash != "" {
		ipHash = sql.NullString{String: s.ipHash, Valid: true}
	}

	now := s.now().UTC()
	scoreboardID := uuid.NewString()
	_, err = tx.ExecContext(ctx, s.db.Rebind(`
		INSERT INTO scoreboard (
			id, username, game_id, activated_fields, bingos, win_rate, field_rate,
			quarters_played, game_details, event_log, ip_hash, created_at
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`),
		scoreboardID, username, gameID, sub.ActivatedFields, sub.Bingos, sub.WinRate, sub.FieldRate,
		sub.QuartersPlayed, gameDetails, string(eventLog), ipHash, toMillis(now),
	)
	if err != nil {
		return "", fmt.Errorf("insert scoreboard: %w", err)
	}

	for _, e := range sub.EventLog {
		if err := insertBingoLog(ctx, tx, s.db, scoreboardID, gameID, e, now); err != nil {
			return "", err
		}
	}

	_, err = tx.ExecContext(ctx, s.db.Rebind(`
		UPDATE global_stats
		SET games_played = games_played + 1,
		    total_bingos = total_bingos + ?,
		    updated_at = ?
		WHERE id = 1
	`), sub.Bingos, toMillis(now))
	if err != nil {
		return "", fmt.Errorf("update global stats: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return "", fmt.Errorf("commit: %w", err)
	}

	slog.Info("result recorded",
		"scoreboard_id", scoreboardID,
		"game_id", sub.GameID,
		"bingos", sub.Bingos,
		"quarters_played", sub.QuartersPlayed,
	)
	return scoreboardID, nil
}

func (s *ScoreStore) gameDetails(ctx context.Context, tx *sql.Tx, gameID string) (*models.GameDetails, error) {
	var (
		opponent string
		startsAt int64
		team     sql.NullString
	)
	err := tx.QueryRowContext(ctx, s.db.Rebind(`
		SELECT g.opponent, g.starts_at, t.name
		FROM games g
		LEFT JOIN teams t ON g.team_id = t.id
		WHERE g.id = ?
	`), gameID).Scan(&opponent, &startsAt, &team)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("load game details: %w", err)
	}
	return &models.GameDetails{
		Team:     team.String,
		Opponent: opponent,
		StartsAt: fromMillis(startsAt),
	}, nil
}

func insertBingoLog(ctx context.Context, tx *sql.Tx, d *db.DB, scoreboardID string, gameID sql.NullString, e bingo.BingoEvent, now time.Time) error {
	// prefer the type derived from the cells over the one reported
	lineType := e.LineType
	if len(e.WinningCellIndices) == 5 {
		lineType = bingo.ClassifyLine([5]int(e.WinningCellIndices))
	}

	indices, err := json.Marshal(e.WinningCellIndices)
	if err != nil {
		return fmt.Errorf("encode winning fields: %w", err)
	}
	ids, err := json.Marshal(e.WinningCellIDs)
	if err != nil {
		return fmt.Errorf("encode winning cell ids: %w", err)
	}

	_, err = tx.ExecContext(ctx, d.Rebind(`
		INSERT INTO bingo_log (id, scoreboard_id, game_id, quarter, winning_fields, winning_cell_ids, winning_type, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)
	`), uuid.NewString(), scoreboardID, gameID, e.Quarter, string(indices), string(ids), string(lineType), toMillis(now))
	if err != nil {
		return fmt.Errorf("insert bingo log: %w", err)
	}
	return nil
}

// ListScores returns scoreboard entries, newest first.
func (s *ScoreStore) ListScores(ctx context.Context, filter models.ScoreFilter) ([]models.ScoreEntry, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	limit := filter.Limit
	if limit <= 0 {
		limit = DefaultScoreLimit
	}
	if limit > MaxScoreLimit {
		limit = MaxScoreLimit
	}

	query := `
		SELECT s.id, s.username, s.game_id, s.activated_fields, s.bingos, s.win_rate, s.field_rate,
		       s.quarters_played, s.game_details, s.created_at
		FROM scoreboard s
		WHERE 1=1`
	var args []any
	if filter.Username != "" {
		query += " AND s.username = ?"
		args = append(args, filter.Username)
	}
	if filter.GameID != "" {
		query += " AND s.game_id = ?"
		args = append(args, filter.GameID)
	}
	query += " ORDER BY s.created_at DESC, s.id LIMIT ?"
	args = append(args, limit)

	rows, err := s.db.QueryContext(ctx, s.db.Rebind(query), args...)
	if err != nil {
		return nil, fmt.Errorf("query scoreboard: %w", err)
	}
	defer rows.Close()

	now := s.now()
	entries := []models.ScoreEntry{}
	for rows.Next() {
		var (
			e         models.ScoreEntry
			gameID    sql.NullString
			details   sql.NullString
			createdAt int64
		)
		err := rows.Scan(&e.ID, &e.Username, &gameID, &e.ActivatedFields, &e.Bingos, &e.WinRate, &e.FieldRate,
			&e.QuartersPlayed, &details, &createdAt)
		if err != nil {
			return nil, fmt.Errorf("scan scoreboard: %w", err)
		}
		e.GameID = gameID.String
		if details.Valid && details.String != "" {
			var gd models.GameDetails
			if err := json.Unmarshal([]byte(details.String), &gd); err != nil {
				slog.Warn("unreadable game details", "scoreboard_id", e.ID, "error", err)
			} else {
				e.Game = &gd
			}
		}
		e.CreatedAt = fromMillis(createdAt)
		e.PlayedAgo = humanize.RelTime(e.CreatedAt, now, "ago", "from now")
		entries = append(entries, e)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate scoreboard: %w", err)
	}
	return entries, nil
}

// GlobalStats returns the running totals.
func (s *ScoreStore) GlobalStats(ctx context.Context) (models.GlobalStats, error) {
	if err := ctx.Err(); err != nil {
		return models.GlobalStats{}, err
	}

	var (
		stats     models.GlobalStats
		updatedAt int64
	)
	err := s.db.QueryRowContext(ctx, "SELECT games_played, total_bingos, updated_at FROM global_stats WHERE id = 1").
		Scan(&stats.GamesPlayed, &stats.TotalBingos, &updatedAt)
	if err != nil && !errors.Is(err, sql.ErrNoRows) {
		return models.GlobalStats{}, fmt.Errorf("query global stats: %w", err)
	}

	if stats.GamesPlayed > 0 {
		stats.BingosPerGame = float64(stats.TotalBingos) / float64(stats.GamesPlayed)
	}
	if updatedAt > 0 {
		stats.UpdatedAt = fromMillis(updatedAt)
	}
	stats.GamesPlayedText = humanize.Comma(stats.GamesPlayed)
	return stats, nil
}
