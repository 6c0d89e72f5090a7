// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package db

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
)

type standardField struct {
	description string
	category    string
}

var standardFields = []standardField{
	{"Dreier getroffen", "offense"},
	{"Airball", "offense"},
	{"Dunking", "offense"},
	{"Korbleger nach Fastbreak", "offense"},
	{"And-One", "offense"},
	{"Buzzer Beater", "offense"},
	{"Alley-Oop", "offense"},
	{"Freiwurf daneben", "offense"},
	{"Zwei Freiwürfe getroffen", "offense"},
	{"Block", "defense"},
	{"Steal", "defense"},
	{"Offensivfoul", "defense"},
	{"Charge gezogen", "defense"},
	{"Defensivrebound", "defense"},
	{"Offensivrebound", "offense"},
	{"Schrittfehler", "violation"},
	{"Doppeldribbling", "violation"},
	{"Ball ins Aus", "violation"},
	{"24-Sekunden-Verletzung", "violation"},
	{"Rückspiel", "violation"},
	{"Technisches Foul", "foul"},
	{"Unsportliches Foul", "foul"},
	{"Spieler foult aus", "foul"},
	{"Teamfoul-Grenze erreicht", "foul"},
	{"Auszeit", "bench"},
	{"Trainer diskutiert mit Schiri", "bench"},
	{"Einwechslung von fünf Spielern", "bench"},
	{"Challenge / Videobeweis", "bench"},
	{"Zuschauer stehen auf", "crowd"},
	{"Maskottchen auf dem Feld", "crowd"},
	{"Laola-Welle", "crowd"},
	{"Gleichstand", "score"},
	{"Führungswechsel", "score"},
	{"10:0-Lauf", "score"},
	{"Verlängerung droht", "score"},
}

// SeedFields inserts the standard field pool when no standard fields
// exist yet. It reports how many fields were inserted.
func SeedFields(ctx context.Context, db *DB) (int, error) {
	var count int
	err := db.QueryRowContext(ctx, "SELECT COUNT(*) FROM bingo_fields WHERE is_standard = 1").Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("count standard fields: %w", err)
	}
	if count > 0 {
		return 0, nil
	}

	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return 0, fmt.Errorf("begin seed: %w", err)
	}
	defer tx.Rollback()

	now := time.Now().UTC().UnixMilli()
	query := db.Rebind(`
		INSERT INTO bingo_fields (id, description, category, is_standard, approved, created_at)
		VALUES (?, ?, ?, 1, 1, ?)
	`)
	for _, f := range standardFields {
		if _, err := tx.ExecContext(ctx, query, uuid.NewString(), f.description, f.category, now); err != nil {
			return 0, fmt.Errorf("insert standard field: %w", err)
		}
	}

	if err := tx.Commit(); err != nil {
		return 0, fmt.Errorf("commit seed: %w", err)
	}
	return len(standardFields), nil
}
