// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package cliparse

import (
	"errors"
	"flag"
	"fmt"
	"io/fs"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
)

type Config struct {
	Port         int           `env:"PORT"          envDefault:"3318"`
	DatabaseURL  string        `env:"DATABASE_URL"  envDefault:"bingo.db"`
	DatabaseType string        `env:"DATABASE_TYPE" envDefault:"sqlite"`
	SessionSalt  string        `env:"SESSION_SALT"`
	IPHashSalt   string        `env:"IP_HASH_SALT"`
	GameWindow   time.Duration `env:"GAME_WINDOW"   envDefault:"3h"`
	SessionTTL   time.Duration `env:"SESSION_TTL"   envDefault:"24h"`
	SeedFields   bool          `env:"SEED_FIELDS"   envDefault:"true"`
}

// EnvFile is loaded before the environment is parsed. Variables already
// set in the environment win over the file.
var EnvFile = ".env"

// ParseFlags reads .env, the environment and then flags, in increasing
// precedence, and validates the result.
func ParseFlags(args []string) (Config, error) {
	if err := godotenv.Load(EnvFile); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return Config{}, fmt.Errorf("load %s: %w", EnvFile, err)
	}

	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return Config{}, fmt.Errorf("parse env: %w", err)
	}

	fset := flag.NewFlagSet("bball-bingo", flag.ContinueOnError)

	// Network config (can be CLI args or env)
	fset.IntVar(&cfg.Port, "p", cfg.Port, "Server port")
	fset.StringVar(&cfg.DatabaseURL, "d", cfg.DatabaseURL, "Database URL")
	fset.StringVar(&cfg.DatabaseType, "t", cfg.DatabaseType, "Database type (sqlite or postgres)")

	// Secrets (prefer env variables, but allow CLI for dev)
	fset.StringVar(&cfg.SessionSalt, "session-salt", cfg.SessionSalt, "Session token salt (prefer env)")
	fset.StringVar(&cfg.IPHashSalt, "ip-salt", cfg.IPHashSalt, "IP hash salt (prefer env)")

	// Game behaviour
	fset.DurationVar(&cfg.GameWindow, "game-window", cfg.GameWindow, "How long a started game stays selectable")
	fset.DurationVar(&cfg.SessionTTL, "session-ttl", cfg.SessionTTL, "Idle time before a stored game is purged")
	fset.BoolVar(&cfg.SeedFields, "seed", cfg.SeedFields, "Insert the standard field pool into an empty database")

	if err := fset.Parse(args); err != nil {
		return Config{}, err
	}

	if cfg.Port <= 0 || cfg.Port > 65535 {
		return Config{}, fmt.Errorf("invalid port %d", cfg.Port)
	}
	if cfg.DatabaseURL == "" {
		return Config{}, errors.New("database URL required (use -d or DATABASE_URL env)")
	}
	if cfg.DatabaseType != "sqlite" && cfg.DatabaseType != "postgres" {
		return Config{}, fmt.Errorf("unsupported database type %q (sqlite or postgres)", cfg.DatabaseType)
	}
	if cfg.GameWindow < 0 {
		return Config{}, errors.New("game window must not be negative")
	}

	// Secrets - MUST be provided
	if cfg.SessionSalt == "" {
		return Config{}, errors.New("SESSION_SALT required")
	}
	if cfg.IPHashSalt == "" {
		cfg.IPHashSalt = cfg.SessionSalt
	}

	return cfg, nil
}
