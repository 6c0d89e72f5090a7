package main

import (
	"context"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"strconv"
	"syscall"
	"time"

	"github.com/lukasmk87/Bball-Bingo-neo/cliparse"
	"github.com/lukasmk87/Bball-Bingo-neo/db"
	"github.com/lukasmk87/Bball-Bingo-neo/middleware"
	"github.com/lukasmk87/Bball-Bingo-neo/router"
	"github.com/lukasmk87/Bball-Bingo-neo/store"
)

func main() {
	var err error

	// Parse configuration
	cfg, err := cliparse.ParseFlags(os.Args[1:])
	if err != nil {
		slog.Error("Error parsing flags", "error", err)
		os.Exit(1)
	}

	// Connect to the database
	dbConn, err := db.Open(cfg.DatabaseType, cfg.DatabaseURL)
	if err != nil {
		slog.Error("database connection failed", "type", cfg.DatabaseType, "error", err)
		os.Exit(1)
	}
	defer dbConn.Close()

	// Create schema (tables)
	if err := db.CreateSchema(dbConn); err != nil {
		slog.Error("schema creation failed", "error", err)
		os.Exit(1)
	}
	slog.Info("Database schema ready", "type", dbConn.Dialect)

	if cfg.SeedFields {
		n, err := db.SeedFields(context.Background(), dbConn)
		if err != nil {
			slog.Error("seeding fields failed", "error", err)
			os.Exit(1)
		}
		if n > 0 {
			slog.Info("Seeded standard fields", "count", n)
		}
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go purgeSessions(ctx, store.NewSessionStore(dbConn), cfg.SessionTTL)

	// Create router
	mux := router.NewRouter(dbConn, cfg)

	// Create server
	server := http.Server{
		Handler: middleware.CORS(mux),
		Addr:    ":" + strconv.Itoa(cfg.Port),
	}

	// signal.Notify requires the channel to be buffered
	ctrlc := make(chan os.Signal, 1)
	signal.Notify(ctrlc, os.Interrupt, syscall.SIGTERM)
	go func() {
		// Wait for Ctrl-C signal
		<-ctrlc
		cancel()
		server.Close()
	}()

	// Start server
	slog.Info("Listening", "port", cfg.Port)
	err = server.ListenAndServe()
	if err != nil && err != http.ErrServerClosed {
		slog.Error("Server closed", "error", err)
	} else {
		slog.Info("Server closed", "error", err)
	}
}

// purgeSessions drops stored games idle for longer than ttl until ctx ends.
func purgeSessions(ctx context.Context, sessions *store.SessionStore, ttl time.Duration) {
	if ttl <= 0 {
		return
	}

	ticker := time.NewTicker(time.Hour)
	defer ticker.Stop()
	for {
		n, err := sessions.Purge(ctx, time.Now().Add(-ttl))
		if err != nil && ctx.Err() == nil {
			slog.Warn("session purge failed", "error", err)
		} else if n > 0 {
			slog.Info("Purged idle sessions", "count", n)
		}

		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
		}
	}
}
