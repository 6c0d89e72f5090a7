// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/lukasmk87/Bball-Bingo-neo/models"
	"github.com/lukasmk87/Bball-Bingo-neo/testutil"
)

// TestFullBingoWorkflow tests the complete end-to-end workflow:
// 1. Create a session
// 2. Pick a team and a game
// 3. Start a board for the game
// 4. Score a diagonal bingo
// 5. Play to the end and submit
// 6. Verify scoreboard and stats
func TestFullBingoWorkflow(t *testing.T) {
	db := testutil.SetupTestDB(t)
	cfg := testutil.GetTestConfig()

	teamID := testutil.CreateTestTeam(t, db, "Baskets")
	testutil.CreateTestGame(t, db, teamID, "Rivals", time.Now().Add(30*time.Minute))
	testutil.AddTeamFields(t, db, teamID, "team", 10)
	testutil.AddStandardFields(t, db, 30)

	sessionHandler := NewSessionHandler(cfg)
	catalogHandler := NewCatalogHandler(db, cfg)
	gameHandler := NewGameHandler(db, cfg)
	scoreboardHandler := NewScoreboardHandler(db, cfg)

	// Step 1: Create a session
	w := httptest.NewRecorder()
	sessionHandler.CreateSession(w, httptest.NewRequest("POST", "/sessions", nil))
	if w.Code != http.StatusCreated {
		t.Fatalf("Step 1 - Create session failed: %d - %s", w.Code, w.Body.String())
	}
	var session models.CreateSessionResponse
	json.NewDecoder(w.Body).Decode(&session)
	token := session.SessionToken
	t.Log("Step 1 - Created session")

	// Step 2: Pick team and game
	w = httptest.NewRecorder()
	catalogHandler.ListTeams(w, httptest.NewRequest("GET", "/teams", nil))
	var teams []models.Team
	json.NewDecoder(w.Body).Decode(&teams)
	if len(teams) != 1 {
		t.Fatalf("Step 2 - Expected 1 team, got %d", len(teams))
	}

	req := httptest.NewRequest("GET", "/teams/"+teams[0].ID+"/games", nil)
	req.SetPathValue("id", teams[0].ID)
	w = httptest.NewRecorder()
	catalogHandler.ListGames(w, req)
	var games []models.Game
	json.NewDecoder(w.Body).Decode(&games)
	if len(games) != 1 {
		t.Fatalf("Step 2 - Expected 1 game, got %d", len(games))
	}
	gameID := games[0].ID
	t.Logf("Step 2 - Picked game against %s", games[0].Opponent)

	// Step 3: Start a board
	state := startGame(t, gameHandler, token, models.StartGameRequest{GameID: gameID, Player: "Fan"})
	if state.GameID != gameID {
		t.Errorf("Step 3 - Expected game %s, got %s", gameID, state.GameID)
	}
	team := 0
	for _, c := range state.Cells {
		if len(c.FieldID) > 5 && c.FieldID[:5] == "team-" {
			team++
		}
	}
	if team != 10 {
		t.Errorf("Step 3 - Expected all 10 team fields on the board, got %d", team)
	}
	t.Log("Step 3 - Board drawn")

	// Step 4: Diagonal bingo
	var toggled models.ToggleResponse
	for _, i := range []int{0, 6, 12, 18, 24} {
		w = toggleCell(gameHandler, token, i)
		if w.Code != http.StatusOK {
			t.Fatalf("Step 4 - Toggle %d failed: %d", i, w.Code)
		}
		json.NewDecoder(w.Body).Decode(&toggled)
	}
	if toggled.Bingo == nil || toggled.Bingo.LineType != "diagonal" {
		t.Fatalf("Step 4 - Expected diagonal bingo, got %+v", toggled.Bingo)
	}
	t.Log("Step 4 - Bingo!")

	// Step 5: Play out and submit
	for q := 0; q < 4; q++ {
		advance(t, gameHandler, token)
	}
	w = httptest.NewRecorder()
	gameHandler.SubmitGame(w, gameRequest("POST", "/game/submit", token, nil))
	if w.Code != http.StatusCreated {
		t.Fatalf("Step 5 - Submit failed: %d - %s", w.Code, w.Body.String())
	}
	t.Log("Step 5 - Submitted")

	// Step 6: Scoreboard shows the game
	w = httptest.NewRecorder()
	scoreboardHandler.ListScores(w, httptest.NewRequest("GET", "/scoreboard?game_id="+gameID, nil))
	var entries []models.ScoreEntry
	json.NewDecoder(w.Body).Decode(&entries)
	if len(entries) != 1 {
		t.Fatalf("Step 6 - Expected 1 entry, got %d", len(entries))
	}
	entry := entries[0]
	if entry.Username != "Fan" || entry.Bingos != 1 || entry.ActivatedFields != 5 || entry.QuartersPlayed != 4 {
		t.Errorf("Step 6 - Unexpected entry %+v", entry)
	}
	if entry.Game == nil || entry.Game.Team != "Baskets" || entry.Game.Opponent != "Rivals" {
		t.Errorf("Step 6 - Expected game details, got %+v", entry.Game)
	}

	w = httptest.NewRecorder()
	scoreboardHandler.GetStats(w, httptest.NewRequest("GET", "/stats", nil))
	var stats models.GlobalStats
	json.NewDecoder(w.Body).Decode(&stats)
	if stats.GamesPlayed != 1 || stats.TotalBingos != 1 {
		t.Errorf("Step 6 - Expected 1 game and 1 bingo, got %d and %d", stats.GamesPlayed, stats.TotalBingos)
	}

	var logged int
	db.QueryRow(db.Rebind("SELECT COUNT(*) FROM bingo_log WHERE game_id = ? AND winning_type = 'diagonal'"), gameID).
		Scan(&logged)
	if logged != 1 {
		t.Errorf("Step 6 - Expected 1 diagonal bingo_log row, got %d", logged)
	}
}

// TestSessionsAreIsolated verifies that one session cannot see or change
// another session's board.
func TestSessionsAreIsolated(t *testing.T) {
	h, _, first := setupGameHandler(t)
	second := newSessionToken(t, h.cfg.SessionSalt)

	startGame(t, h, first, models.StartGameRequest{Player: "One"})
	testutil.AssertStatus(t, toggleCell(h, first, 0), http.StatusOK)

	w := httptest.NewRecorder()
	h.GetGame(w, gameRequest("GET", "/game", second, nil))
	testutil.AssertStatus(t, w, http.StatusNotFound)

	state := startGame(t, h, second, models.StartGameRequest{Player: "Two"})
	if state.Player != "Two" || state.Cells[0].Active {
		t.Errorf("Expected a fresh board for the second session, got player %s", state.Player)
	}
}
