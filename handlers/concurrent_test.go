// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"net/http"
	"net/http/httptest"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/lukasmk87/Bball-Bingo-neo/bingo"
	"github.com/lukasmk87/Bball-Bingo-neo/models"
	"github.com/lukasmk87/Bball-Bingo-neo/testutil"
)

// TestConcurrentTogglesSameSession verifies that simultaneous toggles on one
// board are serialized: every cell ends up active and exactly one bingo is
// counted for the quarter.
func TestConcurrentTogglesSameSession(t *testing.T) {
	h, _, token := setupGameHandler(t)
	startGame(t, h, token, models.StartGameRequest{Player: "Racer"})

	var successCount atomic.Int32
	var wg sync.WaitGroup

	for i := 0; i < bingo.BoardSize; i++ {
		wg.Add(1)
		go func(index int) {
			defer wg.Done()
			w := toggleCell(h, token, index)
			if w.Code == http.StatusOK {
				successCount.Add(1)
			} else {
				t.Errorf("Toggle %d failed: %d - %s", index, w.Code, w.Body.String())
			}
		}(i)
	}
	wg.Wait()

	if int(successCount.Load()) != bingo.BoardSize {
		t.Errorf("Expected %d successful toggles, got %d", bingo.BoardSize, successCount.Load())
	}

	w := httptest.NewRecorder()
	h.GetGame(w, gameRequest("GET", "/game", token, nil))
	testutil.AssertStatus(t, w, http.StatusOK)

	var state models.GameState
	testutil.AssertJSON(t, w, &state)
	active := 0
	for _, c := range state.Cells {
		if c.Active {
			active++
		}
	}
	if active != bingo.BoardSize {
		t.Errorf("Expected all %d cells active, got %d", bingo.BoardSize, active)
	}
	if state.CumulativeBingos != 1 || len(state.Events) != 1 {
		t.Errorf("Expected exactly one bingo, got %d (%d events)", state.CumulativeBingos, len(state.Events))
	}

	if n := h.locks.len(); n != 0 {
		t.Errorf("Expected session locks to be released, %d remain", n)
	}
}

// TestConcurrentAdvance verifies that racing advance requests never skip a
// quarter or run past the end of the game.
func TestConcurrentAdvance(t *testing.T) {
	h, _, token := setupGameHandler(t)
	startGame(t, h, token, models.StartGameRequest{})

	numRequests := 8
	var okCount, conflictCount atomic.Int32
	var wg sync.WaitGroup

	for i := 0; i < numRequests; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			w := httptest.NewRecorder()
			h.AdvanceQuarter(w, gameRequest("POST", "/game/advance", token, nil))
			switch w.Code {
			case http.StatusOK:
				okCount.Add(1)
			case http.StatusConflict:
				conflictCount.Add(1)
			default:
				t.Errorf("Unexpected status %d - %s", w.Code, w.Body.String())
			}
		}()
	}
	wg.Wait()

	// three advances to reach quarter 4, one to finish
	if okCount.Load() != bingo.MaxQuarter {
		t.Errorf("Expected %d successful advances, got %d", bingo.MaxQuarter, okCount.Load())
	}
	if int(conflictCount.Load()) != numRequests-bingo.MaxQuarter {
		t.Errorf("Expected %d conflicts, got %d", numRequests-bingo.MaxQuarter, conflictCount.Load())
	}

	w := httptest.NewRecorder()
	h.GetGame(w, gameRequest("GET", "/game", token, nil))
	var state models.GameState
	testutil.AssertJSON(t, w, &state)
	if !state.Finished || state.Quarter != bingo.MaxQuarter {
		t.Errorf("Expected finished game in quarter %d, got quarter %d (finished=%v)",
			bingo.MaxQuarter, state.Quarter, state.Finished)
	}
}

// TestParallelSessions verifies that independent sessions play and submit
// in parallel without interfering with each other.
func TestParallelSessions(t *testing.T) {
	h, conn, _ := setupGameHandler(t)

	numPlayers := 5
	var wg sync.WaitGroup

	for p := 0; p < numPlayers; p++ {
		wg.Add(1)
		go func(player int) {
			defer wg.Done()
			token := newSessionToken(t, h.cfg.SessionSalt)

			w := httptest.NewRecorder()
			h.StartGame(w, gameRequest("POST", "/game/start", token, nil))
			if w.Code != http.StatusOK {
				t.Errorf("Player %d start failed: %d", player, w.Code)
				return
			}

			// player p completes column p
			for row := 0; row < 5; row++ {
				if w := toggleCell(h, token, row*5+player); w.Code != http.StatusOK {
					t.Errorf("Player %d toggle failed: %d", player, w.Code)
					return
				}
			}

			w = httptest.NewRecorder()
			h.SubmitGame(w, gameRequest("POST", "/game/submit", token, nil))
			if w.Code != http.StatusCreated {
				t.Errorf("Player %d submit failed: %d - %s", player, w.Code, w.Body.String())
			}
		}(p)
	}
	wg.Wait()

	var rows, columnBingos int
	conn.QueryRow("SELECT COUNT(*) FROM scoreboard").Scan(&rows)
	conn.QueryRow("SELECT COUNT(*) FROM bingo_log WHERE winning_type = 'column'").Scan(&columnBingos)
	if rows != numPlayers {
		t.Errorf("Expected %d scoreboard rows, got %d", numPlayers, rows)
	}
	if columnBingos != numPlayers {
		t.Errorf("Expected %d column bingos, got %d", numPlayers, columnBingos)
	}
}

func TestSessionLocks(t *testing.T) {
	locks := newSessionLocks()

	unlock := locks.lock("a")
	acquired := make(chan struct{})
	go func() {
		release := locks.lock("a")
		close(acquired)
		release()
	}()

	// a different key is not blocked
	other := locks.lock("b")
	other()

	select {
	case <-acquired:
		t.Fatal("Expected second lock on the same key to wait")
	case <-time.After(20 * time.Millisecond):
	}

	unlock()
	select {
	case <-acquired:
	case <-time.After(time.Second):
		t.Fatal("Expected waiting lock to be acquired after unlock")
	}

	// give the goroutine time to release
	deadline := time.Now().Add(time.Second)
	for locks.len() != 0 && time.Now().Before(deadline) {
		time.Sleep(time.Millisecond)
	}
	if n := locks.len(); n != 0 {
		t.Errorf("Expected no lock entries, got %d", n)
	}
}
