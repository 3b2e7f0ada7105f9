package storage

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/vovakirdan/snek/internal/games/snake"
)

func openTestStore(t *testing.T) *Store {
	t.Helper()
	store, err := Open(filepath.Join(t.TempDir(), "test.db"))
	if err != nil {
		t.Fatalf("Open() failed: %v", err)
	}
	t.Cleanup(func() { store.Close() })
	return store
}

func TestStoreOpenClose(t *testing.T) {
	tmpDir := t.TempDir()
	dbPath := filepath.Join(tmpDir, "test.db")

	store, err := Open(dbPath)
	if err != nil {
		t.Fatalf("Open() failed: %v", err)
	}
	defer store.Close()

	// Check that the file was created
	if _, err := os.Stat(dbPath); os.IsNotExist(err) {
		t.Error("Database file was not created")
	}
}

func TestStoreNestedPath(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "subdir", "deep", "test.db")

	store, err := Open(dbPath)
	if err != nil {
		t.Fatalf("Open() with nested path failed: %v", err)
	}
	defer store.Close()

	if _, err := os.Stat(dbPath); os.IsNotExist(err) {
		t.Error("Database file was not created in nested directory")
	}
}

func TestStoreSaveAndRecent(t *testing.T) {
	store := openTestStore(t)

	for i := 1; i <= 5; i++ {
		_, err := store.SaveRound(Round{
			Ticks:     int64(i * 10),
			Width:     40,
			Height:    20,
			Length1:   3 + i,
			Length2:   3,
			EndReason: "restart",
		})
		if err != nil {
			t.Fatalf("SaveRound() failed: %v", err)
		}
	}

	rounds, err := store.RecentRounds(3)
	if err != nil {
		t.Fatalf("RecentRounds() failed: %v", err)
	}
	if len(rounds) != 3 {
		t.Fatalf("Expected 3 rounds with limit, got %d", len(rounds))
	}

	// Newest first
	if rounds[0].Ticks != 50 || rounds[1].Ticks != 40 || rounds[2].Ticks != 30 {
		t.Errorf("Rounds not in expected order: %+v", rounds)
	}
	if rounds[0].EndReason != "restart" {
		t.Errorf("EndReason = %q, expected %q", rounds[0].EndReason, "restart")
	}
	if rounds[0].Winner() != 1 {
		t.Errorf("Winner() = %d, expected 1", rounds[0].Winner())
	}
}

func TestStoreRecordRound(t *testing.T) {
	store := openTestStore(t)

	result := snake.RoundResult{Ticks: 77, Width: 30, Height: 12, Length1: 3, Length2: 6, Eaten2: 3}
	if err := store.RecordRound(result, snake.EndResize); err != nil {
		t.Fatalf("RecordRound() failed: %v", err)
	}

	rounds, err := store.RecentRounds(10)
	if err != nil {
		t.Fatalf("RecentRounds() failed: %v", err)
	}
	if len(rounds) != 1 {
		t.Fatalf("Expected 1 round, got %d", len(rounds))
	}

	r := rounds[0]
	if r.Ticks != 77 || r.Width != 30 || r.Height != 12 || r.Length2 != 6 || r.Eaten2 != 3 {
		t.Errorf("stored round = %+v, expected fields from %+v", r, result)
	}
	if r.EndReason != "resize" {
		t.Errorf("EndReason = %q, expected %q", r.EndReason, "resize")
	}
}

func TestStoreTotals(t *testing.T) {
	store := openTestStore(t)

	// Empty database
	totals, err := store.Totals()
	if err != nil {
		t.Fatalf("Totals() failed: %v", err)
	}
	if totals.Rounds != 0 || totals.BestLength != 0 {
		t.Errorf("Expected empty totals, got %+v", totals)
	}

	rounds := []Round{
		{Width: 10, Height: 10, Length1: 5, Length2: 3, EndReason: "quit"},
		{Width: 10, Height: 10, Length1: 4, Length2: 9, EndReason: "quit"},
		{Width: 10, Height: 10, Length1: 3, Length2: 3, EndReason: "quit"},
		{Width: 10, Height: 10, Length1: 7, Length2: 6, EndReason: "quit"},
	}
	for _, r := range rounds {
		if _, err := store.SaveRound(r); err != nil {
			t.Fatalf("SaveRound() failed: %v", err)
		}
	}

	totals, err = store.Totals()
	if err != nil {
		t.Fatalf("Totals() failed: %v", err)
	}
	if totals.Rounds != 4 {
		t.Errorf("Rounds = %d, expected 4", totals.Rounds)
	}
	if totals.Wins1 != 2 || totals.Wins2 != 1 || totals.Ties != 1 {
		t.Errorf("Wins = %d/%d/%d, expected 2/1/1", totals.Wins1, totals.Wins2, totals.Ties)
	}
	if totals.BestLength != 9 {
		t.Errorf("BestLength = %d, expected 9", totals.BestLength)
	}
}

func TestStoreClearRounds(t *testing.T) {
	store := openTestStore(t)

	store.SaveRound(Round{Width: 10, Height: 10, Length1: 3, Length2: 3, EndReason: "quit"})
	if err := store.ClearRounds(); err != nil {
		t.Fatalf("ClearRounds() failed: %v", err)
	}

	rounds, err := store.RecentRounds(10)
	if err != nil {
		t.Fatalf("RecentRounds() failed: %v", err)
	}
	if len(rounds) != 0 {
		t.Errorf("Expected 0 rounds after clear, got %d", len(rounds))
	}
}
