package main

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/vovakirdan/snek/internal/storage"
)

func TestHistoryMissingDatabaseNotCreated(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "rounds.db")
	flagDBPath = dbPath
	t.Cleanup(func() { flagDBPath = "" })

	runHistory(nil, nil)

	if _, err := os.Stat(dbPath); !os.IsNotExist(err) {
		t.Errorf("history created %s, expected no file", dbPath)
	}
}

func TestHistoryReadsRecordedDatabase(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "rounds.db")
	store, err := storage.Open(dbPath)
	if err != nil {
		t.Fatalf("Open() failed: %v", err)
	}
	if _, err := store.SaveRound(storage.Round{Width: 20, Height: 10, Length1: 4, Length2: 3, EndReason: "quit"}); err != nil {
		t.Fatalf("SaveRound() failed: %v", err)
	}
	store.Close()

	flagDBPath = dbPath
	flagHistoryLimit = 10
	t.Cleanup(func() { flagDBPath = "" })

	// Must not exit or fail on an existing database
	runHistory(nil, nil)
}

func TestExpandHome(t *testing.T) {
	t.Setenv("HOME", "/home/snek")

	tests := []struct {
		in   string
		want string
	}{
		{"~/.snek/rounds.db", "/home/snek/.snek/rounds.db"},
		{"./rounds.db", "./rounds.db"},
		{"/tmp/rounds.db", "/tmp/rounds.db"},
	}
	for _, tt := range tests {
		if got := expandHome(tt.in); got != tt.want {
			t.Errorf("expandHome(%q) = %q, expected %q", tt.in, got, tt.want)
		}
	}
}
