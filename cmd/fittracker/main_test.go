package main

import (
	"bytes"
	"context"
	"errors"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/claude/fittracker/internal/journal"
	"github.com/claude/fittracker/internal/workout"
)

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

// TestRunDemo verifies the demo packages print one message per line.
func TestRunDemo(t *testing.T) {
	var out bytes.Buffer
	if err := run(context.Background(), options{}, &out, discardLogger()); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	lines := strings.Split(strings.TrimSpace(out.String()), "\n")
	if len(lines) != 3 {
		t.Fatalf("got %d lines, want 3:\n%s", len(lines), out.String())
	}
	if !strings.Contains(lines[1], "Потрачено ккал: 699.750.") {
		t.Errorf("line 2 = %q", lines[1])
	}
}

// TestRunFailureClosesJournal verifies a failing package returns an error,
// keeps the entries recorded before it, and releases the journal.
func TestRunFailureClosesJournal(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "packages.txt")
	if err := os.WriteFile(path, []byte("RUN;15000;1;75\nRUN;15000;0;75\n"), 0644); err != nil {
		t.Fatal(err)
	}

	var out bytes.Buffer
	err := run(context.Background(), options{file: path, journalDir: dir}, &out, discardLogger())
	if !errors.Is(err, workout.ErrInvalidReading) {
		t.Fatalf("err = %v, want ErrInvalidReading", err)
	}

	j, err := journal.Open(dir)
	if err != nil {
		t.Fatalf("reopen journal: %v", err)
	}
	defer j.Close()
	entries, err := j.Recent(10)
	if err != nil {
		t.Fatalf("recent: %v", err)
	}
	if len(entries) != 1 || entries[0].Code != "RUN" {
		t.Errorf("entries = %+v, want the one package before the failure", entries)
	}
}

// TestRunHistoryRequiresJournal verifies -history without -journal is an error.
func TestRunHistoryRequiresJournal(t *testing.T) {
	if err := run(context.Background(), options{history: 5}, io.Discard, discardLogger()); err == nil {
		t.Fatal("expected error")
	}
}

// TestRunHistory verifies recorded entries are printed back.
func TestRunHistory(t *testing.T) {
	dir := t.TempDir()
	if err := run(context.Background(), options{journalDir: dir}, io.Discard, discardLogger()); err != nil {
		t.Fatalf("record run: %v", err)
	}
	var out bytes.Buffer
	if err := run(context.Background(), options{journalDir: dir, history: 2}, &out, discardLogger()); err != nil {
		t.Fatalf("history run: %v", err)
	}
	if got := strings.Count(out.String(), "Тип тренировки:"); got != 2 {
		t.Errorf("history printed %d entries, want 2:\n%s", got, out.String())
	}
}
