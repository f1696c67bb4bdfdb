// Package journal keeps a local SQLite history of calculated workouts.
package journal

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/claude/fittracker/internal/workout"
	_ "modernc.org/sqlite"
)

// Journal records calculated workouts in dir/journal.db.
type Journal struct {
	db *sql.DB
}

// Entry is one recorded calculation.
type Entry struct {
	ID         int64
	Code       string
	Readings   []float64
	Info       workout.InfoMessage
	RecordedAt time.Time
}

// Open opens (or creates) the journal database at dir/journal.db.
func Open(dir string) (*Journal, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("creating journal dir %s: %w", dir, err)
	}

	db, err := sql.Open("sqlite", filepath.Join(dir, "journal.db"))
	if err != nil {
		return nil, fmt.Errorf("opening journal db: %w", err)
	}

	_, err = db.Exec(`CREATE TABLE IF NOT EXISTS entries (
		id            INTEGER PRIMARY KEY AUTOINCREMENT,
		code          TEXT NOT NULL,
		readings      TEXT NOT NULL,
		training_type TEXT NOT NULL,
		duration      REAL NOT NULL,
		distance      REAL NOT NULL,
		speed         REAL NOT NULL,
		calories      REAL NOT NULL,
		recorded_at   INTEGER NOT NULL
	)`)
	if err != nil {
		db.Close()
		return nil, fmt.Errorf("creating journal table: %w", err)
	}

	return &Journal{db: db}, nil
}

// Record stores one calculation and returns its entry ID.
func (j *Journal) Record(code string, readings []float64, info workout.InfoMessage) (int64, error) {
	raw, err := json.Marshal(readings)
	if err != nil {
		return 0, fmt.Errorf("encoding readings: %w", err)
	}
	res, err := j.db.Exec(
		`INSERT INTO entries (code, readings, training_type, duration, distance, speed, calories, recorded_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		code, string(raw), info.TrainingType, info.Duration, info.Distance, info.Speed, info.Calories,
		time.Now().UnixNano(),
	)
	if err != nil {
		return 0, fmt.Errorf("recording entry: %w", err)
	}
	return res.LastInsertId()
}

// Recent returns up to limit entries, newest first.
func (j *Journal) Recent(limit int) ([]Entry, error) {
	rows, err := j.db.Query(
		`SELECT id, code, readings, training_type, duration, distance, speed, calories, recorded_at
		 FROM entries ORDER BY id DESC LIMIT ?`, limit)
	if err != nil {
		return nil, fmt.Errorf("querying entries: %w", err)
	}
	defer rows.Close()

	var entries []Entry
	for rows.Next() {
		var e Entry
		var raw string
		var ts int64
		if err := rows.Scan(&e.ID, &e.Code, &raw, &e.Info.TrainingType,
			&e.Info.Duration, &e.Info.Distance, &e.Info.Speed, &e.Info.Calories, &ts); err != nil {
			return nil, fmt.Errorf("scanning entry: %w", err)
		}
		if err := json.Unmarshal([]byte(raw), &e.Readings); err != nil {
			return nil, fmt.Errorf("decoding readings of entry %d: %w", e.ID, err)
		}
		e.RecordedAt = time.Unix(0, ts)
		entries = append(entries, e)
	}
	return entries, rows.Err()
}

// Close closes the journal database.
func (j *Journal) Close() error {
	return j.db.Close()
}
