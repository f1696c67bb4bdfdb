package storage

import (
	"context"
	"fmt"

	"github.com/claude/fittracker/internal/models"
	"github.com/google/uuid"
)

const workoutColumns = `id, user_id, code, training_type, readings, duration_h, distance_km, speed_kmh, calories_kcal, created_at`

// InsertWorkout stores a calculated workout.
func (db *DB) InsertWorkout(ctx context.Context, row models.WorkoutRow) error {
	_, err := db.Pool.Exec(ctx,
		`INSERT INTO workouts (`+workoutColumns+`)
		 VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10)`,
		row.ID, row.UserID, row.Code, row.TrainingType, row.Readings,
		row.Duration, row.Distance, row.Speed, row.Calories, row.CreatedAt)
	if err != nil {
		return fmt.Errorf("inserting workout: %w", err)
	}
	return nil
}

// QueryWorkouts returns a user's most recent workouts, newest first.
// An empty code matches every workout type.
func (db *DB) QueryWorkouts(ctx context.Context, userID int, code string, limit int) ([]models.WorkoutRow, error) {
	rows, err := db.Pool.Query(ctx,
		`SELECT `+workoutColumns+`
		 FROM workouts
		 WHERE user_id = $1 AND ($2 = '' OR code = $2)
		 ORDER BY created_at DESC
		 LIMIT $3`,
		userID, code, limit)
	if err != nil {
		return nil, fmt.Errorf("querying workouts: %w", err)
	}
	defer rows.Close()

	var result []models.WorkoutRow
	for rows.Next() {
		w, err := scanWorkout(rows)
		if err != nil {
			return nil, fmt.Errorf("scanning workout: %w", err)
		}
		result = append(result, *w)
	}
	return result, rows.Err()
}

// GetWorkout retrieves a single workout owned by the user.
func (db *DB) GetWorkout(ctx context.Context, id uuid.UUID, userID int) (*models.WorkoutRow, error) {
	row := db.Pool.QueryRow(ctx,
		`SELECT `+workoutColumns+` FROM workouts WHERE id = $1 AND user_id = $2`,
		id, userID)
	w, err := scanWorkout(row)
	if err != nil {
		return nil, notFound(err, "workout")
	}
	return w, nil
}

func scanWorkout(row interface{ Scan(dest ...any) error }) (*models.WorkoutRow, error) {
	var w models.WorkoutRow
	if err := row.Scan(&w.ID, &w.UserID, &w.Code, &w.TrainingType, &w.Readings,
		&w.Duration, &w.Distance, &w.Speed, &w.Calories, &w.CreatedAt); err != nil {
		return nil, err
	}
	return &w, nil
}
