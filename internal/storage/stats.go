package storage

import (
	"context"
	"fmt"
	"time"
)

// WorkoutStats holds aggregate statistics about a user's stored workouts.
type WorkoutStats struct {
	TotalWorkouts int64             `json:"total_workouts"`
	TotalCalories float64           `json:"total_calories_kcal"`
	Earliest      *time.Time        `json:"earliest"`
	Latest        *time.Time        `json:"latest"`
	ByType        []WorkoutTypeStat `json:"by_type"`
}

// WorkoutTypeStat holds summary stats for a single workout code.
type WorkoutTypeStat struct {
	Code          string  `json:"code"`
	TrainingType  string  `json:"training_type"`
	Count         int64   `json:"count"`
	TotalDuration float64 `json:"total_duration_h"`
	TotalDistance float64 `json:"total_distance_km"`
	TotalCalories float64 `json:"total_calories_kcal"`
}

// GetWorkoutStats returns aggregate statistics for a user's stored workouts.
func (db *DB) GetWorkoutStats(ctx context.Context, userID int) (*WorkoutStats, error) {
	stats := &WorkoutStats{}

	err := db.Pool.QueryRow(ctx,
		`SELECT COUNT(*), COALESCE(SUM(calories_kcal), 0), MIN(created_at), MAX(created_at)
		 FROM workouts WHERE user_id = $1`, userID,
	).Scan(&stats.TotalWorkouts, &stats.TotalCalories, &stats.Earliest, &stats.Latest)
	if err != nil {
		return nil, fmt.Errorf("counting workouts: %w", err)
	}

	rows, err := db.Pool.Query(ctx,
		`SELECT code, MIN(training_type), COUNT(*),
		        SUM(duration_h), SUM(distance_km), SUM(calories_kcal)
		 FROM workouts
		 WHERE user_id = $1
		 GROUP BY code
		 ORDER BY COUNT(*) DESC, code`, userID)
	if err != nil {
		return nil, fmt.Errorf("querying workouts by type: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var s WorkoutTypeStat
		if err := rows.Scan(&s.Code, &s.TrainingType, &s.Count,
			&s.TotalDuration, &s.TotalDistance, &s.TotalCalories); err != nil {
			return nil, fmt.Errorf("scanning workout type stat: %w", err)
		}
		stats.ByType = append(stats.ByType, s)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	return stats, nil
}
