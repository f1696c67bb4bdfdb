package models

import (
	"time"

	"github.com/claude/fittracker/internal/workout"
	"github.com/google/uuid"
)

// User is a row of the users table.
type User struct {
	ID          int       `json:"id"`
	Login       string    `json:"login"`
	DisplayName string    `json:"display_name"`
	Email       *string   `json:"email,omitempty"`
	Bio         string    `json:"bio"`
	Role        Role      `json:"role"`
	CreatedAt   time.Time `json:"created_at"`
	LastSeen    time.Time `json:"last_seen"`
}

// WorkoutRow is a calculated workout as stored in the workouts table.
type WorkoutRow struct {
	ID           uuid.UUID `json:"id"`
	UserID       int       `json:"user_id"`
	Code         string    `json:"code"`
	TrainingType string    `json:"training_type"`
	Readings     []float64 `json:"readings"`
	Duration     float64   `json:"duration"`
	Distance     float64   `json:"distance"`
	Speed        float64   `json:"speed"`
	Calories     float64   `json:"calories"`
	CreatedAt    time.Time `json:"created_at"`
}

// NewWorkoutRow builds a row for a freshly calculated package.
func NewWorkoutRow(userID int, code string, readings []float64, info workout.InfoMessage) WorkoutRow {
	return WorkoutRow{
		ID:           uuid.New(),
		UserID:       userID,
		Code:         code,
		TrainingType: info.TrainingType,
		Readings:     readings,
		Duration:     info.Duration,
		Distance:     info.Distance,
		Speed:        info.Speed,
		Calories:     info.Calories,
		CreatedAt:    time.Now().UTC(),
	}
}

// Info returns the stored summary.
func (w WorkoutRow) Info() workout.InfoMessage {
	return workout.InfoMessage{
		TrainingType: w.TrainingType,
		Duration:     w.Duration,
		Distance:     w.Distance,
		Speed:        w.Speed,
		Calories:     w.Calories,
	}
}
