package server

import (
	"context"

	"github.com/claude/fittracker/internal/models"
	"github.com/claude/fittracker/internal/storage"
	"github.com/google/uuid"
)

// Store is the persistence the handlers need. *storage.DB satisfies it.
type Store interface {
	InsertWorkout(ctx context.Context, row models.WorkoutRow) error
	QueryWorkouts(ctx context.Context, userID int, code string, limit int) ([]models.WorkoutRow, error)
	GetWorkout(ctx context.Context, id uuid.UUID, userID int) (*models.WorkoutRow, error)
	GetWorkoutStats(ctx context.Context, userID int) (*storage.WorkoutStats, error)
	GetOrCreateUser(ctx context.Context, login, displayName string) (*models.User, error)
	GetUser(ctx context.Context, id int) (*models.User, error)
	SetUserRole(ctx context.Context, id int, role models.Role) (*models.User, error)
	UpdateProfile(ctx context.Context, id int, email, bio string) (*models.User, error)
}

var _ Store = (*storage.DB)(nil)
