package mcp

import (
	"context"

	"github.com/claude/fittracker/internal/models"
	"github.com/claude/fittracker/internal/storage"
)

// DataSource is the workout history MCP tools read from.
type DataSource interface {
	QueryWorkouts(ctx context.Context, userID int, code string, limit int) ([]models.WorkoutRow, error)
	GetWorkoutStats(ctx context.Context, userID int) (*storage.WorkoutStats, error)
}

// Compile-time check: *storage.DB satisfies DataSource.
var _ DataSource = (*storage.DB)(nil)
