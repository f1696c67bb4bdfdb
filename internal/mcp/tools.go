package mcp

import (
	"context"

	"github.com/claude/fittracker/internal/observability"
	"github.com/claude/fittracker/internal/workout"
	"github.com/mark3labs/mcp-go/mcp"
)

const (
	defaultWorkoutLimit = 20
	maxWorkoutLimit     = 500
)

// --- Tool definitions ---

var toolCalculateWorkout = mcp.NewTool("calculate_workout",
	mcp.WithDescription("Calculate distance (km), mean speed (km/h) and calories (kcal) for one sensor package. Returns the summary and its rendered message."),
	mcp.WithString("code", mcp.Required(), mcp.Description("Workout code"), mcp.Enum("RUN", "WLK", "SWM")),
	mcp.WithArray("readings", mcp.Required(),
		mcp.Description("Positional readings. RUN: steps, hours, kg. WLK: steps, hours, kg, height cm. SWM: strokes, hours, kg, pool length m, laps."),
		mcp.Items(map[string]any{"type": "number"}),
	),
)

var toolListVariants = mcp.NewTool("list_variants",
	mcp.WithDescription("List supported workout codes with the names of their readings, in order."),
)

var toolGetWorkouts = mcp.NewTool("get_workouts",
	mcp.WithDescription("List stored workouts, newest first, with optional type filter."),
	mcp.WithString("type", mcp.Description("Filter by workout code"), mcp.Enum("RUN", "WLK", "SWM")),
	mcp.WithNumber("limit", mcp.Description("Maximum number of workouts. Defaults to 20, at most 500.")),
)

var toolGetWorkoutStats = mcp.NewTool("get_workout_stats",
	mcp.WithDescription("Totals of stored workouts: count and calories overall, plus count, hours, kilometres and calories per workout code."),
)

// --- Tool handlers ---

type calculateResult struct {
	workout.InfoMessage
	Message string `json:"message"`
}

func (h *handlers) calculateWorkout(_ context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	code, err := req.RequireString("code")
	if err != nil {
		return mcp.NewToolResultError("code parameter is required"), nil
	}
	readings, err := req.RequireFloatSlice("readings")
	if err != nil {
		return mcp.NewToolResultError("readings must be an array of numbers"), nil
	}

	info, err := workout.Calculate(code, readings)
	if err != nil {
		observability.RecordCalculationError(err)
		return mcp.NewToolResultError(err.Error()), nil
	}
	observability.RecordCalculation(info)

	result, err := mcp.NewToolResultJSON(calculateResult{InfoMessage: info, Message: info.Message()})
	if err != nil {
		return mcp.NewToolResultError("serialization failed"), nil
	}
	return result, nil
}

func (h *handlers) listVariants(_ context.Context, _ mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	result, err := mcp.NewToolResultJSON(workout.Variants())
	if err != nil {
		return mcp.NewToolResultError("serialization failed"), nil
	}
	return result, nil
}

func (h *handlers) getWorkouts(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	code := req.GetString("type", "")
	if code != "" {
		if _, ok := workout.LookupVariant(code); !ok {
			return mcp.NewToolResultError("unknown workout type " + code), nil
		}
	}
	limit := req.GetInt("limit", defaultWorkoutLimit)
	if limit <= 0 {
		limit = defaultWorkoutLimit
	}
	limit = min(limit, maxWorkoutLimit)

	uid := UserIDFromContext(ctx)
	workouts, err := h.ds.QueryWorkouts(ctx, uid, code, limit)
	if err != nil {
		h.log.Error("mcp get_workouts", "error", err)
		return mcp.NewToolResultError("query failed: " + err.Error()), nil
	}

	result, err := mcp.NewToolResultJSON(workouts)
	if err != nil {
		return mcp.NewToolResultError("serialization failed"), nil
	}
	return result, nil
}

func (h *handlers) getWorkoutStats(ctx context.Context, _ mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	stats, err := h.ds.GetWorkoutStats(ctx, UserIDFromContext(ctx))
	if err != nil {
		h.log.Error("mcp get_workout_stats", "error", err)
		return mcp.NewToolResultError("query failed: " + err.Error()), nil
	}

	result, err := mcp.NewToolResultJSON(stats)
	if err != nil {
		return mcp.NewToolResultError("serialization failed"), nil
	}
	return result, nil
}
