package mcp

import (
	"context"
	"log/slog"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
)

type contextKey int

const userIDKey contextKey = iota

// UserIDFromContext extracts the user ID injected by the transport layer.
func UserIDFromContext(ctx context.Context) int {
	if id, ok := ctx.Value(userIDKey).(int); ok {
		return id
	}
	return 1
}

// WithUserID returns a context with the given user ID.
func WithUserID(ctx context.Context, userID int) context.Context {
	return context.WithValue(ctx, userIDKey, userID)
}

// New creates an MCP server with all tools and resources registered.
// ds may be nil, in which case history tools are not offered.
func New(ds DataSource, version string, log *slog.Logger) *server.MCPServer {
	s := server.NewMCPServer("FitTracker", version,
		server.WithToolCapabilities(false),
		server.WithResourceCapabilities(false, false),
		server.WithInstructions("FitTracker workout calculator. Turns raw sensor packages (RUN, WLK, SWM) into distance, mean speed and calories, and lists stored workouts."),
	)

	h := &handlers{ds: ds, log: log}

	s.AddTools(
		server.ServerTool{Tool: toolCalculateWorkout, Handler: h.calculateWorkout},
		server.ServerTool{Tool: toolListVariants, Handler: h.listVariants},
	)
	if ds != nil {
		s.AddTools(
			server.ServerTool{Tool: toolGetWorkouts, Handler: h.getWorkouts},
			server.ServerTool{Tool: toolGetWorkoutStats, Handler: h.getWorkoutStats},
		)
	}

	s.AddResource(resVariants, h.variantCatalog)

	return s
}

// NewHTTPHandler serves the MCP server over streamable HTTP. Tool handlers
// receive the request context, so callers set the user with WithUserID.
func NewHTTPHandler(s *server.MCPServer) *server.StreamableHTTPServer {
	return server.NewStreamableHTTPServer(s)
}

// handlers holds dependencies for MCP tool/resource handlers.
type handlers struct {
	ds  DataSource
	log *slog.Logger
}

// --- Resource definitions ---

var resVariants = mcp.NewResource(
	"fittracker://variants",
	"Workout Variants",
	mcp.WithResourceDescription("Supported sensor codes with the order of their readings"),
	mcp.WithMIMEType("application/json"),
)
