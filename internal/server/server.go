package server

import (
	"log/slog"
	"net/http"

	"github.com/claude/fittracker/internal/mcp"
	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Server holds dependencies for HTTP handlers.
type Server struct {
	store  Store
	log    *slog.Logger
	apiKey string
	whois  WhoIser
	router chi.Router
}

// New creates a new Server with all routes configured. store may be nil, in
// which case only calculation endpoints are served.
func New(store Store, apiKey string, log *slog.Logger) *Server {
	s := &Server{
		store:  store,
		log:    log,
		apiKey: apiKey,
		router: chi.NewRouter(),
	}
	s.routes()
	return s
}

// ServeHTTP implements http.Handler.
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.router.ServeHTTP(w, r)
}

func (s *Server) routes() {
	s.router.Use(RequestLogging(s.log))
	s.router.Use(CORS)

	s.router.Handle("/metrics", promhttp.Handler())

	s.router.Group(func(r chi.Router) {
		r.Use(s.identity)

		r.Get("/api/v1/variants", s.handleVariants)
		r.Post("/api/v1/calculate", s.handleCalculate)
		r.Get("/api/v1/me", s.handleMe)

		// Writes require the API key.
		r.Group(func(r chi.Router) {
			r.Use(APIKeyAuth(s.apiKey))
			r.Post("/api/v1/workouts", s.handleCreateWorkout)
			r.Put("/api/v1/me/profile", s.handleUpdateProfile)
			r.With(RequireRole(RoleAdminOnly)).Put("/api/v1/users/{id}/role", s.handleSetRole)
		})

		r.Get("/api/v1/workouts", s.handleQueryWorkouts)
		r.Get("/api/v1/workouts/{id}", s.handleGetWorkout)
		r.Get("/api/v1/stats", s.handleStats)
	})
}

// SetTailscale resolves request identities through the tailnet instead of
// the dev identity.
func (s *Server) SetTailscale(lc WhoIser) {
	s.whois = lc
}

// SetMCP mounts an MCP transport handler at /mcp.
func (s *Server) SetMCP(h http.Handler) {
	s.router.With(s.identity, mcpUser).Handle("/mcp", h)
}

// mcpUser hands the resolved caller to MCP tool handlers.
func mcpUser(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		next.ServeHTTP(w, r.WithContext(mcp.WithUserID(r.Context(), userIDFromContext(r))))
	})
}
