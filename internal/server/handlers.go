package server

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/claude/fittracker/internal/models"
	"github.com/claude/fittracker/internal/observability"
	"github.com/claude/fittracker/internal/storage"
	"github.com/claude/fittracker/internal/workout"
	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
)

const (
	defaultWorkoutLimit = 50
	maxWorkoutLimit     = 500
)

type calculateRequest struct {
	Code     string    `json:"code"`
	Readings []float64 `json:"readings"`
}

// CalculateResponse is the summary of one package together with its rendered text.
type CalculateResponse struct {
	workout.InfoMessage
	Message string `json:"message"`
}

type workoutResponse struct {
	models.WorkoutRow
	Message string `json:"message"`
}

func newWorkoutResponse(row models.WorkoutRow) workoutResponse {
	return workoutResponse{WorkoutRow: row, Message: row.Info().Message()}
}

func (s *Server) handleVariants(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, workout.Variants())
}

func (s *Server) handleCalculate(w http.ResponseWriter, r *http.Request) {
	req, ok := decodeCalculate(w, r)
	if !ok {
		return
	}
	info, ok := s.calculate(w, req)
	if !ok {
		return
	}
	writeJSON(w, http.StatusOK, CalculateResponse{InfoMessage: info, Message: info.Message()})
}

func (s *Server) handleCreateWorkout(w http.ResponseWriter, r *http.Request) {
	if !s.requireStore(w) {
		return
	}
	req, ok := decodeCalculate(w, r)
	if !ok {
		return
	}
	info, ok := s.calculate(w, req)
	if !ok {
		return
	}

	row := models.NewWorkoutRow(userIDFromContext(r), req.Code, req.Readings, info)
	if err := s.store.InsertWorkout(r.Context(), row); err != nil {
		s.log.Error("storing workout", "error", err)
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": err.Error()})
		return
	}
	writeJSON(w, http.StatusCreated, newWorkoutResponse(row))
}

func (s *Server) handleQueryWorkouts(w http.ResponseWriter, r *http.Request) {
	if !s.requireStore(w) {
		return
	}

	code := r.URL.Query().Get("type")
	if code != "" {
		if _, ok := workout.LookupVariant(code); !ok {
			writeJSON(w, http.StatusBadRequest, map[string]string{"error": "unknown workout type " + strconv.Quote(code)})
			return
		}
	}

	limit := defaultWorkoutLimit
	if l := r.URL.Query().Get("limit"); l != "" {
		if parsed, err := strconv.Atoi(l); err == nil && parsed > 0 {
			limit = min(parsed, maxWorkoutLimit)
		}
	}

	rows, err := s.store.QueryWorkouts(r.Context(), userIDFromContext(r), code, limit)
	if err != nil {
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": err.Error()})
		return
	}
	out := make([]workoutResponse, 0, len(rows))
	for _, row := range rows {
		out = append(out, newWorkoutResponse(row))
	}
	writeJSON(w, http.StatusOK, out)
}

func (s *Server) handleGetWorkout(w http.ResponseWriter, r *http.Request) {
	if !s.requireStore(w) {
		return
	}
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid workout ID"})
		return
	}

	row, err := s.store.GetWorkout(r.Context(), id, userIDFromContext(r))
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			writeJSON(w, http.StatusNotFound, map[string]string{"error": "workout not found"})
			return
		}
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": err.Error()})
		return
	}
	writeJSON(w, http.StatusOK, newWorkoutResponse(*row))
}

func (s *Server) handleStats(w http.ResponseWriter, r *http.Request) {
	if !s.requireStore(w) {
		return
	}
	stats, err := s.store.GetWorkoutStats(r.Context(), userIDFromContext(r))
	if err != nil {
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": err.Error()})
		return
	}
	writeJSON(w, http.StatusOK, stats)
}

func (s *Server) handleMe(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, userInfoFromContext(r))
}

type profileRequest struct {
	Email string `json:"email"`
	Bio   string `json:"bio"`
}

func (s *Server) handleUpdateProfile(w http.ResponseWriter, r *http.Request) {
	if !s.requireStore(w) {
		return
	}
	var req profileRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid JSON: " + err.Error()})
		return
	}
	u, err := s.store.UpdateProfile(r.Context(), userIDFromContext(r), req.Email, req.Bio)
	if err != nil {
		writeJSON(w, storeStatus(err), map[string]string{"error": err.Error()})
		return
	}
	writeJSON(w, http.StatusOK, u)
}

type roleRequest struct {
	Role string `json:"role"`
}

func (s *Server) handleSetRole(w http.ResponseWriter, r *http.Request) {
	if !s.requireStore(w) {
		return
	}
	id, err := strconv.Atoi(chi.URLParam(r, "id"))
	if err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid user ID"})
		return
	}
	var req roleRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid JSON: " + err.Error()})
		return
	}
	role, err := models.ParseRole(req.Role)
	if err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": err.Error()})
		return
	}

	u, err := s.store.SetUserRole(r.Context(), id, role)
	if err != nil {
		writeJSON(w, storeStatus(err), map[string]string{"error": err.Error()})
		return
	}
	s.log.Info("role changed", "user_id", id, "role", role, "by", userInfoFromContext(r).Login)
	writeJSON(w, http.StatusOK, u)
}

func decodeCalculate(w http.ResponseWriter, r *http.Request) (calculateRequest, bool) {
	var req calculateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid JSON: " + err.Error()})
		return req, false
	}
	return req, true
}

// calculate runs the package through the calculator, recording metrics.
func (s *Server) calculate(w http.ResponseWriter, req calculateRequest) (workout.InfoMessage, bool) {
	info, err := workout.Calculate(req.Code, req.Readings)
	if err != nil {
		observability.RecordCalculationError(err)
		writeJSON(w, calculationStatus(err), map[string]string{"error": err.Error()})
		return info, false
	}
	observability.RecordCalculation(info)
	return info, true
}

func (s *Server) requireStore(w http.ResponseWriter) bool {
	if s.store == nil {
		writeJSON(w, http.StatusServiceUnavailable, map[string]string{"error": "workout history is disabled"})
		return false
	}
	return true
}

// calculationStatus maps calculator errors to HTTP statuses.
func calculationStatus(err error) int {
	switch {
	case errors.Is(err, workout.ErrUnknownVariant),
		errors.Is(err, workout.ErrArityMismatch),
		errors.Is(err, workout.ErrInvalidReading):
		return http.StatusBadRequest
	}
	return http.StatusInternalServerError
}

func storeStatus(err error) int {
	switch {
	case errors.Is(err, storage.ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, storage.ErrEmailTaken):
		return http.StatusConflict
	case errors.Is(err, models.ErrInvalidRole):
		return http.StatusBadRequest
	}
	return http.StatusInternalServerError
}

// writeJSON encodes v before writing the header, so a value that cannot be
// encoded becomes a 500 instead of an empty 200.
func writeJSON(w http.ResponseWriter, status int, v any) {
	body, err := json.Marshal(v)
	if err != nil {
		status = http.StatusInternalServerError
		body, _ = json.Marshal(map[string]string{"error": "encoding response: " + err.Error()})
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	w.Write(append(body, '\n'))
}
