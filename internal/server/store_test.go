package server

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"sync"

	"github.com/claude/fittracker/internal/models"
	"github.com/claude/fittracker/internal/storage"
	"github.com/google/uuid"
)

// fakeStore is an in-memory Store for handler tests.
type fakeStore struct {
	mu       sync.Mutex
	workouts []models.WorkoutRow
	users    map[int]*models.User
	nextID   int
	failWith error
}

func newFakeStore() *fakeStore {
	return &fakeStore{
		users:  map[int]*models.User{1: {ID: 1, Login: "local", DisplayName: "Local Dev User", Role: models.RoleAdmin}},
		nextID: 2,
	}
}

func (f *fakeStore) InsertWorkout(_ context.Context, row models.WorkoutRow) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.failWith != nil {
		return f.failWith
	}
	f.workouts = append(f.workouts, row)
	return nil
}

func (f *fakeStore) QueryWorkouts(_ context.Context, userID int, code string, limit int) ([]models.WorkoutRow, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []models.WorkoutRow
	for i := len(f.workouts) - 1; i >= 0 && len(out) < limit; i-- {
		w := f.workouts[i]
		if w.UserID == userID && (code == "" || w.Code == code) {
			out = append(out, w)
		}
	}
	return out, nil
}

func (f *fakeStore) GetWorkout(_ context.Context, id uuid.UUID, userID int) (*models.WorkoutRow, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, w := range f.workouts {
		if w.ID == id && w.UserID == userID {
			return &w, nil
		}
	}
	return nil, storage.ErrNotFound
}

func (f *fakeStore) GetWorkoutStats(_ context.Context, userID int) (*storage.WorkoutStats, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.failWith != nil {
		return nil, f.failWith
	}
	stats := &storage.WorkoutStats{}
	byCode := map[string]int{}
	for _, w := range f.workouts {
		if w.UserID != userID {
			continue
		}
		stats.TotalWorkouts++
		stats.TotalCalories += w.Calories
		i, ok := byCode[w.Code]
		if !ok {
			i = len(stats.ByType)
			byCode[w.Code] = i
			stats.ByType = append(stats.ByType, storage.WorkoutTypeStat{Code: w.Code, TrainingType: w.TrainingType})
		}
		st := &stats.ByType[i]
		st.Count++
		st.TotalDuration += w.Duration
		st.TotalDistance += w.Distance
		st.TotalCalories += w.Calories
	}
	return stats, nil
}

func (f *fakeStore) GetOrCreateUser(_ context.Context, login, displayName string) (*models.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, u := range f.users {
		if u.Login == login {
			return u, nil
		}
	}
	u := &models.User{ID: f.nextID, Login: login, DisplayName: displayName, Role: models.DefaultRole}
	f.users[u.ID] = u
	f.nextID++
	return u, nil
}

func (f *fakeStore) GetUser(_ context.Context, id int) (*models.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if u, ok := f.users[id]; ok {
		return u, nil
	}
	return nil, storage.ErrNotFound
}

func (f *fakeStore) SetUserRole(_ context.Context, id int, role models.Role) (*models.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	u, ok := f.users[id]
	if !ok {
		return nil, storage.ErrNotFound
	}
	u.Role = role
	return u, nil
}

func (f *fakeStore) UpdateProfile(_ context.Context, id int, email, bio string) (*models.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	u, ok := f.users[id]
	if !ok {
		return nil, storage.ErrNotFound
	}
	for other, o := range f.users {
		if other != id && email != "" && o.Email != nil && *o.Email == email {
			return nil, storage.ErrEmailTaken
		}
	}
	if email == "" {
		u.Email = nil
	} else {
		u.Email = &email
	}
	u.Bio = bio
	return u, nil
}

var errStoreDown = errors.New("store down")

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}
