package storage

import (
	"context"
	"fmt"

	"github.com/claude/fittracker/internal/models"
)

const userColumns = `id, login, display_name, email, bio, role, created_at, last_seen`

// GetOrCreateUser finds or creates a user by login name.
// Updates last_seen and display_name on each call. New users get the default role.
func (db *DB) GetOrCreateUser(ctx context.Context, login, displayName string) (*models.User, error) {
	row := db.Pool.QueryRow(ctx, `
		INSERT INTO users (login, display_name)
		VALUES ($1, $2)
		ON CONFLICT (login) DO UPDATE
			SET last_seen = NOW(), display_name = COALESCE(NULLIF($2, ''), users.display_name)
		RETURNING `+userColumns, login, displayName)

	u, err := scanUser(row)
	if err != nil {
		return nil, fmt.Errorf("upserting user %q: %w", login, err)
	}
	return u, nil
}

// GetUser returns a user by ID.
func (db *DB) GetUser(ctx context.Context, id int) (*models.User, error) {
	row := db.Pool.QueryRow(ctx, `SELECT `+userColumns+` FROM users WHERE id = $1`, id)
	u, err := scanUser(row)
	if err != nil {
		return nil, notFound(err, "user")
	}
	return u, nil
}

// SetUserRole changes a user's role.
func (db *DB) SetUserRole(ctx context.Context, id int, role models.Role) (*models.User, error) {
	if !role.Valid() {
		return nil, fmt.Errorf("%w: %q", models.ErrInvalidRole, role)
	}
	row := db.Pool.QueryRow(ctx,
		`UPDATE users SET role = $2 WHERE id = $1 RETURNING `+userColumns,
		id, string(role))
	u, err := scanUser(row)
	if err != nil {
		return nil, notFound(err, "user")
	}
	return u, nil
}

// UpdateProfile sets the email and bio of a user. An empty email clears it.
func (db *DB) UpdateProfile(ctx context.Context, id int, email, bio string) (*models.User, error) {
	row := db.Pool.QueryRow(ctx,
		`UPDATE users SET email = NULLIF($2, ''), bio = $3 WHERE id = $1 RETURNING `+userColumns,
		id, email, bio)
	u, err := scanUser(row)
	if err != nil {
		if isUniqueViolation(err) {
			return nil, ErrEmailTaken
		}
		return nil, notFound(err, "user")
	}
	return u, nil
}

func scanUser(row interface{ Scan(dest ...any) error }) (*models.User, error) {
	var u models.User
	var role string
	if err := row.Scan(&u.ID, &u.Login, &u.DisplayName, &u.Email, &u.Bio, &role, &u.CreatedAt, &u.LastSeen); err != nil {
		return nil, err
	}
	u.Role = models.Role(role)
	return &u, nil
}
