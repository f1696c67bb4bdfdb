package models

import (
	"errors"
	"fmt"
	"strings"
)

// Role is a user's permission level.
type Role string

const (
	RoleUser      Role = "user"
	RoleModerator Role = "moderator"
	RoleAdmin     Role = "admin"
)

// DefaultRole is assigned to newly created users.
const DefaultRole = RoleUser

var ErrInvalidRole = errors.New("invalid role")

// roleLabels maps each role to its display label.
var roleLabels = map[Role]string{
	RoleUser:      "User",
	RoleModerator: "Moderator",
	RoleAdmin:     "Admin",
}

// Valid reports whether r is one of the known roles.
func (r Role) Valid() bool {
	_, ok := roleLabels[r]
	return ok
}

// Label returns the human-readable name of the role.
func (r Role) Label() string {
	if l, ok := roleLabels[r]; ok {
		return l
	}
	return string(r)
}

// ParseRole normalizes case and surrounding space. An empty string yields
// DefaultRole.
func ParseRole(s string) (Role, error) {
	s = strings.ToLower(strings.TrimSpace(s))
	if s == "" {
		return DefaultRole, nil
	}
	r := Role(s)
	if !r.Valid() {
		return "", fmt.Errorf("%w: %q", ErrInvalidRole, s)
	}
	return r, nil
}
