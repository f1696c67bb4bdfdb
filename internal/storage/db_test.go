package storage

import (
	"errors"
	"fmt"
	"testing"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

// TestNotFoundMapsNoRows verifies that a missing row surfaces as ErrNotFound
// so handlers can answer 404 instead of 500.
func TestNotFoundMapsNoRows(t *testing.T) {
	err := notFound(fmt.Errorf("scan: %w", pgx.ErrNoRows), "workout")
	if !errors.Is(err, ErrNotFound) {
		t.Errorf("err = %v, want ErrNotFound", err)
	}
}

// TestNotFoundWrapsOtherErrors verifies other failures keep their cause and
// are not reported as missing rows.
func TestNotFoundWrapsOtherErrors(t *testing.T) {
	cause := errors.New("connection reset")
	err := notFound(cause, "user")
	if errors.Is(err, ErrNotFound) {
		t.Error("unexpected ErrNotFound")
	}
	if !errors.Is(err, cause) {
		t.Errorf("err = %v, want it to wrap the cause", err)
	}
	if got, want := err.Error(), "querying user: connection reset"; got != want {
		t.Errorf("err = %q, want %q", got, want)
	}
}

// TestIsUniqueViolation verifies duplicate-key errors are told apart from
// other Postgres errors, including when wrapped.
func TestIsUniqueViolation(t *testing.T) {
	dup := &pgconn.PgError{Code: "23505", ConstraintName: "users_email_key"}
	if !isUniqueViolation(fmt.Errorf("scan: %w", dup)) {
		t.Error("wrapped 23505 not detected")
	}
	if isUniqueViolation(&pgconn.PgError{Code: "23514"}) {
		t.Error("check violation reported as unique violation")
	}
	if isUniqueViolation(pgx.ErrNoRows) {
		t.Error("ErrNoRows reported as unique violation")
	}
}
