package repository

import (
	"errors"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/oklog/ulid/v2"
)

// Common errors for repository operations.
var (
	ErrNotFound    = errors.New("record not found")
	ErrInvalidID   = errors.New("malformed record id")
	ErrEmailExists = errors.New("email already exists")
)

// NewID returns a fresh, time-ordered record identifier.
func NewID() string {
	return ulid.Make().String()
}

// ParseID checks that id is a well-formed record identifier.
func ParseID(id string) error {
	if _, err := ulid.ParseStrict(id); err != nil {
		return ErrInvalidID
	}
	return nil
}

// isUniqueViolation checks if the error is a PostgreSQL unique constraint violation.
func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == "23505"
}
