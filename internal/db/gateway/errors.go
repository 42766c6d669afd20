package gateway

import (
	"errors"
	"fmt"
)

var (
	// ErrConnectionFailed is returned when no connection could be
	// established within the connect timeout.
	ErrConnectionFailed = errors.New("database connection failed")

	// ErrUnavailable is returned after internal retries for a transient
	// connectivity failure are exhausted.
	ErrUnavailable = errors.New("database unavailable")

	// ErrSchemaNotReady is returned for CRUD calls issued before
	// Migrate has completed at least once on this gateway.
	ErrSchemaNotReady = errors.New("schema not ready, run migrations first")

	// ErrDuplicateEmail is returned when the email is already in use.
	ErrDuplicateEmail = errors.New("email already exists")

	// ErrInvalidInput is returned for caller errors such as an empty
	// name or email. It is never retried.
	ErrInvalidInput = errors.New("invalid input")

	// ErrNotFound is returned when an update or delete matches no row.
	ErrNotFound = errors.New("user not found")

	// ErrClosed is returned for every operation after Close.
	ErrClosed = errors.New("gateway is closed")
)

// MigrationError names the migration version that failed to apply.
type MigrationError struct {
	Version int64
	Err     error
}

func (e *MigrationError) Error() string {
	return fmt.Sprintf("migration %d failed: %v", e.Version, e.Err)
}

func (e *MigrationError) Unwrap() error {
	return e.Err
}
