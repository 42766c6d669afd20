package app

import (
	"github.com/pkg/errors"

	"github.com/go-scaffold/go-scaffold/internal/config"
	"github.com/go-scaffold/go-scaffold/internal/db/gateway"
)

// Exit codes, one per error kind, so scripts wrapping the CLI can
// branch on the failure without parsing output.
const (
	ExitOK = iota
	ExitFailure
	ExitConfigParse
	ExitConfigInvalid
	ExitConnectionFailed
	ExitUnavailable
	ExitMigrationFailed
	ExitSchemaNotReady
	ExitDuplicateEmail
	ExitInvalidInput
	ExitNotFound
	ExitClosed
)

// ExitCode translates an error from Execute into the process exit code.
func ExitCode(err error) int {
	var migrationErr *gateway.MigrationError

	switch {
	case err == nil:
		return ExitOK
	case errors.Is(err, config.ErrParseFailure):
		return ExitConfigParse
	case errors.Is(err, config.ErrInvalidValue):
		return ExitConfigInvalid
	case errors.As(err, &migrationErr):
		return ExitMigrationFailed
	case errors.Is(err, gateway.ErrConnectionFailed):
		return ExitConnectionFailed
	case errors.Is(err, gateway.ErrUnavailable):
		return ExitUnavailable
	case errors.Is(err, gateway.ErrSchemaNotReady):
		return ExitSchemaNotReady
	case errors.Is(err, gateway.ErrDuplicateEmail):
		return ExitDuplicateEmail
	case errors.Is(err, gateway.ErrInvalidInput):
		return ExitInvalidInput
	case errors.Is(err, gateway.ErrNotFound):
		return ExitNotFound
	case errors.Is(err, gateway.ErrClosed):
		return ExitClosed
	default:
		return ExitFailure
	}
}
