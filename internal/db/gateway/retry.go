package gateway

import (
	"context"
	"database/sql/driver"
	"net"
	"strings"
	"time"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/pkg/errors"
)

const (
	retryAttempts  = 3
	retryBaseDelay = 50 * time.Millisecond
)

// withRetry runs op, retrying transient connectivity failures with
// exponential backoff. Validation and constraint errors pass through
// on the first attempt.
func (g *Gateway) withRetry(ctx context.Context, op func() error) error {
	var (
		err   error
		delay = retryBaseDelay
	)

	for attempt := 0; attempt < retryAttempts; attempt++ {
		if attempt > 0 {
			select {
			case <-ctx.Done():
				return ctx.Err() //nolint:wrapcheck
			case <-time.After(delay):
			}

			delay *= 2
		}

		if err = op(); err == nil {
			return nil
		}

		if !isTransient(err) {
			return err
		}
	}

	return errors.Wrapf(ErrUnavailable, "%v", err)
}

// isTransient reports whether the error is worth retrying.
func isTransient(err error) bool {
	if errors.Is(err, driver.ErrBadConn) {
		return true
	}

	var netErr net.Error
	if errors.As(err, &netErr) {
		return true
	}

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		// class 08: connection exceptions, 53300: too_many_connections,
		// 57P03: cannot_connect_now
		return strings.HasPrefix(pgErr.Code, "08") || pgErr.Code == "53300" || pgErr.Code == "57P03"
	}

	return false
}
