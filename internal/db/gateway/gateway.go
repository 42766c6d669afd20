// Package gateway owns the database connection pool and serves typed
// CRUD over users behind a one-time migration barrier.
package gateway

import (
	"context"
	"sync"
	"time"

	"github.com/pkg/errors"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"github.com/go-scaffold/go-scaffold/internal/config"
	"github.com/go-scaffold/go-scaffold/internal/db/dsn"
)

const (
	// connectTimeout bounds the initial connectivity probe.
	connectTimeout = 5 * time.Second

	connMaxIdleTime = 5 * time.Minute
)

// state tracks the pool lifecycle: Uninitialized, Connecting, Ready, Closed.
type state int

const (
	stateUninitialized state = iota
	stateConnecting
	stateReady
	stateClosed
)

// Gateway is the live, connected database handle. It is safe for
// concurrent use; individual connections are owned by one operation at
// a time and returned to the pool when the call ends, on every exit
// path including cancellation.
type Gateway struct {
	mu       sync.RWMutex
	db       *gorm.DB
	state    state
	migrated bool
}

// Connect establishes a pool bounded by cfg.MaxConnections and verifies
// connectivity once. Connections are created lazily up to the bound and
// reused; a broken idle connection is discarded and replaced by the
// pool, never handed back to a caller.
func Connect(ctx context.Context, cfg config.Database) (*Gateway, error) {
	return open(ctx, postgres.Open(dsn.Create(&cfg)), cfg.MaxConnections)
}

// open is shared between Connect and the test harness, which swaps in a
// sqlite dialector.
func open(ctx context.Context, dialector gorm.Dialector, maxConns int) (*Gateway, error) {
	g := &Gateway{state: stateConnecting}

	db, err := gorm.Open(dialector, &gorm.Config{TranslateError: true})
	if err != nil {
		g.state = stateUninitialized
		return nil, errors.Wrapf(ErrConnectionFailed, "%v", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		g.state = stateUninitialized
		return nil, errors.Wrapf(ErrConnectionFailed, "%v", err)
	}

	sqlDB.SetMaxOpenConns(maxConns)
	sqlDB.SetMaxIdleConns(maxConns)
	sqlDB.SetConnMaxIdleTime(connMaxIdleTime)

	pingCtx, cancel := context.WithTimeout(ctx, connectTimeout)
	defer cancel()

	if err = sqlDB.PingContext(pingCtx); err != nil {
		_ = sqlDB.Close()
		g.state = stateUninitialized

		return nil, errors.Wrapf(ErrConnectionFailed, "%v", err)
	}

	g.db = db
	g.state = stateReady

	return g, nil
}

// Ping verifies connectivity. It is allowed before Migrate has run.
func (g *Gateway) Ping(ctx context.Context) error {
	db, err := g.handle(false)
	if err != nil {
		return err
	}

	return g.withRetry(ctx, func() error {
		sqlDB, err := db.DB()
		if err != nil {
			return err
		}

		return sqlDB.PingContext(ctx)
	})
}

// Close shuts the pool down. Closing twice is fine; every other
// operation afterwards fails with ErrClosed.
func (g *Gateway) Close() error {
	g.mu.Lock()
	defer g.mu.Unlock()

	if g.state == stateClosed {
		return nil
	}

	g.state = stateClosed

	if g.db == nil {
		return nil
	}

	sqlDB, err := g.db.DB()
	if err != nil {
		return errors.Wrap(err, "closing pool")
	}

	return errors.Wrap(sqlDB.Close(), "closing pool")
}

// handle returns the gorm handle if the gateway is usable for the
// requested kind of operation.
func (g *Gateway) handle(requireSchema bool) (*gorm.DB, error) {
	g.mu.RLock()
	defer g.mu.RUnlock()

	switch g.state {
	case stateReady:
	case stateClosed:
		return nil, ErrClosed
	default:
		return nil, ErrConnectionFailed
	}

	if requireSchema && !g.migrated {
		return nil, ErrSchemaNotReady
	}

	return g.db, nil
}
