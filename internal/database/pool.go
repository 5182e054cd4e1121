// internal/database/pool.go
//
// Lazy, per-gateway connection pool.
//
// Context
// -------
// A Pool is created when a gateway is constructed but dials nothing until
// the first Acquire.  That call opens and pings one *sqlx.DB; every later
// call reuses it.  Concurrent first callers are collapsed with singleflight
// so only one handshake is in flight.  A failed handshake is not cached, so
// the next Acquire makes a fresh single attempt.
//
// The *sqlx.DB multiplexes a bounded set of physical connections (see
// Options).  Callers must not assume they own a connection across calls.
//
// Notes
// -----
//   - Close is final.  Acquire after Close returns ErrPoolClosed.
//   - An incomplete ConnectionURL fails Acquire with ErrIncompleteURL
//     before anything is dialled.
//   - The first caller's ctx bounds the shared handshake.
package database

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"

	"github.com/jmoiron/sqlx"
	"go.uber.org/zap"
	"golang.org/x/sync/singleflight"

	"github.com/yanizio/empgate/internal/metrics"
)

// ErrPoolClosed is returned by Acquire once Close has been called.
var ErrPoolClosed = errors.New("database: pool closed")

// Opener dials a pool.  OpenWithOptions is the production opener; tests
// inject one backed by sqlmock.
type Opener func(ctx context.Context, dsn string, opts Options) (*sqlx.DB, error)

// PoolOption customises a Pool.
type PoolOption func(*Pool)

// WithOpener replaces the dialer.
func WithOpener(o Opener) PoolOption {
	return func(p *Pool) {
		if o != nil {
			p.open = o
		}
	}
}

// WithLogger sets the logger.  Default is a no-op logger.
func WithLogger(l *zap.SugaredLogger) PoolOption {
	return func(p *Pool) {
		if l != nil {
			p.log = l
		}
	}
}

// Pool owns one lazily established *sqlx.DB.  Safe for concurrent use.
type Pool struct {
	url  ConnectionURL
	opts Options
	open Opener
	log  *zap.SugaredLogger

	sfg singleflight.Group
	db  atomic.Pointer[sqlx.DB]

	mu     sync.Mutex // guards the closed transition against Store
	closed atomic.Bool
}

// NewPool returns an unconnected Pool for u.
func NewPool(u ConnectionURL, opts Options, popts ...PoolOption) *Pool {
	p := &Pool{
		url:  u,
		opts: opts.withDefaults(),
		open: OpenWithOptions,
		log:  zap.NewNop().Sugar(),
	}
	for _, o := range popts {
		o(p)
	}
	return p
}

// Acquire returns the shared handle, establishing it on first use.
func (p *Pool) Acquire(ctx context.Context) (*sqlx.DB, error) {
	if p.closed.Load() {
		return nil, ErrPoolClosed
	}
	if db := p.db.Load(); db != nil {
		return db, nil
	}

	v, err, _ := p.sfg.Do("open", func() (any, error) {
		// Double-check after singleflight barrier.
		if db := p.db.Load(); db != nil {
			return db, nil
		}
		if err := p.url.Validate(); err != nil {
			return nil, err
		}
		p.log.Debugw("db pool connecting", "url", p.url.Redacted())

		db, err := p.open(ctx, p.url.String(), p.opts)
		if err != nil {
			metrics.PoolOpenErrorsTotal.Inc()
			p.log.Errorw("db pool connect failed", "server", p.url.Server, "err", err)
			return nil, err
		}

		p.mu.Lock()
		defer p.mu.Unlock()
		if p.closed.Load() {
			if err := db.Close(); err != nil {
				p.log.Warnw("db pool close after shutdown failed", "server", p.url.Server, "err", err)
			}
			return nil, ErrPoolClosed
		}
		p.db.Store(db)

		metrics.PoolOpenTotal.Inc()
		p.log.Infow("db pool online",
			"server", p.url.Server,
			"database", p.url.Database,
			"max_open", p.opts.MaxOpenConns,
		)
		return db, nil
	})
	if err != nil {
		return nil, err
	}
	return v.(*sqlx.DB), nil
}

// Connected reports whether the pool has been established.
func (p *Pool) Connected() bool { return p.db.Load() != nil }

// Close tears the pool down.  It is safe to call more than once.
func (p *Pool) Close() error {
	p.mu.Lock()
	p.closed.Store(true)
	db := p.db.Swap(nil)
	p.mu.Unlock()

	if db == nil {
		return nil
	}
	p.log.Infow("db pool closed", "server", p.url.Server)
	return db.Close()
}
