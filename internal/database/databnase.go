// Package database centralises sqlx connection helpers for the COMPANY
// database.  The driver is denisenkom/go-mssqldb, registered as "sqlserver",
// which speaks TDS to SQL Server and Azure SQL.
//
// Public entry points:
//
//	NewPool(url, opts, ...)            – lazy, per-gateway pool (see pool.go).
//	OpenWithOptions(ctx, dsn, opts)    – the pool's default dialer.
//
// OpenWithOptions pings the database before returning so callers can fail
// fast.  Callers should Close() the returned *sqlx.DB when no longer needed.
package database

import (
	"context"
	"fmt"
	"time"

	_ "github.com/denisenkom/go-mssqldb" // registers "sqlserver"
	"github.com/jmoiron/sqlx"
)

// DriverName is the database/sql driver used for every pool.
const DriverName = "sqlserver"

// Options tunes one pool.  Zero fields fall back to DefaultOptions.
type Options struct {
	MaxOpenConns    int
	MaxIdleConns    int
	ConnMaxLifetime time.Duration
	// PingTimeout bounds the handshake when the caller's ctx has no
	// deadline.
	PingTimeout time.Duration
}

// DefaultOptions fill zero fields of Options: 10 max open, 5 idle, and a
// 30-minute connection lifetime.
var DefaultOptions = Options{
	MaxOpenConns:    10,
	MaxIdleConns:    5,
	ConnMaxLifetime: 30 * time.Minute,
	PingTimeout:     15 * time.Second,
}

func (o Options) withDefaults() Options {
	if o.MaxOpenConns <= 0 {
		o.MaxOpenConns = DefaultOptions.MaxOpenConns
	}
	if o.MaxIdleConns <= 0 {
		o.MaxIdleConns = DefaultOptions.MaxIdleConns
	}
	if o.MaxIdleConns > o.MaxOpenConns {
		o.MaxIdleConns = o.MaxOpenConns
	}
	if o.ConnMaxLifetime <= 0 {
		o.ConnMaxLifetime = DefaultOptions.ConnMaxLifetime
	}
	if o.PingTimeout <= 0 {
		o.PingTimeout = DefaultOptions.PingTimeout
	}
	return o
}

// OpenWithOptions opens and pings a pool tuned by opts.  It makes exactly
// one connection attempt.
func OpenWithOptions(ctx context.Context, dsn string, opts Options) (*sqlx.DB, error) {
	opts = opts.withDefaults()

	db, err := sqlx.Open(DriverName, dsn)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", DriverName, err)
	}
	configure(db, opts)

	if _, ok := ctx.Deadline(); !ok {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, opts.PingTimeout)
		defer cancel()
	}
	if err := db.PingContext(ctx); err != nil {
		db.Close()
		return nil, fmt.Errorf("ping %s: %w", DriverName, err)
	}
	return db, nil
}

func configure(db *sqlx.DB, opts Options) {
	db.SetMaxOpenConns(opts.MaxOpenConns)
	db.SetMaxIdleConns(opts.MaxIdleConns)
	db.SetConnMaxLifetime(opts.ConnMaxLifetime)
}
