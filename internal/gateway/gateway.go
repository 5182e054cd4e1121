// internal/gateway/gateway.go
//
// Employee persistence gateway.
//
// Context
// -------
// A Gateway owns exactly one connection pool, created at construction and
// established lazily on the first Insert.  Its public surface is:
//
//   - Validate(rec)             → employee.Verdict, never an error.
//   - Insert(ctx, rec)          → Outcome, after the procedure call returns.
//   - InsertAsync(ctx, rec)     → <-chan Outcome, resolves once, same rules.
//   - Submit(ctx, rec)          → Validate, then Insert only when valid.
//   - Employees / Projects      → read-only listings through the same pool.
//
// Insert trusts its caller to have validated the record.  It acquires a
// connection, binds the fixed parameter table, executes the procedure once,
// and reports success only for a clean call that affected at least one
// row.  Connection failures, execution errors, zero-row results, and even
// panics during binding or execution become a failed Outcome.
//
// Notes
// -----
//   - New is the only call that returns an error, and only for malformed
//     construction parameters.
//   - No retries.  One attempt per call.
package gateway

import (
	"context"
	"fmt"

	"github.com/go-playground/validator/v10"
	"github.com/jmoiron/sqlx"
	"go.uber.org/zap"

	"github.com/yanizio/empgate/internal/company"
	"github.com/yanizio/empgate/internal/database"
	"github.com/yanizio/empgate/internal/employee"
	"github.com/yanizio/empgate/internal/metrics"
)

/*──────────────────────────── types ───────────────────────────────────────*/

// Config identifies the target database.  Every field is required.
type Config struct {
	User     string `validate:"required"`
	Password string `validate:"required"`
	Server   string `validate:"required"`
	Database string `validate:"required"`
}

// Conn is what the gateway needs from an acquired handle.  *sqlx.DB
// satisfies it.
type Conn interface {
	sqlx.ExecerContext
	sqlx.QueryerContext
}

// Pool hands out connections.  The default is a *database.Pool; tests
// substitute stubs.
type Pool interface {
	Acquire(ctx context.Context) (Conn, error)
	Close() error
}

// Option customises a Gateway.
type Option func(*settings)

type settings struct {
	log       *zap.SugaredLogger
	pool      Pool
	poolOpts  database.Options
	opener    database.Opener
	pipeline  *employee.Pipeline
	procedure string
}

// WithLogger sets the logger for the gateway and its pool.
func WithLogger(l *zap.SugaredLogger) Option { return func(s *settings) { s.log = l } }

// WithPool replaces the pool entirely.  The gateway still owns it and
// closes it on Close.
func WithPool(p Pool) Option { return func(s *settings) { s.pool = p } }

// WithPoolOptions tunes the default pool.
func WithPoolOptions(o database.Options) Option { return func(s *settings) { s.poolOpts = o } }

// WithOpener replaces the default pool's dialer.
func WithOpener(o database.Opener) Option { return func(s *settings) { s.opener = o } }

// WithPipeline replaces the validation pipeline.
func WithPipeline(p *employee.Pipeline) Option { return func(s *settings) { s.pipeline = p } }

// WithProcedure overrides the stored procedure name.  Empty keeps
// Procedure.
func WithProcedure(name string) Option {
	return func(s *settings) {
		if name != "" {
			s.procedure = name
		}
	}
}

// Gateway validates and persists employee records.  Safe for concurrent
// use.
type Gateway struct {
	pool      Pool
	pipeline  *employee.Pipeline
	procedure string
	log       *zap.SugaredLogger
}

var validate = validator.New()

/*──────────────────────────── construction ────────────────────────────────*/

// New builds a Gateway for cfg.  The pool is created but not dialled.
func New(cfg Config, opts ...Option) (*Gateway, error) {
	if err := validate.Struct(cfg); err != nil {
		return nil, fmt.Errorf("gateway config: %w", err)
	}

	s := settings{
		log:       zap.NewNop().Sugar(),
		pipeline:  employee.NewPipeline(employee.DefaultValidators()),
		procedure: Procedure,
	}
	for _, o := range opts {
		o(&s)
	}
	if s.log == nil {
		s.log = zap.NewNop().Sugar()
	}

	pool := s.pool
	if pool == nil {
		url := database.ConnectionURL{
			User:     cfg.User,
			Password: cfg.Password,
			Server:   cfg.Server,
			Database: cfg.Database,
		}
		pool = sqlPool{database.NewPool(url, s.poolOpts,
			database.WithOpener(s.opener),
			database.WithLogger(s.log),
		)}
	}

	return &Gateway{
		pool:      pool,
		pipeline:  s.pipeline,
		procedure: s.procedure,
		log:       s.log,
	}, nil
}

// Close tears down the pool.
func (g *Gateway) Close() error { return g.pool.Close() }

// Connected reports whether the pool has dialled.  Pools that cannot tell
// report false.
func (g *Gateway) Connected() bool {
	c, ok := g.pool.(interface{ Connected() bool })
	return ok && c.Connected()
}

/*──────────────────────────── operations ──────────────────────────────────*/

// Validate runs the validation pipeline.
func (g *Gateway) Validate(rec employee.Record) employee.Verdict {
	v, field := g.pipeline.Check(rec)
	if v.OK() {
		metrics.ValidationTotal.WithLabelValues("pass", metrics.FieldNone).Inc()
	} else {
		metrics.ValidationTotal.WithLabelValues("fail", field).Inc()
		g.log.Debugw("employee rejected", "field", field, "reason", v.Reason)
	}
	return v
}

// Insert persists a validated record and returns only after the procedure
// call has completed.
func (g *Gateway) Insert(ctx context.Context, rec employee.Record) (out Outcome) {
	defer func() {
		if r := recover(); r != nil {
			out = failed(fmt.Errorf("%w: panic: %v", ErrExecution, r))
		}
		g.observe(out)
	}()

	args, err := bind(rec)
	if err != nil {
		return failed(err)
	}

	conn, err := g.pool.Acquire(ctx)
	if err != nil {
		return failed(fmt.Errorf("%w: %w", ErrConnection, err))
	}

	res, err := conn.ExecContext(ctx, g.procedure, args...)
	if err != nil {
		return failed(fmt.Errorf("%w: %s: %w", ErrExecution, g.procedure, err))
	}

	n, err := res.RowsAffected()
	if err != nil {
		return failed(fmt.Errorf("%w: rows affected: %w", ErrExecution, err))
	}
	if n < 1 {
		return Outcome{RowsAffected: n, Err: ErrNoRows}
	}
	return Outcome{OK: true, RowsAffected: n}
}

// InsertAsync runs Insert in its own goroutine.  The channel receives
// exactly one Outcome, after the procedure call has completed, and is then
// closed.
func (g *Gateway) InsertAsync(ctx context.Context, rec employee.Record) <-chan Outcome {
	ch := make(chan Outcome, 1)
	go func() {
		defer close(ch)
		ch <- g.Insert(ctx, rec)
	}()
	return ch
}

// Submit validates rec and inserts it only when valid.  The Outcome is the
// zero value when validation fails.
func (g *Gateway) Submit(ctx context.Context, rec employee.Record) (employee.Verdict, Outcome) {
	v := g.Validate(rec)
	if !v.OK() {
		return v, Outcome{}
	}
	return v, g.Insert(ctx, rec)
}

// Employees lists EMPLOYEE rows.
func (g *Gateway) Employees(ctx context.Context) ([]company.Employee, error) {
	conn, err := g.pool.Acquire(ctx)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrConnection, err)
	}
	return company.ListEmployees(ctx, conn)
}

// Projects lists WORKS_ON rows.
func (g *Gateway) Projects(ctx context.Context) ([]company.WorksOn, error) {
	conn, err := g.pool.Acquire(ctx)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrConnection, err)
	}
	return company.ListWorksOn(ctx, conn)
}

/*──────────────────────────── helpers ─────────────────────────────────────*/

func (g *Gateway) observe(o Outcome) {
	metrics.InsertTotal.WithLabelValues(o.label()).Inc()
	if o.OK {
		g.log.Infow("employee inserted", "procedure", g.procedure, "rows", o.RowsAffected)
		return
	}
	g.log.Errorw("employee insert failed", "procedure", g.procedure, "err", o.Err)
}

// sqlPool adapts *database.Pool to Pool.
type sqlPool struct{ *database.Pool }

func (p sqlPool) Acquire(ctx context.Context) (Conn, error) {
	db, err := p.Pool.Acquire(ctx)
	if err != nil {
		return nil, err
	}
	return db, nil
}

// compile-time assertion
var _ Conn = (*sqlx.DB)(nil)

