package gateway

import (
	"errors"
	"fmt"

	"github.com/yanizio/empgate/internal/metrics"
)

// Failure kinds carried by Outcome.Err.  Test with errors.Is.
var (
	ErrConnection = errors.New("gateway: connection failed")
	ErrExecution  = errors.New("gateway: procedure execution failed")
	// ErrNoRows also matches ErrExecution.
	ErrNoRows = fmt.Errorf("%w: no rows affected", ErrExecution)
	// ErrBinding means a value did not fit its procedure parameter.  The
	// procedure was not called.
	ErrBinding = errors.New("gateway: parameter binding failed")
)

// BindError names the parameter a value could not be bound to.  It matches
// ErrBinding.
type BindError struct {
	Param string // without the leading @
	Decl  string // SQL type, e.g. varchar(32)
	Err   error
}

func (e *BindError) Error() string {
	return fmt.Sprintf("bind @%s %s: %v", e.Param, e.Decl, e.Err)
}

func (e *BindError) Unwrap() error        { return e.Err }
func (e *BindError) Is(target error) bool { return target == ErrBinding }

// Outcome is the result of one persistence attempt.  OK is true only when
// the procedure ran without error and affected at least one row.
type Outcome struct {
	OK           bool
	RowsAffected int64
	Err          error
}

func failed(err error) Outcome { return Outcome{Err: err} }

// label maps an outcome to its metrics label.
func (o Outcome) label() string {
	switch {
	case o.OK:
		return metrics.OutcomeOK
	case errors.Is(o.Err, ErrConnection):
		return metrics.OutcomeConnection
	case errors.Is(o.Err, ErrBinding):
		return metrics.OutcomeBinding
	case errors.Is(o.Err, ErrNoRows):
		return metrics.OutcomeNoRows
	default:
		return metrics.OutcomeExecution
	}
}
