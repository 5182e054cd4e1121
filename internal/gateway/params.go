// internal/gateway/params.go
//
// Stored-procedure parameter binding.
//
// Context
// -------
// SP_Insert_NewEmployee has a fixed signature, so the binding is a static
// table: one row per parameter with its declared SQL type and width.  bind
// walks the table in signature order and converts each record field into a
// go-mssqldb value:
//
//	varchar(n), char(n)  → mssql.VarChar, length checked against n
//	date                 → civil.Date
//	money                → float64
//	int                  → int64
//
// Optional parameters (minit, dno) bind NULL when absent.  bind converts,
// it does not validate; a value that cannot be converted is a binding error.
package gateway

import (
	"database/sql"
	"fmt"
	"unicode/utf8"

	mssql "github.com/denisenkom/go-mssqldb"
	"github.com/golang-sql/civil"

	"github.com/yanizio/empgate/internal/employee"
)

// Procedure is the stored procedure invoked by Insert.
const Procedure = "SP_Insert_NewEmployee"

type sqlType int

const (
	typeVarChar sqlType = iota
	typeChar
	typeDate
	typeMoney
	typeInt
)

func (t sqlType) String() string {
	switch t {
	case typeVarChar:
		return "varchar"
	case typeChar:
		return "char"
	case typeDate:
		return "date"
	case typeMoney:
		return "money"
	case typeInt:
		return "int"
	default:
		return "unknown"
	}
}

type procParam struct {
	name     string
	typ      sqlType
	width    int
	optional bool
	field    func(employee.Record) employee.Field
}

// procParams mirrors the procedure signature, in order.
var procParams = []procParam{
	{name: "fname", typ: typeVarChar, width: 32, field: func(r employee.Record) employee.Field { return r.FirstName }},
	{name: "minit", typ: typeChar, width: 1, optional: true, field: func(r employee.Record) employee.Field { return r.MiddleInit }},
	{name: "lname", typ: typeVarChar, width: 32, field: func(r employee.Record) employee.Field { return r.LastName }},
	{name: "sex", typ: typeChar, width: 1, field: func(r employee.Record) employee.Field { return r.Sex }},
	{name: "bdate", typ: typeDate, field: func(r employee.Record) employee.Field { return r.BirthDate }},
	{name: "address", typ: typeVarChar, width: 32, field: func(r employee.Record) employee.Field { return r.Address }},
	{name: "salary", typ: typeMoney, field: func(r employee.Record) employee.Field { return r.Salary }},
	{name: "ssn", typ: typeChar, width: 9, field: func(r employee.Record) employee.Field { return r.SSN }},
	{name: "super_ssn", typ: typeChar, width: 9, field: func(r employee.Record) employee.Field { return r.SuperSSN }},
	{name: "dno", typ: typeInt, optional: true, field: func(r employee.Record) employee.Field { return r.DeptNo }},
}

// bind returns the named arguments for Procedure.
func bind(r employee.Record) ([]any, error) {
	args := make([]any, 0, len(procParams))
	for _, p := range procParams {
		v, err := p.value(p.field(r))
		if err != nil {
			return nil, &BindError{Param: p.name, Decl: p.decl(), Err: err}
		}
		args = append(args, sql.Named(p.name, v))
	}
	return args, nil
}

func (p procParam) decl() string {
	if p.width > 0 {
		return fmt.Sprintf("%s(%d)", p.typ, p.width)
	}
	return p.typ.String()
}

func (p procParam) value(f employee.Field) (any, error) {
	if !f.Present || f.Value == nil {
		if p.optional {
			return nil, nil
		}
		return nil, fmt.Errorf("value is required")
	}

	switch p.typ {
	case typeVarChar, typeChar:
		s, ok := f.Value.(string)
		if !ok {
			return nil, fmt.Errorf("want string, got %T", f.Value)
		}
		if n := utf8.RuneCountInString(s); n > p.width {
			return nil, fmt.Errorf("%d characters exceeds width %d", n, p.width)
		}
		return mssql.VarChar(s), nil

	case typeDate:
		d := employee.ParseDate(f.Value)
		if !d.Result {
			return nil, fmt.Errorf("unparseable date %v", f.Value)
		}
		return civil.DateOf(d.Value), nil

	case typeMoney:
		n := employee.ParseSalary(f.Value)
		if !n.Result {
			return nil, fmt.Errorf("unparseable amount %v", f.Value)
		}
		return n.Value, nil

	case typeInt:
		i, ok := employee.ParseDeptNo(f.Value)
		if !ok {
			return nil, fmt.Errorf("unparseable integer %v", f.Value)
		}
		return i, nil
	}
	return nil, fmt.Errorf("unsupported type %s", p.typ)
}
