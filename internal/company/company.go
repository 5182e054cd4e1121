// internal/company/company.go
//
// Read-only queries against the COMPANY schema.
//
// Context
// -------
// The gateway writes through SP_Insert_NewEmployee only.  These helpers
// back the listing pages: every employee, and every WORKS_ON assignment.
// They accept any sqlx.QueryerContext so callers pass whatever handle
// their pool returned.
//
//	EMPLOYEE  (Fname, Minit, Lname, Ssn, Bdate, Address, Sex, Salary, Super_ssn, Dno)
//	WORKS_ON  (Essn, Pno, Hours)
//
// Notes
// -----
// • Oxford commas, two spaces after periods.
package company

import (
	"context"
	"database/sql"
	"time"

	"github.com/jmoiron/sqlx"
)

// Employee is one EMPLOYEE row.
type Employee struct {
	FirstName  string          `db:"Fname"`
	MiddleInit sql.NullString  `db:"Minit"`
	LastName   string          `db:"Lname"`
	SSN        string          `db:"Ssn"`
	BirthDate  sql.NullTime    `db:"Bdate"`
	Address    sql.NullString  `db:"Address"`
	Sex        sql.NullString  `db:"Sex"`
	Salary     sql.NullFloat64 `db:"Salary"`
	SuperSSN   sql.NullString  `db:"Super_ssn"`
	DeptNo     sql.NullInt64   `db:"Dno"`
}

// WorksOn is one WORKS_ON row.
type WorksOn struct {
	ESSN  string          `db:"Essn"`
	Pno   int64           `db:"Pno"`
	Hours sql.NullFloat64 `db:"Hours"`
}

// ListEmployees returns every employee ordered by last, then first name.
func ListEmployees(ctx context.Context, q sqlx.QueryerContext) ([]Employee, error) {
	const query = `SELECT Fname, Minit, Lname, Ssn, Bdate, Address, Sex, Salary, Super_ssn, Dno
                     FROM EMPLOYEE
                 ORDER BY Lname, Fname`

	rows := make([]Employee, 0, 16)
	if err := sqlx.SelectContext(ctx, q, &rows, query); err != nil {
		return nil, err
	}
	return rows, nil
}

// ListWorksOn returns every project assignment ordered by employee, then
// project.
func ListWorksOn(ctx context.Context, q sqlx.QueryerContext) ([]WorksOn, error) {
	const query = `SELECT Essn, Pno, Hours
                     FROM WORKS_ON
                 ORDER BY Essn, Pno`

	rows := make([]WorksOn, 0, 16)
	if err := sqlx.SelectContext(ctx, q, &rows, query); err != nil {
		return nil, err
	}
	return rows, nil
}

// View flattens nullable columns for JSON and templates.
type View struct {
	FirstName  string  `json:"fname"`
	MiddleInit string  `json:"minit,omitempty"`
	LastName   string  `json:"lname"`
	SSN        string  `json:"ssn"`
	BirthDate  string  `json:"bdate,omitempty"`
	Address    string  `json:"address,omitempty"`
	Sex        string  `json:"sex,omitempty"`
	Salary     float64 `json:"salary,omitempty"`
	SuperSSN   string  `json:"super_ssn,omitempty"`
	DeptNo     int64   `json:"dno,omitempty"`
}

// View returns the flattened form of e.
func (e Employee) View() View {
	v := View{
		FirstName:  e.FirstName,
		MiddleInit: e.MiddleInit.String,
		LastName:   e.LastName,
		SSN:        e.SSN,
		Address:    e.Address.String,
		Sex:        e.Sex.String,
		Salary:     e.Salary.Float64,
		SuperSSN:   e.SuperSSN.String,
		DeptNo:     e.DeptNo.Int64,
	}
	if e.BirthDate.Valid {
		v.BirthDate = e.BirthDate.Time.Format(time.DateOnly)
	}
	return v
}

// AssignmentView flattens a WorksOn row.
type AssignmentView struct {
	ESSN  string  `json:"essn"`
	Pno   int64   `json:"pno"`
	Hours float64 `json:"hours,omitempty"`
}

// View returns the flattened form of w.
func (w WorksOn) View() AssignmentView {
	return AssignmentView{ESSN: w.ESSN, Pno: w.Pno, Hours: w.Hours.Float64}
}
