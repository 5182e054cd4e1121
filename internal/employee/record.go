// internal/employee/record.go
//
// Employee record model.
//
// Context
// -------
// Callers hand the gateway an untyped mapping (decoded JSON, a posted form,
// or a plain map in tests).  `FromMap` and `FromValues` copy it into a
// `Record` exactly once, remembering for every key whether it was present.
// Values stay raw (`any`) so the field validators remain responsible for
// type checks.
//
// Notes
// -----
//   - A key that is present with a nil value is Present, not absent.  The
//     validators reject it as null.
//   - Unknown keys are ignored.
//   - Oxford commas, two spaces after periods.
package employee

import "net/url"

// Record keys as they appear on the wire.
const (
	KeyFirstName  = "fname"
	KeyMiddleInit = "minit"
	KeyLastName   = "lname"
	KeySSN        = "ssn"
	KeyBirthDate  = "bdate"
	KeyAddress    = "address"
	KeySex        = "sex"
	KeySalary     = "salary"
	KeySuperSSN   = "super_ssn"
	KeyDeptNo     = "dno"
)

// Field is one raw attribute plus its presence flag.
type Field struct {
	Present bool
	Value   any
}

// Has returns a present Field holding v.  Handy in tests and fixtures.
func Has(v any) Field { return Field{Present: true, Value: v} }

// Record is the typed view of an incoming employee mapping.  The zero value
// is a record with every key absent.
type Record struct {
	FirstName  Field
	MiddleInit Field
	LastName   Field
	SSN        Field
	BirthDate  Field
	Address    Field
	Sex        Field
	Salary     Field
	SuperSSN   Field
	DeptNo     Field
}

// fields maps wire keys to the matching Record slot.
func (r *Record) fields() map[string]*Field {
	return map[string]*Field{
		KeyFirstName:  &r.FirstName,
		KeyMiddleInit: &r.MiddleInit,
		KeyLastName:   &r.LastName,
		KeySSN:        &r.SSN,
		KeyBirthDate:  &r.BirthDate,
		KeyAddress:    &r.Address,
		KeySex:        &r.Sex,
		KeySalary:     &r.Salary,
		KeySuperSSN:   &r.SuperSSN,
		KeyDeptNo:     &r.DeptNo,
	}
}

// FromMap builds a Record from an untyped mapping such as decoded JSON.
func FromMap(m map[string]any) Record {
	var r Record
	for k, f := range r.fields() {
		if v, ok := m[k]; ok {
			*f = Field{Present: true, Value: v}
		}
	}
	return r
}

// FromValues builds a Record from posted form values.  Only the first value
// of each key is used, and an empty string counts as absent because HTML
// forms always submit every input.
func FromValues(v url.Values) Record {
	var r Record
	for k, f := range r.fields() {
		if raw, ok := v[k]; ok && len(raw) > 0 && raw[0] != "" {
			*f = Field{Present: true, Value: raw[0]}
		}
	}
	return r
}
