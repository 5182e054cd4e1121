// internal/employee/validators.go
//
// Field validators.
//
// Context
// -------
// One pure function per employee attribute.  Each takes the raw value (or
// values) and returns a Verdict whose Reason names the first rule that
// failed.  String rules come from the Matcher table in patterns.go; the two
// parse helpers, ParseDate and ParseSalary, report a {Result, Value} pair so
// a failed parse can never masquerade as a default value.
//
// Notes
// -----
//   - A nil value fails as null before any type or pattern check.
//   - Numbers are accepted only for salary and dno.  Every other field must
//     arrive as a string.
package employee

import (
	"encoding/json"
	"fmt"
	"math"
	"strconv"
	"strings"
	"time"
)

// DateLayouts lists the accepted birthdate formats, tried in order.
var DateLayouts = []string{"2006-01-02", "01/02/2006", time.RFC3339}

// DateParse is the outcome of ParseDate.  Value is the zero time on failure.
type DateParse struct {
	Result bool
	Value  time.Time
}

// NumberParse is the outcome of ParseSalary.  Value is zero on failure.
type NumberParse struct {
	Result bool
	Value  float64
}

/*──────────────────────────── helpers ─────────────────────────────────────*/

// asString applies the null and type checks every string rule starts with.
func asString(field string, v any) (string, Verdict) {
	if v == nil {
		return "", Fail(field + " is null")
	}
	s, ok := v.(string)
	if !ok {
		return "", Fail(field + " must be a string")
	}
	return s, Pass()
}

// check runs the null, type, and Matcher checks for one string field.
func check(field string, v any, m Matcher) Verdict {
	s, verdict := asString(field, v)
	if !verdict.OK() {
		return verdict
	}
	if !m.Match(s) {
		return Fail(field + " " + m.Describe())
	}
	return Pass()
}

/*──────────────────────────── parsers ─────────────────────────────────────*/

// ParseDate parses a calendar date in any of DateLayouts.
func ParseDate(v any) DateParse {
	s, ok := v.(string)
	if !ok {
		return DateParse{}
	}
	s = strings.TrimSpace(s)
	for _, layout := range DateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return DateParse{Result: true, Value: t}
		}
	}
	return DateParse{}
}

// ParseSalary parses a floating-point amount from a string or a number.
// Non-numeric input, NaN, and infinities fail.
func ParseSalary(v any) NumberParse {
	var f float64
	switch n := v.(type) {
	case string:
		parsed, err := strconv.ParseFloat(strings.TrimSpace(n), 64)
		if err != nil {
			return NumberParse{}
		}
		f = parsed
	case json.Number:
		parsed, err := n.Float64()
		if err != nil {
			return NumberParse{}
		}
		f = parsed
	case float64:
		f = n
	case float32:
		f = float64(n)
	case int:
		f = float64(n)
	case int32:
		f = float64(n)
	case int64:
		f = float64(n)
	default:
		return NumberParse{}
	}
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return NumberParse{}
	}
	return NumberParse{Result: true, Value: f}
}

// ParseDeptNo converts a department number to int64.  It accepts
// non-negative integer types, integral floats (decoded JSON), json.Number,
// and digit strings.
func ParseDeptNo(v any) (int64, bool) {
	switch n := v.(type) {
	case int:
		return nonNegative(int64(n))
	case int32:
		return nonNegative(int64(n))
	case int64:
		return nonNegative(n)
	case float64:
		if n != math.Trunc(n) || n < 0 || n >= math.MaxInt64 {
			return 0, false
		}
		return int64(n), true
	case json.Number:
		i, err := n.Int64()
		if err != nil {
			return 0, false
		}
		return nonNegative(i)
	case string:
		if !DeptNoPattern.Match(n) {
			return 0, false
		}
		i, err := strconv.ParseInt(n, 10, 64)
		return i, err == nil
	default:
		return 0, false
	}
}

func nonNegative(i int64) (int64, bool) {
	if i < 0 {
		return 0, false
	}
	return i, true
}

/*──────────────────────────── validators ──────────────────────────────────*/

// ValidateName checks first and last name, plus the middle initial when
// the initial is present.  An absent initial skips that rule entirely.
func ValidateName(first, last any, initial Field) Verdict {
	if v := check(KeyFirstName, first, NamePattern); !v.OK() {
		return v
	}
	if initial.Present {
		if v := check(KeyMiddleInit, initial.Value, InitialPattern); !v.OK() {
			return v
		}
	}
	return check(KeyLastName, last, NamePattern)
}

// ValidateSSN checks the employee SSN.
func ValidateSSN(v any) Verdict { return check(KeySSN, v, SSNPattern) }

// ValidateSuperSSN checks the supervisor SSN with the same positional rule.
func ValidateSuperSSN(v any) Verdict { return check(KeySuperSSN, v, SSNPattern) }

// ValidateBirthDate requires a string that parses as a calendar date.
func ValidateBirthDate(v any) Verdict {
	if _, verdict := asString(KeyBirthDate, v); !verdict.OK() {
		return verdict
	}
	if !ParseDate(v).Result {
		return Fail(KeyBirthDate + " must be a valid calendar date (YYYY-MM-DD)")
	}
	return Pass()
}

// ValidateAddress requires a string of at least eight characters.
func ValidateAddress(v any) Verdict { return check(KeyAddress, v, AddressRule) }

// ValidateSex requires exactly "M" or "F".
func ValidateSex(v any) Verdict { return check(KeySex, v, SexRule) }

// ValidateSalary requires a number, or numeric string, greater than zero.
func ValidateSalary(v any) Verdict {
	if v == nil {
		return Fail(KeySalary + " is null")
	}
	p := ParseSalary(v)
	if !p.Result {
		return Fail(KeySalary + " must be a number")
	}
	if p.Value <= 0 {
		return Fail(fmt.Sprintf("%s must be positive, got %v", KeySalary, p.Value))
	}
	return Pass()
}

// ValidateDeptNo requires a whole department number.  The pipeline only
// calls it when dno is present.
func ValidateDeptNo(v any) Verdict {
	if v == nil {
		return Fail(KeyDeptNo + " is null")
	}
	if _, ok := ParseDeptNo(v); !ok {
		return Fail(KeyDeptNo + " " + DeptNoPattern.Describe())
	}
	return Pass()
}
