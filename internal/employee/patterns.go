// internal/employee/patterns.go
//
// Declarative match rules shared by the field validators.
//
// Every string rule in this package is a value implementing Matcher, so the
// validators evaluate them the same way: coerce to string, then Match.  The
// regular expressions are compiled once at package init.
package employee

import (
	"regexp"
	"unicode/utf8"
)

// Matcher is the uniform predicate used by every string validator.
// Describe returns the phrase used in failure reasons.
type Matcher interface {
	Match(s string) bool
	Describe() string
}

// Pattern is a compiled regular expression plus its human description.
type Pattern struct {
	re   *regexp.Regexp
	desc string
}

// NewPattern compiles expr and panics on a bad expression, so it is only
// meant for package-level rule tables.
func NewPattern(expr, desc string) Pattern {
	return Pattern{re: regexp.MustCompile(expr), desc: desc}
}

func (p Pattern) Match(s string) bool { return p.re.MatchString(s) }
func (p Pattern) Describe() string    { return p.desc }

// MinLength matches strings of at least N characters.
type MinLength struct {
	N    int
	Desc string
}

func (m MinLength) Match(s string) bool { return utf8.RuneCountInString(s) >= m.N }
func (m MinLength) Describe() string    { return m.Desc }

// OneOf matches exactly one of a fixed set of values.
type OneOf struct {
	Values []string
	Desc   string
}

// Match rejects unless s equals one of the allowed values.  For sex this is
// the conjunctive check s != "M" && s != "F".
func (o OneOf) Match(s string) bool {
	for _, v := range o.Values {
		if s == v {
			return true
		}
	}
	return false
}

func (o OneOf) Describe() string { return o.Desc }

// Rule table.
var (
	NamePattern    = NewPattern(`[A-Za-z]{2,}`, "must contain at least two consecutive letters")
	InitialPattern = NewPattern(`^[A-Z]$`, "must be exactly one uppercase letter")

	// Digit 1, 4, and 6 may not be zero.
	SSNPattern = NewPattern(`^[1-9][0-9]{2}[1-9][0-9][1-9][0-9]{3}$`,
		"must be 9 digits with no zero in positions 1, 4, or 6")

	DeptNoPattern = NewPattern(`^[0-9]+$`, "must be a whole number")

	AddressRule = MinLength{N: 8, Desc: "must be at least 8 characters"}
	SexRule     = OneOf{Values: []string{"M", "F"}, Desc: `must be "M" or "F"`}
)
