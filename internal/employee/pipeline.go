// internal/employee/pipeline.go
//
// Validation pipeline.
//
// Context
// -------
// Validate runs in two phases:
//
//  1. Presence.  fname and lname are jointly required, then ssn, bdate,
//     address, sex, salary, and super_ssn are each required.  The first
//     missing key fails the record before any validator runs.
//  2. Validation.  name → ssn → bdate → address → sex → salary → super_ssn
//     → dno (only when present).  The first failing validator's verdict is
//     returned and nothing after it is evaluated.
//
// The validators are held as function values in Validators so tests can
// swap in counting wrappers.  Validate is pure.
package employee

// FieldName labels failures of the joint fname, minit, and lname rule.
const FieldName = "name"

// Validators is the set of field checks a Pipeline runs.
type Validators struct {
	Name      func(first, last any, initial Field) Verdict
	SSN       func(v any) Verdict
	BirthDate func(v any) Verdict
	Address   func(v any) Verdict
	Sex       func(v any) Verdict
	Salary    func(v any) Verdict
	SuperSSN  func(v any) Verdict
	DeptNo    func(v any) Verdict
}

// DefaultValidators returns the production rule set.
func DefaultValidators() Validators {
	return Validators{
		Name:      ValidateName,
		SSN:       ValidateSSN,
		BirthDate: ValidateBirthDate,
		Address:   ValidateAddress,
		Sex:       ValidateSex,
		Salary:    ValidateSalary,
		SuperSSN:  ValidateSuperSSN,
		DeptNo:    ValidateDeptNo,
	}
}

// Pipeline validates whole records.  Safe for concurrent use.
type Pipeline struct {
	v Validators
}

// NewPipeline returns a Pipeline over v.  Nil entries fall back to the
// default validator for that field.
func NewPipeline(v Validators) *Pipeline {
	def := DefaultValidators()
	if v.Name == nil {
		v.Name = def.Name
	}
	if v.SSN == nil {
		v.SSN = def.SSN
	}
	if v.BirthDate == nil {
		v.BirthDate = def.BirthDate
	}
	if v.Address == nil {
		v.Address = def.Address
	}
	if v.Sex == nil {
		v.Sex = def.Sex
	}
	if v.Salary == nil {
		v.Salary = def.Salary
	}
	if v.SuperSSN == nil {
		v.SuperSSN = def.SuperSSN
	}
	if v.DeptNo == nil {
		v.DeptNo = def.DeptNo
	}
	return &Pipeline{v: v}
}

var std = NewPipeline(DefaultValidators())

// Validate runs the default pipeline.
func Validate(r Record) Verdict { return std.Validate(r) }

type step struct {
	field string
	run   func() Verdict
}

// Validate checks presence, then each field in order, stopping at the first
// failure.
func (p *Pipeline) Validate(r Record) Verdict {
	v, _ := p.Check(r)
	return v
}

// Check is Validate that also names the failing field: a wire key, or
// FieldName for the joint name rule.  The field is "" when r passes.
func (p *Pipeline) Check(r Record) (Verdict, string) {
	if field, reason := missing(r); reason != "" {
		return Fail(reason), field
	}

	steps := []step{
		{FieldName, func() Verdict { return p.v.Name(r.FirstName.Value, r.LastName.Value, r.MiddleInit) }},
		{KeySSN, func() Verdict { return p.v.SSN(r.SSN.Value) }},
		{KeyBirthDate, func() Verdict { return p.v.BirthDate(r.BirthDate.Value) }},
		{KeyAddress, func() Verdict { return p.v.Address(r.Address.Value) }},
		{KeySex, func() Verdict { return p.v.Sex(r.Sex.Value) }},
		{KeySalary, func() Verdict { return p.v.Salary(r.Salary.Value) }},
		{KeySuperSSN, func() Verdict { return p.v.SuperSSN(r.SuperSSN.Value) }},
	}
	if r.DeptNo.Present {
		steps = append(steps, step{KeyDeptNo, func() Verdict { return p.v.DeptNo(r.DeptNo.Value) }})
	}

	for _, st := range steps {
		if v := st.run(); !v.OK() {
			return v, st.field
		}
	}
	return Pass(), ""
}

// required lists the individually required keys in evaluation order.
var required = []struct {
	key string
	get func(Record) Field
}{
	{KeySSN, func(r Record) Field { return r.SSN }},
	{KeyBirthDate, func(r Record) Field { return r.BirthDate }},
	{KeyAddress, func(r Record) Field { return r.Address }},
	{KeySex, func(r Record) Field { return r.Sex }},
	{KeySalary, func(r Record) Field { return r.Salary }},
	{KeySuperSSN, func(r Record) Field { return r.SuperSSN }},
}

// missing returns the first absent required key and its reason, or two
// empty strings.
func missing(r Record) (field, reason string) {
	if !r.FirstName.Present || !r.LastName.Present {
		return FieldName, "first and last name (fname, lname) are required"
	}
	for _, req := range required {
		if !req.get(r).Present {
			return req.key, req.key + " is required"
		}
	}
	return "", ""
}
