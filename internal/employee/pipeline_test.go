// internal/employee/pipeline_test.go
//
// Unit-tests for the validation pipeline.
//
// Context
// -------
// The pipeline must check presence first, then run validators in a fixed
// order and stop at the first failure.  countingValidators wraps the
// default rule set so each test can assert which validators ran.
//
// Run: go test ./internal/employee -v

package employee

import (
	"encoding/json"
	"net/url"
	"reflect"
	"strings"
	"testing"
)

func validRecord() map[string]any {
	return map[string]any{
		"fname":     "John",
		"minit":     "B",
		"lname":     "Smith",
		"ssn":       "123456789",
		"bdate":     "1965-01-09",
		"address":   "731 Fondren, Houston TX",
		"sex":       "M",
		"salary":    "30000",
		"super_ssn": "333445555",
		"dno":       "5",
	}
}

// counts records how many times each validator ran, in call order.
type counts struct {
	calls []string
}

func (c *counts) n(name string) int {
	total := 0
	for _, s := range c.calls {
		if s == name {
			total++
		}
	}
	return total
}

func countingValidators(c *counts) Validators {
	d := DefaultValidators()
	wrap := func(name string, f func(any) Verdict) func(any) Verdict {
		return func(v any) Verdict {
			c.calls = append(c.calls, name)
			return f(v)
		}
	}
	return Validators{
		Name: func(first, last any, initial Field) Verdict {
			c.calls = append(c.calls, "name")
			return d.Name(first, last, initial)
		},
		SSN:       wrap("ssn", d.SSN),
		BirthDate: wrap("bdate", d.BirthDate),
		Address:   wrap("address", d.Address),
		Sex:       wrap("sex", d.Sex),
		Salary:    wrap("salary", d.Salary),
		SuperSSN:  wrap("super_ssn", d.SuperSSN),
		DeptNo:    wrap("dno", d.DeptNo),
	}
}

func TestValidate_FullRecordPasses(t *testing.T) {
	got := Validate(FromMap(validRecord()))
	if got != (Verdict{Result: true, Reason: ""}) {
		t.Fatalf("Validate = %+v, want {true \"\"}", got)
	}
}

func TestValidate_EvaluationOrder(t *testing.T) {
	c := &counts{}
	p := NewPipeline(countingValidators(c))

	if v := p.Validate(FromMap(validRecord())); !v.Result {
		t.Fatalf("valid record rejected: %s", v.Reason)
	}
	want := []string{"name", "ssn", "bdate", "address", "sex", "salary", "super_ssn", "dno"}
	if !reflect.DeepEqual(c.calls, want) {
		t.Fatalf("call order = %v, want %v", c.calls, want)
	}
}

func TestValidate_MissingNameFailsFirst(t *testing.T) {
	for _, key := range []string{"fname", "lname"} {
		m := validRecord()
		delete(m, key)
		m["ssn"] = "bad" // would fail later if it were reached

		c := &counts{}
		v := NewPipeline(countingValidators(c)).Validate(FromMap(m))
		if v.Result {
			t.Fatalf("missing %s accepted", key)
		}
		if !strings.Contains(v.Reason, "name") {
			t.Fatalf("missing %s: reason %q does not mention name", key, v.Reason)
		}
		if len(c.calls) != 0 {
			t.Fatalf("missing %s: validators ran: %v", key, c.calls)
		}
	}
}

func TestValidate_MissingSSNIsFailFast(t *testing.T) {
	m := validRecord()
	delete(m, "ssn")

	c := &counts{}
	v := NewPipeline(countingValidators(c)).Validate(FromMap(m))
	if v.Result {
		t.Fatalf("record without ssn accepted")
	}
	if !strings.Contains(strings.ToLower(v.Reason), "ssn") {
		t.Fatalf("reason %q does not mention ssn", v.Reason)
	}
	for _, name := range []string{"bdate", "address", "sex", "salary"} {
		if c.n(name) != 0 {
			t.Fatalf("%s validator ran %d time(s) after missing ssn", name, c.n(name))
		}
	}
}

func TestValidate_EachRequiredField(t *testing.T) {
	for _, key := range []string{"ssn", "bdate", "address", "sex", "salary", "super_ssn"} {
		m := validRecord()
		delete(m, key)
		v := Validate(FromMap(m))
		if v.Result {
			t.Fatalf("missing %s accepted", key)
		}
		if v.Reason != key+" is required" {
			t.Fatalf("missing %s: reason = %q", key, v.Reason)
		}
	}
}

func TestValidate_StopsAtFirstFailure(t *testing.T) {
	m := validRecord()
	m["address"] = "short"
	m["salary"] = "-1"

	c := &counts{}
	v := NewPipeline(countingValidators(c)).Validate(FromMap(m))
	if v.Result || !strings.HasPrefix(v.Reason, "address") {
		t.Fatalf("Validate = %+v, want address failure", v)
	}
	if c.n("sex") != 0 || c.n("salary") != 0 || c.n("super_ssn") != 0 {
		t.Fatalf("validators after address ran: %v", c.calls)
	}
}

func TestValidate_OptionalFields(t *testing.T) {
	m := validRecord()
	delete(m, "minit")
	delete(m, "dno")

	c := &counts{}
	if v := NewPipeline(countingValidators(c)).Validate(FromMap(m)); !v.Result {
		t.Fatalf("record without minit and dno rejected: %s", v.Reason)
	}
	if c.n("dno") != 0 {
		t.Fatalf("dno validator ran for absent dno")
	}

	m = validRecord()
	m["minit"] = nil
	if v := Validate(FromMap(m)); v.Result {
		t.Fatalf("null minit accepted")
	}

	m = validRecord()
	m["dno"] = "five"
	if v := Validate(FromMap(m)); v.Result || !strings.HasPrefix(v.Reason, "dno") {
		t.Fatalf("Validate = %+v, want dno failure", v)
	}
}

func TestValidate_InvalidValues(t *testing.T) {
	cases := map[string]any{
		"ssn":       "000000000",
		"bdate":     "1965-13-01",
		"sex":       "X",
		"salary":    "abc",
		"super_ssn": "12a456789",
	}
	for key, bad := range cases {
		m := validRecord()
		m[key] = bad
		v := Validate(FromMap(m))
		if v.Result || !strings.HasPrefix(v.Reason, key) {
			t.Fatalf("%s=%v: Validate = %+v, want failure naming %s", key, bad, v, key)
		}
	}
}

func TestCheck_NamesFailingField(t *testing.T) {
	p := NewPipeline(Validators{})
	cases := map[string]func(m map[string]any){
		"":          func(map[string]any) {},
		FieldName:   func(m map[string]any) { m["fname"] = "J" },
		"ssn":       func(m map[string]any) { delete(m, "ssn") },
		"sex":       func(m map[string]any) { m["sex"] = "X" },
		"super_ssn": func(m map[string]any) { delete(m, "super_ssn") },
		"dno":       func(m map[string]any) { m["dno"] = -3 },
	}
	for want, edit := range cases {
		m := validRecord()
		edit(m)
		v, field := p.Check(FromMap(m))
		if field != want || v.OK() != (want == "") {
			t.Fatalf("Check = %+v, %q; want field %q", v, field, want)
		}
	}
}

func TestValidate_NegativeDeptNo(t *testing.T) {
	for _, bad := range []any{"-1", json.Number("-1"), -1, int64(-1), -1.0} {
		m := validRecord()
		m["dno"] = bad
		v := Validate(FromMap(m))
		if v.Result || !strings.HasPrefix(v.Reason, "dno") {
			t.Fatalf("dno=%#v: Validate = %+v, want dno failure", bad, v)
		}
	}
}

func TestFromValues_EmptyIsAbsent(t *testing.T) {
	form := url.Values{}
	for k, v := range validRecord() {
		form.Set(k, v.(string))
	}
	form.Set("minit", "")

	r := FromValues(form)
	if r.MiddleInit.Present {
		t.Fatalf("empty minit should be absent")
	}
	if v := Validate(r); !v.Result {
		t.Fatalf("form record rejected: %s", v.Reason)
	}
	if r.DeptNo.Value != "5" {
		t.Fatalf("dno = %#v, want \"5\"", r.DeptNo.Value)
	}
}
