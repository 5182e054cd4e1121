package employee

// Verdict is the pass/fail result of a validator or of the whole pipeline.
// A passing verdict always carries an empty Reason, and a failing one
// always names the rule that was violated.
type Verdict struct {
	Result bool   `json:"result"`
	Reason string `json:"reason"`
}

// Pass returns the passing verdict.
func Pass() Verdict { return Verdict{Result: true} }

// Fail returns a failing verdict.  An empty reason is replaced with a
// generic one so the invariant holds.
func Fail(reason string) Verdict {
	if reason == "" {
		reason = "invalid record"
	}
	return Verdict{Result: false, Reason: reason}
}

// OK reports whether the verdict passed.
func (v Verdict) OK() bool { return v.Result }
