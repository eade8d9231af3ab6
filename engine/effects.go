package engine

// Effects accumulates the outcome of rule execution. Rule priority is
// encoded by ordering in the RuleSet and by the first-hit-wins property
// here: only the first flagged violation is kept.
type Effects struct {
	violation *Violation
}

func (e *Effects) Flag(v Violation) {
	if e.violation != nil {
		return
	}
	e.violation = &v
}

func (e *Effects) Violation() *Violation {
	return e.violation
}
