package engine

// MessageRuleFunc is one detector. It inspects the context and flags at
// most one violation; it must not perform enforcement side effects.
type MessageRuleFunc = func(c *MessageContext) error

// RuleSet is the ordered list of detectors. Order is the priority order:
// evaluation stops at the first rule that flags a violation.
type RuleSet struct {
	MessageRules []MessageRuleFunc
}

// CallMessageRules runs the detectors in order. A failing rule is logged
// and skipped so one broken detector cannot take out the rest.
func (r *RuleSet) CallMessageRules(c *MessageContext) {
	for _, f := range r.MessageRules {
		if err := f(c); err != nil {
			c.Logger.Warn("message rule failed", "err", err)
			ruleErrorCount.Inc()
			continue
		}
		if c.Violation() != nil {
			return
		}
	}
}
