package rules

import (
	"github.com/chathaven/warden/engine"
	"github.com/chathaven/warden/keyword"
)

// BadWordsRule flags messages containing prohibited words or phrases,
// including obfuscated spellings. The matched term itself is deliberately
// not echoed into the violation reason.
func BadWordsRule(c *engine.MessageContext) error {
	cfg := c.Config.BadWords
	if !cfg.Enabled {
		return nil
	}

	hit := c.MatchKeywords(c.Event.Text, keyword.Options{
		CustomWords:  cfg.CustomWords,
		IgnoredWords: cfg.IgnoredWords,
		UseBuiltIn:   cfg.UseBuiltIn,
	})
	if !hit.Found {
		return nil
	}

	reason := "prohibited word or phrase"
	if hit.Obfuscated {
		reason = "prohibited word or phrase (obfuscated)"
	}
	c.Flag(engine.Violation{
		Type:     engine.ViolationBadWords,
		Reason:   reason,
		Severity: violationSeverity(hit.Severity),
	})
	return nil
}

func violationSeverity(s keyword.Severity) engine.Severity {
	switch s {
	case keyword.SeverityExtreme:
		return engine.SeverityExtreme
	case keyword.SeverityHigh:
		return engine.SeverityHigh
	case keyword.SeverityMedium:
		return engine.SeverityMedium
	}
	return engine.SeverityLow
}
