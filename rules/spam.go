package rules

import (
	"fmt"

	"github.com/chathaven/warden/engine"
)

// MessageRateRule flags message flooding: more than the configured number
// of messages from one author inside the sliding window. The triggering
// message is counted before the comparison, so with a limit of 5 the
// sixth in-window message is the first violation.
func MessageRateRule(c *engine.MessageContext) error {
	cfg := c.Config.Spam
	if !cfg.Enabled {
		return nil
	}

	count, err := c.RecordWindow(engine.WindowMsgRate, cfg.Window())
	if err != nil {
		return fmt.Errorf("recording rate window: %w", err)
	}
	if count <= cfg.Limit {
		return nil
	}

	c.Flag(engine.Violation{
		Type:     engine.ViolationSpam,
		Reason:   fmt.Sprintf("message flooding: %d messages in %s", count, cfg.Window()),
		Severity: engine.SeverityMedium,
	})
	return nil
}
