package rules

import (
	"fmt"

	"github.com/chathaven/warden/engine"
)

// MassMentionRule flags messages which ping too many distinct users or
// roles at once. The check is per-message, no window involved; an
// @everyone ping always counts as mass mention.
func MassMentionRule(c *engine.MessageContext) error {
	cfg := c.Config.MassMention
	if !cfg.Enabled {
		return nil
	}

	if c.Event.MentionsEveryone {
		c.Flag(engine.Violation{
			Type:     engine.ViolationMassMention,
			Reason:   "mentioned everyone",
			Severity: engine.SeverityMedium,
		})
		return nil
	}

	total := len(uniqueStrings(c.Event.MentionUserIDs)) + len(uniqueStrings(c.Event.MentionRoleIDs))
	if total < cfg.Limit {
		return nil
	}

	c.Flag(engine.Violation{
		Type:     engine.ViolationMassMention,
		Reason:   fmt.Sprintf("mass mention: %d users/roles in one message", total),
		Severity: engine.SeverityMedium,
	})
	return nil
}

func uniqueStrings(in []string) []string {
	seen := make(map[string]bool, len(in))
	var out []string
	for _, s := range in {
		if seen[s] {
			continue
		}
		seen[s] = true
		out = append(out, s)
	}
	return out
}
