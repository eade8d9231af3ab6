package rules

import (
	"fmt"

	"github.com/chathaven/warden/engine"
	"github.com/chathaven/warden/links"
)

// InviteRule flags messages carrying server invite codes, unless the code
// is on the guild's whitelist or the globally-managed allow set.
func InviteRule(c *engine.MessageContext) error {
	cfg := c.Config.Invites
	if !cfg.Enabled {
		return nil
	}

	codes := links.ExtractInviteCodes(c.Event.Text)
	for _, code := range codes {
		if inviteAllowed(c, code, cfg.WhitelistedCodes) {
			continue
		}
		c.Flag(engine.Violation{
			Type:     engine.ViolationInvite,
			Reason:   fmt.Sprintf("unapproved server invite: %s", code),
			Severity: engine.SeverityLow,
		})
		return nil
	}
	return nil
}

func inviteAllowed(c *engine.MessageContext, code string, whitelist []string) bool {
	for _, allowed := range whitelist {
		if code == allowed {
			return true
		}
	}
	return c.InSet(SetGlobalInviteAllow, code)
}
