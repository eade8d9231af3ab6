package rules

import (
	"fmt"

	"github.com/chathaven/warden/engine"
	"github.com/chathaven/warden/links"
)

// LinkRule flags messages containing URLs whose host is not whitelisted,
// either in guild config or the globally-managed allow set. Unparsable
// URLs fail closed. Invite URLs are the invite rule's concern and are
// skipped here so a whitelisted invite does not bounce off this rule.
func LinkRule(c *engine.MessageContext) error {
	cfg := c.Config.Links
	if !cfg.Enabled {
		return nil
	}

	for _, u := range links.ExtractLinks(c.Event.Text) {
		if len(links.ExtractInviteCodes(u)) > 0 {
			continue
		}
		if links.IsWhitelisted(u, cfg.WhitelistedDomains) {
			continue
		}
		if host := links.Hostname(u); host != "" && c.InSet(SetGlobalDomainAllow, host) {
			continue
		}
		c.Flag(engine.Violation{
			Type:     engine.ViolationLink,
			Reason:   fmt.Sprintf("unapproved link: %s", links.Hostname(u)),
			Severity: engine.SeverityLow,
		})
		return nil
	}
	return nil
}
