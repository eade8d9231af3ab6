// Package rules contains the message detectors. Each detector checks one
// guild-configurable policy and flags at most one violation; ordering in
// DefaultRules is the enforcement priority, highest first.
package rules

import (
	"github.com/chathaven/warden/engine"
)

// Names of the globally-managed sets the detectors consult, alongside the
// per-guild whitelists.
const (
	SetGlobalDomainAllow = "domain-allowlist"
	SetGlobalInviteAllow = "invite-allowlist"
)

func DefaultRules() engine.RuleSet {
	return engine.RuleSet{
		MessageRules: []engine.MessageRuleFunc{
			BadWordsRule,
			MessageRateRule,
			MassMentionRule,
			InviteRule,
			LinkRule,
		},
	}
}
