package engine

// ResolveEscalation maps a violation to a concrete enforcement action
// under the guild's policy. Pure and deterministic: same violation plus
// same config always yields the same action.
//
// The single escalation override: an extreme-severity word violation is
// raised to a kick when the guild's auto-escalate flag is on (the
// default), regardless of the configured bad-words action.
func ResolveEscalation(v *Violation, cfg *GuildConfig) EnforcementAction {
	action := EnforcementAction{Kind: ActionNone}

	switch v.Type {
	case ViolationBadWords:
		action.Kind = cfg.BadWords.Action
		if v.Severity == SeverityExtreme && cfg.BadWords.AutoEscalateEnabled() {
			action.Kind = ActionKick
		}
	case ViolationSpam:
		action.Kind = cfg.Spam.Action
	case ViolationMassMention:
		action.Kind = cfg.MassMention.Action
	case ViolationInvite:
		action.Kind = cfg.Invites.Action
	case ViolationLink:
		action.Kind = cfg.Links.Action
	}

	if action.Kind == ActionTimeout {
		action.TimeoutDuration = cfg.Timeout()
	}
	return action
}
