package engine

import "time"

// ViolationType identifies which detector flagged the message.
type ViolationType string

const (
	ViolationBadWords    ViolationType = "bad_words"
	ViolationSpam        ViolationType = "spam"
	ViolationMassMention ViolationType = "mass_mention"
	ViolationInvite      ViolationType = "invite"
	ViolationLink        ViolationType = "link"
)

// Severity of a violation, used by the escalation policy.
type Severity string

const (
	SeverityLow     Severity = "low"
	SeverityMedium  Severity = "medium"
	SeverityHigh    Severity = "high"
	SeverityExtreme Severity = "extreme"
)

// Violation is the output of a single detector indicating a rule was
// broken. It is transient: produced during rule execution and consumed
// immediately by the escalation policy, never persisted.
type Violation struct {
	Type     ViolationType
	Reason   string
	Severity Severity
}

// ActionKind is the set of enforcement actions the escalation policy can
// choose from. "delete" alone removes the triggering message but takes no
// action against the account; warn/timeout/kick/mute also delete the
// message as a precondition.
type ActionKind string

const (
	ActionNone    ActionKind = "none"
	ActionDelete  ActionKind = "delete"
	ActionWarn    ActionKind = "warn"
	ActionTimeout ActionKind = "timeout"
	ActionKick    ActionKind = "kick"
	ActionMute    ActionKind = "mute"
)

// EnforcementAction is a resolved, concrete action ready for the enforcer.
type EnforcementAction struct {
	Kind            ActionKind
	TimeoutDuration time.Duration
}

// EnforcementResult reports what the enforcer actually managed to do.
// Partial failure is expected (eg message already deleted, member left);
// there is no rollback.
type EnforcementResult struct {
	Action          ActionKind
	MessageDeleted  bool
	AccountActionOK bool
	CaseNumber      int64
}
