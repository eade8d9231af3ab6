package engine

import (
	"context"
	"fmt"
	"time"

	"github.com/chathaven/warden/ledger"
	"github.com/chathaven/warden/recordstore"
)

// DefaultSideEffectTimeout bounds each individual enforcement side effect
// so one slow platform call cannot stall the worker processing a
// (guild, author) stream.
const DefaultSideEffectTimeout = 5 * time.Second

func (e *Engine) sideEffectCtx() (context.Context, context.CancelFunc) {
	d := e.SideEffectTimeout
	if d <= 0 {
		d = DefaultSideEffectTimeout
	}
	return context.WithTimeout(context.Background(), d)
}

// enforce applies the resolved action for a violation. Side effects are
// sequenced delete-first, then the account-level action, then audit
// recording and notices. Every step is best-effort and independently
// logged; a failed delete or a departed member never aborts the rest,
// and the audit case is recorded regardless of outcome.
func (e *Engine) enforce(c *MessageContext, v *Violation, action EnforcementAction) EnforcementResult {
	res := EnforcementResult{Action: action.Kind, AccountActionOK: true}
	evt := &c.Event

	if action.Kind == ActionNone {
		return res
	}

	enforcementCount.WithLabelValues(string(action.Kind)).Inc()

	// remove the offending message first so it stops being visible while
	// the slower account-level calls run
	func() {
		ctx, cancel := e.sideEffectCtx()
		defer cancel()
		if err := e.Transport.DeleteMessage(ctx, evt.Ref()); err != nil {
			enforcementErrorCount.WithLabelValues("delete").Inc()
			c.Logger.Warn("failed to delete message", "err", err)
			return
		}
		res.MessageDeleted = true
	}()

	switch action.Kind {
	case ActionTimeout:
		ctx, cancel := e.sideEffectCtx()
		defer cancel()
		if err := e.Members.TimeoutMember(ctx, evt.GuildID, evt.Author.ID, action.TimeoutDuration, v.Reason); err != nil {
			enforcementErrorCount.WithLabelValues("timeout").Inc()
			c.Logger.Error("failed to timeout member", "err", err)
			res.AccountActionOK = false
		}
	case ActionKick:
		// DM before the kick, while a shared guild still allows it
		func() {
			ctx, cancel := e.sideEffectCtx()
			defer cancel()
			if err := e.Transport.SendDirectMessage(ctx, evt.Author.ID, kickNotice(v)); err != nil {
				c.Logger.Info("could not DM kicked member", "err", err)
			}
		}()
		ctx, cancel := e.sideEffectCtx()
		defer cancel()
		if err := e.Members.KickMember(ctx, evt.GuildID, evt.Author.ID, v.Reason); err != nil {
			enforcementErrorCount.WithLabelValues("kick").Inc()
			c.Logger.Error("failed to kick member", "err", err)
			res.AccountActionOK = false
		}
	case ActionMute:
		if c.Config.MuteRoleID == "" {
			c.Logger.Warn("mute action configured without a mute role, skipping")
			res.AccountActionOK = false
			break
		}
		ctx, cancel := e.sideEffectCtx()
		defer cancel()
		if err := e.Members.AddMemberRole(ctx, evt.GuildID, evt.Author.ID, c.Config.MuteRoleID, v.Reason); err != nil {
			enforcementErrorCount.WithLabelValues("mute").Inc()
			c.Logger.Error("failed to mute member", "err", err)
			res.AccountActionOK = false
		}
	}

	res.CaseNumber = e.recordCase(c, v, action)

	if kind := recordKind(action.Kind); kind != "" {
		ctx, cancel := e.sideEffectCtx()
		if err := e.Records.Append(ctx, evt.GuildID, evt.Author.ID, recordstore.Entry{
			Kind:       kind,
			Reason:     v.Reason,
			ActorID:    e.ActorID,
			CaseNumber: res.CaseNumber,
			CreatedAt:  time.Now(),
		}); err != nil {
			enforcementErrorCount.WithLabelValues("record").Inc()
			c.Logger.Error("failed to append member record", "err", err)
		}
		cancel()
	}

	e.postNotice(c, v, action)
	e.postLogChannel(c, v, action, res)

	if v.Severity == SeverityExtreme {
		e.sendAdminAlert(c, v, action)
	}

	// a punished spam burst should not re-trigger on the next message
	if v.Type == ViolationSpam {
		if err := c.ClearWindow(WindowMsgRate); err != nil {
			c.Logger.Warn("failed to clear rate window", "err", err)
		}
	}

	return res
}

// recordCase allocates the next per-guild case number and writes the
// audit case. Returns 0 when the ledger is unavailable; enforcement is
// never rolled back over an audit failure.
func (e *Engine) recordCase(c *MessageContext, v *Violation, action EnforcementAction) int64 {
	ctx, cancel := e.sideEffectCtx()
	defer cancel()

	num, err := e.Ledger.NextCaseNumber(ctx, c.Event.GuildID)
	if err != nil {
		enforcementErrorCount.WithLabelValues("case").Inc()
		c.Logger.Error("failed to allocate case number", "err", err)
		return 0
	}
	err = e.Ledger.RecordCase(ctx, &ledger.Case{
		GuildID:     c.Event.GuildID,
		CaseNumber:  num,
		Action:      "automod_" + string(v.Type),
		ModeratorID: e.ActorID,
		TargetID:    c.Event.Author.ID,
		Reason:      v.Reason,
	})
	if err != nil {
		enforcementErrorCount.WithLabelValues("case").Inc()
		c.Logger.Error("failed to record case", "err", err)
	}
	return num
}

func (e *Engine) postNotice(c *MessageContext, v *Violation, action EnforcementAction) {
	ctx, cancel := e.sideEffectCtx()
	defer cancel()

	ref, err := e.Transport.SendChannelMessage(ctx, c.Event.GuildID, c.Event.ChannelID, noticeText(&c.Event, v, action))
	if err != nil {
		enforcementErrorCount.WithLabelValues("notice").Inc()
		c.Logger.Warn("failed to post notice", "err", err)
		return
	}
	if e.Notices != nil {
		e.Notices.ScheduleDelete(ref)
	}
}

func (e *Engine) postLogChannel(c *MessageContext, v *Violation, action EnforcementAction, res EnforcementResult) {
	if c.Config.LogChannelID == "" {
		return
	}
	ctx, cancel := e.sideEffectCtx()
	defer cancel()

	body := fmt.Sprintf("case #%d: %s against <@%s> for %s (%s)",
		res.CaseNumber, action.Kind, c.Event.Author.ID, v.Type, v.Reason)
	if _, err := e.Transport.SendChannelMessage(ctx, c.Event.GuildID, c.Config.LogChannelID, body); err != nil {
		enforcementErrorCount.WithLabelValues("logchannel").Inc()
		c.Logger.Warn("failed to post to log channel", "err", err)
	}
}

func recordKind(kind ActionKind) string {
	switch kind {
	case ActionWarn:
		return recordstore.KindWarning
	case ActionTimeout:
		return recordstore.KindTimeout
	case ActionKick:
		return recordstore.KindKick
	case ActionMute:
		return recordstore.KindMute
	}
	return ""
}

func noticeText(evt *MessageEvent, v *Violation, action EnforcementAction) string {
	name := evt.Author.Username
	if name == "" {
		name = evt.Author.ID
	}
	switch action.Kind {
	case ActionWarn:
		return fmt.Sprintf("%s, you have been warned: %s", name, v.Reason)
	case ActionTimeout:
		return fmt.Sprintf("%s has been timed out for %s: %s", name, action.TimeoutDuration, v.Reason)
	case ActionKick:
		return fmt.Sprintf("%s has been removed from the server: %s", name, v.Reason)
	case ActionMute:
		return fmt.Sprintf("%s has been muted: %s", name, v.Reason)
	}
	return fmt.Sprintf("message from %s removed: %s", name, v.Reason)
}

func kickNotice(v *Violation) string {
	return fmt.Sprintf("You have been removed from the server by the moderation bot: %s", v.Reason)
}
