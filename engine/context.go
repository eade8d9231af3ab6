package engine

import (
	"context"
	"log/slog"
	"time"

	"github.com/chathaven/warden/keyword"
)

// Names of the sliding windows the engine maintains. Shared between the
// rules that record into them and the enforcer that clears them.
const (
	WindowMsgRate = "msgrate"
)

// MessageContext carries everything a rule needs to evaluate one message:
// the event, the guild policy, a scoped logger, and helpers backed by the
// engine's stores. Rules flag violations on it; they never enforce.
type MessageContext struct {
	Ctx     context.Context
	Logger  *slog.Logger
	Event   MessageEvent
	Config  GuildConfig
	engine  *Engine
	effects Effects
}

func NewMessageContext(ctx context.Context, eng *Engine, evt *MessageEvent, cfg *GuildConfig) MessageContext {
	return MessageContext{
		Ctx:    ctx,
		Logger: eng.Logger.With("guild", evt.GuildID, "channel", evt.ChannelID, "message", evt.MessageID, "author", evt.Author.ID),
		Event:  *evt,
		Config: *cfg,
		engine: eng,
	}
}

// Flag records a violation. Only the first flag sticks.
func (c *MessageContext) Flag(v Violation) {
	c.effects.Flag(v)
}

func (c *MessageContext) Violation() *Violation {
	return c.effects.Violation()
}

// MatchKeywords runs the shared keyword matcher over text with the
// guild's word lists applied.
func (c *MessageContext) MatchKeywords(text string, opts keyword.Options) keyword.Match {
	return c.engine.Keywords.Evaluate(text, opts)
}

// RecordWindow appends this message's timestamp to the named per-author
// sliding window and returns the in-window count, this event included.
func (c *MessageContext) RecordWindow(name string, window time.Duration) (int, error) {
	return c.engine.Windows.Record(c.Ctx, name, c.Event.WindowKey(), c.Event.CreatedAt, window)
}

// ClearWindow drops the author's named window, resetting the count.
func (c *MessageContext) ClearWindow(name string) error {
	return c.engine.Windows.Clear(c.Ctx, name, c.Event.WindowKey())
}

// InSet reports membership in a named shared set. Lookup failures are
// logged and read as "not a member" so a store outage cannot invent
// violations.
func (c *MessageContext) InSet(name, val string) bool {
	ok, err := c.engine.Sets.InSet(c.Ctx, name, val)
	if err != nil {
		c.Logger.Warn("set lookup failed", "set", name, "err", err)
		return false
	}
	return ok
}
