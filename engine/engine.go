// Package engine is the moderation core: it evaluates inbound messages
// against per-guild policy using an ordered set of detector rules, maps
// the first violation to an enforcement action, and applies that action
// through pluggable platform collaborators.
//
// The engine itself is stateless between messages; all cross-message
// state lives in the injected stores (sliding windows, sets, caches, the
// case ledger, member records).
package engine

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	"github.com/chathaven/warden/cachestore"
	"github.com/chathaven/warden/keyword"
	"github.com/chathaven/warden/ledger"
	"github.com/chathaven/warden/recordstore"
	"github.com/chathaven/warden/setstore"
	"github.com/chathaven/warden/windowstore"
)

const cacheNameConfig = "guild-config"

type Engine struct {
	Logger *slog.Logger
	Rules  RuleSet

	Windows  windowstore.WindowStore
	Sets     setstore.SetStore
	Cache    cachestore.CacheStore
	Keywords *keyword.Matcher

	Configs     ConfigProvider
	Transport   MessageTransport
	Members     MemberActions
	Permissions PermissionResolver
	Ledger      ledger.CaseLedger
	Records     recordstore.MemberRecordStore
	Notices     *NoticeScheduler
	Notifier    *SlackNotifier

	// ActorID identifies the bot account in audit cases and member records.
	ActorID string

	// SideEffectTimeout bounds each enforcement side effect; zero means
	// DefaultSideEffectTimeout.
	SideEffectTimeout time.Duration
}

// ProcessMessage evaluates one message end to end: staff bypass check,
// rule evaluation in priority order, escalation, enforcement. It returns
// an error only for infrastructure-level failures worth retrying at the
// consumer; a message that simply violates no rule returns nil.
//
// Messages for the same (guild, author) must be processed in order by the
// caller; different authors can be processed concurrently.
func (eng *Engine) ProcessMessage(ctx context.Context, evt *MessageEvent) (outErr error) {
	messagesProcessed.Inc()
	start := time.Now()
	defer func() {
		messageProcessDuration.Observe(time.Since(start).Seconds())
		if r := recover(); r != nil {
			eng.Logger.Error("message processing panicked", "guild", evt.GuildID, "message", evt.MessageID, "panic", r)
			outErr = fmt.Errorf("message processing panicked: %v", r)
		}
	}()

	// never moderate other bots (including our own notices)
	if evt.Author.Bot {
		return nil
	}
	if evt.CreatedAt.IsZero() {
		evt.CreatedAt = time.Now()
	}

	cfg := eng.guildConfig(ctx, evt.GuildID)

	bypass, err := eng.Permissions.HasStaffBypass(ctx, evt, cfg)
	if err != nil {
		eng.Logger.Warn("staff bypass check failed, continuing without bypass", "guild", evt.GuildID, "author", evt.Author.ID, "err", err)
		bypass = false
	}
	if bypass {
		staffBypassCount.Inc()
		eng.Logger.Debug("skipping staff message", "guild", evt.GuildID, "author", evt.Author.ID)
		return nil
	}

	c := NewMessageContext(ctx, eng, evt, cfg)
	eng.Rules.CallMessageRules(&c)

	v := c.Violation()
	if v == nil {
		eng.canonicalLogLine(&c, nil, EnforcementResult{Action: ActionNone}, start)
		return nil
	}
	violationCount.WithLabelValues(string(v.Type), string(v.Severity)).Inc()

	action := ResolveEscalation(v, cfg)
	res := eng.enforce(&c, v, action)

	eng.canonicalLogLine(&c, v, res, start)
	return nil
}

// guildConfig returns the normalized policy for a guild, consulting the
// short-TTL cache first. Provider failures fall back to the disabled
// policy so an outage silences moderation instead of misfiring it.
func (eng *Engine) guildConfig(ctx context.Context, guildID string) *GuildConfig {
	if eng.Cache != nil {
		raw, err := eng.Cache.Get(ctx, cacheNameConfig, guildID)
		if err != nil {
			eng.Logger.Warn("config cache read failed", "guild", guildID, "err", err)
		} else if raw != "" {
			var cfg GuildConfig
			if err := json.Unmarshal([]byte(raw), &cfg); err == nil {
				return &cfg
			}
			eng.Logger.Warn("invalid cached config, refetching", "guild", guildID)
		}
	}

	cfg, err := eng.Configs.GetGuildConfig(ctx, guildID)
	if err != nil {
		configFallbackCount.Inc()
		eng.Logger.Error("failed to fetch guild config, moderation disabled for message", "guild", guildID, "err", err)
		return DisabledGuildConfig(guildID)
	}
	if cfg == nil {
		// unconfigured guild: zero policy, all rules off
		cfg = &GuildConfig{}
	}
	cfg.GuildID = guildID
	cfg.Normalize()

	if eng.Cache != nil {
		if raw, err := json.Marshal(cfg); err == nil {
			if err := eng.Cache.Set(ctx, cacheNameConfig, guildID, string(raw)); err != nil {
				eng.Logger.Warn("config cache write failed", "guild", guildID, "err", err)
			}
		}
	}
	return cfg
}

// PurgeGuildConfig drops the cached policy so the next message re-reads
// the provider. Called when a config change notification arrives.
func (eng *Engine) PurgeGuildConfig(ctx context.Context, guildID string) error {
	if eng.Cache == nil {
		return nil
	}
	return eng.Cache.Purge(ctx, cacheNameConfig, guildID)
}

// canonicalLogLine emits one summary line per processed message.
func (eng *Engine) canonicalLogLine(c *MessageContext, v *Violation, res EnforcementResult, start time.Time) {
	attrs := []any{
		"eventType", "message",
		"took", time.Since(start).Round(time.Microsecond),
		"action", res.Action,
	}
	if v != nil {
		attrs = append(attrs,
			"violation", v.Type,
			"severity", v.Severity,
			"deleted", res.MessageDeleted,
			"caseNumber", res.CaseNumber,
		)
		c.Logger.Info("message processed", attrs...)
		return
	}
	c.Logger.Debug("message processed", attrs...)
}
