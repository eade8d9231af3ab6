package engine

import "time"

// Per-rule configuration blocks. A zero-value block means the rule is
// disabled; Normalize fills in documented defaults for enabled rules so
// downstream code never branches on missing fields.

type BadWordsConfig struct {
	Enabled      bool       `json:"enabled"`
	Action       ActionKind `json:"action"`
	AutoEscalate *bool      `json:"autoEscalate"`
	CustomWords  []string   `json:"customWords"`
	IgnoredWords []string   `json:"ignoredWords"`
	UseBuiltIn   bool       `json:"useBuiltIn"`
}

// AutoEscalateEnabled defaults to true when the flag is unset.
func (c *BadWordsConfig) AutoEscalateEnabled() bool {
	if c.AutoEscalate == nil {
		return true
	}
	return *c.AutoEscalate
}

type SpamConfig struct {
	Enabled       bool       `json:"enabled"`
	Action        ActionKind `json:"action"`
	Limit         int        `json:"limit"`
	WindowSeconds int        `json:"windowSeconds"`
}

func (c *SpamConfig) Window() time.Duration {
	return time.Duration(c.WindowSeconds) * time.Second
}

type MassMentionConfig struct {
	Enabled bool       `json:"enabled"`
	Action  ActionKind `json:"action"`
	Limit   int        `json:"limit"`
}

type InvitesConfig struct {
	Enabled          bool       `json:"enabled"`
	Action           ActionKind `json:"action"`
	WhitelistedCodes []string   `json:"whitelistedCodes"`
}

type LinksConfig struct {
	Enabled            bool       `json:"enabled"`
	Action             ActionKind `json:"action"`
	WhitelistedDomains []string   `json:"whitelistedDomains"`
}

// GuildConfig is the full per-guild moderation policy. Configs are read
// far more often than they change, so the engine caches them briefly
// (see Engine.guildConfig).
type GuildConfig struct {
	GuildID        string            `json:"guildId"`
	BadWords       BadWordsConfig    `json:"badWords"`
	Spam           SpamConfig        `json:"spam"`
	MassMention    MassMentionConfig `json:"massMention"`
	Invites        InvitesConfig     `json:"invites"`
	Links          LinksConfig       `json:"links"`
	StaffRoleIDs   []string          `json:"staffRoleIds"`
	MuteRoleID     string            `json:"muteRoleId"`
	LogChannelID   string            `json:"logChannelId"`
	TimeoutSeconds int               `json:"timeoutSeconds"`
}

const (
	DefaultSpamLimit         = 5
	DefaultSpamWindowSeconds = 5
	DefaultMassMentionLimit  = 4
	DefaultTimeoutSeconds    = 600
)

// Normalize fills unset fields with documented defaults. It is applied
// once when a config is loaded, so rules and the escalation policy can
// rely on every field being meaningful.
func (cfg *GuildConfig) Normalize() {
	if cfg.BadWords.Action == "" {
		cfg.BadWords.Action = ActionDelete
	}
	if cfg.Spam.Action == "" {
		cfg.Spam.Action = ActionWarn
	}
	if cfg.Spam.Limit <= 0 {
		cfg.Spam.Limit = DefaultSpamLimit
	}
	if cfg.Spam.WindowSeconds <= 0 {
		cfg.Spam.WindowSeconds = DefaultSpamWindowSeconds
	}
	if cfg.MassMention.Action == "" {
		cfg.MassMention.Action = ActionWarn
	}
	if cfg.MassMention.Limit <= 0 {
		cfg.MassMention.Limit = DefaultMassMentionLimit
	}
	if cfg.Invites.Action == "" {
		cfg.Invites.Action = ActionDelete
	}
	if cfg.Links.Action == "" {
		cfg.Links.Action = ActionDelete
	}
	if cfg.TimeoutSeconds <= 0 {
		cfg.TimeoutSeconds = DefaultTimeoutSeconds
	}
}

func (cfg *GuildConfig) Timeout() time.Duration {
	return time.Duration(cfg.TimeoutSeconds) * time.Second
}

// DisabledGuildConfig is the fail-safe policy used when the config source
// is unreachable: every rule off, so no enforcement fires on guesswork.
func DisabledGuildConfig(guildID string) *GuildConfig {
	cfg := &GuildConfig{GuildID: guildID}
	cfg.Normalize()
	return cfg
}
