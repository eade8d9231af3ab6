package engine

import (
	"context"
	"time"
)

// MessageTransport sends and deletes messages on the chat platform. The
// enforcer treats every call as best-effort: a failed delete (message
// already gone) never blocks the rest of the enforcement sequence.
type MessageTransport interface {
	DeleteMessage(ctx context.Context, ref MessageRef) error
	SendChannelMessage(ctx context.Context, guildID, channelID, content string) (MessageRef, error)
	SendDirectMessage(ctx context.Context, userID, content string) error
}

// MemberActions applies account-level punishments.
type MemberActions interface {
	TimeoutMember(ctx context.Context, guildID, userID string, duration time.Duration, reason string) error
	KickMember(ctx context.Context, guildID, userID, reason string) error
	AddMemberRole(ctx context.Context, guildID, userID, roleID, reason string) error
}

// PermissionResolver decides whether the author bypasses moderation
// entirely. Errors are treated by the engine as "no bypass" so a flaky
// permission source degrades to normal rule evaluation.
type PermissionResolver interface {
	HasStaffBypass(ctx context.Context, evt *MessageEvent, cfg *GuildConfig) (bool, error)
}

// ConfigProvider loads per-guild policy. A nil config with nil error
// means the guild has never been configured; the engine falls back to the
// zero policy (all rules disabled).
type ConfigProvider interface {
	GetGuildConfig(ctx context.Context, guildID string) (*GuildConfig, error)
}

// RolePermissionResolver grants bypass to administrators and to members
// holding any configured staff role, using only metadata already on the
// event.
type RolePermissionResolver struct{}

func (r *RolePermissionResolver) HasStaffBypass(ctx context.Context, evt *MessageEvent, cfg *GuildConfig) (bool, error) {
	if evt.Author.Administrator {
		return true, nil
	}
	for _, have := range evt.Author.RoleIDs {
		for _, staff := range cfg.StaffRoleIDs {
			if have == staff {
				return true, nil
			}
		}
	}
	return false, nil
}

// StaticConfigProvider serves configs from a fixed map. Used in tests and
// for file-based deployments without a config service.
type StaticConfigProvider struct {
	Configs map[string]*GuildConfig
}

func (p *StaticConfigProvider) GetGuildConfig(ctx context.Context, guildID string) (*GuildConfig, error) {
	cfg, ok := p.Configs[guildID]
	if !ok {
		return nil, nil
	}
	out := *cfg
	return &out, nil
}
