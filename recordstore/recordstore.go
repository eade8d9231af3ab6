// Package recordstore keeps per-member moderation histories: append-only
// lists of warnings and punitive actions keyed by (guild, user). History is
// never rewritten; enforcement appends exactly one entry per account-level
// action.
package recordstore

import (
	"context"
	"time"
)

const (
	KindWarning = "warning"
	KindTimeout = "timeout"
	KindKick    = "kick"
	KindMute    = "mute"
)

type Entry struct {
	Kind       string    `json:"kind"`
	Reason     string    `json:"reason"`
	ActorID    string    `json:"actorId"`
	CaseNumber int64     `json:"caseNumber"`
	CreatedAt  time.Time `json:"createdAt"`
}

type MemberRecordStore interface {
	Append(ctx context.Context, guildID, userID string, ent Entry) error
	List(ctx context.Context, guildID, userID string) ([]Entry, error)
}

func memberKey(guildID, userID string) string {
	return guildID + "/" + userID
}
