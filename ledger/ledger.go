// Package ledger records moderation cases: immutable, sequentially
// numbered audit entries of every enforcement action within a guild. Case
// numbers are strictly increasing per guild and never reused, even across
// process restarts; callers must request the next number from the ledger
// rather than compute it locally.
package ledger

import (
	"context"
	"time"
)

// Case is the transport shape handed to a CaseLedger. Persistence models
// (row types, indexes) belong to the individual implementations.
type Case struct {
	GuildID     string
	CaseNumber  int64
	Action      string
	ModeratorID string
	TargetID    string
	Reason      string
	CreatedAt   time.Time
}

type CaseLedger interface {
	// NextCaseNumber allocates the next case number for a guild. Allocated
	// numbers are never handed out twice.
	NextCaseNumber(ctx context.Context, guildID string) (int64, error)
	RecordCase(ctx context.Context, c *Case) error
}
