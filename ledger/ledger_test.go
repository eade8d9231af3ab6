package ledger

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestMemCaseLedgerNumbering(t *testing.T) {
	assert := assert.New(t)
	ctx := context.Background()

	l := NewMemCaseLedger()

	// per-guild counters are independent and strictly increasing
	n, err := l.NextCaseNumber(ctx, "g1")
	assert.NoError(err)
	assert.Equal(int64(1), n)
	n, err = l.NextCaseNumber(ctx, "g1")
	assert.NoError(err)
	assert.Equal(int64(2), n)
	n, err = l.NextCaseNumber(ctx, "g2")
	assert.NoError(err)
	assert.Equal(int64(1), n)
}

func TestMemCaseLedgerRecord(t *testing.T) {
	assert := assert.New(t)
	ctx := context.Background()

	l := NewMemCaseLedger()
	num, err := l.NextCaseNumber(ctx, "g1")
	assert.NoError(err)

	assert.NoError(l.RecordCase(ctx, &Case{
		GuildID:     "g1",
		CaseNumber:  num,
		Action:      "automod_spam",
		ModeratorID: "bot",
		TargetID:    "u1",
		Reason:      "message flooding",
	}))

	cases := l.Cases("g1")
	assert.Len(cases, 1)
	assert.Equal("automod_spam", cases[0].Action)
	assert.Equal(int64(1), cases[0].CaseNumber)
	assert.Empty(l.Cases("g2"))
}
