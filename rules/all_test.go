package rules

import (
	"context"
	"testing"

	"github.com/chathaven/warden/engine"
	"github.com/chathaven/warden/ledger"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRulePriorityOrder(t *testing.T) {
	assert := assert.New(t)
	require := require.New(t)
	ctx := context.Background()

	// message violating both the word filter and the mention limit: the
	// word filter sits higher in the order and owns the outcome
	eng := newFixtureEngine(&engine.GuildConfig{
		BadWords:    engine.BadWordsConfig{Enabled: true, CustomWords: []string{"bogus"}},
		MassMention: engine.MassMentionConfig{Enabled: true, Limit: 4},
	})

	evt := engine.TestMessageEvent("bogus ping")
	evt.MentionUserIDs = []string{"a", "b", "c", "d"}
	require.NoError(eng.ProcessMessage(ctx, &evt))

	led := eng.Ledger.(*ledger.MemCaseLedger)
	cases := led.Cases("g1")
	require.Len(cases, 1)
	assert.Equal("automod_bad_words", cases[0].Action)
}

func TestStaffPostingBadWordUntouched(t *testing.T) {
	assert := assert.New(t)
	ctx := context.Background()

	eng := newFixtureEngine(&engine.GuildConfig{
		BadWords:     engine.BadWordsConfig{Enabled: true, CustomWords: []string{"bogus"}},
		StaffRoleIDs: []string{"mods"},
	})
	transport := eng.Transport.(*engine.FakeTransport)

	evt := engine.TestMessageEvent("that is bogus")
	evt.Author.RoleIDs = []string{"mods"}
	assert.NoError(eng.ProcessMessage(ctx, &evt))

	assert.Empty(transport.DeletedRefs())
	led := eng.Ledger.(*ledger.MemCaseLedger)
	assert.Empty(led.Cases("g1"))
}
