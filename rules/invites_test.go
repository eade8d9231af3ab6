package rules

import (
	"context"
	"testing"

	"github.com/chathaven/warden/engine"
	"github.com/chathaven/warden/setstore"
	"github.com/stretchr/testify/assert"
)

func TestInviteRule(t *testing.T) {
	assert := assert.New(t)
	ctx := context.Background()

	eng := newFixtureEngine(&engine.GuildConfig{
		Invites: engine.InvitesConfig{Enabled: true, WhitelistedCodes: []string{"ourserver"}},
	})
	transport := eng.Transport.(*engine.FakeTransport)

	evt := engine.TestMessageEvent("join here discord.gg/abc123")
	assert.NoError(eng.ProcessMessage(ctx, &evt))
	assert.Len(transport.DeletedRefs(), 1)

	// guild-whitelisted code passes
	evt = engine.TestMessageEvent("join here discord.gg/ourserver")
	evt.MessageID = "m2"
	assert.NoError(eng.ProcessMessage(ctx, &evt))
	assert.Len(transport.DeletedRefs(), 1)

	// plain text with no invite passes
	evt = engine.TestMessageEvent("no invites here")
	evt.MessageID = "m3"
	assert.NoError(eng.ProcessMessage(ctx, &evt))
	assert.Len(transport.DeletedRefs(), 1)
}

func TestInviteRuleGlobalAllowSet(t *testing.T) {
	assert := assert.New(t)
	ctx := context.Background()

	eng := newFixtureEngine(&engine.GuildConfig{
		Invites: engine.InvitesConfig{Enabled: true},
	})
	sets := eng.Sets.(setstore.MemSetStore)
	sets.Sets[SetGlobalInviteAllow] = map[string]bool{"partner": true}
	transport := eng.Transport.(*engine.FakeTransport)

	evt := engine.TestMessageEvent("see discord.gg/partner")
	assert.NoError(eng.ProcessMessage(ctx, &evt))
	assert.Empty(transport.DeletedRefs())
}
