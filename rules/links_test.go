package rules

import (
	"context"
	"testing"

	"github.com/chathaven/warden/engine"
	"github.com/chathaven/warden/setstore"
	"github.com/stretchr/testify/assert"
)

func TestLinkRule(t *testing.T) {
	assert := assert.New(t)
	ctx := context.Background()

	eng := newFixtureEngine(&engine.GuildConfig{
		Links: engine.LinksConfig{Enabled: true, WhitelistedDomains: []string{"example.com"}},
	})
	transport := eng.Transport.(*engine.FakeTransport)

	evt := engine.TestMessageEvent("look at https://evil.test/page")
	assert.NoError(eng.ProcessMessage(ctx, &evt))
	assert.Len(transport.DeletedRefs(), 1)

	// whitelisted domain passes, subdomains included
	evt = engine.TestMessageEvent("see https://docs.example.com/guide")
	evt.MessageID = "m2"
	assert.NoError(eng.ProcessMessage(ctx, &evt))
	assert.Len(transport.DeletedRefs(), 1)

	// bare www links are caught too
	evt = engine.TestMessageEvent("go to www.evil.test now")
	evt.MessageID = "m3"
	assert.NoError(eng.ProcessMessage(ctx, &evt))
	assert.Len(transport.DeletedRefs(), 2)
}

func TestLinkRuleGlobalAllowSet(t *testing.T) {
	assert := assert.New(t)
	ctx := context.Background()

	eng := newFixtureEngine(&engine.GuildConfig{
		Links: engine.LinksConfig{Enabled: true},
	})
	sets := eng.Sets.(setstore.MemSetStore)
	sets.Sets[SetGlobalDomainAllow] = map[string]bool{"github.com": true}
	transport := eng.Transport.(*engine.FakeTransport)

	evt := engine.TestMessageEvent("pr at https://github.com/x/y/pull/1")
	assert.NoError(eng.ProcessMessage(ctx, &evt))
	assert.Empty(transport.DeletedRefs())
}

func TestLinkRuleSkipsInviteURLs(t *testing.T) {
	assert := assert.New(t)
	ctx := context.Background()

	// invites whitelisted at the guild, links otherwise restricted: the
	// invite URL must not bounce off the link rule
	eng := newFixtureEngine(&engine.GuildConfig{
		Invites: engine.InvitesConfig{Enabled: true, WhitelistedCodes: []string{"ourserver"}},
		Links:   engine.LinksConfig{Enabled: true},
	})
	transport := eng.Transport.(*engine.FakeTransport)

	evt := engine.TestMessageEvent("join https://discord.gg/ourserver")
	assert.NoError(eng.ProcessMessage(ctx, &evt))
	assert.Empty(transport.DeletedRefs())
}
