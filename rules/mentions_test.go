package rules

import (
	"context"
	"testing"

	"github.com/chathaven/warden/engine"
	"github.com/stretchr/testify/assert"
)

func TestMassMentionRule(t *testing.T) {
	assert := assert.New(t)
	ctx := context.Background()

	eng := newFixtureEngine(&engine.GuildConfig{
		MassMention: engine.MassMentionConfig{Enabled: true, Limit: 4},
	})
	transport := eng.Transport.(*engine.FakeTransport)

	evt := engine.TestMessageEvent("hey all")
	evt.MentionUserIDs = []string{"a", "b", "c"}
	assert.NoError(eng.ProcessMessage(ctx, &evt))
	assert.Empty(transport.DeletedRefs())

	// four distinct targets hits the limit, roles counted too
	evt = engine.TestMessageEvent("hey all")
	evt.MessageID = "m2"
	evt.MentionUserIDs = []string{"a", "b", "c"}
	evt.MentionRoleIDs = []string{"r1"}
	assert.NoError(eng.ProcessMessage(ctx, &evt))
	assert.Len(transport.DeletedRefs(), 1)

	// duplicate mentions of one user count once
	evt = engine.TestMessageEvent("hey hey hey hey")
	evt.MessageID = "m3"
	evt.MentionUserIDs = []string{"a", "a", "a", "a"}
	assert.NoError(eng.ProcessMessage(ctx, &evt))
	assert.Len(transport.DeletedRefs(), 1)
}

func TestMassMentionEveryone(t *testing.T) {
	assert := assert.New(t)
	ctx := context.Background()

	eng := newFixtureEngine(&engine.GuildConfig{
		MassMention: engine.MassMentionConfig{Enabled: true, Limit: 4},
	})
	transport := eng.Transport.(*engine.FakeTransport)

	evt := engine.TestMessageEvent("@everyone free stuff")
	evt.MentionsEveryone = true
	assert.NoError(eng.ProcessMessage(ctx, &evt))
	assert.Len(transport.DeletedRefs(), 1)
}
