package engine

import (
	"context"
	"testing"

	"github.com/chathaven/warden/ledger"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// flagAll is a detector which flags every message, for exercising the
// engine pipeline without real rules.
func flagAll(v Violation) MessageRuleFunc {
	return func(c *MessageContext) error {
		c.Flag(v)
		return nil
	}
}

func TestEngineStaffBypass(t *testing.T) {
	assert := assert.New(t)
	ctx := context.Background()

	eng := EngineTestFixture()
	eng.Rules.MessageRules = []MessageRuleFunc{
		flagAll(Violation{Type: ViolationBadWords, Reason: "prohibited word", Severity: SeverityHigh}),
	}
	eng.Configs = &StaticConfigProvider{Configs: map[string]*GuildConfig{
		"g1": {StaffRoleIDs: []string{"mod-role"}},
	}}
	transport := eng.Transport.(*FakeTransport)

	evt := TestMessageEvent("whatever")
	evt.Author.RoleIDs = []string{"member", "mod-role"}
	assert.NoError(eng.ProcessMessage(ctx, &evt))
	assert.Empty(transport.DeletedRefs())

	// administrators bypass even without a staff role
	evt = TestMessageEvent("whatever")
	evt.Author.Administrator = true
	assert.NoError(eng.ProcessMessage(ctx, &evt))
	assert.Empty(transport.DeletedRefs())

	// a regular member does not
	evt = TestMessageEvent("whatever")
	assert.NoError(eng.ProcessMessage(ctx, &evt))
	assert.Len(transport.DeletedRefs(), 1)
}

func TestEngineSkipsBots(t *testing.T) {
	assert := assert.New(t)
	ctx := context.Background()

	eng := EngineTestFixture()
	eng.Rules.MessageRules = []MessageRuleFunc{
		flagAll(Violation{Type: ViolationSpam, Reason: "flood", Severity: SeverityMedium}),
	}
	transport := eng.Transport.(*FakeTransport)

	evt := TestMessageEvent("beep boop")
	evt.Author.Bot = true
	assert.NoError(eng.ProcessMessage(ctx, &evt))
	assert.Empty(transport.DeletedRefs())
}

func TestEngineFirstViolationWins(t *testing.T) {
	assert := assert.New(t)
	ctx := context.Background()

	eng := EngineTestFixture()
	var secondRan bool
	eng.Rules.MessageRules = []MessageRuleFunc{
		flagAll(Violation{Type: ViolationBadWords, Reason: "prohibited word", Severity: SeverityLow}),
		func(c *MessageContext) error {
			secondRan = true
			return nil
		},
	}

	evt := TestMessageEvent("whatever")
	assert.NoError(eng.ProcessMessage(ctx, &evt))
	assert.False(secondRan)

	led := eng.Ledger.(*ledger.MemCaseLedger)
	cases := led.Cases("g1")
	assert.Len(cases, 1)
	assert.Equal("automod_bad_words", cases[0].Action)
}

func TestEngineRuleErrorFailsOpen(t *testing.T) {
	assert := assert.New(t)
	ctx := context.Background()

	eng := EngineTestFixture()
	eng.Rules.MessageRules = []MessageRuleFunc{
		func(c *MessageContext) error { return context.DeadlineExceeded },
		flagAll(Violation{Type: ViolationLink, Reason: "unapproved link", Severity: SeverityLow}),
	}
	transport := eng.Transport.(*FakeTransport)

	evt := TestMessageEvent("whatever")
	assert.NoError(eng.ProcessMessage(ctx, &evt))
	// the broken detector is skipped, later ones still run
	assert.Len(transport.DeletedRefs(), 1)
}

func TestEngineEnforcementSequence(t *testing.T) {
	assert := assert.New(t)
	require := require.New(t)
	ctx := context.Background()

	eng := EngineTestFixture()
	eng.Rules.MessageRules = []MessageRuleFunc{
		flagAll(Violation{Type: ViolationSpam, Reason: "message flooding", Severity: SeverityMedium}),
	}
	eng.Configs = &StaticConfigProvider{Configs: map[string]*GuildConfig{
		"g1": {Spam: SpamConfig{Enabled: true, Action: ActionTimeout}},
	}}
	transport := eng.Transport.(*FakeTransport)
	members := eng.Members.(*FakeMemberActions)

	evt := TestMessageEvent("a a a a a")
	require.NoError(eng.ProcessMessage(ctx, &evt))

	assert.Len(transport.DeletedRefs(), 1)
	require.Len(members.Timeouts, 1)
	assert.Equal("u1", members.Timeouts[0].UserID)
	assert.Equal(600, int(members.Timeouts[0].Duration.Seconds()))

	// exactly one audit case, tagged with the rule type
	led := eng.Ledger.(*ledger.MemCaseLedger)
	cases := led.Cases("g1")
	require.Len(cases, 1)
	assert.Equal("automod_spam", cases[0].Action)
	assert.Equal("u1", cases[0].TargetID)
	assert.Equal(int64(1), cases[0].CaseNumber)

	// one member record appended for the punitive action
	recs, err := eng.Records.List(ctx, "g1", "u1")
	require.NoError(err)
	require.Len(recs, 1)
	assert.Equal("timeout", recs[0].Kind)
	assert.Equal(int64(1), recs[0].CaseNumber)

	// in-channel notice posted
	assert.NotEmpty(transport.ChannelMessages)
}

func TestEngineDeleteFailureContinues(t *testing.T) {
	assert := assert.New(t)
	require := require.New(t)
	ctx := context.Background()

	eng := EngineTestFixture()
	eng.Rules.MessageRules = []MessageRuleFunc{
		flagAll(Violation{Type: ViolationBadWords, Reason: "prohibited word", Severity: SeverityExtreme}),
	}
	eng.Configs = &StaticConfigProvider{Configs: map[string]*GuildConfig{
		"g1": {BadWords: BadWordsConfig{Enabled: true}},
	}}
	transport := eng.Transport.(*FakeTransport)
	transport.FailDelete = true
	members := eng.Members.(*FakeMemberActions)

	evt := TestMessageEvent("whatever")
	require.NoError(eng.ProcessMessage(ctx, &evt))

	// message already gone: kick still happens, case still recorded
	assert.Len(members.Kicks, 1)
	led := eng.Ledger.(*ledger.MemCaseLedger)
	assert.Len(led.Cases("g1"), 1)
}

func TestEngineConfigProviderFailure(t *testing.T) {
	assert := assert.New(t)
	ctx := context.Background()

	eng := EngineTestFixture()
	eng.Cache = nil
	eng.Rules.MessageRules = []MessageRuleFunc{
		func(c *MessageContext) error {
			if c.Config.BadWords.Enabled {
				c.Flag(Violation{Type: ViolationBadWords, Reason: "prohibited word", Severity: SeverityLow})
			}
			return nil
		},
	}
	eng.Configs = failingConfigProvider{}
	transport := eng.Transport.(*FakeTransport)

	evt := TestMessageEvent("whatever")
	assert.NoError(eng.ProcessMessage(ctx, &evt))
	// provider outage disables moderation instead of misfiring it
	assert.Empty(transport.DeletedRefs())
}

type failingConfigProvider struct{}

func (failingConfigProvider) GetGuildConfig(ctx context.Context, guildID string) (*GuildConfig, error) {
	return nil, context.DeadlineExceeded
}

func TestEnginePanicRecovery(t *testing.T) {
	assert := assert.New(t)
	ctx := context.Background()

	eng := EngineTestFixture()
	eng.Rules.MessageRules = []MessageRuleFunc{
		func(c *MessageContext) error { panic("detector bug") },
	}

	evt := TestMessageEvent("whatever")
	err := eng.ProcessMessage(ctx, &evt)
	assert.Error(err)
}
