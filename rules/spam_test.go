package rules

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/chathaven/warden/engine"
	"github.com/chathaven/warden/ledger"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMessageRateRule(t *testing.T) {
	assert := assert.New(t)
	require := require.New(t)
	ctx := context.Background()

	eng := newFixtureEngine(&engine.GuildConfig{
		Spam: engine.SpamConfig{Enabled: true, Limit: 5, WindowSeconds: 5},
	})
	transport := eng.Transport.(*engine.FakeTransport)

	base := time.Now()
	send := func(i int, at time.Time) {
		evt := engine.TestMessageEvent("hello")
		evt.MessageID = fmt.Sprintf("m%d", i)
		evt.CreatedAt = at
		require.NoError(eng.ProcessMessage(ctx, &evt))
	}

	// six messages inside three seconds: only the sixth trips the limit
	for i := 0; i < 5; i++ {
		send(i, base.Add(time.Duration(i)*500*time.Millisecond))
	}
	assert.Empty(transport.DeletedRefs())

	send(5, base.Add(2500*time.Millisecond))
	require.Len(transport.DeletedRefs(), 1)
	assert.Equal("m5", transport.DeletedRefs()[0].MessageID)

	// exactly one audit case for the burst
	led := eng.Ledger.(*ledger.MemCaseLedger)
	cases := led.Cases("g1")
	require.Len(cases, 1)
	assert.Equal("automod_spam", cases[0].Action)

	// enforcement cleared the window, so the next message starts fresh
	send(6, base.Add(2600*time.Millisecond))
	assert.Len(transport.DeletedRefs(), 1)
	assert.Len(led.Cases("g1"), 1)
}

func TestMessageRateSlowSenderNeverTrips(t *testing.T) {
	assert := assert.New(t)
	require := require.New(t)
	ctx := context.Background()

	eng := newFixtureEngine(&engine.GuildConfig{
		Spam: engine.SpamConfig{Enabled: true, Limit: 5, WindowSeconds: 5},
	})
	transport := eng.Transport.(*engine.FakeTransport)

	base := time.Now()
	for i := 0; i < 10; i++ {
		evt := engine.TestMessageEvent("hello")
		evt.MessageID = fmt.Sprintf("m%d", i)
		evt.CreatedAt = base.Add(time.Duration(i) * 2 * time.Second)
		require.NoError(eng.ProcessMessage(ctx, &evt))
	}
	assert.Empty(transport.DeletedRefs())
}

func TestMessageRatePerAuthorWindows(t *testing.T) {
	assert := assert.New(t)
	require := require.New(t)
	ctx := context.Background()

	eng := newFixtureEngine(&engine.GuildConfig{
		Spam: engine.SpamConfig{Enabled: true, Limit: 2, WindowSeconds: 5},
	})
	transport := eng.Transport.(*engine.FakeTransport)

	base := time.Now()
	for i := 0; i < 3; i++ {
		// alternating authors, each stays within their own limit
		for _, author := range []string{"u1", "u2"} {
			evt := engine.TestMessageEvent("hello")
			evt.MessageID = fmt.Sprintf("m-%s-%d", author, i)
			evt.Author.ID = author
			evt.CreatedAt = base.Add(time.Duration(i) * 100 * time.Millisecond)
			require.NoError(eng.ProcessMessage(ctx, &evt))
		}
	}
	// each author's third message trips independently
	assert.Len(transport.DeletedRefs(), 2)
}
