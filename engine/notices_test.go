package engine

import (
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestNoticeSchedulerDeletes(t *testing.T) {
	assert := assert.New(t)

	transport := NewFakeTransport()
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	sched := NewNoticeScheduler(logger, transport, 10*time.Millisecond)
	defer sched.Shutdown()

	ref := MessageRef{GuildID: "g1", ChannelID: "c1", MessageID: "n1"}
	sched.ScheduleDelete(ref)

	assert.Eventually(func() bool {
		return len(transport.DeletedRefs()) == 1
	}, time.Second, 5*time.Millisecond)
	assert.Equal(ref, transport.DeletedRefs()[0])
}

func TestNoticeSchedulerShutdownCancels(t *testing.T) {
	assert := assert.New(t)

	transport := NewFakeTransport()
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	sched := NewNoticeScheduler(logger, transport, time.Hour)

	sched.ScheduleDelete(MessageRef{GuildID: "g1", ChannelID: "c1", MessageID: "n1"})
	sched.Shutdown()

	assert.Empty(transport.DeletedRefs())
}
