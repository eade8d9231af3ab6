package engine

import (
	"context"
	"log/slog"
	"sync"
	"time"
)

// DefaultNoticeTTL is how long a transient in-channel notice stays up
// before the scheduler deletes it.
const DefaultNoticeTTL = 12 * time.Second

// NoticeScheduler self-deletes the bot's transient notices after a short
// delay. Each scheduled delete runs on its own timer goroutine; Shutdown
// cancels pending timers and waits for in-flight deletes.
type NoticeScheduler struct {
	logger    *slog.Logger
	transport MessageTransport
	ttl       time.Duration

	ctx    context.Context
	cancel context.CancelFunc
	wg     sync.WaitGroup
}

func NewNoticeScheduler(logger *slog.Logger, transport MessageTransport, ttl time.Duration) *NoticeScheduler {
	if ttl <= 0 {
		ttl = DefaultNoticeTTL
	}
	ctx, cancel := context.WithCancel(context.Background())
	return &NoticeScheduler{
		logger:    logger,
		transport: transport,
		ttl:       ttl,
		ctx:       ctx,
		cancel:    cancel,
	}
}

func (n *NoticeScheduler) ScheduleDelete(ref MessageRef) {
	n.wg.Add(1)
	go func() {
		defer n.wg.Done()
		timer := time.NewTimer(n.ttl)
		defer timer.Stop()
		select {
		case <-n.ctx.Done():
			return
		case <-timer.C:
		}
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := n.transport.DeleteMessage(ctx, ref); err != nil {
			n.logger.Warn("failed to clean up notice", "channel", ref.ChannelID, "message", ref.MessageID, "err", err)
		}
	}()
}

// Shutdown cancels pending notice deletions and waits for any already
// running to finish.
func (n *NoticeScheduler) Shutdown() {
	n.cancel()
	n.wg.Wait()
}
