package engine

import (
	"context"
	"io"
	"log/slog"
	"sync"
	"time"

	"github.com/chathaven/warden/cachestore"
	"github.com/chathaven/warden/keyword"
	"github.com/chathaven/warden/ledger"
	"github.com/chathaven/warden/recordstore"
	"github.com/chathaven/warden/setstore"
	"github.com/chathaven/warden/windowstore"
)

// FakeTransport records transport calls for assertions.
type FakeTransport struct {
	mu              sync.Mutex
	Deleted         []MessageRef
	ChannelMessages []string
	DirectMessages  map[string][]string
	FailDelete      bool

	nextID int
}

func NewFakeTransport() *FakeTransport {
	return &FakeTransport{DirectMessages: make(map[string][]string)}
}

func (t *FakeTransport) DeleteMessage(ctx context.Context, ref MessageRef) error {
	t.mu.Lock()
	defer t.mu.Unlock()
	if t.FailDelete {
		return context.DeadlineExceeded
	}
	t.Deleted = append(t.Deleted, ref)
	return nil
}

func (t *FakeTransport) SendChannelMessage(ctx context.Context, guildID, channelID, content string) (MessageRef, error) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.ChannelMessages = append(t.ChannelMessages, content)
	t.nextID++
	return MessageRef{GuildID: guildID, ChannelID: channelID, MessageID: "notice-" + string(rune('a'+t.nextID-1))}, nil
}

func (t *FakeTransport) SendDirectMessage(ctx context.Context, userID, content string) error {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.DirectMessages[userID] = append(t.DirectMessages[userID], content)
	return nil
}

func (t *FakeTransport) DeletedRefs() []MessageRef {
	t.mu.Lock()
	defer t.mu.Unlock()
	out := make([]MessageRef, len(t.Deleted))
	copy(out, t.Deleted)
	return out
}

type TimeoutCall struct {
	GuildID  string
	UserID   string
	Duration time.Duration
	Reason   string
}

type MemberCall struct {
	GuildID string
	UserID  string
	RoleID  string
	Reason  string
}

// FakeMemberActions records account-level actions for assertions.
type FakeMemberActions struct {
	mu       sync.Mutex
	Timeouts []TimeoutCall
	Kicks    []MemberCall
	RoleAdds []MemberCall
}

func (m *FakeMemberActions) TimeoutMember(ctx context.Context, guildID, userID string, duration time.Duration, reason string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Timeouts = append(m.Timeouts, TimeoutCall{GuildID: guildID, UserID: userID, Duration: duration, Reason: reason})
	return nil
}

func (m *FakeMemberActions) KickMember(ctx context.Context, guildID, userID, reason string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Kicks = append(m.Kicks, MemberCall{GuildID: guildID, UserID: userID, Reason: reason})
	return nil
}

func (m *FakeMemberActions) AddMemberRole(ctx context.Context, guildID, userID, roleID, reason string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.RoleAdds = append(m.RoleAdds, MemberCall{GuildID: guildID, UserID: userID, RoleID: roleID, Reason: reason})
	return nil
}

// EngineTestFixture returns an engine wired entirely to in-memory stores
// and fake collaborators, with no rules installed. Tests attach whatever
// rules and configs they need.
func EngineTestFixture() *Engine {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	return &Engine{
		Logger:      logger,
		Rules:       RuleSet{},
		Windows:     windowstore.NewMemWindowStore(),
		Sets:        setstore.NewMemSetStore(),
		Cache:       cachestore.NewMemCacheStore(100, 30*time.Second),
		Keywords:    keyword.NewMatcher(),
		Configs:     &StaticConfigProvider{Configs: map[string]*GuildConfig{}},
		Transport:   NewFakeTransport(),
		Members:     &FakeMemberActions{},
		Permissions: &RolePermissionResolver{},
		Ledger:      ledger.NewMemCaseLedger(),
		Records:     recordstore.NewMemMemberRecordStore(),
		ActorID:     "warden-bot",
	}
}

// TestMessageEvent is a plain offending-looking message from a regular
// member of guild g1.
func TestMessageEvent(text string) MessageEvent {
	return MessageEvent{
		GuildID:   "g1",
		ChannelID: "c1",
		MessageID: "m1",
		Author: AccountMeta{
			ID:       "u1",
			Username: "alice",
		},
		Text:      text,
		CreatedAt: time.Now(),
	}
}
