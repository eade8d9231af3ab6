package engine

import "time"

// AccountMeta is the minimal author metadata the detectors and the
// permission check need, carried on the event itself so detection never
// does network lookups.
type AccountMeta struct {
	ID            string   `json:"id"`
	Username      string   `json:"username"`
	RoleIDs       []string `json:"roleIds"`
	Administrator bool     `json:"administrator"`
	Bot           bool     `json:"bot"`
}

// MessageRef identifies one message for transport operations.
type MessageRef struct {
	GuildID   string `json:"guildId"`
	ChannelID string `json:"channelId"`
	MessageID string `json:"messageId"`
}

// MessageEvent is one inbound text message to evaluate.
type MessageEvent struct {
	GuildID          string      `json:"guildId"`
	ChannelID        string      `json:"channelId"`
	MessageID        string      `json:"messageId"`
	Author           AccountMeta `json:"author"`
	Text             string      `json:"text"`
	MentionUserIDs   []string    `json:"mentionUserIds"`
	MentionRoleIDs   []string    `json:"mentionRoleIds"`
	MentionsEveryone bool        `json:"mentionsEveryone"`
	CreatedAt        time.Time   `json:"createdAt"`
}

func (e *MessageEvent) Ref() MessageRef {
	return MessageRef{
		GuildID:   e.GuildID,
		ChannelID: e.ChannelID,
		MessageID: e.MessageID,
	}
}

// WindowKey is the sliding-window subject key for this message's author.
func (e *MessageEvent) WindowKey() string {
	return e.GuildID + "/" + e.Author.ID
}
