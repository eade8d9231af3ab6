// Package chatapi is the REST client for the chat platform. It implements
// the engine's transport and member-action interfaces with retrying HTTP,
// client-side rate limiting, and bearer auth.
package chatapi

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"time"

	"github.com/hashicorp/go-retryablehttp"
	"golang.org/x/time/rate"

	"github.com/chathaven/warden/engine"
)

type LeveledSlog struct {
	inner *slog.Logger
}

// re-writes HTTP client ERROR to WARN level (because of retries)
func (l LeveledSlog) Error(msg string, keysAndValues ...any) {
	l.inner.Warn(msg, keysAndValues...)
}

func (l LeveledSlog) Warn(msg string, keysAndValues ...any) {
	l.inner.Warn(msg, keysAndValues...)
}

func (l LeveledSlog) Info(msg string, keysAndValues ...any) {
	l.inner.Info(msg, keysAndValues...)
}

func (l LeveledSlog) Debug(msg string, keysAndValues ...any) {
	l.inner.Debug(msg, keysAndValues...)
}

// Client talks to the platform's HTTP API. Idempotent calls (deletes,
// role and member updates) go through a retrying client; message sends
// are single-shot since a retried send can double-post.
type Client struct {
	Host  string
	Token string

	retrying   *http.Client
	singleShot *http.Client
	limiter    *rate.Limiter
}

func NewClient(host, token string, logger *slog.Logger) *Client {
	retryClient := retryablehttp.NewClient()
	retryClient.RetryMax = 3
	retryClient.RetryWaitMin = 500 * time.Millisecond
	retryClient.RetryWaitMax = 5 * time.Second
	retryClient.Logger = retryablehttp.LeveledLogger(LeveledSlog{inner: logger.With("subsystem", "chatapi")})
	retrying := retryClient.StandardClient()
	retrying.Timeout = 15 * time.Second

	return &Client{
		Host:       host,
		Token:      token,
		retrying:   retrying,
		singleShot: &http.Client{Timeout: 15 * time.Second},
		// platform-wide budget; per-route headers are not modeled here
		limiter: rate.NewLimiter(rate.Limit(40), 40),
	}
}

func (c *Client) do(ctx context.Context, client *http.Client, method, path string, body any, out any) error {
	if err := c.limiter.Wait(ctx); err != nil {
		return err
	}

	var buf io.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		if err != nil {
			return err
		}
		buf = bytes.NewReader(raw)
	}
	req, err := http.NewRequestWithContext(ctx, method, c.Host+path, buf)
	if err != nil {
		return err
	}
	req.Header.Set("Authorization", "Bot "+c.Token)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := client.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 300 {
		raw, _ := io.ReadAll(io.LimitReader(resp.Body, 1024))
		return &StatusError{Method: method, Path: path, StatusCode: resp.StatusCode, Body: string(raw)}
	}
	if out != nil {
		return json.NewDecoder(resp.Body).Decode(out)
	}
	return nil
}

type messageBody struct {
	Content string `json:"content"`
}

type messageResponse struct {
	ID        string `json:"id"`
	ChannelID string `json:"channelId"`
	GuildID   string `json:"guildId"`
}

func (c *Client) DeleteMessage(ctx context.Context, ref engine.MessageRef) error {
	path := fmt.Sprintf("/api/v1/channels/%s/messages/%s", ref.ChannelID, ref.MessageID)
	return c.do(ctx, c.retrying, http.MethodDelete, path, nil, nil)
}

func (c *Client) SendChannelMessage(ctx context.Context, guildID, channelID, content string) (engine.MessageRef, error) {
	path := fmt.Sprintf("/api/v1/channels/%s/messages", channelID)
	var resp messageResponse
	if err := c.do(ctx, c.singleShot, http.MethodPost, path, messageBody{Content: content}, &resp); err != nil {
		return engine.MessageRef{}, err
	}
	return engine.MessageRef{GuildID: guildID, ChannelID: channelID, MessageID: resp.ID}, nil
}

func (c *Client) SendDirectMessage(ctx context.Context, userID, content string) error {
	var dm struct {
		ID string `json:"id"`
	}
	if err := c.do(ctx, c.retrying, http.MethodPost, "/api/v1/users/@me/channels", map[string]string{"recipientId": userID}, &dm); err != nil {
		return fmt.Errorf("opening DM channel: %w", err)
	}
	path := fmt.Sprintf("/api/v1/channels/%s/messages", dm.ID)
	return c.do(ctx, c.singleShot, http.MethodPost, path, messageBody{Content: content}, nil)
}

func (c *Client) TimeoutMember(ctx context.Context, guildID, userID string, duration time.Duration, reason string) error {
	path := fmt.Sprintf("/api/v1/guilds/%s/members/%s", guildID, userID)
	body := map[string]any{
		"communicationDisabledUntil": time.Now().Add(duration).UTC().Format(time.RFC3339),
		"reason":                     reason,
	}
	return c.do(ctx, c.retrying, http.MethodPatch, path, body, nil)
}

func (c *Client) KickMember(ctx context.Context, guildID, userID, reason string) error {
	path := fmt.Sprintf("/api/v1/guilds/%s/members/%s?reason=%s", guildID, userID, url.QueryEscape(reason))
	return c.do(ctx, c.retrying, http.MethodDelete, path, nil, nil)
}

func (c *Client) AddMemberRole(ctx context.Context, guildID, userID, roleID, reason string) error {
	path := fmt.Sprintf("/api/v1/guilds/%s/members/%s/roles/%s", guildID, userID, roleID)
	return c.do(ctx, c.retrying, http.MethodPut, path, map[string]string{"reason": reason}, nil)
}

var _ engine.MessageTransport = (*Client)(nil)
var _ engine.MemberActions = (*Client)(nil)
