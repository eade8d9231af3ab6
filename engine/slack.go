package engine

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
)

// SlackNotifier pushes extreme-severity enforcement events to a slack
// channel via an "incoming webhook", so on-call moderators hear about
// auto-kicks without watching the log channel.
type SlackNotifier struct {
	SlackWebhookURL string
}

type SlackWebhookBody struct {
	Text string `json:"text"`
}

func (n *SlackNotifier) SendViolation(ctx context.Context, evt *MessageEvent, v *Violation, action EnforcementAction) error {
	msg := "⚠️ Warden Enforcement ⚠️\n"
	msg += fmt.Sprintf("guild `%s` / channel `%s` / user `%s` (%s)\n",
		evt.GuildID, evt.ChannelID, evt.Author.ID, evt.Author.Username)
	msg += fmt.Sprintf("violation `%s` severity `%s`: %s\n", v.Type, v.Severity, v.Reason)
	msg += fmt.Sprintf("action: `%s`\n", action.Kind)
	return n.sendSlackMsg(ctx, msg)
}

// The slack incoming webhook must be already configured in the slack workplace.
func (n *SlackNotifier) sendSlackMsg(ctx context.Context, msg string) error {
	body, err := json.Marshal(SlackWebhookBody{Text: msg})
	if err != nil {
		return err
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, n.SlackWebhookURL, bytes.NewBuffer(body))
	if err != nil {
		return err
	}
	req.Header.Add("Content-Type", "application/json")
	client := http.DefaultClient
	resp, err := client.Do(req)
	if err != nil {
		return err
	}

	defer resp.Body.Close()

	buf := new(bytes.Buffer)
	buf.ReadFrom(resp.Body)
	if resp.StatusCode != 200 || buf.String() != "ok" {
		return fmt.Errorf("failed slack webhook POST request. status=%d", resp.StatusCode)
	}
	return nil
}

func (e *Engine) sendAdminAlert(c *MessageContext, v *Violation, action EnforcementAction) {
	if e.Notifier == nil {
		return
	}
	ctx, cancel := e.sideEffectCtx()
	defer cancel()
	if err := e.Notifier.SendViolation(ctx, &c.Event, v, action); err != nil {
		enforcementErrorCount.WithLabelValues("notify").Inc()
		c.Logger.Warn("failed to send admin alert", "err", err)
	}
}
