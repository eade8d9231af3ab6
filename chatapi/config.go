package chatapi

import (
	"context"
	"fmt"
	"net/http"

	"github.com/chathaven/warden/engine"
)

// HTTPConfigProvider fetches per-guild moderation policy from the
// platform's config endpoint. A 404 means the guild was never configured
// and maps to (nil, nil), which the engine treats as the zero policy.
type HTTPConfigProvider struct {
	Client *Client
}

func (p *HTTPConfigProvider) GetGuildConfig(ctx context.Context, guildID string) (*engine.GuildConfig, error) {
	path := fmt.Sprintf("/api/v1/guilds/%s/moderation-config", guildID)
	var cfg engine.GuildConfig
	err := p.Client.do(ctx, p.Client.retrying, http.MethodGet, path, nil, &cfg)
	if err != nil {
		if isStatus(err, http.StatusNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &cfg, nil
}

var _ engine.ConfigProvider = (*HTTPConfigProvider)(nil)
