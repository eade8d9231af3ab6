package main

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"net/url"
	"time"

	"github.com/carlmjohnson/versioninfo"
	"github.com/gorilla/websocket"
	"github.com/spaolacci/murmur3"
	"golang.org/x/sync/errgroup"

	"github.com/chathaven/warden/engine"
)

const (
	readTimeout  = 60 * time.Second
	pingInterval = 30 * time.Second
	// per-shard queue depth; the consumer blocks when a shard is saturated
	shardQueueDepth = 256
)

// workerPool fans message events out across a fixed set of worker
// goroutines, sharded by (guild, author) so each author's messages are
// processed in arrival order while different authors run concurrently.
type workerPool struct {
	logger *slog.Logger
	engine *engine.Engine
	queues []chan *engine.MessageEvent
}

func newWorkerPool(logger *slog.Logger, eng *engine.Engine, count int) *workerPool {
	queues := make([]chan *engine.MessageEvent, count)
	for i := range queues {
		queues[i] = make(chan *engine.MessageEvent, shardQueueDepth)
	}
	return &workerPool{
		logger: logger,
		engine: eng,
		queues: queues,
	}
}

func (p *workerPool) start(eg *errgroup.Group) {
	for _, q := range p.queues {
		queue := q
		eg.Go(func() error {
			for evt := range queue {
				// in-flight messages finish with their own timeouts even
				// during shutdown
				if err := p.engine.ProcessMessage(context.Background(), evt); err != nil {
					p.logger.Error("message processing failed", "guild", evt.GuildID, "message", evt.MessageID, "err", err)
				}
			}
			return nil
		})
	}
}

func (p *workerPool) dispatch(evt *engine.MessageEvent) {
	shard := murmur3.Sum32([]byte(evt.WindowKey())) % uint32(len(p.queues))
	p.queues[shard] <- evt
}

// close stops the workers once their queues drain. Only the consumer may
// call this, after it has stopped dispatching.
func (p *workerPool) close() {
	for _, q := range p.queues {
		close(q)
	}
}

type gatewayFrame struct {
	Type string          `json:"type"`
	Data json.RawMessage `json:"data"`
}

type configUpdateData struct {
	GuildID string `json:"guildId"`
}

// RunConsumer subscribes to the gateway event stream and dispatches
// message events to the worker pool, reconnecting with backoff until the
// context is cancelled.
func (s *Server) RunConsumer(ctx context.Context) error {
	u, err := url.Parse(s.gatewayHost)
	if err != nil {
		return fmt.Errorf("invalid gateway host URI: %w", err)
	}
	u.Path = "/gateway/v1/events"

	backoff := time.Second
	for {
		if ctx.Err() != nil {
			return ctx.Err()
		}

		s.logger.Info("subscribing to gateway event stream", "upstream", s.gatewayHost)
		con, _, err := websocket.DefaultDialer.DialContext(ctx, u.String(), http.Header{
			"User-Agent": []string{fmt.Sprintf("warden/%s", versioninfo.Short())},
		})
		if err != nil {
			s.logger.Error("gateway dial failed", "err", err, "backoff", backoff)
			gatewayReconnects.Inc()
			select {
			case <-ctx.Done():
				return ctx.Err()
			case <-time.After(backoff):
			}
			if backoff < 30*time.Second {
				backoff *= 2
			}
			continue
		}
		backoff = time.Second

		if err := s.consumeConnection(ctx, con); err != nil && ctx.Err() == nil {
			s.logger.Error("gateway connection lost", "err", err)
			gatewayReconnects.Inc()
		}
		con.Close()
	}
}

func (s *Server) consumeConnection(ctx context.Context, con *websocket.Conn) error {
	con.SetReadDeadline(time.Now().Add(readTimeout))
	con.SetPongHandler(func(string) error {
		return con.SetReadDeadline(time.Now().Add(readTimeout))
	})

	pingCtx, cancel := context.WithCancel(ctx)
	defer cancel()
	go func() {
		ticker := time.NewTicker(pingInterval)
		defer ticker.Stop()
		for {
			select {
			case <-pingCtx.Done():
				return
			case <-ticker.C:
				if err := con.WriteControl(websocket.PingMessage, nil, time.Now().Add(5*time.Second)); err != nil {
					return
				}
			}
		}
	}()

	for {
		if ctx.Err() != nil {
			return ctx.Err()
		}
		var frame gatewayFrame
		if err := con.ReadJSON(&frame); err != nil {
			return err
		}
		gatewayFrames.WithLabelValues(frame.Type).Inc()

		switch frame.Type {
		case "message_create":
			var evt engine.MessageEvent
			if err := json.Unmarshal(frame.Data, &evt); err != nil {
				s.logger.Error("malformed message event, skipping", "err", err)
				continue
			}
			s.workers.dispatch(&evt)
		case "config_update":
			var data configUpdateData
			if err := json.Unmarshal(frame.Data, &data); err != nil {
				s.logger.Error("malformed config update, skipping", "err", err)
				continue
			}
			if err := s.engine.PurgeGuildConfig(ctx, data.GuildID); err != nil {
				s.logger.Warn("failed to purge cached config", "guild", data.GuildID, "err", err)
			}
		default:
			// other gateway event types are not moderation concerns
		}
	}
}
