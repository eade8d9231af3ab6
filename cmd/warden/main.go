package main

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/carlmjohnson/versioninfo"
	_ "github.com/joho/godotenv/autoload"
	cli "github.com/urfave/cli/v2"
)

func main() {
	if err := run(os.Args); err != nil {
		slog.Error("exiting", "err", err)
		os.Exit(-1)
	}
}

func run(args []string) error {

	app := cli.App{
		Name:    "warden",
		Usage:   "chat moderation daemon (keeps the peace)",
		Version: versioninfo.Short(),
	}

	app.Commands = []*cli.Command{
		runCmd,
	}

	return app.Run(args)
}

var runCmd = &cli.Command{
	Name:  "run",
	Usage: "run the service",
	Flags: []cli.Flag{
		&cli.StringFlag{
			Name:    "gateway-host",
			Usage:   "websocket host to subscribe to for message events",
			Value:   "wss://gateway.chathaven.example",
			EnvVars: []string{"WARDEN_GATEWAY_HOST"},
		},
		&cli.StringFlag{
			Name:    "chat-host",
			Usage:   "base URL of the chat platform REST API",
			Value:   "https://api.chathaven.example",
			EnvVars: []string{"WARDEN_CHAT_HOST"},
		},
		&cli.StringFlag{
			Name:     "chat-token",
			Usage:    "bot token for the chat platform API",
			Required: true,
			EnvVars:  []string{"WARDEN_CHAT_TOKEN"},
		},
		&cli.StringFlag{
			Name:    "bot-user-id",
			Usage:   "the bot's own account ID, recorded as actor on audit cases",
			Value:   "warden",
			EnvVars: []string{"WARDEN_BOT_USER_ID"},
		},
		&cli.StringFlag{
			Name:    "database-url",
			Usage:   "database connection string for the case ledger",
			Value:   "sqlite://data/warden/warden.sqlite",
			EnvVars: []string{"DATABASE_URL"},
		},
		&cli.IntFlag{
			Name:    "max-db-connections",
			EnvVars: []string{"MAX_DB_CONNECTIONS"},
			Value:   40,
		},
		&cli.StringFlag{
			Name:    "redis-url",
			Usage:   "redis connection for shared state (windows, caches, member records); in-process fallback when empty",
			EnvVars: []string{"WARDEN_REDIS_URL"},
		},
		&cli.StringFlag{
			Name:    "sets-json-path",
			Usage:   "file path of JSON file containing global allow-lists and the extreme word list",
			EnvVars: []string{"WARDEN_SETS_JSON_PATH"},
		},
		&cli.StringFlag{
			Name:    "slack-webhook-url",
			Usage:   "incoming webhook for extreme-severity enforcement alerts",
			EnvVars: []string{"SLACK_WEBHOOK_URL"},
		},
		&cli.StringFlag{
			Name:    "metrics-listen",
			Usage:   "IP or address, and port, to listen on for metrics APIs",
			Value:   ":3989",
			EnvVars: []string{"WARDEN_METRICS_LISTEN"},
		},
		&cli.IntFlag{
			Name:    "worker-count",
			Usage:   "number of message worker shards; ordering is per (guild, author)",
			Value:   32,
			EnvVars: []string{"WARDEN_WORKER_COUNT"},
		},
	},
	Action: func(cctx *cli.Context) error {
		logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
			Level: slog.LevelInfo,
		}))
		slog.SetDefault(logger)

		srv, err := NewServer(Config{
			Logger:           logger,
			GatewayHost:      cctx.String("gateway-host"),
			ChatHost:         cctx.String("chat-host"),
			ChatToken:        cctx.String("chat-token"),
			BotUserID:        cctx.String("bot-user-id"),
			DatabaseURL:      cctx.String("database-url"),
			MaxDBConnections: cctx.Int("max-db-connections"),
			RedisURL:         cctx.String("redis-url"),
			SetsFileJSON:     cctx.String("sets-json-path"),
			SlackWebhookURL:  cctx.String("slack-webhook-url"),
			WorkerCount:      cctx.Int("worker-count"),
		})
		if err != nil {
			return err
		}

		go func() {
			if err := srv.RunMetrics(cctx.String("metrics-listen")); err != nil {
				slog.Error("failed to start metrics endpoint", "error", err)
				panic(fmt.Errorf("failed to start metrics endpoint: %w", err))
			}
		}()

		if err := srv.Run(cctx.Context); err != nil {
			return fmt.Errorf("failed to run moderation service: %w", err)
		}
		return nil
	},
}
