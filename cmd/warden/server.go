package main

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus/promhttp"
	"golang.org/x/sync/errgroup"

	"github.com/chathaven/warden/cachestore"
	"github.com/chathaven/warden/chatapi"
	"github.com/chathaven/warden/engine"
	"github.com/chathaven/warden/keyword"
	"github.com/chathaven/warden/ledger"
	"github.com/chathaven/warden/recordstore"
	"github.com/chathaven/warden/rules"
	"github.com/chathaven/warden/setstore"
	"github.com/chathaven/warden/windowstore"
)

// name of the set holding extreme-band terms in the sets JSON file
const setExtremeWords = "extreme-words"

type Server struct {
	logger      *slog.Logger
	gatewayHost string
	engine      *engine.Engine
	janitor     *windowstore.Janitor
	workers     *workerPool
}

type Config struct {
	Logger           *slog.Logger
	GatewayHost      string
	ChatHost         string
	ChatToken        string
	BotUserID        string
	DatabaseURL      string
	MaxDBConnections int
	RedisURL         string
	SetsFileJSON     string
	SlackWebhookURL  string
	WorkerCount      int
}

func NewServer(config Config) (*Server, error) {
	logger := config.Logger
	if logger == nil {
		logger = slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
			Level: slog.LevelInfo,
		}))
	}

	if !strings.HasPrefix(config.GatewayHost, "ws") {
		return nil, fmt.Errorf("specified gateway host must include 'ws://' or 'wss://'")
	}

	fileSets := setstore.NewMemSetStore()
	if config.SetsFileJSON != "" {
		if err := fileSets.LoadFromFileJSON(config.SetsFileJSON); err != nil {
			return nil, fmt.Errorf("initializing in-process setstore: %v", err)
		}
		logger.Info("loaded set config from JSON", "path", config.SetsFileJSON)
	}

	matcher := keyword.NewMatcher()
	matcher.AddExtremeTerms(fileSets.Values(setExtremeWords)...)

	var sets setstore.SetStore = fileSets
	var windows windowstore.WindowStore
	var cache cachestore.CacheStore
	var records recordstore.MemberRecordStore
	var janitor *windowstore.Janitor
	if config.RedisURL != "" {
		win, err := windowstore.NewRedisWindowStore(config.RedisURL)
		if err != nil {
			return nil, fmt.Errorf("initializing redis windowstore: %v", err)
		}
		windows = win

		csh, err := cachestore.NewRedisCacheStore(config.RedisURL, 30*time.Second)
		if err != nil {
			return nil, fmt.Errorf("initializing redis cachestore: %v", err)
		}
		cache = csh

		rec, err := recordstore.NewRedisMemberRecordStore(config.RedisURL)
		if err != nil {
			return nil, fmt.Errorf("initializing redis recordstore: %v", err)
		}
		records = rec

		// mirror the file sets into redis so every process sees one copy
		rs, err := setstore.NewRedisSetStore(config.RedisURL)
		if err != nil {
			return nil, fmt.Errorf("initializing redis setstore: %v", err)
		}
		for _, name := range []string{rules.SetGlobalDomainAllow, rules.SetGlobalInviteAllow} {
			if err := rs.Add(context.TODO(), name, fileSets.Values(name)); err != nil {
				return nil, fmt.Errorf("mirroring set %q to redis: %v", name, err)
			}
		}
		sets = rs
	} else {
		mem := windowstore.NewMemWindowStore()
		windows = mem
		janitor = windowstore.NewJanitor(logger, mem)
		cache = cachestore.NewMemCacheStore(5_000, 30*time.Second)
		records = recordstore.NewMemMemberRecordStore()
	}

	db, err := ledger.SetupDatabase(config.DatabaseURL, config.MaxDBConnections)
	if err != nil {
		return nil, fmt.Errorf("opening ledger database: %v", err)
	}
	cases, err := ledger.NewGormCaseLedger(db)
	if err != nil {
		return nil, fmt.Errorf("initializing case ledger: %v", err)
	}

	client := chatapi.NewClient(config.ChatHost, config.ChatToken, logger)

	var notifier *engine.SlackNotifier
	if config.SlackWebhookURL != "" {
		notifier = &engine.SlackNotifier{SlackWebhookURL: config.SlackWebhookURL}
	}

	eng := &engine.Engine{
		Logger:      logger,
		Rules:       rules.DefaultRules(),
		Windows:     windows,
		Sets:        sets,
		Cache:       cache,
		Keywords:    matcher,
		Configs:     &chatapi.HTTPConfigProvider{Client: client},
		Transport:   client,
		Members:     client,
		Permissions: &engine.RolePermissionResolver{},
		Ledger:      cases,
		Records:     records,
		Notices:     engine.NewNoticeScheduler(logger, client, engine.DefaultNoticeTTL),
		Notifier:    notifier,
		ActorID:     config.BotUserID,
	}

	workerCount := config.WorkerCount
	if workerCount <= 0 {
		workerCount = 32
	}

	s := &Server{
		logger:      logger,
		gatewayHost: config.GatewayHost,
		engine:      eng,
		janitor:     janitor,
		workers:     newWorkerPool(logger, eng, workerCount),
	}

	return s, nil
}

// Run starts the gateway consumer, the message workers, and the window
// janitor, and blocks until a signal or a fatal consumer error. Pending
// transient notices are flushed on the way out.
func (s *Server) Run(ctx context.Context) error {
	ctx, stop := signal.NotifyContext(ctx, syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	eg, ctx := errgroup.WithContext(ctx)
	s.workers.start(eg)
	if s.janitor != nil {
		eg.Go(func() error {
			return s.janitor.Run(ctx)
		})
	}
	eg.Go(func() error {
		defer s.workers.close()
		return s.RunConsumer(ctx)
	})

	err := eg.Wait()
	s.engine.Notices.Shutdown()
	if err != nil && err != context.Canceled {
		return err
	}
	s.logger.Info("shutdown complete")
	return nil
}

func (s *Server) RunMetrics(listen string) error {
	http.Handle("/metrics", promhttp.Handler())
	return http.ListenAndServe(listen, nil)
}
