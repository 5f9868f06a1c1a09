package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/Domenick1991/frontdesk/config"
	"github.com/Domenick1991/frontdesk/internal/bootstrap"
	"github.com/Domenick1991/frontdesk/internal/cache"
	"github.com/Domenick1991/frontdesk/internal/kafka"
	"github.com/Domenick1991/frontdesk/internal/logger"
	"github.com/Domenick1991/frontdesk/internal/realtime"
	"github.com/Domenick1991/frontdesk/internal/repository"
	"github.com/Domenick1991/frontdesk/internal/seed"
	"github.com/Domenick1991/frontdesk/internal/service/lifecycle"
	"github.com/Domenick1991/frontdesk/internal/service/views"
	"github.com/Domenick1991/frontdesk/internal/state"
	"github.com/Domenick1991/frontdesk/internal/storage"
	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/zap"
)

func main() {
	cfgPath := os.Getenv("CONFIG_PATH")
	if cfgPath == "" {
		cfgPath = "config.yaml"
	}

	cfg, err := config.LoadConfig(cfgPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "load config: %v\n", err)
		os.Exit(1)
	}

	log, err := logger.New(cfg.Log.Level, cfg.Log.Format, "frontdesk")
	if err != nil {
		fmt.Fprintf(os.Stderr, "init logger: %v\n", err)
		os.Exit(1)
	}
	defer func() { _ = log.Sync() }()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, cfg, log); err != nil {
		log.Fatal("server error", zap.Error(err))
	}
}

func run(ctx context.Context, cfg *config.Config, log *zap.Logger) error {
	kv, closeKV, err := openKV(ctx, cfg, log)
	if err != nil {
		return err
	}
	defer closeKV()

	adapter := storage.NewAdapter(kv, log.Named("storage"))
	store := state.NewStore(adapter, log.Named("state"))

	fallback := seed.Default(time.Now())
	if !cfg.FrontDesk.SeedOnEmpty {
		fallback = seed.Empty(time.Now())
	}
	snap, err := state.LoadSnapshot(ctx, adapter, fallback)
	if err != nil {
		return fmt.Errorf("load state: %w", err)
	}
	if err := store.Dispatch(ctx, state.Init{Snapshot: snap}); err != nil {
		return fmt.Errorf("init state: %w", err)
	}

	engineOpts := []lifecycle.EngineOption{lifecycle.WithLogger(log.Named("lifecycle"))}
	if cfg.Kafka.Enabled() {
		producer := kafka.NewProducer(cfg.Kafka.Brokers, log.Named("kafka"))
		defer func() { _ = producer.Close() }()
		if err := producer.CheckConnection(ctx); err != nil {
			log.Warn("kafka unreachable, events will be retried per publish", zap.Error(err))
		}
		engineOpts = append(engineOpts,
			lifecycle.WithProducer(producer),
			lifecycle.WithNotificationsTopic(cfg.Kafka.NotificationsTopic),
		)
	}

	engine := lifecycle.NewEngine(store, cfg.Kafka.LifecycleTopic, engineOpts...)
	desk := lifecycle.NewService(engine,
		lifecycle.WithMaxDocumentBytes(cfg.FrontDesk.MaxDocumentBytes),
		lifecycle.WithServiceLogger(log.Named("frontdesk")),
	)

	hub := realtime.NewHub(log.Named("realtime"), cfg.HTTP.CORSOrigins)
	go hub.Run(ctx)
	unsubscribe := store.Subscribe(hub.Observe)
	defer unsubscribe()

	return bootstrap.Run(ctx, cfg, bootstrap.Deps{
		Desk:   desk,
		Views:  views.NewService(store, time.Now),
		Hub:    hub,
		Logger: log,
	})
}

// openKV returns the configured storage backend and a function releasing it.
func openKV(ctx context.Context, cfg *config.Config, log *zap.Logger) (storage.KV, func(), error) {
	switch cfg.Storage.Backend {
	case config.BackendRedis:
		store := cache.NewRedisStore(cfg.Redis, cfg.Storage.KeyPrefix)
		if err := store.Ping(ctx); err != nil {
			_ = store.Close()
			return nil, nil, fmt.Errorf("connect redis: %w", err)
		}
		log.Info("using redis storage", zap.String("addr", cfg.Redis.Addr))
		return store, func() { _ = store.Close() }, nil
	case config.BackendPostgres:
		pool, err := pgxpool.New(ctx, cfg.Database.DSN())
		if err != nil {
			return nil, nil, fmt.Errorf("connect postgres: %w", err)
		}
		repo := repository.NewBlobRepository(pool)
		if err := repo.EnsureSchema(ctx); err != nil {
			pool.Close()
			return nil, nil, fmt.Errorf("prepare postgres schema: %w", err)
		}
		log.Info("using postgres storage", zap.String("host", cfg.Database.Host))
		return repo, pool.Close, nil
	default:
		log.Info("using in-memory storage")
		return storage.NewMemoryKV(), func() {}, nil
	}
}
