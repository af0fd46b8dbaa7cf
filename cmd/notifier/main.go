package main

import (
	"context"
	"log"
	"os/signal"
	"syscall"

	"github.com/ariefcatur/lawfirm-shop/internal/config"
	"github.com/ariefcatur/lawfirm-shop/internal/events"
	kafkax "github.com/ariefcatur/lawfirm-shop/internal/kafka"
	"github.com/ariefcatur/lawfirm-shop/internal/logx"
	"github.com/ariefcatur/lawfirm-shop/internal/notify"
	"github.com/ariefcatur/lawfirm-shop/internal/redisx"
	"github.com/ariefcatur/lawfirm-shop/internal/storage"
	"github.com/joho/godotenv"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

func main() {
	_ = godotenv.Load()
	cfg := config.Load()

	logger, err := logx.New(cfg.LogLevel, cfg.LogDev)
	if err != nil {
		log.Fatalf("logger: %v", err)
	}
	defer func() { _ = logger.Sync() }()
	logger = logger.With(zap.String("service", cfg.ServiceName+"-notifier"))

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	store, closeStore, err := storage.Open(ctx, storage.Options{
		Backend:     cfg.StorageBackend,
		RedisAddr:   cfg.RedisAddr,
		PostgresDSN: cfg.PostgresDSN,
		TTL:         cfg.SessionTTL,
	})
	if err != nil {
		logger.Fatal("storage", zap.String("backend", cfg.StorageBackend), zap.Error(err))
	}
	defer closeStore()

	// dedup markers live in redis whatever the storage backend is
	rdb := redisx.New(cfg.RedisAddr)
	defer rdb.Close()

	svc := &notify.Service{
		Store: store,
		Redis: rdb,
		Name:  "notifier",
		Log:   logger,
	}

	g, gctx := errgroup.WithContext(ctx)
	for _, topic := range []string{events.TopicOrderConfirmed, events.TopicBookingConfirmed} {
		topic := topic
		cons := kafkax.NewConsumer(cfg.KafkaBrokers, cfg.NotifierGroup, topic, cfg.NotifierWorkers, logger)
		g.Go(func() error {
			logger.Info("consumer started",
				zap.String("group", cfg.NotifierGroup),
				zap.String("topic", topic),
				zap.Int("workers", cfg.NotifierWorkers))
			return cons.Start(gctx, svc.Handle)
		})
	}

	if err := g.Wait(); err != nil {
		logger.Error("consumer exit", zap.Error(err))
	}
	logger.Info("notifier stopped")
}
