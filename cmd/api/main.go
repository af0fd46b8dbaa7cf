package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/ariefcatur/lawfirm-shop/internal/booking"
	"github.com/ariefcatur/lawfirm-shop/internal/catalog"
	"github.com/ariefcatur/lawfirm-shop/internal/checkout"
	"github.com/ariefcatur/lawfirm-shop/internal/config"
	"github.com/ariefcatur/lawfirm-shop/internal/events"
	"github.com/ariefcatur/lawfirm-shop/internal/httpx"
	kafkax "github.com/ariefcatur/lawfirm-shop/internal/kafka"
	"github.com/ariefcatur/lawfirm-shop/internal/logx"
	"github.com/ariefcatur/lawfirm-shop/internal/storage"
	"github.com/joho/godotenv"
	"go.uber.org/zap"
)

func main() {
	_ = godotenv.Load()
	cfg := config.Load()

	logger, err := logx.New(cfg.LogLevel, cfg.LogDev)
	if err != nil {
		log.Fatalf("logger: %v", err)
	}
	defer func() { _ = logger.Sync() }()
	logger = logger.With(zap.String("service", cfg.ServiceName))

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

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

	var (
		pub  events.Publisher = events.Discard{}
		prod *kafkax.Producer
	)
	if cfg.KafkaEnabled {
		prod = kafkax.NewProducer(cfg.KafkaBrokers, 1024, logger.Named("kafka"))
		prod.Start()
		pub = prod
	}

	cat := catalog.Default()
	h := &httpx.Handler{
		Store:   store,
		Catalog: cat,
		Bookings: &booking.Service{
			Catalog:   cat,
			Submitter: booking.SimulatedSubmitter{Delay: cfg.BookingDelay},
			Events:    pub,
			Occupied:  cfg.OccupiedSlots,
			Location:  cfg.Location(),
			Producer:  cfg.ServiceName,
			Log:       logger.Named("booking"),
		},
		Checkout: &checkout.Service{
			Processor: checkout.SimulatedProcessor{Delay: cfg.PaymentDelay},
			Events:    pub,
			Producer:  cfg.ServiceName,
			Log:       logger.Named("checkout"),
		},
		SessionTTL: cfg.SessionTTL,
		Log:        logger.Named("http"),
	}
	router := httpx.NewRouter(logger.Named("http"))
	h.Register(router)

	srv := &http.Server{Addr: cfg.HTTPAddr, Handler: router, ReadHeaderTimeout: 5 * time.Second}

	go func() {
		logger.Info("http listening",
			zap.String("addr", cfg.HTTPAddr),
			zap.String("storage", cfg.StorageBackend),
			zap.Bool("kafka", cfg.KafkaEnabled))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Fatal("listen", zap.Error(err))
		}
	}()

	sig := make(chan os.Signal, 1)
	signal.Notify(sig, syscall.SIGINT, syscall.SIGTERM)
	<-sig
	logger.Info("shutting down")

	ctx2, cancel2 := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel2()
	if err := srv.Shutdown(ctx2); err != nil {
		logger.Warn("http shutdown", zap.Error(err))
	}
	if prod != nil {
		prod.Close()
		prod.WaitClosed()
	}
}
