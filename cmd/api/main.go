package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/ariefcatur/go-storefront/internal/backend"
	"github.com/ariefcatur/go-storefront/internal/cache"
	"github.com/ariefcatur/go-storefront/internal/config"
	"github.com/ariefcatur/go-storefront/internal/events"
	"github.com/ariefcatur/go-storefront/internal/httpx"
	kafkax "github.com/ariefcatur/go-storefront/internal/kafka"
	"github.com/ariefcatur/go-storefront/internal/logx"
	"github.com/ariefcatur/go-storefront/internal/redisx"
	"github.com/ariefcatur/go-storefront/internal/storage"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		logx.New("error", "text", os.Stderr).Error("config", "err", err)
		os.Exit(1)
	}
	log := logx.New(cfg.LogLevel, cfg.LogFormat, os.Stderr).With("service", cfg.ServiceName)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Storage
	sel := backend.NewSelector(cfg, log)
	defer sel.Close()
	var store storage.Storage = sel.Get(ctx)

	// Redis cache
	if cfg.RedisAddr != "" {
		rdb := redisx.New(cfg.RedisAddr)
		defer rdb.Close()
		store = cache.New(store, rdb, cfg.CacheTTL, log)
		log.Info("config cache enabled", "redis", cfg.RedisAddr, "ttl", cfg.CacheTTL)
	}

	// Change events
	var prod *kafkax.Producer
	if len(cfg.KafkaBrokers) > 0 {
		prod = kafkax.NewProducer(cfg.KafkaBrokers, cfg.KafkaTopic, 1024, log)
		prod.Start(ctx)
		store = events.New(store, prod, cfg.ServiceName, log)
		log.Info("change events enabled", "brokers", cfg.KafkaBrokers, "topic", cfg.KafkaTopic)
	}

	router := httpx.NewRouter(&httpx.Handler{Store: store, Ready: sel, Log: log})
	srv := &http.Server{Addr: cfg.HTTPAddr, Handler: router, ReadHeaderTimeout: 5 * time.Second}

	go func() {
		log.Info("http listening", "addr", cfg.HTTPAddr, "backend", sel.Kind())
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Error("listen", "err", err)
			os.Exit(1)
		}
	}()

	sig := make(chan os.Signal, 1)
	signal.Notify(sig, syscall.SIGINT, syscall.SIGTERM)
	<-sig
	log.Info("shutting down")

	ctx2, cancel2 := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel2()
	_ = srv.Shutdown(ctx2)
	if prod != nil {
		prod.Close()
		prod.WaitClosed()
	}
}
