package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/ariefcatur/go-storefront/internal/config"
	"github.com/ariefcatur/go-storefront/internal/events"
	kafkax "github.com/ariefcatur/go-storefront/internal/kafka"
	"github.com/ariefcatur/go-storefront/internal/logx"
	"github.com/ariefcatur/go-storefront/internal/redisx"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		logx.New("error", "text", os.Stderr).Error("config", "err", err)
		os.Exit(1)
	}
	log := logx.New(cfg.LogLevel, cfg.LogFormat, os.Stderr).With("service", cfg.ServiceName+"-changefeed")

	if len(cfg.KafkaBrokers) == 0 || cfg.RedisAddr == "" {
		log.Error("changefeed needs KAFKA_BROKERS and REDIS_ADDR")
		os.Exit(1)
	}

	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	rdb := redisx.New(cfg.RedisAddr)
	defer rdb.Close()

	feed := &events.Changefeed{Redis: rdb, Consumer: cfg.ChangefeedGroup, Log: log}
	cons := kafkax.NewConsumer(cfg.KafkaBrokers, cfg.ChangefeedGroup, cfg.KafkaTopic, cfg.ChangefeedWorkers, log)

	log.Info("changefeed consumer started", "group", cfg.ChangefeedGroup, "topic", cfg.KafkaTopic, "workers", cfg.ChangefeedWorkers)
	if err := cons.Start(ctx, feed.Handle); err != nil {
		log.Error("consumer exit", "err", err)
		os.Exit(1)
	}
	log.Info("changefeed stopped")
}
