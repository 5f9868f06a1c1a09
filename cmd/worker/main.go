package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/Domenick1991/frontdesk/config"
	"github.com/Domenick1991/frontdesk/internal/email"
	"github.com/Domenick1991/frontdesk/internal/kafka"
	"github.com/Domenick1991/frontdesk/internal/logger"
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

	log, err := logger.New(cfg.Log.Level, cfg.Log.Format, "frontdesk-worker")
	if err != nil {
		fmt.Fprintf(os.Stderr, "init logger: %v\n", err)
		os.Exit(1)
	}
	defer func() { _ = log.Sync() }()

	if len(cfg.Kafka.Brokers) == 0 || cfg.Kafka.NotificationsTopic == "" {
		log.Fatal("worker needs kafka brokers and a notifications topic")
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	consumer := kafka.NewConsumer(cfg.Kafka.Brokers, cfg.Kafka.GroupID, cfg.Kafka.NotificationsTopic, log.Named("kafka"))
	defer func() { _ = consumer.Close() }()

	sender := email.NewSender(log.Named("email"))

	log.Info("worker started", zap.String("topic", cfg.Kafka.NotificationsTopic), zap.String("group", cfg.Kafka.GroupID))
	if err := consumer.Consume(ctx, kafka.LifecycleHandler(log, sender.Send)); err != nil {
		log.Error("consumer stopped", zap.Error(err))
		return
	}
	log.Info("worker stopped")
}
