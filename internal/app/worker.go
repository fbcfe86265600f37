package app

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"go-leave/internal/config"
	"go-leave/internal/messaging/kafka"
	"go-leave/internal/messaging/kafka/producer"
	"go-leave/internal/obs"
	"go-leave/internal/shared/connection"

	"go.uber.org/zap"
)

const kafkaRetries = 5

// RunWorker relays pending outbox rows to Kafka until SIGINT/SIGTERM.
func RunWorker(cfg *config.Config, logger *zap.Logger) error {
	logger = logger.Named("app.worker")
	obs.Init()

	gormDB, err := connection.ConnectGORMWithRetry(cfg.Database, logger)
	if err != nil {
		return err
	}
	sqlDB, err := gormDB.DB()
	if err != nil {
		return err
	}
	defer sqlDB.Close()

	kafkaWriter, err := connection.ConnectKafkaWithRetry(cfg.Kafka.Brokers, kafkaRetries, logger)
	if err != nil {
		return err
	}
	defer kafkaWriter.Close()

	outboxRepo := kafka.NewOutboxRepository(sqlDB)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	done := make(chan struct{})
	go func() {
		defer close(done)
		producer.ProcessOutboxEvents(ctx, outboxRepo, kafkaWriter, logger, cfg.Kafka.PollInterval)
	}()

	<-ctx.Done()
	logger.Info("worker shutting down")
	<-done
	return nil
}

// RequeueOutbox puts leave events that exhausted their retries back in the
// publish rotation and returns how many rows were requeued.
func RequeueOutbox(cfg *config.Config, logger *zap.Logger) (int64, error) {
	logger = logger.Named("app.worker")

	gormDB, err := connection.ConnectGORMWithRetry(cfg.Database, logger)
	if err != nil {
		return 0, err
	}
	sqlDB, err := gormDB.DB()
	if err != nil {
		return 0, err
	}
	defer sqlDB.Close()

	n, err := kafka.NewOutboxRepository(sqlDB).RequeueExhausted(context.Background(), "leave")
	if err != nil {
		return 0, err
	}
	logger.Info("outbox events requeued", zap.Int64("count", n))
	return n, nil
}
