package app

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"go-leave/internal/approver"
	"go-leave/internal/config"
	"go-leave/internal/messaging/kafka/consumer"
	"go-leave/internal/notification"
	"go-leave/internal/shared/connection"

	"go.uber.org/zap"
)

// RunConsumer forwards leave lifecycle events to the chat webhook until
// SIGINT/SIGTERM.
func RunConsumer(cfg *config.Config, logger *zap.Logger) error {
	logger = logger.Named("app.consumer")

	gormDB, err := connection.ConnectGORMWithRetry(cfg.Database, logger)
	if err != nil {
		return err
	}
	sqlDB, err := gormDB.DB()
	if err != nil {
		return err
	}
	defer sqlDB.Close()

	approverService := approver.NewService(sqlDB, approver.NewRepository(gormDB), logger)
	webhook := notification.NewWebhookNotifier(
		cfg.Notification.WebhookURL,
		&http.Client{Timeout: cfg.Notification.Timeout},
		approverService,
		logger,
	)

	reader := consumer.NewReader(cfg.Kafka.Brokers, cfg.Kafka.GroupID)
	defer reader.Close()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	done := make(chan struct{})
	go func() {
		defer close(done)
		consumer.ConsumeLeaveLifecycle(ctx, reader, webhook, logger)
	}()

	<-ctx.Done()
	logger.Info("consumer shutting down")
	<-done
	return nil
}
