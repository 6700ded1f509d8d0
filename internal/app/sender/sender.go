// Package sender wires the notification worker: the broker consumer,
// the SMTP transport and the SMS gateway client.
package sender

import (
	"context"
	"log/slog"

	"github.com/streadway/amqp"

	"github.com/fondosapp/fondos-api/internal/config"
	"github.com/fondosapp/fondos-api/internal/lib/rabbitmq"
	"github.com/fondosapp/fondos-api/internal/lib/smtp"
	senderservice "github.com/fondosapp/fondos-api/internal/services/sender"
	"github.com/fondosapp/fondos-api/internal/smsprovider"
)

// App holds the running parts of the notification worker.
type App struct {
	conn          *amqp.Connection
	ch            *amqp.Channel
	cfg           *config.Config
	senderService *senderservice.Service
	logger        *slog.Logger
}

// New builds the worker from the config.
func New(_ context.Context, cfg *config.Config, logger *slog.Logger) (*App, error) {
	conn, err := rabbitmq.Connect(cfg.RabbitMQURL, cfg.RabbitMQMaxRetries, cfg.RabbitMQRetryDelay)
	if err != nil {
		return nil, err
	}
	ch, err := rabbitmq.SetupChannel(conn, cfg.RabbitMQ)
	if err != nil {
		conn.Close()
		return nil, err
	}

	transport := smtp.NewTransport(cfg.SMTP, logger)
	smsClient := smsprovider.NewClient(cfg.SMSGatewayURL, cfg.SMSGatewayKey)
	senderService := senderservice.New(transport, smsClient, logger)

	return &App{
		conn:          conn,
		ch:            ch,
		cfg:           cfg,
		senderService: senderService,
		logger:        logger,
	}, nil
}

// Run consumes both notification queues until ctx is canceled.
func (a *App) Run(ctx context.Context) error {
	err := rabbitmq.ConsumeMessages(ctx, a.ch, a.cfg.EmailQueue, a.senderService.HandleEmail)
	if err != nil {
		a.logger.Error("failed to start email consumer", slog.Any("err", err))
		return err
	}

	err = rabbitmq.ConsumeMessages(ctx, a.ch, a.cfg.SMSQueue, a.senderService.HandleSMS)
	if err != nil {
		a.logger.Error("failed to start sms consumer", slog.Any("err", err))
		return err
	}

	<-ctx.Done()
	a.logger.Info("notification sender shutting down gracefully")

	if err := a.ch.Close(); err != nil {
		a.logger.Error("failed to close channel", slog.Any("err", err))
	}
	if err := a.conn.Close(); err != nil {
		a.logger.Error("failed to close connection", slog.Any("err", err))
	}
	return nil
}
