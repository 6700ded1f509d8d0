// Package fondosapi wires the funds API: storage, migrations, cache,
// the notification publisher, the services and the HTTP server.
package fondosapi

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi"
	"github.com/shopspring/decimal"
	"github.com/streadway/amqp"

	"github.com/fondosapp/fondos-api/internal/cache"
	"github.com/fondosapp/fondos-api/internal/config"
	"github.com/fondosapp/fondos-api/internal/lib/jwt"
	"github.com/fondosapp/fondos-api/internal/lib/rabbitmq"
	"github.com/fondosapp/fondos-api/internal/migrations"
	authservice "github.com/fondosapp/fondos-api/internal/services/auth"
	fundservice "github.com/fondosapp/fondos-api/internal/services/fund"
	notifierservice "github.com/fondosapp/fondos-api/internal/services/notifier"
	"github.com/fondosapp/fondos-api/internal/storage/repository"
)

// App holds the running parts of the funds API.
type App struct {
	server *http.Server
	logger *slog.Logger
	db     *repository.Storage
	conn   *amqp.Connection
	ch     *amqp.Channel
}

// New builds the application from the config.
func New(ctx context.Context, cfg *config.Config, logger *slog.Logger) (*App, error) {
	db, err := repository.New(cfg.StorageConnectionString)
	if err != nil {
		return nil, err
	}
	if err = migrations.Run(db.DB, cfg.MigrationsPath); err != nil {
		return nil, err
	}

	cacheRedis, err := cache.InitServer(ctx, cfg.RedisConnection)
	if err != nil {
		return nil, err
	}

	conn, err := rabbitmq.Connect(cfg.RabbitMQURL, cfg.RabbitMQMaxRetries, cfg.RabbitMQRetryDelay)
	if err != nil {
		return nil, err
	}
	ch, err := rabbitmq.SetupChannel(conn, cfg.RabbitMQ)
	if err != nil {
		conn.Close()
		return nil, err
	}
	publisher := rabbitmq.NewPublisher(ch, cfg.Exchange)

	saldoInicial, err := decimal.NewFromString(cfg.SaldoInicial)
	if err != nil {
		return nil, fmt.Errorf("invalid saldo_inicial: %w", err)
	}

	tokenMaker := jwt.NewJWTMaker(cfg.JWTSecretKey, cfg.TokenTTL)
	notifier := notifierservice.New(publisher, cfg.RabbitMQ, logger)
	fundService := fundservice.New(db, cacheRedis, notifier, logger)
	authService := authservice.New(db, tokenMaker, saldoInicial, logger)

	router := chi.NewRouter()
	RegisterRoutes(router, logger, fundService, authService, tokenMaker)

	srv := &http.Server{
		Addr:         cfg.AddressHTTP,
		Handler:      router,
		ReadTimeout:  cfg.TimeoutHTTP,
		WriteTimeout: cfg.TimeoutHTTP,
		IdleTimeout:  cfg.IdleTimeout,
	}

	return &App{
		server: srv,
		logger: logger,
		db:     db,
		conn:   conn,
		ch:     ch,
	}, nil
}

// Run serves HTTP until ctx is canceled, then shuts down gracefully.
func (a *App) Run(ctx context.Context) error {
	errCh := make(chan error, 1)
	go func() {
		a.logger.Info("HTTP server starting", slog.String("address", a.server.Addr))
		err := a.server.ListenAndServe()
		if errors.Is(err, http.ErrServerClosed) {
			errCh <- nil
		} else {
			errCh <- err
		}
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
		timeoutCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
		defer cancel()
		a.logger.Info("shutting down HTTP server gracefully")
		err := a.server.Shutdown(timeoutCtx)
		if closeErr := a.ch.Close(); closeErr != nil {
			a.logger.Error("failed to close channel", slog.Any("err", closeErr))
		}
		if closeErr := a.conn.Close(); closeErr != nil {
			a.logger.Error("failed to close connection", slog.Any("err", closeErr))
		}
		_ = a.db.DB.Close()
		return err
	}
}
