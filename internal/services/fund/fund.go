// Package fund contains the business logic for fund subscriptions,
// cancellations and the transaction history.
package fund

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/fondosapp/fondos-api/internal/lib/sl"
	"github.com/fondosapp/fondos-api/internal/models"
)

// Repository defines the storage methods the service needs.
type Repository interface {
	// GetUser returns a user by id together with its subscribed fund ids.
	GetUser(ctx context.Context, idUsuario string) (*models.User, error)
	// GetFund returns a catalog fund by id.
	GetFund(ctx context.Context, idFondo int) (*models.Fund, error)
	// ListFunds returns the whole catalog.
	ListFunds(ctx context.Context) ([]*models.Fund, error)
	// OpenSubscription atomically debits the user and records the membership
	// and the ledger entry.
	OpenSubscription(ctx context.Context, idUsuario string, idFondo int,
		monto decimal.Decimal, idTransaccion string, fecha time.Time) error
	// CloseSubscription atomically removes one membership, credits the user
	// and records the ledger entry.
	CloseSubscription(ctx context.Context, idUsuario string, idFondo int,
		monto decimal.Decimal, idTransaccion string, fecha time.Time) error
	// ListTransactions returns the ledger of a user in chronological order.
	ListTransactions(ctx context.Context, idUsuario string) ([]*models.Transaction, error)
}

// Cache describes the caching methods used for the fund catalog.
type Cache interface {
	// Get tries to read a cached value by key.
	Get(key string, result any) (bool, error)
	// Set stores a value with a time to live.
	Set(key string, value any, expiration time.Duration) error
	// Invalidate drops a cached value by key.
	Invalidate(key string) error
}

// Notifier delivers subscription notifications to the user.
type Notifier interface {
	SendSubscriptionOpened(user *models.User, fund *models.Fund) error
	SendSubscriptionCanceled(user *models.User, fund *models.Fund) error
}

// Service implements the fund subscription business logic.
type Service struct {
	repo     Repository
	cache    Cache
	notifier Notifier
	log      *slog.Logger
}

// New creates a new fund Service.
func New(repo Repository, cache Cache, notifier Notifier, log *slog.Logger) *Service {
	return &Service{
		repo:     repo,
		cache:    cache,
		notifier: notifier,
		log:      log,
	}
}

// getFund returns a catalog fund, using the cache when possible. Catalog
// rows only change through migrations, so an hour of TTL is safe.
func (s *Service) getFund(ctx context.Context, idFondo int) (*models.Fund, error) {
	var fund *models.Fund
	cacheKey := fmt.Sprintf("fondo:%d", idFondo)
	found, err := s.cache.Get(cacheKey, &fund)
	if err != nil {
		s.log.Warn("failed to read fund from cache", slog.String("key", cacheKey), sl.Err(err))
	}
	if found && fund != nil {
		return fund, nil
	}

	fund, err = s.repo.GetFund(ctx, idFondo)
	if err != nil {
		return nil, err
	}
	if err := s.cache.Set(cacheKey, fund, time.Hour); err != nil {
		s.log.Warn("failed to cache fund", slog.String("key", cacheKey), sl.Err(err))
	}
	return fund, nil
}

// Subscribe opens a subscription of the user to the fund, debiting the
// fund minimum from the balance and recording an apertura transaction.
// Subscribing again to an already-held fund opens a second membership.
func (s *Service) Subscribe(ctx context.Context, idUsuario string, idFondo int) (*models.Fund, error) {
	fund, err := s.getFund(ctx, idFondo)
	if err != nil {
		return nil, err
	}
	user, err := s.repo.GetUser(ctx, idUsuario)
	if err != nil {
		return nil, err
	}

	idTransaccion := uuid.NewString()
	err = s.repo.OpenSubscription(ctx, idUsuario, idFondo, fund.MontoMinimo, idTransaccion, time.Now().UTC())
	if err != nil {
		if errors.Is(err, models.ErrInsufficientBalance) {
			return nil, &models.InsufficientBalanceError{Nombre: fund.Nombre}
		}
		return nil, err
	}

	s.log.Info("subscription opened",
		slog.String("id_usuario", idUsuario),
		slog.Int("id_fondo", idFondo),
		slog.String("id_transaccion", idTransaccion))

	// Delivery is best effort: the subscription already committed.
	if err := s.notifier.SendSubscriptionOpened(user, fund); err != nil {
		s.log.Warn("failed to send subscription notification",
			slog.String("id_usuario", idUsuario), sl.Err(err))
	}

	return fund, nil
}

// Cancel closes one subscription of the user to the fund, crediting the
// fund minimum back and recording a cancelacion transaction.
func (s *Service) Cancel(ctx context.Context, idUsuario string, idFondo int) (*models.Fund, error) {
	fund, err := s.getFund(ctx, idFondo)
	if err != nil {
		return nil, err
	}
	user, err := s.repo.GetUser(ctx, idUsuario)
	if err != nil {
		return nil, err
	}

	idTransaccion := uuid.NewString()
	err = s.repo.CloseSubscription(ctx, idUsuario, idFondo, fund.MontoMinimo, idTransaccion, time.Now().UTC())
	if err != nil {
		return nil, err
	}

	s.log.Info("subscription canceled",
		slog.String("id_usuario", idUsuario),
		slog.Int("id_fondo", idFondo),
		slog.String("id_transaccion", idTransaccion))

	if err := s.notifier.SendSubscriptionCanceled(user, fund); err != nil {
		s.log.Warn("failed to send cancellation notification",
			slog.String("id_usuario", idUsuario), sl.Err(err))
	}

	return fund, nil
}

// History returns the full transaction ledger of the user. An unknown
// user yields an empty list, not an error, and the result is never nil
// so it serializes as an empty JSON array.
func (s *Service) History(ctx context.Context, idUsuario string) ([]*models.Transaction, error) {
	items, err := s.repo.ListTransactions(ctx, idUsuario)
	if err != nil {
		return nil, err
	}
	if items == nil {
		items = []*models.Transaction{}
	}
	return items, nil
}

// List returns the fund catalog.
func (s *Service) List(ctx context.Context) ([]*models.Fund, error) {
	items, err := s.repo.ListFunds(ctx)
	if err != nil {
		return nil, err
	}
	if items == nil {
		items = []*models.Fund{}
	}
	return items, nil
}
