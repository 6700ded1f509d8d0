package repository

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fondosapp/fondos-api/internal/models"
)

func TestIntegration_RegisterAndGetUser(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test")
	}
	storage, cleanup := setupTestDatabase(t)
	defer cleanup()
	ctx := context.Background()

	user := models.User{
		IDUsuario:               "usuario1",
		Email:                   "usuario1@example.com",
		Telefono:                "+573001234567",
		PreferenciaNotificacion: models.PrefEmail,
		Saldo:                   decimal.NewFromInt(500000),
		PasswordHash:            "hash",
	}
	require.NoError(t, storage.RegisterUser(ctx, user))

	got, err := storage.GetUser(ctx, "usuario1")
	require.NoError(t, err)
	assert.Equal(t, "usuario1@example.com", got.Email)
	assert.Equal(t, models.PrefEmail, got.PreferenciaNotificacion)
	assert.True(t, got.Saldo.Equal(decimal.NewFromInt(500000)))
	assert.Empty(t, got.Fondos)

	err = storage.RegisterUser(ctx, user)
	assert.ErrorIs(t, err, models.ErrUserExists)

	_, err = storage.GetUser(ctx, "desconocido")
	assert.ErrorIs(t, err, models.ErrUserNotFound)
}

func TestIntegration_FundCatalog(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test")
	}
	storage, cleanup := setupTestDatabase(t)
	defer cleanup()
	ctx := context.Background()

	fund, err := storage.GetFund(ctx, 1)
	require.NoError(t, err)
	assert.Equal(t, "FPV_BTG_PACTUAL_RECAUDADORA", fund.Nombre)
	assert.True(t, fund.MontoMinimo.Equal(decimal.NewFromInt(75000)))
	assert.Equal(t, "FPV", fund.Categoria)

	_, err = storage.GetFund(ctx, 99)
	assert.ErrorIs(t, err, models.ErrFundNotFound)

	funds, err := storage.ListFunds(ctx)
	require.NoError(t, err)
	assert.Len(t, funds, 5)
	assert.Equal(t, "FDO-ACCIONES", funds[3].Nombre)
}

func TestIntegration_OpenSubscription(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test")
	}
	storage, cleanup := setupTestDatabase(t)
	defer cleanup()
	ctx := context.Background()
	factory := NewTestDataFactory(storage)

	factory.CreateUser(t, "usuario1", "usuario1@example.com", models.PrefEmail, decimal.NewFromInt(500000))

	monto := decimal.NewFromInt(75000)
	err := storage.OpenSubscription(ctx, "usuario1", 1, monto, uuid.NewString(), time.Now().UTC())
	require.NoError(t, err)

	assert.True(t, factory.UserBalance(t, "usuario1").Equal(decimal.NewFromInt(425000)))
	assert.Equal(t, 1, factory.CountMemberships(t, "usuario1", 1))
	assert.Equal(t, 1, factory.CountTransactions(t, "usuario1", models.TipoApertura))

	// A second subscribe to the same fund opens a second membership.
	err = storage.OpenSubscription(ctx, "usuario1", 1, monto, uuid.NewString(), time.Now().UTC())
	require.NoError(t, err)

	assert.True(t, factory.UserBalance(t, "usuario1").Equal(decimal.NewFromInt(350000)))
	assert.Equal(t, 2, factory.CountMemberships(t, "usuario1", 1))
	assert.Equal(t, 2, factory.CountTransactions(t, "usuario1", models.TipoApertura))
}

func TestIntegration_OpenSubscription_InsufficientBalance(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test")
	}
	storage, cleanup := setupTestDatabase(t)
	defer cleanup()
	ctx := context.Background()
	factory := NewTestDataFactory(storage)

	factory.CreateUser(t, "usuario1", "usuario1@example.com", "", decimal.NewFromInt(100))

	err := storage.OpenSubscription(ctx, "usuario1", 4,
		decimal.NewFromInt(250000), uuid.NewString(), time.Now().UTC())
	assert.ErrorIs(t, err, models.ErrInsufficientBalance)

	// Nothing was written: the balance, memberships and ledger are untouched.
	assert.True(t, factory.UserBalance(t, "usuario1").Equal(decimal.NewFromInt(100)))
	assert.Equal(t, 0, factory.CountMemberships(t, "usuario1", 4))
	assert.Equal(t, 0, factory.CountTransactions(t, "usuario1", models.TipoApertura))
}

func TestIntegration_CloseSubscription(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test")
	}
	storage, cleanup := setupTestDatabase(t)
	defer cleanup()
	ctx := context.Background()
	factory := NewTestDataFactory(storage)

	factory.CreateUser(t, "usuario1", "usuario1@example.com", models.PrefSMS, decimal.NewFromInt(500000))

	monto := decimal.NewFromInt(50000)
	require.NoError(t, storage.OpenSubscription(ctx, "usuario1", 3, monto, uuid.NewString(), time.Now().UTC()))
	require.NoError(t, storage.CloseSubscription(ctx, "usuario1", 3, monto, uuid.NewString(), time.Now().UTC()))

	assert.True(t, factory.UserBalance(t, "usuario1").Equal(decimal.NewFromInt(500000)))
	assert.Equal(t, 0, factory.CountMemberships(t, "usuario1", 3))
	assert.Equal(t, 1, factory.CountTransactions(t, "usuario1", models.TipoCancelacion))

	// Without a membership left, a second cancel is rejected with no writes.
	err := storage.CloseSubscription(ctx, "usuario1", 3, monto, uuid.NewString(), time.Now().UTC())
	assert.ErrorIs(t, err, models.ErrNotSubscribed)
	assert.True(t, factory.UserBalance(t, "usuario1").Equal(decimal.NewFromInt(500000)))
	assert.Equal(t, 1, factory.CountTransactions(t, "usuario1", models.TipoCancelacion))
}

func TestIntegration_CloseSubscription_RemovesOneMembership(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test")
	}
	storage, cleanup := setupTestDatabase(t)
	defer cleanup()
	ctx := context.Background()
	factory := NewTestDataFactory(storage)

	factory.CreateUser(t, "usuario1", "usuario1@example.com", "", decimal.NewFromInt(500000))

	monto := decimal.NewFromInt(75000)
	require.NoError(t, storage.OpenSubscription(ctx, "usuario1", 1, monto, uuid.NewString(), time.Now().UTC()))
	require.NoError(t, storage.OpenSubscription(ctx, "usuario1", 1, monto, uuid.NewString(), time.Now().UTC()))

	require.NoError(t, storage.CloseSubscription(ctx, "usuario1", 1, monto, uuid.NewString(), time.Now().UTC()))

	assert.Equal(t, 1, factory.CountMemberships(t, "usuario1", 1))

	user, err := storage.GetUser(ctx, "usuario1")
	require.NoError(t, err)
	assert.Equal(t, []int{1}, user.Fondos)
}

func TestIntegration_ListTransactions(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test")
	}
	storage, cleanup := setupTestDatabase(t)
	defer cleanup()
	ctx := context.Background()
	factory := NewTestDataFactory(storage)

	factory.CreateUser(t, "usuario1", "usuario1@example.com", "", decimal.NewFromInt(500000))

	monto := decimal.NewFromInt(75000)
	base := time.Date(2024, 5, 1, 10, 0, 0, 0, time.UTC)
	require.NoError(t, storage.OpenSubscription(ctx, "usuario1", 1, monto, uuid.NewString(), base))
	require.NoError(t, storage.CloseSubscription(ctx, "usuario1", 1, monto, uuid.NewString(), base.Add(time.Hour)))

	items, err := storage.ListTransactions(ctx, "usuario1")
	require.NoError(t, err)
	require.Len(t, items, 2)
	assert.Equal(t, models.TipoApertura, items[0].Tipo)
	assert.Equal(t, models.TipoCancelacion, items[1].Tipo)
	assert.True(t, items[0].Fecha.Before(items[1].Fecha))

	// An unknown user yields an empty list, not an error.
	items, err = storage.ListTransactions(ctx, "desconocido")
	require.NoError(t, err)
	assert.Empty(t, items)
}
