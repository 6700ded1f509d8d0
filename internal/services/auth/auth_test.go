package auth

import (
	"context"
	"io"
	"log/slog"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"github.com/fondosapp/fondos-api/internal/lib/jwt"
	"github.com/fondosapp/fondos-api/internal/lib/password"
	"github.com/fondosapp/fondos-api/internal/models"
)

type RepoMock struct{ mock.Mock }

func (m *RepoMock) RegisterUser(ctx context.Context, user models.User) error {
	return m.Called(ctx, user).Error(0)
}

func (m *RepoMock) GetUser(ctx context.Context, idUsuario string) (*models.User, error) {
	args := m.Called(ctx, idUsuario)
	user, _ := args.Get(0).(*models.User)
	return user, args.Error(1)
}

type MakerMock struct{ mock.Mock }

func (m *MakerMock) GenerateToken(idUsuario string) (string, error) {
	args := m.Called(idUsuario)
	return args.String(0), args.Error(1)
}

func (m *MakerMock) ParseToken(tokenStr string) (*jwt.CustomClaims, error) {
	args := m.Called(tokenStr)
	claims, _ := args.Get(0).(*jwt.CustomClaims)
	return claims, args.Error(1)
}

func NewNoopLogger() *slog.Logger {
	h := slog.NewTextHandler(io.Discard, &slog.HandlerOptions{})
	return slog.New(h)
}

func TestService_Register(t *testing.T) {
	repo := new(RepoMock)
	saldo := decimal.NewFromInt(500000)

	repo.On("RegisterUser", mock.Anything, mock.MatchedBy(func(u models.User) bool {
		return u.IDUsuario == "usuario1" &&
			u.Saldo.Equal(saldo) &&
			u.PasswordHash != "" &&
			u.PasswordHash != "secreto123"
	})).Return(nil)

	service := New(repo, nil, saldo, NewNoopLogger())
	err := service.Register(context.Background(), models.RegisterRequest{
		IDUsuario:               "usuario1",
		Password:                "secreto123",
		Email:                   "usuario1@example.com",
		PreferenciaNotificacion: models.PrefEmail,
	})

	assert.NoError(t, err)
	repo.AssertExpectations(t)
}

func TestService_Register_UserExists(t *testing.T) {
	repo := new(RepoMock)
	repo.On("RegisterUser", mock.Anything, mock.Anything).Return(models.ErrUserExists)

	service := New(repo, nil, decimal.NewFromInt(500000), NewNoopLogger())
	err := service.Register(context.Background(), models.RegisterRequest{
		IDUsuario: "usuario1",
		Password:  "secreto123",
		Email:     "usuario1@example.com",
	})

	assert.ErrorIs(t, err, models.ErrUserExists)
}

func TestService_Login(t *testing.T) {
	hash, err := password.GetHash("secreto123")
	assert.NoError(t, err)

	tests := []struct {
		name       string
		setupMocks func(repo *RepoMock, maker *MakerMock)
		req        models.LoginRequest
		wantToken  string
		wantErr    error
	}{
		{
			name: "success",
			setupMocks: func(repo *RepoMock, maker *MakerMock) {
				repo.On("GetUser", mock.Anything, "usuario1").Return(&models.User{
					IDUsuario:    "usuario1",
					PasswordHash: hash,
				}, nil)
				maker.On("GenerateToken", "usuario1").Return("token123", nil)
			},
			req:       models.LoginRequest{IDUsuario: "usuario1", Password: "secreto123"},
			wantToken: "token123",
		},
		{
			name: "wrong password",
			setupMocks: func(repo *RepoMock, _ *MakerMock) {
				repo.On("GetUser", mock.Anything, "usuario1").Return(&models.User{
					IDUsuario:    "usuario1",
					PasswordHash: hash,
				}, nil)
			},
			req:     models.LoginRequest{IDUsuario: "usuario1", Password: "incorrecta"},
			wantErr: models.ErrInvalidCredentials,
		},
		{
			name: "unknown user",
			setupMocks: func(repo *RepoMock, _ *MakerMock) {
				repo.On("GetUser", mock.Anything, "desconocido").Return(nil, models.ErrUserNotFound)
			},
			req:     models.LoginRequest{IDUsuario: "desconocido", Password: "secreto123"},
			wantErr: models.ErrInvalidCredentials,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo := new(RepoMock)
			maker := new(MakerMock)
			tt.setupMocks(repo, maker)

			service := New(repo, maker, decimal.NewFromInt(500000), NewNoopLogger())
			token, err := service.Login(context.Background(), tt.req)

			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
			} else {
				assert.NoError(t, err)
				assert.Equal(t, tt.wantToken, token)
			}
			repo.AssertExpectations(t)
		})
	}
}
