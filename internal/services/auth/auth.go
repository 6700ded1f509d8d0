// Package auth contains registration and login logic.
package auth

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/shopspring/decimal"

	"github.com/fondosapp/fondos-api/internal/lib/jwt"
	"github.com/fondosapp/fondos-api/internal/lib/password"
	"github.com/fondosapp/fondos-api/internal/models"
)

// Repository defines the user storage methods the service needs.
type Repository interface {
	// RegisterUser inserts a new user with its opening balance.
	RegisterUser(ctx context.Context, user models.User) error
	// GetUser returns a user by id.
	GetUser(ctx context.Context, idUsuario string) (*models.User, error)
}

// Service implements registration and login.
type Service struct {
	repo         Repository
	tokenMaker   jwt.Maker
	saldoInicial decimal.Decimal
	log          *slog.Logger
}

// New creates a new auth Service. saldoInicial is the opening balance
// granted to every new user.
func New(repo Repository, tokenMaker jwt.Maker, saldoInicial decimal.Decimal, log *slog.Logger) *Service {
	return &Service{
		repo:         repo,
		tokenMaker:   tokenMaker,
		saldoInicial: saldoInicial,
		log:          log,
	}
}

// Register creates a new user with the opening balance.
func (s *Service) Register(ctx context.Context, req models.RegisterRequest) error {
	const op = "auth.Register"

	hash, err := password.GetHash(req.Password)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	user := models.User{
		IDUsuario:               req.IDUsuario,
		Email:                   req.Email,
		Telefono:                req.Telefono,
		PreferenciaNotificacion: req.PreferenciaNotificacion,
		Saldo:                   s.saldoInicial,
		PasswordHash:            hash,
	}
	if err := s.repo.RegisterUser(ctx, user); err != nil {
		return err
	}

	s.log.Info("user registered", slog.String("id_usuario", req.IDUsuario))
	return nil
}

// Login checks the credentials and returns a signed JWT.
func (s *Service) Login(ctx context.Context, req models.LoginRequest) (string, error) {
	const op = "auth.Login"

	user, err := s.repo.GetUser(ctx, req.IDUsuario)
	if err != nil {
		if errors.Is(err, models.ErrUserNotFound) {
			return "", fmt.Errorf("%s: %w", op, models.ErrInvalidCredentials)
		}
		return "", err
	}

	if err := password.CompareHash(user.PasswordHash, req.Password); err != nil {
		return "", fmt.Errorf("%s: %w", op, models.ErrInvalidCredentials)
	}

	token, err := s.tokenMaker.GenerateToken(user.IDUsuario)
	if err != nil {
		return "", fmt.Errorf("%s: %w", op, err)
	}
	return token, nil
}
