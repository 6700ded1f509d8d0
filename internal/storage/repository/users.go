package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/fondosapp/fondos-api/internal/models"
)

// RegisterUser inserts a new user with its opening balance.
func (s *Storage) RegisterUser(ctx context.Context, user models.User) error {
	const op = "storage.RegisterUser"
	select {
	case <-ctx.Done():
		return fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `INSERT INTO usuarios (id_usuario, email, telefono, preferencia_notificacion,
			      saldo, password_hash)
			  VALUES ($1, $2, $3, $4, $5, $6)`
	_, err := s.DB.ExecContext(ctx, query,
		user.IDUsuario, user.Email, user.Telefono, nullIfEmpty(user.PreferenciaNotificacion),
		user.Saldo, user.PasswordHash)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == pgerrcode.UniqueViolation {
			return fmt.Errorf("%s: %w", op, models.ErrUserExists)
		}
		return fmt.Errorf("%s: %w", op, err)
	}
	return nil
}

// GetUser returns a user by id together with its subscribed fund ids.
// The fund list keeps insertion order and may contain duplicates.
func (s *Storage) GetUser(ctx context.Context, idUsuario string) (*models.User, error) {
	const op = "storage.GetUser"
	select {
	case <-ctx.Done():
		return nil, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `SELECT id_usuario, email, telefono, preferencia_notificacion, saldo, password_hash
			  FROM usuarios
			  WHERE id_usuario = $1`
	u := &models.User{}
	row := s.DB.QueryRowContext(ctx, query, idUsuario)

	var preferencia sql.NullString
	if err := row.Scan(&u.IDUsuario, &u.Email, &u.Telefono, &preferencia,
		&u.Saldo, &u.PasswordHash); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("%s: %w", op, models.ErrUserNotFound)
		}
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	if preferencia.Valid {
		u.PreferenciaNotificacion = preferencia.String
	}

	fondos, err := s.listUserFunds(ctx, idUsuario)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	u.Fondos = fondos
	return u, nil
}

func (s *Storage) listUserFunds(ctx context.Context, idUsuario string) ([]int, error) {
	query := `SELECT id_fondo
			  FROM suscripciones
			  WHERE id_usuario = $1
			  ORDER BY id`
	rows, err := s.DB.QueryContext(ctx, query, idUsuario)
	if err != nil {
		return nil, err
	}
	defer func() {
		_ = rows.Close()
	}()

	var fondos []int
	for rows.Next() {
		var idFondo int
		if err := rows.Scan(&idFondo); err != nil {
			return nil, err
		}
		fondos = append(fondos, idFondo)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return fondos, nil
}

func nullIfEmpty(s string) any {
	if s == "" {
		return nil
	}
	return s
}
