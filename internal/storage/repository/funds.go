package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/fondosapp/fondos-api/internal/models"
)

// GetFund returns a catalog fund by id.
func (s *Storage) GetFund(ctx context.Context, idFondo int) (*models.Fund, error) {
	const op = "storage.GetFund"
	select {
	case <-ctx.Done():
		return nil, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `SELECT id_fondo, nombre, monto_minimo, categoria
			  FROM fondos
			  WHERE id_fondo = $1`
	var f models.Fund
	row := s.DB.QueryRowContext(ctx, query, idFondo)
	if err := row.Scan(&f.IDFondo, &f.Nombre, &f.MontoMinimo, &f.Categoria); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("%s: %w", op, models.ErrFundNotFound)
		}
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return &f, nil
}

// ListFunds returns the whole catalog ordered by id.
func (s *Storage) ListFunds(ctx context.Context) ([]*models.Fund, error) {
	const op = "storage.ListFunds"
	select {
	case <-ctx.Done():
		return nil, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `SELECT id_fondo, nombre, monto_minimo, categoria
			  FROM fondos
			  ORDER BY id_fondo`
	rows, err := s.DB.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	defer func() {
		_ = rows.Close()
	}()

	var result []*models.Fund
	for rows.Next() {
		var f models.Fund
		if err := rows.Scan(&f.IDFondo, &f.Nombre, &f.MontoMinimo, &f.Categoria); err != nil {
			return nil, fmt.Errorf("%s: %w", op, err)
		}
		result = append(result, &f)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return result, nil
}
