package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"github.com/fondosapp/fondos-api/internal/models"
)

// OpenSubscription debits the fund minimum from the user, appends a
// membership row and records an apertura ledger entry, all in one SQL
// transaction. The debit is conditional on the balance covering the
// amount: zero rows affected means insufficient balance and nothing is
// written.
func (s *Storage) OpenSubscription(ctx context.Context, idUsuario string, idFondo int,
	monto decimal.Decimal, idTransaccion string, fecha time.Time) error {
	const op = "storage.OpenSubscription"
	select {
	case <-ctx.Done():
		return fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	tx, err := s.DB.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	defer func() {
		_ = tx.Rollback()
	}()

	query := `UPDATE usuarios
			  SET saldo = saldo - $1
			  WHERE id_usuario = $2
			    AND saldo >= $1`
	result, err := tx.ExecContext(ctx, query, monto, idUsuario)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	if rowsAffected == 0 {
		return fmt.Errorf("%s: %w", op, models.ErrInsufficientBalance)
	}

	query = `INSERT INTO suscripciones (id_usuario, id_fondo, fecha_apertura)
			 VALUES ($1, $2, $3)`
	if _, err = tx.ExecContext(ctx, query, idUsuario, idFondo, fecha); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	query = `INSERT INTO transacciones (id_transaccion, id_usuario, id_fondo, tipo, monto, fecha)
			 VALUES ($1, $2, $3, $4, $5, $6)`
	if _, err = tx.ExecContext(ctx, query,
		idTransaccion, idUsuario, idFondo, models.TipoApertura, monto, fecha); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	if err = tx.Commit(); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	return nil
}

// CloseSubscription removes the oldest membership row for the fund,
// credits the fund minimum back and records a cancelacion ledger entry,
// all in one SQL transaction. Zero membership rows removed means the
// user is not subscribed and nothing is written.
func (s *Storage) CloseSubscription(ctx context.Context, idUsuario string, idFondo int,
	monto decimal.Decimal, idTransaccion string, fecha time.Time) error {
	const op = "storage.CloseSubscription"
	select {
	case <-ctx.Done():
		return fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	tx, err := s.DB.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	defer func() {
		_ = tx.Rollback()
	}()

	// Removes one occurrence only: a double subscribe keeps its second
	// membership row.
	query := `DELETE FROM suscripciones
			  WHERE id = (
			      SELECT id FROM suscripciones
			      WHERE id_usuario = $1 AND id_fondo = $2
			      ORDER BY id
			      LIMIT 1
			  )`
	result, err := tx.ExecContext(ctx, query, idUsuario, idFondo)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	if rowsAffected == 0 {
		return fmt.Errorf("%s: %w", op, models.ErrNotSubscribed)
	}

	query = `UPDATE usuarios
			 SET saldo = saldo + $1
			 WHERE id_usuario = $2`
	if _, err = tx.ExecContext(ctx, query, monto, idUsuario); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	query = `INSERT INTO transacciones (id_transaccion, id_usuario, id_fondo, tipo, monto, fecha)
			 VALUES ($1, $2, $3, $4, $5, $6)`
	if _, err = tx.ExecContext(ctx, query,
		idTransaccion, idUsuario, idFondo, models.TipoCancelacion, monto, fecha); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	if err = tx.Commit(); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	return nil
}

// ListTransactions returns the full ledger of a user in chronological
// order. An unknown user yields an empty list, not an error.
func (s *Storage) ListTransactions(ctx context.Context, idUsuario string) ([]*models.Transaction, error) {
	const op = "storage.ListTransactions"
	select {
	case <-ctx.Done():
		return nil, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `SELECT id_transaccion, id_usuario, id_fondo, tipo, monto, fecha
			  FROM transacciones
			  WHERE id_usuario = $1
			  ORDER BY fecha, id_transaccion`
	rows, err := s.DB.QueryContext(ctx, query, idUsuario)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	defer func() {
		_ = rows.Close()
	}()

	var result []*models.Transaction
	for rows.Next() {
		var item models.Transaction
		if err := rows.Scan(&item.IDTransaccion, &item.IDUsuario, &item.IDFondo,
			&item.Tipo, &item.Monto, &item.Fecha); err != nil {
			return nil, fmt.Errorf("%s: %w", op, err)
		}
		result = append(result, &item)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return result, nil
}
