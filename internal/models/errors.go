package models

import (
	"errors"
	"fmt"
)

// Domain errors surfaced by the repository and the services. Handlers
// map them to HTTP statuses instead of letting lookup misses leak as
// generic failures.
var (
	// ErrUserNotFound indicates the user id has no row in usuarios.
	ErrUserNotFound = errors.New("usuario no encontrado")
	// ErrFundNotFound indicates the fund id is not in the catalog.
	ErrFundNotFound = errors.New("fondo no encontrado")
	// ErrNotSubscribed indicates a cancel for a fund the user has no
	// membership in.
	ErrNotSubscribed = errors.New("el usuario no está suscrito a este fondo")
	// ErrInsufficientBalance indicates the conditional debit matched no
	// row: the balance is below the fund minimum.
	ErrInsufficientBalance = errors.New("saldo insuficiente")
	// ErrUserExists indicates a register with an already taken user id.
	ErrUserExists = errors.New("el usuario ya existe")
	// ErrInvalidCredentials indicates a failed login.
	ErrInvalidCredentials = errors.New("credenciales inválidas")
)

// InsufficientBalanceError carries the fund name so the client error
// message can name the fund the user could not join.
type InsufficientBalanceError struct {
	Nombre string
}

func (e *InsufficientBalanceError) Error() string {
	return fmt.Sprintf("saldo insuficiente para vincularse al fondo %s", e.Nombre)
}

// Unwrap lets errors.Is match ErrInsufficientBalance.
func (e *InsufficientBalanceError) Unwrap() error {
	return ErrInsufficientBalance
}
