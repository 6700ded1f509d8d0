package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// Ledger entry kinds.
const (
	TipoApertura    = "apertura"
	TipoCancelacion = "cancelacion"
)

// Transaction is an immutable ledger record of a balance-affecting
// event. Created once per subscribe or cancel, never updated.
type Transaction struct {
	IDTransaccion string          `json:"id_transaccion"`
	IDUsuario     string          `json:"id_usuario"`
	IDFondo       int             `json:"id_fondo"`
	Tipo          string          `json:"tipo"`
	Monto         decimal.Decimal `json:"monto"`
	Fecha         time.Time       `json:"fecha"`
}
