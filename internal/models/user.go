// Package models contains the domain structures of the funds service:
// users, the fund catalog, the transaction ledger and notification
// messages, together with the request types received from JSON bodies.
package models

import "github.com/shopspring/decimal"

// Notification preference values stored per user.
const (
	PrefEmail = "email"
	PrefSMS   = "sms"
)

// User represents a registered client with an available balance and the
// list of fund ids the client is subscribed to. The same fund id may
// appear more than once: each subscribe call appends a new membership.
type User struct {
	IDUsuario               string          `json:"id_usuario"`
	Email                   string          `json:"email"`
	Telefono                string          `json:"telefono"`
	PreferenciaNotificacion string          `json:"preferencia_notificacion,omitempty"`
	Saldo                   decimal.Decimal `json:"saldo"`
	Fondos                  []int           `json:"fondos"`
	PasswordHash            string          `json:"-"`
}
