package models

import "encoding/json"

// SubscriptionRequest is the body of the subscribe and cancel
// endpoints. IDFondo is decoded as json.Number so callers may send the
// fund id either as a JSON number or as a string.
type SubscriptionRequest struct {
	IDUsuario string      `json:"id_usuario" validate:"required"`
	IDFondo   json.Number `json:"id_fondo" validate:"required"`
}

// HistoryRequest is the body of the transaction history endpoint.
type HistoryRequest struct {
	IDUsuario string `json:"id_usuario" validate:"required"`
}

// RegisterRequest is the body of the register endpoint.
type RegisterRequest struct {
	IDUsuario               string `json:"id_usuario" validate:"required,min=3,max=50"`
	Password                string `json:"password" validate:"required,min=6"`
	Email                   string `json:"email" validate:"required,email"`
	Telefono                string `json:"telefono"`
	PreferenciaNotificacion string `json:"preferencia_notificacion" validate:"omitempty,oneof=email sms"`
}

// LoginRequest is the body of the login endpoint.
type LoginRequest struct {
	IDUsuario string `json:"id_usuario" validate:"required"`
	Password  string `json:"password" validate:"required"`
}
