package models

import "github.com/shopspring/decimal"

// Fund is an investable product from the catalog. The catalog is
// read-only for this service: funds are seeded by migrations and never
// mutated by request handlers.
type Fund struct {
	IDFondo     int             `json:"id_fondo"`
	Nombre      string          `json:"nombre"`
	MontoMinimo decimal.Decimal `json:"monto_minimo"`
	Categoria   string          `json:"categoria"` // FPV or FIC
}
