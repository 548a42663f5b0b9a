package dto

import "github.com/shopspring/decimal"

// ─── Request DTOs ────────────────────────────────────────────────────────────

type AbrirCajaRequest struct {
	SucursalID      string          `json:"sucursal_id"      validate:"required,uuid"`
	EfectivoInicial decimal.Decimal `json:"efectivo_inicial" validate:"min=0"`
	QRInicial       decimal.Decimal `json:"qr_inicial"       validate:"min=0"`
}

type CerrarCajaRequest struct {
	CajaID string `json:"caja_id" validate:"required,uuid"`
	// MontoFinal is the cash the cashier counted in the drawer. The expected
	// figure is re-derived server-side; the variance is the difference.
	MontoFinal decimal.Decimal `json:"monto_final" validate:"min=0"`
}

type AbrirCajasRequest struct {
	EfectivoInicial decimal.Decimal `json:"efectivo_inicial" validate:"min=0"`
	QRInicial       decimal.Decimal `json:"qr_inicial"       validate:"min=0"`
}

type CerrarCajasRequest struct{}

// ─── Response DTOs ───────────────────────────────────────────────────────────

type CajaResponse struct {
	ID              string           `json:"id"`
	SucursalID      string           `json:"sucursal_id"`
	Sucursal        string           `json:"sucursal,omitempty"`
	Estado          string           `json:"estado"`
	EfectivoInicial decimal.Decimal  `json:"efectivo_inicial"`
	QRInicial       decimal.Decimal  `json:"qr_inicial"`
	MontoInicial    decimal.Decimal  `json:"monto_inicial"`
	TotalEfectivo   *decimal.Decimal `json:"total_efectivo"`
	TotalQR         *decimal.Decimal `json:"total_qr"`
	MontoFinal      *decimal.Decimal `json:"monto_final"`
	Diferencia      *decimal.Decimal `json:"diferencia"`
	FechaApertura   string           `json:"fecha_apertura"`
	FechaCierre     *string          `json:"fecha_cierre"`
}

// BulkCajaResponse reports a skip-and-count batch open/close.
type BulkCajaResponse struct {
	Procesadas int `json:"procesadas"`
	Omitidas   int `json:"omitidas"`
}

type CajaListResponse struct {
	Data  []CajaResponse `json:"data"`
	Total int64          `json:"total"`
	Page  int            `json:"page"`
	Limit int            `json:"limit"`
}
