package dto

import "github.com/shopspring/decimal"

type ItemReservaRequest struct {
	ProductoID     string          `json:"producto_id"     validate:"required,uuid"`
	Cantidad       int             `json:"cantidad"        validate:"required,gt=0"`
	PrecioUnitario decimal.Decimal `json:"precio_unitario" validate:"required"`
}

type CrearReservaRequest struct {
	ClienteNombre string               `json:"cliente_nombre" validate:"required,min=2"`
	ClienteCI     *string              `json:"cliente_ci"`
	SucursalID    string               `json:"sucursal_id"    validate:"required,uuid"`
	Items         []ItemReservaRequest `json:"items"          validate:"required,min=1,dive"`
}

// CompletarReservaRequest converts the hold into a sale through the regular
// checkout path.
type CompletarReservaRequest struct {
	TipoPago      string          `json:"tipo_pago"      validate:"required,oneof=efectivo qr mixto"`
	QR            decimal.Decimal `json:"qr"             validate:"min=0"`
	MontoRecibido decimal.Decimal `json:"monto_recibido" validate:"min=0"`
}

type ItemReservaResponse struct {
	ProductoID     string          `json:"producto_id"`
	Producto       string          `json:"producto,omitempty"`
	Cantidad       int             `json:"cantidad"`
	PrecioUnitario decimal.Decimal `json:"precio_unitario"`
}

type ReservaResponse struct {
	ID            string                `json:"id"`
	ClienteNombre string                `json:"cliente_nombre"`
	SucursalID    string                `json:"sucursal_id"`
	Estado        string                `json:"estado"`
	VentaID       *string               `json:"venta_id"`
	Items         []ItemReservaResponse `json:"items"`
	CreatedAt     string                `json:"created_at"`
}

type ReservaListResponse struct {
	Data  []ReservaResponse `json:"data"`
	Total int64             `json:"total"`
	Page  int               `json:"page"`
	Limit int               `json:"limit"`
}
