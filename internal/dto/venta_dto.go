package dto

import "github.com/shopspring/decimal"

// ─── Request DTOs ────────────────────────────────────────────────────────────

type ItemVentaRequest struct {
	InventarioID   string          `json:"inventario_id"   validate:"required,uuid"`
	Cantidad       int             `json:"cantidad"        validate:"required,gt=0"`
	PrecioUnitario decimal.Decimal `json:"precio_unitario" validate:"required"`
}

type RegistrarVentaRequest struct {
	ClienteNombre string  `json:"cliente_nombre"`
	ClienteCI     *string `json:"cliente_ci"`
	// TipoPago: efectivo | qr | mixto. For mixto the cash portion is
	// total − qr, derived server-side.
	TipoPago      string             `json:"tipo_pago"      validate:"required,oneof=efectivo qr mixto"`
	QR            decimal.Decimal    `json:"qr"             validate:"min=0"`
	MontoRecibido decimal.Decimal    `json:"monto_recibido" validate:"min=0"`
	MesaID        *string            `json:"mesa_id"        validate:"omitempty,uuid"`
	Items         []ItemVentaRequest `json:"items"          validate:"required,min=1,dive"`
}

type AnularVentaRequest struct {
	Motivo string `json:"motivo" validate:"required,min=3"`
}

type ActualizarEstadoPedidoRequest struct {
	Estado string `json:"estado" validate:"required,oneof=pendiente en_cocina listo entregado pagado"`
}

type VentaFilter struct {
	Estado     string
	SucursalID string
	Fecha      string // YYYY-MM-DD
	Page       int
	Limit      int
}

// ─── Response DTOs ───────────────────────────────────────────────────────────

type ItemVentaResponse struct {
	InventarioID   string          `json:"inventario_id"`
	Producto       string          `json:"producto,omitempty"`
	Cantidad       int             `json:"cantidad"`
	PrecioUnitario decimal.Decimal `json:"precio_unitario"`
	Subtotal       decimal.Decimal `json:"subtotal"`
}

type VentaResponse struct {
	ID            string              `json:"id"`
	NumeroTicket  int64               `json:"numero_ticket"`
	ClienteNombre string              `json:"cliente_nombre"`
	TipoPago      string              `json:"tipo_pago"`
	Efectivo      decimal.Decimal     `json:"efectivo"`
	QR            decimal.Decimal     `json:"qr"`
	Total         decimal.Decimal     `json:"total"`
	MontoRecibido decimal.Decimal     `json:"monto_recibido"`
	Cambio        decimal.Decimal     `json:"cambio"`
	Estado        string              `json:"estado"`
	EstadoPedido  string              `json:"estado_pedido"`
	SucursalID    string              `json:"sucursal_id"`
	Items         []ItemVentaResponse `json:"items"`
	CreatedAt     string              `json:"created_at"`
}

type VentaListResponse struct {
	Data  []VentaResponse `json:"data"`
	Total int64           `json:"total"`
	Page  int             `json:"page"`
	Limit int             `json:"limit"`
}
