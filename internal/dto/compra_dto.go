package dto

import "github.com/shopspring/decimal"

type ItemCompraRequest struct {
	ProductoID   string          `json:"producto_id"   validate:"required,uuid"`
	Cantidad     int             `json:"cantidad"      validate:"required,gt=0"`
	PrecioCompra decimal.Decimal `json:"precio_compra" validate:"required"`
}

type RegistrarCompraRequest struct {
	ProveedorID string              `json:"proveedor_id" validate:"required,uuid"`
	SucursalID  string              `json:"sucursal_id"  validate:"required,uuid"`
	Descripcion *string             `json:"descripcion"`
	Items       []ItemCompraRequest `json:"items"        validate:"required,min=1,dive"`
}

type ItemCompraResponse struct {
	ProductoID   string          `json:"producto_id"`
	Producto     string          `json:"producto,omitempty"`
	Cantidad     int             `json:"cantidad"`
	PrecioCompra decimal.Decimal `json:"precio_compra"`
	Subtotal     decimal.Decimal `json:"subtotal"`
}

type CompraResponse struct {
	ID          string               `json:"id"`
	ProveedorID string               `json:"proveedor_id"`
	Proveedor   string               `json:"proveedor,omitempty"`
	SucursalID  string               `json:"sucursal_id"`
	Total       decimal.Decimal      `json:"total"`
	Items       []ItemCompraResponse `json:"items"`
	CreatedAt   string               `json:"created_at"`
}

type CompraListResponse struct {
	Data  []CompraResponse `json:"data"`
	Total int64            `json:"total"`
	Page  int              `json:"page"`
	Limit int              `json:"limit"`
}

// ─── Proveedores ─────────────────────────────────────────────────────────────

type ProveedorRequest struct {
	RazonSocial string  `json:"razon_social" validate:"required,min=2"`
	NIT         *string `json:"nit"`
	Telefono    *string `json:"telefono"`
	Email       *string `json:"email" validate:"omitempty,email"`
	Direccion   *string `json:"direccion"`
}

type ProveedorResponse struct {
	ID          string  `json:"id"`
	RazonSocial string  `json:"razon_social"`
	NIT         *string `json:"nit"`
	Telefono    *string `json:"telefono"`
	Email       *string `json:"email"`
	Direccion   *string `json:"direccion"`
	Activo      bool    `json:"activo"`
}
