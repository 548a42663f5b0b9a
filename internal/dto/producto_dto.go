package dto

import "github.com/shopspring/decimal"

type CrearProductoRequest struct {
	Nombre        string           `json:"nombre"         validate:"required,min=2"`
	Descripcion   *string          `json:"descripcion"`
	Marca         string           `json:"marca"          validate:"required"`
	Categoria     string           `json:"categoria"      validate:"required"`
	PrecioCompra  decimal.Decimal  `json:"precio_compra"  validate:"min=0"`
	PrecioVenta   decimal.Decimal  `json:"precio_venta"   validate:"min=0"`
	PrecioMayoreo *decimal.Decimal `json:"precio_mayoreo"`
}

type ActualizarProductoRequest struct {
	Nombre        string           `json:"nombre"         validate:"omitempty,min=2"`
	Descripcion   *string          `json:"descripcion"`
	Marca         string           `json:"marca"`
	Categoria     string           `json:"categoria"`
	PrecioCompra  *decimal.Decimal `json:"precio_compra"`
	PrecioVenta   *decimal.Decimal `json:"precio_venta"`
	PrecioMayoreo *decimal.Decimal `json:"precio_mayoreo"`
}

type ProductoFilter struct {
	Nombre    string
	Marca     string
	Categoria string
	Activo    string // "" = activos, "false" = inactivos, "all" = todos
	Page      int
	Limit     int
}

type ProductoResponse struct {
	ID            string           `json:"id"`
	Nombre        string           `json:"nombre"`
	Descripcion   *string          `json:"descripcion"`
	Marca         string           `json:"marca"`
	Categoria     string           `json:"categoria"`
	PrecioCompra  decimal.Decimal  `json:"precio_compra"`
	PrecioVenta   decimal.Decimal  `json:"precio_venta"`
	PrecioMayoreo *decimal.Decimal `json:"precio_mayoreo"`
	Activo        bool             `json:"activo"`
}

type ProductoListResponse struct {
	Data  []ProductoResponse `json:"data"`
	Total int64              `json:"total"`
	Page  int                `json:"page"`
	Limit int                `json:"limit"`
}
