package dto

// ─── Requests ────────────────────────────────────────────────────────────────

// TransferenciaRequest covers the three direct movement kinds.
// INGRESO needs only destino; REPARTICION and ENVIO also need origen.
type TransferenciaRequest struct {
	Tipo              string `json:"tipo"                validate:"required,oneof=INGRESO REPARTICION ENVIO"`
	ProductoID        string `json:"producto_id"         validate:"required,uuid"`
	Cantidad          int    `json:"cantidad"            validate:"required,gt=0"`
	SucursalOrigenID  string `json:"sucursal_origen_id"  validate:"omitempty,uuid"`
	SucursalDestinoID string `json:"sucursal_destino_id" validate:"required,uuid"`
	Descripcion       string `json:"descripcion"`
}

// SolicitudRequest asks another branch to supply stock. The requesting branch
// is resolved from the acting user.
type SolicitudRequest struct {
	ProductoID           string `json:"producto_id"            validate:"required,uuid"`
	Cantidad             int    `json:"cantidad"               validate:"required,gt=0"`
	SucursalProveedoraID string `json:"sucursal_proveedora_id" validate:"required,uuid"`
	Descripcion          string `json:"descripcion"`
}

// ─── Filters ─────────────────────────────────────────────────────────────────

type InventarioFilter struct {
	SucursalID string
	ProductoID string
	Page       int
	Limit      int
}

type MovimientoFilter struct {
	Tipo   string
	Estado string
	Page   int
	Limit  int
}

// ─── Responses ───────────────────────────────────────────────────────────────

type InventarioResponse struct {
	ID         string `json:"id"`
	ProductoID string `json:"producto_id"`
	Producto   string `json:"producto,omitempty"`
	SucursalID string `json:"sucursal_id"`
	Sucursal   string `json:"sucursal,omitempty"`
	Stock      int    `json:"stock"`
}

type LineaMovimientoResponse struct {
	InventarioID       string `json:"inventario_id"`
	CantidadActual     int    `json:"cantidad_actual"`
	CantidadMovimiento int    `json:"cantidad_movimiento"`
	CantidadNueva      int    `json:"cantidad_nueva"`
	Aplicado           bool   `json:"aplicado"`
}

type MovimientoResponse struct {
	ID          string                    `json:"id"`
	Tipo        string                    `json:"tipo"`
	Estado      string                    `json:"estado"`
	Descripcion string                    `json:"descripcion"`
	UserOrigen  string                    `json:"user_origen,omitempty"`
	Lineas      []LineaMovimientoResponse `json:"lineas"`
	CreatedAt   string                    `json:"created_at"`
}

type InventarioListResponse struct {
	Data  []InventarioResponse `json:"data"`
	Total int64                `json:"total"`
	Page  int                  `json:"page"`
	Limit int                  `json:"limit"`
}

type MovimientoListResponse struct {
	Data  []MovimientoResponse `json:"data"`
	Total int64                `json:"total"`
	Page  int                  `json:"page"`
	Limit int                  `json:"limit"`
}
