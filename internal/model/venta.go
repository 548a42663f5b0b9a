package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Venta is a completed (or later annulled) POS transaction.
type Venta struct {
	ID           uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	NumeroTicket int64     `gorm:"uniqueIndex;not null"`
	// Cliente data is free-form: walk-in customers are not catalog entities.
	ClienteNombre string `gorm:"not null;default:'S/N'"`
	ClienteCI     *string

	TipoPago      TipoPago        `gorm:"type:varchar(20);not null"`
	Efectivo      decimal.Decimal `gorm:"type:decimal(12,2);not null"`
	QR            decimal.Decimal `gorm:"type:decimal(12,2);not null"`
	Total         decimal.Decimal `gorm:"type:decimal(12,2);not null"`
	MontoRecibido decimal.Decimal `gorm:"type:decimal(12,2);not null"`
	Cambio        decimal.Decimal `gorm:"type:decimal(12,2);not null"`

	UsuarioID  uuid.UUID  `gorm:"type:uuid;not null;index"`
	SucursalID uuid.UUID  `gorm:"type:uuid;not null;index"`
	MesaID     *uuid.UUID `gorm:"type:uuid"`

	Estado VentaEstado `gorm:"type:varchar(20);not null;default:'completada'"`
	// EstadoPedido drives the kitchen workflow when a mesa is attached:
	// pendiente → en_cocina → listo → entregado → pagado.
	EstadoPedido PedidoEstado `gorm:"type:varchar(20);not null;default:'pagado'"`
	CreatedAt    time.Time
	UpdatedAt    time.Time

	Usuario  *Usuario       `gorm:"foreignKey:UsuarioID"`
	Sucursal *Sucursal      `gorm:"foreignKey:SucursalID"`
	Mesa     *Mesa          `gorm:"foreignKey:MesaID"`
	Detalles []DetalleVenta `gorm:"foreignKey:VentaID"`
}

func (Venta) TableName() string { return "ventas" }

// DetalleVenta is one immutable cart line referencing the Inventario row it
// decremented.
type DetalleVenta struct {
	ID             uuid.UUID       `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	VentaID        uuid.UUID       `gorm:"type:uuid;not null;index"`
	InventarioID   uuid.UUID       `gorm:"type:uuid;not null;index"`
	Cantidad       int             `gorm:"not null"`
	PrecioUnitario decimal.Decimal `gorm:"type:decimal(12,2);not null"`
	Subtotal       decimal.Decimal `gorm:"type:decimal(12,2);not null"`
	CreatedAt      time.Time

	Inventario *Inventario `gorm:"foreignKey:InventarioID"`
}

func (DetalleVenta) TableName() string { return "detalle_ventas" }

// Mesa is a dine-in table whose occupancy follows its open order.
type Mesa struct {
	ID         uuid.UUID  `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	Numero     int        `gorm:"not null"`
	SucursalID uuid.UUID  `gorm:"type:uuid;not null;index"`
	Estado     MesaEstado `gorm:"type:varchar(20);not null;default:'disponible'"`
	CreatedAt  time.Time
	UpdatedAt  time.Time
}

func (Mesa) TableName() string { return "mesas" }
