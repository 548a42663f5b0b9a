package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Inventario is the stock ledger row: one (producto, sucursal) pair with an
// integer quantity that never goes negative. Rows are created lazily on the
// first movement into a branch and mutated only under a FOR UPDATE lock.
type Inventario struct {
	ID         uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	ProductoID uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_inventario_producto_sucursal"`
	SucursalID uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_inventario_producto_sucursal"`
	Stock      int       `gorm:"not null;default:0"`
	CreatedAt  time.Time
	UpdatedAt  time.Time
	DeletedAt  gorm.DeletedAt `gorm:"index"`

	Producto *Producto `gorm:"foreignKey:ProductoID"`
	Sucursal *Sucursal `gorm:"foreignKey:SucursalID"`
}

func (Inventario) TableName() string { return "inventarios" }

// Movimiento is the header of a stock-affecting event. Direct kinds
// (INGRESO, REPARTICION, ENVIO) are born COMPLETADO; SOLICITUD starts
// PENDIENTE and is flipped to CONFIRMADO by the supplying branch.
type Movimiento struct {
	ID            uuid.UUID        `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	UserOrigenID  uuid.UUID        `gorm:"type:uuid;not null"`
	UserDestinoID *uuid.UUID       `gorm:"type:uuid"`
	Tipo          MovimientoTipo   `gorm:"type:varchar(20);not null;index"`
	Estado        MovimientoEstado `gorm:"type:varchar(20);not null;index"`
	Descripcion   string           `gorm:"type:text"`
	CreatedAt     time.Time
	UpdatedAt     time.Time
	DeletedAt     gorm.DeletedAt `gorm:"index"`

	UserOrigen  *Usuario               `gorm:"foreignKey:UserOrigenID"`
	UserDestino *Usuario               `gorm:"foreignKey:UserDestinoID"`
	Lineas      []MovimientoInventario `gorm:"foreignKey:MovimientoID"`
}

func (Movimiento) TableName() string { return "movimientos" }

// MovimientoInventario is one audited before/delta/after entry against a
// single Inventario row. Lines are append-only: a SOLICITUD keeps its
// request-time snapshot (Aplicado=false, stock untouched) and confirmation
// appends new applied lines instead of rewriting it.
type MovimientoInventario struct {
	ID           uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	InventarioID uuid.UUID `gorm:"type:uuid;not null;index"`
	MovimientoID uuid.UUID `gorm:"type:uuid;not null;index"`
	// CantidadActual is the stock observed when the line was written.
	CantidadActual int `gorm:"not null"`
	// CantidadMovimiento is the signed delta (or the requested quantity on a
	// SOLICITUD snapshot line).
	CantidadMovimiento int `gorm:"not null"`
	CantidadNueva      int `gorm:"not null"`
	// Aplicado marks whether the delta was applied to the Inventario row.
	// Snapshot lines of a pending SOLICITUD carry false.
	Aplicado  bool `gorm:"not null;default:true"`
	CreatedAt time.Time
	UpdatedAt time.Time

	Inventario *Inventario `gorm:"foreignKey:InventarioID"`
}

func (MovimientoInventario) TableName() string { return "movimiento_inventarios" }
