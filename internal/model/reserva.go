package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Reserva is a customer hold against a future purchase. Stock is NOT touched
// until the reservation converts into a Venta through the checkout path.
type Reserva struct {
	ID            uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	ClienteNombre string    `gorm:"not null"`
	ClienteCI     *string
	SucursalID    uuid.UUID     `gorm:"type:uuid;not null;index"`
	Estado        ReservaEstado `gorm:"type:varchar(20);not null;default:'pendiente'"`
	// VentaID back-references the sale created when the reservation completed.
	VentaID   *uuid.UUID `gorm:"type:uuid"`
	CreatedAt time.Time
	UpdatedAt time.Time

	Detalles []DetalleReserva `gorm:"foreignKey:ReservaID"`
}

func (Reserva) TableName() string { return "reservas" }

type DetalleReserva struct {
	ID             uuid.UUID       `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	ReservaID      uuid.UUID       `gorm:"type:uuid;not null;index"`
	ProductoID     uuid.UUID       `gorm:"type:uuid;not null"`
	Cantidad       int             `gorm:"not null"`
	PrecioUnitario decimal.Decimal `gorm:"type:decimal(12,2);not null"`
	CreatedAt      time.Time

	Producto *Producto `gorm:"foreignKey:ProductoID"`
}

func (DetalleReserva) TableName() string { return "detalle_reservas" }
