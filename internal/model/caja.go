package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Caja is one cash-register shift for a sucursal.
// Estado: "abierta" | "cerrada". At most one open row per sucursal — enforced
// by a partial unique index on (sucursal_id) WHERE fecha_cierre IS NULL.
type Caja struct {
	ID             uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	SucursalID     uuid.UUID `gorm:"type:uuid;not null;index"`
	FechaApertura  time.Time `gorm:"not null"`
	FechaCierre    *time.Time
	UserAperturaID uuid.UUID  `gorm:"type:uuid;not null"`
	UserCierreID   *uuid.UUID `gorm:"type:uuid"`

	EfectivoInicial decimal.Decimal `gorm:"type:decimal(12,2);not null"`
	QRInicial       decimal.Decimal `gorm:"type:decimal(12,2);not null"`
	MontoInicial    decimal.Decimal `gorm:"type:decimal(12,2);not null"`

	// Closing figures — recomputed from the Venta ledger, never trusted from
	// the client. Diferencia = monto_final declarado − esperado.
	TotalEfectivo *decimal.Decimal `gorm:"type:decimal(12,2)"`
	TotalQR       *decimal.Decimal `gorm:"type:decimal(12,2)"`
	MontoFinal    *decimal.Decimal `gorm:"type:decimal(12,2)"`
	Diferencia    *decimal.Decimal `gorm:"type:decimal(12,2)"`

	Estado    CajaEstado `gorm:"type:varchar(20);not null;default:'abierta'"`
	CreatedAt time.Time
	UpdatedAt time.Time

	Sucursal *Sucursal `gorm:"foreignKey:SucursalID"`
}

func (Caja) TableName() string { return "cajas" }
