package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Producto is a catalog entry. Stock never lives here: the same product can
// exist in every sucursal with independent quantities (see Inventario).
// PrecioCompra/PrecioVenta are cached figures refreshed when a Compra is
// received.
type Producto struct {
	ID           uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	Nombre       string    `gorm:"index;not null"`
	Descripcion  *string
	Marca        string          `gorm:"not null"`
	Categoria    string          `gorm:"not null"`
	PrecioCompra decimal.Decimal `gorm:"type:decimal(12,2);not null"`
	PrecioVenta  decimal.Decimal `gorm:"type:decimal(12,2);not null"`
	// PrecioMayoreo is the second sale-price tier, applied at the seller's
	// discretion for bulk purchases.
	PrecioMayoreo *decimal.Decimal `gorm:"type:decimal(12,2)"`
	Activo        bool             `gorm:"not null;default:true"`
	CreatedAt     time.Time
	UpdatedAt     time.Time
}
