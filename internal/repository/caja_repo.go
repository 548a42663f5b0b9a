package repository

import (
	"context"
	"time"

	"github.com/fydhel24/proyecto-ventas-sub000/internal/model"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type CajaRepository interface {
	Create(ctx context.Context, c *model.Caja) error
	FindAbiertaPorSucursal(ctx context.Context, sucursalID uuid.UUID) (*model.Caja, error)
	FindByID(ctx context.Context, id uuid.UUID) (*model.Caja, error)
	// LockByIDTx serializes closing of the same session.
	LockByIDTx(tx *gorm.DB, id uuid.UUID) (*model.Caja, error)
	UpdateTx(tx *gorm.DB, c *model.Caja) error
	List(ctx context.Context, sucursalID string, page, limit int) ([]model.Caja, int64, error)
	// SumVentasEnVentana re-derives the cash and QR totals of completed sales
	// for a branch within [desde, hasta]. Closing never trusts client figures.
	SumVentasEnVentana(ctx context.Context, sucursalID uuid.UUID, desde, hasta time.Time) (efectivo, qr decimal.Decimal, err error)
	DB() *gorm.DB
}

type cajaRepo struct{ db *gorm.DB }

func NewCajaRepository(db *gorm.DB) CajaRepository { return &cajaRepo{db: db} }

func (r *cajaRepo) DB() *gorm.DB { return r.db }

func (r *cajaRepo) Create(ctx context.Context, c *model.Caja) error {
	return r.db.WithContext(ctx).Create(c).Error
}

func (r *cajaRepo) FindAbiertaPorSucursal(ctx context.Context, sucursalID uuid.UUID) (*model.Caja, error) {
	var c model.Caja
	err := r.db.WithContext(ctx).
		Where("sucursal_id = ? AND fecha_cierre IS NULL", sucursalID).
		First(&c).Error
	return &c, err
}

func (r *cajaRepo) FindByID(ctx context.Context, id uuid.UUID) (*model.Caja, error) {
	var c model.Caja
	err := r.db.WithContext(ctx).Preload("Sucursal").First(&c, "id = ?", id).Error
	return &c, err
}

func (r *cajaRepo) LockByIDTx(tx *gorm.DB, id uuid.UUID) (*model.Caja, error) {
	var c model.Caja
	err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).First(&c, "id = ?", id).Error
	return &c, err
}

func (r *cajaRepo) UpdateTx(tx *gorm.DB, c *model.Caja) error {
	return tx.Save(c).Error
}

func (r *cajaRepo) List(ctx context.Context, sucursalID string, page, limit int) ([]model.Caja, int64, error) {
	var cajas []model.Caja
	var total int64

	q := r.db.WithContext(ctx).Model(&model.Caja{})
	if sucursalID != "" {
		q = q.Where("sucursal_id = ?", sucursalID)
	}
	if err := q.Count(&total).Error; err != nil {
		return nil, 0, err
	}
	err := q.Preload("Sucursal").
		Order("fecha_apertura DESC").
		Offset((page - 1) * limit).Limit(limit).
		Find(&cajas).Error
	return cajas, total, err
}

func (r *cajaRepo) SumVentasEnVentana(ctx context.Context, sucursalID uuid.UUID, desde, hasta time.Time) (decimal.Decimal, decimal.Decimal, error) {
	var row struct {
		Efectivo decimal.Decimal
		QR       decimal.Decimal
	}
	err := r.db.WithContext(ctx).Model(&model.Venta{}).
		Select("COALESCE(SUM(efectivo), 0) AS efectivo, COALESCE(SUM(qr), 0) AS qr").
		Where("sucursal_id = ? AND estado = ? AND created_at >= ? AND created_at <= ?",
			sucursalID, model.VentaCompletada, desde, hasta).
		Scan(&row).Error
	if err != nil {
		return decimal.Zero, decimal.Zero, err
	}
	return row.Efectivo, row.QR, nil
}
