package repository

import (
	"context"

	"github.com/fydhel24/proyecto-ventas-sub000/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type ReservaRepository interface {
	Create(ctx context.Context, r *model.Reserva) error
	FindByID(ctx context.Context, id uuid.UUID) (*model.Reserva, error)
	// LockByIDTx serializes completion/cancellation of the same reservation.
	LockByIDTx(tx *gorm.DB, id uuid.UUID) (*model.Reserva, error)
	UpdateEstadoTx(tx *gorm.DB, id uuid.UUID, estado model.ReservaEstado, ventaID *uuid.UUID) error
	List(ctx context.Context, sucursalID, estado string, page, limit int) ([]model.Reserva, int64, error)
	DB() *gorm.DB
}

type reservaRepo struct{ db *gorm.DB }

func NewReservaRepository(db *gorm.DB) ReservaRepository { return &reservaRepo{db: db} }

func (r *reservaRepo) DB() *gorm.DB { return r.db }

func (r *reservaRepo) Create(ctx context.Context, res *model.Reserva) error {
	return r.db.WithContext(ctx).Create(res).Error
}

func (r *reservaRepo) FindByID(ctx context.Context, id uuid.UUID) (*model.Reserva, error) {
	var res model.Reserva
	err := r.db.WithContext(ctx).
		Preload("Detalles").
		Preload("Detalles.Producto").
		First(&res, "id = ?", id).Error
	return &res, err
}

func (r *reservaRepo) LockByIDTx(tx *gorm.DB, id uuid.UUID) (*model.Reserva, error) {
	var res model.Reserva
	err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).First(&res, "id = ?", id).Error
	if err != nil {
		return nil, err
	}
	if err := tx.Where("reserva_id = ?", id).Find(&res.Detalles).Error; err != nil {
		return nil, err
	}
	return &res, nil
}

func (r *reservaRepo) UpdateEstadoTx(tx *gorm.DB, id uuid.UUID, estado model.ReservaEstado, ventaID *uuid.UUID) error {
	updates := map[string]interface{}{"estado": estado}
	if ventaID != nil {
		updates["venta_id"] = *ventaID
	}
	return tx.Model(&model.Reserva{}).Where("id = ?", id).Updates(updates).Error
}

func (r *reservaRepo) List(ctx context.Context, sucursalID, estado string, page, limit int) ([]model.Reserva, int64, error) {
	var reservas []model.Reserva
	var total int64

	q := r.db.WithContext(ctx).Model(&model.Reserva{})
	if sucursalID != "" {
		q = q.Where("sucursal_id = ?", sucursalID)
	}
	if estado != "" {
		q = q.Where("estado = ?", estado)
	}
	if err := q.Count(&total).Error; err != nil {
		return nil, 0, err
	}
	err := q.Preload("Detalles.Producto").
		Order("created_at DESC").
		Offset((page - 1) * limit).Limit(limit).
		Find(&reservas).Error
	return reservas, total, err
}
