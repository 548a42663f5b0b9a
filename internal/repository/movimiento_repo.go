package repository

import (
	"context"

	"github.com/fydhel24/proyecto-ventas-sub000/internal/dto"
	"github.com/fydhel24/proyecto-ventas-sub000/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type MovimientoRepository interface {
	CreateTx(tx *gorm.DB, m *model.Movimiento) error
	FindByID(ctx context.Context, id uuid.UUID) (*model.Movimiento, error)
	// LockByIDTx serializes concurrent confirmations of the same SOLICITUD.
	LockByIDTx(tx *gorm.DB, id uuid.UUID) (*model.Movimiento, error)
	ConfirmarTx(tx *gorm.DB, id uuid.UUID, userDestinoID uuid.UUID) error
	List(ctx context.Context, filter dto.MovimientoFilter) ([]model.Movimiento, int64, error)
}

type movimientoRepo struct{ db *gorm.DB }

func NewMovimientoRepository(db *gorm.DB) MovimientoRepository { return &movimientoRepo{db: db} }

func (r *movimientoRepo) CreateTx(tx *gorm.DB, m *model.Movimiento) error {
	return tx.Create(m).Error
}

func (r *movimientoRepo) FindByID(ctx context.Context, id uuid.UUID) (*model.Movimiento, error) {
	var m model.Movimiento
	err := r.db.WithContext(ctx).
		Preload("Lineas").
		Preload("Lineas.Inventario").
		Preload("UserOrigen").
		First(&m, "id = ?", id).Error
	return &m, err
}

func (r *movimientoRepo) LockByIDTx(tx *gorm.DB, id uuid.UUID) (*model.Movimiento, error) {
	var m model.Movimiento
	err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).First(&m, "id = ?", id).Error
	if err != nil {
		return nil, err
	}
	return &m, nil
}

func (r *movimientoRepo) ConfirmarTx(tx *gorm.DB, id uuid.UUID, userDestinoID uuid.UUID) error {
	return tx.Model(&model.Movimiento{}).Where("id = ?", id).Updates(map[string]interface{}{
		"estado":          model.EstadoConfirmado,
		"user_destino_id": userDestinoID,
	}).Error
}

func (r *movimientoRepo) List(ctx context.Context, filter dto.MovimientoFilter) ([]model.Movimiento, int64, error) {
	var movimientos []model.Movimiento
	var total int64

	q := r.db.WithContext(ctx).Model(&model.Movimiento{})
	if filter.Tipo != "" {
		q = q.Where("tipo = ?", filter.Tipo)
	}
	if filter.Estado != "" {
		q = q.Where("estado = ?", filter.Estado)
	}
	if err := q.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	offset := (filter.Page - 1) * filter.Limit
	err := q.Preload("Lineas").Preload("UserOrigen").
		Order("created_at DESC").
		Offset(offset).Limit(filter.Limit).
		Find(&movimientos).Error
	return movimientos, total, err
}
