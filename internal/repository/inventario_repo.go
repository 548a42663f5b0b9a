package repository

import (
	"context"

	"github.com/fydhel24/proyecto-ventas-sub000/internal/dto"
	"github.com/fydhel24/proyecto-ventas-sub000/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// InventarioRepository is the data-access contract for the stock ledger.
// Every *Tx method expects a live transaction; the FOR UPDATE lock taken
// there is held until that transaction commits or rolls back.
type InventarioRepository interface {
	// GetOrCreateTx returns the (producto, sucursal) row under an exclusive
	// lock, creating it with stock 0 when absent. Concurrent first writers
	// race on the unique index; the loser retries the locked fetch.
	GetOrCreateTx(tx *gorm.DB, productoID, sucursalID uuid.UUID) (*model.Inventario, error)
	LockByIDTx(tx *gorm.DB, id uuid.UUID) (*model.Inventario, error)
	UpdateStockTx(tx *gorm.DB, id uuid.UUID, stock int) error
	CreateLineaTx(tx *gorm.DB, l *model.MovimientoInventario) error

	FindByID(ctx context.Context, id uuid.UUID) (*model.Inventario, error)
	FindByProductoSucursal(ctx context.Context, productoID, sucursalID uuid.UUID) (*model.Inventario, error)
	List(ctx context.Context, filter dto.InventarioFilter) ([]model.Inventario, int64, error)
	ListLineas(ctx context.Context, inventarioID uuid.UUID) ([]model.MovimientoInventario, error)

	// DB exposes the underlying *gorm.DB so services can open transactions.
	DB() *gorm.DB
}

type inventarioRepo struct{ db *gorm.DB }

func NewInventarioRepository(db *gorm.DB) InventarioRepository { return &inventarioRepo{db: db} }

func (r *inventarioRepo) DB() *gorm.DB { return r.db }

func (r *inventarioRepo) GetOrCreateTx(tx *gorm.DB, productoID, sucursalID uuid.UUID) (*model.Inventario, error) {
	inv := model.Inventario{ProductoID: productoID, SucursalID: sucursalID}
	err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
		Where("producto_id = ? AND sucursal_id = ?", productoID, sucursalID).
		FirstOrCreate(&inv).Error
	if err != nil {
		return nil, err
	}
	return &inv, nil
}

func (r *inventarioRepo) LockByIDTx(tx *gorm.DB, id uuid.UUID) (*model.Inventario, error) {
	var inv model.Inventario
	err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).First(&inv, "id = ?", id).Error
	if err != nil {
		return nil, err
	}
	return &inv, nil
}

func (r *inventarioRepo) UpdateStockTx(tx *gorm.DB, id uuid.UUID, stock int) error {
	return tx.Model(&model.Inventario{}).Where("id = ?", id).Update("stock", stock).Error
}

func (r *inventarioRepo) CreateLineaTx(tx *gorm.DB, l *model.MovimientoInventario) error {
	return tx.Create(l).Error
}

func (r *inventarioRepo) FindByID(ctx context.Context, id uuid.UUID) (*model.Inventario, error) {
	var inv model.Inventario
	err := r.db.WithContext(ctx).Preload("Producto").Preload("Sucursal").First(&inv, "id = ?", id).Error
	return &inv, err
}

func (r *inventarioRepo) FindByProductoSucursal(ctx context.Context, productoID, sucursalID uuid.UUID) (*model.Inventario, error) {
	var inv model.Inventario
	err := r.db.WithContext(ctx).
		Where("producto_id = ? AND sucursal_id = ?", productoID, sucursalID).
		First(&inv).Error
	return &inv, err
}

func (r *inventarioRepo) List(ctx context.Context, filter dto.InventarioFilter) ([]model.Inventario, int64, error) {
	var inventarios []model.Inventario
	var total int64

	q := r.db.WithContext(ctx).Model(&model.Inventario{})
	if filter.SucursalID != "" {
		q = q.Where("sucursal_id = ?", filter.SucursalID)
	}
	if filter.ProductoID != "" {
		q = q.Where("producto_id = ?", filter.ProductoID)
	}
	if err := q.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	offset := (filter.Page - 1) * filter.Limit
	err := q.Preload("Producto").Preload("Sucursal").
		Order("updated_at DESC").
		Offset(offset).Limit(filter.Limit).
		Find(&inventarios).Error
	return inventarios, total, err
}

func (r *inventarioRepo) ListLineas(ctx context.Context, inventarioID uuid.UUID) ([]model.MovimientoInventario, error) {
	var lineas []model.MovimientoInventario
	err := r.db.WithContext(ctx).
		Where("inventario_id = ?", inventarioID).
		Order("created_at ASC").
		Find(&lineas).Error
	return lineas, err
}
