package service

import (
	"context"

	"github.com/fydhel24/proyecto-ventas-sub000/internal/dto"
	"github.com/fydhel24/proyecto-ventas-sub000/internal/model"
	"github.com/fydhel24/proyecto-ventas-sub000/internal/repository"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// InventarioService owns the stock ledger. Every applied delta goes through
// AjustarTx so that the before/delta/after audit line and the stock mutation
// commit (or roll back) together.
type InventarioService interface {
	// AjustarTx locks the (producto, sucursal) row — creating it at stock 0
	// when absent — applies the signed delta and appends the audit line.
	// A delta that would take the stock below zero fails with
	// *InsufficientStockError and leaves the row untouched.
	AjustarTx(ctx context.Context, tx *gorm.DB, productoID, sucursalID uuid.UUID, delta int, movimientoID uuid.UUID) (*model.Inventario, error)

	// SnapshotTx appends a non-applied line recording the stock observed at
	// request time. Used by pending SOLICITUD movements: the row is locked
	// only long enough to read a consistent figure, stock is not changed.
	SnapshotTx(ctx context.Context, tx *gorm.DB, productoID, sucursalID uuid.UUID, cantidad int, movimientoID uuid.UUID) (*model.Inventario, error)

	Obtener(ctx context.Context, productoID, sucursalID uuid.UUID) (*dto.InventarioResponse, error)
	Listar(ctx context.Context, filter dto.InventarioFilter) (*dto.InventarioListResponse, error)
	// Kardex returns the full audit trail of one inventory row, oldest first.
	Kardex(ctx context.Context, inventarioID uuid.UUID) ([]dto.LineaMovimientoResponse, error)
}

type inventarioService struct {
	repo         repository.InventarioRepository
	productoRepo repository.ProductoRepository
}

func NewInventarioService(repo repository.InventarioRepository, productoRepo repository.ProductoRepository) InventarioService {
	return &inventarioService{repo: repo, productoRepo: productoRepo}
}

func (s *inventarioService) AjustarTx(ctx context.Context, tx *gorm.DB, productoID, sucursalID uuid.UUID, delta int, movimientoID uuid.UUID) (*model.Inventario, error) {
	inv, err := s.repo.GetOrCreateTx(tx, productoID, sucursalID)
	if err != nil {
		return nil, err
	}

	nuevo := inv.Stock + delta
	if nuevo < 0 {
		return nil, &InsufficientStockError{
			Producto:   s.nombreProducto(ctx, productoID),
			Disponible: inv.Stock,
			Solicitado: -delta,
		}
	}

	if err := s.repo.UpdateStockTx(tx, inv.ID, nuevo); err != nil {
		return nil, err
	}
	linea := &model.MovimientoInventario{
		InventarioID:       inv.ID,
		MovimientoID:       movimientoID,
		CantidadActual:     inv.Stock,
		CantidadMovimiento: delta,
		CantidadNueva:      nuevo,
		Aplicado:           true,
	}
	if err := s.repo.CreateLineaTx(tx, linea); err != nil {
		return nil, err
	}

	inv.Stock = nuevo
	return inv, nil
}

func (s *inventarioService) SnapshotTx(ctx context.Context, tx *gorm.DB, productoID, sucursalID uuid.UUID, cantidad int, movimientoID uuid.UUID) (*model.Inventario, error) {
	inv, err := s.repo.GetOrCreateTx(tx, productoID, sucursalID)
	if err != nil {
		return nil, err
	}
	linea := &model.MovimientoInventario{
		InventarioID:       inv.ID,
		MovimientoID:       movimientoID,
		CantidadActual:     inv.Stock,
		CantidadMovimiento: cantidad,
		CantidadNueva:      inv.Stock,
		Aplicado:           false,
	}
	if err := s.repo.CreateLineaTx(tx, linea); err != nil {
		return nil, err
	}
	return inv, nil
}

func (s *inventarioService) Obtener(ctx context.Context, productoID, sucursalID uuid.UUID) (*dto.InventarioResponse, error) {
	inv, err := s.repo.FindByProductoSucursal(ctx, productoID, sucursalID)
	if err != nil {
		return nil, err
	}
	return inventarioToResponse(inv), nil
}

func (s *inventarioService) Listar(ctx context.Context, filter dto.InventarioFilter) (*dto.InventarioListResponse, error) {
	if filter.Page < 1 {
		filter.Page = 1
	}
	if filter.Limit < 1 {
		filter.Limit = 50
	}
	inventarios, total, err := s.repo.List(ctx, filter)
	if err != nil {
		return nil, err
	}
	data := make([]dto.InventarioResponse, 0, len(inventarios))
	for i := range inventarios {
		data = append(data, *inventarioToResponse(&inventarios[i]))
	}
	return &dto.InventarioListResponse{Data: data, Total: total, Page: filter.Page, Limit: filter.Limit}, nil
}

func (s *inventarioService) Kardex(ctx context.Context, inventarioID uuid.UUID) ([]dto.LineaMovimientoResponse, error) {
	lineas, err := s.repo.ListLineas(ctx, inventarioID)
	if err != nil {
		return nil, err
	}
	out := make([]dto.LineaMovimientoResponse, 0, len(lineas))
	for _, l := range lineas {
		out = append(out, dto.LineaMovimientoResponse{
			InventarioID:       l.InventarioID.String(),
			CantidadActual:     l.CantidadActual,
			CantidadMovimiento: l.CantidadMovimiento,
			CantidadNueva:      l.CantidadNueva,
			Aplicado:           l.Aplicado,
		})
	}
	return out, nil
}

// nombreProducto resolves a display name for error messages; falls back to
// the raw id when the catalog lookup fails.
func (s *inventarioService) nombreProducto(ctx context.Context, productoID uuid.UUID) string {
	if p, err := s.productoRepo.FindByID(ctx, productoID); err == nil && p.Nombre != "" {
		return p.Nombre
	}
	return productoID.String()
}

func inventarioToResponse(inv *model.Inventario) *dto.InventarioResponse {
	resp := &dto.InventarioResponse{
		ID:         inv.ID.String(),
		ProductoID: inv.ProductoID.String(),
		SucursalID: inv.SucursalID.String(),
		Stock:      inv.Stock,
	}
	if inv.Producto != nil {
		resp.Producto = inv.Producto.Nombre
	}
	if inv.Sucursal != nil {
		resp.Sucursal = inv.Sucursal.Nombre
	}
	return resp
}
