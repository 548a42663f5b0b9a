package service

import (
	"context"
	"fmt"

	"github.com/fydhel24/proyecto-ventas-sub000/internal/dto"
	"github.com/fydhel24/proyecto-ventas-sub000/internal/model"
	"github.com/fydhel24/proyecto-ventas-sub000/internal/repository"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// CompraService receives supplier purchases. Receiving is atomic: the compra,
// the INGRESO movement with its audit lines, the stock increments and the
// refreshed catalog prices commit together.
type CompraService interface {
	Registrar(ctx context.Context, actor model.ActingUser, req dto.RegistrarCompraRequest) (*dto.CompraResponse, error)
	Obtener(ctx context.Context, id uuid.UUID) (*dto.CompraResponse, error)
	Listar(ctx context.Context, page, limit int) (*dto.CompraListResponse, error)
}

type compraService struct {
	repo          repository.CompraRepository
	movRepo       repository.MovimientoRepository
	productoRepo  repository.ProductoRepository
	proveedorRepo repository.ProveedorRepository
	inventario    InventarioService
	margenPct     decimal.Decimal
}

func NewCompraService(
	repo repository.CompraRepository,
	movRepo repository.MovimientoRepository,
	productoRepo repository.ProductoRepository,
	proveedorRepo repository.ProveedorRepository,
	inventario InventarioService,
	margenPct float64,
) CompraService {
	return &compraService{
		repo:          repo,
		movRepo:       movRepo,
		productoRepo:  productoRepo,
		proveedorRepo: proveedorRepo,
		inventario:    inventario,
		margenPct:     decimal.NewFromFloat(margenPct),
	}
}

func (s *compraService) Registrar(ctx context.Context, actor model.ActingUser, req dto.RegistrarCompraRequest) (*dto.CompraResponse, error) {
	if actor.Rol == model.RolCajero {
		return nil, ErrSinPermiso
	}
	proveedorID, err := uuid.Parse(req.ProveedorID)
	if err != nil {
		return nil, fmt.Errorf("proveedor_id inválido: %w", err)
	}
	sucursalID, err := uuid.Parse(req.SucursalID)
	if err != nil {
		return nil, fmt.Errorf("sucursal_id inválido: %w", err)
	}

	proveedor, err := s.proveedorRepo.FindByID(ctx, proveedorID)
	if err != nil {
		return nil, fmt.Errorf("proveedor no encontrado: %w", err)
	}

	type itemCompra struct {
		productoID   uuid.UUID
		cantidad     int
		precioCompra decimal.Decimal
		subtotal     decimal.Decimal
		precioVenta  decimal.Decimal
	}

	items := make([]itemCompra, 0, len(req.Items))
	total := decimal.Zero
	for _, item := range req.Items {
		pid, err := uuid.Parse(item.ProductoID)
		if err != nil {
			return nil, fmt.Errorf("producto_id inválido: %w", err)
		}
		if item.PrecioCompra.IsNegative() {
			return nil, fmt.Errorf("precio_compra negativo para %s", item.ProductoID)
		}
		producto, err := s.productoRepo.FindByID(ctx, pid)
		if err != nil {
			return nil, fmt.Errorf("producto %s no encontrado", item.ProductoID)
		}
		subtotal := item.PrecioCompra.Mul(decimal.NewFromInt(int64(item.Cantidad)))
		items = append(items, itemCompra{
			productoID:   pid,
			cantidad:     item.Cantidad,
			precioCompra: item.PrecioCompra,
			subtotal:     subtotal,
			precioVenta:  precioPorMargen(producto, item.PrecioCompra, s.margenPct),
		})
		total = total.Add(subtotal)
	}

	descripcion := fmt.Sprintf("Compra a %s", proveedor.RazonSocial)
	if req.Descripcion != nil && *req.Descripcion != "" {
		descripcion = *req.Descripcion
	}

	var compra model.Compra
	txErr := runTx(ctx, s.repo.DB(), func(tx *gorm.DB) error {
		mov := &model.Movimiento{
			UserOrigenID: actor.ID,
			Tipo:         model.MovimientoIngreso,
			Estado:       model.EstadoCompletado,
			Descripcion:  descripcion,
		}
		if err := s.movRepo.CreateTx(tx, mov); err != nil {
			return err
		}

		compra = model.Compra{
			ProveedorID: proveedorID,
			SucursalID:  sucursalID,
			UsuarioID:   actor.ID,
			Total:       total,
			Descripcion: req.Descripcion,
		}
		for _, it := range items {
			compra.Detalles = append(compra.Detalles, model.DetalleCompra{
				ProductoID:   it.productoID,
				Cantidad:     it.cantidad,
				PrecioCompra: it.precioCompra,
				Subtotal:     it.subtotal,
			})
		}
		if err := s.repo.CreateTx(tx, &compra); err != nil {
			return err
		}

		for _, it := range items {
			if _, err := s.inventario.AjustarTx(ctx, tx, it.productoID, sucursalID, it.cantidad, mov.ID); err != nil {
				return err
			}
			if err := s.productoRepo.UpdatePreciosTx(tx, it.productoID, it.precioCompra, it.precioVenta); err != nil {
				return err
			}
		}
		return nil
	})
	if txErr != nil {
		return nil, txErr
	}

	return s.Obtener(ctx, compra.ID)
}

func (s *compraService) Obtener(ctx context.Context, id uuid.UUID) (*dto.CompraResponse, error) {
	compra, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	return compraToResponse(compra), nil
}

func (s *compraService) Listar(ctx context.Context, page, limit int) (*dto.CompraListResponse, error) {
	if page < 1 {
		page = 1
	}
	if limit < 1 {
		limit = 50
	}
	compras, total, err := s.repo.List(ctx, page, limit)
	if err != nil {
		return nil, err
	}
	data := make([]dto.CompraResponse, 0, len(compras))
	for i := range compras {
		data = append(data, *compraToResponse(&compras[i]))
	}
	return &dto.CompraListResponse{Data: data, Total: total, Page: page, Limit: limit}, nil
}

// precioPorMargen is the pricing policy applied when a purchase refreshes a
// product's cost: precio_venta = costo × (1 + margen%), rounded to cents.
// The margin comes from MARGEN_VENTA_PCT so each deployment picks its own.
// A zero cost keeps the current sale price untouched.
func precioPorMargen(p *model.Producto, costo, margenPct decimal.Decimal) decimal.Decimal {
	if costo.IsZero() {
		return p.PrecioVenta
	}
	factor := decimal.NewFromInt(1).Add(margenPct.Div(decimal.NewFromInt(100)))
	return costo.Mul(factor).Round(2)
}

func compraToResponse(c *model.Compra) *dto.CompraResponse {
	items := make([]dto.ItemCompraResponse, 0, len(c.Detalles))
	for _, d := range c.Detalles {
		nombre := ""
		if d.Producto != nil {
			nombre = d.Producto.Nombre
		}
		items = append(items, dto.ItemCompraResponse{
			ProductoID:   d.ProductoID.String(),
			Producto:     nombre,
			Cantidad:     d.Cantidad,
			PrecioCompra: d.PrecioCompra,
			Subtotal:     d.Subtotal,
		})
	}
	resp := &dto.CompraResponse{
		ID:          c.ID.String(),
		ProveedorID: c.ProveedorID.String(),
		SucursalID:  c.SucursalID.String(),
		Total:       c.Total,
		Items:       items,
		CreatedAt:   c.CreatedAt.Format(timeLayout),
	}
	if c.Proveedor != nil {
		resp.Proveedor = c.Proveedor.RazonSocial
	}
	return resp
}
