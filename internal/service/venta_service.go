package service

import (
	"context"
	"fmt"
	"sort"

	"github.com/fydhel24/proyecto-ventas-sub000/internal/dto"
	"github.com/fydhel24/proyecto-ventas-sub000/internal/model"
	"github.com/fydhel24/proyecto-ventas-sub000/internal/repository"
	"github.com/fydhel24/proyecto-ventas-sub000/internal/worker"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

type VentaService interface {
	Registrar(ctx context.Context, actor model.ActingUser, req dto.RegistrarVentaRequest) (*dto.VentaResponse, error)
	// Anular reverses a completed sale: stock is restored line by line and
	// the attached mesa (if any) is freed. Requires supervisor or admin.
	Anular(ctx context.Context, actor model.ActingUser, id uuid.UUID, motivo string) error
	ActualizarEstadoPedido(ctx context.Context, id uuid.UUID, estado model.PedidoEstado) (*dto.VentaResponse, error)
	Obtener(ctx context.Context, id uuid.UUID) (*dto.VentaResponse, error)
	Listar(ctx context.Context, filter dto.VentaFilter) (*dto.VentaListResponse, error)
}

type ventaService struct {
	repo         repository.VentaRepository
	invRepo      repository.InventarioRepository
	productoRepo repository.ProductoRepository
	caja         CajaService
	dispatcher   *worker.Dispatcher
}

func NewVentaService(
	repo repository.VentaRepository,
	invRepo repository.InventarioRepository,
	productoRepo repository.ProductoRepository,
	caja CajaService,
	dispatcher *worker.Dispatcher,
) VentaService {
	return &ventaService{
		repo:         repo,
		invRepo:      invRepo,
		productoRepo: productoRepo,
		caja:         caja,
		dispatcher:   dispatcher,
	}
}

// ── Registrar ─────────────────────────────────────────────────────────────────
// Checkout is a single ACID transaction:
//   1. require an open caja at the actor's branch
//   2. validate the payment breakdown against the cart total
//   3. BEGIN TX: nextval ticket, lock inventory rows (id ascending), check
//      and decrement stock, create venta + detalles, occupy the mesa
//   4. COMMIT, then (async) enqueue the thermal ticket

func (s *ventaService) Registrar(ctx context.Context, actor model.ActingUser, req dto.RegistrarVentaRequest) (*dto.VentaResponse, error) {
	if actor.SucursalID == nil {
		return nil, ErrSinSucursal
	}
	sucursalID := *actor.SucursalID

	if _, err := s.caja.FindAbierta(ctx, sucursalID); err != nil {
		return nil, err
	}

	items, total, err := consolidarItems(req.Items)
	if err != nil {
		return nil, err
	}

	pago, err := resolverPago(model.TipoPago(req.TipoPago), total, req.QR, req.MontoRecibido)
	if err != nil {
		return nil, err
	}

	var mesaID *uuid.UUID
	if req.MesaID != nil {
		id, err := uuid.Parse(*req.MesaID)
		if err != nil {
			return nil, fmt.Errorf("mesa_id inválido: %w", err)
		}
		mesaID = &id
	}

	clienteNombre := req.ClienteNombre
	if clienteNombre == "" {
		clienteNombre = "S/N"
	}

	var venta model.Venta
	txErr := runTx(ctx, s.repo.DB(), func(tx *gorm.DB) error {
		ticketNum, err := s.repo.NextTicketNumber(ctx, tx)
		if err != nil {
			return err
		}

		estadoPedido := model.PedidoPagado
		if mesaID != nil {
			mesa, err := s.repo.FindMesaTx(tx, *mesaID)
			if err != nil {
				return fmt.Errorf("mesa no encontrada: %w", err)
			}
			if mesa.Estado == model.MesaOcupada {
				return ErrMesaOcupada
			}
			if err := s.repo.UpdateMesaEstadoTx(tx, *mesaID, model.MesaOcupada); err != nil {
				return err
			}
			estadoPedido = model.PedidoPendiente
		}

		venta = model.Venta{
			NumeroTicket:  ticketNum,
			ClienteNombre: clienteNombre,
			ClienteCI:     req.ClienteCI,
			TipoPago:      pago.tipo,
			Efectivo:      pago.efectivo,
			QR:            pago.qr,
			Total:         total,
			MontoRecibido: pago.recibido,
			Cambio:        pago.cambio,
			UsuarioID:     actor.ID,
			SucursalID:    sucursalID,
			MesaID:        mesaID,
			Estado:        model.VentaCompletada,
			EstadoPedido:  estadoPedido,
		}
		for _, it := range items {
			venta.Detalles = append(venta.Detalles, model.DetalleVenta{
				InventarioID:   it.inventarioID,
				Cantidad:       it.cantidad,
				PrecioUnitario: it.precio,
				Subtotal:       it.subtotal,
			})
		}
		if err := s.repo.CreateTx(tx, &venta); err != nil {
			return err
		}

		// Lock order is inventario id ascending — consolidarItems already
		// sorted, so concurrent checkouts over overlapping carts queue up
		// instead of deadlocking.
		for _, it := range items {
			inv, err := s.invRepo.LockByIDTx(tx, it.inventarioID)
			if err != nil {
				return fmt.Errorf("inventario %s no encontrado: %w", it.inventarioID, err)
			}
			if inv.SucursalID != sucursalID {
				return fmt.Errorf("el inventario %s pertenece a otra sucursal", it.inventarioID)
			}
			if inv.Stock < it.cantidad {
				return &InsufficientStockError{
					Producto:   s.nombreProducto(ctx, inv.ProductoID),
					Disponible: inv.Stock,
					Solicitado: it.cantidad,
				}
			}
			if err := s.invRepo.UpdateStockTx(tx, inv.ID, inv.Stock-it.cantidad); err != nil {
				return err
			}
		}
		return nil
	})
	if txErr != nil {
		return nil, txErr
	}

	if s.dispatcher != nil {
		_ = s.dispatcher.EnqueueTicket(ctx, worker.TicketJobPayload{VentaID: venta.ID.String()})
	}

	return s.Obtener(ctx, venta.ID)
}

// ── Anular ────────────────────────────────────────────────────────────────────

func (s *ventaService) Anular(ctx context.Context, actor model.ActingUser, id uuid.UUID, motivo string) error {
	if actor.Rol != model.RolSupervisor && !actor.EsAdministrador() {
		return ErrSinPermiso
	}

	return runTx(ctx, s.repo.DB(), func(tx *gorm.DB) error {
		venta, err := s.repo.LockByIDTx(tx, id)
		if err != nil {
			return err
		}
		if venta.Estado == model.VentaAnulada {
			return ErrVentaAnulada
		}
		if !actor.EsAdministrador() {
			if actor.SucursalID == nil || *actor.SucursalID != venta.SucursalID {
				return ErrSinPermiso
			}
		}

		detalles := make([]model.DetalleVenta, len(venta.Detalles))
		copy(detalles, venta.Detalles)
		sort.Slice(detalles, func(i, j int) bool {
			return detalles[i].InventarioID.String() < detalles[j].InventarioID.String()
		})
		for _, d := range detalles {
			inv, err := s.invRepo.LockByIDTx(tx, d.InventarioID)
			if err != nil {
				return err
			}
			if err := s.invRepo.UpdateStockTx(tx, inv.ID, inv.Stock+d.Cantidad); err != nil {
				return err
			}
		}

		if venta.MesaID != nil {
			if err := s.repo.UpdateMesaEstadoTx(tx, *venta.MesaID, model.MesaDisponible); err != nil {
				return err
			}
		}
		return s.repo.UpdateEstadoTx(tx, id, model.VentaAnulada)
	})
}

// ── Estado de pedido ──────────────────────────────────────────────────────────

// transicionesPedido maps each state to the only state that may follow it.
var transicionesPedido = map[model.PedidoEstado]model.PedidoEstado{
	model.PedidoPendiente: model.PedidoEnCocina,
	model.PedidoEnCocina:  model.PedidoListo,
	model.PedidoListo:     model.PedidoEntregado,
	model.PedidoEntregado: model.PedidoPagado,
}

func (s *ventaService) ActualizarEstadoPedido(ctx context.Context, id uuid.UUID, estado model.PedidoEstado) (*dto.VentaResponse, error) {
	venta, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if transicionesPedido[venta.EstadoPedido] != estado {
		return nil, fmt.Errorf("transición de pedido inválida: %s → %s", venta.EstadoPedido, estado)
	}

	txErr := runTx(ctx, s.repo.DB(), func(tx *gorm.DB) error {
		if err := s.repo.UpdateEstadoPedidoTx(tx, id, estado); err != nil {
			return err
		}
		// The table frees up when the order is paid out.
		if estado == model.PedidoPagado && venta.MesaID != nil {
			return s.repo.UpdateMesaEstadoTx(tx, *venta.MesaID, model.MesaDisponible)
		}
		return nil
	})
	if txErr != nil {
		return nil, txErr
	}
	return s.Obtener(ctx, id)
}

// ── Queries ───────────────────────────────────────────────────────────────────

func (s *ventaService) Obtener(ctx context.Context, id uuid.UUID) (*dto.VentaResponse, error) {
	venta, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	return ventaToResponse(venta), nil
}

func (s *ventaService) Listar(ctx context.Context, filter dto.VentaFilter) (*dto.VentaListResponse, error) {
	if filter.Page < 1 {
		filter.Page = 1
	}
	if filter.Limit < 1 {
		filter.Limit = 50
	}
	ventas, total, err := s.repo.List(ctx, filter)
	if err != nil {
		return nil, err
	}
	data := make([]dto.VentaResponse, 0, len(ventas))
	for i := range ventas {
		data = append(data, *ventaToResponse(&ventas[i]))
	}
	return &dto.VentaListResponse{Data: data, Total: total, Page: filter.Page, Limit: filter.Limit}, nil
}

func (s *ventaService) nombreProducto(ctx context.Context, productoID uuid.UUID) string {
	if p, err := s.productoRepo.FindByID(ctx, productoID); err == nil && p.Nombre != "" {
		return p.Nombre
	}
	return productoID.String()
}

// ── Helpers ───────────────────────────────────────────────────────────────────

type itemResuelto struct {
	inventarioID uuid.UUID
	cantidad     int
	precio       decimal.Decimal
	subtotal     decimal.Decimal
}

// consolidarItems merges duplicate cart lines per inventory row and returns
// the items sorted by inventario id, plus the cart total. Lines for the same
// inventory row must agree on the unit price.
func consolidarItems(items []dto.ItemVentaRequest) ([]itemResuelto, decimal.Decimal, error) {
	porInventario := make(map[uuid.UUID]*itemResuelto)
	orden := make([]uuid.UUID, 0, len(items))

	for _, item := range items {
		id, err := uuid.Parse(item.InventarioID)
		if err != nil {
			return nil, decimal.Zero, fmt.Errorf("inventario_id inválido: %w", err)
		}
		if item.PrecioUnitario.IsNegative() {
			return nil, decimal.Zero, fmt.Errorf("precio_unitario negativo para %s", item.InventarioID)
		}
		if existente, ok := porInventario[id]; ok {
			if !existente.precio.Equal(item.PrecioUnitario) {
				return nil, decimal.Zero, fmt.Errorf("precio_unitario inconsistente para %s", item.InventarioID)
			}
			existente.cantidad += item.Cantidad
			existente.subtotal = existente.precio.Mul(decimal.NewFromInt(int64(existente.cantidad)))
			continue
		}
		porInventario[id] = &itemResuelto{
			inventarioID: id,
			cantidad:     item.Cantidad,
			precio:       item.PrecioUnitario,
			subtotal:     item.PrecioUnitario.Mul(decimal.NewFromInt(int64(item.Cantidad))),
		}
		orden = append(orden, id)
	}

	sort.Slice(orden, func(i, j int) bool { return orden[i].String() < orden[j].String() })

	resueltos := make([]itemResuelto, 0, len(orden))
	total := decimal.Zero
	for _, id := range orden {
		it := porInventario[id]
		resueltos = append(resueltos, *it)
		total = total.Add(it.subtotal)
	}
	return resueltos, total, nil
}

type pagoResuelto struct {
	tipo     model.TipoPago
	efectivo decimal.Decimal
	qr       decimal.Decimal
	recibido decimal.Decimal
	cambio   decimal.Decimal
}

// resolverPago derives the cash/QR split and the change from the declared
// payment. The QR portion can never exceed the total and change is only ever
// given on the cash side.
func resolverPago(tipo model.TipoPago, total, qr, recibido decimal.Decimal) (*pagoResuelto, error) {
	switch tipo {
	case model.PagoEfectivo:
		if recibido.LessThan(total) {
			return nil, ErrPagoInsuficiente
		}
		return &pagoResuelto{
			tipo:     tipo,
			efectivo: total,
			qr:       decimal.Zero,
			recibido: recibido,
			cambio:   recibido.Sub(total),
		}, nil

	case model.PagoQR:
		return &pagoResuelto{
			tipo:     tipo,
			efectivo: decimal.Zero,
			qr:       total,
			recibido: total,
			cambio:   decimal.Zero,
		}, nil

	case model.PagoMixto:
		if qr.LessThanOrEqual(decimal.Zero) || qr.GreaterThanOrEqual(total) {
			return nil, ErrPagoInvalido
		}
		efectivo := total.Sub(qr)
		if recibido.LessThan(efectivo) {
			return nil, ErrPagoInsuficiente
		}
		return &pagoResuelto{
			tipo:     tipo,
			efectivo: efectivo,
			qr:       qr,
			recibido: recibido,
			cambio:   recibido.Sub(efectivo),
		}, nil
	}
	return nil, ErrPagoInvalido
}

func ventaToResponse(v *model.Venta) *dto.VentaResponse {
	items := make([]dto.ItemVentaResponse, 0, len(v.Detalles))
	for _, d := range v.Detalles {
		nombre := ""
		if d.Inventario != nil && d.Inventario.Producto != nil {
			nombre = d.Inventario.Producto.Nombre
		}
		items = append(items, dto.ItemVentaResponse{
			InventarioID:   d.InventarioID.String(),
			Producto:       nombre,
			Cantidad:       d.Cantidad,
			PrecioUnitario: d.PrecioUnitario,
			Subtotal:       d.Subtotal,
		})
	}
	return &dto.VentaResponse{
		ID:            v.ID.String(),
		NumeroTicket:  v.NumeroTicket,
		ClienteNombre: v.ClienteNombre,
		TipoPago:      string(v.TipoPago),
		Efectivo:      v.Efectivo,
		QR:            v.QR,
		Total:         v.Total,
		MontoRecibido: v.MontoRecibido,
		Cambio:        v.Cambio,
		Estado:        string(v.Estado),
		EstadoPedido:  string(v.EstadoPedido),
		SucursalID:    v.SucursalID.String(),
		Items:         items,
		CreatedAt:     v.CreatedAt.Format(timeLayout),
	}
}
