package service

import (
	"context"
	"fmt"

	"github.com/fydhel24/proyecto-ventas-sub000/internal/dto"
	"github.com/fydhel24/proyecto-ventas-sub000/internal/model"
	"github.com/fydhel24/proyecto-ventas-sub000/internal/repository"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// ReservaService manages customer holds. A reservation never touches stock:
// availability is only checked when it completes, through the regular
// checkout path.
type ReservaService interface {
	Crear(ctx context.Context, actor model.ActingUser, req dto.CrearReservaRequest) (*dto.ReservaResponse, error)
	Completar(ctx context.Context, actor model.ActingUser, id uuid.UUID, req dto.CompletarReservaRequest) (*dto.ReservaResponse, error)
	Cancelar(ctx context.Context, actor model.ActingUser, id uuid.UUID) error
	Obtener(ctx context.Context, id uuid.UUID) (*dto.ReservaResponse, error)
	Listar(ctx context.Context, sucursalID, estado string, page, limit int) (*dto.ReservaListResponse, error)
}

type reservaService struct {
	repo    repository.ReservaRepository
	invRepo repository.InventarioRepository
	ventas  VentaService
}

func NewReservaService(repo repository.ReservaRepository, invRepo repository.InventarioRepository, ventas VentaService) ReservaService {
	return &reservaService{repo: repo, invRepo: invRepo, ventas: ventas}
}

func (s *reservaService) Crear(ctx context.Context, actor model.ActingUser, req dto.CrearReservaRequest) (*dto.ReservaResponse, error) {
	sucursalID, err := uuid.Parse(req.SucursalID)
	if err != nil {
		return nil, fmt.Errorf("sucursal_id inválido: %w", err)
	}
	if !actor.EsAdministrador() {
		if actor.SucursalID == nil || *actor.SucursalID != sucursalID {
			return nil, ErrSinPermiso
		}
	}

	reserva := &model.Reserva{
		ClienteNombre: req.ClienteNombre,
		ClienteCI:     req.ClienteCI,
		SucursalID:    sucursalID,
		Estado:        model.ReservaPendiente,
	}
	for _, item := range req.Items {
		pid, err := uuid.Parse(item.ProductoID)
		if err != nil {
			return nil, fmt.Errorf("producto_id inválido: %w", err)
		}
		reserva.Detalles = append(reserva.Detalles, model.DetalleReserva{
			ProductoID:     pid,
			Cantidad:       item.Cantidad,
			PrecioUnitario: item.PrecioUnitario,
		})
	}
	if err := s.repo.Create(ctx, reserva); err != nil {
		return nil, err
	}
	return s.Obtener(ctx, reserva.ID)
}

// Completar converts the hold into a sale. The hold is claimed under a row
// lock before checkout (estado → completada), so a concurrent completion of
// the same reservation fails with ErrReservaProcesada instead of producing a
// second sale; a checkout that does not commit releases the claim.
func (s *reservaService) Completar(ctx context.Context, actor model.ActingUser, id uuid.UUID, req dto.CompletarReservaRequest) (*dto.ReservaResponse, error) {
	reserva, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if actor.SucursalID == nil || *actor.SucursalID != reserva.SucursalID {
		return nil, ErrSinPermiso
	}

	claimErr := runTx(ctx, s.repo.DB(), func(tx *gorm.DB) error {
		locked, err := s.repo.LockByIDTx(tx, id)
		if err != nil {
			return err
		}
		if locked.Estado != model.ReservaPendiente {
			return ErrReservaProcesada
		}
		return s.repo.UpdateEstadoTx(tx, id, model.ReservaCompletada, nil)
	})
	if claimErr != nil {
		return nil, claimErr
	}

	venta, err := s.registrarVentaDeReserva(ctx, actor, reserva, req)
	if err != nil {
		// The sale did not commit: release the claim so the hold stays usable.
		_ = runTx(ctx, s.repo.DB(), func(tx *gorm.DB) error {
			return s.repo.UpdateEstadoTx(tx, id, model.ReservaPendiente, nil)
		})
		return nil, err
	}
	ventaID, err := uuid.Parse(venta.ID)
	if err != nil {
		return nil, err
	}

	txErr := runTx(ctx, s.repo.DB(), func(tx *gorm.DB) error {
		return s.repo.UpdateEstadoTx(tx, id, model.ReservaCompletada, &ventaID)
	})
	if txErr != nil {
		return nil, txErr
	}
	return s.Obtener(ctx, id)
}

// registrarVentaDeReserva builds a cart against the reservation branch's
// inventories and runs the regular checkout path.
func (s *reservaService) registrarVentaDeReserva(ctx context.Context, actor model.ActingUser, reserva *model.Reserva, req dto.CompletarReservaRequest) (*dto.VentaResponse, error) {
	ventaReq := dto.RegistrarVentaRequest{
		ClienteNombre: reserva.ClienteNombre,
		ClienteCI:     reserva.ClienteCI,
		TipoPago:      req.TipoPago,
		QR:            req.QR,
		MontoRecibido: req.MontoRecibido,
	}
	for _, d := range reserva.Detalles {
		inv, err := s.invRepo.FindByProductoSucursal(ctx, d.ProductoID, reserva.SucursalID)
		if err != nil {
			return nil, &InsufficientStockError{
				Producto:   nombreDetalleReserva(&d),
				Disponible: 0,
				Solicitado: d.Cantidad,
			}
		}
		ventaReq.Items = append(ventaReq.Items, dto.ItemVentaRequest{
			InventarioID:   inv.ID.String(),
			Cantidad:       d.Cantidad,
			PrecioUnitario: d.PrecioUnitario,
		})
	}
	return s.ventas.Registrar(ctx, actor, ventaReq)
}

func (s *reservaService) Cancelar(ctx context.Context, actor model.ActingUser, id uuid.UUID) error {
	return runTx(ctx, s.repo.DB(), func(tx *gorm.DB) error {
		reserva, err := s.repo.LockByIDTx(tx, id)
		if err != nil {
			return err
		}
		if reserva.Estado != model.ReservaPendiente {
			return ErrReservaProcesada
		}
		if !actor.EsAdministrador() {
			if actor.SucursalID == nil || *actor.SucursalID != reserva.SucursalID {
				return ErrSinPermiso
			}
		}
		return s.repo.UpdateEstadoTx(tx, id, model.ReservaCancelada, nil)
	})
}

func (s *reservaService) Obtener(ctx context.Context, id uuid.UUID) (*dto.ReservaResponse, error) {
	reserva, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	return reservaToResponse(reserva), nil
}

func (s *reservaService) Listar(ctx context.Context, sucursalID, estado string, page, limit int) (*dto.ReservaListResponse, error) {
	if page < 1 {
		page = 1
	}
	if limit < 1 {
		limit = 50
	}
	reservas, total, err := s.repo.List(ctx, sucursalID, estado, page, limit)
	if err != nil {
		return nil, err
	}
	data := make([]dto.ReservaResponse, 0, len(reservas))
	for i := range reservas {
		data = append(data, *reservaToResponse(&reservas[i]))
	}
	return &dto.ReservaListResponse{Data: data, Total: total, Page: page, Limit: limit}, nil
}

func nombreDetalleReserva(d *model.DetalleReserva) string {
	if d.Producto != nil && d.Producto.Nombre != "" {
		return d.Producto.Nombre
	}
	return d.ProductoID.String()
}

func reservaToResponse(r *model.Reserva) *dto.ReservaResponse {
	items := make([]dto.ItemReservaResponse, 0, len(r.Detalles))
	for i := range r.Detalles {
		d := &r.Detalles[i]
		items = append(items, dto.ItemReservaResponse{
			ProductoID:     d.ProductoID.String(),
			Producto:       nombreDetalleReserva(d),
			Cantidad:       d.Cantidad,
			PrecioUnitario: d.PrecioUnitario,
		})
	}
	resp := &dto.ReservaResponse{
		ID:            r.ID.String(),
		ClienteNombre: r.ClienteNombre,
		SucursalID:    r.SucursalID.String(),
		Estado:        string(r.Estado),
		Items:         items,
		CreatedAt:     r.CreatedAt.Format(timeLayout),
	}
	if r.VentaID != nil {
		v := r.VentaID.String()
		resp.VentaID = &v
	}
	return resp
}
