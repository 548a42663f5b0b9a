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

// MovimientoService implements the stock movement workflows. Direct kinds
// (INGRESO, REPARTICION, ENVIO) apply immediately and are born COMPLETADO.
// SOLICITUD is the two-phase request: it only records a snapshot until the
// supplying branch confirms.
type MovimientoService interface {
	CrearTransferencia(ctx context.Context, actor model.ActingUser, req dto.TransferenciaRequest) (*dto.MovimientoResponse, error)
	CrearSolicitud(ctx context.Context, actor model.ActingUser, req dto.SolicitudRequest) (*dto.MovimientoResponse, error)
	ConfirmarSolicitud(ctx context.Context, actor model.ActingUser, movimientoID uuid.UUID) (*dto.MovimientoResponse, error)
	Obtener(ctx context.Context, id uuid.UUID) (*dto.MovimientoResponse, error)
	Listar(ctx context.Context, filter dto.MovimientoFilter) (*dto.MovimientoListResponse, error)
}

type movimientoService struct {
	repo       repository.MovimientoRepository
	invRepo    repository.InventarioRepository
	inventario InventarioService
}

func NewMovimientoService(repo repository.MovimientoRepository, invRepo repository.InventarioRepository, inventario InventarioService) MovimientoService {
	return &movimientoService{repo: repo, invRepo: invRepo, inventario: inventario}
}

// ── CrearTransferencia ────────────────────────────────────────────────────────

func (s *movimientoService) CrearTransferencia(ctx context.Context, actor model.ActingUser, req dto.TransferenciaRequest) (*dto.MovimientoResponse, error) {
	tipo := model.MovimientoTipo(req.Tipo)
	if !tipo.Valido() || tipo == model.MovimientoSolicitud {
		return nil, ErrTipoMovimiento
	}

	productoID, err := uuid.Parse(req.ProductoID)
	if err != nil {
		return nil, fmt.Errorf("producto_id inválido: %w", err)
	}
	destinoID, err := uuid.Parse(req.SucursalDestinoID)
	if err != nil {
		return nil, fmt.Errorf("sucursal_destino_id inválido: %w", err)
	}

	var origenID uuid.UUID
	if tipo.RequiereOrigen() {
		origenID, err = uuid.Parse(req.SucursalOrigenID)
		if err != nil {
			return nil, fmt.Errorf("sucursal_origen_id inválido: %w", err)
		}
		if origenID == destinoID {
			return nil, ErrTransferenciaInvalida
		}
	}

	mov := &model.Movimiento{
		UserOrigenID: actor.ID,
		Tipo:         tipo,
		Estado:       model.EstadoCompletado,
		Descripcion:  req.Descripcion,
	}

	txErr := runTx(ctx, s.invRepo.DB(), func(tx *gorm.DB) error {
		if err := s.repo.CreateTx(tx, mov); err != nil {
			return err
		}
		if !tipo.RequiereOrigen() {
			_, err := s.inventario.AjustarTx(ctx, tx, productoID, destinoID, req.Cantidad, mov.ID)
			return err
		}
		// Two branches are touched: acquire row locks in a deterministic
		// order (branch id ascending) so concurrent opposite transfers
		// cannot deadlock.
		for _, sucursalID := range ordenarSucursales(origenID, destinoID) {
			delta := req.Cantidad
			if sucursalID == origenID {
				delta = -req.Cantidad
			}
			if _, err := s.inventario.AjustarTx(ctx, tx, productoID, sucursalID, delta, mov.ID); err != nil {
				return err
			}
		}
		return nil
	})
	if txErr != nil {
		return nil, txErr
	}

	return s.Obtener(ctx, mov.ID)
}

// ── CrearSolicitud ────────────────────────────────────────────────────────────
// The requesting branch is the actor's own; the request targets the supplying
// branch. Stock is untouched: only a snapshot line is written so the supplier
// can see what was available when the request was made.

func (s *movimientoService) CrearSolicitud(ctx context.Context, actor model.ActingUser, req dto.SolicitudRequest) (*dto.MovimientoResponse, error) {
	if actor.SucursalID == nil {
		return nil, ErrSinSucursal
	}
	productoID, err := uuid.Parse(req.ProductoID)
	if err != nil {
		return nil, fmt.Errorf("producto_id inválido: %w", err)
	}
	proveedoraID, err := uuid.Parse(req.SucursalProveedoraID)
	if err != nil {
		return nil, fmt.Errorf("sucursal_proveedora_id inválido: %w", err)
	}
	if proveedoraID == *actor.SucursalID {
		return nil, ErrTransferenciaInvalida
	}

	mov := &model.Movimiento{
		UserOrigenID: actor.ID,
		Tipo:         model.MovimientoSolicitud,
		Estado:       model.EstadoPendiente,
		Descripcion:  req.Descripcion,
	}

	txErr := runTx(ctx, s.invRepo.DB(), func(tx *gorm.DB) error {
		if err := s.repo.CreateTx(tx, mov); err != nil {
			return err
		}
		_, err := s.inventario.SnapshotTx(ctx, tx, productoID, proveedoraID, req.Cantidad, mov.ID)
		return err
	})
	if txErr != nil {
		return nil, txErr
	}

	return s.Obtener(ctx, mov.ID)
}

// ── ConfirmarSolicitud ────────────────────────────────────────────────────────
// Only the supplying branch (or an administrator) may confirm. Confirmation
// applies the transfer atomically and appends fresh audit lines: the original
// snapshot is never rewritten, so double confirmations and mutated history
// are both impossible.

func (s *movimientoService) ConfirmarSolicitud(ctx context.Context, actor model.ActingUser, movimientoID uuid.UUID) (*dto.MovimientoResponse, error) {
	mov, err := s.repo.FindByID(ctx, movimientoID)
	if err != nil {
		return nil, err
	}
	if mov.Tipo != model.MovimientoSolicitud {
		return nil, ErrTipoMovimiento
	}
	if mov.Estado != model.EstadoPendiente {
		return nil, ErrSolicitudProcesada
	}

	snapshot := buscarSnapshot(mov.Lineas)
	if snapshot == nil || snapshot.Inventario == nil {
		return nil, fmt.Errorf("solicitud %s sin línea de snapshot", movimientoID)
	}
	proveedoraID := snapshot.Inventario.SucursalID
	productoID := snapshot.Inventario.ProductoID
	cantidad := snapshot.CantidadMovimiento

	if !actor.EsAdministrador() {
		if actor.SucursalID == nil || *actor.SucursalID != proveedoraID {
			return nil, ErrSinPermiso
		}
	}

	// The requesting branch is wherever the requester works.
	if mov.UserOrigen == nil || mov.UserOrigen.SucursalID == nil {
		return nil, ErrSinSucursal
	}
	destinoID := *mov.UserOrigen.SucursalID

	txErr := runTx(ctx, s.invRepo.DB(), func(tx *gorm.DB) error {
		locked, err := s.repo.LockByIDTx(tx, movimientoID)
		if err != nil {
			return err
		}
		if locked.Estado != model.EstadoPendiente {
			return ErrSolicitudProcesada
		}
		for _, sucursalID := range ordenarSucursales(proveedoraID, destinoID) {
			delta := cantidad
			if sucursalID == proveedoraID {
				delta = -cantidad
			}
			if _, err := s.inventario.AjustarTx(ctx, tx, productoID, sucursalID, delta, movimientoID); err != nil {
				return err
			}
		}
		return s.repo.ConfirmarTx(tx, movimientoID, actor.ID)
	})
	if txErr != nil {
		return nil, txErr
	}

	return s.Obtener(ctx, movimientoID)
}

func (s *movimientoService) Obtener(ctx context.Context, id uuid.UUID) (*dto.MovimientoResponse, error) {
	mov, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	return movimientoToResponse(mov), nil
}

func (s *movimientoService) Listar(ctx context.Context, filter dto.MovimientoFilter) (*dto.MovimientoListResponse, error) {
	if filter.Page < 1 {
		filter.Page = 1
	}
	if filter.Limit < 1 {
		filter.Limit = 50
	}
	movimientos, total, err := s.repo.List(ctx, filter)
	if err != nil {
		return nil, err
	}
	data := make([]dto.MovimientoResponse, 0, len(movimientos))
	for i := range movimientos {
		data = append(data, *movimientoToResponse(&movimientos[i]))
	}
	return &dto.MovimientoListResponse{Data: data, Total: total, Page: filter.Page, Limit: filter.Limit}, nil
}

// ── Helpers ───────────────────────────────────────────────────────────────────

// ordenarSucursales returns the pair in ascending id order. Every multi-branch
// operation locks inventory rows in this order.
func ordenarSucursales(a, b uuid.UUID) []uuid.UUID {
	if a.String() <= b.String() {
		return []uuid.UUID{a, b}
	}
	return []uuid.UUID{b, a}
}

func buscarSnapshot(lineas []model.MovimientoInventario) *model.MovimientoInventario {
	for i := range lineas {
		if !lineas[i].Aplicado {
			return &lineas[i]
		}
	}
	return nil
}

func movimientoToResponse(m *model.Movimiento) *dto.MovimientoResponse {
	lineas := make([]dto.LineaMovimientoResponse, 0, len(m.Lineas))
	for _, l := range m.Lineas {
		lineas = append(lineas, dto.LineaMovimientoResponse{
			InventarioID:       l.InventarioID.String(),
			CantidadActual:     l.CantidadActual,
			CantidadMovimiento: l.CantidadMovimiento,
			CantidadNueva:      l.CantidadNueva,
			Aplicado:           l.Aplicado,
		})
	}
	userOrigen := ""
	if m.UserOrigen != nil {
		userOrigen = m.UserOrigen.Username
	}
	return &dto.MovimientoResponse{
		ID:          m.ID.String(),
		Tipo:        string(m.Tipo),
		Estado:      string(m.Estado),
		Descripcion: m.Descripcion,
		UserOrigen:  userOrigen,
		Lineas:      lineas,
		CreatedAt:   m.CreatedAt.Format(timeLayout),
	}
}
