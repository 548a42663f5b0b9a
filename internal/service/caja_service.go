package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/fydhel24/proyecto-ventas-sub000/internal/dto"
	"github.com/fydhel24/proyecto-ventas-sub000/internal/model"
	"github.com/fydhel24/proyecto-ventas-sub000/internal/repository"
	"github.com/fydhel24/proyecto-ventas-sub000/internal/worker"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// CajaService manages one cash session per branch. Closing never trusts
// client figures: expected totals are re-derived from the sales recorded
// between opening and closing.
type CajaService interface {
	Abrir(ctx context.Context, actor model.ActingUser, req dto.AbrirCajaRequest) (*dto.CajaResponse, error)
	Cerrar(ctx context.Context, actor model.ActingUser, req dto.CerrarCajaRequest) (*dto.CajaResponse, error)
	// AbrirTodas / CerrarTodas batch over every active branch with
	// skip-and-count semantics: branches already in the target state are
	// counted as omitidas, never errors.
	AbrirTodas(ctx context.Context, actor model.ActingUser, req dto.AbrirCajasRequest) (*dto.BulkCajaResponse, error)
	CerrarTodas(ctx context.Context, actor model.ActingUser) (*dto.BulkCajaResponse, error)
	Obtener(ctx context.Context, id uuid.UUID) (*dto.CajaResponse, error)
	Listar(ctx context.Context, sucursalID string, page, limit int) (*dto.CajaListResponse, error)
	// FindAbierta is used by VentaService to require an open session.
	FindAbierta(ctx context.Context, sucursalID uuid.UUID) (*model.Caja, error)
}

type cajaService struct {
	repo         repository.CajaRepository
	sucursalRepo repository.SucursalRepository
	dispatcher   *worker.Dispatcher
}

func NewCajaService(repo repository.CajaRepository, sucursalRepo repository.SucursalRepository, dispatcher *worker.Dispatcher) CajaService {
	return &cajaService{repo: repo, sucursalRepo: sucursalRepo, dispatcher: dispatcher}
}

// ── Abrir ─────────────────────────────────────────────────────────────────────

func (s *cajaService) Abrir(ctx context.Context, actor model.ActingUser, req dto.AbrirCajaRequest) (*dto.CajaResponse, error) {
	sucursalID, err := uuid.Parse(req.SucursalID)
	if err != nil {
		return nil, fmt.Errorf("sucursal_id inválido: %w", err)
	}
	if !actor.EsAdministrador() {
		if actor.SucursalID == nil {
			return nil, ErrSinSucursal
		}
		if *actor.SucursalID != sucursalID {
			return nil, ErrSinPermiso
		}
	}

	caja, err := s.abrirCaja(ctx, actor.ID, sucursalID, req.EfectivoInicial, req.QRInicial)
	if err != nil {
		return nil, err
	}
	return cajaToResponse(caja), nil
}

func (s *cajaService) abrirCaja(ctx context.Context, usuarioID, sucursalID uuid.UUID, efectivo, qr decimal.Decimal) (*model.Caja, error) {
	if _, err := s.repo.FindAbiertaPorSucursal(ctx, sucursalID); err == nil {
		return nil, ErrCajaDuplicada
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	caja := &model.Caja{
		SucursalID:      sucursalID,
		FechaApertura:   time.Now(),
		UserAperturaID:  usuarioID,
		EfectivoInicial: efectivo,
		QRInicial:       qr,
		MontoInicial:    efectivo.Add(qr),
		Estado:          model.CajaAbierta,
	}
	// Two racing opens both pass the check above; the partial unique index
	// on (sucursal_id) WHERE fecha_cierre IS NULL rejects the second insert.
	if err := s.repo.Create(ctx, caja); err != nil {
		return nil, ErrCajaDuplicada
	}
	return caja, nil
}

// ── Cerrar ────────────────────────────────────────────────────────────────────

func (s *cajaService) Cerrar(ctx context.Context, actor model.ActingUser, req dto.CerrarCajaRequest) (*dto.CajaResponse, error) {
	cajaID, err := uuid.Parse(req.CajaID)
	if err != nil {
		return nil, fmt.Errorf("caja_id inválido: %w", err)
	}
	caja, err := s.repo.FindByID(ctx, cajaID)
	if err != nil {
		return nil, err
	}
	if !actor.EsAdministrador() {
		if actor.SucursalID == nil || *actor.SucursalID != caja.SucursalID {
			return nil, ErrSinPermiso
		}
	}

	if _, err := s.cerrarCaja(ctx, actor.ID, cajaID, &req.MontoFinal); err != nil {
		return nil, err
	}
	return s.Obtener(ctx, cajaID)
}

// cerrarCaja recomputes the session totals from the sales ledger and stamps
// the closing figures. The open check and the close run under a row lock in
// one transaction, so of two concurrent closes only the first one commits
// and the second fails with ErrCajaCerrada. declarado == nil means
// auto-close: the expected figure is taken as declared, so the variance is
// zero.
func (s *cajaService) cerrarCaja(ctx context.Context, usuarioID, cajaID uuid.UUID, declarado *decimal.Decimal) (*model.Caja, error) {
	var (
		caja       *model.Caja
		esperado   decimal.Decimal
		montoFinal decimal.Decimal
		diferencia decimal.Decimal
	)
	txErr := runTx(ctx, s.repo.DB(), func(tx *gorm.DB) error {
		c, err := s.repo.LockByIDTx(tx, cajaID)
		if err != nil {
			return err
		}
		if c.FechaCierre != nil || c.Estado == model.CajaCerrada {
			return ErrCajaCerrada
		}

		ahora := time.Now()
		efectivo, qr, err := s.repo.SumVentasEnVentana(ctx, c.SucursalID, c.FechaApertura, ahora)
		if err != nil {
			return err
		}

		esperado = c.EfectivoInicial.Add(efectivo)
		montoFinal = esperado
		if declarado != nil {
			montoFinal = *declarado
		}
		diferencia = montoFinal.Sub(esperado)

		c.TotalEfectivo = &efectivo
		c.TotalQR = &qr
		c.MontoFinal = &montoFinal
		c.Diferencia = &diferencia
		c.FechaCierre = &ahora
		c.UserCierreID = &usuarioID
		c.Estado = model.CajaCerrada
		caja = c
		return s.repo.UpdateTx(tx, c)
	})
	if txErr != nil {
		return nil, txErr
	}

	// Alert on any variance — best-effort, never blocks the close.
	if s.dispatcher != nil && !diferencia.IsZero() {
		_ = s.dispatcher.EnqueueAlerta(ctx, worker.AlertaCajaPayload{
			CajaID:     caja.ID.String(),
			SucursalID: caja.SucursalID.String(),
			Esperado:   esperado.StringFixed(2),
			Declarado:  montoFinal.StringFixed(2),
			Diferencia: diferencia.StringFixed(2),
		})
	}
	return caja, nil
}

// ── AbrirTodas / CerrarTodas ──────────────────────────────────────────────────

func (s *cajaService) AbrirTodas(ctx context.Context, actor model.ActingUser, req dto.AbrirCajasRequest) (*dto.BulkCajaResponse, error) {
	if !actor.EsAdministrador() {
		return nil, ErrSinPermiso
	}
	sucursales, err := s.sucursalRepo.ListActivas(ctx)
	if err != nil {
		return nil, err
	}

	resp := &dto.BulkCajaResponse{}
	for _, suc := range sucursales {
		if _, err := s.abrirCaja(ctx, actor.ID, suc.ID, req.EfectivoInicial, req.QRInicial); err != nil {
			if errors.Is(err, ErrCajaDuplicada) {
				resp.Omitidas++
				continue
			}
			return nil, err
		}
		resp.Procesadas++
	}
	return resp, nil
}

func (s *cajaService) CerrarTodas(ctx context.Context, actor model.ActingUser) (*dto.BulkCajaResponse, error) {
	if !actor.EsAdministrador() {
		return nil, ErrSinPermiso
	}
	sucursales, err := s.sucursalRepo.ListActivas(ctx)
	if err != nil {
		return nil, err
	}

	resp := &dto.BulkCajaResponse{}
	for _, suc := range sucursales {
		caja, err := s.repo.FindAbiertaPorSucursal(ctx, suc.ID)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				resp.Omitidas++
				continue
			}
			return nil, err
		}
		if _, err := s.cerrarCaja(ctx, actor.ID, caja.ID, nil); err != nil {
			return nil, err
		}
		resp.Procesadas++
	}
	return resp, nil
}

// ── Queries ───────────────────────────────────────────────────────────────────

func (s *cajaService) Obtener(ctx context.Context, id uuid.UUID) (*dto.CajaResponse, error) {
	caja, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	return cajaToResponse(caja), nil
}

func (s *cajaService) Listar(ctx context.Context, sucursalID string, page, limit int) (*dto.CajaListResponse, error) {
	if page < 1 {
		page = 1
	}
	if limit < 1 {
		limit = 50
	}
	cajas, total, err := s.repo.List(ctx, sucursalID, page, limit)
	if err != nil {
		return nil, err
	}
	data := make([]dto.CajaResponse, 0, len(cajas))
	for i := range cajas {
		data = append(data, *cajaToResponse(&cajas[i]))
	}
	return &dto.CajaListResponse{Data: data, Total: total, Page: page, Limit: limit}, nil
}

func (s *cajaService) FindAbierta(ctx context.Context, sucursalID uuid.UUID) (*model.Caja, error) {
	caja, err := s.repo.FindAbiertaPorSucursal(ctx, sucursalID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrSinCajaAbierta
		}
		return nil, err
	}
	return caja, nil
}

func cajaToResponse(c *model.Caja) *dto.CajaResponse {
	resp := &dto.CajaResponse{
		ID:              c.ID.String(),
		SucursalID:      c.SucursalID.String(),
		Estado:          string(c.Estado),
		EfectivoInicial: c.EfectivoInicial,
		QRInicial:       c.QRInicial,
		MontoInicial:    c.MontoInicial,
		TotalEfectivo:   c.TotalEfectivo,
		TotalQR:         c.TotalQR,
		MontoFinal:      c.MontoFinal,
		Diferencia:      c.Diferencia,
		FechaApertura:   c.FechaApertura.Format(timeLayout),
	}
	if c.Sucursal != nil {
		resp.Sucursal = c.Sucursal.Nombre
	}
	if c.FechaCierre != nil {
		t := c.FechaCierre.Format(timeLayout)
		resp.FechaCierre = &t
	}
	return resp
}
