package service

import (
	"context"
	"testing"

	"github.com/fydhel24/proyecto-ventas-sub000/internal/dto"
	"github.com/fydhel24/proyecto-ventas-sub000/internal/model"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type cajaFixture struct {
	cajas      *fakeCajaRepo
	sucursales *fakeSucursalRepo
	svc        CajaService
	central    *model.Sucursal
	norte      *model.Sucursal
}

func newCajaFixture(t *testing.T) *cajaFixture {
	t.Helper()
	cajas := newFakeCajaRepo()
	sucursales := newFakeSucursalRepo()
	return &cajaFixture{
		cajas:      cajas,
		sucursales: sucursales,
		svc:        NewCajaService(cajas, sucursales, nil),
		central:    sucursales.seed("Central"),
		norte:      sucursales.seed("Norte"),
	}
}

func cajero(sucursalID uuid.UUID) model.ActingUser {
	return model.ActingUser{ID: uuid.New(), Username: "cajera1", Rol: model.RolCajero, SucursalID: &sucursalID}
}

func admin() model.ActingUser {
	return model.ActingUser{ID: uuid.New(), Username: "admin", Rol: model.RolAdministrador}
}

func TestAbrirCaja(t *testing.T) {
	f := newCajaFixture(t)
	actor := cajero(f.central.ID)

	resp, err := f.svc.Abrir(context.Background(), actor, dto.AbrirCajaRequest{
		SucursalID:      f.central.ID.String(),
		EfectivoInicial: decimal.NewFromInt(200),
		QRInicial:       decimal.NewFromInt(50),
	})
	require.NoError(t, err)

	assert.Equal(t, string(model.CajaAbierta), resp.Estado)
	assert.True(t, resp.MontoInicial.Equal(decimal.NewFromInt(250)))
	assert.Nil(t, resp.FechaCierre)
}

func TestAbrirCajaDuplicada(t *testing.T) {
	f := newCajaFixture(t)
	actor := cajero(f.central.ID)
	req := dto.AbrirCajaRequest{SucursalID: f.central.ID.String(), EfectivoInicial: decimal.NewFromInt(100)}

	_, err := f.svc.Abrir(context.Background(), actor, req)
	require.NoError(t, err)

	_, err = f.svc.Abrir(context.Background(), actor, req)
	assert.ErrorIs(t, err, ErrCajaDuplicada)
}

func TestAbrirCajaOtraSucursal(t *testing.T) {
	f := newCajaFixture(t)
	actor := cajero(f.norte.ID)

	_, err := f.svc.Abrir(context.Background(), actor, dto.AbrirCajaRequest{
		SucursalID:      f.central.ID.String(),
		EfectivoInicial: decimal.NewFromInt(100),
	})
	assert.ErrorIs(t, err, ErrSinPermiso)
}

func TestCerrarCajaCalculaDiferencia(t *testing.T) {
	f := newCajaFixture(t)
	actor := cajero(f.central.ID)

	abierta, err := f.svc.Abrir(context.Background(), actor, dto.AbrirCajaRequest{
		SucursalID:      f.central.ID.String(),
		EfectivoInicial: decimal.NewFromInt(200),
	})
	require.NoError(t, err)

	// Sales during the session: 350 cash, 120 QR. Expected cash at close is
	// 200 + 350 = 550; the cashier declares 540, so the variance is -10.
	f.cajas.ventasEfectivo = decimal.NewFromInt(350)
	f.cajas.ventasQR = decimal.NewFromInt(120)

	resp, err := f.svc.Cerrar(context.Background(), actor, dto.CerrarCajaRequest{
		CajaID:     abierta.ID,
		MontoFinal: decimal.NewFromInt(540),
	})
	require.NoError(t, err)

	assert.Equal(t, string(model.CajaCerrada), resp.Estado)
	require.NotNil(t, resp.TotalEfectivo)
	assert.True(t, resp.TotalEfectivo.Equal(decimal.NewFromInt(350)))
	require.NotNil(t, resp.TotalQR)
	assert.True(t, resp.TotalQR.Equal(decimal.NewFromInt(120)))
	require.NotNil(t, resp.Diferencia)
	assert.True(t, resp.Diferencia.Equal(decimal.NewFromInt(-10)))
	assert.NotNil(t, resp.FechaCierre)
}

func TestCerrarCajaDosVeces(t *testing.T) {
	f := newCajaFixture(t)
	actor := cajero(f.central.ID)

	abierta, err := f.svc.Abrir(context.Background(), actor, dto.AbrirCajaRequest{
		SucursalID:      f.central.ID.String(),
		EfectivoInicial: decimal.NewFromInt(100),
	})
	require.NoError(t, err)

	req := dto.CerrarCajaRequest{CajaID: abierta.ID, MontoFinal: decimal.NewFromInt(100)}
	_, err = f.svc.Cerrar(context.Background(), actor, req)
	require.NoError(t, err)

	_, err = f.svc.Cerrar(context.Background(), actor, req)
	assert.ErrorIs(t, err, ErrCajaCerrada)
}

// lecturaAbiertaCajaRepo mimics a caller whose initial read happened before
// another close committed: FindByID always reports the session as open,
// while the locked read sees the real state.
type lecturaAbiertaCajaRepo struct {
	*fakeCajaRepo
}

func (r *lecturaAbiertaCajaRepo) FindByID(ctx context.Context, id uuid.UUID) (*model.Caja, error) {
	c, err := r.fakeCajaRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	copia := *c
	copia.FechaCierre = nil
	copia.Estado = model.CajaAbierta
	return &copia, nil
}

func TestCerrarCajaLecturaDesactualizada(t *testing.T) {
	f := newCajaFixture(t)
	actor := cajero(f.central.ID)

	abierta, err := f.svc.Abrir(context.Background(), actor, dto.AbrirCajaRequest{
		SucursalID:      f.central.ID.String(),
		EfectivoInicial: decimal.NewFromInt(100),
	})
	require.NoError(t, err)

	// Both closes read the session as open; the locked re-check must reject
	// the second one.
	svc := NewCajaService(&lecturaAbiertaCajaRepo{f.cajas}, f.sucursales, nil)
	req := dto.CerrarCajaRequest{CajaID: abierta.ID, MontoFinal: decimal.NewFromInt(100)}

	_, err = svc.Cerrar(context.Background(), actor, req)
	require.NoError(t, err)

	_, err = svc.Cerrar(context.Background(), actor, req)
	assert.ErrorIs(t, err, ErrCajaCerrada)

	cerrada, err := f.cajas.FindByID(context.Background(), uuid.MustParse(abierta.ID))
	require.NoError(t, err)
	assert.Equal(t, model.CajaCerrada, cerrada.Estado)
	require.NotNil(t, cerrada.FechaCierre)
}

func TestCerrarCajaOtraSucursal(t *testing.T) {
	f := newCajaFixture(t)

	abierta, err := f.svc.Abrir(context.Background(), cajero(f.central.ID), dto.AbrirCajaRequest{
		SucursalID:      f.central.ID.String(),
		EfectivoInicial: decimal.NewFromInt(100),
	})
	require.NoError(t, err)

	_, err = f.svc.Cerrar(context.Background(), cajero(f.norte.ID), dto.CerrarCajaRequest{
		CajaID:     abierta.ID,
		MontoFinal: decimal.NewFromInt(100),
	})
	assert.ErrorIs(t, err, ErrSinPermiso)
}

func TestAbrirTodas(t *testing.T) {
	f := newCajaFixture(t)

	// Norte already has an open session: it must be skipped, not fail the batch.
	_, err := f.svc.Abrir(context.Background(), admin(), dto.AbrirCajaRequest{
		SucursalID:      f.norte.ID.String(),
		EfectivoInicial: decimal.NewFromInt(100),
	})
	require.NoError(t, err)

	resp, err := f.svc.AbrirTodas(context.Background(), admin(), dto.AbrirCajasRequest{
		EfectivoInicial: decimal.NewFromInt(150),
	})
	require.NoError(t, err)
	assert.Equal(t, 1, resp.Procesadas)
	assert.Equal(t, 1, resp.Omitidas)
}

func TestAbrirTodasSoloAdministrador(t *testing.T) {
	f := newCajaFixture(t)

	_, err := f.svc.AbrirTodas(context.Background(), cajero(f.central.ID), dto.AbrirCajasRequest{})
	assert.ErrorIs(t, err, ErrSinPermiso)
}

func TestCerrarTodas(t *testing.T) {
	f := newCajaFixture(t)

	_, err := f.svc.Abrir(context.Background(), admin(), dto.AbrirCajaRequest{
		SucursalID:      f.central.ID.String(),
		EfectivoInicial: decimal.NewFromInt(100),
	})
	require.NoError(t, err)

	resp, err := f.svc.CerrarTodas(context.Background(), admin())
	require.NoError(t, err)
	assert.Equal(t, 1, resp.Procesadas)
	assert.Equal(t, 1, resp.Omitidas)

	// Auto-close takes the expected figure as declared: zero variance.
	for _, c := range f.cajas.cajas {
		require.NotNil(t, c.Diferencia)
		assert.True(t, c.Diferencia.IsZero())
	}
}

func TestFindAbiertaSinCaja(t *testing.T) {
	f := newCajaFixture(t)

	_, err := f.svc.FindAbierta(context.Background(), f.central.ID)
	assert.ErrorIs(t, err, ErrSinCajaAbierta)
}
