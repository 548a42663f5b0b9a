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

type ventaFixture struct {
	ventas   *fakeVentaRepo
	inv      *fakeInventarioRepo
	prods    *fakeProductoRepo
	cajas    *fakeCajaRepo
	svc      VentaService
	sucursal uuid.UUID
	producto *model.Producto
	stock    *model.Inventario
}

func newVentaFixture(t *testing.T) *ventaFixture {
	t.Helper()
	ventas := newFakeVentaRepo()
	inv := newFakeInventarioRepo()
	prods := newFakeProductoRepo()
	cajas := newFakeCajaRepo()
	sucursales := newFakeSucursalRepo()
	cajaSvc := NewCajaService(cajas, sucursales, nil)

	f := &ventaFixture{
		ventas:   ventas,
		inv:      inv,
		prods:    prods,
		cajas:    cajas,
		svc:      NewVentaService(ventas, inv, prods, cajaSvc, nil),
		sucursal: sucursales.seed("Central").ID,
	}
	f.producto = prods.seed("Ibuprofeno 400mg", decimal.NewFromFloat(8.00))
	f.stock = inv.seed(f.producto.ID, f.sucursal, 20)
	return f
}

func (f *ventaFixture) abrirCaja(t *testing.T) {
	t.Helper()
	caja := &model.Caja{
		SucursalID:      f.sucursal,
		EfectivoInicial: decimal.NewFromInt(100),
		Estado:          model.CajaAbierta,
	}
	require.NoError(t, f.cajas.Create(context.Background(), caja))
}

func (f *ventaFixture) cajero() model.ActingUser {
	return model.ActingUser{ID: uuid.New(), Username: "cajera1", Rol: model.RolCajero, SucursalID: &f.sucursal}
}

func (f *ventaFixture) supervisor() model.ActingUser {
	return model.ActingUser{ID: uuid.New(), Username: "super1", Rol: model.RolSupervisor, SucursalID: &f.sucursal}
}

func (f *ventaFixture) item(cantidad int) dto.ItemVentaRequest {
	return dto.ItemVentaRequest{
		InventarioID:   f.stock.ID.String(),
		Cantidad:       cantidad,
		PrecioUnitario: decimal.NewFromFloat(8.00),
	}
}

func TestRegistrarVentaEfectivo(t *testing.T) {
	f := newVentaFixture(t)
	f.abrirCaja(t)

	resp, err := f.svc.Registrar(context.Background(), f.cajero(), dto.RegistrarVentaRequest{
		ClienteNombre: "Juan Pérez",
		TipoPago:      "efectivo",
		MontoRecibido: decimal.NewFromInt(50),
		Items:         []dto.ItemVentaRequest{f.item(3)},
	})
	require.NoError(t, err)

	assert.Equal(t, int64(1), resp.NumeroTicket)
	assert.Equal(t, string(model.VentaCompletada), resp.Estado)
	assert.Equal(t, string(model.PedidoPagado), resp.EstadoPedido)
	assert.True(t, resp.Total.Equal(decimal.NewFromInt(24)))
	assert.True(t, resp.Efectivo.Equal(decimal.NewFromInt(24)))
	assert.True(t, resp.Cambio.Equal(decimal.NewFromInt(26)))
	assert.Equal(t, 17, f.stock.Stock)
}

func TestRegistrarVentaConsolidaItems(t *testing.T) {
	f := newVentaFixture(t)
	f.abrirCaja(t)

	// The same inventory row twice in the cart collapses into one line.
	resp, err := f.svc.Registrar(context.Background(), f.cajero(), dto.RegistrarVentaRequest{
		TipoPago:      "efectivo",
		MontoRecibido: decimal.NewFromInt(100),
		Items:         []dto.ItemVentaRequest{f.item(2), f.item(3)},
	})
	require.NoError(t, err)

	require.Len(t, resp.Items, 1)
	assert.Equal(t, 5, resp.Items[0].Cantidad)
	assert.True(t, resp.Total.Equal(decimal.NewFromInt(40)))
	assert.Equal(t, 15, f.stock.Stock)
}

func TestRegistrarVentaPrecioInconsistente(t *testing.T) {
	f := newVentaFixture(t)
	f.abrirCaja(t)

	// Two lines for the same inventory row must agree on the unit price;
	// the cart is rejected instead of silently keeping the first one.
	conOtroPrecio := f.item(1)
	conOtroPrecio.PrecioUnitario = decimal.NewFromFloat(7.50)

	_, err := f.svc.Registrar(context.Background(), f.cajero(), dto.RegistrarVentaRequest{
		TipoPago:      "efectivo",
		MontoRecibido: decimal.NewFromInt(100),
		Items:         []dto.ItemVentaRequest{f.item(2), conOtroPrecio},
	})
	require.Error(t, err)
	assert.ErrorContains(t, err, "precio_unitario inconsistente")
	assert.Equal(t, 20, f.stock.Stock)
}

func TestRegistrarVentaQR(t *testing.T) {
	f := newVentaFixture(t)
	f.abrirCaja(t)

	resp, err := f.svc.Registrar(context.Background(), f.cajero(), dto.RegistrarVentaRequest{
		TipoPago: "qr",
		Items:    []dto.ItemVentaRequest{f.item(2)},
	})
	require.NoError(t, err)

	assert.True(t, resp.QR.Equal(decimal.NewFromInt(16)))
	assert.True(t, resp.Efectivo.IsZero())
	assert.True(t, resp.Cambio.IsZero())
}

func TestRegistrarVentaMixto(t *testing.T) {
	f := newVentaFixture(t)
	f.abrirCaja(t)

	resp, err := f.svc.Registrar(context.Background(), f.cajero(), dto.RegistrarVentaRequest{
		TipoPago:      "mixto",
		QR:            decimal.NewFromInt(10),
		MontoRecibido: decimal.NewFromInt(20),
		Items:         []dto.ItemVentaRequest{f.item(3)}, // total 24
	})
	require.NoError(t, err)

	assert.True(t, resp.QR.Equal(decimal.NewFromInt(10)))
	assert.True(t, resp.Efectivo.Equal(decimal.NewFromInt(14)))
	assert.True(t, resp.Cambio.Equal(decimal.NewFromInt(6)))
}

func TestRegistrarVentaMixtoQRInvalido(t *testing.T) {
	f := newVentaFixture(t)
	f.abrirCaja(t)

	// The QR portion must be strictly between zero and the total.
	_, err := f.svc.Registrar(context.Background(), f.cajero(), dto.RegistrarVentaRequest{
		TipoPago:      "mixto",
		QR:            decimal.NewFromInt(30),
		MontoRecibido: decimal.NewFromInt(30),
		Items:         []dto.ItemVentaRequest{f.item(3)}, // total 24
	})
	assert.ErrorIs(t, err, ErrPagoInvalido)
}

func TestRegistrarVentaPagoInsuficiente(t *testing.T) {
	f := newVentaFixture(t)
	f.abrirCaja(t)

	_, err := f.svc.Registrar(context.Background(), f.cajero(), dto.RegistrarVentaRequest{
		TipoPago:      "efectivo",
		MontoRecibido: decimal.NewFromInt(10),
		Items:         []dto.ItemVentaRequest{f.item(3)}, // total 24
	})
	assert.ErrorIs(t, err, ErrPagoInsuficiente)
	assert.Equal(t, 20, f.stock.Stock)
}

func TestRegistrarVentaSinCajaAbierta(t *testing.T) {
	f := newVentaFixture(t)

	_, err := f.svc.Registrar(context.Background(), f.cajero(), dto.RegistrarVentaRequest{
		TipoPago:      "efectivo",
		MontoRecibido: decimal.NewFromInt(50),
		Items:         []dto.ItemVentaRequest{f.item(1)},
	})
	assert.ErrorIs(t, err, ErrSinCajaAbierta)
}

func TestRegistrarVentaStockInsuficiente(t *testing.T) {
	f := newVentaFixture(t)
	f.abrirCaja(t)

	_, err := f.svc.Registrar(context.Background(), f.cajero(), dto.RegistrarVentaRequest{
		TipoPago:      "efectivo",
		MontoRecibido: decimal.NewFromInt(500),
		Items:         []dto.ItemVentaRequest{f.item(25)},
	})

	var stockErr *InsufficientStockError
	require.ErrorAs(t, err, &stockErr)
	assert.Equal(t, "Ibuprofeno 400mg", stockErr.Producto)
	assert.Equal(t, 20, stockErr.Disponible)
	assert.Equal(t, 25, stockErr.Solicitado)
	assert.Equal(t, 20, f.stock.Stock)
}

func TestRegistrarVentaMesaOcupada(t *testing.T) {
	f := newVentaFixture(t)
	f.abrirCaja(t)
	mesa := f.ventas.seedMesa(4, f.sucursal, model.MesaOcupada)
	mesaID := mesa.ID.String()

	_, err := f.svc.Registrar(context.Background(), f.cajero(), dto.RegistrarVentaRequest{
		TipoPago:      "efectivo",
		MontoRecibido: decimal.NewFromInt(50),
		MesaID:        &mesaID,
		Items:         []dto.ItemVentaRequest{f.item(1)},
	})
	assert.ErrorIs(t, err, ErrMesaOcupada)
}

func TestRegistrarVentaConMesa(t *testing.T) {
	f := newVentaFixture(t)
	f.abrirCaja(t)
	mesa := f.ventas.seedMesa(2, f.sucursal, model.MesaDisponible)
	mesaID := mesa.ID.String()

	resp, err := f.svc.Registrar(context.Background(), f.cajero(), dto.RegistrarVentaRequest{
		TipoPago:      "efectivo",
		MontoRecibido: decimal.NewFromInt(50),
		MesaID:        &mesaID,
		Items:         []dto.ItemVentaRequest{f.item(1)},
	})
	require.NoError(t, err)

	assert.Equal(t, string(model.PedidoPendiente), resp.EstadoPedido)
	assert.Equal(t, model.MesaOcupada, mesa.Estado)
}

func TestAnularVentaRestauraStock(t *testing.T) {
	f := newVentaFixture(t)
	f.abrirCaja(t)

	resp, err := f.svc.Registrar(context.Background(), f.cajero(), dto.RegistrarVentaRequest{
		TipoPago:      "efectivo",
		MontoRecibido: decimal.NewFromInt(50),
		Items:         []dto.ItemVentaRequest{f.item(4)},
	})
	require.NoError(t, err)
	require.Equal(t, 16, f.stock.Stock)

	err = f.svc.Anular(context.Background(), f.supervisor(), uuid.MustParse(resp.ID), "producto vencido")
	require.NoError(t, err)

	assert.Equal(t, 20, f.stock.Stock)
	anulada, err := f.svc.Obtener(context.Background(), uuid.MustParse(resp.ID))
	require.NoError(t, err)
	assert.Equal(t, string(model.VentaAnulada), anulada.Estado)
}

func TestAnularVentaLiberaMesa(t *testing.T) {
	f := newVentaFixture(t)
	f.abrirCaja(t)
	mesa := f.ventas.seedMesa(7, f.sucursal, model.MesaDisponible)
	mesaID := mesa.ID.String()

	resp, err := f.svc.Registrar(context.Background(), f.cajero(), dto.RegistrarVentaRequest{
		TipoPago:      "efectivo",
		MontoRecibido: decimal.NewFromInt(50),
		MesaID:        &mesaID,
		Items:         []dto.ItemVentaRequest{f.item(1)},
	})
	require.NoError(t, err)
	require.Equal(t, model.MesaOcupada, mesa.Estado)

	err = f.svc.Anular(context.Background(), f.supervisor(), uuid.MustParse(resp.ID), "error de cobro")
	require.NoError(t, err)
	assert.Equal(t, model.MesaDisponible, mesa.Estado)
}

func TestAnularVentaCajeroSinPermiso(t *testing.T) {
	f := newVentaFixture(t)
	f.abrirCaja(t)

	resp, err := f.svc.Registrar(context.Background(), f.cajero(), dto.RegistrarVentaRequest{
		TipoPago:      "efectivo",
		MontoRecibido: decimal.NewFromInt(50),
		Items:         []dto.ItemVentaRequest{f.item(1)},
	})
	require.NoError(t, err)

	err = f.svc.Anular(context.Background(), f.cajero(), uuid.MustParse(resp.ID), "me equivoqué")
	assert.ErrorIs(t, err, ErrSinPermiso)
}

func TestAnularVentaDosVeces(t *testing.T) {
	f := newVentaFixture(t)
	f.abrirCaja(t)

	resp, err := f.svc.Registrar(context.Background(), f.cajero(), dto.RegistrarVentaRequest{
		TipoPago:      "efectivo",
		MontoRecibido: decimal.NewFromInt(50),
		Items:         []dto.ItemVentaRequest{f.item(2)},
	})
	require.NoError(t, err)
	id := uuid.MustParse(resp.ID)

	require.NoError(t, f.svc.Anular(context.Background(), f.supervisor(), id, "anulación"))
	err = f.svc.Anular(context.Background(), f.supervisor(), id, "anulación")
	assert.ErrorIs(t, err, ErrVentaAnulada)
	// Stock must not be restored twice.
	assert.Equal(t, 20, f.stock.Stock)
}

func TestActualizarEstadoPedido(t *testing.T) {
	f := newVentaFixture(t)
	f.abrirCaja(t)
	mesa := f.ventas.seedMesa(3, f.sucursal, model.MesaDisponible)
	mesaID := mesa.ID.String()

	resp, err := f.svc.Registrar(context.Background(), f.cajero(), dto.RegistrarVentaRequest{
		TipoPago:      "efectivo",
		MontoRecibido: decimal.NewFromInt(50),
		MesaID:        &mesaID,
		Items:         []dto.ItemVentaRequest{f.item(1)},
	})
	require.NoError(t, err)
	id := uuid.MustParse(resp.ID)

	for _, estado := range []model.PedidoEstado{
		model.PedidoEnCocina, model.PedidoListo, model.PedidoEntregado, model.PedidoPagado,
	} {
		actual, err := f.svc.ActualizarEstadoPedido(context.Background(), id, estado)
		require.NoError(t, err)
		assert.Equal(t, string(estado), actual.EstadoPedido)
	}

	// Paying out the order frees the table.
	assert.Equal(t, model.MesaDisponible, mesa.Estado)
}

func TestActualizarEstadoPedidoSaltoInvalido(t *testing.T) {
	f := newVentaFixture(t)
	f.abrirCaja(t)
	mesa := f.ventas.seedMesa(5, f.sucursal, model.MesaDisponible)
	mesaID := mesa.ID.String()

	resp, err := f.svc.Registrar(context.Background(), f.cajero(), dto.RegistrarVentaRequest{
		TipoPago:      "efectivo",
		MontoRecibido: decimal.NewFromInt(50),
		MesaID:        &mesaID,
		Items:         []dto.ItemVentaRequest{f.item(1)},
	})
	require.NoError(t, err)

	// pendiente → listo skips en_cocina.
	_, err = f.svc.ActualizarEstadoPedido(context.Background(), uuid.MustParse(resp.ID), model.PedidoListo)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "transición de pedido inválida")
}
