package service

// In-memory repository fakes for unit tests. Their DB() returns nil, so
// runTx executes the closure without a real transaction and every mutation
// lands directly in the maps below.

import (
	"context"
	"errors"
	"time"

	"github.com/fydhel24/proyecto-ventas-sub000/internal/dto"
	"github.com/fydhel24/proyecto-ventas-sub000/internal/model"
	"github.com/fydhel24/proyecto-ventas-sub000/internal/repository"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

var (
	_ repository.InventarioRepository = (*fakeInventarioRepo)(nil)
	_ repository.MovimientoRepository = (*fakeMovimientoRepo)(nil)
	_ repository.CajaRepository       = (*fakeCajaRepo)(nil)
	_ repository.SucursalRepository   = (*fakeSucursalRepo)(nil)
	_ repository.VentaRepository      = (*fakeVentaRepo)(nil)
	_ repository.ProductoRepository   = (*fakeProductoRepo)(nil)
	_ repository.ReservaRepository    = (*fakeReservaRepo)(nil)
	_ repository.CompraRepository     = (*fakeCompraRepo)(nil)
	_ repository.ProveedorRepository  = (*fakeProveedorRepo)(nil)
	_ repository.UsuarioRepository    = (*fakeUsuarioRepo)(nil)
)

// ── Inventario ────────────────────────────────────────────────────────────────

type fakeInventarioRepo struct {
	rows   map[uuid.UUID]*model.Inventario
	lineas []model.MovimientoInventario
}

func newFakeInventarioRepo() *fakeInventarioRepo {
	return &fakeInventarioRepo{rows: make(map[uuid.UUID]*model.Inventario)}
}

func (f *fakeInventarioRepo) DB() *gorm.DB { return nil }

func (f *fakeInventarioRepo) seed(productoID, sucursalID uuid.UUID, stock int) *model.Inventario {
	inv := &model.Inventario{ID: uuid.New(), ProductoID: productoID, SucursalID: sucursalID, Stock: stock}
	f.rows[inv.ID] = inv
	return inv
}

func (f *fakeInventarioRepo) buscar(productoID, sucursalID uuid.UUID) *model.Inventario {
	for _, inv := range f.rows {
		if inv.ProductoID == productoID && inv.SucursalID == sucursalID {
			return inv
		}
	}
	return nil
}

func (f *fakeInventarioRepo) GetOrCreateTx(tx *gorm.DB, productoID, sucursalID uuid.UUID) (*model.Inventario, error) {
	inv := f.buscar(productoID, sucursalID)
	if inv == nil {
		inv = f.seed(productoID, sucursalID, 0)
	}
	// Hand back a copy, like a real SELECT: later UpdateStockTx calls must
	// not mutate the snapshot the service is still reading from.
	copia := *inv
	return &copia, nil
}

func (f *fakeInventarioRepo) LockByIDTx(tx *gorm.DB, id uuid.UUID) (*model.Inventario, error) {
	inv, ok := f.rows[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return inv, nil
}

func (f *fakeInventarioRepo) UpdateStockTx(tx *gorm.DB, id uuid.UUID, stock int) error {
	inv, ok := f.rows[id]
	if !ok {
		return gorm.ErrRecordNotFound
	}
	inv.Stock = stock
	return nil
}

func (f *fakeInventarioRepo) CreateLineaTx(tx *gorm.DB, l *model.MovimientoInventario) error {
	l.ID = uuid.New()
	l.CreatedAt = time.Now()
	f.lineas = append(f.lineas, *l)
	return nil
}

func (f *fakeInventarioRepo) FindByID(ctx context.Context, id uuid.UUID) (*model.Inventario, error) {
	return f.LockByIDTx(nil, id)
}

func (f *fakeInventarioRepo) FindByProductoSucursal(ctx context.Context, productoID, sucursalID uuid.UUID) (*model.Inventario, error) {
	if inv := f.buscar(productoID, sucursalID); inv != nil {
		return inv, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (f *fakeInventarioRepo) List(ctx context.Context, filter dto.InventarioFilter) ([]model.Inventario, int64, error) {
	out := make([]model.Inventario, 0, len(f.rows))
	for _, inv := range f.rows {
		out = append(out, *inv)
	}
	return out, int64(len(out)), nil
}

func (f *fakeInventarioRepo) ListLineas(ctx context.Context, inventarioID uuid.UUID) ([]model.MovimientoInventario, error) {
	var out []model.MovimientoInventario
	for _, l := range f.lineas {
		if l.InventarioID == inventarioID {
			out = append(out, l)
		}
	}
	return out, nil
}

func (f *fakeInventarioRepo) lineasDe(movimientoID uuid.UUID) []model.MovimientoInventario {
	var out []model.MovimientoInventario
	for _, l := range f.lineas {
		if l.MovimientoID == movimientoID {
			out = append(out, l)
		}
	}
	return out
}

// ── Movimiento ────────────────────────────────────────────────────────────────

type fakeMovimientoRepo struct {
	inv      *fakeInventarioRepo
	usuarios map[uuid.UUID]*model.Usuario
	movs     map[uuid.UUID]*model.Movimiento
}

func newFakeMovimientoRepo(inv *fakeInventarioRepo) *fakeMovimientoRepo {
	return &fakeMovimientoRepo{
		inv:      inv,
		usuarios: make(map[uuid.UUID]*model.Usuario),
		movs:     make(map[uuid.UUID]*model.Movimiento),
	}
}

func (f *fakeMovimientoRepo) CreateTx(tx *gorm.DB, m *model.Movimiento) error {
	m.ID = uuid.New()
	m.CreatedAt = time.Now()
	stored := *m
	f.movs[m.ID] = &stored
	return nil
}

// FindByID mirrors the Preloads of the real repository: lines with their
// inventory rows, plus the requesting user.
func (f *fakeMovimientoRepo) FindByID(ctx context.Context, id uuid.UUID) (*model.Movimiento, error) {
	stored, ok := f.movs[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	m := *stored
	m.Lineas = f.inv.lineasDe(id)
	for i := range m.Lineas {
		m.Lineas[i].Inventario = f.inv.rows[m.Lineas[i].InventarioID]
	}
	m.UserOrigen = f.usuarios[m.UserOrigenID]
	return &m, nil
}

func (f *fakeMovimientoRepo) LockByIDTx(tx *gorm.DB, id uuid.UUID) (*model.Movimiento, error) {
	stored, ok := f.movs[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return stored, nil
}

func (f *fakeMovimientoRepo) ConfirmarTx(tx *gorm.DB, id uuid.UUID, userDestinoID uuid.UUID) error {
	stored, ok := f.movs[id]
	if !ok {
		return gorm.ErrRecordNotFound
	}
	stored.Estado = model.EstadoConfirmado
	stored.UserDestinoID = &userDestinoID
	return nil
}

func (f *fakeMovimientoRepo) List(ctx context.Context, filter dto.MovimientoFilter) ([]model.Movimiento, int64, error) {
	out := make([]model.Movimiento, 0, len(f.movs))
	for _, m := range f.movs {
		if filter.Tipo != "" && string(m.Tipo) != filter.Tipo {
			continue
		}
		if filter.Estado != "" && string(m.Estado) != filter.Estado {
			continue
		}
		out = append(out, *m)
	}
	return out, int64(len(out)), nil
}

// ── Caja ──────────────────────────────────────────────────────────────────────

type fakeCajaRepo struct {
	cajas map[uuid.UUID]*model.Caja
	// Figures returned by SumVentasEnVentana, settable per test.
	ventasEfectivo decimal.Decimal
	ventasQR       decimal.Decimal
}

func newFakeCajaRepo() *fakeCajaRepo {
	return &fakeCajaRepo{cajas: make(map[uuid.UUID]*model.Caja)}
}

func (f *fakeCajaRepo) Create(ctx context.Context, c *model.Caja) error {
	// The partial unique index on (sucursal_id) WHERE fecha_cierre IS NULL.
	for _, existente := range f.cajas {
		if existente.SucursalID == c.SucursalID && existente.FechaCierre == nil {
			return errors.New("duplicate key value violates unique constraint")
		}
	}
	c.ID = uuid.New()
	c.CreatedAt = time.Now()
	f.cajas[c.ID] = c
	return nil
}

func (f *fakeCajaRepo) FindAbiertaPorSucursal(ctx context.Context, sucursalID uuid.UUID) (*model.Caja, error) {
	for _, c := range f.cajas {
		if c.SucursalID == sucursalID && c.FechaCierre == nil {
			return c, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (f *fakeCajaRepo) FindByID(ctx context.Context, id uuid.UUID) (*model.Caja, error) {
	c, ok := f.cajas[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return c, nil
}

func (f *fakeCajaRepo) LockByIDTx(tx *gorm.DB, id uuid.UUID) (*model.Caja, error) {
	return f.FindByID(context.Background(), id)
}

func (f *fakeCajaRepo) UpdateTx(tx *gorm.DB, c *model.Caja) error {
	f.cajas[c.ID] = c
	return nil
}

func (f *fakeCajaRepo) DB() *gorm.DB { return nil }

func (f *fakeCajaRepo) List(ctx context.Context, sucursalID string, page, limit int) ([]model.Caja, int64, error) {
	out := make([]model.Caja, 0, len(f.cajas))
	for _, c := range f.cajas {
		if sucursalID != "" && c.SucursalID.String() != sucursalID {
			continue
		}
		out = append(out, *c)
	}
	return out, int64(len(out)), nil
}

func (f *fakeCajaRepo) SumVentasEnVentana(ctx context.Context, sucursalID uuid.UUID, desde, hasta time.Time) (decimal.Decimal, decimal.Decimal, error) {
	return f.ventasEfectivo, f.ventasQR, nil
}

// ── Sucursal ──────────────────────────────────────────────────────────────────

type fakeSucursalRepo struct {
	sucursales map[uuid.UUID]*model.Sucursal
}

func newFakeSucursalRepo() *fakeSucursalRepo {
	return &fakeSucursalRepo{sucursales: make(map[uuid.UUID]*model.Sucursal)}
}

func (f *fakeSucursalRepo) seed(nombre string) *model.Sucursal {
	s := &model.Sucursal{ID: uuid.New(), Nombre: nombre, Activo: true}
	f.sucursales[s.ID] = s
	return s
}

func (f *fakeSucursalRepo) Create(ctx context.Context, s *model.Sucursal) error {
	s.ID = uuid.New()
	f.sucursales[s.ID] = s
	return nil
}

func (f *fakeSucursalRepo) FindByID(ctx context.Context, id uuid.UUID) (*model.Sucursal, error) {
	s, ok := f.sucursales[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return s, nil
}

func (f *fakeSucursalRepo) ListActivas(ctx context.Context) ([]model.Sucursal, error) {
	var out []model.Sucursal
	for _, s := range f.sucursales {
		if s.Activo {
			out = append(out, *s)
		}
	}
	return out, nil
}

func (f *fakeSucursalRepo) ListAll(ctx context.Context) ([]model.Sucursal, error) {
	var out []model.Sucursal
	for _, s := range f.sucursales {
		out = append(out, *s)
	}
	return out, nil
}

func (f *fakeSucursalRepo) Update(ctx context.Context, s *model.Sucursal) error {
	f.sucursales[s.ID] = s
	return nil
}

func (f *fakeSucursalRepo) SoftDelete(ctx context.Context, id uuid.UUID) error {
	s, ok := f.sucursales[id]
	if !ok {
		return gorm.ErrRecordNotFound
	}
	s.Activo = false
	return nil
}

// ── Venta ─────────────────────────────────────────────────────────────────────

type fakeVentaRepo struct {
	ventas map[uuid.UUID]*model.Venta
	mesas  map[uuid.UUID]*model.Mesa
	ticket int64
}

func newFakeVentaRepo() *fakeVentaRepo {
	return &fakeVentaRepo{
		ventas: make(map[uuid.UUID]*model.Venta),
		mesas:  make(map[uuid.UUID]*model.Mesa),
	}
}

func (f *fakeVentaRepo) DB() *gorm.DB { return nil }

func (f *fakeVentaRepo) seedMesa(numero int, sucursalID uuid.UUID, estado model.MesaEstado) *model.Mesa {
	m := &model.Mesa{ID: uuid.New(), Numero: numero, SucursalID: sucursalID, Estado: estado}
	f.mesas[m.ID] = m
	return m
}

func (f *fakeVentaRepo) CreateTx(tx *gorm.DB, v *model.Venta) error {
	v.ID = uuid.New()
	v.CreatedAt = time.Now()
	for i := range v.Detalles {
		v.Detalles[i].ID = uuid.New()
		v.Detalles[i].VentaID = v.ID
	}
	f.ventas[v.ID] = v
	return nil
}

func (f *fakeVentaRepo) FindByID(ctx context.Context, id uuid.UUID) (*model.Venta, error) {
	v, ok := f.ventas[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return v, nil
}

func (f *fakeVentaRepo) LockByIDTx(tx *gorm.DB, id uuid.UUID) (*model.Venta, error) {
	return f.FindByID(context.Background(), id)
}

func (f *fakeVentaRepo) UpdateEstadoTx(tx *gorm.DB, id uuid.UUID, estado model.VentaEstado) error {
	v, ok := f.ventas[id]
	if !ok {
		return gorm.ErrRecordNotFound
	}
	v.Estado = estado
	return nil
}

func (f *fakeVentaRepo) UpdateEstadoPedidoTx(tx *gorm.DB, id uuid.UUID, estado model.PedidoEstado) error {
	v, ok := f.ventas[id]
	if !ok {
		return gorm.ErrRecordNotFound
	}
	v.EstadoPedido = estado
	return nil
}

func (f *fakeVentaRepo) NextTicketNumber(ctx context.Context, tx *gorm.DB) (int64, error) {
	f.ticket++
	return f.ticket, nil
}

func (f *fakeVentaRepo) List(ctx context.Context, filter dto.VentaFilter) ([]model.Venta, int64, error) {
	out := make([]model.Venta, 0, len(f.ventas))
	for _, v := range f.ventas {
		if filter.Estado != "" && filter.Estado != "all" && string(v.Estado) != filter.Estado {
			continue
		}
		if filter.SucursalID != "" && v.SucursalID.String() != filter.SucursalID {
			continue
		}
		out = append(out, *v)
	}
	return out, int64(len(out)), nil
}

func (f *fakeVentaRepo) FindMesaTx(tx *gorm.DB, id uuid.UUID) (*model.Mesa, error) {
	m, ok := f.mesas[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return m, nil
}

func (f *fakeVentaRepo) UpdateMesaEstadoTx(tx *gorm.DB, id uuid.UUID, estado model.MesaEstado) error {
	m, ok := f.mesas[id]
	if !ok {
		return gorm.ErrRecordNotFound
	}
	m.Estado = estado
	return nil
}

// ── Producto ──────────────────────────────────────────────────────────────────

type fakeProductoRepo struct {
	productos map[uuid.UUID]*model.Producto
}

func newFakeProductoRepo() *fakeProductoRepo {
	return &fakeProductoRepo{productos: make(map[uuid.UUID]*model.Producto)}
}

func (f *fakeProductoRepo) seed(nombre string, precioVenta decimal.Decimal) *model.Producto {
	p := &model.Producto{ID: uuid.New(), Nombre: nombre, Marca: "Generica", Categoria: "general", PrecioVenta: precioVenta, Activo: true}
	f.productos[p.ID] = p
	return p
}

func (f *fakeProductoRepo) Create(ctx context.Context, p *model.Producto) error {
	p.ID = uuid.New()
	f.productos[p.ID] = p
	return nil
}

func (f *fakeProductoRepo) FindByID(ctx context.Context, id uuid.UUID) (*model.Producto, error) {
	p, ok := f.productos[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return p, nil
}

func (f *fakeProductoRepo) List(ctx context.Context, filter dto.ProductoFilter) ([]model.Producto, int64, error) {
	var out []model.Producto
	for _, p := range f.productos {
		switch filter.Activo {
		case "all":
		case "false":
			if p.Activo {
				continue
			}
		default:
			if !p.Activo {
				continue
			}
		}
		out = append(out, *p)
	}
	return out, int64(len(out)), nil
}

func (f *fakeProductoRepo) Update(ctx context.Context, p *model.Producto) error {
	f.productos[p.ID] = p
	return nil
}

func (f *fakeProductoRepo) SoftDelete(ctx context.Context, id uuid.UUID) error {
	p, ok := f.productos[id]
	if !ok {
		return gorm.ErrRecordNotFound
	}
	p.Activo = false
	return nil
}

func (f *fakeProductoRepo) Reactivar(ctx context.Context, id uuid.UUID) error {
	p, ok := f.productos[id]
	if !ok {
		return gorm.ErrRecordNotFound
	}
	p.Activo = true
	return nil
}

func (f *fakeProductoRepo) UpdatePreciosTx(tx *gorm.DB, id uuid.UUID, precioCompra, precioVenta decimal.Decimal) error {
	p, ok := f.productos[id]
	if !ok {
		return gorm.ErrRecordNotFound
	}
	p.PrecioCompra = precioCompra
	p.PrecioVenta = precioVenta
	return nil
}

// ── Reserva ───────────────────────────────────────────────────────────────────

type fakeReservaRepo struct {
	reservas map[uuid.UUID]*model.Reserva
}

func newFakeReservaRepo() *fakeReservaRepo {
	return &fakeReservaRepo{reservas: make(map[uuid.UUID]*model.Reserva)}
}

func (f *fakeReservaRepo) DB() *gorm.DB { return nil }

func (f *fakeReservaRepo) Create(ctx context.Context, r *model.Reserva) error {
	r.ID = uuid.New()
	r.CreatedAt = time.Now()
	for i := range r.Detalles {
		r.Detalles[i].ID = uuid.New()
		r.Detalles[i].ReservaID = r.ID
	}
	f.reservas[r.ID] = r
	return nil
}

func (f *fakeReservaRepo) FindByID(ctx context.Context, id uuid.UUID) (*model.Reserva, error) {
	r, ok := f.reservas[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return r, nil
}

func (f *fakeReservaRepo) LockByIDTx(tx *gorm.DB, id uuid.UUID) (*model.Reserva, error) {
	return f.FindByID(context.Background(), id)
}

func (f *fakeReservaRepo) UpdateEstadoTx(tx *gorm.DB, id uuid.UUID, estado model.ReservaEstado, ventaID *uuid.UUID) error {
	r, ok := f.reservas[id]
	if !ok {
		return gorm.ErrRecordNotFound
	}
	r.Estado = estado
	if ventaID != nil {
		r.VentaID = ventaID
	}
	return nil
}

func (f *fakeReservaRepo) List(ctx context.Context, sucursalID, estado string, page, limit int) ([]model.Reserva, int64, error) {
	var out []model.Reserva
	for _, r := range f.reservas {
		if sucursalID != "" && r.SucursalID.String() != sucursalID {
			continue
		}
		if estado != "" && string(r.Estado) != estado {
			continue
		}
		out = append(out, *r)
	}
	return out, int64(len(out)), nil
}

// ── Compra ────────────────────────────────────────────────────────────────────

type fakeCompraRepo struct {
	compras map[uuid.UUID]*model.Compra
}

func newFakeCompraRepo() *fakeCompraRepo {
	return &fakeCompraRepo{compras: make(map[uuid.UUID]*model.Compra)}
}

func (f *fakeCompraRepo) DB() *gorm.DB { return nil }

func (f *fakeCompraRepo) CreateTx(tx *gorm.DB, c *model.Compra) error {
	c.ID = uuid.New()
	c.CreatedAt = time.Now()
	for i := range c.Detalles {
		c.Detalles[i].ID = uuid.New()
		c.Detalles[i].CompraID = c.ID
	}
	f.compras[c.ID] = c
	return nil
}

func (f *fakeCompraRepo) FindByID(ctx context.Context, id uuid.UUID) (*model.Compra, error) {
	c, ok := f.compras[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return c, nil
}

func (f *fakeCompraRepo) List(ctx context.Context, page, limit int) ([]model.Compra, int64, error) {
	out := make([]model.Compra, 0, len(f.compras))
	for _, c := range f.compras {
		out = append(out, *c)
	}
	return out, int64(len(out)), nil
}

// ── Proveedor ─────────────────────────────────────────────────────────────────

type fakeProveedorRepo struct {
	proveedores map[uuid.UUID]*model.Proveedor
}

func newFakeProveedorRepo() *fakeProveedorRepo {
	return &fakeProveedorRepo{proveedores: make(map[uuid.UUID]*model.Proveedor)}
}

func (f *fakeProveedorRepo) seed(razonSocial string) *model.Proveedor {
	p := &model.Proveedor{ID: uuid.New(), RazonSocial: razonSocial, Activo: true}
	f.proveedores[p.ID] = p
	return p
}

func (f *fakeProveedorRepo) Create(ctx context.Context, p *model.Proveedor) error {
	p.ID = uuid.New()
	f.proveedores[p.ID] = p
	return nil
}

func (f *fakeProveedorRepo) FindByID(ctx context.Context, id uuid.UUID) (*model.Proveedor, error) {
	p, ok := f.proveedores[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return p, nil
}

func (f *fakeProveedorRepo) List(ctx context.Context, incluirInactivos bool) ([]model.Proveedor, error) {
	var out []model.Proveedor
	for _, p := range f.proveedores {
		if !incluirInactivos && !p.Activo {
			continue
		}
		out = append(out, *p)
	}
	return out, nil
}

func (f *fakeProveedorRepo) Update(ctx context.Context, p *model.Proveedor) error {
	f.proveedores[p.ID] = p
	return nil
}

func (f *fakeProveedorRepo) SoftDelete(ctx context.Context, id uuid.UUID) error {
	p, ok := f.proveedores[id]
	if !ok {
		return gorm.ErrRecordNotFound
	}
	p.Activo = false
	return nil
}

// ── Usuario ───────────────────────────────────────────────────────────────────

type fakeUsuarioRepo struct {
	usuarios map[uuid.UUID]*model.Usuario
}

func newFakeUsuarioRepo() *fakeUsuarioRepo {
	return &fakeUsuarioRepo{usuarios: make(map[uuid.UUID]*model.Usuario)}
}

func (f *fakeUsuarioRepo) Create(ctx context.Context, u *model.Usuario) error {
	for _, existente := range f.usuarios {
		if existente.Username == u.Username {
			return errors.New("duplicate key value violates unique constraint")
		}
	}
	u.ID = uuid.New()
	f.usuarios[u.ID] = u
	return nil
}

func (f *fakeUsuarioRepo) FindByUsername(ctx context.Context, username string) (*model.Usuario, error) {
	for _, u := range f.usuarios {
		if u.Username == username {
			return u, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (f *fakeUsuarioRepo) FindByID(ctx context.Context, id uuid.UUID) (*model.Usuario, error) {
	u, ok := f.usuarios[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return u, nil
}

func (f *fakeUsuarioRepo) List(ctx context.Context) ([]model.Usuario, error) {
	var out []model.Usuario
	for _, u := range f.usuarios {
		if u.Activo {
			out = append(out, *u)
		}
	}
	return out, nil
}

func (f *fakeUsuarioRepo) ListAll(ctx context.Context) ([]model.Usuario, error) {
	var out []model.Usuario
	for _, u := range f.usuarios {
		out = append(out, *u)
	}
	return out, nil
}

func (f *fakeUsuarioRepo) Update(ctx context.Context, u *model.Usuario) error {
	f.usuarios[u.ID] = u
	return nil
}

func (f *fakeUsuarioRepo) SoftDelete(ctx context.Context, id uuid.UUID) error {
	u, ok := f.usuarios[id]
	if !ok {
		return gorm.ErrRecordNotFound
	}
	u.Activo = false
	return nil
}

func (f *fakeUsuarioRepo) Reactivar(ctx context.Context, id uuid.UUID) error {
	u, ok := f.usuarios[id]
	if !ok {
		return gorm.ErrRecordNotFound
	}
	u.Activo = true
	return nil
}
