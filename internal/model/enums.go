package model

import "github.com/google/uuid"

// MovimientoTipo is the closed set of stock-movement kinds. Free strings are
// not accepted anywhere: handlers parse into this type before touching a tx.
type MovimientoTipo string

const (
	MovimientoIngreso     MovimientoTipo = "INGRESO"
	MovimientoReparticion MovimientoTipo = "REPARTICION"
	MovimientoEnvio       MovimientoTipo = "ENVIO"
	MovimientoSolicitud   MovimientoTipo = "SOLICITUD"
)

// Valido reports whether t is one of the four known kinds.
func (t MovimientoTipo) Valido() bool {
	switch t {
	case MovimientoIngreso, MovimientoReparticion, MovimientoEnvio, MovimientoSolicitud:
		return true
	}
	return false
}

// RequiereOrigen reports whether the movement debits a source branch.
func (t MovimientoTipo) RequiereOrigen() bool {
	return t == MovimientoReparticion || t == MovimientoEnvio
}

type MovimientoEstado string

const (
	EstadoCompletado MovimientoEstado = "COMPLETADO"
	EstadoPendiente  MovimientoEstado = "PENDIENTE"
	EstadoConfirmado MovimientoEstado = "CONFIRMADO"
)

type CajaEstado string

const (
	CajaAbierta CajaEstado = "abierta"
	CajaCerrada CajaEstado = "cerrada"
)

type VentaEstado string

const (
	VentaCompletada VentaEstado = "completada"
	VentaAnulada    VentaEstado = "anulada"
)

// PedidoEstado tracks the kitchen workflow for table orders.
type PedidoEstado string

const (
	PedidoPendiente PedidoEstado = "pendiente"
	PedidoEnCocina  PedidoEstado = "en_cocina"
	PedidoListo     PedidoEstado = "listo"
	PedidoEntregado PedidoEstado = "entregado"
	PedidoPagado    PedidoEstado = "pagado"
)

type ReservaEstado string

const (
	ReservaPendiente  ReservaEstado = "pendiente"
	ReservaCompletada ReservaEstado = "completada"
	ReservaCancelada  ReservaEstado = "cancelada"
)

type MesaEstado string

const (
	MesaDisponible MesaEstado = "disponible"
	MesaOcupada    MesaEstado = "ocupada"
)

// TipoPago: "efectivo" | "qr" | "mixto"
type TipoPago string

const (
	PagoEfectivo TipoPago = "efectivo"
	PagoQR       TipoPago = "qr"
	PagoMixto    TipoPago = "mixto"
)

func (t TipoPago) Valido() bool {
	return t == PagoEfectivo || t == PagoQR || t == PagoMixto
}

// Rol values for Usuario.
const (
	RolCajero        = "cajero"
	RolSupervisor    = "supervisor"
	RolAdministrador = "administrador"
)

// ActingUser is the authenticated principal threaded explicitly into every
// core operation. Services never read ambient auth state.
type ActingUser struct {
	ID         uuid.UUID
	Username   string
	Rol        string
	SucursalID *uuid.UUID
}

func (u ActingUser) EsAdministrador() bool { return u.Rol == RolAdministrador }
