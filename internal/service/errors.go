package service

import (
	"errors"
	"fmt"
)

// Sentinel errors shared across services. Handlers map them to HTTP statuses;
// messages are user-facing and stay in Spanish.
var (
	ErrTransferenciaInvalida = errors.New("movimiento inválido: origen y destino no pueden ser la misma sucursal")
	ErrTipoMovimiento        = errors.New("tipo de movimiento desconocido")
	ErrCajaDuplicada         = errors.New("ya existe una caja abierta en esta sucursal")
	ErrCajaCerrada           = errors.New("la caja ya está cerrada")
	ErrSinCajaAbierta        = errors.New("no hay caja abierta en esta sucursal")
	ErrSolicitudProcesada    = errors.New("la solicitud ya fue procesada")
	ErrVentaAnulada          = errors.New("la venta ya está anulada")
	ErrReservaProcesada      = errors.New("la reserva ya fue procesada")
	ErrMesaOcupada           = errors.New("la mesa ya está ocupada")
	ErrPagoInsuficiente      = errors.New("el monto recibido es insuficiente")
	ErrPagoInvalido          = errors.New("el desglose de pago no coincide con el total")
	ErrSinPermiso            = errors.New("no tiene permisos para realizar esta operación")
	ErrSinSucursal           = errors.New("el usuario no tiene una sucursal asignada")
)

// InsufficientStockError carries enough context for the client to show which
// product ran short and by how much.
type InsufficientStockError struct {
	Producto   string
	Disponible int
	Solicitado int
}

func (e *InsufficientStockError) Error() string {
	return fmt.Sprintf("stock insuficiente de %s: disponible %d, solicitado %d",
		e.Producto, e.Disponible, e.Solicitado)
}
