package handler

import (
	"net/http"

	"github.com/fydhel24/proyecto-ventas-sub000/internal/apierror"
	"github.com/fydhel24/proyecto-ventas-sub000/internal/dto"
	"github.com/fydhel24/proyecto-ventas-sub000/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type InventarioHandler struct {
	inv service.InventarioService
	mov service.MovimientoService
}

func NewInventarioHandler(inv service.InventarioService, mov service.MovimientoService) *InventarioHandler {
	return &InventarioHandler{inv: inv, mov: mov}
}

// Listar godoc
// @Summary Lista el inventario, filtrable por sucursal y producto
// @Tags inventario
// @Produce json
// @Security BearerAuth
// @Success 200 {object} dto.InventarioListResponse
// @Router /v1/inventario [get]
func (h *InventarioHandler) Listar(c *gin.Context) {
	page, limit := pagination(c)
	filter := dto.InventarioFilter{
		SucursalID: c.Query("sucursal_id"),
		ProductoID: c.Query("producto_id"),
		Page:       page,
		Limit:      limit,
	}
	resp, err := h.inv.Listar(c.Request.Context(), filter)
	if err != nil {
		c.JSON(http.StatusInternalServerError, apierror.New("Error al listar inventario"))
		return
	}
	c.JSON(http.StatusOK, resp)
}

// Kardex returns the movement history of one inventory row, newest first.
func (h *InventarioHandler) Kardex(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, apierror.New("ID invalido"))
		return
	}
	resp, err := h.inv.Kardex(c.Request.Context(), id)
	if err != nil {
		writeServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": resp})
}

// CrearTransferencia godoc
// @Summary Registra un INGRESO, REPARTICION o ENVIO entre sucursales
// @Tags inventario
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param body body dto.TransferenciaRequest true "Transferencia"
// @Success 201 {object} dto.MovimientoResponse
// @Failure 409 {object} apierror.APIError
// @Router /v1/movimientos/transferencias [post]
func (h *InventarioHandler) CrearTransferencia(c *gin.Context) {
	var req dto.TransferenciaRequest
	if !bindAndValidate(c, &req) {
		return
	}
	actor, ok := actingUser(c)
	if !ok {
		return
	}
	resp, err := h.mov.CrearTransferencia(c.Request.Context(), actor, req)
	if err != nil {
		writeServiceError(c, err)
		return
	}
	c.JSON(http.StatusCreated, resp)
}

// CrearSolicitud registers a pending supply request against another branch.
// The requesting branch comes from the acting user's assignment.
func (h *InventarioHandler) CrearSolicitud(c *gin.Context) {
	var req dto.SolicitudRequest
	if !bindAndValidate(c, &req) {
		return
	}
	actor, ok := actingUser(c)
	if !ok {
		return
	}
	resp, err := h.mov.CrearSolicitud(c.Request.Context(), actor, req)
	if err != nil {
		writeServiceError(c, err)
		return
	}
	c.JSON(http.StatusCreated, resp)
}

// ConfirmarSolicitud applies a pending request: stock moves from the supplying
// branch to the requester in one transaction.
func (h *InventarioHandler) ConfirmarSolicitud(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, apierror.New("ID invalido"))
		return
	}
	actor, ok := actingUser(c)
	if !ok {
		return
	}
	resp, err := h.mov.ConfirmarSolicitud(c.Request.Context(), actor, id)
	if err != nil {
		writeServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

func (h *InventarioHandler) ObtenerMovimiento(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, apierror.New("ID invalido"))
		return
	}
	resp, err := h.mov.Obtener(c.Request.Context(), id)
	if err != nil {
		writeServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

func (h *InventarioHandler) ListarMovimientos(c *gin.Context) {
	page, limit := pagination(c)
	filter := dto.MovimientoFilter{
		Tipo:   c.Query("tipo"),
		Estado: c.Query("estado"),
		Page:   page,
		Limit:  limit,
	}
	resp, err := h.mov.Listar(c.Request.Context(), filter)
	if err != nil {
		c.JSON(http.StatusInternalServerError, apierror.New("Error al listar movimientos"))
		return
	}
	c.JSON(http.StatusOK, resp)
}
