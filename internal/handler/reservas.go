package handler

import (
	"net/http"

	"github.com/fydhel24/proyecto-ventas-sub000/internal/apierror"
	"github.com/fydhel24/proyecto-ventas-sub000/internal/dto"
	"github.com/fydhel24/proyecto-ventas-sub000/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type ReservasHandler struct{ svc service.ReservaService }

func NewReservasHandler(svc service.ReservaService) *ReservasHandler {
	return &ReservasHandler{svc: svc}
}

// Crear registers a hold: prices are frozen but no stock is reserved until
// completion.
func (h *ReservasHandler) Crear(c *gin.Context) {
	var req dto.CrearReservaRequest
	if !bindAndValidate(c, &req) {
		return
	}
	actor, ok := actingUser(c)
	if !ok {
		return
	}
	resp, err := h.svc.Crear(c.Request.Context(), actor, req)
	if err != nil {
		writeServiceError(c, err)
		return
	}
	c.JSON(http.StatusCreated, resp)
}

// Completar godoc
// @Summary Convierte una reserva pendiente en una venta
// @Tags reservas
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "ID de reserva"
// @Param body body dto.CompletarReservaRequest true "Pago"
// @Success 200 {object} dto.ReservaResponse
// @Failure 409 {object} apierror.APIError
// @Router /v1/reservas/{id}/completar [post]
func (h *ReservasHandler) Completar(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, apierror.New("ID invalido"))
		return
	}
	var req dto.CompletarReservaRequest
	if !bindAndValidate(c, &req) {
		return
	}
	actor, ok := actingUser(c)
	if !ok {
		return
	}
	resp, err := h.svc.Completar(c.Request.Context(), actor, id, req)
	if err != nil {
		writeServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

func (h *ReservasHandler) Cancelar(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, apierror.New("ID invalido"))
		return
	}
	actor, ok := actingUser(c)
	if !ok {
		return
	}
	if err := h.svc.Cancelar(c.Request.Context(), actor, id); err != nil {
		writeServiceError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

func (h *ReservasHandler) Obtener(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, apierror.New("ID invalido"))
		return
	}
	resp, err := h.svc.Obtener(c.Request.Context(), id)
	if err != nil {
		writeServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

func (h *ReservasHandler) Listar(c *gin.Context) {
	page, limit := pagination(c)
	resp, err := h.svc.Listar(c.Request.Context(), c.Query("sucursal_id"), c.Query("estado"), page, limit)
	if err != nil {
		c.JSON(http.StatusInternalServerError, apierror.New("Error al listar reservas"))
		return
	}
	c.JSON(http.StatusOK, resp)
}
