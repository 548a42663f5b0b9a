package handler

import (
	"net/http"

	"github.com/fydhel24/proyecto-ventas-sub000/internal/apierror"
	"github.com/fydhel24/proyecto-ventas-sub000/internal/dto"
	"github.com/fydhel24/proyecto-ventas-sub000/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type CajaHandler struct{ svc service.CajaService }

func NewCajaHandler(svc service.CajaService) *CajaHandler { return &CajaHandler{svc: svc} }

// Abrir godoc
// @Summary Abre una sesion de caja en una sucursal
// @Tags cajas
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param body body dto.AbrirCajaRequest true "Datos de apertura"
// @Success 201 {object} dto.CajaResponse
// @Failure 409 {object} apierror.APIError
// @Router /v1/cajas/abrir [post]
func (h *CajaHandler) Abrir(c *gin.Context) {
	var req dto.AbrirCajaRequest
	if !bindAndValidate(c, &req) {
		return
	}
	actor, ok := actingUser(c)
	if !ok {
		return
	}
	resp, err := h.svc.Abrir(c.Request.Context(), actor, req)
	if err != nil {
		writeServiceError(c, err)
		return
	}
	c.JSON(http.StatusCreated, resp)
}

// Cerrar godoc
// @Summary Cierra una sesion de caja declarando el efectivo contado
// @Tags cajas
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param body body dto.CerrarCajaRequest true "Declaracion de cierre"
// @Success 200 {object} dto.CajaResponse
// @Failure 409 {object} apierror.APIError
// @Router /v1/cajas/cerrar [post]
func (h *CajaHandler) Cerrar(c *gin.Context) {
	var req dto.CerrarCajaRequest
	if !bindAndValidate(c, &req) {
		return
	}
	actor, ok := actingUser(c)
	if !ok {
		return
	}
	resp, err := h.svc.Cerrar(c.Request.Context(), actor, req)
	if err != nil {
		writeServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// AbrirTodas opens a session in every active branch, skipping those that
// already have one. Admin only.
func (h *CajaHandler) AbrirTodas(c *gin.Context) {
	var req dto.AbrirCajasRequest
	if !bindAndValidate(c, &req) {
		return
	}
	actor, ok := actingUser(c)
	if !ok {
		return
	}
	resp, err := h.svc.AbrirTodas(c.Request.Context(), actor, req)
	if err != nil {
		writeServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// CerrarTodas auto-closes every open session using the recomputed expected
// totals as the declared amount. Admin only.
func (h *CajaHandler) CerrarTodas(c *gin.Context) {
	actor, ok := actingUser(c)
	if !ok {
		return
	}
	resp, err := h.svc.CerrarTodas(c.Request.Context(), actor)
	if err != nil {
		writeServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

func (h *CajaHandler) Obtener(c *gin.Context) {
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

func (h *CajaHandler) Listar(c *gin.Context) {
	page, limit := pagination(c)
	resp, err := h.svc.Listar(c.Request.Context(), c.Query("sucursal_id"), page, limit)
	if err != nil {
		c.JSON(http.StatusInternalServerError, apierror.New("Error al listar cajas"))
		return
	}
	c.JSON(http.StatusOK, resp)
}
