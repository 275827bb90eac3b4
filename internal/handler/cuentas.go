package handler

import (
	"net/http"
	"strconv"

	"rapifarma/internal/apierror"
	"rapifarma/internal/dto"
	"rapifarma/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type CuentasHandler struct{ svc service.CuentaService }

func NewCuentasHandler(svc service.CuentaService) *CuentasHandler {
	return &CuentasHandler{svc: svc}
}

// Crear registers a new accounts-payable invoice.
func (h *CuentasHandler) Crear(c *gin.Context) {
	var req dto.CrearCuentaRequest
	if !bindAndValidate(c, &req) {
		return
	}
	resp, err := h.svc.Crear(c.Request.Context(), req)
	if err != nil {
		c.JSON(http.StatusBadRequest, apierror.New(err.Error()))
		return
	}
	c.JSON(http.StatusCreated, resp)
}

// Obtener returns one cuenta with both currency views and due-date fields.
func (h *CuentasHandler) Obtener(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, apierror.New("ID inválido"))
		return
	}
	resp, err := h.svc.Obtener(c.Request.Context(), id)
	if err != nil {
		c.JSON(http.StatusNotFound, apierror.New(err.Error()))
		return
	}
	c.JSON(http.StatusOK, resp)
}

// Listar returns a paginated cuenta list, filterable by farmacia and estatus.
func (h *CuentasHandler) Listar(c *gin.Context) {
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "20"))
	if page < 1 {
		page = 1
	}
	if limit < 1 || limit > 100 {
		limit = 20
	}
	resp, err := h.svc.Listar(c.Request.Context(), c.Query("farmacia_id"), c.Query("estatus"), page, limit)
	if err != nil {
		c.JSON(http.StatusBadRequest, apierror.New(err.Error()))
		return
	}
	c.JSON(http.StatusOK, resp)
}

// CambiarEstatus godoc
// @Summary Cambia el estatus de una cuenta por pagar
// @Tags cuentas
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "ID de la cuenta"
// @Param body body dto.CambiarEstatusRequest true "Nuevo estatus"
// @Success 204
// @Failure 400 {object} apierror.APIError
// @Router /v1/cuentas-por-pagar/{id}/estatus [patch]
func (h *CuentasHandler) CambiarEstatus(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, apierror.New("ID inválido"))
		return
	}
	var req dto.CambiarEstatusRequest
	if !bindAndValidate(c, &req) {
		return
	}
	if err := h.svc.CambiarEstatus(c.Request.Context(), id, req.Estatus); err != nil {
		c.JSON(http.StatusBadRequest, apierror.New(err.Error()))
		return
	}
	c.Status(http.StatusNoContent)
}

// CambiarTipo reclassifies a cuenta (traslado | pago_listo | cuenta_por_pagar).
func (h *CuentasHandler) CambiarTipo(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, apierror.New("ID inválido"))
		return
	}
	var req dto.CambiarTipoRequest
	if !bindAndValidate(c, &req) {
		return
	}
	if err := h.svc.CambiarTipo(c.Request.Context(), id, req.Tipo); err != nil {
		c.JSON(http.StatusBadRequest, apierror.New(err.Error()))
		return
	}
	c.Status(http.StatusNoContent)
}
