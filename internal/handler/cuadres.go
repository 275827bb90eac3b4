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

type CuadresHandler struct{ svc service.CuadreService }

func NewCuadresHandler(svc service.CuadreService) *CuadresHandler {
	return &CuadresHandler{svc: svc}
}

// Crear godoc
// @Summary Registra el cuadre de una caja (estado wait)
// @Tags cuadres
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param farmaciaId path string true "ID de farmacia"
// @Param body body dto.CrearCuadreRequest true "Datos del cuadre"
// @Success 201 {object} dto.CuadreResponse
// @Failure 400 {object} apierror.APIError
// @Failure 422 {object} apierror.ValidationError
// @Router /v1/agg/cuadre/{farmaciaId} [post]
func (h *CuadresHandler) Crear(c *gin.Context) {
	var req dto.CrearCuadreRequest
	if !bindAndValidate(c, &req) {
		return
	}
	resp, err := h.svc.Crear(c.Request.Context(), c.Param("farmaciaId"), req)
	if err != nil {
		c.JSON(http.StatusBadRequest, apierror.New(err.Error()))
		return
	}
	c.JSON(http.StatusCreated, resp)
}

// CambiarEstado godoc
// @Summary Verifica o rechaza un cuadre en espera
// @Tags cuadres
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param farmaciaId path string true "ID de farmacia"
// @Param cuadreId path string true "ID del cuadre"
// @Param body body dto.CambiarEstadoCuadreRequest true "Nuevo estado"
// @Success 204
// @Failure 400 {object} apierror.APIError
// @Router /v1/cuadres/{farmaciaId}/{cuadreId}/estado [patch]
func (h *CuadresHandler) CambiarEstado(c *gin.Context) {
	cuadreID, err := uuid.Parse(c.Param("cuadreId"))
	if err != nil {
		c.JSON(http.StatusBadRequest, apierror.New("ID de cuadre inválido"))
		return
	}
	var req dto.CambiarEstadoCuadreRequest
	if !bindAndValidate(c, &req) {
		return
	}
	if err := h.svc.CambiarEstado(c.Request.Context(), c.Param("farmaciaId"), cuadreID, req.Estado); err != nil {
		c.JSON(http.StatusBadRequest, apierror.New(err.Error()))
		return
	}
	c.Status(http.StatusNoContent)
}

// Obtener returns one cuadre with its derived totals.
func (h *CuadresHandler) Obtener(c *gin.Context) {
	cuadreID, err := uuid.Parse(c.Param("cuadreId"))
	if err != nil {
		c.JSON(http.StatusBadRequest, apierror.New("ID de cuadre inválido"))
		return
	}
	resp, err := h.svc.Obtener(c.Request.Context(), c.Param("farmaciaId"), cuadreID)
	if err != nil {
		c.JSON(http.StatusNotFound, apierror.New(err.Error()))
		return
	}
	c.JSON(http.StatusOK, resp)
}

// Listar returns a paginated list of cuadres for one pharmacy.
func (h *CuadresHandler) Listar(c *gin.Context) {
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "20"))
	if page < 1 {
		page = 1
	}
	if limit < 1 || limit > 100 {
		limit = 20
	}
	data, total, err := h.svc.Listar(c.Request.Context(), c.Param("farmaciaId"), page, limit)
	if err != nil {
		c.JSON(http.StatusInternalServerError, apierror.New(err.Error()))
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": data, "page": page, "limit": limit, "total": total})
}
