package handler

import (
	"net/http"

	"rapifarma/internal/apierror"
	"rapifarma/internal/dto"
	"rapifarma/internal/middleware"
	"rapifarma/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type PagosHandler struct{ svc service.PagoService }

func NewPagosHandler(svc service.PagoService) *PagosHandler {
	return &PagosHandler{svc: svc}
}

// Registrar godoc
// @Summary Registra un pago individual sobre una cuenta por pagar
// @Tags pagos
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param body body dto.CrearPagoRequest true "Datos del pago"
// @Success 201 {object} dto.PagoResponse
// @Failure 400 {object} apierror.APIError
// @Failure 422 {object} apierror.ValidationError
// @Router /v1/pagoscpp [post]
func (h *PagosHandler) Registrar(c *gin.Context) {
	var req dto.CrearPagoRequest
	if !bindAndValidate(c, &req) {
		return
	}
	resp, err := h.svc.Registrar(c.Request.Context(), req)
	if err != nil {
		c.JSON(http.StatusBadRequest, apierror.New(err.Error()))
		return
	}
	c.JSON(http.StatusCreated, resp)
}

// RegistrarMasivo godoc
// @Summary Registra un lote de pagos, uno por cuenta seleccionada
// @Description Procesa los pagos en orden. Ante una falla se detiene y reporta
// @Description cuántos quedaron registrados; los ya registrados no se revierten.
// @Tags pagos
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param body body dto.PagoMasivoRequest true "Pagos del lote"
// @Success 200 {object} dto.PagoMasivoResponse
// @Failure 422 {object} apierror.ValidationError
// @Router /v1/pagoscpp/masivo [post]
func (h *PagosHandler) RegistrarMasivo(c *gin.Context) {
	var req dto.PagoMasivoRequest
	if !bindAndValidate(c, &req) {
		return
	}
	claims := middleware.GetClaims(c)
	resp, err := h.svc.RegistrarMasivo(c.Request.Context(), claims.UserID, req)
	if err != nil {
		c.JSON(http.StatusBadRequest, apierror.New(err.Error()))
		return
	}
	c.JSON(http.StatusOK, resp)
}

// GuardarEdicion stores the payment preview for one cuenta and returns the
// recalculated totals.
func (h *PagosHandler) GuardarEdicion(c *gin.Context) {
	cuentaID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, apierror.New("ID inválido"))
		return
	}
	var req dto.EdicionCuentaRequest
	if !bindAndValidate(c, &req) {
		return
	}
	claims := middleware.GetClaims(c)
	resp, err := h.svc.GuardarEdicion(c.Request.Context(), claims.UserID, cuentaID, req)
	if err != nil {
		c.JSON(http.StatusBadRequest, apierror.New(err.Error()))
		return
	}
	c.JSON(http.StatusOK, resp)
}

// ObtenerEdicion returns the stored preview for a cuenta, 404 if none.
func (h *PagosHandler) ObtenerEdicion(c *gin.Context) {
	cuentaID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, apierror.New("ID inválido"))
		return
	}
	claims := middleware.GetClaims(c)
	resp, err := h.svc.ObtenerEdicion(c.Request.Context(), claims.UserID, cuentaID)
	if err != nil {
		c.JSON(http.StatusBadRequest, apierror.New(err.Error()))
		return
	}
	if resp == nil {
		c.JSON(http.StatusNotFound, apierror.New("no hay edición pendiente para esta cuenta"))
		return
	}
	c.JSON(http.StatusOK, resp)
}

// EliminarEdicion discards the stored preview for a cuenta.
func (h *PagosHandler) EliminarEdicion(c *gin.Context) {
	cuentaID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, apierror.New("ID inválido"))
		return
	}
	claims := middleware.GetClaims(c)
	if err := h.svc.EliminarEdicion(c.Request.Context(), claims.UserID, cuentaID); err != nil {
		c.JSON(http.StatusBadRequest, apierror.New(err.Error()))
		return
	}
	c.Status(http.StatusNoContent)
}

// CambiarMoneda toggles the display currency of a stored preview, converting
// the current edited amount at its rate.
func (h *PagosHandler) CambiarMoneda(c *gin.Context) {
	cuentaID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, apierror.New("ID inválido"))
		return
	}
	var req struct {
		Moneda string `json:"moneda" validate:"required,oneof=Bs USD"`
	}
	if !bindAndValidate(c, &req) {
		return
	}
	claims := middleware.GetClaims(c)
	resp, err := h.svc.CambiarMoneda(c.Request.Context(), claims.UserID, cuentaID, req.Moneda)
	if err != nil {
		c.JSON(http.StatusBadRequest, apierror.New(err.Error()))
		return
	}
	c.JSON(http.StatusOK, resp)
}

// TotalAPagar aggregates every stored preview of the caller into the batch
// total, flagging mixed currencies.
func (h *PagosHandler) TotalAPagar(c *gin.Context) {
	claims := middleware.GetClaims(c)
	resp, err := h.svc.TotalAPagar(c.Request.Context(), claims.UserID)
	if err != nil {
		c.JSON(http.StatusBadRequest, apierror.New(err.Error()))
		return
	}
	c.JSON(http.StatusOK, resp)
}
