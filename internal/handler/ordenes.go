package handler

import (
	"net/http"

	"rapifarma/internal/apierror"
	"rapifarma/internal/dto"
	"rapifarma/internal/infra"
	"rapifarma/internal/middleware"
	"rapifarma/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"
)

type OrdenesHandler struct {
	svc     service.OrdenService
	pdfPath string
}

func NewOrdenesHandler(svc service.OrdenService, pdfPath string) *OrdenesHandler {
	return &OrdenesHandler{svc: svc, pdfPath: pdfPath}
}

// AgregarItem godoc
// @Summary Agrega una línea de lista comparativa a la orden de compra
// @Tags ordenes
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param body body dto.AgregarItemRequest true "Línea a agregar"
// @Success 200 {array} store.OrdenItem
// @Failure 422 {object} apierror.ValidationError
// @Router /v1/orden-compra/items [post]
func (h *OrdenesHandler) AgregarItem(c *gin.Context) {
	var req dto.AgregarItemRequest
	if !bindAndValidate(c, &req) {
		return
	}
	claims := middleware.GetClaims(c)
	items, err := h.svc.AgregarItem(c.Request.Context(), claims.UserID, req)
	if err != nil {
		c.JSON(http.StatusBadRequest, apierror.New(err.Error()))
		return
	}
	c.JSON(http.StatusOK, items)
}

// ActualizarCantidad sets the quantity of a line; zero or below removes it.
func (h *OrdenesHandler) ActualizarCantidad(c *gin.Context) {
	var req dto.ActualizarCantidadRequest
	if !bindAndValidate(c, &req) {
		return
	}
	claims := middleware.GetClaims(c)
	items, err := h.svc.ActualizarCantidad(c.Request.Context(), claims.UserID, req)
	if err != nil {
		c.JSON(http.StatusBadRequest, apierror.New(err.Error()))
		return
	}
	c.JSON(http.StatusOK, items)
}

// EliminarItem removes one (lista, farmacia) line from the cart.
func (h *OrdenesHandler) EliminarItem(c *gin.Context) {
	claims := middleware.GetClaims(c)
	items, err := h.svc.EliminarItem(c.Request.Context(), claims.UserID, c.Param("listaId"), c.Param("farmacia"))
	if err != nil {
		c.JSON(http.StatusBadRequest, apierror.New(err.Error()))
		return
	}
	c.JSON(http.StatusOK, items)
}

// Vaciar clears the caller's cart.
func (h *OrdenesHandler) Vaciar(c *gin.Context) {
	claims := middleware.GetClaims(c)
	if err := h.svc.Vaciar(c.Request.Context(), claims.UserID); err != nil {
		c.JSON(http.StatusBadRequest, apierror.New(err.Error()))
		return
	}
	c.Status(http.StatusNoContent)
}

// Agrupar returns the cart grouped by pharmacy and supplier with subtotals.
func (h *OrdenesHandler) Agrupar(c *gin.Context) {
	claims := middleware.GetClaims(c)
	resp, err := h.svc.Agrupar(c.Request.Context(), claims.UserID)
	if err != nil {
		c.JSON(http.StatusBadRequest, apierror.New(err.Error()))
		return
	}
	c.JSON(http.StatusOK, resp)
}

// ExportarPDF godoc
// @Summary Exporta la orden de compra agrupada como PDF
// @Tags ordenes
// @Produce application/pdf
// @Security BearerAuth
// @Success 200 {file} binary
// @Failure 400 {object} apierror.APIError
// @Router /v1/orden-compra/pdf [get]
func (h *OrdenesHandler) ExportarPDF(c *gin.Context) {
	claims := middleware.GetClaims(c)
	orden, err := h.svc.Agrupar(c.Request.Context(), claims.UserID)
	if err != nil {
		c.JSON(http.StatusBadRequest, apierror.New(err.Error()))
		return
	}
	if len(orden.Grupos) == 0 {
		c.JSON(http.StatusBadRequest, apierror.New("La orden de compra está vacía"))
		return
	}
	path, err := infra.GenerateOrdenPDF(orden, h.pdfPath)
	if err != nil {
		log.Error().Err(err).Str("user_id", claims.UserID).Msg("error generando PDF de orden de compra")
		c.JSON(http.StatusInternalServerError, apierror.New("No se pudo generar el PDF"))
		return
	}
	c.FileAttachment(path, "orden_compra.pdf")
}
