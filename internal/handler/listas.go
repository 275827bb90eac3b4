package handler

import (
	"fmt"
	"io"
	"net/http"
	"strconv"

	"rapifarma/internal/apierror"
	"rapifarma/internal/dto"
	"rapifarma/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type ListasHandler struct {
	svc        service.ListaService
	excelMaxMB int
}

func NewListasHandler(svc service.ListaService, excelMaxMB int) *ListasHandler {
	return &ListasHandler{svc: svc, excelMaxMB: excelMaxMB}
}

// ImportarExcel godoc
// @Summary Importa una lista comparativa desde un archivo Excel
// @Tags listas
// @Accept multipart/form-data
// @Produce json
// @Security BearerAuth
// @Param proveedor_id formData string true "ID del proveedor"
// @Param file formData file true "Archivo .xlsx"
// @Success 200 {object} dto.ListaImportResponse
// @Failure 400 {object} apierror.APIError
// @Router /v1/listas-comparativas/excel [post]
func (h *ListasHandler) ImportarExcel(c *gin.Context) {
	proveedorID, err := uuid.Parse(c.PostForm("proveedor_id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, apierror.New("proveedor_id inválido"))
		return
	}
	fileHeader, err := c.FormFile("file")
	if err != nil {
		c.JSON(http.StatusBadRequest, apierror.New("Archivo requerido"))
		return
	}
	maxBytes := int64(h.excelMaxMB) << 20
	if fileHeader.Size > maxBytes {
		c.JSON(http.StatusBadRequest, apierror.New(fmt.Sprintf("El archivo excede el límite de %d MB", h.excelMaxMB)))
		return
	}
	f, err := fileHeader.Open()
	if err != nil {
		c.JSON(http.StatusBadRequest, apierror.New("No se pudo leer el archivo"))
		return
	}
	defer f.Close()
	data, err := io.ReadAll(io.LimitReader(f, maxBytes+1))
	if err != nil || int64(len(data)) > maxBytes {
		c.JSON(http.StatusBadRequest, apierror.New("No se pudo leer el archivo"))
		return
	}
	resp, err := h.svc.ImportarExcel(c.Request.Context(), proveedorID, data)
	if err != nil {
		c.JSON(http.StatusBadRequest, apierror.New(err.Error()))
		return
	}
	c.JSON(http.StatusOK, resp)
}

// ImportarBatch godoc
// @Summary Importa un lote de filas de lista comparativa ya parseado
// @Tags listas
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param body body dto.ListaBatchRequest true "Lote de filas"
// @Success 200 {object} dto.ListaImportResponse
// @Failure 400 {object} apierror.APIError
// @Failure 422 {object} apierror.ValidationError
// @Router /v1/listas-comparativas/batch [post]
func (h *ListasHandler) ImportarBatch(c *gin.Context) {
	var req dto.ListaBatchRequest
	if !bindAndValidate(c, &req) {
		return
	}
	resp, err := h.svc.ImportarBatch(c.Request.Context(), req)
	if err != nil {
		c.JSON(http.StatusBadRequest, apierror.New(err.Error()))
		return
	}
	c.JSON(http.StatusOK, resp)
}

// Buscar searches price-list lines by code or description.
func (h *ListasHandler) Buscar(c *gin.Context) {
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "50"))
	if limit < 1 || limit > 200 {
		limit = 50
	}
	resp, err := h.svc.Buscar(c.Request.Context(), c.Query("codigo"), c.Query("descripcion"), limit)
	if err != nil {
		c.JSON(http.StatusBadRequest, apierror.New(err.Error()))
		return
	}
	c.JSON(http.StatusOK, resp)
}
