package handler

import (
	"net/http"
	"time"

	"rapifarma/internal/apierror"
	"rapifarma/internal/dto"
	"rapifarma/internal/infra"

	"github.com/gin-gonic/gin"
)

type StorageHandler struct{ storage *infra.Storage }

func NewStorageHandler(storage *infra.Storage) *StorageHandler {
	return &StorageHandler{storage: storage}
}

// PresignedURL godoc
// @Summary Emite una URL prefirmada para subir o leer un comprobante
// @Tags storage
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param body body dto.PresignedURLRequest true "Objeto y operación"
// @Success 200 {object} dto.PresignedURLResponse
// @Failure 422 {object} apierror.ValidationError
// @Failure 503 {object} apierror.APIError
// @Router /v1/presigned-url [post]
func (h *StorageHandler) PresignedURL(c *gin.Context) {
	var req dto.PresignedURLRequest
	if !bindAndValidate(c, &req) {
		return
	}
	expires := time.Duration(req.ExpiresIn) * time.Second
	var (
		signed string
		err    error
	)
	switch req.Operation {
	case "put_object":
		if expires <= 0 {
			expires = infra.DefaultPutExpiry
		}
		signed, err = h.storage.PresignedPut(c.Request.Context(), req.ObjectName, expires)
	default:
		if expires <= 0 {
			expires = infra.DefaultGetExpiry
		}
		signed, err = h.storage.PresignedGet(c.Request.Context(), req.ObjectName, expires)
	}
	if err != nil {
		c.JSON(http.StatusServiceUnavailable, apierror.New("Almacenamiento de comprobantes no disponible"))
		return
	}
	c.JSON(http.StatusOK, dto.PresignedURLResponse{
		URL:       signed,
		Operation: req.Operation,
		ExpiresIn: int(expires / time.Second),
	})
}
