package dto

import "github.com/shopspring/decimal"

// ─── Request DTOs ────────────────────────────────────────────────────────────

type ListaRowRequest struct {
	Codigo      string          `json:"codigo"       validate:"required"`
	Descripcion string          `json:"descripcion"  validate:"required"`
	Laboratorio string          `json:"laboratorio"`
	PrecioNeto  decimal.Decimal `json:"precio_neto"  validate:"min=0"`
	Existencia  int             `json:"existencia"   validate:"min=0"`
}

// ListaBatchRequest is one chunk of a large spreadsheet, parsed client-side.
// Chunks are capped (default 300 rows) — oversized chunks are rejected.
type ListaBatchRequest struct {
	ProveedorID string            `json:"proveedor_id" validate:"required,uuid"`
	Rows        []ListaRowRequest `json:"rows"         validate:"required,min=1,dive"`
}

// ─── Response DTOs ───────────────────────────────────────────────────────────

// ListaImportResponse reports an ingestion outcome. On partial failure
// Importadas counts rows persisted before the failing row.
type ListaImportResponse struct {
	Importadas int      `json:"importadas"`
	Total      int      `json:"total"`
	Errores    []string `json:"errores,omitempty"`
}

type ListaResponse struct {
	ID          string          `json:"id"`
	ProveedorID *string         `json:"proveedor_id"`
	Codigo      string          `json:"codigo"`
	Descripcion string          `json:"descripcion"`
	Laboratorio string          `json:"laboratorio"`
	PrecioNeto  decimal.Decimal `json:"precio_neto"`
	Existencia  int             `json:"existencia"`
}
