package dto

import "github.com/shopspring/decimal"

// ─── Request DTOs ────────────────────────────────────────────────────────────

// AgregarItemRequest adds a price-list line to the purchase-order cart for a
// pharmacy. Adding an already-present (lista_id, farmacia) pair increments
// the quantity instead of duplicating the line.
type AgregarItemRequest struct {
	ListaID  string `json:"lista_id"  validate:"required,uuid"`
	Farmacia string `json:"farmacia"  validate:"required"`
	Cantidad int    `json:"cantidad"  validate:"required,min=1"`
}

type ActualizarCantidadRequest struct {
	ListaID  string `json:"lista_id" validate:"required,uuid"`
	Farmacia string `json:"farmacia" validate:"required"`
	// Cantidad ≤ 0 removes the line
	Cantidad int `json:"cantidad"`
}

// ─── Response DTOs ───────────────────────────────────────────────────────────

type OrdenItemResponse struct {
	ListaID     string          `json:"lista_id"`
	Farmacia    string          `json:"farmacia"`
	ProveedorID string          `json:"proveedor_id"`
	Codigo      string          `json:"codigo"`
	Descripcion string          `json:"descripcion"`
	PrecioNeto  decimal.Decimal `json:"precio_neto"`
	Cantidad    int             `json:"cantidad"`
	Subtotal    decimal.Decimal `json:"subtotal"`
}

// GrupoProveedorResponse is the per-supplier nesting inside a pharmacy group,
// recomputed on demand for export/print.
type GrupoProveedorResponse struct {
	ProveedorID string              `json:"proveedor_id"`
	Items       []OrdenItemResponse `json:"items"`
	Subtotal    decimal.Decimal     `json:"subtotal"`
}

type GrupoFarmaciaResponse struct {
	Farmacia    string                   `json:"farmacia"`
	Items       []OrdenItemResponse      `json:"items"`
	Proveedores []GrupoProveedorResponse `json:"proveedores"`
	Total       decimal.Decimal          `json:"total"`
}

type OrdenCompraResponse struct {
	Grupos       []GrupoFarmaciaResponse `json:"grupos"`
	TotalGeneral decimal.Decimal         `json:"total_general"`
}
