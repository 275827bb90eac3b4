// Package store holds the typed key-value gateways for the ephemeral client
// state: the purchase-order cart and the payment-edit overlays. Both are
// whole-value JSON documents — every mutation rewrites the full value, the
// last write wins, and clearing removes the key entirely. Redis backs
// production; an in-memory variant backs tests.
package store

import (
	"context"

	"github.com/shopspring/decimal"

	"rapifarma/internal/dto"
)

// OrdenItem is one persisted purchase-order cart line. The unique key within
// a cart is (ListaID, Farmacia).
type OrdenItem struct {
	ListaID     string          `json:"lista_id"`
	Farmacia    string          `json:"farmacia"`
	ProveedorID string          `json:"proveedor_id"`
	Codigo      string          `json:"codigo"`
	Descripcion string          `json:"descripcion"`
	PrecioNeto  decimal.Decimal `json:"precio_neto"`
	Cantidad    int             `json:"cantidad"`
}

// CartStore persists one purchase-order cart per user.
type CartStore interface {
	Get(ctx context.Context, userID string) ([]OrdenItem, error)
	// Set overwrites the whole cart; an empty slice clears the key
	Set(ctx context.Context, userID string, items []OrdenItem) error
	Clear(ctx context.Context, userID string) error
}

// OverlayStore persists payment-edit overlays keyed by (user, cuenta id).
// Overlays survive only for the duration of the pending batch payment
// workflow.
type OverlayStore interface {
	Get(ctx context.Context, userID, cuentaID string) (*dto.EdicionCuentaRequest, error)
	GetAll(ctx context.Context, userID string) (map[string]dto.EdicionCuentaRequest, error)
	Set(ctx context.Context, userID, cuentaID string, e dto.EdicionCuentaRequest) error
	Delete(ctx context.Context, userID, cuentaID string) error
	Clear(ctx context.Context, userID string) error
}
