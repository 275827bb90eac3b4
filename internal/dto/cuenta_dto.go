package dto

import "github.com/shopspring/decimal"

// ─── Request DTOs ────────────────────────────────────────────────────────────

type CrearCuentaRequest struct {
	FarmaciaID    string          `json:"farmacia_id"    validate:"required"`
	ProveedorID   *string         `json:"proveedor_id"   validate:"omitempty,uuid"`
	NumeroFactura string          `json:"numero_factura" validate:"required"`
	Monto         decimal.Decimal `json:"monto"          validate:"required,gt=0"`
	Divisa        string          `json:"divisa"         validate:"required,oneof=Bs USD"`
	Tasa          decimal.Decimal `json:"tasa"           validate:"min=0"`
	Retencion     decimal.Decimal `json:"retencion"      validate:"min=0"`
	FechaEmision  string          `json:"fecha_emision"  validate:"required,datetime=2006-01-02"`
	DiasCredito   int             `json:"dias_credito"   validate:"min=0"`
	Tipo          string          `json:"tipo"           validate:"omitempty,oneof=traslado pago_listo cuenta_por_pagar"`
}

type CambiarEstatusRequest struct {
	Estatus string `json:"estatus" validate:"required,oneof=wait activa inactiva pagada abonada anulada finalizada"`
}

type CambiarTipoRequest struct {
	Tipo string `json:"tipo" validate:"required,oneof=traslado pago_listo cuenta_por_pagar"`
}

// ─── Response DTOs ───────────────────────────────────────────────────────────

// CuentaResponse exposes both currency views derived from (monto, divisa,
// tasa). MontoBs/MontoUSD are nil when the stored rate cannot convert — the
// client renders "--".
type CuentaResponse struct {
	ID            string          `json:"id"`
	FarmaciaID    string          `json:"farmacia_id"`
	ProveedorID   *string         `json:"proveedor_id"`
	NumeroFactura string          `json:"numero_factura"`
	Monto         decimal.Decimal `json:"monto"`
	Divisa        string          `json:"divisa"`
	Tasa          decimal.Decimal `json:"tasa"`
	Retencion     decimal.Decimal `json:"retencion"`

	MontoBs  *decimal.Decimal `json:"monto_bs"`
	MontoUSD *decimal.Decimal `json:"monto_usd"`

	FechaEmision     string `json:"fecha_emision"`
	DiasCredito      int    `json:"dias_credito"`
	FechaVencimiento string `json:"fecha_vencimiento"`
	// DiasRestantes is negative when overdue; Vencida flags that state
	DiasRestantes int  `json:"dias_restantes"`
	Vencida       bool `json:"vencida"`

	Estatus string `json:"estatus"`
	Tipo    string `json:"tipo"`

	// TotalPagado accumulates recorded pagos in Bs at each pago's own tasa
	TotalPagadoBs decimal.Decimal `json:"total_pagado_bs"`

	CreatedAt string `json:"created_at"`
}

type CuentaListResponse struct {
	Data  []CuentaResponse `json:"data"`
	Page  int              `json:"page"`
	Limit int              `json:"limit"`
	Total int64            `json:"total"`
}
