package dto

import "github.com/shopspring/decimal"

// ─── Request DTOs ────────────────────────────────────────────────────────────

type CrearPagoRequest struct {
	CuentaID      string          `json:"cuenta_id"      validate:"required,uuid"`
	Moneda        string          `json:"moneda"         validate:"required,oneof=Bs USD"`
	Monto         decimal.Decimal `json:"monto"          validate:"required,gt=0"`
	Tasa          decimal.Decimal `json:"tasa"           validate:"required,gt=0"`
	Referencia    string          `json:"referencia"`
	BancoEmisor   string          `json:"banco_emisor"`
	BancoReceptor string          `json:"banco_receptor"`
	Fecha         string          `json:"fecha"          validate:"required,datetime=2006-01-02"`
	Retencion     decimal.Decimal `json:"retencion"      validate:"min=0"`
	EsAbono       bool            `json:"es_abono"`
}

// PagoMasivoRequest is the batch variant: one pago per selected cuenta.
type PagoMasivoRequest struct {
	Pagos []CrearPagoRequest `json:"pagos" validate:"required,min=1,dive"`
}

// EdicionCuentaRequest is the payment-preview overlay for one cuenta: the
// proposed rate/currency/discounts/retention held while the batch payment
// workflow is pending. TipoDescuento: "monto" (flat) | "porcentaje".
type EdicionCuentaRequest struct {
	TasaPago       decimal.Decimal `json:"tasa_pago"       validate:"min=0"`
	Moneda         string          `json:"moneda"          validate:"required,oneof=Bs USD"`
	Descuento1     decimal.Decimal `json:"descuento1"      validate:"min=0"`
	TipoDescuento1 string          `json:"tipo_descuento1" validate:"omitempty,oneof=monto porcentaje"`
	Descuento2     decimal.Decimal `json:"descuento2"      validate:"min=0"`
	TipoDescuento2 string          `json:"tipo_descuento2" validate:"omitempty,oneof=monto porcentaje"`
	Retencion      decimal.Decimal `json:"retencion"       validate:"min=0"`
	Abono          decimal.Decimal `json:"abono"           validate:"min=0"`
	EsAbono        bool            `json:"es_abono"`
	// MontoEditado is the user's direct entry when EsAbono — otherwise the
	// server recomputes it
	MontoEditado decimal.Decimal `json:"monto_editado" validate:"min=0"`
	// MontoManual marks MontoEditado as fixed after a currency toggle:
	// the stored value came from converting the previous one, not from
	// re-deriving off the invoice
	MontoManual bool `json:"monto_manual"`
}

// ─── Response DTOs ───────────────────────────────────────────────────────────

// PreviewPagoResponse is the calculator output for one cuenta + overlay.
type PreviewPagoResponse struct {
	CuentaID string `json:"cuenta_id"`

	MontoOriginalBs  decimal.Decimal `json:"monto_original_bs"`
	MontoOriginalUsd decimal.Decimal `json:"monto_original_usd"`

	// NuevoMontoEnBsAPagar re-expresses the invoice at the payment rate,
	// always through the USD leg
	NuevoMontoEnBsAPagar decimal.Decimal `json:"nuevo_monto_en_bs_a_pagar"`

	Descuento1Valor decimal.Decimal `json:"descuento1_valor"`
	Descuento2Valor decimal.Decimal `json:"descuento2_valor"`
	TotalDescuentos decimal.Decimal `json:"total_descuentos"`

	MontoEditado   decimal.Decimal `json:"monto_editado"`
	TotalAcreditar decimal.Decimal `json:"total_acreditar"`
	NuevoSaldo     decimal.Decimal `json:"nuevo_saldo"`
}

type PagoResponse struct {
	ID            string          `json:"id"`
	CuentaID      string          `json:"cuenta_id"`
	Moneda        string          `json:"moneda"`
	Monto         decimal.Decimal `json:"monto"`
	Tasa          decimal.Decimal `json:"tasa"`
	Referencia    string          `json:"referencia"`
	BancoEmisor   string          `json:"banco_emisor"`
	BancoReceptor string          `json:"banco_receptor"`
	Fecha         string          `json:"fecha"`
	Retencion     decimal.Decimal `json:"retencion"`
	EsAbono       bool            `json:"es_abono"`
	CreatedAt     string          `json:"created_at"`
}

// PagoMasivoResponse reports the batch outcome. On partial failure Procesados
// counts the pagos recorded before the failing item; recorded pagos are never
// rolled back.
type PagoMasivoResponse struct {
	Procesados int            `json:"procesados"`
	Total      int            `json:"total"`
	Pagos      []PagoResponse `json:"pagos"`
	// Advertencia flags non-blocking conditions, e.g. mixed currencies
	// across the selected cuentas
	Advertencia string  `json:"advertencia,omitempty"`
	Error       *string `json:"error,omitempty"`
}

// TotalAPagarResponse aggregates the pending previews of a batch.
type TotalAPagarResponse struct {
	TotalBs  decimal.Decimal       `json:"total_bs"`
	Cuentas  []PreviewPagoResponse `json:"cuentas"`
	Monedas  []string              `json:"monedas"`
	Mezclada bool                  `json:"mezclada"`
}
