package dto

import "github.com/shopspring/decimal"

// ─── Request DTOs ────────────────────────────────────────────────────────────

type PuntoVentaRequest struct {
	Banco        string          `json:"banco"         validate:"required,min=2"`
	PuntoDebito  decimal.Decimal `json:"punto_debito"  validate:"min=0"`
	PuntoCredito decimal.Decimal `json:"punto_credito" validate:"min=0"`
}

// CrearCuadreRequest carries one register session: identity, raw inputs and
// the attached receipt object keys. Derived totals are never accepted from
// the client — the server recomputes them.
type CrearCuadreRequest struct {
	Dia        string `json:"dia"         validate:"required,datetime=2006-01-02"`
	CajaNumero int    `json:"caja_numero" validate:"required,min=1"`
	Turno      string `json:"turno"       validate:"required"`
	Cajero     string `json:"cajero"      validate:"required"`

	Tasa decimal.Decimal `json:"tasa" validate:"required,gt=0"`

	TotalCajaSistemaBs decimal.Decimal     `json:"total_caja_sistema_bs" validate:"min=0"`
	EfectivoBs         decimal.Decimal     `json:"efectivo_bs"           validate:"min=0"`
	PagomovilBs        decimal.Decimal     `json:"pagomovil_bs"          validate:"min=0"`
	PuntosVenta        []PuntoVentaRequest `json:"puntos_venta"          validate:"dive"`
	EfectivoUsd        decimal.Decimal     `json:"efectivo_usd"          validate:"min=0"`
	ZelleUsd           decimal.Decimal     `json:"zelle_usd"             validate:"min=0"`
	ValesUsd           decimal.Decimal     `json:"vales_usd"             validate:"min=0"`
	CostoInventario    decimal.Decimal     `json:"costo_inventario"      validate:"required,gt=0"`
	DevolucionesBs     decimal.Decimal     `json:"devoluciones_bs"       validate:"min=0"`
	RecargaBs          decimal.Decimal     `json:"recarga_bs"            validate:"min=0"`

	// Comprobantes are object-storage keys of the receipt images (1–4)
	Comprobantes []string `json:"comprobantes" validate:"required,min=1,max=4,dive,required"`
}

type CambiarEstadoCuadreRequest struct {
	Estado string `json:"estado" validate:"required,oneof=verified denied"`
}

// ─── Response DTOs ───────────────────────────────────────────────────────────

// TotalesCuadre holds every derived reconciliation figure.
type TotalesCuadre struct {
	TotalBs                    decimal.Decimal `json:"total_bs"`
	TotalBsEnUsd               decimal.Decimal `json:"total_bs_en_usd"`
	TotalCajaSistemaMenosVales decimal.Decimal `json:"total_caja_sistema_menos_vales"`
	TotalGeneralUsd            decimal.Decimal `json:"total_general_usd"`
	DiferenciaUsd              decimal.Decimal `json:"diferencia_usd"`
	SobranteUsd                decimal.Decimal `json:"sobrante_usd"`
	FaltanteUsd                decimal.Decimal `json:"faltante_usd"`
}

type CuadreResponse struct {
	ID         string `json:"id"`
	FarmaciaID string `json:"farmacia_id"`
	Dia        string `json:"dia"`
	CajaNumero int    `json:"caja_numero"`
	Turno      string `json:"turno"`
	Cajero     string `json:"cajero"`

	Tasa decimal.Decimal `json:"tasa"`

	TotalCajaSistemaBs decimal.Decimal     `json:"total_caja_sistema_bs"`
	EfectivoBs         decimal.Decimal     `json:"efectivo_bs"`
	PagomovilBs        decimal.Decimal     `json:"pagomovil_bs"`
	PuntosVenta        []PuntoVentaRequest `json:"puntos_venta"`
	EfectivoUsd        decimal.Decimal     `json:"efectivo_usd"`
	ZelleUsd           decimal.Decimal     `json:"zelle_usd"`
	ValesUsd           decimal.Decimal     `json:"vales_usd"`
	CostoInventario    decimal.Decimal     `json:"costo_inventario"`

	Totales TotalesCuadre `json:"totales"`

	Estado string `json:"estado"`
	// RequiereConfirmacion is the UX gate: |diferencia| above tolerance.
	// It never blocks persistence.
	RequiereConfirmacion bool `json:"requiere_confirmacion"`

	Comprobantes []string `json:"comprobantes"`
	CreatedAt    string   `json:"created_at"`
}
