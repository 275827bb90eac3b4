// Package money define el tipo de valor monetario etiquetado por moneda y la
// conversión Bs ⇄ USD vía tasa de cambio. Toda la aritmética monetaria del
// sistema pasa por aquí — mezclar monedas sin conversión es un error de tipo,
// no un cero silencioso.
package money

import "github.com/shopspring/decimal"

// Moneda identifica la divisa de un monto.
// Valores válidos: "Bs" | "USD"
type Moneda string

const (
	Bs  Moneda = "Bs"
	USD Moneda = "USD"
)

// Valida reports whether m is a known currency.
func (m Moneda) Valida() bool { return m == Bs || m == USD }

// Money es un monto no negativo etiquetado con su divisa.
type Money struct {
	Monto  decimal.Decimal `json:"monto"`
	Moneda Moneda          `json:"moneda"`
}

func New(monto decimal.Decimal, moneda Moneda) Money {
	return Money{Monto: monto, Moneda: moneda}
}

// TasaValida reports whether tasa can be used for conversion.
// A zero or negative rate means "conversion unavailable" — callers must
// render a placeholder instead of dividing.
func TasaValida(tasa decimal.Decimal) bool { return tasa.IsPositive() }

// ToBs convierte m a bolívares usando tasa (Bs por USD).
// ok=false cuando la conversión requiere una tasa y ésta no es válida.
// Una tasa inválida reporta "no disponible" en AMBAS direcciones: convertir
// USD→Bs sin tasa no rinde 0.
func ToBs(m Money, tasa decimal.Decimal) (decimal.Decimal, bool) {
	switch m.Moneda {
	case Bs:
		return m.Monto, true
	case USD:
		if !TasaValida(tasa) {
			return decimal.Zero, false
		}
		return m.Monto.Mul(tasa), true
	default:
		return decimal.Zero, false
	}
}

// ToUsd convierte m a dólares usando tasa (Bs por USD).
// ok=false cuando la tasa es inválida y se requiere dividir.
func ToUsd(m Money, tasa decimal.Decimal) (decimal.Decimal, bool) {
	switch m.Moneda {
	case USD:
		return m.Monto, true
	case Bs:
		if !TasaValida(tasa) {
			return decimal.Zero, false
		}
		return m.Monto.DivRound(tasa, 8), true
	default:
		return decimal.Zero, false
	}
}

// Rounding policy: 2 decimals for Bs/USD display amounts, 4 decimals for
// rate-sensitive reconciliation fields (diferencia, sobrante, faltante).
const (
	DecimalesMonto      = 2
	DecimalesDiferencia = 4
)

// RedondearMonto rounds for display/persistence of ordinary amounts.
func RedondearMonto(d decimal.Decimal) decimal.Decimal {
	return d.Round(DecimalesMonto)
}

// RedondearDiferencia rounds reconciliation difference fields.
func RedondearDiferencia(d decimal.Decimal) decimal.Decimal {
	return d.Round(DecimalesDiferencia)
}
