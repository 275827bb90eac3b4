package money

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func dec(s string) decimal.Decimal { return decimal.RequireFromString(s) }

func TestToBs_MismaMoneda(t *testing.T) {
	got, ok := ToBs(New(dec("1500.50"), Bs), decimal.Zero)
	require.True(t, ok, "Bs→Bs no requiere tasa")
	assert.True(t, got.Equal(dec("1500.50")))
}

func TestToUsd_MismaMoneda(t *testing.T) {
	got, ok := ToUsd(New(dec("37.25"), USD), decimal.Zero)
	require.True(t, ok)
	assert.True(t, got.Equal(dec("37.25")))
}

func TestToBs_DesdeUsd(t *testing.T) {
	got, ok := ToBs(New(dec("100"), USD), dec("40"))
	require.True(t, ok)
	assert.True(t, got.Equal(dec("4000")))
}

func TestToUsd_DesdeBs(t *testing.T) {
	got, ok := ToUsd(New(dec("4000"), Bs), dec("40"))
	require.True(t, ok)
	assert.True(t, got.Equal(dec("100")))
}

// Una tasa cero reporta "no disponible" en ambas direcciones — nunca un cero
// silencioso ni un pánico.
func TestTasaCero_NoDisponibleEnAmbasDirecciones(t *testing.T) {
	_, ok := ToBs(New(dec("100"), USD), decimal.Zero)
	assert.False(t, ok)

	_, ok = ToUsd(New(dec("100"), Bs), decimal.Zero)
	assert.False(t, ok)

	_, ok = ToUsd(New(dec("100"), Bs), dec("-1"))
	assert.False(t, ok)
}

func TestMonedaDesconocida(t *testing.T) {
	_, ok := ToBs(Money{Monto: dec("10"), Moneda: "EUR"}, dec("40"))
	assert.False(t, ok)
}

// Round-trip: toUsd(toBs(x, USD, tasa), Bs, tasa) ≈ x.
func TestConversionRoundTrip(t *testing.T) {
	casos := []struct{ monto, tasa string }{
		{"1", "36.5"},
		{"100", "40"},
		{"1234.56", "39.8712"},
		{"0.01", "7.33"},
	}
	for _, c := range casos {
		enBs, ok := ToBs(New(dec(c.monto), USD), dec(c.tasa))
		require.True(t, ok)
		backToUsd, ok := ToUsd(New(enBs, Bs), dec(c.tasa))
		require.True(t, ok)

		drift := backToUsd.Sub(dec(c.monto)).Abs()
		assert.True(t, drift.LessThan(dec("0.000001")),
			"monto=%s tasa=%s drift=%s", c.monto, c.tasa, drift)
	}
}

func TestRedondeo(t *testing.T) {
	assert.True(t, RedondearMonto(dec("1.005")).Equal(dec("1.01")))
	assert.True(t, RedondearDiferencia(dec("1.24995")).Equal(dec("1.25")))
	assert.True(t, RedondearDiferencia(dec("0.00004")).Equal(dec("0")))
}
