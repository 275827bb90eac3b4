package service

import (
	"context"
	"testing"
	"time"

	"rapifarma/internal/dto"
	"rapifarma/internal/model"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func cuentaRequest() dto.CrearCuentaRequest {
	return dto.CrearCuentaRequest{
		FarmaciaID:    "caja1",
		NumeroFactura: "F-0001",
		Monto:         dec("100"),
		Divisa:        "USD",
		Tasa:          dec("36"),
		FechaEmision:  "2026-08-01",
		DiasCredito:   30,
	}
}

func TestCrearCuentaDerivaAmbasMonedas(t *testing.T) {
	svc := NewCuentaService(newFakeCuentaRepo())

	resp, err := svc.Crear(context.Background(), cuentaRequest())
	require.NoError(t, err)

	assert.Equal(t, model.EstatusWait, resp.Estatus)
	assert.Equal(t, model.TipoCuentaPorPagar, resp.Tipo, "tipo por defecto")
	require.NotNil(t, resp.MontoBs)
	require.NotNil(t, resp.MontoUSD)
	assert.True(t, resp.MontoBs.Equal(dec("3600")))
	assert.True(t, resp.MontoUSD.Equal(dec("100")))
	assert.Equal(t, "2026-08-31", resp.FechaVencimiento)
}

func TestCrearCuentaTasaCeroSinVistaConvertida(t *testing.T) {
	svc := NewCuentaService(newFakeCuentaRepo())

	req := cuentaRequest()
	req.Divisa = "Bs"
	req.Monto = dec("3600")
	req.Tasa = dec("0")

	resp, err := svc.Crear(context.Background(), req)
	require.NoError(t, err)

	require.NotNil(t, resp.MontoBs, "el lado nativo siempre existe")
	assert.True(t, resp.MontoBs.Equal(dec("3600")))
	assert.Nil(t, resp.MontoUSD, "sin tasa el otro lado queda en nil (el cliente muestra \"--\")")
}

func TestCuentaVencida(t *testing.T) {
	repo := newFakeCuentaRepo()
	svc := NewCuentaService(repo)

	cuenta := cuentaUSD("100", "36")
	cuenta.FechaEmision = time.Now().AddDate(0, 0, -45) // 45 días atrás, 30 de crédito
	repo.cuentas[cuenta.ID] = cuenta

	resp, err := svc.Obtener(context.Background(), cuenta.ID)
	require.NoError(t, err)

	assert.True(t, resp.Vencida)
	assert.Negative(t, resp.DiasRestantes)
}

func TestCuentaTotalPagadoAcumulaCadaTasa(t *testing.T) {
	repo := newFakeCuentaRepo()
	svc := NewCuentaService(repo)

	cuenta := cuentaUSD("100", "36")
	cuenta.Pagos = []model.Pago{
		{Moneda: "Bs", Monto: dec("1000"), Tasa: dec("36")},
		{Moneda: "USD", Monto: dec("50"), Tasa: dec("40")}, // 2000 Bs a su propia tasa
	}
	repo.cuentas[cuenta.ID] = cuenta

	resp, err := svc.Obtener(context.Background(), cuenta.ID)
	require.NoError(t, err)

	assert.True(t, resp.TotalPagadoBs.Equal(dec("3000")), "TotalPagadoBs = %s", resp.TotalPagadoBs)
}

func TestCambiarEstatusValida(t *testing.T) {
	repo := newFakeCuentaRepo()
	svc := NewCuentaService(repo)

	cuenta := cuentaUSD("100", "36")
	repo.cuentas[cuenta.ID] = cuenta

	require.NoError(t, svc.CambiarEstatus(context.Background(), cuenta.ID, model.EstatusPagada))
	assert.Equal(t, model.EstatusPagada, cuenta.Estatus)

	err := svc.CambiarEstatus(context.Background(), cuenta.ID, "cancelado")
	assert.Error(t, err, "estatus fuera del conjunto cerrado")
}

func TestCambiarTipoValida(t *testing.T) {
	repo := newFakeCuentaRepo()
	svc := NewCuentaService(repo)

	cuenta := cuentaUSD("100", "36")
	repo.cuentas[cuenta.ID] = cuenta

	require.NoError(t, svc.CambiarTipo(context.Background(), cuenta.ID, model.TipoTraslado))
	assert.Equal(t, model.TipoTraslado, cuenta.Tipo)

	err := svc.CambiarTipo(context.Background(), cuenta.ID, "otro")
	assert.Error(t, err)
}

func TestListarFiltraPorEstatus(t *testing.T) {
	repo := newFakeCuentaRepo()
	svc := NewCuentaService(repo)

	activa := cuentaUSD("100", "36")
	pagada := cuentaUSD("200", "36")
	pagada.Estatus = model.EstatusPagada
	repo.cuentas[activa.ID] = activa
	repo.cuentas[pagada.ID] = pagada

	resp, err := svc.Listar(context.Background(), "caja1", model.EstatusActiva, 1, 20)
	require.NoError(t, err)
	require.Len(t, resp.Data, 1)
	assert.Equal(t, activa.ID.String(), resp.Data[0].ID)

	_, err = svc.Listar(context.Background(), "caja1", "desconocido", 1, 20)
	assert.Error(t, err)
}
