//go:build integration

package router_test

// End-to-end tests against real Postgres + Redis via testcontainers.
// Run with: go test -tags integration ./internal/router/... -v
//
// Covered flows:
//   - login → crear cuadre → verificar (alcance por farmacia incluido)
//   - crear cuenta por pagar → registrar pago → estatus explícito
//   - carrito de orden de compra → agrupación por farmacia

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"rapifarma/internal/config"
	"rapifarma/internal/infra"
	"rapifarma/internal/router"
	"rapifarma/internal/worker"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	tcPostgres "github.com/testcontainers/testcontainers-go/modules/postgres"
	tcRedis "github.com/testcontainers/testcontainers-go/modules/redis"
)

// ── Helpers ──────────────────────────────────────────────────────────────────

func jsonBody(t *testing.T, v any) *bytes.Buffer {
	t.Helper()
	b, err := json.Marshal(v)
	require.NoError(t, err)
	return bytes.NewBuffer(b)
}

func do(t *testing.T, srv *httptest.Server, method, path string, body *bytes.Buffer, token string) *http.Response {
	t.Helper()
	var req *http.Request
	var err error
	if body != nil {
		req, err = http.NewRequest(method, srv.URL+path, body)
	} else {
		req, err = http.NewRequest(method, srv.URL+path, nil)
	}
	require.NoError(t, err)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	resp, err := srv.Client().Do(req)
	require.NoError(t, err)
	return resp
}

func decodeJSON(t *testing.T, resp *http.Response, dest any) {
	t.Helper()
	defer resp.Body.Close()
	require.NoError(t, json.NewDecoder(resp.Body).Decode(dest))
}

// ── Setup ────────────────────────────────────────────────────────────────────

type testEnv struct {
	server *httptest.Server
	token  string
}

func setupTestEnv(t *testing.T) *testEnv {
	t.Helper()
	ctx := context.Background()

	pgC, err := tcPostgres.RunContainer(ctx,
		testcontainers.WithImage("postgres:15-alpine"),
		tcPostgres.WithDatabase("rapifarma_test"),
		tcPostgres.WithUsername("rapifarma"),
		tcPostgres.WithPassword("rapifarma"),
		testcontainers.WithWaitStrategy(
			tcPostgres.BasicWaitStrategies()...,
		),
	)
	require.NoError(t, err)
	t.Cleanup(func() { _ = pgC.Terminate(ctx) })

	pgURL, err := pgC.ConnectionString(ctx, "sslmode=disable")
	require.NoError(t, err)

	rdC, err := tcRedis.RunContainer(ctx,
		testcontainers.WithImage("redis:7-alpine"),
	)
	require.NoError(t, err)
	t.Cleanup(func() { _ = rdC.Terminate(ctx) })

	rdURL, err := rdC.ConnectionString(ctx)
	require.NoError(t, err)

	cfg := &config.Config{
		Port:               8000,
		Env:                "test",
		JWTSecret:          "test-secret-key",
		JWTExpirationHours: 8,
		JWTRefreshHours:    24,
		DatabaseURL:        pgURL,
		RedisURL:           rdURL,
		S3Endpoint:         "localhost:9000", // unused: no presigned-url flow here
		S3Bucket:           "test",
		WorkerPoolSize:     1,
		PDFStoragePath:     t.TempDir(),
		LotesBatchSize:     300,
		ExcelMaxMB:         10,
	}

	db, err := infra.NewDatabase(cfg.DatabaseURL)
	require.NoError(t, err)
	rdb, err := infra.NewRedis(cfg.RedisURL)
	require.NoError(t, err)

	// Usuario con acceso a caja1/caja2 y todos los permisos ("1234")
	err = db.Exec(`INSERT INTO usuarios (id, correo, nombre, password_hash, farmacias, permisos, activo, created_at)
		VALUES (gen_random_uuid(), 'admin@e2e.test', 'Admin E2E',
		        '$2a$12$6zcbRzN1cj4B7bqbIp.LOukxBkHZvhKFxrlDTqX61mzKFN7N0dJIi',
		        '{"caja1": "Farmacia 1", "caja2": "Farmacia 2"}'::jsonb,
		        '["cuadres", "cuentas", "pagos", "listas", "ordenes"]'::jsonb,
		        true, NOW())
		ON CONFLICT DO NOTHING`).Error
	require.NoError(t, err)

	storageCB := infra.NewCircuitBreaker(infra.DefaultCBConfig())
	storage, err := infra.NewStorage(cfg, storageCB)
	require.NoError(t, err)

	engine := router.New(cfg, db, rdb, storageCB, storage, worker.NewDispatcher(rdb))
	srv := httptest.NewServer(engine)
	t.Cleanup(srv.Close)

	// Login
	resp := do(t, srv, http.MethodPost, "/v1/auth/login",
		jsonBody(t, map[string]string{"correo": "admin@e2e.test", "password": "1234"}), "")
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var login struct {
		AccessToken string `json:"access_token"`
	}
	decodeJSON(t, resp, &login)
	require.NotEmpty(t, login.AccessToken)

	return &testEnv{server: srv, token: login.AccessToken}
}

// ── Flows ────────────────────────────────────────────────────────────────────

func TestE2ECuadreFlujoCompleto(t *testing.T) {
	env := setupTestEnv(t)

	body := map[string]any{
		"dia":                   "2026-08-15",
		"caja_numero":           1,
		"turno":                 "mañana",
		"cajero":                "María Pérez",
		"tasa":                  "40",
		"total_caja_sistema_bs": "950",
		"efectivo_bs":           "1000",
		"costo_inventario":      "500",
		"comprobantes":          []string{"cuadres/2026-08-15/recibo.jpg"},
	}

	resp := do(t, env.server, http.MethodPost, "/v1/agg/cuadre/caja1", jsonBody(t, body), env.token)
	require.Equal(t, http.StatusCreated, resp.StatusCode)

	var cuadre struct {
		ID      string `json:"id"`
		Estado  string `json:"estado"`
		Totales struct {
			SobranteUsd string `json:"sobrante_usd"`
		} `json:"totales"`
		RequiereConfirmacion bool `json:"requiere_confirmacion"`
	}
	decodeJSON(t, resp, &cuadre)
	assert.Equal(t, "wait", cuadre.Estado)
	assert.Equal(t, "1.25", cuadre.Totales.SobranteUsd)
	assert.True(t, cuadre.RequiereConfirmacion)

	// Farmacia fuera del alcance del token → prohibido
	resp = do(t, env.server, http.MethodPost, "/v1/agg/cuadre/caja9", jsonBody(t, body), env.token)
	assert.Equal(t, http.StatusForbidden, resp.StatusCode)
	resp.Body.Close()

	// Duplicado de identidad → rechazado
	resp = do(t, env.server, http.MethodPost, "/v1/agg/cuadre/caja1", jsonBody(t, body), env.token)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	resp.Body.Close()

	// Verificación
	resp = do(t, env.server, http.MethodPatch,
		fmt.Sprintf("/v1/cuadres/caja1/%s/estado", cuadre.ID),
		jsonBody(t, map[string]string{"estado": "verified"}), env.token)
	assert.Equal(t, http.StatusNoContent, resp.StatusCode)
	resp.Body.Close()

	// Doble resolución → rechazada
	resp = do(t, env.server, http.MethodPatch,
		fmt.Sprintf("/v1/cuadres/caja1/%s/estado", cuadre.ID),
		jsonBody(t, map[string]string{"estado": "denied"}), env.token)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	resp.Body.Close()
}

func TestE2ECuentaYPago(t *testing.T) {
	env := setupTestEnv(t)

	resp := do(t, env.server, http.MethodPost, "/v1/cuentas-por-pagar", jsonBody(t, map[string]any{
		"farmacia_id":    "caja1",
		"numero_factura": "F-100",
		"monto":          "100",
		"divisa":         "USD",
		"tasa":           "36",
		"fecha_emision":  "2026-08-01",
		"dias_credito":   30,
	}), env.token)
	require.Equal(t, http.StatusCreated, resp.StatusCode)

	var cuenta struct {
		ID      string  `json:"id"`
		Estatus string  `json:"estatus"`
		MontoBs *string `json:"monto_bs"`
	}
	decodeJSON(t, resp, &cuenta)
	assert.Equal(t, "wait", cuenta.Estatus)
	require.NotNil(t, cuenta.MontoBs)
	assert.Equal(t, "3600", *cuenta.MontoBs)

	// Pago completo: el estatus NO cambia solo
	resp = do(t, env.server, http.MethodPost, "/v1/pagoscpp", jsonBody(t, map[string]any{
		"cuenta_id": cuenta.ID,
		"moneda":    "USD",
		"monto":     "100",
		"tasa":      "40",
		"fecha":     "2026-08-20",
	}), env.token)
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	resp.Body.Close()

	resp = do(t, env.server, http.MethodGet, "/v1/cuentas-por-pagar/"+cuenta.ID, nil, env.token)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var tras struct {
		Estatus       string `json:"estatus"`
		TotalPagadoBs string `json:"total_pagado_bs"`
	}
	decodeJSON(t, resp, &tras)
	assert.Equal(t, "wait", tras.Estatus, "marcar pagada es una acción explícita")
	assert.Equal(t, "4000", tras.TotalPagadoBs)

	// Transición explícita
	resp = do(t, env.server, http.MethodPatch, "/v1/cuentas-por-pagar/"+cuenta.ID+"/estatus",
		jsonBody(t, map[string]string{"estatus": "pagada"}), env.token)
	assert.Equal(t, http.StatusNoContent, resp.StatusCode)
	resp.Body.Close()
}

func TestE2EOrdenCompra(t *testing.T) {
	env := setupTestEnv(t)

	// Sembrar un renglón de lista vía batch
	resp := do(t, env.server, http.MethodPost, "/v1/listas-comparativas/batch", jsonBody(t, map[string]any{
		"proveedor_id": "5f9f1c5b-95ab-4c32-a1b5-c6548f0b42d1",
		"rows": []map[string]any{
			{"codigo": "A-01", "descripcion": "Acetaminofén 500mg", "precio_neto": "12.50", "existencia": 10},
		},
	}), env.token)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	resp.Body.Close()

	resp = do(t, env.server, http.MethodGet, "/v1/listas-comparativas?codigo=A-01", nil, env.token)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var listas []struct {
		ID string `json:"id"`
	}
	decodeJSON(t, resp, &listas)
	require.Len(t, listas, 1)

	// Agregar dos veces el mismo renglón fusiona cantidades
	for range 2 {
		resp = do(t, env.server, http.MethodPost, "/v1/orden-compra/items", jsonBody(t, map[string]any{
			"lista_id": listas[0].ID, "farmacia": "caja1", "cantidad": 2,
		}), env.token)
		require.Equal(t, http.StatusOK, resp.StatusCode)
		resp.Body.Close()
	}

	resp = do(t, env.server, http.MethodGet, "/v1/orden-compra", nil, env.token)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var orden struct {
		Grupos []struct {
			Farmacia string `json:"farmacia"`
			Items    []struct {
				Cantidad int `json:"cantidad"`
			} `json:"items"`
		} `json:"grupos"`
		TotalGeneral string `json:"total_general"`
	}
	decodeJSON(t, resp, &orden)
	require.Len(t, orden.Grupos, 1)
	require.Len(t, orden.Grupos[0].Items, 1)
	assert.Equal(t, 4, orden.Grupos[0].Items[0].Cantidad)
	assert.Equal(t, "50", orden.TotalGeneral)
}
