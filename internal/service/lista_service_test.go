package service

import (
	"context"
	"fmt"
	"testing"

	"rapifarma/internal/dto"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
)

func excelDemo(t *testing.T, rows [][]interface{}) []byte {
	t.Helper()
	f := excelize.NewFile()
	defer f.Close()
	sheet := f.GetSheetName(0)

	header := []interface{}{"Código", "Descripción", "Laboratorio", "Precio Neto", "Existencia"}
	require.NoError(t, f.SetSheetRow(sheet, "A1", &header))
	for i, row := range rows {
		cell := fmt.Sprintf("A%d", i+2)
		require.NoError(t, f.SetSheetRow(sheet, cell, &row))
	}

	buf, err := f.WriteToBuffer()
	require.NoError(t, err)
	return buf.Bytes()
}

func TestImportarExcel(t *testing.T) {
	repo := newFakeListaRepo()
	svc := NewListaService(repo, 300)

	data := excelDemo(t, [][]interface{}{
		{"A-01", "Acetaminofén 500mg", "Genven", "12,50", 100},
		{"B-02", "Ibuprofeno 400mg", "Calox", "8.75", 40},
	})

	resp, err := svc.ImportarExcel(context.Background(), uuid.New(), data)
	require.NoError(t, err)

	assert.Equal(t, 2, resp.Total)
	assert.Equal(t, 2, resp.Importadas)
	assert.Empty(t, resp.Errores)
	assert.Len(t, repo.listas, 2)
}

func TestImportarExcelFilasMalformadasNoDetienen(t *testing.T) {
	repo := newFakeListaRepo()
	svc := NewListaService(repo, 300)

	data := excelDemo(t, [][]interface{}{
		{"A-01", "Acetaminofén 500mg", "Genven", "12,50", 100},
		{"", "Sin código", "Calox", "8.75", 40},
		{"C-03", "Loratadina 10mg", "Leti", "no-es-precio", 5},
		{"D-04", "Omeprazol 20mg", "Calox", "3.10", 12},
	})

	resp, err := svc.ImportarExcel(context.Background(), uuid.New(), data)
	require.NoError(t, err)

	assert.Equal(t, 4, resp.Total)
	assert.Equal(t, 2, resp.Importadas)
	assert.Len(t, resp.Errores, 2, "cada fila inválida se reporta con su número")
}

func TestImportarExcelArchivoInvalido(t *testing.T) {
	svc := NewListaService(newFakeListaRepo(), 300)

	_, err := svc.ImportarExcel(context.Background(), uuid.New(), []byte("esto no es un xlsx"))
	assert.Error(t, err)
}

func TestImportarExcelFallaParcialReportaImportadas(t *testing.T) {
	repo := newFakeListaRepo()
	repo.failAfter = 1
	svc := NewListaService(repo, 300)

	data := excelDemo(t, [][]interface{}{
		{"A-01", "Acetaminofén 500mg", "Genven", "12.50", 100},
		{"B-02", "Ibuprofeno 400mg", "Calox", "8.75", 40},
	})

	resp, err := svc.ImportarExcel(context.Background(), uuid.New(), data)
	require.NoError(t, err)

	assert.Equal(t, 1, resp.Importadas, "cuenta las filas que entraron antes de la falla")
	assert.NotEmpty(t, resp.Errores)
}

func TestImportarBatchRespetaMaximo(t *testing.T) {
	svc := NewListaService(newFakeListaRepo(), 3)

	rows := make([]dto.ListaRowRequest, 4)
	for i := range rows {
		rows[i] = dto.ListaRowRequest{Codigo: fmt.Sprintf("C-%d", i), Descripcion: "Producto", PrecioNeto: dec("1")}
	}

	_, err := svc.ImportarBatch(context.Background(), dto.ListaBatchRequest{
		ProveedorID: uuid.NewString(),
		Rows:        rows,
	})
	require.Error(t, err, "4 filas con máximo 3")

	resp, err := svc.ImportarBatch(context.Background(), dto.ListaBatchRequest{
		ProveedorID: uuid.NewString(),
		Rows:        rows[:3],
	})
	require.NoError(t, err)
	assert.Equal(t, 3, resp.Importadas)
}

func TestImportarBatchProveedorInvalido(t *testing.T) {
	svc := NewListaService(newFakeListaRepo(), 300)

	_, err := svc.ImportarBatch(context.Background(), dto.ListaBatchRequest{
		ProveedorID: "no-uuid",
		Rows:        []dto.ListaRowRequest{{Codigo: "A", Descripcion: "B", PrecioNeto: dec("1")}},
	})
	assert.Error(t, err)
}

func TestParseListaRow(t *testing.T) {
	lista, err := parseListaRow([]string{"A-01", "Acetaminofén 500mg", "Genven", "12,50", "100"})
	require.NoError(t, err)
	assert.Equal(t, "A-01", lista.Codigo)
	assert.True(t, lista.PrecioNeto.Equal(dec("12.5")), "la coma decimal se normaliza")
	assert.Equal(t, 100, lista.Existencia)

	// Existencia opcional
	lista, err = parseListaRow([]string{"A-01", "Acetaminofén", "Genven", "12.50"})
	require.NoError(t, err)
	assert.Equal(t, 0, lista.Existencia)

	_, err = parseListaRow([]string{"A-01", "Acetaminofén"})
	assert.Error(t, err, "faltan columnas")

	_, err = parseListaRow([]string{"A-01", "Acetaminofén", "Genven", "-5"})
	assert.Error(t, err, "precio negativo")

	_, err = parseListaRow([]string{"A-01", "Acetaminofén", "Genven", "12.50", "-1"})
	assert.Error(t, err, "existencia negativa")
}
