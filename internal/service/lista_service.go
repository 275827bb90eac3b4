package service

import (
	"bytes"
	"context"
	"fmt"
	"strconv"
	"strings"

	"rapifarma/internal/dto"
	"rapifarma/internal/model"
	"rapifarma/internal/repository"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/xuri/excelize/v2"
)

type ListaService interface {
	// ImportarExcel parses a small (≤ 10 MB) spreadsheet server-side
	ImportarExcel(ctx context.Context, proveedorID uuid.UUID, data []byte) (*dto.ListaImportResponse, error)
	// ImportarBatch ingests one pre-parsed JSON chunk (≤ maxBatch rows)
	ImportarBatch(ctx context.Context, req dto.ListaBatchRequest) (*dto.ListaImportResponse, error)
	Buscar(ctx context.Context, codigo, descripcion string, limit int) ([]dto.ListaResponse, error)
}

type listaService struct {
	repo     repository.ListaRepository
	maxBatch int
}

func NewListaService(repo repository.ListaRepository, maxBatch int) ListaService {
	if maxBatch <= 0 {
		maxBatch = 300
	}
	return &listaService{repo: repo, maxBatch: maxBatch}
}

// ── ImportarExcel ─────────────────────────────────────────────────────────────
// Expected layout: header row, then columns
// codigo | descripcion | laboratorio | precio_neto | existencia.
// Malformed rows are skipped and reported, not fatal.

func (s *listaService) ImportarExcel(ctx context.Context, proveedorID uuid.UUID, data []byte) (*dto.ListaImportResponse, error) {
	f, err := excelize.OpenReader(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("archivo excel inválido: %w", err)
	}
	defer f.Close()

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return nil, fmt.Errorf("el archivo no contiene hojas")
	}
	rows, err := f.GetRows(sheets[0])
	if err != nil {
		return nil, fmt.Errorf("no se pudo leer la hoja %q: %w", sheets[0], err)
	}

	resp := &dto.ListaImportResponse{}
	var parsed []model.ListaComparativa

	for i, row := range rows {
		if i == 0 {
			continue // header
		}
		resp.Total++
		lista, err := parseListaRow(row)
		if err != nil {
			resp.Errores = append(resp.Errores, fmt.Sprintf("fila %d: %v", i+1, err))
			continue
		}
		parsed = append(parsed, lista)
	}

	// Persist in transactional chunks so a mid-file failure reports how many
	// rows made it in
	for start := 0; start < len(parsed); start += s.maxBatch {
		end := start + s.maxBatch
		if end > len(parsed) {
			end = len(parsed)
		}
		n, err := s.repo.UpsertBatch(ctx, proveedorID, parsed[start:end])
		resp.Importadas += n
		if err != nil {
			resp.Errores = append(resp.Errores, err.Error())
			return resp, nil
		}
	}
	return resp, nil
}

func (s *listaService) ImportarBatch(ctx context.Context, req dto.ListaBatchRequest) (*dto.ListaImportResponse, error) {
	if len(req.Rows) > s.maxBatch {
		return nil, fmt.Errorf("el lote excede el máximo de %d filas", s.maxBatch)
	}
	proveedorID, err := uuid.Parse(req.ProveedorID)
	if err != nil {
		return nil, fmt.Errorf("proveedor_id inválido: %w", err)
	}

	rows := make([]model.ListaComparativa, 0, len(req.Rows))
	for _, r := range req.Rows {
		rows = append(rows, model.ListaComparativa{
			Codigo:      strings.TrimSpace(r.Codigo),
			Descripcion: strings.TrimSpace(r.Descripcion),
			Laboratorio: strings.TrimSpace(r.Laboratorio),
			PrecioNeto:  r.PrecioNeto,
			Existencia:  r.Existencia,
		})
	}

	resp := &dto.ListaImportResponse{Total: len(rows)}
	n, err := s.repo.UpsertBatch(ctx, proveedorID, rows)
	resp.Importadas = n
	if err != nil {
		resp.Errores = append(resp.Errores, err.Error())
	}
	return resp, nil
}

func (s *listaService) Buscar(ctx context.Context, codigo, descripcion string, limit int) ([]dto.ListaResponse, error) {
	if limit < 1 || limit > 200 {
		limit = 50
	}
	rows, err := s.repo.Search(ctx, codigo, descripcion, limit)
	if err != nil {
		return nil, err
	}
	out := make([]dto.ListaResponse, 0, len(rows))
	for _, r := range rows {
		resp := dto.ListaResponse{
			ID:          r.ID.String(),
			Codigo:      r.Codigo,
			Descripcion: r.Descripcion,
			Laboratorio: r.Laboratorio,
			PrecioNeto:  r.PrecioNeto,
			Existencia:  r.Existencia,
		}
		if r.ProveedorID != nil {
			pid := r.ProveedorID.String()
			resp.ProveedorID = &pid
		}
		out = append(out, resp)
	}
	return out, nil
}

func parseListaRow(row []string) (model.ListaComparativa, error) {
	if len(row) < 4 {
		return model.ListaComparativa{}, fmt.Errorf("faltan columnas (se esperan al menos 4, hay %d)", len(row))
	}
	codigo := strings.TrimSpace(row[0])
	descripcion := strings.TrimSpace(row[1])
	if codigo == "" || descripcion == "" {
		return model.ListaComparativa{}, fmt.Errorf("codigo y descripcion son obligatorios")
	}

	precio, err := decimal.NewFromString(strings.ReplaceAll(strings.TrimSpace(row[3]), ",", "."))
	if err != nil || precio.IsNegative() {
		return model.ListaComparativa{}, fmt.Errorf("precio_neto inválido: %q", row[3])
	}

	existencia := 0
	if len(row) > 4 && strings.TrimSpace(row[4]) != "" {
		existencia, err = strconv.Atoi(strings.TrimSpace(row[4]))
		if err != nil || existencia < 0 {
			return model.ListaComparativa{}, fmt.Errorf("existencia inválida: %q", row[4])
		}
	}

	return model.ListaComparativa{
		Codigo:      codigo,
		Descripcion: descripcion,
		Laboratorio: strings.TrimSpace(row[2]),
		PrecioNeto:  precio,
		Existencia:  existencia,
	}, nil
}
