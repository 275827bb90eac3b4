package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"rapifarma/internal/dto"
	"rapifarma/internal/model"
	"rapifarma/internal/money"
	"rapifarma/internal/repository"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

type CuentaService interface {
	Crear(ctx context.Context, req dto.CrearCuentaRequest) (*dto.CuentaResponse, error)
	Obtener(ctx context.Context, id uuid.UUID) (*dto.CuentaResponse, error)
	Listar(ctx context.Context, farmaciaID, estatus string, page, limit int) (*dto.CuentaListResponse, error)
	CambiarEstatus(ctx context.Context, id uuid.UUID, estatus string) error
	CambiarTipo(ctx context.Context, id uuid.UUID, tipo string) error
}

type cuentaService struct {
	repo repository.CuentaRepository
}

func NewCuentaService(repo repository.CuentaRepository) CuentaService {
	return &cuentaService{repo: repo}
}

func (s *cuentaService) Crear(ctx context.Context, req dto.CrearCuentaRequest) (*dto.CuentaResponse, error) {
	fecha, err := time.Parse("2006-01-02", req.FechaEmision)
	if err != nil {
		return nil, fmt.Errorf("fecha_emision inválida: %w", err)
	}

	tipo := req.Tipo
	if tipo == "" {
		tipo = model.TipoCuentaPorPagar
	}

	cuenta := &model.CuentaPorPagar{
		FarmaciaID:    req.FarmaciaID,
		NumeroFactura: req.NumeroFactura,
		Monto:         req.Monto,
		Divisa:        req.Divisa,
		Tasa:          req.Tasa,
		Retencion:     req.Retencion,
		FechaEmision:  fecha,
		DiasCredito:   req.DiasCredito,
		Estatus:       model.EstatusWait,
		Tipo:          tipo,
	}
	if req.ProveedorID != nil {
		pid, err := uuid.Parse(*req.ProveedorID)
		if err != nil {
			return nil, fmt.Errorf("proveedor_id inválido: %w", err)
		}
		cuenta.ProveedorID = &pid
	}

	if err := s.repo.Create(ctx, cuenta); err != nil {
		return nil, err
	}
	return cuentaToResponse(cuenta, time.Now()), nil
}

func (s *cuentaService) Obtener(ctx context.Context, id uuid.UUID) (*dto.CuentaResponse, error) {
	cuenta, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, errors.New("cuenta no encontrada")
	}
	return cuentaToResponse(cuenta, time.Now()), nil
}

func (s *cuentaService) Listar(ctx context.Context, farmaciaID, estatus string, page, limit int) (*dto.CuentaListResponse, error) {
	if estatus != "" && !model.EstatusValido(estatus) {
		return nil, fmt.Errorf("estatus desconocido: %s", estatus)
	}
	cuentas, total, err := s.repo.List(ctx, farmaciaID, estatus, page, limit)
	if err != nil {
		return nil, err
	}
	resp := &dto.CuentaListResponse{Page: page, Limit: limit, Total: total}
	hoy := time.Now()
	for i := range cuentas {
		resp.Data = append(resp.Data, *cuentaToResponse(&cuentas[i], hoy))
	}
	return resp, nil
}

// CambiarEstatus is the explicit transition action. Payments accumulating to
// the invoice total never trigger this automatically.
func (s *cuentaService) CambiarEstatus(ctx context.Context, id uuid.UUID, estatus string) error {
	if !model.EstatusValido(estatus) {
		return fmt.Errorf("estatus desconocido: %s", estatus)
	}
	if err := s.repo.UpdateEstatus(ctx, id, estatus); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return errors.New("cuenta no encontrada")
		}
		return err
	}
	return nil
}

func (s *cuentaService) CambiarTipo(ctx context.Context, id uuid.UUID, tipo string) error {
	if !model.TipoValido(tipo) {
		return fmt.Errorf("tipo desconocido: %s", tipo)
	}
	if err := s.repo.UpdateTipo(ctx, id, tipo); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return errors.New("cuenta no encontrada")
		}
		return err
	}
	return nil
}

// ── Helpers ───────────────────────────────────────────────────────────────────

// cuentaToResponse derives both currency views from (monto, divisa, tasa).
// A leg that cannot be converted stays nil so clients render "--".
func cuentaToResponse(c *model.CuentaPorPagar, hoy time.Time) *dto.CuentaResponse {
	original := money.New(c.Monto, money.Moneda(c.Divisa))

	var montoBs, montoUSD *decimal.Decimal
	if bs, ok := money.ToBs(original, c.Tasa); ok {
		v := money.RedondearMonto(bs)
		montoBs = &v
	}
	if usd, ok := money.ToUsd(original, c.Tasa); ok {
		v := money.RedondearMonto(usd)
		montoUSD = &v
	}

	// Accumulate recorded pagos in Bs, each at its own tasa
	totalPagadoBs := decimal.Zero
	for _, p := range c.Pagos {
		if bs, ok := money.ToBs(money.New(p.Monto, money.Moneda(p.Moneda)), p.Tasa); ok {
			totalPagadoBs = totalPagadoBs.Add(bs)
		}
	}

	dias := c.DiasRestantes(hoy)
	resp := &dto.CuentaResponse{
		ID:               c.ID.String(),
		FarmaciaID:       c.FarmaciaID,
		NumeroFactura:    c.NumeroFactura,
		Monto:            c.Monto,
		Divisa:           c.Divisa,
		Tasa:             c.Tasa,
		Retencion:        c.Retencion,
		MontoBs:          montoBs,
		MontoUSD:         montoUSD,
		FechaEmision:     c.FechaEmision.Format("2006-01-02"),
		DiasCredito:      c.DiasCredito,
		FechaVencimiento: c.FechaVencimiento().Format("2006-01-02"),
		DiasRestantes:    dias,
		Vencida:          dias < 0,
		Estatus:          c.Estatus,
		Tipo:             c.Tipo,
		TotalPagadoBs:    money.RedondearMonto(totalPagadoBs),
		CreatedAt:        c.CreatedAt.Format(time.RFC3339),
	}
	if c.ProveedorID != nil {
		pid := c.ProveedorID.String()
		resp.ProveedorID = &pid
	}
	return resp
}
