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
	"rapifarma/internal/store"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

const (
	TipoDescuentoMonto      = "monto"
	TipoDescuentoPorcentaje = "porcentaje"
)

type PagoService interface {
	// Overlay (edición pendiente por cuenta)
	GuardarEdicion(ctx context.Context, userID string, cuentaID uuid.UUID, e dto.EdicionCuentaRequest) (*dto.PreviewPagoResponse, error)
	ObtenerEdicion(ctx context.Context, userID string, cuentaID uuid.UUID) (*dto.EdicionCuentaRequest, error)
	EliminarEdicion(ctx context.Context, userID string, cuentaID uuid.UUID) error
	CambiarMoneda(ctx context.Context, userID string, cuentaID uuid.UUID, nuevaMoneda string) (*dto.PreviewPagoResponse, error)
	TotalAPagar(ctx context.Context, userID string) (*dto.TotalAPagarResponse, error)

	// Registro de pagos
	Registrar(ctx context.Context, req dto.CrearPagoRequest) (*dto.PagoResponse, error)
	RegistrarMasivo(ctx context.Context, userID string, req dto.PagoMasivoRequest) (*dto.PagoMasivoResponse, error)
}

type pagoService struct {
	pagoRepo   repository.PagoRepository
	cuentaRepo repository.CuentaRepository
	overlays   store.OverlayStore
}

func NewPagoService(pagoRepo repository.PagoRepository, cuentaRepo repository.CuentaRepository, overlays store.OverlayStore) PagoService {
	return &pagoService{pagoRepo: pagoRepo, cuentaRepo: cuentaRepo, overlays: overlays}
}

// ── CalcularPago ──────────────────────────────────────────────────────────────
// Pure payment preview over an invoice and its edit overlay. Order matters:
// discounts are sequential (discount 2 compounds on the post-discount-1
// remainder) and retención/abono are subtracted last.
//
//  1. Normalize the original amount to both currencies from (monto, divisa,
//     tasa). A missing original rate degrades the missing leg to 0, never
//     throws.
//  2. Re-express at the payment rate, always through the USD leg:
//     nuevoMontoEnBsAPagar = montoOriginalUsd × tasaPago. This deliberately
//     decouples invoice currency from payment currency.
//  3. descuento1 off the new base (flat, or porcentaje/100 × base).
//  4. descuento2 off the post-discount-1 remainder.
//  5. totalDescuentos = descuento1Valor + descuento2Valor.
//  6. montoEditado: the user's direct entry when esAbono; otherwise
//     base − totalDescuentos − abono − retención.
//  7. totalAcreditar = montoEditado; nuevoSaldo = montoOriginalBs − totalAcreditar.

func CalcularPago(cuenta *model.CuentaPorPagar, e dto.EdicionCuentaRequest) dto.PreviewPagoResponse {
	original := money.New(cuenta.Monto, money.Moneda(cuenta.Divisa))

	montoOriginalBs := decimal.Zero
	if bs, ok := money.ToBs(original, cuenta.Tasa); ok {
		montoOriginalBs = bs
	}
	montoOriginalUsd := decimal.Zero
	if usd, ok := money.ToUsd(original, cuenta.Tasa); ok {
		montoOriginalUsd = usd
	}

	nuevoMonto := montoOriginalUsd.Mul(e.TasaPago)

	d1 := valorDescuento(e.Descuento1, e.TipoDescuento1, nuevoMonto)
	d2 := valorDescuento(e.Descuento2, e.TipoDescuento2, nuevoMonto.Sub(d1))
	totalDescuentos := d1.Add(d2)

	montoEditado := e.MontoEditado
	if !e.EsAbono && !e.MontoManual {
		montoEditado = nuevoMonto.Sub(totalDescuentos).Sub(e.Abono).Sub(e.Retencion)
	}

	return dto.PreviewPagoResponse{
		CuentaID:             cuenta.ID.String(),
		MontoOriginalBs:      money.RedondearMonto(montoOriginalBs),
		MontoOriginalUsd:     money.RedondearMonto(montoOriginalUsd),
		NuevoMontoEnBsAPagar: money.RedondearMonto(nuevoMonto),
		Descuento1Valor:      money.RedondearMonto(d1),
		Descuento2Valor:      money.RedondearMonto(d2),
		TotalDescuentos:      money.RedondearMonto(totalDescuentos),
		MontoEditado:         money.RedondearMonto(montoEditado),
		TotalAcreditar:       money.RedondearMonto(montoEditado),
		NuevoSaldo:           money.RedondearMonto(montoOriginalBs.Sub(montoEditado)),
	}
}

func valorDescuento(d decimal.Decimal, tipo string, base decimal.Decimal) decimal.Decimal {
	if d.IsZero() {
		return decimal.Zero
	}
	if tipo == TipoDescuentoPorcentaje {
		return d.Div(decimal.NewFromInt(100)).Mul(base)
	}
	return d
}

// ConvertirMontoEditado re-expresses an already-edited amount in the other
// currency at tasaPago. It converts the CURRENT value rather than re-deriving
// from the original amount — repeated toggles can accumulate rounding drift,
// bounded here by decimal arithmetic.
func ConvertirMontoEditado(monto decimal.Decimal, desde, hacia money.Moneda, tasaPago decimal.Decimal) (decimal.Decimal, bool) {
	if desde == hacia {
		return monto, true
	}
	switch hacia {
	case money.Bs:
		return money.ToBs(money.New(monto, desde), tasaPago)
	case money.USD:
		return money.ToUsd(money.New(monto, desde), tasaPago)
	default:
		return decimal.Zero, false
	}
}

// ── Overlay operations ────────────────────────────────────────────────────────

func (s *pagoService) GuardarEdicion(ctx context.Context, userID string, cuentaID uuid.UUID, e dto.EdicionCuentaRequest) (*dto.PreviewPagoResponse, error) {
	cuenta, err := s.cuentaRepo.FindByID(ctx, cuentaID)
	if err != nil {
		return nil, errors.New("cuenta no encontrada")
	}
	if cuenta.Estatus == model.EstatusAnulada || cuenta.Estatus == model.EstatusFinalizada {
		return nil, fmt.Errorf("la cuenta está %s y no admite pagos", cuenta.Estatus)
	}

	preview := CalcularPago(cuenta, e)
	if !e.EsAbono {
		// Persist the recomputed amount so the stored overlay matches what
		// the preview showed
		e.MontoEditado = preview.MontoEditado
	}
	if err := s.overlays.Set(ctx, userID, cuentaID.String(), e); err != nil {
		return nil, err
	}
	return &preview, nil
}

func (s *pagoService) ObtenerEdicion(ctx context.Context, userID string, cuentaID uuid.UUID) (*dto.EdicionCuentaRequest, error) {
	return s.overlays.Get(ctx, userID, cuentaID.String())
}

func (s *pagoService) EliminarEdicion(ctx context.Context, userID string, cuentaID uuid.UUID) error {
	return s.overlays.Delete(ctx, userID, cuentaID.String())
}

func (s *pagoService) CambiarMoneda(ctx context.Context, userID string, cuentaID uuid.UUID, nuevaMoneda string) (*dto.PreviewPagoResponse, error) {
	hacia := money.Moneda(nuevaMoneda)
	if !hacia.Valida() {
		return nil, errors.New("moneda inválida")
	}
	e, err := s.overlays.Get(ctx, userID, cuentaID.String())
	if err != nil {
		return nil, err
	}
	if e == nil {
		return nil, errors.New("no hay edición pendiente para esta cuenta")
	}
	if money.Moneda(e.Moneda) == hacia {
		cuenta, err := s.cuentaRepo.FindByID(ctx, cuentaID)
		if err != nil {
			return nil, errors.New("cuenta no encontrada")
		}
		preview := CalcularPago(cuenta, *e)
		return &preview, nil
	}

	convertido, ok := ConvertirMontoEditado(e.MontoEditado, money.Moneda(e.Moneda), hacia, e.TasaPago)
	if !ok {
		return nil, errors.New("tasa de pago inválida para la conversión")
	}
	e.Moneda = string(hacia)
	e.MontoEditado = money.RedondearMonto(convertido)
	// The converted amount is kept as-is instead of re-deriving from the
	// original invoice
	e.MontoManual = true

	if err := s.overlays.Set(ctx, userID, cuentaID.String(), *e); err != nil {
		return nil, err
	}

	cuenta, err := s.cuentaRepo.FindByID(ctx, cuentaID)
	if err != nil {
		return nil, errors.New("cuenta no encontrada")
	}
	preview := CalcularPago(cuenta, *e)
	return &preview, nil
}

// TotalAPagar aggregates every pending preview of the user's batch. A
// currency mix across the selected cuentas yields a non-blocking Mezclada
// flag — manual review recommended, not enforced.
func (s *pagoService) TotalAPagar(ctx context.Context, userID string) (*dto.TotalAPagarResponse, error) {
	ediciones, err := s.overlays.GetAll(ctx, userID)
	if err != nil {
		return nil, err
	}

	resp := &dto.TotalAPagarResponse{TotalBs: decimal.Zero}
	monedas := make(map[string]bool)

	for id, e := range ediciones {
		cuentaID, err := uuid.Parse(id)
		if err != nil {
			continue
		}
		cuenta, err := s.cuentaRepo.FindByID(ctx, cuentaID)
		if err != nil {
			// Stale overlay for a deleted cuenta — skip it
			continue
		}
		preview := CalcularPago(cuenta, e)
		resp.Cuentas = append(resp.Cuentas, preview)
		resp.TotalBs = resp.TotalBs.Add(preview.MontoEditado)
		monedas[e.Moneda] = true
	}

	for m := range monedas {
		resp.Monedas = append(resp.Monedas, m)
	}
	resp.Mezclada = len(monedas) > 1
	return resp, nil
}

// ── Registro de pagos ─────────────────────────────────────────────────────────

// Registrar records one pago against a cuenta. The cuenta's estatus is NOT
// changed automatically, even when the accumulated pagos match the invoice —
// that transition is an explicit API action.
func (s *pagoService) Registrar(ctx context.Context, req dto.CrearPagoRequest) (*dto.PagoResponse, error) {
	cuentaID, err := uuid.Parse(req.CuentaID)
	if err != nil {
		return nil, fmt.Errorf("cuenta_id inválido: %w", err)
	}
	cuenta, err := s.cuentaRepo.FindByID(ctx, cuentaID)
	if err != nil {
		return nil, errors.New("cuenta no encontrada")
	}
	if cuenta.Estatus == model.EstatusAnulada || cuenta.Estatus == model.EstatusFinalizada {
		return nil, fmt.Errorf("la cuenta está %s y no admite pagos", cuenta.Estatus)
	}

	fecha, err := time.Parse("2006-01-02", req.Fecha)
	if err != nil {
		return nil, fmt.Errorf("fecha inválida: %w", err)
	}

	pago := &model.Pago{
		CuentaID:      cuentaID,
		Moneda:        req.Moneda,
		Monto:         req.Monto,
		Tasa:          req.Tasa,
		Referencia:    req.Referencia,
		BancoEmisor:   req.BancoEmisor,
		BancoReceptor: req.BancoReceptor,
		Fecha:         fecha,
		Retencion:     req.Retencion,
		EsAbono:       req.EsAbono,
	}
	if err := s.pagoRepo.Create(ctx, pago); err != nil {
		return nil, err
	}
	return pagoToResponse(pago), nil
}

// RegistrarMasivo records the batch one pago at a time. On failure it stops
// and reports how many were recorded — already-recorded pagos are never
// rolled back (no compensating transaction).
func (s *pagoService) RegistrarMasivo(ctx context.Context, userID string, req dto.PagoMasivoRequest) (*dto.PagoMasivoResponse, error) {
	resp := &dto.PagoMasivoResponse{Total: len(req.Pagos)}

	monedas := make(map[string]bool)
	for _, p := range req.Pagos {
		monedas[p.Moneda] = true
	}
	if len(monedas) > 1 {
		resp.Advertencia = "Las cuentas seleccionadas mezclan monedas distintas; revise manualmente antes de confirmar."
	}

	for _, p := range req.Pagos {
		pago, err := s.Registrar(ctx, p)
		if err != nil {
			msg := err.Error()
			resp.Error = &msg
			return resp, nil
		}
		resp.Pagos = append(resp.Pagos, *pago)
		resp.Procesados++

		// Drop the now-consumed overlay; a store failure is not fatal
		if cuentaID, err := uuid.Parse(p.CuentaID); err == nil {
			_ = s.overlays.Delete(ctx, userID, cuentaID.String())
		}
	}
	return resp, nil
}

func pagoToResponse(p *model.Pago) *dto.PagoResponse {
	return &dto.PagoResponse{
		ID:            p.ID.String(),
		CuentaID:      p.CuentaID.String(),
		Moneda:        p.Moneda,
		Monto:         p.Monto,
		Tasa:          p.Tasa,
		Referencia:    p.Referencia,
		BancoEmisor:   p.BancoEmisor,
		BancoReceptor: p.BancoReceptor,
		Fecha:         p.Fecha.Format("2006-01-02"),
		Retencion:     p.Retencion,
		EsAbono:       p.EsAbono,
		CreatedAt:     p.CreatedAt.Format(time.RFC3339),
	}
}
