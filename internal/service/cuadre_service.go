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
	"rapifarma/internal/worker"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// toleranciaConfirmacion is the UX gate: differences above it prompt a
// surplus/shortfall confirmation before submit. It never blocks persistence.
var toleranciaConfirmacion = decimal.RequireFromString("0.009")

type CuadreService interface {
	Crear(ctx context.Context, farmaciaID string, req dto.CrearCuadreRequest) (*dto.CuadreResponse, error)
	CambiarEstado(ctx context.Context, farmaciaID string, cuadreID uuid.UUID, estado string) error
	Obtener(ctx context.Context, farmaciaID string, cuadreID uuid.UUID) (*dto.CuadreResponse, error)
	Listar(ctx context.Context, farmaciaID string, page, limit int) ([]dto.CuadreResponse, int64, error)
}

type cuadreService struct {
	repo       repository.CuadreRepository
	dispatcher *worker.Dispatcher
}

func NewCuadreService(repo repository.CuadreRepository, dispatcher *worker.Dispatcher) CuadreService {
	return &cuadreService{repo: repo, dispatcher: dispatcher}
}

// ── CalcularTotales ───────────────────────────────────────────────────────────
// Pure derivation of every reconciliation figure from the raw register inputs.
//
//  1. totalBs     = pagomovil + Σ(punto débito) + Σ(punto crédito) + efectivo Bs
//     (devoluciones and recarga are display-only and never enter any total)
//  2. totalBsEnUsd = totalBs / tasa            (0 when tasa inválida)
//  3. totalGeneralUsd = totalBsEnUsd + efectivo USD + zelle USD
//  4. totalCajaSistemaMenosVales = totalCajaSistemaBs − vales USD × tasa
//  5. diferenciaUsd = totalGeneralUsd − totalCajaSistemaMenosVales / tasa,
//     a 4 decimales; 0 cuando tasa inválida
//  6. sobrante = diferencia cuando > 0; faltante = |diferencia| cuando < 0.
//     Exactamente uno es distinto de cero, salvo diferencia cero.

func CalcularTotales(req dto.CrearCuadreRequest) dto.TotalesCuadre {
	totalBs := req.PagomovilBs.Add(req.EfectivoBs)
	for _, pv := range req.PuntosVenta {
		totalBs = totalBs.Add(pv.PuntoDebito).Add(pv.PuntoCredito)
	}

	t := dto.TotalesCuadre{
		TotalBs: money.RedondearMonto(totalBs),
	}

	totalBsEnUsd := decimal.Zero
	if enUsd, ok := money.ToUsd(money.New(totalBs, money.Bs), req.Tasa); ok {
		totalBsEnUsd = enUsd
	}
	t.TotalBsEnUsd = money.RedondearMonto(totalBsEnUsd)

	totalGeneralUsd := totalBsEnUsd.Add(req.EfectivoUsd).Add(req.ZelleUsd)
	t.TotalGeneralUsd = money.RedondearMonto(totalGeneralUsd)

	valesBs := decimal.Zero
	if money.TasaValida(req.Tasa) {
		valesBs = req.ValesUsd.Mul(req.Tasa)
	}
	menosVales := req.TotalCajaSistemaBs.Sub(valesBs)
	t.TotalCajaSistemaMenosVales = money.RedondearMonto(menosVales)

	diferencia := decimal.Zero
	if sistemaUsd, ok := money.ToUsd(money.New(menosVales, money.Bs), req.Tasa); ok {
		diferencia = money.RedondearDiferencia(totalGeneralUsd.Sub(sistemaUsd))
	}
	t.DiferenciaUsd = diferencia

	switch {
	case diferencia.IsPositive():
		t.SobranteUsd = diferencia
		t.FaltanteUsd = decimal.Zero
	case diferencia.IsNegative():
		t.SobranteUsd = decimal.Zero
		t.FaltanteUsd = diferencia.Abs()
	default:
		t.SobranteUsd = decimal.Zero
		t.FaltanteUsd = decimal.Zero
	}
	return t
}

// RequiereConfirmacion reports whether the difference exceeds the UX
// tolerance and the client should show the surplus/shortfall warning.
func RequiereConfirmacion(t dto.TotalesCuadre) bool {
	return t.DiferenciaUsd.Abs().GreaterThan(toleranciaConfirmacion)
}

// ── Crear ─────────────────────────────────────────────────────────────────────
// Persists a cuadre as estado="wait". Derived fields are recomputed here and
// never trusted from the client.

func (s *cuadreService) Crear(ctx context.Context, farmaciaID string, req dto.CrearCuadreRequest) (*dto.CuadreResponse, error) {
	dia, err := time.Parse("2006-01-02", req.Dia)
	if err != nil {
		return nil, fmt.Errorf("dia inválido: %w", err)
	}

	// Guard: one cuadre per (farmacia, dia, caja, turno, cajero)
	if existing, err := s.repo.FindByIdentidad(ctx, farmaciaID, dia, req.CajaNumero, req.Turno, req.Cajero); err == nil && existing != nil {
		return nil, errors.New("Ya existe un cuadre para esta caja, turno y cajero en el día indicado")
	}

	totales := CalcularTotales(req)

	cuadre := &model.Cuadre{
		FarmaciaID: farmaciaID,
		Dia:        dia,
		CajaNumero: req.CajaNumero,
		Turno:      req.Turno,
		Cajero:     req.Cajero,
		Tasa:       req.Tasa,

		TotalCajaSistemaBs: req.TotalCajaSistemaBs,
		EfectivoBs:         req.EfectivoBs,
		PagomovilBs:        req.PagomovilBs,
		EfectivoUsd:        req.EfectivoUsd,
		ZelleUsd:           req.ZelleUsd,
		ValesUsd:           req.ValesUsd,
		CostoInventario:    req.CostoInventario,
		DevolucionesBs:     req.DevolucionesBs,
		RecargaBs:          req.RecargaBs,

		TotalBs:                    totales.TotalBs,
		TotalBsEnUsd:               totales.TotalBsEnUsd,
		TotalCajaSistemaMenosVales: totales.TotalCajaSistemaMenosVales,
		TotalGeneralUsd:            totales.TotalGeneralUsd,
		DiferenciaUsd:              totales.DiferenciaUsd,
		SobranteUsd:                totales.SobranteUsd,
		FaltanteUsd:                totales.FaltanteUsd,

		Estado: "wait",
	}
	for _, pv := range req.PuntosVenta {
		cuadre.PuntosVenta = append(cuadre.PuntosVenta, model.PuntoVentaCuadre{
			Banco:        pv.Banco,
			PuntoDebito:  pv.PuntoDebito,
			PuntoCredito: pv.PuntoCredito,
		})
	}
	for _, key := range req.Comprobantes {
		cuadre.Comprobantes = append(cuadre.Comprobantes, model.ComprobanteCuadre{ObjectKey: key})
	}

	if err := s.repo.Create(ctx, cuadre); err != nil {
		return nil, err
	}

	return cuadreToResponse(cuadre), nil
}

// ── CambiarEstado ─────────────────────────────────────────────────────────────
// wait → verified | denied. Server-authoritative; a persisted cuadre's derived
// figures are never recomputed here.

func (s *cuadreService) CambiarEstado(ctx context.Context, farmaciaID string, cuadreID uuid.UUID, estado string) error {
	if estado != "verified" && estado != "denied" {
		return errors.New("estado inválido: debe ser verified o denied")
	}
	cuadre, err := s.repo.FindByID(ctx, farmaciaID, cuadreID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return errors.New("cuadre no encontrado")
		}
		return err
	}
	if cuadre.Estado != "wait" {
		return fmt.Errorf("el cuadre ya fue %s", cuadre.Estado)
	}
	if err := s.repo.UpdateEstado(ctx, farmaciaID, cuadreID, estado); err != nil {
		return err
	}

	// Notify the submitting pharmacy asynchronously; a queue failure never
	// fails the estado change
	if s.dispatcher != nil {
		_ = s.dispatcher.EnqueueEmail(ctx, worker.EmailJobPayload{
			Subject: fmt.Sprintf("Cuadre %s: caja %d turno %s", estado, cuadre.CajaNumero, cuadre.Turno),
			Body: fmt.Sprintf("El cuadre del %s (cajero %s) fue marcado como %s.",
				cuadre.Dia.Format("02/01/2006"), cuadre.Cajero, estado),
		})
	}
	return nil
}

func (s *cuadreService) Obtener(ctx context.Context, farmaciaID string, cuadreID uuid.UUID) (*dto.CuadreResponse, error) {
	cuadre, err := s.repo.FindByID(ctx, farmaciaID, cuadreID)
	if err != nil {
		return nil, errors.New("cuadre no encontrado")
	}
	return cuadreToResponse(cuadre), nil
}

func (s *cuadreService) Listar(ctx context.Context, farmaciaID string, page, limit int) ([]dto.CuadreResponse, int64, error) {
	cuadres, total, err := s.repo.ListByFarmacia(ctx, farmaciaID, page, limit)
	if err != nil {
		return nil, 0, err
	}
	out := make([]dto.CuadreResponse, 0, len(cuadres))
	for i := range cuadres {
		out = append(out, *cuadreToResponse(&cuadres[i]))
	}
	return out, total, nil
}

// ── Helpers ───────────────────────────────────────────────────────────────────

func cuadreToResponse(c *model.Cuadre) *dto.CuadreResponse {
	totales := dto.TotalesCuadre{
		TotalBs:                    c.TotalBs,
		TotalBsEnUsd:               c.TotalBsEnUsd,
		TotalCajaSistemaMenosVales: c.TotalCajaSistemaMenosVales,
		TotalGeneralUsd:            c.TotalGeneralUsd,
		DiferenciaUsd:              c.DiferenciaUsd,
		SobranteUsd:                c.SobranteUsd,
		FaltanteUsd:                c.FaltanteUsd,
	}

	resp := &dto.CuadreResponse{
		ID:         c.ID.String(),
		FarmaciaID: c.FarmaciaID,
		Dia:        c.Dia.Format("2006-01-02"),
		CajaNumero: c.CajaNumero,
		Turno:      c.Turno,
		Cajero:     c.Cajero,
		Tasa:       c.Tasa,

		TotalCajaSistemaBs: c.TotalCajaSistemaBs,
		EfectivoBs:         c.EfectivoBs,
		PagomovilBs:        c.PagomovilBs,
		EfectivoUsd:        c.EfectivoUsd,
		ZelleUsd:           c.ZelleUsd,
		ValesUsd:           c.ValesUsd,
		CostoInventario:    c.CostoInventario,

		Totales:              totales,
		Estado:               c.Estado,
		RequiereConfirmacion: RequiereConfirmacion(totales),
		CreatedAt:            c.CreatedAt.Format(time.RFC3339),
	}
	for _, pv := range c.PuntosVenta {
		resp.PuntosVenta = append(resp.PuntosVenta, dto.PuntoVentaRequest{
			Banco:        pv.Banco,
			PuntoDebito:  pv.PuntoDebito,
			PuntoCredito: pv.PuntoCredito,
		})
	}
	for _, comp := range c.Comprobantes {
		resp.Comprobantes = append(resp.Comprobantes, comp.ObjectKey)
	}
	return resp
}
