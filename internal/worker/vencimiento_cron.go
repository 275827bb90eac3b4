package worker

// vencimiento_cron.go
// Background goroutine that periodically scans for cuentas por pagar whose
// due date (fecha_emision + dias_credito) has passed while still activa or
// abonada, and enqueues one reminder email per tick batch.

import (
	"context"
	"fmt"
	"strings"
	"time"

	"rapifarma/internal/repository"

	"github.com/rs/zerolog/log"
)

const (
	vencimientoTickInterval = 12 * time.Hour
	vencimientoBatchSize    = 50
)

// VencimientoCronConfig holds the dependencies for the overdue scanner.
type VencimientoCronConfig struct {
	CuentaRepo repository.CuentaRepository
	Dispatcher *Dispatcher
}

// StartVencimientoCron launches the scanner goroutine. It runs one scan at
// startup, then every tick, and respects ctx for graceful shutdown.
func StartVencimientoCron(ctx context.Context, cfg VencimientoCronConfig) {
	go func() {
		ticker := time.NewTicker(vencimientoTickInterval)
		defer ticker.Stop()

		log.Info().Msg("vencimiento_cron: started")
		scanVencidas(ctx, cfg)

		for {
			select {
			case <-ctx.Done():
				log.Info().Msg("vencimiento_cron: shutting down")
				return
			case <-ticker.C:
				scanVencidas(ctx, cfg)
			}
		}
	}()
}

func scanVencidas(ctx context.Context, cfg VencimientoCronConfig) {
	cuentas, err := cfg.CuentaRepo.ListVencidasActivas(ctx, time.Now(), vencimientoBatchSize)
	if err != nil {
		log.Error().Err(err).Msg("vencimiento_cron: query failed")
		return
	}
	if len(cuentas) == 0 {
		return
	}

	var b strings.Builder
	for _, c := range cuentas {
		fmt.Fprintf(&b, "- Factura %s (farmacia %s): vencida el %s, monto %s %s\n",
			c.NumeroFactura, c.FarmaciaID,
			c.FechaVencimiento().Format("02/01/2006"),
			c.Monto.StringFixed(2), c.Divisa)
	}

	err = cfg.Dispatcher.EnqueueEmail(ctx, EmailJobPayload{
		Subject: fmt.Sprintf("Cuentas por pagar vencidas: %d", len(cuentas)),
		Body:    "Las siguientes cuentas están vencidas y siguen activas:\n\n" + b.String(),
	})
	if err != nil {
		log.Error().Err(err).Msg("vencimiento_cron: enqueue failed")
		return
	}
	log.Info().Int("cuentas", len(cuentas)).Msg("vencimiento_cron: reminder enqueued")
}
