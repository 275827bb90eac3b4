package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Estatus values for a CuentaPorPagar.
const (
	EstatusWait       = "wait"
	EstatusActiva     = "activa"
	EstatusInactiva   = "inactiva"
	EstatusPagada     = "pagada"
	EstatusAbonada    = "abonada"
	EstatusAnulada    = "anulada"
	EstatusFinalizada = "finalizada"
)

// Tipo values for a CuentaPorPagar.
const (
	TipoTraslado       = "traslado"
	TipoPagoListo      = "pago_listo"
	TipoCuentaPorPagar = "cuenta_por_pagar"
)

// CuentaPorPagar is an accounts-payable invoice owed to a supplier.
// Monto is stored in Divisa at Tasa; the Bs and USD views are always
// derivable from (Monto, Divisa, Tasa) regardless of which currency the
// amount was captured in.
type CuentaPorPagar struct {
	ID          uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	FarmaciaID  string    `gorm:"type:varchar(40);not null;index"`
	ProveedorID *uuid.UUID `gorm:"type:uuid;index"`

	NumeroFactura string          `gorm:"type:varchar(60);not null"`
	Monto         decimal.Decimal `gorm:"type:decimal(14,2);not null"`
	Divisa        string          `gorm:"type:varchar(5);not null"` // "Bs" | "USD"
	Tasa          decimal.Decimal `gorm:"type:decimal(14,4);not null"`
	// Retencion is a withholding amount in the original currency
	Retencion decimal.Decimal `gorm:"type:decimal(14,2);not null;default:0"`

	FechaEmision time.Time `gorm:"type:date;not null"`
	DiasCredito  int       `gorm:"not null;default:0"`

	Estatus string `gorm:"type:varchar(20);not null;default:'wait'"`
	Tipo    string `gorm:"type:varchar(30);not null;default:'cuenta_por_pagar'"`

	Pagos []Pago `gorm:"foreignKey:CuentaID"`

	CreatedAt time.Time
	UpdatedAt time.Time
}

// FechaVencimiento is FechaEmision + DiasCredito days.
func (c *CuentaPorPagar) FechaVencimiento() time.Time {
	return c.FechaEmision.AddDate(0, 0, c.DiasCredito)
}

// DiasRestantes returns whole days until the due date, negative when overdue
// ("Vencida").
func (c *CuentaPorPagar) DiasRestantes(hoy time.Time) int {
	venc := c.FechaVencimiento()
	h := time.Date(hoy.Year(), hoy.Month(), hoy.Day(), 0, 0, 0, 0, time.UTC)
	v := time.Date(venc.Year(), venc.Month(), venc.Day(), 0, 0, 0, 0, time.UTC)
	return int(v.Sub(h).Hours() / 24)
}

// EstatusValido reports whether s belongs to the estatus set.
func EstatusValido(s string) bool {
	switch s {
	case EstatusWait, EstatusActiva, EstatusInactiva, EstatusPagada,
		EstatusAbonada, EstatusAnulada, EstatusFinalizada:
		return true
	}
	return false
}

// TipoValido reports whether s belongs to the tipo set.
func TipoValido(s string) bool {
	switch s {
	case TipoTraslado, TipoPagoListo, TipoCuentaPorPagar:
		return true
	}
	return false
}
