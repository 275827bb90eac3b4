package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Pago is one payment recorded against a CuentaPorPagar. Several pagos can
// accumulate against one cuenta; the cuenta is NOT automatically marked paid
// when the sum matches — the estatus transition is an explicit API action.
// Tasa is the rate in effect at payment time, independent of the invoice's
// original rate.
type Pago struct {
	ID       uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	CuentaID uuid.UUID `gorm:"type:uuid;index;not null"`

	Moneda string          `gorm:"type:varchar(5);not null"` // "Bs" | "USD"
	Monto  decimal.Decimal `gorm:"type:decimal(14,2);not null"`
	Tasa   decimal.Decimal `gorm:"type:decimal(14,4);not null"`

	Referencia    string `gorm:"type:varchar(60)"`
	BancoEmisor   string `gorm:"type:varchar(60)"`
	BancoReceptor string `gorm:"type:varchar(60)"`

	Fecha     time.Time       `gorm:"type:date;not null"`
	Retencion decimal.Decimal `gorm:"type:decimal(14,2);not null;default:0"`
	// EsAbono marks a deliberate partial payment
	EsAbono bool `gorm:"not null;default:false"`

	CreatedAt time.Time
}
