package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Cuadre is one cash-register reconciliation record: one cashier / shift /
// day / till combination for a pharmacy.
// Estado: "wait" | "verified" | "denied" — created as "wait"; transitions
// happen only through the estado endpoint, never re-derived after persist.
type Cuadre struct {
	ID         uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	FarmaciaID string    `gorm:"type:varchar(40);not null;index:idx_cuadre_identidad,unique"`
	Dia        time.Time `gorm:"type:date;not null;index:idx_cuadre_identidad,unique"`
	CajaNumero int       `gorm:"not null;index:idx_cuadre_identidad,unique"`
	Turno      string    `gorm:"type:varchar(20);not null;index:idx_cuadre_identidad,unique"`
	Cajero     string    `gorm:"type:varchar(80);not null;index:idx_cuadre_identidad,unique"`

	Tasa decimal.Decimal `gorm:"type:decimal(14,4);not null"`

	// Inputs — all non-negative, entered by the supervisor
	TotalCajaSistemaBs decimal.Decimal `gorm:"type:decimal(14,2);not null"`
	EfectivoBs         decimal.Decimal `gorm:"type:decimal(14,2);not null;default:0"`
	PagomovilBs        decimal.Decimal `gorm:"type:decimal(14,2);not null;default:0"`
	EfectivoUsd        decimal.Decimal `gorm:"type:decimal(14,2);not null;default:0"`
	ZelleUsd           decimal.Decimal `gorm:"type:decimal(14,2);not null;default:0"`
	ValesUsd           decimal.Decimal `gorm:"type:decimal(14,2);not null;default:0"`
	CostoInventario    decimal.Decimal `gorm:"type:decimal(14,2);not null"`
	// DevolucionesBs / RecargaBs are informational only — they never enter
	// any total.
	DevolucionesBs decimal.Decimal `gorm:"type:decimal(14,2);not null;default:0"`
	RecargaBs      decimal.Decimal `gorm:"type:decimal(14,2);not null;default:0"`

	// Derived — computed on create, never user-entered
	TotalBs                   decimal.Decimal `gorm:"type:decimal(14,2);not null"`
	TotalBsEnUsd              decimal.Decimal `gorm:"type:decimal(14,2);not null"`
	TotalCajaSistemaMenosVales decimal.Decimal `gorm:"type:decimal(14,2);not null"`
	TotalGeneralUsd           decimal.Decimal `gorm:"type:decimal(14,2);not null"`
	DiferenciaUsd             decimal.Decimal `gorm:"type:decimal(14,4);not null"`
	SobranteUsd               decimal.Decimal `gorm:"type:decimal(14,4);not null"`
	FaltanteUsd               decimal.Decimal `gorm:"type:decimal(14,4);not null"`

	Estado string `gorm:"type:varchar(20);not null;default:'wait'"`

	PuntosVenta []PuntoVentaCuadre `gorm:"foreignKey:CuadreID"`
	// Comprobantes are object-storage keys of the attached receipt images (1–4)
	Comprobantes []ComprobanteCuadre `gorm:"foreignKey:CuadreID"`

	CreatedAt time.Time
	UpdatedAt time.Time
}

// PuntoVentaCuadre is one card terminal's debit/credit totals inside a cuadre.
type PuntoVentaCuadre struct {
	ID           uuid.UUID       `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	CuadreID     uuid.UUID       `gorm:"type:uuid;index;not null"`
	Banco        string          `gorm:"type:varchar(60);not null"`
	PuntoDebito  decimal.Decimal `gorm:"type:decimal(14,2);not null;default:0"`
	PuntoCredito decimal.Decimal `gorm:"type:decimal(14,2);not null;default:0"`
}

// ComprobanteCuadre links a cuadre to one receipt image in object storage.
type ComprobanteCuadre struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	CuadreID  uuid.UUID `gorm:"type:uuid;index;not null"`
	ObjectKey string    `gorm:"type:varchar(255);not null"`
	CreatedAt time.Time
}
