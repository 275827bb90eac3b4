package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// ListaComparativa is one comparative price-list row: a product offered by a
// supplier at a net price, ingested from spreadsheet uploads.
type ListaComparativa struct {
	ID          uuid.UUID  `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	ProveedorID *uuid.UUID `gorm:"type:uuid;index"`

	Codigo      string          `gorm:"type:varchar(40);not null;index"`
	Descripcion string          `gorm:"not null"`
	Laboratorio string          `gorm:"type:varchar(120)"`
	PrecioNeto  decimal.Decimal `gorm:"type:decimal(14,2);not null"`
	Existencia  int             `gorm:"not null;default:0"`

	CreatedAt time.Time
	UpdatedAt time.Time
}

func (ListaComparativa) TableName() string { return "listas_comparativas" }
