package model

import (
	"time"

	"github.com/google/uuid"
)

// Usuario stores system users. Access is scoped by Farmacias (the set of
// pharmacies the user may operate on) and Permisos (named capabilities such
// as "cuadres", "cuentas", "pagos", "listas").
type Usuario struct {
	ID           uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	Correo       string    `gorm:"uniqueIndex;not null"`
	Nombre       string    `gorm:"not null"`
	PasswordHash string    `gorm:"not null"`
	// Farmacias maps farmacia id → display name
	Farmacias FarmaciaMap `gorm:"type:jsonb;not null;default:'{}'"`
	Permisos  PermisoList `gorm:"type:jsonb;not null;default:'[]'"`
	Activo    bool        `gorm:"not null;default:true"`
	CreatedAt time.Time
	UpdatedAt time.Time
}
