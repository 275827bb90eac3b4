package repository

import (
	"context"

	"rapifarma/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type PagoRepository interface {
	Create(ctx context.Context, p *model.Pago) error
	ListByCuenta(ctx context.Context, cuentaID uuid.UUID) ([]model.Pago, error)
}

type pagoRepo struct{ db *gorm.DB }

func NewPagoRepository(db *gorm.DB) PagoRepository { return &pagoRepo{db: db} }

func (r *pagoRepo) Create(ctx context.Context, p *model.Pago) error {
	return r.db.WithContext(ctx).Create(p).Error
}

func (r *pagoRepo) ListByCuenta(ctx context.Context, cuentaID uuid.UUID) ([]model.Pago, error) {
	var pagos []model.Pago
	err := r.db.WithContext(ctx).
		Where("cuenta_id = ?", cuentaID).
		Order("fecha ASC, created_at ASC").
		Find(&pagos).Error
	return pagos, err
}
