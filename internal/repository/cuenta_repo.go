package repository

import (
	"context"
	"time"

	"rapifarma/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type CuentaRepository interface {
	Create(ctx context.Context, c *model.CuentaPorPagar) error
	FindByID(ctx context.Context, id uuid.UUID) (*model.CuentaPorPagar, error)
	List(ctx context.Context, farmaciaID string, estatus string, page, limit int) ([]model.CuentaPorPagar, int64, error)
	UpdateEstatus(ctx context.Context, id uuid.UUID, estatus string) error
	UpdateTipo(ctx context.Context, id uuid.UUID, tipo string) error
	// ListVencidasActivas returns active/abonada cuentas whose due date is
	// before hoy — used by the overdue reminder cron
	ListVencidasActivas(ctx context.Context, hoy time.Time, limit int) ([]model.CuentaPorPagar, error)
}

type cuentaRepo struct{ db *gorm.DB }

func NewCuentaRepository(db *gorm.DB) CuentaRepository { return &cuentaRepo{db: db} }

func (r *cuentaRepo) Create(ctx context.Context, c *model.CuentaPorPagar) error {
	return r.db.WithContext(ctx).Create(c).Error
}

func (r *cuentaRepo) FindByID(ctx context.Context, id uuid.UUID) (*model.CuentaPorPagar, error) {
	var c model.CuentaPorPagar
	err := r.db.WithContext(ctx).Preload("Pagos").First(&c, id).Error
	if err != nil {
		return nil, err
	}
	return &c, nil
}

func (r *cuentaRepo) List(ctx context.Context, farmaciaID string, estatus string, page, limit int) ([]model.CuentaPorPagar, int64, error) {
	var cuentas []model.CuentaPorPagar
	var total int64

	q := r.db.WithContext(ctx).Model(&model.CuentaPorPagar{})
	if farmaciaID != "" {
		q = q.Where("farmacia_id = ?", farmaciaID)
	}
	if estatus != "" {
		q = q.Where("estatus = ?", estatus)
	}
	if err := q.Count(&total).Error; err != nil {
		return nil, 0, err
	}
	err := q.Preload("Pagos").
		Order("fecha_emision DESC").
		Offset((page - 1) * limit).Limit(limit).
		Find(&cuentas).Error
	return cuentas, total, err
}

func (r *cuentaRepo) UpdateEstatus(ctx context.Context, id uuid.UUID, estatus string) error {
	res := r.db.WithContext(ctx).Model(&model.CuentaPorPagar{}).
		Where("id = ?", id).Update("estatus", estatus)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

func (r *cuentaRepo) UpdateTipo(ctx context.Context, id uuid.UUID, tipo string) error {
	res := r.db.WithContext(ctx).Model(&model.CuentaPorPagar{}).
		Where("id = ?", id).Update("tipo", tipo)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

func (r *cuentaRepo) ListVencidasActivas(ctx context.Context, hoy time.Time, limit int) ([]model.CuentaPorPagar, error) {
	var cuentas []model.CuentaPorPagar
	err := r.db.WithContext(ctx).
		Where("estatus IN ?", []string{model.EstatusActiva, model.EstatusAbonada}).
		Where("fecha_emision + make_interval(days => dias_credito) < ?", hoy).
		Limit(limit).
		Find(&cuentas).Error
	return cuentas, err
}
