package repository

import (
	"context"
	"time"

	"rapifarma/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type CuadreRepository interface {
	Create(ctx context.Context, c *model.Cuadre) error
	FindByID(ctx context.Context, farmaciaID string, id uuid.UUID) (*model.Cuadre, error)
	FindByIdentidad(ctx context.Context, farmaciaID string, dia time.Time, cajaNumero int, turno, cajero string) (*model.Cuadre, error)
	ListByFarmacia(ctx context.Context, farmaciaID string, page, limit int) ([]model.Cuadre, int64, error)
	UpdateEstado(ctx context.Context, farmaciaID string, id uuid.UUID, estado string) error
}

type cuadreRepo struct{ db *gorm.DB }

func NewCuadreRepository(db *gorm.DB) CuadreRepository { return &cuadreRepo{db: db} }

func (r *cuadreRepo) Create(ctx context.Context, c *model.Cuadre) error {
	return r.db.WithContext(ctx).Create(c).Error
}

func (r *cuadreRepo) FindByID(ctx context.Context, farmaciaID string, id uuid.UUID) (*model.Cuadre, error) {
	var c model.Cuadre
	err := r.db.WithContext(ctx).
		Preload("PuntosVenta").
		Preload("Comprobantes").
		Where("farmacia_id = ?", farmaciaID).
		First(&c, id).Error
	if err != nil {
		return nil, err
	}
	return &c, nil
}

func (r *cuadreRepo) FindByIdentidad(ctx context.Context, farmaciaID string, dia time.Time, cajaNumero int, turno, cajero string) (*model.Cuadre, error) {
	var c model.Cuadre
	err := r.db.WithContext(ctx).
		Where("farmacia_id = ? AND dia = ? AND caja_numero = ? AND turno = ? AND cajero = ?",
			farmaciaID, dia, cajaNumero, turno, cajero).
		First(&c).Error
	if err != nil {
		return nil, err
	}
	return &c, nil
}

func (r *cuadreRepo) ListByFarmacia(ctx context.Context, farmaciaID string, page, limit int) ([]model.Cuadre, int64, error) {
	var cuadres []model.Cuadre
	var total int64

	q := r.db.WithContext(ctx).Model(&model.Cuadre{}).Where("farmacia_id = ?", farmaciaID)
	if err := q.Count(&total).Error; err != nil {
		return nil, 0, err
	}
	err := q.Preload("PuntosVenta").Preload("Comprobantes").
		Order("dia DESC, created_at DESC").
		Offset((page - 1) * limit).Limit(limit).
		Find(&cuadres).Error
	return cuadres, total, err
}

func (r *cuadreRepo) UpdateEstado(ctx context.Context, farmaciaID string, id uuid.UUID, estado string) error {
	res := r.db.WithContext(ctx).Model(&model.Cuadre{}).
		Where("id = ? AND farmacia_id = ?", id, farmaciaID).
		Update("estado", estado)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}
