package repository

import (
	"context"

	"rapifarma/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type ListaRepository interface {
	// UpsertBatch inserts or updates rows by (proveedor_id, codigo) inside a
	// single transaction per chunk
	UpsertBatch(ctx context.Context, proveedorID uuid.UUID, rows []model.ListaComparativa) (int, error)
	FindByID(ctx context.Context, id uuid.UUID) (*model.ListaComparativa, error)
	Search(ctx context.Context, codigo, descripcion string, limit int) ([]model.ListaComparativa, error)
}

type listaRepo struct{ db *gorm.DB }

func NewListaRepository(db *gorm.DB) ListaRepository { return &listaRepo{db: db} }

func (r *listaRepo) UpsertBatch(ctx context.Context, proveedorID uuid.UUID, rows []model.ListaComparativa) (int, error) {
	inserted := 0
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		for i := range rows {
			rows[i].ProveedorID = &proveedorID
			var existing model.ListaComparativa
			err := tx.Where("proveedor_id = ? AND codigo = ?", proveedorID, rows[i].Codigo).
				First(&existing).Error
			switch {
			case err == nil:
				existing.Descripcion = rows[i].Descripcion
				existing.Laboratorio = rows[i].Laboratorio
				existing.PrecioNeto = rows[i].PrecioNeto
				existing.Existencia = rows[i].Existencia
				if err := tx.Save(&existing).Error; err != nil {
					return err
				}
			case err == gorm.ErrRecordNotFound:
				if err := tx.Create(&rows[i]).Error; err != nil {
					return err
				}
			default:
				return err
			}
			inserted++
		}
		return nil
	})
	return inserted, err
}

func (r *listaRepo) FindByID(ctx context.Context, id uuid.UUID) (*model.ListaComparativa, error) {
	var l model.ListaComparativa
	err := r.db.WithContext(ctx).First(&l, id).Error
	if err != nil {
		return nil, err
	}
	return &l, nil
}

func (r *listaRepo) Search(ctx context.Context, codigo, descripcion string, limit int) ([]model.ListaComparativa, error) {
	var rows []model.ListaComparativa
	q := r.db.WithContext(ctx).Model(&model.ListaComparativa{})
	if codigo != "" {
		q = q.Where("codigo = ?", codigo)
	}
	if descripcion != "" {
		q = q.Where("descripcion ILIKE ?", "%"+descripcion+"%")
	}
	err := q.Limit(limit).Find(&rows).Error
	return rows, err
}
