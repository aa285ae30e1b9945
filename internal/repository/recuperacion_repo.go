package repository

import (
	"context"

	"gorm.io/gorm"

	"bot-asistencia/backend/internal/model"
)

// RecuperacionRepository acceso a datos de sesiones de recuperación
type RecuperacionRepository interface {
	Create(ctx context.Context, rec *model.Recuperacion) error
	GetByPracticanteFecha(ctx context.Context, practicanteID int64, fecha string) (*model.Recuperacion, error)
	// ListDesde sesiones con fecha >= fechaInicio, descendente por fecha.
	ListDesde(ctx context.Context, practicanteID int64, fechaInicio string) ([]model.Recuperacion, error)
}

// recuperacionRepo implementación GORM de RecuperacionRepository
type recuperacionRepo struct {
	db *gorm.DB
}

// NewRecuperacionRepo crea una instancia de RecuperacionRepository
func NewRecuperacionRepo(db *gorm.DB) RecuperacionRepository {
	return &recuperacionRepo{db: db}
}

func (r *recuperacionRepo) Create(ctx context.Context, rec *model.Recuperacion) error {
	return r.db.WithContext(ctx).Create(rec).Error
}

func (r *recuperacionRepo) GetByPracticanteFecha(ctx context.Context, practicanteID int64, fecha string) (*model.Recuperacion, error) {
	var rec model.Recuperacion
	err := r.db.WithContext(ctx).
		Where("practicante_id = ? AND fecha = ?", practicanteID, fecha).
		First(&rec).Error
	if err != nil {
		return nil, err
	}
	return &rec, nil
}

func (r *recuperacionRepo) ListDesde(ctx context.Context, practicanteID int64, fechaInicio string) ([]model.Recuperacion, error) {
	var sesiones []model.Recuperacion
	err := r.db.WithContext(ctx).
		Where("practicante_id = ? AND fecha >= ?", practicanteID, fechaInicio).
		Order("fecha DESC").
		Find(&sesiones).Error
	if err != nil {
		return nil, err
	}
	return sesiones, nil
}
