package repository

import (
	"context"

	"gorm.io/gorm"

	"bot-asistencia/backend/internal/model"
)

// PracticanteRepository acceso a datos de practicantes.
// Solo lecturas: el alta de practicantes es responsabilidad del
// administrador, fuera de este servicio.
type PracticanteRepository interface {
	GetByDiscordID(ctx context.Context, idDiscord string) (*model.Practicante, error)
}

// practicanteRepo implementación GORM de PracticanteRepository
type practicanteRepo struct {
	db *gorm.DB
}

// NewPracticanteRepo crea una instancia de PracticanteRepository
func NewPracticanteRepo(db *gorm.DB) PracticanteRepository {
	return &practicanteRepo{db: db}
}

func (r *practicanteRepo) GetByDiscordID(ctx context.Context, idDiscord string) (*model.Practicante, error) {
	var p model.Practicante
	err := r.db.WithContext(ctx).
		Where("id_discord = ? AND activo", idDiscord).
		First(&p).Error
	if err != nil {
		return nil, err
	}
	return &p, nil
}
