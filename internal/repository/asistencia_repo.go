package repository

import (
	"context"

	"gorm.io/gorm"

	"bot-asistencia/backend/internal/model"
)

// AsistenciaRepository acceso a datos de registros de asistencia.
// Las fechas viajan como cadena ISO (2006-01-02) para que la comparación
// contra la columna DATE sea exacta, sin componente horario de por medio.
type AsistenciaRepository interface {
	Create(ctx context.Context, a *model.Asistencia) error
	GetByPracticanteFecha(ctx context.Context, practicanteID int64, fecha string) (*model.Asistencia, error)
	// RegistrarSalida fija hora_salida en un registro aún abierto.
	// No toca estado ni motivo.
	RegistrarSalida(ctx context.Context, id int64, hora string) error
	// RegistrarSalidaAnticipada fija hora_salida, estado y motivo en una
	// sola sentencia: o queda todo escrito o no queda nada.
	RegistrarSalidaAnticipada(ctx context.Context, id int64, hora string, estadoID int, motivo string) error
	// ListDesde registros con fecha >= fechaInicio, descendente por fecha.
	ListDesde(ctx context.Context, practicanteID int64, fechaInicio string) ([]model.Asistencia, error)
	// ListPorEstado últimos registros con el estado dado, descendente.
	ListPorEstado(ctx context.Context, practicanteID int64, estadoID int, limit int) ([]model.Asistencia, error)
	// ListRango registros de todos los practicantes en [desde, hasta],
	// con practicante y estado precargados. Alimenta la exportación.
	ListRango(ctx context.Context, desde, hasta string) ([]model.Asistencia, error)
}

// asistenciaRepo implementación GORM de AsistenciaRepository
type asistenciaRepo struct {
	db *gorm.DB
}

// NewAsistenciaRepo crea una instancia de AsistenciaRepository
func NewAsistenciaRepo(db *gorm.DB) AsistenciaRepository {
	return &asistenciaRepo{db: db}
}

func (r *asistenciaRepo) Create(ctx context.Context, a *model.Asistencia) error {
	return r.db.WithContext(ctx).Create(a).Error
}

func (r *asistenciaRepo) GetByPracticanteFecha(ctx context.Context, practicanteID int64, fecha string) (*model.Asistencia, error) {
	var a model.Asistencia
	err := r.db.WithContext(ctx).
		Preload("Estado").
		Where("practicante_id = ? AND fecha = ?", practicanteID, fecha).
		First(&a).Error
	if err != nil {
		return nil, err
	}
	return &a, nil
}

func (r *asistenciaRepo) RegistrarSalida(ctx context.Context, id int64, hora string) error {
	return r.db.WithContext(ctx).
		Model(&model.Asistencia{}).
		Where("id = ?", id).
		Update("hora_salida", hora).Error
}

func (r *asistenciaRepo) RegistrarSalidaAnticipada(ctx context.Context, id int64, hora string, estadoID int, motivo string) error {
	return r.db.WithContext(ctx).
		Model(&model.Asistencia{}).
		Where("id = ?", id).
		Updates(map[string]interface{}{
			"hora_salida": hora,
			"estado_id":   estadoID,
			"motivo":      motivo,
		}).Error
}

func (r *asistenciaRepo) ListDesde(ctx context.Context, practicanteID int64, fechaInicio string) ([]model.Asistencia, error) {
	var registros []model.Asistencia
	err := r.db.WithContext(ctx).
		Preload("Estado").
		Where("practicante_id = ? AND fecha >= ?", practicanteID, fechaInicio).
		Order("fecha DESC").
		Find(&registros).Error
	if err != nil {
		return nil, err
	}
	return registros, nil
}

func (r *asistenciaRepo) ListRango(ctx context.Context, desde, hasta string) ([]model.Asistencia, error) {
	var registros []model.Asistencia
	err := r.db.WithContext(ctx).
		Preload("Estado").
		Preload("Practicante").
		Where("fecha BETWEEN ? AND ?", desde, hasta).
		Order("fecha ASC, practicante_id ASC").
		Find(&registros).Error
	if err != nil {
		return nil, err
	}
	return registros, nil
}

func (r *asistenciaRepo) ListPorEstado(ctx context.Context, practicanteID int64, estadoID int, limit int) ([]model.Asistencia, error) {
	var registros []model.Asistencia
	err := r.db.WithContext(ctx).
		Where("practicante_id = ? AND estado_id = ?", practicanteID, estadoID).
		Order("fecha DESC").
		Limit(limit).
		Find(&registros).Error
	if err != nil {
		return nil, err
	}
	return registros, nil
}
