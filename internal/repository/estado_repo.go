package repository

import (
	"context"
	"sync"

	"gorm.io/gorm"

	"bot-asistencia/backend/internal/model"
)

// EstadoRepository resuelve nombres de estado a su id de catálogo
type EstadoRepository interface {
	IDPorNombre(ctx context.Context, nombre string) (int, error)
}

// estadoRepo implementación GORM con caché en memoria.
// El catálogo estado_asistencia es estático (lo siembra la migración),
// así que cada nombre se consulta a lo sumo una vez por proceso.
type estadoRepo struct {
	db *gorm.DB

	mu    sync.RWMutex
	cache map[string]int
}

// NewEstadoRepo crea una instancia de EstadoRepository
func NewEstadoRepo(db *gorm.DB) EstadoRepository {
	return &estadoRepo{db: db, cache: make(map[string]int)}
}

func (r *estadoRepo) IDPorNombre(ctx context.Context, nombre string) (int, error) {
	r.mu.RLock()
	id, ok := r.cache[nombre]
	r.mu.RUnlock()
	if ok {
		return id, nil
	}

	var estado model.EstadoAsistencia
	err := r.db.WithContext(ctx).
		Where("estado = ?", nombre).
		First(&estado).Error
	if err != nil {
		return 0, err
	}

	r.mu.Lock()
	r.cache[nombre] = estado.ID
	r.mu.Unlock()

	return estado.ID, nil
}
