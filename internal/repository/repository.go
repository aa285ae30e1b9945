package repository

import "gorm.io/gorm"

// Repository punto de entrada agregado de todos los repositorios
type Repository struct {
	Practicante  PracticanteRepository
	Estado       EstadoRepository
	Asistencia   AsistenciaRepository
	Recuperacion RecuperacionRepository
}

// NewRepository crea el agregado de repositorios sobre un único pool
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{
		Practicante:  NewPracticanteRepo(db),
		Estado:       NewEstadoRepo(db),
		Asistencia:   NewAsistenciaRepo(db),
		Recuperacion: NewRecuperacionRepo(db),
	}
}
