package service

import (
	"go.uber.org/zap"

	"bot-asistencia/backend/config"
	"bot-asistencia/backend/internal/repository"
	"bot-asistencia/backend/pkg/clock"
)

// Service punto de entrada agregado de todos los servicios
type Service struct {
	Asistencia   AsistenciaService
	Recuperacion RecuperacionService
	Faltas       FaltasService
	Export       ExportService
}

// NewService crea el agregado de servicios.
// El Gate y el reloj se construyen aquí una vez y se comparten: el resto
// del código nunca lee configuración global ni la hora ambiente.
func NewService(
	cfg *config.Config,
	repo *repository.Repository,
	clk clock.Clock,
	logger *zap.Logger,
) *Service {
	gate := NewGate(&cfg.Accesos)

	return &Service{
		Asistencia:   NewAsistenciaService(repo, gate, clk, logger),
		Recuperacion: NewRecuperacionService(repo, gate, clk, logger),
		Faltas:       NewFaltasService(repo, gate, logger),
		Export:       NewExportService(repo, logger),
	}
}
