package service

import (
	"context"
	"errors"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"bot-asistencia/backend/internal/dto"
	"bot-asistencia/backend/internal/model"
	"bot-asistencia/backend/internal/repository"
)

// faltasLimit cuántas faltas recientes se muestran
const faltasLimit = 5

// FaltasService consulta de faltas injustificadas.
// El motor nunca escribe ese estado: las filas que devuelve esta consulta
// provienen de carga histórica o de ajustes manuales del administrador.
type FaltasService interface {
	VerFaltas(ctx context.Context, cmd *dto.ComandoContext) (*dto.FaltasResponse, error)
}

type faltasService struct {
	repo   *repository.Repository
	gate   *Gate
	logger *zap.Logger
}

// NewFaltasService crea una instancia de FaltasService
func NewFaltasService(repo *repository.Repository, gate *Gate, logger *zap.Logger) FaltasService {
	return &faltasService{repo: repo, gate: gate, logger: logger}
}

func (s *faltasService) VerFaltas(ctx context.Context, cmd *dto.ComandoContext) (*dto.FaltasResponse, error) {
	if !s.gate.CanalPermitido(cmd.GuildID, cmd.ChannelID) {
		return nil, ErrCanalNoPermitido
	}

	p, err := s.repo.Practicante.GetByDiscordID(ctx, cmd.IDDiscord)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrPracticanteNoRegistrado
		}
		s.logger.Error("consultar practicante", zap.Error(err))
		return nil, err
	}

	estadoID, err := s.repo.Estado.IDPorNombre(ctx, model.EstadoFaltaInjustificada)
	if err != nil {
		s.logger.Error("resolver estado de asistencia", zap.String("estado", model.EstadoFaltaInjustificada), zap.Error(err))
		return nil, err
	}

	faltas, err := s.repo.Asistencia.ListPorEstado(ctx, p.ID, estadoID, faltasLimit)
	if err != nil {
		s.logger.Error("consultar faltas injustificadas", zap.Error(err))
		return nil, err
	}

	items := make([]dto.FaltaItem, 0, len(faltas))
	for _, f := range faltas {
		motivo := "No especificado"
		if f.Motivo != nil && *f.Motivo != "" {
			motivo = *f.Motivo
		}
		items = append(items, dto.FaltaItem{
			Fecha:  f.Fecha.Format("01-02"),
			Motivo: motivo,
		})
	}

	return &dto.FaltasResponse{Faltas: items}, nil
}
