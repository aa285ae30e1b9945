package service

import (
	"context"
	"errors"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"bot-asistencia/backend/internal/dto"
	"bot-asistencia/backend/internal/horario"
	"bot-asistencia/backend/internal/model"
	"bot-asistencia/backend/internal/repository"
	"bot-asistencia/backend/pkg/clock"
)

// ── Errores del módulo de recuperación ──

var (
	ErrRolNoPermitido             = errors.New("rol no habilitado para recuperación")
	ErrFueraDeHorarioRecuperacion = errors.New("fuera del horario de recuperación")
	ErrRecuperacionDuplicada      = errors.New("recuperación ya registrada hoy")
)

// Límites del historial de recuperaciones
const (
	recuperacionDiasMin = 1
	recuperacionDiasMax = 30
)

// RecuperacionService registro y consulta de sesiones de recuperación.
// Además del gate de canal, el registro pasa por el gate de roles: solo
// los roles configurados para el guild pueden registrar (lista vacía
// habilita a todos).
type RecuperacionService interface {
	Registrar(ctx context.Context, req *dto.RecuperacionRequest) (*dto.RecuperacionResponse, error)
	Historial(ctx context.Context, q *dto.RecuperacionHistorialQuery) (*dto.RecuperacionHistorialResponse, error)
}

type recuperacionService struct {
	repo   *repository.Repository
	gate   *Gate
	clk    clock.Clock
	logger *zap.Logger
}

// NewRecuperacionService crea una instancia de RecuperacionService
func NewRecuperacionService(repo *repository.Repository, gate *Gate, clk clock.Clock, logger *zap.Logger) RecuperacionService {
	return &recuperacionService{repo: repo, gate: gate, clk: clk, logger: logger}
}

// practicantePorComando gate de canal + resolución de practicante
func (s *recuperacionService) practicantePorComando(ctx context.Context, cmd *dto.ComandoContext) (*model.Practicante, error) {
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
	return p, nil
}

// ────────────────────── Registrar ──────────────────────

func (s *recuperacionService) Registrar(ctx context.Context, req *dto.RecuperacionRequest) (*dto.RecuperacionResponse, error) {
	// El gate de roles corre antes que cualquier consulta, igual que el
	// de canal: rechazo sin efectos secundarios.
	if !s.gate.CanalPermitido(req.GuildID, req.ChannelID) {
		return nil, ErrCanalNoPermitido
	}
	if !s.gate.RolPermitido(req.GuildID, req.RoleIDs) {
		return nil, ErrRolNoPermitido
	}

	p, err := s.repo.Practicante.GetByDiscordID(ctx, req.IDDiscord)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrPracticanteNoRegistrado
		}
		s.logger.Error("consultar practicante", zap.Error(err))
		return nil, err
	}

	now := s.clk.Now()
	if !horario.RecuperacionAbierta(now) {
		return nil, ErrFueraDeHorarioRecuperacion
	}

	fecha := now.Format("2006-01-02")

	// Una recuperación por día
	_, err = s.repo.Recuperacion.GetByPracticanteFecha(ctx, p.ID, fecha)
	if err == nil {
		return nil, ErrRecuperacionDuplicada
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		s.logger.Error("consultar recuperación del día", zap.Error(err))
		return nil, err
	}

	sesion := &model.Recuperacion{
		PracticanteID: p.ID,
		Fecha:         now,
		HoraEntrada:   now.Format("15:04:05"),
	}
	if err := s.repo.Recuperacion.Create(ctx, sesion); err != nil {
		// El UNIQUE (practicante_id, fecha) cierra la carrera entre dos
		// registros concurrentes que pasaron ambos el pre-chequeo.
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, ErrRecuperacionDuplicada
		}
		s.logger.Error("insertar recuperación", zap.Error(err))
		return nil, err
	}

	s.logger.Info("recuperación registrada",
		zap.Int64("practicante_id", p.ID),
		zap.String("fecha", fecha),
	)

	return &dto.RecuperacionResponse{
		Fecha:       now.Format("02/01/2006"),
		HoraEntrada: now.Format("15:04"),
	}, nil
}

// ────────────────────── Historial ──────────────────────

func (s *recuperacionService) Historial(ctx context.Context, q *dto.RecuperacionHistorialQuery) (*dto.RecuperacionHistorialResponse, error) {
	p, err := s.practicantePorComando(ctx, &q.ComandoContext)
	if err != nil {
		return nil, err
	}

	if q.Dias < recuperacionDiasMin || q.Dias > recuperacionDiasMax {
		return nil, ErrDiasFueraDeRango
	}

	hoy := s.clk.Now()
	fechaInicio := hoy.AddDate(0, 0, -q.Dias).Format("2006-01-02")

	sesiones, err := s.repo.Recuperacion.ListDesde(ctx, p.ID, fechaInicio)
	if err != nil {
		s.logger.Error("consultar historial de recuperaciones", zap.Error(err))
		return nil, err
	}

	items := make([]dto.RecuperacionItem, 0, len(sesiones))
	for _, ses := range sesiones {
		entrada := ses.HoraEntrada
		items = append(items, dto.RecuperacionItem{
			Fecha:       ses.Fecha.Format("01-02"),
			HoraEntrada: &entrada,
			HoraSalida:  ses.HoraSalida,
		})
	}

	return &dto.RecuperacionHistorialResponse{
		Dias:     q.Dias,
		Sesiones: items,
	}, nil
}
