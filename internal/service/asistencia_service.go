package service

import (
	"context"
	"errors"
	"strings"
	"time"
	"unicode/utf8"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"bot-asistencia/backend/internal/dto"
	"bot-asistencia/backend/internal/horario"
	"bot-asistencia/backend/internal/model"
	"bot-asistencia/backend/internal/repository"
	"bot-asistencia/backend/pkg/clock"
)

// ── Errores de negocio compartidos ──

var (
	ErrCanalNoPermitido        = errors.New("canal no permitido")
	ErrPracticanteNoRegistrado = errors.New("practicante no registrado")
)

// ── Errores del módulo de asistencia ──

var (
	ErrFueraDeHorarioEntrada = errors.New("fuera del horario de entrada")
	ErrEntradaDuplicada      = errors.New("entrada ya registrada hoy")
	ErrSinEntrada            = errors.New("no hay entrada registrada hoy")
	ErrSalidaDuplicada       = errors.New("salida ya registrada hoy")
	ErrMotivoRequerido       = errors.New("la salida anticipada requiere un motivo")
	ErrMotivoMuyLargo        = errors.New("el motivo supera los 255 caracteres")
	ErrDiasFueraDeRango      = errors.New("cantidad de días fuera de rango")
)

// Límites del historial de asistencia
const (
	historialDiasMin = 1
	historialDiasMax = 15
)

const motivoMaxLen = 255

// AsistenciaService motor de transición del registro diario de asistencia.
// Flujo de cada operación: gate → resolución de practicante → política de
// horario → transición + escritura. Una máquina de estados por
// (practicante, fecha): sin registro → Presente|Tardanza → terminal al
// fijar la salida.
type AsistenciaService interface {
	RegistrarEntrada(ctx context.Context, req *dto.EntradaRequest) (*dto.EntradaResponse, error)
	RegistrarSalida(ctx context.Context, req *dto.SalidaRequest) (*dto.SalidaResponse, error)
	ConsultarEstado(ctx context.Context, cmd *dto.ComandoContext) (*dto.EstadoResponse, error)
	Historial(ctx context.Context, q *dto.HistorialQuery) (*dto.HistorialResponse, error)
}

type asistenciaService struct {
	repo   *repository.Repository
	gate   *Gate
	clk    clock.Clock
	logger *zap.Logger
}

// NewAsistenciaService crea una instancia de AsistenciaService
func NewAsistenciaService(repo *repository.Repository, gate *Gate, clk clock.Clock, logger *zap.Logger) AsistenciaService {
	return &asistenciaService{repo: repo, gate: gate, clk: clk, logger: logger}
}

// practicantePorComando resuelve el practicante tras pasar el gate de canal
func (s *asistenciaService) practicantePorComando(ctx context.Context, cmd *dto.ComandoContext) (*model.Practicante, error) {
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

// ────────────────────── RegistrarEntrada ──────────────────────

func (s *asistenciaService) RegistrarEntrada(ctx context.Context, req *dto.EntradaRequest) (*dto.EntradaResponse, error) {
	p, err := s.practicantePorComando(ctx, &req.ComandoContext)
	if err != nil {
		return nil, err
	}

	now := s.clk.Now()
	if !horario.EntradaAbierta(now) {
		return nil, ErrFueraDeHorarioEntrada
	}

	fecha := now.Format("2006-01-02")

	// Rechazo idempotente: una entrada por día
	_, err = s.repo.Asistencia.GetByPracticanteFecha(ctx, p.ID, fecha)
	if err == nil {
		return nil, ErrEntradaDuplicada
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		s.logger.Error("consultar asistencia del día", zap.Error(err))
		return nil, err
	}

	estado := horario.ClasificarEntrada(now)
	estadoID, err := s.repo.Estado.IDPorNombre(ctx, estado)
	if err != nil {
		s.logger.Error("resolver estado de asistencia", zap.String("estado", estado), zap.Error(err))
		return nil, err
	}

	registro := &model.Asistencia{
		PracticanteID: p.ID,
		Fecha:         now,
		HoraEntrada:   now.Format("15:04:05"),
		EstadoID:      estadoID,
	}
	if err := s.repo.Asistencia.Create(ctx, registro); err != nil {
		// Dos entradas concurrentes pueden pasar ambas la verificación de
		// duplicado; el UNIQUE (practicante_id, fecha) cierra la carrera y
		// aquí se traduce al mismo rechazo que el pre-chequeo.
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, ErrEntradaDuplicada
		}
		s.logger.Error("insertar asistencia", zap.Error(err))
		return nil, err
	}

	s.logger.Info("entrada registrada",
		zap.Int64("practicante_id", p.ID),
		zap.String("fecha", fecha),
		zap.String("estado", estado),
	)

	return &dto.EntradaResponse{
		Fecha:       fecha,
		HoraEntrada: now.Format("15:04"),
		Estado:      estado,
	}, nil
}

// ────────────────────── RegistrarSalida ──────────────────────

func (s *asistenciaService) RegistrarSalida(ctx context.Context, req *dto.SalidaRequest) (*dto.SalidaResponse, error) {
	p, err := s.practicantePorComando(ctx, &req.ComandoContext)
	if err != nil {
		return nil, err
	}

	now := s.clk.Now()
	fecha := now.Format("2006-01-02")

	registro, err := s.repo.Asistencia.GetByPracticanteFecha(ctx, p.ID, fecha)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrSinEntrada
		}
		s.logger.Error("consultar asistencia del día", zap.Error(err))
		return nil, err
	}

	// hora_salida transiciona exactamente una vez
	if registro.HoraSalida != nil {
		return nil, ErrSalidaDuplicada
	}

	if horario.EsSalidaAnticipada(now) {
		if strings.TrimSpace(req.Motivo) == "" {
			return nil, ErrMotivoRequerido
		}
		if utf8.RuneCountInString(req.Motivo) > motivoMaxLen {
			return nil, ErrMotivoMuyLargo
		}

		estadoID, err := s.repo.Estado.IDPorNombre(ctx, model.EstadoSalidaAnticipada)
		if err != nil {
			s.logger.Error("resolver estado de asistencia", zap.String("estado", model.EstadoSalidaAnticipada), zap.Error(err))
			return nil, err
		}

		if err := s.repo.Asistencia.RegistrarSalidaAnticipada(ctx, registro.ID, now.Format("15:04:05"), estadoID, req.Motivo); err != nil {
			s.logger.Error("actualizar salida anticipada", zap.Error(err))
			return nil, err
		}

		s.logger.Info("salida anticipada registrada",
			zap.Int64("practicante_id", p.ID),
			zap.String("fecha", fecha),
		)

		return &dto.SalidaResponse{
			Fecha:      fecha,
			HoraSalida: now.Format("15:04"),
			Estado:     model.EstadoSalidaAnticipada,
			Anticipada: true,
		}, nil
	}

	// Salida normal: solo se fija la hora, el estado no cambia
	if err := s.repo.Asistencia.RegistrarSalida(ctx, registro.ID, now.Format("15:04:05")); err != nil {
		s.logger.Error("actualizar salida", zap.Error(err))
		return nil, err
	}

	s.logger.Info("salida registrada",
		zap.Int64("practicante_id", p.ID),
		zap.String("fecha", fecha),
	)

	estado := ""
	if registro.Estado != nil {
		estado = registro.Estado.Estado
	}

	return &dto.SalidaResponse{
		Fecha:      fecha,
		HoraSalida: now.Format("15:04"),
		Estado:     estado,
		Anticipada: false,
	}, nil
}

// ────────────────────── ConsultarEstado ──────────────────────

func (s *asistenciaService) ConsultarEstado(ctx context.Context, cmd *dto.ComandoContext) (*dto.EstadoResponse, error) {
	p, err := s.practicantePorComando(ctx, cmd)
	if err != nil {
		return nil, err
	}

	now := s.clk.Now()
	fecha := now.Format("2006-01-02")

	registro, err := s.repo.Asistencia.GetByPracticanteFecha(ctx, p.ID, fecha)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			// Falta derivada: no existe fila, el estado se calcula
			return &dto.EstadoResponse{
				Fecha:      fecha,
				Estado:     model.EstadoFaltaInjustificada,
				Registrado: false,
			}, nil
		}
		s.logger.Error("consultar asistencia del día", zap.Error(err))
		return nil, err
	}

	estado := ""
	if registro.Estado != nil {
		estado = registro.Estado.Estado
	}

	entrada := registro.HoraEntrada
	return &dto.EstadoResponse{
		Fecha:       fecha,
		Estado:      estado,
		HoraEntrada: &entrada,
		HoraSalida:  registro.HoraSalida,
		Registrado:  true,
	}, nil
}

// ────────────────────── Historial ──────────────────────

func (s *asistenciaService) Historial(ctx context.Context, q *dto.HistorialQuery) (*dto.HistorialResponse, error) {
	p, err := s.practicantePorComando(ctx, &q.ComandoContext)
	if err != nil {
		return nil, err
	}

	if q.Dias < historialDiasMin || q.Dias > historialDiasMax {
		return nil, ErrDiasFueraDeRango
	}

	hoy := s.clk.Now()
	inicio := hoy.AddDate(0, 0, -q.Dias)
	fechaInicio := inicio.Format("2006-01-02")

	registros, err := s.repo.Asistencia.ListDesde(ctx, p.ID, fechaInicio)
	if err != nil {
		s.logger.Error("consultar historial de asistencia", zap.Error(err))
		return nil, err
	}

	recuperaciones, err := s.repo.Recuperacion.ListDesde(ctx, p.ID, fechaInicio)
	if err != nil {
		s.logger.Error("consultar recuperaciones del rango", zap.Error(err))
		return nil, err
	}

	porFecha := make(map[string]*model.Asistencia, len(registros))
	for i := range registros {
		porFecha[registros[i].Fecha.Format("2006-01-02")] = &registros[i]
	}
	conRecuperacion := make(map[string]bool, len(recuperaciones))
	for _, r := range recuperaciones {
		conRecuperacion[r.Fecha.Format("2006-01-02")] = true
	}

	// Recorre el rango de hoy hacia atrás. Un día hábil completamente
	// pasado sin asistencia ni recuperación es una falta injustificada
	// derivada: se emite en la respuesta pero jamás se escribe.
	items := make([]dto.HistorialItem, 0, q.Dias+1)
	for i := 0; i <= q.Dias; i++ {
		dia := hoy.AddDate(0, 0, -i)
		clave := dia.Format("2006-01-02")

		if reg, ok := porFecha[clave]; ok {
			estado := ""
			if reg.Estado != nil {
				estado = reg.Estado.Estado
			}
			entrada := reg.HoraEntrada
			items = append(items, dto.HistorialItem{
				Fecha:       dia.Format("01-02"),
				HoraEntrada: &entrada,
				HoraSalida:  reg.HoraSalida,
				Estado:      estado,
				Motivo:      reg.Motivo,
			})
			continue
		}

		esPasado := i > 0
		esHabil := dia.Weekday() != time.Saturday && dia.Weekday() != time.Sunday
		if esPasado && esHabil && !conRecuperacion[clave] {
			items = append(items, dto.HistorialItem{
				Fecha:    dia.Format("01-02"),
				Estado:   model.EstadoFaltaInjustificada,
				Derivado: true,
			})
		}
	}

	return &dto.HistorialResponse{
		Dias:      q.Dias,
		Registros: items,
	}, nil
}
