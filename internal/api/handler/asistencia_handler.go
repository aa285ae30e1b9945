package handler

import (
	"errors"
	"fmt"

	"github.com/gin-gonic/gin"

	"bot-asistencia/backend/internal/dto"
	"bot-asistencia/backend/internal/model"
	"bot-asistencia/backend/internal/service"
	"bot-asistencia/backend/pkg/response"
)

// AsistenciaHandler handlers HTTP del módulo de asistencia
type AsistenciaHandler struct {
	asistenciaSvc service.AsistenciaService
}

// NewAsistenciaHandler crea un AsistenciaHandler
func NewAsistenciaHandler(asistenciaSvc service.AsistenciaService) *AsistenciaHandler {
	return &AsistenciaHandler{asistenciaSvc: asistenciaSvc}
}

// RegistrarEntrada registra la hora de entrada del día
// POST /api/v1/asistencia/entrada
func (h *AsistenciaHandler) RegistrarEntrada(c *gin.Context) {
	var req dto.EntradaRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, 10001, "Parámetros inválidos")
		return
	}

	result, err := h.asistenciaSvc.RegistrarEntrada(c.Request.Context(), &req)
	if err != nil {
		if manejarErrorComun(c, err) {
			return
		}
		switch {
		case errors.Is(err, service.ErrFueraDeHorarioEntrada):
			response.BadRequest(c, 20001, "Solo puedes registrar tu entrada de lunes a viernes entre las 7:00 AM y las 2:00 PM.")
		case errors.Is(err, service.ErrEntradaDuplicada):
			response.Conflict(c, 20002, "Ya has registrado tu entrada el día de hoy.")
		default:
			response.InternalError(c)
		}
		return
	}

	msg := fmt.Sprintf("Se ha registrado tu entrada a las %s.", result.HoraEntrada)
	if result.Estado == model.EstadoTardanza {
		msg = fmt.Sprintf("Se ha registrado tu entrada a las %s con tardanza.", result.HoraEntrada)
	}
	response.Created(c, msg, result)
}

// RegistrarSalida registra la hora de salida del día
// POST /api/v1/asistencia/salida
func (h *AsistenciaHandler) RegistrarSalida(c *gin.Context) {
	var req dto.SalidaRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, 10001, "Parámetros inválidos")
		return
	}

	result, err := h.asistenciaSvc.RegistrarSalida(c.Request.Context(), &req)
	if err != nil {
		if manejarErrorComun(c, err) {
			return
		}
		switch {
		case errors.Is(err, service.ErrSinEntrada):
			response.NotFound(c, 20003, "No has registrado tu entrada el día de hoy.")
		case errors.Is(err, service.ErrSalidaDuplicada):
			response.Conflict(c, 20004, "Ya has registrado tu salida el día de hoy.")
		case errors.Is(err, service.ErrMotivoRequerido):
			response.BadRequest(c, 20005, "Debes indicar un motivo para salir antes de las 2:00 PM.")
		case errors.Is(err, service.ErrMotivoMuyLargo):
			response.BadRequest(c, 20006, "El motivo no puede superar los 255 caracteres.")
		default:
			response.InternalError(c)
		}
		return
	}

	msg := fmt.Sprintf("Se ha registrado tu salida a las %s. ¡Hasta mañana!", result.HoraSalida)
	if result.Anticipada {
		msg = fmt.Sprintf("Tu salida anticipada a las %s ha sido registrada con el motivo indicado.", result.HoraSalida)
	}
	response.OK(c, msg, result)
}

// ConsultarEstado estado de asistencia del día en curso
// GET /api/v1/asistencia/estado
func (h *AsistenciaHandler) ConsultarEstado(c *gin.Context) {
	var cmd dto.ComandoContext
	if err := c.ShouldBindQuery(&cmd); err != nil {
		response.BadRequest(c, 10001, "Parámetros inválidos")
		return
	}

	result, err := h.asistenciaSvc.ConsultarEstado(c.Request.Context(), &cmd)
	if err != nil {
		if manejarErrorComun(c, err) {
			return
		}
		response.InternalError(c)
		return
	}

	msg := fmt.Sprintf("Tu asistencia de hoy: %s.", result.Estado)
	if !result.Registrado {
		msg = "No has registrado tu asistencia el día de hoy."
	}
	response.OK(c, msg, result)
}

// Historial historial de asistencia de los últimos N días
// GET /api/v1/asistencia/historial?dias=7
func (h *AsistenciaHandler) Historial(c *gin.Context) {
	var q dto.HistorialQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		response.BadRequest(c, 10001, "Parámetros inválidos")
		return
	}

	result, err := h.asistenciaSvc.Historial(c.Request.Context(), &q)
	if err != nil {
		if manejarErrorComun(c, err) {
			return
		}
		if errors.Is(err, service.ErrDiasFueraDeRango) {
			response.BadRequest(c, 20007, "El número de días debe estar entre 1 y 15.")
			return
		}
		response.InternalError(c)
		return
	}

	response.OK(c, fmt.Sprintf("Historial de asistencia de los últimos %d días.", result.Dias), result)
}
