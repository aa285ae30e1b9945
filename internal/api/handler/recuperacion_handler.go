package handler

import (
	"errors"
	"fmt"

	"github.com/gin-gonic/gin"

	"bot-asistencia/backend/internal/dto"
	"bot-asistencia/backend/internal/service"
	"bot-asistencia/backend/pkg/response"
)

// RecuperacionHandler handlers HTTP del módulo de recuperación
type RecuperacionHandler struct {
	recuperacionSvc service.RecuperacionService
}

// NewRecuperacionHandler crea un RecuperacionHandler
func NewRecuperacionHandler(recuperacionSvc service.RecuperacionService) *RecuperacionHandler {
	return &RecuperacionHandler{recuperacionSvc: recuperacionSvc}
}

// Registrar registra una sesión de recuperación
// POST /api/v1/recuperaciones
func (h *RecuperacionHandler) Registrar(c *gin.Context) {
	var req dto.RecuperacionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, 10001, "Parámetros inválidos")
		return
	}

	result, err := h.recuperacionSvc.Registrar(c.Request.Context(), &req)
	if err != nil {
		if manejarErrorComun(c, err) {
			return
		}
		switch {
		case errors.Is(err, service.ErrRolNoPermitido):
			response.Forbidden(c, 21001, "No tienes el rol necesario para registrar recuperaciones.")
		case errors.Is(err, service.ErrFueraDeHorarioRecuperacion):
			response.BadRequest(c, 21002, "Las recuperaciones solo pueden registrarse entre las 2:30 PM y las 8:00 PM.")
		case errors.Is(err, service.ErrRecuperacionDuplicada):
			response.Conflict(c, 21003, "Ya has registrado una recuperación el día de hoy.")
		default:
			response.InternalError(c)
		}
		return
	}

	msg := fmt.Sprintf("Tu recuperación del %s ha sido registrada a las %s.", result.Fecha, result.HoraEntrada)
	response.Created(c, msg, result)
}

// Historial historial de recuperaciones de los últimos N días
// GET /api/v1/recuperaciones/historial?dias=15
func (h *RecuperacionHandler) Historial(c *gin.Context) {
	var q dto.RecuperacionHistorialQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		response.BadRequest(c, 10001, "Parámetros inválidos")
		return
	}

	result, err := h.recuperacionSvc.Historial(c.Request.Context(), &q)
	if err != nil {
		if manejarErrorComun(c, err) {
			return
		}
		if errors.Is(err, service.ErrDiasFueraDeRango) {
			response.BadRequest(c, 21004, "El número de días debe estar entre 1 y 30.")
			return
		}
		response.InternalError(c)
		return
	}

	response.OK(c, fmt.Sprintf("Historial de recuperaciones de los últimos %d días.", result.Dias), result)
}
