package handler

import (
	"github.com/gin-gonic/gin"

	"bot-asistencia/backend/internal/dto"
	"bot-asistencia/backend/internal/service"
	"bot-asistencia/backend/pkg/response"
)

// FaltasHandler handlers HTTP del módulo de faltas
type FaltasHandler struct {
	faltasSvc service.FaltasService
}

// NewFaltasHandler crea un FaltasHandler
func NewFaltasHandler(faltasSvc service.FaltasService) *FaltasHandler {
	return &FaltasHandler{faltasSvc: faltasSvc}
}

// VerFaltas últimas faltas injustificadas del practicante
// GET /api/v1/faltas
func (h *FaltasHandler) VerFaltas(c *gin.Context) {
	var cmd dto.ComandoContext
	if err := c.ShouldBindQuery(&cmd); err != nil {
		response.BadRequest(c, 10001, "Parámetros inválidos")
		return
	}

	result, err := h.faltasSvc.VerFaltas(c.Request.Context(), &cmd)
	if err != nil {
		if manejarErrorComun(c, err) {
			return
		}
		response.InternalError(c)
		return
	}

	msg := "Estas son tus últimas faltas injustificadas."
	if len(result.Faltas) == 0 {
		msg = "No tienes faltas injustificadas registradas. ¡Sigue así!"
	}
	response.OK(c, msg, result)
}
