package handler

import (
	"errors"

	"github.com/gin-gonic/gin"

	"bot-asistencia/backend/internal/service"
	"bot-asistencia/backend/pkg/response"
)

// manejarErrorComun traduce los errores compartidos por todos los comandos
// (gate de canal y resolución del practicante). Devuelve true si el error
// ya fue respondido; el handler que llama debe hacer return en ese caso.
func manejarErrorComun(c *gin.Context, err error) bool {
	switch {
	case errors.Is(err, service.ErrCanalNoPermitido):
		response.Forbidden(c, 10003, "Este comando no está disponible en este canal.")
		return true
	case errors.Is(err, service.ErrPracticanteNoRegistrado):
		response.NotFound(c, 10004, "No estás registrado como practicante. Contacta a un administrador.")
		return true
	}
	return false
}
