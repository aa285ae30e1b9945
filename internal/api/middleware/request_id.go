package middleware

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

const requestIDKey = "request_id"

// requestIDMaxLen limita el Request-ID entrante para evitar inyección en logs
const requestIDMaxLen = 64

// RequestID middleware de trazabilidad de peticiones.
// Lee X-Request-ID del gateway; si no viene (o viene malformado) genera un
// UUID. El valor queda en el contexto y en la cabecera de respuesta.
func RequestID() gin.HandlerFunc {
	return func(c *gin.Context) {
		rid := c.GetHeader("X-Request-ID")
		if rid == "" || len(rid) > requestIDMaxLen {
			rid = uuid.New().String()
		}

		c.Set(requestIDKey, rid)
		c.Header("X-Request-ID", rid)

		c.Next()
	}
}
