package middleware

import (
	"context"

	"github.com/gin-gonic/gin"
)

// ContadorEventos incrementa el contador diario de eventos procesados.
// Lo implementa el reporter.
type ContadorEventos interface {
	ContarEvento(ctx context.Context)
}

// ContarEventos cuenta cada invocación de comando para las métricas del día.
// Se aplica solo a las rutas de comandos, no al canal de servicio del gateway.
func ContarEventos(contador ContadorEventos) gin.HandlerFunc {
	return func(c *gin.Context) {
		contador.ContarEvento(c.Request.Context())
		c.Next()
	}
}
