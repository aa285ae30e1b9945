package router

import (
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"bot-asistencia/backend/internal/api/handler"
	"bot-asistencia/backend/internal/api/middleware"
	"bot-asistencia/backend/pkg/token"
)

// Setup inicializa y devuelve el motor de rutas de Gin
func Setup(h *handler.Handler, tokens *token.Manager, contador middleware.ContadorEventos, logger *zap.Logger) *gin.Engine {
	gin.SetMode(gin.ReleaseMode)

	r := gin.New()

	// ── Middleware global ──
	r.Use(gin.Recovery())
	r.Use(middleware.RequestID())
	r.Use(middleware.Logger(logger))

	// ── Health check ──
	r.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "ok"})
	})

	// ── API v1 (todo autenticado: el único cliente es el gateway) ──
	v1 := r.Group("/api/v1")
	v1.Use(middleware.GatewayAuth(tokens))
	{
		// Comandos de practicantes: cada invocación cuenta como evento
		comandos := v1.Group("")
		comandos.Use(middleware.ContarEventos(contador))
		{
			asistencia := comandos.Group("/asistencia")
			{
				asistencia.POST("/entrada", h.Asistencia.RegistrarEntrada)
				asistencia.POST("/salida", h.Asistencia.RegistrarSalida)
				asistencia.GET("/estado", h.Asistencia.ConsultarEstado)
				asistencia.GET("/historial", h.Asistencia.Historial)
			}

			recuperaciones := comandos.Group("/recuperaciones")
			{
				recuperaciones.POST("", h.Recuperacion.Registrar)
				recuperaciones.GET("/historial", h.Recuperacion.Historial)
			}

			comandos.GET("/faltas", h.Faltas.VerFaltas)
		}

		// Exportación administrativa
		v1.GET("/export/asistencia", h.Export.ExportarAsistencia)

		// Canal de servicio del gateway
		v1.POST("/gateway/snapshot", h.Gateway.PublicarSnapshot)
	}

	return r
}
