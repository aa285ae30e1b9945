package middleware

import (
	"errors"
	"strings"

	"github.com/gin-gonic/gin"

	"bot-asistencia/backend/pkg/response"
	"bot-asistencia/backend/pkg/token"
)

// GatewayAuth middleware de autenticación del gateway.
// Extrae y verifica el token de servicio de Authorization: Bearer <token>.
// Este backend no atiende usuarios finales: el único cliente es el gateway
// de Discord, que firma cada petición con el secreto compartido.
func GatewayAuth(tokens *token.Manager) gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			response.Unauthorized(c, 10002, "Falta la cabecera de autenticación")
			c.Abort()
			return
		}

		parts := strings.SplitN(authHeader, " ", 2)
		if len(parts) != 2 || parts[0] != "Bearer" {
			response.Unauthorized(c, 10002, "Cabecera de autenticación inválida")
			c.Abort()
			return
		}

		claims, err := tokens.Verify(parts[1])
		if err != nil {
			if errors.Is(err, token.ErrTokenExpirado) {
				response.Unauthorized(c, 10002, "Token expirado")
			} else {
				response.Unauthorized(c, 10002, "Token inválido")
			}
			c.Abort()
			return
		}

		c.Set("service", claims.Service)
		c.Next()
	}
}
