package handler

import (
	"github.com/gin-gonic/gin"

	"bot-asistencia/backend/internal/dto"
	"bot-asistencia/backend/pkg/response"
)

// SnapshotStore receptor de las instantáneas de servidores que publica el
// gateway. Lo implementa el reporter.
type SnapshotStore interface {
	ActualizarServidores(servidores []dto.ServidorSnapshot)
}

// GatewayHandler handlers HTTP del canal de servicio del gateway
type GatewayHandler struct {
	snapshots SnapshotStore
}

// NewGatewayHandler crea un GatewayHandler
func NewGatewayHandler(snapshots SnapshotStore) *GatewayHandler {
	return &GatewayHandler{snapshots: snapshots}
}

// PublicarSnapshot recibe la instantánea periódica de servidores conectados
// POST /api/v1/gateway/snapshot
func (h *GatewayHandler) PublicarSnapshot(c *gin.Context) {
	var req dto.SnapshotRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, 10001, "Parámetros inválidos")
		return
	}

	h.snapshots.ActualizarServidores(req.Servidores)
	response.OK(c, "Snapshot recibido", nil)
}
