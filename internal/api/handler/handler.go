package handler

import "bot-asistencia/backend/internal/service"

// Handler agregado de todos los handlers HTTP
type Handler struct {
	Asistencia   *AsistenciaHandler
	Recuperacion *RecuperacionHandler
	Faltas       *FaltasHandler
	Export       *ExportHandler
	Gateway      *GatewayHandler
}

// NewHandler crea el agregado de handlers
func NewHandler(svc *service.Service, snapshots SnapshotStore) *Handler {
	return &Handler{
		Asistencia:   NewAsistenciaHandler(svc.Asistencia),
		Recuperacion: NewRecuperacionHandler(svc.Recuperacion),
		Faltas:       NewFaltasHandler(svc.Faltas),
		Export:       NewExportHandler(svc.Export),
		Gateway:      NewGatewayHandler(snapshots),
	}
}
