package handler

import (
	"errors"
	"net/http"
	"net/url"

	"github.com/gin-gonic/gin"

	"bot-asistencia/backend/internal/service"
	"bot-asistencia/backend/pkg/response"
)

const xlsxContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

// ExportHandler handlers HTTP del módulo de exportación
type ExportHandler struct {
	exportSvc service.ExportService
}

// NewExportHandler crea un ExportHandler
func NewExportHandler(exportSvc service.ExportService) *ExportHandler {
	return &ExportHandler{exportSvc: exportSvc}
}

// ExportarAsistencia exporta la asistencia de un rango de fechas a XLSX
// GET /api/v1/export/asistencia?desde=2025-06-01&hasta=2025-06-30
func (h *ExportHandler) ExportarAsistencia(c *gin.Context) {
	desde := c.Query("desde")
	hasta := c.Query("hasta")
	if desde == "" || hasta == "" {
		response.BadRequest(c, 10001, "Los parámetros desde y hasta son obligatorios")
		return
	}

	buf, filename, err := h.exportSvc.ExportarAsistencia(c.Request.Context(), desde, hasta)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrExportRangoInvalido):
			response.BadRequest(c, 23001, "El rango de fechas es inválido (formato AAAA-MM-DD, desde ≤ hasta)")
		case errors.Is(err, service.ErrExportSinRegistros):
			response.NotFound(c, 23002, "No hay registros de asistencia en el rango indicado")
		default:
			response.InternalError(c)
		}
		return
	}

	encodedFilename := url.QueryEscape(filename)
	c.Header("Content-Description", "File Transfer")
	c.Header("Content-Disposition", "attachment; filename*=UTF-8''"+encodedFilename)
	c.Data(http.StatusOK, xlsxContentType, buf.Bytes())
}
