package service

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/xuri/excelize/v2"
	"go.uber.org/zap"

	"bot-asistencia/backend/internal/repository"
)

// ── Errores del módulo de exportación ──

var (
	ErrExportRangoInvalido = errors.New("rango de fechas inválido")
	ErrExportSinRegistros  = errors.New("sin registros de asistencia en el rango")
)

// ExportService exportación administrativa del registro de asistencia.
// Devuelve el .xlsx como bytes.Buffer; el handler fija las cabeceras HTTP
// y escribe el contenido en la respuesta.
type ExportService interface {
	ExportarAsistencia(ctx context.Context, desde, hasta string) (*bytes.Buffer, string, error)
}

type exportService struct {
	repo   *repository.Repository
	logger *zap.Logger
}

// NewExportService crea una instancia de ExportService
func NewExportService(repo *repository.Repository, logger *zap.Logger) ExportService {
	return &exportService{repo: repo, logger: logger}
}

const hojaAsistencia = "Asistencia"

func (s *exportService) ExportarAsistencia(ctx context.Context, desde, hasta string) (*bytes.Buffer, string, error) {
	d, err := time.Parse("2006-01-02", desde)
	if err != nil {
		return nil, "", ErrExportRangoInvalido
	}
	h, err := time.Parse("2006-01-02", hasta)
	if err != nil {
		return nil, "", ErrExportRangoInvalido
	}
	if h.Before(d) {
		return nil, "", ErrExportRangoInvalido
	}

	registros, err := s.repo.Asistencia.ListRango(ctx, desde, hasta)
	if err != nil {
		s.logger.Error("consultar rango de asistencia", zap.Error(err))
		return nil, "", err
	}
	if len(registros) == 0 {
		return nil, "", ErrExportSinRegistros
	}

	f := excelize.NewFile()
	defer f.Close()

	f.SetSheetName("Sheet1", hojaAsistencia)

	cabeceras := []string{"Fecha", "Practicante", "Hora Entrada", "Hora Salida", "Estado", "Motivo"}
	for i, cab := range cabeceras {
		celda, _ := excelize.CoordinatesToCellName(i+1, 1)
		if err := f.SetCellValue(hojaAsistencia, celda, cab); err != nil {
			s.logger.Error("escribir cabecera de exportación", zap.Error(err))
			return nil, "", err
		}
	}

	for fila, reg := range registros {
		nombre := ""
		if reg.Practicante != nil {
			nombre = reg.Practicante.Nombre
		}
		estado := ""
		if reg.Estado != nil {
			estado = reg.Estado.Estado
		}
		salida := ""
		if reg.HoraSalida != nil {
			salida = *reg.HoraSalida
		}
		motivo := ""
		if reg.Motivo != nil {
			motivo = *reg.Motivo
		}

		valores := []interface{}{
			reg.Fecha.Format("2006-01-02"),
			nombre,
			reg.HoraEntrada,
			salida,
			estado,
			motivo,
		}
		for col, v := range valores {
			celda, _ := excelize.CoordinatesToCellName(col+1, fila+2)
			if err := f.SetCellValue(hojaAsistencia, celda, v); err != nil {
				s.logger.Error("escribir fila de exportación", zap.Error(err))
				return nil, "", err
			}
		}
	}

	buf, err := f.WriteToBuffer()
	if err != nil {
		s.logger.Error("generar archivo de exportación", zap.Error(err))
		return nil, "", err
	}

	filename := fmt.Sprintf("asistencia_%s_%s.xlsx", desde, hasta)
	return buf, filename, nil
}
