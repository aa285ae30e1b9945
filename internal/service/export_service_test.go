package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/xuri/excelize/v2"
	"go.uber.org/zap"

	"bot-asistencia/backend/internal/model"
	"bot-asistencia/backend/internal/repository"
)

func setupExport(t *testing.T) (ExportService, *mockAsistenciaRepo) {
	t.Helper()

	asistencias := newMockAsistenciaRepo()
	repo := &repository.Repository{
		Practicante:  newMockPracticanteRepo(),
		Estado:       &mockEstadoRepo{},
		Asistencia:   asistencias,
		Recuperacion: newMockRecuperacionRepo(),
	}
	return NewExportService(repo, zap.NewNop()), asistencias
}

func TestExportarAsistencia_RangoInvalido(t *testing.T) {
	svc, _ := setupExport(t)

	casos := []struct{ desde, hasta string }{
		{"2025-06-10", "2025-06-01"}, // hasta antes de desde
		{"no-es-fecha", "2025-06-01"},
		{"2025-06-01", "junio"},
	}
	for _, c := range casos {
		if _, _, err := svc.ExportarAsistencia(context.Background(), c.desde, c.hasta); !errors.Is(err, ErrExportRangoInvalido) {
			t.Errorf("(%s, %s): se esperaba ErrExportRangoInvalido, se obtuvo: %v", c.desde, c.hasta, err)
		}
	}
}

func TestExportarAsistencia_SinRegistros(t *testing.T) {
	svc, _ := setupExport(t)

	_, _, err := svc.ExportarAsistencia(context.Background(), "2025-06-01", "2025-06-30")
	if !errors.Is(err, ErrExportSinRegistros) {
		t.Errorf("se esperaba ErrExportSinRegistros, se obtuvo: %v", err)
	}
}

func TestExportarAsistencia_GeneraXLSX(t *testing.T) {
	svc, asistencias := setupExport(t)

	dia := time.Date(2025, 6, 2, 0, 0, 0, 0, limaTest)
	salida := "16:00:00"
	asistencias.registros[claveAsistencia(1, "2025-06-02")] = &model.Asistencia{
		ID:            1,
		PracticanteID: 1,
		Fecha:         dia,
		HoraEntrada:   "08:00:00",
		HoraSalida:    &salida,
		EstadoID:      1,
		Estado:        &model.EstadoAsistencia{ID: 1, Estado: model.EstadoPresente},
		Practicante:   &model.Practicante{ID: 1, Nombre: "Practicante Uno"},
	}

	buf, filename, err := svc.ExportarAsistencia(context.Background(), "2025-06-01", "2025-06-30")
	if err != nil {
		t.Fatalf("ExportarAsistencia debería funcionar: %v", err)
	}
	if filename != "asistencia_2025-06-01_2025-06-30.xlsx" {
		t.Errorf("nombre de archivo inesperado: %q", filename)
	}

	// el buffer debe ser un xlsx legible con la fila exportada
	f, err := excelize.OpenReader(buf)
	if err != nil {
		t.Fatalf("el contenido debería abrirse como xlsx: %v", err)
	}
	defer f.Close()

	filas, err := f.GetRows("Asistencia")
	if err != nil {
		t.Fatalf("leer hoja Asistencia: %v", err)
	}
	if len(filas) != 2 {
		t.Fatalf("se esperaban cabecera + 1 fila, se obtuvo %d", len(filas))
	}
	if filas[1][1] != "Practicante Uno" || filas[1][4] != model.EstadoPresente {
		t.Errorf("fila exportada inesperada: %+v", filas[1])
	}
}
