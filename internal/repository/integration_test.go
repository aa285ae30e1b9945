//go:build integration

package repository_test

import (
	"context"
	"errors"
	"fmt"
	"os"
	"testing"
	"time"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"bot-asistencia/backend/internal/model"
	"bot-asistencia/backend/internal/repository"
)

// ═══════════════════════════════════════════════════════════
// Test Setup
// ═══════════════════════════════════════════════════════════

var (
	testDB   *gorm.DB
	testRepo *repository.Repository
	lima     *time.Location
)

func TestMain(m *testing.M) {
	dsn := os.Getenv("TEST_DATABASE_DSN")
	if dsn == "" {
		dsn = "host=localhost port=5433 user=asistencia password=asistencia_password dbname=asistencia_test sslmode=disable TimeZone=America/Lima"
	}

	var err error
	testDB, err = gorm.Open(postgres.Open(dsn), &gorm.Config{
		Logger:         logger.Default.LogMode(logger.Silent),
		TranslateError: true,
	})
	if err != nil {
		fmt.Fprintf(os.Stderr, "no se pudo conectar a la base de pruebas: %v\n", err)
		os.Exit(1)
	}

	err = testDB.AutoMigrate(
		&model.Practicante{},
		&model.EstadoAsistencia{},
		&model.Asistencia{},
		&model.Recuperacion{},
	)
	if err != nil {
		fmt.Fprintf(os.Stderr, "AutoMigrate falló: %v\n", err)
		os.Exit(1)
	}

	// catálogo de estados (idempotente entre corridas)
	estados := []model.EstadoAsistencia{
		{ID: 1, Estado: model.EstadoPresente},
		{ID: 2, Estado: model.EstadoTardanza},
		{ID: 3, Estado: model.EstadoSalidaAnticipada},
		{ID: 4, Estado: model.EstadoFaltaInjustificada},
	}
	for _, e := range estados {
		testDB.Where(model.EstadoAsistencia{ID: e.ID}).FirstOrCreate(&e)
	}

	lima, err = time.LoadLocation("America/Lima")
	if err != nil {
		fmt.Fprintf(os.Stderr, "cargar zona horaria: %v\n", err)
		os.Exit(1)
	}

	testRepo = repository.NewRepository(testDB)

	os.Exit(m.Run())
}

// setupPracticante crea un practicante de prueba con limpieza en cascada
func setupPracticante(t *testing.T) *model.Practicante {
	t.Helper()
	ctx := context.Background()

	p := &model.Practicante{
		IDDiscord: fmt.Sprintf("%d", time.Now().UnixNano()),
		Nombre:    "Practicante de Prueba",
		Activo:    true,
	}
	if err := testDB.WithContext(ctx).Create(p).Error; err != nil {
		t.Fatalf("crear practicante: %v", err)
	}

	t.Cleanup(func() {
		testDB.Where("practicante_id = ?", p.ID).Delete(&model.Asistencia{})
		testDB.Where("practicante_id = ?", p.ID).Delete(&model.Recuperacion{})
		testDB.Delete(p)
	})
	return p
}

// ═══════════════════════════════════════════════════════════
// Practicante / Estado
// ═══════════════════════════════════════════════════════════

func TestPracticanteRepo_GetByDiscordID(t *testing.T) {
	ctx := context.Background()
	p := setupPracticante(t)

	got, err := testRepo.Practicante.GetByDiscordID(ctx, p.IDDiscord)
	if err != nil {
		t.Fatalf("GetByDiscordID: %v", err)
	}
	if got.ID != p.ID {
		t.Errorf("id=%d, se esperaba %d", got.ID, p.ID)
	}

	// los inactivos no se resuelven
	if err := testDB.Model(p).Update("activo", false).Error; err != nil {
		t.Fatalf("desactivar practicante: %v", err)
	}
	if _, err := testRepo.Practicante.GetByDiscordID(ctx, p.IDDiscord); !errors.Is(err, gorm.ErrRecordNotFound) {
		t.Errorf("un practicante inactivo debe resultar no encontrado, se obtuvo: %v", err)
	}
}

func TestEstadoRepo_IDPorNombre(t *testing.T) {
	ctx := context.Background()

	id, err := testRepo.Estado.IDPorNombre(ctx, model.EstadoPresente)
	if err != nil {
		t.Fatalf("IDPorNombre: %v", err)
	}
	if id != 1 {
		t.Errorf("id=%d, se esperaba 1", id)
	}

	if _, err := testRepo.Estado.IDPorNombre(ctx, "Inexistente"); err == nil {
		t.Error("un estado inexistente debe fallar")
	}
}

// ═══════════════════════════════════════════════════════════
// Asistencia
// ═══════════════════════════════════════════════════════════

func TestAsistenciaRepo_CicloCompleto(t *testing.T) {
	ctx := context.Background()
	p := setupPracticante(t)
	dia := time.Date(2025, 6, 2, 0, 0, 0, 0, lima)
	fecha := dia.Format("2006-01-02")

	reg := &model.Asistencia{
		PracticanteID: p.ID,
		Fecha:         dia,
		HoraEntrada:   "08:00:00",
		EstadoID:      1,
	}
	if err := testRepo.Asistencia.Create(ctx, reg); err != nil {
		t.Fatalf("Create: %v", err)
	}

	got, err := testRepo.Asistencia.GetByPracticanteFecha(ctx, p.ID, fecha)
	if err != nil {
		t.Fatalf("GetByPracticanteFecha: %v", err)
	}
	if got.HoraSalida != nil {
		t.Error("un registro recién creado no tiene salida")
	}
	if got.Estado == nil || got.Estado.Estado != model.EstadoPresente {
		t.Errorf("el estado debe venir precargado: %+v", got.Estado)
	}

	if err := testRepo.Asistencia.RegistrarSalida(ctx, got.ID, "16:00:00"); err != nil {
		t.Fatalf("RegistrarSalida: %v", err)
	}
	got, err = testRepo.Asistencia.GetByPracticanteFecha(ctx, p.ID, fecha)
	if err != nil {
		t.Fatalf("releer registro: %v", err)
	}
	if got.HoraSalida == nil || *got.HoraSalida != "16:00:00" {
		t.Errorf("hora_salida=%v, se esperaba 16:00:00", got.HoraSalida)
	}
	if got.EstadoID != 1 {
		t.Errorf("la salida normal no cambia el estado, estado_id=%d", got.EstadoID)
	}
}

func TestAsistenciaRepo_UnicidadPorDia(t *testing.T) {
	ctx := context.Background()
	p := setupPracticante(t)
	dia := time.Date(2025, 6, 2, 0, 0, 0, 0, lima)

	primera := &model.Asistencia{PracticanteID: p.ID, Fecha: dia, HoraEntrada: "08:00:00", EstadoID: 1}
	if err := testRepo.Asistencia.Create(ctx, primera); err != nil {
		t.Fatalf("primera inserción: %v", err)
	}

	segunda := &model.Asistencia{PracticanteID: p.ID, Fecha: dia, HoraEntrada: "08:05:00", EstadoID: 1}
	err := testRepo.Asistencia.Create(ctx, segunda)
	if !errors.Is(err, gorm.ErrDuplicatedKey) {
		t.Errorf("la segunda inserción del día debe chocar con el UNIQUE, se obtuvo: %v", err)
	}
}

func TestAsistenciaRepo_SalidaAnticipada(t *testing.T) {
	ctx := context.Background()
	p := setupPracticante(t)
	dia := time.Date(2025, 6, 2, 0, 0, 0, 0, lima)
	fecha := dia.Format("2006-01-02")

	reg := &model.Asistencia{PracticanteID: p.ID, Fecha: dia, HoraEntrada: "08:00:00", EstadoID: 1}
	if err := testRepo.Asistencia.Create(ctx, reg); err != nil {
		t.Fatalf("Create: %v", err)
	}

	if err := testRepo.Asistencia.RegistrarSalidaAnticipada(ctx, reg.ID, "13:00:00", 3, "Cita médica"); err != nil {
		t.Fatalf("RegistrarSalidaAnticipada: %v", err)
	}

	got, err := testRepo.Asistencia.GetByPracticanteFecha(ctx, p.ID, fecha)
	if err != nil {
		t.Fatalf("releer registro: %v", err)
	}
	if got.EstadoID != 3 {
		t.Errorf("estado_id=%d, se esperaba 3 (Salida Anticipada)", got.EstadoID)
	}
	if got.Motivo == nil || *got.Motivo != "Cita médica" {
		t.Errorf("motivo=%v, se esperaba Cita médica", got.Motivo)
	}
	if got.HoraSalida == nil || *got.HoraSalida != "13:00:00" {
		t.Errorf("hora_salida=%v, se esperaba 13:00:00", got.HoraSalida)
	}
}

func TestAsistenciaRepo_ListDesdeDescendente(t *testing.T) {
	ctx := context.Background()
	p := setupPracticante(t)
	base := time.Date(2025, 6, 2, 0, 0, 0, 0, lima)

	for i := 0; i < 3; i++ {
		reg := &model.Asistencia{
			PracticanteID: p.ID,
			Fecha:         base.AddDate(0, 0, i),
			HoraEntrada:   "08:00:00",
			EstadoID:      1,
		}
		if err := testRepo.Asistencia.Create(ctx, reg); err != nil {
			t.Fatalf("insertar registro %d: %v", i, err)
		}
	}

	registros, err := testRepo.Asistencia.ListDesde(ctx, p.ID, "2025-06-03")
	if err != nil {
		t.Fatalf("ListDesde: %v", err)
	}
	if len(registros) != 2 {
		t.Fatalf("se esperaban 2 registros desde el 03, se obtuvo %d", len(registros))
	}
	if !registros[0].Fecha.After(registros[1].Fecha) {
		t.Error("ListDesde debe ordenar descendente por fecha")
	}
}

// ═══════════════════════════════════════════════════════════
// Recuperación
// ═══════════════════════════════════════════════════════════

func TestRecuperacionRepo_UnicidadPorDia(t *testing.T) {
	ctx := context.Background()
	p := setupPracticante(t)
	dia := time.Date(2025, 6, 2, 0, 0, 0, 0, lima)

	primera := &model.Recuperacion{PracticanteID: p.ID, Fecha: dia, HoraEntrada: "15:00:00"}
	if err := testRepo.Recuperacion.Create(ctx, primera); err != nil {
		t.Fatalf("primera inserción: %v", err)
	}

	segunda := &model.Recuperacion{PracticanteID: p.ID, Fecha: dia, HoraEntrada: "15:30:00"}
	if err := testRepo.Recuperacion.Create(ctx, segunda); !errors.Is(err, gorm.ErrDuplicatedKey) {
		t.Errorf("la segunda recuperación del día debe chocar con el UNIQUE, se obtuvo: %v", err)
	}

	got, err := testRepo.Recuperacion.GetByPracticanteFecha(ctx, p.ID, dia.Format("2006-01-02"))
	if err != nil {
		t.Fatalf("GetByPracticanteFecha: %v", err)
	}
	if got.HoraEntrada != "15:00:00" {
		t.Errorf("hora_entrada=%q, la duplicada no debe sobrescribir", got.HoraEntrada)
	}
}
