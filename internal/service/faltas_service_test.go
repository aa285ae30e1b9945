package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"go.uber.org/zap"

	"bot-asistencia/backend/config"
	"bot-asistencia/backend/internal/model"
	"bot-asistencia/backend/internal/repository"
)

func setupFaltas(t *testing.T) (FaltasService, *mockAsistenciaRepo) {
	t.Helper()

	practicantes := newMockPracticanteRepo()
	practicantes.porDiscord["111222333"] = &model.Practicante{
		ID: 1, IDDiscord: "111222333", Nombre: "Practicante Uno", Activo: true,
	}

	asistencias := newMockAsistenciaRepo()
	repo := &repository.Repository{
		Practicante:  practicantes,
		Estado:       &mockEstadoRepo{},
		Asistencia:   asistencias,
		Recuperacion: newMockRecuperacionRepo(),
	}

	gate := NewGate(&config.AccesosConfig{
		Canales: map[string][]string{"guild-1": {"canal-1"}},
	})

	return NewFaltasService(repo, gate, zap.NewNop()), asistencias
}

func TestVerFaltas_Vacio(t *testing.T) {
	svc, _ := setupFaltas(t)

	cmd := comandoOK()
	resp, err := svc.VerFaltas(context.Background(), &cmd)
	if err != nil {
		t.Fatalf("VerFaltas debería funcionar: %v", err)
	}
	if len(resp.Faltas) != 0 {
		t.Errorf("sin faltas cargadas la lista debe venir vacía: %+v", resp.Faltas)
	}
}

func TestVerFaltas_LimiteYMotivoPorDefecto(t *testing.T) {
	svc, asistencias := setupFaltas(t)

	// siete faltas de carga histórica; solo deben volver las 5 más recientes
	faltaID := estadosCatalogo[model.EstadoFaltaInjustificada]
	base := time.Date(2025, 5, 5, 0, 0, 0, 0, limaTest)
	for i := 0; i < 7; i++ {
		dia := base.AddDate(0, 0, i)
		asistencias.registros[claveAsistencia(1, dia.Format("2006-01-02"))] = &model.Asistencia{
			ID: int64(i + 1), PracticanteID: 1, Fecha: dia, EstadoID: faltaID,
		}
	}

	cmd := comandoOK()
	resp, err := svc.VerFaltas(context.Background(), &cmd)
	if err != nil {
		t.Fatalf("VerFaltas debería funcionar: %v", err)
	}
	if len(resp.Faltas) != 5 {
		t.Fatalf("se esperaban 5 faltas, se obtuvo %d", len(resp.Faltas))
	}
	if resp.Faltas[0].Fecha != "05-11" {
		t.Errorf("deben venir descendentes, primera=%q", resp.Faltas[0].Fecha)
	}
	if resp.Faltas[0].Motivo != "No especificado" {
		t.Errorf("sin motivo guardado se muestra el texto por defecto, se obtuvo %q", resp.Faltas[0].Motivo)
	}
}

func TestVerFaltas_CanalNoPermitido(t *testing.T) {
	svc, _ := setupFaltas(t)

	cmd := comandoOK()
	cmd.ChannelID = "canal-ajeno"
	if _, err := svc.VerFaltas(context.Background(), &cmd); !errors.Is(err, ErrCanalNoPermitido) {
		t.Errorf("se esperaba ErrCanalNoPermitido, se obtuvo: %v", err)
	}
}
