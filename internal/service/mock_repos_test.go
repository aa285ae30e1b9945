package service

import (
	"context"
	"fmt"
	"sort"

	"gorm.io/gorm"

	"bot-asistencia/backend/internal/model"
)

// ── Mock PracticanteRepository ──

type mockPracticanteRepo struct {
	porDiscord map[string]*model.Practicante
	consultas  int
}

func newMockPracticanteRepo() *mockPracticanteRepo {
	return &mockPracticanteRepo{porDiscord: make(map[string]*model.Practicante)}
}

func (m *mockPracticanteRepo) GetByDiscordID(_ context.Context, idDiscord string) (*model.Practicante, error) {
	m.consultas++
	if p, ok := m.porDiscord[idDiscord]; ok && p.Activo {
		return p, nil
	}
	return nil, gorm.ErrRecordNotFound
}

// ── Mock EstadoRepository ──

// mockEstadoRepo replica el catálogo que siembra la migración
type mockEstadoRepo struct{}

var estadosCatalogo = map[string]int{
	model.EstadoPresente:           1,
	model.EstadoTardanza:           2,
	model.EstadoSalidaAnticipada:   3,
	model.EstadoFaltaInjustificada: 4,
}

func (m *mockEstadoRepo) IDPorNombre(_ context.Context, nombre string) (int, error) {
	if id, ok := estadosCatalogo[nombre]; ok {
		return id, nil
	}
	return 0, gorm.ErrRecordNotFound
}

// ── Mock AsistenciaRepository ──

type mockAsistenciaRepo struct {
	registros map[string]*model.Asistencia // "practicanteID:fecha"
	nextID    int64
	inserts   int
}

func newMockAsistenciaRepo() *mockAsistenciaRepo {
	return &mockAsistenciaRepo{registros: make(map[string]*model.Asistencia), nextID: 1}
}

func claveAsistencia(practicanteID int64, fecha string) string {
	return fmt.Sprintf("%d:%s", practicanteID, fecha)
}

func (m *mockAsistenciaRepo) Create(_ context.Context, a *model.Asistencia) error {
	clave := claveAsistencia(a.PracticanteID, a.Fecha.Format("2006-01-02"))
	if _, ok := m.registros[clave]; ok {
		return gorm.ErrDuplicatedKey
	}
	a.ID = m.nextID
	m.nextID++
	m.inserts++
	m.registros[clave] = a
	return nil
}

func (m *mockAsistenciaRepo) GetByPracticanteFecha(_ context.Context, practicanteID int64, fecha string) (*model.Asistencia, error) {
	if a, ok := m.registros[claveAsistencia(practicanteID, fecha)]; ok {
		return a, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockAsistenciaRepo) RegistrarSalida(_ context.Context, id int64, hora string) error {
	for _, a := range m.registros {
		if a.ID == id {
			h := hora
			a.HoraSalida = &h
			return nil
		}
	}
	return gorm.ErrRecordNotFound
}

func (m *mockAsistenciaRepo) RegistrarSalidaAnticipada(_ context.Context, id int64, hora string, estadoID int, motivo string) error {
	for _, a := range m.registros {
		if a.ID == id {
			h := hora
			mo := motivo
			a.HoraSalida = &h
			a.EstadoID = estadoID
			a.Motivo = &mo
			a.Estado = &model.EstadoAsistencia{ID: estadoID, Estado: model.EstadoSalidaAnticipada}
			return nil
		}
	}
	return gorm.ErrRecordNotFound
}

func (m *mockAsistenciaRepo) ListDesde(_ context.Context, practicanteID int64, fechaInicio string) ([]model.Asistencia, error) {
	var result []model.Asistencia
	for _, a := range m.registros {
		if a.PracticanteID == practicanteID && a.Fecha.Format("2006-01-02") >= fechaInicio {
			result = append(result, *a)
		}
	}
	sort.Slice(result, func(i, j int) bool { return result[i].Fecha.After(result[j].Fecha) })
	return result, nil
}

func (m *mockAsistenciaRepo) ListPorEstado(_ context.Context, practicanteID int64, estadoID int, limit int) ([]model.Asistencia, error) {
	var result []model.Asistencia
	for _, a := range m.registros {
		if a.PracticanteID == practicanteID && a.EstadoID == estadoID {
			result = append(result, *a)
		}
	}
	sort.Slice(result, func(i, j int) bool { return result[i].Fecha.After(result[j].Fecha) })
	if len(result) > limit {
		result = result[:limit]
	}
	return result, nil
}

func (m *mockAsistenciaRepo) ListRango(_ context.Context, desde, hasta string) ([]model.Asistencia, error) {
	var result []model.Asistencia
	for _, a := range m.registros {
		f := a.Fecha.Format("2006-01-02")
		if f >= desde && f <= hasta {
			result = append(result, *a)
		}
	}
	sort.Slice(result, func(i, j int) bool { return result[i].Fecha.Before(result[j].Fecha) })
	return result, nil
}

// ── Mock RecuperacionRepository ──

type mockRecuperacionRepo struct {
	sesiones map[string]*model.Recuperacion
	nextID   int64
	inserts  int
}

func newMockRecuperacionRepo() *mockRecuperacionRepo {
	return &mockRecuperacionRepo{sesiones: make(map[string]*model.Recuperacion), nextID: 1}
}

func (m *mockRecuperacionRepo) Create(_ context.Context, rec *model.Recuperacion) error {
	clave := claveAsistencia(rec.PracticanteID, rec.Fecha.Format("2006-01-02"))
	if _, ok := m.sesiones[clave]; ok {
		return gorm.ErrDuplicatedKey
	}
	rec.ID = m.nextID
	m.nextID++
	m.inserts++
	m.sesiones[clave] = rec
	return nil
}

func (m *mockRecuperacionRepo) GetByPracticanteFecha(_ context.Context, practicanteID int64, fecha string) (*model.Recuperacion, error) {
	if rec, ok := m.sesiones[claveAsistencia(practicanteID, fecha)]; ok {
		return rec, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockRecuperacionRepo) ListDesde(_ context.Context, practicanteID int64, fechaInicio string) ([]model.Recuperacion, error) {
	var result []model.Recuperacion
	for _, rec := range m.sesiones {
		if rec.PracticanteID == practicanteID && rec.Fecha.Format("2006-01-02") >= fechaInicio {
			result = append(result, *rec)
		}
	}
	sort.Slice(result, func(i, j int) bool { return result[i].Fecha.After(result[j].Fecha) })
	return result, nil
}
