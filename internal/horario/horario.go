// Package horario contiene la política de ventanas de tiempo: funciones
// puras que deciden si un instante cae dentro de una ventana operativa.
// No toca estado ni convierte zonas: quien llama entrega el instante ya
// normalizado a la zona operativa (ver pkg/clock).
package horario

import (
	"time"

	"bot-asistencia/backend/internal/model"
)

// Límites de ventana, en segundos del día.
const (
	entradaInicio  = 7 * 3600            // 07:00:00
	entradaFin     = 14 * 3600           // 14:00:00
	limiteTardanza = 8*3600 + 10*60 + 59 // 08:10:59 inclusive sigue siendo Presente
	salidaMinima   = 14 * 3600           // antes de esto la salida es anticipada

	recuperacionInicio = 14*3600 + 30*60 // 14:30:00
	recuperacionFin    = 20 * 3600       // 20:00:00
)

// segundosDelDia proyecta el instante a segundos desde medianoche
func segundosDelDia(t time.Time) int {
	h, m, s := t.Clock()
	return h*3600 + m*60 + s
}

// esDiaHabil lunes a viernes
func esDiaHabil(t time.Time) bool {
	wd := t.Weekday()
	return wd != time.Saturday && wd != time.Sunday
}

// EntradaAbierta indica si se acepta registrar entrada: hora dentro de
// [07:00:00, 14:00:00] y día hábil (lunes a viernes).
func EntradaAbierta(t time.Time) bool {
	seg := segundosDelDia(t)
	return esDiaHabil(t) && seg >= entradaInicio && seg <= entradaFin
}

// ClasificarEntrada determina el estado de una entrada válida:
// Tardanza si la hora supera las 08:10:59, Presente en caso contrario.
func ClasificarEntrada(t time.Time) string {
	if segundosDelDia(t) > limiteTardanza {
		return model.EstadoTardanza
	}
	return model.EstadoPresente
}

// RecuperacionAbierta indica si se acepta registrar recuperación:
// hora dentro de [14:30:00, 20:00:00], ambos extremos incluidos.
// A diferencia de la entrada, no restringe el día de la semana: las
// sesiones de recuperación también se dictan los fines de semana.
func RecuperacionAbierta(t time.Time) bool {
	seg := segundosDelDia(t)
	return seg >= recuperacionInicio && seg <= recuperacionFin
}

// EsSalidaAnticipada indica si una salida en este instante requiere motivo
// (antes de las 14:00:00). A las 14:00:00 en punto ya es salida normal.
func EsSalidaAnticipada(t time.Time) bool {
	return segundosDelDia(t) < salidaMinima
}
