package dto

// ── Requests ──

// EntradaRequest registro de hora de entrada
type EntradaRequest struct {
	ComandoContext
}

// SalidaRequest registro de hora de salida.
// Motivo solo es obligatorio cuando la salida resulta anticipada
// (antes de las 14:00); lo valida el servicio, no el binding.
type SalidaRequest struct {
	ComandoContext
	Motivo string `json:"motivo"`
}

// HistorialQuery parámetros del historial de asistencia
type HistorialQuery struct {
	ComandoContext
	Dias int `json:"dias" form:"dias,default=7"`
}

// ── Responses ──

// EntradaResponse resultado de un registro de entrada
type EntradaResponse struct {
	Fecha       string `json:"fecha"`
	HoraEntrada string `json:"hora_entrada"`
	Estado      string `json:"estado"`
}

// SalidaResponse resultado de un registro de salida
type SalidaResponse struct {
	Fecha      string `json:"fecha"`
	HoraSalida string `json:"hora_salida"`
	Estado     string `json:"estado"`
	Anticipada bool   `json:"anticipada"`
}

// EstadoResponse estado de asistencia del día.
// Cuando no hay registro, Registrado=false y Estado trae la falta
// derivada: nunca existe una fila de falta en la base.
type EstadoResponse struct {
	Fecha       string  `json:"fecha"`
	Estado      string  `json:"estado"`
	HoraEntrada *string `json:"hora_entrada,omitempty"`
	HoraSalida  *string `json:"hora_salida,omitempty"`
	Registrado  bool    `json:"registrado"`
}

// HistorialItem un día dentro del historial de asistencia.
// Derivado=true marca las faltas calculadas por ausencia de datos.
type HistorialItem struct {
	Fecha       string  `json:"fecha"` // MM-DD, como presentaba el bot
	HoraEntrada *string `json:"hora_entrada,omitempty"`
	HoraSalida  *string `json:"hora_salida,omitempty"`
	Estado      string  `json:"estado"`
	Motivo      *string `json:"motivo,omitempty"`
	Derivado    bool    `json:"derivado,omitempty"`
}

// HistorialResponse historial de asistencia de los últimos N días
type HistorialResponse struct {
	Dias      int             `json:"dias"`
	Registros []HistorialItem `json:"registros"`
}

// FaltaItem una falta injustificada registrada
type FaltaItem struct {
	Fecha  string `json:"fecha"` // MM-DD
	Motivo string `json:"motivo"`
}

// FaltasResponse últimas faltas injustificadas del practicante
type FaltasResponse struct {
	Faltas []FaltaItem `json:"faltas"`
}
