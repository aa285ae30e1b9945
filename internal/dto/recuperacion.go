package dto

// RecuperacionRequest registro de una sesión de recuperación
type RecuperacionRequest struct {
	ComandoContext
}

// RecuperacionHistorialQuery parámetros del historial de recuperaciones
type RecuperacionHistorialQuery struct {
	ComandoContext
	Dias int `json:"dias" form:"dias,default=15"`
}

// RecuperacionResponse resultado de un registro de recuperación
type RecuperacionResponse struct {
	Fecha       string `json:"fecha"` // DD/MM/YYYY, como presentaba el bot
	HoraEntrada string `json:"hora_entrada"`
}

// RecuperacionItem una sesión dentro del historial
type RecuperacionItem struct {
	Fecha       string  `json:"fecha"` // MM-DD
	HoraEntrada *string `json:"hora_entrada,omitempty"`
	HoraSalida  *string `json:"hora_salida,omitempty"`
}

// RecuperacionHistorialResponse historial de recuperaciones
type RecuperacionHistorialResponse struct {
	Dias     int                `json:"dias"`
	Sesiones []RecuperacionItem `json:"sesiones"`
}
