package model

import "time"

// Recuperacion sesión de recuperación — tabla recuperacion.
// Independiente del registro de asistencia del día; máximo una por
// (practicante, fecha), garantizado por UNIQUE en el esquema.
type Recuperacion struct {
	ID            int64     `gorm:"primaryKey;autoIncrement"           json:"id"`
	PracticanteID int64     `gorm:"not null;uniqueIndex:uq_recuperacion_practicante_fecha" json:"practicante_id"`
	Fecha         time.Time `gorm:"type:date;not null;uniqueIndex:uq_recuperacion_practicante_fecha" json:"fecha"`
	HoraEntrada   string    `gorm:"type:time;not null"                 json:"hora_entrada"`
	HoraSalida    *string   `gorm:"type:time"                          json:"hora_salida,omitempty"`
	CreatedAt     time.Time `gorm:"not null;default:CURRENT_TIMESTAMP" json:"created_at"`
	UpdatedAt     time.Time `gorm:"not null;default:CURRENT_TIMESTAMP" json:"updated_at"`

	// Asociaciones
	Practicante *Practicante `gorm:"foreignKey:PracticanteID;references:ID" json:"practicante,omitempty"`
}

// TableName nombre de tabla
func (Recuperacion) TableName() string { return "recuperacion" }
