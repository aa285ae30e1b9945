package model

import "time"

// Nombres de estado tal como viven en la tabla estado_asistencia.
// 'Falta injustificada' es solo clave de consulta: el motor nunca la
// inserta; una falta real es la ausencia de fila para ese día.
const (
	EstadoPresente           = "Presente"
	EstadoTardanza           = "Tardanza"
	EstadoSalidaAnticipada   = "Salida Anticipada"
	EstadoFaltaInjustificada = "Falta injustificada"
)

// EstadoAsistencia catálogo de estados — tabla estado_asistencia
type EstadoAsistencia struct {
	ID     int    `gorm:"primaryKey"                 json:"id"`
	Estado string `gorm:"type:varchar(50);not null"  json:"estado"`
}

// TableName nombre de tabla
func (EstadoAsistencia) TableName() string { return "estado_asistencia" }

// Asistencia registro diario de asistencia — tabla asistencia.
// Invariantes: una fila por (practicante, fecha) — UNIQUE en el esquema;
// hora_entrada es inmutable una vez escrita; hora_salida pasa de NULL a
// valor exactamente una vez y deja el registro en estado terminal.
type Asistencia struct {
	ID            int64     `gorm:"primaryKey;autoIncrement"           json:"id"`
	PracticanteID int64     `gorm:"not null;uniqueIndex:uq_asistencia_practicante_fecha" json:"practicante_id"`
	Fecha         time.Time `gorm:"type:date;not null;uniqueIndex:uq_asistencia_practicante_fecha" json:"fecha"`
	HoraEntrada   string    `gorm:"type:time;not null"                 json:"hora_entrada"`
	HoraSalida    *string   `gorm:"type:time"                          json:"hora_salida,omitempty"`
	EstadoID      int       `gorm:"not null"                           json:"estado_id"`
	Motivo        *string   `gorm:"type:varchar(255)"                  json:"motivo,omitempty"`
	CreatedAt     time.Time `gorm:"not null;default:CURRENT_TIMESTAMP" json:"created_at"`
	UpdatedAt     time.Time `gorm:"not null;default:CURRENT_TIMESTAMP" json:"updated_at"`

	// Asociaciones
	Estado      *EstadoAsistencia `gorm:"foreignKey:EstadoID;references:ID"      json:"estado,omitempty"`
	Practicante *Practicante      `gorm:"foreignKey:PracticanteID;references:ID" json:"practicante,omitempty"`
}

// TableName nombre de tabla
func (Asistencia) TableName() string { return "asistencia" }
