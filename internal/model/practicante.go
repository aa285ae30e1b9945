package model

import "time"

// Practicante practicante registrado — tabla practicante.
// El alta es externa al servicio (filas pre-aprovisionadas por el
// administrador); aquí solo se resuelve id_discord → id interno.
type Practicante struct {
	ID        int64     `gorm:"primaryKey;autoIncrement"            json:"id"`
	IDDiscord string    `gorm:"column:id_discord;type:varchar(32);not null;uniqueIndex" json:"id_discord"`
	Nombre    string    `gorm:"type:varchar(100);not null"          json:"nombre"`
	Activo    bool      `gorm:"not null;default:true"               json:"activo"`
	CreatedAt time.Time `gorm:"not null;default:CURRENT_TIMESTAMP"  json:"created_at"`
	UpdatedAt time.Time `gorm:"not null;default:CURRENT_TIMESTAMP"  json:"updated_at"`
}

// TableName nombre de tabla
func (Practicante) TableName() string { return "practicante" }
