package dto

// ServidorSnapshot estado de un servidor conectado, reportado por el gateway
type ServidorSnapshot struct {
	ServerID   string `json:"server_id"   binding:"required"`
	ServerName string `json:"server_name"`
	Miembros   int    `json:"miembros"`
	Canales    int    `json:"canales"`
}

// SnapshotRequest instantánea periódica de servidores que el gateway
// publica para que el reporter la incluya en el push de métricas
type SnapshotRequest struct {
	Servidores []ServidorSnapshot `json:"servidores" binding:"required"`
}
