package dto

// ComandoContext contexto común de toda invocación de comando que reenvía
// el gateway de Discord: identidad externa del usuario, servidor y canal
// donde se invocó, y los roles del usuario. Los IDs viajan como cadena
// porque los snowflakes de Discord desbordan los números JSON.
type ComandoContext struct {
	IDDiscord string   `json:"id_discord" form:"id_discord" binding:"required"`
	GuildID   string   `json:"guild_id"   form:"guild_id"   binding:"required"`
	ChannelID string   `json:"channel_id" form:"channel_id" binding:"required"`
	RoleIDs   []string `json:"role_ids"   form:"role_ids"`
}
