package service

import "bot-asistencia/backend/config"

// Gate listas de acceso por servidor, construidas una sola vez al arranque
// a partir de la configuración. Inmutable después: se comparte entre todas
// las peticiones sin sincronización. Corre antes de cualquier consulta o
// mutación; si rechaza, la petición termina ahí sin efectos.
type Gate struct {
	canales map[string]map[string]struct{}
	roles   map[string]map[string]struct{}
}

// NewGate construye el Gate desde la configuración de accesos
func NewGate(cfg *config.AccesosConfig) *Gate {
	g := &Gate{
		canales: make(map[string]map[string]struct{}, len(cfg.Canales)),
		roles:   make(map[string]map[string]struct{}, len(cfg.RolesRecuperacion)),
	}
	for guild, canales := range cfg.Canales {
		set := make(map[string]struct{}, len(canales))
		for _, c := range canales {
			set[c] = struct{}{}
		}
		g.canales[guild] = set
	}
	for guild, roles := range cfg.RolesRecuperacion {
		set := make(map[string]struct{}, len(roles))
		for _, r := range roles {
			set[r] = struct{}{}
		}
		g.roles[guild] = set
	}
	return g
}

// CanalPermitido indica si el canal está habilitado para el guild.
// Guild desconocido o sin canales configurados: cerrado.
func (g *Gate) CanalPermitido(guildID, channelID string) bool {
	canales, ok := g.canales[guildID]
	if !ok || len(canales) == 0 {
		return false
	}
	_, ok = canales[channelID]
	return ok
}

// RolPermitido indica si alguno de los roles del usuario habilita la
// recuperación en el guild. Sin roles configurados para el guild, todos
// los practicantes pueden.
func (g *Gate) RolPermitido(guildID string, roleIDs []string) bool {
	roles, ok := g.roles[guildID]
	if !ok || len(roles) == 0 {
		return true
	}
	for _, r := range roleIDs {
		if _, ok := roles[r]; ok {
			return true
		}
	}
	return false
}
