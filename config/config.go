package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Config estructura global de configuración de la aplicación.
// Se construye una sola vez al arranque y es inmutable después:
// los handlers la reciben por referencia, nunca la mutan.
type Config struct {
	Server    ServerConfig    `mapstructure:"server"`
	Database  DatabaseConfig  `mapstructure:"db"`
	Redis     RedisConfig     `mapstructure:"redis"`
	Gateway   GatewayConfig   `mapstructure:"gateway"`
	Collector CollectorConfig `mapstructure:"collector"`
	Horario   HorarioConfig   `mapstructure:"horario"`
	Accesos   AccesosConfig   `mapstructure:"accesos"`
	Log       LogConfig       `mapstructure:"log"`
}

// ServerConfig configuración del servidor HTTP
type ServerConfig struct {
	Port int `mapstructure:"port"`
}

// DatabaseConfig configuración de PostgreSQL
type DatabaseConfig struct {
	Host            string `mapstructure:"host"`
	Port            int    `mapstructure:"port"`
	Name            string `mapstructure:"name"`
	User            string `mapstructure:"user"`
	Password        string `mapstructure:"password"`
	SSLMode         string `mapstructure:"sslmode"`
	Timezone        string `mapstructure:"timezone"`
	MaxOpenConns    int    `mapstructure:"max_open_conns"`
	MaxIdleConns    int    `mapstructure:"max_idle_conns"`
	ConnMaxLifetime int    `mapstructure:"conn_max_lifetime"`  // minutos
	ConnMaxIdleTime int    `mapstructure:"conn_max_idle_time"` // minutos
}

// DSN genera la cadena de conexión de PostgreSQL
func (c *DatabaseConfig) DSN() string {
	return fmt.Sprintf(
		"host=%s port=%d user=%s password=%s dbname=%s sslmode=%s TimeZone=%s",
		c.Host, c.Port, c.User, c.Password, c.Name, c.SSLMode, c.Timezone,
	)
}

// RedisConfig configuración de Redis (contador de eventos del reporter)
type RedisConfig struct {
	Addr     string `mapstructure:"addr"`
	Password string `mapstructure:"password"`
	DB       int    `mapstructure:"db"`
}

// GatewayConfig autenticación del gateway de Discord hacia este backend.
// El gateway firma un JWT HS256 con el secreto compartido; aquí solo se verifica.
type GatewayConfig struct {
	Secret   string        `mapstructure:"secret"`
	TokenTTL time.Duration `mapstructure:"token_ttl"`
}

// CollectorConfig colector externo de métricas (egreso periódico)
type CollectorConfig struct {
	URL          string        `mapstructure:"url"`
	Secret       string        `mapstructure:"secret"`
	PushInterval time.Duration `mapstructure:"push_interval"`
	Enabled      bool          `mapstructure:"enabled"`
}

// HorarioConfig zona horaria operativa.
// Todas las validaciones de ventana usan esta única zona; el reloj
// convierte una sola vez y los servicios nunca vuelven a convertir.
type HorarioConfig struct {
	Zona string `mapstructure:"zona"`
}

// AccesosConfig listas de acceso por servidor (guild).
//   - Canales: guild → canales habilitados. Un guild sin lista (o con lista
//     vacía) queda cerrado: ningún canal habilitado.
//   - RolesRecuperacion: guild → roles que pueden registrar recuperación.
//     Lista vacía significa que todos los practicantes pueden.
type AccesosConfig struct {
	Canales           map[string][]string `mapstructure:"canales"`
	RolesRecuperacion map[string][]string `mapstructure:"roles_recuperacion"`
}

// LogConfig configuración de logging
type LogConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
}

// Load carga la configuración desde archivo y variables de entorno.
// Prioridad: variables de entorno > archivo > valores por defecto.
func Load(path string) (*Config, error) {
	v := viper.New()

	// ── Valores por defecto ──
	v.SetDefault("server.port", 8080)

	v.SetDefault("db.host", "localhost")
	v.SetDefault("db.port", 5432)
	v.SetDefault("db.name", "asistencia")
	v.SetDefault("db.user", "postgres")
	v.SetDefault("db.password", "")
	v.SetDefault("db.sslmode", "disable")
	v.SetDefault("db.timezone", "America/Lima")
	v.SetDefault("db.max_open_conns", 25)
	v.SetDefault("db.max_idle_conns", 10)
	v.SetDefault("db.conn_max_lifetime", 60)
	v.SetDefault("db.conn_max_idle_time", 30)

	v.SetDefault("redis.addr", "localhost:6379")
	v.SetDefault("redis.password", "")
	v.SetDefault("redis.db", 0)

	v.SetDefault("gateway.token_ttl", "5m")

	v.SetDefault("collector.enabled", false)
	v.SetDefault("collector.push_interval", "1m")

	v.SetDefault("horario.zona", "America/Lima")

	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "json")

	// ── Archivo de configuración ──
	if path != "" {
		v.SetConfigFile(path)
	} else {
		v.SetConfigName("config")
		v.SetConfigType("yaml")
		v.AddConfigPath("./config")
		v.AddConfigPath(".")
	}

	// ── Variables de entorno ──
	v.SetEnvPrefix("ASISTENCIA")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("leer archivo de configuración: %w", err)
		}
		// Sin archivo: solo defaults y variables de entorno
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("parsear configuración: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return &cfg, nil
}

// Validate valida los campos críticos de la configuración
func (c *Config) Validate() error {
	if c.Gateway.Secret == "" {
		return fmt.Errorf("configuración inválida: gateway.secret no puede estar vacío")
	}
	if len(c.Gateway.Secret) < 16 {
		return fmt.Errorf("configuración inválida: gateway.secret debe tener al menos 16 caracteres")
	}
	if c.Server.Port <= 0 || c.Server.Port > 65535 {
		return fmt.Errorf("configuración inválida: server.port debe estar entre 1 y 65535")
	}
	if _, err := time.LoadLocation(c.Horario.Zona); err != nil {
		return fmt.Errorf("configuración inválida: horario.zona %q: %w", c.Horario.Zona, err)
	}
	if c.Collector.Enabled {
		if c.Collector.URL == "" {
			return fmt.Errorf("configuración inválida: collector.url es obligatorio cuando collector.enabled=true")
		}
		if c.Collector.PushInterval < time.Second {
			return fmt.Errorf("configuración inválida: collector.push_interval mínimo 1s")
		}
	}
	return nil
}
