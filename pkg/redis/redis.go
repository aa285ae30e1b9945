package redis

import (
	"context"
	"fmt"
	"time"

	goredis "github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"bot-asistencia/backend/config"
)

// Client envoltorio de Redis.
// Hoy solo respalda el contador diario de eventos del reporter para que
// sobreviva reinicios del proceso; el servicio funciona degradado sin él.
type Client struct {
	rdb    *goredis.Client
	logger *zap.Logger
}

// NewClient crea la conexión a Redis con un Ping de verificación
func NewClient(cfg *config.RedisConfig, logger *zap.Logger) (*Client, error) {
	rdb := goredis.NewClient(&goredis.Options{
		Addr:     cfg.Addr,
		Password: cfg.Password,
		DB:       cfg.DB,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := rdb.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("conectar a Redis: %w", err)
	}

	logger.Info("conexión a Redis establecida", zap.String("addr", cfg.Addr))

	return &Client{rdb: rdb, logger: logger}, nil
}

// claveEventos construye la clave del contador de un día concreto
func claveEventos(fecha string) string {
	return "asistencia:eventos:" + fecha
}

// IncrementarEventos incrementa el contador de eventos del día indicado
// (fecha en formato 2006-01-02) y devuelve el nuevo total. La clave expira
// a las 48h: el día siguiente arranca en cero sin limpieza explícita.
func (c *Client) IncrementarEventos(ctx context.Context, fecha string) (int64, error) {
	key := claveEventos(fecha)

	total, err := c.rdb.Incr(ctx, key).Result()
	if err != nil {
		return 0, fmt.Errorf("incrementar contador de eventos: %w", err)
	}
	if total == 1 {
		if err := c.rdb.Expire(ctx, key, 48*time.Hour).Err(); err != nil {
			c.logger.Warn("no se pudo fijar expiración del contador", zap.Error(err))
		}
	}

	return total, nil
}

// EventosDelDia devuelve el total de eventos del día (0 si no hay clave)
func (c *Client) EventosDelDia(ctx context.Context, fecha string) (int64, error) {
	total, err := c.rdb.Get(ctx, claveEventos(fecha)).Int64()
	if err == goredis.Nil {
		return 0, nil
	}
	if err != nil {
		return 0, fmt.Errorf("leer contador de eventos: %w", err)
	}
	return total, nil
}

// Close cierra la conexión
func (c *Client) Close() error {
	return c.rdb.Close()
}
