package reporter

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"sync"
	"time"

	"github.com/robfig/cron/v3"
	"go.uber.org/zap"

	"bot-asistencia/backend/config"
	"bot-asistencia/backend/internal/dto"
	"bot-asistencia/backend/pkg/clock"
	"bot-asistencia/backend/pkg/redis"
	"bot-asistencia/backend/pkg/token"
)

// nombreServicio identifica a este backend en los tokens de egreso
const nombreServicio = "bot-asistencia"

// ── Payloads hacia el colector ──

type resumenMetricas struct {
	ServidoresConectados int    `json:"servidores_conectados"`
	EventosProcesadosHoy int64  `json:"eventos_procesados_hoy"`
	UptimeSegundos       int64  `json:"uptime_segundos"`
	UltimaSincronizacion string `json:"ultima_sincronizacion"`
}

type metricasPayload struct {
	Resumen resumenMetricas        `json:"resumen"`
	Servers []dto.ServidorSnapshot `json:"servers"`
}

type estadoPayload struct {
	Status    string `json:"status"`
	Timestamp string `json:"timestamp"`
}

// Reporter publica métricas operativas hacia el colector externo cada
// minuto y mantiene el contador diario de eventos procesados. Todo el
// egreso es best-effort: un colector caído degrada a un warn en el log,
// nunca afecta a los comandos.
type Reporter struct {
	cfg    *config.CollectorConfig
	rdb    *redis.Client // puede ser nil: cae al contador en memoria
	tokens *token.Manager
	clk    clock.Clock
	logger *zap.Logger
	client *http.Client
	cron   *cron.Cron
	inicio time.Time

	mu         sync.RWMutex
	servidores []dto.ServidorSnapshot
	eventosMem int64
	eventosDia string
}

// New crea el Reporter. rdb puede ser nil si Redis no está disponible.
func New(cfg *config.CollectorConfig, rdb *redis.Client, tokens *token.Manager, clk clock.Clock, logger *zap.Logger) *Reporter {
	return &Reporter{
		cfg:    cfg,
		rdb:    rdb,
		tokens: tokens,
		clk:    clk,
		logger: logger,
		client: &http.Client{Timeout: 10 * time.Second},
		inicio: clk.Now(),
	}
}

// Start arranca el push periódico de métricas. No hace nada si el
// colector está deshabilitado por configuración.
func (r *Reporter) Start() error {
	if !r.cfg.Enabled {
		r.logger.Info("colector de métricas deshabilitado")
		return nil
	}

	r.cron = cron.New()
	spec := fmt.Sprintf("@every %s", r.cfg.PushInterval)
	if _, err := r.cron.AddFunc(spec, r.publicarMetricas); err != nil {
		return fmt.Errorf("programar push de métricas: %w", err)
	}
	r.cron.Start()

	r.logger.Info("push de métricas programado", zap.Duration("interval", r.cfg.PushInterval))
	return nil
}

// Stop detiene el push periódico y espera a que termine el job en curso
func (r *Reporter) Stop(ctx context.Context) {
	if r.cron == nil {
		return
	}
	select {
	case <-r.cron.Stop().Done():
	case <-ctx.Done():
	}
}

// ContarEvento suma un evento al contador del día en curso
func (r *Reporter) ContarEvento(ctx context.Context) {
	fecha := r.clk.Now().Format("2006-01-02")

	if r.rdb != nil {
		_, err := r.rdb.IncrementarEventos(ctx, fecha)
		if err == nil {
			return
		}
		r.logger.Warn("contador de eventos en Redis falló, usando memoria", zap.Error(err))
	}

	r.mu.Lock()
	if r.eventosDia != fecha {
		r.eventosDia = fecha
		r.eventosMem = 0
	}
	r.eventosMem++
	r.mu.Unlock()
}

// ActualizarServidores reemplaza la instantánea de servidores conectados
func (r *Reporter) ActualizarServidores(servidores []dto.ServidorSnapshot) {
	r.mu.Lock()
	r.servidores = servidores
	r.mu.Unlock()
}

// PublicarEstado notifica al colector un cambio de estado del servicio
// ("online" al arrancar, "offline" en el apagado)
func (r *Reporter) PublicarEstado(ctx context.Context, status string) {
	if !r.cfg.Enabled {
		return
	}

	payload := estadoPayload{
		Status:    status,
		Timestamp: r.clk.Now().Format(time.RFC3339),
	}
	if err := r.post(ctx, "/status", payload); err != nil {
		r.logger.Warn("publicar estado", zap.String("status", status), zap.Error(err))
		return
	}
	r.logger.Info("estado publicado", zap.String("status", status))
}

// eventosHoy total de eventos del día, de Redis o del contador en memoria
func (r *Reporter) eventosHoy(ctx context.Context, fecha string) int64 {
	if r.rdb != nil {
		total, err := r.rdb.EventosDelDia(ctx, fecha)
		if err == nil {
			return total
		}
		r.logger.Warn("leer contador de eventos", zap.Error(err))
	}

	r.mu.RLock()
	defer r.mu.RUnlock()
	if r.eventosDia != fecha {
		return 0
	}
	return r.eventosMem
}

func (r *Reporter) publicarMetricas() {
	ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()

	now := r.clk.Now()

	r.mu.RLock()
	servidores := make([]dto.ServidorSnapshot, len(r.servidores))
	copy(servidores, r.servidores)
	r.mu.RUnlock()

	payload := metricasPayload{
		Resumen: resumenMetricas{
			ServidoresConectados: len(servidores),
			EventosProcesadosHoy: r.eventosHoy(ctx, now.Format("2006-01-02")),
			UptimeSegundos:       int64(now.Sub(r.inicio).Seconds()),
			UltimaSincronizacion: now.Format(time.RFC3339),
		},
		Servers: servidores,
	}

	if err := r.post(ctx, "/metrics", payload); err != nil {
		r.logger.Warn("publicar métricas", zap.Error(err))
		return
	}

	r.logger.Debug("métricas publicadas",
		zap.Int("servidores", len(servidores)),
		zap.Int64("eventos_hoy", payload.Resumen.EventosProcesadosHoy),
	)
}

// post serializa el payload y lo envía firmado con el token de servicio
func (r *Reporter) post(ctx context.Context, path string, payload interface{}) error {
	body, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("serializar payload: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, r.cfg.URL+path, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("construir petición: %w", err)
	}

	firmado, err := r.tokens.Sign(nombreServicio)
	if err != nil {
		return fmt.Errorf("firmar token de servicio: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+firmado)

	resp, err := r.client.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode >= http.StatusMultipleChoices {
		return fmt.Errorf("el colector respondió %d", resp.StatusCode)
	}
	return nil
}
