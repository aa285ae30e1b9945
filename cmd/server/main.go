package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"

	"bot-asistencia/backend/config"
	"bot-asistencia/backend/internal/api/handler"
	"bot-asistencia/backend/internal/api/router"
	"bot-asistencia/backend/internal/reporter"
	"bot-asistencia/backend/internal/repository"
	"bot-asistencia/backend/internal/service"
	"bot-asistencia/backend/pkg/clock"
	"bot-asistencia/backend/pkg/database"
	applogger "bot-asistencia/backend/pkg/logger"
	"bot-asistencia/backend/pkg/redis"
	"bot-asistencia/backend/pkg/token"
)

func main() {
	// 1. Cargar configuración
	cfg, err := config.Load("")
	if err != nil {
		fmt.Fprintf(os.Stderr, "cargar configuración: %v\n", err)
		os.Exit(1)
	}

	// 2. Inicializar el log
	logger, err := applogger.NewLogger(&cfg.Log)
	if err != nil {
		fmt.Fprintf(os.Stderr, "inicializar log: %v\n", err)
		os.Exit(1)
	}
	defer logger.Sync()

	logger.Info("arrancando el backend de asistencia",
		zap.Int("port", cfg.Server.Port),
		zap.String("zona", cfg.Horario.Zona),
	)

	// 3. Reloj operativo: única conversión de zona de todo el proceso
	clk, err := clock.New(cfg.Horario.Zona)
	if err != nil {
		logger.Fatal("zona horaria inválida", zap.Error(err))
	}

	// 4. Conectar la base de datos y migrar
	db, err := database.NewDB(&cfg.Database, logger)
	if err != nil {
		logger.Fatal("conexión a la base de datos fallida", zap.Error(err))
	}
	logger.Info("base de datos conectada")

	sqlDB, err := db.DB()
	if err != nil {
		logger.Fatal("obtener sql.DB subyacente", zap.Error(err))
	}
	if err := database.RunMigrations(sqlDB, logger); err != nil {
		logger.Fatal("migraciones fallidas", zap.Error(err))
	}

	// 5. Redis (opcional: sin Redis el contador de eventos degrada a memoria)
	rdb, err := redis.NewClient(&cfg.Redis, logger)
	if err != nil {
		logger.Warn("Redis no disponible, contador de eventos en memoria", zap.Error(err))
		rdb = nil
	}

	// 6. Tokens de servicio: el gateway firma lo que entra, el backend
	// firma lo que sale hacia el colector (secretos independientes)
	tokens := token.NewManager(cfg.Gateway.Secret, cfg.Gateway.TokenTTL)
	colectorTokens := token.NewManager(cfg.Collector.Secret, cfg.Gateway.TokenTTL)

	// 7. Inyección de dependencias: Repository → Service → Handler
	repo := repository.NewRepository(db)
	svc := service.NewService(cfg, repo, clk, logger)

	rep := reporter.New(&cfg.Collector, rdb, colectorTokens, clk, logger)
	if err := rep.Start(); err != nil {
		logger.Fatal("arrancar reporter", zap.Error(err))
	}

	h := handler.NewHandler(svc, rep)

	// 8. Rutas
	engine := router.Setup(h, tokens, rep, logger)

	// 9. Servidor HTTP con apagado ordenado
	srv := &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.Server.Port),
		Handler:      engine,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		logger.Info("servidor HTTP escuchando", zap.String("addr", srv.Addr))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Fatal("servidor HTTP", zap.Error(err))
		}
	}()

	rep.PublicarEstado(context.Background(), "online")

	// 10. Señales del sistema
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	sig := <-quit

	logger.Info("señal recibida, apagando", zap.String("signal", sig.String()))

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	rep.PublicarEstado(ctx, "offline")
	rep.Stop(ctx)

	if err := srv.Shutdown(ctx); err != nil {
		logger.Error("apagado del servidor", zap.Error(err))
	}

	if closeDB, _ := db.DB(); closeDB != nil {
		closeDB.Close()
	}
	if rdb != nil {
		rdb.Close()
	}

	logger.Info("servidor detenido")
}
