package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"tts-converter/internal/config"
	"tts-converter/internal/converter"
	"tts-converter/internal/metrics"
	"tts-converter/internal/scheduler"
	"tts-converter/internal/session"
	"tts-converter/internal/tts"
	"tts-converter/internal/web"

	"go.uber.org/zap"
)

func main() {
	// Загрузка конфигурации
	cfg, err := config.Load()
	if err != nil {
		fmt.Printf("Ошибка загрузки конфигурации: %v\n", err)
		os.Exit(1)
	}

	// Инициализация логгера
	logger, err := initLogger(cfg.App)
	if err != nil {
		fmt.Printf("Ошибка инициализации логгера: %v\n", err)
		os.Exit(1)
	}
	defer logger.Sync()

	logger.Info("запуск конвертера текста в речь",
		zap.String("env", cfg.App.Env),
		zap.String("synthesis_url", cfg.Synthesis.APIURL),
		zap.Duration("synthesis_timeout", cfg.Synthesis.Timeout))

	// Инициализация метрик
	metricsSystem := metrics.New(logger)
	metricsHandler := metrics.NewHandler(metricsSystem, logger)

	// Клиент внешнего сервиса синтеза
	synthesizer := tts.NewRemoteService(logger, cfg.Synthesis.APIURL, cfg.Synthesis.Timeout)

	// Сессии страниц, у каждой свой контроллер формы
	sessions := session.NewManager(synthesizer, logger, converter.WithMetrics(metricsSystem))

	server, err := web.NewServer(sessions, metricsHandler, logger)
	if err != nil {
		logger.Fatal("ошибка инициализации HTTP сервера", zap.Error(err))
	}

	// Создание контекста для graceful shutdown
	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	// Планировщик очистки неактивных сессий
	taskScheduler := scheduler.NewScheduler(logger)
	taskScheduler.AddJob(scheduler.NewInactiveSessionsJob(sessions, cfg.Session.TTL, metricsSystem, logger))
	go taskScheduler.Start(ctx, cfg.Session.SweepInterval)

	logger.Info("приложение запущено и готово к работе",
		zap.String("address", fmt.Sprintf("http://localhost:%d", cfg.App.Port)))

	if err := server.Run(ctx, cfg.App.Port); err != nil {
		logger.Error("ошибка HTTP сервера", zap.Error(err))
		cancel()
		logger.Sync()
		os.Exit(1)
	}

	logger.Info("приложение завершено")
}

// initLogger инициализирует логгер
func initLogger(cfg config.AppConfig) (*zap.Logger, error) {
	zapConfig := zap.NewDevelopmentConfig()
	if cfg.IsProduction() {
		zapConfig = zap.NewProductionConfig()
	}
	zapConfig.Level = cfg.GetLogLevel()

	return zapConfig.Build()
}
