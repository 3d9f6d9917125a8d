package config

import (
	"fmt"
	"net/url"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
	"go.uber.org/zap"
)

// Config содержит все конфигурационные параметры приложения
type Config struct {
	Synthesis SynthesisConfig
	Session   SessionConfig
	App       AppConfig
}

// SynthesisConfig содержит настройки внешнего сервиса синтеза речи
type SynthesisConfig struct {
	APIURL  string
	Timeout time.Duration // 0 означает без таймаута
}

// SessionConfig содержит настройки сессий страницы
type SessionConfig struct {
	TTL           time.Duration
	SweepInterval time.Duration
}

type AppConfig struct {
	Env      string
	LogLevel string
	Port     int
}

// Load загружает конфигурацию из переменных окружения и .env
func Load() (*Config, error) {
	_ = godotenv.Load()

	cfg := &Config{}

	// Synthesis
	cfg.Synthesis.APIURL = os.Getenv("SYNTHESIS_API_URL")
	cfg.Synthesis.Timeout = getEnvDurationDefault("SYNTHESIS_TIMEOUT", 0)

	// Session
	cfg.Session.TTL = getEnvDurationDefault("SESSION_TTL", 30*time.Minute)
	cfg.Session.SweepInterval = getEnvDurationDefault("SESSION_SWEEP_INTERVAL", 5*time.Minute)

	// App
	cfg.App.Env = getEnvDefault("APP_ENV", "development")
	cfg.App.LogLevel = getEnvDefault("LOG_LEVEL", "info")
	cfg.App.Port = getEnvIntDefault("APP_PORT", 8080)

	if err := validateConfig(cfg); err != nil {
		return nil, fmt.Errorf("ошибка валидации конфигурации: %w", err)
	}

	return cfg, nil
}

func getEnvDefault(key, def string) string {
	v := os.Getenv(key)
	if v == "" {
		return def
	}
	return v
}

func getEnvIntDefault(key string, def int) int {
	v := os.Getenv(key)
	if v == "" {
		return def
	}
	i, err := strconv.Atoi(v)
	if err != nil {
		return def
	}
	return i
}

func getEnvDurationDefault(key string, def time.Duration) time.Duration {
	v := os.Getenv(key)
	if v == "" {
		return def
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		return def
	}
	return d
}

// validateConfig проверяет корректность конфигурации
func validateConfig(config *Config) error {
	if config.Synthesis.APIURL == "" {
		return fmt.Errorf("SYNTHESIS_API_URL не установлен")
	}
	u, err := url.Parse(config.Synthesis.APIURL)
	if err != nil || (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		return fmt.Errorf("SYNTHESIS_API_URL должен быть http(s) адресом: %q", config.Synthesis.APIURL)
	}
	if config.Synthesis.Timeout < 0 {
		return fmt.Errorf("SYNTHESIS_TIMEOUT не может быть отрицательным")
	}
	if config.Session.TTL <= 0 {
		return fmt.Errorf("SESSION_TTL должен быть положительным")
	}
	if config.Session.SweepInterval <= 0 {
		return fmt.Errorf("SESSION_SWEEP_INTERVAL должен быть положительным")
	}
	if config.App.Port <= 0 || config.App.Port > 65535 {
		return fmt.Errorf("APP_PORT вне допустимого диапазона: %d", config.App.Port)
	}

	return nil
}

// IsDevelopment проверяет, запущено ли приложение в режиме разработки
func (c *AppConfig) IsDevelopment() bool {
	return c.Env == "development"
}

// IsProduction проверяет, запущено ли приложение в продакшн режиме
func (c *AppConfig) IsProduction() bool {
	return c.Env == "production"
}

// GetLogLevel возвращает уровень логирования в формате zap
func (c *AppConfig) GetLogLevel() zap.AtomicLevel {
	switch c.LogLevel {
	case "debug":
		return zap.NewAtomicLevelAt(zap.DebugLevel)
	case "info":
		return zap.NewAtomicLevelAt(zap.InfoLevel)
	case "warn":
		return zap.NewAtomicLevelAt(zap.WarnLevel)
	case "error":
		return zap.NewAtomicLevelAt(zap.ErrorLevel)
	default:
		return zap.NewAtomicLevelAt(zap.InfoLevel)
	}
}
