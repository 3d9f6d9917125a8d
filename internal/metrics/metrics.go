package metrics

import (
	"net/http"
	"sync"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"
)

// Metrics содержит все метрики приложения
type Metrics struct {
	logger   *zap.Logger
	registry *prometheus.Registry

	// Счетчики
	ttsRequests        *prometheus.CounterVec
	validationWarnings prometheus.Counter

	// Гистограммы
	ttsResponseTime prometheus.Histogram
	textLength      prometheus.Histogram

	// Gauge метрики
	activeSessions prometheus.Gauge

	mu sync.Mutex
}

// New создает новый экземпляр метрик со своим реестром
func New(logger *zap.Logger) *Metrics {
	m := &Metrics{
		logger:   logger,
		registry: prometheus.NewRegistry(),

		ttsRequests: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "tts_requests_total",
				Help: "Общее количество запросов к сервису синтеза",
			},
			[]string{"status"}, // success, failed
		),

		validationWarnings: prometheus.NewCounter(
			prometheus.CounterOpts{
				Name: "tts_validation_warnings_total",
				Help: "Попытки генерации с пустым текстом",
			},
		),

		ttsResponseTime: prometheus.NewHistogram(
			prometheus.HistogramOpts{
				Name:    "tts_response_time_seconds",
				Help:    "Время ответа сервиса синтеза в секундах",
				Buckets: prometheus.DefBuckets,
			},
		),

		textLength: prometheus.NewHistogram(
			prometheus.HistogramOpts{
				Name:    "tts_text_length_chars",
				Help:    "Длина отправленного текста в символах",
				Buckets: []float64{10, 25, 50, 100, 150, 200, 250},
			},
		),

		activeSessions: prometheus.NewGauge(
			prometheus.GaugeOpts{
				Name: "active_sessions",
				Help: "Количество активных сессий страницы",
			},
		),
	}

	m.registry.MustRegister(
		m.ttsRequests,
		m.validationWarnings,
		m.ttsResponseTime,
		m.textLength,
		m.activeSessions,
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)

	return m
}

// IncrementCounter увеличивает счетчик
func (m *Metrics) IncrementCounter(name string, labels ...string) {
	m.mu.Lock()
	defer m.mu.Unlock()

	switch name {
	case "tts_requests_total":
		m.ttsRequests.WithLabelValues(labels...).Inc()
	case "tts_validation_warnings_total":
		m.validationWarnings.Inc()
	default:
		m.logger.Error("неизвестная метрика", zap.String("name", name))
		return
	}

	m.logger.Debug("метрика увеличена", zap.String("metric", name), zap.Strings("labels", labels))
}

// SetGauge устанавливает значение gauge метрики
func (m *Metrics) SetGauge(name string, value float64) {
	m.mu.Lock()
	defer m.mu.Unlock()

	switch name {
	case "active_sessions":
		m.activeSessions.Set(value)
	default:
		m.logger.Error("неизвестная gauge метрика", zap.String("name", name))
		return
	}

	m.logger.Debug("метрика установлена", zap.String("metric", name), zap.Float64("value", value))
}

// ObserveHistogram добавляет наблюдение в гистограмму
func (m *Metrics) ObserveHistogram(name string, value float64) {
	m.mu.Lock()
	defer m.mu.Unlock()

	switch name {
	case "tts_response_time":
		m.ttsResponseTime.Observe(value)
	case "tts_text_length":
		m.textLength.Observe(value)
	default:
		m.logger.Error("неизвестная гистограмма", zap.String("name", name))
		return
	}

	m.logger.Debug("гистограмма обновлена", zap.String("metric", name), zap.Float64("value", value))
}

// RecordGeneration записывает завершенный запрос к сервису синтеза
func (m *Metrics) RecordGeneration(success bool, seconds float64, textLength int) {
	status := "success"
	if !success {
		status = "failed"
	}

	m.IncrementCounter("tts_requests_total", status)
	m.ObserveHistogram("tts_response_time", seconds)
	m.ObserveHistogram("tts_text_length", float64(textLength))
}

// RecordValidationWarning записывает попытку генерации с пустым текстом
func (m *Metrics) RecordValidationWarning() {
	m.IncrementCounter("tts_validation_warnings_total")
}

// Handler возвращает HTTP handler для метрик
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}
