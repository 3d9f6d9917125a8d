package scheduler

import (
	"context"
	"time"

	"go.uber.org/zap"
)

// SessionStore хранилище сессий страниц
type SessionStore interface {
	RemoveInactive(ttl time.Duration) int
	Count() int
}

// GaugeSetter обновляет gauge метрику
type GaugeSetter interface {
	SetGauge(name string, value float64)
}

// InactiveSessionsJob удаляет сессии страниц без активности
type InactiveSessionsJob struct {
	sessions SessionStore
	metrics  GaugeSetter
	ttl      time.Duration
	logger   *zap.Logger
}

// NewInactiveSessionsJob создает джобу очистки неактивных сессий.
// metrics может быть nil.
func NewInactiveSessionsJob(sessions SessionStore, ttl time.Duration, metrics GaugeSetter, logger *zap.Logger) *InactiveSessionsJob {
	return &InactiveSessionsJob{
		sessions: sessions,
		metrics:  metrics,
		ttl:      ttl,
		logger:   logger,
	}
}

// Name возвращает имя джобы для логов
func (j *InactiveSessionsJob) Name() string {
	return "inactive_sessions"
}

// Run удаляет устаревшие сессии и обновляет счетчик активных
func (j *InactiveSessionsJob) Run(ctx context.Context) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	removed := j.sessions.RemoveInactive(j.ttl)
	active := j.sessions.Count()

	if j.metrics != nil {
		j.metrics.SetGauge("active_sessions", float64(active))
	}

	if removed > 0 {
		j.logger.Info("удалены неактивные сессии",
			zap.Int("removed", removed),
			zap.Int("active", active),
			zap.Duration("ttl", j.ttl))
	}
	return nil
}
