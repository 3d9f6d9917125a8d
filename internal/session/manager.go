package session

import (
	"sync"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"tts-converter/internal/converter"
	"tts-converter/internal/tts"
)

// Manager хранит сессии страниц в памяти процесса
type Manager struct {
	synth  tts.Synthesizer
	logger *zap.Logger
	opts   []converter.Option

	mu       sync.RWMutex
	sessions map[string]*Session
}

// NewManager создает менеджер сессий. opts передаются каждому новому контроллеру.
func NewManager(synth tts.Synthesizer, logger *zap.Logger, opts ...converter.Option) *Manager {
	return &Manager{
		synth:    synth,
		logger:   logger,
		opts:     opts,
		sessions: make(map[string]*Session),
	}
}

// Get возвращает сессию по идентификатору
func (m *Manager) Get(id string) (*Session, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	s, ok := m.sessions[id]
	return s, ok
}

// GetOrCreate возвращает существующую сессию или создает новую.
// Второе значение true, если сессия создана.
func (m *Manager) GetOrCreate(id string) (*Session, bool) {
	if s, ok := m.Get(id); ok {
		s.Touch()
		return s, false
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	// Сессию мог создать параллельный запрос
	if s, ok := m.sessions[id]; ok {
		s.Touch()
		return s, false
	}

	s := m.newSession()
	m.sessions[s.ID] = s

	m.logger.Debug("создана сессия", zap.String("session_id", s.ID))
	return s, true
}

func (m *Manager) newSession() *Session {
	notices := NewNotices()
	s := &Session{
		ID:           uuid.NewString(),
		Notices:      notices,
		Controller:   converter.New(m.synth, notices, m.logger, m.opts...),
		lastActivity: time.Now(),
	}
	return s
}

// RemoveInactive удаляет сессии без активности дольше ttl и возвращает их число
func (m *Manager) RemoveInactive(ttl time.Duration) int {
	m.mu.Lock()
	defer m.mu.Unlock()

	removed := 0
	for id, s := range m.sessions {
		if s.IsStale(ttl) {
			delete(m.sessions, id)
			removed++
		}
	}
	return removed
}

// Count возвращает количество активных сессий
func (m *Manager) Count() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.sessions)
}
