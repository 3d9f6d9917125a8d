package session

import (
	"sync"
	"time"

	"tts-converter/internal/converter"
)

// Session содержит состояние одной страницы конвертера
type Session struct {
	ID         string
	Controller *converter.Controller
	Notices    *Notices

	mu           sync.Mutex
	lastActivity time.Time
}

// Touch отмечает активность пользователя
func (s *Session) Touch() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.lastActivity = time.Now()
}

// LastActivity возвращает время последней активности
func (s *Session) LastActivity() time.Time {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.lastActivity
}

// IsStale проверяет, не устарела ли сессия.
// Сессия с запросом в процессе выполнения устаревшей не считается.
func (s *Session) IsStale(ttl time.Duration) bool {
	if s.Controller.Busy() {
		return false
	}
	return time.Since(s.LastActivity()) > ttl
}
