package session

import (
	"sync"
	"time"

	"tts-converter/pkg/models"
)

// MaxNotices сколько уведомлений показывается одновременно
const MaxNotices = 3

// Notices очередь всплывающих уведомлений страницы. Старые вытесняются новыми.
type Notices struct {
	mu    sync.Mutex
	items []models.Notice
	now   func() time.Time
}

// NewNotices создает пустую очередь уведомлений
func NewNotices() *Notices {
	return &Notices{now: time.Now}
}

func (n *Notices) push(level models.NoticeLevel, msg string) {
	n.mu.Lock()
	defer n.mu.Unlock()

	n.items = append(n.items, models.Notice{Level: level, Text: msg, CreatedAt: n.now()})
	if len(n.items) > MaxNotices {
		n.items = n.items[len(n.items)-MaxNotices:]
	}
}

func (n *Notices) Warning(msg string) { n.push(models.NoticeWarning, msg) }
func (n *Notices) Success(msg string) { n.push(models.NoticeSuccess, msg) }
func (n *Notices) Error(msg string)   { n.push(models.NoticeError, msg) }

// Drain возвращает накопленные уведомления и очищает очередь.
// Каждое уведомление показывается один раз.
func (n *Notices) Drain() []models.Notice {
	n.mu.Lock()
	defer n.mu.Unlock()

	out := n.items
	n.items = nil
	if out == nil {
		out = []models.Notice{}
	}
	return out
}
