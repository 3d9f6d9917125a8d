package models

import (
	"time"
)

// NoticeLevel уровень всплывающего уведомления
type NoticeLevel string

const (
	NoticeWarning NoticeLevel = "warning"
	NoticeSuccess NoticeLevel = "success"
	NoticeError   NoticeLevel = "error"
)

// Notice представляет всплывающее уведомление для пользователя
type Notice struct {
	Level     NoticeLevel `json:"level"`
	Text      string      `json:"text"`
	CreatedAt time.Time   `json:"created_at"`
}

// ConverterState представляет снимок состояния формы конвертера
type ConverterState struct {
	Text        string `json:"text"`
	Language    string `json:"language"`
	Voice       string `json:"voice"`
	Busy        bool   `json:"busy"`
	AudioURL    string `json:"audio_url,omitempty"` // пусто, если аудио нет
	CharCount   int    `json:"char_count"`
	MaxChars    int    `json:"max_chars"`
	CanGenerate bool   `json:"can_generate"` // кнопка генерации активна
}

// StateResponse представляет ответ GET /api/state
type StateResponse struct {
	State   ConverterState `json:"state"`
	Notices []Notice       `json:"notices"`
}
