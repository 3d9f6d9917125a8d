package tts

import (
	"errors"
	"fmt"
)

var (
	// ErrNoAudioURL ответ успешен, но ссылки на аудио нет
	ErrNoAudioURL = errors.New("в ответе нет audio_file_url")
	// ErrMalformedEnvelope не удалось разобрать конверт ответа
	ErrMalformedEnvelope = errors.New("некорректный конверт ответа")
)

// ServiceError ошибка, которую вернул сам сервис синтеза (HTTP статус не 2xx)
type ServiceError struct {
	StatusCode int
	Message    string // сообщение из поля error, может быть пустым
}

func (e *ServiceError) Error() string {
	if e.Message == "" {
		return fmt.Sprintf("сервис синтеза вернул статус %d", e.StatusCode)
	}
	return fmt.Sprintf("сервис синтеза вернул статус %d: %s", e.StatusCode, e.Message)
}

// ServiceMessage возвращает сообщение сервиса из цепочки ошибок или пустую строку
func ServiceMessage(err error) string {
	var svcErr *ServiceError
	if errors.As(err, &svcErr) {
		return svcErr.Message
	}
	return ""
}
