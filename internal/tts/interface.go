package tts

import "context"

// Request представляет запрос на синтез речи
type Request struct {
	Text     string `json:"text"`
	Language string `json:"language"`
}

// Result представляет успешный ответ сервиса синтеза
type Result struct {
	AudioFileURL string `json:"audio_file_url"`
}

// Synthesizer представляет интерфейс внешнего сервиса синтеза речи
type Synthesizer interface {
	// Synthesize отправляет текст на синтез и возвращает ссылку на аудио файл
	Synthesize(ctx context.Context, req Request) (*Result, error)
}
