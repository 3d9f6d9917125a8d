package tts

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"go.uber.org/zap"
)

// maxResponseSize ограничение на размер читаемого ответа
const maxResponseSize = 1 << 20

// RemoteService предоставляет синтез речи через внешний HTTP API
type RemoteService struct {
	logger     *zap.Logger
	endpoint   string
	httpClient *http.Client
}

// NewRemoteService создает клиент внешнего сервиса синтеза.
// timeout == 0 означает отсутствие таймаута: запрос всегда выполняется до конца.
func NewRemoteService(logger *zap.Logger, endpoint string, timeout time.Duration) *RemoteService {
	return &RemoteService{
		logger:   logger,
		endpoint: endpoint,
		httpClient: &http.Client{
			Timeout: timeout,
		},
	}
}

// envelope внешний конверт ответа, поле body содержит JSON строкой
type envelope struct {
	Body *string `json:"body"`
}

// payload внутренний объект, закодированный в body
type payload struct {
	AudioFileURL string `json:"audio_file_url"`
}

// errorBody тело неуспешного ответа
type errorBody struct {
	Error string  `json:"error"`
	Body  *string `json:"body"`
}

// Synthesize отправляет текст и код языка, возвращает ссылку на аудио файл
func (s *RemoteService) Synthesize(ctx context.Context, req Request) (*Result, error) {
	body, err := json.Marshal(req)
	if err != nil {
		return nil, fmt.Errorf("ошибка сериализации запроса: %w", err)
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, s.endpoint, bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("ошибка создания запроса: %w", err)
	}
	httpReq.Header.Set("Content-Type", "application/json")

	s.logger.Info("🎵 отправляем запрос к сервису синтеза",
		zap.String("url", s.endpoint),
		zap.String("language", req.Language),
		zap.Int("text_length", len([]rune(req.Text))))

	resp, err := s.httpClient.Do(httpReq)
	if err != nil {
		return nil, fmt.Errorf("ошибка выполнения запроса: %w", err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseSize))
	if err != nil {
		return nil, fmt.Errorf("ошибка чтения ответа: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, &ServiceError{
			StatusCode: resp.StatusCode,
			Message:    errorMessage(respBody),
		}
	}

	result, err := decodeEnvelope(respBody)
	if err != nil {
		return nil, err
	}

	s.logger.Info("🎵 аудио успешно сгенерировано",
		zap.String("audio_file_url", result.AudioFileURL))

	return result, nil
}

// decodeEnvelope разбирает ответ в два этапа: внешний конверт, затем строку body
func decodeEnvelope(data []byte) (*Result, error) {
	var env envelope
	if err := json.Unmarshal(data, &env); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformedEnvelope, err)
	}
	if env.Body == nil {
		return nil, fmt.Errorf("%w: нет поля body", ErrMalformedEnvelope)
	}

	var inner payload
	if err := json.Unmarshal([]byte(*env.Body), &inner); err != nil {
		return nil, fmt.Errorf("%w: body: %v", ErrMalformedEnvelope, err)
	}

	if inner.AudioFileURL == "" {
		return nil, ErrNoAudioURL
	}

	return &Result{AudioFileURL: inner.AudioFileURL}, nil
}

// errorMessage извлекает сообщение об ошибке из тела неуспешного ответа.
// Сначала смотрим поле error, затем error внутри строки body.
func errorMessage(data []byte) string {
	var outer errorBody
	if err := json.Unmarshal(data, &outer); err != nil {
		return ""
	}
	if outer.Error != "" || outer.Body == nil {
		return outer.Error
	}

	var inner errorBody
	if err := json.Unmarshal([]byte(*outer.Body), &inner); err != nil {
		return ""
	}
	return inner.Error
}
