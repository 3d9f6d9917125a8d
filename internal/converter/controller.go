package converter

import (
	"context"
	"errors"
	"strconv"
	"strings"
	"sync"
	"time"
	"unicode/utf8"

	"go.uber.org/zap"

	"tts-converter/internal/tts"
	"tts-converter/internal/voices"
	"tts-converter/pkg/models"
)

// MaxChars предел длины текста, который выставляет поле ввода
const MaxChars = 250

// Тексты уведомлений
const (
	EmptyTextMessage     = "Please enter some text to convert"
	SuccessMessage       = "Audio generated successfully"
	FallbackErrorMessage = "Error generating audio. Please try again."
)

var (
	// ErrEmptyText нечего конвертировать
	ErrEmptyText = errors.New("текст для конвертации пуст")
	// ErrBusy предыдущий запрос еще выполняется
	ErrBusy = errors.New("генерация уже выполняется")
	// ErrUnsupportedLanguage код языка вне поддерживаемого набора
	ErrUnsupportedLanguage = errors.New("язык не поддерживается")
)

// Controller управляет состоянием формы конвертера текста в речь
type Controller struct {
	synth    tts.Synthesizer
	notifier Notifier
	metrics  Recorder
	logger   *zap.Logger
	now      func() time.Time

	mu        sync.Mutex
	text      string
	language  string
	busy      bool
	audioURL  string
	lastStamp int64
}

// Option настраивает контроллер
type Option func(*Controller)

// WithClock подменяет источник времени для метки в ссылке на аудио
func WithClock(now func() time.Time) Option {
	return func(c *Controller) {
		c.now = now
	}
}

// WithMetrics подключает сбор метрик
func WithMetrics(r Recorder) Option {
	return func(c *Controller) {
		if r != nil {
			c.metrics = r
		}
	}
}

// New создает контроллер с языком по умолчанию
func New(synth tts.Synthesizer, notifier Notifier, logger *zap.Logger, opts ...Option) *Controller {
	if notifier == nil {
		notifier = nopNotifier{}
	}
	c := &Controller{
		synth:    synth,
		notifier: notifier,
		metrics:  nopRecorder{},
		logger:   logger,
		now:      time.Now,
		language: voices.Default,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// SetText обновляет введенный текст. Длину ограничивает поле ввода.
func (c *Controller) SetText(s string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.text = s
}

// SetLanguage меняет выбранный голос. Запрос, который уже выполняется, не затрагивается.
func (c *Controller) SetLanguage(code string) error {
	if !voices.IsSupported(code) {
		return ErrUnsupportedLanguage
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	c.language = code
	return nil
}

// Generate отправляет текст на синтез и обновляет ссылку на аудио.
// Ошибки сервиса показываются через Notifier и не возвращаются.
func (c *Controller) Generate(ctx context.Context) error {
	c.mu.Lock()
	if c.text == "" {
		c.mu.Unlock()
		c.notifier.Warning(EmptyTextMessage)
		c.metrics.RecordValidationWarning()
		return ErrEmptyText
	}
	if c.busy {
		c.mu.Unlock()
		return ErrBusy
	}
	c.busy = true
	c.audioURL = ""
	req := tts.Request{Text: c.text, Language: c.language}
	c.mu.Unlock()

	// Флаг снимается последним при любом исходе
	defer func() {
		c.mu.Lock()
		c.busy = false
		c.mu.Unlock()
	}()

	start := time.Now()
	result, err := c.synth.Synthesize(ctx, req)
	if err == nil && (result == nil || result.AudioFileURL == "") {
		err = tts.ErrNoAudioURL
	}
	c.metrics.RecordGeneration(err == nil, time.Since(start).Seconds(), utf8.RuneCountInString(req.Text))

	if err != nil {
		c.logger.Error("ошибка генерации аудио",
			zap.String("language", req.Language),
			zap.Error(err))

		msg := tts.ServiceMessage(err)
		if msg == "" {
			msg = FallbackErrorMessage
		}
		c.notifier.Error(msg)

		c.mu.Lock()
		c.audioURL = ""
		c.mu.Unlock()
		return nil
	}

	c.notifier.Success(SuccessMessage)

	c.mu.Lock()
	c.audioURL = withTimestamp(result.AudioFileURL, c.nextStamp())
	c.mu.Unlock()

	c.logger.Info("аудио готово",
		zap.String("language", req.Language),
		zap.String("audio_url", result.AudioFileURL))

	return nil
}

// nextStamp возвращает неубывающую метку времени в миллисекундах. Вызывать под c.mu.
func (c *Controller) nextStamp() int64 {
	stamp := c.now().UnixMilli()
	if stamp < c.lastStamp {
		stamp = c.lastStamp
	}
	c.lastStamp = stamp
	return stamp
}

// withTimestamp добавляет к ссылке параметр t, чтобы плеер не брал аудио из кэша
func withTimestamp(rawURL string, stamp int64) string {
	sep := "?"
	if strings.Contains(rawURL, "?") {
		sep = "&"
	}
	return rawURL + sep + "t=" + strconv.FormatInt(stamp, 10)
}

// Busy сообщает, выполняется ли запрос
func (c *Controller) Busy() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.busy
}

// State возвращает снимок состояния для отображения
func (c *Controller) State() models.ConverterState {
	c.mu.Lock()
	defer c.mu.Unlock()

	voice, _ := voices.Lookup(c.language)
	return models.ConverterState{
		Text:        c.text,
		Language:    c.language,
		Voice:       voice.Name,
		Busy:        c.busy,
		AudioURL:    c.audioURL,
		CharCount:   utf8.RuneCountInString(c.text),
		MaxChars:    MaxChars,
		CanGenerate: !c.busy && c.text != "",
	}
}
