package converter

// Notifier показывает пользователю всплывающие уведомления
type Notifier interface {
	Warning(msg string)
	Success(msg string)
	Error(msg string)
}

// Recorder собирает метрики генерации
type Recorder interface {
	RecordGeneration(success bool, seconds float64, textLength int)
	RecordValidationWarning()
}

type nopNotifier struct{}

func (nopNotifier) Warning(string) {}
func (nopNotifier) Success(string) {}
func (nopNotifier) Error(string)   {}

type nopRecorder struct{}

func (nopRecorder) RecordGeneration(bool, float64, int) {}
func (nopRecorder) RecordValidationWarning()            {}
