package web

import (
	"bytes"
	"context"
	"embed"
	"encoding/json"
	"errors"
	"fmt"
	"html/template"
	"io/fs"
	"net/http"
	"time"

	"go.uber.org/zap"

	"tts-converter/internal/converter"
	"tts-converter/internal/metrics"
	"tts-converter/internal/session"
	"tts-converter/internal/voices"
	"tts-converter/pkg/models"
)

// cookieName cookie с идентификатором сессии страницы
const cookieName = "tts_session"

//go:embed templates/*.html
var templateFS embed.FS

//go:embed static
var staticFS embed.FS

// Server HTTP сервер формы конвертера
type Server struct {
	sessions *session.Manager
	metrics  *metrics.Handler
	logger   *zap.Logger
	tmpl     *template.Template
}

// pageData данные шаблона страницы
type pageData struct {
	State   models.ConverterState
	Voices  []voices.Voice
	Notices []models.Notice
}

// NewServer создает HTTP сервер формы
func NewServer(sessions *session.Manager, metricsHandler *metrics.Handler, logger *zap.Logger) (*Server, error) {
	tmpl, err := template.ParseFS(templateFS, "templates/index.html")
	if err != nil {
		return nil, fmt.Errorf("ошибка разбора шаблонов: %w", err)
	}

	return &Server{
		sessions: sessions,
		metrics:  metricsHandler,
		logger:   logger,
		tmpl:     tmpl,
	}, nil
}

// Routes возвращает маршрутизатор приложения
func (s *Server) Routes() http.Handler {
	mux := http.NewServeMux()

	mux.HandleFunc("GET /{$}", s.handleIndex)
	mux.HandleFunc("POST /generate", s.handleGenerate)
	mux.HandleFunc("POST /language", s.handleLanguage)
	mux.HandleFunc("GET /api/state", s.handleState)
	mux.HandleFunc("POST /api/generate", s.handleAPIGenerate)

	static, _ := fs.Sub(staticFS, "static")
	mux.Handle("GET /static/", http.StripPrefix("/static/", http.FileServer(http.FS(static))))

	mux.Handle("GET /metrics", s.metrics.MetricsHandler())
	mux.HandleFunc("GET /health", s.metrics.HealthHandler)

	return mux
}

// Run запускает HTTP сервер и блокируется до отмены ctx
func (s *Server) Run(ctx context.Context, port int) error {
	server := &http.Server{
		Addr:              fmt.Sprintf(":%d", port),
		Handler:           s.Routes(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	s.logger.Info("HTTP сервер запущен", zap.String("address", server.Addr))

	errCh := make(chan error, 1)
	go func() {
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		if err != nil {
			return fmt.Errorf("ошибка HTTP сервера: %w", err)
		}
		return nil
	case <-ctx.Done():
	}

	// Graceful shutdown HTTP сервера
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("ошибка при остановке HTTP сервера: %w", err)
	}

	s.logger.Info("HTTP сервер остановлен")
	return nil
}

// session возвращает сессию из cookie или создает новую
func (s *Server) session(w http.ResponseWriter, r *http.Request) *session.Session {
	var id string
	if c, err := r.Cookie(cookieName); err == nil {
		id = c.Value
	}

	sess, created := s.sessions.GetOrCreate(id)
	if created {
		http.SetCookie(w, &http.Cookie{
			Name:     cookieName,
			Value:    sess.ID,
			Path:     "/",
			HttpOnly: true,
			SameSite: http.SameSiteLaxMode,
		})
	}
	return sess
}

func (s *Server) handleIndex(w http.ResponseWriter, r *http.Request) {
	sess := s.session(w, r)

	data := pageData{
		State:   sess.Controller.State(),
		Voices:  voices.All(),
		Notices: sess.Notices.Drain(),
	}

	var buf bytes.Buffer
	if err := s.tmpl.ExecuteTemplate(&buf, "index.html", data); err != nil {
		s.logger.Error("ошибка рендеринга страницы", zap.Error(err))
		http.Error(w, "Internal server error", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.Header().Set("Cache-Control", "no-store")
	_, _ = buf.WriteTo(w)
}

func (s *Server) handleGenerate(w http.ResponseWriter, r *http.Request) {
	sess := s.session(w, r)
	if !s.generate(w, r, sess) {
		return
	}
	http.Redirect(w, r, "/", http.StatusSeeOther)
}

func (s *Server) handleAPIGenerate(w http.ResponseWriter, r *http.Request) {
	sess := s.session(w, r)
	if !s.generate(w, r, sess) {
		return
	}
	s.writeState(w, sess)
}

// generate применяет поля формы и запускает генерацию.
// Возвращает false, если ответ уже записан.
func (s *Server) generate(w http.ResponseWriter, r *http.Request, sess *session.Session) bool {
	if err := r.ParseForm(); err != nil {
		http.Error(w, "Bad request", http.StatusBadRequest)
		return false
	}

	if lang := r.PostForm.Get("language"); lang != "" {
		if err := sess.Controller.SetLanguage(lang); err != nil {
			http.Error(w, "Unsupported language", http.StatusBadRequest)
			return false
		}
	}
	sess.Controller.SetText(readText(r.PostForm.Get("text")))

	// Запрос к сервису не отменяется, даже если клиент отключился
	ctx := context.WithoutCancel(r.Context())

	err := sess.Controller.Generate(ctx)
	switch {
	case errors.Is(err, converter.ErrBusy):
		s.logger.Debug("генерация уже выполняется", zap.String("session_id", sess.ID))
	case errors.Is(err, converter.ErrEmptyText):
		s.logger.Debug("пустой текст", zap.String("session_id", sess.ID))
	case err != nil:
		s.logger.Error("ошибка генерации", zap.String("session_id", sess.ID), zap.Error(err))
	}

	return true
}

func (s *Server) handleLanguage(w http.ResponseWriter, r *http.Request) {
	sess := s.session(w, r)

	if err := r.ParseForm(); err != nil {
		http.Error(w, "Bad request", http.StatusBadRequest)
		return
	}

	if err := sess.Controller.SetLanguage(r.PostForm.Get("language")); err != nil {
		http.Error(w, "Unsupported language", http.StatusBadRequest)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) handleState(w http.ResponseWriter, r *http.Request) {
	sess := s.session(w, r)
	s.writeState(w, sess)
}

func (s *Server) writeState(w http.ResponseWriter, sess *session.Session) {
	resp := models.StateResponse{
		State:   sess.Controller.State(),
		Notices: sess.Notices.Drain(),
	}

	w.Header().Set("Content-Type", "application/json")
	w.Header().Set("Cache-Control", "no-store")
	if err := json.NewEncoder(w).Encode(resp); err != nil {
		s.logger.Warn("ошибка записи состояния", zap.Error(err))
	}
}

// readText обрезает текст до предела поля ввода
func readText(s string) string {
	runes := []rune(s)
	if len(runes) > converter.MaxChars {
		return string(runes[:converter.MaxChars])
	}
	return s
}
