package web

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/cookiejar"
	"net/http/httptest"
	"net/url"
	"strings"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"tts-converter/internal/metrics"
	"tts-converter/internal/session"
	"tts-converter/internal/tts"
	"tts-converter/pkg/models"
)

type fakeSynth struct {
	mu       sync.Mutex
	requests []tts.Request
	result   *tts.Result
	err      error
}

func (f *fakeSynth) Synthesize(ctx context.Context, req tts.Request) (*tts.Result, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.requests = append(f.requests, req)
	return f.result, f.err
}

func newTestServer(t *testing.T, synth tts.Synthesizer) (*httptest.Server, *http.Client) {
	t.Helper()
	logger := zap.NewNop()
	m := metrics.New(logger)
	sessions := session.NewManager(synth, logger)

	srv, err := NewServer(sessions, metrics.NewHandler(m, logger), logger)
	require.NoError(t, err)

	ts := httptest.NewServer(srv.Routes())
	t.Cleanup(ts.Close)

	jar, err := cookiejar.New(nil)
	require.NoError(t, err)
	client := ts.Client()
	client.Jar = jar
	return ts, client
}

func getState(t *testing.T, ts *httptest.Server, client *http.Client) models.StateResponse {
	t.Helper()
	resp, err := client.Get(ts.URL + "/api/state")
	require.NoError(t, err)
	defer resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var state models.StateResponse
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&state))
	return state
}

func TestIndex_RendersForm(t *testing.T) {
	ts, client := newTestServer(t, &fakeSynth{})

	resp, err := client.Get(ts.URL + "/")
	require.NoError(t, err)
	defer resp.Body.Close()

	body := readAll(t, resp)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Contains(t, body, `maxlength="250"`)
	assert.Contains(t, body, `<option value="en-US" selected>Joanna (en-US)</option>`)
	assert.Contains(t, body, "Camila (pt-BR)")
	assert.Contains(t, body, `0</span>/250 characters`)
	assert.Contains(t, body, "disabled")
	assert.NotContains(t, body, "<audio")

	var found bool
	for _, c := range resp.Cookies() {
		if c.Name == cookieName {
			found = true
			assert.True(t, c.HttpOnly)
		}
	}
	assert.True(t, found)
}

func TestGenerate_Success(t *testing.T) {
	synth := &fakeSynth{result: &tts.Result{AudioFileURL: "https://x/a.mp3"}}
	ts, client := newTestServer(t, synth)

	resp, err := client.PostForm(ts.URL+"/generate", url.Values{"text": {"hello"}, "language": {"it-IT"}})
	require.NoError(t, err)
	body := readAll(t, resp)
	resp.Body.Close()

	// После редиректа отображается страница с плеером и уведомлением
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Contains(t, body, `<audio controls src="https://x/a.mp3?t=`)
	assert.Contains(t, body, "Audio generated successfully")
	assert.Contains(t, body, `<option value="it-IT" selected>`)

	require.Len(t, synth.requests, 1)
	assert.Equal(t, tts.Request{Text: "hello", Language: "it-IT"}, synth.requests[0])

	// Уведомление показывается один раз
	state := getState(t, ts, client)
	assert.Empty(t, state.Notices)
	assert.True(t, strings.HasPrefix(state.State.AudioURL, "https://x/a.mp3?t="))
}

func TestAPIGenerate_EmptyText(t *testing.T) {
	synth := &fakeSynth{}
	ts, client := newTestServer(t, synth)

	resp, err := client.PostForm(ts.URL+"/api/generate", url.Values{"text": {""}})
	require.NoError(t, err)
	defer resp.Body.Close()

	var state models.StateResponse
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&state))

	assert.Empty(t, synth.requests)
	require.Len(t, state.Notices, 1)
	assert.Equal(t, models.NoticeWarning, state.Notices[0].Level)
	assert.Equal(t, "Please enter some text to convert", state.Notices[0].Text)
	assert.False(t, state.State.Busy)
}

func TestAPIGenerate_ServiceError(t *testing.T) {
	synth := &fakeSynth{err: &tts.ServiceError{StatusCode: 429, Message: "rate limited"}}
	ts, client := newTestServer(t, synth)

	resp, err := client.PostForm(ts.URL+"/api/generate", url.Values{"text": {"hello"}})
	require.NoError(t, err)
	defer resp.Body.Close()

	var state models.StateResponse
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&state))

	require.Len(t, state.Notices, 1)
	assert.Equal(t, models.NoticeError, state.Notices[0].Level)
	assert.Equal(t, "rate limited", state.Notices[0].Text)
	assert.Empty(t, state.State.AudioURL)
}

func TestAPIGenerate_TruncatesText(t *testing.T) {
	synth := &fakeSynth{result: &tts.Result{AudioFileURL: "https://x/a.mp3"}}
	ts, client := newTestServer(t, synth)

	resp, err := client.PostForm(ts.URL+"/api/generate", url.Values{"text": {strings.Repeat("ж", 300)}})
	require.NoError(t, err)
	resp.Body.Close()

	require.Len(t, synth.requests, 1)
	assert.Equal(t, strings.Repeat("ж", 250), synth.requests[0].Text)
}

func TestGenerate_UnsupportedLanguage(t *testing.T) {
	synth := &fakeSynth{}
	ts, client := newTestServer(t, synth)

	resp, err := client.PostForm(ts.URL+"/generate", url.Values{"text": {"hi"}, "language": {"xx-XX"}})
	require.NoError(t, err)
	resp.Body.Close()

	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	assert.Empty(t, synth.requests)
}

func TestLanguage(t *testing.T) {
	ts, client := newTestServer(t, &fakeSynth{})

	resp, err := client.PostForm(ts.URL+"/language", url.Values{"language": {"es-ES"}})
	require.NoError(t, err)
	resp.Body.Close()
	assert.Equal(t, http.StatusNoContent, resp.StatusCode)

	state := getState(t, ts, client)
	assert.Equal(t, "es-ES", state.State.Language)
	assert.Equal(t, "Conchita", state.State.Voice)

	resp, err = client.PostForm(ts.URL+"/language", url.Values{"language": {"klingon"}})
	require.NoError(t, err)
	resp.Body.Close()
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func TestHealthAndMetrics(t *testing.T) {
	ts, client := newTestServer(t, &fakeSynth{})

	resp, err := client.Get(ts.URL + "/health")
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	resp.Body.Close()

	resp, err = client.Get(ts.URL + "/metrics")
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	resp.Body.Close()

	resp, err = client.Get(ts.URL + "/static/style.css")
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	resp.Body.Close()
}

func TestReadText(t *testing.T) {
	assert.Equal(t, "", readText(""))
	assert.Equal(t, "abc", readText("abc"))
	assert.Len(t, []rune(readText(strings.Repeat("é", 260))), 250)
}

func readAll(t *testing.T, resp *http.Response) string {
	t.Helper()
	data, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	return string(data)
}
