package http

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"crypto-pulse/internal/service"
	"crypto-pulse/pkg/logger"

	goValidator "github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/telebot.v3"
)

type fakeNotifier struct {
	cycles int
	err    error
}

func (f *fakeNotifier) Run(ctx context.Context) {}

func (f *fakeNotifier) RunCycle(ctx context.Context) error {
	f.cycles++
	return f.err
}

type fakeBot struct {
	updates []telebot.Update
}

func (f *fakeBot) ProcessUpdate(update telebot.Update) {
	f.updates = append(f.updates, update)
}

func newTestHandler(t *testing.T, notifier *fakeNotifier, bot *fakeBot) (*HttpAPIHandler, *echo.Echo) {
	t.Helper()
	log, err := logger.New("error", "console")
	require.NoError(t, err)

	e := echo.New()
	h := NewHttpAPIHandler(context.Background(), e, log, goValidator.New(), &service.Service{
		NotifierService: notifier,
	}, bot)
	h.SetupRoutes()
	return h, e
}

func TestHealth(t *testing.T) {
	_, e := newTestHandler(t, &fakeNotifier{}, &fakeBot{})

	req := httptest.NewRequest(http.MethodGet, "/api/v1/health", nil)
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "healthy")
}

func TestTelegramWebhook(t *testing.T) {
	bot := &fakeBot{}
	_, e := newTestHandler(t, &fakeNotifier{}, bot)

	req := httptest.NewRequest(http.MethodPost, "/api/v1/telegram/webhook",
		strings.NewReader(`{"update_id": 7}`))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	require.Len(t, bot.updates, 1)
	assert.Equal(t, 7, bot.updates[0].ID)
}

func TestRunNotifier(t *testing.T) {
	tests := []struct {
		name       string
		body       string
		notifier   *fakeNotifier
		wantStatus int
		wantCycles int
	}{
		{
			name:       "empty body runs a cycle",
			body:       `{}`,
			notifier:   &fakeNotifier{},
			wantStatus: http.StatusOK,
			wantCycles: 1,
		},
		{
			name:       "reason accepted",
			body:       `{"reason": "testing alerts"}`,
			notifier:   &fakeNotifier{},
			wantStatus: http.StatusOK,
			wantCycles: 1,
		},
		{
			name:       "overly long reason rejected before running",
			body:       `{"reason": "` + strings.Repeat("x", 300) + `"}`,
			notifier:   &fakeNotifier{},
			wantStatus: http.StatusBadRequest,
			wantCycles: 0,
		},
		{
			name:       "cycle failure maps to 500",
			body:       `{}`,
			notifier:   &fakeNotifier{err: context.DeadlineExceeded},
			wantStatus: http.StatusInternalServerError,
			wantCycles: 1,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, e := newTestHandler(t, tt.notifier, &fakeBot{})

			req := httptest.NewRequest(http.MethodPost, "/api/v1/notifier/run",
				strings.NewReader(tt.body))
			req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
			rec := httptest.NewRecorder()
			e.ServeHTTP(rec, req)

			assert.Equal(t, tt.wantStatus, rec.Code)
			assert.Equal(t, tt.wantCycles, tt.notifier.cycles)
		})
	}
}
