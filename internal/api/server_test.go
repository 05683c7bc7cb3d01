package api

import (
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vfg2006/referral-landing-api/internal/config"
	"github.com/vfg2006/referral-landing-api/internal/domain"
	"github.com/vfg2006/referral-landing-api/internal/usecases/referring/mocks"
	"go.uber.org/mock/gomock"
)

type denyAllAuthenticator struct{}

func (denyAllAuthenticator) Login(string, string) (string, error) {
	return "", assert.AnError
}

func (denyAllAuthenticator) ValidateToken(string) (*domain.Claims, error) {
	return nil, assert.AnError
}

type idleImporter struct{}

func (idleImporter) TriggerManualImport() bool { return true }

func (idleImporter) GetStatus() map[string]any { return map[string]any{"running": false} }

func newTestHandler(t *testing.T, ctrl *gomock.Controller) (http.Handler, *mocks.MockReferrer) {
	t.Helper()

	staticDir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(staticDir, "index.html"), []byte("<h1>Crypto Success</h1>"), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(staticDir, "styles.css"), []byte("body{}"), 0o644))

	cfg := &config.Config{
		Storage: config.Storage{StaticDir: staticDir},
		Cors:    config.Cors{AllowedOrigins: []string{"*"}},
	}

	referralService := mocks.NewMockReferrer(ctrl)
	return NewHandler(cfg, referralService, denyAllAuthenticator{}, idleImporter{}), referralService
}

func TestNewHandler_Routes(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	handler, referralService := newTestHandler(t, ctrl)
	referralService.EXPECT().GetPage(gomock.Any(), "jo_1").Return([]byte("<html>Jo</html>"), nil)

	tests := []struct {
		name       string
		method     string
		path       string
		wantStatus int
		wantBody   string
	}{
		{name: "Landing page", method: http.MethodGet, path: "/", wantStatus: http.StatusOK, wantBody: "Crypto Success"},
		{name: "Arquivo estático", method: http.MethodGet, path: "/static/styles.css", wantStatus: http.StatusOK, wantBody: "body{}"},
		{name: "Página gerada", method: http.MethodGet, path: "/referral/jo_1", wantStatus: http.StatusOK, wantBody: "<html>Jo</html>"},
		{name: "Healthcheck", method: http.MethodGet, path: "/healthcheck", wantStatus: http.StatusOK},
		{name: "Admin sem token", method: http.MethodGet, path: "/v1/referrals", wantStatus: http.StatusUnauthorized, wantBody: "AUTH_006"},
		{name: "Importação sem token", method: http.MethodPost, path: "/v1/import/run", wantStatus: http.StatusUnauthorized},
		{name: "Rota inexistente", method: http.MethodGet, path: "/nope/nope", wantStatus: http.StatusNotFound},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := httptest.NewRecorder()
			handler.ServeHTTP(rec, httptest.NewRequest(tt.method, tt.path, nil))

			assert.Equal(t, tt.wantStatus, rec.Code)
			assert.Contains(t, rec.Body.String(), tt.wantBody)
		})
	}
}

func TestNewHandler_CorsPreflight(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	handler, _ := newTestHandler(t, ctrl)

	req := httptest.NewRequest(http.MethodOptions, "/api/submit-referral", nil)
	req.Header.Set("Origin", "https://landing.example.com")
	rec := httptest.NewRecorder()

	handler.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "https://landing.example.com", rec.Header().Get("Access-Control-Allow-Origin"))
}
