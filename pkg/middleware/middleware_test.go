package middleware

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/vfg2006/referral-landing-api/internal/domain"
	"github.com/vfg2006/referral-landing-api/pkg/log"
)

type fakeAuthenticator struct {
	validToken string
}

func (f fakeAuthenticator) Login(string, string) (string, error) {
	return f.validToken, nil
}

func (f fakeAuthenticator) ValidateToken(token string) (*domain.Claims, error) {
	if token != f.validToken {
		return nil, errors.New("invalid")
	}
	return &domain.Claims{AdminEmail: "admin@example.com"}, nil
}

func TestAdminOnly(t *testing.T) {
	var gotClaims *domain.Claims
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotClaims, _ = AdminFromContext(r.Context())
		w.WriteHeader(http.StatusNoContent)
	})
	handler := AdminOnly(fakeAuthenticator{validToken: "good"})(next)

	tests := []struct {
		name       string
		header     string
		wantStatus int
	}{
		{name: "Sem header", header: "", wantStatus: http.StatusUnauthorized},
		{name: "Sem prefixo Bearer", header: "good", wantStatus: http.StatusUnauthorized},
		{name: "Token inválido", header: "Bearer bad", wantStatus: http.StatusUnauthorized},
		{name: "Token válido", header: "Bearer good", wantStatus: http.StatusNoContent},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			gotClaims = nil
			req := httptest.NewRequest(http.MethodGet, "/v1/referrals", nil)
			if tt.header != "" {
				req.Header.Set("Authorization", tt.header)
			}
			rec := httptest.NewRecorder()

			handler.ServeHTTP(rec, req)

			assert.Equal(t, tt.wantStatus, rec.Code)
			if tt.wantStatus == http.StatusNoContent {
				assert.NotNil(t, gotClaims)
			} else {
				assert.Nil(t, gotClaims)
			}
		})
	}
}

func TestCors(t *testing.T) {
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusTeapot)
	})

	t.Run("Origem liberada", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodPost, "/api/submit-referral", nil)
		req.Header.Set("Origin", "https://example.com")
		rec := httptest.NewRecorder()

		Cors([]string{"https://example.com"})(next).ServeHTTP(rec, req)

		assert.Equal(t, "https://example.com", rec.Header().Get("Access-Control-Allow-Origin"))
		assert.Equal(t, http.StatusTeapot, rec.Code)
	})

	t.Run("Origem não liberada", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodPost, "/api/submit-referral", nil)
		req.Header.Set("Origin", "https://evil.com")
		rec := httptest.NewRecorder()

		Cors([]string{"https://example.com"})(next).ServeHTTP(rec, req)

		assert.Empty(t, rec.Header().Get("Access-Control-Allow-Origin"))
	})

	t.Run("Preflight com curinga", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodOptions, "/api/submit-referral", nil)
		req.Header.Set("Origin", "https://any.com")
		rec := httptest.NewRecorder()

		Cors([]string{"*"})(next).ServeHTTP(rec, req)

		assert.Equal(t, http.StatusOK, rec.Code)
		assert.Equal(t, "https://any.com", rec.Header().Get("Access-Control-Allow-Origin"))
	})
}

func TestLogPanicMiddleware(t *testing.T) {
	log.SetupTestLogger()
	handler := LoggingMiddleware()(LogPanicMiddleware()(http.HandlerFunc(func(http.ResponseWriter, *http.Request) {
		panic("boom")
	})))

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
}
