package handler

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vfg2006/referral-landing-api/internal/domain"
	"github.com/vfg2006/referral-landing-api/internal/usecases/authenticating"
	"github.com/vfg2006/referral-landing-api/pkg/apiErrors"
)

type stubAuthenticator struct {
	token string
	err   error
}

func (s stubAuthenticator) Login(string, string) (string, error) {
	return s.token, s.err
}

func (s stubAuthenticator) ValidateToken(token string) (*domain.Claims, error) {
	if token != s.token {
		return nil, authenticating.NewAuthError(authenticating.ErrInvalidToken, apiErrors.ErrInvalidToken, "")
	}
	return &domain.Claims{AdminEmail: "admin@example.com"}, nil
}

func TestLogin(t *testing.T) {
	tests := []struct {
		name       string
		body       string
		auth       stubAuthenticator
		wantStatus int
		wantBody   string
	}{
		{
			name:       "Login com sucesso",
			body:       `{"email":"admin@example.com","password":"secret"}`,
			auth:       stubAuthenticator{token: "signed-token"},
			wantStatus: http.StatusOK,
			wantBody:   `"token":"signed-token"`,
		},
		{
			name:       "Corpo inválido",
			body:       `{`,
			auth:       stubAuthenticator{},
			wantStatus: http.StatusBadRequest,
			wantBody:   apiErrors.ErrInvalidRequest,
		},
		{
			name: "Credenciais inválidas",
			body: `{"email":"admin@example.com","password":"wrong"}`,
			auth: stubAuthenticator{err: authenticating.NewAuthError(
				authenticating.ErrInvalidCredentials, apiErrors.ErrInvalidCredentials, "Email ou senha incorretos")},
			wantStatus: http.StatusUnauthorized,
			wantBody:   apiErrors.ErrInvalidCredentials,
		},
		{
			name: "Login desabilitado",
			body: `{"email":"admin@example.com","password":"secret"}`,
			auth: stubAuthenticator{err: authenticating.NewAuthError(
				authenticating.ErrLoginDisabled, apiErrors.ErrUserDisabled, "")},
			wantStatus: http.StatusForbidden,
			wantBody:   apiErrors.ErrUserDisabled,
		},
		{
			name:       "Erro desconhecido",
			body:       `{"email":"admin@example.com","password":"secret"}`,
			auth:       stubAuthenticator{err: assert.AnError},
			wantStatus: http.StatusInternalServerError,
			wantBody:   apiErrors.ErrInternalServer,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodPost, "/v1/login", strings.NewReader(tt.body))
			rec := httptest.NewRecorder()

			Login(tt.auth).ServeHTTP(rec, req)

			require.Equal(t, tt.wantStatus, rec.Code)
			assert.Contains(t, rec.Body.String(), tt.wantBody)
		})
	}
}
