package authenticating

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vfg2006/referral-landing-api/internal/config"
	"golang.org/x/crypto/bcrypt"
)

func newTestService(t *testing.T, password string) *Service {
	t.Helper()

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.MinCost)
	require.NoError(t, err)

	cfg := &config.Config{
		SecretKey: "test-secret",
		Auth: config.Auth{
			AdminEmail:        "Admin@Example.com ",
			AdminPasswordHash: string(hash),
		},
	}

	return NewService(cfg).(*Service)
}

func TestLogin(t *testing.T) {
	service := newTestService(t, "s3cret")

	tests := []struct {
		name     string
		email    string
		password string
		wantErr  error
	}{
		{name: "Credenciais válidas", email: "admin@example.com", password: "s3cret"},
		{name: "Email com caixa e espaços diferentes", email: "  ADMIN@example.com", password: "s3cret"},
		{name: "Senha incorreta", email: "admin@example.com", password: "wrong", wantErr: ErrInvalidCredentials},
		{name: "Email incorreto", email: "other@example.com", password: "s3cret", wantErr: ErrInvalidCredentials},
		{name: "Campos vazios", email: "", password: "", wantErr: ErrMissingRequiredData},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			token, err := service.Login(tt.email, tt.password)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				assert.Empty(t, token)
				return
			}

			require.NoError(t, err)
			claims, err := service.ValidateToken(token)
			require.NoError(t, err)
			assert.Equal(t, "admin@example.com", claims.AdminEmail)
		})
	}
}

func TestLogin_DisabledWithoutHash(t *testing.T) {
	service := NewService(&config.Config{SecretKey: "x"})

	_, err := service.Login("admin@localhost", "anything")
	assert.ErrorIs(t, err, ErrLoginDisabled)
	assert.True(t, IsCredentialsError(err))
}

func TestValidateToken_Rejections(t *testing.T) {
	service := newTestService(t, "s3cret")

	_, err := service.ValidateToken("not-a-token")
	assert.ErrorIs(t, err, ErrInvalidToken)

	other := newTestService(t, "s3cret")
	other.secretKey = []byte("another-secret")
	token, err := other.Login("admin@example.com", "s3cret")
	require.NoError(t, err)
	_, err = service.ValidateToken(token)
	assert.ErrorIs(t, err, ErrInvalidToken)

	expired := newTestService(t, "s3cret")
	expired.now = func() time.Time { return time.Now().Add(-48 * time.Hour) }
	token, err = expired.Login("admin@example.com", "s3cret")
	require.NoError(t, err)
	_, err = service.ValidateToken(token)
	assert.ErrorIs(t, err, ErrInvalidToken)
}
