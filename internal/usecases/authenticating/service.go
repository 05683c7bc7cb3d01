package authenticating

import (
	"crypto/subtle"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/sirupsen/logrus"
	"github.com/vfg2006/referral-landing-api/internal/config"
	"github.com/vfg2006/referral-landing-api/internal/domain"
	"github.com/vfg2006/referral-landing-api/pkg/apiErrors"
	"golang.org/x/crypto/bcrypt"
)

const tokenTTL = 24 * time.Hour

type Authenticator interface {
	Login(email, password string) (string, error)
	ValidateToken(tokenString string) (*domain.Claims, error)
}

// Service autentica o único administrador configurado por variável de ambiente
type Service struct {
	adminEmail        string
	adminPasswordHash []byte
	secretKey         []byte
	now               func() time.Time
}

func NewService(cfg *config.Config) Authenticator {
	return &Service{
		adminEmail:        handleEmail(cfg.Auth.AdminEmail),
		adminPasswordHash: []byte(cfg.Auth.AdminPasswordHash),
		secretKey:         []byte(cfg.SecretKey),
		now:               time.Now,
	}
}

func (s *Service) Login(email, password string) (string, error) {
	if email == "" || password == "" {
		return "", NewAuthError(ErrMissingRequiredData, apiErrors.ErrMissingRequiredData, "Email e senha são obrigatórios")
	}

	if len(s.adminPasswordHash) == 0 {
		return "", NewAuthError(ErrLoginDisabled, apiErrors.ErrUserDisabled, "ADMIN_PASSWORD_HASH não configurado")
	}

	emailMatches := subtle.ConstantTimeCompare([]byte(handleEmail(email)), []byte(s.adminEmail)) == 1
	passwordErr := bcrypt.CompareHashAndPassword(s.adminPasswordHash, []byte(password))
	if !emailMatches || passwordErr != nil {
		logrus.WithField("email", email).Warn("Tentativa de login administrativo inválida")
		return "", NewAuthError(ErrInvalidCredentials, apiErrors.ErrInvalidCredentials, "Email ou senha incorretos")
	}

	token, err := s.generateJWT()
	if err != nil {
		return "", NewAuthError(err, apiErrors.ErrInternalServer, "Erro ao gerar token de autenticação")
	}

	return token, nil
}

func (s *Service) generateJWT() (string, error) {
	now := s.now()
	claims := domain.Claims{
		AdminEmail: s.adminEmail,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   s.adminEmail,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(tokenTTL)),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(s.secretKey)
}

func (s *Service) ValidateToken(tokenString string) (*domain.Claims, error) {
	token, err := jwt.ParseWithClaims(tokenString, &domain.Claims{}, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return s.secretKey, nil
	})
	if err != nil {
		return nil, NewAuthError(ErrInvalidToken, apiErrors.ErrInvalidToken, err.Error())
	}

	claims, ok := token.Claims.(*domain.Claims)
	if !ok || !token.Valid || claims.AdminEmail != s.adminEmail {
		return nil, NewAuthError(ErrInvalidToken, apiErrors.ErrInvalidToken, "")
	}

	return claims, nil
}

// IsCredentialsError verifica se o erro está relacionado a credenciais inválidas
func IsCredentialsError(err error) bool {
	return errors.Is(err, ErrInvalidCredentials) || errors.Is(err, ErrLoginDisabled)
}

func handleEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
