package apiErrors

import (
	"net/http"

	jsoniter "github.com/json-iterator/go"
	"github.com/sirupsen/logrus"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

// Códigos de erro
const (
	// Erros de autenticação
	ErrInvalidCredentials = "AUTH_001" // Credenciais inválidas
	ErrUserDisabled       = "AUTH_002" // Login desabilitado
	ErrInvalidToken       = "AUTH_006" // Token inválido

	// Erros de validação
	ErrInvalidRequest      = "VAL_001" // Requisição inválida
	ErrMissingRequiredData = "VAL_002" // Dados obrigatórios ausentes
	ErrInvalidFormat       = "VAL_003" // Formato de dados inválido

	// Erros de indicações
	ErrReferralNotFound  = "REF_001" // Indicação não encontrada
	ErrInvalidReferralID = "REF_002" // ID de indicação inválido

	// Erros do servidor
	ErrInternalServer     = "SRV_001" // Erro interno do servidor
	ErrStorageOperation   = "SRV_002" // Erro ao acessar o armazenamento
	ErrServiceUnavailable = "SRV_004" // Serviço indisponível
)

var httpStatusMap = map[string]int{
	ErrInvalidCredentials:  http.StatusUnauthorized,
	ErrUserDisabled:        http.StatusForbidden,
	ErrInvalidToken:        http.StatusUnauthorized,
	ErrInvalidRequest:      http.StatusBadRequest,
	ErrMissingRequiredData: http.StatusBadRequest,
	ErrInvalidFormat:       http.StatusBadRequest,
	ErrReferralNotFound:    http.StatusNotFound,
	ErrInvalidReferralID:   http.StatusBadRequest,
	ErrInternalServer:      http.StatusInternalServerError,
	ErrStorageOperation:    http.StatusInternalServerError,
	ErrServiceUnavailable:  http.StatusServiceUnavailable,
}

// APIError representa um erro de API padronizado
type APIError struct {
	Code    string `json:"code"`              // Código de erro para o cliente
	Message string `json:"message,omitempty"` // Mensagem descritiva (opcional)
	Details any    `json:"details,omitempty"` // Detalhes adicionais (opcional)
}

// StatusFor retorna o status HTTP associado ao código
func StatusFor(code string) int {
	status, exists := httpStatusMap[code]
	if !exists {
		return http.StatusInternalServerError
	}
	return status
}

// WriteError escreve o erro padronizado para a resposta HTTP
func WriteError(w http.ResponseWriter, code string, message string, details any) {
	apiErr := APIError{
		Code:    code,
		Message: message,
		Details: details,
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(StatusFor(code))
	if err := json.NewEncoder(w).Encode(apiErr); err != nil {
		logrus.WithError(err).Warn("Erro ao escrever resposta de erro")
	}
}
