package referring

import (
	"errors"
	"fmt"
	"strings"
)

// Erros específicos para o contexto de indicações
var (
	ErrValidation        = errors.New("referral validation failed")
	ErrDecodeReferral    = errors.New("error decoding referral")
	ErrGenerateID        = errors.New("error generating referral ID")
	ErrRenderPage        = errors.New("error rendering referral page")
	ErrSaveReferral      = errors.New("error saving referral")
	ErrReferralNotFound  = errors.New("referral not found")
	ErrFetchReferrals    = errors.New("error fetching referrals")
	ErrIDCollision       = errors.New("could not allocate a unique referral ID")
	ErrInvalidReferralID = errors.New("invalid referral ID")
)

// ValidationError carrega as mensagens de validação exatamente como devem chegar ao cliente
type ValidationError struct {
	Errors []string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", ErrValidation.Error(), strings.Join(e.Errors, "; "))
}

func (e *ValidationError) Unwrap() error {
	return ErrValidation
}

// ReferralError é um erro com contexto adicional para indicações
type ReferralError struct {
	Err        error  // Erro base
	ReferralID string // ID da indicação envolvida (quando aplicável)
	Details    string // Detalhes adicionais
}

func (e *ReferralError) Error() string {
	if e.Details != "" {
		return fmt.Sprintf("%s: %s", e.Err.Error(), e.Details)
	}
	return e.Err.Error()
}

func (e *ReferralError) Unwrap() error {
	return e.Err
}

func NewReferralError(err error, referralID string, details string) *ReferralError {
	return &ReferralError{
		Err:        err,
		ReferralID: referralID,
		Details:    details,
	}
}
