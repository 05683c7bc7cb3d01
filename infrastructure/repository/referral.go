// Package repository contém as implementações dos repositórios para acesso aos dados
package repository

import (
	"context"
	"regexp"
	"sort"

	"github.com/pkg/errors"
	"github.com/vfg2006/referral-landing-api/internal/domain"
)

//go:generate mockgen -source=referral.go -destination=mocks/referral.go -package=mocks

var (
	ErrReferralNotFound      = errors.New("referral not found")
	ErrReferralAlreadyExists = errors.New("referral already exists")
	ErrInvalidReferralID     = errors.New("invalid referral id")
)

var referralIDPattern = regexp.MustCompile(`^[A-Za-z0-9_-]{1,128}$`)

// ReferralRepository guarda o snapshot JSON de cada indicação. Put é de escrita única.
type ReferralRepository interface {
	Put(ctx context.Context, id string, referral *domain.Referral) error
	Get(ctx context.Context, id string) (*domain.Referral, error)
	List(ctx context.Context, filters domain.ReferralFilters) ([]*domain.Referral, error)
}

// PageRepository guarda a página HTML gerada de cada indicação. PutPage é de escrita única.
type PageRepository interface {
	PutPage(ctx context.Context, id string, html []byte) error
	GetPage(ctx context.Context, id string) ([]byte, error)
}

// ValidateReferralID impede que o ID seja usado para escapar do diretório de dados
func ValidateReferralID(id string) error {
	if !referralIDPattern.MatchString(id) {
		return errors.Wrapf(ErrInvalidReferralID, "id %q", id)
	}
	return nil
}

func matchesFilters(referral *domain.Referral, filters domain.ReferralFilters) bool {
	if filters.Since != nil && referral.CreatedAt.Before(*filters.Since) {
		return false
	}

	if filters.Referrer != "" && referral.Referrer != filters.Referrer {
		return false
	}

	return true
}

// sortNewestFirst ordena por data de criação decrescente, desempatando pelo ID
func sortNewestFirst(referrals []*domain.Referral) {
	sort.SliceStable(referrals, func(i, j int) bool {
		if referrals[i].CreatedAt.Equal(referrals[j].CreatedAt) {
			return referrals[i].ID < referrals[j].ID
		}
		return referrals[i].CreatedAt.After(referrals[j].CreatedAt)
	})
}
