package referring

import (
	"context"
	"time"

	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
	"github.com/vfg2006/referral-landing-api/infrastructure/repository"
	"github.com/vfg2006/referral-landing-api/internal/domain"
	"github.com/vfg2006/referral-landing-api/pkg/log"
	"github.com/vfg2006/referral-landing-api/pkg/utils"
)

const (
	pageURLPrefix = "/referral/"
	maxIDAttempts = 3
)

//go:generate mockgen -source=service.go -destination=mocks/referrer.go -package=mocks

type Referrer interface {
	Submit(ctx context.Context, data map[string]any) (*SubmitResult, error)
	GetPage(ctx context.Context, id string) ([]byte, error)
	GetReferral(ctx context.Context, id string) (*domain.Referral, error)
	ListReferrals(ctx context.Context, filters domain.ReferralFilters) ([]domain.ReferralSummary, error)
}

type SubmitResult struct {
	ReferralID string `json:"referral_id"`
	PageURL    string `json:"page_url"`
}

type Service struct {
	referralRepo repository.ReferralRepository
	pageRepo     repository.PageRepository
	generateID   func(name string) (string, error)
	now          func() time.Time
}

func NewService(referralRepo repository.ReferralRepository, pageRepo repository.PageRepository) Referrer {
	return &Service{
		referralRepo: referralRepo,
		pageRepo:     pageRepo,
		generateID:   utils.GenerateReferralID,
		now:          time.Now,
	}
}

// Submit valida, persiste e gera a página de uma nova indicação.
// Erros de validação retornam como *ValidationError.
func (s *Service) Submit(ctx context.Context, data map[string]any) (*SubmitResult, error) {
	logger := log.ForContext(ctx)

	validationErrors, normalized := Normalize(data)
	if len(validationErrors) > 0 {
		logger.WithField("error", validationErrors).Debug("Submissão de indicação rejeitada")
		return nil, &ValidationError{Errors: validationErrors}
	}

	referral, err := DecodeReferral(normalized)
	if err != nil {
		return nil, err
	}
	referral.CreatedAt = s.now().UTC()

	html, err := RenderPage(referral)
	if err != nil {
		return nil, err
	}

	id, err := s.saveReferral(ctx, referral)
	if err != nil {
		return nil, err
	}

	if err := s.pageRepo.PutPage(ctx, id, html); err != nil {
		return nil, NewReferralError(ErrSaveReferral, id, err.Error())
	}

	logrus.WithFields(logrus.Fields{
		"referral_id": id,
		"referrer":    referral.Referrer,
	}).Info("Indicação registrada com sucesso")

	return &SubmitResult{
		ReferralID: id,
		PageURL:    referral.PageURL,
	}, nil
}

// saveReferral gera um ID e grava o snapshot, tentando um novo ID em caso de colisão
func (s *Service) saveReferral(ctx context.Context, referral *domain.Referral) (string, error) {
	for attempt := 1; attempt <= maxIDAttempts; attempt++ {
		id, err := s.generateID(referral.Name)
		if err != nil {
			return "", NewReferralError(ErrGenerateID, "", err.Error())
		}

		referral.ID = id
		referral.PageURL = pageURLPrefix + id

		err = s.referralRepo.Put(ctx, id, referral)
		if err == nil {
			return id, nil
		}

		if !errors.Is(err, repository.ErrReferralAlreadyExists) {
			return "", NewReferralError(ErrSaveReferral, id, err.Error())
		}

		logrus.WithFields(logrus.Fields{
			"referral_id": id,
			"attempt":     attempt,
		}).Warn("Colisão de ID de indicação, gerando outro")
	}

	return "", ErrIDCollision
}

func (s *Service) GetPage(ctx context.Context, id string) ([]byte, error) {
	html, err := s.pageRepo.GetPage(ctx, id)
	if err != nil {
		return nil, translateLookupError(err, id)
	}

	return html, nil
}

func (s *Service) GetReferral(ctx context.Context, id string) (*domain.Referral, error) {
	referral, err := s.referralRepo.Get(ctx, id)
	if err != nil {
		return nil, translateLookupError(err, id)
	}

	return referral, nil
}

func (s *Service) ListReferrals(ctx context.Context, filters domain.ReferralFilters) ([]domain.ReferralSummary, error) {
	referrals, err := s.referralRepo.List(ctx, filters)
	if err != nil {
		return nil, NewReferralError(ErrFetchReferrals, "", err.Error())
	}

	summaries := make([]domain.ReferralSummary, 0, len(referrals))
	for _, referral := range referrals {
		summaries = append(summaries, referral.Summary())
	}

	return summaries, nil
}

func translateLookupError(err error, id string) error {
	switch {
	case errors.Is(err, repository.ErrReferralNotFound):
		return NewReferralError(ErrReferralNotFound, id, "")
	case errors.Is(err, repository.ErrInvalidReferralID):
		return NewReferralError(ErrInvalidReferralID, id, "")
	default:
		return NewReferralError(ErrFetchReferrals, id, err.Error())
	}
}
