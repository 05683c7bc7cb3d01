package referring

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vfg2006/referral-landing-api/infrastructure/repository"
	"github.com/vfg2006/referral-landing-api/infrastructure/repository/mocks"
	"github.com/vfg2006/referral-landing-api/internal/domain"
	"go.uber.org/mock/gomock"
)

var fixedNow = time.Date(2025, 3, 4, 10, 0, 0, 0, time.UTC)

func newTestService(referralRepo repository.ReferralRepository, pageRepo repository.PageRepository, ids ...string) *Service {
	service := NewService(referralRepo, pageRepo).(*Service)
	service.now = func() time.Time { return fixedNow }
	service.generateID = func(string) (string, error) {
		if len(ids) == 0 {
			return "", errors.New("no more ids")
		}
		id := ids[0]
		ids = ids[1:]
		return id, nil
	}
	return service
}

func TestService_Submit(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockReferralRepo := mocks.NewMockReferralRepository(ctrl)
	mockPageRepo := mocks.NewMockPageRepository(ctrl)
	service := newTestService(mockReferralRepo, mockPageRepo, "jo_0a1b2c3d")

	mockReferralRepo.EXPECT().
		Put(gomock.Any(), "jo_0a1b2c3d", gomock.Any()).
		DoAndReturn(func(_ context.Context, id string, referral *domain.Referral) error {
			assert.Equal(t, id, referral.ID)
			assert.Equal(t, "/referral/jo_0a1b2c3d", referral.PageURL)
			assert.Equal(t, fixedNow, referral.CreatedAt)
			assert.Equal(t, domain.Earnings{Daily: 100, Weekly: 700, Monthly: 3000, Yearly: 36500}, referral.Earnings)
			return nil
		})

	mockPageRepo.EXPECT().
		PutPage(gomock.Any(), "jo_0a1b2c3d", gomock.Any()).
		DoAndReturn(func(_ context.Context, _ string, html []byte) error {
			assert.Contains(t, string(html), "$36500.00")
			return nil
		})

	result, err := service.Submit(context.Background(), map[string]any{
		"name":     "Jo",
		"email":    "jo@x.com",
		"referrer": "Jo",
		"earnings": map[string]any{"daily": float64(100)},
	})

	require.NoError(t, err)
	assert.Equal(t, &SubmitResult{ReferralID: "jo_0a1b2c3d", PageURL: "/referral/jo_0a1b2c3d"}, result)
}

func TestService_Submit_ValidationErrors(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	// Nenhuma chamada aos repositórios é esperada
	service := newTestService(mocks.NewMockReferralRepository(ctrl), mocks.NewMockPageRepository(ctrl))

	_, err := service.Submit(context.Background(), map[string]any{
		"name":     "Jo",
		"email":    "jo@x.com",
		"referrer": "Jo",
	})

	var validationErr *ValidationError
	require.ErrorAs(t, err, &validationErr)
	assert.Equal(t, []string{MsgEarningsRequired}, validationErr.Errors)
	assert.ErrorIs(t, err, ErrValidation)
}

func TestService_Submit_RetriesOnIDCollision(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockReferralRepo := mocks.NewMockReferralRepository(ctrl)
	mockPageRepo := mocks.NewMockPageRepository(ctrl)
	service := newTestService(mockReferralRepo, mockPageRepo, "jo_aaaaaaaa", "jo_bbbbbbbb")

	gomock.InOrder(
		mockReferralRepo.EXPECT().Put(gomock.Any(), "jo_aaaaaaaa", gomock.Any()).Return(repository.ErrReferralAlreadyExists),
		mockReferralRepo.EXPECT().Put(gomock.Any(), "jo_bbbbbbbb", gomock.Any()).Return(nil),
	)
	mockPageRepo.EXPECT().PutPage(gomock.Any(), "jo_bbbbbbbb", gomock.Any()).Return(nil)

	result, err := service.Submit(context.Background(), validSubmission(map[string]any{"daily": 5}))

	require.NoError(t, err)
	assert.Equal(t, "jo_bbbbbbbb", result.ReferralID)
}

func TestService_Submit_GivesUpAfterRepeatedCollisions(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockReferralRepo := mocks.NewMockReferralRepository(ctrl)
	service := newTestService(mockReferralRepo, mocks.NewMockPageRepository(ctrl), "a_1", "a_2", "a_3")

	mockReferralRepo.EXPECT().
		Put(gomock.Any(), gomock.Any(), gomock.Any()).
		Return(repository.ErrReferralAlreadyExists).
		Times(maxIDAttempts)

	_, err := service.Submit(context.Background(), validSubmission(map[string]any{"daily": 5}))
	assert.ErrorIs(t, err, ErrIDCollision)
}

func TestService_Submit_StorageFailure(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockReferralRepo := mocks.NewMockReferralRepository(ctrl)
	mockPageRepo := mocks.NewMockPageRepository(ctrl)
	service := newTestService(mockReferralRepo, mockPageRepo, "jo_0a1b2c3d")

	mockReferralRepo.EXPECT().Put(gomock.Any(), gomock.Any(), gomock.Any()).Return(nil)
	mockPageRepo.EXPECT().PutPage(gomock.Any(), gomock.Any(), gomock.Any()).Return(errors.New("disk full"))

	_, err := service.Submit(context.Background(), validSubmission(map[string]any{"daily": 5}))

	assert.ErrorIs(t, err, ErrSaveReferral)
	var referralErr *ReferralError
	require.ErrorAs(t, err, &referralErr)
	assert.Equal(t, "jo_0a1b2c3d", referralErr.ReferralID)
}

func TestService_GetPage(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockPageRepo := mocks.NewMockPageRepository(ctrl)
	service := newTestService(mocks.NewMockReferralRepository(ctrl), mockPageRepo)

	mockPageRepo.EXPECT().GetPage(gomock.Any(), "jo_1").Return([]byte("<html></html>"), nil)
	mockPageRepo.EXPECT().GetPage(gomock.Any(), "missing").Return(nil, repository.ErrReferralNotFound)
	mockPageRepo.EXPECT().GetPage(gomock.Any(), "../etc").Return(nil, repository.ErrInvalidReferralID)

	html, err := service.GetPage(context.Background(), "jo_1")
	require.NoError(t, err)
	assert.Equal(t, "<html></html>", string(html))

	_, err = service.GetPage(context.Background(), "missing")
	assert.ErrorIs(t, err, ErrReferralNotFound)

	_, err = service.GetPage(context.Background(), "../etc")
	assert.ErrorIs(t, err, ErrInvalidReferralID)
}

func TestService_ListReferrals(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockReferralRepo := mocks.NewMockReferralRepository(ctrl)
	service := newTestService(mockReferralRepo, mocks.NewMockPageRepository(ctrl))

	filters := domain.ReferralFilters{Referrer: "Ann"}
	mockReferralRepo.EXPECT().List(gomock.Any(), filters).Return([]*domain.Referral{
		{ID: "bo_2", Name: "Bo", Referrer: "Ann", PageURL: "/referral/bo_2", CreatedAt: fixedNow},
		{ID: "jo_1", Name: "Jo", Referrer: "Ann", PageURL: "/referral/jo_1", CreatedAt: fixedNow.Add(-time.Hour)},
	}, nil)

	summaries, err := service.ListReferrals(context.Background(), filters)

	require.NoError(t, err)
	require.Len(t, summaries, 2)
	assert.Equal(t, "bo_2", summaries[0].ID)
	assert.Equal(t, "/referral/jo_1", summaries[1].PageURL)
}

func TestService_ListReferrals_Error(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockReferralRepo := mocks.NewMockReferralRepository(ctrl)
	service := newTestService(mockReferralRepo, mocks.NewMockPageRepository(ctrl))

	mockReferralRepo.EXPECT().List(gomock.Any(), gomock.Any()).Return(nil, errors.New("boom"))

	_, err := service.ListReferrals(context.Background(), domain.ReferralFilters{})
	assert.ErrorIs(t, err, ErrFetchReferrals)
}

func TestService_Submit_RejectsUnrenderableInput(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	// Nenhuma gravação é esperada: a entrada é rejeitada antes de renderizar a página
	service := newTestService(mocks.NewMockReferralRepository(ctrl), mocks.NewMockPageRepository(ctrl), "jo_1")

	tests := []struct {
		name       string
		input      map[string]any
		wantErrors []string
	}{
		{
			name:       "Diário NaN",
			input:      validSubmission(map[string]any{"daily": "NaN"}),
			wantErrors: []string{"Daily earnings must be a number"},
		},
		{
			name:       "Diário infinito",
			input:      validSubmission(map[string]any{"daily": "Infinity"}),
			wantErrors: []string{"Daily earnings must be a number"},
		},
		{
			name:       "Derivados estouram",
			input:      validSubmission(map[string]any{"daily": 1e307}),
			wantErrors: []string{"Monthly earnings must be a number", "Yearly earnings must be a number"},
		},
		{
			name: "Telefone como objeto",
			input: func() map[string]any {
				input := validSubmission(map[string]any{"daily": 5})
				input["phone"] = map[string]any{"n": 1}
				return input
			}(),
			wantErrors: []string{MsgPhoneNotString},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var result *SubmitResult
			var err error
			require.NotPanics(t, func() {
				result, err = service.Submit(context.Background(), tt.input)
			})

			assert.Nil(t, result)
			var validationErr *ValidationError
			require.ErrorAs(t, err, &validationErr)
			assert.Equal(t, tt.wantErrors, validationErr.Errors)
		})
	}
}
