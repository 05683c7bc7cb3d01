package handler

import (
	"io"
	"net/http"

	"github.com/julienschmidt/httprouter"
	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
	"github.com/vfg2006/referral-landing-api/internal/domain"
	"github.com/vfg2006/referral-landing-api/internal/usecases/referring"
	"github.com/vfg2006/referral-landing-api/pkg/apiErrors"
	"github.com/vfg2006/referral-landing-api/pkg/log"
	"github.com/vfg2006/referral-landing-api/pkg/utils"
)

const (
	maxSubmissionBytes = 1 << 20

	MsgInvalidJSON      = "Invalid JSON payload"
	MsgUnexpectedError  = "An unexpected error occurred. Please try again."
	MsgReferralNotFound = "Referral page not found"
)

// SubmitReferralResponse é o corpo devolvido ao formulário da landing page
type SubmitReferralResponse struct {
	Success    bool     `json:"success"`
	ReferralID string   `json:"referral_id,omitempty"`
	PageURL    string   `json:"page_url,omitempty"`
	Errors     []string `json:"errors,omitempty"`
}

func SubmitReferral(service referring.Referrer) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		logger := log.ForContext(r.Context())

		body, err := io.ReadAll(http.MaxBytesReader(w, r.Body, maxSubmissionBytes))
		if err != nil {
			logger.WithError(err).Warn("Erro ao ler corpo da submissão")
			writeSubmitErrors(w, http.StatusBadRequest, MsgInvalidJSON)
			return
		}

		var data map[string]any
		if err := json.Unmarshal(body, &data); err != nil || data == nil {
			writeSubmitErrors(w, http.StatusBadRequest, MsgInvalidJSON)
			return
		}

		result, err := service.Submit(r.Context(), data)
		if err != nil {
			var validationErr *referring.ValidationError
			if errors.As(err, &validationErr) {
				writeSubmitErrors(w, http.StatusBadRequest, validationErr.Errors...)
				return
			}

			logger.WithError(err).Error("Erro ao processar submissão de indicação")
			writeSubmitErrors(w, http.StatusInternalServerError, MsgUnexpectedError)
			return
		}

		writeJSON(w, http.StatusOK, SubmitReferralResponse{
			Success:    true,
			ReferralID: result.ReferralID,
			PageURL:    result.PageURL,
		})
	}
}

func writeSubmitErrors(w http.ResponseWriter, status int, messages ...string) {
	writeJSON(w, status, SubmitReferralResponse{
		Success: false,
		Errors:  messages,
	})
}

// ServeReferralPage devolve a landing page gerada para a indicação
func ServeReferralPage(service referring.Referrer) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id := httprouter.ParamsFromContext(r.Context()).ByName("id")

		html, err := service.GetPage(r.Context(), id)
		if err != nil {
			if errors.Is(err, referring.ErrReferralNotFound) || errors.Is(err, referring.ErrInvalidReferralID) {
				http.Error(w, MsgReferralNotFound, http.StatusNotFound)
				return
			}

			log.ForContext(r.Context()).WithError(err).Error("Erro ao carregar página de indicação")
			http.Error(w, MsgUnexpectedError, http.StatusInternalServerError)
			return
		}

		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		if _, err := w.Write(html); err != nil {
			logrus.WithError(err).Warn("Erro ao escrever página de indicação")
		}
	}
}

// ListReferrals lista as indicações registradas, mais recentes primeiro.
// Aceita os filtros opcionais since=YYYY-MM-DD e referrer.
func ListReferrals(service referring.Referrer) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		query := r.URL.Query()

		since, err := utils.ParseDate(query.Get("since"))
		if err != nil {
			apiErrors.WriteError(w, apiErrors.ErrInvalidFormat, "since must use the YYYY-MM-DD format", nil)
			return
		}

		filters := domain.ReferralFilters{
			Since:    since,
			Referrer: query.Get("referrer"),
		}

		referrals, err := service.ListReferrals(r.Context(), filters)
		if err != nil {
			logrus.WithError(err).Error("Erro ao listar indicações")
			apiErrors.WriteError(w, apiErrors.ErrStorageOperation, "Error listing referrals", nil)
			return
		}

		writeJSON(w, http.StatusOK, referrals)
	}
}

func GetReferral(service referring.Referrer) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id := httprouter.ParamsFromContext(r.Context()).ByName("id")

		referral, err := service.GetReferral(r.Context(), id)
		if err != nil {
			handleReferralLookupError(w, err, id)
			return
		}

		writeJSON(w, http.StatusOK, referral)
	}
}

func handleReferralLookupError(w http.ResponseWriter, err error, id string) {
	switch {
	case errors.Is(err, referring.ErrReferralNotFound):
		apiErrors.WriteError(w, apiErrors.ErrReferralNotFound, "Referral not found", map[string]any{
			"referral_id": id,
		})
	case errors.Is(err, referring.ErrInvalidReferralID):
		apiErrors.WriteError(w, apiErrors.ErrInvalidReferralID, "Invalid referral ID", map[string]any{
			"referral_id": id,
		})
	default:
		logrus.WithError(err).WithField("referral_id", id).Error("Erro ao buscar indicação")
		apiErrors.WriteError(w, apiErrors.ErrStorageOperation, "Error fetching referral", nil)
	}
}
