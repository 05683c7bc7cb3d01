package handler

import (
	"net/http"

	"github.com/vfg2006/referral-landing-api/internal/api/handler/router"
	"github.com/vfg2006/referral-landing-api/internal/usecases/authenticating"
	"github.com/vfg2006/referral-landing-api/internal/usecases/referring"
	"github.com/vfg2006/referral-landing-api/pkg/middleware"
)

func Healthcheck() []router.Route {
	return []router.Route{
		{
			Path:    "/healthcheck",
			Method:  http.MethodGet,
			Handler: HealthcheckHandler(),
		},
	}
}

// Landing retorna as rotas públicas do site: página principal e páginas geradas
func Landing(service referring.Referrer, staticDir string) []router.Route {
	return []router.Route{
		{
			Path:    "/",
			Method:  http.MethodGet,
			Handler: Index(staticDir),
		},
		{
			Path:    "/api/submit-referral",
			Method:  http.MethodPost,
			Handler: SubmitReferral(service),
		},
		{
			Path:    "/referral/:id",
			Method:  http.MethodGet,
			Handler: ServeReferralPage(service),
		},
	}
}

func Authentication(service authenticating.Authenticator) []router.Route {
	return []router.Route{
		{
			Path:    "/v1/login",
			Method:  http.MethodPost,
			Handler: Login(service),
		},
	}
}

func Referrals(service referring.Referrer, authenticator authenticating.Authenticator) []router.Route {
	return []router.Route{
		{
			Path:        "/v1/referrals",
			Method:      http.MethodGet,
			Handler:     ListReferrals(service),
			Middlewares: []func(http.Handler) http.Handler{middleware.AdminOnly(authenticator)},
		},
		{
			Path:        "/v1/referrals/:id",
			Method:      http.MethodGet,
			Handler:     GetReferral(service),
			Middlewares: []func(http.Handler) http.Handler{middleware.AdminOnly(authenticator)},
		},
	}
}

func ReferralImport(importer ReferralImporter, authenticator authenticating.Authenticator) []router.Route {
	return []router.Route{
		{
			Path:        "/v1/import/run",
			Method:      http.MethodPost,
			Handler:     RunReferralImport(importer),
			Middlewares: []func(http.Handler) http.Handler{middleware.AdminOnly(authenticator)},
		},
		{
			Path:        "/v1/import/status",
			Method:      http.MethodGet,
			Handler:     GetReferralImportStatus(importer),
			Middlewares: []func(http.Handler) http.Handler{middleware.AdminOnly(authenticator)},
		},
	}
}
