package handler

import (
	"net/http"

	"github.com/sirupsen/logrus"
	"github.com/vfg2006/referral-landing-api/pkg/middleware"
)

// ReferralImporter expõe o controle manual do agendador de importação
type ReferralImporter interface {
	TriggerManualImport() bool
	GetStatus() map[string]any
}

// RunReferralImport dispara manualmente a importação em lote
func RunReferralImport(importer ReferralImporter) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		fields := logrus.Fields{}
		if claims, ok := middleware.AdminFromContext(r.Context()); ok {
			fields["admin_email"] = claims.AdminEmail
		}
		logrus.WithFields(fields).Info("INIT - RunReferralImport")

		if !importer.TriggerManualImport() {
			writeJSON(w, http.StatusConflict, map[string]any{
				"message": "Import already running",
			})
			return
		}

		writeJSON(w, http.StatusAccepted, map[string]any{
			"message": "Import started",
		})
	}
}

func GetReferralImportStatus(importer ReferralImporter) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, importer.GetStatus())
	}
}
