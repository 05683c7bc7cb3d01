// Package scheduler contém os serviços de agendamento da aplicação
package scheduler

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/go-co-op/gocron"
	jsoniter "github.com/json-iterator/go"
	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
	"github.com/vfg2006/referral-landing-api/internal/config"
	"github.com/vfg2006/referral-landing-api/internal/usecases/referring"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

const (
	processedDir     = "processed"
	failedDir        = "failed"
	errorsFileSuffix = ".errors.json"

	msgRecordNotObject = "Record must be a JSON object"
	msgUnexpected      = "Unexpected error while importing record"
)

type ReferralImportConfig struct {
	CronSchedule string
	Dir          string
	SyncEnabled  bool
}

// ImportResult resume uma execução da importação
type ImportResult struct {
	Files    int `json:"files"`
	Imported int `json:"imported"`
	Rejected int `json:"rejected"`
	Failed   int `json:"failed"`
}

// recordReport descreve o resultado de um registro dentro de um arquivo
type recordReport struct {
	Index      int      `json:"index"`
	ReferralID string   `json:"referral_id,omitempty"`
	Errors     []string `json:"errors,omitempty"`
	failed     bool
}

type ReferralImportService struct {
	scheduler           *gocron.Scheduler
	referralService     referring.Referrer
	config              ReferralImportConfig
	syncRunning         bool
	syncMutex           sync.Mutex
	lastSyncStartedAt   time.Time
	lastSyncCompletedAt time.Time
	lastResult          ImportResult
	now                 func() time.Time
}

func NewReferralImportService(referralService referring.Referrer, cfg *config.Config) *ReferralImportService {
	importConfig := ReferralImportConfig{
		CronSchedule: cfg.ReferralImport.CronSchedule,
		Dir:          cfg.ReferralImport.Dir,
		SyncEnabled:  cfg.ReferralImport.Enabled,
	}

	logrus.WithFields(logrus.Fields{
		"cron_schedule": importConfig.CronSchedule,
		"dir":           importConfig.Dir,
	}).Info("Configuração do agendador de importação de indicações carregada")

	return &ReferralImportService{
		scheduler:       gocron.NewScheduler(time.Local),
		referralService: referralService,
		config:          importConfig,
		now:             time.Now,
	}
}

func (s *ReferralImportService) Start(ctx context.Context) error {
	if !s.config.SyncEnabled {
		logrus.Info("Importação de indicações desabilitada por configuração")
		return nil
	}

	gocron.SetPanicHandler(func(jobName string, recoverData interface{}) {
		logrus.WithFields(logrus.Fields{
			"job":   jobName,
			"panic": recoverData,
		}).Error("Panic em job agendado")
	})

	_, err := s.scheduler.Cron(s.config.CronSchedule).Do(func() {
		if _, err := s.RunImport(ctx); err != nil {
			logrus.WithError(err).Error("Erro na importação de indicações")
		}
	})
	if err != nil {
		return fmt.Errorf("erro ao agendar importação de indicações: %w", err)
	}

	s.scheduler.StartAsync()

	go func() {
		<-ctx.Done()
		logrus.Info("Parando cron de importação de indicações")
		s.scheduler.Stop()
	}()

	return nil
}

// TriggerManualImport dispara uma importação em background; falso se já houver uma em andamento
func (s *ReferralImportService) TriggerManualImport() bool {
	if !s.claimRun() {
		logrus.Info("Importação de indicações já em andamento, ignorando solicitação manual")
		return false
	}

	logrus.Info("Iniciando importação manual de indicações")
	go func() {
		defer func() {
			if r := recover(); r != nil {
				logrus.WithField("panic", r).Error("Panic na importação manual de indicações")
			}
		}()

		if _, err := s.runClaimed(context.Background()); err != nil {
			logrus.WithError(err).Error("Erro na importação manual de indicações")
		}
	}()
	return true
}

// claimRun marca a importação como em andamento; falso se outra já estiver rodando
func (s *ReferralImportService) claimRun() bool {
	s.syncMutex.Lock()
	defer s.syncMutex.Unlock()

	if s.syncRunning {
		return false
	}
	s.syncRunning = true
	s.lastSyncStartedAt = s.now()
	return true
}

// RunImport processa todos os arquivos *.json do diretório de importação
func (s *ReferralImportService) RunImport(ctx context.Context) (ImportResult, error) {
	if !s.claimRun() {
		logrus.Warn("Importação de indicações já está em execução")
		return ImportResult{}, nil
	}

	return s.runClaimed(ctx)
}

// runClaimed executa a importação; quem chama já reservou a execução com claimRun
func (s *ReferralImportService) runClaimed(ctx context.Context) (ImportResult, error) {
	result := ImportResult{}
	defer func() {
		s.syncMutex.Lock()
		s.syncRunning = false
		s.lastSyncCompletedAt = s.now()
		s.lastResult = result
		s.syncMutex.Unlock()
	}()

	files, err := s.pendingFiles()
	if err != nil {
		return result, err
	}

	for _, file := range files {
		if ctx.Err() != nil {
			return result, ctx.Err()
		}

		reports, err := s.importFile(ctx, file)
		result.Files++
		if err != nil {
			logrus.WithError(err).WithField("file", file).Error("Arquivo de importação ilegível")
			result.Failed++
			if moveErr := s.moveFile(file, failedDir, []recordReport{{Errors: []string{err.Error()}}}); moveErr != nil {
				logrus.WithError(moveErr).WithField("file", file).Error("Erro ao mover arquivo de importação")
			}
			continue
		}

		fileOK := true
		for _, report := range reports {
			switch {
			case report.ReferralID != "":
				result.Imported++
			case report.failed:
				result.Failed++
				fileOK = false
			default:
				result.Rejected++
				fileOK = false
			}
		}

		target := processedDir
		var failures []recordReport
		if !fileOK {
			target = failedDir
			failures = reports
		}

		if err := s.moveFile(file, target, failures); err != nil {
			logrus.WithError(err).WithField("file", file).Error("Erro ao mover arquivo de importação")
		}
	}

	logrus.WithFields(logrus.Fields{
		"files":    result.Files,
		"imported": result.Imported,
		"rejected": result.Rejected,
		"failed":   result.Failed,
	}).Info("Importação de indicações concluída")

	return result, nil
}

func (s *ReferralImportService) pendingFiles() ([]string, error) {
	entries, err := os.ReadDir(s.config.Dir)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, errors.Wrapf(err, "erro ao listar %s", s.config.Dir)
	}

	files := make([]string, 0, len(entries))
	for _, entry := range entries {
		if entry.IsDir() || !strings.HasSuffix(entry.Name(), ".json") {
			continue
		}
		files = append(files, filepath.Join(s.config.Dir, entry.Name()))
	}

	sort.Strings(files)
	return files, nil
}

// importFile envia cada registro do arquivo pelo mesmo fluxo da API
func (s *ReferralImportService) importFile(ctx context.Context, path string) ([]recordReport, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Wrapf(err, "erro ao ler %s", path)
	}

	records, err := decodeRecords(data)
	if err != nil {
		return nil, err
	}

	reports := make([]recordReport, 0, len(records))
	for i, record := range records {
		report := recordReport{Index: i}

		fields, ok := record.(map[string]any)
		if !ok {
			report.Errors = []string{msgRecordNotObject}
			reports = append(reports, report)
			continue
		}

		submitted, err := s.submitRecord(ctx, fields)
		var validationErr *referring.ValidationError
		switch {
		case err == nil:
			report.ReferralID = submitted.ReferralID
		case errors.As(err, &validationErr):
			report.Errors = validationErr.Errors
		default:
			logrus.WithError(err).WithFields(logrus.Fields{
				"file":  path,
				"index": i,
			}).Error("Erro inesperado ao importar indicação")
			report.Errors = []string{msgUnexpected}
			report.failed = true
		}

		reports = append(reports, report)
	}

	return reports, nil
}

// submitRecord isola panics de um registro para que o restante do arquivo siga
func (s *ReferralImportService) submitRecord(ctx context.Context, fields map[string]any) (result *referring.SubmitResult, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = errors.Errorf("panic ao importar registro: %v", r)
		}
	}()

	return s.referralService.Submit(ctx, fields)
}

// decodeRecords aceita um objeto único ou uma lista de objetos
func decodeRecords(data []byte) ([]any, error) {
	var payload any
	if err := json.Unmarshal(data, &payload); err != nil {
		return nil, errors.Wrap(err, "JSON inválido")
	}

	switch v := payload.(type) {
	case []any:
		return v, nil
	case map[string]any:
		return []any{v}, nil
	}

	return nil, errors.New("o arquivo deve conter um objeto ou uma lista de objetos")
}

func (s *ReferralImportService) moveFile(path, target string, failures []recordReport) error {
	targetDir := filepath.Join(s.config.Dir, target)
	if err := os.MkdirAll(targetDir, 0o755); err != nil {
		return errors.Wrapf(err, "erro ao criar %s", targetDir)
	}

	name := fmt.Sprintf("%s_%s", s.now().Format("20060102T150405"), filepath.Base(path))
	destination := filepath.Join(targetDir, name)
	if err := os.Rename(path, destination); err != nil {
		return errors.Wrapf(err, "erro ao mover %s", path)
	}

	if len(failures) == 0 {
		return nil
	}

	report, err := json.MarshalIndent(failures, "", "  ")
	if err != nil {
		return errors.Wrap(err, "erro ao serializar relatório de erros")
	}

	reportPath := strings.TrimSuffix(destination, ".json") + errorsFileSuffix
	return errors.Wrapf(os.WriteFile(reportPath, report, 0o644), "erro ao escrever %s", reportPath)
}

// GetStatus retorna o status atual do agendador
func (s *ReferralImportService) GetStatus() map[string]any {
	s.syncMutex.Lock()
	defer s.syncMutex.Unlock()

	return map[string]any{
		"sync_enabled":           s.config.SyncEnabled,
		"sync_cron":              s.config.CronSchedule,
		"import_dir":             s.config.Dir,
		"running":                s.syncRunning,
		"last_sync_started_at":   s.lastSyncStartedAt,
		"last_sync_completed_at": s.lastSyncCompletedAt,
		"last_result":            s.lastResult,
	}
}
