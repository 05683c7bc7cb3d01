package main

import (
	"context"

	"github.com/sirupsen/logrus"
	"github.com/vfg2006/referral-landing-api/infrastructure/database/postgres"
	"github.com/vfg2006/referral-landing-api/infrastructure/repository"
	"github.com/vfg2006/referral-landing-api/internal/api"
	"github.com/vfg2006/referral-landing-api/internal/config"
	"github.com/vfg2006/referral-landing-api/internal/scheduler"
	"github.com/vfg2006/referral-landing-api/internal/usecases/authenticating"
	"github.com/vfg2006/referral-landing-api/internal/usecases/referring"
	"github.com/vfg2006/referral-landing-api/pkg/log"
)

func main() {
	cfg, err := config.NewConfig()
	if err != nil {
		logrus.Fatal(err)
	}

	// Define formato e nível de log com base na configuração
	log.Configure(cfg.App.LogLevel)
	logrus.Infof("Nível de log configurado para: %s", logrus.GetLevel())

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	referralRepo, pageRepo, closeStorage := storage(ctx, cfg)
	defer closeStorage()

	referralService := referring.NewService(referralRepo, pageRepo)
	authenticator := authenticating.NewService(cfg)

	referralImportService := scheduler.NewReferralImportService(referralService, cfg)
	if err := referralImportService.Start(ctx); err != nil {
		logrus.WithError(err).Error("Erro ao iniciar o agendador de importação de indicações")
	}

	server, err := api.New(
		cfg,
		referralService,
		authenticator,
		referralImportService,
	)
	if err != nil {
		logrus.Fatal(err)
	}

	if err := server.Run(ctx); err != nil {
		logrus.Error(err)
	}
}

// storage monta os repositórios de acordo com STORAGE_DRIVER
func storage(ctx context.Context, cfg *config.Config) (repository.ReferralRepository, repository.PageRepository, func()) {
	switch cfg.Storage.Driver {
	case config.StorageDriverPostgres:
		pgConn := pgconn(ctx, cfg.Database)

		logrus.Info("Armazenamento de indicações: PostgreSQL")
		return repository.NewReferralPostgresRepository(pgConn),
			repository.NewPagePostgresRepository(pgConn),
			func() { pgConn.Close() }

	default:
		referralRepo, err := repository.NewReferralFileRepository(cfg.Storage.DataDir)
		if err != nil {
			logrus.WithError(err).Fatal("Erro ao preparar diretório de submissões")
		}

		pageRepo, err := repository.NewPageFileRepository(cfg.Storage.DataDir)
		if err != nil {
			logrus.WithError(err).Fatal("Erro ao preparar diretório de páginas geradas")
		}

		logrus.WithField("data_dir", cfg.Storage.DataDir).Info("Armazenamento de indicações: arquivos locais")
		return referralRepo, pageRepo, func() {}
	}
}

// pgconn cria uma conexão com o banco de dados e aplica o schema
func pgconn(ctx context.Context, dbConfig config.Database) *postgres.Connection {
	conn, err := postgres.NewConnection(ctx, dbConfig)
	if err != nil {
		logrus.WithError(err).Fatal("Erro ao conectar ao PostgreSQL")
	}

	if err := conn.Migrate(ctx); err != nil {
		logrus.WithError(err).Fatal("Erro ao aplicar schema de indicações no PostgreSQL")
	}

	logrus.Info("Conexão com PostgreSQL estabelecida com sucesso")
	return conn
}
