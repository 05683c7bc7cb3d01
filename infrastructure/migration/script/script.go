package main

import (
	"context"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/vfg2006/referral-landing-api/infrastructure/database/postgres"
	"github.com/vfg2006/referral-landing-api/internal/config"
	"github.com/vfg2006/referral-landing-api/pkg/log"
)

const migrationTimeout = 30 * time.Second

// Aplica o schema de indicações no PostgreSQL configurado, sem subir a API.
// Uso: go run ./infrastructure/migration/script
func main() {
	cfg, err := config.NewConfig()
	if err != nil {
		logrus.Fatal(err)
	}
	log.Configure(cfg.App.LogLevel)

	ctx, cancel := context.WithTimeout(context.Background(), migrationTimeout)
	defer cancel()

	conn, err := postgres.NewConnection(ctx, cfg.Database)
	if err != nil {
		logrus.WithError(err).Fatal("Erro ao conectar ao PostgreSQL")
	}
	defer conn.Close()

	start := time.Now()
	if err := conn.Migrate(ctx); err != nil {
		logrus.WithError(err).Fatal("Erro ao aplicar schema de indicações")
	}

	logrus.WithField("duration_ms", time.Since(start).Milliseconds()).Info("Schema de indicações aplicado com sucesso")
}
