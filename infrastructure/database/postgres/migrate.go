package postgres

import (
	"context"
	"database/sql"

	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
)

var schema = []string{
	`CREATE TABLE IF NOT EXISTS referrals (
		id          TEXT PRIMARY KEY,
		name        TEXT NOT NULL,
		email       TEXT NOT NULL,
		phone       TEXT NOT NULL DEFAULT '',
		referrer    TEXT NOT NULL,
		daily       DOUBLE PRECISION NOT NULL,
		weekly      DOUBLE PRECISION NOT NULL,
		monthly     DOUBLE PRECISION NOT NULL,
		yearly      DOUBLE PRECISION NOT NULL,
		page_url    TEXT NOT NULL,
		created_at  TIMESTAMPTZ NOT NULL DEFAULT NOW()
	)`,
	`CREATE INDEX IF NOT EXISTS referrals_referrer_idx ON referrals (referrer)`,
	`CREATE TABLE IF NOT EXISTS referral_pages (
		referral_id TEXT PRIMARY KEY,
		html        TEXT NOT NULL,
		created_at  TIMESTAMPTZ NOT NULL DEFAULT NOW()
	)`,
}

// Migrate cria as tabelas de indicações caso ainda não existam
func (c *Connection) Migrate(ctx context.Context) error {
	err := c.RunInTransaction(ctx, func(tx *sql.Tx) error {
		for _, statement := range schema {
			if _, err := tx.ExecContext(ctx, statement); err != nil {
				return errors.Wrap(err, "erro ao aplicar schema")
			}
		}
		return nil
	})
	if err != nil {
		return err
	}

	logrus.WithField("statements", len(schema)).Info("Schema de indicações aplicado")
	return nil
}
