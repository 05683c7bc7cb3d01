package log

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestWithCorrelationID(t *testing.T) {
	ctx, id := WithCorrelationID(context.Background())

	assert.NotEmpty(t, id)
	assert.Equal(t, id, GetCorrelationID(ctx))
	assert.Empty(t, GetCorrelationID(context.Background()))
}

func TestWithField_FiltersNoiseInDevelopment(t *testing.T) {
	t.Setenv("APP_ENV", "development")
	SetupTestLogger()

	base := L.(*logger)
	assert.Same(t, base, L.WithField("user_agent", "curl"))

	withID := L.WithField("referral_id", "jo_1a2b3c4d").(*logger)
	assert.Equal(t, "jo_1a2b3c4d", withID.entry.Data["referral_id"])
}

func TestWithFields_KeepsEverythingInProduction(t *testing.T) {
	t.Setenv("APP_ENV", "production")
	SetupTestLogger()

	l := L.WithFields(Fields{"user_agent": "curl", "path": "/"}).(*logger)
	assert.Equal(t, "curl", l.entry.Data["user_agent"])
	assert.Equal(t, "/", l.entry.Data["path"])
}
