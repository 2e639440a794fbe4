package config

import (
	"path/filepath"
	"testing"
	"time"

	"familydiet/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setBaseEnv(t *testing.T) {
	t.Helper()
	for _, k := range []string{
		"PORT", "DB_HOST", "DB_PASSWORD", "DB_PORT", "SQLITE_PATH", "SESSION_TTL", "ALLOWED_ORIGINS",
		"AWS_REGION", "S3_BUCKET", "S3_PUBLIC_URL", "SES_SENDER", "SNS_PLATFORM_APPLICATION_ARN",
	} {
		t.Setenv(k, "")
	}
	t.Setenv("JWT_SECRET", "secret")
	t.Setenv("HOUSEHOLD_PASSCODE_HASH", "$2a$10$abcdefghijklmnopqrstuv")
	t.Setenv("DB_DRIVER", "postgres")
	t.Setenv("DB_USER", "family")
	t.Setenv("DB_NAME", "diet")
}

func TestLoadDefaults(t *testing.T) {
	setBaseEnv(t)

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, "8080", cfg.Port)
	assert.Equal(t, "postgres", cfg.DBDriver)
	assert.Equal(t, "5432", cfg.DBPort)
	assert.Equal(t, 72*time.Hour, cfg.SessionTTL)
	assert.Equal(t, []string{"*"}, cfg.AllowedOrigins)
	assert.False(t, cfg.AWSEnabled())
}

func TestLoadOverrides(t *testing.T) {
	setBaseEnv(t)
	t.Setenv("SESSION_TTL", "12h")
	t.Setenv("ALLOWED_ORIGINS", "https://a.example, https://b.example,")
	t.Setenv("S3_BUCKET", "exports")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, 12*time.Hour, cfg.SessionTTL)
	assert.Equal(t, []string{"https://a.example", "https://b.example"}, cfg.AllowedOrigins)
	assert.True(t, cfg.AWSEnabled())
}

func TestLoadErrors(t *testing.T) {
	tests := []struct {
		name string
		env  map[string]string
	}{
		{"missing jwt secret", map[string]string{"JWT_SECRET": ""}},
		{"missing passcode hash", map[string]string{"HOUSEHOLD_PASSCODE_HASH": ""}},
		{"bad ttl", map[string]string{"SESSION_TTL": "forever"}},
		{"negative ttl", map[string]string{"SESSION_TTL": "-1h"}},
		{"postgres without user", map[string]string{"DB_USER": ""}},
		{"unknown driver", map[string]string{"DB_DRIVER": "mysql"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			setBaseEnv(t)
			for k, v := range tt.env {
				t.Setenv(k, v)
			}
			_, err := Load()
			assert.Error(t, err)
		})
	}
}

func TestOpenDBSqlite(t *testing.T) {
	setBaseEnv(t)
	t.Setenv("DB_DRIVER", "sqlite")
	t.Setenv("DB_USER", "")
	t.Setenv("SQLITE_PATH", filepath.Join(t.TempDir(), "family.db"))

	cfg, err := Load()
	require.NoError(t, err)
	db, err := OpenDB(cfg)
	require.NoError(t, err)

	for _, m := range []any{&models.FamilyMember{}, &models.DailyDietPlan{}, &models.ConsumptionEntry{}, &models.GroceryPlan{}, &models.HouseholdDevice{}} {
		assert.True(t, db.Migrator().HasTable(m))
	}
	assert.True(t, db.Migrator().HasIndex(&models.ConsumptionEntry{}, "idx_consumption_key"))
}
